//go:build gofuzz

// SPDX-License-Identifier: Apache-2.0
/*
 * unnest: collapse redundantly nested directories
 * Copyright (C) 2026 The unnest Authors
 *
 * Licensed under the Apache License, Version 2.0 (the "License");
 * you may not use this file except in compliance with the License.
 * You may obtain a copy of the License at
 *
 *    http://www.apache.org/licenses/LICENSE-2.0
 *
 * Unless required by applicable law or agreed to in writing, software
 * distributed under the License is distributed on an "AS IS" BASIS,
 * WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
 * See the License for the specific language governing permissions and
 * limitations under the License.
 */

package collapse

import (
	"os"
	"path/filepath"

	fuzzheaders "github.com/AdaLogics/go-fuzz-headers"
	"github.com/vbatts/go-mtree"

	"github.com/unnest/unnest/pkg/fseval"
)

// A tiny alphabet makes same-named nesting (and collisions) likely.
var fuzzNames = []string{"A", "B", "a", "file"}

// fuzzTree creates up to maxEntries random files and directories under root.
func fuzzTree(c *fuzzheaders.ConsumeFuzzer, root string, maxEntries int) error {
	dirs := []string{root}
	for i := 0; i < maxEntries; i++ {
		parentIdx, err := c.GetInt()
		if err != nil {
			return nil
		}
		nameIdx, err := c.GetInt()
		if err != nil {
			return nil
		}
		isDir, err := c.GetBool()
		if err != nil {
			return nil
		}

		parent := dirs[parentIdx%len(dirs)]
		path := filepath.Join(parent, fuzzNames[nameIdx%len(fuzzNames)])
		if _, err := os.Lstat(path); err == nil {
			continue
		}
		if isDir {
			if err := os.Mkdir(path, 0o755); err != nil {
				return err
			}
			dirs = append(dirs, path)
		} else {
			contents, err := c.GetBytes()
			if err != nil {
				return nil
			}
			if err := os.WriteFile(path, contents, 0o644); err != nil {
				return err
			}
		}
	}
	return nil
}

// FuzzCollapse implements a fuzzer that targets Plan() and Engine.Run(),
// checking that a second run over an already collapsed tree is a no-op.
func FuzzCollapse(data []byte) int {
	c := fuzzheaders.NewConsumer(data)
	policyIdx, err := c.GetInt()
	if err != nil {
		return -1
	}
	mergeDirs, err := c.GetBool()
	if err != nil {
		return -1
	}
	opts := Options{
		Policy:           []MergePolicy{PolicySkip, PolicyOverwrite}[policyIdx%2],
		MergeDirectories: mergeDirs,
	}

	root, err := os.MkdirTemp("", "unnest-fuzz-")
	if err != nil {
		return -1
	}
	defer os.RemoveAll(root) //nolint:errcheck

	if err := fuzzTree(c, root, 64); err != nil {
		return -1
	}

	plan, err := Plan(fseval.Default, root)
	if err != nil {
		panic(err)
	}
	if _, err := NewEngine(root, nil, nil, opts).Run(plan); err != nil {
		panic(err)
	}

	initDh, err := mtree.Walk(root, nil, append(mtree.DefaultKeywords, "sha256digest"), nil)
	if err != nil {
		return 0
	}

	plan, err = Plan(fseval.Default, root)
	if err != nil {
		panic(err)
	}
	result, err := NewEngine(root, nil, nil, opts).Run(plan)
	if err != nil {
		panic(err)
	}
	if result.Changed() && opts.Policy == PolicySkip {
		panic("second collapse of an already collapsed tree modified it")
	}

	postDh, err := mtree.Walk(root, nil, initDh.UsedKeywords(), nil)
	if err != nil {
		return 0
	}
	diffs, err := mtree.Compare(initDh, postDh, initDh.UsedKeywords())
	if err != nil {
		return -1
	}
	if len(diffs) > 0 && opts.Policy == PolicySkip {
		panic("second collapse produced filesystem changes")
	}
	return 1
}
