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
	"cmp"
	"fmt"
	"io/fs"
	"path/filepath"
	"slices"
	"strings"

	"github.com/unnest/unnest/pkg/fseval"
)

// Depth returns the depth of a path, which is the number of separators in the
// cleaned path. Only the relative depth of paths sharing a root is
// meaningful.
func Depth(path string) int {
	return strings.Count(filepath.Clean(path), string(filepath.Separator))
}

// compareDeepestFirst orders paths by decreasing depth. Ties are broken by
// decreasing length and then lexically, so that a plan is reproducible.
func compareDeepestFirst(a, b string) int {
	return cmp.Or(
		cmp.Compare(Depth(b), Depth(a)),
		cmp.Compare(len(b), len(a)),
		strings.Compare(a, b),
	)
}

// Plan returns every directory below root (not including root itself),
// ordered so that deeper directories come before their ancestors. Symlinks
// are not followed and are never part of the plan. Plan does not modify the
// filesystem.
func Plan(fsEval fseval.FsEval, root string) ([]string, error) {
	root = filepath.Clean(root)

	var dirs []string
	if err := fsEval.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if path != root && d.IsDir() {
			dirs = append(dirs, path)
		}
		return nil
	}); err != nil {
		return nil, fmt.Errorf("enumerate directories under %q: %w", root, err)
	}

	slices.SortFunc(dirs, compareDeepestFirst)
	return dirs, nil
}
