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

// Package unnest collapses redundantly nested directories: whenever a
// directory has the same name as its parent, its contents are merged into
// the parent and the now-empty directory is removed.
package unnest

import (
	"errors"
	"fmt"
	"io/fs"
	"path/filepath"
	"strings"

	"github.com/apex/log"

	"github.com/unnest/unnest/collapse"
	"github.com/unnest/unnest/pkg/fseval"
)

// Options controls how [Collapse] restructures a tree.
type Options struct {
	// Policy is the merge policy used when an entry collides with an existing
	// entry in the parent directory.
	Policy collapse.MergePolicy

	// MergeDirectories merges colliding directories entry-by-entry instead of
	// applying Policy to them as a whole.
	MergeDirectories bool

	// FsEval is the filesystem implementation to use. If nil, the host
	// filesystem is used.
	FsEval fseval.FsEval

	// Logger receives progress messages. If nil, the global apex/log logger
	// is used.
	Logger log.Interface
}

func (opts Options) fsEval() fseval.FsEval {
	if opts.FsEval == nil {
		return fseval.Default
	}
	return opts.FsEval
}

func (opts Options) logger() log.Interface {
	if opts.Logger == nil {
		return log.Log
	}
	return opts.Logger
}

// ValidateRoot checks that root names an existing directory, and returns the
// cleaned path with any symlinks resolved. Surrounding whitespace is ignored.
// The returned error wraps [ErrEmptyRoot], [ErrRootNotFound] or
// [ErrRootNotDirectory] where appropriate.
func ValidateRoot(fsEval fseval.FsEval, root string) (string, error) {
	root = strings.TrimSpace(root)
	if root == "" {
		return "", ErrEmptyRoot
	}
	if fsEval == nil {
		fsEval = fseval.Default
	}

	resolved, err := filepath.EvalSymlinks(root)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return "", fmt.Errorf("%w: %q", ErrRootNotFound, root)
		}
		return "", fmt.Errorf("resolve root %q: %w", root, err)
	}
	isDir, err := fseval.IsDir(fsEval, resolved)
	if err != nil {
		return "", fmt.Errorf("inspect root %q: %w", root, err)
	}
	if !isDir {
		exists, err := fseval.Exists(fsEval, resolved)
		if err != nil {
			return "", fmt.Errorf("inspect root %q: %w", root, err)
		}
		if !exists {
			return "", fmt.Errorf("%w: %q", ErrRootNotFound, root)
		}
		return "", fmt.Errorf("%w: %q", ErrRootNotDirectory, root)
	}
	return filepath.Clean(resolved), nil
}

// Collapse validates root, plans the traversal and then collapses every chain
// of same-named directories under root. The tree is modified in place. If an
// operation fails the tree is left partially collapsed, and the returned
// Result (if non-nil) describes the changes made before the failure.
func Collapse(root string, opts Options) (*collapse.Result, error) {
	logger := opts.logger()
	fsEval := opts.fsEval()

	root, err := ValidateRoot(fsEval, root)
	if err != nil {
		return nil, err
	}

	plan, err := collapse.Plan(fsEval, root)
	if err != nil {
		return nil, fmt.Errorf("plan collapse: %w", err)
	}
	logger.WithFields(log.Fields{
		"root": root,
		"dirs": len(plan),
	}).Debug("planned traversal")

	engine := collapse.NewEngine(root, fsEval, logger, collapse.Options{
		Policy:           opts.Policy,
		MergeDirectories: opts.MergeDirectories,
	})
	return engine.Run(plan)
}
