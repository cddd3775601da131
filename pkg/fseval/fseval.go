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

// Package fseval abstracts the filesystem operations used while collapsing a
// tree, so that callers (and tests) can substitute their own implementation.
package fseval

import (
	"io/fs"
	"os"

	securejoin "github.com/cyphar/filepath-securejoin"
)

// FsEval is the set of filesystem operations required by the traversal
// planner and the collapse engine. It is a superset of securejoin.VFS so an
// FsEval can be used to resolve paths scoped inside a directory.
type FsEval interface {
	// We inherit Lstat and Readlink from securejoin.VFS.
	securejoin.VFS

	// ReadDir is equivalent to os.ReadDir.
	ReadDir(path string) ([]os.DirEntry, error)

	// Rename is equivalent to os.Rename, and will replace an existing
	// non-directory destination.
	Rename(oldpath, newpath string) error

	// RenameNoReplace is like Rename except that it fails with an error
	// satisfying errors.Is(err, os.ErrExist) if newpath already exists.
	RenameNoReplace(oldpath, newpath string) error

	// RemoveAll is equivalent to os.RemoveAll.
	RemoveAll(path string) error

	// WalkDir is equivalent to filepath.WalkDir.
	WalkDir(root string, fn fs.WalkDirFunc) error
}

// Default is the FsEval which operates directly on the host filesystem.
var Default FsEval = osFsEval(0)

// IsDir returns whether path exists and is a directory. Symlinks are not
// followed. Errors other than the path not existing are returned as-is.
func IsDir(fsEval FsEval, path string) (bool, error) {
	fi, err := fsEval.Lstat(path)
	if err != nil {
		if os.IsNotExist(err) {
			return false, nil
		}
		return false, err
	}
	return fi.IsDir(), nil
}

// Exists returns whether anything (including a dangling symlink) is present
// at path.
func Exists(fsEval FsEval, path string) (bool, error) {
	if _, err := fsEval.Lstat(path); err != nil {
		if os.IsNotExist(err) {
			return false, nil
		}
		return false, err
	}
	return true, nil
}
