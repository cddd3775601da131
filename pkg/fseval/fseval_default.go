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

package fseval

import (
	"io/fs"
	"os"
	"path/filepath"
)

type osFsEval int

func (osFsEval) Lstat(path string) (os.FileInfo, error) {
	return os.Lstat(path)
}

func (osFsEval) Readlink(path string) (string, error) {
	return os.Readlink(path)
}

func (osFsEval) ReadDir(path string) ([]os.DirEntry, error) {
	return os.ReadDir(path)
}

func (osFsEval) Rename(oldpath, newpath string) error {
	return os.Rename(oldpath, newpath)
}

func (osFsEval) RenameNoReplace(oldpath, newpath string) error {
	return renameNoReplace(oldpath, newpath)
}

func (osFsEval) RemoveAll(path string) error {
	return os.RemoveAll(path)
}

func (osFsEval) WalkDir(root string, fn fs.WalkDirFunc) error {
	return filepath.WalkDir(root, fn)
}
