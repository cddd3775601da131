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
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRenameNoReplace(t *testing.T) {
	dir := t.TempDir()

	src := filepath.Join(dir, "src")
	dst := filepath.Join(dir, "dst")
	err := os.WriteFile(src, []byte("source"), 0o644)
	require.NoError(t, err)

	err = Default.RenameNoReplace(src, dst)
	require.NoError(t, err, "rename to a free destination")
	assert.NoFileExists(t, src)
	got, err := os.ReadFile(dst)
	require.NoError(t, err)
	assert.Equal(t, "source", string(got))
}

func TestRenameNoReplaceExisting(t *testing.T) {
	for _, test := range []struct {
		name  string
		setup func(t *testing.T, dst string)
	}{
		{"File", func(t *testing.T, dst string) {
			err := os.WriteFile(dst, []byte("existing"), 0o644)
			require.NoError(t, err)
		}},
		{"EmptyDirectory", func(t *testing.T, dst string) {
			err := os.Mkdir(dst, 0o755)
			require.NoError(t, err)
		}},
		{"DanglingSymlink", func(t *testing.T, dst string) {
			err := os.Symlink("/nonexistent/target", dst)
			require.NoError(t, err)
		}},
	} {
		t.Run(test.name, func(t *testing.T) {
			dir := t.TempDir()

			src := filepath.Join(dir, "src")
			dst := filepath.Join(dir, "dst")
			err := os.Mkdir(src, 0o755)
			require.NoError(t, err)
			test.setup(t, dst)

			err = Default.RenameNoReplace(src, dst)
			require.Error(t, err, "rename over an existing destination")
			assert.ErrorIs(t, err, os.ErrExist)
			assert.DirExists(t, src, "source must be left in place")
		})
	}
}

func TestRenameNoReplaceFallback(t *testing.T) {
	dir := t.TempDir()

	src := filepath.Join(dir, "src")
	dst := filepath.Join(dir, "dst")
	err := os.WriteFile(src, []byte("source"), 0o644)
	require.NoError(t, err)
	err = os.WriteFile(dst, []byte("existing"), 0o644)
	require.NoError(t, err)

	err = renameNoReplaceFallback(src, dst)
	assert.ErrorIs(t, err, os.ErrExist)

	err = os.Remove(dst)
	require.NoError(t, err)
	err = renameNoReplaceFallback(src, dst)
	require.NoError(t, err)
	assert.FileExists(t, dst)
}

func TestIsDir(t *testing.T) {
	dir := t.TempDir()

	err := os.Mkdir(filepath.Join(dir, "dir"), 0o755)
	require.NoError(t, err)
	err = os.WriteFile(filepath.Join(dir, "file"), nil, 0o644)
	require.NoError(t, err)
	err = os.Symlink("dir", filepath.Join(dir, "link"))
	require.NoError(t, err)

	for _, test := range []struct {
		path   string
		expect bool
	}{
		{"dir", true},
		{"file", false},
		{"link", false},
		{"missing", false},
	} {
		isDir, err := IsDir(Default, filepath.Join(dir, test.path))
		require.NoErrorf(t, err, "IsDir(%q)", test.path)
		assert.Equalf(t, test.expect, isDir, "IsDir(%q)", test.path)
	}

	exists, err := Exists(Default, filepath.Join(dir, "link"))
	require.NoError(t, err)
	assert.True(t, exists, "symlinks exist even if they are not directories")

	exists, err = Exists(Default, filepath.Join(dir, "missing"))
	require.NoError(t, err)
	assert.False(t, exists)
}
