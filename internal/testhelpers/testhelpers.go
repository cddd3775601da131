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

// Package testhelpers provides fixtures for unnest's test suite. Nothing in
// this package is used by a non-test unnest binary.
package testhelpers

import (
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vbatts/go-mtree"
)

// MakeTree creates the given entries under root. Entries ending in "/" are
// directories, everything else is a file whose contents are its own path.
// Missing parent directories are created as needed.
func MakeTree(t *testing.T, root string, entries ...string) {
	t.Helper()
	for _, entry := range entries {
		path := filepath.Join(root, filepath.FromSlash(entry))
		if strings.HasSuffix(entry, "/") {
			err := os.MkdirAll(path, 0o755)
			require.NoErrorf(t, err, "mkdir %s", entry)
			continue
		}
		err := os.MkdirAll(filepath.Dir(path), 0o755)
		require.NoErrorf(t, err, "mkdir parent of %s", entry)
		err = os.WriteFile(path, []byte(entry), 0o644)
		require.NoErrorf(t, err, "write %s", entry)
	}
}

// ListTree is the inverse of MakeTree: it returns every entry under root in
// lexical order. Directories are suffixed by "/", symlinks by "@" and their
// target, and files by "=" and their contents.
func ListTree(t *testing.T, root string) []string {
	t.Helper()
	var entries []string
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil || path == root {
			return err
		}
		rel, err := filepath.Rel(root, path)
		if err != nil {
			return err
		}
		rel = filepath.ToSlash(rel)
		switch {
		case d.IsDir():
			entries = append(entries, rel+"/")
		case d.Type()&fs.ModeSymlink != 0:
			target, err := os.Readlink(path)
			if err != nil {
				return err
			}
			entries = append(entries, rel+"@"+target)
		default:
			contents, err := os.ReadFile(path)
			if err != nil {
				return err
			}
			entries = append(entries, rel+"="+string(contents))
		}
		return nil
	})
	require.NoError(t, err, "list tree")
	return entries
}

// AssertTree checks that ListTree(root) matches want.
func AssertTree(t *testing.T, root string, want []string) {
	t.Helper()
	if diff := cmp.Diff(want, ListTree(t, root)); diff != "" {
		t.Errorf("unexpected tree under %s (-want +got):\n%s", root, diff)
	}
}

// MtreeSnapshot returns a manifest of root including file digests, for use
// with AssertUnchanged.
func MtreeSnapshot(t *testing.T, root string) *mtree.DirectoryHierarchy {
	t.Helper()
	dh, err := mtree.Walk(root, nil, append(mtree.DefaultKeywords, "sha256digest"), nil)
	require.NoError(t, err, "mtree walk")
	return dh
}

// AssertUnchanged checks that root still matches the snapshot.
func AssertUnchanged(t *testing.T, root string, snapshot *mtree.DirectoryHierarchy) {
	t.Helper()
	postDh, err := mtree.Walk(root, nil, snapshot.UsedKeywords(), nil)
	require.NoError(t, err, "mtree walk")
	diffs, err := mtree.Compare(snapshot, postDh, snapshot.UsedKeywords())
	require.NoError(t, err, "mtree compare")
	assert.Empty(t, diffs, "tree should not have been modified")
}
