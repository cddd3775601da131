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
	"slices"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vbatts/go-mtree"

	"github.com/unnest/unnest/internal/testhelpers"
	"github.com/unnest/unnest/pkg/fseval"
)

func TestDepth(t *testing.T) {
	for _, test := range []struct {
		path  string
		depth int
	}{
		{"a", 0},
		{"a/b", 1},
		{"a/b/", 1},
		{"a//b/./c", 2},
		{"/a/b/c", 3},
	} {
		assert.Equalf(t, test.depth, Depth(filepath.FromSlash(test.path)), "Depth(%q)", test.path)
	}
}

func TestCompareDeepestFirst(t *testing.T) {
	paths := []string{
		"/r/a",
		"/r/bb/c",
		"/r/a/b",
		"/r/zzzzzzzzzz",
		"/r/a/b/c",
		"/r/b/c",
		"/r/a/c",
	}
	for i := range paths {
		paths[i] = filepath.FromSlash(paths[i])
	}

	sorted := slices.Clone(paths)
	slices.SortFunc(sorted, compareDeepestFirst)

	want := []string{
		"/r/a/b/c",
		"/r/bb/c",
		"/r/a/b",
		"/r/a/c",
		"/r/b/c",
		"/r/zzzzzzzzzz",
		"/r/a",
	}
	for i := range want {
		want[i] = filepath.FromSlash(want[i])
	}
	assert.Equal(t, want, sorted, "depth first, then longer paths, then lexical")
}

func TestPlan(t *testing.T) {
	root := t.TempDir()
	testhelpers.MakeTree(t, root,
		"a/",
		"a/b/c/d/",
		"a/b/file",
		"a/very-long-directory-name/",
		"e/f/",
		"g",
	)
	err := os.Symlink("a", filepath.Join(root, "a", "b", "c", "link"))
	require.NoError(t, err)

	initDh, err := mtree.Walk(root, nil, append(mtree.DefaultKeywords, "sha256digest"), nil)
	require.NoError(t, err, "mtree walk")

	plan, err := Plan(fseval.Default, root)
	require.NoError(t, err, "plan")

	var rel []string
	for _, dir := range plan {
		r, err := filepath.Rel(root, dir)
		require.NoError(t, err)
		rel = append(rel, filepath.ToSlash(r))
	}
	assert.Equal(t, []string{
		"a/b/c/d",
		"a/b/c",
		"a/very-long-directory-name",
		"a/b",
		"e/f",
		"a",
		"e",
	}, rel, "plan must list every directory (but no symlinks) deepest first")

	for i := 1; i < len(plan); i++ {
		assert.GreaterOrEqualf(t, Depth(plan[i-1]), Depth(plan[i]),
			"plan entry %q must not be shallower than %q", plan[i-1], plan[i])
	}

	postDh, err := mtree.Walk(root, nil, initDh.UsedKeywords(), nil)
	require.NoError(t, err, "mtree walk")
	diffs, err := mtree.Compare(initDh, postDh, initDh.UsedKeywords())
	require.NoError(t, err, "mtree compare")
	assert.Empty(t, diffs, "planning must not modify the tree")
}

func TestPlanEmpty(t *testing.T) {
	root := t.TempDir()

	plan, err := Plan(fseval.Default, root)
	require.NoError(t, err)
	assert.Empty(t, plan)
}

func TestPlanMissingRoot(t *testing.T) {
	root := filepath.Join(t.TempDir(), "does-not-exist")

	plan, err := Plan(fseval.Default, root)
	require.Error(t, err)
	assert.ErrorIs(t, err, os.ErrNotExist)
	assert.Nil(t, plan)
}
