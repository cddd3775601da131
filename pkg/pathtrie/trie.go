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

// Package pathtrie provides a path-keyed trie, used to keep track of sets of
// paths that need to be re-keyed or dropped as whole subtrees when the
// directories containing them are renamed or removed.
package pathtrie

import (
	"maps"
	"path/filepath"
	"slices"
	"strings"
)

type trieNode[V any] struct {
	value    *V
	children map[string]*trieNode[V]
}

func newNode[V any]() *trieNode[V] {
	return &trieNode[V]{
		value:    nil,
		children: map[string]*trieNode[V]{},
	}
}

type pathKey string

// pathToKey converts a path to the key used for lookups. Relative and
// absolute paths with the same components map to the same key, so callers
// must consistently use one form.
func pathToKey(path string) pathKey {
	path = filepath.Clean(string(filepath.Separator) + path)
	path = strings.TrimPrefix(path, string(filepath.Separator))
	return pathKey(filepath.ToSlash(path))
}

// lookupNode looks up the node at the given path. If alloc is set then any
// missing nodes are created.
func (root *trieNode[V]) lookupNode(path pathKey, alloc bool) *trieNode[V] {
	if path == "" {
		return root
	}
	top, remaining, _ := strings.Cut(string(path), "/")

	next, exists := root.children[top]
	if !exists && alloc {
		next = newNode[V]()
		root.children[top] = next
		exists = true
	}
	if !exists {
		return nil
	}
	return next.lookupNode(pathKey(remaining), alloc)
}

func (root *trieNode[V]) count() int {
	n := 0
	if root.value != nil {
		n++
	}
	for _, child := range root.children {
		n += child.count()
	}
	return n
}

// PathTrie maps cleaned paths to values.
type PathTrie[V any] struct {
	root *trieNode[V]
}

// NewTrie returns a new empty [PathTrie].
func NewTrie[V any]() *PathTrie[V] {
	return &PathTrie[V]{root: newNode[V]()}
}

// Len returns the number of paths with a value in the trie.
func (t *PathTrie[V]) Len() int {
	return t.root.count()
}

// Get looks up the given path in the trie. Completely non-existent paths and
// paths with no value (such as intermediate paths) are considered the same.
func (t *PathTrie[V]) Get(path string) (val V, found bool) {
	node := t.root.lookupNode(pathToKey(path), false)
	if node != nil && node.value != nil {
		return *node.value, true
	}
	return val, false
}

// Set adds a new value to the trie at the given path. If there was a value at
// the given path, the old value is returned and found will be true.
func (t *PathTrie[V]) Set(path string, value V) (old V, found bool) {
	node := t.root.lookupNode(pathToKey(path), true)
	if node.value != nil {
		old = *node.value
		found = true
	}
	node.value = &value
	return old, found
}

// detach unlinks the node at path (and everything below it) from the trie and
// returns it. nil is returned if there is no such node.
func (t *PathTrie[V]) detach(path string) *trieNode[V] {
	key := pathToKey(path)
	if key == "" {
		old := t.root
		t.root = newNode[V]()
		return old
	}
	dir, file := filepath.Split(filepath.Clean(path))
	parent := t.root.lookupNode(pathToKey(dir), false)
	if parent == nil {
		return nil
	}
	child, ok := parent.children[file]
	if !ok {
		return nil
	}
	delete(parent.children, file)
	return child
}

// DeleteAll removes the entry at the given path and all child entries. If
// there was a value at the given path, the old value is returned and found
// will be true.
func (t *PathTrie[V]) DeleteAll(path string) (old V, found bool) {
	node := t.detach(path)
	if node != nil && node.value != nil {
		old, found = *node.value, true
	}
	return old, found
}

// Move re-keys the entry at oldPath and all of its children so that they live
// under newPath instead, mirroring a rename(2) of a directory. Any entries
// previously stored at or under newPath are replaced. It returns the number of
// values that were moved.
func (t *PathTrie[V]) Move(oldPath, newPath string) int {
	node := t.detach(oldPath)
	if node == nil {
		return 0
	}
	t.detach(newPath)

	newKey := pathToKey(newPath)
	if newKey == "" {
		t.root = node
		return node.count()
	}
	dir, file := filepath.Split(filepath.Clean(newPath))
	parent := t.root.lookupNode(pathToKey(dir), true)
	parent.children[file] = node
	return node.count()
}

// WalkFunc is the callback function called by [WalkFrom].
type WalkFunc[V any] func(path string, value V) error

func walk[V any](current *trieNode[V], path string, walkFn WalkFunc[V]) error {
	if current.value != nil {
		if err := walkFn(path, *current.value); err != nil {
			return err
		}
	}
	for _, name := range slices.Sorted(maps.Keys(current.children)) {
		if err := walk(current.children[name], filepath.Join(path, name), walkFn); err != nil {
			return err
		}
	}
	return nil
}

// WalkFrom does a pre-order walk of the trie starting at the given path.
// Children are visited in lexical order, so the order of the walk is stable.
// The paths passed to walkFn are joined onto the cleaned path argument.
func (t *PathTrie[V]) WalkFrom(path string, walkFn WalkFunc[V]) error {
	node := t.root.lookupNode(pathToKey(path), false)
	if node != nil {
		return walk(node, filepath.Clean(path), walkFn)
	}
	return nil
}
