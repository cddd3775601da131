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
	"errors"
	"fmt"
	"io/fs"
	"path/filepath"

	"github.com/apex/log"
	"github.com/apex/log/handlers/discard"
	securejoin "github.com/cyphar/filepath-securejoin"

	"github.com/unnest/unnest/internal/assert"
	"github.com/unnest/unnest/pkg/fseval"
	"github.com/unnest/unnest/pkg/pathtrie"
)

// ErrDestinationExists is returned (wrapped) by [Engine.Run] under
// [PolicyError] when an entry cannot be merged into its parent because the
// destination is already occupied.
var ErrDestinationExists = errors.New("merge destination already exists")

// Options configures an [Engine].
type Options struct {
	// Policy decides how collisions with existing entries in the parent
	// directory are resolved. The zero value is [PolicySkip].
	Policy MergePolicy

	// MergeDirectories causes a directory whose destination is an existing
	// directory to be merged entry-by-entry (recursively) rather than having
	// Policy applied to the directory as a whole.
	MergeDirectories bool
}

type entryKind string

const (
	kindFile      entryKind = "file"
	kindDirectory entryKind = "directory"
)

// Engine collapses same-named directory chains under a root directory. An
// Engine is not safe for concurrent use.
type Engine struct {
	root   string
	fsEval fseval.FsEval
	log    log.Interface
	opts   Options

	// skipped tracks entries left behind under PolicySkip, keyed by their
	// current path. It is kept up to date as directories are moved or
	// removed so that the final result reflects where they ended up.
	skipped *pathtrie.PathTrie[entryKind]
	result  Result
}

// NewEngine creates an Engine operating on the tree rooted at root. Collapses
// never merge root into its own parent. If fsEval is nil the host filesystem
// is used, and if logger is nil nothing is logged.
func NewEngine(root string, fsEval fseval.FsEval, logger log.Interface, opts Options) *Engine {
	assert.Assertf(opts.Policy.valid(), "invalid merge policy %v", opts.Policy)
	if fsEval == nil {
		fsEval = fseval.Default
	}
	if logger == nil {
		logger = &log.Logger{Handler: discard.New(), Level: log.FatalLevel}
	}
	return &Engine{
		root:   filepath.Clean(root),
		fsEval: fsEval,
		log:    logger,
		opts:   opts,
	}
}

// Run processes each directory of the plan in order, collapsing it into its
// parent (and so on up the chain) if it has the same name as its parent. The
// plan should come from [Plan], so that nested chains are collapsed from the
// inside out. Planned directories which no longer exist because an earlier
// collapse moved or removed them are ignored.
//
// Any failing filesystem operation aborts the run immediately, leaving the
// tree in whatever partially collapsed state it reached. The returned Result
// is non-nil even in that case and describes the work done up to the error.
func (e *Engine) Run(plan []string) (_ *Result, Err error) {
	e.skipped = pathtrie.NewTrie[entryKind]()
	e.result = Result{}

	defer e.log.WithFields(log.Fields{
		"root":   e.root,
		"policy": e.opts.Policy,
		"plan":   len(plan),
	}).Trace("collapsing nested directories").Stop(&Err)

	for _, folder := range plan {
		if err := e.collapseChain(filepath.Clean(folder)); err != nil {
			return e.finish(), err
		}
	}
	return e.finish(), nil
}

func (e *Engine) finish() *Result {
	result := e.result
	_ = e.skipped.WalkFrom(e.root, func(path string, _ entryKind) error {
		result.Orphaned = append(result.Orphaned, path)
		return nil
	})
	return &result
}

// collapseChain merges folder into its parent for as long as the two share a
// name, walking up one level after each successful merge.
func (e *Engine) collapseChain(folder string) error {
	isDir, err := fseval.IsDir(e.fsEval, folder)
	if err != nil {
		return fmt.Errorf("inspect planned directory %q: %w", folder, err)
	}
	if !isDir {
		e.log.WithField("folder", folder).Debug("planned directory is gone, skipping")
		return nil
	}

	started := false
	for folder != e.root {
		parent := filepath.Dir(folder)
		if filepath.Base(parent) != filepath.Base(folder) {
			break
		}
		parentIsDir, err := fseval.IsDir(e.fsEval, parent)
		if err != nil {
			return fmt.Errorf("inspect parent directory %q: %w", parent, err)
		}
		if !parentIsDir {
			break
		}
		if !started {
			e.result.Chains++
			started = true
		}

		removed, err := e.collapse(folder, parent)
		if err != nil {
			return err
		}
		if !removed {
			// Moving the parent's contents up while the retained folder is
			// still inside it would merge folder into itself.
			break
		}
		folder = parent
	}
	return nil
}

// collapse merges the contents of folder into parent and removes folder if it
// no longer directly contains any files. It returns whether folder was
// removed.
func (e *Engine) collapse(folder, parent string) (bool, error) {
	e.log.WithFields(log.Fields{
		"folder": folder,
		"parent": parent,
	}).Info("collapsing directory into same-named parent")

	if err := e.relocate(folder, parent, folder); err != nil {
		return false, err
	}

	hasFiles, err := e.hasDirectFiles(folder)
	if err != nil {
		return false, err
	}
	if hasFiles {
		e.log.WithField("folder", folder).Info("directory still contains files, keeping it")
		return false, nil
	}

	if err := e.fsEval.RemoveAll(folder); err != nil {
		return false, fmt.Errorf("remove collapsed directory %q: %w", folder, err)
	}
	e.result.DirsRemoved++
	e.log.WithField("folder", folder).Debug("removed folder")
	e.discard(folder)
	return true, nil
}

// hasDirectFiles returns whether dir has any immediate non-directory entries.
// Subdirectories (and whatever they contain) are not considered.
func (e *Engine) hasDirectFiles(dir string) (bool, error) {
	entries, err := e.fsEval.ReadDir(dir)
	if err != nil {
		return false, fmt.Errorf("list collapsed directory %q: %w", dir, err)
	}
	for _, ent := range entries {
		if !ent.IsDir() {
			return true, nil
		}
	}
	return false, nil
}

// relocate moves every entry of srcDir to the same name inside dstDir. folder
// is the directory whose collapse caused the relocation.
func (e *Engine) relocate(srcDir, dstDir, folder string) error {
	entries, err := e.fsEval.ReadDir(srcDir)
	if err != nil {
		return fmt.Errorf("list directory %q: %w", srcDir, err)
	}

	// The destination directory must not be able to escape the root, even if
	// it was swapped for a symlink behind our back.
	rel, err := filepath.Rel(e.root, dstDir)
	if err != nil {
		return fmt.Errorf("compute destination %q relative to root: %w", dstDir, err)
	}
	scopedDir, err := securejoin.SecureJoinVFS(e.root, rel, e.fsEval)
	if err != nil {
		return fmt.Errorf("resolve destination %q: %w", dstDir, err)
	}

	for _, ent := range entries {
		src := filepath.Join(srcDir, ent.Name())
		dst := filepath.Join(scopedDir, ent.Name())
		kind := kindFile
		if ent.IsDir() {
			kind = kindDirectory
		}

		if dst == folder {
			// A same-named child which was kept during an earlier collapse
			// would have to be moved onto the directory being emptied.
			e.skip(src, dst, kind)
			continue
		}
		if err := e.relocateEntry(src, dst, kind, folder); err != nil {
			return err
		}
	}
	return nil
}

func (e *Engine) relocateEntry(src, dst string, kind entryKind, folder string) error {
	dstInfo, err := e.fsEval.Lstat(dst)
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("inspect merge destination %q: %w", dst, err)
	}
	if dstInfo == nil {
		if err := e.fsEval.RenameNoReplace(src, dst); err != nil {
			return fmt.Errorf("move %s %q to %q: %w", kind, src, dst, err)
		}
		e.moved(src, dst, kind)
		return nil
	}

	if kind == kindDirectory && dstInfo.IsDir() && e.opts.MergeDirectories {
		return e.relocate(src, dst, folder)
	}

	switch e.opts.Policy {
	case PolicySkip:
		e.skip(src, dst, kind)
		return nil
	case PolicyError:
		return fmt.Errorf("move %s %q to %q: %w", kind, src, dst, ErrDestinationExists)
	case PolicyOverwrite:
		if kind == kindFile && !dstInfo.IsDir() {
			// rename(2) atomically replaces non-directories.
			if err := e.fsEval.Rename(src, dst); err != nil {
				return fmt.Errorf("overwrite %q with %s %q: %w", dst, kind, src, err)
			}
		} else {
			if err := e.fsEval.RemoveAll(dst); err != nil {
				return fmt.Errorf("remove overwritten destination %q: %w", dst, err)
			}
			e.discard(dst)
			if err := e.fsEval.RenameNoReplace(src, dst); err != nil {
				return fmt.Errorf("move %s %q to %q: %w", kind, src, dst, err)
			}
		}
		e.result.Overwritten++
		e.log.WithField("dst", dst).Debug("overwrote existing entry")
		e.moved(src, dst, kind)
		return nil
	}
	assert.Assertf(false, "unhandled merge policy %v", e.opts.Policy)
	return nil
}

func (e *Engine) moved(src, dst string, kind entryKind) {
	fields := log.Fields{"src": src, "dst": dst}
	switch kind {
	case kindDirectory:
		e.result.DirsMoved++
		e.skipped.Move(src, dst)
		e.log.WithFields(fields).Debug("moved folder")
	default:
		e.result.FilesMoved++
		e.log.WithFields(fields).Debug("moved file")
	}
}

func (e *Engine) skip(src, dst string, kind entryKind) {
	e.skipped.Set(src, kind)
	e.log.WithFields(log.Fields{
		"src":    src,
		"dst":    dst,
		"kind":   kind,
		"policy": e.opts.Policy,
	}).Debug("destination exists, skipping")
}

// discard moves any skipped entries at or below path (which has just been
// removed) to the discarded list.
func (e *Engine) discard(path string) {
	_ = e.skipped.WalkFrom(path, func(skippedPath string, kind entryKind) error {
		e.result.Discarded = append(e.result.Discarded, skippedPath)
		e.log.WithFields(log.Fields{
			"path": skippedPath,
			"kind": kind,
		}).Debug("skipped entry was removed along with its collapsed parent")
		return nil
	})
	e.skipped.DeleteAll(path)
}
