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

// Package runlock provides an advisory lock which prevents two unnest
// processes from restructuring the same tree at the same time.
package runlock

import (
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/gofrs/flock"
)

// ErrLocked is returned by [Acquire] if another process holds the lock for
// the same root.
var ErrLocked = errors.New("root directory is locked by another unnest process")

// Lock is a held run lock.
type Lock struct {
	root  string
	flock *flock.Flock
}

// Path returns the path of the lock file.
func (l *Lock) Path() string {
	return l.flock.Path()
}

// Unlock releases the lock. The lock file itself is left in place, since
// removing it would race with other processes opening it.
func (l *Lock) Unlock() error {
	if err := l.flock.Unlock(); err != nil {
		return fmt.Errorf("unlock run lock for %q: %w", l.root, err)
	}
	return nil
}

// Close is an alias for Unlock.
func (l *Lock) Close() error {
	return l.Unlock()
}

// LockPath returns the lock file used for root inside lockDir. root must be
// absolute.
func LockPath(lockDir, root string) string {
	sum := sha256.Sum256([]byte(filepath.Clean(root)))
	return filepath.Join(lockDir, "unnest-"+hex.EncodeToString(sum[:8])+".lock")
}

// Acquire takes the run lock for root without blocking. The lock file is kept
// in lockDir (or the system temporary directory if lockDir is empty) so that
// the tree being restructured is never touched.
func Acquire(lockDir, root string) (*Lock, error) {
	if lockDir == "" {
		lockDir = os.TempDir()
	}
	root, err := filepath.Abs(root)
	if err != nil {
		return nil, fmt.Errorf("get absolute path of %q: %w", root, err)
	}

	lock := flock.New(LockPath(lockDir, root))
	locked, err := lock.TryLock()
	if err != nil {
		return nil, fmt.Errorf("acquire run lock %v: %w", lock.Path(), err)
	}
	if !locked {
		return nil, fmt.Errorf("%w: %s (lock file %s)", ErrLocked, root, lock.Path())
	}
	return &Lock{root: root, flock: lock}, nil
}
