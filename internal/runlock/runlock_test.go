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

package runlock

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLockPath(t *testing.T) {
	a := LockPath("/tmp", "/some/root")
	assert.Equal(t, a, LockPath("/tmp", "/some/root/"), "lock path must not depend on trailing slashes")
	assert.NotEqual(t, a, LockPath("/tmp", "/some/other"), "different roots must use different locks")
	assert.Equal(t, "/tmp", filepath.Dir(a))
}

func TestAcquire(t *testing.T) {
	lockDir := t.TempDir()
	root := t.TempDir()

	lock, err := Acquire(lockDir, root)
	require.NoError(t, err, "acquire")
	assert.FileExists(t, lock.Path())

	// flock(2) locks conflict between separate open file descriptions, even
	// within one process.
	_, err = Acquire(lockDir, root)
	assert.ErrorIs(t, err, ErrLocked, "second acquire of the same root")

	other, err := Acquire(lockDir, t.TempDir())
	require.NoError(t, err, "acquire of an unrelated root")
	assert.NoError(t, other.Close())

	require.NoError(t, lock.Unlock(), "unlock")

	lock, err = Acquire(lockDir, root)
	require.NoError(t, err, "acquire after unlock")
	assert.NoError(t, lock.Close())
}

func TestAcquireRelative(t *testing.T) {
	lockDir := t.TempDir()
	root := t.TempDir()
	t.Chdir(root)

	lock, err := Acquire(lockDir, ".")
	require.NoError(t, err, "acquire relative root")
	defer lock.Close() //nolint:errcheck

	_, err = Acquire(lockDir, root)
	assert.ErrorIs(t, err, ErrLocked, "relative and absolute root must share a lock")
}
