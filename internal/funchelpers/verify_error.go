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

// Package funchelpers has helpers for functions which are usually deferred.
package funchelpers

import (
	"io"

	"github.com/unnest/unnest/internal/assert"
)

// VerifyError calls fn and, if it fails, stores its error in *Err unless an
// earlier error is already there. It is meant to be deferred in functions
// with a named error return, so that errors from cleanup functions such as
// Unlock are not silently dropped:
//
//	func run() (Err error) {
//		lock, err := runlock.Acquire("", root)
//		if err != nil {
//			return err
//		}
//		defer funchelpers.VerifyError(&Err, lock.Unlock)
//		...
//	}
func VerifyError(Err *error, fn func() error) {
	assert.Assert(Err != nil, "VerifyError called with a nil error slot")
	if err := fn(); err != nil && *Err == nil {
		*Err = err
	}
}

// VerifyClose is VerifyError for an [io.Closer].
func VerifyClose(Err *error, closer io.Closer) {
	VerifyError(Err, closer.Close)
}
