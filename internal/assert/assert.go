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

// Package assert contains panicking checks for conditions which can only be
// violated by a programming error in unnest itself.
package assert

import "fmt"

// Assert panics with msg if predicate is false.
func Assert(predicate bool, msg any) {
	if !predicate {
		panic(msg)
	}
}

// Assertf is like Assert, but the panic value is msg formatted with args
// using [fmt.Sprintf]. The message is only formatted if predicate is false.
func Assertf(predicate bool, msg string, args ...any) {
	if !predicate {
		panic(fmt.Sprintf(msg, args...))
	}
}
