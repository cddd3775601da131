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

package assert_test

import (
	"errors"
	"testing"

	testassert "github.com/stretchr/testify/assert"

	"github.com/unnest/unnest/internal/assert"
)

func TestAssert(t *testing.T) {
	for _, test := range []struct {
		name string
		msg  any
	}{
		{"String", "bad merge policy"},
		{"Int", 42},
		{"Error", errors.New("broken invariant")},
	} {
		t.Run(test.name, func(t *testing.T) {
			testassert.NotPanics(t, func() { assert.Assert(true, test.msg) })
			testassert.PanicsWithValue(t, test.msg, func() { assert.Assert(false, test.msg) })
		})
	}
}

func TestAssertf(t *testing.T) {
	testassert.NotPanics(t, func() { assert.Assertf(true, "policy %d %s", 7, "%v") })
	testassert.PanicsWithValue(t, "invalid merge policy MergePolicy(7)", func() {
		assert.Assertf(false, "invalid merge policy MergePolicy(%d)", 7)
	})
}
