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

package unnest

import "errors"

var (
	// ErrEmptyRoot is returned if no root directory was provided.
	ErrEmptyRoot = errors.New("no root directory provided")

	// ErrRootNotFound is returned if the root directory does not exist.
	ErrRootNotFound = errors.New("root directory does not exist")

	// ErrRootNotDirectory is returned if the root exists but is not a
	// directory.
	ErrRootNotDirectory = errors.New("root is not a directory")
)
