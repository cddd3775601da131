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

// Package collapse implements the flattening of redundantly nested
// directories. A directory whose parent has the same name ("photos/photos")
// has its contents merged into the parent and is then removed, and this is
// repeated up the chain of same-named ancestors.
//
// The work is split into two stages. [Plan] enumerates every directory under
// a root ordered deepest-first, and an [Engine] consumes that plan and
// performs the merges, resolving collisions according to a [MergePolicy].
// All filesystem access goes through a [fseval.FsEval] and all logging
// through the [log.Interface] the Engine was constructed with.
package collapse
