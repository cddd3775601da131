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

// Result summarises what a run of an [Engine] did to the tree.
type Result struct {
	// Chains is the number of planned directories which had a same-named
	// parent, and thus started a collapse.
	Chains int `json:"chains"`

	// FilesMoved is the number of non-directory entries (including symlinks)
	// which were renamed into a parent directory.
	FilesMoved int `json:"files_moved"`

	// DirsMoved is the number of directories which were renamed (together
	// with their entire contents) into a parent directory.
	DirsMoved int `json:"dirs_moved"`

	// DirsRemoved is the number of collapsed directories which were removed
	// after their contents had been merged upwards.
	DirsRemoved int `json:"dirs_removed"`

	// Overwritten is the number of destination entries which were replaced
	// under [PolicyOverwrite].
	Overwritten int `json:"overwritten"`

	// Orphaned lists the entries which were skipped under [PolicySkip] and are
	// still present in the tree, at their final location.
	Orphaned []string `json:"orphaned,omitempty"`

	// Discarded lists the entries which were skipped under [PolicySkip] but
	// were then removed together with the collapsed directory they had been
	// left in, because that directory contained no files of its own.
	Discarded []string `json:"discarded,omitempty"`
}

// Changed returns whether the run modified the filesystem at all.
func (r *Result) Changed() bool {
	return r.FilesMoved+r.DirsMoved+r.DirsRemoved+r.Overwritten > 0
}
