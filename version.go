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

import (
	"fmt"
	"runtime/debug"
)

// Version is the version of unnest. At release time, this is updated to
// the released version.
const Version = "0.2.0+dev"

// gitCommit is filled in by the build system with -ldflags "-X ...".
var gitCommit = ""

// FullVersion returns the version of unnest including the commit it was
// built from (if known).
func FullVersion() string {
	commit := gitCommit
	if commit == "" {
		if info, ok := debug.ReadBuildInfo(); ok {
			for _, setting := range info.Settings {
				if setting.Key == "vcs.revision" {
					commit = setting.Value
				}
			}
		}
	}
	if commit == "" {
		return Version
	}
	return fmt.Sprintf("%s~git%s", Version, commit)
}
