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
	"fmt"
	"strings"
)

// MergePolicy decides what happens to an entry being merged into its parent
// directory when the destination path is already occupied. The same policy
// applies to files and directories.
type MergePolicy int

const (
	// PolicySkip leaves the colliding entry where it is. Skipped entries are
	// reported in [Result.Orphaned] (or [Result.Discarded] if they were later
	// removed together with the directory they were left in).
	PolicySkip MergePolicy = iota

	// PolicyOverwrite removes the existing destination and moves the entry
	// over it.
	PolicyOverwrite

	// PolicyError aborts the whole run with [ErrDestinationExists].
	PolicyError
)

var policyNames = map[MergePolicy]string{
	PolicySkip:      "skip",
	PolicyOverwrite: "overwrite",
	PolicyError:     "error",
}

// String returns the name used for the policy on the command-line.
func (p MergePolicy) String() string {
	if name, ok := policyNames[p]; ok {
		return name
	}
	return fmt.Sprintf("MergePolicy(%d)", int(p))
}

func (p MergePolicy) valid() bool {
	_, ok := policyNames[p]
	return ok
}

// ParseMergePolicy parses the name of a merge policy (case-insensitive).
func ParseMergePolicy(name string) (MergePolicy, error) {
	for policy, policyName := range policyNames {
		if strings.EqualFold(name, policyName) {
			return policy, nil
		}
	}
	return 0, fmt.Errorf("unknown merge policy %q (must be one of skip, overwrite, error)", name)
}

// Set implements the flag value interface, so a *MergePolicy can be used
// directly as a cli.GenericFlag value.
func (p *MergePolicy) Set(name string) error {
	policy, err := ParseMergePolicy(name)
	if err != nil {
		return err
	}
	*p = policy
	return nil
}
