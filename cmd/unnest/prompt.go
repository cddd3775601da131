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

package main

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strings"
)

const rootPrompt = "Enter the root directory path: "

// promptRoot asks for the root directory on w and reads a single line from r.
// Running out of input before a newline is not an error, the (possibly empty)
// partial line is returned instead.
func promptRoot(r io.Reader, w io.Writer) (string, error) {
	if _, err := fmt.Fprint(w, rootPrompt); err != nil {
		return "", fmt.Errorf("write prompt: %w", err)
	}
	line, err := bufio.NewReader(r).ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return "", fmt.Errorf("read root directory path: %w", err)
	}
	return strings.TrimSpace(line), nil
}
