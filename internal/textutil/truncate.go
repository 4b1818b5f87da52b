// Copyright 2025 Ian Lewis
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//      http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package textutil

// Ellipsis is appended to truncated text.
const Ellipsis = "…"

// Truncate returns the first maxLen runes of text followed by an ellipsis.
// Text that already fits is returned unchanged.
func Truncate(text string, maxLen int) string {
	if maxLen < 0 {
		maxLen = 0
	}

	n := 0
	for i := range text {
		if n == maxLen {
			return text[:i] + Ellipsis
		}
		n++
	}
	return text
}
