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

package folding

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestFoldWhitespace(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{
			name:     "empty",
			input:    "",
			expected: "",
		},
		{
			name:     "only whitespace",
			input:    " \n\t ",
			expected: "",
		},
		{
			name:     "leading and trailing",
			input:    "  Feuer \n",
			expected: "Feuer",
		},
		{
			name:     "internal spans",
			input:    "Feuer,\n\t  Herd",
			expected: "Feuer, Herd",
		},
		{
			name:     "multibyte",
			input:    "foc  încins",
			expected: "foc încins",
		},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			t.Parallel()

			if diff := cmp.Diff(test.expected, FoldWhitespace(test.input)); diff != "" {
				t.Fatalf("FoldWhitespace (-want, +got):\n%s", diff)
			}
		})
	}
}

func TestSimplify(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{
			name:     "empty",
			input:    "",
			expected: "",
		},
		{
			name:     "ascii",
			input:    "Focus",
			expected: "focus",
		},
		{
			name:     "romanian diacritics",
			input:    "Înțeleg",
			expected: "inteleg",
		},
		{
			name:     "precomposed and combining",
			input:    "áță",
			expected: "ata",
		},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			t.Parallel()

			if diff := cmp.Diff(test.expected, Simplify(test.input)); diff != "" {
				t.Fatalf("Simplify (-want, +got):\n%s", diff)
			}
		})
	}
}
