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

// Package folding normalizes text extracted from dictionary sources so that it
// can be stored in the index and searched.
package folding

import (
	"unicode"
	"unicode/utf8"

	"golang.org/x/text/transform"
)

// Whitespace collapses runs of whitespace in the input into a single ASCII
// space and drops leading and trailing whitespace. Text pulled out of XML
// elements keeps the source's indentation and line breaks, which is noise in
// an index record.
type Whitespace struct {
	// seenText is set once a non-space rune has been written.
	seenText bool

	// pending is set while inside a whitespace run that follows text.
	pending bool
}

// Transform implements [transform.Transformer.Transform].
func (w *Whitespace) Transform(dst, src []byte, atEOF bool) (int, int, error) {
	var nDst, nSrc int
	for nSrc < len(src) {
		if !atEOF && !utf8.FullRune(src[nSrc:]) {
			return nDst, nSrc, transform.ErrShortSrc
		}
		r, size := utf8.DecodeRune(src[nSrc:])

		if unicode.IsSpace(r) {
			w.pending = w.seenText
			nSrc += size
			continue
		}

		need := utf8.RuneLen(r)
		if need < 0 {
			// Invalid UTF-8 is written as the replacement rune.
			need = utf8.RuneLen(utf8.RuneError)
		}
		if w.pending {
			need++
		}
		if nDst+need > len(dst) {
			return nDst, nSrc, transform.ErrShortDst
		}

		if w.pending {
			dst[nDst] = ' '
			nDst++
			w.pending = false
		}
		nDst += utf8.EncodeRune(dst[nDst:], r)
		nSrc += size
		w.seenText = true
	}

	return nDst, nSrc, nil
}

// Reset implements [transform.Transformer.Reset].
func (w *Whitespace) Reset() {
	*w = Whitespace{}
}

// FoldWhitespace applies [Whitespace] to s.
func FoldWhitespace(s string) string {
	out, _, err := transform.String(&Whitespace{}, s)
	if err != nil {
		return s
	}
	return out
}
