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

package gen

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
)

// Split splits a combined document into entry documents. An entry starts at a
// line beginning with "<entry " and ends at a line beginning with "</entry>".
// fn is called with each entry's number and document. Lines outside entries
// are ignored.
func Split(r io.Reader, fn func(number string, doc []byte) error) error {
	s := bufio.NewScanner(r)
	s.Buffer(nil, 1<<20)

	var doc strings.Builder
	var number string
	var inEntry bool
	for s.Scan() {
		line := strings.TrimSpace(s.Text())

		switch {
		case strings.HasPrefix(line, "<entry "):
			doc.Reset()
			doc.WriteString(line)
			doc.WriteByte('\n')
			number = attrValue(line, "number")
			inEntry = true
		case strings.HasPrefix(line, "</entry>"):
			if !inEntry {
				continue
			}
			doc.WriteString(line)
			doc.WriteByte('\n')
			inEntry = false
			if number == "" {
				continue
			}
			if err := fn(number, []byte(doc.String())); err != nil {
				return err
			}
		case inEntry:
			doc.WriteString(line)
			doc.WriteByte('\n')
		}
	}
	if err := s.Err(); err != nil {
		return fmt.Errorf("splitting entries: %w", err)
	}
	return nil
}

// attrValue returns the value of a double quoted attribute in a start tag.
func attrValue(tag, name string) string {
	prefix := name + `="`
	i := strings.Index(tag, prefix)
	if i < 0 {
		return ""
	}
	v := tag[i+len(prefix):]
	j := strings.IndexByte(v, '"')
	if j < 0 {
		return ""
	}
	return v[:j]
}

// SplitToDir splits a combined document into entry_<n>.xml files in dir and
// returns the number of entries written.
func SplitToDir(r io.Reader, dir string) (int, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return 0, fmt.Errorf("creating directory: %w", err)
	}

	var n int
	err := Split(r, func(number string, doc []byte) error {
		if strings.ContainsAny(number, `/\`) {
			return fmt.Errorf("invalid entry number %q", number)
		}
		path := filepath.Join(dir, "entry_"+number+".xml")
		if err := os.WriteFile(path, doc, 0o644); err != nil {
			return fmt.Errorf("writing entry: %w", err)
		}
		n++
		return nil
	})
	return n, err
}
