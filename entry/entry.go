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

// Package entry loads the content of dictionary entries.
package entry

import (
	"errors"
	"fmt"

	"github.com/k3a/html2text"

	"github.com/ianlewis/go-dictview/idx"
	"github.com/ianlewis/go-dictview/source"
)

// Placeholder is the content shown when no entry is selected.
const Placeholder = `<p class="placeholder">Select an entry from the index or use the search above.</p>`

var (
	// ErrEntryNotFound indicates that an entry has no content resource.
	ErrEntryNotFound = errors.New("entry file not found")

	// ErrEntryLoad indicates that an entry's content could not be loaded.
	ErrEntryLoad = errors.New("loading entry")
)

// State is the display state of entry content.
type State int

const (
	// None means no entry is selected and the placeholder is shown.
	None State = iota

	// Loading means the content is being fetched.
	Loading

	// Ready means the content was fetched.
	Ready

	// Error means the content could not be fetched.
	Error
)

func (s State) String() string {
	switch s {
	case None:
		return "none"
	case Loading:
		return "loading"
	case Ready:
		return "ready"
	case Error:
		return "error"
	default:
		return fmt.Sprintf("State(%d)", int(s))
	}
}

// Content is the displayed content of an entry.
type Content struct {
	// ID is the entry the content belongs to. It is idx.None for the
	// placeholder.
	ID idx.ID

	// HTML is the entry's markup. It comes from the dictionary source and is
	// trusted; it is displayed without sanitization.
	HTML string

	State State

	// Err is set in the Error state. It wraps ErrEntryNotFound or
	// ErrEntryLoad.
	Err error
}

// Message returns a description of the error for display.
func (c Content) Message() string {
	switch {
	case c.Err == nil:
		return ""
	case errors.Is(c.Err, ErrEntryNotFound):
		return fmt.Sprintf("Entry file not found (%s)", source.EntryName(string(c.ID)))
	default:
		var statusErr *source.StatusError
		if errors.As(c.Err, &statusErr) {
			return fmt.Sprintf("HTTP error %d", statusErr.StatusCode)
		}
		return c.Err.Error()
	}
}

// Text renders the content's markup as plain text.
func (c Content) Text() string {
	return html2text.HTML2Text(c.HTML)
}
