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

package dictview

import (
	"github.com/ianlewis/go-dictview/entry"
	"github.com/ianlewis/go-dictview/idx"
	"github.com/ianlewis/go-dictview/search"
)

// Event is a change published by a Browser.
type Event interface {
	isEvent()
}

// IndexEvent is published when the index finishes loading or fails.
type IndexEvent struct {
	State   idx.State
	Err     error
	Entries int
}

// SelectionEvent is published when the selected entry changes.
type SelectionEvent struct {
	ID idx.ID
}

// ContentEvent is published when the displayed entry content changes.
type ContentEvent struct {
	Content entry.Content
}

// SuggestionsEvent is published when new suggestions are available. A zero
// Result means suggestions were dismissed.
type SuggestionsEvent struct {
	Result search.Result
}

// ScrollEvent asks the display to bring the loaded entry into view.
type ScrollEvent struct {
	ID idx.ID
}

func (IndexEvent) isEvent()       {}
func (SelectionEvent) isEvent()   {}
func (ContentEvent) isEvent()     {}
func (SuggestionsEvent) isEvent() {}
func (ScrollEvent) isEvent()      {}
