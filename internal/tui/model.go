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

// Package tui implements the terminal dictionary browser.
package tui

import (
	"context"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/ianlewis/go-dictview"
	"github.com/ianlewis/go-dictview/entry"
	"github.com/ianlewis/go-dictview/idx"
	"github.com/ianlewis/go-dictview/nav"
	"github.com/ianlewis/go-dictview/search"
)

// suggestionsCloseDelay is how long suggestions stay open after the search
// input loses focus.
const suggestionsCloseDelay = 150 * time.Millisecond

type focus int

const (
	focusSearch focus = iota
	focusFilter
	focusList
	focusEntry
	numFocus
)

// startedMsg reports the result of loading the index.
type startedMsg struct {
	err error
}

// closeSuggestionsMsg closes the suggestions if the search input is still
// blurred. seq identifies the blur that scheduled it.
type closeSuggestionsMsg struct {
	seq int
}

// Model is the root Bubble Tea model.
type Model struct {
	ctx     context.Context //nolint:containedctx // bounds the index load started by Init.
	browser *dictview.Browser
	history *nav.MemoryLocation
	queue   *eventQueue

	width  int
	height int
	ready  bool
	focus  focus

	search          textinput.Model
	suggestions     search.Result
	suggestCursor   int
	showSuggestions bool
	blurSeq         int

	filter textinput.Model
	list   []*idx.Record
	cursor int
	offset int

	indexState idx.State
	indexErr   error
	selected   idx.ID
	content    entry.Content
	entryView  viewport.Model
}

// New returns a Model browsing b. history may be nil, in which case
// back/forward navigation is disabled.
func New(ctx context.Context, b *dictview.Browser, history *nav.MemoryLocation) Model {
	q := newEventQueue()
	b.Subscribe(q.push)

	si := textinput.New()
	si.Prompt = "Search: "
	si.Placeholder = "e.g. foc, feuer, 635..."
	si.Focus()

	fi := textinput.New()
	fi.Prompt = "Filter: "
	fi.Placeholder = "lemma or id"

	return Model{
		ctx:           ctx,
		browser:       b,
		history:       history,
		queue:         q,
		focus:         focusSearch,
		search:        si,
		suggestCursor: -1,
		filter:        fi,
		content:       b.Content(),
		entryView:     viewport.New(0, 0),
	}
}

// Run runs the browser until the user quits or ctx is done.
func Run(ctx context.Context, b *dictview.Browser, history *nav.MemoryLocation) error {
	p := tea.NewProgram(New(ctx, b, history), tea.WithAltScreen(), tea.WithContext(ctx))
	_, err := p.Run()
	return err //nolint:wrapcheck // returned as is to the command.
}

// Init starts loading the index.
func (m Model) Init() tea.Cmd {
	return tea.Batch(m.start(), m.queue.wait(), textinput.Blink)
}

func (m Model) start() tea.Cmd {
	b, ctx := m.browser, m.ctx
	return func() tea.Msg {
		return startedMsg{err: b.Start(ctx)}
	}
}

// Update handles messages and returns the updated model and any commands.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKeyMsg(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.ready = true
		m.layout()
		return m, nil

	case eventsMsg:
		for _, e := range msg {
			m.handleEvent(e)
		}
		return m, m.queue.wait()

	case startedMsg:
		// The outcome arrives as an IndexEvent. Failures stay on screen.
		return m, nil

	case closeSuggestionsMsg:
		if msg.seq == m.blurSeq && m.focus != focusSearch {
			m.showSuggestions = false
			m.suggestCursor = -1
		}
		return m, nil
	}

	var cmd tea.Cmd
	switch m.focus {
	case focusSearch:
		m.search, cmd = m.search.Update(msg)
	case focusFilter:
		m.filter, cmd = m.filter.Update(msg)
	case focusEntry:
		m.entryView, cmd = m.entryView.Update(msg)
	}
	return m, cmd
}

func (m *Model) handleEvent(e dictview.Event) {
	switch e := e.(type) {
	case dictview.IndexEvent:
		m.indexState = e.State
		m.indexErr = e.Err
		if e.State == idx.Ready {
			m.applyFilter()
		}

	case dictview.SelectionEvent:
		m.selected = e.ID
		m.revealSelected()

	case dictview.ContentEvent:
		m.content = e.Content
		m.entryView.SetContent(m.renderContent())

	case dictview.ScrollEvent:
		m.entryView.GotoTop()

	case dictview.SuggestionsEvent:
		if e.Result.Searching && e.Result.Query != m.search.Value() {
			// Superseded by input made after the debounce fired.
			return
		}
		m.suggestions = e.Result
		m.suggestCursor = -1
		m.showSuggestions = e.Result.Searching && m.focus == focusSearch
	}
}

func (m Model) handleKeyMsg(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	key := msg.String()
	if key == "ctrl+c" {
		return m, tea.Quit
	}

	if m.indexState != idx.Ready {
		if key == "q" || key == "esc" {
			return m, tea.Quit
		}
		return m, nil
	}

	switch key {
	case "tab":
		return m.setFocus((m.focus + 1) % numFocus)
	case "shift+tab":
		return m.setFocus((m.focus + numFocus - 1) % numFocus)
	case "alt+left":
		m.back()
		return m, nil
	case "alt+right":
		m.forward()
		return m, nil
	}

	switch m.focus {
	case focusSearch:
		return m.handleSearchKey(msg)
	case focusFilter:
		return m.handleFilterKey(msg)
	case focusList:
		return m.handleListKey(msg)
	default:
		return m.handleEntryKey(msg)
	}
}

func (m Model) setFocus(f focus) (Model, tea.Cmd) {
	var cmds []tea.Cmd
	if m.focus == focusSearch && f != focusSearch {
		m.blurSeq++
		seq := m.blurSeq
		cmds = append(cmds, tea.Tick(suggestionsCloseDelay, func(time.Time) tea.Msg {
			return closeSuggestionsMsg{seq: seq}
		}))
	}

	m.focus = f
	m.search.Blur()
	m.filter.Blur()
	switch f {
	case focusSearch:
		cmds = append(cmds, m.search.Focus())
		if m.suggestions.Searching && len(m.suggestions.Records) > 0 {
			m.showSuggestions = true
		}
	case focusFilter:
		cmds = append(cmds, m.filter.Focus())
	}
	return m, tea.Batch(cmds...)
}

func (m Model) handleSearchKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	n := len(m.suggestions.Records)
	switch msg.String() {
	case "down":
		if m.showSuggestions && n > 0 {
			m.suggestCursor = (m.suggestCursor + 1) % n
		}
		return m, nil
	case "up":
		if m.showSuggestions && n > 0 {
			m.suggestCursor = (m.suggestCursor - 1 + n) % n
		}
		return m, nil
	case "enter":
		if m.showSuggestions && m.suggestCursor >= 0 && m.suggestCursor < n {
			m.pickSuggestion(m.suggestions.Records[m.suggestCursor].ID)
		}
		return m, nil
	case "esc":
		m.showSuggestions = false
		m.suggestCursor = -1
		return m, nil
	}

	before := m.search.Value()
	var cmd tea.Cmd
	m.search, cmd = m.search.Update(msg)
	if v := m.search.Value(); v != before {
		m.suggestCursor = -1
		m.browser.SetQuery(v)
	}
	return m, cmd
}

func (m *Model) pickSuggestion(id idx.ID) {
	m.search.SetValue("")
	m.suggestions = search.Result{}
	m.showSuggestions = false
	m.suggestCursor = -1
	m.browser.PickSuggestion(id)
}

func (m Model) handleFilterKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "enter", "down":
		return m.setFocus(focusList)
	case "esc":
		m.filter.SetValue("")
		m.applyFilter()
		return m, nil
	}

	before := m.filter.Value()
	var cmd tea.Cmd
	m.filter, cmd = m.filter.Update(msg)
	if m.filter.Value() != before {
		m.applyFilter()
	}
	return m, cmd
}

func (m Model) handleListKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q":
		return m, tea.Quit
	case "/":
		return m.setFocus(focusSearch)
	case "f":
		return m.setFocus(focusFilter)
	case "[":
		m.back()
	case "]":
		m.forward()
	case "j", "down":
		m.moveCursor(1)
	case "k", "up":
		m.moveCursor(-1)
	case "pgdown":
		m.moveCursor(m.listRows())
	case "pgup":
		m.moveCursor(-m.listRows())
	case "g", "home":
		m.moveCursor(-len(m.list))
	case "G", "end":
		m.moveCursor(len(m.list))
	case "enter":
		if m.cursor < len(m.list) {
			m.browser.Select(m.list[m.cursor].ID)
		}
	}
	return m, nil
}

func (m Model) handleEntryKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q":
		return m, tea.Quit
	case "/":
		return m.setFocus(focusSearch)
	case "[":
		m.back()
		return m, nil
	case "]":
		m.forward()
		return m, nil
	}

	var cmd tea.Cmd
	m.entryView, cmd = m.entryView.Update(msg)
	return m, cmd
}

func (m *Model) back() {
	if m.history != nil {
		m.history.Back()
	}
}

func (m *Model) forward() {
	if m.history != nil {
		m.history.Forward()
	}
}

// Selected returns the selected entry id.
func (m Model) Selected() idx.ID {
	return m.selected
}

// List returns the records shown in the index list.
func (m Model) List() []*idx.Record {
	return m.list
}
