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

package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"

	"github.com/ianlewis/go-dictview/entry"
	"github.com/ianlewis/go-dictview/idx"
	"github.com/ianlewis/go-dictview/internal/textutil"
)

const (
	minListWidth = 24

	// suggestionDefinitionLen is the number of definition characters shown
	// in a suggestion.
	suggestionDefinitionLen = 60
)

// layout sizes the components after the window size changed.
func (m *Model) layout() {
	lw := m.listWidth()
	m.search.Width = max(1, m.width-runewidth.StringWidth(m.search.Prompt)-1)
	m.filter.Width = max(1, lw-runewidth.StringWidth(m.filter.Prompt)-1)

	m.entryView.Width = max(1, m.width-lw-1)
	m.entryView.Height = max(1, m.bodyHeight())
	m.entryView.SetContent(m.renderContent())
	m.ensureVisible()
}

func (m Model) listWidth() int {
	return min(max(minListWidth, m.width/4), m.width)
}

// bodyHeight is the height below the title and the search input and above
// the status bar.
func (m Model) bodyHeight() int {
	return m.height - 3
}

// listRows is the number of list rows that fit below the filter input and
// the list heading.
func (m Model) listRows() int {
	return max(1, m.bodyHeight()-2)
}

func (m *Model) applyFilter() {
	m.list = m.browser.Filter(m.filter.Value())
	m.cursor = 0
	m.offset = 0
	m.revealSelected()
}

// revealSelected moves the cursor to the selected entry if it is listed.
func (m *Model) revealSelected() {
	if m.selected == idx.None {
		return
	}
	for i, r := range m.list {
		if r.ID == m.selected {
			m.cursor = i
			m.ensureVisible()
			return
		}
	}
}

func (m *Model) moveCursor(delta int) {
	if len(m.list) == 0 {
		return
	}
	m.cursor = min(max(m.cursor+delta, 0), len(m.list)-1)
	m.ensureVisible()
}

// ensureVisible adjusts the scroll offset so the cursor row is visible.
func (m *Model) ensureVisible() {
	rows := m.listRows()
	if m.cursor < m.offset {
		m.offset = m.cursor
	}
	if m.cursor >= m.offset+rows {
		m.offset = m.cursor - rows + 1
	}
	m.offset = max(0, min(m.offset, len(m.list)-rows))
}

func (m Model) renderContent() string {
	var text string
	switch m.content.State {
	case entry.Loading:
		text = mutedStyle.Render("Loading entry...")
	case entry.Error:
		text = errorStyle.Render(headingStyle.Render("Error Loading Entry") + "\n" + m.content.Message())
	default:
		text = m.content.Text()
	}
	if m.entryView.Width > 0 {
		text = lipgloss.NewStyle().Width(m.entryView.Width).Render(text)
	}
	return text
}

// View renders the UI.
func (m Model) View() string {
	if !m.ready {
		return "Loading..."
	}

	title := titleStyle.Render("dictview")
	switch m.indexState {
	case idx.Pending:
		return title + "\n\n" + mutedStyle.Render("Loading dictionary data...")
	case idx.Failed:
		msg := headingStyle.Render("Error Loading Index Data")
		if m.indexErr != nil {
			msg += "\n" + m.indexErr.Error()
		}
		return title + "\n\n" + errorStyle.Width(min(m.width-2, 80)).Render(msg)
	}

	title += mutedStyle.Render(fmt.Sprintf(" %d entries", len(m.browser.Records())))

	body := lipgloss.JoinHorizontal(lipgloss.Top,
		lipgloss.NewStyle().Width(m.listWidth()).Height(m.bodyHeight()).Render(m.renderList()),
		separatorStyle.Render(strings.Repeat("│\n", max(1, m.bodyHeight()-1))+"│"),
		m.entryView.View(),
	)

	if m.showSuggestions {
		body = overlay(body, m.renderSuggestions())
	}

	return strings.Join([]string{
		title,
		m.search.View(),
		body,
		m.renderStatusBar(),
	}, "\n")
}

// overlay draws the lines of top over the first lines of base.
func overlay(base string, top []string) string {
	lines := strings.Split(base, "\n")
	for i, l := range top {
		if i >= len(lines) {
			lines = append(lines, l)
			continue
		}
		lines[i] = l
	}
	return strings.Join(lines, "\n")
}

func (m Model) renderList() string {
	w := m.listWidth()
	lines := []string{m.filter.View(), headingStyle.Render("Index")}

	if len(m.list) == 0 {
		msg := "Loading index..."
		if len(m.browser.Records()) > 0 {
			msg = "No matching entries in index."
		}
		lines = append(lines, mutedStyle.Width(w).Render(msg))
		return strings.Join(lines, "\n")
	}

	end := min(m.offset+m.listRows(), len(m.list))
	for i := m.offset; i < end; i++ {
		r := m.list[i]
		prefix := "  "
		if m.focus == focusList && i == m.cursor {
			prefix = "> "
		}
		line := runewidth.Truncate(prefix+r.Title(), w, textutil.Ellipsis)

		switch {
		case r.ID == m.selected:
			line = activeItemStyle.Render(line)
		case m.focus == focusList && i == m.cursor:
			line = cursorItemStyle.Render(line)
		default:
			line = normalItemStyle.Render(line)
		}
		lines = append(lines, line)
	}
	return strings.Join(lines, "\n")
}

// SuggestionLine formats a suggestion as "#<id> <lemma> <definition>" with the
// definition truncated.
func SuggestionLine(r *idx.Record) string {
	lemma := r.Lemma
	if lemma == "" {
		lemma = "[No Lemma]"
	}
	line := fmt.Sprintf("#%s %s", r.ID, lemma)
	if d := textutil.Truncate(r.Definition, suggestionDefinitionLen); d != "" {
		line += "  " + d
	}
	return line
}

func (m Model) renderSuggestions() []string {
	w := max(1, m.width)
	pad := func(s string) string {
		s = runewidth.Truncate(s, w, textutil.Ellipsis)
		return runewidth.FillRight(s, w)
	}

	if len(m.suggestions.Records) == 0 {
		return []string{suggestionStyle.Render(pad("No matching entries found."))}
	}

	lines := make([]string, 0, len(m.suggestions.Records))
	for i, r := range m.suggestions.Records {
		style := suggestionStyle
		if i == m.suggestCursor {
			style = focusedSuggestionStyle
		}
		lines = append(lines, style.Render(pad(SuggestionLine(r))))
	}
	return lines
}

func (m Model) renderStatusBar() string {
	var hints string
	switch m.focus {
	case focusSearch:
		hints = "↑/↓ choose  enter open  esc close  tab next"
	case focusFilter:
		hints = "enter list  esc clear  tab next"
	case focusList:
		hints = "↑/↓ move  enter open  / search  f filter  [/] back/forward  q quit"
	case focusEntry:
		hints = "↑/↓ scroll  / search  [/] back/forward  q quit"
	}
	if m.selected != idx.None {
		hints = "#" + string(m.selected) + "  " + hints
	}
	return statusBarStyle.Render(runewidth.FillRight(runewidth.Truncate(hints, m.width, textutil.Ellipsis), m.width))
}
