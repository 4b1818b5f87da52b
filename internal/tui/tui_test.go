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
	"context"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/x/ansi"
	"github.com/google/go-cmp/cmp"

	"github.com/ianlewis/go-dictview"
	"github.com/ianlewis/go-dictview/entry"
	"github.com/ianlewis/go-dictview/idx"
	"github.com/ianlewis/go-dictview/internal/testutil"
	"github.com/ianlewis/go-dictview/nav"
	"github.com/ianlewis/go-dictview/search"
	"github.com/ianlewis/go-dictview/source"
)

const testIndex = `[
  {"id": 1, "l": "a", "sl": "a", "p": null, "d": "first letter"},
  {"id": 2, "l": "abac", "sl": "abac", "p": "s. n.", "d": "abacus"},
  {"id": 635, "l": "foc", "sl": "foc", "p": "s. m.", "d": "fire"},
  {"id": 636, "l": "focar", "sl": "focar", "p": "s. n.", "d": "hearth; fire place"}
]`

func update(m Model, msg tea.Msg) Model {
	nm, _ := m.Update(msg)
	return nm.(Model)
}

func typeText(m Model, s string) Model {
	return update(m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)})
}

func key(m Model, t tea.KeyType) Model {
	return update(m, tea.KeyMsg{Type: t})
}

// waitUntil feeds browser events to m until cond holds.
func waitUntil(t *testing.T, m Model, cond func(Model) bool) Model {
	t.Helper()
	timeout := time.After(5 * time.Second)
	for !cond(m) {
		select {
		case <-m.queue.ready:
			m = update(m, eventsMsg(m.queue.take()))
		case <-timeout:
			t.Fatal("timed out waiting for browser events")
		}
	}
	return m
}

func newModel(t *testing.T, f source.Fetcher) (Model, *nav.MemoryLocation) {
	t.Helper()

	loc := nav.NewMemoryLocation("")
	b := dictview.New(f, &dictview.Options{
		Location: loc,
		// Suggestions are injected by the tests.
		Debounce: time.Hour,
	})
	t.Cleanup(b.Close)

	m := New(context.Background(), b, loc)
	m = update(m, tea.WindowSizeMsg{Width: 100, Height: 30})
	m = update(m, m.start()())
	m = update(m, eventsMsg(m.queue.take()))
	return m, loc
}

func newFetcher() *testutil.Fetcher {
	return testutil.NewFetcher(map[string]string{
		source.IndexName:      testIndex,
		source.EntryName("2"):   "<p>abacus</p>",
		source.EntryName("635"): "<p>foc</p>",
	})
}

// listMessage returns the text shown below the list heading with line
// wrapping undone.
func listMessage(m Model) string {
	lines := strings.Split(ansi.Strip(m.renderList()), "\n")
	var words []string
	for _, l := range lines[2:] {
		words = append(words, strings.Fields(l)...)
	}
	return strings.Join(words, " ")
}

func ids(records []*idx.Record) []idx.ID {
	var out []idx.ID
	for _, r := range records {
		out = append(out, r.ID)
	}
	return out
}

func TestModel_indexLoaded(t *testing.T) {
	t.Parallel()

	m, _ := newModel(t, newFetcher())

	if diff := cmp.Diff([]idx.ID{"1", "2", "635", "636"}, ids(m.List())); diff != "" {
		t.Fatalf("List (-want, +got):\n%s", diff)
	}
	view := m.View()
	for _, want := range []string{"4 entries", "635. foc (s. m.)", "1. a"} {
		if !strings.Contains(view, want) {
			t.Errorf("View: missing %q", want)
		}
	}
}

func TestModel_indexFailure(t *testing.T) {
	t.Parallel()

	m, _ := newModel(t, testutil.NewFetcher(nil))

	if !strings.Contains(m.View(), "Error Loading Index Data") {
		t.Fatalf("View: got %q", m.View())
	}

	// Nothing but quitting works.
	if _, cmd := m.Update(tea.KeyMsg{Type: tea.KeyTab}); cmd != nil {
		t.Fatal("tab: expected no command")
	}
}

func TestModel_filter(t *testing.T) {
	t.Parallel()

	m, _ := newModel(t, newFetcher())
	m = key(m, tea.KeyTab)
	if m.focus != focusFilter {
		t.Fatalf("focus: got %v, want %v", m.focus, focusFilter)
	}

	m = typeText(m, "FOC")
	if diff := cmp.Diff([]idx.ID{"635", "636"}, ids(m.List())); diff != "" {
		t.Fatalf("List (-want, +got):\n%s", diff)
	}

	m = typeText(m, "zzz")
	if len(m.List()) != 0 {
		t.Fatalf("List: got %d records, want 0", len(m.List()))
	}
	if diff := cmp.Diff("No matching entries in index.", listMessage(m)); diff != "" {
		t.Fatalf("list message (-want, +got):\n%s", diff)
	}

	// The message wraps rather than being cut off in a narrow list.
	m = update(m, tea.WindowSizeMsg{Width: 40, Height: 30})
	if diff := cmp.Diff("No matching entries in index.", listMessage(m)); diff != "" {
		t.Fatalf("narrow list message (-want, +got):\n%s", diff)
	}
	for _, l := range strings.Split(m.renderList(), "\n")[2:] {
		if w := ansi.StringWidth(l); w > m.listWidth() {
			t.Fatalf("list line %q is %d cells wide, want at most %d", ansi.Strip(l), w, m.listWidth())
		}
	}

	m = key(m, tea.KeyEsc)
	if got, want := len(m.List()), 4; got != want {
		t.Fatalf("List after clear: got %d records, want %d", got, want)
	}
}

func TestModel_selectFromList(t *testing.T) {
	t.Parallel()

	m, loc := newModel(t, newFetcher())
	m = key(m, tea.KeyTab)
	m = key(m, tea.KeyTab)
	if m.focus != focusList {
		t.Fatalf("focus: got %v, want %v", m.focus, focusList)
	}

	m = key(m, tea.KeyDown)
	m = key(m, tea.KeyEnter)

	m = waitUntil(t, m, func(m Model) bool {
		return m.content.State == entry.Ready
	})
	if got, want := m.Selected(), idx.ID("2"); got != want {
		t.Fatalf("Selected: got %q, want %q", got, want)
	}
	if got, want := loc.Fragment(), "entry-2"; got != want {
		t.Fatalf("Fragment: got %q, want %q", got, want)
	}
	if !strings.Contains(m.View(), "abacus") {
		t.Fatal("View: missing entry content")
	}
}

func TestModel_suggestions(t *testing.T) {
	t.Parallel()

	m, _ := newModel(t, newFetcher())
	m = typeText(m, "fo")

	res := search.Suggest(m.browser.Records(), "fo", search.DefaultSuggestOptions)
	m = update(m, eventsMsg{dictview.SuggestionsEvent{Result: res}})
	if !m.showSuggestions {
		t.Fatal("suggestions not shown")
	}
	if !strings.Contains(m.View(), "#635 foc  fire") {
		t.Fatalf("View: missing suggestion, got %q", m.View())
	}

	m = key(m, tea.KeyDown)
	m = key(m, tea.KeyDown)
	m = key(m, tea.KeyUp)
	if got, want := m.suggestCursor, 0; got != want {
		t.Fatalf("suggestCursor: got %d, want %d", got, want)
	}

	m = key(m, tea.KeyEnter)
	m = waitUntil(t, m, func(m Model) bool {
		return m.Selected() == "635"
	})
	if m.showSuggestions {
		t.Fatal("suggestions still shown after pick")
	}
	if got := m.search.Value(); got != "" {
		t.Fatalf("search: got %q, want empty", got)
	}
}

func TestModel_staleSuggestions(t *testing.T) {
	t.Parallel()

	m, _ := newModel(t, newFetcher())
	m = typeText(m, "foca")

	res := search.Suggest(m.browser.Records(), "fo", search.DefaultSuggestOptions)
	m = update(m, eventsMsg{dictview.SuggestionsEvent{Result: res}})
	if m.showSuggestions {
		t.Fatal("suggestions for an old query are shown")
	}
}

func TestModel_blurClosesSuggestions(t *testing.T) {
	t.Parallel()

	m, _ := newModel(t, newFetcher())
	m = typeText(m, "fo")
	res := search.Suggest(m.browser.Records(), "fo", search.DefaultSuggestOptions)
	m = update(m, eventsMsg{dictview.SuggestionsEvent{Result: res}})

	nm, cmd := m.Update(tea.KeyMsg{Type: tea.KeyTab})
	m = nm.(Model)
	if cmd == nil {
		t.Fatal("tab: expected a close command")
	}
	// Suggestions stay open until the delay has passed.
	if !m.showSuggestions {
		t.Fatal("suggestions closed immediately")
	}

	// A close scheduled by an earlier blur is ignored.
	m = update(m, closeSuggestionsMsg{seq: m.blurSeq - 1})
	if !m.showSuggestions {
		t.Fatal("suggestions closed by a stale blur")
	}

	m = update(m, closeSuggestionsMsg{seq: m.blurSeq})
	if m.showSuggestions {
		t.Fatal("suggestions not closed")
	}

	// Focusing the search again reopens them.
	m = key(m, tea.KeyShiftTab)
	if !m.showSuggestions {
		t.Fatal("suggestions not reopened")
	}
}

func TestModel_history(t *testing.T) {
	t.Parallel()

	m, loc := newModel(t, newFetcher())

	loc.Navigate("entry-635")
	m = waitUntil(t, m, func(m Model) bool { return m.Selected() == "635" })
	loc.Navigate("entry-2")
	m = waitUntil(t, m, func(m Model) bool { return m.Selected() == "2" })

	m = update(m, tea.KeyMsg{Type: tea.KeyLeft, Alt: true})
	m = waitUntil(t, m, func(m Model) bool { return m.Selected() == "635" })
	if got, want := m.cursor, 2; got != want {
		t.Fatalf("cursor: got %d, want %d", got, want)
	}

	m = update(m, tea.KeyMsg{Type: tea.KeyRight, Alt: true})
	waitUntil(t, m, func(m Model) bool { return m.Selected() == "2" })
}

func TestSuggestionLine(t *testing.T) {
	t.Parallel()

	testCases := map[string]struct {
		record *idx.Record
		want   string
	}{
		"full": {
			record: &idx.Record{ID: "635", Lemma: "foc", Definition: "fire"},
			want:   "#635 foc  fire",
		},
		"no lemma": {
			record: &idx.Record{ID: "7"},
			want:   "#7 [No Lemma]",
		},
		"long definition": {
			record: &idx.Record{ID: "8", Lemma: "x", Definition: strings.Repeat("ă", 61)},
			want:   "#8 x  " + strings.Repeat("ă", 60) + "…",
		},
	}

	for name, tc := range testCases {
		t.Run(name, func(t *testing.T) {
			t.Parallel()
			if diff := cmp.Diff(tc.want, SuggestionLine(tc.record)); diff != "" {
				t.Fatalf("SuggestionLine (-want, +got):\n%s", diff)
			}
		})
	}
}
