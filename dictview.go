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
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/ianlewis/go-dictview/entry"
	"github.com/ianlewis/go-dictview/idx"
	"github.com/ianlewis/go-dictview/internal/logging"
	"github.com/ianlewis/go-dictview/internal/textutil"
	"github.com/ianlewis/go-dictview/nav"
	"github.com/ianlewis/go-dictview/search"
	"github.com/ianlewis/go-dictview/source"
)

// DefaultDebounce is how long search input must be idle before suggestions
// are computed.
const DefaultDebounce = 300 * time.Millisecond

// Options are options for a Browser.
type Options struct {
	// Location holds the selected entry's fragment. Defaults to an empty
	// in-memory location.
	Location nav.Location

	// Debounce is the idle time before suggestions are computed. Defaults
	// to DefaultDebounce.
	Debounce time.Duration

	// Suggest configures suggestion queries. Defaults to
	// search.DefaultSuggestOptions.
	Suggest *search.SuggestOptions

	// Logger is passed to all components. Defaults to discarding output.
	Logger *slog.Logger
}

// DefaultOptions is the default options for a Browser.
var DefaultOptions = &Options{}

// Browser ties together the index, search, selection and entry content of a
// dictionary.
type Browser struct {
	store  *idx.Store
	nav    *nav.Controller
	loader *entry.Loader
	loc    nav.Location
	logger *slog.Logger

	suggestOpts *search.SuggestOptions
	suggest     *textutil.Debouncer[string]

	mu          sync.Mutex
	ctx         context.Context //nolint:containedctx // loads outlive the call that starts them.
	detach      func()
	suggestions search.Result
	listeners   map[int]func(Event)
	nextID      int
}

// New returns a new Browser reading the dictionary from fetcher. The index is
// not loaded until Start is called.
func New(fetcher source.Fetcher, opts *Options) *Browser {
	if opts == nil {
		opts = DefaultOptions
	}
	logger := opts.Logger
	if logger == nil {
		logger = logging.Discard()
	}
	loc := opts.Location
	if loc == nil {
		loc = nav.NewMemoryLocation("")
	}
	wait := opts.Debounce
	if wait <= 0 {
		wait = DefaultDebounce
	}
	suggestOpts := opts.Suggest
	if suggestOpts == nil {
		suggestOpts = search.DefaultSuggestOptions
	}

	b := &Browser{
		loc:         loc,
		logger:      logging.ForComponent(logger, logging.CompSearch),
		suggestOpts: suggestOpts,
		ctx:         context.Background(),
		detach:      func() {},
		listeners:   map[int]func(Event){},
	}

	b.store = idx.NewStore(fetcher, &idx.StoreOptions{
		Logger: logging.ForComponent(logger, logging.CompIndex),
	})
	b.nav = nav.New(loc, &nav.Options{
		Logger: logging.ForComponent(logger, logging.CompNav),
	})
	b.loader = entry.NewLoader(fetcher, &entry.Options{
		Logger: logging.ForComponent(logger, logging.CompEntry),
		OnReady: func(c entry.Content) {
			b.emit(ScrollEvent{ID: c.ID})
		},
	})
	b.suggest = textutil.NewDebouncer(wait, b.runSuggest)

	b.store.Subscribe(func(st idx.State) {
		b.emit(IndexEvent{
			State:   st,
			Err:     b.store.Err(),
			Entries: len(b.store.Records()),
		})
	})
	b.nav.Subscribe(func(id idx.ID) {
		b.emit(SelectionEvent{ID: id})
		b.loader.Load(b.context(), id)
	})
	b.loader.Subscribe(func(c entry.Content) {
		b.emit(ContentEvent{Content: c})
	})

	return b
}

// Start loads the index. Once it has loaded, the location's fragment is
// applied and external navigation is followed. ctx bounds the index load and
// all later entry loads.
func (b *Browser) Start(ctx context.Context) error {
	b.mu.Lock()
	b.ctx = ctx
	b.mu.Unlock()

	if err := b.store.Load(ctx); err != nil {
		return err //nolint:wrapcheck // already wrapped with idx.ErrIndexLoad.
	}

	detach := b.nav.Attach()
	b.mu.Lock()
	b.detach = detach
	b.mu.Unlock()

	b.nav.Sync()
	return nil
}

// Close stops following navigation and cancels pending suggestions.
func (b *Browser) Close() {
	b.suggest.Stop()
	b.mu.Lock()
	detach := b.detach
	b.detach = func() {}
	b.mu.Unlock()
	detach()
}

func (b *Browser) context() context.Context {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.ctx
}

// IndexState returns the load state of the index.
func (b *Browser) IndexState() idx.State {
	return b.store.State()
}

// IndexErr returns the index load failure, if any.
func (b *Browser) IndexErr() error {
	return b.store.Err()
}

// Records returns all index records in index order.
func (b *Browser) Records() []*idx.Record {
	return b.store.Records()
}

// Lookup returns the index record for id.
func (b *Browser) Lookup(id idx.ID) (*idx.Record, bool) {
	return b.store.Lookup(id)
}

// Filter returns the index records matching a list filter query.
func (b *Browser) Filter(query string) []*idx.Record {
	return search.Filter(b.store.Records(), query)
}

// SetQuery updates the search query. Suggestions are computed once the query
// has been idle for the debounce duration and published as a
// SuggestionsEvent.
func (b *Browser) SetQuery(query string) {
	b.suggest.Trigger(query)
}

func (b *Browser) runSuggest(query string) {
	records := b.store.Records()
	if len(records) == 0 {
		b.logger.Warn("index not available for suggestions", "state", b.store.State())
	}
	res := search.Suggest(records, query, b.suggestOpts)
	b.logger.Debug("suggestions", "query", query, "searching", res.Searching, "results", len(res.Records))
	b.mu.Lock()
	b.suggestions = res
	b.mu.Unlock()
	b.emit(SuggestionsEvent{Result: res})
}

// Suggestions returns the most recently computed suggestions.
func (b *Browser) Suggestions() search.Result {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.suggestions
}

// PickSuggestion selects a suggested entry and clears the suggestions.
func (b *Browser) PickSuggestion(id idx.ID) {
	b.suggest.Stop()
	b.mu.Lock()
	b.suggestions = search.Result{}
	b.mu.Unlock()
	b.emit(SuggestionsEvent{})
	b.Select(id)
}

// Select selects an entry.
func (b *Browser) Select(id idx.ID) {
	b.nav.Select(id)
}

// Selected returns the selected entry id or idx.None.
func (b *Browser) Selected() idx.ID {
	return b.nav.Selected()
}

// Content returns the displayed entry content.
func (b *Browser) Content() entry.Content {
	return b.loader.Current()
}

// Location returns the location that holds the selection fragment.
func (b *Browser) Location() nav.Location {
	return b.loc
}

// Subscribe registers fn to receive events. Events may be delivered from
// different goroutines. The returned function removes the registration.
func (b *Browser) Subscribe(fn func(Event)) func() {
	b.mu.Lock()
	defer b.mu.Unlock()
	id := b.nextID
	b.nextID++
	b.listeners[id] = fn
	return func() {
		b.mu.Lock()
		defer b.mu.Unlock()
		delete(b.listeners, id)
	}
}

func (b *Browser) emit(e Event) {
	b.mu.Lock()
	listeners := make([]func(Event), 0, len(b.listeners))
	for i := 0; i < b.nextID; i++ {
		if fn, ok := b.listeners[i]; ok {
			listeners = append(listeners, fn)
		}
	}
	b.mu.Unlock()

	for _, fn := range listeners {
		fn(e)
	}
}
