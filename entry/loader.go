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

package entry

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"github.com/ianlewis/go-dictview/idx"
	"github.com/ianlewis/go-dictview/internal/logging"
	"github.com/ianlewis/go-dictview/source"
)

// Options are options for a Loader.
type Options struct {
	// Logger receives load failures. Defaults to discarding output.
	Logger *slog.Logger

	// OnReady is called after content becomes the displayed content in the
	// Ready state, e.g. to scroll the display into view. It must not call
	// Load.
	OnReady func(Content)
}

// DefaultOptions is the default options for a Loader.
var DefaultOptions = &Options{}

// Loader fetches entry content. Only the most recently requested entry is
// ever displayed: each Load cancels the previous request and results of
// superseded requests are discarded.
type Loader struct {
	fetcher source.Fetcher
	logger  *slog.Logger
	onReady func(Content)

	// emitMu serializes committing content and notifying listeners so that
	// listeners observe changes in commit order.
	emitMu sync.Mutex

	mu        sync.Mutex
	seq       uint64
	cancel    context.CancelFunc
	current   Content
	listeners map[int]func(Content)
	nextID    int
}

// NewLoader returns a Loader displaying the placeholder.
func NewLoader(fetcher source.Fetcher, opts *Options) *Loader {
	if opts == nil {
		opts = DefaultOptions
	}
	logger := opts.Logger
	if logger == nil {
		logger = logging.Discard()
	}

	return &Loader{
		fetcher:   fetcher,
		logger:    logger,
		onReady:   opts.OnReady,
		current:   placeholder(),
		listeners: map[int]func(Content){},
	}
}

func placeholder() Content {
	return Content{
		State: None,
		HTML:  Placeholder,
	}
}

// Load requests the content of the entry with the given id and returns a
// channel that receives the result of this request. The result is displayed
// only if no later Load has been made in the meantime.
//
// An empty id displays the placeholder synchronously without fetching.
func (l *Loader) Load(ctx context.Context, id idx.ID) <-chan Content {
	result := make(chan Content, 1)

	l.mu.Lock()
	l.seq++
	seq := l.seq
	if l.cancel != nil {
		l.cancel()
		l.cancel = nil
	}
	if id == idx.None {
		l.mu.Unlock()
		c := placeholder()
		l.commit(seq, c)
		result <- c
		return result
	}
	ctx, cancel := context.WithCancel(ctx)
	l.cancel = cancel
	l.mu.Unlock()

	l.commit(seq, Content{ID: id, State: Loading})

	go func() {
		defer cancel()

		c := l.fetch(ctx, id)
		if !l.commit(seq, c) {
			l.logger.Debug("discarding superseded entry", "id", id)
		}
		result <- c
	}()

	return result
}

func (l *Loader) fetch(ctx context.Context, id idx.ID) Content {
	b, err := l.fetcher.Fetch(ctx, source.EntryName(string(id)))
	if err != nil {
		if errors.Is(err, source.ErrNotFound) {
			err = fmt.Errorf("%w: %w", ErrEntryNotFound, err)
		} else {
			err = fmt.Errorf("%w %s: %w", ErrEntryLoad, id, err)
		}
		if ctx.Err() == nil {
			l.logger.Error("loading entry failed", "id", id, "error", err)
		}
		return Content{
			ID:    id,
			State: Error,
			Err:   err,
		}
	}

	return Content{
		ID:    id,
		HTML:  string(b),
		State: Ready,
	}
}

// commit makes c the displayed content if seq is still the latest request.
// Listeners and, for ready content, the OnReady hook run before any later
// request can commit.
func (l *Loader) commit(seq uint64, c Content) bool {
	l.emitMu.Lock()
	defer l.emitMu.Unlock()

	l.mu.Lock()
	if seq != l.seq {
		l.mu.Unlock()
		return false
	}
	l.current = c
	listeners := make([]func(Content), 0, len(l.listeners))
	for i := 0; i < l.nextID; i++ {
		if fn, ok := l.listeners[i]; ok {
			listeners = append(listeners, fn)
		}
	}
	l.mu.Unlock()

	for _, fn := range listeners {
		fn(c)
	}
	if c.State == Ready && l.onReady != nil {
		l.onReady(c)
	}
	return true
}

// Current returns the displayed content.
func (l *Loader) Current() Content {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.current
}

// Subscribe registers fn to be called whenever the displayed content
// changes. fn must not call Load. The returned function removes the
// registration.
func (l *Loader) Subscribe(fn func(Content)) func() {
	l.mu.Lock()
	defer l.mu.Unlock()
	id := l.nextID
	l.nextID++
	l.listeners[id] = fn
	return func() {
		l.mu.Lock()
		defer l.mu.Unlock()
		delete(l.listeners, id)
	}
}
