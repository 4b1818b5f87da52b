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

package idx

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"slices"
	"sync"

	"github.com/ianlewis/go-dictview/internal/index"
	"github.com/ianlewis/go-dictview/internal/logging"
	"github.com/ianlewis/go-dictview/source"
)

// ErrIndexLoad indicates that the index could not be loaded.
var ErrIndexLoad = errors.New("loading dictionary index")

// State is the load state of a Store.
type State int

const (
	// Pending means the index has not finished loading.
	Pending State = iota

	// Ready means the index loaded successfully.
	Ready

	// Failed means the index could not be loaded. Failure is terminal.
	Failed
)

func (s State) String() string {
	switch s {
	case Pending:
		return "pending"
	case Ready:
		return "ready"
	case Failed:
		return "failed"
	default:
		return fmt.Sprintf("State(%d)", int(s))
	}
}

// StoreOptions are options for a Store.
type StoreOptions struct {
	// Logger receives load progress. Defaults to discarding output.
	Logger *slog.Logger
}

// DefaultStoreOptions is the default options for a Store.
var DefaultStoreOptions = &StoreOptions{}

// Store holds the index records loaded once from a dictionary source. The
// records are never modified after loading.
type Store struct {
	fetcher source.Fetcher
	logger  *slog.Logger

	once sync.Once
	done chan struct{}

	mu        sync.RWMutex
	state     State
	records   []*Record
	byID      *index.Index[*Record]
	err       error
	listeners []func(State)
}

// NewStore returns a new Store in the Pending state.
func NewStore(fetcher source.Fetcher, opts *StoreOptions) *Store {
	if opts == nil {
		opts = DefaultStoreOptions
	}
	logger := opts.Logger
	if logger == nil {
		logger = logging.Discard()
	}

	return &Store{
		fetcher: fetcher,
		logger:  logger,
		done:    make(chan struct{}),
	}
}

// Load fetches and decodes the index. Only the first call does any work;
// later calls wait for it and return the same result. Failures are not
// retried.
func (s *Store) Load(ctx context.Context) error {
	s.once.Do(func() {
		s.logger.Debug("fetching index", "name", source.IndexName)

		records, err := s.fetch(ctx)

		s.mu.Lock()
		if err != nil {
			s.state = Failed
			s.err = err
			s.logger.Error("loading index failed", "error", err)
		} else {
			s.state = Ready
			s.records = records
			s.byID = index.New(records, recordID)
			s.logger.Info("loaded index", "entries", len(records))
		}
		state := s.state
		listeners := slices.Clone(s.listeners)
		s.mu.Unlock()

		close(s.done)
		for _, fn := range listeners {
			fn(state)
		}
	})

	<-s.done
	return s.Err()
}

func (s *Store) fetch(ctx context.Context) ([]*Record, error) {
	b, err := s.fetcher.Fetch(ctx, source.IndexName)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrIndexLoad, err)
	}
	records, err := Decode(bytes.NewReader(b))
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrIndexLoad, err)
	}
	return records, nil
}

func recordID(r *Record) string {
	return string(r.ID)
}

// Wait blocks until the store leaves the Pending state or ctx is done.
func (s *Store) Wait(ctx context.Context) error {
	select {
	case <-s.done:
		return s.Err()
	case <-ctx.Done():
		return ctx.Err() //nolint:wrapcheck // context errors are returned as is.
	}
}

// State returns the current load state.
func (s *Store) State() State {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state
}

// Err returns the load failure, if any.
func (s *Store) Err() error {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.err
}

// Records returns the loaded records in index order. The returned slice is
// shared and must not be modified. It is nil until the store is Ready.
func (s *Store) Records() []*Record {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.records
}

// Lookup returns the record with the given id.
func (s *Store) Lookup(id ID) (*Record, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.byID == nil {
		return nil, false
	}
	return s.byID.Get(string(id))
}

// Subscribe registers fn to be called once the store reaches a terminal
// state. If it already has, fn is called immediately. The returned function
// removes the registration.
func (s *Store) Subscribe(fn func(State)) func() {
	s.mu.Lock()
	if s.state != Pending {
		state := s.state
		s.mu.Unlock()
		fn(state)
		return func() {}
	}
	s.listeners = append(s.listeners, fn)
	i := len(s.listeners) - 1
	s.mu.Unlock()

	return func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		if i < len(s.listeners) {
			s.listeners[i] = func(State) {}
		}
	}
}
