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

package testutil

import (
	"context"
	"fmt"
	"sync"

	"github.com/ianlewis/go-dictview/source"
)

// Fetcher is an in-memory source.Fetcher. Resources can be gated so that a
// fetch blocks until the test releases it.
type Fetcher struct {
	mu        sync.Mutex
	resources map[string][]byte
	errs      map[string]error
	gates     map[string]chan struct{}
	calls     []string

	// IgnoreContext makes gated fetches wait for release even after their
	// context is cancelled, like a network response that arrives late.
	IgnoreContext bool
}

// NewFetcher returns a Fetcher serving the given resources.
func NewFetcher(resources map[string]string) *Fetcher {
	f := &Fetcher{
		resources: map[string][]byte{},
		errs:      map[string]error{},
		gates:     map[string]chan struct{}{},
	}
	for name, content := range resources {
		f.resources[name] = []byte(content)
	}
	return f
}

// SetError makes fetches of name fail with err.
func (f *Fetcher) SetError(name string, err error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.errs[name] = err
}

// Gate makes fetches of name block until Release is called.
func (f *Fetcher) Gate(name string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.gates[name] = make(chan struct{})
}

// Release unblocks fetches of name.
func (f *Fetcher) Release(name string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if g, ok := f.gates[name]; ok {
		close(g)
		delete(f.gates, name)
	}
}

// Calls returns the names fetched so far in call order.
func (f *Fetcher) Calls() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.calls...)
}

// Fetch implements [source.Fetcher.Fetch].
func (f *Fetcher) Fetch(ctx context.Context, name string) ([]byte, error) {
	f.mu.Lock()
	f.calls = append(f.calls, name)
	gate := f.gates[name]
	f.mu.Unlock()

	if gate != nil {
		if f.IgnoreContext {
			<-gate
		} else {
			select {
			case <-gate:
			case <-ctx.Done():
				return nil, ctx.Err() //nolint:wrapcheck // context errors are returned as is.
			}
		}
	}

	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.errs[name]; err != nil {
		return nil, err
	}
	b, ok := f.resources[name]
	if !ok {
		return nil, fmt.Errorf("%w (%s)", source.ErrNotFound, name)
	}
	return b, nil
}
