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

package nav

import (
	"strings"
	"sync"

	"github.com/ianlewis/go-dictview/idx"
)

// fragmentPrefix starts every fragment that names an entry.
const fragmentPrefix = "entry-"

// Fragment returns the location fragment for an entry, e.g. "entry-635".
func Fragment(id idx.ID) string {
	if id == idx.None {
		return ""
	}
	return fragmentPrefix + string(id)
}

// ParseFragment returns the entry id encoded in a fragment. A leading '#' is
// ignored. ok is false if the fragment does not name an entry.
func ParseFragment(fragment string) (id idx.ID, ok bool) {
	f := strings.TrimPrefix(fragment, "#")
	if !strings.HasPrefix(f, fragmentPrefix) {
		return idx.None, false
	}
	id = idx.ID(strings.TrimPrefix(f, fragmentPrefix))
	return id, id != idx.None
}

// Location is the externally visible, shareable selection state, e.g. the
// fragment of a URL.
type Location interface {
	// Fragment returns the current fragment without a leading '#'.
	Fragment() string

	// ReplaceFragment sets the fragment without creating a history entry.
	// Watchers are not notified.
	ReplaceFragment(fragment string)

	// Watch registers fn to be called when the fragment is changed by
	// navigation outside of the application's control, e.g. moving through
	// history. The returned function removes the registration.
	Watch(fn func(fragment string)) (cancel func())
}

// MemoryLocation is an in-memory Location with a navigation history.
type MemoryLocation struct {
	mu       sync.Mutex
	history  []string
	pos      int
	watchers map[int]func(string)
	nextID   int
}

// NewMemoryLocation returns a MemoryLocation whose history holds the initial
// fragment.
func NewMemoryLocation(initial string) *MemoryLocation {
	return &MemoryLocation{
		history:  []string{strings.TrimPrefix(initial, "#")},
		watchers: map[int]func(string){},
	}
}

// Fragment implements [Location.Fragment].
func (l *MemoryLocation) Fragment() string {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.history[l.pos]
}

// ReplaceFragment implements [Location.ReplaceFragment].
func (l *MemoryLocation) ReplaceFragment(fragment string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.history[l.pos] = strings.TrimPrefix(fragment, "#")
}

// Watch implements [Location.Watch].
func (l *MemoryLocation) Watch(fn func(string)) func() {
	l.mu.Lock()
	defer l.mu.Unlock()
	id := l.nextID
	l.nextID++
	l.watchers[id] = fn
	return func() {
		l.mu.Lock()
		defer l.mu.Unlock()
		delete(l.watchers, id)
	}
}

// Navigate pushes a new history entry, dropping any forward history, and
// notifies watchers.
func (l *MemoryLocation) Navigate(fragment string) {
	l.mu.Lock()
	l.history = append(l.history[:l.pos+1], strings.TrimPrefix(fragment, "#"))
	l.pos++
	l.mu.Unlock()
	l.notify()
}

// SetFragment changes the current fragment as a manual edit would and
// notifies watchers.
func (l *MemoryLocation) SetFragment(fragment string) {
	l.ReplaceFragment(fragment)
	l.notify()
}

// Back moves one entry back in history. It reports whether it moved.
func (l *MemoryLocation) Back() bool {
	l.mu.Lock()
	if l.pos == 0 {
		l.mu.Unlock()
		return false
	}
	l.pos--
	l.mu.Unlock()
	l.notify()
	return true
}

// Forward moves one entry forward in history. It reports whether it moved.
func (l *MemoryLocation) Forward() bool {
	l.mu.Lock()
	if l.pos == len(l.history)-1 {
		l.mu.Unlock()
		return false
	}
	l.pos++
	l.mu.Unlock()
	l.notify()
	return true
}

// Len returns the number of history entries.
func (l *MemoryLocation) Len() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.history)
}

func (l *MemoryLocation) notify() {
	l.mu.Lock()
	fragment := l.history[l.pos]
	watchers := make([]func(string), 0, len(l.watchers))
	for _, fn := range l.watchers {
		watchers = append(watchers, fn)
	}
	l.mu.Unlock()

	for _, fn := range watchers {
		fn(fragment)
	}
}
