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

// Package nav keeps the selected entry in sync with a Location.
//
// The selection is either empty or a single entry id. Whenever the selection
// is non-empty the location fragment has the form "entry-<id>".
package nav

import (
	"log/slog"
	"sync"

	"github.com/ianlewis/go-dictview/idx"
	"github.com/ianlewis/go-dictview/internal/logging"
)

// Options are options for a Controller.
type Options struct {
	// Logger receives selection changes. Defaults to discarding output.
	Logger *slog.Logger
}

// DefaultOptions is the default options for a Controller.
var DefaultOptions = &Options{}

// Controller owns the selected entry.
type Controller struct {
	loc    Location
	logger *slog.Logger

	// emitMu serializes selection changes together with their notification
	// so that listeners observe changes in the order they were made.
	emitMu sync.Mutex

	mu        sync.Mutex
	selected  idx.ID
	listeners map[int]func(idx.ID)
	nextID    int
}

// New returns a Controller with no selection.
func New(loc Location, opts *Options) *Controller {
	if opts == nil {
		opts = DefaultOptions
	}
	logger := opts.Logger
	if logger == nil {
		logger = logging.Discard()
	}

	return &Controller{
		loc:       loc,
		logger:    logger,
		listeners: map[int]func(idx.ID){},
	}
}

// Attach starts following external navigation on the Location. The returned
// function stops it.
func (c *Controller) Attach() func() {
	return c.loc.Watch(c.OnExternalNavigation)
}

// Selected returns the selected id, or idx.None.
func (c *Controller) Selected() idx.ID {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.selected
}

// Select selects an entry on behalf of the user. Selecting the current entry
// again does nothing. The location fragment is replaced only if it does not
// already name the entry.
func (c *Controller) Select(id idx.ID) {
	if id == idx.None {
		return
	}

	c.emitMu.Lock()
	defer c.emitMu.Unlock()

	c.mu.Lock()
	if c.selected == id {
		c.mu.Unlock()
		return
	}
	c.selected = id
	c.mu.Unlock()

	c.logger.Debug("selected entry", "id", id)
	if frag := Fragment(id); c.loc.Fragment() != frag {
		c.loc.ReplaceFragment(frag)
		c.logger.Debug("fragment updated", "fragment", frag)
	}
	c.notify(id)
}

// OnExternalNavigation applies a fragment set outside of the application. A
// fragment naming another entry selects it; an empty fragment clears the
// selection. Anything else is ignored. The location is never written.
func (c *Controller) OnExternalNavigation(fragment string) {
	id, ok := ParseFragment(fragment)

	c.emitMu.Lock()
	defer c.emitMu.Unlock()

	c.mu.Lock()
	switch {
	case ok && id != c.selected:
		c.selected = id
	case !ok && isEmpty(fragment) && c.selected != idx.None:
		c.selected = idx.None
	default:
		c.mu.Unlock()
		return
	}
	selected := c.selected
	c.mu.Unlock()

	c.logger.Debug("fragment changed", "fragment", fragment, "selected", selected)
	c.notify(selected)
}

// Sync applies the Location's current fragment, e.g. a deep link present at
// startup.
func (c *Controller) Sync() {
	c.OnExternalNavigation(c.loc.Fragment())
}

// Subscribe registers fn to be called with the new selection after every
// change. fn must not change the selection. The returned function removes the
// registration.
func (c *Controller) Subscribe(fn func(idx.ID)) func() {
	c.mu.Lock()
	defer c.mu.Unlock()
	id := c.nextID
	c.nextID++
	c.listeners[id] = fn
	return func() {
		c.mu.Lock()
		defer c.mu.Unlock()
		delete(c.listeners, id)
	}
}

func (c *Controller) notify(id idx.ID) {
	c.mu.Lock()
	listeners := make([]func(idx.ID), 0, len(c.listeners))
	for i := 0; i < c.nextID; i++ {
		if fn, ok := c.listeners[i]; ok {
			listeners = append(listeners, fn)
		}
	}
	c.mu.Unlock()

	for _, fn := range listeners {
		fn(id)
	}
}

func isEmpty(fragment string) bool {
	return fragment == "" || fragment == "#"
}
