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
	"sync"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/ianlewis/go-dictview"
)

// eventsMsg carries browser events into the update loop.
type eventsMsg []dictview.Event

// eventQueue buffers browser events until the update loop picks them up.
// Events are published from the browser's goroutines and, when the model
// itself selects an entry, from inside Update, so pushing must never block.
type eventQueue struct {
	mu     sync.Mutex
	events []dictview.Event
	ready  chan struct{}
}

func newEventQueue() *eventQueue {
	return &eventQueue{
		ready: make(chan struct{}, 1),
	}
}

func (q *eventQueue) push(e dictview.Event) {
	q.mu.Lock()
	q.events = append(q.events, e)
	q.mu.Unlock()

	select {
	case q.ready <- struct{}{}:
	default:
	}
}

func (q *eventQueue) take() []dictview.Event {
	q.mu.Lock()
	defer q.mu.Unlock()
	events := q.events
	q.events = nil
	return events
}

// wait returns a command that delivers the next batch of events.
func (q *eventQueue) wait() tea.Cmd {
	return func() tea.Msg {
		<-q.ready
		return eventsMsg(q.take())
	}
}
