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

package textutil

import (
	"sync"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
)

func TestTruncate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		text     string
		maxLen   int
		expected string
	}{
		{
			name:     "empty",
			text:     "",
			maxLen:   5,
			expected: "",
		},
		{
			name:     "fits",
			text:     "focus",
			maxLen:   5,
			expected: "focus",
		},
		{
			name:     "truncated",
			text:     "focus pocus",
			maxLen:   5,
			expected: "focus…",
		},
		{
			name:     "multibyte runes",
			text:     "înțeles adânc",
			maxLen:   7,
			expected: "înțeles…",
		},
		{
			name:     "zero",
			text:     "abc",
			maxLen:   0,
			expected: "…",
		},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			t.Parallel()

			if diff := cmp.Diff(test.expected, Truncate(test.text, test.maxLen)); diff != "" {
				t.Fatalf("Truncate (-want, +got):\n%s", diff)
			}
		})
	}
}

type recorder struct {
	mu     sync.Mutex
	values []string
	called chan struct{}
}

func newRecorder() *recorder {
	return &recorder{called: make(chan struct{}, 10)}
}

func (r *recorder) record(v string) {
	r.mu.Lock()
	r.values = append(r.values, v)
	r.mu.Unlock()
	r.called <- struct{}{}
}

func (r *recorder) got() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]string(nil), r.values...)
}

func TestDebouncer_burst(t *testing.T) {
	t.Parallel()

	r := newRecorder()
	d := NewDebouncer(20*time.Millisecond, r.record)

	for _, q := range []string{"f", "fo", "foc"} {
		d.Trigger(q)
	}

	select {
	case <-r.called:
	case <-time.After(2 * time.Second):
		t.Fatal("debounced function was not called")
	}

	// Give any stray timers a chance to fire.
	time.Sleep(60 * time.Millisecond)

	if diff := cmp.Diff([]string{"foc"}, r.got()); diff != "" {
		t.Fatalf("calls (-want, +got):\n%s", diff)
	}
	if d.Pending() {
		t.Fatalf("Pending: expected false after fire")
	}
}

func TestDebouncer_stop(t *testing.T) {
	t.Parallel()

	r := newRecorder()
	d := NewDebouncer(20*time.Millisecond, r.record)

	d.Trigger("foc")
	if !d.Stop() {
		t.Fatalf("Stop: expected a pending call")
	}
	if d.Stop() {
		t.Fatalf("Stop: expected no pending call")
	}

	time.Sleep(60 * time.Millisecond)

	if got := r.got(); len(got) != 0 {
		t.Fatalf("calls: expected none, got %v", got)
	}
}
