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

package index

import (
	"slices"
	"sort"
	"strings"
)

// Index is a generic sorted array index keyed by a string.
type Index[V any] struct {
	// sorted by key. Values with equal keys keep their original order.
	sorted []V

	key func(V) string
}

// New creates an index from the given values. The input slice is not
// modified.
func New[V any](values []V, key func(V) string) *Index[V] {
	sorted := slices.Clone(values)
	slices.SortStableFunc(sorted, func(a, b V) int {
		return strings.Compare(key(a), key(b))
	})

	return &Index[V]{
		sorted: sorted,
		key:    key,
	}
}

// Len returns the number of values in the index.
func (idx *Index[V]) Len() int {
	return len(idx.sorted)
}

// Find performs a binary search over the index and returns all values with
// the given key.
func (idx *Index[V]) Find(k string) []V {
	i, found := sort.Find(len(idx.sorted), func(i int) int {
		return strings.Compare(k, idx.key(idx.sorted[i]))
	})
	if !found {
		return nil
	}

	j := i + 1
	for j < len(idx.sorted) && idx.key(idx.sorted[j]) == k {
		j++
	}
	return idx.sorted[i:j]
}

// Get returns the first value with the given key.
func (idx *Index[V]) Get(k string) (V, bool) {
	found := idx.Find(k)
	if len(found) == 0 {
		var zero V
		return zero, false
	}
	return found[0], true
}
