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

// Package search filters index records.
//
// Two modes are supported. Filter narrows the full index listing and matches
// the lemma or an id prefix. Suggest produces a short list of candidates for
// search-as-you-type and also matches the simplified lemma and definition.
// Matching is plain substring containment; results keep index order.
package search

import (
	"strings"
	"unicode/utf8"

	"github.com/ianlewis/go-dictview/idx"
)

const (
	// DefaultMinQueryLength is the number of runes a query needs before
	// suggestions are produced.
	DefaultMinQueryLength = 2

	// DefaultMaxResults is the maximum number of suggestions.
	DefaultMaxResults = 10
)

// Filter returns the records whose lemma contains the query or whose id
// starts with it. The query is lower cased and trimmed; an empty query
// returns records unchanged. records is never modified.
func Filter(records []*idx.Record, query string) []*idx.Record {
	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" {
		return records
	}

	var matches []*idx.Record
	for _, r := range records {
		if idPrefix(r, q) || contains(r.Lemma, q) {
			matches = append(matches, r)
		}
	}
	return matches
}

// SuggestOptions are options for Suggest.
type SuggestOptions struct {
	// MinQueryLength is the number of runes needed before searching.
	MinQueryLength int

	// MaxResults caps the number of suggestions.
	MaxResults int
}

// DefaultSuggestOptions is the default options for Suggest.
var DefaultSuggestOptions = &SuggestOptions{
	MinQueryLength: DefaultMinQueryLength,
	MaxResults:     DefaultMaxResults,
}

// Result is the outcome of a suggestion query.
type Result struct {
	// Query is the query the result was computed for.
	Query string

	// Searching is false when the query was too short to search. This is
	// distinct from a search with no matches.
	Searching bool

	// Records are the matching records in index order.
	Records []*idx.Record
}

// Suggest returns up to MaxResults records whose id starts with the query or
// whose lemma, simplified lemma or definition contains it.
func Suggest(records []*idx.Record, query string, opts *SuggestOptions) Result {
	if opts == nil {
		opts = DefaultSuggestOptions
	}
	maxResults := opts.MaxResults
	if maxResults <= 0 {
		maxResults = DefaultMaxResults
	}

	if utf8.RuneCountInString(query) < opts.MinQueryLength || query == "" {
		return Result{Query: query}
	}

	q := strings.ToLower(query)
	res := Result{
		Query:     query,
		Searching: true,
	}
	for _, r := range records {
		if len(res.Records) == maxResults {
			break
		}
		if idPrefix(r, q) ||
			contains(r.Lemma, q) ||
			contains(r.SimplifiedLemma, q) ||
			contains(r.Definition, q) {
			res.Records = append(res.Records, r)
		}
	}
	return res
}

func idPrefix(r *idx.Record, q string) bool {
	return strings.HasPrefix(string(r.ID), q)
}

func contains(field, q string) bool {
	return field != "" && strings.Contains(strings.ToLower(field), q)
}
