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

// Package source retrieves dictionary resources.
//
// A published dictionary is a tree of static files:
//  1. index_data.json contains the ordered list of index records.
//  2. entries/entry_<id>.html contains the rendered content of one entry.
//
// The tree can be served over HTTP(S) or read from a local directory. Local
// files may be compressed with gzip or dictzip.
package source

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"strings"
)

const (
	// IndexName is the name of the index resource.
	IndexName = "index_data.json"

	// EntriesDir is the directory holding entry content resources.
	EntriesDir = "entries"
)

// ErrNotFound indicates that a resource does not exist.
var ErrNotFound = errors.New("resource not found")

// Fetcher retrieves named resources.
type Fetcher interface {
	// Fetch returns the content of the resource with the given slash
	// separated name.
	Fetch(ctx context.Context, name string) ([]byte, error)
}

// EntryName returns the resource name of the content for the entry with the
// given id.
func EntryName(id string) string {
	return EntriesDir + "/entry_" + id + ".html"
}

// Open returns a Fetcher for the location. http and https URLs are fetched
// over the network; anything else is treated as a local directory.
func Open(location string) (Fetcher, error) {
	if location == "" {
		return nil, fmt.Errorf("%w: empty location", ErrNotFound)
	}

	if strings.HasPrefix(location, "http://") || strings.HasPrefix(location, "https://") {
		u, err := url.Parse(location)
		if err != nil {
			return nil, fmt.Errorf("parsing %q: %w", location, err)
		}
		return NewHTTP(u, nil), nil
	}

	return NewDir(strings.TrimPrefix(location, "file://"))
}
