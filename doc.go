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

// Package dictview implements a browser for static, precomputed
// dictionaries.
//
// A dictionary is published as a tree of files (see package source):
//  1. An index of all entries with their searchable metadata (package idx).
//  2. One HTML fragment per entry with the entry's full content (package
//     entry).
//
// A Browser loads the index once, filters it for an index listing and for
// search suggestions (package search), tracks the selected entry together
// with a shareable location fragment (package nav) and fetches the selected
// entry's content on demand.
package dictview
