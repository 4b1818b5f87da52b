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

// Package idx implements reading the dictionary index.
//
// The index is a JSON array of records in display order. Each record holds the
// searchable metadata of one entry:
//  1. id: a unique number or string identifying the entry.
//  2. l: the lemma (headword).
//  3. sl: the lemma with diacritics removed and lower cased.
//  4. p: the part of speech.
//  5. d: the first definition of the entry.
//
// Every field except id is optional. The full content of an entry is not part
// of the index and is fetched separately.
package idx
