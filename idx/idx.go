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

package idx

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"math"
	"strconv"
)

// ErrInvalidID indicates that a record id is neither a number nor a string.
var ErrInvalidID = errors.New("invalid id")

// ID identifies an entry. Numeric ids are stored in their shortest decimal
// form, so 635, 635.0 and 6.35e2 are all "635". The empty ID means no entry.
type ID string

// None is the empty ID.
const None ID = ""

// String implements [fmt.Stringer].
func (id ID) String() string {
	return string(id)
}

// UnmarshalJSON implements [json.Unmarshaler]. Both numbers and strings are
// accepted.
func (id *ID) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if len(b) == 0 {
		return fmt.Errorf("%w: empty", ErrInvalidID)
	}

	switch b[0] {
	case '"':
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return fmt.Errorf("%w: %w", ErrInvalidID, err)
		}
		*id = ID(s)
	case '-', '0', '1', '2', '3', '4', '5', '6', '7', '8', '9':
		var n json.Number
		if err := json.Unmarshal(b, &n); err != nil {
			return fmt.Errorf("%w: %w", ErrInvalidID, err)
		}
		*id = ID(formatNumber(n))
	default:
		return fmt.Errorf("%w: %s", ErrInvalidID, b)
	}
	return nil
}

// formatNumber returns n in plain decimal notation. Numbers too large or too
// small for that keep their JSON text.
func formatNumber(n json.Number) string {
	f, err := n.Float64()
	if err != nil {
		return n.String()
	}
	switch a := math.Abs(f); {
	case a == 0:
		return "0"
	case a >= 1e-6 && a < 1e21:
		return strconv.FormatFloat(f, 'f', -1, 64)
	default:
		return n.String()
	}
}

// MarshalJSON implements [json.Marshaler]. Ids are written as strings.
func (id ID) MarshalJSON() ([]byte, error) {
	//nolint:wrapcheck // marshaling a string does not fail.
	return json.Marshal(string(id))
}

// Record is the index metadata of one entry. Records are immutable once
// loaded.
type Record struct {
	ID              ID     `json:"id"`
	Lemma           string `json:"l"`
	SimplifiedLemma string `json:"sl"`
	PartOfSpeech    string `json:"p"`
	Definition      string `json:"d"`
}

// UnmarshalJSON implements [json.Unmarshaler]. Missing and null string fields
// decode as empty strings.
func (r *Record) UnmarshalJSON(b []byte) error {
	var raw struct {
		ID              *ID     `json:"id"`
		Lemma           *string `json:"l"`
		SimplifiedLemma *string `json:"sl"`
		PartOfSpeech    *string `json:"p"`
		Definition      *string `json:"d"`
	}
	if err := json.Unmarshal(b, &raw); err != nil {
		return err //nolint:wrapcheck // wrapped by the decoder.
	}
	if raw.ID == nil || *raw.ID == None {
		return fmt.Errorf("%w: missing", ErrInvalidID)
	}

	*r = Record{
		ID:              *raw.ID,
		Lemma:           deref(raw.Lemma),
		SimplifiedLemma: deref(raw.SimplifiedLemma),
		PartOfSpeech:    deref(raw.PartOfSpeech),
		Definition:      deref(raw.Definition),
	}
	return nil
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

// Title returns the text shown for the record in an index listing, e.g.
// "635. foc (s. m.)".
func (r *Record) Title() string {
	lemma := r.Lemma
	if lemma == "" {
		lemma = "[No Lemma]"
	}
	title := string(r.ID) + ". " + lemma
	if r.PartOfSpeech != "" {
		title += " (" + r.PartOfSpeech + ")"
	}
	return title
}

// Decode reads an index document from r. Records are returned in document
// order.
func Decode(r io.Reader) ([]*Record, error) {
	var records []*Record
	if err := json.NewDecoder(r).Decode(&records); err != nil {
		return nil, fmt.Errorf("decoding index: %w", err)
	}
	for i, rec := range records {
		if rec == nil {
			return nil, fmt.Errorf("decoding index: record %d is null", i)
		}
	}
	return records, nil
}
