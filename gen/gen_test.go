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

package gen_test

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/ianlewis/go-dictview/gen"
	"github.com/ianlewis/go-dictview/idx"
	"github.com/ianlewis/go-dictview/source"
)

func TestParseEntry(t *testing.T) {
	t.Parallel()

	testCases := map[string]struct {
		doc  string
		want *idx.Record
		err  error
	}{
		"full": {
			doc: `<entry number="635"><lemma>Foc</lemma><pos>s. m.</pos>` +
				`<senses><sense><definition>„fire“ &amp; smoke</definition></sense></senses></entry>`,
			want: &idx.Record{
				ID:              "635",
				Lemma:           "Foc",
				SimplifiedLemma: "foc",
				PartOfSpeech:    "s. m.",
				Definition:      "fire & smoke",
			},
		},
		"diacritics": {
			doc: `<entry number="12"><lemma>  Ăbur
				</lemma><definition>"steam"</definition></entry>`,
			want: &idx.Record{
				ID:              "12",
				Lemma:           "Ăbur",
				SimplifiedLemma: "abur",
				Definition:      "steam",
			},
		},
		"no lemma": {
			doc: `<entry number="3"></entry>`,
			want: &idx.Record{
				ID:              "3",
				Lemma:           "N/A",
				SimplifiedLemma: "n/a",
			},
		},
		"sense definition first": {
			doc: `<entry number="4"><lemma>a</lemma>` +
				`<senses><sense><definition>sense</definition></sense></senses>` +
				`<definition>direct</definition></entry>`,
			want: &idx.Record{
				ID:              "4",
				Lemma:           "a",
				SimplifiedLemma: "a",
				Definition:      "sense",
			},
		},
		"nested definition fallback": {
			doc: `<entry number="5"><lemma>a</lemma>` +
				`<etym><definition>nested</definition></etym>` +
				`<other><senses><sense><definition>deep</definition></sense></senses></other></entry>`,
			want: &idx.Record{
				ID:              "5",
				Lemma:           "a",
				SimplifiedLemma: "a",
				Definition:      "nested",
			},
		},
		"pos only direct child": {
			doc: `<entry number="6"><lemma>a</lemma><x><pos>n.</pos></x></entry>`,
			want: &idx.Record{
				ID:              "6",
				Lemma:           "a",
				SimplifiedLemma: "a",
			},
		},
		"not entry": {
			doc: `<word number="1"></word>`,
			err: gen.ErrNotEntry,
		},
		"no number": {
			doc: `<entry><lemma>a</lemma></entry>`,
			err: gen.ErrMissingNumber,
		},
	}

	for name, tc := range testCases {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			e, err := gen.ParseEntry(strings.NewReader(tc.doc))
			if tc.err != nil {
				if !errors.Is(err, tc.err) {
					t.Fatalf("ParseEntry: expected %v, got %v", tc.err, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("ParseEntry: %v", err)
			}
			if diff := cmp.Diff(tc.want, e.Record); diff != "" {
				t.Fatalf("Record (-want, +got):\n%s", diff)
			}
		})
	}
}

func TestParseEntry_malformed(t *testing.T) {
	t.Parallel()

	if _, err := gen.ParseEntry(strings.NewReader(`<entry number="1"><lemma>a</entry>`)); err == nil {
		t.Fatal("ParseEntry: expected error")
	}
	if _, err := gen.ParseEntry(strings.NewReader(``)); err == nil {
		t.Fatal("ParseEntry(empty): expected error")
	}
}

func TestParseEntry_HTML(t *testing.T) {
	t.Parallel()

	e, err := gen.ParseEntry(strings.NewReader(
		`<entry number="635"><lemma>Foc</lemma><pos>s. m.</pos>` +
			`<senses><sense><definition>„fire“ &amp; <i>smoke</i></definition></sense></senses>` +
			`<ref target="x">see <b>x</b></ref></entry>`,
	))
	if err != nil {
		t.Fatalf("ParseEntry: %v", err)
	}

	want := `<article class="entry" id="entry-635">` +
		`<h2 class="lemma">Foc</h2>` +
		`<span class="pos">s. m.</span>` +
		`<ol class="senses"><li class="sense"><p class="definition">„fire“ &amp; <i class="i">smoke</i></p></li></ol>` +
		`<div class="ref">see <b class="b">x</b></div>` +
		"</article>\n"
	if diff := cmp.Diff(want, string(e.HTML)); diff != "" {
		t.Fatalf("HTML (-want, +got):\n%s", diff)
	}
}

func TestEntryFiles(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	for _, name := range []string{"entry_10.xml", "entry_2.xml", "entry_x.xml", "notes.txt", "entry_1.html"} {
		if err := os.WriteFile(filepath.Join(dir, name), nil, 0o600); err != nil {
			t.Fatal(err)
		}
	}
	if err := os.Mkdir(filepath.Join(dir, "entry_3.xml"), 0o755); err != nil {
		t.Fatal(err)
	}

	got, err := gen.EntryFiles(dir)
	if err != nil {
		t.Fatalf("EntryFiles: %v", err)
	}
	if diff := cmp.Diff([]string{"entry_2.xml", "entry_10.xml", "entry_x.xml"}, got); diff != "" {
		t.Fatalf("EntryFiles (-want, +got):\n%s", diff)
	}
}

func TestWriteIndex(t *testing.T) {
	t.Parallel()

	var b strings.Builder
	err := gen.WriteIndex(&b, []*idx.Record{
		{ID: "635", Lemma: "foc", SimplifiedLemma: "foc", PartOfSpeech: "s. m.", Definition: "<fire>"},
		{ID: "1", Lemma: "a", SimplifiedLemma: "a"},
	})
	if err != nil {
		t.Fatalf("WriteIndex: %v", err)
	}

	want := `[
  {
    "id": "635",
    "l": "foc",
    "sl": "foc",
    "d": "<fire>",
    "p": "s. m."
  },
  {
    "id": "1",
    "l": "a",
    "sl": "a",
    "d": "",
    "p": null
  }
]
`
	if diff := cmp.Diff(want, b.String()); diff != "" {
		t.Fatalf("WriteIndex (-want, +got):\n%s", diff)
	}
}

func writeEntries(t *testing.T, docs map[string]string) string {
	t.Helper()
	dir := t.TempDir()
	for name, doc := range docs {
		if err := os.WriteFile(filepath.Join(dir, name), []byte(doc), 0o600); err != nil {
			t.Fatal(err)
		}
	}
	return dir
}

func TestGenerator_Generate(t *testing.T) {
	t.Parallel()

	for name, c := range map[string]gen.Compression{"plain": gen.None, "dictzip": gen.DictZip} {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			in := writeEntries(t, map[string]string{
				"entry_636.xml": `<entry number="636"><lemma>focar</lemma><definition>hearth</definition></entry>`,
				"entry_2.xml":   `<entry number="2"><lemma>abac</lemma><pos>s. n.</pos><definition>abacus</definition></entry>`,
				"entry_635.xml": `<entry number="635"><lemma>foc</lemma><pos>s. m.</pos><definition>fire</definition></entry>`,
			})
			out := t.TempDir()

			g := gen.New(&gen.Options{Concurrency: 2, Compression: c})
			records, err := g.Generate(context.Background(), in, out)
			if err != nil {
				t.Fatalf("Generate: %v", err)
			}

			var ids []idx.ID
			for _, r := range records {
				ids = append(ids, r.ID)
			}
			if diff := cmp.Diff([]idx.ID{"2", "635", "636"}, ids); diff != "" {
				t.Fatalf("Generate (-want, +got):\n%s", diff)
			}

			// The generated tree can be read back like any dictionary.
			dir, err := source.NewDir(out)
			if err != nil {
				t.Fatalf("NewDir: %v", err)
			}
			b, err := dir.Fetch(context.Background(), source.IndexName)
			if err != nil {
				t.Fatalf("Fetch(index): %v", err)
			}
			decoded, err := idx.Decode(strings.NewReader(string(b)))
			if err != nil {
				t.Fatalf("Decode: %v", err)
			}
			if diff := cmp.Diff(records, decoded); diff != "" {
				t.Fatalf("index (-want, +got):\n%s", diff)
			}

			html, err := dir.Fetch(context.Background(), source.EntryName("635"))
			if err != nil {
				t.Fatalf("Fetch(entry): %v", err)
			}
			if !strings.Contains(string(html), `<h2 class="lemma">foc</h2>`) {
				t.Fatalf("entry HTML: got %q", html)
			}
		})
	}
}

func TestGenerator_Generate_invalid(t *testing.T) {
	t.Parallel()

	in := writeEntries(t, map[string]string{
		"entry_1.xml": `<entry number="1"><lemma>a</lemma></entry>`,
		"entry_2.xml": `<word number="2"></word>`,
	})

	_, err := gen.New(nil).Generate(context.Background(), in, t.TempDir())
	if !errors.Is(err, gen.ErrNotEntry) {
		t.Fatalf("Generate: expected ErrNotEntry, got %v", err)
	}
	if !strings.Contains(err.Error(), "entry_2.xml") {
		t.Fatalf("Generate: error %q does not name the file", err)
	}
}

func TestSplit(t *testing.T) {
	t.Parallel()

	combined := `<?xml version="1.0"?>
<dictionary>
  <entry number="1">
    <lemma>a</lemma>
  </entry>
  <comment>ignored</comment>
  <entry number="2" type="x">
    <lemma>abac</lemma>
  </entry>
  <entry>
    <lemma>no number</lemma>
  </entry>
</dictionary>
`
	type doc struct {
		Number string
		Doc    string
	}
	var got []doc
	err := gen.Split(strings.NewReader(combined), func(number string, b []byte) error {
		got = append(got, doc{number, string(b)})
		return nil
	})
	if err != nil {
		t.Fatalf("Split: %v", err)
	}

	want := []doc{
		{"1", "<entry number=\"1\">\n<lemma>a</lemma>\n</entry>\n"},
		{"2", "<entry number=\"2\" type=\"x\">\n<lemma>abac</lemma>\n</entry>\n"},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("Split (-want, +got):\n%s", diff)
	}
}

func TestSplitToDir(t *testing.T) {
	t.Parallel()

	dir := filepath.Join(t.TempDir(), "words")
	n, err := gen.SplitToDir(strings.NewReader(
		"<entry number=\"7\">\n<lemma>b</lemma>\n</entry>\n",
	), dir)
	if err != nil {
		t.Fatalf("SplitToDir: %v", err)
	}
	if n != 1 {
		t.Fatalf("SplitToDir: got %d entries, want 1", n)
	}

	e, err := os.Open(filepath.Join(dir, "entry_7.xml"))
	if err != nil {
		t.Fatal(err)
	}
	defer e.Close()
	parsed, err := gen.ParseEntry(e)
	if err != nil {
		t.Fatalf("ParseEntry: %v", err)
	}
	if got, want := parsed.Record.Lemma, "b"; got != want {
		t.Fatalf("Lemma: got %q, want %q", got, want)
	}
}
