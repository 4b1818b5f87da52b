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

package main

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/ianlewis/go-dictview/internal/testutil"
	"github.com/ianlewis/go-dictview/source"
)

const testIndex = `[
  {"id": 1, "l": "a", "sl": "a", "p": null, "d": "first letter"},
  {"id": 2, "l": "abac", "sl": "abac", "p": "s. n.", "d": "abacus"},
  {"id": 635, "l": "foc", "sl": "foc", "p": "s. m.", "d": "fire"},
  {"id": 636, "l": "focar", "sl": "focar", "p": "s. n.", "d": "hearth; fire place"}
]`

func makeDict(t *testing.T) string {
	t.Helper()
	return testutil.MakeTree(t, map[string]string{
		source.IndexName:       testIndex,
		source.EntryName("635"): "<html><head><title>Title</title></head><body>foc</body></html>",
	}, &testutil.MakeTreeOptions{Compression: testutil.DictZip})
}

// run runs the app with an empty configuration and returns its output.
func run(t *testing.T, args ...string) (string, error) {
	t.Helper()

	var out, errOut bytes.Buffer
	app := newDictviewApp()
	app.Writer = &out
	app.ErrWriter = &errOut

	cfg := filepath.Join(t.TempDir(), "config.toml")
	err := app.Run(append([]string{"dictview", "--config", cfg}, args...))
	return out.String(), err
}

func TestList(t *testing.T) {
	t.Parallel()

	dir := makeDict(t)

	out, err := run(t, "--source", dir, "list", "FOC")
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	for _, want := range []string{"ID", "Definition", "635", "foc", "s. m.", "636", "focar"} {
		if !strings.Contains(out, want) {
			t.Errorf("list: missing %q in:\n%s", want, out)
		}
	}
	if strings.Contains(out, "abac") {
		t.Errorf("list: unexpected entry in:\n%s", out)
	}

	out, err = run(t, "--source", dir, "list", "zzz")
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if got, want := out, "No matching entries in index.\n"; got != want {
		t.Fatalf("list: got %q, want %q", got, want)
	}
}

func TestSuggest(t *testing.T) {
	t.Parallel()

	dir := makeDict(t)

	out, err := run(t, "--source", dir, "suggest", "fire")
	if err != nil {
		t.Fatalf("suggest: %v", err)
	}
	for _, want := range []string{"635", "636", "hearth; fire place"} {
		if !strings.Contains(out, want) {
			t.Errorf("suggest: missing %q in:\n%s", want, out)
		}
	}

	out, err = run(t, "--source", dir, "suggest", "f")
	if err != nil {
		t.Fatalf("suggest: %v", err)
	}
	if got, want := out, "Queries need at least 2 characters.\n"; got != want {
		t.Fatalf("suggest: got %q, want %q", got, want)
	}
}

func TestShow(t *testing.T) {
	t.Parallel()

	dir := makeDict(t)

	out, err := run(t, "--source", dir, "show", "entry-635")
	if err != nil {
		t.Fatalf("show: %v", err)
	}
	if got, want := out, "635. foc (s. m.)\n\nfoc\n"; got != want {
		t.Fatalf("show: got %q, want %q", got, want)
	}

	_, err = run(t, "--source", dir, "show", "2")
	if !errors.Is(err, ErrDictview) {
		t.Fatalf("show: expected ErrDictview, got %v", err)
	}
	if !strings.Contains(err.Error(), "Entry file not found (entries/entry_2.html)") {
		t.Fatalf("show: got %v", err)
	}
}

func TestGenerate(t *testing.T) {
	t.Parallel()

	tmp := t.TempDir()
	combined := filepath.Join(tmp, "all.xml")
	err := os.WriteFile(combined, []byte(`<dictionary>
<entry number="635">
  <lemma>foc</lemma>
  <pos>s. m.</pos>
  <definition>„fire“</definition>
</entry>
<entry number="2">
  <lemma>abac</lemma>
</entry>
</dictionary>
`), 0o600)
	if err != nil {
		t.Fatal(err)
	}
	in, out := filepath.Join(tmp, "words"), filepath.Join(tmp, "dict")

	stdout, err := run(t, "generate", "--split", combined, "-j", "2", in, out)
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	if got, want := stdout, "Generated 2 entries in "+out+"\n"; got != want {
		t.Fatalf("generate: got %q, want %q", got, want)
	}

	stdout, err = run(t, "--source", out, "show", "635")
	if err != nil {
		t.Fatalf("show: %v", err)
	}
	if !strings.HasPrefix(stdout, "635. foc (s. m.)\n\n") || !strings.Contains(stdout, "fire") {
		t.Fatalf("show: got %q", stdout)
	}
}

func TestVersion(t *testing.T) {
	t.Parallel()

	out, err := run(t, "--version")
	if err != nil {
		t.Fatalf("--version: %v", err)
	}
	if !strings.Contains(out, "Copyright (c) 2025 Ian Lewis") {
		t.Fatalf("--version: got %q", out)
	}
}

func TestArgs(t *testing.T) {
	t.Parallel()

	_, err := run(t, "--source", t.TempDir(), "show")
	if !errors.Is(err, ErrFlagParse) {
		t.Fatalf("show: expected ErrFlagParse, got %v", err)
	}

	_, err = run(t, "generate", "--jobs", "many", "in", "out")
	if !errors.Is(err, ErrFlagParse) {
		t.Fatalf("generate: expected ErrFlagParse, got %v", err)
	}
}

func TestInitialFragment(t *testing.T) {
	t.Parallel()

	testCases := map[string]string{
		"":           "",
		"#":          "",
		"#entry-635": "entry-635",
		"entry-635":  "entry-635",
		"635":        "entry-635",
	}
	for in, want := range testCases {
		if got := initialFragment(in); got != want {
			t.Errorf("initialFragment(%q): got %q, want %q", in, got, want)
		}
	}
}
