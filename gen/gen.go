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

// Package gen generates a dictionary tree from per-entry XML documents.
//
// Every document named entry_<n>.xml in the input directory is rendered to
// entries/entry_<n>.html in the output directory, and index_data.json
// receives one index record per entry, ordered by entry number.
package gen

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"math"
	"os"
	"path/filepath"
	"runtime"
	"sort"
	"strconv"
	"strings"

	"github.com/ianlewis/go-dictzip"
	"golang.org/x/sync/errgroup"

	"github.com/ianlewis/go-dictview/idx"
	"github.com/ianlewis/go-dictview/internal/logging"
	"github.com/ianlewis/go-dictview/source"
)

// Compression selects how output files are written.
type Compression int

const (
	// None writes plain files.
	None Compression = iota

	// DictZip compresses output files with dictzip and adds a '.dz'
	// extension.
	DictZip
)

// Options are options for a Generator.
type Options struct {
	// Logger receives progress. Defaults to discarding output.
	Logger *slog.Logger

	// Concurrency is the number of entries processed at once. Defaults to
	// GOMAXPROCS.
	Concurrency int

	// Compression applies to every output file.
	Compression Compression
}

// DefaultOptions is the default options for a Generator.
var DefaultOptions = &Options{}

// Generator writes dictionary trees.
type Generator struct {
	logger      *slog.Logger
	concurrency int
	compression Compression
}

// New returns a new Generator.
func New(opts *Options) *Generator {
	if opts == nil {
		opts = DefaultOptions
	}
	logger := opts.Logger
	if logger == nil {
		logger = logging.Discard()
	}
	n := opts.Concurrency
	if n <= 0 {
		n = runtime.GOMAXPROCS(0)
	}

	return &Generator{
		logger:      logger,
		concurrency: n,
		compression: opts.Compression,
	}
}

// EntryFiles returns the names of the entry documents in dir ordered by entry
// number. Names without a numeric part sort last.
func EntryFiles(dir string) ([]string, error) {
	dirEntries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("listing entries: %w", err)
	}

	var names []string
	for _, e := range dirEntries {
		name := e.Name()
		if e.IsDir() || !strings.HasPrefix(name, "entry_") || !strings.HasSuffix(name, ".xml") {
			continue
		}
		names = append(names, name)
	}

	sort.SliceStable(names, func(i, j int) bool {
		ni, nj := entryNumber(names[i]), entryNumber(names[j])
		if ni != nj {
			return ni < nj
		}
		return names[i] < names[j]
	})
	return names, nil
}

func entryNumber(name string) int {
	s := strings.TrimSuffix(strings.TrimPrefix(name, "entry_"), ".xml")
	n, err := strconv.Atoi(s)
	if err != nil {
		return math.MaxInt
	}
	return n
}

// Generate renders the entry documents in inDir into a dictionary tree in
// outDir and returns the index records written.
func (g *Generator) Generate(ctx context.Context, inDir, outDir string) ([]*idx.Record, error) {
	names, err := EntryFiles(inDir)
	if err != nil {
		return nil, err
	}

	entriesDir := filepath.Join(outDir, source.EntriesDir)
	if err := os.MkdirAll(entriesDir, 0o755); err != nil {
		return nil, fmt.Errorf("creating output directory: %w", err)
	}

	records := make([]*idx.Record, len(names))
	eg, ctx := errgroup.WithContext(ctx)
	eg.SetLimit(g.concurrency)
	for i, name := range names {
		eg.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err //nolint:wrapcheck // context errors are returned as is.
			}
			rec, err := g.generateEntry(filepath.Join(inDir, name), outDir)
			if err != nil {
				return fmt.Errorf("%s: %w", name, err)
			}
			records[i] = rec
			return nil
		})
	}
	if err := eg.Wait(); err != nil {
		return nil, err //nolint:wrapcheck // errors are annotated with the file name.
	}

	if err := g.writeIndex(outDir, records); err != nil {
		return nil, err
	}
	g.logger.Info("generated dictionary", "entries", len(records), "output", outDir)
	return records, nil
}

func (g *Generator) generateEntry(path, outDir string) (*idx.Record, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening entry: %w", err)
	}
	defer f.Close()

	e, err := ParseEntry(f)
	if err != nil {
		return nil, err
	}

	name := source.EntryName(string(e.Record.ID))
	if err := g.writeFile(filepath.Join(outDir, filepath.FromSlash(name)), e.HTML); err != nil {
		return nil, err
	}
	g.logger.Debug("processed entry", "file", filepath.Base(path), "id", e.Record.ID)
	return e.Record, nil
}

// indexRecord is the serialized form of an index record. The part of speech
// is null when empty.
type indexRecord struct {
	ID              string  `json:"id"`
	Lemma           string  `json:"l"`
	SimplifiedLemma string  `json:"sl"`
	Definition      string  `json:"d"`
	PartOfSpeech    *string `json:"p"`
}

// WriteIndex writes records as an index document.
func WriteIndex(w io.Writer, records []*idx.Record) error {
	out := make([]indexRecord, 0, len(records))
	for _, r := range records {
		ir := indexRecord{
			ID:              string(r.ID),
			Lemma:           r.Lemma,
			SimplifiedLemma: r.SimplifiedLemma,
			Definition:      r.Definition,
		}
		if r.PartOfSpeech != "" {
			p := r.PartOfSpeech
			ir.PartOfSpeech = &p
		}
		out = append(out, ir)
	}

	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(out); err != nil {
		return fmt.Errorf("writing index: %w", err)
	}
	return nil
}

func (g *Generator) writeIndex(outDir string, records []*idx.Record) error {
	var b strings.Builder
	if err := WriteIndex(&b, records); err != nil {
		return err
	}
	return g.writeFile(filepath.Join(outDir, source.IndexName), []byte(b.String()))
}

func (g *Generator) writeFile(path string, data []byte) (err error) {
	if g.compression == DictZip {
		path += ".dz"
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating output: %w", err)
	}
	defer func() {
		if cerr := f.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("closing output: %w", cerr)
		}
	}()

	var w io.Writer = f
	if g.compression == DictZip {
		z, zerr := dictzip.NewWriter(f)
		if zerr != nil {
			return fmt.Errorf("creating dictzip writer: %w", zerr)
		}
		defer func() {
			if cerr := z.Close(); cerr != nil && err == nil {
				err = fmt.Errorf("closing dictzip writer: %w", cerr)
			}
		}()
		w = z
	}

	if _, werr := w.Write(data); werr != nil {
		return fmt.Errorf("writing output: %w", werr)
	}
	return nil
}
