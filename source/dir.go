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

package source

import (
	"compress/gzip"
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/ianlewis/go-dictzip"
)

// compressedExts are tried in order after the plain resource name.
var compressedExts = []string{
	"",
	".dz",
	".DZ",
	".gz",
	".GZ",
}

// Dir fetches resources from a local directory.
type Dir struct {
	root string
}

// NewDir returns a fetcher rooted at the directory path.
func NewDir(path string) (*Dir, error) {
	info, err := os.Stat(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrNotFound, path)
		}
		return nil, fmt.Errorf("opening %q: %w", path, err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("%q is not a directory", path)
	}
	return &Dir{root: path}, nil
}

// Root returns the directory path.
func (d *Dir) Root() string {
	return d.root
}

// Fetch implements [Fetcher.Fetch].
func (d *Dir) Fetch(ctx context.Context, name string) ([]byte, error) {
	if !fs.ValidPath(name) {
		return nil, fmt.Errorf("%w: invalid name %q", ErrNotFound, name)
	}

	base := filepath.Join(d.root, filepath.FromSlash(name))

	var f *os.File
	var err error
	for _, ext := range compressedExts {
		if err := ctx.Err(); err != nil {
			return nil, err //nolint:wrapcheck // context errors are returned as is.
		}
		f, err = os.Open(base + ext)
		if err == nil {
			break
		}
		if !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("opening %s: %w", name, err)
		}
	}

	// Catch the case when no file was found.
	if err != nil {
		return nil, fmt.Errorf("%w (%s)", ErrNotFound, name)
	}
	defer f.Close()

	var r io.Reader = f
	switch strings.ToLower(filepath.Ext(f.Name())) {
	case ".dz":
		z, err := dictzip.NewReader(f)
		if err != nil {
			return nil, fmt.Errorf("opening dictzip %s: %w", name, err)
		}
		r = z
	case ".gz":
		z, err := gzip.NewReader(f)
		if err != nil {
			return nil, fmt.Errorf("opening gzip %s: %w", name, err)
		}
		defer z.Close()
		r = z
	}

	b, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", name, err)
	}
	return b, nil
}
