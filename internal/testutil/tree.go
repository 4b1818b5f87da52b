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

// Package testutil contains helpers for writing test dictionaries.
package testutil

import (
	"compress/gzip"
	"os"
	"path/filepath"
	"testing"

	"github.com/ianlewis/go-dictzip"
)

// Compression selects how MakeTree writes files.
type Compression int

const (
	// None writes plain files.
	None Compression = iota

	// DictZip compresses files with dictzip and adds a '.dz' extension.
	DictZip

	// Gzip compresses files with gzip and adds a '.gz' extension.
	Gzip
)

// MakeTreeOptions are options for MakeTree.
type MakeTreeOptions struct {
	// Compression applies to every file in the tree.
	Compression Compression
}

// MakeTree writes a dictionary tree to a temporary directory and returns its
// path. files maps slash separated resource names to their content.
func MakeTree(t *testing.T, files map[string]string, opts *MakeTreeOptions) string {
	t.Helper()
	if opts == nil {
		opts = &MakeTreeOptions{}
	}

	root := t.TempDir()
	for name, content := range files {
		path := filepath.Join(root, filepath.FromSlash(name))
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			t.Fatal(err)
		}
		WriteFile(t, path, []byte(content), opts.Compression)
	}
	return root
}

// WriteFile writes data to path using the given compression.
func WriteFile(t *testing.T, path string, data []byte, c Compression) {
	t.Helper()

	switch c {
	case DictZip:
		path += ".dz"
	case Gzip:
		path += ".gz"
	}

	f, err := os.Create(path)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()

	switch c {
	case DictZip:
		z, err := dictzip.NewWriter(f)
		if err != nil {
			t.Fatal(err)
		}
		if _, err := z.Write(data); err != nil {
			t.Fatal(err)
		}
		if err := z.Close(); err != nil {
			t.Fatal(err)
		}
	case Gzip:
		z := gzip.NewWriter(f)
		if _, err := z.Write(data); err != nil {
			t.Fatal(err)
		}
		if err := z.Close(); err != nil {
			t.Fatal(err)
		}
	default:
		if _, err := f.Write(data); err != nil {
			t.Fatal(err)
		}
	}
}
