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
	"fmt"
	"os"

	"github.com/urfave/cli/v2"

	"github.com/ianlewis/go-dictview/gen"
	"github.com/ianlewis/go-dictview/internal/logging"
)

var generateCommand = &cli.Command{
	Name:         "generate",
	Usage:        "generate a dictionary from entry documents",
	ArgsUsage:    "INPUT_DIR OUTPUT_DIR",
	OnUsageError: usageError,
	Description: `Render every entry_<n>.xml document in INPUT_DIR to OUTPUT_DIR and
write the dictionary index. With --split, FILE is first split into entry
documents in INPUT_DIR.`,
	Flags: []cli.Flag{
		&cli.BoolFlag{
			Name:               "dictzip",
			Usage:              "compress output files with dictzip",
			DisableDefaultText: true,
		},
		&cli.IntFlag{
			Name:    "jobs",
			Usage:   "process `N` entries at once",
			Aliases: []string{"j"},
		},
		&cli.StringFlag{
			Name:  "split",
			Usage: "split the combined document `FILE` into INPUT_DIR first",
		},
	},
	Action: func(c *cli.Context) error {
		if c.NArg() != 2 {
			return fmt.Errorf("%w: unexpected number of arguments", ErrFlagParse)
		}
		inDir, outDir := c.Args().Get(0), c.Args().Get(1)

		e, err := loadEnv(c)
		if err != nil {
			return err
		}
		defer e.Close()

		if path := c.String("split"); path != "" {
			n, err := splitFile(path, inDir)
			if err != nil {
				return err
			}
			fmt.Fprintf(c.App.ErrWriter, "Split %d entries into %s\n", n, inDir)
		}

		opts := &gen.Options{
			Logger:      logging.ForComponent(e.logger, logging.CompGen),
			Concurrency: c.Int("jobs"),
		}
		if c.Bool("dictzip") {
			opts.Compression = gen.DictZip
		}

		records, err := gen.New(opts).Generate(c.Context, inDir, outDir)
		if err != nil {
			return fmt.Errorf("%w: %w", ErrDictview, err)
		}
		_, err = fmt.Fprintf(c.App.Writer, "Generated %d entries in %s\n", len(records), outDir)
		return err //nolint:wrapcheck // write errors are returned as is.
	},
}

func splitFile(path, dir string) (int, error) {
	f, err := os.Open(path)
	if err != nil {
		return 0, fmt.Errorf("%w: %w", ErrDictview, err)
	}
	defer f.Close()

	n, err := gen.SplitToDir(f, dir)
	if err != nil {
		return n, fmt.Errorf("%w: %w", ErrDictview, err)
	}
	return n, nil
}
