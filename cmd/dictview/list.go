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
	"io"

	"github.com/rodaine/table"
	"github.com/urfave/cli/v2"

	"github.com/ianlewis/go-dictview/idx"
	"github.com/ianlewis/go-dictview/internal/textutil"
)

// definitionWidth is the number of definition characters shown in tables.
const definitionWidth = 60

var listCommand = &cli.Command{
	Name:         "list",
	Usage:        "list index entries",
	ArgsUsage:    "[FILTER]",
	OnUsageError: usageError,
	Description: `List the dictionary index. With FILTER, only entries whose lemma
contains FILTER or whose id starts with FILTER are listed.`,
	Action: func(c *cli.Context) error {
		if c.NArg() > 1 {
			return fmt.Errorf("%w: unexpected number of arguments", ErrFlagParse)
		}

		e, err := loadEnv(c)
		if err != nil {
			return err
		}
		defer e.Close()

		b, err := e.startBrowser(c.Context)
		if err != nil {
			return err
		}
		defer b.Close()

		records := b.Filter(c.Args().First())
		if len(records) == 0 {
			_, err := fmt.Fprintln(c.App.Writer, "No matching entries in index.")
			return err //nolint:wrapcheck // write errors are returned as is.
		}
		printRecords(c.App.Writer, records)
		return nil
	},
}

func printRecords(w io.Writer, records []*idx.Record) {
	tbl := table.New("ID", "Lemma", "POS", "Definition").WithWriter(w)
	for _, r := range records {
		lemma := r.Lemma
		if lemma == "" {
			lemma = "[No Lemma]"
		}
		tbl.AddRow(r.ID, lemma, r.PartOfSpeech, textutil.Truncate(r.Definition, definitionWidth))
	}
	tbl.Print()
}
