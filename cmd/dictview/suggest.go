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

	"github.com/urfave/cli/v2"

	"github.com/ianlewis/go-dictview/search"
)

var suggestCommand = &cli.Command{
	Name:         "suggest",
	Usage:        "show search suggestions",
	ArgsUsage:    "QUERY",
	OnUsageError: usageError,
	Description: `Show the suggestions offered for QUERY. Entries match when their id
starts with QUERY or when their lemma, simplified lemma or definition contains
it.`,
	Action: func(c *cli.Context) error {
		if c.NArg() != 1 {
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

		opts := e.cfg.SuggestOptions()
		res := search.Suggest(b.Records(), c.Args().First(), opts)
		switch {
		case !res.Searching:
			_, err = fmt.Fprintf(c.App.Writer, "Queries need at least %d characters.\n", max(opts.MinQueryLength, 1))
		case len(res.Records) == 0:
			_, err = fmt.Fprintln(c.App.Writer, "No matching entries found.")
		default:
			printRecords(c.App.Writer, res.Records)
		}
		return err //nolint:wrapcheck // write errors are returned as is.
	},
}
