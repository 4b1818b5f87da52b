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
	"strings"

	"github.com/urfave/cli/v2"

	"github.com/ianlewis/go-dictview/internal/tui"
	"github.com/ianlewis/go-dictview/nav"
)

// initialFragment turns a deep link argument into a location fragment. Both
// "#entry-<id>" and a bare id are accepted.
func initialFragment(arg string) string {
	arg = strings.TrimPrefix(arg, "#")
	if arg == "" {
		return ""
	}
	if _, ok := nav.ParseFragment(arg); ok {
		return arg
	}
	return nav.Fragment(parseID(arg))
}

var browseCommand = &cli.Command{
	Name:         "browse",
	Usage:        "browse the dictionary interactively",
	ArgsUsage:    "[#entry-ID]",
	OnUsageError: usageError,
	Description: `Open the interactive browser. The optional argument selects an entry
once the index has loaded.`,
	Action: func(c *cli.Context) error {
		if c.NArg() > 1 {
			return fmt.Errorf("%w: unexpected number of arguments", ErrFlagParse)
		}

		e, err := loadEnv(c)
		if err != nil {
			return err
		}
		defer e.Close()

		loc := nav.NewMemoryLocation(initialFragment(c.Args().First()))
		b, err := e.newBrowser(loc)
		if err != nil {
			return err
		}
		defer b.Close()

		if err := tui.Run(c.Context, b, loc); err != nil {
			return fmt.Errorf("%w: %w", ErrDictview, err)
		}
		return nil
	},
}
