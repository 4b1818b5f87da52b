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

	"github.com/ianlewis/go-dictview"
	"github.com/ianlewis/go-dictview/entry"
	"github.com/ianlewis/go-dictview/idx"
	"github.com/ianlewis/go-dictview/nav"
)

// parseID accepts an entry id or an "entry-<id>" fragment.
func parseID(s string) idx.ID {
	if id, ok := nav.ParseFragment(s); ok {
		return id
	}
	return idx.ID(s)
}

var showCommand = &cli.Command{
	Name:         "show",
	Usage:        "print an entry",
	ArgsUsage:    "ID",
	OnUsageError: usageError,
	Flags: []cli.Flag{
		&cli.BoolFlag{
			Name:               "html",
			Usage:              "print the entry's HTML instead of text",
			DisableDefaultText: true,
		},
	},
	Action: func(c *cli.Context) error {
		if c.NArg() != 1 {
			return fmt.Errorf("%w: unexpected number of arguments", ErrFlagParse)
		}
		id := parseID(c.Args().First())
		if id == idx.None {
			return fmt.Errorf("%w: empty entry id", ErrFlagParse)
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

		done := make(chan entry.Content, 1)
		unsubscribe := b.Subscribe(func(ev dictview.Event) {
			ce, ok := ev.(dictview.ContentEvent)
			if !ok || ce.Content.ID != id {
				return
			}
			if ce.Content.State == entry.Ready || ce.Content.State == entry.Error {
				select {
				case done <- ce.Content:
				default:
				}
			}
		})
		defer unsubscribe()

		b.Select(id)

		var content entry.Content
		select {
		case content = <-done:
		case <-c.Context.Done():
			return fmt.Errorf("%w: %w", ErrDictview, c.Context.Err())
		}
		if content.State == entry.Error {
			return fmt.Errorf("%w: %s", ErrDictview, content.Message())
		}

		if c.Bool("html") {
			_, err = fmt.Fprintln(c.App.Writer, content.HTML)
			return err //nolint:wrapcheck // write errors are returned as is.
		}
		if r, ok := b.Lookup(id); ok {
			if _, err := fmt.Fprintf(c.App.Writer, "%s\n\n", r.Title()); err != nil {
				return err //nolint:wrapcheck // write errors are returned as is.
			}
		}
		_, err = fmt.Fprintln(c.App.Writer, content.Text())
		return err //nolint:wrapcheck // write errors are returned as is.
	},
}
