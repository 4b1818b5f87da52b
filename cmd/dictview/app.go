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
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/urfave/cli/v2"
	"sigs.k8s.io/release-utils/version"

	"github.com/ianlewis/go-dictview"
	"github.com/ianlewis/go-dictview/internal/config"
	"github.com/ianlewis/go-dictview/internal/logging"
	"github.com/ianlewis/go-dictview/nav"
	"github.com/ianlewis/go-dictview/source"
)

const (
	// ExitCodeSuccess is successful error code.
	ExitCodeSuccess int = iota

	// ExitCodeFlagParseError is the exit code for a flag parsing error.
	ExitCodeFlagParseError

	// ExitCodeUnknownError is the exit code for an unknown error.
	ExitCodeUnknownError
)

// ErrDictview is a parent error for all command errors.
var ErrDictview = errors.New("dictview")

// ErrFlagParse is a flag parsing error.
var ErrFlagParse = fmt.Errorf("%w: parsing flags", ErrDictview)

// ErrNoDictionary indicates that no dictionary location was given or found.
var ErrNoDictionary = fmt.Errorf("%w: no dictionary found", ErrDictview)

var copyrightNames = []string{
	"2025 Ian Lewis",
}

//nolint:gochecknoinits // init needed needed for global variable.
func init() {
	// Set the HelpFlag to a random name so that it isn't used. `cli` handles
	// the flag with the root command such that it takes a command name argument
	// which shadows our own help flag.
	//
	// This flag is hidden by the help output.
	// See: github.com/urfave/cli/issues/1809
	cli.HelpFlag = &cli.BoolFlag{
		// NOTE: Use a random name no one would guess.
		Name:               "d41d8cd98f00b204e980",
		DisableDefaultText: true,
	}
}

// check checks the error and panics if not nil.
func check(err error) {
	if err != nil {
		panic(err)
	}
}

func newDictviewApp() *cli.App {
	return &cli.App{
		Name:  filepath.Base(os.Args[0]),
		Usage: "Browse static dictionaries.",
		Description: strings.Join([]string{
			"Dictionary browser written in Go.",
			"http://github.com/ianlewis/go-dictview",
		}, "\n"),
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "source",
				Usage:   "read the dictionary from `LOCATION` (directory or URL)",
				Aliases: []string{"s"},
				EnvVars: []string{"DICTVIEW_SOURCE"},
			},
			&cli.StringFlag{
				Name:    "config",
				Usage:   "read configuration from `FILE`",
				Aliases: []string{"c"},
			},
			&cli.StringFlag{
				Name:  "log-dir",
				Usage: "write logs to `DIR`",
			},
			&cli.StringFlag{
				Name:  "log-level",
				Usage: "minimum log `LEVEL` (debug, info, warn, error)",
			},

			// Special flags are shown at the end.
			&cli.BoolFlag{
				Name:               "help",
				Usage:              "print this help text and exit",
				Aliases:            []string{"h"},
				DisableDefaultText: true,
			},
			&cli.BoolFlag{
				Name:               "version",
				Usage:              "print version information and exit",
				Aliases:            []string{"V"},
				DisableDefaultText: true,
			},
		},
		Copyright:       strings.Join(copyrightNames, "\n"),
		HideHelp:        true,
		HideHelpCommand: true,
		OnUsageError:    usageError,
		Action: func(c *cli.Context) error {
			if c.Bool("version") {
				return printVersion(c)
			}

			check(cli.ShowAppHelp(c))
			return nil
		},
		Commands: []*cli.Command{
			browseCommand,
			listCommand,
			suggestCommand,
			showCommand,
			generateCommand,
		},
	}
}

// usageError wraps flag parsing errors so that main exits with
// ExitCodeFlagParseError.
func usageError(_ *cli.Context, err error, _ bool) error {
	return fmt.Errorf("%w: %w", ErrFlagParse, err)
}

func printVersion(c *cli.Context) error {
	versionInfo := version.GetVersionInfo()
	_, err := fmt.Fprintf(c.App.Writer, `%s %s
Copyright (c) %s

%s`, c.App.Name, versionInfo.GitVersion, c.App.Copyright, versionInfo.String())
	if err != nil {
		return fmt.Errorf("%w: printing version: %w", ErrDictview, err)
	}
	return nil
}

// env holds the settings shared by all commands.
type env struct {
	cfg    *config.Config
	logger *slog.Logger
	closer io.Closer
}

func (e *env) Close() {
	_ = e.closer.Close()
}

func loadEnv(c *cli.Context) (*env, error) {
	path := c.String("config")
	if path == "" {
		p, err := config.Path()
		if err != nil {
			return nil, fmt.Errorf("%w: %w", ErrDictview, err)
		}
		path = p
	}

	cfg, err := config.Load(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrDictview, err)
	}

	if dir := c.String("log-dir"); dir != "" {
		cfg.Log.Dir = dir
	}
	if level := c.String("log-level"); level != "" {
		cfg.Log.Level = level
	}
	if s := c.String("source"); s != "" {
		cfg.Source = s
	}

	logger, closer := logging.New(cfg.Logging())
	return &env{
		cfg:    cfg,
		logger: logger,
		closer: closer,
	}, nil
}

// sourceLocation returns the configured dictionary location or the first
// default location that holds an index.
func (e *env) sourceLocation() (string, error) {
	if e.cfg.Source != "" {
		return e.cfg.Source, nil
	}
	for _, dir := range dictLocations() {
		matches, _ := filepath.Glob(filepath.Join(dir, source.IndexName+"*"))
		if len(matches) > 0 {
			return dir, nil
		}
	}
	return "", ErrNoDictionary
}

// newBrowser returns a Browser for the configured dictionary. loc may be nil.
func (e *env) newBrowser(loc nav.Location) (*dictview.Browser, error) {
	location, err := e.sourceLocation()
	if err != nil {
		return nil, err
	}
	fetcher, err := source.Open(location)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrDictview, err)
	}
	e.logger.Debug("opened dictionary", "source", location)

	return dictview.New(fetcher, &dictview.Options{
		Location: loc,
		Debounce: e.cfg.Search.Debounce.Duration,
		Suggest:  e.cfg.SuggestOptions(),
		Logger:   e.logger,
	}), nil
}

// startBrowser returns a Browser with its index loaded.
func (e *env) startBrowser(ctx context.Context) (*dictview.Browser, error) {
	b, err := e.newBrowser(nil)
	if err != nil {
		return nil, err
	}
	if err := b.Start(ctx); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrDictview, err)
	}
	return b, nil
}
