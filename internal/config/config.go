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

// Package config loads the dictview configuration file.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/BurntSushi/toml"

	"github.com/ianlewis/go-dictview/internal/logging"
	"github.com/ianlewis/go-dictview/search"
)

// FileName is the name of the configuration file.
const FileName = "config.toml"

// ErrConfig indicates an invalid configuration file.
var ErrConfig = errors.New("invalid configuration")

// Duration is a time.Duration written as a string such as "300ms".
type Duration struct {
	time.Duration
}

// UnmarshalText implements [encoding.TextUnmarshaler].
func (d *Duration) UnmarshalText(text []byte) error {
	v, err := time.ParseDuration(string(text))
	if err != nil {
		return fmt.Errorf("parsing duration: %w", err)
	}
	d.Duration = v
	return nil
}

// MarshalText implements [encoding.TextMarshaler].
func (d Duration) MarshalText() ([]byte, error) {
	return []byte(d.String()), nil
}

// Config is the dictview configuration.
type Config struct {
	// Source is the dictionary location: a directory or an http(s) URL.
	Source string `toml:"source"`

	Search SearchConfig `toml:"search"`
	Log    LogConfig    `toml:"log"`
}

// SearchConfig configures search suggestions.
type SearchConfig struct {
	// Debounce is the idle time before suggestions are computed.
	Debounce Duration `toml:"debounce"`

	// MinQueryLength is the number of characters needed for suggestions.
	MinQueryLength int `toml:"min_query_length"`

	// MaxSuggestions is the maximum number of suggestions shown.
	MaxSuggestions int `toml:"max_suggestions"`
}

// LogConfig configures logging. See [logging.Config].
type LogConfig struct {
	Dir        string `toml:"dir"`
	Level      string `toml:"level"`
	Format     string `toml:"format"`
	MaxSizeMB  int    `toml:"max_size_mb"`
	MaxBackups int    `toml:"max_backups"`
	MaxAgeDays int    `toml:"max_age_days"`
	Compress   bool   `toml:"compress"`
}

// Default returns the default configuration.
func Default() *Config {
	return &Config{
		Search: SearchConfig{
			Debounce:       Duration{300 * time.Millisecond},
			MinQueryLength: search.DefaultMinQueryLength,
			MaxSuggestions: search.DefaultMaxResults,
		},
		Log: LogConfig{
			Level:  "info",
			Format: "json",
		},
	}
}

// Path returns the default configuration file path,
// $XDG_CONFIG_HOME/dictview/config.toml on Linux.
func Path() (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("locating config directory: %w", err)
	}
	return filepath.Join(dir, "dictview", FileName), nil
}

// Load reads the configuration file at path on top of the defaults. A missing
// file yields the defaults.
func Load(path string) (*Config, error) {
	cfg := Default()

	if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) {
		return cfg, nil
	}

	md, err := toml.DecodeFile(path, cfg)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrConfig, path, err)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, 0, len(undecoded))
		for _, k := range undecoded {
			keys = append(keys, k.String())
		}
		return nil, fmt.Errorf("%w: %s: unknown keys: %s", ErrConfig, path, strings.Join(keys, ", "))
	}

	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrConfig, path, err)
	}
	return cfg, nil
}

func (c *Config) validate() error {
	if c.Search.Debounce.Duration < 0 {
		return errors.New("search.debounce must not be negative")
	}
	if c.Search.MinQueryLength < 0 {
		return errors.New("search.min_query_length must not be negative")
	}
	if c.Search.MaxSuggestions < 1 {
		return errors.New("search.max_suggestions must be positive")
	}
	return nil
}

// SuggestOptions returns the suggestion options.
func (c *Config) SuggestOptions() *search.SuggestOptions {
	return &search.SuggestOptions{
		MinQueryLength: c.Search.MinQueryLength,
		MaxResults:     c.Search.MaxSuggestions,
	}
}

// Logging returns the logging configuration.
func (c *Config) Logging() logging.Config {
	return logging.Config{
		Dir:        c.Log.Dir,
		Level:      c.Log.Level,
		Format:     c.Log.Format,
		MaxSizeMB:  c.Log.MaxSizeMB,
		MaxBackups: c.Log.MaxBackups,
		MaxAgeDays: c.Log.MaxAgeDays,
		Compress:   c.Log.Compress,
	}
}
