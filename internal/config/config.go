// SPDX-License-Identifier: AGPL-3.0-or-later

/*
Commitscope - extracts commit history from a roster of team repositories and reports it per contributor.

Copyright (C) 2025  Bartek Kus

This program is free software licensed under the terms of the GNU AGPL v3 or later.

See https://www.gnu.org/licenses/ for license details.

*/

// Package config layers flags, COMMITSCOPE_* environment variables, an optional
// config file and defaults into one Config.
package config

import (
	"errors"
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/bartekus/commitscope/internal/gitlog"
	"github.com/bartekus/commitscope/internal/graphviz"
	"github.com/bartekus/commitscope/internal/logging"
	"github.com/bartekus/commitscope/internal/roster"
)

// EnvPrefix is prepended to every key when looking up the environment.
const EnvPrefix = "COMMITSCOPE"

// FileName is the config file searched for in the working directory when none is given.
const FileName = "commitscope"

var keys = []string{
	"base_dir", "roster", "layout", "workers", "timeout", "graph_timeout",
	"graph_command", "git", "checkout", "state_dir", "log_level", "log_format",
}

// Config is the resolved configuration of one invocation.
type Config struct {
	BaseDir      string        `mapstructure:"base_dir"`
	Roster       string        `mapstructure:"roster"`
	Layout       string        `mapstructure:"layout"`
	Workers      int           `mapstructure:"workers"`
	Timeout      time.Duration `mapstructure:"timeout"`
	GraphTimeout time.Duration `mapstructure:"graph_timeout"`
	GraphCommand string        `mapstructure:"graph_command"`
	Git          string        `mapstructure:"git"`
	Checkout     bool          `mapstructure:"checkout"`
	StateDir     string        `mapstructure:"state_dir"`
	LogLevel     string        `mapstructure:"log_level"`
	LogFormat    string        `mapstructure:"log_format"`
}

// Default returns the built-in values.
func Default() Config {
	return Config{
		BaseDir:      ".",
		Roster:       "repos.json",
		Layout:       roster.DefaultPattern,
		Workers:      1,
		Timeout:      gitlog.DefaultTimeout,
		GraphTimeout: graphviz.DefaultTimeout,
		GraphCommand: graphviz.DefaultCommand,
		Git:          "git",
		Checkout:     true,
		StateDir:     ".commitscope/run",
		LogLevel:     "info",
		LogFormat:    logging.FormatConsole,
	}
}

// Loader resolves a Config from its layers.
type Loader struct {
	v *viper.Viper
}

// NewLoader returns a Loader seeded with Default and wired to the environment.
func NewLoader() *Loader {
	v := viper.New()
	d := Default()
	v.SetDefault("base_dir", d.BaseDir)
	v.SetDefault("roster", d.Roster)
	v.SetDefault("layout", d.Layout)
	v.SetDefault("workers", d.Workers)
	v.SetDefault("timeout", d.Timeout)
	v.SetDefault("graph_timeout", d.GraphTimeout)
	v.SetDefault("graph_command", d.GraphCommand)
	v.SetDefault("git", d.Git)
	v.SetDefault("checkout", d.Checkout)
	v.SetDefault("state_dir", d.StateDir)
	v.SetDefault("log_level", d.LogLevel)
	v.SetDefault("log_format", d.LogFormat)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()
	return &Loader{v: v}
}

// RegisterFlags declares one flag per key on fs. Flag names use dashes.
func RegisterFlags(fs *pflag.FlagSet) {
	d := Default()
	fs.String("config", "", "config file (default ./commitscope.yaml when present)")
	fs.String("base-dir", d.BaseDir, "directory the repository layout is resolved against")
	fs.String("roster", d.Roster, "roster file (JSON or YAML)")
	fs.String("layout", d.Layout, "working copy location template ({group}, {repo})")
	fs.IntP("workers", "w", d.Workers, "repositories processed concurrently")
	fs.Duration("timeout", d.Timeout, "per-repository limit for branch switch plus log")
	fs.Duration("graph-timeout", d.GraphTimeout, "per-repository limit for graph rendering")
	fs.String("graph-command", d.GraphCommand, "command printing an SVG history graph")
	fs.String("git", d.Git, "git executable")
	fs.Bool("checkout", d.Checkout, "switch to the roster branch before reading history")
	fs.String("state-dir", d.StateDir, "directory holding the last run's results")
	fs.String("log-level", d.LogLevel, "log level (debug, info, warn, error)")
	fs.String("log-format", d.LogFormat, "log format (console or json)")
}

// BindFlags makes explicitly set flags override every other layer.
func (l *Loader) BindFlags(fs *pflag.FlagSet) error {
	var errs []error
	fs.VisitAll(func(f *pflag.Flag) {
		if f.Name == "config" {
			return
		}
		key := strings.ReplaceAll(f.Name, "-", "_")
		if !slices.Contains(keys, key) {
			return
		}
		if err := l.v.BindPFlag(key, f); err != nil {
			errs = append(errs, fmt.Errorf("binding --%s: %w", f.Name, err))
		}
	})
	return errors.Join(errs...)
}

// Load reads file, or ./commitscope.{yaml,yml,json,toml} when file is empty,
// and returns the validated result. A missing default file is not an error.
func (l *Loader) Load(file string) (*Config, error) {
	if file != "" {
		l.v.SetConfigFile(file)
	} else {
		l.v.SetConfigName(FileName)
		l.v.AddConfigPath(".")
	}

	if err := l.v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if file != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("reading config: %w", err)
		}
	}

	var cfg Config
	if err := l.v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("decoding config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// ConfigFileUsed is the file Load read, if any.
func (l *Loader) ConfigFileUsed() string {
	return l.v.ConfigFileUsed()
}

// Validate rejects values no command can run with.
func (c Config) Validate() error {
	var errs []error
	if c.Roster == "" {
		errs = append(errs, errors.New("roster must not be empty"))
	}
	if !strings.Contains(c.Layout, "{repo}") {
		errs = append(errs, fmt.Errorf("layout %q must contain {repo}", c.Layout))
	}
	if c.Workers < 1 {
		errs = append(errs, fmt.Errorf("workers must be at least 1, got %d", c.Workers))
	}
	if c.Timeout <= 0 {
		errs = append(errs, fmt.Errorf("timeout must be positive, got %s", c.Timeout))
	}
	if c.GraphTimeout <= 0 {
		errs = append(errs, fmt.Errorf("graph_timeout must be positive, got %s", c.GraphTimeout))
	}
	if strings.TrimSpace(c.GraphCommand) == "" {
		errs = append(errs, errors.New("graph_command must not be empty"))
	}
	if c.StateDir == "" {
		errs = append(errs, errors.New("state_dir must not be empty"))
	}
	switch strings.ToLower(c.LogFormat) {
	case logging.FormatConsole, logging.FormatJSON:
	default:
		errs = append(errs, fmt.Errorf("log_format must be %s or %s, got %q", logging.FormatConsole, logging.FormatJSON, c.LogFormat))
	}
	if err := errors.Join(errs...); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}
	return nil
}

