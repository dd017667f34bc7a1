// SPDX-License-Identifier: AGPL-3.0-or-later

package commands

import (
	"errors"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/bartekus/commitscope/cmd/commitscope/internal/clierr"
	"github.com/bartekus/commitscope/internal/config"
	"github.com/bartekus/commitscope/internal/gitcmd"
	"github.com/bartekus/commitscope/internal/gitlog"
	"github.com/bartekus/commitscope/internal/logging"
	"github.com/bartekus/commitscope/internal/roster"
	"github.com/bartekus/commitscope/internal/runner"
)

// app is everything a command needs once flags, environment and config file are resolved.
type app struct {
	cfg    *config.Config
	logger zerolog.Logger
	layout roster.Layout
	store  *runner.StateStore
	git    gitcmd.Runner
}

func newApp(cmd *cobra.Command) (*app, error) {
	loader := config.NewLoader()
	if err := loader.BindFlags(cmd.Flags()); err != nil {
		return nil, clierr.Wrap(clierr.ExitConfig, "binding flags", err)
	}
	file, _ := cmd.Flags().GetString("config")
	cfg, err := loader.Load(file)
	if err != nil {
		return nil, clierr.Wrap(clierr.ExitConfig, "loading configuration", err)
	}

	logger, err := logging.New(cmd.ErrOrStderr(), cfg.LogLevel, cfg.LogFormat)
	if err != nil {
		return nil, clierr.Wrap(clierr.ExitConfig, "configuring logger", err)
	}
	if used := loader.ConfigFileUsed(); used != "" {
		logger.Debug().Str("file", used).Msg("Loaded config file")
	}

	return &app{
		cfg:    cfg,
		logger: logger,
		layout: roster.NewLayout(cfg.BaseDir, cfg.Layout),
		store:  runner.NewStateStore(cfg.StateDir),
		git:    gitcmd.New(),
	}, nil
}

func (a *app) extractor(checkout bool) *gitlog.Extractor {
	return gitlog.NewExtractor(a.git, a.logger, gitlog.Options{
		Timeout:  a.cfg.Timeout,
		Checkout: checkout,
		Binary:   a.cfg.Git,
	})
}

// batchFlags are shared by every command that walks the roster.
type batchFlags struct {
	onlyFailed bool
}

func (f *batchFlags) register(cmd *cobra.Command) {
	cmd.Flags().BoolVar(&f.onlyFailed, "only-failed", false, "only retry repositories that failed in the last run of this command")
}

// runBatch drives task over the roster, prints the summary table and maps the outcome to an exit code.
func (a *app) runBatch(cmd *cobra.Command, task runner.Task, flags batchFlags) error {
	repos, err := roster.Load(a.cfg.Roster)
	if err != nil {
		return clierr.Wrap(clierr.ExitConfig, "loading roster", err)
	}

	r := runner.NewRunner(task, a.layout, a.store, runner.Options{Workers: a.cfg.Workers}, a.logger)

	var (
		last   *runner.LastRun
		runErr error
	)
	if flags.onlyFailed {
		keys, err := a.store.LoadFailed(task.ID())
		if err != nil {
			return err
		}
		if len(keys) == 0 {
			a.logger.Info().Str("task", task.ID()).Msg("No failed repositories to retry")
			return nil
		}
		a.logger.Info().Str("task", task.ID()).Strs("repositories", keys).Msg("Retrying failed repositories")
		last, runErr = r.RunList(cmd.Context(), repos, keys)
	} else {
		a.logger.Info().
			Str("task", task.ID()).
			Int("repositories", len(repos)).
			Int("groups", len(roster.Partition(repos))).
			Int("workers", a.cfg.Workers).
			Msg("Starting run")
		last, runErr = r.RunAll(cmd.Context(), repos)
	}

	if last != nil {
		runner.PrintSummary(cmd.OutOrStdout(), last)
	}
	if errors.Is(runErr, runner.ErrRunFailed) {
		return clierr.Wrap(clierr.ExitRepoFailed, task.ID(), runErr)
	}
	return runErr
}
