package runner

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"github.com/bartekus/commitscope/internal/gitlog"
	"github.com/bartekus/commitscope/internal/keylock"
	"github.com/bartekus/commitscope/internal/roster"
)

// ErrRunFailed is returned when at least one repository failed.
var ErrRunFailed = errors.New("run failed")

// Options tunes a Runner.
type Options struct {
	// Workers bounds how many repositories are processed at once; below 1 means 1.
	Workers int
}

// Runner drives one task across every repository of a roster.
type Runner struct {
	task    Task
	layout  roster.Layout
	store   *StateStore
	locks   *keylock.Map
	workers int
	logger  zerolog.Logger
}

// NewRunner creates a runner for task. Repository locations come from layout.
func NewRunner(task Task, layout roster.Layout, store *StateStore, opts Options, logger zerolog.Logger) *Runner {
	workers := opts.Workers
	if workers < 1 {
		workers = 1
	}
	return &Runner{
		task:    task,
		layout:  layout,
		store:   store,
		locks:   keylock.New(),
		workers: workers,
		logger:  logger,
	}
}

// RunAll processes every repository, team by team in roster order.
// It continues past failing repositories, records every result and
// returns ErrRunFailed if ANY repository failed.
func (r *Runner) RunAll(ctx context.Context, repos []roster.Repository) (*LastRun, error) {
	var targets []Target
	for _, g := range roster.Partition(repos) {
		for _, repo := range g.Repos {
			targets = append(targets, Target{Repo: repo, Dir: r.layout.Dir(repo)})
		}
	}
	return r.executeSequence(ctx, targets)
}

// RunList processes only the repositories whose keys are listed, keeping roster order.
func (r *Runner) RunList(ctx context.Context, repos []roster.Repository, keys []string) (*LastRun, error) {
	want := make(map[string]bool, len(keys))
	for _, k := range keys {
		want[k] = true
	}
	var selected []roster.Repository
	for _, repo := range repos {
		if want[repo.Key()] {
			selected = append(selected, repo)
		}
	}
	return r.RunAll(ctx, selected)
}

// executeSequence runs the task on each target through a bounded pool.
// Each worker writes only its own slot, so results keep target order.
func (r *Runner) executeSequence(ctx context.Context, targets []Target) (*LastRun, error) {
	results := make([]RepoResult, len(targets))

	g := new(errgroup.Group)
	g.SetLimit(r.workers)
	for i, t := range targets {
		g.Go(func() error {
			results[i] = r.runOne(ctx, t)
			return nil
		})
	}
	_ = g.Wait()

	for _, res := range results {
		if err := r.store.WriteRepoResult(res); err != nil {
			return nil, fmt.Errorf("writing result for %s: %w", res.Key(), err)
		}
	}

	last := tally(r.task.ID(), results)
	if err := r.store.WriteLastRun(last); err != nil {
		return nil, fmt.Errorf("writing last run: %w", err)
	}

	r.logger.Info().
		Str("task", last.Task).
		Int("total", last.Total).
		Int("succeeded", last.Succeeded).
		Int("failed", last.Failed).
		Int("skipped", last.Skipped).
		Msg("Run finished")

	if last.Failed > 0 {
		return &last, fmt.Errorf("%w: %v", ErrRunFailed, last.FailedKeys())
	}
	return &last, nil
}

// runOne holds the working copy's lock for the whole task and turns a panic into a failure.
func (r *Runner) runOne(ctx context.Context, t Target) (res RepoResult) {
	log := r.logger.With().Str("group", string(t.Repo.Group)).Str("repo", t.Repo.Name).Logger()
	start := time.Now()

	defer func() {
		if p := recover(); p != nil {
			res = RepoResult{
				Status: StatusFail,
				Kind:   string(gitlog.KindUnexpectedFailure),
				Note:   fmt.Sprintf("panic: %v", p),
			}
		}
		res.Group = string(t.Repo.Group)
		res.Repo = t.Repo.Name
		res.Path = t.Dir
		res.DurationMS = time.Since(start).Milliseconds()

		ev := log.Info()
		if res.Status == StatusFail {
			ev = log.Warn().Str("kind", res.Kind)
		}
		ev.Str("status", string(res.Status)).Int("records", res.Records).Str("note", res.Note).Msg("Repository processed")
	}()

	if err := ctx.Err(); err != nil {
		return RepoResult{Status: StatusSkip, Note: "canceled: " + err.Error()}
	}

	r.locks.Do(t.Dir, func() {
		log.Info().Str("branch", t.Repo.Branch).Msg("Processing repository")
		res = r.task.Run(ctx, t)
	})
	return res
}
