// SPDX-License-Identifier: AGPL-3.0-or-later

package gitlog

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"time"

	"github.com/rs/zerolog"

	"github.com/bartekus/commitscope/internal/gitcmd"
	"github.com/bartekus/commitscope/internal/roster"
)

const (
	// DefaultTimeout bounds checkout plus log for one repository.
	DefaultTimeout = 5 * time.Minute

	stderrSnippet = 200
)

// Options tunes an Extractor.
type Options struct {
	// Timeout bounds the whole extraction; zero means DefaultTimeout.
	Timeout time.Duration
	// Checkout switches to the repository's branch before logging, when it names one.
	Checkout bool
	// Binary is the git executable; empty means "git".
	Binary string
}

// Extractor reads the full commit history of one working copy.
type Extractor struct {
	git    gitcmd.Runner
	framer *Framer
	logger zerolog.Logger
	opts   Options
}

// NewExtractor wires an Extractor to a command runner.
func NewExtractor(git gitcmd.Runner, logger zerolog.Logger, opts Options) *Extractor {
	if opts.Timeout <= 0 {
		opts.Timeout = DefaultTimeout
	}
	if opts.Binary == "" {
		opts.Binary = "git"
	}
	return &Extractor{
		git:    git,
		framer: NewFramer(logger),
		logger: logger,
		opts:   opts,
	}
}

// Extract logs every commit reachable from any ref in dir.
// Failures are returned as *Error; a repository without history yields an empty Frame.
func (x *Extractor) Extract(ctx context.Context, repo roster.Repository, dir string) (*Frame, error) {
	if err := CheckWorkingCopy(repo.Name, dir); err != nil {
		return nil, err
	}

	ctx, cancel := context.WithTimeout(ctx, x.opts.Timeout)
	defer cancel()

	if x.opts.Checkout && repo.Branch != "" {
		x.logger.Debug().Str("repo", repo.Name).Str("branch", repo.Branch).Msg("Switching branch")
		if _, err := x.git.Run(ctx, dir, x.opts.Binary, "checkout", "--quiet", repo.Branch); err != nil {
			return nil, Classify(err, KindBranchSwitch, repo.Name, dir)
		}
	}

	res, err := x.git.Run(ctx, dir, x.opts.Binary, "log", "--all", "--format="+LogFormat)
	if err != nil {
		return nil, Classify(err, KindCommandFailure, repo.Name, dir)
	}

	frame := x.framer.Parse(string(res.Stdout))
	if frame.Malformed > 0 {
		x.logger.Warn().
			Str("repo", repo.Name).
			Int("malformed", frame.Malformed).
			Int("records", len(frame.Records)).
			Msg("Skipped malformed commit records")
	}
	return &frame, nil
}

// CheckWorkingCopy reports PathNotFound or NotARepository without running any process.
func CheckWorkingCopy(name, dir string) error {
	info, err := os.Stat(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return &Error{Kind: KindPathNotFound, Repo: name, Path: dir, Err: err}
		}
		return &Error{Kind: KindUnexpectedFailure, Repo: name, Path: dir, Err: err}
	}
	if !info.IsDir() {
		return &Error{Kind: KindNotARepository, Repo: name, Path: dir}
	}
	// .git may be a directory or, for worktrees and submodules, a file.
	if _, err := os.Stat(filepath.Join(dir, ".git")); err != nil {
		return &Error{Kind: KindNotARepository, Repo: name, Path: dir, Err: err}
	}
	return nil
}

// Classify maps a runner error onto the failure taxonomy.
// kind is used when the command itself exited non-zero.
func Classify(err error, kind Kind, name, dir string) *Error {
	if errors.Is(err, context.DeadlineExceeded) {
		return &Error{Kind: KindTimeout, Repo: name, Path: dir, Err: err}
	}
	var exitErr *gitcmd.ExitError
	if errors.As(err, &exitErr) {
		return &Error{
			Kind:     kind,
			Repo:     name,
			Path:     dir,
			ExitCode: exitErr.ExitCode,
			Stderr:   gitcmd.Snippet(exitErr.Stderr, stderrSnippet),
			Err:      err,
		}
	}
	return &Error{Kind: KindUnexpectedFailure, Repo: name, Path: dir, Err: err}
}
