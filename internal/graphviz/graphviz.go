// SPDX-License-Identifier: AGPL-3.0-or-later

// Package graphviz renders a repository's branch graph with an external tool.
package graphviz

import (
	"context"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/bartekus/commitscope/internal/artifact"
	"github.com/bartekus/commitscope/internal/gitcmd"
	"github.com/bartekus/commitscope/internal/gitlog"
	"github.com/bartekus/commitscope/internal/roster"
)

const (
	// DefaultCommand prints an SVG of the history to stdout.
	DefaultCommand = "git-graph --svg"
	// DefaultTimeout bounds one rendering.
	DefaultTimeout = 60 * time.Second

	stderrSnippet = 200
)

// Renderer runs the graph command inside a working copy and stores its output.
type Renderer struct {
	run     gitcmd.Runner
	argv    []string
	timeout time.Duration
	logger  zerolog.Logger
}

// New returns a Renderer for command, split on whitespace. Empty values use the defaults.
func New(run gitcmd.Runner, command string, timeout time.Duration, logger zerolog.Logger) *Renderer {
	argv := strings.Fields(command)
	if len(argv) == 0 {
		argv = strings.Fields(DefaultCommand)
	}
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &Renderer{run: run, argv: argv, timeout: timeout, logger: logger}
}

// Render writes the rendered graph of dir to out.
// Empty output is a CommandFailure; nothing is written in that case.
func (r *Renderer) Render(ctx context.Context, repo roster.Repository, dir, out string) error {
	if err := gitlog.CheckWorkingCopy(repo.Name, dir); err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	res, err := r.run.Run(ctx, dir, r.argv[0], r.argv[1:]...)
	if err != nil {
		return gitlog.Classify(err, gitlog.KindCommandFailure, repo.Name, dir)
	}

	if strings.TrimSpace(string(res.Stdout)) == "" {
		r.logger.Warn().Str("repo", repo.Name).Str("stderr", string(res.Stderr)).Msg("Graph command produced no output")
		return &gitlog.Error{
			Kind:   gitlog.KindCommandFailure,
			Repo:   repo.Name,
			Path:   dir,
			Stderr: gitcmd.Snippet("empty output: "+string(res.Stderr), stderrSnippet),
		}
	}

	return artifact.WriteFile(out, repo.Name, res.Stdout)
}
