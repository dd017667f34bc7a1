// SPDX-License-Identifier: AGPL-3.0-or-later

package tasks

import (
	"context"

	"github.com/bartekus/commitscope/internal/artifact"
	"github.com/bartekus/commitscope/internal/roster"
	"github.com/bartekus/commitscope/internal/runner"
)

// Commits writes every commit as {time, author, title} in log order.
// A repository without history still gets an (empty) artifact.
type Commits struct {
	extractor Extractor
	layout    roster.Layout
}

func NewCommits(extractor Extractor, layout roster.Layout) runner.Task {
	return &Commits{extractor: extractor, layout: layout}
}

func (t *Commits) ID() string { return "commits" }

func (t *Commits) Run(ctx context.Context, target runner.Target) runner.RepoResult {
	frame, err := t.extractor.Extract(ctx, target.Repo, target.Dir)
	if err != nil {
		return failure(err)
	}

	out := t.layout.Artifact(target.Repo, ".json")
	if err := artifact.WriteCommits(out, target.Repo.Name, frame.Records); err != nil {
		return failure(err)
	}

	return runner.RepoResult{
		Status:    runner.StatusPass,
		Records:   len(frame.Records),
		Malformed: frame.Malformed,
		Artifact:  out,
	}
}
