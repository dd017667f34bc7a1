// SPDX-License-Identifier: AGPL-3.0-or-later

package tasks

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/bartekus/commitscope/internal/artifact"
	"github.com/bartekus/commitscope/internal/contributors"
	"github.com/bartekus/commitscope/internal/roster"
	"github.com/bartekus/commitscope/internal/runner"
)

// Contributors writes ranked per-author commit summaries.
// A repository without history is skipped and no artifact is written.
type Contributors struct {
	extractor Extractor
	layout    roster.Layout
	logger    zerolog.Logger
}

func NewContributors(extractor Extractor, layout roster.Layout, logger zerolog.Logger) runner.Task {
	return &Contributors{extractor: extractor, layout: layout, logger: logger}
}

func (t *Contributors) ID() string { return "contributors" }

func (t *Contributors) Run(ctx context.Context, target runner.Target) runner.RepoResult {
	frame, err := t.extractor.Extract(ctx, target.Repo, target.Dir)
	if err != nil {
		return failure(err)
	}
	if len(frame.Records) == 0 {
		return runner.RepoResult{Status: runner.StatusSkip, Malformed: frame.Malformed, Note: "no commits"}
	}

	log := t.logger.With().Str("repo", target.Repo.Name).Logger()
	records, dateFailures := contributors.NormalizeDates(frame.Records, log)
	summaries := contributors.Aggregate(records)

	out := t.layout.Artifact(target.Repo, ".json")
	if err := artifact.WriteContributors(out, target.Repo.Name, summaries); err != nil {
		return failure(err)
	}

	return runner.RepoResult{
		Status:       runner.StatusPass,
		Records:      len(frame.Records),
		Malformed:    frame.Malformed,
		DateFailures: dateFailures,
		Contributors: len(summaries),
		Artifact:     out,
	}
}
