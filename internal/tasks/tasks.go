// SPDX-License-Identifier: AGPL-3.0-or-later

/*
Commitscope - extracts commit history from a roster of team repositories and reports it per contributor.

Copyright (C) 2025  Bartek Kus

This program is free software licensed under the terms of the GNU AGPL v3 or later.

See https://www.gnu.org/licenses/ for license details.

*/

// Package tasks holds the per-repository work the runner can drive.
package tasks

import (
	"context"

	"github.com/bartekus/commitscope/internal/gitlog"
	"github.com/bartekus/commitscope/internal/roster"
	"github.com/bartekus/commitscope/internal/runner"
)

// Extractor reads the commit history of one working copy.
type Extractor interface {
	Extract(ctx context.Context, repo roster.Repository, dir string) (*gitlog.Frame, error)
}

// Renderer produces a visualization of one working copy at out.
type Renderer interface {
	Render(ctx context.Context, repo roster.Repository, dir, out string) error
}

func failure(err error) runner.RepoResult {
	return runner.RepoResult{
		Status: runner.StatusFail,
		Kind:   string(gitlog.KindOf(err)),
		Note:   err.Error(),
	}
}
