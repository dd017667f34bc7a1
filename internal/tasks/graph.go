// SPDX-License-Identifier: AGPL-3.0-or-later

package tasks

import (
	"context"

	"github.com/bartekus/commitscope/internal/roster"
	"github.com/bartekus/commitscope/internal/runner"
)

// Graph renders each repository's history next to its working copy as <repo>.svg.
type Graph struct {
	renderer Renderer
	layout   roster.Layout
}

func NewGraph(renderer Renderer, layout roster.Layout) runner.Task {
	return &Graph{renderer: renderer, layout: layout}
}

func (t *Graph) ID() string { return "graph" }

func (t *Graph) Run(ctx context.Context, target runner.Target) runner.RepoResult {
	out := t.layout.Artifact(target.Repo, ".svg")
	if err := t.renderer.Render(ctx, target.Repo, target.Dir, out); err != nil {
		return failure(err)
	}
	return runner.RepoResult{Status: runner.StatusPass, Artifact: out}
}
