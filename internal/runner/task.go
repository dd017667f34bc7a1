package runner

import (
	"context"

	"github.com/bartekus/commitscope/internal/roster"
)

// Target is one repository and the working copy the layout resolved for it.
type Target struct {
	Repo roster.Repository
	Dir  string
}

// Task defines the per-repository unit of work of a batch.
type Task interface {
	// ID returns the unique identifier (e.g. "contributors").
	ID() string

	// Run processes one repository. It reports failure through the result, never by panicking.
	Run(ctx context.Context, t Target) RepoResult
}
