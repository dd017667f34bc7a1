// SPDX-License-Identifier: AGPL-3.0-or-later

// Package gitcmd runs external version-control commands against a working copy.
package gitcmd

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os/exec"
	"strings"
	"time"
)

// waitDelay bounds how long Run waits for a killed process to release its pipes.
const waitDelay = 5 * time.Second

// Runner executes a command with dir as its working directory.
type Runner interface {
	Run(ctx context.Context, dir string, name string, args ...string) (*Result, error)
}

// Result holds the captured streams of a finished command.
type Result struct {
	Stdout   []byte
	Stderr   []byte
	ExitCode int
}

// ExitError is returned when the command ran but exited non-zero.
type ExitError struct {
	Command  string
	ExitCode int
	Stderr   string
}

func (e *ExitError) Error() string {
	return fmt.Sprintf("%s exited with status %d", e.Command, e.ExitCode)
}

// Exec is the os/exec backed Runner.
type Exec struct{}

// New returns a Runner that spawns real processes.
func New() *Exec {
	return &Exec{}
}

// Run starts name with args in dir and captures both streams.
// A non-zero exit yields *ExitError alongside the captured Result.
// When ctx ends first the process is killed and ctx.Err() is returned.
func (e *Exec) Run(ctx context.Context, dir string, name string, args ...string) (*Result, error) {
	cmd := exec.CommandContext(ctx, name, args...)
	cmd.Dir = dir
	cmd.WaitDelay = waitDelay

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	err := cmd.Run()
	res := &Result{Stdout: stdout.Bytes(), Stderr: stderr.Bytes()}

	if ctxErr := ctx.Err(); ctxErr != nil {
		res.ExitCode = -1
		return res, ctxErr
	}
	if err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			res.ExitCode = exitErr.ExitCode()
			return res, &ExitError{
				Command:  commandLine(name, args),
				ExitCode: res.ExitCode,
				Stderr:   stderr.String(),
			}
		}
		return res, fmt.Errorf("running %s: %w", commandLine(name, args), err)
	}
	return res, nil
}

func commandLine(name string, args []string) string {
	if len(args) == 0 {
		return name
	}
	return name + " " + strings.Join(args, " ")
}

// Snippet trims s and keeps at most limit runes, marking the cut.
func Snippet(s string, limit int) string {
	s = strings.TrimSpace(s)
	r := []rune(s)
	if limit <= 0 || len(r) <= limit {
		return s
	}
	return string(r[:limit]) + "...(truncated)"
}
