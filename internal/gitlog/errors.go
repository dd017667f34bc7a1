// SPDX-License-Identifier: AGPL-3.0-or-later

package gitlog

import (
	"errors"
	"fmt"
)

// Kind classifies why a repository could not be extracted.
type Kind string

const (
	KindPathNotFound      Kind = "path_not_found"
	KindNotARepository    Kind = "not_a_repository"
	KindBranchSwitch      Kind = "branch_switch_failure"
	KindCommandFailure    Kind = "command_failure"
	KindTimeout           Kind = "timeout"
	KindUnexpectedFailure Kind = "unexpected_failure"
	KindOutputWrite       Kind = "output_write_failure"
)

// Error is a repository-level extraction failure.
type Error struct {
	Kind     Kind
	Repo     string
	Path     string
	ExitCode int
	// Stderr is a truncated snippet of the command's diagnostic stream.
	Stderr string
	Err    error
}

func (e *Error) Error() string {
	msg := fmt.Sprintf("%s: %s (%s)", e.Repo, e.Kind, e.Path)
	if e.Kind == KindCommandFailure || e.Kind == KindBranchSwitch {
		if e.ExitCode != 0 {
			msg += fmt.Sprintf(", exit %d", e.ExitCode)
		}
		if e.Stderr != "" {
			msg += ": " + e.Stderr
		}
		return msg
	}
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

func (e *Error) Unwrap() error { return e.Err }

// KindOf returns the Kind carried by err, or KindUnexpectedFailure for anything else.
func KindOf(err error) Kind {
	if err == nil {
		return ""
	}
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindUnexpectedFailure
}
