package clierr

import (
	"errors"
	"fmt"
)

// Process exit codes.
const (
	ExitOK = 0
	// ExitUnexpected covers anything not classified below.
	ExitUnexpected = 1
	// ExitRepoFailed means the batch finished but at least one repository failed.
	ExitRepoFailed = 2
	// ExitConfig means the configuration or roster could not be used; nothing ran.
	ExitConfig = 3
)

type ExitCoder interface {
	error
	ExitCode() int
}

// ExitError is an error that carries an explicit process exit code.
type ExitError struct {
	code  int
	msg   string
	cause error
}

func (e *ExitError) Error() string {
	if e.cause == nil {
		return e.msg
	}
	return fmt.Sprintf("%s: %v", e.msg, e.cause)
}

func (e *ExitError) ExitCode() int { return e.code }

func (e *ExitError) Unwrap() error { return e.cause }

// New creates an ExitError with a message.
func New(code int, msg string) error {
	return &ExitError{code: normalize(code), msg: msg}
}

// Wrap creates an ExitError around cause. A nil cause yields a plain New.
func Wrap(code int, msg string, cause error) error {
	if cause == nil {
		return New(code, msg)
	}
	return &ExitError{code: normalize(code), msg: msg, cause: cause}
}

// Wrapf is a formatted variant that wraps.
func Wrapf(code int, cause error, format string, args ...any) error {
	return Wrap(code, fmt.Sprintf(format, args...), cause)
}

// ExitCodeOf extracts an exit code from any error, defaulting to ExitUnexpected.
func ExitCodeOf(err error) int {
	if err == nil {
		return ExitOK
	}
	var ec ExitCoder
	if errors.As(err, &ec) {
		return ec.ExitCode()
	}
	return ExitUnexpected
}

func normalize(code int) int {
	// errors never exit 0
	if code <= ExitOK {
		return ExitUnexpected
	}
	return code
}
