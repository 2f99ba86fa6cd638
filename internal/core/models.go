package core

import (
	"errors"
	"fmt"
)

// Exit codes. The numbering is part of the launcher's external contract:
// wrapper scripts and shortcuts rely on it.
const (
	ExitSuccess          = 0
	ExitDeclined         = 1 // user declined manual resolution
	ExitResolvedInvalid  = 2 // resolved path failed the final check
	ExitManualInvalid    = 3 // manually entered path is not a file
	ExitNoSelection      = 4 // no manual path entered
	ExitResolutionFailed = 5 // resolution failed, no recovery path taken
	ExitFailure          = 6 // any other error: config, usage, I/O
)

// ExitError carries a process exit code up to main.
type ExitError struct {
	Code int
	Err  error
}

// NewExitError wraps err with an exit code.
func NewExitError(code int, err error) *ExitError {
	return &ExitError{Code: code, Err: err}
}

func (e *ExitError) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("exit status %d", e.Code)
	}
	return e.Err.Error()
}

func (e *ExitError) Unwrap() error {
	return e.Err
}

// ExitCode extracts the exit code for err. Errors that carry no code map to
// ExitFailure so they never read as a user decision.
func ExitCode(err error) int {
	if err == nil {
		return ExitSuccess
	}
	var exitErr *ExitError
	if errors.As(err, &exitErr) {
		return exitErr.Code
	}
	return ExitFailure
}
