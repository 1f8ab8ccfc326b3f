package cli

import (
	"errors"

	"github.com/Brian3647/nimi/internal/words"
)

// Process exit codes.
const (
	ExitCodeError    = 1
	ExitCodeNotFound = 2
)

// ExitError carries a specific process exit code from a command to main.
type ExitError struct {
	ExitCode int
	Reason   string
	Err      error
}

func (e *ExitError) Error() string {
	return e.Reason
}

func (e *ExitError) Unwrap() error {
	return e.Err
}

// ExitCode maps a command error to the process exit code: 0 for nil, the
// carried code for *ExitError, 1 for anything else.
func ExitCode(err error) int {
	if err == nil {
		return 0
	}
	var exitErr *ExitError
	if errors.As(err, &exitErr) {
		return exitErr.ExitCode
	}
	return ExitCodeError
}

// notFoundExit converts a *words.NotFoundError into an *ExitError with
// ExitCodeNotFound. Other errors are returned unchanged.
func notFoundExit(err error) error {
	var notFound *words.NotFoundError
	if errors.As(err, &notFound) {
		return &ExitError{ExitCode: ExitCodeNotFound, Reason: notFound.Error(), Err: err}
	}
	return err
}
