package cli

import (
	"errors"
	"fmt"
)

// Process exit codes.
const (
	// ExitOK means every command ran and, with --strict, every chat command
	// applied or answered.
	ExitOK = 0

	// ExitFailed covers config and flag errors, a bad seed board, and a
	// strict say that hit a command the board rejected.
	ExitFailed = 1
)

// ExitError carries the exit code of a command that already reported its own
// failure. The chat reply has been printed, so [Execute] exits with Code and
// writes nothing more to stderr.
type ExitError struct {
	Code int
}

// Error returns "exit status N".
func (e *ExitError) Error() string {
	return fmt.Sprintf("exit status %d", e.Code)
}

// NewExitError returns an [ExitError] for code.
func NewExitError(code int) *ExitError {
	return &ExitError{Code: code}
}

// IsExitError reports whether err wraps an [ExitError] and returns its code.
// Any other error, nil included, yields (0, false); [RunWithConfig] maps those
// to [ExitFailed].
func IsExitError(err error) (int, bool) {
	var exitErr *ExitError
	if errors.As(err, &exitErr) {
		return exitErr.Code, true
	}
	return 0, false
}
