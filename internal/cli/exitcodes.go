package cli

import (
	"errors"
	"strconv"
)

// Exit codes for gramlint.
const (
	// ExitSuccess indicates the text was analyzed, whatever the lints.
	ExitSuccess = 0

	// ExitFailure indicates the document or the lint group could not be created.
	ExitFailure = 1

	// ExitInvalidUsage indicates invalid command-line usage.
	ExitInvalidUsage = 64

	// ExitConfigError indicates configuration file errors.
	ExitConfigError = 65

	// ExitInternalError indicates an internal error.
	ExitInternalError = 70

	// ExitIOError indicates input or output errors.
	ExitIOError = 74
)

// ExitError carries the process exit code for a failed command.
type ExitError struct {
	Code int
	Err  error

	// Reported is set when the failure was already printed for the user.
	Reported bool
}

func (e *ExitError) Error() string {
	if e.Err == nil {
		return "exit status " + strconv.Itoa(e.Code)
	}
	return e.Err.Error()
}

func (e *ExitError) Unwrap() error {
	return e.Err
}

// ExitCode maps a command error to a process exit code. Errors without an
// ExitError in their chain map to ExitFailure.
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

// IsReported reports whether err was already shown to the user.
func IsReported(err error) bool {
	var exitErr *ExitError
	return errors.As(err, &exitErr) && exitErr.Reported
}
