package errors

import "errors"

// Exit codes returned by the compose binary.
const (
	// ExitSuccess indicates the command completed successfully.
	ExitSuccess = 0

	// ExitGeneralError indicates an unspecified error occurred.
	ExitGeneralError = 1

	// ExitMalformedInput indicates a blank or invalid value.
	ExitMalformedInput = 2

	// ExitExternalProcess indicates gradle, adb or magick failed.
	ExitExternalProcess = 3

	// ExitAlreadyExists indicates the destination directory already exists.
	ExitAlreadyExists = 4

	// ExitNotFound indicates a template, descriptor, key or device was not found.
	ExitNotFound = 5
)

// ExitError wraps an error with an exit code.
type ExitError struct {
	// Code is the process exit code.
	Code int

	// Err is the underlying error.
	Err error

	// Printed is true when the command already reported the error to the user.
	Printed bool
}

// Error implements the error interface.
func (e *ExitError) Error() string {
	if e.Err == nil {
		return ExitCodeName(e.Code)
	}
	return e.Err.Error()
}

// Unwrap returns the wrapped error.
func (e *ExitError) Unwrap() error {
	return e.Err
}

// NewExitError wraps err with the exit code derived from its sentinel.
func NewExitError(err error) *ExitError {
	return &ExitError{Code: ExitCodeFromError(err), Err: err}
}

// ExitCodeFromError determines the appropriate exit code for an error.
func ExitCodeFromError(err error) int {
	if err == nil {
		return ExitSuccess
	}

	var exitErr *ExitError
	if errors.As(err, &exitErr) {
		return exitErr.Code
	}

	switch {
	case errors.Is(err, ErrMalformedInput):
		return ExitMalformedInput
	case errors.Is(err, ErrExternalProcess):
		return ExitExternalProcess
	case errors.Is(err, ErrAlreadyExists):
		return ExitAlreadyExists
	case errors.Is(err, ErrNotFound):
		return ExitNotFound
	default:
		return ExitGeneralError
	}
}

// ExitCodeName returns the name of the exit code.
func ExitCodeName(code int) string {
	switch code {
	case ExitSuccess:
		return "Success"
	case ExitGeneralError:
		return "General Error"
	case ExitMalformedInput:
		return "Malformed Input"
	case ExitExternalProcess:
		return "External Process Failure"
	case ExitAlreadyExists:
		return "Already Exists"
	case ExitNotFound:
		return "Not Found"
	default:
		return "Unknown"
	}
}
