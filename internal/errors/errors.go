// Package errors provides the error taxonomy for the compose CLI.
package errors

import (
	"errors"
	"fmt"
	"sort"
	"strconv"
	"strings"
)

// Sentinel errors for known conditions.
var (
	// ErrNotFound indicates a template, descriptor file, required key or device was not found.
	ErrNotFound = errors.New("not found")

	// ErrAlreadyExists indicates the destination directory is already present.
	ErrAlreadyExists = errors.New("already exists")

	// ErrExternalProcess indicates a subprocess could not be started or exited non-zero.
	ErrExternalProcess = errors.New("external process failed")

	// ErrMalformedInput indicates a required value is blank or has an invalid shape.
	ErrMalformedInput = errors.New("malformed input")
)

// DetailError captures structured error information for user-facing output.
type DetailError struct {
	// Type is the error category (required).
	Type string

	// Message is the specific description (required).
	Message string

	// Location is the file or directory the error refers to (optional).
	Location string

	// Field is the name of the offending key or argument (optional).
	Field string

	// Context contains additional key-value context (optional).
	Context map[string]string

	// Hint provides actionable guidance (optional).
	Hint string

	// Cause is the underlying error (optional).
	Cause error
}

// Error implements the error interface.
func (e *DetailError) Error() string {
	var b strings.Builder

	b.WriteString("Error: ")
	b.WriteString(e.Type)
	b.WriteString("\n")

	if e.Location != "" {
		b.WriteString("  Location: ")
		b.WriteString(e.Location)
		b.WriteString("\n")
	}
	if e.Field != "" {
		b.WriteString("  Field: ")
		b.WriteString(e.Field)
		b.WriteString("\n")
	}

	// Sorted so the rendering is stable.
	keys := make([]string, 0, len(e.Context))
	for k := range e.Context {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		b.WriteString("  ")
		b.WriteString(k)
		b.WriteString(": ")
		b.WriteString(e.Context[k])
		b.WriteString("\n")
	}

	b.WriteString("\n  ")
	b.WriteString(e.Message)
	b.WriteString("\n")

	if e.Hint != "" {
		b.WriteString("\nHint: ")
		b.WriteString(e.Hint)
		b.WriteString("\n")
	}

	return b.String()
}

// Unwrap returns the underlying error.
func (e *DetailError) Unwrap() error {
	return e.Cause
}

// NewNotFoundError creates a not found error with details.
func NewNotFoundError(message, location, hint string) error {
	return &DetailError{
		Type:     "not found",
		Message:  message,
		Location: location,
		Hint:     hint,
		Cause:    ErrNotFound,
	}
}

// NewAlreadyExistsError creates an already exists error with details.
func NewAlreadyExistsError(message, location, hint string) error {
	return &DetailError{
		Type:     "already exists",
		Message:  message,
		Location: location,
		Hint:     hint,
		Cause:    ErrAlreadyExists,
	}
}

// NewMalformedInputError creates a malformed input error with details.
func NewMalformedInputError(message, field, hint string) error {
	return &DetailError{
		Type:    "malformed input",
		Message: message,
		Field:   field,
		Hint:    hint,
		Cause:   ErrMalformedInput,
	}
}

// NewProcessError creates an external process failure for a command that
// exited with the given code. A negative code means the process never ran.
func NewProcessError(command string, code int, output string, cause error) error {
	ctx := map[string]string{"Command": command}
	if code >= 0 {
		ctx["Exit code"] = strconv.Itoa(code)
	}

	message := "command exited with a non-zero status"
	if code < 0 {
		message = "command could not be started"
	}
	if output != "" {
		message += "\n\n" + indent(output, "  ")
	}

	return &DetailError{
		Type:    "external process failed",
		Message: message,
		Context: ctx,
		Cause:   join(ErrExternalProcess, cause),
	}
}

// Wrap wraps an error with a sentinel error type.
func Wrap(sentinel error, message string) error {
	return fmt.Errorf("%s: %w", message, sentinel)
}

func join(sentinel, cause error) error {
	if cause == nil {
		return sentinel
	}
	return fmt.Errorf("%w: %w", sentinel, cause)
}

func indent(s, prefix string) string {
	lines := strings.Split(strings.TrimRight(s, "\n"), "\n")
	for i, l := range lines {
		lines[i] = prefix + l
	}
	return strings.Join(lines, "\n")
}
