// Package errors provides the error types and exit codes of the burn CLI.
package errors

import (
	"errors"
	"strings"
)

// Exit codes returned by the burn binary.
const (
	// ExitSuccess indicates the command completed successfully.
	ExitSuccess = 0

	// ExitGeneralError indicates an unspecified error occurred.
	ExitGeneralError = 1

	// ExitValidationError indicates invalid flags, paths or backend names.
	ExitValidationError = 2

	// ExitToolchainError indicates cargo is missing or cargo new failed.
	ExitToolchainError = 3

	// ExitManifestError indicates Cargo.toml could not be patched.
	ExitManifestError = 4

	// ExitGenerateError indicates a source file could not be generated.
	ExitGenerateError = 5
)

// ExitCodeName returns the name of the exit code.
func ExitCodeName(code int) string {
	switch code {
	case ExitSuccess:
		return "Success"
	case ExitGeneralError:
		return "General Error"
	case ExitValidationError:
		return "Validation Error"
	case ExitToolchainError:
		return "Toolchain Error"
	case ExitManifestError:
		return "Manifest Error"
	case ExitGenerateError:
		return "Generate Error"
	default:
		return "Unknown"
	}
}

// DetailError captures structured error information for display.
type DetailError struct {
	// Type is the error category (required).
	Type string

	// Message is the specific description (required).
	Message string

	// Location is the file or directory involved (optional).
	Location string

	// Hint provides actionable guidance (optional).
	Hint string

	// Cause is the underlying error (optional).
	Cause error
}

// Error implements the error interface. The first line is always
// "<type>: <message>" so the error reads as a single line when no
// location or hint is attached.
func (e *DetailError) Error() string {
	var b strings.Builder

	b.WriteString(e.Type)
	b.WriteString(": ")
	b.WriteString(e.Message)

	if e.Location != "" {
		b.WriteString("\n  Location: ")
		b.WriteString(e.Location)
	}
	if e.Hint != "" {
		b.WriteString("\n  Hint: ")
		b.WriteString(e.Hint)
	}

	return b.String()
}

// Unwrap returns the underlying error.
func (e *DetailError) Unwrap() error {
	return e.Cause
}

// ExitError wraps an error with the process exit code it should produce.
type ExitError struct {
	// Code is the process exit code.
	Code int

	// Err is the underlying error.
	Err error

	// Printed is set once the command layer has already reported the error.
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

// NewExitError creates a new ExitError with the given error and exit code.
func NewExitError(err error, code int) *ExitError {
	return &ExitError{Err: err, Code: code}
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
	case errors.Is(err, ErrValidation):
		return ExitValidationError
	case errors.Is(err, ErrToolchain):
		return ExitToolchainError
	case errors.Is(err, ErrManifest):
		return ExitManifestError
	case errors.Is(err, ErrGenerate):
		return ExitGenerateError
	default:
		return ExitGeneralError
	}
}

// NewValidationError creates a validation error with details.
func NewValidationError(message, location, hint string) error {
	return &DetailError{
		Type:     "validation failed",
		Message:  message,
		Location: location,
		Hint:     hint,
		Cause:    ErrValidation,
	}
}

// NewToolchainError creates a toolchain error with details.
func NewToolchainError(message, hint string, cause error) error {
	return &DetailError{
		Type:    "toolchain error",
		Message: message,
		Hint:    hint,
		Cause:   join(ErrToolchain, cause),
	}
}

// NewManifestError creates a manifest error for the file at location.
func NewManifestError(message, location string, cause error) error {
	return &DetailError{
		Type:     "manifest error",
		Message:  message,
		Location: location,
		Cause:    join(ErrManifest, cause),
	}
}

// NewGenerateError creates an error for a source file that could not be
// rendered or written.
func NewGenerateError(message, location string, cause error) error {
	return &DetailError{
		Type:     "generate failed",
		Message:  message,
		Location: location,
		Cause:    join(ErrGenerate, cause),
	}
}

// join keeps both the sentinel and the concrete cause reachable by errors.Is/As.
func join(sentinel, cause error) error {
	if cause == nil {
		return sentinel
	}
	return errors.Join(sentinel, cause)
}
