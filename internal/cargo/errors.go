package cargo

import (
	"errors"
	"fmt"
	"strings"
)

// ErrProbeNotImplemented is returned by Probe.Available on platforms where
// tool detection has not been implemented.
var ErrProbeNotImplemented = errors.New("cargo detection is not implemented on this platform")

// ToolCheckError indicates the probe process itself could not run. A missing
// cargo is not a ToolCheckError; Available reports it as false.
type ToolCheckError struct {
	// Command is the probe command line.
	Command string

	// Err is the underlying spawn error.
	Err error
}

func (e *ToolCheckError) Error() string {
	return fmt.Sprintf("checking for cargo with %q: %v", e.Command, e.Err)
}

func (e *ToolCheckError) Unwrap() error {
	return e.Err
}

// InitError indicates "cargo new" exited non-zero. Stderr holds the child's
// standard error verbatim.
type InitError struct {
	// Path is the target directory passed to cargo.
	Path string

	// ExitCode is the child's exit status.
	ExitCode int

	// Stderr is the captured standard error of cargo.
	Stderr string
}

func (e *InitError) Error() string {
	msg := strings.TrimSpace(e.Stderr)
	if msg == "" {
		return fmt.Sprintf("cargo new %s exited with status %d", e.Path, e.ExitCode)
	}
	return msg
}
