package cargo

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os/exec"
	"strings"

	"github.com/tracel-ai/burn-cli/internal/output"
)

// Initializer creates library skeletons with "cargo new --lib".
type Initializer struct {
	// Binary is the cargo executable. Empty means DefaultBinary.
	Binary string

	// Output, when set, receives what cargo printed on a successful run,
	// stdout first.
	Output io.Writer
}

// NewInitializer returns an initializer using the cargo found on PATH.
func NewInitializer() *Initializer {
	return &Initializer{}
}

// InitSkeleton runs "cargo new --lib path". It blocks until cargo exits and
// does not retry. A non-zero exit yields an *InitError carrying stderr.
func (i *Initializer) InitSkeleton(ctx context.Context, path string) error {
	cmd := exec.CommandContext(ctx, binaryOrDefault(i.Binary), "new", "--lib", path)

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	output.Debug("running cargo", "args", strings.Join(cmd.Args, " "))

	if err := cmd.Run(); err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			return &InitError{
				Path:     path,
				ExitCode: exitErr.ExitCode(),
				Stderr:   stderr.String(),
			}
		}
		return fmt.Errorf("running cargo new: %w", err)
	}

	output.Debug("cargo new finished", "stdout_bytes", stdout.Len(), "stderr_bytes", stderr.Len())
	if i.Output != nil {
		output.Details(i.Output, stdout.String())
		output.Details(i.Output, stderr.String())
	}

	return nil
}
