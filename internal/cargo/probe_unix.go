//go:build !windows

package cargo

import (
	"bytes"
	"context"
	"errors"
	"os/exec"

	"github.com/tracel-ai/burn-cli/internal/output"
)

// Available runs "which cargo" and reports whether it printed a path.
// A non-zero exit from which means cargo is absent, not a probe failure.
func (p *Probe) Available(ctx context.Context) (bool, error) {
	tool := binaryOrDefault(p.Tool)
	cmd := exec.CommandContext(ctx, p.which(), tool)

	var stdout bytes.Buffer
	cmd.Stdout = &stdout

	err := cmd.Run()
	if err != nil {
		var exitErr *exec.ExitError
		if !errors.As(err, &exitErr) {
			return false, &ToolCheckError{Command: cmd.String(), Err: err}
		}
	}

	found := len(bytes.TrimSpace(stdout.Bytes())) > 0
	output.Debug("probed for cargo", "tool", tool, "found", found)
	return found, nil
}
