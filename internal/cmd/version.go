package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/tracel-ai/burn-cli/internal/cargo"
	"github.com/tracel-ai/burn-cli/internal/version"
)

// NewVersionCmd creates the version command.
func NewVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show version information",
		Long: `Show burn CLI version information.

Displays:
  - burn CLI version, commit, and build date
  - burn crate version written into new projects
  - cargo version and path, if installed`,
		Args: cobra.NoArgs,
		RunE: runVersion,
	}
}

func runVersion(c *cobra.Command, _ []string) error {
	ctx := c.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	fmt.Fprintln(c.OutOrStdout(), version.FullVersionString(version.Get(), cargo.Detect(ctx, "")))
	return nil
}
