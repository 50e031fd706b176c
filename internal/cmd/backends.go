package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/tracel-ai/burn-cli/internal/backend"
	"github.com/tracel-ai/burn-cli/internal/output"
)

// NewBackendsCmd creates the backends command.
func NewBackendsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "backends",
		Short: "List supported backends",
		Long: `List the backends burn new accepts with --backend.

Each row shows the backend name, the Rust type the generated code is built
against, and the burn crate feature enabled in Cargo.toml.`,
		Args: cobra.NoArgs,
		RunE: func(c *cobra.Command, _ []string) error {
			fmt.Fprintln(c.OutOrStdout(), output.RenderBackendTable(backend.All()))
			return nil
		},
	}
}
