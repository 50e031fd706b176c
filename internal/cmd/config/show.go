package config

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/tracel-ai/burn-cli/internal/backend"
	"github.com/tracel-ai/burn-cli/internal/cmdtypes"
	"github.com/tracel-ai/burn-cli/internal/config"
	"github.com/tracel-ai/burn-cli/internal/output"
	"github.com/tracel-ai/burn-cli/internal/project"
)

// showKeys lists the keys burn config show reports, with their defaults.
var showKeys = []struct {
	key string
	def string
}{
	{config.KeyBackend, string(backend.Default)},
	{config.KeyFloatType, project.DefaultFloatType},
	{config.KeyIntType, project.DefaultIntType},
	{config.KeyArtifactDir, ""},
	{config.KeyLogTimestamps, "true"},
}

// NewConfigShowCmd creates the config show command.
func NewConfigShowCmd(gc *cmdtypes.GlobalConfig) *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Show effective configuration",
		Long: `Show the configuration burn new would use, and where each value comes from.

Sources, highest precedence first: env (BURN_* variables), config (the
config file), default. Flags of burn new override all of them.`,
		Args: cobra.NoArgs,
		RunE: func(c *cobra.Command, _ []string) error {
			return runShow(c, gc)
		},
	}
}

func runShow(c *cobra.Command, gc *cmdtypes.GlobalConfig) error {
	loader := gc.EnsureLoader()

	state := "not found"
	if loader.Found() {
		state = "found"
	}
	path := loader.Path()
	if path == "" {
		path = gc.ConfigPath
	}

	tbl := output.NewTable("KEY", "VALUE", "SOURCE")
	for _, k := range showKeys {
		r := loader.ResolveKey(k.key, "", false, k.def)
		value := r.Value
		if k.key == config.KeyArtifactDir && value == "" {
			value = "<temp dir>/<project name>"
		}
		tbl.Row(k.key, value, string(r.Source))
	}

	out := c.OutOrStdout()
	fmt.Fprintf(out, "Config file: %s (%s)\n\n", path, state)
	fmt.Fprintln(out, tbl.String())
	return nil
}
