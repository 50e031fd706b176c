// Package cmd provides CLI command implementations.
package cmd

import (
	"github.com/spf13/cobra"

	configcmd "github.com/tracel-ai/burn-cli/internal/cmd/config"
	"github.com/tracel-ai/burn-cli/internal/cmdtypes"
	"github.com/tracel-ai/burn-cli/internal/config"
	"github.com/tracel-ai/burn-cli/internal/output"
)

// NewRootCmd creates the root command for the burn CLI.
func NewRootCmd() *cobra.Command {
	var (
		configFlag     string
		verboseFlag    bool
		timestampsFlag bool
	)

	gc := &cmdtypes.GlobalConfig{}

	rootCmd := &cobra.Command{
		Use:   "burn",
		Short: "Burn project scaffolding CLI",
		Long: `burn creates new Rust projects that train and run models with the Burn
deep learning framework.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return initializeGlobals(cmd, gc, configFlag, verboseFlag, timestampsFlag)
		},
	}

	rootCmd.PersistentFlags().StringVar(&configFlag, "config", "", "Path to config file (env: BURN_CONFIG)")
	rootCmd.PersistentFlags().BoolVarP(&verboseFlag, "verbose", "v", false, "Enable verbose output")
	rootCmd.PersistentFlags().BoolVar(&timestampsFlag, "timestamps", true, "Show timestamps in log output")

	rootCmd.AddCommand(NewNewCmd(gc))
	rootCmd.AddCommand(NewBackendsCmd())
	rootCmd.AddCommand(NewVersionCmd())
	rootCmd.AddCommand(configcmd.NewConfigCmd(gc))

	return rootCmd
}

// initializeGlobals sets up logging and loads configuration into gc.
func initializeGlobals(cmd *cobra.Command, gc *cmdtypes.GlobalConfig, configFlag string, verbose, timestamps bool) error {
	gc.Verbose = verbose

	// Logging first so config problems can be reported.
	output.SetupLogging(output.LogConfig{Verbose: verbose})

	pathResult, err := config.ResolveConfigPath(configFlag)
	if err != nil {
		output.Debug("could not resolve config path", "error", err)
	}
	gc.ConfigPath = pathResult.ConfigPath

	loader := config.NewLoader()
	cfg, err := loader.Load(gc.ConfigPath)
	if err != nil {
		// Commands that don't need config (config init, version) still work.
		output.Warn("ignoring config file", "path", gc.ConfigPath, "error", err)
		loader = config.NewLoader()
		cfg = &config.Config{}
	}
	gc.Loader = loader
	gc.Config = cfg

	// Resolve timestamps: flag (if explicitly set) > config > default (nil = true)
	logCfg := output.LogConfig{Verbose: verbose}
	if cmd.Flags().Changed("timestamps") {
		logCfg.Timestamps = output.BoolPtr(timestamps)
	} else if cfg.Log.Timestamps != nil {
		logCfg.Timestamps = cfg.Log.Timestamps
	}
	output.SetupLogging(logCfg)

	output.Debug("initializing CLI",
		"config", gc.ConfigPath,
		"config_source", pathResult.Source,
		"config_found", loader.Found(),
	)

	return nil
}
