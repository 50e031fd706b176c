// Package config provides CLI command implementations for the config command group.
package config

import (
	"github.com/spf13/cobra"

	"github.com/tracel-ai/burn-cli/internal/cmdtypes"
	"github.com/tracel-ai/burn-cli/internal/config"
)

// NewConfigCmd creates the config command group.
func NewConfigCmd(gc *cmdtypes.GlobalConfig) *cobra.Command {
	c := &cobra.Command{
		Use:   "config",
		Short: "Configuration management",
		Long:  `Configuration management for the burn CLI.`,
	}

	c.AddCommand(NewConfigInitCmd(gc))
	c.AddCommand(NewConfigShowCmd(gc))

	return c
}

// configPath returns the config file path resolved by the root command,
// falling back to the default location.
func configPath(gc *cmdtypes.GlobalConfig) (string, error) {
	if gc != nil && gc.ConfigPath != "" {
		return gc.ConfigPath, nil
	}
	return config.GetConfigFile()
}
