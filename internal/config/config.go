// Package config provides configuration loading and management.
package config

import (
	"fmt"

	"github.com/tracel-ai/burn-cli/internal/backend"
)

// Configuration keys, as used in the config file and by viper.
const (
	KeyBackend       = "backend"
	KeyFloatType     = "floatType"
	KeyIntType       = "intType"
	KeyArtifactDir   = "artifactDir"
	KeyLogTimestamps = "log.timestamps"
)

// LogConfig contains logging-related settings.
type LogConfig struct {
	// Timestamps controls whether timestamps are shown in log output.
	// Default: true. Override with --timestamps flag.
	Timestamps *bool `mapstructure:"timestamps" yaml:"timestamps,omitempty"`
}

// Config represents the burn CLI configuration.
// Loaded from ~/.burn/config.yaml.
type Config struct {
	// Backend is the default backend for new projects.
	// Env: BURN_BACKEND, Default: ndarray
	Backend string `mapstructure:"backend" yaml:"backend,omitempty"`

	// FloatType is the default float element type.
	// Env: BURN_FLOAT_TYPE, Default: f32
	FloatType string `mapstructure:"floatType" yaml:"floatType,omitempty"`

	// IntType is the default int element type.
	// Env: BURN_INT_TYPE, Default: i32
	IntType string `mapstructure:"intType" yaml:"intType,omitempty"`

	// ArtifactDir overrides where training artifacts go. Empty means the
	// platform temp directory joined with the project name.
	// Env: BURN_ARTIFACT_DIR
	ArtifactDir string `mapstructure:"artifactDir" yaml:"artifactDir,omitempty"`

	// Log contains logging-related settings.
	Log LogConfig `mapstructure:"log" yaml:"log,omitempty"`
}

// DefaultConfig returns a Config with all default values populated.
// Used by `burn config init` to generate the initial config file.
func DefaultConfig() *Config {
	timestamps := true
	return &Config{
		Backend:   string(backend.Default),
		FloatType: "f32",
		IntType:   "i32",
		Log: LogConfig{
			Timestamps: &timestamps,
		},
	}
}

// Validate checks values that can be checked without a project.
func (c *Config) Validate() error {
	if c.Backend == "" {
		return nil
	}
	if _, err := backend.Parse(c.Backend); err != nil {
		return fmt.Errorf("%s: %w", KeyBackend, err)
	}
	return nil
}
