package config

import (
	"os"

	"github.com/tracel-ai/burn-cli/internal/output"
)

// ConfigSource indicates where a configuration value came from.
type ConfigSource string

const (
	// SourceFlag indicates value came from command-line flag.
	SourceFlag ConfigSource = "flag"
	// SourceEnv indicates value came from environment variable.
	SourceEnv ConfigSource = "env"
	// SourceConfig indicates value came from config file.
	SourceConfig ConfigSource = "config"
	// SourceDefault indicates value is the built-in default.
	SourceDefault ConfigSource = "default"
)

// ResolvedValue is a configuration value and where it came from.
type ResolvedValue struct {
	Key    string
	Value  string
	Source ConfigSource
	// Shadowed contains values that were overridden by higher precedence.
	Shadowed map[ConfigSource]string
}

// ResolveOptions are the candidate values for one key.
type ResolveOptions struct {
	Key string

	// Flag is used when FlagSet is true, even if empty.
	Flag    string
	FlagSet bool

	Env     string
	Config  string
	Default string
}

// Resolve picks a value using precedence:
// (1) flag, (2) environment, (3) config file, (4) default.
// Empty env and config values count as unset.
func Resolve(opts ResolveOptions) ResolvedValue {
	result := ResolvedValue{
		Key:      opts.Key,
		Shadowed: make(map[ConfigSource]string),
	}

	candidates := []struct {
		source ConfigSource
		value  string
		set    bool
	}{
		{SourceFlag, opts.Flag, opts.FlagSet},
		{SourceEnv, opts.Env, opts.Env != ""},
		{SourceConfig, opts.Config, opts.Config != ""},
		{SourceDefault, opts.Default, true},
	}

	for _, c := range candidates {
		if !c.set {
			continue
		}
		if result.Source == "" {
			result.Value = c.value
			result.Source = c.source
			continue
		}
		if c.value != "" {
			result.Shadowed[c.source] = c.value
		}
	}

	return result
}

// ResolveKey resolves key from a flag and the sources l loaded.
func (l *Loader) ResolveKey(key, flag string, flagSet bool, def string) ResolvedValue {
	return Resolve(ResolveOptions{
		Key:     key,
		Flag:    flag,
		FlagSet: flagSet,
		Env:     l.EnvValue(key),
		Config:  l.FileValue(key),
		Default: def,
	})
}

// ResolveConfigPathResult contains the resolved config path and its source.
type ResolveConfigPathResult struct {
	// ConfigPath is the resolved config file path.
	ConfigPath string
	// Source indicates where the config path came from.
	Source ConfigSource
	// Shadowed contains values that were overridden by higher precedence.
	Shadowed map[ConfigSource]string
}

// ResolveConfigPath resolves the config file path using precedence:
// (1) --config flag, (2) BURN_CONFIG env, (3) ~/.burn/config.yaml default
func ResolveConfigPath(flagValue string) (ResolveConfigPathResult, error) {
	paths, err := DefaultPaths()
	if err != nil {
		return ResolveConfigPathResult{Shadowed: map[ConfigSource]string{}}, err
	}

	r := Resolve(ResolveOptions{
		Key:     "config",
		Flag:    flagValue,
		FlagSet: flagValue != "",
		Env:     os.Getenv(EnvConfig),
		Default: paths.ConfigFile,
	})

	return ResolveConfigPathResult{
		ConfigPath: r.Value,
		Source:     r.Source,
		Shadowed:   r.Shadowed,
	}, nil
}

// LogResolvedValues logs configuration resolution at DEBUG level.
func LogResolvedValues(values []ResolvedValue) {
	for _, v := range values {
		output.Debug("config value resolved",
			"key", v.Key,
			"value", v.Value,
			"source", v.Source,
		)
		for source, shadowed := range v.Shadowed {
			output.Debug("  shadowed by higher precedence",
				"key", v.Key,
				"shadowed_source", source,
				"shadowed_value", shadowed,
			)
		}
	}
}
