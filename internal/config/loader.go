package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"

	"github.com/spf13/viper"
)

// Environment variable prefix for burn configuration.
const envPrefix = "BURN"

// envVars maps configuration keys to their environment variables.
var envVars = map[string]string{
	KeyBackend:       "BURN_BACKEND",
	KeyFloatType:     "BURN_FLOAT_TYPE",
	KeyIntType:       "BURN_INT_TYPE",
	KeyArtifactDir:   "BURN_ARTIFACT_DIR",
	KeyLogTimestamps: "BURN_LOG_TIMESTAMPS",
}

// EnvVar returns the environment variable bound to key.
func EnvVar(key string) string {
	return envVars[key]
}

// Loader handles loading and merging configuration from multiple sources.
type Loader struct {
	// v merges the config file with the environment.
	v *viper.Viper

	// file holds the config file alone, so sources can be told apart.
	file *viper.Viper

	path  string
	found bool
}

// NewLoader creates a new configuration loader.
func NewLoader() *Loader {
	v := viper.New()

	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	for key, env := range envVars {
		_ = v.BindEnv(key, env)
	}

	return &Loader{v: v, file: viper.New()}
}

// Load loads configuration from the given file path.
// If configFile is empty, it uses the default config file path.
// Environment variables take precedence over file values. A missing file
// is not an error.
func (l *Loader) Load(configFile string) (*Config, error) {
	if configFile == "" {
		var err error
		configFile, err = GetConfigFile()
		if err != nil {
			return nil, fmt.Errorf("getting config file path: %w", err)
		}
	}

	expandedPath, err := ExpandPath(configFile)
	if err != nil {
		return nil, fmt.Errorf("expanding config path: %w", err)
	}
	l.path = expandedPath

	l.file.SetConfigFile(expandedPath)
	l.file.SetConfigType("yaml")
	if err := l.file.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) && !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("reading config file %s: %w", expandedPath, err)
		}
	} else {
		l.found = true
	}

	if err := l.v.MergeConfigMap(l.file.AllSettings()); err != nil {
		return nil, fmt.Errorf("merging config file: %w", err)
	}

	var cfg Config
	if err := l.v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshaling config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config %s: %w", expandedPath, err)
	}

	return &cfg, nil
}

// Path returns the config file path used by the last Load.
func (l *Loader) Path() string {
	return l.path
}

// Found reports whether the last Load read a config file.
func (l *Loader) Found() bool {
	return l.found
}

// FileValue returns key as set in the config file, ignoring the environment.
func (l *Loader) FileValue(key string) string {
	if !l.file.IsSet(key) {
		return ""
	}
	return l.file.GetString(key)
}

// EnvValue returns the value of key's environment variable.
func (l *Loader) EnvValue(key string) string {
	env, ok := envVars[key]
	if !ok {
		return ""
	}
	return os.Getenv(env)
}

// ConfigFileExists checks if the config file exists.
func ConfigFileExists(configFile string) (bool, error) {
	if configFile == "" {
		var err error
		configFile, err = GetConfigFile()
		if err != nil {
			return false, err
		}
	}

	expandedPath, err := ExpandPath(configFile)
	if err != nil {
		return false, err
	}

	_, err = os.Stat(expandedPath)
	if err != nil {
		if os.IsNotExist(err) {
			return false, nil
		}
		return false, err
	}

	return true, nil
}
