package config

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolve(t *testing.T) {
	tests := []struct {
		name         string
		opts         ResolveOptions
		wantValue    string
		wantSource   ConfigSource
		wantShadowed map[ConfigSource]string
	}{
		{
			name:       "flag wins",
			opts:       ResolveOptions{Key: "backend", Flag: "wgpu", FlagSet: true, Env: "cuda", Config: "metal", Default: "ndarray"},
			wantValue:  "wgpu",
			wantSource: SourceFlag,
			wantShadowed: map[ConfigSource]string{
				SourceEnv:     "cuda",
				SourceConfig:  "metal",
				SourceDefault: "ndarray",
			},
		},
		{
			name:       "env over config",
			opts:       ResolveOptions{Key: "backend", Env: "cuda", Config: "metal", Default: "ndarray"},
			wantValue:  "cuda",
			wantSource: SourceEnv,
			wantShadowed: map[ConfigSource]string{
				SourceConfig:  "metal",
				SourceDefault: "ndarray",
			},
		},
		{
			name:         "config over default",
			opts:         ResolveOptions{Key: "backend", Config: "metal", Default: "ndarray"},
			wantValue:    "metal",
			wantSource:   SourceConfig,
			wantShadowed: map[ConfigSource]string{SourceDefault: "ndarray"},
		},
		{
			name:         "default",
			opts:         ResolveOptions{Key: "backend", Default: "ndarray"},
			wantValue:    "ndarray",
			wantSource:   SourceDefault,
			wantShadowed: map[ConfigSource]string{},
		},
		{
			name:         "empty default",
			opts:         ResolveOptions{Key: "artifactDir"},
			wantValue:    "",
			wantSource:   SourceDefault,
			wantShadowed: map[ConfigSource]string{},
		},
		{
			name:         "flag set but not given is ignored",
			opts:         ResolveOptions{Key: "backend", Flag: "wgpu", FlagSet: false, Default: "ndarray"},
			wantValue:    "ndarray",
			wantSource:   SourceDefault,
			wantShadowed: map[ConfigSource]string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Resolve(tt.opts)
			assert.Equal(t, tt.opts.Key, got.Key)
			assert.Equal(t, tt.wantValue, got.Value)
			assert.Equal(t, tt.wantSource, got.Source)
			assert.Equal(t, tt.wantShadowed, got.Shadowed)
		})
	}
}

func TestLoaderResolveKey(t *testing.T) {
	clearEnv(t)
	t.Setenv("BURN_FLOAT_TYPE", "f64")
	path := writeConfig(t, "backend: vulkan\nfloatType: f16\n")

	loader := NewLoader()
	_, err := loader.Load(path)
	require.NoError(t, err)

	b := loader.ResolveKey(KeyBackend, "", false, "ndarray")
	assert.Equal(t, "vulkan", b.Value)
	assert.Equal(t, SourceConfig, b.Source)

	f := loader.ResolveKey(KeyFloatType, "", false, "f32")
	assert.Equal(t, "f64", f.Value)
	assert.Equal(t, SourceEnv, f.Source)
	assert.Equal(t, "f16", f.Shadowed[SourceConfig])

	i := loader.ResolveKey(KeyIntType, "i8", true, "i32")
	assert.Equal(t, "i8", i.Value)
	assert.Equal(t, SourceFlag, i.Source)
}

func TestResolveConfigPath(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)
	defaultPath := filepath.Join(home, ".burn", "config.yaml")

	t.Run("flag precedence", func(t *testing.T) {
		t.Setenv(EnvConfig, "/env/config.yaml")
		got, err := ResolveConfigPath("/flag/config.yaml")
		require.NoError(t, err)

		assert.Equal(t, "/flag/config.yaml", got.ConfigPath)
		assert.Equal(t, SourceFlag, got.Source)
		assert.Equal(t, "/env/config.yaml", got.Shadowed[SourceEnv])
		assert.Equal(t, defaultPath, got.Shadowed[SourceDefault])
	})

	t.Run("env precedence", func(t *testing.T) {
		t.Setenv(EnvConfig, "/env/config.yaml")
		got, err := ResolveConfigPath("")
		require.NoError(t, err)

		assert.Equal(t, "/env/config.yaml", got.ConfigPath)
		assert.Equal(t, SourceEnv, got.Source)
	})

	t.Run("default", func(t *testing.T) {
		t.Setenv(EnvConfig, "")
		got, err := ResolveConfigPath("")
		require.NoError(t, err)

		assert.Equal(t, defaultPath, got.ConfigPath)
		assert.Equal(t, SourceDefault, got.Source)
		assert.Empty(t, got.Shadowed)
	})
}
