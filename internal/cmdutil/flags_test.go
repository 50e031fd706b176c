package cmdutil

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tracel-ai/burn-cli/internal/backend"
	"github.com/tracel-ai/burn-cli/internal/cmdtypes"
	"github.com/tracel-ai/burn-cli/internal/config"
	oerrors "github.com/tracel-ai/burn-cli/internal/errors"
)

func clearBurnEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{config.KeyBackend, config.KeyFloatType, config.KeyIntType, config.KeyArtifactDir} {
		t.Setenv(config.EnvVar(key), "")
		os.Unsetenv(config.EnvVar(key))
	}
}

// parse registers ProjectFlags on a fresh command and parses args.
func parse(t *testing.T, args ...string) (*cobra.Command, *ProjectFlags) {
	t.Helper()
	flags := &ProjectFlags{}
	cmd := &cobra.Command{Use: "new"}
	flags.AddTo(cmd)
	require.NoError(t, cmd.ParseFlags(args))
	return cmd, flags
}

func TestProjectFlags_Defaults(t *testing.T) {
	clearBurnEnv(t)
	cmd, flags := parse(t)

	opts, values, err := flags.Options(cmd, "app", &cmdtypes.GlobalConfig{})
	require.NoError(t, err)

	assert.Equal(t, "app", opts.TargetPath)
	assert.Equal(t, backend.NdArray, opts.Backend)
	assert.Equal(t, "f32", opts.FloatType)
	assert.Equal(t, "i32", opts.IntType)
	assert.Empty(t, opts.ArtifactDir)
	assert.Zero(t, opts.Timeout)
	for _, v := range values {
		assert.Equal(t, config.SourceDefault, v.Source, v.Key)
	}
}

func TestProjectFlags_FlagsSet(t *testing.T) {
	clearBurnEnv(t)
	cmd, flags := parse(t, "--backend", "candle-cuda", "--float", "f16", "--int", "i64", "--artifact-dir", "/data/a", "--timeout", "90s")

	opts, _, err := flags.Options(cmd, "app", &cmdtypes.GlobalConfig{})
	require.NoError(t, err)

	assert.Equal(t, backend.CandleCUDA, opts.Backend)
	assert.Equal(t, "f16", opts.FloatType)
	assert.Equal(t, "i64", opts.IntType)
	assert.Equal(t, "/data/a", opts.ArtifactDir)
	assert.Equal(t, 90*time.Second, opts.Timeout)
}

func TestProjectFlags_Precedence(t *testing.T) {
	clearBurnEnv(t)
	t.Setenv("BURN_BACKEND", "metal")
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("backend: vulkan\nfloatType: f64\n"), 0o644))

	loader := config.NewLoader()
	_, err := loader.Load(path)
	require.NoError(t, err)
	gc := &cmdtypes.GlobalConfig{Loader: loader}

	cmd, flags := parse(t)
	opts, values, err := flags.Options(cmd, "app", gc)
	require.NoError(t, err)
	assert.Equal(t, backend.Metal, opts.Backend, "env beats config")
	assert.Equal(t, config.SourceEnv, values[0].Source)
	assert.Equal(t, "f64", opts.FloatType, "config beats default")
	assert.Equal(t, config.SourceConfig, values[1].Source)

	cmd, flags = parse(t, "--backend", "wgpu")
	opts, values, err = flags.Options(cmd, "app", gc)
	require.NoError(t, err)
	assert.Equal(t, backend.Wgpu, opts.Backend, "flag beats env")
	assert.Equal(t, "metal", values[0].Shadowed[config.SourceEnv])
}

func TestProjectFlags_UnknownBackend(t *testing.T) {
	clearBurnEnv(t)
	cmd, flags := parse(t, "--backend", "tpu")

	_, _, err := flags.Options(cmd, "app", &cmdtypes.GlobalConfig{})
	require.Error(t, err)

	var exitErr *oerrors.ExitError
	require.True(t, errors.As(err, &exitErr))
	assert.Equal(t, oerrors.ExitValidationError, exitErr.Code)
	assert.Contains(t, err.Error(), `unknown backend "tpu"`)
	assert.Contains(t, err.Error(), "Valid backends: ndarray, tch-cpu")
	assert.Contains(t, err.Error(), "Location: flag")
	assert.ErrorIs(t, err, oerrors.ErrValidation)
}
