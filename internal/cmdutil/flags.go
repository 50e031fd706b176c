// Package cmdutil provides shared command utilities: project flag handling,
// error classification and the post-create summary.
package cmdutil

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/tracel-ai/burn-cli/internal/backend"
	"github.com/tracel-ai/burn-cli/internal/cmdtypes"
	"github.com/tracel-ai/burn-cli/internal/config"
	oerrors "github.com/tracel-ai/burn-cli/internal/errors"
	"github.com/tracel-ai/burn-cli/internal/project"
)

// Flag names shared by commands that create projects.
const (
	FlagBackend     = "backend"
	FlagFloat       = "float"
	FlagInt         = "int"
	FlagArtifactDir = "artifact-dir"
	FlagTimeout     = "timeout"
)

// ProjectFlags holds the flags of burn new.
type ProjectFlags struct {
	Backend     string
	FloatType   string
	IntType     string
	ArtifactDir string
	Timeout     time.Duration
}

// AddTo registers the project flags on the given cobra command.
func (f *ProjectFlags) AddTo(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&f.Backend, FlagBackend, "b", string(backend.Default),
		fmt.Sprintf("Backend to build against (%s) (env: BURN_BACKEND)", strings.Join(backend.Names(), ", ")))
	cmd.Flags().StringVar(&f.FloatType, FlagFloat, project.DefaultFloatType,
		"Float element type (env: BURN_FLOAT_TYPE)")
	cmd.Flags().StringVar(&f.IntType, FlagInt, project.DefaultIntType,
		"Int element type (env: BURN_INT_TYPE)")
	cmd.Flags().StringVar(&f.ArtifactDir, FlagArtifactDir, "",
		"Training artifact directory (default: <temp dir>/<project name>) (env: BURN_ARTIFACT_DIR)")
	cmd.Flags().DurationVar(&f.Timeout, FlagTimeout, 0,
		"Limit for each cargo invocation, e.g. 2m (0 means no limit)")
}

// Options resolves the flags against the environment and config file into
// project options for target. Values are resolved with precedence
// flag > env > config > default and returned for logging.
func (f *ProjectFlags) Options(cmd *cobra.Command, target string, gc *cmdtypes.GlobalConfig) (project.Options, []config.ResolvedValue, error) {
	loader := gc.EnsureLoader()
	changed := cmd.Flags().Changed

	values := []config.ResolvedValue{
		loader.ResolveKey(config.KeyBackend, f.Backend, changed(FlagBackend), string(backend.Default)),
		loader.ResolveKey(config.KeyFloatType, f.FloatType, changed(FlagFloat), project.DefaultFloatType),
		loader.ResolveKey(config.KeyIntType, f.IntType, changed(FlagInt), project.DefaultIntType),
		loader.ResolveKey(config.KeyArtifactDir, f.ArtifactDir, changed(FlagArtifactDir), ""),
	}

	b, err := backend.Parse(values[0].Value)
	if err != nil {
		return project.Options{}, values, oerrors.NewExitError(oerrors.NewValidationError(
			fmt.Sprintf("unknown backend %q", values[0].Value),
			string(values[0].Source),
			"Valid backends: "+strings.Join(backend.Names(), ", "),
		), oerrors.ExitValidationError)
	}

	return project.Options{
		TargetPath:  target,
		Backend:     b,
		FloatType:   values[1].Value,
		IntType:     values[2].Value,
		ArtifactDir: values[3].Value,
		Timeout:     f.Timeout,
	}, values, nil
}
