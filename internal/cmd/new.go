package cmd

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/tracel-ai/burn-cli/internal/cargo"
	"github.com/tracel-ai/burn-cli/internal/cmdtypes"
	"github.com/tracel-ai/burn-cli/internal/cmdutil"
	"github.com/tracel-ai/burn-cli/internal/config"
	"github.com/tracel-ai/burn-cli/internal/manifest"
	"github.com/tracel-ai/burn-cli/internal/output"
	"github.com/tracel-ai/burn-cli/internal/project"
	"github.com/tracel-ai/burn-cli/internal/templates"
)

// NewNewCmd creates the new command.
func NewNewCmd(gc *cmdtypes.GlobalConfig) *cobra.Command {
	var flags cmdutil.ProjectFlags

	c := &cobra.Command{
		Use:   "new [path]",
		Short: "Create a new Burn project",
		Long: `Create a new Rust project that trains and runs an MNIST model with Burn.

The project is created at path, or in the current directory when path is
omitted. The last path component becomes the project name.

Steps:
  1. Check that cargo is installed
  2. Run cargo new --lib at the path
  3. Add the burn dependency with the backend's features to Cargo.toml
  4. Generate the library, model, data, training and inference sources

Examples:
  # Create ./my_app with the default ndarray backend
  burn new my_app

  # Create a project for CUDA
  burn new my_app --backend cuda

  # Use half precision floats and a custom artifact directory
  burn new my_app -b wgpu --float f16 --artifact-dir ./artifacts`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(c *cobra.Command, args []string) error {
			return runNew(c, args, gc, &flags)
		},
	}

	flags.AddTo(c)

	return c
}

func runNew(c *cobra.Command, args []string, gc *cmdtypes.GlobalConfig, flags *cmdutil.ProjectFlags) error {
	target := ""
	if len(args) > 0 {
		target = args[0]
	} else {
		wd, err := os.Getwd()
		if err != nil {
			return cmdutil.ExitErrorFor(fmt.Errorf("getting working directory: %w", err))
		}
		target = wd
	}

	opts, values, err := flags.Options(c, target, gc)
	config.LogResolvedValues(values)
	if err != nil {
		return cmdutil.ExitErrorFor(err)
	}

	p, err := opts.Resolve()
	if err != nil {
		return cmdutil.ExitErrorFor(err)
	}

	ctx := c.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	out := c.OutOrStdout()
	fmt.Fprintf(out, "Creating new project at %s\n", p.Path())

	var (
		cargoOut  bytes.Buffer
		toolchain cargo.Info
	)
	initializer := cargo.NewInitializer()
	initializer.Output = &cargoOut

	creator := project.NewCreator(
		cargo.NewProbe(),
		initializer,
		manifest.NewPatcher(),
		templates.NewRenderer(),
		project.WithStepRunner(stepRunner(out)),
		project.WithToolchainCheck(func(ctx context.Context) {
			toolchain = cargo.Detect(ctx, "")
		}),
	)

	res, err := creator.Create(ctx, p)
	output.Details(c.ErrOrStderr(), cargoOut.String())
	cmdutil.WarnToolchain(toolchain)
	if err != nil {
		return cmdutil.ExitErrorFor(err)
	}

	cmdutil.WriteCreateSummary(out, res)
	return nil
}

// stepRunner shows each creation step as "[n/4] title", behind a spinner
// on a terminal and as a plain line otherwise.
func stepRunner(out io.Writer) project.StepRunner {
	return func(ctx context.Context, s project.Step, step func() error) error {
		title := output.FormatStep(s.N, s.Total, s.Title)
		if !output.IsTTY() {
			fmt.Fprintln(out, title)
			return step()
		}
		return output.RunWithSpinner(ctx, step, output.WithTitle(title))
	}
}
