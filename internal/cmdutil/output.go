package cmdutil

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/tracel-ai/burn-cli/internal/backend"
	"github.com/tracel-ai/burn-cli/internal/cargo"
	oerrors "github.com/tracel-ai/burn-cli/internal/errors"
	"github.com/tracel-ai/burn-cli/internal/manifest"
	"github.com/tracel-ai/burn-cli/internal/output"
	"github.com/tracel-ai/burn-cli/internal/project"
	"github.com/tracel-ai/burn-cli/internal/templates"
)

// ExitErrorFor classifies an error from project resolution or creation into
// an ExitError carrying a single user-facing message.
func ExitErrorFor(err error) *oerrors.ExitError {
	var (
		exitErr  *oerrors.ExitError
		stepErr  *project.StepError
		checkErr *cargo.ToolCheckError
		initErr  *cargo.InitError
		patchErr *manifest.PatchError
		tmplErr  *templates.TemplateError
	)

	switch {
	case err == nil:
		return nil
	case errors.As(err, &exitErr):
		return exitErr
	case errors.Is(err, project.ErrInvalidProjectPath), errors.Is(err, backend.ErrUnknownBackend):
		return oerrors.NewExitError(&oerrors.DetailError{
			Type:    "validation failed",
			Message: unwrapStep(err).Error(),
			Cause:   errors.Join(oerrors.ErrValidation, err),
		}, oerrors.ExitValidationError)
	case errors.Is(err, project.ErrToolMissing):
		return oerrors.NewExitError(oerrors.NewToolchainError(
			"Could not find cargo installed on the system.",
			fmt.Sprintf("See %s for install instructions.", cargo.InstallURL),
			err,
		), oerrors.ExitToolchainError)
	case errors.Is(err, cargo.ErrProbeNotImplemented):
		return oerrors.NewExitError(oerrors.NewToolchainError(
			cargo.ErrProbeNotImplemented.Error(), "Create the project with cargo new and add burn by hand.", err,
		), oerrors.ExitToolchainError)
	case errors.Is(err, context.DeadlineExceeded):
		return oerrors.NewExitError(oerrors.NewToolchainError(
			"cargo did not finish in time", "Raise or remove --timeout.", err,
		), oerrors.ExitToolchainError)
	case errors.As(err, &checkErr):
		return oerrors.NewExitError(oerrors.NewToolchainError(checkErr.Error(), "", err), oerrors.ExitToolchainError)
	case errors.As(err, &initErr):
		// cargo's own stderr is the message.
		return oerrors.NewExitError(oerrors.NewToolchainError(initErr.Error(), "", err), oerrors.ExitToolchainError)
	case errors.As(err, &patchErr):
		return oerrors.NewExitError(oerrors.NewManifestError(
			fmt.Sprintf("%s failed: %v", patchErr.Op, patchErr.Err), patchErr.Path, err,
		), oerrors.ExitManifestError)
	case errors.As(err, &tmplErr):
		return oerrors.NewExitError(oerrors.NewGenerateError(tmplErr.Error(), "", err), oerrors.ExitGenerateError)
	case errors.As(err, &stepErr) && stepErr.State < project.StateSkeletonCreated:
		return oerrors.NewExitError(oerrors.NewToolchainError(unwrapStep(err).Error(), "", err), oerrors.ExitToolchainError)
	case errors.As(err, &stepErr):
		return oerrors.NewExitError(oerrors.NewGenerateError(unwrapStep(err).Error(), "", err), oerrors.ExitGenerateError)
	default:
		return oerrors.NewExitError(err, oerrors.ExitGeneralError)
	}
}

// unwrapStep strips the StepError prefix so messages name the failure, not
// the step.
func unwrapStep(err error) error {
	var stepErr *project.StepError
	if errors.As(err, &stepErr) {
		return stepErr.Err
	}
	return err
}

// WriteCreateSummary writes the generated file tree and next steps.
func WriteCreateSummary(w io.Writer, res *project.Result) {
	p := res.Project

	entries := []output.FileEntry{{
		Path:   manifest.FileName,
		Note:   fmt.Sprintf("burn %s, features: %s", manifest.CrateVersion, p.Backend().Feature()),
		Status: output.StatusPatched,
	}}
	for _, f := range res.Files {
		target, _ := lookupTarget(f.Path)
		status := output.StatusCreated
		if f.Overwritten {
			status = output.StatusOverwritten
		}
		entries = append(entries, output.FileEntry{Path: f.Path, Note: target.Description, Status: status})
	}

	fmt.Fprintln(w)
	fmt.Fprintln(w, output.RenderFileTree(p.Name(), entries))
	fmt.Fprintln(w)
	fmt.Fprintln(w, output.FormatCheckmark(fmt.Sprintf("Created %s with the %s backend", p.Name(), p.Backend().Identifier())))
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Next steps:")
	fmt.Fprintf(w, "  cd %s\n", p.Path())
	fmt.Fprintln(w, "  cargo run --bin train")
	fmt.Fprintf(w, "  %s\n", output.StyleDim.Render("artifacts: "+p.ArtifactDir()))
}

func lookupTarget(path string) (templates.Target, bool) {
	for _, t := range templates.Targets() {
		if t.Path == path {
			return t, true
		}
	}
	return templates.Target{}, false
}

// WarnToolchain logs a warning when cargo is older than burn requires. It
// never fails: creation proceeds either way.
func WarnToolchain(info cargo.Info) {
	if !info.Found || info.Version == "" || info.Compatible {
		return
	}
	output.Warn(strings.TrimSpace(info.Message), "minimum", cargo.MinimumRustVersion)
}
