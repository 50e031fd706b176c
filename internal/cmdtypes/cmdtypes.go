// Package cmdtypes provides shared types for the cmd package and its sub-packages.
// It is separate from internal/cmd to avoid import cycles between internal/cmd
// and its sub-packages (internal/cmd/config).
package cmdtypes

import (
	"github.com/tracel-ai/burn-cli/internal/config"
	oerrors "github.com/tracel-ai/burn-cli/internal/errors"
)

// GlobalConfig holds CLI-wide configuration resolved during PersistentPreRunE.
// It is populated once at startup and passed explicitly into every sub-command
// constructor.
type GlobalConfig struct {
	// Config is the config file merged with the environment. Never nil after
	// PersistentPreRunE; an unreadable file leaves it empty.
	Config *config.Config

	// Loader holds the per-source values Config was merged from.
	Loader *config.Loader

	ConfigPath string // resolved --config path
	Verbose    bool
}

// EnsureLoader returns the loader, creating an empty one for commands run
// without PersistentPreRunE (e.g. in tests).
func (g *GlobalConfig) EnsureLoader() *config.Loader {
	if g.Loader == nil {
		g.Loader = config.NewLoader()
	}
	return g.Loader
}

// Exit codes, aliased from internal/errors.
const (
	ExitSuccess         = oerrors.ExitSuccess
	ExitGeneralError    = oerrors.ExitGeneralError
	ExitValidationError = oerrors.ExitValidationError
	ExitToolchainError  = oerrors.ExitToolchainError
	ExitManifestError   = oerrors.ExitManifestError
	ExitGenerateError   = oerrors.ExitGenerateError
)

// ExitError is a type alias to internal/errors.ExitError.
type ExitError = oerrors.ExitError
