// Package version provides version information for the burn CLI.
package version

import (
	"fmt"
	"runtime"

	"github.com/tracel-ai/burn-cli/internal/cargo"
	"github.com/tracel-ai/burn-cli/internal/manifest"
)

// Build-time variables set via ldflags.
var (
	// Version is the CLI version (set via ldflags).
	Version = "v0.0.0-dev"

	// GitCommit is the git commit hash.
	GitCommit = "unknown"

	// BuildDate is the build timestamp.
	BuildDate = "unknown"
)

// Info contains version information.
type Info struct {
	// Version is the CLI version (set via ldflags).
	Version string `json:"version"`

	// GitCommit is the git commit hash.
	GitCommit string `json:"gitCommit"`

	// BuildDate is the build timestamp.
	BuildDate string `json:"buildDate"`

	// GoVersion is the Go version used to build.
	GoVersion string `json:"goVersion"`

	// BurnVersion is the burn crate version written into new projects.
	BurnVersion string `json:"burnVersion"`

	// MinimumRust is the oldest toolchain that builds BurnVersion.
	MinimumRust string `json:"minimumRust"`
}

// Get returns the current version information.
func Get() Info {
	return Info{
		Version:     Version,
		GitCommit:   GitCommit,
		BuildDate:   BuildDate,
		GoVersion:   runtime.Version(),
		BurnVersion: manifest.CrateVersion,
		MinimumRust: cargo.MinimumRustVersion,
	}
}

// String returns a human-readable version string.
func (i Info) String() string {
	return fmt.Sprintf("burn CLI:\n  Version:  %s\n  Build ID: %s/%s\n  Go:       %s\n\nBurn:\n  Crate Version: %s\n  Minimum Rust:  %s",
		i.Version, i.BuildDate, i.GitCommit, i.GoVersion, i.BurnVersion, i.MinimumRust)
}

// CargoString returns a human-readable description of a cargo installation.
func CargoString(c cargo.Info) string {
	if !c.Found {
		return "  Binary Version: not found\n  Binary Path:    -"
	}
	if c.Version == "" {
		return fmt.Sprintf("  Binary Version: unknown (%s)\n  Binary Path:    %s", c.Message, c.Path)
	}

	compat := "compatible"
	if !c.Compatible {
		compat = c.Message
	}

	return fmt.Sprintf("  Binary Version: %s (%s)\n  Binary Path:    %s",
		c.Version, compat, c.Path)
}

// FullVersionString returns complete version information including cargo.
func FullVersionString(info Info, c cargo.Info) string {
	return fmt.Sprintf("%s\n\nCargo:\n%s", info.String(), CargoString(c))
}
