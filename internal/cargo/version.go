package cargo

import (
	"bytes"
	"context"
	"fmt"
	"os/exec"
	"regexp"
	"strings"

	"github.com/Masterminds/semver/v3"
)

// MinimumRustVersion is the oldest toolchain able to build burn 0.18 projects.
const MinimumRustVersion = "1.85.0"

// cargoVersionRegex matches output like "cargo 1.86.0 (adcdd8bdc 2025-02-18)".
var cargoVersionRegex = regexp.MustCompile(`\d+\.\d+\.\d+(?:-[a-zA-Z0-9.]+)?`)

// Info describes the cargo installation found on PATH.
type Info struct {
	// Version is the cargo version without a "v" prefix.
	Version string `json:"version"`

	// Path is the resolved path of the cargo binary.
	Path string `json:"path"`

	// Found indicates cargo was found on PATH.
	Found bool `json:"found"`

	// Compatible indicates Version satisfies MinimumRustVersion.
	Compatible bool `json:"compatible"`

	// Message explains the compatibility result.
	Message string `json:"message,omitempty"`
}

// Detect locates cargo and checks its version against MinimumRustVersion.
func Detect(ctx context.Context, binary string) Info {
	path, err := exec.LookPath(binaryOrDefault(binary))
	if err != nil {
		return Info{
			Message: "cargo not found in PATH",
		}
	}

	version, err := getVersion(ctx, path)
	if err != nil {
		return Info{
			Path:    path,
			Found:   true,
			Message: "failed to get cargo version: " + err.Error(),
		}
	}

	compatible, message := CheckCompatible(version)
	return Info{
		Version:    version,
		Path:       path,
		Found:      true,
		Compatible: compatible,
		Message:    message,
	}
}

// CheckCompatible reports whether version satisfies MinimumRustVersion.
func CheckCompatible(version string) (bool, string) {
	v, err := semver.NewVersion(strings.TrimPrefix(version, "v"))
	if err != nil {
		return false, fmt.Sprintf("invalid cargo version %q", version)
	}

	constraint, err := semver.NewConstraint(">= " + MinimumRustVersion)
	if err != nil {
		return false, err.Error()
	}

	// Nightly and beta toolchains carry prerelease suffixes; compare the
	// release part only.
	release, err := v.SetPrerelease("")
	if err != nil {
		return false, err.Error()
	}

	if !constraint.Check(&release) {
		return false, fmt.Sprintf("cargo %s is older than the required %s", version, MinimumRustVersion)
	}
	return true, "compatible"
}

func getVersion(ctx context.Context, cargoPath string) (string, error) {
	cmd := exec.CommandContext(ctx, cargoPath, "--version")
	var out bytes.Buffer
	cmd.Stdout = &out
	cmd.Stderr = &out

	if err := cmd.Run(); err != nil {
		return "", err
	}

	return extractVersion(out.String())
}

// extractVersion pulls the version number out of "cargo --version" output.
func extractVersion(output string) (string, error) {
	match := cargoVersionRegex.FindString(output)
	if match == "" {
		return "", fmt.Errorf("failed to parse cargo version from output: %q", strings.TrimSpace(output))
	}
	return match, nil
}
