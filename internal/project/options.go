package project

import (
	"fmt"
	"path/filepath"
	"regexp"
	"time"

	"github.com/tracel-ai/burn-cli/internal/backend"
	"github.com/tracel-ai/burn-cli/internal/templates"
)

// Element type defaults.
const (
	DefaultFloatType = "f32"
	DefaultIntType   = "i32"
)

// typeName is the shape of a Rust primitive type name.
var typeName = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`)

// Options are the user-supplied project settings. Zero values select the
// defaults.
type Options struct {
	// TargetPath is the directory to create the project in.
	TargetPath string

	// ArtifactDir defaults to DefaultArtifactDir(<project name>).
	ArtifactDir string

	// Backend defaults to backend.Default.
	Backend backend.Backend

	// FloatType defaults to DefaultFloatType.
	FloatType string

	// IntType defaults to DefaultIntType.
	IntType string

	// Timeout bounds each cargo invocation. Zero means no limit.
	Timeout time.Duration
}

// Resolved is a fully defaulted, validated set of options. It is immutable;
// values are read through its methods.
type Resolved struct {
	path        string
	name        string
	artifactDir string
	backend     backend.Backend
	floatType   string
	intType     string
	timeout     time.Duration
}

// Resolve applies defaults and validates o.
func (o Options) Resolve() (Resolved, error) {
	name, err := ProjectName(o.TargetPath)
	if err != nil {
		return Resolved{}, err
	}

	r := Resolved{
		path:        filepath.Clean(o.TargetPath),
		name:        name,
		artifactDir: o.ArtifactDir,
		backend:     o.Backend,
		floatType:   o.FloatType,
		intType:     o.IntType,
		timeout:     o.Timeout,
	}

	if r.artifactDir == "" {
		r.artifactDir = DefaultArtifactDir(name)
	}
	if r.backend == "" {
		r.backend = backend.Default
	}
	if r.floatType == "" {
		r.floatType = DefaultFloatType
	}
	if r.intType == "" {
		r.intType = DefaultIntType
	}

	if !r.backend.IsValid() {
		return Resolved{}, fmt.Errorf("%w %q", backend.ErrUnknownBackend, r.backend)
	}
	if !typeName.MatchString(r.floatType) {
		return Resolved{}, fmt.Errorf("invalid float type %q", r.floatType)
	}
	if !typeName.MatchString(r.intType) {
		return Resolved{}, fmt.Errorf("invalid int type %q", r.intType)
	}
	if r.timeout < 0 {
		return Resolved{}, fmt.Errorf("timeout must not be negative, got %s", r.timeout)
	}

	return r, nil
}

// Path is the cleaned target directory.
func (r Resolved) Path() string { return r.path }

// Name is the project name.
func (r Resolved) Name() string { return r.name }

// ArtifactDir is where the generated training code writes its outputs.
func (r Resolved) ArtifactDir() string { return r.artifactDir }

// Backend is the selected backend.
func (r Resolved) Backend() backend.Backend { return r.backend }

// FloatType is the Rust float element type, e.g. f32.
func (r Resolved) FloatType() string { return r.floatType }

// IntType is the Rust int element type, e.g. i32.
func (r Resolved) IntType() string { return r.intType }

// Timeout bounds each cargo invocation. Zero means no limit.
func (r Resolved) Timeout() time.Duration { return r.timeout }

// ManifestPath is the path of the project's Cargo.toml.
func (r Resolved) ManifestPath() string {
	return filepath.Join(r.path, manifestFile)
}

// TemplateVars returns the values template contexts are built from.
func (r Resolved) TemplateVars() templates.Vars {
	return templates.Vars{
		ProjectName: r.name,
		Backend:     r.backend.Identifier(),
		ArtifactDir: r.artifactDir,
		FloatType:   r.floatType,
		IntType:     r.intType,
	}
}
