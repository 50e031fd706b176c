package manifest

import (
	"fmt"
	"os"

	"github.com/tracel-ai/burn-cli/internal/backend"
)

// Defaults written into generated manifests.
const (
	// CrateName is the core library every generated project depends on.
	CrateName = "burn"

	// CrateVersion is the pinned version of CrateName.
	CrateVersion = "0.18.0"

	// FileName is the manifest file cargo creates.
	FileName = "Cargo.toml"
)

// baseFeatures are enabled for every backend, in this order.
var baseFeatures = []string{"std", "tui", "train", "fusion"}

// dependencyPosition is where the new dependencies table is inserted:
// directly after the first remaining section ([package]).
const dependencyPosition = 1

// Op names the patch step that failed.
type Op string

const (
	OpRead   Op = "read"
	OpParse  Op = "parse"
	OpEncode Op = "encode"
	OpWrite  Op = "write"
)

// PatchError reports a failed manifest patch.
type PatchError struct {
	Op   Op
	Path string
	Err  error
}

func (e *PatchError) Error() string {
	return fmt.Sprintf("%s %s: %v", e.Op, e.Path, e.Err)
}

func (e *PatchError) Unwrap() error {
	return e.Err
}

// Features returns the burn feature list for b.
func Features(b backend.Backend) []string {
	features := make([]string, 0, len(baseFeatures)+1)
	features = append(features, baseFeatures...)
	return append(features, b.Feature())
}

// BurnDependency returns the dependency specification written for b.
func BurnDependency(b backend.Backend) Dependency {
	return Dependency{
		Version:         CrateVersion,
		Features:        Features(b),
		DefaultFeatures: false,
	}
}

// Patcher rewrites the dependency table of a Cargo manifest.
type Patcher struct{}

// NewPatcher returns a Patcher.
func NewPatcher() *Patcher {
	return &Patcher{}
}

// Patch reads the manifest at path, replaces its dependencies with the burn
// dependency for b and writes it back in place. There is no backup or
// atomic rename.
func (p *Patcher) Patch(path string, b backend.Backend) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return &PatchError{Op: OpRead, Path: path, Err: err}
	}

	doc, err := Parse(data)
	if err != nil {
		return &PatchError{Op: OpParse, Path: path, Err: err}
	}

	if err := p.Apply(doc, b); err != nil {
		return &PatchError{Op: OpEncode, Path: path, Err: err}
	}

	out := doc.Bytes()
	if _, err := Parse(out); err != nil {
		return &PatchError{Op: OpParse, Path: path, Err: fmt.Errorf("patched manifest is invalid: %w", err)}
	}

	if err := os.WriteFile(path, out, 0o644); err != nil {
		return &PatchError{Op: OpWrite, Path: path, Err: err}
	}

	return nil
}

// Apply replaces the dependencies table of doc in memory.
func (p *Patcher) Apply(doc *Document, b backend.Backend) error {
	section, err := DependencySection(CrateName, BurnDependency(b))
	if err != nil {
		return err
	}

	doc.RemoveTable("dependencies")
	doc.InsertAt(dependencyPosition, section)
	return nil
}
