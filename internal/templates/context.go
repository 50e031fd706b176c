package templates

import (
	"slices"
	"strings"
)

// Vars are the values a context is built from.
type Vars struct {
	// ProjectName is the final component of the target path.
	ProjectName string

	// Backend is the canonical backend identifier, e.g. "NdArray".
	Backend string

	// ArtifactDir is where training output is written.
	ArtifactDir string

	FloatType string
	IntType   string
}

// CrateName returns the project name as a Rust crate identifier.
func (v Vars) CrateName() string {
	return strings.ReplaceAll(v.ProjectName, "-", "_")
}

func (v Vars) lookup(key string) string {
	switch key {
	case VarProjectName:
		return v.ProjectName
	case VarCrateName:
		return v.CrateName()
	case VarBackend:
		return v.Backend
	case VarArtifactDir:
		return v.ArtifactDir
	case VarFloatType:
		return v.FloatType
	case VarIntType:
		return v.IntType
	}
	return ""
}

// Context maps template variable names to values for a single render.
type Context map[string]string

// Keys returns the context's variable names in sorted order.
func (c Context) Keys() []string {
	keys := make([]string, 0, len(c))
	for k := range c {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	return keys
}

// BuildContext returns a context holding exactly the variables template
// name references.
func BuildContext(name Name, vars Vars) (Context, error) {
	target, ok := Lookup(name)
	if !ok {
		return nil, &TemplateError{Kind: UnknownTemplate, Template: name}
	}

	ctx := make(Context, len(target.Vars))
	for _, key := range target.Vars {
		ctx[key] = vars.lookup(key)
	}
	return ctx, nil
}
