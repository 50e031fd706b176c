package templates

import "strings"

// Name identifies one of the fixed project templates.
type Name string

const (
	Lib       Name = "lib"
	Data      Name = "data"
	Inference Name = "inference"
	Model     Name = "model"
	Training  Name = "training"
	Main      Name = "main"
	Train     Name = "train"
)

// Template variable names.
const (
	VarProjectName = "project_name"
	VarCrateName   = "crate_name"
	VarBackend     = "backend"
	VarArtifactDir = "artifact_dir"
	VarFloatType   = "float_type"
	VarIntType     = "int_type"
)

// Target describes a generated file.
type Target struct {
	// Name is the template identifier.
	Name Name

	// Path is the output path relative to the project root.
	Path string

	// Description is shown in verbose output.
	Description string

	// Vars lists the variables the template references, in context order.
	Vars []string
}

// Source returns the template's path inside the embedded filesystem.
func (t Target) Source() string {
	return strings.TrimPrefix(t.Path, "src/") + templateExt
}

// targets is the registry of generated files, in generation order.
var targets = []Target{
	{
		Name:        Lib,
		Path:        "src/lib.rs",
		Description: "library root and backend type aliases",
		Vars:        []string{VarBackend, VarFloatType, VarIntType},
	},
	{
		Name:        Data,
		Path:        "src/data.rs",
		Description: "dataset batcher",
		Vars:        []string{VarIntType},
	},
	{
		Name:        Inference,
		Path:        "src/inference.rs",
		Description: "model loading and inference",
		Vars:        []string{VarCrateName, VarArtifactDir},
	},
	{
		Name:        Model,
		Path:        "src/model.rs",
		Description: "model definition",
		Vars:        []string{VarFloatType},
	},
	{
		Name:        Training,
		Path:        "src/training.rs",
		Description: "training loop",
		Vars:        []string{VarCrateName, VarArtifactDir},
	},
	{
		Name:        Main,
		Path:        "src/main.rs",
		Description: "inference entry point",
		Vars:        []string{VarProjectName, VarCrateName, VarBackend},
	},
	{
		Name:        Train,
		Path:        "src/bin/train.rs",
		Description: "training entry point",
		Vars:        []string{VarProjectName, VarCrateName, VarBackend, VarArtifactDir},
	},
}

// Targets returns every generated file in generation order.
func Targets() []Target {
	out := make([]Target, len(targets))
	copy(out, targets)
	return out
}

// Lookup returns the target for name.
func Lookup(name Name) (Target, bool) {
	for _, t := range targets {
		if t.Name == name {
			return t, true
		}
	}
	return Target{}, false
}

// Names returns all template names in generation order.
func Names() []Name {
	names := make([]Name, 0, len(targets))
	for _, t := range targets {
		names = append(names, t.Name)
	}
	return names
}
