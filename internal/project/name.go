package project

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"unicode"
	"unicode/utf8"
)

// ErrInvalidProjectPath is returned when no project name can be derived
// from a target path.
var ErrInvalidProjectPath = errors.New("invalid project path")

// ProjectName returns the final component of target. It fails for paths
// without a final component (empty, filesystem root, "." or "..") and for
// names that are not displayable text.
func ProjectName(target string) (string, error) {
	if target == "" {
		return "", fmt.Errorf("%w: path is empty", ErrInvalidProjectPath)
	}

	cleaned := filepath.Clean(target)
	if cleaned == filepath.VolumeName(cleaned)+string(filepath.Separator) {
		return "", fmt.Errorf("%w: %s has no final component", ErrInvalidProjectPath, target)
	}

	name := filepath.Base(cleaned)
	switch name {
	case ".", "..", string(filepath.Separator):
		return "", fmt.Errorf("%w: %s has no final component", ErrInvalidProjectPath, target)
	}

	if !utf8.ValidString(name) {
		return "", fmt.Errorf("%w: name %q is not valid UTF-8", ErrInvalidProjectPath, name)
	}
	for _, r := range name {
		if unicode.IsControl(r) {
			return "", fmt.Errorf("%w: name %q contains control character %U", ErrInvalidProjectPath, name, r)
		}
	}

	return name, nil
}

// DefaultArtifactDir returns the artifact directory used when none is given:
// the platform temp directory joined with the project name.
func DefaultArtifactDir(projectName string) string {
	return filepath.Join(os.TempDir(), projectName)
}
