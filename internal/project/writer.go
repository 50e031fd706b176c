package project

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
)

// WriteFile writes content to path, creating missing parent directories and
// replacing any existing file. It reports whether a file was replaced.
func WriteFile(path, content string) (overwritten bool, err error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return false, err
	}

	_, statErr := os.Stat(path)
	overwritten = statErr == nil
	if statErr != nil && !errors.Is(statErr, fs.ErrNotExist) {
		return false, statErr
	}

	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		return false, err
	}
	return overwritten, nil
}
