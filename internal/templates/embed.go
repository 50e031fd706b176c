// Package templates holds the embedded Rust source templates generated into
// new projects and the renderer that executes them.
package templates

import (
	"embed"
	"fmt"
	"io/fs"
	"strings"
)

//go:embed files
var embedded embed.FS

// rootDir is the directory inside the embedded filesystem holding templates.
const rootDir = "files"

// templateExt is stripped from a template's source path to get its target.
const templateExt = ".tmpl"

// FS returns the embedded templates rooted at their source directory.
func FS() fs.FS {
	sub, err := fs.Sub(embedded, rootDir)
	if err != nil {
		// fs.Sub only fails for invalid paths, which rootDir is not.
		panic(err)
	}
	return sub
}

// ListFiles returns the source path of every embedded template, relative to
// the template root.
func ListFiles(fsys fs.FS) ([]string, error) {
	var files []string

	err := fs.WalkDir(fsys, ".", func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() || !strings.HasSuffix(path, templateExt) {
			return nil
		}
		files = append(files, path)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("listing templates: %w", err)
	}

	return files, nil
}
