package templates

import (
	"bytes"
	"errors"
	"fmt"
	"io/fs"
	"regexp"
	"strings"
	"text/template"
)

// ErrorKind classifies a TemplateError.
type ErrorKind int

const (
	UnknownTemplate ErrorKind = iota + 1
	MissingVariable
)

func (k ErrorKind) String() string {
	switch k {
	case UnknownTemplate:
		return "unknown template"
	case MissingVariable:
		return "missing variable"
	default:
		return fmt.Sprintf("ErrorKind(%d)", int(k))
	}
}

// TemplateError reports a template that could not be rendered.
type TemplateError struct {
	Kind     ErrorKind
	Template Name

	// Variable is set for MissingVariable.
	Variable string

	Err error
}

func (e *TemplateError) Error() string {
	switch {
	case e.Kind == MissingVariable && e.Variable != "":
		return fmt.Sprintf("template %s: missing variable %q", e.Template, e.Variable)
	case e.Err != nil:
		return fmt.Sprintf("template %s: %s: %v", e.Template, e.Kind, e.Err)
	default:
		return fmt.Sprintf("template %s: %s", e.Template, e.Kind)
	}
}

func (e *TemplateError) Unwrap() error {
	return e.Err
}

// missingKey matches the text/template error for an absent map key.
var missingKey = regexp.MustCompile(`map has no entry for key "([^"]*)"`)

// Renderer executes templates from a filesystem.
type Renderer struct {
	fsys fs.FS
}

// NewRenderer returns a Renderer over the embedded templates.
func NewRenderer() *Renderer {
	return &Renderer{fsys: FS()}
}

// NewRendererFS returns a Renderer over fsys, laid out like FS.
func NewRendererFS(fsys fs.FS) *Renderer {
	return &Renderer{fsys: fsys}
}

// Render executes template name with ctx. A variable referenced by the
// template but absent from ctx is an error, never an empty substitution.
func (r *Renderer) Render(name Name, ctx Context) (string, error) {
	target, ok := Lookup(name)
	if !ok {
		return "", &TemplateError{Kind: UnknownTemplate, Template: name}
	}

	content, err := fs.ReadFile(r.fsys, target.Source())
	if err != nil {
		return "", &TemplateError{Kind: UnknownTemplate, Template: name, Err: err}
	}

	tmpl, err := template.New(string(name)).
		Option("missingkey=error").
		Funcs(funcs).
		Parse(string(content))
	if err != nil {
		return "", fmt.Errorf("parsing template %s: %w", name, err)
	}

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, map[string]string(ctx)); err != nil {
		var execErr template.ExecError
		if errors.As(err, &execErr) {
			if m := missingKey.FindStringSubmatch(err.Error()); m != nil {
				return "", &TemplateError{Kind: MissingVariable, Template: name, Variable: m[1], Err: err}
			}
		}
		return "", fmt.Errorf("executing template %s: %w", name, err)
	}

	return buf.String(), nil
}

var funcs = template.FuncMap{
	"rust_str": RustString,
}

// RustString quotes s as a Rust string literal.
func RustString(s string) string {
	var b strings.Builder
	b.WriteByte('"')
	for _, r := range s {
		switch r {
		case '\\':
			b.WriteString(`\\`)
		case '"':
			b.WriteString(`\"`)
		case '\n':
			b.WriteString(`\n`)
		case '\r':
			b.WriteString(`\r`)
		case '\t':
			b.WriteString(`\t`)
		default:
			b.WriteRune(r)
		}
	}
	b.WriteByte('"')
	return b.String()
}
