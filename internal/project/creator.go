// Package project orchestrates creating a new project: checking for cargo,
// initializing the skeleton, patching its manifest and generating sources.
package project

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/charmbracelet/log"

	"github.com/tracel-ai/burn-cli/internal/backend"
	"github.com/tracel-ai/burn-cli/internal/output"
	"github.com/tracel-ai/burn-cli/internal/templates"
)

// ErrToolMissing is returned when the probe ran but cargo is not installed.
var ErrToolMissing = errors.New("could not find cargo installed on the system")

// ToolProbe reports whether the build tool is installed.
type ToolProbe interface {
	Available(ctx context.Context) (bool, error)
}

// SkeletonInitializer creates a library skeleton at a path.
type SkeletonInitializer interface {
	InitSkeleton(ctx context.Context, path string) error
}

// ManifestPatcher rewrites a manifest's dependencies for a backend.
type ManifestPatcher interface {
	Patch(path string, b backend.Backend) error
}

// Renderer renders a named template.
type Renderer interface {
	Render(name templates.Name, ctx templates.Context) (string, error)
}

// Step identifies one of the creation steps handed to a StepRunner.
type Step struct {
	N     int // 1-based
	Total int
	Title string
}

// Creation steps, in order.
var steps = []string{
	"Checking for cargo",
	"Creating skeleton with cargo new",
	"Patching " + manifestFile,
	"Generating sources",
}

const manifestFile = "Cargo.toml"

// StepRunner runs one creation step, e.g. behind a spinner.
type StepRunner func(ctx context.Context, s Step, step func() error) error

// ToolchainCheck inspects the installed toolchain once it is known to be
// present. It cannot fail creation.
type ToolchainCheck func(ctx context.Context)

// State is a position in the creation sequence.
type State int

const (
	StateStart State = iota
	StateToolChecked
	StateSkeletonCreated
	StateManifestPatched
	StateFilesGenerated
	StateDone
)

func (s State) String() string {
	switch s {
	case StateStart:
		return "start"
	case StateToolChecked:
		return "tool checked"
	case StateSkeletonCreated:
		return "skeleton created"
	case StateManifestPatched:
		return "manifest patched"
	case StateFilesGenerated:
		return "files generated"
	case StateDone:
		return "done"
	default:
		return fmt.Sprintf("State(%d)", int(s))
	}
}

// StepError reports the step that aborted creation. State is the last state
// reached before the failure.
type StepError struct {
	State State
	Step  string
	Err   error
}

func (e *StepError) Error() string {
	return fmt.Sprintf("%s: %v", e.Step, e.Err)
}

func (e *StepError) Unwrap() error {
	return e.Err
}

// GeneratedFile is a file written during creation.
type GeneratedFile struct {
	// Path is relative to the project root, using forward slashes.
	Path string

	// Overwritten is true when the file existed before creation started.
	// Replacing the src/lib.rs that cargo new writes does not count.
	Overwritten bool
}

// Result describes how far creation got. It is returned alongside a
// StepError as well as on success.
type Result struct {
	Project Resolved
	State   State

	// Files lists the generated sources written so far, in order.
	Files []GeneratedFile
}

// Creator runs the creation sequence. Files written before a failure are
// left on disk.
type Creator struct {
	probe    ToolProbe
	init     SkeletonInitializer
	patcher  ManifestPatcher
	renderer Renderer
	run      StepRunner
	check    ToolchainCheck
}

// Option configures a Creator.
type Option func(*Creator)

// WithStepRunner wraps every creation step.
func WithStepRunner(run StepRunner) Option {
	return func(c *Creator) {
		c.run = run
	}
}

// WithToolchainCheck runs check after cargo is found, bounded by the
// project timeout.
func WithToolchainCheck(check ToolchainCheck) Option {
	return func(c *Creator) {
		c.check = check
	}
}

// NewCreator returns a Creator using the given collaborators.
func NewCreator(probe ToolProbe, init SkeletonInitializer, patcher ManifestPatcher, renderer Renderer, opts ...Option) *Creator {
	c := &Creator{
		probe:    probe,
		init:     init,
		patcher:  patcher,
		renderer: renderer,
		run: func(_ context.Context, _ Step, step func() error) error {
			return step()
		},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Create builds the project described by p.
//
// Sequence:
//  1. probe for cargo, then run the toolchain check if set
//  2. cargo new --lib <path>
//  3. patch Cargo.toml
//  4. render and write each template in registry order
//
// The first failure stops the sequence and is returned as a *StepError.
func (c *Creator) Create(ctx context.Context, p Resolved) (*Result, error) {
	res := &Result{Project: p, State: StateStart}
	plog := output.ProjectLogger(p.Name())

	fail := func(step string, err error) (*Result, error) {
		plog.Debug("aborted", "state", res.State, "step", step, "err", err)
		return res, &StepError{State: res.State, Step: step, Err: err}
	}

	step := func(n int) Step {
		return Step{N: n + 1, Total: len(steps), Title: steps[n]}
	}

	if err := c.run(ctx, step(0), func() error { return c.checkTool(ctx, p) }); err != nil {
		return fail("checking for cargo", err)
	}
	res.State = StateToolChecked
	plog.Debug("cargo found")

	existing := existingTargets(p)

	if err := c.run(ctx, step(1), func() error { return c.initSkeleton(ctx, p) }); err != nil {
		return fail("creating skeleton", err)
	}
	res.State = StateSkeletonCreated
	plog.Debug("skeleton created", "path", p.Path())

	err := c.run(ctx, step(2), func() error { return c.patcher.Patch(p.ManifestPath(), p.Backend()) })
	if err != nil {
		return fail("patching manifest", err)
	}
	res.State = StateManifestPatched
	plog.Debug("manifest patched", "backend", p.Backend(), "feature", p.Backend().Feature())

	vars := p.TemplateVars()
	var failed string
	err = c.run(ctx, step(3), func() error {
		for _, target := range templates.Targets() {
			file, err := c.generate(p, target, vars, plog)
			if err != nil {
				failed = target.Path
				return err
			}
			file.Overwritten = existing[target.Path]
			res.Files = append(res.Files, file)
			res.State = StateFilesGenerated
		}
		return nil
	})
	if err != nil {
		if failed == "" {
			return fail("generating sources", err)
		}
		return fail("generating "+failed, err)
	}

	res.State = StateDone
	return res, nil
}

func (c *Creator) checkTool(ctx context.Context, p Resolved) error {
	ctx, cancel := withTimeout(ctx, p.Timeout())
	defer cancel()

	found, err := c.probe.Available(ctx)
	if err != nil {
		return err
	}
	if !found {
		return ErrToolMissing
	}
	if c.check != nil {
		c.check(ctx)
	}
	return nil
}

func (c *Creator) initSkeleton(ctx context.Context, p Resolved) error {
	ctx, cancel := withTimeout(ctx, p.Timeout())
	defer cancel()

	return c.init.InitSkeleton(ctx, p.Path())
}

func (c *Creator) generate(p Resolved, target templates.Target, vars templates.Vars, plog *log.Logger) (GeneratedFile, error) {
	tctx, err := templates.BuildContext(target.Name, vars)
	if err != nil {
		return GeneratedFile{}, err
	}
	plog.Debug("rendering", "template", target.Name, "vars", tctx.Keys())

	content, err := c.renderer.Render(target.Name, tctx)
	if err != nil {
		return GeneratedFile{}, err
	}

	replaced, err := WriteFile(filepath.Join(p.Path(), filepath.FromSlash(target.Path)), content)
	if err != nil {
		return GeneratedFile{}, err
	}
	plog.Debug("wrote file", "path", target.Path, "replaced", replaced)

	return GeneratedFile{Path: target.Path}, nil
}

// existingTargets reports which generated paths are already on disk.
func existingTargets(p Resolved) map[string]bool {
	existing := make(map[string]bool)
	for _, target := range templates.Targets() {
		if _, err := os.Stat(filepath.Join(p.Path(), filepath.FromSlash(target.Path))); err == nil {
			existing[target.Path] = true
		}
	}
	return existing
}

func withTimeout(ctx context.Context, d time.Duration) (context.Context, context.CancelFunc) {
	if d <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, d)
}
