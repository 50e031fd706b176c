package project

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tracel-ai/burn-cli/internal/backend"
	"github.com/tracel-ai/burn-cli/internal/cargo"
	"github.com/tracel-ai/burn-cli/internal/manifest"
	"github.com/tracel-ai/burn-cli/internal/templates"
	"github.com/tracel-ai/burn-cli/internal/testutil"
)

type fakeProbe struct {
	found bool
	err   error
}

func (p fakeProbe) Available(context.Context) (bool, error) {
	return p.found, p.err
}

// fakeInit writes the manifest cargo new would, or fails with stderr.
type fakeInit struct {
	stderr   string
	calls    int
	deadline bool
}

func (f *fakeInit) InitSkeleton(ctx context.Context, path string) error {
	f.calls++
	_, f.deadline = ctx.Deadline()
	if f.stderr != "" {
		return &cargo.InitError{Path: path, ExitCode: 101, Stderr: f.stderr}
	}
	if err := os.MkdirAll(filepath.Join(path, "src"), 0o755); err != nil {
		return err
	}
	content := strings.ReplaceAll(testutil.CargoManifest, "NAME", filepath.Base(path))
	return os.WriteFile(filepath.Join(path, "Cargo.toml"), []byte(content), 0o644)
}

type recordingPatcher struct {
	calls int
	err   error
}

func (p *recordingPatcher) Patch(path string, b backend.Backend) error {
	p.calls++
	if p.err != nil {
		return p.err
	}
	return manifest.NewPatcher().Patch(path, b)
}

// failingRenderer fails on one template and renders the rest.
type failingRenderer struct {
	fail templates.Name
}

func (r failingRenderer) Render(name templates.Name, ctx templates.Context) (string, error) {
	if name == r.fail {
		return "", &templates.TemplateError{Kind: templates.MissingVariable, Template: name, Variable: "backend"}
	}
	return templates.NewRenderer().Render(name, ctx)
}

func resolve(t *testing.T, opts Options) Resolved {
	t.Helper()
	r, err := opts.Resolve()
	require.NoError(t, err)
	return r
}

func newTestCreator(init *fakeInit, patcher *recordingPatcher) *Creator {
	return NewCreator(fakeProbe{found: true}, init, patcher, templates.NewRenderer())
}

func TestCreate_Success(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "my_app")
	p := resolve(t, Options{TargetPath: dir})

	init := &fakeInit{}
	res, err := newTestCreator(init, &recordingPatcher{}).Create(context.Background(), p)
	require.NoError(t, err)

	assert.Equal(t, StateDone, res.State)
	require.Len(t, res.Files, 7)
	for i, tgt := range templates.Targets() {
		assert.Equal(t, tgt.Path, res.Files[i].Path)
		assert.False(t, res.Files[i].Overwritten)

		content := testutil.ReadFile(t, dir, filepath.FromSlash(tgt.Path))
		assert.NotEmpty(t, content, tgt.Path)
	}

	cargoToml := testutil.ReadFile(t, dir, "Cargo.toml")
	assert.Contains(t, cargoToml, "[dependencies.burn]\n")
	assert.Contains(t, cargoToml, `features = ["std", "tui", "train", "fusion", "ndarray"]`)
	assert.Contains(t, cargoToml, "default-features = false")

	assert.Contains(t, testutil.ReadFile(t, dir, "src", "lib.rs"), "NdArray")
	assert.Contains(t, testutil.ReadFile(t, dir, "src", "main.rs"), `"my_app"`)
	assert.Contains(t, testutil.ReadFile(t, dir, "src", "bin", "train.rs"), filepath.Join(os.TempDir(), "my_app"))
	assert.False(t, init.deadline, "no timeout configured")
}

func TestCreate_ToolMissing(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "app")
	init := &fakeInit{}
	c := NewCreator(fakeProbe{found: false}, init, &recordingPatcher{}, templates.NewRenderer())

	res, err := c.Create(context.Background(), resolve(t, Options{TargetPath: dir}))
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrToolMissing))

	var stepErr *StepError
	require.True(t, errors.As(err, &stepErr))
	assert.Equal(t, StateStart, stepErr.State)
	assert.Equal(t, StateStart, res.State)
	assert.Zero(t, init.calls)
	assert.NoDirExists(t, dir)
}

func TestCreate_ProbeFailure(t *testing.T) {
	probeErr := &cargo.ToolCheckError{Command: "which cargo", Err: errors.New("exec: not found")}
	c := NewCreator(fakeProbe{err: probeErr}, &fakeInit{}, &recordingPatcher{}, templates.NewRenderer())

	_, err := c.Create(context.Background(), resolve(t, Options{TargetPath: filepath.Join(t.TempDir(), "app")}))

	var tcErr *cargo.ToolCheckError
	require.True(t, errors.As(err, &tcErr))
	assert.False(t, errors.Is(err, ErrToolMissing))
}

func TestCreate_InitFailureStopsBeforeTemplates(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "app")
	require.NoError(t, os.MkdirAll(dir, 0o755))

	patcher := &recordingPatcher{}
	res, err := newTestCreator(&fakeInit{stderr: "path already exists"}, patcher).
		Create(context.Background(), resolve(t, Options{TargetPath: dir}))
	require.Error(t, err)

	var initErr *cargo.InitError
	require.True(t, errors.As(err, &initErr))
	assert.Equal(t, "path already exists", initErr.Stderr)
	assert.Contains(t, err.Error(), "path already exists")

	assert.Equal(t, StateToolChecked, res.State)
	assert.Empty(t, res.Files)
	assert.Zero(t, patcher.calls)
	assert.NoDirExists(t, filepath.Join(dir, "src"))
}

func TestCreate_PatchFailure(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "app")
	patchErr := &manifest.PatchError{Op: manifest.OpParse, Path: "Cargo.toml", Err: errors.New("bad")}

	res, err := newTestCreator(&fakeInit{}, &recordingPatcher{err: patchErr}).
		Create(context.Background(), resolve(t, Options{TargetPath: dir}))

	var perr *manifest.PatchError
	require.True(t, errors.As(err, &perr))
	assert.Equal(t, StateSkeletonCreated, res.State)
	assert.NoFileExists(t, filepath.Join(dir, "src", "data.rs"))
}

func TestCreate_RenderFailureLeavesPartialFiles(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "app")
	c := NewCreator(fakeProbe{found: true}, &fakeInit{}, &recordingPatcher{}, failingRenderer{fail: templates.Model})

	res, err := c.Create(context.Background(), resolve(t, Options{TargetPath: dir}))

	var terr *templates.TemplateError
	require.True(t, errors.As(err, &terr))
	var stepErr *StepError
	require.True(t, errors.As(err, &stepErr))
	assert.Equal(t, StateFilesGenerated, stepErr.State)
	assert.Contains(t, err.Error(), "generating src/model.rs")

	// lib, data and inference come before model and stay on disk.
	require.Len(t, res.Files, 3)
	assert.FileExists(t, filepath.Join(dir, "src", "inference.rs"))
	assert.NoFileExists(t, filepath.Join(dir, "src", "model.rs"))
	assert.NoFileExists(t, filepath.Join(dir, "src", "main.rs"))
}

func TestCreate_CandleVariants(t *testing.T) {
	for _, b := range []backend.Backend{backend.Candle, backend.CandleCUDA} {
		t.Run(b.String(), func(t *testing.T) {
			dir := filepath.Join(t.TempDir(), "app")
			_, err := newTestCreator(&fakeInit{}, &recordingPatcher{}).
				Create(context.Background(), resolve(t, Options{TargetPath: dir, Backend: b}))
			require.NoError(t, err)

			assert.Contains(t, testutil.ReadFile(t, dir, "src", "lib.rs"), "Candle<FloatElem, IntElem>")
			assert.Contains(t, testutil.ReadFile(t, dir, "Cargo.toml"), `"fusion", "`+b.Feature()+`"]`)
		})
	}
}

func TestCreate_RerunOverwritesSources(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "app")
	p := resolve(t, Options{TargetPath: dir})

	_, err := newTestCreator(&fakeInit{}, &recordingPatcher{}).Create(context.Background(), p)
	require.NoError(t, err)

	// A second run with an initializer that tolerates the existing skeleton
	// rewrites every generated file.
	res, err := newTestCreator(&fakeInit{}, &recordingPatcher{}).Create(context.Background(), p)
	require.NoError(t, err)
	for _, f := range res.Files {
		assert.True(t, f.Overwritten, f.Path)
	}
}

func TestCreate_TimeoutAppliedToInit(t *testing.T) {
	init := &fakeInit{}
	p := resolve(t, Options{TargetPath: filepath.Join(t.TempDir(), "app"), Timeout: time.Minute})

	_, err := newTestCreator(init, &recordingPatcher{}).Create(context.Background(), p)
	require.NoError(t, err)
	assert.True(t, init.deadline)
}

func TestCreate_StepRunnerWrapsEveryStep(t *testing.T) {
	var got []Step
	run := func(_ context.Context, s Step, step func() error) error {
		got = append(got, s)
		return step()
	}
	c := NewCreator(fakeProbe{found: true}, &fakeInit{}, &recordingPatcher{}, templates.NewRenderer(), WithStepRunner(run))

	_, err := c.Create(context.Background(), resolve(t, Options{TargetPath: filepath.Join(t.TempDir(), "app")}))
	require.NoError(t, err)
	assert.Equal(t, []Step{
		{N: 1, Total: 4, Title: "Checking for cargo"},
		{N: 2, Total: 4, Title: "Creating skeleton with cargo new"},
		{N: 3, Total: 4, Title: "Patching Cargo.toml"},
		{N: 4, Total: 4, Title: "Generating sources"},
	}, got)
}

func TestCreate_StepRunnerStopsAtFailure(t *testing.T) {
	var titles []string
	run := func(_ context.Context, s Step, step func() error) error {
		titles = append(titles, s.Title)
		return step()
	}
	c := NewCreator(fakeProbe{found: true}, &fakeInit{stderr: "error: boom"}, &recordingPatcher{}, templates.NewRenderer(), WithStepRunner(run))

	_, err := c.Create(context.Background(), resolve(t, Options{TargetPath: filepath.Join(t.TempDir(), "app")}))
	require.Error(t, err)
	assert.Equal(t, []string{"Checking for cargo", "Creating skeleton with cargo new"}, titles)
}

func TestCreate_ToolchainCheck(t *testing.T) {
	t.Run("runs after cargo is found, within the timeout", func(t *testing.T) {
		var calls int
		var deadline bool
		check := func(ctx context.Context) {
			calls++
			_, deadline = ctx.Deadline()
		}
		init := &fakeInit{}
		c := NewCreator(fakeProbe{found: true}, init, &recordingPatcher{}, templates.NewRenderer(), WithToolchainCheck(check))

		p := resolve(t, Options{TargetPath: filepath.Join(t.TempDir(), "app"), Timeout: time.Minute})
		_, err := c.Create(context.Background(), p)
		require.NoError(t, err)
		assert.Equal(t, 1, calls)
		assert.True(t, deadline)
	})

	t.Run("skipped when cargo is missing", func(t *testing.T) {
		var calls int
		c := NewCreator(fakeProbe{found: false}, &fakeInit{}, &recordingPatcher{}, templates.NewRenderer(),
			WithToolchainCheck(func(context.Context) { calls++ }))

		_, err := c.Create(context.Background(), resolve(t, Options{TargetPath: filepath.Join(t.TempDir(), "app")}))
		require.ErrorIs(t, err, ErrToolMissing)
		assert.Zero(t, calls)
	})
}

func TestCreate_GenerateFailureNamesFile(t *testing.T) {
	c := NewCreator(fakeProbe{found: true}, &fakeInit{}, &recordingPatcher{}, failingRenderer{fail: templates.Model})

	_, err := c.Create(context.Background(), resolve(t, Options{TargetPath: filepath.Join(t.TempDir(), "app")}))
	var stepErr *StepError
	require.ErrorAs(t, err, &stepErr)
	assert.Equal(t, "generating src/model.rs", stepErr.Step)
}

func TestCreate_RealCargoFake(t *testing.T) {
	testutil.InstallFakeCargo(t, testutil.FakeCargo{})
	dir := filepath.Join(t.TempDir(), "real-app")

	c := NewCreator(cargo.NewProbe(), cargo.NewInitializer(), manifest.NewPatcher(), templates.NewRenderer())
	res, err := c.Create(context.Background(), resolve(t, Options{TargetPath: dir, Backend: backend.Vulkan}))
	require.NoError(t, err)

	assert.Equal(t, StateDone, res.State)
	assert.Contains(t, testutil.ReadFile(t, dir, "Cargo.toml"), `name = "real-app"`)
	assert.Contains(t, testutil.ReadFile(t, dir, "src", "main.rs"), "use real_app::")

	// cargo new writes src/lib.rs; replacing it is not an overwrite.
	for _, f := range res.Files {
		assert.False(t, f.Overwritten, f.Path)
	}
}

func TestState_String(t *testing.T) {
	assert.Equal(t, "manifest patched", StateManifestPatched.String())
	assert.Equal(t, "State(42)", State(42).String())
}
