// Package testutil provides test helpers for CLI tests, most notably a fake
// cargo executable so tests never need a Rust toolchain.
package testutil

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"testing"
)

// FakeCargo configures the script written by InstallFakeCargo.
type FakeCargo struct {
	// Version is printed by "cargo --version". Empty means "1.86.0".
	Version string

	// FailStderr, when set, makes "cargo new" print this text to stderr and
	// exit with FailCode without creating anything.
	FailStderr string

	// FailCode is the exit status used with FailStderr. Zero means 101.
	FailCode int
}

// SkipOnWindows skips tests that rely on POSIX shell scripts.
func SkipOnWindows(t *testing.T) {
	t.Helper()
	if runtime.GOOS == "windows" {
		t.Skip("fake toolchain scripts require a POSIX shell")
	}
}

// InstallFakeCargo writes a fake cargo and which into a new directory and
// prepends it to PATH for the duration of the test. It returns the directory.
func InstallFakeCargo(t *testing.T, fake FakeCargo) string {
	t.Helper()
	SkipOnWindows(t)

	binDir := t.TempDir()
	WriteScript(t, binDir, "cargo", fake.script())
	WriteScript(t, binDir, "which", whichScript)

	t.Setenv("PATH", binDir+string(os.PathListSeparator)+os.Getenv("PATH"))
	return binDir
}

// InstallWhichOnly replaces PATH with a directory holding only a which
// script, so cargo cannot be found.
func InstallWhichOnly(t *testing.T) string {
	t.Helper()
	SkipOnWindows(t)

	binDir := t.TempDir()
	WriteScript(t, binDir, "which", whichScript)
	t.Setenv("PATH", binDir)
	return binDir
}

// WriteScript writes an executable shell script.
func WriteScript(t *testing.T, dir, name, body string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(body), 0o755); err != nil {
		t.Fatalf("writing %s: %v", path, err)
	}
	return path
}

// ReadFile returns file contents or fails the test.
func ReadFile(t *testing.T, parts ...string) string {
	t.Helper()
	path := filepath.Join(parts...)
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("reading %s: %v", path, err)
	}
	return string(data)
}

// whichScript mimics which(1): print the path and exit 0, or exit 1.
const whichScript = `#!/bin/sh
command -v "$1" || exit 1
`

// CargoManifest is the manifest the fake "cargo new --lib" writes, with
// NAME standing in for the package name.
const CargoManifest = `[package]
name = "NAME"
version = "0.1.0"
edition = "2024"

[dependencies]
`

func (f FakeCargo) script() string {
	version := f.Version
	if version == "" {
		version = "1.86.0"
	}
	code := f.FailCode
	if code == 0 {
		code = 101
	}

	var b strings.Builder
	b.WriteString("#!/bin/sh\n")
	fmt.Fprintf(&b, "if [ \"$1\" = \"--version\" ]; then echo 'cargo %s (0000000 2025-02-18)'; exit 0; fi\n", version)
	b.WriteString("if [ \"$1\" != \"new\" ]; then echo \"error: no such command: $1\" >&2; exit 101; fi\n")
	if f.FailStderr != "" {
		fmt.Fprintf(&b, "printf '%%s\\n' '%s' >&2\nexit %d\n", strings.ReplaceAll(f.FailStderr, "'", `'\''`), code)
		return b.String()
	}
	b.WriteString(`shift
if [ "$1" = "--lib" ]; then shift; fi
dir="$1"
name=$(basename "$dir")
if [ -e "$dir/Cargo.toml" ]; then
  echo "error: destination '$dir' already exists" >&2
  exit 101
fi
mkdir -p "$dir/src" || exit 101
cat > "$dir/Cargo.toml" <<EOF
`)
	b.WriteString(strings.ReplaceAll(CargoManifest, "NAME", "$name"))
	b.WriteString(`EOF
printf 'pub fn add(left: u64, right: u64) -> u64 {\n    left + right\n}\n' > "$dir/src/lib.rs"
echo "    Creating library '$name' package" >&2
exit 0
`)
	return b.String()
}
