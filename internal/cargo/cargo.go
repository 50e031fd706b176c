// Package cargo wraps the Rust build tool: probing for it, creating library
// skeletons with "cargo new", and reading its version.
package cargo

// DefaultBinary is the name of the cargo executable looked up on PATH.
const DefaultBinary = "cargo"

// InstallURL points users at the Rust toolchain install instructions.
const InstallURL = "https://www.rust-lang.org/tools/install"

func binaryOrDefault(name string) string {
	if name == "" {
		return DefaultBinary
	}
	return name
}
