package errors

import "errors"

// Sentinel errors for known conditions.
var (
	// ErrValidation indicates invalid user input (flags, paths, backend names).
	ErrValidation = errors.New("validation error")

	// ErrToolchain indicates cargo is missing, could not be probed, or failed.
	ErrToolchain = errors.New("toolchain error")

	// ErrManifest indicates Cargo.toml could not be read, parsed, or written.
	ErrManifest = errors.New("manifest error")

	// ErrGenerate indicates a template could not be rendered or written.
	ErrGenerate = errors.New("generate error")
)
