// Package backend is the catalog of compute backends a generated project can
// target. Each backend maps to the Burn type name used in generated source and
// to the Cargo feature that compiles it in.
package backend

import (
	"errors"
	"fmt"
	"strings"
)

// Backend identifies a compute backend by its CLI name.
type Backend string

const (
	// NdArray is the pure-Rust CPU array backend.
	NdArray Backend = "ndarray"

	// LibTorchCPU is the LibTorch backend running on the CPU.
	LibTorchCPU Backend = "tch-cpu"

	// CPU is the generic CubeCL CPU backend.
	CPU Backend = "cpu"

	// Candle is the Candle backend on the CPU.
	Candle Backend = "candle"

	// CandleCUDA is the Candle backend built against CUDA.
	CandleCUDA Backend = "candle-cuda"

	// CandleMetal is the Candle backend built against Metal.
	CandleMetal Backend = "candle-metal"

	// CUDA is the CubeCL CUDA backend.
	CUDA Backend = "cuda"

	// ROCm is the CubeCL ROCm/HIP backend.
	ROCm Backend = "rocm"

	// Vulkan is the wgpu backend restricted to Vulkan.
	Vulkan Backend = "vulkan"

	// WebGPU is the wgpu backend restricted to WebGPU.
	WebGPU Backend = "webgpu"

	// Metal is the wgpu backend restricted to Metal.
	Metal Backend = "metal"

	// Wgpu is the cross-platform wgpu backend.
	Wgpu Backend = "wgpu"
)

// Default is the backend used when none is selected.
const Default = NdArray

// ErrUnknownBackend is returned by Parse for names outside the catalog.
var ErrUnknownBackend = errors.New("unknown backend")

type entry struct {
	identifier string
	feature    string
	summary    string
}

// catalog holds both mappings for every backend. Several Candle variants share
// an identifier; the feature flag is always distinct.
var catalog = map[Backend]entry{
	NdArray:     {identifier: "NdArray", feature: "ndarray", summary: "CPU, pure Rust arrays"},
	LibTorchCPU: {identifier: "LibTorch", feature: "tch", summary: "CPU, LibTorch tensors"},
	CPU:         {identifier: "Cpu", feature: "cpu", summary: "CPU, CubeCL JIT"},
	Candle:      {identifier: "Candle", feature: "candle", summary: "CPU, Candle"},
	CandleCUDA:  {identifier: "Candle", feature: "candle-cuda", summary: "NVIDIA GPU, Candle"},
	CandleMetal: {identifier: "Candle", feature: "candle-metal", summary: "Apple GPU, Candle"},
	CUDA:        {identifier: "Cuda", feature: "cuda", summary: "NVIDIA GPU, CubeCL"},
	ROCm:        {identifier: "Rocm", feature: "rocm", summary: "AMD GPU, CubeCL"},
	Vulkan:      {identifier: "Vulkan", feature: "vulkan", summary: "GPU via Vulkan"},
	WebGPU:      {identifier: "WebGpu", feature: "webgpu", summary: "GPU via WebGPU"},
	Metal:       {identifier: "Metal", feature: "metal", summary: "Apple GPU via Metal"},
	Wgpu:        {identifier: "Wgpu", feature: "wgpu", summary: "GPU via wgpu, any graphics API"},
}

// order is the declaration order used for listings and help text.
var order = []Backend{
	NdArray, LibTorchCPU, CPU,
	Candle, CandleCUDA, CandleMetal,
	CUDA, ROCm, Vulkan, WebGPU, Metal, Wgpu,
}

// All returns every backend in declaration order.
func All() []Backend {
	out := make([]Backend, len(order))
	copy(out, order)
	return out
}

// Names returns the CLI names of all backends in declaration order.
func Names() []string {
	names := make([]string, 0, len(order))
	for _, b := range order {
		names = append(names, string(b))
	}
	return names
}

// Parse maps a CLI name to a Backend. Matching is case-insensitive.
func Parse(name string) (Backend, error) {
	b := Backend(strings.ToLower(strings.TrimSpace(name)))
	if _, ok := catalog[b]; !ok {
		return "", fmt.Errorf("%w %q; valid backends: %s", ErrUnknownBackend, name, strings.Join(Names(), ", "))
	}
	return b, nil
}

// IsValid reports whether b is a member of the catalog.
func (b Backend) IsValid() bool {
	_, ok := catalog[b]
	return ok
}

// Identifier returns the Burn type name used for b in generated source.
func (b Backend) Identifier() string {
	return b.lookup().identifier
}

// Feature returns the Cargo feature of the burn crate that enables b.
func (b Backend) Feature() string {
	return b.lookup().feature
}

// Summary returns a short human description of b.
func (b Backend) Summary() string {
	return b.lookup().summary
}

// String implements fmt.Stringer.
func (b Backend) String() string {
	return string(b)
}

// Set implements pflag.Value so a Backend can be bound directly to a flag.
func (b *Backend) Set(s string) error {
	parsed, err := Parse(s)
	if err != nil {
		return err
	}
	*b = parsed
	return nil
}

// Type implements pflag.Value.
func (b *Backend) Type() string {
	return "backend"
}

// lookup panics on values that bypassed Parse; every constant is in catalog.
func (b Backend) lookup() entry {
	e, ok := catalog[b]
	if !ok {
		panic(fmt.Sprintf("backend: %q is not in the catalog", string(b)))
	}
	return e
}
