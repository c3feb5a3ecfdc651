// Package sdruntime wraps a Stable Diffusion text-to-image model as a single
// exclusively-owned resource.
//
// The package follows atomic design principles:
//
//   - Atoms: pure functions (ValidateParams, ValidatePrompt, RandomSeed,
//     ValidateImageData, EncodeToPNG)
//   - Molecules: the Model type composing the atoms with the native bindings
//
// # Public API
//
//   - LoadModel(path string) (*Model, error)
//   - (*Model) Generate(params GenerateParams) (*GenerateResult, error)
//   - (*Model) Close() error
//   - BackendInfo() string
//
// A Model is NOT safe for concurrent use. It is expensive to construct, holds
// large in-memory buffers, and must be loaded once at process start. Callers
// are expected to serialize access through a scheduler; see package scheduler.
//
// # Build Modes
//
// The package supports two build modes:
//
//   - Fallback mode (default): go build
//     Generates images with a deterministic procedural renderer. Useful for
//     development and tests; given the same seed, prompt, dimensions and step
//     count it produces bit-identical PNG output.
//
//   - Native mode: CGO_ENABLED=1 go build -tags sd
//     Requires stable-diffusion.cpp built as a shared library.
//
// # Error Handling
//
// Domain errors are sentinel values checked with errors.Is:
//
//	_, err := model.Generate(params)
//	if errors.Is(err, sdruntime.ErrGenerationFailed) {
//	    // surface to the caller, do not retry automatically
//	}
package sdruntime
