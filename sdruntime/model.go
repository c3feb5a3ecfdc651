package sdruntime

import (
	"fmt"
	"os"
)

// Model is an exclusively-owned handle to a loaded Stable Diffusion model.
//
// A Model is deliberately NOT safe for concurrent use: the underlying
// pipeline mutates large internal buffers during denoising. Exactly one
// Generate call may be in flight at a time; the scheduler package enforces
// this process-wide.
type Model struct {
	path   string
	closed bool
	native nativeModel
}

// LoadModel loads a Stable Diffusion model from the given file path.
// Loading is expensive (seconds to minutes) and should happen once at
// process start; a load failure is unrecoverable and should abort startup.
//
// The returned Model must be released with Close when no longer needed.
func LoadModel(path string) (*Model, error) {
	if path == "" {
		return nil, fmt.Errorf("%w: empty model path", ErrModelLoadFailed)
	}
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return nil, fmt.Errorf("%w: %s", ErrModelNotFound, path)
	} else if err != nil {
		return nil, fmt.Errorf("%w: unable to access %s: %v", ErrModelLoadFailed, path, err)
	}

	native, err := loadNativeModel(path)
	if err != nil {
		return nil, err
	}

	return &Model{path: path, native: native}, nil
}

// Generate runs the denoising pipeline and returns the encoded PNG image.
//
// params.Seed must be a concrete non-negative seed; callers that want a
// random seed resolve one via RandomSeed first so the value can be recorded
// with the result (see scheduler.Scheduler.Run).
func (m *Model) Generate(params GenerateParams) (*GenerateResult, error) {
	if m == nil || m.native == nil {
		return nil, fmt.Errorf("%w: model is nil", ErrGenerationFailed)
	}
	if m.closed {
		return nil, ErrModelClosed
	}
	params.Prompt = SanitizePrompt(params.Prompt)
	params.NegativePrompt = SanitizePrompt(params.NegativePrompt)
	if err := ValidateParams(params); err != nil {
		return nil, err
	}
	if params.Seed < 0 {
		return nil, fmt.Errorf("%w: seed must be resolved before generation", ErrInvalidParams)
	}

	result, err := m.native.generate(params)
	if err != nil {
		return nil, err
	}

	if err := ValidateImageData(result.ImageData); err != nil {
		return nil, fmt.Errorf("%w: output validation: %v", ErrGenerationFailed, err)
	}

	return result, nil
}

// Close releases the model and its buffers. Close is safe to call multiple
// times; Generate returns ErrModelClosed afterwards.
func (m *Model) Close() error {
	if m == nil || m.closed {
		return nil
	}
	m.closed = true
	if m.native != nil {
		m.native.free()
	}
	return nil
}

// Path returns the file path the model was loaded from.
func (m *Model) Path() string {
	if m == nil {
		return ""
	}
	return m.path
}

// IsClosed reports whether Close has been called.
func (m *Model) IsClosed() bool {
	return m != nil && m.closed
}

// nativeModel abstracts over the build-tag selected implementation
// (stable-diffusion.cpp bindings, or the deterministic fallback renderer).
type nativeModel interface {
	generate(params GenerateParams) (*GenerateResult, error)
	free()
}

// BackendInfo returns a human-readable description of the compute backend.
func BackendInfo() string {
	return backendInfoImpl()
}
