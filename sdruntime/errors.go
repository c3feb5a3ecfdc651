package sdruntime

import "errors"

// Sentinel errors for model operations.
// These are domain-specific errors that provide clear failure modes.
var (
	// Model lifecycle errors
	ErrModelNotFound   = errors.New("sdruntime: model file not found")
	ErrModelLoadFailed = errors.New("sdruntime: failed to load model")
	ErrModelClosed     = errors.New("sdruntime: model has been closed")

	// Generation errors
	ErrGenerationFailed = errors.New("sdruntime: image generation failed")

	// Input validation errors
	ErrInvalidPrompt = errors.New("sdruntime: invalid prompt")
	ErrInvalidParams = errors.New("sdruntime: invalid generation parameters")
)
