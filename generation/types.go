package generation

import (
	"time"
)

// GenerationRequest is the raw request consumed from the UI collaborator.
// It is created per user action and never mutated after validation.
type GenerationRequest struct {
	Prompt  string // Required: text description of the desired image
	Style   string // Optional: style preset identifier ("" means none)
	Width   int    // Image width in pixels (0 means default)
	Height  int    // Image height in pixels (0 means default)
	Steps   int    // Denoising steps (0 means default)
	Seed    *int64 // Optional: explicit seed; nil draws a fresh one
	Enhance bool   // Append baseline quality keywords to the prompt
}

// ValidatedRequest is the normalized form produced by the Validator.
// Dimensions and steps are guaranteed in range, the style identifier is
// guaranteed known (or "none"), and the seed is -1 when left unset.
type ValidatedRequest struct {
	Prompt  string
	Style   string
	Width   int
	Height  int
	Steps   int
	Seed    int64
	Enhance bool

	// StyleFallback is set when an unknown style identifier was rewritten
	// to "none"; the original identifier is kept for the status message.
	StyleFallback  bool
	RequestedStyle string
}

// EffectivePrompt is the derived (positive, negative) prompt pair actually
// sent to the model. It is never persisted independently of its Result.
type EffectivePrompt struct {
	Positive string `json:"positive"`
	Negative string `json:"negative"`
}

// Result is one successful generation. Created once per inference,
// immutable thereafter.
type Result struct {
	// Image contains the encoded PNG bytes
	Image []byte

	// Prompt is the effective prompt pair the model was conditioned on
	Prompt EffectivePrompt

	// Seed is the concrete seed used; always resolved, never "unset"
	Seed int64

	Width  int
	Height int
	Steps  int

	// CreatedAt is the generation timestamp (UTC)
	CreatedAt time.Time
	// Duration is how long the model call took
	Duration time.Duration

	// StoragePath and ThumbnailPath are filled by the output store;
	// empty when persistence failed (the image is still returned)
	StoragePath   string
	ThumbnailPath string

	// Status is a human-readable summary: persistence faults and style
	// fallbacks are reported here rather than as errors
	Status string

	// CorrelationID ties log entries, metrics and the sidecar record
	// of one request together
	CorrelationID string
}
