package sdruntime

import "fmt"

// GenerateParams holds parameters for a single image generation.
type GenerateParams struct {
	Prompt         string  // Required: text description of the image to generate
	NegativePrompt string  // Optional: what to avoid in the image
	Width          int     // Image width in pixels (256-1024, must be divisible by 8)
	Height         int     // Image height in pixels (256-1024, must be divisible by 8)
	Steps          int     // Number of denoising steps (10-50)
	CFGScale       float64 // Classifier-free guidance scale
	Seed           int64   // Random seed for reproducibility (-1 for random)
}

// GenerateResult holds the output of a single image generation.
type GenerateResult struct {
	// ImageData contains the encoded PNG bytes
	ImageData []byte
	// Width of the generated image
	Width int
	// Height of the generated image
	Height int
	// Seed actually used (resolved if -1 was requested)
	Seed int64
}

// Parameter validation constants.
// The size bounds and multiple reflect the model's latent tiling constraint.
const (
	MinImageSize      = 256
	MaxImageSize      = 1024
	ImageSizeMultiple = 8

	MinSteps = 10
	MaxSteps = 50

	DefaultCFGScale = 7.5

	MaxPromptLength = 1000
)

// DefaultParams returns sensible default parameters for image generation.
// The caller should at minimum set the Prompt field.
func DefaultParams() GenerateParams {
	return GenerateParams{
		Width:    512,
		Height:   512,
		Steps:    20,
		CFGScale: DefaultCFGScale,
		Seed:     -1,
	}
}

// ValidateParams validates generation parameters and returns an error if invalid.
// This is a pure function with no side effects. The model boundary is strict:
// out-of-range values are rejected here, clamping happens upstream in the
// request validator.
func ValidateParams(p GenerateParams) error {
	if err := ValidatePrompt(p.Prompt); err != nil {
		return err
	}

	if p.Width < MinImageSize || p.Width > MaxImageSize {
		return fmt.Errorf("%w: width %d must be between %d and %d",
			ErrInvalidParams, p.Width, MinImageSize, MaxImageSize)
	}
	if p.Width%ImageSizeMultiple != 0 {
		return fmt.Errorf("%w: width %d must be divisible by %d",
			ErrInvalidParams, p.Width, ImageSizeMultiple)
	}

	if p.Height < MinImageSize || p.Height > MaxImageSize {
		return fmt.Errorf("%w: height %d must be between %d and %d",
			ErrInvalidParams, p.Height, MinImageSize, MaxImageSize)
	}
	if p.Height%ImageSizeMultiple != 0 {
		return fmt.Errorf("%w: height %d must be divisible by %d",
			ErrInvalidParams, p.Height, ImageSizeMultiple)
	}

	if p.Steps < MinSteps || p.Steps > MaxSteps {
		return fmt.Errorf("%w: steps %d must be between %d and %d",
			ErrInvalidParams, p.Steps, MinSteps, MaxSteps)
	}

	if p.CFGScale <= 0 {
		return fmt.Errorf("%w: CFGScale %.2f must be positive", ErrInvalidParams, p.CFGScale)
	}

	// Negative prompt is optional, but if provided, validate length
	if len(p.NegativePrompt) > MaxPromptLength {
		return fmt.Errorf("%w: negative prompt length %d exceeds maximum %d",
			ErrInvalidParams, len(p.NegativePrompt), MaxPromptLength)
	}

	return nil
}
