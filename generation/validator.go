package generation

import (
	"strings"

	"go.uber.org/zap"

	"dreamforge/sdruntime"
	"dreamforge/styles"
)

// Default parameters applied when a request leaves a field unset.
const (
	DefaultWidth  = 512
	DefaultHeight = 512
	DefaultSteps  = 20
)

// maxUserPromptLength leaves headroom below the runtime's prompt limit for
// the style suffix and quality keywords appended during composition.
const maxUserPromptLength = sdruntime.MaxPromptLength - 128

// Validator normalizes raw requests into a form the runtime accepts.
// Out-of-range values are clamped rather than rejected; the only fatal
// validation failure is an empty prompt. Unknown style identifiers fall
// back to "none" with a warning instead of failing the request.
type Validator struct {
	catalog *styles.Catalog
	logger  *zap.Logger
}

// NewValidator creates a Validator backed by the given preset catalog.
// A nil logger disables warning output.
func NewValidator(catalog *styles.Catalog, logger *zap.Logger) *Validator {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Validator{catalog: catalog, logger: logger}
}

// Validate normalizes req. It returns ErrEmptyPrompt when the prompt is
// empty or whitespace-only; every other input is coerced into range.
func (v *Validator) Validate(req GenerationRequest) (ValidatedRequest, error) {
	prompt := strings.TrimSpace(req.Prompt)
	if prompt == "" {
		return ValidatedRequest{}, ErrEmptyPrompt
	}
	if len(prompt) > maxUserPromptLength {
		prompt = strings.TrimSpace(prompt[:maxUserPromptLength])
	}

	out := ValidatedRequest{
		Prompt:  prompt,
		Width:   clampDimension(req.Width),
		Height:  clampDimension(req.Height),
		Steps:   clampSteps(req.Steps),
		Seed:    -1,
		Enhance: req.Enhance,
	}
	if req.Seed != nil {
		out.Seed = *req.Seed
	}

	out.Style = styles.NormalizeID(req.Style)
	if out.Style == "" {
		out.Style = styles.NoneID
	}
	if !v.catalog.Contains(out.Style) {
		v.logger.Warn("Unknown style preset, falling back to none",
			zap.String("requested_style", req.Style))
		out.StyleFallback = true
		out.RequestedStyle = req.Style
		out.Style = styles.NoneID
	}

	if out.Width != req.Width || out.Height != req.Height || out.Steps != req.Steps {
		v.logger.Debug("Clamped request parameters",
			zap.Int("width", out.Width),
			zap.Int("height", out.Height),
			zap.Int("steps", out.Steps))
	}

	return out, nil
}

// clampDimension snaps a pixel dimension to the nearest multiple of 8
// within the runtime's accepted range. Zero and negative values take the
// default instead of being clamped to the minimum.
func clampDimension(d int) int {
	if d <= 0 {
		return DefaultWidth // width and height share the same default
	}
	d = (d + sdruntime.ImageSizeMultiple/2) / sdruntime.ImageSizeMultiple * sdruntime.ImageSizeMultiple
	if d < sdruntime.MinImageSize {
		return sdruntime.MinImageSize
	}
	if d > sdruntime.MaxImageSize {
		return sdruntime.MaxImageSize
	}
	return d
}

func clampSteps(s int) int {
	if s == 0 {
		return DefaultSteps
	}
	if s < sdruntime.MinSteps {
		return sdruntime.MinSteps
	}
	if s > sdruntime.MaxSteps {
		return sdruntime.MaxSteps
	}
	return s
}
