package generation

import (
	"errors"
	"strings"
	"testing"

	"dreamforge/sdruntime"
	"dreamforge/styles"
)

func newTestValidator() *Validator {
	return NewValidator(styles.NewCatalog(), nil)
}

func TestValidate_EmptyPrompt(t *testing.T) {
	v := newTestValidator()

	for _, prompt := range []string{"", "   ", "\t\n"} {
		_, err := v.Validate(GenerationRequest{Prompt: prompt})
		if !errors.Is(err, ErrEmptyPrompt) {
			t.Errorf("prompt %q: expected ErrEmptyPrompt, got %v", prompt, err)
		}
	}
}

func TestValidate_ClampsDimensions(t *testing.T) {
	v := newTestValidator()

	tests := []struct {
		name           string
		width, height  int
		expectedWidth  int
		expectedHeight int
	}{
		{"defaults", 0, 0, 512, 512},
		{"already valid", 512, 768, 512, 768},
		{"rounds to multiple of 8", 300, 500, 304, 504},
		{"rounds down", 299, 299, 296, 296},
		{"below minimum", 100, 17, 256, 256},
		{"above maximum", 4096, 2000, 1024, 1024},
		{"negative", -5, -5, 512, 512},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, err := v.Validate(GenerationRequest{
				Prompt: "a cat",
				Width:  tt.width,
				Height: tt.height,
			})
			if err != nil {
				t.Fatalf("Validate failed: %v", err)
			}
			if out.Width != tt.expectedWidth || out.Height != tt.expectedHeight {
				t.Errorf("expected %dx%d, got %dx%d",
					tt.expectedWidth, tt.expectedHeight, out.Width, out.Height)
			}
			if out.Width%sdruntime.ImageSizeMultiple != 0 {
				t.Errorf("width %d not a multiple of %d", out.Width, sdruntime.ImageSizeMultiple)
			}
		})
	}
}

func TestValidate_ClampsSteps(t *testing.T) {
	v := newTestValidator()

	tests := []struct {
		steps    int
		expected int
	}{
		{0, DefaultSteps},
		{5, sdruntime.MinSteps},
		{25, 25},
		{200, sdruntime.MaxSteps},
		{-1, sdruntime.MinSteps},
	}

	for _, tt := range tests {
		out, err := v.Validate(GenerationRequest{Prompt: "a cat", Steps: tt.steps})
		if err != nil {
			t.Fatalf("Validate failed: %v", err)
		}
		if out.Steps != tt.expected {
			t.Errorf("steps %d: expected %d, got %d", tt.steps, tt.expected, out.Steps)
		}
	}
}

func TestValidate_UnknownStyleFallsBack(t *testing.T) {
	v := newTestValidator()

	out, err := v.Validate(GenerationRequest{Prompt: "a cat", Style: "Unicorn"})
	if err != nil {
		t.Fatalf("unknown style must not fail the request: %v", err)
	}
	if out.Style != styles.NoneID {
		t.Errorf("expected fallback to %q, got %q", styles.NoneID, out.Style)
	}
	if !out.StyleFallback {
		t.Error("StyleFallback not set")
	}
	if out.RequestedStyle != "Unicorn" {
		t.Errorf("original identifier lost: %q", out.RequestedStyle)
	}
}

func TestValidate_KnownStyleNormalized(t *testing.T) {
	v := newTestValidator()

	out, err := v.Validate(GenerationRequest{Prompt: "a cat", Style: "Sci-Fi"})
	if err != nil {
		t.Fatalf("Validate failed: %v", err)
	}
	if out.Style != "scifi" {
		t.Errorf("expected normalized scifi, got %q", out.Style)
	}
	if out.StyleFallback {
		t.Error("known style must not be marked as fallback")
	}
}

func TestValidate_SeedHandling(t *testing.T) {
	v := newTestValidator()

	out, _ := v.Validate(GenerationRequest{Prompt: "a cat"})
	if out.Seed != -1 {
		t.Errorf("unset seed should map to -1, got %d", out.Seed)
	}

	seed := int64(1234)
	out, _ = v.Validate(GenerationRequest{Prompt: "a cat", Seed: &seed})
	if out.Seed != 1234 {
		t.Errorf("explicit seed lost, got %d", out.Seed)
	}
}

func TestValidate_TruncatesLongPrompt(t *testing.T) {
	v := newTestValidator()

	out, err := v.Validate(GenerationRequest{
		Prompt: strings.Repeat("x", sdruntime.MaxPromptLength+50),
	})
	if err != nil {
		t.Fatalf("Validate failed: %v", err)
	}
	if len(out.Prompt) != maxUserPromptLength {
		t.Errorf("expected prompt truncated to %d, got %d", maxUserPromptLength, len(out.Prompt))
	}
}
