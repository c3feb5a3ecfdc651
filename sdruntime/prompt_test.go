package sdruntime

import (
	"errors"
	"strings"
	"testing"
)

func TestValidatePrompt_Valid(t *testing.T) {
	tests := []struct {
		name   string
		prompt string
	}{
		{"simple prompt", "a castle at dusk"},
		{"prompt with punctuation", "beautiful sunset, orange sky, peaceful scene"},
		{"single character", "x"},
		{"max length", strings.Repeat("a", MaxPromptLength)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := ValidatePrompt(tt.prompt); err != nil {
				t.Errorf("expected no error for valid prompt, got: %v", err)
			}
		})
	}
}

func TestValidatePrompt_Invalid(t *testing.T) {
	tests := []struct {
		name   string
		prompt string
	}{
		{"empty string", ""},
		{"whitespace only", "   "},
		{"tabs and newlines", "\t\n"},
		{"null byte", "hello\x00world"},
		{"too long", strings.Repeat("a", MaxPromptLength+1)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidatePrompt(tt.prompt)
			if err == nil {
				t.Fatal("expected error for invalid prompt")
			}
			if !errors.Is(err, ErrInvalidPrompt) {
				t.Errorf("expected ErrInvalidPrompt, got: %v", err)
			}
		})
	}
}

func TestSanitizePrompt(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{"no change needed", "hello world", "hello world"},
		{"leading whitespace", "  hello", "hello"},
		{"trailing whitespace", "hello  ", "hello"},
		{"tabs and newlines", "\t\nhello\t\n", "hello"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := SanitizePrompt(tt.input); got != tt.expected {
				t.Errorf("expected %q, got %q", tt.expected, got)
			}
		})
	}
}
