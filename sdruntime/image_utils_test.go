package sdruntime

import (
	"errors"
	"testing"
)

func TestIsPNG(t *testing.T) {
	tests := []struct {
		name     string
		data     []byte
		expected bool
	}{
		{"valid magic", []byte{0x89, 0x50, 0x4E, 0x47, 0x0D, 0x0A, 0x1A, 0x0A, 0x00}, true},
		{"empty", nil, false},
		{"too short", []byte{0x89, 0x50}, false},
		{"wrong magic", []byte{0xFF, 0xD8, 0xFF, 0xE0, 0x00, 0x10, 0x4A, 0x46}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := IsPNG(tt.data); got != tt.expected {
				t.Errorf("expected %v, got %v", tt.expected, got)
			}
		})
	}
}

func TestEncodeToPNG_RoundTrip(t *testing.T) {
	width, height := 16, 8
	pixels := make([]byte, width*height*4)
	for i := range pixels {
		pixels[i] = byte(i % 251)
	}

	data, err := EncodeToPNG(pixels, width, height)
	if err != nil {
		t.Fatalf("EncodeToPNG failed: %v", err)
	}

	if err := ValidateImageData(data); err != nil {
		t.Errorf("encoded PNG failed validation: %v", err)
	}
}

func TestEncodeToPNG_BadInput(t *testing.T) {
	tests := []struct {
		name          string
		pixels        []byte
		width, height int
	}{
		{"zero width", make([]byte, 0), 0, 8},
		{"negative height", make([]byte, 0), 8, -1},
		{"length mismatch", make([]byte, 10), 8, 8},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := EncodeToPNG(tt.pixels, tt.width, tt.height)
			if !errors.Is(err, ErrImageInvalidSize) {
				t.Errorf("expected ErrImageInvalidSize, got: %v", err)
			}
		})
	}
}

func TestValidateImageData_Invalid(t *testing.T) {
	tests := []struct {
		name     string
		data     []byte
		expected error
	}{
		{"empty", nil, ErrImageEmpty},
		{"too small", []byte{0x89, 0x50, 0x4E}, ErrImageTooSmall},
		{"not png", make([]byte, 64), ErrImageNotPNG},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateImageData(tt.data)
			if !errors.Is(err, tt.expected) {
				t.Errorf("expected %v, got: %v", tt.expected, err)
			}
		})
	}
}
