package logging

import (
	"testing"

	"go.uber.org/zap/zapcore"
)

func TestParseLevelString(t *testing.T) {
	tests := []struct {
		input    string
		expected zapcore.Level
	}{
		{"debug", zapcore.DebugLevel},
		{"INFO", zapcore.InfoLevel},
		{"  warn  ", zapcore.WarnLevel},
		{"warning", zapcore.WarnLevel},
		{"Error", zapcore.ErrorLevel},
		{"fatal", zapcore.FatalLevel},
		{"bogus", zapcore.InfoLevel},
		{"", zapcore.InfoLevel},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got := ParseLevelString(tt.input, zapcore.InfoLevel)
			if got != tt.expected {
				t.Errorf("ParseLevelString(%q) = %v, expected %v", tt.input, got, tt.expected)
			}
		})
	}
}

func TestParseLevel_EnvVar(t *testing.T) {
	t.Setenv("DREAMFORGE_LOG_LEVEL", "debug")
	if got := ParseLevel("DREAMFORGE_LOG_LEVEL", zapcore.InfoLevel); got != zapcore.DebugLevel {
		t.Errorf("expected debug from env, got %v", got)
	}

	t.Setenv("DREAMFORGE_LOG_LEVEL", "")
	if got := ParseLevel("DREAMFORGE_LOG_LEVEL", zapcore.WarnLevel); got != zapcore.WarnLevel {
		t.Errorf("expected default for empty env, got %v", got)
	}
}
