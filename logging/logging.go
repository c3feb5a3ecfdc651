// Package logging builds the application logger: structured JSON to a
// rotated file, human-readable output on the console, level controlled
// via environment.
package logging

import (
	"fmt"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/natefinch/lumberjack.v2"
)

// Rotation defaults for the log file.
const (
	DefaultMaxSizeMB  = 50
	DefaultMaxBackups = 5
	DefaultMaxAgeDays = 30
)

// Config controls logger construction.
type Config struct {
	// Level is the minimum level for all outputs
	Level zapcore.Level
	// FilePath is the rotated log file; empty disables file output
	FilePath string
	// Development switches the console to a colored human-readable
	// format; the file stays JSON either way
	Development bool

	// Rotation settings; zero values use the package defaults
	MaxSizeMB  int
	MaxBackups int
	MaxAgeDays int
}

// New builds a logger from cfg. The file core always encodes JSON so logs
// stay machine-parseable; the console core follows Development.
func New(cfg Config) (*zap.Logger, error) {
	var cores []zapcore.Core

	consoleEncoder := zapcore.NewJSONEncoder(encoderConfig())
	if cfg.Development {
		consoleEncoder = zapcore.NewConsoleEncoder(consoleEncoderConfig())
	}
	cores = append(cores, zapcore.NewCore(consoleEncoder, zapcore.Lock(stdout()), cfg.Level))

	if cfg.FilePath != "" {
		writer, err := newFileWriter(cfg)
		if err != nil {
			return nil, fmt.Errorf("logging: open log file: %w", err)
		}
		cores = append(cores, zapcore.NewCore(
			zapcore.NewJSONEncoder(encoderConfig()), writer, cfg.Level))
	}

	return zap.New(zapcore.NewTee(cores...), zap.AddCaller()), nil
}

// NewWithWriter builds a JSON logger into an arbitrary sink. Used by
// tests to capture output.
func NewWithWriter(level zapcore.Level, w zapcore.WriteSyncer) *zap.Logger {
	core := zapcore.NewCore(zapcore.NewJSONEncoder(encoderConfig()), w, level)
	return zap.New(core)
}

// newFileWriter wraps the log file in a size and age based rotator.
func newFileWriter(cfg Config) (zapcore.WriteSyncer, error) {
	maxSize := cfg.MaxSizeMB
	if maxSize == 0 {
		maxSize = DefaultMaxSizeMB
	}
	maxBackups := cfg.MaxBackups
	if maxBackups == 0 {
		maxBackups = DefaultMaxBackups
	}
	maxAge := cfg.MaxAgeDays
	if maxAge == 0 {
		maxAge = DefaultMaxAgeDays
	}

	return zapcore.AddSync(&lumberjack.Logger{
		Filename:   cfg.FilePath,
		MaxSize:    maxSize,
		MaxBackups: maxBackups,
		MaxAge:     maxAge,
		Compress:   true,
	}), nil
}
