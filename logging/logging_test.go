package logging

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// syncBuffer adapts bytes.Buffer to zapcore.WriteSyncer.
type syncBuffer struct {
	bytes.Buffer
}

func (b *syncBuffer) Sync() error { return nil }

func TestNewWithWriter_StructuredOutput(t *testing.T) {
	var buf syncBuffer
	logger := NewWithWriter(zapcore.InfoLevel, &buf)

	logger.Info("generation complete",
		zap.String("correlation_id", "abcd1234"),
		zap.Int64("seed", 42))
	logger.Sync()

	var entry map[string]interface{}
	if err := json.Unmarshal(buf.Bytes(), &entry); err != nil {
		t.Fatalf("output is not JSON: %v\n%s", err, buf.String())
	}
	if entry[fieldMessage] != "generation complete" {
		t.Errorf("unexpected message: %v", entry[fieldMessage])
	}
	if entry[fieldLevel] != "info" {
		t.Errorf("unexpected level: %v", entry[fieldLevel])
	}
	if entry["correlation_id"] != "abcd1234" {
		t.Errorf("structured field lost: %v", entry)
	}
	if _, ok := entry[fieldTimestamp]; !ok {
		t.Error("timestamp field missing")
	}
}

func TestNewWithWriter_RespectsLevel(t *testing.T) {
	var buf syncBuffer
	logger := NewWithWriter(zapcore.WarnLevel, &buf)

	logger.Info("should be dropped")
	logger.Warn("should appear")
	logger.Sync()

	out := buf.String()
	if strings.Contains(out, "should be dropped") {
		t.Error("info entry emitted below warn level")
	}
	if !strings.Contains(out, "should appear") {
		t.Error("warn entry missing")
	}
}

func TestNew_WritesLogFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "app.log")
	logger, err := New(Config{Level: zapcore.InfoLevel, FilePath: path})
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}

	logger.Info("file sink check")
	logger.Sync()

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("log file not written: %v", err)
	}
	if !strings.Contains(string(data), "file sink check") {
		t.Errorf("entry missing from file: %s", data)
	}
}
