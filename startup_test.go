package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func testConfig(t *testing.T) Config {
	t.Helper()
	dir := t.TempDir()

	modelPath := filepath.Join(dir, "model.safetensors")
	if err := os.WriteFile(modelPath, []byte("weights"), 0644); err != nil {
		t.Fatal(err)
	}

	return Config{
		ModelPath:    modelPath,
		OutputsDir:   filepath.Join(dir, "outputs"),
		DatabasePath: filepath.Join(dir, "history.sqlite"),
	}
}

func TestRunStartupChecks_Pass(t *testing.T) {
	var out bytes.Buffer
	if !runStartupChecks(testConfig(t), &out) {
		t.Fatalf("checks failed:\n%s", out.String())
	}
	if !strings.Contains(out.String(), "All checks passed") {
		t.Errorf("missing success summary:\n%s", out.String())
	}
}

func TestRunStartupChecks_MissingModel(t *testing.T) {
	cfg := testConfig(t)
	cfg.ModelPath = filepath.Join(t.TempDir(), "missing.safetensors")

	var out bytes.Buffer
	if runStartupChecks(cfg, &out) {
		t.Error("checks should fail without model weights")
	}
	if !strings.Contains(out.String(), "not found") {
		t.Errorf("missing failure detail:\n%s", out.String())
	}
}

func TestRunStartupChecks_BadStyleCatalog(t *testing.T) {
	cfg := testConfig(t)
	badPath := filepath.Join(t.TempDir(), "presets.yaml")
	if err := os.WriteFile(badPath, []byte("{{{{"), 0644); err != nil {
		t.Fatal(err)
	}
	cfg.StylePresetPath = badPath

	var out bytes.Buffer
	if runStartupChecks(cfg, &out) {
		t.Error("checks should fail with an unparseable preset file")
	}
}

func TestRunStartupChecks_NoDatabaseIsWarning(t *testing.T) {
	cfg := testConfig(t)
	cfg.DatabasePath = ""

	var out bytes.Buffer
	if !runStartupChecks(cfg, &out) {
		t.Error("disabled indexing must not fail startup")
	}
	if !strings.Contains(out.String(), "indexing disabled") {
		t.Errorf("missing warning note:\n%s", out.String())
	}
}
