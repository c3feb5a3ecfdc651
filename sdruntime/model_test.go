package sdruntime

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"testing"
)

// newTestModel loads a Model against a placeholder weights file.
func newTestModel(t *testing.T) *Model {
	t.Helper()
	path := filepath.Join(t.TempDir(), "sd-v1-5.safetensors")
	if err := os.WriteFile(path, []byte("weights"), 0644); err != nil {
		t.Fatal(err)
	}
	model, err := LoadModel(path)
	if err != nil {
		t.Fatalf("LoadModel failed: %v", err)
	}
	t.Cleanup(func() { model.Close() })
	return model
}

func TestLoadModel_MissingFile(t *testing.T) {
	_, err := LoadModel(filepath.Join(t.TempDir(), "nope.safetensors"))
	if !errors.Is(err, ErrModelNotFound) {
		t.Errorf("expected ErrModelNotFound, got: %v", err)
	}
}

func TestLoadModel_EmptyPath(t *testing.T) {
	_, err := LoadModel("")
	if !errors.Is(err, ErrModelLoadFailed) {
		t.Errorf("expected ErrModelLoadFailed, got: %v", err)
	}
}

func TestModel_Generate(t *testing.T) {
	model := newTestModel(t)

	params := DefaultParams()
	params.Prompt = "a castle at dusk"
	params.Seed = 1234

	result, err := model.Generate(params)
	if err != nil {
		t.Fatalf("Generate failed: %v", err)
	}

	if err := ValidateImageData(result.ImageData); err != nil {
		t.Errorf("output is not a valid PNG: %v", err)
	}
	if result.Width != params.Width || result.Height != params.Height {
		t.Errorf("expected %dx%d, got %dx%d", params.Width, params.Height, result.Width, result.Height)
	}
	if result.Seed != 1234 {
		t.Errorf("expected seed 1234 recorded, got %d", result.Seed)
	}
}

// Reproducibility: a fixed seed and fixed inputs must yield bit-identical
// images across separate calls.
func TestModel_Generate_Reproducible(t *testing.T) {
	model := newTestModel(t)

	params := DefaultParams()
	params.Prompt = "a red apple on a table"
	params.Seed = 42

	first, err := model.Generate(params)
	if err != nil {
		t.Fatalf("first Generate failed: %v", err)
	}
	second, err := model.Generate(params)
	if err != nil {
		t.Fatalf("second Generate failed: %v", err)
	}

	if !bytes.Equal(first.ImageData, second.ImageData) {
		t.Error("identical params and seed produced different images")
	}
}

func TestModel_Generate_DistinctPrompts(t *testing.T) {
	model := newTestModel(t)

	params := DefaultParams()
	params.Seed = 42

	params.Prompt = "a red apple"
	apple, err := model.Generate(params)
	if err != nil {
		t.Fatal(err)
	}

	params.Prompt = "a green pear"
	pear, err := model.Generate(params)
	if err != nil {
		t.Fatal(err)
	}

	if bytes.Equal(apple.ImageData, pear.ImageData) {
		t.Error("distinct prompts produced identical images")
	}
}

func TestModel_Generate_UnresolvedSeed(t *testing.T) {
	model := newTestModel(t)

	params := DefaultParams()
	params.Prompt = "a castle"
	params.Seed = -1

	_, err := model.Generate(params)
	if !errors.Is(err, ErrInvalidParams) {
		t.Errorf("expected ErrInvalidParams for unresolved seed, got: %v", err)
	}
}

func TestModel_Closed(t *testing.T) {
	model := newTestModel(t)
	if err := model.Close(); err != nil {
		t.Fatalf("Close failed: %v", err)
	}
	// Close is idempotent
	if err := model.Close(); err != nil {
		t.Fatalf("second Close failed: %v", err)
	}

	params := DefaultParams()
	params.Prompt = "anything"
	params.Seed = 1

	_, err := model.Generate(params)
	if !errors.Is(err, ErrModelClosed) {
		t.Errorf("expected ErrModelClosed, got: %v", err)
	}
}
