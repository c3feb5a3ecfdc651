package store

import (
	"bytes"
	"context"
	"encoding/json"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"dreamforge/generation"
)

// testPNG renders a small decodable PNG for store tests.
func testPNG(t *testing.T, w, h int) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.Set(x, y, color.RGBA{R: uint8(x), G: uint8(y), B: 128, A: 255})
		}
	}
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		t.Fatal(err)
	}
	return buf.Bytes()
}

func testResult(t *testing.T) *generation.Result {
	t.Helper()
	return &generation.Result{
		Image: testPNG(t, 320, 320),
		Prompt: generation.EffectivePrompt{
			Positive: "a misty harbor, high quality",
			Negative: "low quality, blurry",
		},
		Seed:          4242,
		Width:         320,
		Height:        320,
		Steps:         20,
		CreatedAt:     time.Date(2026, 3, 14, 9, 26, 53, 0, time.UTC),
		Duration:      1500 * time.Millisecond,
		CorrelationID: "abcd1234",
	}
}

func TestSave_WritesImageSidecarAndThumbnail(t *testing.T) {
	dir := t.TempDir()
	s, err := NewOutputStore(dir, nil, WithBackend("fallback"))
	if err != nil {
		t.Fatal(err)
	}

	res := testResult(t)
	if err := s.Save(context.Background(), res); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	if res.StoragePath == "" || res.ThumbnailPath == "" {
		t.Fatalf("paths not filled in: %q / %q", res.StoragePath, res.ThumbnailPath)
	}
	if !strings.HasPrefix(filepath.Base(res.StoragePath), "20260314_092653_") {
		t.Errorf("unexpected file name: %s", filepath.Base(res.StoragePath))
	}

	sidecarPath := strings.TrimSuffix(res.StoragePath, ".png") + ".json"
	data, err := os.ReadFile(sidecarPath)
	if err != nil {
		t.Fatalf("sidecar missing: %v", err)
	}
	var rec Record
	if err := json.Unmarshal(data, &rec); err != nil {
		t.Fatalf("sidecar not valid JSON: %v", err)
	}
	if rec.Seed != 4242 || rec.Prompt != res.Prompt.Positive || rec.Backend != "fallback" {
		t.Errorf("sidecar record incomplete: %+v", rec)
	}
	if rec.DurationMS != 1500 {
		t.Errorf("expected duration 1500ms, got %d", rec.DurationMS)
	}

	thumb, err := os.ReadFile(res.ThumbnailPath)
	if err != nil {
		t.Fatalf("thumbnail missing: %v", err)
	}
	img, err := png.Decode(bytes.NewReader(thumb))
	if err != nil {
		t.Fatalf("thumbnail not a PNG: %v", err)
	}
	if img.Bounds().Dx() > thumbnailMaxEdge || img.Bounds().Dy() > thumbnailMaxEdge {
		t.Errorf("thumbnail too large: %v", img.Bounds())
	}
}

func TestSave_NeverOverwrites(t *testing.T) {
	dir := t.TempDir()
	s, err := NewOutputStore(dir, nil)
	if err != nil {
		t.Fatal(err)
	}

	first := testResult(t)
	second := testResult(t)

	if err := s.Save(context.Background(), first); err != nil {
		t.Fatal(err)
	}
	if err := s.Save(context.Background(), second); err != nil {
		t.Fatal(err)
	}

	if first.StoragePath == second.StoragePath {
		t.Errorf("identical requests must not share a file: %s", first.StoragePath)
	}
	for _, p := range []string{first.StoragePath, second.StoragePath} {
		if _, err := os.Stat(p); err != nil {
			t.Errorf("image missing: %v", err)
		}
	}
}

func TestSave_DistinctPromptsDistinctNames(t *testing.T) {
	dir := t.TempDir()
	s, err := NewOutputStore(dir, nil)
	if err != nil {
		t.Fatal(err)
	}

	a := testResult(t)
	b := testResult(t)
	b.Prompt.Positive = "a different prompt entirely"

	if err := s.Save(context.Background(), a); err != nil {
		t.Fatal(err)
	}
	if err := s.Save(context.Background(), b); err != nil {
		t.Fatal(err)
	}
	if filepath.Base(a.StoragePath) == filepath.Base(b.StoragePath) {
		t.Error("different prompts should hash to different names")
	}
}

func TestSave_CorruptImageStillSavesOriginal(t *testing.T) {
	dir := t.TempDir()
	s, err := NewOutputStore(dir, nil)
	if err != nil {
		t.Fatal(err)
	}

	res := testResult(t)
	res.Image = []byte("not a png at all")

	if err := s.Save(context.Background(), res); err != nil {
		t.Fatalf("thumbnail failure must not fail the save: %v", err)
	}
	if res.StoragePath == "" {
		t.Error("image file not written")
	}
	if res.ThumbnailPath != "" {
		t.Error("no thumbnail path expected for undecodable data")
	}
}

// recordingIndex captures indexed records.
type recordingIndex struct {
	records []Record
}

func (i *recordingIndex) Insert(_ context.Context, rec Record) error {
	i.records = append(i.records, rec)
	return nil
}

func TestSave_IndexesRecord(t *testing.T) {
	idx := &recordingIndex{}
	s, err := NewOutputStore(t.TempDir(), nil, WithIndex(idx))
	if err != nil {
		t.Fatal(err)
	}

	if err := s.Save(context.Background(), testResult(t)); err != nil {
		t.Fatal(err)
	}
	if len(idx.records) != 1 {
		t.Fatalf("expected 1 indexed record, got %d", len(idx.records))
	}
	if idx.records[0].ImagePath == "" {
		t.Error("indexed record missing image path")
	}
}

func TestNewOutputStore_CreatesDirectory(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nested", "outputs")
	if _, err := NewOutputStore(dir, nil); err != nil {
		t.Fatalf("NewOutputStore failed: %v", err)
	}
	info, err := os.Stat(dir)
	if err != nil || !info.IsDir() {
		t.Errorf("output directory not created: %v", err)
	}
}
