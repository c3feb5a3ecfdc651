// Package store persists generated images to an append-only output
// directory. Every image gets a collision-resistant file name, a JSON
// sidecar with the full generation record, and a browser-sized thumbnail.
// Existing files are never overwritten or deleted.
package store

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"go.uber.org/zap"

	"dreamforge/generation"
)

// ErrPersistence wraps any failure while writing a generation to disk.
// Callers treat it as soft: the image is still handed back upstream.
var ErrPersistence = errors.New("store: failed to persist generation")

// Index receives a record for every successfully written image. Satisfied
// by *db.Repository; nil disables indexing.
type Index interface {
	Insert(ctx context.Context, rec Record) error
}

// OutputStore writes images, sidecars and thumbnails under a single
// directory. Safe for concurrent use; exclusive file creation resolves
// naming races.
type OutputStore struct {
	dir     string
	backend string
	index   Index
	logger  *zap.Logger
}

// Option configures an OutputStore.
type Option func(*OutputStore)

// WithBackend stamps sidecar records with the runtime backend identifier.
func WithBackend(backend string) Option {
	return func(s *OutputStore) { s.backend = backend }
}

// WithIndex registers a database index for written records.
func WithIndex(index Index) Option {
	return func(s *OutputStore) { s.index = index }
}

// NewOutputStore creates the output directory if needed and returns a
// store rooted there.
func NewOutputStore(dir string, logger *zap.Logger, opts ...Option) (*OutputStore, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("store: create output dir: %w", err)
	}

	s := &OutputStore{dir: dir, logger: logger}
	for _, opt := range opts {
		opt(s)
	}
	return s, nil
}

// Dir returns the output directory path.
func (s *OutputStore) Dir() string {
	return s.dir
}

// Save writes the image, its JSON sidecar and a thumbnail, then fills in
// the result's StoragePath and ThumbnailPath. A failed sidecar or
// thumbnail write is logged but does not fail the save; a failed image
// write does, wrapped in ErrPersistence.
func (s *OutputStore) Save(ctx context.Context, res *generation.Result) error {
	stem := s.fileStem(res)

	imagePath, err := s.writeExclusive(stem, ".png", res.Image)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrPersistence, err)
	}
	res.StoragePath = imagePath

	base := imagePath[:len(imagePath)-len(".png")]

	if thumb, err := makeThumbnail(res.Image); err != nil {
		s.logger.Warn("Failed to render thumbnail", zap.String("image", imagePath), zap.Error(err))
	} else if err := os.WriteFile(base+"_thumb.png", thumb, 0644); err != nil {
		s.logger.Warn("Failed to write thumbnail", zap.String("path", base+"_thumb.png"), zap.Error(err))
	} else {
		res.ThumbnailPath = base + "_thumb.png"
	}

	sidecar, err := marshalRecord(newRecord(res, s.backend))
	if err == nil {
		err = os.WriteFile(base+".json", sidecar, 0644)
	}
	if err != nil {
		s.logger.Warn("Failed to write sidecar", zap.String("path", base+".json"), zap.Error(err))
	}

	if s.index != nil {
		if err := s.index.Insert(ctx, newRecord(res, s.backend)); err != nil {
			s.logger.Warn("Failed to index generation", zap.Error(err))
		}
	}

	s.logger.Info("Generation persisted",
		zap.String("path", imagePath),
		zap.Int("bytes", len(res.Image)))
	return nil
}

// fileStem builds "<timestamp>_<hash>" from the creation time and a short
// digest over the prompt, seed and dimensions. Two different generations
// within the same second still get distinct names.
func (s *OutputStore) fileStem(res *generation.Result) string {
	h := sha256.New()
	fmt.Fprintf(h, "%s|%s|%d|%dx%d",
		res.Prompt.Positive, res.Prompt.Negative, res.Seed, res.Width, res.Height)
	digest := hex.EncodeToString(h.Sum(nil))[:8]

	ts := res.CreatedAt
	if ts.IsZero() {
		ts = time.Now().UTC()
	}
	return fmt.Sprintf("%s_%s", ts.Format("20060102_150405"), digest)
}

// writeExclusive creates stem+ext without overwriting. On a name
// collision it appends a counter and retries.
func (s *OutputStore) writeExclusive(stem, ext string, data []byte) (string, error) {
	for attempt := 0; attempt < 100; attempt++ {
		name := stem
		if attempt > 0 {
			name = fmt.Sprintf("%s_%d", stem, attempt)
		}
		path := filepath.Join(s.dir, name+ext)

		f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0644)
		if errors.Is(err, os.ErrExist) {
			continue
		}
		if err != nil {
			return "", err
		}
		if _, err := f.Write(data); err != nil {
			f.Close()
			os.Remove(path)
			return "", err
		}
		if err := f.Close(); err != nil {
			return "", err
		}
		return path, nil
	}
	return "", fmt.Errorf("no free file name for %s%s", stem, ext)
}
