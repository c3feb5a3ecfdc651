package store

import (
	"encoding/json"
	"time"

	"dreamforge/generation"
)

// Record is the JSON sidecar written next to each image. It carries
// everything needed to reproduce the image bit-identically: the effective
// prompt pair, the concrete seed and all sampler parameters.
type Record struct {
	CorrelationID  string    `json:"correlationId"`
	Prompt         string    `json:"prompt"`
	NegativePrompt string    `json:"negativePrompt"`
	Seed           int64     `json:"seed"`
	Width          int       `json:"width"`
	Height         int       `json:"height"`
	Steps          int       `json:"steps"`
	DurationMS     int64     `json:"durationMs"`
	Backend        string    `json:"backend,omitempty"`
	ImagePath      string    `json:"imagePath"`
	ThumbnailPath  string    `json:"thumbnailPath,omitempty"`
	CreatedAt      time.Time `json:"createdAt"`
}

func newRecord(res *generation.Result, backend string) Record {
	return Record{
		CorrelationID:  res.CorrelationID,
		Prompt:         res.Prompt.Positive,
		NegativePrompt: res.Prompt.Negative,
		Seed:           res.Seed,
		Width:          res.Width,
		Height:         res.Height,
		Steps:          res.Steps,
		DurationMS:     res.Duration.Milliseconds(),
		Backend:        backend,
		ImagePath:      res.StoragePath,
		ThumbnailPath:  res.ThumbnailPath,
		CreatedAt:      res.CreatedAt,
	}
}

func marshalRecord(rec Record) ([]byte, error) {
	return json.MarshalIndent(rec, "", "  ")
}
