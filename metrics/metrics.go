// Package metrics collects in-process generation statistics. The collector
// keeps aggregate counters plus a bounded ring of recent records for the
// web UI's stats endpoint; nothing is exported to an external system.
package metrics

import (
	"sync"
	"time"
)

// GenerationRecord is one observed generation attempt.
type GenerationRecord struct {
	CorrelationID string        `json:"correlationId"`
	Style         string        `json:"style"`
	Width         int           `json:"width"`
	Height        int           `json:"height"`
	Steps         int           `json:"steps"`
	Seed          int64         `json:"seed"`
	Duration      time.Duration `json:"duration"`
	Success       bool          `json:"success"`
	Error         string        `json:"error,omitempty"`
	CreatedAt     time.Time     `json:"createdAt"`
}

// Recorder receives generation records. Implemented by *Collector; the
// generation service accepts the interface so tests can observe records
// without a collector.
type Recorder interface {
	RecordGeneration(rec GenerationRecord)
}

// Snapshot is an aggregate view of everything recorded so far.
type Snapshot struct {
	TotalGenerations int64         `json:"totalGenerations"`
	Succeeded        int64         `json:"succeeded"`
	Failed           int64         `json:"failed"`
	AverageDuration  time.Duration `json:"averageDuration"`
	LastGeneration   time.Time     `json:"lastGeneration"`
}

// DefaultRecentCapacity bounds the recent-record ring when NewCollector is
// given a non-positive capacity.
const DefaultRecentCapacity = 100

// Collector accumulates generation records. Safe for concurrent use.
type Collector struct {
	mu sync.Mutex

	total     int64
	succeeded int64
	failed    int64
	// totalDuration only counts successful generations; failures often
	// abort early and would skew the average
	totalDuration time.Duration
	last          time.Time

	recent []GenerationRecord
	next   int
	filled bool
}

// NewCollector creates a Collector keeping up to capacity recent records.
func NewCollector(capacity int) *Collector {
	if capacity <= 0 {
		capacity = DefaultRecentCapacity
	}
	return &Collector{recent: make([]GenerationRecord, capacity)}
}

// RecordGeneration stores one attempt.
func (c *Collector) RecordGeneration(rec GenerationRecord) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.total++
	if rec.Success {
		c.succeeded++
		c.totalDuration += rec.Duration
	} else {
		c.failed++
	}
	if rec.CreatedAt.After(c.last) {
		c.last = rec.CreatedAt
	}

	c.recent[c.next] = rec
	c.next++
	if c.next == len(c.recent) {
		c.next = 0
		c.filled = true
	}
}

// Snapshot returns the aggregate counters.
func (c *Collector) Snapshot() Snapshot {
	c.mu.Lock()
	defer c.mu.Unlock()

	snap := Snapshot{
		TotalGenerations: c.total,
		Succeeded:        c.succeeded,
		Failed:           c.failed,
		LastGeneration:   c.last,
	}
	if c.succeeded > 0 {
		snap.AverageDuration = c.totalDuration / time.Duration(c.succeeded)
	}
	return snap
}

// Recent returns up to limit records, newest first. limit <= 0 returns all
// retained records.
func (c *Collector) Recent(limit int) []GenerationRecord {
	c.mu.Lock()
	defer c.mu.Unlock()

	size := c.next
	if c.filled {
		size = len(c.recent)
	}
	if limit <= 0 || limit > size {
		limit = size
	}

	out := make([]GenerationRecord, 0, limit)
	for i := 1; i <= limit; i++ {
		idx := (c.next - i + len(c.recent)) % len(c.recent)
		out = append(out, c.recent[idx])
	}
	return out
}
