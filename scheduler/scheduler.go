// Package scheduler serializes all inference calls into the diffusion model.
//
// The model is a single heavyweight in-memory object that must never be
// invoked concurrently. The Scheduler owns it exclusively: every generation
// in the process goes through Run, which queues the request and blocks the
// caller until a dedicated worker goroutine has executed it. Requests are
// served strictly first-come-first-served; exactly one model call is in
// flight at any instant.
package scheduler

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"dreamforge/sdruntime"

	"go.uber.org/zap"
)

// Sentinel errors for scheduler operations.
var (
	// ErrSchedulerClosed is returned for runs issued, or still queued,
	// after Close.
	ErrSchedulerClosed = errors.New("scheduler: scheduler is closed")
)

// Model is the exclusive resource the scheduler serializes access to.
// *sdruntime.Model satisfies this interface.
type Model interface {
	Generate(params sdruntime.GenerateParams) (*sdruntime.GenerateResult, error)
}

// DefaultQueueDepth is the number of pending runs the queue holds before
// further callers block on submission.
const DefaultQueueDepth = 64

// Scheduler owns the model and runs a single worker goroutine that drains
// a FIFO queue of generation requests.
//
// Waiting happens in Run: a caller blocks until its turn comes and the model
// call completes. A failed model call is surfaced to exactly the caller that
// issued it; the worker keeps serving subsequent requests. A request that is
// still queued is cancelled cheaply via its context; once running, a model
// call is not interrupted.
type Scheduler struct {
	model  Model
	logger *zap.Logger

	jobs chan *job
	quit chan struct{}
	wg   sync.WaitGroup

	// mu guards closed and orders submissions before Close: a job enqueued
	// under the read lock is in the channel before quit closes, so the
	// worker's drain is guaranteed to answer it.
	mu     sync.RWMutex
	closed bool
}

// job carries one generation request through the queue.
type job struct {
	ctx        context.Context
	params     sdruntime.GenerateParams
	enqueuedAt time.Time
	done       chan jobResult
}

type jobResult struct {
	result *sdruntime.GenerateResult
	err    error
}

// Option configures a Scheduler.
type Option func(*Scheduler)

// WithQueueDepth sets the pending-run queue capacity.
func WithQueueDepth(depth int) Option {
	return func(s *Scheduler) {
		if depth > 0 {
			s.jobs = make(chan *job, depth)
		}
	}
}

// New creates a Scheduler owning the given model and starts its worker.
// The model must not be used by any other component after this call.
func New(model Model, logger *zap.Logger, opts ...Option) *Scheduler {
	if logger == nil {
		logger = zap.NewNop()
	}

	s := &Scheduler{
		model:  model,
		logger: logger,
		jobs:   make(chan *job, DefaultQueueDepth),
		quit:   make(chan struct{}),
	}
	for _, opt := range opts {
		opt(s)
	}

	s.wg.Add(1)
	go s.worker()

	return s
}

// Run queues a generation request and blocks until it has been executed.
//
// Seed resolution happens here: if params.Seed is negative, a fresh seed is
// drawn and the resolved value is returned in the result so the caller can
// record it for reproducibility.
//
// Error cases:
//   - ErrSchedulerClosed: scheduler closed before or while the run was queued
//   - ctx.Err() (wrapped): ctx cancelled while the run was still queued
//   - sdruntime.ErrGenerationFailed and friends: the model call itself failed
func (s *Scheduler) Run(ctx context.Context, params sdruntime.GenerateParams) (*sdruntime.GenerateResult, error) {
	if params.Seed < 0 {
		params.Seed = sdruntime.RandomSeed()
	}

	j := &job{
		ctx:        ctx,
		params:     params,
		enqueuedAt: time.Now(),
		done:       make(chan jobResult, 1),
	}

	s.mu.RLock()
	if s.closed {
		s.mu.RUnlock()
		return nil, ErrSchedulerClosed
	}
	select {
	case s.jobs <- j:
		s.mu.RUnlock()
	case <-ctx.Done():
		s.mu.RUnlock()
		return nil, fmt.Errorf("scheduler: run cancelled before queueing: %w", ctx.Err())
	}

	select {
	case res := <-j.done:
		return res.result, res.err
	case <-ctx.Done():
		// The worker skips this job when it reaches it; the model is never
		// invoked for a cancelled queued request.
		return nil, fmt.Errorf("scheduler: run cancelled while queued: %w", ctx.Err())
	}
}

// worker drains the queue one job at a time. This goroutine is the only
// code path that ever touches the model.
func (s *Scheduler) worker() {
	defer s.wg.Done()

	for {
		// Shutdown takes priority over pending work
		select {
		case <-s.quit:
			s.drain()
			return
		default:
		}

		select {
		case j := <-s.jobs:
			s.serve(j)
		case <-s.quit:
			s.drain()
			return
		}
	}
}

// drain rejects every still-queued job after shutdown.
func (s *Scheduler) drain() {
	for {
		select {
		case j := <-s.jobs:
			j.done <- jobResult{err: ErrSchedulerClosed}
		default:
			return
		}
	}
}

func (s *Scheduler) serve(j *job) {
	// Cheap cancellation for requests that gave up while queued
	if err := j.ctx.Err(); err != nil {
		j.done <- jobResult{err: fmt.Errorf("scheduler: run cancelled while queued: %w", err)}
		return
	}

	wait := time.Since(j.enqueuedAt)
	start := time.Now()

	result, err := s.model.Generate(j.params)

	elapsed := time.Since(start)
	if err != nil {
		s.logger.Warn("model call failed",
			zap.Duration("queue_wait", wait),
			zap.Duration("elapsed", elapsed),
			zap.Error(err))
	} else {
		s.logger.Info("model call completed",
			zap.Duration("queue_wait", wait),
			zap.Duration("elapsed", elapsed),
			zap.Int64("seed", j.params.Seed),
			zap.Int("width", j.params.Width),
			zap.Int("height", j.params.Height),
			zap.Int("steps", j.params.Steps))
	}

	j.done <- jobResult{result: result, err: err}
}

// Pending returns the number of runs currently waiting in the queue.
func (s *Scheduler) Pending() int {
	return len(s.jobs)
}

// Close stops accepting new runs, fails all still-queued runs with
// ErrSchedulerClosed, and waits for the worker to stop. A model call that is
// already executing runs to completion. Close is safe to call multiple times.
func (s *Scheduler) Close() error {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return nil
	}
	s.closed = true
	close(s.quit)
	s.mu.Unlock()

	s.wg.Wait()
	return nil
}

// IsClosed reports whether Close has been called.
func (s *Scheduler) IsClosed() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.closed
}
