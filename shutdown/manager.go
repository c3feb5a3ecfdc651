// Package shutdown coordinates graceful process teardown: SIGINT/SIGTERM
// cancel a shared context, registered cleanup hooks run in priority
// order, and a second signal forces an immediate exit.
package shutdown

import (
	"context"
	"os"
	"os/signal"
	"sort"
	"sync"
	"syscall"
	"time"

	"go.uber.org/zap"
)

// Hook is one cleanup step. The context carries the shutdown deadline.
type Hook func(ctx context.Context) error

type hookEntry struct {
	name     string
	priority int
	fn       Hook
	order    int
}

// Manager owns the shutdown lifecycle. Register hooks during startup,
// call Start to install signal handling, then block on Context and call
// Shutdown when it fires.
//
// Lower priority runs first, so request-facing components (the HTTP
// server) register low and foundational ones (database, logger) high.
type Manager struct {
	logger  *zap.Logger
	timeout time.Duration

	mu       sync.Mutex
	hooks    []hookEntry
	started  bool
	shutdown bool

	ctx     context.Context
	cancel  context.CancelFunc
	sigChan chan os.Signal
}

// Option configures a Manager.
type Option func(*Manager)

// WithTimeout bounds the whole shutdown sequence. Default 30 seconds.
func WithTimeout(d time.Duration) Option {
	return func(m *Manager) { m.timeout = d }
}

// NewManager creates a Manager. A nil logger disables shutdown logging.
func NewManager(logger *zap.Logger, opts ...Option) *Manager {
	if logger == nil {
		logger = zap.NewNop()
	}

	ctx, cancel := context.WithCancel(context.Background())
	m := &Manager{
		logger:  logger,
		timeout: 30 * time.Second,
		ctx:     ctx,
		cancel:  cancel,
		sigChan: make(chan os.Signal, 2),
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// Register adds a named cleanup hook. Hooks with equal priority run in
// registration order.
func (m *Manager) Register(name string, priority int, fn Hook) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.hooks = append(m.hooks, hookEntry{
		name:     name,
		priority: priority,
		fn:       fn,
		order:    len(m.hooks),
	})
}

// Context is cancelled when shutdown begins, by signal or by Trigger.
func (m *Manager) Context() context.Context {
	return m.ctx
}

// Start installs the signal handler. The first SIGINT or SIGTERM cancels
// the context; a second one exits immediately without cleanup.
func (m *Manager) Start() {
	m.mu.Lock()
	if m.started {
		m.mu.Unlock()
		return
	}
	m.started = true
	m.mu.Unlock()

	signal.Notify(m.sigChan, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		sig := <-m.sigChan
		m.logger.Info("Shutdown signal received", zap.String("signal", sig.String()))
		m.cancel()

		sig = <-m.sigChan
		m.logger.Warn("Second signal received, forcing exit", zap.String("signal", sig.String()))
		os.Exit(1)
	}()
}

// Trigger begins shutdown programmatically, as if a signal arrived.
func (m *Manager) Trigger() {
	m.cancel()
}

// Shutdown runs all hooks in priority order under the configured timeout.
// A failing hook is logged and does not stop the remaining hooks.
// Shutdown is idempotent; repeat calls are no-ops.
func (m *Manager) Shutdown() {
	m.mu.Lock()
	if m.shutdown {
		m.mu.Unlock()
		return
	}
	m.shutdown = true
	hooks := make([]hookEntry, len(m.hooks))
	copy(hooks, m.hooks)
	m.mu.Unlock()

	m.cancel()
	signal.Stop(m.sigChan)

	sort.SliceStable(hooks, func(i, j int) bool {
		if hooks[i].priority != hooks[j].priority {
			return hooks[i].priority < hooks[j].priority
		}
		return hooks[i].order < hooks[j].order
	})

	ctx, cancel := context.WithTimeout(context.Background(), m.timeout)
	defer cancel()

	for _, h := range hooks {
		start := time.Now()
		if err := h.fn(ctx); err != nil {
			m.logger.Error("Cleanup hook failed",
				zap.String("hook", h.name), zap.Error(err))
			continue
		}
		m.logger.Info("Cleanup hook finished",
			zap.String("hook", h.name),
			zap.Duration("elapsed", time.Since(start)))
	}
}
