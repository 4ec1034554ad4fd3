package devinfo

import (
	"context"
	"sync"
)

// monitor tracks one monitoring toggle and the last value its change
// stream delivered. Each enable bumps gen so readings from a stream that
// has since been disabled are dropped.
type monitor[T comparable] struct {
	mu        sync.Mutex
	gen       uint64
	cancel    context.CancelFunc
	last      T
	known     bool
	streaming bool
	closed    bool
}

func (m *monitor[T]) enabled() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.cancel != nil
}

// start returns false if the monitor is already running or closed.
func (m *monitor[T]) start(parent context.Context) (context.Context, uint64, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.cancel != nil || m.closed {
		return nil, 0, false
	}

	ctx, cancel := context.WithCancel(parent)
	m.gen++
	m.cancel = cancel
	var zero T
	m.last, m.known = zero, false
	return ctx, m.gen, true
}

// stop returns false if the monitor was not running.
func (m *monitor[T]) stop() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.stopLocked()
}

func (m *monitor[T]) stopLocked() bool {
	if m.cancel == nil {
		return false
	}
	m.cancel()
	m.cancel = nil
	m.streaming = false
	var zero T
	m.last, m.known = zero, false
	return true
}

// close stops the monitor for good; later starts are no-ops.
func (m *monitor[T]) close() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.stopLocked()
	m.closed = true
}

// live reports whether gen is still the running stream. Handlers are only
// called while it holds.
func (m *monitor[T]) live(gen uint64) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.current(gen)
}

func (m *monitor[T]) setStreaming(gen uint64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.current(gen) {
		m.streaming = true
	}
}

// hasStream reports whether the running monitor has a change stream.
func (m *monitor[T]) hasStream() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.streaming
}

func (m *monitor[T]) current(gen uint64) bool {
	return m.cancel != nil && m.gen == gen
}

func (m *monitor[T]) seed(gen uint64, v T) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.current(gen) {
		m.last, m.known = v, true
	}
}

// update records v and reports the previous value. changed is false when
// v equals the previous value or gen is no longer the running stream.
func (m *monitor[T]) update(gen uint64, v T) (prev T, hadPrev, changed bool) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if !m.current(gen) {
		return prev, false, false
	}
	prev, hadPrev = m.last, m.known
	if hadPrev && prev == v {
		return prev, hadPrev, false
	}
	m.last, m.known = v, true
	return prev, hadPrev, true
}

func (m *monitor[T]) lastKnown() (T, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.last, m.cancel != nil && m.known
}
