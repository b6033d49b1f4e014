/*
Package debounce delays a changing value until it has stopped changing.

A Gate keeps the latest input and a settled value. Every Set cancels the
outstanding timer and schedules a new one; only when the input has been quiet
for the whole delay does the settled value catch up and the callback run.
Typing "a", "ab", "abc" in quick succession therefore yields a single emission
of "abc".

	gate := debounce.New("", 300*time.Millisecond, func(q string) {
		refresh(q)
	})
	gate.Set("a")
	gate.Set("ab")

Emissions are serialized and run without the gate's state lock held, so the
callback may call Set, Value or Latest. It must not call Flush.
*/
package debounce

import (
	"sync"
	"time"
)

// DefaultDelay is the quiet period used by the storefront search box.
const DefaultDelay = 300 * time.Millisecond

// Gate debounces values of type T.
type Gate[T comparable] struct {
	mu      sync.Mutex
	emitMu  sync.Mutex
	delay   time.Duration
	latest  T
	settled T
	timer   *time.Timer
	gen     uint64
	stopped bool
	emit    func(T)
}

// New returns a gate whose settled value starts at initial. emit may be nil.
// A non-positive delay falls back to DefaultDelay.
func New[T comparable](initial T, delay time.Duration, emit func(T)) *Gate[T] {
	if delay <= 0 {
		delay = DefaultDelay
	}
	return &Gate[T]{
		delay:   delay,
		latest:  initial,
		settled: initial,
		emit:    emit,
	}
}

// Set records v as the latest input and restarts the quiet period.
func (g *Gate[T]) Set(v T) {
	g.mu.Lock()
	defer g.mu.Unlock()

	if g.stopped {
		return
	}
	g.latest = v
	g.gen++
	gen := g.gen
	if g.timer != nil {
		g.timer.Stop()
	}
	g.timer = time.AfterFunc(g.delay, func() { g.fire(gen) })
}

// fire settles the value if no newer Set or Stop happened since it was scheduled.
func (g *Gate[T]) fire(gen uint64) {
	g.emitMu.Lock()
	defer g.emitMu.Unlock()

	g.mu.Lock()
	if g.stopped || gen != g.gen {
		g.mu.Unlock()
		return
	}
	v, changed := g.settleLocked()
	g.mu.Unlock()

	if changed && g.emit != nil {
		g.emit(v)
	}
}

// settleLocked moves latest into settled. Callers hold g.mu.
func (g *Gate[T]) settleLocked() (T, bool) {
	g.timer = nil
	g.gen++
	changed := g.settled != g.latest
	g.settled = g.latest
	return g.settled, changed
}

// Flush settles the latest input immediately, cancelling the pending timer.
// It reports whether a pending value was emitted.
func (g *Gate[T]) Flush() bool {
	g.emitMu.Lock()
	defer g.emitMu.Unlock()

	g.mu.Lock()
	if g.stopped || g.timer == nil {
		g.mu.Unlock()
		return false
	}
	g.timer.Stop()
	v, changed := g.settleLocked()
	g.mu.Unlock()

	if changed && g.emit != nil {
		g.emit(v)
	}
	return changed
}

// Reset sets both latest and settled to v without emitting and cancels any
// pending timer.
func (g *Gate[T]) Reset(v T) {
	g.mu.Lock()
	defer g.mu.Unlock()

	if g.timer != nil {
		g.timer.Stop()
		g.timer = nil
	}
	g.gen++
	g.latest = v
	g.settled = v
}

// Value returns the settled value.
func (g *Gate[T]) Value() T {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.settled
}

// Latest returns the most recent input, settled or not.
func (g *Gate[T]) Latest() T {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.latest
}

// Pending reports whether a timer is outstanding.
func (g *Gate[T]) Pending() bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.timer != nil
}

// Delay returns the configured quiet period.
func (g *Gate[T]) Delay() time.Duration {
	return g.delay
}

// Stop cancels any pending timer; later Sets are ignored. It is safe to call
// more than once.
func (g *Gate[T]) Stop() {
	g.mu.Lock()
	defer g.mu.Unlock()

	g.stopped = true
	g.gen++
	if g.timer != nil {
		g.timer.Stop()
		g.timer = nil
	}
}
