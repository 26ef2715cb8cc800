// Package oneshot provides the one-shot timer service alarms register with.
//
// A registration fires its handler once, on its own goroutine, at (exact) or
// shortly after (inexact) the requested instant. Registering an id again
// replaces the previous registration; Cancel removes it.
package oneshot

import (
	"context"
	"errors"
	"sync"
	"time"
)

var (
	// ErrExactNotPermitted is returned by RegisterExact when exact registrations are disabled.
	ErrExactNotPermitted = errors.New("exact registrations are not permitted")
	// ErrClosed is returned after Close.
	ErrClosed = errors.New("timer service is closed")
)

// Handler is invoked when a registration fires.
type Handler func(ctx context.Context, id int64)

// Service registers and cancels one-shot timers keyed by id.
type Service interface {
	RegisterExact(ctx context.Context, at time.Time, id int64) error
	RegisterInexact(ctx context.Context, at time.Time, window time.Duration, id int64) error
	Cancel(id int64) bool
}

// entry is one pending registration.
type entry struct {
	timer *time.Timer
	at    time.Time
}

// Local is an in-process Service built on time.AfterFunc.
type Local struct {
	handler    Handler
	allowExact bool

	mu      sync.Mutex
	pending map[int64]*entry
	closed  bool
}

// NewLocal creates a service calling handler for every fired registration.
// When allowExact is false RegisterExact always fails with ErrExactNotPermitted.
func NewLocal(handler Handler, allowExact bool) *Local {
	return &Local{
		handler:    handler,
		allowExact: allowExact,
		pending:    make(map[int64]*entry),
	}
}

// RegisterExact fires id at exactly at. Instants in the past fire immediately.
func (l *Local) RegisterExact(ctx context.Context, at time.Time, id int64) error {
	if !l.allowExact {
		return ErrExactNotPermitted
	}

	return l.register(ctx, at, id)
}

// RegisterInexact fires id at the first window boundary not before at.
func (l *Local) RegisterInexact(ctx context.Context, at time.Time, window time.Duration, id int64) error {
	return l.register(ctx, AlignUp(at, window), id)
}

// Cancel removes the registration for id and reports whether one was pending.
func (l *Local) Cancel(id int64) bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	e, ok := l.pending[id]
	if !ok {
		return false
	}

	e.timer.Stop()
	delete(l.pending, id)

	return true
}

// Pending returns the fire instant registered for id.
func (l *Local) Pending(id int64) (time.Time, bool) {
	l.mu.Lock()
	defer l.mu.Unlock()

	e, ok := l.pending[id]
	if !ok {
		return time.Time{}, false
	}

	return e.at, true
}

// Len returns the number of pending registrations.
func (l *Local) Len() int {
	l.mu.Lock()
	defer l.mu.Unlock()

	return len(l.pending)
}

// Close cancels every pending registration; later registrations fail with ErrClosed.
func (l *Local) Close() {
	l.mu.Lock()
	defer l.mu.Unlock()

	for id, e := range l.pending {
		e.timer.Stop()
		delete(l.pending, id)
	}

	l.closed = true
}

func (l *Local) register(ctx context.Context, at time.Time, id int64) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.closed {
		return ErrClosed
	}

	if previous, ok := l.pending[id]; ok {
		previous.timer.Stop()
	}

	// The handler outlives the registering request.
	fireCtx := context.WithoutCancel(ctx)

	e := &entry{at: at}
	e.timer = time.AfterFunc(time.Until(at), func() {
		l.mu.Lock()

		current, ok := l.pending[id]
		if !ok || current != e {
			// Replaced or cancelled after the timer fired.
			l.mu.Unlock()
			return
		}

		delete(l.pending, id)
		l.mu.Unlock()

		l.handler(fireCtx, id)
	})

	l.pending[id] = e

	return nil
}

// AlignUp rounds at up to the next multiple of window since the zero time.
// A non-positive window returns at unchanged.
func AlignUp(at time.Time, window time.Duration) time.Time {
	if window <= 0 {
		return at
	}

	aligned := at.Truncate(window)
	if aligned.Before(at) {
		aligned = aligned.Add(window)
	}

	return aligned
}
