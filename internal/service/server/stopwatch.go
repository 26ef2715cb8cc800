package server

import (
	"context"
	"sync"
	"time"

	"github.com/oshokin/alarm-clock/internal/domain/stopwatch"
	"github.com/oshokin/alarm-clock/internal/logger"
	"github.com/oshokin/alarm-clock/internal/observability"
	"github.com/oshokin/alarm-clock/internal/platform/notify"
)

// stopwatchRunner owns the stopwatch and refreshes it while it runs.
type stopwatchRunner struct {
	ctx      context.Context //nolint:containedctx // Runner lifetime, not a request.
	interval time.Duration
	notifier notify.Notifier

	mu         sync.Mutex
	stopwatch  stopwatch.Stopwatch
	generation uint64
}

func newStopwatchRunner(ctx context.Context, interval time.Duration, notifier notify.Notifier) *stopwatchRunner {
	return &stopwatchRunner{
		ctx:      logger.WithName(ctx, string(notify.UnitStopwatch)),
		interval: interval,
		notifier: notifier,
	}
}

// Start runs or resumes the stopwatch.
func (r *stopwatchRunner) Start(ctx context.Context) stopwatch.Snapshot {
	r.mu.Lock()
	defer r.mu.Unlock()

	now := time.Now()
	if r.stopwatch.State() == stopwatch.Running {
		return r.stopwatch.Snapshot(now)
	}

	r.stopwatch.Start(now)

	r.generation++
	generation := r.generation

	r.notifier.StartForeground(ctx, notify.UnitStopwatch, time.Time{})

	go loop(r.ctx, r.interval, func(now time.Time) bool {
		return r.step(generation, now)
	})

	return r.stopwatch.Snapshot(now)
}

// Pause freezes the stopwatch.
func (r *stopwatchRunner) Pause(ctx context.Context) stopwatch.Snapshot {
	r.mu.Lock()
	defer r.mu.Unlock()

	now := time.Now()
	if r.stopwatch.State() == stopwatch.Running {
		r.generation++
		r.stopwatch.Pause(now)
		r.notifier.StopForeground(ctx, notify.UnitStopwatch)
	}

	return r.stopwatch.Snapshot(now)
}

// Lap records a lap while running.
func (r *stopwatchRunner) Lap(ctx context.Context) stopwatch.Snapshot {
	r.mu.Lock()
	defer r.mu.Unlock()

	now := time.Now()
	if r.stopwatch.Lap(now) {
		observability.RecordLap()
		logger.DebugKV(ctx, "Lap recorded", "elapsed", r.stopwatch.Elapsed(now))
	}

	return r.stopwatch.Snapshot(now)
}

// Reset clears elapsed time and laps.
func (r *stopwatchRunner) Reset(ctx context.Context) stopwatch.Snapshot {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.stopwatch.State() == stopwatch.Running {
		r.notifier.StopForeground(ctx, notify.UnitStopwatch)
	}

	r.generation++
	r.stopwatch.Reset()

	return r.stopwatch.Snapshot(time.Now())
}

// Snapshot returns the stopwatch as seen now.
func (r *stopwatchRunner) Snapshot() stopwatch.Snapshot {
	r.mu.Lock()
	defer r.mu.Unlock()

	return r.stopwatch.Snapshot(time.Now())
}

// Close stops refreshing.
func (r *stopwatchRunner) Close(ctx context.Context) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.generation++
	r.notifier.StopForeground(ctx, notify.UnitStopwatch)
}

func (r *stopwatchRunner) step(generation uint64, now time.Time) bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	if generation != r.generation {
		return false
	}

	r.stopwatch.Tick(now)

	return true
}
