package server

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/oshokin/alarm-clock/internal/domain/countdown"
	"github.com/oshokin/alarm-clock/internal/logger"
	"github.com/oshokin/alarm-clock/internal/observability"
	"github.com/oshokin/alarm-clock/internal/platform/audio"
	"github.com/oshokin/alarm-clock/internal/platform/notify"
	"github.com/oshokin/alarm-clock/internal/repository/alarms"
)

// countdownRunner owns the countdown timer and polls it while it runs.
type countdownRunner struct {
	// ctx bounds the polling loop; it ends with the daemon.
	ctx      context.Context //nolint:containedctx // Runner lifetime, not a request.
	interval time.Duration
	settings alarms.Settings
	player   audio.Player
	notifier notify.Notifier
	sound    string

	mu         sync.Mutex
	countdown  countdown.Countdown
	generation uint64
}

// newCountdownRunner returns an idle runner set to the last used duration.
func newCountdownRunner(
	ctx context.Context,
	interval time.Duration,
	settings alarms.Settings,
	player audio.Player,
	notifier notify.Notifier,
	sound string,
) *countdownRunner {
	r := &countdownRunner{
		ctx:      logger.WithName(ctx, string(notify.UnitCountdown)),
		interval: interval,
		settings: settings,
		player:   player,
		notifier: notifier,
		sound:    sound,
	}

	last, err := remembered(ctx, settings, alarms.SettingCountdownLast)
	switch {
	case err == nil:
		if err := r.countdown.Set(last); err != nil {
			logger.WarnKV(ctx, "Ignoring remembered countdown", "duration", last, "error", err)
		}
	case errors.Is(err, alarms.ErrNotFound):
	default:
		logger.WarnKV(ctx, "Failed to read remembered countdown", "error", err)
	}

	return r
}

// Set changes the duration of an idle or completed countdown and remembers it.
func (r *countdownRunner) Set(ctx context.Context, total time.Duration) (countdown.Snapshot, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if err := r.countdown.Set(total); err != nil {
		return r.countdown.Snapshot(time.Now()), err
	}

	r.player.Stop(ctx)
	remember(ctx, r.settings, alarms.SettingCountdownLast, total)

	logger.InfoKV(ctx, "Countdown set", "duration", total)

	return r.countdown.Snapshot(time.Now()), nil
}

// Start runs or resumes the countdown.
func (r *countdownRunner) Start(ctx context.Context) (countdown.Snapshot, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	now := time.Now()
	if r.countdown.State() == countdown.Running {
		return r.countdown.Snapshot(now), nil
	}

	if err := r.countdown.Start(now); err != nil {
		return r.countdown.Snapshot(now), err
	}

	snapshot := r.countdown.Snapshot(now)

	r.generation++
	generation := r.generation

	r.notifier.StartForeground(ctx, notify.UnitCountdown, snapshot.Deadline)

	go loop(r.ctx, r.interval, func(now time.Time) bool {
		return r.step(generation, now)
	})

	logger.InfoKV(ctx, "Countdown started", "remaining", snapshot.Remaining, "deadline", snapshot.Deadline)

	return snapshot, nil
}

// Pause freezes a running countdown.
func (r *countdownRunner) Pause(ctx context.Context) countdown.Snapshot {
	r.mu.Lock()
	defer r.mu.Unlock()

	now := time.Now()
	if r.countdown.State() != countdown.Running {
		return r.countdown.Snapshot(now)
	}

	r.generation++

	if r.countdown.Pause(now) {
		r.finish(ctx)
	} else {
		r.notifier.StopForeground(ctx, notify.UnitCountdown)
		logger.InfoKV(ctx, "Countdown paused", "remaining", r.countdown.Remaining(now))
	}

	return r.countdown.Snapshot(now)
}

// Reset returns the countdown to idle and silences its finish sound.
func (r *countdownRunner) Reset(ctx context.Context) countdown.Snapshot {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.countdown.State() == countdown.Running {
		r.notifier.StopForeground(ctx, notify.UnitCountdown)
	}

	r.generation++
	r.countdown.Reset()
	r.player.Stop(ctx)

	return r.countdown.Snapshot(time.Now())
}

// Snapshot returns the countdown as seen now.
func (r *countdownRunner) Snapshot() countdown.Snapshot {
	r.mu.Lock()
	defer r.mu.Unlock()

	now := time.Now()
	if r.countdown.Tick(now) {
		r.generation++
		r.finish(r.ctx)
	}

	return r.countdown.Snapshot(now)
}

// Close stops polling and playback.
func (r *countdownRunner) Close(ctx context.Context) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.generation++
	r.player.Stop(ctx)
	r.notifier.StopForeground(ctx, notify.UnitCountdown)
}

func (r *countdownRunner) step(generation uint64, now time.Time) bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	if generation != r.generation {
		return false
	}

	if !r.countdown.Tick(now) {
		return true
	}

	r.finish(r.ctx)

	return false
}

// finish reports completion; the caller holds mu.
func (r *countdownRunner) finish(ctx context.Context) {
	r.notifier.StopForeground(ctx, notify.UnitCountdown)
	r.notifier.Finished(ctx, notify.UnitCountdown)

	if _, err := audio.PlayWithFallback(ctx, r.player, r.sound, audio.DefaultSound); err != nil {
		logger.ErrorKV(ctx, "Countdown sound unavailable", "error", err)
	}

	observability.RecordCompleted(string(notify.UnitCountdown))

	logger.Info(ctx, "Countdown finished")
}
