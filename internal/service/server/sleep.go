package server

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/oshokin/alarm-clock/internal/config"
	"github.com/oshokin/alarm-clock/internal/domain/countdown"
	"github.com/oshokin/alarm-clock/internal/domain/sleep"
	"github.com/oshokin/alarm-clock/internal/logger"
	"github.com/oshokin/alarm-clock/internal/observability"
	"github.com/oshokin/alarm-clock/internal/platform/audio"
	"github.com/oshokin/alarm-clock/internal/platform/notify"
	"github.com/oshokin/alarm-clock/internal/platform/power"
	"github.com/oshokin/alarm-clock/internal/platform/wakelock"
	"github.com/oshokin/alarm-clock/internal/repository/alarms"
)

const sleepWakeLockTag = "sleep"

// sleepDeps are the collaborators of the sleep runner.
type sleepDeps struct {
	interval time.Duration
	settings alarms.Settings
	player   audio.Player
	notifier notify.Notifier
	lock     wakelock.Lock
	power    power.Controller
	config   config.Sleep
	sound    string
}

// sleepRunner owns the sleep timer. While it runs it holds a wake lock and
// plays audio whose volume fades out; both are released on completion,
// cancellation and Close.
type sleepRunner struct {
	ctx context.Context //nolint:containedctx // Runner lifetime, not a request.
	sleepDeps

	mu         sync.Mutex
	timer      *sleep.Timer
	release    func()
	generation uint64
}

func newSleepRunner(ctx context.Context, deps *sleepDeps) *sleepRunner {
	r := &sleepRunner{
		ctx:       logger.WithName(ctx, string(notify.UnitSleep)),
		sleepDeps: *deps,
		release:   func() {},
	}

	total, err := remembered(ctx, deps.settings, alarms.SettingSleepLast)
	if err != nil && !errors.Is(err, alarms.ErrNotFound) {
		logger.WarnKV(ctx, "Failed to read remembered sleep duration", "error", err)
	}

	r.timer, err = sleep.New(total, r.fade())
	if err != nil {
		// Nothing remembered: an unset idle timer.
		r.timer = sleep.Unset(r.fade())
	}

	r.timer.ShutdownOnFinish = deps.config.ShutdownOnFinish

	return r
}

// Start (re)starts the sleep timer for total, or for the last used duration
// when total is zero. sound and shutdown override the configured ones when set.
func (r *sleepRunner) Start(
	ctx context.Context,
	total time.Duration,
	sound string,
	shutdown *bool,
) (sleep.Snapshot, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if total == 0 {
		total = r.timer.Total()
	}

	if total == 0 {
		return r.timer.Snapshot(time.Now()), countdown.ErrNotSet
	}

	timer, err := sleep.New(total, r.fade())
	if err != nil {
		return r.timer.Snapshot(time.Now()), err
	}

	timer.ShutdownOnFinish = r.config.ShutdownOnFinish
	if shutdown != nil {
		timer.ShutdownOnFinish = *shutdown
	}

	if r.active() {
		r.stop(ctx, "restarted")
	}

	now := time.Now()
	if err := timer.Start(now); err != nil {
		return r.timer.Snapshot(now), err
	}

	r.timer = timer
	remember(ctx, r.settings, alarms.SettingSleepLast, total)

	release, err := r.lock.Acquire(ctx, sleepWakeLockTag)
	if err != nil {
		logger.WarnKV(ctx, "Wake lock unavailable", "error", err)
	}

	r.release = release

	if sound == "" {
		sound = r.sound
	}

	if _, err := audio.PlayWithFallback(ctx, r.player, sound, audio.DefaultSound); err != nil {
		logger.ErrorKV(ctx, "Sleep sound unavailable", "error", err)
	}

	r.setVolume(timer.Volume(now))

	snapshot := timer.Snapshot(now)
	r.notifier.StartForeground(ctx, notify.UnitSleep, snapshot.Deadline)

	r.generation++
	generation := r.generation

	go loop(r.ctx, r.interval, func(now time.Time) bool {
		return r.step(generation, now)
	})

	logger.InfoKV(ctx, "Sleep timer started",
		"duration", total, "deadline", snapshot.Deadline, "shutdown_on_finish", timer.ShutdownOnFinish)

	return snapshot, nil
}

// Cancel stops a running sleep timer and releases its resources.
func (r *sleepRunner) Cancel(ctx context.Context) sleep.Snapshot {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.active() {
		r.stop(ctx, "cancelled")
	}

	return r.timer.Snapshot(time.Now())
}

// Snapshot returns the sleep timer as seen now.
func (r *sleepRunner) Snapshot() sleep.Snapshot {
	r.mu.Lock()
	defer r.mu.Unlock()

	return r.timer.Snapshot(time.Now())
}

// Close releases audio and the wake lock without powering the host off.
func (r *sleepRunner) Close(ctx context.Context) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.active() {
		r.stop(ctx, "daemon stopping")
	}
}

func (r *sleepRunner) fade() sleep.Fade {
	return sleep.Fade{Window: r.config.FadeWindow, Max: r.config.MaxVolume}
}

// active reports whether the timer holds resources; the caller holds mu.
func (r *sleepRunner) active() bool {
	state := r.timer.State()

	return state == countdown.Running || state == countdown.Paused
}

// stop resets the timer and releases everything; the caller holds mu.
func (r *sleepRunner) stop(ctx context.Context, reason string) {
	r.generation++
	r.timer.Reset()
	r.releaseAll(ctx)

	logger.InfoKV(ctx, "Sleep timer stopped", "reason", reason)
}

// releaseAll silences playback and drops the wake lock; the caller holds mu.
func (r *sleepRunner) releaseAll(ctx context.Context) {
	r.player.Stop(ctx)
	r.setVolume(0)
	r.release()
	r.release = func() {}
	r.notifier.StopForeground(ctx, notify.UnitSleep)
}

func (r *sleepRunner) setVolume(volume float64) {
	r.player.SetVolume(volume)
	observability.SetSleepVolume(volume)
}

func (r *sleepRunner) step(generation uint64, now time.Time) bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	if generation != r.generation {
		return false
	}

	if !r.timer.Tick(now) {
		r.setVolume(r.timer.Volume(now))
		return true
	}

	r.generation++
	r.releaseAll(r.ctx)
	r.notifier.Finished(r.ctx, notify.UnitSleep)
	observability.RecordCompleted(string(notify.UnitSleep))

	logger.Info(r.ctx, "Sleep timer finished")

	if r.timer.ShutdownOnFinish {
		if err := r.power.Shutdown(r.ctx); err != nil {
			logger.ErrorKV(r.ctx, "Shutdown after sleep timer failed", "error", err)
		}
	}

	return false
}
