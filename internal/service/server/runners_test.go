package server

import (
	"context"
	"testing"
	"testing/synctest"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/oshokin/alarm-clock/internal/config"
	"github.com/oshokin/alarm-clock/internal/domain/countdown"
	"github.com/oshokin/alarm-clock/internal/domain/stopwatch"
	"github.com/oshokin/alarm-clock/internal/platform/audio"
	"github.com/oshokin/alarm-clock/internal/platform/notify"
	"github.com/oshokin/alarm-clock/internal/repository/alarms"
)

// TestCountdownRunner_CompletesOnce counts down, completes exactly once and remembers the duration.
func TestCountdownRunner_CompletesOnce(t *testing.T) {
	t.Parallel()

	synctest.Test(t, func(t *testing.T) {
		ctx, cancel := context.WithCancel(context.Background())
		defer cancel()

		repo := newMemoryRepository()
		notifier := newRecordingNotifier()
		player := audio.NewLogPlayer()
		r := newCountdownRunner(ctx, 100*time.Millisecond, repo, player, notifier, audio.DefaultSound)

		_, err := r.Start(ctx)
		require.ErrorIs(t, err, countdown.ErrNotSet)

		snapshot, err := r.Set(ctx, 90*time.Second)
		require.NoError(t, err)
		require.Equal(t, countdown.Idle, snapshot.State)
		require.Equal(t, "90", repo.setting(alarms.SettingCountdownLast))

		snapshot, err = r.Start(ctx)
		require.NoError(t, err)
		require.Equal(t, countdown.Running, snapshot.State)
		require.True(t, notifier.inForeground(notify.UnitCountdown))

		_, err = r.Set(ctx, time.Minute)
		require.ErrorIs(t, err, countdown.ErrBusy)

		time.Sleep(30 * time.Second)
		synctest.Wait()

		snapshot = r.Pause(ctx)
		require.Equal(t, countdown.Paused, snapshot.State)
		require.Equal(t, time.Minute, snapshot.Remaining)
		require.False(t, notifier.inForeground(notify.UnitCountdown))

		time.Sleep(time.Hour)
		synctest.Wait()
		require.Equal(t, time.Minute, r.Snapshot().Remaining)

		_, err = r.Start(ctx)
		require.NoError(t, err)

		time.Sleep(2 * time.Minute)
		synctest.Wait()

		snapshot = r.Snapshot()
		require.Equal(t, countdown.Completed, snapshot.State)
		require.Zero(t, snapshot.Remaining)
		require.Equal(t, []notify.Unit{notify.UnitCountdown}, notifier.finishedUnits())
		require.True(t, player.Status().Playing)

		_, err = r.Start(ctx)
		require.ErrorIs(t, err, countdown.ErrCompleted)

		snapshot = r.Reset(ctx)
		require.Equal(t, countdown.Idle, snapshot.State)
		require.Equal(t, 90*time.Second, snapshot.Remaining)
		require.False(t, player.Status().Playing)
		require.Len(t, notifier.finishedUnits(), 1)
	})
}

// TestCountdownRunner_RestoresRememberedDuration starts from the stored duration.
func TestCountdownRunner_RestoresRememberedDuration(t *testing.T) {
	t.Parallel()

	synctest.Test(t, func(t *testing.T) {
		ctx, cancel := context.WithCancel(context.Background())
		defer cancel()

		repo := newMemoryRepository()
		require.NoError(t, repo.SetSetting(ctx, alarms.SettingCountdownLast, "300"))

		r := newCountdownRunner(ctx, 100*time.Millisecond, repo, audio.NewLogPlayer(), newRecordingNotifier(), "")
		require.Equal(t, 5*time.Minute, r.Snapshot().Total)

		_, err := r.Start(ctx)
		require.NoError(t, err)

		r.Close(ctx)
	})
}

// TestStopwatchRunner covers laps and the refresh loop.
func TestStopwatchRunner(t *testing.T) {
	t.Parallel()

	synctest.Test(t, func(t *testing.T) {
		ctx, cancel := context.WithCancel(context.Background())
		defer cancel()

		notifier := newRecordingNotifier()
		r := newStopwatchRunner(ctx, 30*time.Millisecond, notifier)

		require.Empty(t, r.Lap(ctx).Laps, "lap while idle is a no-op")

		r.Start(ctx)
		require.True(t, notifier.inForeground(notify.UnitStopwatch))

		time.Sleep(10 * time.Second)
		r.Lap(ctx)

		time.Sleep(5 * time.Second)
		snapshot := r.Lap(ctx)
		require.Len(t, snapshot.Laps, 2)
		require.Equal(t, 15*time.Second, snapshot.Laps[0].Elapsed)
		require.Equal(t, 5*time.Second, snapshot.Laps[0].Split)

		snapshot = r.Pause(ctx)
		require.Equal(t, stopwatch.Paused, snapshot.State)
		require.False(t, notifier.inForeground(notify.UnitStopwatch))

		time.Sleep(time.Minute)
		require.Equal(t, 15*time.Second, r.Snapshot().Elapsed)

		snapshot = r.Reset(ctx)
		require.Equal(t, stopwatch.Idle, snapshot.State)
		require.Zero(t, snapshot.Elapsed)
		require.Empty(t, snapshot.Laps)
	})
}

// sleepFixture bundles a sleep runner with its fakes.
type sleepFixture struct {
	runner   *sleepRunner
	repo     *memoryRepository
	notifier *recordingNotifier
	player   *audio.LogPlayer
	lock     *countingLock
	power    *recordingPower
}

func newSleepFixture(ctx context.Context, shutdown bool) *sleepFixture {
	f := &sleepFixture{
		repo:     newMemoryRepository(),
		notifier: newRecordingNotifier(),
		player:   audio.NewLogPlayer(),
		lock:     new(countingLock),
		power:    new(recordingPower),
	}

	cfg := config.Default().Sleep
	cfg.ShutdownOnFinish = shutdown

	f.runner = newSleepRunner(ctx, &sleepDeps{
		interval: time.Second,
		settings: f.repo,
		player:   f.player,
		notifier: f.notifier,
		lock:     f.lock,
		power:    f.power,
		config:   cfg,
		sound:    audio.DefaultSound,
	})

	return f
}

// TestSleepRunner_FadesAndReleases fades out, releases everything and powers off when asked.
func TestSleepRunner_FadesAndReleases(t *testing.T) {
	t.Parallel()

	synctest.Test(t, func(t *testing.T) {
		ctx, cancel := context.WithCancel(context.Background())
		defer cancel()

		f := newSleepFixture(ctx, true)

		snapshot, err := f.runner.Start(ctx, 2*time.Minute, "", nil)
		require.NoError(t, err)
		require.Equal(t, countdown.Running, snapshot.State)
		require.True(t, snapshot.ShutdownOnFinish)
		require.InDelta(t, 1.0, f.player.Status().Volume, 1e-9)
		require.Equal(t, "120", f.repo.setting(alarms.SettingSleepLast))

		held, _ := f.lock.counts()
		require.Equal(t, 1, held)

		// 15s left of a 30s fade window.
		time.Sleep(105 * time.Second)
		synctest.Wait()
		require.InDelta(t, 0.5, f.player.Status().Volume, 1e-9)

		time.Sleep(20 * time.Second)
		synctest.Wait()

		snapshot = f.runner.Snapshot()
		require.Equal(t, countdown.Completed, snapshot.State)
		require.Zero(t, snapshot.Volume)
		require.False(t, f.player.Status().Playing)
		require.False(t, f.notifier.inForeground(notify.UnitSleep))
		require.Equal(t, []notify.Unit{notify.UnitSleep}, f.notifier.finishedUnits())
		require.Equal(t, 1, f.power.count())

		held, _ = f.lock.counts()
		require.Zero(t, held)
	})
}

// TestSleepRunner_CancelAndClose release resources without powering off.
func TestSleepRunner_CancelAndClose(t *testing.T) {
	t.Parallel()

	synctest.Test(t, func(t *testing.T) {
		ctx, cancel := context.WithCancel(context.Background())
		defer cancel()

		f := newSleepFixture(ctx, true)

		_, err := f.runner.Start(ctx, 0, "", nil)
		require.ErrorIs(t, err, countdown.ErrNotSet, "nothing remembered yet")

		noShutdown := false

		_, err = f.runner.Start(ctx, time.Hour, "", &noShutdown)
		require.NoError(t, err)

		time.Sleep(time.Minute)

		snapshot := f.runner.Cancel(ctx)
		require.Equal(t, countdown.Idle, snapshot.State)
		require.False(t, f.player.Status().Playing)

		held, _ := f.lock.counts()
		require.Zero(t, held)

		// Restarting reuses the last duration.
		snapshot, err = f.runner.Start(ctx, 0, "", nil)
		require.NoError(t, err)
		require.Equal(t, time.Hour, snapshot.Total)

		f.runner.Close(ctx)

		held, acquired := f.lock.counts()
		require.Zero(t, held)
		require.Equal(t, 2, acquired)

		time.Sleep(2 * time.Hour)
		synctest.Wait()
		require.Zero(t, f.power.count())
		require.Empty(t, f.notifier.finishedUnits())
	})
}
