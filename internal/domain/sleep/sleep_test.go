package sleep

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/oshokin/alarm-clock/internal/domain/countdown"
)

// TestFadeVolume checks the linear ramp and its edges.
func TestFadeVolume(t *testing.T) {
	t.Parallel()

	f := Fade{Window: 10 * time.Second, Max: 0.8}

	require.InDelta(t, 0.8, f.Volume(time.Minute), 1e-9)
	require.InDelta(t, 0.8, f.Volume(10*time.Second), 1e-9)
	require.InDelta(t, 0.4, f.Volume(5*time.Second), 1e-9)
	require.InDelta(t, 0.08, f.Volume(time.Second), 1e-9)
	require.Zero(t, f.Volume(0))
	require.Zero(t, f.Volume(-time.Second))

	// No window: full volume until the end.
	require.InDelta(t, 0.8, Fade{Max: 0.8}.Volume(time.Millisecond), 1e-9)
}

// TestFadeVolume_Monotonic ensures volume never rises as the countdown runs down.
func TestFadeVolume_Monotonic(t *testing.T) {
	t.Parallel()

	f := Fade{Window: 30 * time.Second, Max: 1}
	last := f.Volume(time.Minute)

	for remaining := time.Minute; remaining >= 0; remaining -= 250 * time.Millisecond {
		v := f.Volume(remaining)
		require.LessOrEqual(t, v, last)
		require.GreaterOrEqual(t, v, 0.0)

		last = v
	}
}

// TestFadeValidate rejects bad parameters.
func TestFadeValidate(t *testing.T) {
	t.Parallel()

	require.ErrorIs(t, Fade{Max: 0}.Validate(), ErrInvalidVolume)
	require.ErrorIs(t, Fade{Max: 1.1}.Validate(), ErrInvalidVolume)
	require.ErrorIs(t, Fade{Max: 1, Window: -time.Second}.Validate(), ErrInvalidWindow)
	require.NoError(t, Fade{Max: 1}.Validate())

	_, err := New(time.Minute, Fade{Max: 2})
	require.ErrorIs(t, err, ErrInvalidVolume)

	_, err = New(0, Fade{Max: 1})
	require.ErrorIs(t, err, countdown.ErrInvalidDuration)

	unset := Unset(Fade{Window: time.Minute, Max: 0.5})
	require.ErrorIs(t, unset.Start(time.Now()), countdown.ErrNotSet)
	require.InDelta(t, 0.5, unset.Snapshot(time.Now()).Fade.Max, 1e-9)
}

// TestTimer_FadesToZero runs a sleep timer through its window to completion.
func TestTimer_FadesToZero(t *testing.T) {
	t.Parallel()

	start := time.Date(2026, time.October, 18, 23, 0, 0, 0, time.UTC)

	timer, err := New(time.Minute, Fade{Window: 20 * time.Second, Max: 1})
	require.NoError(t, err)
	require.NoError(t, timer.Start(start))

	require.InDelta(t, 1.0, timer.Volume(start.Add(30*time.Second)), 1e-9)
	require.InDelta(t, 0.5, timer.Volume(start.Add(50*time.Second)), 1e-9)

	require.True(t, timer.Tick(start.Add(time.Minute)))

	snapshot := timer.Snapshot(start.Add(time.Minute))
	require.Equal(t, countdown.Completed, snapshot.State)
	require.Zero(t, snapshot.Volume)
	require.Zero(t, snapshot.Remaining)
}
