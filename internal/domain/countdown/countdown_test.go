package countdown

import (
	"math"
	"math/rand/v2"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

// start is an arbitrary anchor instant for the tests.
var start = time.Date(2026, time.October, 18, 9, 0, 0, 0, time.UTC) //nolint:gochecknoglobals // Test fixture.

// TestDuration covers the 1:30:45 example and argument validation.
func TestDuration(t *testing.T) {
	t.Parallel()

	d, err := Duration(1, 30, 45)
	require.NoError(t, err)
	require.Equal(t, int64(5445000), d.Milliseconds())

	for _, hms := range [][3]int{{0, 0, 0}, {-1, 0, 0}, {0, 60, 0}, {0, 0, 60}, {100, 0, 0}, {5124096, 0, 0}, {math.MaxInt32, 0, 0}} {
		_, err := Duration(hms[0], hms[1], hms[2])
		require.ErrorIs(t, err, ErrInvalidDuration, hms)
	}

	d, err = Duration(99, 59, 59)
	require.NoError(t, err)
	require.Equal(t, MaxDuration, d)
}

// TestCountdown_Lifecycle walks IDLE → RUNNING → PAUSED → RUNNING → COMPLETED → IDLE.
func TestCountdown_Lifecycle(t *testing.T) {
	t.Parallel()

	c := new(Countdown)
	require.ErrorIs(t, c.Start(start), ErrNotSet)

	require.NoError(t, c.SetHMS(0, 1, 0))
	require.Equal(t, Idle, c.State())
	require.Equal(t, time.Minute, c.Remaining(start))

	require.NoError(t, c.Start(start))
	require.Equal(t, Running, c.State())
	require.Equal(t, start.Add(time.Minute), c.Snapshot(start).Deadline)

	require.False(t, c.Tick(start.Add(20*time.Second)))
	require.Equal(t, 40*time.Second, c.Remaining(start.Add(20*time.Second)))

	require.False(t, c.Pause(start.Add(20*time.Second)))
	require.Equal(t, Paused, c.State())

	// Time spent paused does not count.
	require.Equal(t, 40*time.Second, c.Remaining(start.Add(time.Hour)))
	require.False(t, c.Tick(start.Add(time.Hour)))

	require.ErrorIs(t, c.Set(time.Minute), ErrBusy)

	resume := start.Add(time.Hour)
	require.NoError(t, c.Start(resume))
	require.False(t, c.Tick(resume.Add(39*time.Second)))
	require.True(t, c.Tick(resume.Add(41*time.Second)))
	require.Equal(t, Completed, c.State())
	require.Zero(t, c.Remaining(resume.Add(time.Minute)))

	// Completion is reported once.
	require.False(t, c.Tick(resume.Add(2*time.Minute)))
	require.ErrorIs(t, c.Start(resume), ErrCompleted)

	c.Reset()
	require.Equal(t, Idle, c.State())
	require.Equal(t, time.Minute, c.Remaining(resume))
}

// TestCountdown_NoOps checks transitions that must not change anything.
func TestCountdown_NoOps(t *testing.T) {
	t.Parallel()

	c, err := New(10 * time.Second)
	require.NoError(t, err)

	require.False(t, c.Pause(start))
	require.Equal(t, Idle, c.State())
	require.False(t, c.Tick(start))

	require.NoError(t, c.Start(start))
	require.NoError(t, c.Start(start.Add(5*time.Second)))
	require.Equal(t, 5*time.Second, c.Remaining(start.Add(5*time.Second)))
}

// TestCountdown_PauseAfterDeadlineCompletes reports completion instead of pausing at zero.
func TestCountdown_PauseAfterDeadlineCompletes(t *testing.T) {
	t.Parallel()

	c, err := New(time.Second)
	require.NoError(t, err)
	require.NoError(t, c.Start(start))

	require.True(t, c.Pause(start.Add(2*time.Second)))
	require.Equal(t, Completed, c.State())
}

// TestCountdown_ClampsClockJumps keeps remaining inside [0, total] when the clock goes backwards.
func TestCountdown_ClampsClockJumps(t *testing.T) {
	t.Parallel()

	c, err := New(time.Minute)
	require.NoError(t, err)
	require.NoError(t, c.Start(start))

	require.Equal(t, time.Minute, c.Remaining(start.Add(-time.Hour)))
}

// TestCountdown_Properties drives random tick sequences and checks the invariants.
func TestCountdown_Properties(t *testing.T) {
	t.Parallel()

	rng := rand.New(rand.NewPCG(1, 2)) //nolint:gosec // Deterministic test input.

	for range 200 {
		total := time.Duration(1+rng.IntN(120)) * time.Second
		c, err := New(total)
		require.NoError(t, err)

		now := start
		require.NoError(t, c.Start(now))

		completions := 0

		for range 400 {
			now = now.Add(time.Duration(rng.IntN(1000)) * time.Millisecond)

			if rng.IntN(20) == 0 {
				if c.Pause(now) {
					completions++
				}

				_ = c.Start(now) //nolint:errcheck // ErrCompleted is expected after completion.
			}

			if c.Tick(now) {
				completions++
			}

			remaining := c.Remaining(now)
			require.GreaterOrEqual(t, remaining, time.Duration(0))
			require.LessOrEqual(t, remaining, total)
		}

		require.LessOrEqual(t, completions, 1)

		if c.State() == Completed {
			require.Equal(t, 1, completions)
		}
	}
}

// TestStateNames covers String and ParseState.
func TestStateNames(t *testing.T) {
	t.Parallel()

	for _, s := range []State{Idle, Running, Paused, Completed} {
		parsed, ok := ParseState(s.String())
		require.True(t, ok)
		require.Equal(t, s, parsed)
	}

	_, ok := ParseState("bogus")
	require.False(t, ok)
	require.Equal(t, "State(9)", State(9).String())
}
