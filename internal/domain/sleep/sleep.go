// Package sleep models the sleep timer: a countdown whose output volume
// ramps linearly to zero over a trailing fade window.
package sleep

import (
	"errors"
	"time"

	"github.com/oshokin/alarm-clock/internal/domain/countdown"
)

var (
	// ErrInvalidVolume is returned for a maximum volume outside (0, 1].
	ErrInvalidVolume = errors.New("max volume must be in (0, 1]")
	// ErrInvalidWindow is returned for a negative fade window.
	ErrInvalidWindow = errors.New("fade window must not be negative")
)

// Fade describes the linear volume ramp at the end of a sleep timer.
type Fade struct {
	// Window is the trailing part of the countdown during which volume falls.
	Window time.Duration
	// Max is the volume outside the window.
	Max float64
}

// Validate checks the fade parameters.
func (f Fade) Validate() error {
	if f.Max <= 0 || f.Max > 1 {
		return ErrInvalidVolume
	}

	if f.Window < 0 {
		return ErrInvalidWindow
	}

	return nil
}

// Volume returns the output volume for the given remaining time:
// Max while remaining exceeds the window, then Max·remaining/Window, and 0 at zero.
func (f Fade) Volume(remaining time.Duration) float64 {
	switch {
	case remaining <= 0:
		return 0
	case remaining > f.Window:
		return f.Max
	default:
		return f.Max * float64(remaining) / float64(f.Window)
	}
}

// Snapshot is a point-in-time copy of a sleep timer.
type Snapshot struct {
	countdown.Snapshot

	Fade             Fade
	Volume           float64
	ShutdownOnFinish bool
}

// Timer is a sleep countdown with a fade.
type Timer struct {
	countdown.Countdown

	// ShutdownOnFinish powers the host off when the timer completes.
	ShutdownOnFinish bool

	fade Fade
}

// New returns an idle sleep timer.
func New(total time.Duration, fade Fade) (*Timer, error) {
	if err := fade.Validate(); err != nil {
		return nil, err
	}

	t := &Timer{fade: fade}
	if err := t.Set(total); err != nil {
		return nil, err
	}

	return t, nil
}

// Unset returns an idle timer with no duration yet; Start fails until one is set.
func Unset(fade Fade) *Timer {
	return &Timer{fade: fade}
}

// Volume returns the output volume at now.
func (t *Timer) Volume(now time.Time) float64 {
	if t.State() == countdown.Completed {
		return 0
	}

	return t.fade.Volume(t.Remaining(now))
}

// Snapshot returns a copy of the timer as seen at now.
func (t *Timer) Snapshot(now time.Time) Snapshot {
	return Snapshot{
		Snapshot:         t.Countdown.Snapshot(now),
		Fade:             t.fade,
		Volume:           t.Volume(now),
		ShutdownOnFinish: t.ShutdownOnFinish,
	}
}
