package countdown

import (
	"errors"
	"fmt"
	"time"
)

// State is the lifecycle state of a countdown.
type State int

// Countdown states.
const (
	Idle State = iota
	Running
	Paused
	Completed
)

// MaxDuration is the longest countdown that can be set.
const MaxDuration = maxHours*time.Hour + 59*time.Minute + 59*time.Second

const maxHours = 99

var (
	// ErrInvalidDuration is returned for zero, negative or oversized durations.
	ErrInvalidDuration = errors.New("invalid countdown duration")
	// ErrNotSet is returned when starting a countdown with no duration.
	ErrNotSet = errors.New("countdown duration is not set")
	// ErrBusy is returned when changing the duration of a running or paused countdown.
	ErrBusy = errors.New("countdown is in progress")
	// ErrCompleted is returned when starting a completed countdown before a reset.
	ErrCompleted = errors.New("countdown has completed")
)

//nolint:gochecknoglobals // Read-only lookup table.
var stateNames = map[State]string{
	Idle:      "idle",
	Running:   "running",
	Paused:    "paused",
	Completed: "completed",
}

// String returns the lower-case state name.
func (s State) String() string {
	if name, ok := stateNames[s]; ok {
		return name
	}

	return fmt.Sprintf("State(%d)", int(s))
}

// ParseState converts a state name back to a State.
func ParseState(s string) (State, bool) {
	for state, name := range stateNames {
		if name == s {
			return state, true
		}
	}

	return Idle, false
}

// Duration converts hours, minutes and seconds to a countdown duration.
func Duration(hours, minutes, seconds int) (time.Duration, error) {
	if hours < 0 || hours > maxHours || minutes < 0 || minutes > 59 || seconds < 0 || seconds > 59 {
		return 0, fmt.Errorf("%d:%d:%d: %w", hours, minutes, seconds, ErrInvalidDuration)
	}

	total := time.Duration(hours)*time.Hour + time.Duration(minutes)*time.Minute + time.Duration(seconds)*time.Second
	if err := validate(total); err != nil {
		return 0, err
	}

	return total, nil
}

func validate(total time.Duration) error {
	if total <= 0 || total > MaxDuration {
		return fmt.Errorf("%s: %w", total, ErrInvalidDuration)
	}

	return nil
}

// Snapshot is a point-in-time copy of a countdown.
type Snapshot struct {
	State     State
	Total     time.Duration
	Remaining time.Duration
	// Deadline is when a running countdown reaches zero; zero otherwise.
	Deadline time.Time
}

// Countdown is a count-down timer. The zero value is an idle countdown with no duration.
type Countdown struct {
	state State
	total time.Duration
	// remaining is the value at anchor while running, the live value otherwise.
	remaining time.Duration
	anchor    time.Time
}

// New returns an idle countdown set to total.
func New(total time.Duration) (*Countdown, error) {
	c := new(Countdown)
	if err := c.Set(total); err != nil {
		return nil, err
	}

	return c, nil
}

// Set changes the duration of an idle or completed countdown and makes it idle.
func (c *Countdown) Set(total time.Duration) error {
	if err := validate(total); err != nil {
		return err
	}

	if c.state == Running || c.state == Paused {
		return ErrBusy
	}

	c.state = Idle
	c.total = total
	c.remaining = total

	return nil
}

// SetHMS is Set with the duration given as hours, minutes and seconds.
func (c *Countdown) SetHMS(hours, minutes, seconds int) error {
	total, err := Duration(hours, minutes, seconds)
	if err != nil {
		return err
	}

	return c.Set(total)
}

// Start runs an idle countdown from its total or resumes a paused one.
// Starting a running countdown is a no-op.
func (c *Countdown) Start(now time.Time) error {
	switch c.state {
	case Running:
		return nil
	case Completed:
		return ErrCompleted
	case Idle:
		if c.total <= 0 {
			return ErrNotSet
		}

		c.remaining = c.total
	case Paused:
	}

	c.state = Running
	c.anchor = now

	return nil
}

// Pause freezes a running countdown. It reports whether the countdown completed
// before it could be paused; pausing in any other state is a no-op.
func (c *Countdown) Pause(now time.Time) (completed bool) {
	if c.state != Running {
		return false
	}

	if c.Tick(now) {
		return true
	}

	c.remaining = c.remainingAt(now)
	c.state = Paused

	return false
}

// Reset returns the countdown to idle with its full duration.
func (c *Countdown) Reset() {
	c.state = Idle
	c.remaining = c.total
	c.anchor = time.Time{}
}

// Tick recomputes the remaining time of a running countdown. It returns true
// exactly once: on the tick where the countdown reaches zero and completes.
func (c *Countdown) Tick(now time.Time) bool {
	if c.state != Running {
		return false
	}

	if c.remainingAt(now) > 0 {
		return false
	}

	c.state = Completed
	c.remaining = 0
	c.anchor = time.Time{}

	return true
}

// State returns the lifecycle state.
func (c *Countdown) State() State {
	return c.state
}

// Total returns the configured duration.
func (c *Countdown) Total() time.Duration {
	return c.total
}

// Remaining returns the time left at now, clamped to [0, Total].
func (c *Countdown) Remaining(now time.Time) time.Duration {
	if c.state != Running {
		return c.remaining
	}

	return c.remainingAt(now)
}

// Snapshot returns a copy of the countdown as seen at now.
func (c *Countdown) Snapshot(now time.Time) Snapshot {
	snapshot := Snapshot{
		State:     c.state,
		Total:     c.total,
		Remaining: c.Remaining(now),
	}

	if c.state == Running {
		snapshot.Deadline = c.anchor.Add(c.remaining)
	}

	return snapshot
}

// remainingAt computes the live remaining time from the anchor.
func (c *Countdown) remainingAt(now time.Time) time.Duration {
	left := c.remaining - now.Sub(c.anchor)

	switch {
	case left < 0:
		return 0
	case left > c.total:
		return c.total
	default:
		return left
	}
}
