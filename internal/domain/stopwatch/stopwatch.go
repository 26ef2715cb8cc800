// Package stopwatch implements the stopwatch state machine with lap capture.
package stopwatch

import (
	"fmt"
	"time"
)

// State is the lifecycle state of a stopwatch.
type State int

// Stopwatch states.
const (
	Idle State = iota
	Running
	Paused
)

// String returns the lower-case state name.
func (s State) String() string {
	switch s {
	case Idle:
		return "idle"
	case Running:
		return "running"
	case Paused:
		return "paused"
	default:
		return fmt.Sprintf("State(%d)", int(s))
	}
}

// Lap is one captured lap.
type Lap struct {
	// Number counts laps from 1.
	Number int
	// Elapsed is the stopwatch reading when the lap was captured.
	Elapsed time.Duration
	// Split is the time since the previous lap.
	Split time.Duration
}

// Snapshot is a point-in-time copy of a stopwatch. Laps are most recent first.
type Snapshot struct {
	State   State
	Elapsed time.Duration
	Laps    []Lap
}

// Stopwatch counts up while running. The zero value is idle with no laps.
type Stopwatch struct {
	state State
	// accumulated is the elapsed time banked before the current run.
	accumulated time.Duration
	anchor      time.Time
	// elapsed is the highest reading observed; it keeps readings monotonic.
	elapsed time.Duration
	// laps are stored most recent first.
	laps []Lap
}

// Start starts an idle stopwatch or resumes a paused one; it is a no-op while running.
func (s *Stopwatch) Start(now time.Time) {
	if s.state == Running {
		return
	}

	s.state = Running
	s.anchor = now
}

// Pause banks the elapsed time of a running stopwatch; it is a no-op otherwise.
func (s *Stopwatch) Pause(now time.Time) {
	if s.state != Running {
		return
	}

	s.accumulated = s.Tick(now)
	s.state = Paused
}

// Lap records the current reading at the head of the lap list.
// It is permitted only while running and reports whether a lap was recorded.
func (s *Stopwatch) Lap(now time.Time) bool {
	if s.state != Running {
		return false
	}

	elapsed := s.Tick(now)

	var previous time.Duration
	if len(s.laps) > 0 {
		previous = s.laps[0].Elapsed
	}

	lap := Lap{
		Number:  len(s.laps) + 1,
		Elapsed: elapsed,
		Split:   elapsed - previous,
	}

	s.laps = append([]Lap{lap}, s.laps...)

	return true
}

// Reset returns to idle with zero elapsed time and no laps.
func (s *Stopwatch) Reset() {
	*s = Stopwatch{}
}

// Tick refreshes and returns the reading. While running the reading never decreases.
func (s *Stopwatch) Tick(now time.Time) time.Duration {
	s.elapsed = s.Elapsed(now)

	return s.elapsed
}

// Elapsed returns the reading at now without updating the stopwatch.
func (s *Stopwatch) Elapsed(now time.Time) time.Duration {
	if s.state != Running {
		return s.accumulated
	}

	run := now.Sub(s.anchor)
	if run < 0 {
		run = 0
	}

	return max(s.accumulated+run, s.elapsed)
}

// State returns the lifecycle state.
func (s *Stopwatch) State() State {
	return s.state
}

// Snapshot returns a copy of the stopwatch as seen at now.
func (s *Stopwatch) Snapshot(now time.Time) Snapshot {
	laps := make([]Lap, len(s.laps))
	copy(laps, s.laps)

	return Snapshot{
		State:   s.state,
		Elapsed: s.Elapsed(now),
		Laps:    laps,
	}
}
