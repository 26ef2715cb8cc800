package pb

import "time"

// Empty is the request or response of calls without parameters.
type Empty struct{}

// Alarm is an alarm record.
type Alarm struct {
	ID int64
	// Time is the zero-padded "HH:mm" time of day.
	Time    string
	Label   string
	Enabled bool
	Vibrate bool
	// Repeat holds weekdays 1 (Monday) to 7 (Sunday); empty for a one-time alarm.
	Repeat    []int32
	Sound     string
	CreatedAt time.Time
	UpdatedAt time.Time
	// NextFire is set for enabled alarms.
	NextFire time.Time
	Ringing  bool
}

// GetID returns the alarm id of a possibly nil message.
func (a *Alarm) GetID() int64 {
	if a == nil {
		return 0
	}

	return a.ID
}

// AlarmRequest addresses one alarm.
type AlarmRequest struct {
	ID int64
}

// ListAlarmsResponse carries every alarm ordered by time of day.
type ListAlarmsResponse struct {
	Alarms []*Alarm
}

// SaveAlarmRequest creates or updates an alarm.
type SaveAlarmRequest struct {
	Alarm *Alarm
}

// SetAlarmEnabledRequest enables or disables an alarm.
type SetAlarmEnabledRequest struct {
	ID      int64
	Enabled bool
}

// NextAlarmResponse reports the enabled alarm firing soonest.
type NextAlarmResponse struct {
	// Alarm is nil when no alarm is enabled.
	Alarm *Alarm
	At    time.Time
}

// SnoozeAlarmRequest snoozes a ringing alarm.
type SnoozeAlarmRequest struct {
	ID int64
	// Minutes overrides the configured snooze length when positive.
	Minutes int32
}

// SnoozeAlarmResponse reports when a snoozed alarm rings again.
type SnoozeAlarmResponse struct {
	ID int64
	At time.Time
}

// SetTimerRequest sets the countdown duration.
type SetTimerRequest struct {
	Hours   int32
	Minutes int32
	Seconds int32
}

// TimerState is a countdown snapshot.
type TimerState struct {
	State           string
	TotalMillis     int64
	RemainingMillis int64
	Deadline        time.Time
}

// Lap is one stopwatch lap.
type Lap struct {
	Number        int32
	ElapsedMillis int64
	SplitMillis   int64
}

// StopwatchState is a stopwatch snapshot; laps are most recent first.
type StopwatchState struct {
	State         string
	ElapsedMillis int64
	Laps          []*Lap
}

// StartSleepTimerRequest starts the sleep timer.
type StartSleepTimerRequest struct {
	// DurationMillis zero reuses the last sleep duration.
	DurationMillis int64
	// Sound zero plays the configured default.
	Sound string
	// ShutdownOnFinish overrides the configured behaviour when set.
	ShutdownOnFinish *bool
}

// SleepTimerState is a sleep timer snapshot.
type SleepTimerState struct {
	Timer            *TimerState
	Volume           float64
	MaxVolume        float64
	FadeWindowMillis int64
	ShutdownOnFinish bool
}

// WorldClockRequest lists zones to report; empty uses the configured ones.
type WorldClockRequest struct {
	Zones []string
}

// ZoneTime is the current time in one zone.
type ZoneTime struct {
	Zone          string
	Abbreviation  string
	Time          time.Time
	OffsetSeconds int32
}

// WorldClockResponse carries one entry per requested zone.
type WorldClockResponse struct {
	Zones []*ZoneTime
}
