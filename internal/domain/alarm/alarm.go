package alarm

import (
	"errors"
	"time"
)

// ErrNotRinging is returned when dismissing or snoozing an alarm that is not ringing.
var ErrNotRinging = errors.New("alarm is not ringing")

// Alarm is a persisted alarm record.
type Alarm struct {
	// ID is assigned by the store on creation.
	ID int64
	// Time is the wall-clock time the alarm rings at.
	Time TimeOfDay
	// Label is a free-form description.
	Label string
	// Enabled alarms are registered with the timer service.
	Enabled bool
	// Vibrate asks the notifier to vibrate while ringing.
	Vibrate bool
	// Repeat holds the repeat days; empty means one-time.
	Repeat Weekdays
	// Sound is the URI of the ringtone; empty means the default sound.
	Sound string

	CreatedAt time.Time
	UpdatedAt time.Time
}

// OneTime reports whether the alarm rings once and is then disabled.
func (a *Alarm) OneTime() bool {
	return a.Repeat.Empty()
}

// NextFire returns the next instant after now at which the alarm rings.
func (a *Alarm) NextFire(now time.Time) time.Time {
	return NextFire(now, a.Time, a.Repeat)
}

// Clone returns a copy of the alarm.
func (a *Alarm) Clone() *Alarm {
	if a == nil {
		return nil
	}

	cloned := *a

	return &cloned
}
