// Package notify defines the user-facing notification surface of the daemon.
package notify

import (
	"context"
	"time"

	"github.com/oshokin/alarm-clock/internal/logger"
)

// Unit names a component that can hold a foreground display.
type Unit string

// Units owning a foreground display.
const (
	UnitAlarm     Unit = "alarm"
	UnitCountdown Unit = "countdown"
	UnitStopwatch Unit = "stopwatch"
	UnitSleep     Unit = "sleep"
)

// Ringing describes an alarm that is ringing.
type Ringing struct {
	AlarmID int64
	Label   string
	Time    string
	Sound   string
	Vibrate bool
}

// Notifier shows ongoing activity and one-off events to the user.
type Notifier interface {
	// StartForeground shows an ongoing display for unit until StopForeground.
	// A zero deadline means the activity has no end time.
	StartForeground(ctx context.Context, unit Unit, deadline time.Time)
	// StopForeground removes the ongoing display of unit.
	StopForeground(ctx context.Context, unit Unit)
	// AlarmRinging reports a ringing alarm.
	AlarmRinging(ctx context.Context, ringing Ringing)
	// Vibrate starts the vibration pattern of a ringing alarm.
	Vibrate(ctx context.Context) error
	// Finished reports that unit has run to completion.
	Finished(ctx context.Context, unit Unit)
}

// Log is a Notifier writing every event to the logger.
type Log struct{}

// StartForeground implements Notifier.
func (Log) StartForeground(ctx context.Context, unit Unit, deadline time.Time) {
	if deadline.IsZero() {
		logger.InfoKV(ctx, "Foreground display started", "unit", unit)
		return
	}

	logger.InfoKV(ctx, "Foreground display started", "unit", unit, "until", deadline.Format(time.RFC3339))
}

// StopForeground implements Notifier.
func (Log) StopForeground(ctx context.Context, unit Unit) {
	logger.InfoKV(ctx, "Foreground display stopped", "unit", unit)
}

// AlarmRinging implements Notifier.
func (Log) AlarmRinging(ctx context.Context, ringing Ringing) {
	logger.InfoKV(ctx, "Alarm ringing",
		"alarm_id", ringing.AlarmID,
		"label", ringing.Label,
		"time", ringing.Time,
		"sound", ringing.Sound,
		"vibrate", ringing.Vibrate,
	)
}

// Vibrate implements Notifier.
func (Log) Vibrate(ctx context.Context) error {
	logger.Info(ctx, "Vibration started")

	return nil
}

// Finished implements Notifier.
func (Log) Finished(ctx context.Context, unit Unit) {
	logger.InfoKV(ctx, "Finished", "unit", unit)
}
