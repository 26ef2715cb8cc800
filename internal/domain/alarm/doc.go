// Package alarm contains the alarm domain model.
//
// It defines Alarm, the zero-padded 24-hour TimeOfDay stored with it, the
// Weekdays repeat set (1=Monday..7=Sunday) and NextFire, which computes the
// next instant an alarm should ring.
package alarm
