package alarm

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

// ErrInvalidTime is returned when a time-of-day string matches none of the accepted layouts.
var ErrInvalidTime = errors.New("invalid time of day")

// storageLayout is the canonical "HH:mm" layout.
const storageLayout = "15:04"

// fallbackLayouts are tried in order after storageLayout.
//
//nolint:gochecknoglobals // Read-only lookup table.
var fallbackLayouts = []string{
	"15:04:05",
	"3:04PM",
	"3:04 PM",
	"3:04pm",
	"3:04 pm",
}

// TimeOfDay is a wall-clock time with minute precision.
type TimeOfDay struct {
	Hour   int
	Minute int
}

// NewTimeOfDay validates hour and minute.
func NewTimeOfDay(hour, minute int) (TimeOfDay, error) {
	if hour < 0 || hour > 23 || minute < 0 || minute > 59 {
		return TimeOfDay{}, fmt.Errorf("%02d:%02d: %w", hour, minute, ErrInvalidTime)
	}

	return TimeOfDay{Hour: hour, Minute: minute}, nil
}

// ParseTimeOfDay parses s as "HH:mm", then tries the fallback layouts.
// Seconds in the fallback "15:04:05" layout are dropped.
func ParseTimeOfDay(s string) (TimeOfDay, error) {
	s = strings.TrimSpace(s)

	for _, layout := range append([]string{storageLayout}, fallbackLayouts...) {
		parsed, err := time.Parse(layout, s)
		if err != nil {
			continue
		}

		return TimeOfDay{Hour: parsed.Hour(), Minute: parsed.Minute()}, nil
	}

	return TimeOfDay{}, fmt.Errorf("%q: %w", s, ErrInvalidTime)
}

// String renders the time as zero-padded "HH:mm".
func (t TimeOfDay) String() string {
	return fmt.Sprintf("%02d:%02d", t.Hour, t.Minute)
}

// On returns the instant at this time of day on the date of day, in day's location.
func (t TimeOfDay) On(day time.Time) time.Time {
	year, month, date := day.Date()

	return time.Date(year, month, date, t.Hour, t.Minute, 0, 0, day.Location())
}
