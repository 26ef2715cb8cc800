package alarm

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"
)

// Weekday numbers days from Monday=1 to Sunday=7.
type Weekday int

// Days of the week.
const (
	Monday Weekday = iota + 1
	Tuesday
	Wednesday
	Thursday
	Friday
	Saturday
	Sunday
)

// ErrInvalidWeekday is returned for day numbers or names outside Monday..Sunday.
var ErrInvalidWeekday = errors.New("invalid weekday")

//nolint:gochecknoglobals // Read-only lookup table.
var weekdayNames = [...]string{"", "Mon", "Tue", "Wed", "Thu", "Fri", "Sat", "Sun"}

// WeekdayOf converts a time.Weekday (Sunday=0) to a Weekday (Sunday=7).
func WeekdayOf(d time.Weekday) Weekday {
	if d == time.Sunday {
		return Sunday
	}

	return Weekday(d)
}

// Valid reports whether w is within Monday..Sunday.
func (w Weekday) Valid() bool {
	return w >= Monday && w <= Sunday
}

// String returns the three-letter day name.
func (w Weekday) String() string {
	if !w.Valid() {
		return "Weekday(" + strconv.Itoa(int(w)) + ")"
	}

	return weekdayNames[w]
}

// Weekdays is a set of repeat days. The zero value is the empty set, i.e. a one-time alarm.
type Weekdays uint8

// NewWeekdays builds a set from days.
func NewWeekdays(days ...Weekday) (Weekdays, error) {
	var set Weekdays

	for _, d := range days {
		if !d.Valid() {
			return 0, fmt.Errorf("%d: %w", d, ErrInvalidWeekday)
		}

		set |= 1 << (d - 1)
	}

	return set, nil
}

// ParseWeekdays parses a comma separated list of day numbers (1..7) or names ("mon", "Tuesday").
// An empty string yields the empty set.
func ParseWeekdays(s string) (Weekdays, error) {
	var days []Weekday

	for _, field := range strings.Split(s, ",") {
		field = strings.TrimSpace(field)
		if field == "" {
			continue
		}

		day, err := parseWeekday(field)
		if err != nil {
			return 0, err
		}

		days = append(days, day)
	}

	return NewWeekdays(days...)
}

// parseWeekday accepts a day number or an English day name of at least three letters.
func parseWeekday(s string) (Weekday, error) {
	if n, err := strconv.Atoi(s); err == nil {
		return Weekday(n), nil
	}

	lower := strings.ToLower(s)
	if len(lower) >= 3 {
		for d := Monday; d <= Sunday; d++ {
			full := strings.ToLower(time.Weekday(int(d) % 7).String())
			if strings.HasPrefix(full, lower) {
				return d, nil
			}
		}
	}

	return 0, fmt.Errorf("%q: %w", s, ErrInvalidWeekday)
}

// Empty reports whether the set has no days.
func (w Weekdays) Empty() bool {
	return w == 0
}

// Contains reports whether d is in the set.
func (w Weekdays) Contains(d Weekday) bool {
	return d.Valid() && w&(1<<(d-1)) != 0
}

// Days returns the days in the set from Monday to Sunday.
func (w Weekdays) Days() []Weekday {
	var days []Weekday

	for d := Monday; d <= Sunday; d++ {
		if w.Contains(d) {
			days = append(days, d)
		}
	}

	return days
}

// Encode renders the set as day numbers, e.g. "1,3,5". The empty set encodes to "".
func (w Weekdays) Encode() string {
	days := w.Days()
	parts := make([]string, 0, len(days))

	for _, d := range days {
		parts = append(parts, strconv.Itoa(int(d)))
	}

	return strings.Join(parts, ",")
}

// String renders the set as day names, or "once" when empty.
func (w Weekdays) String() string {
	if w.Empty() {
		return "once"
	}

	days := w.Days()
	parts := make([]string, 0, len(days))

	for _, d := range days {
		parts = append(parts, d.String())
	}

	return strings.Join(parts, ",")
}
