package alarm

import "time"

// daysPerWeek bounds the search for a matching repeat day.
const daysPerWeek = 7

// NextFire returns the first instant strictly after now that falls on tod and,
// when days is non-empty, on one of days. With an empty set the result is
// today at tod, or tomorrow if that has already passed. An instant equal to
// now is never returned so a just-fired alarm cannot fire again immediately.
//
// Dates are advanced with wall-clock arithmetic in now's location, so the
// alarm keeps its local time across DST changes.
func NextFire(now time.Time, tod TimeOfDay, days Weekdays) time.Time {
	today := tod.On(now)

	if days.Empty() {
		if today.After(now) {
			return today
		}

		return tod.On(now.AddDate(0, 0, 1))
	}

	// Offset 7 is the same weekday next week.
	for offset := 0; offset <= daysPerWeek; offset++ {
		candidate := tod.On(now.AddDate(0, 0, offset))
		if candidate.After(now) && days.Contains(WeekdayOf(candidate.Weekday())) {
			return candidate
		}
	}

	// Unreachable for a non-empty set.
	return tod.On(now.AddDate(0, 0, 1))
}
