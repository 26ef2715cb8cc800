// Package worldclock reports the current time in a list of IANA zones.
package worldclock

import (
	"fmt"
	"time"
	_ "time/tzdata" // Zone data for hosts without a zoneinfo database.
)

// Entry is the time in one zone.
type Entry struct {
	Zone         string
	Abbreviation string
	Time         time.Time
	// Offset is the zone's offset from UTC at Time.
	Offset time.Duration
}

// Resolve loads every zone, failing on the first unknown name.
func Resolve(zones []string) ([]*time.Location, error) {
	locations := make([]*time.Location, 0, len(zones))

	for _, zone := range zones {
		location, err := time.LoadLocation(zone)
		if err != nil {
			return nil, fmt.Errorf("load zone %q: %w", zone, err)
		}

		locations = append(locations, location)
	}

	return locations, nil
}

// At returns now as seen in each location, in order.
func At(now time.Time, locations []*time.Location) []Entry {
	entries := make([]Entry, 0, len(locations))

	for _, location := range locations {
		local := now.In(location)
		abbreviation, offset := local.Zone()

		entries = append(entries, Entry{
			Zone:         location.String(),
			Abbreviation: abbreviation,
			Time:         local,
			Offset:       time.Duration(offset) * time.Second,
		})
	}

	return entries
}
