// Package scheduling decides which buses and drivers are free for a trip.
//
// A trip occupies its bus and driver over the half-open window
// [departure, departure + route duration). Nothing here performs I/O; callers
// hand in snapshots already loaded from the store.
package scheduling

import (
	"strings"
	"time"
)

const (
	layoutDate  = "2006-01-02"
	layoutClock = "15:04"
)

// TimeWindow is the interval a trip holds its resources for. End is exclusive.
type TimeWindow struct {
	Start time.Time `json:"start"`
	End   time.Time `json:"end"`
}

// Overlaps reports whether two windows intersect. Windows that only touch,
// one ending exactly when the other starts, do not overlap.
func (w TimeWindow) Overlaps(other TimeWindow) bool {
	return w.Start.Before(other.End) && other.Start.Before(w.End)
}

// Duration is End - Start.
func (w TimeWindow) Duration() time.Duration {
	return w.End.Sub(w.Start)
}

// WindowFor builds the window for a departure date (YYYY-MM-DD) and wall-clock
// time (HH:mm) in loc. Negative durations are treated as zero. The second
// return is false when the date or time is missing or cannot be parsed.
func WindowFor(date, clock string, durationMinutes int, loc *time.Location) (TimeWindow, bool) {
	date = strings.TrimSpace(date)
	clock = strings.TrimSpace(clock)
	if date == "" || clock == "" {
		return TimeWindow{}, false
	}
	if loc == nil {
		loc = time.Local
	}
	// departure_date columns come back as full timestamps from some drivers
	if len(date) > len(layoutDate) {
		date = date[:len(layoutDate)]
	}
	// HH:mm:ss from TIME columns
	if len(clock) > len(layoutClock) {
		clock = clock[:len(layoutClock)]
	}

	start, err := time.ParseInLocation(layoutDate+" "+layoutClock, date+" "+clock, loc)
	if err != nil {
		return TimeWindow{}, false
	}
	if durationMinutes < 0 {
		durationMinutes = 0
	}
	return TimeWindow{
		Start: start,
		End:   start.Add(time.Duration(durationMinutes) * time.Minute),
	}, true
}
