package utils

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

const (
	layoutDate  = "2006-01-02"
	layoutClock = "15:04"
)

// FormatDate formats t as YYYY-MM-DD in loc.
func FormatDate(t time.Time, loc *time.Location) string {
	if loc == nil {
		loc = time.Local
	}
	return t.In(loc).Format(layoutDate)
}

// NormalizeClock turns user-entered departure times into HH:mm.
// "8" -> "08:00", "8:5" -> "08:05", "08:30:00" -> "08:30".
func NormalizeClock(s string) (string, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return "", fmt.Errorf("empty time")
	}

	parts := strings.Split(s, ":")
	if len(parts) > 3 {
		return "", fmt.Errorf("invalid time %q", s)
	}
	hour, err := strconv.Atoi(parts[0])
	if err != nil || hour < 0 || hour > 23 {
		return "", fmt.Errorf("invalid hour in %q", s)
	}
	minute := 0
	if len(parts) >= 2 {
		minute, err = strconv.Atoi(parts[1])
		if err != nil || minute < 0 || minute > 59 {
			return "", fmt.Errorf("invalid minute in %q", s)
		}
	}
	if len(parts) == 3 {
		if sec, err := strconv.Atoi(parts[2]); err != nil || sec < 0 || sec > 59 {
			return "", fmt.Errorf("invalid second in %q", s)
		}
	}
	return fmt.Sprintf("%02d:%02d", hour, minute), nil
}

// NormalizeDate accepts YYYY-MM-DD or an RFC 3339 timestamp and returns YYYY-MM-DD.
func NormalizeDate(s string) (string, error) {
	s = strings.TrimSpace(s)
	if t, err := time.Parse(layoutDate, s); err == nil {
		return t.Format(layoutDate), nil
	}
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t.Format(layoutDate), nil
	}
	return "", fmt.Errorf("invalid date %q", s)
}
