package utils

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/theoremus-urban-solutions/transit-fares/errs"
)

// ParseClock parses a wall-clock time "H:MM" or "HH:MM" (00:00 to 23:59) and
// places it on the calendar day of day, in day's location.
func ParseClock(s string, day time.Time) (time.Time, error) {
	s = strings.TrimSpace(s)
	h, m, ok := strings.Cut(s, ":")
	if !ok {
		return time.Time{}, fmt.Errorf("%w: %q is not in HH:MM format", errs.ErrInvalidTime, s)
	}
	hours, err := strconv.Atoi(h)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: %q is not in HH:MM format", errs.ErrInvalidTime, s)
	}
	minutes, err := strconv.Atoi(m)
	if err != nil || len(m) != 2 {
		return time.Time{}, fmt.Errorf("%w: %q is not in HH:MM format", errs.ErrInvalidTime, s)
	}
	if hours < 0 || hours > 23 || minutes < 0 || minutes > 59 {
		return time.Time{}, fmt.Errorf("%w: %q is outside 00:00-23:59", errs.ErrInvalidTime, s)
	}
	y, mo, d := day.Date()
	return time.Date(y, mo, d, hours, minutes, 0, 0, day.Location()), nil
}

// ParseTimestamp accepts an RFC 3339 timestamp or a wall-clock time, which is
// placed on the day of now.
func ParseTimestamp(s string, now time.Time) (time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return now, nil
	}
	if strings.Contains(s, "T") {
		t, err := time.Parse(time.RFC3339, s)
		if err != nil {
			return time.Time{}, fmt.Errorf("%w: %q is not an RFC 3339 timestamp", errs.ErrInvalidTime, s)
		}
		return t, nil
	}
	return ParseClock(s, now)
}

// FormatClock returns t as HH:MM.
func FormatClock(t time.Time) string {
	if t.IsZero() {
		return "--:--"
	}
	return t.Format("15:04")
}
