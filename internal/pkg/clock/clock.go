// Package clock handles the wall-clock "HH:MM" strings used by availability
// windows and bookings. All comparisons happen in minutes since midnight.
package clock

import (
	"errors"
	"fmt"
	"time"
)

const layout = "15:04"

var ErrInvalidClock = errors.New("invalid time, expected zero-padded 24-hour HH:MM")

// ParseMinutes parses a zero-padded 24-hour "HH:MM" string into minutes since
// midnight (e.g. "10:30" -> 630).
func ParseMinutes(s string) (int, error) {
	// time.Parse accepts one-digit hours, so enforce the shape first.
	if len(s) != 5 || s[2] != ':' {
		return 0, fmt.Errorf("%w: %q", ErrInvalidClock, s)
	}
	t, err := time.Parse(layout, s)
	if err != nil {
		return 0, fmt.Errorf("%w: %q", ErrInvalidClock, s)
	}
	return t.Hour()*60 + t.Minute(), nil
}

// FormatMinutes renders minutes since midnight back to zero-padded "HH:MM".
func FormatMinutes(m int) string {
	return fmt.Sprintf("%02d:%02d", m/60, m%60)
}

// Overlaps reports whether the half-open intervals [aStart, aEnd) and
// [bStart, bEnd) share at least one minute. Back-to-back intervals
// (aEnd == bStart) do not overlap.
func Overlaps(aStart, aEnd, bStart, bEnd int) bool {
	return aStart < bEnd && bStart < aEnd
}
