// Package timeofday handles the wall-clock "HH:MM" strings used for court
// operating hours and booking intervals. Times are held as minutes since
// midnight so interval math stays integer arithmetic.
package timeofday

import (
	"fmt"
	"time"
)

// Minutes is a time of day expressed as minutes since midnight.
// Valid values are 0 (00:00) through 1440 (24:00, exclusive end of day).
type Minutes int

const (
	// EndOfDay is the exclusive upper bound for an interval end.
	EndOfDay Minutes = 24 * 60
)

// Parse accepts "HH:MM" or "HH:MM:SS" and returns minutes since midnight.
// Seconds are not allowed to be non-zero.
func Parse(s string) (Minutes, error) {
	t, err := time.Parse("15:04", s)
	if err != nil {
		t, err = time.Parse("15:04:05", s)
		if err != nil {
			return 0, fmt.Errorf("invalid time of day %q: expected HH:MM", s)
		}
		if t.Second() != 0 {
			return 0, fmt.Errorf("invalid time of day %q: seconds not supported", s)
		}
	}
	return Minutes(t.Hour()*60 + t.Minute()), nil
}

// String renders the time as "HH:MM".
func (m Minutes) String() string {
	return fmt.Sprintf("%02d:%02d", int(m)/60, int(m)%60)
}

// Valid reports whether m lies within a single day.
func (m Minutes) Valid() bool {
	return m >= 0 && m <= EndOfDay
}

// Hours returns the duration from m to end in fractional hours.
// Used for price computation; callers must ensure m < end.
func Hours(m, end Minutes) float64 {
	return float64(end-m) / 60.0
}

// Overlaps reports whether the half-open intervals [aStart, aEnd) and
// [bStart, bEnd) share at least one instant.
func Overlaps(aStart, aEnd, bStart, bEnd Minutes) bool {
	return aStart < bEnd && bStart < aEnd
}

// ParseDate parses a calendar date in "2006-01-02" form, normalized to UTC.
func ParseDate(s string) (time.Time, error) {
	d, err := time.Parse("2006-01-02", s)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q: expected YYYY-MM-DD", s)
	}
	return d, nil
}

// FormatDate renders a date in "2006-01-02" form.
func FormatDate(d time.Time) string {
	return d.Format("2006-01-02")
}
