package utils

import (
	"fmt"
	"time"
)

const dateLayout = "2006-01-02"

// ParseDate parses a YYYY-MM-DD string.
func ParseDate(value string) (time.Time, error) {
	t, err := time.Parse(dateLayout, value)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q, expected YYYY-MM-DD: %w", value, err)
	}
	return t, nil
}

// DayStartUnix returns 00:00:00 UTC of the given day as unix seconds.
func DayStartUnix(day time.Time) int64 {
	return time.Date(day.Year(), day.Month(), day.Day(), 0, 0, 0, 0, time.UTC).Unix()
}

// DayEndUnix returns 23:59:59 UTC of the given day as unix seconds. A bar
// stamped anywhere inside the day is at or before this cutoff.
func DayEndUnix(day time.Time) int64 {
	return time.Date(day.Year(), day.Month(), day.Day(), 23, 59, 59, 0, time.UTC).Unix()
}

// ParseDateEndUnix maps YYYY-MM-DD to the end-of-day cutoff used for asOf
// and endDate resolution.
func ParseDateEndUnix(value string) (int64, error) {
	day, err := ParseDate(value)
	if err != nil {
		return 0, err
	}
	return DayEndUnix(day), nil
}

// ParseDateStartUnix maps YYYY-MM-DD to the start-of-day boundary used for
// startDate resolution.
func ParseDateStartUnix(value string) (int64, error) {
	day, err := ParseDate(value)
	if err != nil {
		return 0, err
	}
	return DayStartUnix(day), nil
}
