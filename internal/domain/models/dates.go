package models

import (
	"fmt"
	"time"
)

// DayLayout is the wire format for dates throughout the API.
const DayLayout = "2006-01-02"

// ParseDay parses a YYYY-MM-DD date into UTC midnight.
func ParseDay(s string) (time.Time, error) {
	t, err := time.Parse(DayLayout, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q: %w", s, err)
	}
	return t.UTC(), nil
}

// DayKey formats a timestamp as its YYYY-MM-DD day key.
func DayKey(t time.Time) string {
	return t.UTC().Format(DayLayout)
}
