package util

import (
	"fmt"
	"strconv"
	"time"
)

// DayLayout is the calendar-date format accepted and rendered by the API.
const DayLayout = "2006-01-02"

// DateTimeLayout is the local wall-clock format accepted by the API.
const DateTimeLayout = "2006-01-02 15:04"

// ParseTime tries RFC3339, the local wall-clock layout in loc, and unix
// seconds. Returns (t, true) if any worked.
func ParseTime(s string, loc *time.Location) (time.Time, bool) {
	if s == "" {
		return time.Time{}, false
	}
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t.In(loc), true
	}
	if t, err := time.ParseInLocation(DateTimeLayout, s, loc); err == nil {
		return t, true
	}
	if ts, err := strconv.ParseInt(s, 10, 64); err == nil && ts > 0 {
		return time.Unix(ts, 0).In(loc), true
	}
	return time.Time{}, false
}

// ParseDateTime parses s with ParseTime. An empty s yields now in loc.
func ParseDateTime(s string, loc *time.Location, now time.Time) (time.Time, error) {
	if s == "" {
		return now.In(loc), nil
	}
	t, ok := ParseTime(s, loc)
	if !ok {
		return time.Time{}, fmt.Errorf("invalid time %q", s)
	}
	return t, nil
}

// ParseDay parses a calendar date in loc. An empty s yields today in loc.
func ParseDay(s string, loc *time.Location, now time.Time) (time.Time, error) {
	if s == "" {
		y, m, d := now.In(loc).Date()
		return time.Date(y, m, d, 0, 0, 0, 0, loc), nil
	}
	t, err := time.ParseInLocation(DayLayout, s, loc)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q: %w", s, err)
	}
	return t, nil
}

// Noon returns 12:00 on day's calendar date in day's location.
func Noon(day time.Time) time.Time {
	y, m, d := day.Date()
	return time.Date(y, m, d, 12, 0, 0, 0, day.Location())
}
