package http

import (
	"time"

	xutil "AstroTrade/pkg/util"
)

// ParseDay parses a YYYY-MM-DD query value in loc; empty means today.
func ParseDay(s string, loc *time.Location) (time.Time, error) {
	return xutil.ParseDay(s, loc, time.Now())
}

// ParseDateTime parses an instant query value in loc; empty means now.
func ParseDateTime(s string, loc *time.Location) (time.Time, error) {
	return xutil.ParseDateTime(s, loc, time.Now())
}
