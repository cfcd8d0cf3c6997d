package util

import (
	"strconv"
	"testing"
	"time"
)

var riyadh = time.FixedZone("AST", 3*3600)

func TestParseTimeRFC3339(t *testing.T) {
	got, ok := ParseTime("2024-10-10T10:10:10Z", riyadh)
	if !ok {
		t.Fatalf("expected ok")
	}
	if got.Hour() != 13 || got.Location() != riyadh {
		t.Fatalf("unexpected time %v", got)
	}
}

func TestParseTimeLocalLayout(t *testing.T) {
	got, ok := ParseTime("2024-10-10 09:30", riyadh)
	if !ok {
		t.Fatalf("expected ok")
	}
	if !got.Equal(time.Date(2024, 10, 10, 6, 30, 0, 0, time.UTC)) {
		t.Fatalf("unexpected time %v", got)
	}
}

func TestParseTimeUnix(t *testing.T) {
	ts := time.Date(2024, 10, 10, 10, 10, 10, 0, time.UTC).Unix()
	got, ok := ParseTime(strconv.FormatInt(ts, 10), riyadh)
	if !ok {
		t.Fatalf("expected ok")
	}
	if got.Unix() != ts {
		t.Fatalf("unexpected unix %v", got.Unix())
	}
}

func TestParseDateTimeDefaultsToNow(t *testing.T) {
	now := time.Date(2024, 10, 10, 22, 0, 0, 0, time.UTC)
	got, err := ParseDateTime("", riyadh, now)
	if err != nil {
		t.Fatalf("unexpected error %v", err)
	}
	if !got.Equal(now) || got.Location() != riyadh {
		t.Fatalf("expected now in location, got %v", got)
	}
	if _, err := ParseDateTime("yesterday", riyadh, now); err == nil {
		t.Fatalf("expected error")
	}
}

func TestParseDay(t *testing.T) {
	now := time.Date(2024, 10, 10, 22, 0, 0, 0, time.UTC)
	got, err := ParseDay("", riyadh, now)
	if err != nil {
		t.Fatalf("unexpected error %v", err)
	}
	if got.Format(DayLayout) != "2024-10-11" {
		t.Fatalf("expected local date, got %v", got)
	}

	got, err = ParseDay("2025-03-01", riyadh, now)
	if err != nil || got.Day() != 1 || got.Hour() != 0 {
		t.Fatalf("unexpected day %v err %v", got, err)
	}
	if _, err := ParseDay("03/01/2025", riyadh, now); err == nil {
		t.Fatalf("expected error")
	}
}

func TestNoon(t *testing.T) {
	got := Noon(time.Date(2025, 3, 1, 0, 0, 0, 0, riyadh))
	if got.Hour() != 12 || got.Day() != 1 {
		t.Fatalf("unexpected noon %v", got)
	}
}
