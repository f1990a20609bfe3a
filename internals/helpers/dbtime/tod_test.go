// file: internals/helpers/dbtime/tod_test.go
package dbtime

import (
	"testing"
	"time"
)

func TestParseAndRender(t *testing.T) {
	tod, err := Parse("08:30")
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if tod.MinutesFromMidnight() != 510 {
		t.Errorf("minutes = %d, want 510", tod.MinutesFromMidnight())
	}
	if tod.HHMM() != "08:30" {
		t.Errorf("HHMM = %s, want 08:30", tod.HHMM())
	}

	if _, err := Parse("8h30"); err == nil {
		t.Error("Parse accepted a malformed time")
	}
}

func TestFromMinutesRoundTrip(t *testing.T) {
	for _, m := range []int{0, 510, 750, 869, 870, 1439} {
		if got := FromMinutes(m).MinutesFromMidnight(); got != m {
			t.Errorf("FromMinutes(%d) round-trips to %d", m, got)
		}
	}
}

func TestScanValue(t *testing.T) {
	tod, _ := Parse("14:45")
	v, err := tod.Value()
	if err != nil {
		t.Fatalf("Value: %v", err)
	}
	if v != "14:45:00" {
		t.Errorf("Value = %v, want 14:45:00", v)
	}

	var back Tod
	if err := back.Scan("14:45:00"); err != nil {
		t.Fatalf("Scan string: %v", err)
	}
	if back.MinutesFromMidnight() != tod.MinutesFromMidnight() {
		t.Errorf("scan round-trip lost the time: %s", back.HHMM())
	}

	var fromTime Tod
	if err := fromTime.Scan(time.Date(0, 1, 1, 9, 15, 0, 0, time.UTC)); err != nil {
		t.Fatalf("Scan time.Time: %v", err)
	}
	if fromTime.HHMM() != "09:15" {
		t.Errorf("scan from time.Time = %s, want 09:15", fromTime.HHMM())
	}
}

func TestDateOnly(t *testing.T) {
	loc := time.FixedZone("UTC+3", 3*3600)
	in := time.Date(2026, 6, 10, 23, 45, 0, 0, loc)
	got := DateOnly(in)

	want := time.Date(2026, 6, 10, 0, 0, 0, 0, time.UTC)
	if !got.Equal(want) {
		t.Errorf("DateOnly = %v, want %v", got, want)
	}
}
