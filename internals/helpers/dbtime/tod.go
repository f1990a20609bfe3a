// file: internals/helpers/dbtime/tod.go
package dbtime

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"strings"
	"time"
)

// Tod maps a TIME column (no date, no zone). Soutenance start times are
// stored this way; all slot arithmetic goes through MinutesFromMidnight.
type Tod struct{ time.Time }

// From builds a Tod from a time.Time, keeping only HH:mm:ss.
func From(t time.Time) Tod {
	return Tod{
		Time: time.Date(0, 1, 1, t.Hour(), t.Minute(), t.Second(), 0, time.UTC),
	}
}

// FromMinutes builds a Tod from minutes since midnight.
func FromMinutes(m int) Tod {
	return Tod{
		Time: time.Date(0, 1, 1, m/60, m%60, 0, 0, time.UTC),
	}
}

// Parse builds a Tod from "HH:mm[:ss]".
func Parse(s string) (Tod, error) {
	var tt Tod
	return tt, tt.parse(s)
}

// MinutesFromMidnight ignores seconds; slots are whole minutes.
func (t Tod) MinutesFromMidnight() int {
	return t.Hour()*60 + t.Minute()
}

// HHMM renders "08:30" style, the wire format used by every endpoint.
func (t Tod) HHMM() string {
	return t.Format("15:04")
}

// Scan accepts time.Time or a string "HH:MM[:SS]".
func (t *Tod) Scan(v any) error {
	switch x := v.(type) {
	case time.Time:
		t.Time = x
		return nil
	case []byte:
		return t.parse(string(x))
	case string:
		return t.parse(x)
	case nil:
		t.Time = time.Time{}
		return nil
	default:
		return fmt.Errorf("tod: unsupported Scan type %T", v)
	}
}

func (t *Tod) parse(s string) error {
	s = strings.TrimSpace(s)
	if len(s) == 5 { // "HH:MM"
		s += ":00"
	}
	tt, err := time.Parse("15:04:05", s)
	if err != nil {
		return err
	}
	t.Time = tt
	return nil
}

// Value sends "HH:MM:SS" so a Postgres TIME column understands it.
func (t Tod) Value() (driver.Value, error) {
	if t.Time.IsZero() {
		return "00:00:00", nil
	}
	return t.Format("15:04:05"), nil
}

func (t Tod) MarshalJSON() ([]byte, error) {
	return json.Marshal(t.Format("15:04:05"))
}

func (t *Tod) UnmarshalJSON(b []byte) error {
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return err
	}
	return t.parse(s)
}

// DateOnly truncates to midnight UTC. Soutenance dates are stored and
// compared through this so equality never depends on the caller's zone.
func DateOnly(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
