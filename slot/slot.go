package slot

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
	"fmt"
	"time"
)

var ErrInvalidTime = errors.New("invalid time of day")

// Slot is a candidate start time on a calendar day. Slots are plain values
// and are never persisted on their own.
type Slot struct {
	Hour   int
	Minute int
}

// FromMinutes builds a slot from minutes since midnight.
func FromMinutes(m int) Slot {
	return Slot{Hour: m / 60, Minute: m % 60}
}

// Parse reads a "HH:MM" time of day.
func Parse(s string) (Slot, error) {
	t, err := time.Parse("15:04", s)
	if err != nil {
		return Slot{}, fmt.Errorf("%w: %q", ErrInvalidTime, s)
	}
	return Slot{Hour: t.Hour(), Minute: t.Minute()}, nil
}

func (s Slot) Minutes() int {
	return s.Hour*60 + s.Minute
}

func (s Slot) String() string {
	return fmt.Sprintf("%02d:%02d", s.Hour, s.Minute)
}

// On returns the absolute start of s on date's calendar day, in date's location.
func (s Slot) On(date time.Time) time.Time {
	y, m, d := date.Date()
	return time.Date(y, m, d, s.Hour, s.Minute, 0, 0, date.Location())
}

func (s Slot) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.String())
}

func (s *Slot) UnmarshalJSON(b []byte) error {
	var raw string
	if err := json.Unmarshal(b, &raw); err != nil {
		return err
	}
	parsed, err := Parse(raw)
	if err != nil {
		return err
	}
	*s = parsed
	return nil
}

// Value implements driver.Valuer for a text column.
func (s Slot) Value() (driver.Value, error) {
	return s.String(), nil
}

// Scan implements sql.Scanner for SELECT.
func (s *Slot) Scan(value any) error {
	var raw string
	switch v := value.(type) {
	case string:
		raw = v
	case []byte:
		raw = string(v)
	case time.Time:
		*s = Slot{Hour: v.Hour(), Minute: v.Minute()}
		return nil
	default:
		return fmt.Errorf("not a time of day: %T", value)
	}
	// Postgres "time" columns come back as HH:MM:SS.
	if len(raw) > 5 {
		raw = raw[:5]
	}
	parsed, err := Parse(raw)
	if err != nil {
		return err
	}
	*s = parsed
	return nil
}
