package calendar

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

var (
	ErrUnknownView      = errors.New("unknown calendar view")
	ErrUnknownDirection = errors.New("unknown direction")
)

type View int

const (
	Day View = iota
	Week
	Month
)

func (v View) String() string {
	switch v {
	case Day:
		return "day"
	case Week:
		return "week"
	case Month:
		return "month"
	}
	return fmt.Sprintf("View(%d)", int(v))
}

func ParseView(s string) (View, error) {
	switch strings.ToLower(s) {
	case "day":
		return Day, nil
	case "week":
		return Week, nil
	case "month":
		return Month, nil
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownView, s)
}

type Direction int

const (
	Prev Direction = iota
	Next
	Today
)

func (d Direction) String() string {
	switch d {
	case Prev:
		return "prev"
	case Next:
		return "next"
	case Today:
		return "today"
	}
	return fmt.Sprintf("Direction(%d)", int(d))
}

func ParseDirection(s string) (Direction, error) {
	switch strings.ToLower(s) {
	case "prev", "previous":
		return Prev, nil
	case "next":
		return Next, nil
	case "today":
		return Today, nil
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownDirection, s)
}

// Bounds is the Monday to Sunday span holding a date.
type Bounds struct {
	FirstDay time.Time `json:"first_day"`
	LastDay  time.Time `json:"last_day"`
}

// Cursor is the anchor date of a calendar view. It is only ever built by
// NewCursor so that day, month, year and week always agree.
type Cursor struct {
	Day   int
	Month time.Month
	Year  int
	Week  Bounds

	loc *time.Location
}

// NewCursor anchors a cursor on date's calendar day, in date's location.
func NewCursor(date time.Time) Cursor {
	d := midnight(date)
	return Cursor{
		Day:   d.Day(),
		Month: d.Month(),
		Year:  d.Year(),
		Week:  weekBounds(d),
		loc:   d.Location(),
	}
}

// Date returns midnight of the cursor's day.
func (c Cursor) Date() time.Time {
	loc := c.loc
	if loc == nil {
		loc = time.UTC
	}
	return time.Date(c.Year, c.Month, c.Day, 0, 0, 0, 0, loc)
}

// Equal compares the calendar fields and ignores the location pointer.
func (c Cursor) Equal(o Cursor) bool {
	return c.Day == o.Day && c.Month == o.Month && c.Year == o.Year &&
		c.Week.FirstDay.Equal(o.Week.FirstDay) && c.Week.LastDay.Equal(o.Week.LastDay)
}

func midnight(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}

func daysIn(month time.Month, year int) int {
	return time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC).Day()
}
