package calendar

import (
	"fmt"
	"time"
)

// Clock supplies the current instant.
type Clock interface {
	Now() time.Time
}

// SystemClock reads the wall clock in the business timezone.
type SystemClock struct {
	Location *time.Location
}

func (c SystemClock) Now() time.Time {
	if c.Location == nil {
		return time.Now()
	}
	return time.Now().In(c.Location)
}

// FixedClock always returns the same instant.
type FixedClock time.Time

func (c FixedClock) Now() time.Time { return time.Time(c) }

// WeekBounds returns the Monday-start week containing date. The week may span
// two months or two years.
func WeekBounds(date time.Time) Bounds {
	return weekBounds(midnight(date))
}

func weekBounds(day time.Time) Bounds {
	offset := int(day.Weekday()) - 1
	if day.Weekday() == time.Sunday {
		offset = 6
	}
	first := day.AddDate(0, 0, -offset)
	return Bounds{
		FirstDay: first,
		LastDay:  first.AddDate(0, 0, 6),
	}
}

// Advance pages the cursor for the given view. Today jumps to clock's current
// day whatever the view. Paging a month lands on the first of that month;
// paging a week or a day carries into neighbouring months and years.
func Advance(c Cursor, view View, dir Direction, clock Clock) Cursor {
	if dir == Today {
		now := clock.Now()
		if c.loc != nil {
			now = now.In(c.loc)
		}
		return NewCursor(now)
	}

	step := 1
	if dir == Prev {
		step = -1
	}

	switch view {
	case Month:
		month, year := shiftMonth(c.Month, c.Year, step)
		return NewCursor(time.Date(year, month, 1, 0, 0, 0, 0, c.Date().Location()))
	case Week:
		return NewCursor(shiftDays(c, 7*step))
	case Day:
		return NewCursor(shiftDays(c, step))
	}
	panic(fmt.Sprintf("calendar: advance with %s", view))
}

// shiftMonth moves month by step, rolling the year at January and December.
func shiftMonth(month time.Month, year, step int) (time.Month, int) {
	m := int(month) - 1 + step
	year += m / 12
	m %= 12
	if m < 0 {
		m += 12
		year--
	}
	return time.Month(m + 1), year
}

// shiftDays moves the cursor's day by n (|n| <= 7), carrying the overflow
// into the next month or borrowing from the previous one.
func shiftDays(c Cursor, n int) time.Time {
	day, month, year := c.Day+n, c.Month, c.Year
	if length := daysIn(month, year); day > length {
		day -= length
		month, year = shiftMonth(month, year, 1)
	} else if day < 1 {
		month, year = shiftMonth(month, year, -1)
		day += daysIn(month, year)
	}
	return time.Date(year, month, day, 0, 0, 0, 0, c.Date().Location())
}

// VisibleRange returns the first and last day shown by view at c.
func VisibleRange(view View, c Cursor) (start, end time.Time) {
	switch view {
	case Week:
		return c.Week.FirstDay, c.Week.LastDay
	case Month:
		first := time.Date(c.Year, c.Month, 1, 0, 0, 0, 0, c.Date().Location())
		return first, first.AddDate(0, 1, -1)
	default:
		return c.Date(), c.Date()
	}
}
