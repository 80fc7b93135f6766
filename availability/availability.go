package availability

import (
	"salon-booking/appointment"
	"salon-booking/hours"
	"salon-booking/slot"
	"time"

	"github.com/google/uuid"
)

// Interval is a half-open span of minutes since midnight, [Start, End).
type Interval struct {
	Start int
	End   int
}

// Overlaps reports whether a and b share any minute. Touching endpoints do
// not overlap.
func Overlaps(a, b Interval) bool {
	return a.Start < b.End && b.Start < a.End
}

// Request describes what the caller knows so far. A DurationMinutes of zero
// means the service has not been chosen yet. ExcludeID is set when an
// existing appointment is being edited so that it does not block itself.
type Request struct {
	Date            time.Time
	DurationMinutes int
	Increment       int
	ExcludeID       uuid.UUID
}

// AvailableSlots returns the grid slots of req.Date at which a service of
// req.DurationMinutes fits before closing time and does not overlap any live
// appointment of that day. Without a duration every grid slot whose start
// minute is not taken by an appointment is returned, closing time included.
func AvailableSlots(table hours.Table, req Request, appointments []appointment.Appointment) []slot.Slot {
	increment := req.Increment
	if increment == 0 {
		increment = slot.PublicIncrement
	}

	grid := slot.GenerateGrid(table, req.Date, increment)
	if len(grid) == 0 {
		return grid
	}
	closing := table.HoursFor(hours.WeekdayOf(req.Date)).ClosesAt()

	busy := occupied(req, appointments)
	duration := max(req.DurationMinutes, 0)

	available := make([]slot.Slot, 0, len(grid))
	for _, s := range grid {
		candidate := Interval{Start: s.Minutes(), End: s.Minutes() + duration}
		if duration == 0 {
			// Only the start minute is known to be needed.
			candidate.End = candidate.Start + 1
		} else if candidate.End > closing {
			continue
		}
		if conflicts(candidate, busy) {
			continue
		}
		available = append(available, s)
	}
	return available
}

func occupied(req Request, appointments []appointment.Appointment) []Interval {
	busy := make([]Interval, 0, len(appointments))
	for _, appt := range appointments {
		if !appt.SameDay(req.Date) || appt.Status.IsCancelled() {
			continue
		}
		if req.ExcludeID != uuid.Nil && appt.ID == req.ExcludeID {
			continue
		}
		start, end := appt.Occupies()
		busy = append(busy, Interval{Start: start, End: end})
	}
	return busy
}

func conflicts(candidate Interval, busy []Interval) bool {
	for _, b := range busy {
		if Overlaps(candidate, b) {
			return true
		}
	}
	return false
}
