package slot

import (
	"salon-booking/hours"
	"time"
)

const (
	// PublicIncrement is the step of the booking wizard's grid.
	PublicIncrement = 30
	// AdminIncrement is the finer step used when staff place appointments.
	AdminIncrement = 10
)

// GenerateGrid returns the candidate start times for date's weekday, from the
// opening hour to the closing hour inclusive, every incrementMinutes. A closed
// day or a non-positive increment yields an empty grid.
func GenerateGrid(table hours.Table, date time.Time, incrementMinutes int) []Slot {
	h := table.HoursFor(hours.WeekdayOf(date))
	if !h.Open || incrementMinutes <= 0 {
		return []Slot{}
	}

	grid := make([]Slot, 0, (h.ClosesAt()-h.OpensAt())/incrementMinutes+1)
	for m := h.OpensAt(); m <= h.ClosesAt(); m += incrementMinutes {
		grid = append(grid, FromMinutes(m))
	}
	return grid
}
