package calendar

import "time"

// Navigator holds the current view and cursor of a calendar screen. It starts
// on the day view anchored at today. It is not safe for concurrent use; the
// owner serialises access.
type Navigator struct {
	view   View
	cursor Cursor
	clock  Clock
}

func NewNavigator(clock Clock) *Navigator {
	return &Navigator{
		view:   Day,
		cursor: NewCursor(clock.Now()),
		clock:  clock,
	}
}

func (n *Navigator) View() View     { return n.view }
func (n *Navigator) Cursor() Cursor { return n.cursor }

// SwitchView changes the view and leaves the cursor where it is.
func (n *Navigator) SwitchView(v View) {
	n.view = v
}

// Advance pages the current view and returns the new cursor.
func (n *Navigator) Advance(dir Direction) Cursor {
	n.cursor = Advance(n.cursor, n.view, dir, n.clock)
	return n.cursor
}

// VisibleRange is the span of days the current view shows.
func (n *Navigator) VisibleRange() (start, end time.Time) {
	return VisibleRange(n.view, n.cursor)
}
