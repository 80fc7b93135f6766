package schedule

import (
	"context"
	"errors"
	"salon-booking/appointment"
	"salon-booking/calendar"
	"salon-booking/metrics"
	"sync"
	"time"

	"go.uber.org/zap"
)

// RangeLister is the read side of the appointment store used by calendar views.
type RangeLister interface {
	ListAppointmentsForRange(ctx context.Context, start, end time.Time) ([]appointment.Appointment, error)
}

// Snapshot is what a calendar screen renders. Loaded is false while the fetch
// for the current cursor is still outstanding.
type Snapshot struct {
	View         calendar.View
	Cursor       calendar.Cursor
	Start        time.Time
	End          time.Time
	Appointments []appointment.Appointment
	Loaded       bool
	Generation   uint64
}

// Board owns the view, cursor and appointment list of one calendar screen.
// Every navigation issues a fetch for the new visible range tagged with a
// generation number; starting a new fetch cancels the previous one, and a
// result that comes back for an older generation is dropped.
type Board struct {
	lister  RangeLister
	logger  *zap.Logger
	metrics *metrics.Metrics

	mu           sync.Mutex
	nav          *calendar.Navigator
	generation   uint64
	cancel       context.CancelFunc
	appointments []appointment.Appointment
	loaded       bool
}

func NewBoard(clock calendar.Clock, lister RangeLister, logger *zap.Logger, m *metrics.Metrics) *Board {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Board{
		lister:       lister,
		logger:       logger,
		metrics:      m,
		nav:          calendar.NewNavigator(clock),
		appointments: []appointment.Appointment{},
	}
}

// Snapshot returns the current state without fetching.
func (b *Board) Snapshot() Snapshot {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.snapshotLocked()
}

// Refresh re-fetches the visible range without moving.
func (b *Board) Refresh(ctx context.Context) Snapshot {
	return b.navigate(ctx, func(*calendar.Navigator) {})
}

func (b *Board) SwitchView(ctx context.Context, v calendar.View) Snapshot {
	return b.navigate(ctx, func(n *calendar.Navigator) { n.SwitchView(v) })
}

func (b *Board) Advance(ctx context.Context, dir calendar.Direction) Snapshot {
	return b.navigate(ctx, func(n *calendar.Navigator) { n.Advance(dir) })
}

// Close cancels any fetch still in flight.
func (b *Board) Close() {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.cancel != nil {
		b.cancel()
		b.cancel = nil
	}
}

func (b *Board) navigate(ctx context.Context, move func(*calendar.Navigator)) Snapshot {
	b.mu.Lock()
	move(b.nav)
	b.generation++
	gen := b.generation
	if b.cancel != nil {
		b.cancel()
	}
	fetchCtx, cancel := context.WithCancel(ctx)
	b.cancel = cancel
	b.appointments = []appointment.Appointment{}
	b.loaded = false
	start, end := b.nav.VisibleRange()
	b.mu.Unlock()

	appts, err := b.lister.ListAppointmentsForRange(fetchCtx, start, end)

	b.mu.Lock()
	defer b.mu.Unlock()
	if gen != b.generation {
		b.metrics.ObserveStaleResult()
		b.logger.Debug("dropping stale appointment fetch",
			zap.Uint64("generation", gen),
			zap.Uint64("current", b.generation))
		return b.snapshotLocked()
	}
	cancel()
	b.cancel = nil

	// The caller went away; stay unloaded so the next read fetches again.
	if errors.Is(err, context.Canceled) || (err != nil && ctx.Err() != nil) {
		return b.snapshotLocked()
	}
	if err != nil {
		b.metrics.ObserveFetchFailure("range")
		b.logger.Error("fetch appointments for calendar",
			zap.Time("start", start),
			zap.Time("end", end),
			zap.Error(err))
		appts = []appointment.Appointment{}
	}
	if appts == nil {
		appts = []appointment.Appointment{}
	}
	b.appointments = appts
	b.loaded = true
	return b.snapshotLocked()
}

func (b *Board) snapshotLocked() Snapshot {
	start, end := b.nav.VisibleRange()
	appts := make([]appointment.Appointment, len(b.appointments))
	copy(appts, b.appointments)
	return Snapshot{
		View:         b.nav.View(),
		Cursor:       b.nav.Cursor(),
		Start:        start,
		End:          end,
		Appointments: appts,
		Loaded:       b.loaded,
		Generation:   b.generation,
	}
}
