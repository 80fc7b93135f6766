package booking

import (
	"context"
	"errors"
	"salon-booking/appointment"
	"salon-booking/availability"
	"salon-booking/hours"
	"salon-booking/metrics"
	"salon-booking/service"
	"salon-booking/slot"
	"slices"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

var ErrSlotUnavailable = errors.New("slot is not available")

// AppointmentLister is the read side of the appointment store used for
// availability checks.
type AppointmentLister interface {
	ListAppointmentsForDay(ctx context.Context, date time.Time) ([]appointment.Appointment, error)
}

// ServiceGetter resolves a service id to its duration.
type ServiceGetter interface {
	GetService(ctx context.Context, id uuid.UUID) (service.Service, error)
}

// Query is an availability request as it arrives from the booking wizard or
// the admin console. Any of ServiceID and DurationMinutes may be unset;
// DurationMinutes wins when both are given.
type Query struct {
	Date            time.Time
	ServiceID       uuid.UUID
	DurationMinutes int
	Increment       int
	ExcludeID       uuid.UUID
}

type Checker struct {
	table        hours.Table
	appointments AppointmentLister
	services     ServiceGetter
	logger       *zap.Logger
	metrics      *metrics.Metrics
}

func NewChecker(table hours.Table, appointments AppointmentLister, services ServiceGetter, logger *zap.Logger, m *metrics.Metrics) *Checker {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Checker{
		table:        table,
		appointments: appointments,
		services:     services,
		logger:       logger,
		metrics:      m,
	}
}

// AvailableSlots returns the bookable start times for q. It never fails: when
// the appointments of the day cannot be read the result is empty, and when
// the service cannot be resolved the duration is treated as unknown. Neither
// read is retried.
func (c *Checker) AvailableSlots(ctx context.Context, q Query) []slot.Slot {
	if !c.table.HoursFor(hours.WeekdayOf(q.Date)).Open {
		c.metrics.ObserveSlots("closed", 0)
		return []slot.Slot{}
	}

	duration := q.DurationMinutes
	if duration <= 0 && q.ServiceID != uuid.Nil {
		duration = c.serviceDuration(ctx, q.ServiceID)
	}

	appts, err := c.appointments.ListAppointmentsForDay(ctx, q.Date)
	if err != nil {
		c.metrics.ObserveFetchFailure("day")
		c.metrics.ObserveSlots("degraded", 0)
		c.logger.Error("fetch appointments for availability",
			zap.String("date", q.Date.Format(time.DateOnly)),
			zap.Error(err))
		return []slot.Slot{}
	}

	slots := availability.AvailableSlots(c.table, availability.Request{
		Date:            q.Date,
		DurationMinutes: duration,
		Increment:       q.Increment,
		ExcludeID:       q.ExcludeID,
	}, appts)
	c.metrics.ObserveSlots("ok", len(slots))
	return slots
}

// CheckSlot returns ErrSlotUnavailable unless at is one of the available
// slots of q. A failed appointment read also reports the slot unavailable.
func (c *Checker) CheckSlot(ctx context.Context, q Query, at slot.Slot) error {
	if !slices.Contains(c.AvailableSlots(ctx, q), at) {
		return ErrSlotUnavailable
	}
	return nil
}

func (c *Checker) serviceDuration(ctx context.Context, id uuid.UUID) int {
	s, err := c.services.GetService(ctx, id)
	if err != nil {
		if !errors.Is(err, service.ErrNotFound) {
			c.metrics.ObserveFetchFailure("service")
		}
		c.logger.Warn("resolve service duration",
			zap.String("service_id", id.String()),
			zap.Error(err))
		return 0
	}
	return s.DurationMinutes
}
