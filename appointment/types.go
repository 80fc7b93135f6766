package appointment

import (
	"errors"
	"fmt"
	"salon-booking/service"
	"salon-booking/slot"
	"strings"
	"time"

	"github.com/google/uuid"
)

var ErrNotFound = errors.New("appointment not found")

type Status string

const (
	StatusPending   Status = "pending"
	StatusConfirmed Status = "confirmed"
	StatusCompleted Status = "completed"
	StatusCancelled Status = "cancelled"
)

// IsCancelled also accepts the American spelling, which older rows carry.
func (s Status) IsCancelled() bool {
	switch strings.ToLower(string(s)) {
	case "cancelled", "canceled":
		return true
	}
	return false
}

func (s Status) Validate() error {
	switch s {
	case StatusPending, StatusConfirmed, StatusCompleted, StatusCancelled:
		return nil
	}
	return fmt.Errorf("unknown status %q", string(s))
}

// Appointment is a booked service. Date is midnight of the appointment day in
// the business timezone and Time the start time on that day.
type Appointment struct {
	ID         uuid.UUID       `json:"id"`
	ClientName string          `json:"client_name"`
	Date       time.Time       `json:"date"`
	Time       slot.Slot       `json:"time"`
	Status     Status          `json:"status"`
	Service    service.Service `json:"service"`
	CreatedAt  time.Time       `json:"created_at"`
}

func (a *Appointment) Validate() error {
	if a.ClientName == "" {
		return errors.New("client name is required")
	}
	if a.Date.IsZero() {
		return errors.New("date is required")
	}
	if a.Service.ID == uuid.Nil {
		return errors.New("service ID is required")
	}
	if err := a.Status.Validate(); err != nil {
		return err
	}
	return nil
}

// Occupies returns the minutes of the day the appointment claims, [start, end).
func (a Appointment) Occupies() (start, end int) {
	start = a.Time.Minutes()
	return start, start + a.Service.DurationMinutes
}

// SameDay reports whether the appointment falls on date's calendar day.
func (a Appointment) SameDay(date time.Time) bool {
	y1, m1, d1 := a.Date.Date()
	y2, m2, d2 := date.Date()
	return y1 == y2 && m1 == m2 && d1 == d2
}
