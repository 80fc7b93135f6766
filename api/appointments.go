package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"salon-booking/appointment"
	"salon-booking/booking"
	"salon-booking/service"
	"salon-booking/slot"

	"github.com/google/uuid"
)

type createAppointmentRequest struct {
	ClientName string `json:"client_name"`
	ServiceID  string `json:"service_id"`
	Date       string `json:"date"`
	Time       string `json:"time"`
}

// createAppointment is the public booking flow. The slot is re-checked
// against the live schedule right before the insert.
func (a *API) createAppointment(w http.ResponseWriter, r *http.Request) {
	var req createAppointmentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		a.Response(w, http.StatusBadRequest, "invalid request body")
		return
	}

	date, err := a.parseDate(req.Date)
	if err != nil {
		a.Response(w, http.StatusBadRequest, "invalid date")
		return
	}
	at, err := slot.Parse(req.Time)
	if err != nil {
		a.Response(w, http.StatusBadRequest, "invalid time")
		return
	}
	serviceID, err := uuid.Parse(req.ServiceID)
	if err != nil {
		a.Response(w, http.StatusBadRequest, "invalid service ID")
		return
	}

	svc, ok := a.lookupService(w, r, serviceID)
	if !ok {
		return
	}

	payload := appointment.Appointment{
		ClientName: req.ClientName,
		Date:       date,
		Time:       at,
		Status:     appointment.StatusPending,
		Service:    svc,
	}
	if err := payload.Validate(); err != nil {
		a.Response(w, http.StatusBadRequest, fmt.Errorf("validate: %w", err).Error())
		return
	}

	q := booking.Query{
		Date:            date,
		ServiceID:       svc.ID,
		DurationMinutes: svc.DurationMinutes,
		Increment:       a.publicIncrement,
	}
	a.bookingMu.Lock()
	defer a.bookingMu.Unlock()
	if err := a.checker.CheckSlot(r.Context(), q, at); err != nil {
		a.Error(w, r, err)
		return
	}

	appt, err := a.appointments.CreateAppointment(r.Context(), payload, a.clock.Now())
	if err != nil {
		a.Error(w, r, err)
		return
	}
	a.Response(w, http.StatusCreated, toAppointmentResponse(appt))
}

func (a *API) getAppointment(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		a.Response(w, http.StatusBadRequest, "invalid appointment ID")
		return
	}

	appt, err := a.appointments.GetAppointment(r.Context(), id)
	if err != nil {
		a.Error(w, r, err)
		return
	}
	a.Response(w, http.StatusOK, toAppointmentResponse(appt))
}

type rescheduleRequest struct {
	Date      string `json:"date"`
	Time      string `json:"time"`
	ServiceID string `json:"service_id"`
}

// rescheduleAppointment is the admin edit flow. Availability is checked on
// the admin grid with the appointment's own booking left out, so it may keep
// or shift within its current slot.
func (a *API) rescheduleAppointment(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		a.Response(w, http.StatusBadRequest, "invalid appointment ID")
		return
	}

	var req rescheduleRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		a.Response(w, http.StatusBadRequest, "invalid request body")
		return
	}
	date, err := a.parseDate(req.Date)
	if err != nil {
		a.Response(w, http.StatusBadRequest, "invalid date")
		return
	}
	at, err := slot.Parse(req.Time)
	if err != nil {
		a.Response(w, http.StatusBadRequest, "invalid time")
		return
	}

	existing, err := a.appointments.GetAppointment(r.Context(), id)
	if err != nil {
		a.Error(w, r, err)
		return
	}

	svc := existing.Service
	if req.ServiceID != "" {
		serviceID, err := uuid.Parse(req.ServiceID)
		if err != nil {
			a.Response(w, http.StatusBadRequest, "invalid service ID")
			return
		}
		var ok bool
		if svc, ok = a.lookupService(w, r, serviceID); !ok {
			return
		}
	}

	q := booking.Query{
		Date:            date,
		ServiceID:       svc.ID,
		DurationMinutes: svc.DurationMinutes,
		Increment:       a.adminIncrement,
		ExcludeID:       id,
	}
	a.bookingMu.Lock()
	defer a.bookingMu.Unlock()
	if err := a.checker.CheckSlot(r.Context(), q, at); err != nil {
		a.Error(w, r, err)
		return
	}

	updated, err := a.appointments.RescheduleAppointment(r.Context(), id, date, at, svc.ID)
	if err != nil {
		a.Error(w, r, err)
		return
	}
	a.Response(w, http.StatusOK, toAppointmentResponse(updated))
}

type updateStatusRequest struct {
	Status string `json:"status"`
}

func (a *API) updateAppointmentStatus(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		a.Response(w, http.StatusBadRequest, "invalid appointment ID")
		return
	}

	var req updateStatusRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		a.Response(w, http.StatusBadRequest, "invalid request body")
		return
	}
	status := appointment.Status(req.Status)
	if err := status.Validate(); err != nil {
		a.Response(w, http.StatusBadRequest, err.Error())
		return
	}

	if err := a.appointments.UpdateStatus(r.Context(), id, status); err != nil {
		a.Error(w, r, err)
		return
	}
	a.Response(w, http.StatusOK, map[string]string{
		"id":     id.String(),
		"status": string(status),
	})
}

func (a *API) deleteAppointment(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		a.Response(w, http.StatusBadRequest, "invalid appointment ID")
		return
	}

	if err := a.appointments.DeleteAppointment(r.Context(), id); err != nil {
		a.Error(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// lookupService resolves a service chosen by the client. An unknown id is the
// client's mistake, so it is reported as a bad request.
func (a *API) lookupService(w http.ResponseWriter, r *http.Request, id uuid.UUID) (service.Service, bool) {
	svc, err := a.services.GetService(r.Context(), id)
	if err != nil {
		if errors.Is(err, service.ErrNotFound) {
			a.Response(w, http.StatusBadRequest, "unknown service")
			return service.Service{}, false
		}
		a.Error(w, r, err)
		return service.Service{}, false
	}
	return svc, true
}
