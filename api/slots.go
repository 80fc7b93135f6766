package api

import (
	"net/http"
	"salon-booking/booking"
	"salon-booking/hours"
	"salon-booking/slot"
	"strconv"
	"time"

	"github.com/google/uuid"
)

type hoursEntry struct {
	Weekday string `json:"weekday"`
	hours.Hours
}

func (a *API) getHours(w http.ResponseWriter, _ *http.Request) {
	entries := make([]hoursEntry, 0, len(hours.Weekdays))
	for _, d := range hours.Weekdays {
		entries = append(entries, hoursEntry{Weekday: d.String(), Hours: a.table.HoursFor(d)})
	}
	a.Response(w, http.StatusOK, entries)
}

type slotsResponse struct {
	Date  string      `json:"date"`
	Slots []slot.Slot `json:"slots"`
}

func (a *API) getGrid(w http.ResponseWriter, r *http.Request) {
	date, err := a.parseDate(r.URL.Query().Get("date"))
	if err != nil {
		a.Response(w, http.StatusBadRequest, "invalid date")
		return
	}
	increment, err := positiveInt(r.URL.Query().Get("increment"), a.publicIncrement)
	if err != nil {
		a.Response(w, http.StatusBadRequest, "invalid increment")
		return
	}

	a.Response(w, http.StatusOK, slotsResponse{
		Date:  date.Format(time.DateOnly),
		Slots: slot.GenerateGrid(a.table, date, increment),
	})
}

func (a *API) getSlots(w http.ResponseWriter, r *http.Request) {
	params := r.URL.Query()

	date, err := a.parseDate(params.Get("date"))
	if err != nil {
		a.Response(w, http.StatusBadRequest, "invalid date")
		return
	}

	q := booking.Query{Date: date}
	if q.ServiceID, err = optionalID(params.Get("service_id")); err != nil {
		a.Response(w, http.StatusBadRequest, "invalid service ID")
		return
	}
	if q.ExcludeID, err = optionalID(params.Get("exclude")); err != nil {
		a.Response(w, http.StatusBadRequest, "invalid exclude ID")
		return
	}
	if q.DurationMinutes, err = positiveInt(params.Get("duration"), 0); err != nil {
		a.Response(w, http.StatusBadRequest, "invalid duration")
		return
	}
	if q.Increment, err = positiveInt(params.Get("increment"), a.publicIncrement); err != nil {
		a.Response(w, http.StatusBadRequest, "invalid increment")
		return
	}

	a.Response(w, http.StatusOK, slotsResponse{
		Date:  date.Format(time.DateOnly),
		Slots: a.checker.AvailableSlots(r.Context(), q),
	})
}

func optionalID(s string) (uuid.UUID, error) {
	if s == "" {
		return uuid.Nil, nil
	}
	return uuid.Parse(s)
}

// positiveInt parses s, returning def when s is empty. Zero and negative
// values are rejected.
func positiveInt(s string, def int) (int, error) {
	if s == "" {
		return def, nil
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0, err
	}
	if n <= 0 {
		return 0, strconv.ErrRange
	}
	return n, nil
}
