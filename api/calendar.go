package api

import (
	"encoding/json"
	"net/http"
	"salon-booking/appointment"
	"salon-booking/calendar"
	"salon-booking/schedule"
	"salon-booking/service"
	"time"

	"go.uber.org/zap"
)

type weekResponse struct {
	FirstDay string `json:"first_day"`
	LastDay  string `json:"last_day"`
}

func toWeekResponse(b calendar.Bounds) weekResponse {
	return weekResponse{
		FirstDay: b.FirstDay.Format(time.DateOnly),
		LastDay:  b.LastDay.Format(time.DateOnly),
	}
}

type cursorResponse struct {
	Date  string       `json:"date"`
	Day   int          `json:"day"`
	Month int          `json:"month"`
	Year  int          `json:"year"`
	Week  weekResponse `json:"week"`
}

func toCursorResponse(c calendar.Cursor) cursorResponse {
	return cursorResponse{
		Date:  c.Date().Format(time.DateOnly),
		Day:   c.Day,
		Month: int(c.Month),
		Year:  c.Year,
		Week:  toWeekResponse(c.Week),
	}
}

func (a *API) getWeek(w http.ResponseWriter, r *http.Request) {
	date, err := a.parseDate(r.URL.Query().Get("date"))
	if err != nil {
		a.Response(w, http.StatusBadRequest, "invalid date")
		return
	}
	a.Response(w, http.StatusOK, toWeekResponse(calendar.WeekBounds(date)))
}

type advanceRequest struct {
	View      string `json:"view"`
	Direction string `json:"direction"`
	Day       int    `json:"day"`
	Month     int    `json:"month"`
	Year      int    `json:"year"`
}

func (a *API) advanceCalendar(w http.ResponseWriter, r *http.Request) {
	var req advanceRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		a.Response(w, http.StatusBadRequest, "invalid request body")
		return
	}

	view, err := calendar.ParseView(req.View)
	if err != nil {
		a.Response(w, http.StatusBadRequest, err.Error())
		return
	}
	dir, err := calendar.ParseDirection(req.Direction)
	if err != nil {
		a.Response(w, http.StatusBadRequest, err.Error())
		return
	}

	date := time.Date(req.Year, time.Month(req.Month), req.Day, 0, 0, 0, 0, a.loc)
	if date.Day() != req.Day || int(date.Month()) != req.Month || date.Year() != req.Year {
		a.Response(w, http.StatusBadRequest, "invalid cursor date")
		return
	}

	next := calendar.Advance(calendar.NewCursor(date), view, dir, a.clock)
	a.Response(w, http.StatusOK, toCursorResponse(next))
}

type appointmentResponse struct {
	ID         string             `json:"id"`
	ClientName string             `json:"client_name"`
	Date       string             `json:"date"`
	Time       string             `json:"time"`
	Status     appointment.Status `json:"status"`
	Service    service.Service    `json:"service"`
	CreatedAt  time.Time          `json:"created_at"`
}

func toAppointmentResponse(appt appointment.Appointment) appointmentResponse {
	return appointmentResponse{
		ID:         appt.ID.String(),
		ClientName: appt.ClientName,
		Date:       appt.Date.Format(time.DateOnly),
		Time:       appt.Time.String(),
		Status:     appt.Status,
		Service:    appt.Service,
		CreatedAt:  appt.CreatedAt,
	}
}

func toAppointmentResponses(appts []appointment.Appointment) []appointmentResponse {
	res := make([]appointmentResponse, 0, len(appts))
	for _, appt := range appts {
		res = append(res, toAppointmentResponse(appt))
	}
	return res
}

type rangeResponse struct {
	View         string                `json:"view"`
	Start        string                `json:"start"`
	End          string                `json:"end"`
	Appointments []appointmentResponse `json:"appointments"`
}

// getCalendarRange renders one calendar page. A failed appointment read
// renders the page empty rather than failing the request.
func (a *API) getCalendarRange(w http.ResponseWriter, r *http.Request) {
	view, err := calendar.ParseView(r.URL.Query().Get("view"))
	if err != nil {
		a.Response(w, http.StatusBadRequest, err.Error())
		return
	}
	date, err := a.parseDate(r.URL.Query().Get("date"))
	if err != nil {
		a.Response(w, http.StatusBadRequest, "invalid date")
		return
	}

	start, end := calendar.VisibleRange(view, calendar.NewCursor(date))
	appts, err := a.appointments.ListAppointmentsForRange(r.Context(), start, end)
	if err != nil {
		a.metrics.ObserveFetchFailure("range")
		a.logger.Error("fetch appointments for calendar range",
			zap.String("view", view.String()),
			zap.String("start", start.Format(time.DateOnly)),
			zap.String("end", end.Format(time.DateOnly)),
			zap.Error(err))
		appts = nil
	}

	a.Response(w, http.StatusOK, rangeResponse{
		View:         view.String(),
		Start:        start.Format(time.DateOnly),
		End:          end.Format(time.DateOnly),
		Appointments: toAppointmentResponses(appts),
	})
}

type boardResponse struct {
	View         string                `json:"view"`
	Cursor       cursorResponse        `json:"cursor"`
	Start        string                `json:"start"`
	End          string                `json:"end"`
	Appointments []appointmentResponse `json:"appointments"`
	Loaded       bool                  `json:"loaded"`
	Generation   uint64                `json:"generation"`
}

func toBoardResponse(s schedule.Snapshot) boardResponse {
	return boardResponse{
		View:         s.View.String(),
		Cursor:       toCursorResponse(s.Cursor),
		Start:        s.Start.Format(time.DateOnly),
		End:          s.End.Format(time.DateOnly),
		Appointments: toAppointmentResponses(s.Appointments),
		Loaded:       s.Loaded,
		Generation:   s.Generation,
	}
}

// consoleHeader names the admin console a board request belongs to. Requests
// without it share the default console.
const consoleHeader = "X-Console-ID"

func (a *API) board(r *http.Request) *schedule.Board {
	return a.boards.Board(r.Header.Get(consoleHeader))
}

// getBoard returns the console's calendar as it stands, loading it on first use.
func (a *API) getBoard(w http.ResponseWriter, r *http.Request) {
	board := a.board(r)
	snap := board.Snapshot()
	if !snap.Loaded {
		snap = board.Refresh(r.Context())
	}
	a.Response(w, http.StatusOK, toBoardResponse(snap))
}

type switchViewRequest struct {
	View string `json:"view"`
}

func (a *API) switchBoardView(w http.ResponseWriter, r *http.Request) {
	var req switchViewRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		a.Response(w, http.StatusBadRequest, "invalid request body")
		return
	}
	view, err := calendar.ParseView(req.View)
	if err != nil {
		a.Response(w, http.StatusBadRequest, err.Error())
		return
	}
	a.Response(w, http.StatusOK, toBoardResponse(a.board(r).SwitchView(r.Context(), view)))
}

type advanceBoardRequest struct {
	Direction string `json:"direction"`
}

func (a *API) advanceBoard(w http.ResponseWriter, r *http.Request) {
	var req advanceBoardRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		a.Response(w, http.StatusBadRequest, "invalid request body")
		return
	}
	dir, err := calendar.ParseDirection(req.Direction)
	if err != nil {
		a.Response(w, http.StatusBadRequest, err.Error())
		return
	}
	a.Response(w, http.StatusOK, toBoardResponse(a.board(r).Advance(r.Context(), dir)))
}
