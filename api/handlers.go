package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"salon-booking/appointment"
	"salon-booking/booking"
	"salon-booking/calendar"
	"salon-booking/hours"
	"salon-booking/metrics"
	"salon-booking/schedule"
	"salon-booking/service"
	"salon-booking/slot"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/handlers"
	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
)

// AppointmentStore is the appointment persistence the API writes through.
type AppointmentStore interface {
	ListAppointmentsForRange(ctx context.Context, start, end time.Time) ([]appointment.Appointment, error)
	GetAppointment(ctx context.Context, id uuid.UUID) (appointment.Appointment, error)
	CreateAppointment(ctx context.Context, appt appointment.Appointment, now time.Time) (appointment.Appointment, error)
	RescheduleAppointment(ctx context.Context, id uuid.UUID, date time.Time, at slot.Slot, serviceID uuid.UUID) (appointment.Appointment, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, status appointment.Status) error
	DeleteAppointment(ctx context.Context, id uuid.UUID) error
}

// ServiceStore is the service catalogue, usually the redis-backed cache.
type ServiceStore interface {
	GetServices(ctx context.Context) ([]service.Service, error)
	GetService(ctx context.Context, id uuid.UUID) (service.Service, error)
}

// Options carries everything the API needs. Logger, Clock, Location and
// Gatherer fall back to sensible defaults when unset.
type Options struct {
	Checker         *booking.Checker
	Appointments    AppointmentStore
	Services        ServiceStore
	Boards          *schedule.Registry
	Hours           hours.Table
	Location        *time.Location
	Clock           calendar.Clock
	PublicIncrement int
	AdminIncrement  int
	Logger          *zap.Logger
	Metrics         *metrics.Metrics
	Gatherer        prometheus.Gatherer
	AllowedOrigins  []string
}

type API struct {
	root   *mux.Router
	router *mux.Router

	checker         *booking.Checker
	appointments    AppointmentStore
	services        ServiceStore
	boards          *schedule.Registry
	table           hours.Table
	loc             *time.Location
	clock           calendar.Clock
	publicIncrement int
	adminIncrement  int
	logger          *zap.Logger
	metrics         *metrics.Metrics
	gatherer        prometheus.Gatherer
	allowedOrigins  []string

	// bookingMu makes the availability check and the write that follows it
	// atomic within this process. Across replicas the appointments table
	// needs an exclusion constraint on (date, time range).
	bookingMu sync.Mutex
}

func NewAPI(opts Options) *API {
	root := mux.NewRouter()
	r := root.PathPrefix("/api").Subrouter()

	if opts.Logger == nil {
		opts.Logger = zap.NewNop()
	}
	if opts.Location == nil {
		opts.Location = time.UTC
	}
	if opts.Clock == nil {
		opts.Clock = calendar.SystemClock{Location: opts.Location}
	}
	if opts.Gatherer == nil {
		opts.Gatherer = prometheus.DefaultGatherer
	}
	if opts.PublicIncrement <= 0 {
		opts.PublicIncrement = slot.PublicIncrement
	}
	if opts.AdminIncrement <= 0 {
		opts.AdminIncrement = slot.AdminIncrement
	}

	return &API{
		root:            root,
		router:          r,
		checker:         opts.Checker,
		appointments:    opts.Appointments,
		services:        opts.Services,
		boards:          opts.Boards,
		table:           opts.Hours,
		loc:             opts.Location,
		clock:           opts.Clock,
		publicIncrement: opts.PublicIncrement,
		adminIncrement:  opts.AdminIncrement,
		logger:          opts.Logger,
		metrics:         opts.Metrics,
		gatherer:        opts.Gatherer,
		allowedOrigins:  opts.AllowedOrigins,
	}
}

// Router exposes the bare router, without access logging or CORS.
func (a *API) Router() http.Handler {
	return a.root
}

func (a *API) Handler() http.Handler {
	// Access log lines go through zap at info level.
	access := handlers.LoggingHandler(zap.NewStdLog(a.logger).Writer(), a.root)
	if len(a.allowedOrigins) == 0 {
		return access
	}
	return handlers.CORS(
		handlers.AllowedOrigins(a.allowedOrigins),
		handlers.AllowedMethods([]string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodPatch, http.MethodDelete, http.MethodOptions}),
		handlers.AllowedHeaders([]string{"Content-Type", "Authorization", consoleHeader}),
	)(access)
}

type Response struct {
	Status   int `json:"status"`
	Response any `json:"response"`
}

func (a *API) Response(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	err := json.NewEncoder(w).Encode(Response{
		Status:   status,
		Response: data,
	})
	if err != nil {
		http.Error(w, "Failed to encode response", http.StatusInternalServerError)
		return
	}
}

// Error maps store and booking errors onto status codes. Anything unknown is
// logged and reported as a 500 without its details.
func (a *API) Error(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, appointment.ErrNotFound), errors.Is(err, service.ErrNotFound):
		a.Response(w, http.StatusNotFound, err.Error())
	case errors.Is(err, booking.ErrSlotUnavailable):
		a.Response(w, http.StatusConflict, err.Error())
	default:
		a.logger.Error("request failed",
			zap.String("method", r.Method),
			zap.String("path", r.URL.Path),
			zap.Error(err))
		a.Response(w, http.StatusInternalServerError, "internal error")
	}
}

func (a *API) RegisterRoutes() {
	a.router.HandleFunc("/health", a.health).Methods(http.MethodGet)

	a.router.HandleFunc("/hours", a.getHours).Methods(http.MethodGet)
	a.router.HandleFunc("/grid", a.getGrid).Methods(http.MethodGet)
	a.router.HandleFunc("/slots", a.getSlots).Methods(http.MethodGet)

	a.router.HandleFunc("/calendar/week", a.getWeek).Methods(http.MethodGet)
	a.router.HandleFunc("/calendar/advance", a.advanceCalendar).Methods(http.MethodPost)
	a.router.HandleFunc("/calendar/range", a.getCalendarRange).Methods(http.MethodGet)

	a.router.HandleFunc("/board", a.getBoard).Methods(http.MethodGet)
	a.router.HandleFunc("/board/view", a.switchBoardView).Methods(http.MethodPut)
	a.router.HandleFunc("/board/advance", a.advanceBoard).Methods(http.MethodPost)

	a.router.HandleFunc("/services", a.getServices).Methods(http.MethodGet)
	a.router.HandleFunc("/services/{id}", a.getService).Methods(http.MethodGet)

	a.router.HandleFunc("/appointments", a.createAppointment).Methods(http.MethodPost)
	a.router.HandleFunc("/appointments/{id}", a.getAppointment).Methods(http.MethodGet)
	a.router.HandleFunc("/appointments/{id}", a.rescheduleAppointment).Methods(http.MethodPut)
	a.router.HandleFunc("/appointments/{id}/status", a.updateAppointmentStatus).Methods(http.MethodPatch)
	a.router.HandleFunc("/appointments/{id}", a.deleteAppointment).Methods(http.MethodDelete)

	a.root.Handle("/metrics", promhttp.HandlerFor(a.gatherer, promhttp.HandlerOpts{})).Methods(http.MethodGet)
}

// parseDate reads a YYYY-MM-DD date as midnight in the business timezone.
func (a *API) parseDate(s string) (time.Time, error) {
	return time.ParseInLocation(time.DateOnly, s, a.loc)
}

func pathID(r *http.Request) (uuid.UUID, error) {
	return uuid.Parse(mux.Vars(r)["id"])
}
