package metrics

import "github.com/prometheus/client_golang/prometheus"

// Metrics exposes counters/histograms for availability and calendar flows.
type Metrics struct {
	slotRequests  *prometheus.CounterVec
	slotsOffered  prometheus.Histogram
	fetchFailures *prometheus.CounterVec
	staleResults  prometheus.Counter
}

func New(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		slotRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "salon",
			Subsystem: "availability",
			Name:      "requests_total",
			Help:      "Availability computations by outcome",
		}, []string{"outcome"}),
		slotsOffered: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "salon",
			Subsystem: "availability",
			Name:      "slots_offered",
			Help:      "Number of bookable slots returned per computation",
			Buckets:   []float64{0, 1, 2, 5, 10, 20, 40, 80},
		}),
		fetchFailures: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "salon",
			Subsystem: "upstream",
			Name:      "fetch_failures_total",
			Help:      "Failed reads from the appointment and service stores",
		}, []string{"operation"}),
		staleResults: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "salon",
			Subsystem: "calendar",
			Name:      "stale_results_total",
			Help:      "Appointment fetches discarded because the calendar moved on",
		}),
	}
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	reg.MustRegister(m.slotRequests, m.slotsOffered, m.fetchFailures, m.staleResults)
	return m
}

// ObserveSlots records one availability computation. outcome is "ok",
// "closed" or "degraded".
func (m *Metrics) ObserveSlots(outcome string, offered int) {
	if m == nil {
		return
	}
	m.slotRequests.WithLabelValues(outcome).Inc()
	m.slotsOffered.Observe(float64(offered))
}

func (m *Metrics) ObserveFetchFailure(operation string) {
	if m == nil {
		return
	}
	m.fetchFailures.WithLabelValues(operation).Inc()
}

func (m *Metrics) ObserveStaleResult() {
	if m == nil {
		return
	}
	m.staleResults.Inc()
}
