package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Booking commit results.
const (
	CommitBooked   = "booked"
	CommitConflict = "conflict"
	CommitError    = "error"
)

// Metrics holds the assistant's collectors. A nil *Metrics records nothing.
type Metrics struct {
	registry *prometheus.Registry

	turns              *prometheus.CounterVec
	generationDuration *prometheus.HistogramVec
	bookingCommits     *prometheus.CounterVec
}

func New(reg *prometheus.Registry) *Metrics {
	factory := promauto.With(reg)
	return &Metrics{
		registry: reg,
		turns: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "chatbot_turns_total",
			Help: "Conversation turns by reply source",
		}, []string{"source"}),
		generationDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "chatbot_generation_duration_seconds",
			Help:    "Time spent waiting for the language model",
			Buckets: []float64{0.5, 1, 2.5, 5, 10, 30, 60, 120, 180},
		}, []string{"outcome"}),
		bookingCommits: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "chatbot_booking_commits_total",
			Help: "Atomic booking attempts by result",
		}, []string{"result"}),
	}
}

func (m *Metrics) Turn(source string) {
	if m == nil {
		return
	}
	m.turns.WithLabelValues(source).Inc()
}

// Generation records one model call; outcome is the reply source it produced.
func (m *Metrics) Generation(outcome string, elapsed time.Duration) {
	if m == nil {
		return
	}
	m.generationDuration.WithLabelValues(outcome).Observe(elapsed.Seconds())
}

func (m *Metrics) BookingCommit(result string) {
	if m == nil {
		return
	}
	m.bookingCommits.WithLabelValues(result).Inc()
}

// Handler serves the registry in the Prometheus text format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}
