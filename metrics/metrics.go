package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "dashmart"

var (
	OrdersPlaced = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: "orders",
		Name:      "placed_total",
		Help:      "Orders created at checkout.",
	})
	Transitions = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: "orders",
		Name:      "transitions_total",
		Help:      "Accepted status transitions by target status.",
	}, []string{"status"})
	TransitionsRejected = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: "orders",
		Name:      "transitions_rejected_total",
		Help:      "Status transitions rejected as out of sequence.",
	})
	SuggestionFailures = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: "suggestions",
		Name:      "failures_total",
		Help:      "Suggestion calls that degraded to no suggestion.",
	}, []string{"kind"})
	TrackingSessions = prometheus.NewGauge(prometheus.GaugeOpts{
		Namespace: namespace,
		Subsystem: "tracking",
		Name:      "sessions",
		Help:      "Open delivery tracking streams.",
	})
	Requests = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: "http",
		Name:      "requests_total",
		Help:      "Total number of HTTP requests.",
	}, []string{"method", "status"})
)

func init() {
	prometheus.MustRegister(OrdersPlaced, Transitions, TransitionsRejected, SuggestionFailures, TrackingSessions, Requests)
}

func Handler() http.Handler {
	return promhttp.Handler()
}
