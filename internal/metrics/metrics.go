package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"sync"
)

const namespace = "auto_detailing"

var (
	once sync.Once

	authAttempts = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "auth_attempts_total",
			Help:      "Login and registration attempts by outcome.",
		},
		[]string{"op", "result"},
	)

	bookingsCreated = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "bookings_created_total",
			Help:      "Booking records written to the jobs collection.",
		},
		[]string{"service"},
	)

	bookingQueries = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "booking_queries_total",
			Help:      "Jobs list queries by scope.",
		},
		[]string{"scope"},
	)
)

// Register registers Prometheus metrics. Safe to call multiple times.
func Register() {
	once.Do(func() {
		prometheus.MustRegister(authAttempts, bookingsCreated, bookingQueries)
	})
}

func IncAuth(op, result string) {
	authAttempts.WithLabelValues(op, result).Inc()
}

func IncBookingCreated(service string) {
	bookingsCreated.WithLabelValues(service).Inc()
}

func IncBookingQuery(scope string) {
	bookingQueries.WithLabelValues(scope).Inc()
}
