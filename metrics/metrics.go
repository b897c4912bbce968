package metrics

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

// Metrics stores Prometheus collectors used across the service.
type Metrics struct {
	AppointmentsCreated    *prometheus.CounterVec
	AppointmentTransitions *prometheus.CounterVec
	PointsSpent            prometheus.Counter
	PointsRefunded         prometheus.Counter
	BookingFailures        *prometheus.CounterVec
	HTTPRequestDuration    *prometheus.HistogramVec
}

var (
	regOnce         sync.Once
	metricsInstance *Metrics
)

// Registry builds and registers the metrics singleton with optional namespace.
func Registry(namespace string) *Metrics {
	regOnce.Do(func() {
		metricsInstance = &Metrics{
			AppointmentsCreated: prometheus.NewCounterVec(prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "appointments_created_total",
				Help:      "Total appointments created by outcome.",
			}, []string{"status"}),
			AppointmentTransitions: prometheus.NewCounterVec(prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "appointment_transitions_total",
				Help:      "Total appointment status transitions.",
			}, []string{"from", "to"}),
			PointsSpent: prometheus.NewCounter(prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "points_spent_total",
				Help:      "Total points deducted for bookings.",
			}),
			PointsRefunded: prometheus.NewCounter(prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "points_refunded_total",
				Help:      "Total points refunded on cancellations.",
			}),
			BookingFailures: prometheus.NewCounterVec(prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "booking_failures_total",
				Help:      "Total failed booking attempts by reason.",
			}, []string{"reason"}),
			HTTPRequestDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "http_request_duration_seconds",
				Help:      "Latency distribution for HTTP requests.",
				Buckets:   prometheus.DefBuckets,
			}, []string{"method", "path", "status"}),
		}

		prometheus.MustRegister(
			metricsInstance.AppointmentsCreated,
			metricsInstance.AppointmentTransitions,
			metricsInstance.PointsSpent,
			metricsInstance.PointsRefunded,
			metricsInstance.BookingFailures,
			metricsInstance.HTTPRequestDuration,
		)
	})
	return metricsInstance
}
