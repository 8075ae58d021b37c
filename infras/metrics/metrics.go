package metrics

import (
	"net/http"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const (
	OutcomeReserved      = "reserved"
	OutcomeQuotaFull     = "quota_full"
	OutcomeNotFound      = "package_not_found"
	OutcomeBusy          = "busy"
	OutcomeDuplicateCode = "duplicate_code"
	OutcomeError         = "error"

	TriggerUser    = "user"
	TriggerAdmin   = "admin"
	TriggerExpired = "expired"
)

var (
	initOnce sync.Once
	shared   *bookingMetrics
)

// Booking records reservation core activity.
type Booking interface {
	ObserveReservation(outcome string)
	ObserveCancellation(trigger string)
	ObserveLockWait(wait time.Duration)
}

type bookingMetrics struct {
	reservations  *prometheus.CounterVec
	cancellations *prometheus.CounterVec
	lockWait      prometheus.Histogram
}

// New returns the process wide collectors, registering them on first use.
func New() Booking {
	initOnce.Do(func() {
		m := &bookingMetrics{
			reservations: prometheus.NewCounterVec(prometheus.CounterOpts{
				Name: "saleema_booking_reservations_total",
				Help: "Reservation attempts by outcome.",
			}, []string{"outcome"}),
			cancellations: prometheus.NewCounterVec(prometheus.CounterOpts{
				Name: "saleema_booking_cancellations_total",
				Help: "Cancelled bookings by trigger.",
			}, []string{"trigger"}),
			lockWait: prometheus.NewHistogram(prometheus.HistogramOpts{
				Name:    "saleema_booking_package_lock_seconds",
				Help:    "Time spent acquiring the package row lock.",
				Buckets: []float64{.001, .005, .01, .05, .1, .25, .5, 1, 2.5, 5},
			}),
		}
		prometheus.MustRegister(m.reservations, m.cancellations, m.lockWait)
		shared = m
	})

	return shared
}

func (m *bookingMetrics) ObserveReservation(outcome string) {
	if outcome == "" {
		outcome = OutcomeError
	}

	m.reservations.WithLabelValues(outcome).Inc()
}

func (m *bookingMetrics) ObserveCancellation(trigger string) {
	m.cancellations.WithLabelValues(trigger).Inc()
}

func (m *bookingMetrics) ObserveLockWait(wait time.Duration) {
	m.lockWait.Observe(wait.Seconds())
}

// Handler serves the default registry.
func Handler() http.Handler {
	return promhttp.Handler()
}
