package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

var (
	RateLimitAllowed = prometheus.NewCounterVec(
		prometheus.CounterOpts{Namespace: "patitas", Name: "rate_limit_allowed_total", Help: "Number of allowed requests by limiter type."},
		[]string{"limiter"},
	)
	RateLimitRejected = prometheus.NewCounterVec(
		prometheus.CounterOpts{Namespace: "patitas", Name: "rate_limit_rejected_total", Help: "Number of rejected requests by limiter type."},
		[]string{"limiter"},
	)
	BookingAttempts = prometheus.NewCounter(
		prometheus.CounterOpts{Namespace: "patitas", Name: "booking_attempts_total", Help: "Number of appointment booking attempts."},
	)
	BookingConflicts = prometheus.NewCounter(
		prometheus.CounterOpts{Namespace: "patitas", Name: "booking_conflicts_total", Help: "Number of bookings rejected because the slot was taken."},
	)
)

func RegisterCollectors(reg prometheus.Registerer) {
	reg.MustRegister(RateLimitAllowed)
	reg.MustRegister(RateLimitRejected)
	reg.MustRegister(BookingAttempts)
	reg.MustRegister(BookingConflicts)
}
