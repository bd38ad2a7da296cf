package metrics

import "github.com/prometheus/client_golang/prometheus"

// BookingMetrics exposes counters for the booking and payment flows. All
// observe methods are nil-safe so callers can run without metrics wired.
type BookingMetrics struct {
	paymentOrdersTotal       *prometheus.CounterVec
	verificationFailures     prometheus.Counter
	bookingsConfirmedTotal   prometheus.Counter
	commitFailedAfterPayment prometheus.Counter
	bookingAttemptsTotal     *prometheus.CounterVec
	slotsBlockedTotal        prometheus.Counter
}

func NewBookingMetrics(reg prometheus.Registerer) *BookingMetrics {
	m := &BookingMetrics{
		paymentOrdersTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "stargaze",
			Subsystem: "payments",
			Name:      "orders_total",
			Help:      "Total payment order creation attempts",
		}, []string{"status"}),
		verificationFailures: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "stargaze",
			Subsystem: "payments",
			Name:      "verification_failures_total",
			Help:      "Total payment signature verification failures",
		}),
		bookingsConfirmedTotal: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "stargaze",
			Subsystem: "booking",
			Name:      "confirmed_total",
			Help:      "Total confirmed bookings",
		}),
		commitFailedAfterPayment: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "stargaze",
			Subsystem: "booking",
			Name:      "commit_failed_after_payment_total",
			Help:      "Bookings that failed to commit after payment capture; each needs manual reconciliation",
		}),
		bookingAttemptsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "stargaze",
			Subsystem: "booking",
			Name:      "attempts_total",
			Help:      "Booking attempts by terminal outcome",
		}, []string{"outcome"}),
		slotsBlockedTotal: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "stargaze",
			Subsystem: "admin",
			Name:      "slots_blocked_total",
			Help:      "Total slots blocked by administrators",
		}),
	}
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	reg.MustRegister(
		m.paymentOrdersTotal,
		m.verificationFailures,
		m.bookingsConfirmedTotal,
		m.commitFailedAfterPayment,
		m.bookingAttemptsTotal,
		m.slotsBlockedTotal,
	)
	return m
}

func (m *BookingMetrics) ObservePaymentOrder(status string) {
	if m == nil {
		return
	}
	m.paymentOrdersTotal.WithLabelValues(status).Inc()
}

func (m *BookingMetrics) ObserveVerificationFailure() {
	if m == nil {
		return
	}
	m.verificationFailures.Inc()
}

func (m *BookingMetrics) ObserveBookingConfirmed() {
	if m == nil {
		return
	}
	m.bookingsConfirmedTotal.Inc()
}

func (m *BookingMetrics) ObserveCommitFailedAfterPayment() {
	if m == nil {
		return
	}
	m.commitFailedAfterPayment.Inc()
}

func (m *BookingMetrics) ObserveAttemptOutcome(outcome string) {
	if m == nil {
		return
	}
	m.bookingAttemptsTotal.WithLabelValues(outcome).Inc()
}

func (m *BookingMetrics) ObserveSlotsBlocked(count int) {
	if m == nil {
		return
	}
	m.slotsBlockedTotal.Add(float64(count))
}
