package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "gudlft"

// Purchase outcomes used as the outcome label.
const (
	OutcomeCompleted = "completed"
	OutcomeRejected  = "rejected"
	OutcomeClosed    = "closed"
	OutcomeInvalid   = "invalid"
	OutcomeNotFound  = "not_found"
	OutcomeError     = "error"
)

type BookingMetrics struct {
	purchases        *prometheus.CounterVec
	placesBooked     prometheus.Counter
	pointsSpent      prometheus.Counter
	purchaseDuration prometheus.Histogram
	lookups          *prometheus.CounterVec
}

// New registers the booking collectors on reg.
func New(reg prometheus.Registerer) *BookingMetrics {
	m := &BookingMetrics{
		purchases: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "purchases_total",
			Help:      "Purchase attempts by outcome and rejection reason.",
		}, []string{"outcome", "reason"}),
		placesBooked: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "places_booked_total",
			Help:      "Competition places reserved.",
		}),
		pointsSpent: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "points_spent_total",
			Help:      "Club points debited by purchases.",
		}),
		purchaseDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "purchase_duration_seconds",
			Help:      "Time spent applying a purchase.",
			Buckets:   prometheus.ExponentialBuckets(0.0001, 4, 8),
		}),
		lookups: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "lookups_total",
			Help:      "Club and competition lookups by kind and result.",
		}, []string{"kind", "result"}),
	}

	reg.MustRegister(m.purchases, m.placesBooked, m.pointsSpent, m.purchaseDuration, m.lookups)
	return m
}

func (m *BookingMetrics) PurchaseCompleted(places, points int, elapsed time.Duration) {
	if m == nil {
		return
	}
	m.purchases.WithLabelValues(OutcomeCompleted, "").Inc()
	m.placesBooked.Add(float64(places))
	m.pointsSpent.Add(float64(points))
	m.purchaseDuration.Observe(elapsed.Seconds())
}

func (m *BookingMetrics) PurchaseFailed(outcome, reason string, elapsed time.Duration) {
	if m == nil {
		return
	}
	m.purchases.WithLabelValues(outcome, reason).Inc()
	m.purchaseDuration.Observe(elapsed.Seconds())
}

func (m *BookingMetrics) Lookup(kind string, found bool) {
	if m == nil {
		return
	}
	result := "found"
	if !found {
		result = "missing"
	}
	m.lookups.WithLabelValues(kind, result).Inc()
}
