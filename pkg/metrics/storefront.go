package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "shopfront"

// Outcome labels for catalog fetches.
const (
	FetchOutcomeSuccess = "success"
	FetchOutcomeFailure = "failure"
)

// Decision labels for dialog resolutions.
const (
	DecisionConfirmed        = "confirmed"
	DecisionGenericConfirmed = "generic_confirmed"
	DecisionDismissed        = "dismissed"
)

// Cart mutation labels.
const (
	CartOpAdd    = "add"
	CartOpRemove = "remove"
)

// StorefrontMetrics records client-side state transitions.
type StorefrontMetrics struct {
	fetchTotal    *prometheus.CounterVec
	fetchDuration prometheus.Histogram
	decisions     *prometheus.CounterVec
	notifications *prometheus.CounterVec
	cartMutations *prometheus.CounterVec
}

// NewStorefrontMetrics registers the storefront metrics on the provided registerer.
// A nil registerer yields a no-op collector.
func NewStorefrontMetrics(reg prometheus.Registerer) *StorefrontMetrics {
	if reg == nil {
		return &StorefrontMetrics{}
	}
	fetchTotal := prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "catalog_fetch_total",
		Help:      "Catalog fetch attempts by outcome.",
	}, []string{"outcome"})
	fetchDuration := prometheus.NewHistogram(prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "catalog_fetch_duration_seconds",
		Help:      "Duration of catalog fetches in seconds.",
		Buckets:   prometheus.DefBuckets,
	})
	decisions := prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "dialog_decisions_total",
		Help:      "Confirmation dialog resolutions by decision.",
	}, []string{"decision"})
	notifications := prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "notifications_shown_total",
		Help:      "Notifications raised by variant.",
	}, []string{"variant"})
	cartMutations := prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "cart_mutations_total",
		Help:      "Cart store mutations by operation.",
	}, []string{"op"})
	reg.MustRegister(fetchTotal, fetchDuration, decisions, notifications, cartMutations)
	return &StorefrontMetrics{
		fetchTotal:    fetchTotal,
		fetchDuration: fetchDuration,
		decisions:     decisions,
		notifications: notifications,
		cartMutations: cartMutations,
	}
}

// ObserveFetch records one finished catalog fetch.
func (m *StorefrontMetrics) ObserveFetch(outcome string, duration time.Duration) {
	if m == nil || m.fetchTotal == nil {
		return
	}
	m.fetchTotal.WithLabelValues(normalizeLabel(outcome)).Inc()
	m.fetchDuration.Observe(duration.Seconds())
}

// IncDecision counts a dialog resolution.
func (m *StorefrontMetrics) IncDecision(decision string) {
	if m == nil || m.decisions == nil {
		return
	}
	m.decisions.WithLabelValues(normalizeLabel(decision)).Inc()
}

// IncNotification counts a notification raised with the given variant.
func (m *StorefrontMetrics) IncNotification(variant string) {
	if m == nil || m.notifications == nil {
		return
	}
	m.notifications.WithLabelValues(normalizeLabel(variant)).Inc()
}

// AddCartMutations counts cart mutations; n may be zero for no-op removals.
func (m *StorefrontMetrics) AddCartMutations(op string, n int) {
	if m == nil || m.cartMutations == nil || n <= 0 {
		return
	}
	m.cartMutations.WithLabelValues(normalizeLabel(op)).Add(float64(n))
}

func normalizeLabel(value string) string {
	if value == "" {
		return "unknown"
	}
	return value
}
