package metrics

import (
	"fmt"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	dto "github.com/prometheus/client_model/go"
)

func TestStorefrontMetricsExportsCountersAndHistogram(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := NewStorefrontMetrics(reg)

	m.ObserveFetch(FetchOutcomeSuccess, 250*time.Millisecond)
	m.ObserveFetch(FetchOutcomeFailure, 10*time.Millisecond)
	m.IncDecision(DecisionConfirmed)
	m.IncNotification("success")
	m.AddCartMutations(CartOpAdd, 1)
	m.AddCartMutations(CartOpRemove, 0)

	mfs, err := reg.Gather()
	if err != nil {
		t.Fatalf("gather metrics: %v", err)
	}

	expectCounter(t, mfs, "shopfront_catalog_fetch_total", "outcome", FetchOutcomeSuccess, 1)
	expectCounter(t, mfs, "shopfront_catalog_fetch_total", "outcome", FetchOutcomeFailure, 1)
	expectCounter(t, mfs, "shopfront_dialog_decisions_total", "decision", DecisionConfirmed, 1)
	expectCounter(t, mfs, "shopfront_notifications_shown_total", "variant", "success", 1)
	expectCounter(t, mfs, "shopfront_cart_mutations_total", "op", CartOpAdd, 1)

	if _, err := fetchCounterValue(mfs, "shopfront_cart_mutations_total", "op", CartOpRemove); err == nil {
		t.Fatal("zero-sized removals should not create a series")
	}

	hist := findMetricFamily(mfs, "shopfront_catalog_fetch_duration_seconds")
	if hist == nil || len(hist.GetMetric()) != 1 {
		t.Fatalf("expected fetch duration histogram")
	}
	if got := hist.GetMetric()[0].GetHistogram().GetSampleCount(); got != 2 {
		t.Fatalf("expected 2 samples, got %d", got)
	}
}

func TestStorefrontMetricsNilSafe(t *testing.T) {
	var m *StorefrontMetrics
	m.ObserveFetch(FetchOutcomeSuccess, time.Second)
	m.IncDecision(DecisionDismissed)
	m.IncNotification("info")
	m.AddCartMutations(CartOpAdd, 1)

	noop := NewStorefrontMetrics(nil)
	noop.IncDecision(DecisionDismissed)
}

func expectCounter(t *testing.T, mfs []*dto.MetricFamily, name, label, value string, want float64) {
	t.Helper()
	got, err := fetchCounterValue(mfs, name, label, value)
	if err != nil {
		t.Fatalf("fetch %s: %v", name, err)
	}
	if got != want {
		t.Fatalf("expected %s{%s=%q}=%v, got %v", name, label, value, want, got)
	}
}

func fetchCounterValue(mfs []*dto.MetricFamily, name, label, value string) (float64, error) {
	mf := findMetricFamily(mfs, name)
	if mf == nil {
		return 0, fmt.Errorf("metric %q not found", name)
	}
	for _, metric := range mf.GetMetric() {
		if matchesLabel(metric.GetLabel(), label, value) {
			return metric.GetCounter().GetValue(), nil
		}
	}
	return 0, fmt.Errorf("metric %q missing label %s=%s", name, label, value)
}

func findMetricFamily(mfs []*dto.MetricFamily, name string) *dto.MetricFamily {
	for _, mf := range mfs {
		if mf.GetName() == name {
			return mf
		}
	}
	return nil
}

func matchesLabel(labels []*dto.LabelPair, name, value string) bool {
	for _, label := range labels {
		if label.GetName() == name && label.GetValue() == value {
			return true
		}
	}
	return false
}
