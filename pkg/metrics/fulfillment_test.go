package metrics

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestNilSafeWithoutRegisterer(t *testing.T) {
	m := NewFulfillmentMetrics(nil)
	m.ObserveReconcile("full", time.Second)
	m.IncTransition("To Dispatch", "applied")
	m.AddHDLines("stored", 3)

	var zero *FulfillmentMetrics
	zero.IncTransition("Picked", "noop")
}

func TestTransitionCounter(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := NewFulfillmentMetrics(reg)

	m.IncTransition("To Dispatch", "applied")
	m.IncTransition("To Dispatch", "applied")
	m.IncTransition("Ordered", "rejected")

	if got := testutil.ToFloat64(m.transitions.WithLabelValues("to_dispatch", "applied")); got != 2 {
		t.Fatalf("to_dispatch applied = %v, want 2", got)
	}
	if got := testutil.ToFloat64(m.transitions.WithLabelValues("ordered", "rejected")); got != 1 {
		t.Fatalf("ordered rejected = %v, want 1", got)
	}
}

func TestHDLineCounterIgnoresNonPositive(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := NewFulfillmentMetrics(reg)

	m.AddHDLines("stored", 0)
	m.AddHDLines("stored", -4)
	m.AddHDLines("stored", 5)

	if got := testutil.ToFloat64(m.hdLines.WithLabelValues("stored")); got != 5 {
		t.Fatalf("stored lines = %v, want 5", got)
	}
}
