package metrics

import (
	"strings"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// FulfillmentMetrics records reconciliation passes, transition outcomes and
// HD upload ingestion counters.
type FulfillmentMetrics struct {
	reconcileDuration *prometheus.HistogramVec
	transitions       *prometheus.CounterVec
	hdLines           *prometheus.CounterVec
}

// NewFulfillmentMetrics registers the fulfillment metrics on the provided registerer.
func NewFulfillmentMetrics(reg prometheus.Registerer) *FulfillmentMetrics {
	if reg == nil {
		return &FulfillmentMetrics{}
	}
	reconcileDuration := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "reconcile_pass_duration_seconds",
		Help:    "Duration of reconciliation passes in seconds.",
		Buckets: prometheus.DefBuckets,
	}, []string{"mode"})
	transitions := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "progress_transitions_total",
		Help: "Progress transitions by target status and outcome.",
	}, []string{"target", "outcome"})
	hdLines := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "hd_upload_lines_total",
		Help: "HD upload line outcomes (stored, excluded, skipped, error).",
	}, []string{"outcome"})
	reg.MustRegister(reconcileDuration, transitions, hdLines)
	return &FulfillmentMetrics{
		reconcileDuration: reconcileDuration,
		transitions:       transitions,
		hdLines:           hdLines,
	}
}

// ObserveReconcile records the duration of one reconciliation pass.
func (m *FulfillmentMetrics) ObserveReconcile(mode string, duration time.Duration) {
	if m == nil || m.reconcileDuration == nil {
		return
	}
	m.reconcileDuration.WithLabelValues(normalizeLabel(mode)).Observe(duration.Seconds())
}

// IncTransition counts one transition attempt by target status and outcome.
func (m *FulfillmentMetrics) IncTransition(target, outcome string) {
	if m == nil || m.transitions == nil {
		return
	}
	m.transitions.WithLabelValues(normalizeLabel(target), normalizeLabel(outcome)).Inc()
}

// AddHDLines counts HD upload lines by outcome.
func (m *FulfillmentMetrics) AddHDLines(outcome string, n int) {
	if m == nil || m.hdLines == nil || n <= 0 {
		return
	}
	m.hdLines.WithLabelValues(normalizeLabel(outcome)).Add(float64(n))
}

func normalizeLabel(value string) string {
	trimmed := strings.TrimSpace(strings.ToLower(value))
	if trimmed == "" {
		return "unknown"
	}
	return strings.ReplaceAll(trimmed, " ", "_")
}
