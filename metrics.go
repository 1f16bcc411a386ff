package rcforest

import "github.com/prometheus/client_golang/prometheus"

// Metrics holds optional Prometheus collectors for a forest instance.
// A nil *Metrics (the default) means every method below is a no-op;
// every call site in this package goes through these methods rather
// than checking for nil itself.
type Metrics struct {
	applyTotal        prometheus.Counter
	applyLevels       prometheus.Histogram
	applyBatchSize    prometheus.Histogram
	applyDuration     prometheus.Histogram
	cancelTotal       prometheus.Counter
}

// NewMetrics registers a forest's collectors under reg with the given
// name prefix, e.g. "rcforest_mst". Pass the result to WithMetrics.
func NewMetrics(reg prometheus.Registerer, namespace string) *Metrics {
	m := &Metrics{
		applyTotal: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "scheduled_apply_total",
			Help:      "Number of ScheduledApply calls that committed a batch.",
		}),
		applyLevels: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "contraction_levels",
			Help:      "Number of rake-and-compress levels a ScheduledApply needed to converge.",
			Buckets:   prometheus.LinearBuckets(1, 1, 20),
		}),
		applyBatchSize: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "scheduled_apply_batch_size",
			Help:      "Number of scheduled edits committed per ScheduledApply call.",
			Buckets:   prometheus.ExponentialBuckets(1, 2, 16),
		}),
		applyDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "scheduled_apply_duration_seconds",
			Help:      "Wall time spent inside ScheduledApply.",
		}),
		cancelTotal: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "scheduled_cancel_total",
			Help:      "Number of ScheduledCancel calls.",
		}),
	}
	if reg != nil {
		reg.MustRegister(m.applyTotal, m.applyLevels, m.applyBatchSize, m.applyDuration, m.cancelTotal)
	}
	return m
}

func (m *Metrics) observeApply(levels, batchSize int, seconds float64) {
	if m == nil {
		return
	}
	m.applyTotal.Inc()
	m.applyLevels.Observe(float64(levels))
	m.applyBatchSize.Observe(float64(batchSize))
	m.applyDuration.Observe(seconds)
}

func (m *Metrics) observeCancel() {
	if m == nil {
		return
	}
	m.cancelTotal.Inc()
}
