// Package monitoring exposes Prometheus metrics for optimizer runs,
// grounded on the teacher's promauto-based instrumentation.
package monitoring

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics bundles the counters and histograms a running Optimizer
// updates. Construct one per process with NewMetrics; it registers
// itself against the default registry (or reg, if supplied).
type Metrics struct {
	TrialsTotal      prometheus.Counter
	BestScore        prometheus.Gauge
	StageSelections  *prometheus.CounterVec
	TrialScore       prometheus.Histogram
	NumericErrors    prometheus.Counter
}

// NewMetrics registers and returns a Metrics bundle. reg may be nil, in
// which case prometheus.DefaultRegisterer is used.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	factory := promauto.With(reg)

	return &Metrics{
		TrialsTotal: factory.NewCounter(prometheus.CounterOpts{
			Namespace: "promptsicle",
			Name:      "trials_total",
			Help:      "Total number of trials appended to the history ledger.",
		}),
		BestScore: factory.NewGauge(prometheus.GaugeOpts{
			Namespace: "promptsicle",
			Name:      "best_score",
			Help:      "Current best trial score for the running optimization.",
		}),
		StageSelections: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: "promptsicle",
			Name:      "stage_selections_total",
			Help:      "Number of times each stage has been selected for mutation.",
		}, []string{"stage"}),
		TrialScore: factory.NewHistogram(prometheus.HistogramOpts{
			Namespace: "promptsicle",
			Name:      "trial_score",
			Help:      "Distribution of evaluator scores across trials.",
			Buckets:   prometheus.LinearBuckets(0, 0.1, 11),
		}),
		NumericErrors: factory.NewCounter(prometheus.CounterOpts{
			Namespace: "promptsicle",
			Name:      "numeric_errors_total",
			Help:      "Number of trials whose evaluator score was non-finite.",
		}),
	}
}

// OnTrial and OnImproved are convenience hooks taking plain values, so a
// caller's events.TrialHandler / events.Handler closure can forward an
// event's fields without knowing the Metrics field names.
func (m *Metrics) OnTrial(stage string, score float64) {
	m.TrialsTotal.Inc()
	m.StageSelections.WithLabelValues(stage).Inc()
	if score != score { // NaN
		m.NumericErrors.Inc()
		return
	}
	m.TrialScore.Observe(score)
}

func (m *Metrics) OnImproved(score float64) {
	m.BestScore.Set(score)
}
