package engine

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds the Prometheus metrics of a soak run.
//
// Thread Safety: Safe for concurrent use (Prometheus metrics are thread-safe).
type Metrics struct {
	// CasesTotal counts checked cases.
	CasesTotal prometheus.Counter

	// PropertyResultsTotal counts property outcomes by property and
	// outcome (pass, fail, skip).
	PropertyResultsTotal *prometheus.CounterVec

	// CounterexamplesTotal counts distinct shrunk counterexamples.
	CounterexamplesTotal *prometheus.CounterVec

	// GenerationsTotal counts completed generations.
	GenerationsTotal prometheus.Counter

	// RestartsTotal counts restarts after stagnation.
	RestartsTotal prometheus.Counter

	// BestScore is the best case score of the latest generation.
	BestScore prometheus.Gauge

	// GenerationDurationSeconds measures the wall time of one generation.
	GenerationDurationSeconds prometheus.Histogram
}

// NewMetrics creates the soak metrics and registers them with reg.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	f := promauto.With(reg)
	return &Metrics{
		CasesTotal: f.NewCounter(prometheus.CounterOpts{
			Namespace: "symcore",
			Subsystem: "soak",
			Name:      "cases_total",
			Help:      "Total cases checked",
		}),
		PropertyResultsTotal: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: "symcore",
			Subsystem: "soak",
			Name:      "property_results_total",
			Help:      "Property outcomes by property and outcome",
		}, []string{"property", "outcome"}),
		CounterexamplesTotal: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: "symcore",
			Subsystem: "soak",
			Name:      "counterexamples_total",
			Help:      "Distinct shrunk counterexamples by property",
		}, []string{"property"}),
		GenerationsTotal: f.NewCounter(prometheus.CounterOpts{
			Namespace: "symcore",
			Subsystem: "soak",
			Name:      "generations_total",
			Help:      "Total completed generations",
		}),
		RestartsTotal: f.NewCounter(prometheus.CounterOpts{
			Namespace: "symcore",
			Subsystem: "soak",
			Name:      "restarts_total",
			Help:      "Total population restarts after stagnation",
		}),
		BestScore: f.NewGauge(prometheus.GaugeOpts{
			Namespace: "symcore",
			Subsystem: "soak",
			Name:      "best_score",
			Help:      "Best case score of the latest generation",
		}),
		GenerationDurationSeconds: f.NewHistogram(prometheus.HistogramOpts{
			Namespace: "symcore",
			Subsystem: "soak",
			Name:      "generation_duration_seconds",
			Help:      "Wall time of one generation",
			Buckets:   []float64{0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1, 5},
		}),
	}
}

func outcome(passed, skipped bool) string {
	switch {
	case skipped:
		return "skip"
	case passed:
		return "pass"
	default:
		return "fail"
	}
}
