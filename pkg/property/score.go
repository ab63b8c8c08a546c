package property

import (
	"math"
	"slices"

	"github.com/wildfunctions/symcore/pkg/expr"
)

// Weights controls the relative importance of the score components.
type Weights struct {
	Failure    float64 `yaml:"failure" json:"failure" validate:"gte=0"`
	Complexity float64 `yaml:"complexity" json:"complexity" validate:"gte=0"` // penalty weight (subtracted)
	Coverage   float64 `yaml:"coverage" json:"coverage" validate:"gte=0"`
}

// DefaultWeights returns the default score weights.
func DefaultWeights() Weights {
	return Weights{
		Failure:    100.0,
		Complexity: 0.5,
		Coverage:   2.0,
	}
}

// Score ranks a case: failing cases rank highest, and among equals the
// smaller case covering more node kinds wins.
type Score struct {
	Combined   float64 `json:"combined"`
	Failures   int     `json:"failures"`
	Complexity float64 `json:"complexity"`
	Coverage   int     `json:"coverage"`

	// Failed names the properties the case failed, sorted.
	Failed []string `json:"failed,omitempty"`
}

// WorstScore returns the score for a case that could not be checked.
func WorstScore() Score {
	return Score{Combined: -1e9}
}

// ComputeScore scores a case from its property results.
func ComputeScore(c *Case, results []Result, w Weights) Score {
	if c == nil || len(results) == 0 {
		return WorstScore()
	}

	failed := Failed(results)
	failures := len(failed)
	complexity := c.Complexity()
	coverage := Coverage(c)

	// Once a case fails, bloat stops helping: scale the penalty up so
	// smaller counterexamples outrank larger ones.
	penaltyScale := 1.0
	if failures > 0 {
		penaltyScale = 2.0
	}

	combined := w.Failure*float64(failures) +
		w.Coverage*float64(coverage) -
		w.Complexity*math.Log1p(complexity)*penaltyScale

	var names []string
	for _, r := range failed {
		names = append(names, r.Property)
	}
	slices.Sort(names)

	return Score{
		Combined:   combined,
		Failures:   failures,
		Complexity: complexity,
		Coverage:   coverage,
		Failed:     names,
	}
}

var allKinds = []expr.Kind{
	expr.KindUndefined,
	expr.KindNumber,
	expr.KindSymbol,
	expr.KindPlus,
	expr.KindTimes,
	expr.KindDerivative,
}

// Coverage counts the distinct node kinds present in the case. An infinity
// counts as one more kind.
func Coverage(c *Case) int {
	n := 0
	for _, k := range allKinds {
		for _, t := range c.Trees() {
			if expr.ContainsKind(t, k) {
				n++
				break
			}
		}
	}
	for _, t := range c.Trees() {
		if expr.ContainsInfinity(t) {
			n++
			break
		}
	}
	return n
}
