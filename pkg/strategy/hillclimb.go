package strategy

import (
	"math/rand"
	"sort"

	"github.com/wildfunctions/symcore/pkg/pool"
	"github.com/wildfunctions/symcore/pkg/property"
)

const (
	hillclimbMaxDepth      = 4
	hillclimbInjectionRate = 0.05 // share of passing cases replaced with random ones
	hillclimbFocusRate     = 0.3  // chance a slot climbs from a failing case instead of its own
)

func init() {
	Register("hillclimb", func() Strategy { return &HillClimbStrategy{} })
}

// HillClimbStrategy mutates every case in place. Once failures appear, part
// of the population climbs from the failing cases instead, drawn with
// weight on rare failures, so the search stays near counterexamples. Elites
// survive unchanged and the weakest passing cases are replaced with random
// ones.
type HillClimbStrategy struct{}

func (s *HillClimbStrategy) Name() string { return "hillclimb" }

func (s *HillClimbStrategy) Initialize(p pool.Pool, rng *rand.Rand, popSize int) []*property.Case {
	return randomPopulation(p, rng, popSize, hillclimbMaxDepth)
}

func (s *HillClimbStrategy) Evolve(
	population []*property.Case,
	scores []property.Score,
	p pool.Pool,
	rng *rand.Rand,
) []*property.Case {
	n := len(population)
	next := make([]*property.Case, n)
	rare := rarity(scores)

	elite := map[int]bool{}
	for _, i := range diverseElites(scores, eliteBudget(scores, 1)) {
		next[i] = population[i].Clone()
		elite[i] = true
	}

	var failing []int
	for i, sc := range scores {
		if sc.Failures > 0 {
			failing = append(failing, i)
		}
	}

	for i := range next {
		if next[i] != nil {
			continue
		}
		parent := population[i]
		if len(failing) > 0 && rng.Float64() < hillclimbFocusRate {
			parent = population[pickWeighted(failing, rare, rng)]
		}
		child := parent.Clone()
		MutateCase(child, p, rng)
		if !caseOK(child) {
			child = RandomCase(p, rng, hillclimbMaxDepth)
		}
		next[i] = child
	}

	var passing []int
	for i, sc := range scores {
		if sc.Failures == 0 && !elite[i] {
			passing = append(passing, i)
		}
	}
	sort.Slice(passing, func(a, b int) bool {
		return scores[passing[a]].Combined < scores[passing[b]].Combined
	})
	injectionCount := max(int(float64(n)*hillclimbInjectionRate), 1)
	for _, i := range passing {
		if injectionCount == 0 {
			break
		}
		next[i].Release()
		next[i] = RandomCase(p, rng, hillclimbMaxDepth)
		injectionCount--
	}

	return next
}

// pickWeighted draws one of idx with probability proportional to its
// rarity.
func pickWeighted(idx []int, rare []float64, rng *rand.Rand) int {
	total := 0.0
	for _, i := range idx {
		total += rare[i]
	}
	r := rng.Float64() * total
	for _, i := range idx {
		r -= rare[i]
		if r < 0 {
			return i
		}
	}
	return idx[len(idx)-1]
}
