package strategy

import (
	"fmt"
	"math/rand"
	"slices"

	"github.com/wildfunctions/symcore/pkg/expr"
	"github.com/wildfunctions/symcore/pkg/pool"
	"github.com/wildfunctions/symcore/pkg/property"
)

// Strategy defines how a population of cases is generated and evolved
// toward property failures.
type Strategy interface {
	Name() string
	Initialize(p pool.Pool, rng *rand.Rand, popSize int) []*property.Case
	Evolve(population []*property.Case, scores []property.Score, p pool.Pool, rng *rand.Rand) []*property.Case
}

var registry = map[string]func() Strategy{}

// Register adds a strategy constructor to the registry.
func Register(name string, constructor func() Strategy) {
	registry[name] = constructor
}

// Get returns a strategy by name.
func Get(name string) (Strategy, error) {
	ctor, ok := registry[name]
	if !ok {
		return nil, fmt.Errorf("unknown strategy: %s", name)
	}
	return ctor(), nil
}

// Names returns all registered strategy names, sorted.
func Names() []string {
	names := make([]string, 0, len(registry))
	for k := range registry {
		names = append(names, k)
	}
	slices.Sort(names)
	return names
}

const (
	maxTreeDepth = 10 // reject trees deeper than this
	maxNodeCount = 50 // reject cases with more total nodes than this
)

// caseOK checks that a case isn't too deep or bloated.
func caseOK(c *property.Case) bool {
	return expr.Depth(c.A) <= maxTreeDepth &&
		expr.Depth(c.B) <= maxTreeDepth &&
		expr.Depth(c.C) <= maxTreeDepth &&
		c.NodeCount() <= maxNodeCount
}

// RandomCase creates a random case with trees of given max depth, drawing
// again until the case passes the size limits.
func RandomCase(p pool.Pool, rng *rand.Rand, maxDepth int) *property.Case {
	for {
		c := &property.Case{
			A:    p.RandomTree(rng, maxDepth),
			B:    p.RandomTree(rng, maxDepth),
			C:    p.RandomTree(rng, maxDepth),
			Seed: rng.Int63(),
		}
		if caseOK(c) {
			return c
		}
	}
}

func randomPopulation(p pool.Pool, rng *rand.Rand, popSize, maxDepth int) []*property.Case {
	pop := make([]*property.Case, popSize)
	for i := range pop {
		pop[i] = RandomCase(p, rng, maxDepth)
	}
	return pop
}

// bestIndex returns the index of the highest-scoring case.
func bestIndex(scores []property.Score) int {
	best := 0
	for i := range scores {
		if scores[i].Combined > scores[best].Combined {
			best = i
		}
	}
	return best
}
