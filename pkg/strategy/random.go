package strategy

import (
	"math/rand"

	"github.com/wildfunctions/symcore/pkg/pool"
	"github.com/wildfunctions/symcore/pkg/property"
)

const randomMaxDepth = 4

func init() {
	Register("random", func() Strategy { return &RandomStrategy{} })
}

// RandomStrategy draws a fresh population every generation and only
// carries the best case over.
type RandomStrategy struct{}

func (s *RandomStrategy) Name() string { return "random" }

func (s *RandomStrategy) Initialize(p pool.Pool, rng *rand.Rand, popSize int) []*property.Case {
	return randomPopulation(p, rng, popSize, randomMaxDepth)
}

func (s *RandomStrategy) Evolve(
	population []*property.Case,
	scores []property.Score,
	p pool.Pool,
	rng *rand.Rand,
) []*property.Case {
	next := randomPopulation(p, rng, len(population), randomMaxDepth)
	if len(next) > 0 {
		next[0] = population[bestIndex(scores)].Clone()
	}
	return next
}
