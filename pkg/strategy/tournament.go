package strategy

import (
	"math/rand"

	"github.com/wildfunctions/symcore/pkg/pool"
	"github.com/wildfunctions/symcore/pkg/property"
)

const (
	tournamentMaxDepth = 4
	tournamentSize     = 5
	eliteRate          = 0.05 // base share of the population carried over
	mutationRate       = 0.8  // probability of mutation after crossover
)

func init() {
	Register("tournament", func() Strategy { return &TournamentStrategy{} })
}

// TournamentStrategy breeds failing cases. Tournaments prefer cases that
// fail properties few others fail, so one easy failure does not take over
// the population, and the elite set keeps a representative of every failed
// property.
type TournamentStrategy struct{}

func (s *TournamentStrategy) Name() string { return "tournament" }

func (s *TournamentStrategy) Initialize(p pool.Pool, rng *rand.Rand, popSize int) []*property.Case {
	return randomPopulation(p, rng, popSize, tournamentMaxDepth)
}

func (s *TournamentStrategy) Evolve(
	population []*property.Case,
	scores []property.Score,
	p pool.Pool,
	rng *rand.Rand,
) []*property.Case {
	n := len(population)
	next := make([]*property.Case, 0, n)
	rare := rarity(scores)

	base := max(int(float64(n)*eliteRate), 1)
	for _, i := range diverseElites(scores, eliteBudget(scores, base)) {
		next = append(next, population[i].Clone())
	}

	for len(next) < n {
		p1 := tournamentSelect(population, scores, rare, rng)
		p2 := tournamentSelect(population, scores, rare, rng)

		c1, c2 := CrossoverCases(p1, p2, rng)
		for _, c := range []*property.Case{c1, c2} {
			if len(next) == n {
				break
			}
			if rng.Float64() < mutationRate {
				MutateCase(c, p, rng)
			}
			if !caseOK(c) {
				c = RandomCase(p, rng, tournamentMaxDepth)
			}
			next = append(next, c)
		}
	}

	return next
}

// tournamentSelect returns the winner of tournamentSize random draws. The
// winner is borrowed from the population.
func tournamentSelect(pop []*property.Case, scores []property.Score, rare []float64, rng *rand.Rand) *property.Case {
	best := rng.Intn(len(pop))
	for i := 1; i < tournamentSize; i++ {
		if idx := rng.Intn(len(pop)); ahead(idx, best, rare, scores) {
			best = idx
		}
	}
	return pop[best]
}
