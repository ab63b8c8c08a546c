package strategy

import (
	"math/rand"

	"github.com/wildfunctions/symcore/pkg/expr"
	"github.com/wildfunctions/symcore/pkg/property"
)

// CrossoverCases performs subtree crossover between two cases, returning
// two new offspring. Each of the three tree slots is crossed.
func CrossoverCases(a, b *property.Case, rng *rand.Rand) (*property.Case, *property.Case) {
	c1 := &property.Case{Seed: a.Seed}
	c2 := &property.Case{Seed: b.Seed}

	c1.A, c2.A = crossoverTrees(a.A, b.A, rng)
	c1.B, c2.B = crossoverTrees(a.B, b.B, rng)
	c1.C, c2.C = crossoverTrees(a.C, b.C, rng)

	return c1, c2
}

// crossoverTrees swaps random subtrees between two expression trees. The
// inputs are left untouched.
func crossoverTrees(a, b expr.Expr, rng *rand.Rand) (expr.Expr, expr.Expr) {
	nodesA := subtrees(a)
	nodesB := subtrees(b)

	idxA := rng.Intn(len(nodesA))
	idxB := rng.Intn(len(nodesB))

	return replaceAt(a, idxA, nodesB[idxB]), replaceAt(b, idxB, nodesA[idxA])
}
