package pool

import (
	"math/big"
	"math/rand"

	"github.com/wildfunctions/symcore/pkg/expr"
)

// randomRational returns p/q with small terms. One draw in four keeps a
// denominator of 1 as a raw rational, which only the canonicalizer turns
// into an integer.
func randomRational(rng *rand.Rand) expr.Expr {
	p := int64(rng.Intn(13) - 6)
	if rng.Float64() < 0.25 {
		return expr.New[expr.Node](expr.NewRational(big.NewRat(p, 1)))
	}
	q := int64(rng.Intn(6) + 2)
	return expr.New[expr.Node](expr.NewRational(big.NewRat(p, q)))
}
