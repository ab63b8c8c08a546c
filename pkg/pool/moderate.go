package pool

import (
	"math/rand"

	"github.com/wildfunctions/symcore/pkg/expr"
)

func init() {
	Register("moderate", func() Pool { return &ModeratePool{} })
}

// ModeratePool extends conservative with negative integers, rationals
// (degenerate ones included), a third symbol and derivatives.
type ModeratePool struct{}

func (p *ModeratePool) Name() string { return "moderate" }

var moderateSymbols = []string{"x", "y", "z"}

func (p *ModeratePool) RandomSymbol(rng *rand.Rand) expr.Ref[*expr.Symbol] {
	return expr.Sym(pick(rng, moderateSymbols))
}

func (p *ModeratePool) RandomLeaf(rng *rand.Rand) expr.Expr {
	r := rng.Float64()
	switch {
	case r < 0.4:
		return p.RandomSymbol(rng).View()
	case r < 0.75:
		return expr.Int(int64(rng.Intn(11) - 5))
	default:
		return randomRational(rng)
	}
}

var moderateOps = []expr.Kind{
	expr.KindPlus,
	expr.KindPlus,
	expr.KindTimes,
	expr.KindTimes,
	expr.KindDerivative,
}

func (p *ModeratePool) RandomOp(rng *rand.Rand) expr.Kind {
	return pick(rng, moderateOps)
}

func (p *ModeratePool) RandomTree(rng *rand.Rand, maxDepth int) expr.Expr {
	return randomTree(p, rng, maxDepth)
}
