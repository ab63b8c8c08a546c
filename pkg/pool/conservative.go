package pool

import (
	"math/rand"

	"github.com/wildfunctions/symcore/pkg/expr"
)

func init() {
	Register("conservative", func() Pool { return &ConservativePool{} })
}

// ConservativePool provides basic building blocks: x and y, small
// non-negative integers (identities included), sums and products.
type ConservativePool struct{}

func (p *ConservativePool) Name() string { return "conservative" }

var conservativeSymbols = []string{"x", "y"}

func (p *ConservativePool) RandomSymbol(rng *rand.Rand) expr.Ref[*expr.Symbol] {
	return expr.Sym(pick(rng, conservativeSymbols))
}

func (p *ConservativePool) RandomLeaf(rng *rand.Rand) expr.Expr {
	if rng.Float64() < 0.5 {
		return p.RandomSymbol(rng).View()
	}
	return expr.Int(int64(rng.Intn(6)))
}

var conservativeOps = []expr.Kind{
	expr.KindPlus,
	expr.KindTimes,
}

func (p *ConservativePool) RandomOp(rng *rand.Rand) expr.Kind {
	return pick(rng, conservativeOps)
}

func (p *ConservativePool) RandomTree(rng *rand.Rand, maxDepth int) expr.Expr {
	return randomTree(p, rng, maxDepth)
}
