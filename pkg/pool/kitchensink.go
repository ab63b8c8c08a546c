package pool

import (
	"math/big"
	"math/rand"

	"github.com/wildfunctions/symcore/pkg/expr"
)

func init() {
	Register("kitchensink", func() Pool { return &KitchenSinkPool{} })
}

// KitchenSinkPool extends moderate with infinities, Undefined and integers
// too large for a machine word.
type KitchenSinkPool struct{}

func (p *KitchenSinkPool) Name() string { return "kitchensink" }

var kitchenSinkSymbols = []string{"x", "y", "z", "w"}

func (p *KitchenSinkPool) RandomSymbol(rng *rand.Rand) expr.Ref[*expr.Symbol] {
	return expr.Sym(pick(rng, kitchenSinkSymbols))
}

func (p *KitchenSinkPool) RandomLeaf(rng *rand.Rand) expr.Expr {
	r := rng.Float64()
	switch {
	case r < 0.35:
		return p.RandomSymbol(rng).View()
	case r < 0.6:
		return expr.Int(int64(rng.Intn(11) - 5))
	case r < 0.75:
		return randomRational(rng)
	case r < 0.83:
		// 2^64 and beyond
		v := new(big.Int).Lsh(big.NewInt(int64(rng.Intn(9)+1)), 64)
		return expr.BigInt(v)
	case r < 0.95:
		if rng.Float64() < 0.5 {
			return expr.Inf(expr.SignMinus)
		}
		return expr.Inf(expr.SignPlus)
	default:
		return expr.Undef()
	}
}

var kitchenSinkOps = []expr.Kind{
	expr.KindPlus,
	expr.KindTimes,
	expr.KindDerivative,
}

func (p *KitchenSinkPool) RandomOp(rng *rand.Rand) expr.Kind {
	return pick(rng, kitchenSinkOps)
}

func (p *KitchenSinkPool) RandomTree(rng *rand.Rand, maxDepth int) expr.Expr {
	return randomTree(p, rng, maxDepth)
}
