package pool

import (
	"fmt"
	"math/rand"
	"slices"

	"github.com/wildfunctions/symcore/pkg/expr"
)

// Pool provides random building blocks for constructing expression trees.
type Pool interface {
	Name() string
	RandomLeaf(rng *rand.Rand) expr.Expr
	RandomSymbol(rng *rand.Rand) expr.Ref[*expr.Symbol]
	RandomOp(rng *rand.Rand) expr.Kind
	RandomTree(rng *rand.Rand, maxDepth int) expr.Expr
}

var registry = map[string]func() Pool{}

// Register adds a pool constructor to the registry.
func Register(name string, constructor func() Pool) {
	registry[name] = constructor
}

// Get returns a pool by name.
func Get(name string) (Pool, error) {
	ctor, ok := registry[name]
	if !ok {
		return nil, fmt.Errorf("unknown pool: %s", name)
	}
	return ctor(), nil
}

// Names returns all registered pool names, sorted.
func Names() []string {
	names := make([]string, 0, len(registry))
	for k := range registry {
		names = append(names, k)
	}
	slices.Sort(names)
	return names
}

// randomTree is a shared helper for building random trees. Sums and
// products are built with the raw constructors so the result is usually
// not canonical.
func randomTree(p Pool, rng *rand.Rand, maxDepth int) expr.Expr {
	if maxDepth <= 1 {
		return p.RandomLeaf(rng)
	}
	// Bias toward leaves at shallow depths to keep trees small
	if rng.Float64() < 0.35 {
		return p.RandomLeaf(rng)
	}
	switch op := p.RandomOp(rng); op {
	case expr.KindDerivative:
		return expr.Diff(randomTree(p, rng, maxDepth-1), p.RandomSymbol(rng)).View()
	default:
		children := make([]expr.Expr, 2+rng.Intn(2))
		for i := range children {
			children[i] = randomTree(p, rng, maxDepth-1)
		}
		if op == expr.KindPlus {
			return expr.NewPlus(children...).View()
		}
		return expr.NewTimes(children...).View()
	}
}

func pick[T any](rng *rand.Rand, from []T) T {
	return from[rng.Intn(len(from))]
}
