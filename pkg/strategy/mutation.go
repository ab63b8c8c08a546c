package strategy

import (
	"math/big"
	"math/rand"

	"github.com/wildfunctions/symcore/pkg/expr"
	"github.com/wildfunctions/symcore/pkg/pool"
	"github.com/wildfunctions/symcore/pkg/property"
)

// MutationType identifies a kind of mutation.
type MutationType int

const (
	MutPoint        MutationType = iota // replace a leaf, swap an operator or a wrt symbol
	MutSubtree                          // replace a random subtree with a new random tree
	MutHoist                            // replace tree with one of its subtrees
	MutConstPerturb                     // adjust a number by ±1-3
	MutGrow                             // wrap a node in a new operation
	MutShrink                           // replace a node with one of its children
)

const maxMutationDepth = 3

// MutateCase applies a random mutation to one tree of the case, or reseeds
// it. The replaced tree is released; trees shared with other cases are
// never modified.
func MutateCase(c *property.Case, p pool.Pool, rng *rand.Rand) {
	var target *expr.Expr
	switch r := rng.Float64(); {
	case r < 0.1:
		c.Seed = rng.Int63()
		return
	case r < 0.4:
		target = &c.A
	case r < 0.7:
		target = &c.B
	default:
		target = &c.C
	}
	old := *target
	*target = MutateTree(old, p, rng)
	old.Release()
}

// MutateTree returns a mutated copy of root. Subtrees off the mutated path
// are shared with root.
func MutateTree(root expr.Expr, p pool.Pool, rng *rand.Rand) expr.Expr {
	switch MutationType(rng.Intn(6)) {
	case MutPoint:
		return pointMutate(root, p, rng)
	case MutSubtree:
		return subtreeMutate(root, p, rng)
	case MutHoist:
		return hoistMutate(root, rng)
	case MutConstPerturb:
		return constPerturb(root, rng)
	case MutGrow:
		return growMutate(root, p, rng)
	case MutShrink:
		return shrinkMutate(root, rng)
	default:
		return root.Clone()
	}
}

// pointMutate changes one node in place of the tree: a leaf becomes a new
// leaf, a sum becomes a product over the same children (and back), and a
// derivative gets a new wrt symbol.
func pointMutate(root expr.Expr, p pool.Pool, rng *rand.Rand) expr.Expr {
	nodes := subtrees(root)
	idx := rng.Intn(len(nodes))
	target := nodes[idx]

	var repl expr.Expr
	switch target.Kind() {
	case expr.KindPlus:
		repl = expr.NewTimes(childrenOf(target)...).View()
	case expr.KindTimes:
		repl = expr.NewPlus(childrenOf(target)...).View()
	case expr.KindDerivative:
		d, _ := expr.As[*expr.Derivative](target)
		repl = expr.Diff(d.Get().Operand(), p.RandomSymbol(rng)).View()
	default:
		repl = p.RandomLeaf(rng)
	}
	defer repl.Release()
	return replaceAt(root, idx, repl)
}

// subtreeMutate replaces a random subtree with a new random tree.
func subtreeMutate(root expr.Expr, p pool.Pool, rng *rand.Rand) expr.Expr {
	nodes := subtrees(root)
	repl := p.RandomTree(rng, maxMutationDepth)
	defer repl.Release()
	return replaceAt(root, rng.Intn(len(nodes)), repl)
}

// hoistMutate replaces the tree with one of its proper subtrees.
func hoistMutate(root expr.Expr, rng *rand.Rand) expr.Expr {
	nodes := subtrees(root)
	if len(nodes) <= 1 {
		return root.Clone()
	}
	return nodes[1+rng.Intn(len(nodes)-1)].Clone()
}

// constPerturb adds ±1 to ±3 to a random finite number. Zero is a valid
// result: it exercises the absorption and identity rules.
func constPerturb(root expr.Expr, rng *rand.Rand) expr.Expr {
	var positions []int
	for i, n := range subtrees(root) {
		if num, ok := expr.As[*expr.Number](n); ok && !num.Get().IsInfinite() {
			positions = append(positions, i)
		}
	}
	if len(positions) == 0 {
		return root.Clone()
	}
	idx := positions[rng.Intn(len(positions))]
	num, _ := expr.As[*expr.Number](subtrees(root)[idx])

	delta := int64(rng.Intn(3) + 1)
	if rng.Float64() < 0.5 {
		delta = -delta
	}
	sum, _ := num.Get().Add(expr.NewInteger(big.NewInt(delta)))
	repl := expr.New[expr.Node](sum.Normalize())
	defer repl.Release()
	return replaceAt(root, idx, repl)
}

// growMutate wraps a random node in a new sum, product or derivative.
func growMutate(root expr.Expr, p pool.Pool, rng *rand.Rand) expr.Expr {
	nodes := subtrees(root)
	idx := rng.Intn(len(nodes))
	old := nodes[idx]

	var repl expr.Expr
	switch p.RandomOp(rng) {
	case expr.KindDerivative:
		repl = expr.Diff(old, p.RandomSymbol(rng)).View()
	case expr.KindPlus:
		leaf := p.RandomLeaf(rng)
		repl = expr.NewPlus(old, leaf).View()
		leaf.Release()
	default:
		leaf := p.RandomLeaf(rng)
		repl = expr.NewTimes(old, leaf).View()
		leaf.Release()
	}
	defer repl.Release()
	return replaceAt(root, idx, repl)
}

// shrinkMutate replaces a compound node with one of its children.
func shrinkMutate(root expr.Expr, rng *rand.Rand) expr.Expr {
	var positions []int
	nodes := subtrees(root)
	for i, n := range nodes {
		if len(childrenOf(n)) > 0 {
			positions = append(positions, i)
		}
	}
	if len(positions) == 0 {
		return root.Clone()
	}
	idx := positions[rng.Intn(len(positions))]
	children := childrenOf(nodes[idx])
	return replaceAt(root, idx, children[rng.Intn(len(children))])
}
