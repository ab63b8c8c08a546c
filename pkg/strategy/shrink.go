package strategy

import (
	"github.com/wildfunctions/symcore/pkg/expr"
	"github.com/wildfunctions/symcore/pkg/property"
)

// Shrink greedily reduces tree while fails keeps reporting true, trying at
// most steps accepted reductions. Every accepted candidate has a strictly
// lower weighted complexity, so shrinking terminates.
func Shrink(tree expr.Expr, fails func(expr.Expr) bool, steps int) expr.Expr {
	cur := tree.Clone()
	for range steps {
		next, ok := shrinkStep(cur, fails)
		if !ok {
			break
		}
		cur.Release()
		cur = next
	}
	return cur
}

func shrinkStep(tree expr.Expr, fails func(expr.Expr) bool) (expr.Expr, bool) {
	weight := expr.WeightedComplexity(tree)
	for _, cand := range shrinkCandidates(tree) {
		if expr.WeightedComplexity(cand) < weight && fails(cand) {
			return cand, true
		}
		cand.Release()
	}
	return expr.Expr{}, false
}

// shrinkCandidates lists the one-step reductions of tree, biggest cuts
// first: proper subtrees, then each compound node replaced by a child, then
// numbers replaced by 0 and 1.
func shrinkCandidates(tree expr.Expr) []expr.Expr {
	nodes := subtrees(tree)
	var out []expr.Expr
	for _, n := range nodes[1:] {
		out = append(out, n.Clone())
	}
	for i, n := range nodes {
		for _, child := range childrenOf(n) {
			out = append(out, replaceAt(tree, i, child))
		}
	}
	for i, n := range nodes {
		if n.Kind() != expr.KindNumber {
			continue
		}
		for _, simple := range []expr.Expr{expr.Zero(), expr.One()} {
			out = append(out, replaceAt(tree, i, simple))
			simple.Release()
		}
	}
	return out
}

// ShrinkCase shrinks each tree of c in turn while fails keeps reporting
// true for the case with the reduced tree in place.
func ShrinkCase(c *property.Case, fails func(*property.Case) bool, steps int) *property.Case {
	cur := c.Clone()
	for _, slot := range []*expr.Expr{&cur.A, &cur.B, &cur.C} {
		old := *slot
		*slot = Shrink(old, func(t expr.Expr) bool {
			probe := *cur
			switch slot {
			case &cur.A:
				probe.A = t
			case &cur.B:
				probe.B = t
			default:
				probe.C = t
			}
			return fails(&probe)
		}, steps)
		old.Release()
	}
	return cur
}
