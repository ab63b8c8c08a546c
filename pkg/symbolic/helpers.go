package symbolic

import "github.com/wildfunctions/symcore/pkg/expr"

// operands returns the children of a sum or product, and nil for any other
// node.
func operands(e expr.Expr) []expr.Expr {
	if p, ok := expr.As[*expr.Plus](e); ok {
		return p.Get().Terms()
	}
	if t, ok := expr.As[*expr.Times](e); ok {
		return t.Get().Terms()
	}
	return nil
}

// combine folds n into the running coefficient of op. It reports false for
// an indeterminate sum.
func combine(op expr.Kind, coef, n *expr.Number) (*expr.Number, bool) {
	if coef == nil {
		return n, true
	}
	if op == expr.KindPlus {
		return coef.Add(n)
	}
	return coef.Mul(n), true
}

func isIdentity(op expr.Kind, n *expr.Number) bool {
	if op == expr.KindPlus {
		return n.IsZero()
	}
	return n.IsOne()
}

func identity(op expr.Kind) expr.Expr {
	if op == expr.KindPlus {
		return expr.Zero()
	}
	return expr.One()
}

// assemble wraps borrowed operands in a new sorted node of kind op, or
// unwraps the empty and single-operand cases.
func assemble(op expr.Kind, terms []expr.Expr) expr.Expr {
	switch len(terms) {
	case 0:
		return identity(op)
	case 1:
		return terms[0].Clone()
	}
	if op == expr.KindPlus {
		return expr.NewPlus(terms...).View()
	}
	return expr.NewTimes(terms...).View()
}

func releaseAll(es []expr.Expr) {
	for i := range es {
		es[i].Release()
	}
}
