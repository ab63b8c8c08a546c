package symbolic

import "github.com/wildfunctions/symcore/pkg/expr"

// canonicalizer rewrites a tree bottom-up. Each Visit leaves the canonical
// form of the visited node in result.
type canonicalizer struct {
	result expr.Expr
}

func (c *canonicalizer) VisitNumber(n expr.Ref[*expr.Number]) expr.Signal {
	num := n.Get()
	if norm := num.Normalize(); norm != num {
		c.result = expr.New[expr.Node](norm)
		return expr.Continue
	}
	c.result = n.Erase()
	return expr.Continue
}

func (c *canonicalizer) VisitSymbol(s expr.Ref[*expr.Symbol]) expr.Signal {
	c.result = s.Erase()
	return expr.Continue
}

func (c *canonicalizer) VisitUndefined(expr.Ref[*expr.Undefined]) expr.Signal {
	c.result = expr.Undef()
	return expr.Break
}

func (c *canonicalizer) VisitPlus(p expr.Ref[*expr.Plus]) expr.Signal {
	return c.associative(expr.KindPlus, p.Get().Terms())
}

func (c *canonicalizer) VisitTimes(t expr.Ref[*expr.Times]) expr.Signal {
	return c.associative(expr.KindTimes, t.Get().Terms())
}

func (c *canonicalizer) VisitDerivative(d expr.Ref[*expr.Derivative]) expr.Signal {
	node := d.Get()
	if node.Operand().Accept(c) == expr.Break {
		return expr.Break
	}
	operand := c.result
	c.result = expr.Diff(operand, node.Wrt()).View()
	operand.Release()
	return expr.Continue
}

// associative canonicalizes the children of a sum or product, splices
// children of the same operator, folds numbers into one coefficient and
// drops the identity. In a product a zero factor ends the walk with 0.
func (c *canonicalizer) associative(op expr.Kind, children []expr.Expr) expr.Signal {
	var (
		coef    *expr.Number
		owned   []expr.Expr
		kept    []expr.Expr
		absorbs = op == expr.KindTimes
	)
	defer func() { releaseAll(owned) }()

	for _, child := range children {
		if child.Accept(c) == expr.Break {
			return expr.Break
		}
		owned = append(owned, c.result)

		parts := []expr.Expr{c.result}
		if c.result.Kind() == op {
			parts = operands(c.result)
		}
		for _, part := range parts {
			n, ok := expr.As[*expr.Number](part)
			if !ok {
				kept = append(kept, part)
				continue
			}
			if absorbs && n.Get().IsZero() {
				c.result = expr.Zero()
				return expr.Continue
			}
			if coef, ok = combine(op, coef, n.Get()); !ok {
				c.result = expr.Undef()
				return expr.Break
			}
		}
	}

	if coef != nil {
		coef = coef.Normalize()
		if !isIdentity(op, coef) {
			kept = append(kept, expr.New[expr.Node](coef))
			owned = append(owned, kept[len(kept)-1])
		}
	}
	c.result = assemble(op, kept)
	return expr.Continue
}

// Canonicalize returns the canonical form of e: sums and products are
// flattened, numeric operands are folded into a single coefficient,
// identities are dropped, a zero factor absorbs its product and operands
// are sorted by the total order. Derivatives are kept unevaluated. Any
// Undefined node makes the result Undefined.
//
// Canonicalize is idempotent.
func Canonicalize(e expr.Expr) expr.Expr {
	c := &canonicalizer{}
	if e.Accept(c) == expr.Break {
		if c.result.Valid() {
			c.result.Release()
		}
		return expr.Undef()
	}
	return c.result
}
