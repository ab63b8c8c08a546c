package symbolic

import "github.com/wildfunctions/symcore/pkg/expr"

// differ computes the derivative of the visited node with respect to wrt
// and leaves it in result.
type differ struct {
	wrt    expr.Ref[*expr.Symbol]
	result expr.Expr
}

func (d *differ) VisitNumber(expr.Ref[*expr.Number]) expr.Signal {
	d.result = expr.Zero()
	return expr.Continue
}

func (d *differ) VisitSymbol(s expr.Ref[*expr.Symbol]) expr.Signal {
	if s.Equal(d.wrt.View()) {
		d.result = expr.One()
	} else {
		d.result = expr.Zero()
	}
	return expr.Continue
}

func (d *differ) VisitUndefined(expr.Ref[*expr.Undefined]) expr.Signal {
	d.result = expr.Undef()
	return expr.Break
}

// VisitPlus differentiates term by term.
func (d *differ) VisitPlus(p expr.Ref[*expr.Plus]) expr.Signal {
	terms := p.Get().Terms()
	parts := make([]expr.Expr, 0, len(terms))
	defer func() { releaseAll(parts) }()

	for _, t := range terms {
		if t.Accept(d) == expr.Break {
			return expr.Break
		}
		parts = append(parts, d.result)
	}
	d.result = assemble(expr.KindPlus, parts)
	return expr.Continue
}

// VisitTimes applies the product rule. Equal factors are adjacent in a
// sorted product and are differentiated once: a factor f occurring m times
// contributes m * f' * (the product without one f).
func (d *differ) VisitTimes(t expr.Ref[*expr.Times]) expr.Signal {
	factors := t.Get().Terms()
	var parts []expr.Expr
	defer func() { releaseAll(parts) }()

	for i := 0; i < len(factors); {
		j := i + 1
		for j < len(factors) && expr.Equal(factors[i], factors[j]) {
			j++
		}
		if factors[i].Accept(d) == expr.Break {
			return expr.Break
		}
		df := d.result

		term := make([]expr.Expr, 0, len(factors)+1)
		term = append(term, df)
		if m := j - i; m > 1 {
			term = append(term, expr.Int(int64(m)))
		}
		owned := len(term)
		term = append(term, factors[:i]...)
		term = append(term, factors[i+1:]...)
		parts = append(parts, expr.NewTimes(term...).View())
		releaseAll(term[:owned])
		i = j
	}
	d.result = assemble(expr.KindPlus, parts)
	return expr.Continue
}

// VisitDerivative evaluates the inner derivative first and differentiates
// its result.
func (d *differ) VisitDerivative(inner expr.Ref[*expr.Derivative]) expr.Signal {
	evaluated := EvalDerivative(inner)
	defer evaluated.Release()
	if evaluated.Kind() == expr.KindUndefined {
		d.result = expr.Undef()
		return expr.Break
	}
	return evaluated.Accept(d)
}

// EvalDerivative differentiates the operand of d with respect to its
// symbol and returns the canonical result. The operand is canonicalized
// first so that equal factors of a product are adjacent. Nested
// derivatives are evaluated innermost first.
func EvalDerivative(d expr.Ref[*expr.Derivative]) expr.Expr {
	node := d.Get()
	operand := Canonicalize(node.Operand())
	defer operand.Release()
	if operand.Kind() == expr.KindUndefined {
		return expr.Undef()
	}

	v := &differ{wrt: node.Wrt()}
	if operand.Accept(v) == expr.Break {
		if v.result.Valid() {
			v.result.Release()
		}
		return expr.Undef()
	}
	out := Canonicalize(v.result)
	v.result.Release()
	return out
}
