package symbolic

import "github.com/wildfunctions/symcore/pkg/expr"

// expander rebuilds a tree with every derivative evaluated, innermost
// first. Undefined nodes are kept in place; the canonicalizer decides
// whether they survive.
type expander struct {
	result expr.Expr
}

func (ex *expander) VisitNumber(n expr.Ref[*expr.Number]) expr.Signal {
	ex.result = n.Erase()
	return expr.Continue
}

func (ex *expander) VisitSymbol(s expr.Ref[*expr.Symbol]) expr.Signal {
	ex.result = s.Erase()
	return expr.Continue
}

func (ex *expander) VisitUndefined(expr.Ref[*expr.Undefined]) expr.Signal {
	ex.result = expr.Undef()
	return expr.Continue
}

func (ex *expander) VisitPlus(p expr.Ref[*expr.Plus]) expr.Signal {
	return ex.rebuild(expr.KindPlus, p.Get().Terms())
}

func (ex *expander) VisitTimes(t expr.Ref[*expr.Times]) expr.Signal {
	return ex.rebuild(expr.KindTimes, t.Get().Terms())
}

func (ex *expander) VisitDerivative(d expr.Ref[*expr.Derivative]) expr.Signal {
	node := d.Get()
	if node.Operand().Accept(ex) == expr.Break {
		return expr.Break
	}
	operand := ex.result
	defer operand.Release()

	ex.result = EvalDerivative(expr.Diff(operand, node.Wrt()))
	return expr.Continue
}

func (ex *expander) rebuild(op expr.Kind, children []expr.Expr) expr.Signal {
	parts := make([]expr.Expr, 0, len(children))
	defer func() { releaseAll(parts) }()

	for _, child := range children {
		if child.Accept(ex) == expr.Break {
			return expr.Break
		}
		parts = append(parts, ex.result)
	}
	if op == expr.KindPlus {
		ex.result = expr.NewPlus(parts...).View()
	} else {
		ex.result = expr.NewTimes(parts...).View()
	}
	return expr.Continue
}

// SymbolicEval evaluates every derivative reachable in e and returns the
// canonical form of the result.
func SymbolicEval(e expr.Expr) expr.Expr {
	ex := &expander{}
	if e.Accept(ex) == expr.Break {
		if ex.result.Valid() {
			ex.result.Release()
		}
		return expr.Undef()
	}
	defer ex.result.Release()
	return Canonicalize(ex.result)
}
