package symbolic

import "github.com/wildfunctions/symcore/pkg/expr"

// substituter rebuilds a tree with a symbol replaced, folding through the
// expr operators as it goes.
type substituter struct {
	sym    expr.Ref[*expr.Symbol]
	value  expr.Expr
	result expr.Expr
}

func (s *substituter) VisitNumber(n expr.Ref[*expr.Number]) expr.Signal {
	s.result = n.Erase()
	return expr.Continue
}

func (s *substituter) VisitSymbol(sym expr.Ref[*expr.Symbol]) expr.Signal {
	if sym.Equal(s.sym.View()) {
		s.result = s.value.Clone()
	} else {
		s.result = sym.Erase()
	}
	return expr.Continue
}

func (s *substituter) VisitUndefined(expr.Ref[*expr.Undefined]) expr.Signal {
	s.result = expr.Undef()
	return expr.Break
}

func (s *substituter) VisitPlus(p expr.Ref[*expr.Plus]) expr.Signal {
	return s.rebuild(p.Get().Terms(), expr.Sum)
}

func (s *substituter) VisitTimes(t expr.Ref[*expr.Times]) expr.Signal {
	return s.rebuild(t.Get().Terms(), expr.Product)
}

// VisitDerivative substitutes inside the operand. When the replaced symbol
// is the variable of differentiation the derivative is evaluated first.
func (s *substituter) VisitDerivative(d expr.Ref[*expr.Derivative]) expr.Signal {
	node := d.Get()
	if node.Wrt().Equal(s.sym.View()) {
		evaluated := EvalDerivative(d)
		defer evaluated.Release()
		return evaluated.Accept(s)
	}
	if node.Operand().Accept(s) == expr.Break {
		return expr.Break
	}
	operand := s.result
	s.result = expr.Diff(operand, node.Wrt()).View()
	operand.Release()
	return expr.Continue
}

func (s *substituter) rebuild(children []expr.Expr, join func(...expr.Expr) expr.Expr) expr.Signal {
	parts := make([]expr.Expr, 0, len(children))
	defer func() { releaseAll(parts) }()

	for _, child := range children {
		if child.Accept(s) == expr.Break {
			return expr.Break
		}
		parts = append(parts, s.result)
	}
	s.result = join(parts...)
	if s.result.Kind() == expr.KindUndefined {
		return expr.Break
	}
	return expr.Continue
}

// Substitute returns e with every occurrence of sym replaced by value.
// The rebuilt sums and products fold numbers the way Add and Mul do.
func Substitute(e expr.Expr, sym expr.Ref[*expr.Symbol], value expr.Expr) expr.Expr {
	s := &substituter{sym: sym, value: value}
	if e.Accept(s) == expr.Break {
		if s.result.Valid() {
			s.result.Release()
		}
		return expr.Undef()
	}
	return s.result
}
