package symbolic

import (
	"slices"

	"github.com/wildfunctions/symcore/pkg/expr"
)

// collector gathers the names of the symbols a tree depends on.
type collector struct {
	names map[string]struct{}
}

func (c *collector) VisitNumber(expr.Ref[*expr.Number]) expr.Signal       { return expr.Continue }
func (c *collector) VisitUndefined(expr.Ref[*expr.Undefined]) expr.Signal { return expr.Continue }

func (c *collector) VisitSymbol(s expr.Ref[*expr.Symbol]) expr.Signal {
	c.names[s.Get().Name()] = struct{}{}
	return expr.Continue
}

func (c *collector) VisitPlus(p expr.Ref[*expr.Plus]) expr.Signal    { return p.Get().Walk(c) }
func (c *collector) VisitTimes(t expr.Ref[*expr.Times]) expr.Signal  { return t.Get().Walk(c) }
func (c *collector) VisitDerivative(d expr.Ref[*expr.Derivative]) expr.Signal {
	return d.Get().Walk(c)
}

// FreeSymbols returns the sorted, distinct names of the symbols in e. The
// variable of an unevaluated derivative only counts when it occurs in the
// operand.
func FreeSymbols(e expr.Expr) []string {
	c := &collector{names: make(map[string]struct{})}
	e.Accept(c)
	out := make([]string, 0, len(c.names))
	for name := range c.names {
		out = append(out, name)
	}
	slices.Sort(out)
	return out
}

// shapeChecker stops at the first node that violates canonical form.
type shapeChecker struct {
	root bool
}

func (s *shapeChecker) VisitNumber(n expr.Ref[*expr.Number]) expr.Signal {
	s.root = false
	num := n.Get()
	if num.NumKind() == expr.NumRational && num.Normalize() != num {
		return expr.Break
	}
	return expr.Continue
}

func (s *shapeChecker) VisitSymbol(expr.Ref[*expr.Symbol]) expr.Signal {
	s.root = false
	return expr.Continue
}

// VisitUndefined accepts Undefined only as a whole tree.
func (s *shapeChecker) VisitUndefined(expr.Ref[*expr.Undefined]) expr.Signal {
	if s.root {
		s.root = false
		return expr.Continue
	}
	return expr.Break
}

func (s *shapeChecker) VisitPlus(p expr.Ref[*expr.Plus]) expr.Signal {
	return s.associative(expr.KindPlus, p.Get().Terms())
}

func (s *shapeChecker) VisitTimes(t expr.Ref[*expr.Times]) expr.Signal {
	return s.associative(expr.KindTimes, t.Get().Terms())
}

func (s *shapeChecker) VisitDerivative(d expr.Ref[*expr.Derivative]) expr.Signal {
	s.root = false
	return d.Get().Operand().Accept(s)
}

func (s *shapeChecker) associative(op expr.Kind, terms []expr.Expr) expr.Signal {
	s.root = false
	if len(terms) < 2 {
		return expr.Break
	}
	numbers := 0
	for i, t := range terms {
		if t.Kind() == op {
			return expr.Break
		}
		if i > 0 && expr.Compare(terms[i-1], t) > 0 {
			return expr.Break
		}
		if n, ok := expr.As[*expr.Number](t); ok {
			numbers++
			if numbers > 1 || isIdentity(op, n.Get()) {
				return expr.Break
			}
			if op == expr.KindTimes && n.Get().IsZero() {
				return expr.Break
			}
		}
		if t.Accept(s) == expr.Break {
			return expr.Break
		}
	}
	return expr.Continue
}

// IsCanonical reports whether e is already in canonical form, that is
// whether Canonicalize would return an equal tree.
func IsCanonical(e expr.Expr) bool {
	if !e.Valid() {
		return false
	}
	return e.Accept(&shapeChecker{root: true}) == expr.Continue
}
