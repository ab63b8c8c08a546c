package symbolic

import "github.com/wildfunctions/symcore/pkg/expr"

// Env binds symbol names to exact values.
type Env map[string]*expr.Number

// evaluator computes the exact value of a derivative-free tree.
type evaluator struct {
	env    Env
	result *expr.Number
}

func (v *evaluator) VisitNumber(n expr.Ref[*expr.Number]) expr.Signal {
	v.result = n.Get()
	return expr.Continue
}

func (v *evaluator) VisitSymbol(s expr.Ref[*expr.Symbol]) expr.Signal {
	val, ok := v.env[s.Get().Name()]
	if !ok || val == nil {
		return expr.Break
	}
	v.result = val
	return expr.Continue
}

func (v *evaluator) VisitUndefined(expr.Ref[*expr.Undefined]) expr.Signal {
	return expr.Break
}

func (v *evaluator) VisitPlus(p expr.Ref[*expr.Plus]) expr.Signal {
	return v.fold(expr.KindPlus, p.Get().Terms())
}

func (v *evaluator) VisitTimes(t expr.Ref[*expr.Times]) expr.Signal {
	return v.fold(expr.KindTimes, t.Get().Terms())
}

// VisitDerivative never runs: derivatives are evaluated before the walk.
func (v *evaluator) VisitDerivative(expr.Ref[*expr.Derivative]) expr.Signal {
	return expr.Break
}

func (v *evaluator) fold(op expr.Kind, children []expr.Expr) expr.Signal {
	var acc *expr.Number
	for _, child := range children {
		if child.Accept(v) == expr.Break {
			return expr.Break
		}
		var ok bool
		if acc, ok = combine(op, acc, v.result); !ok {
			return expr.Break
		}
	}
	if acc == nil {
		acc = identity(op).Get().(*expr.Number)
	}
	v.result = acc.Normalize()
	return expr.Continue
}

// Evaluate returns the exact value of e with the symbols bound by env. A
// tree containing derivatives goes through SymbolicEval first; any other
// tree is evaluated as built. It reports false when a symbol is unbound,
// the tree contains Undefined or a sum of infinities is indeterminate.
func Evaluate(e expr.Expr, env Env) (*expr.Number, bool) {
	if !e.Valid() {
		return nil, false
	}
	reduced := e.Clone()
	if expr.ContainsKind(e, expr.KindDerivative) {
		reduced.Release()
		reduced = SymbolicEval(e)
	}
	defer reduced.Release()

	v := &evaluator{env: env}
	if reduced.Accept(v) == expr.Break {
		return nil, false
	}
	return v.result, true
}
