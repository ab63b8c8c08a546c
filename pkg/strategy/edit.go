package strategy

import "github.com/wildfunctions/symcore/pkg/expr"

// lister collects every subtree in preorder. The handles are borrowed from
// the tree.
type lister struct {
	out []expr.Expr
}

func (l *lister) VisitNumber(n expr.Ref[*expr.Number]) expr.Signal {
	l.out = append(l.out, n.View())
	return expr.Continue
}

func (l *lister) VisitSymbol(s expr.Ref[*expr.Symbol]) expr.Signal {
	l.out = append(l.out, s.View())
	return expr.Continue
}

func (l *lister) VisitUndefined(u expr.Ref[*expr.Undefined]) expr.Signal {
	l.out = append(l.out, u.View())
	return expr.Continue
}

func (l *lister) VisitPlus(p expr.Ref[*expr.Plus]) expr.Signal {
	l.out = append(l.out, p.View())
	return p.Get().Walk(l)
}

func (l *lister) VisitTimes(t expr.Ref[*expr.Times]) expr.Signal {
	l.out = append(l.out, t.View())
	return t.Get().Walk(l)
}

func (l *lister) VisitDerivative(d expr.Ref[*expr.Derivative]) expr.Signal {
	l.out = append(l.out, d.View())
	return d.Get().Walk(l)
}

// subtrees returns all subtrees of root in preorder, root first.
func subtrees(root expr.Expr) []expr.Expr {
	l := &lister{}
	root.Accept(l)
	return l.out
}

// replacer rebuilds the path from the root to the preorder position target
// and shares every subtree off that path with the original.
type replacer struct {
	target int
	pos    int
	repl   expr.Expr
	out    expr.Expr
}

func (r *replacer) rewrite(e expr.Expr) expr.Expr {
	size := expr.NodeCount(e)
	switch {
	case r.pos == r.target:
		r.pos += size
		return r.repl.Clone()
	case r.target < r.pos || r.target >= r.pos+size:
		r.pos += size
		return e.Clone()
	}
	r.pos++
	e.Accept(r)
	return r.out
}

func (r *replacer) children(terms []expr.Expr) []expr.Expr {
	out := make([]expr.Expr, len(terms))
	for i, t := range terms {
		out[i] = r.rewrite(t)
	}
	return out
}

// Leaves are only reached when they are the target, which rewrite handles.
func (r *replacer) VisitNumber(n expr.Ref[*expr.Number]) expr.Signal {
	r.out = n.Erase()
	return expr.Continue
}

func (r *replacer) VisitSymbol(s expr.Ref[*expr.Symbol]) expr.Signal {
	r.out = s.Erase()
	return expr.Continue
}

func (r *replacer) VisitUndefined(u expr.Ref[*expr.Undefined]) expr.Signal {
	r.out = u.Erase()
	return expr.Continue
}

func (r *replacer) VisitPlus(p expr.Ref[*expr.Plus]) expr.Signal {
	r.out = rebuild(expr.KindPlus, r.children(p.Get().Terms()))
	return expr.Continue
}

func (r *replacer) VisitTimes(t expr.Ref[*expr.Times]) expr.Signal {
	r.out = rebuild(expr.KindTimes, r.children(t.Get().Terms()))
	return expr.Continue
}

func (r *replacer) VisitDerivative(d expr.Ref[*expr.Derivative]) expr.Signal {
	operand := r.rewrite(d.Get().Operand())
	r.out = expr.Diff(operand, d.Get().Wrt()).View()
	operand.Release()
	return expr.Continue
}

// replaceAt returns a copy of root with the subtree at preorder position
// idx replaced by repl. root itself is not modified.
func replaceAt(root expr.Expr, idx int, repl expr.Expr) expr.Expr {
	r := &replacer{target: idx, repl: repl}
	return r.rewrite(root)
}

// rebuild wraps children in a raw sum or product and drops the caller's
// references to them.
func rebuild(op expr.Kind, children []expr.Expr) expr.Expr {
	var out expr.Expr
	if op == expr.KindPlus {
		out = expr.NewPlus(children...).View()
	} else {
		out = expr.NewTimes(children...).View()
	}
	for i := range children {
		children[i].Release()
	}
	return out
}

// childrenOf returns the direct children of a compound node, or nil for a
// leaf.
func childrenOf(e expr.Expr) []expr.Expr {
	if p, ok := expr.As[*expr.Plus](e); ok {
		return p.Get().Terms()
	}
	if t, ok := expr.As[*expr.Times](e); ok {
		return t.Get().Terms()
	}
	if d, ok := expr.As[*expr.Derivative](e); ok {
		return []expr.Expr{d.Get().Operand()}
	}
	return nil
}
