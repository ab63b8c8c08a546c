package expr

// finder stops at the first node matching its predicate.
type finder struct {
	match func(Node) bool
	found bool
}

func (f *finder) hit(n Node) Signal {
	if f.match(n) {
		f.found = true
		return Break
	}
	return Continue
}

func (f *finder) VisitNumber(n Ref[*Number]) Signal       { return f.hit(n.Get()) }
func (f *finder) VisitSymbol(s Ref[*Symbol]) Signal       { return f.hit(s.Get()) }
func (f *finder) VisitUndefined(u Ref[*Undefined]) Signal { return f.hit(u.Get()) }

func (f *finder) VisitPlus(p Ref[*Plus]) Signal {
	if f.hit(p.Get()) == Break {
		return Break
	}
	return walkTerms(p.Get().terms, f)
}

func (f *finder) VisitTimes(t Ref[*Times]) Signal {
	if f.hit(t.Get()) == Break {
		return Break
	}
	return walkTerms(t.Get().terms, f)
}

func (f *finder) VisitDerivative(d Ref[*Derivative]) Signal {
	node := d.Get()
	if f.hit(node) == Break || f.hit(node.wrt.Get()) == Break {
		return Break
	}
	return node.operand.Accept(f)
}

func find(e Expr, match func(Node) bool) bool {
	f := &finder{match: match}
	e.Accept(f)
	return f.found
}

// ContainsSymbol reports whether s occurs anywhere in e, including as the
// variable of a derivative.
func ContainsSymbol(e Expr, s Ref[*Symbol]) bool {
	want := s.Get()
	return find(e, func(n Node) bool { return want.Equal(n) })
}

// ContainsKind reports whether a node of kind k occurs anywhere in e.
func ContainsKind(e Expr, k Kind) bool {
	return find(e, func(n Node) bool { return n.Kind() == k })
}

// ContainsInfinity reports whether a signed infinity occurs anywhere in e.
func ContainsInfinity(e Expr) bool {
	return find(e, func(n Node) bool {
		num, ok := n.(*Number)
		return ok && num.IsInfinite()
	})
}
