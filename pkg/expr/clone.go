package expr

import "slices"

func (n *Number) cloneNode() Node {
	c := *n
	return &c
}

func (s *Symbol) cloneNode() Node {
	c := *s
	return &c
}

func (u *Undefined) cloneNode() Node {
	return &Undefined{}
}

func (p *Plus) cloneNode() Node {
	return &Plus{terms: cloneAll(p.terms)}
}

func (t *Times) cloneNode() Node {
	return &Times{terms: cloneAll(t.terms)}
}

func (d *Derivative) cloneNode() Node {
	return &Derivative{operand: d.operand.Clone(), wrt: d.wrt.Clone()}
}

func (n *Number) releaseChildren()    {}
func (s *Symbol) releaseChildren()    {}
func (u *Undefined) releaseChildren() {}

func (p *Plus) releaseChildren() {
	releaseAll(p.terms)
	p.terms = nil
}

func (t *Times) releaseChildren() {
	releaseAll(t.terms)
	t.terms = nil
}

func (d *Derivative) releaseChildren() {
	d.operand.Release()
	d.wrt.Release()
}

func cloneAll(terms []Expr) []Expr {
	out := make([]Expr, len(terms))
	for i, t := range terms {
		out[i] = t.Clone()
	}
	return out
}

func releaseAll(terms []Expr) {
	for i := range terms {
		terms[i].Release()
	}
}

// sortedClones takes a counted reference to every term and sorts the
// result by the total order.
func sortedClones(terms []Expr) []Expr {
	out := cloneAll(terms)
	slices.SortStableFunc(out, Compare)
	return out
}
