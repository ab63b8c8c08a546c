package expr

// Plus is the sum of its terms, a + b + c + ...
type Plus struct {
	terms []Expr
}

// NewPlus builds a sum of the given terms in sorted order. The terms are
// stored as counted references and are not folded.
func NewPlus(terms ...Expr) Ref[*Plus] {
	return New(&Plus{terms: sortedClones(terms)})
}

func (p *Plus) Kind() Kind { return KindPlus }

// Terms returns the terms in order. The slice must not be modified.
func (p *Plus) Terms() []Expr { return p.terms }

// Len returns the number of terms.
func (p *Plus) Len() int { return len(p.terms) }

// Walk visits each term in order and stops at the first Break.
func (p *Plus) Walk(v Visitor) Signal { return walkTerms(p.terms, v) }

// Extend adds terms to the sum. Nested sums are spliced in and numeric
// terms are folded into a single coefficient, which is dropped when it is
// zero. It reports false when the coefficient is indeterminate.
//
// Extend mutates the node; only call it on a node returned by MakeMut.
func (p *Plus) Extend(terms ...Expr) bool {
	merged, ok := foldTerms(KindPlus, append(p.terms[:len(p.terms):len(p.terms)], terms...))
	if !ok {
		return false
	}
	releaseAll(p.terms)
	p.terms = merged
	return true
}

func (p *Plus) Equal(other Node) bool {
	o, ok := other.(*Plus)
	return ok && equalTerms(p.terms, o.terms)
}

func (p *Plus) Compare(other Node) (int, bool) {
	o, ok := other.(*Plus)
	if !ok {
		return 0, false
	}
	return compareTerms(p.terms, o.terms), true
}
