package expr

// Times is the product of its factors, a * b * c * ...
type Times struct {
	terms []Expr
}

// NewTimes builds a product of the given factors in sorted order. The
// factors are stored as counted references and are not folded.
func NewTimes(factors ...Expr) Ref[*Times] {
	return New(&Times{terms: sortedClones(factors)})
}

func (t *Times) Kind() Kind { return KindTimes }

// Terms returns the factors in order. The slice must not be modified.
func (t *Times) Terms() []Expr { return t.terms }

// Len returns the number of factors.
func (t *Times) Len() int { return len(t.terms) }

// Walk visits each factor in order and stops at the first Break.
func (t *Times) Walk(v Visitor) Signal { return walkTerms(t.terms, v) }

// Extend multiplies the product by more factors. Nested products are
// spliced in and numeric factors are folded into a single coefficient,
// which is dropped when it is one. A zero coefficient leaves the product
// with the single factor 0.
//
// Extend mutates the node; only call it on a node returned by MakeMut.
func (t *Times) Extend(factors ...Expr) bool {
	merged, ok := foldTerms(KindTimes, append(t.terms[:len(t.terms):len(t.terms)], factors...))
	if !ok {
		return false
	}
	releaseAll(t.terms)
	t.terms = merged
	return true
}

func (t *Times) Equal(other Node) bool {
	o, ok := other.(*Times)
	return ok && equalTerms(t.terms, o.terms)
}

func (t *Times) Compare(other Node) (int, bool) {
	o, ok := other.(*Times)
	if !ok {
		return 0, false
	}
	return compareTerms(t.terms, o.terms), true
}
