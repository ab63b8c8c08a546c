package expr

import "slices"

// Add returns a + b. Sums are merged into one level, numeric terms are
// folded, and an Undefined operand makes the result Undefined.
func Add[A, B Node](a Ref[A], b Ref[B]) Expr {
	return add(a.View(), b.View())
}

// Mul returns a * b. Products are merged into one level, numeric factors
// are folded, a zero factor absorbs the product, and an Undefined operand
// makes the result Undefined.
func Mul[A, B Node](a Ref[A], b Ref[B]) Expr {
	return mul(a.View(), b.View())
}

// Neg returns -1 * a.
func Neg[A Node](a Ref[A]) Expr {
	return mul(minusOne, a.View())
}

// Sub returns a + (-1 * b).
func Sub[A, B Node](a Ref[A], b Ref[B]) Expr {
	return add(a.View(), Neg(b))
}

// Sum folds the terms with Add. The empty sum is 0.
func Sum(terms ...Expr) Expr {
	acc := Zero()
	for _, t := range terms {
		acc = add(acc, t)
	}
	return acc
}

// Product folds the factors with Mul. The empty product is 1.
func Product(factors ...Expr) Expr {
	acc := One()
	for _, f := range factors {
		acc = mul(acc, f)
	}
	return acc
}

// Add is the method form of the package-level Add.
func (r Ref[T]) Add(other Expr) Expr { return add(r.View(), other) }

// Mul is the method form of the package-level Mul.
func (r Ref[T]) Mul(other Expr) Expr { return mul(r.View(), other) }

func add(a, b Expr) Expr {
	if a.Kind() == KindUndefined || b.Kind() == KindUndefined {
		return Undef()
	}
	if p, ok := As[*Plus](a); ok {
		acc := p.Clone()
		if !acc.MakeMut().Extend(b) {
			return Undef()
		}
		return collapse(KindPlus, acc.View(), acc.Get().terms)
	}
	if p, ok := As[*Plus](b); ok {
		acc := p.Clone()
		if !acc.MakeMut().Extend(a) {
			return Undef()
		}
		return collapse(KindPlus, acc.View(), acc.Get().terms)
	}
	terms, ok := foldTerms(KindPlus, []Expr{a, b})
	if !ok {
		return Undef()
	}
	return build(KindPlus, terms)
}

func mul(a, b Expr) Expr {
	if a.Kind() == KindUndefined || b.Kind() == KindUndefined {
		return Undef()
	}
	if t, ok := As[*Times](a); ok {
		acc := t.Clone()
		if !acc.MakeMut().Extend(b) {
			return Undef()
		}
		return collapse(KindTimes, acc.View(), acc.Get().terms)
	}
	if t, ok := As[*Times](b); ok {
		acc := t.Clone()
		if !acc.MakeMut().Extend(a) {
			return Undef()
		}
		return collapse(KindTimes, acc.View(), acc.Get().terms)
	}
	terms, ok := foldTerms(KindTimes, []Expr{a, b})
	if !ok {
		return Undef()
	}
	return build(KindTimes, terms)
}

// foldTerms merges the operands of an associative operator: operands of the
// same operator are spliced in, numbers are folded into one coefficient and
// the identity coefficient is dropped. For products a zero factor replaces
// everything, infinities included. The result holds counted references, sorted.
func foldTerms(op Kind, in []Expr) ([]Expr, bool) {
	var coef *Number
	var absorbed bool
	out := make([]Expr, 0, len(in))

	var absorb func(t Expr) bool
	absorb = func(t Expr) bool {
		switch {
		case t.Kind() == op:
			for _, c := range childTerms(t) {
				if !absorb(c) {
					return false
				}
			}
		case t.Kind() == KindNumber:
			n := t.b.node.(*Number)
			if op == KindTimes && n.IsZero() {
				absorbed = true
				return true
			}
			if coef == nil {
				coef = n
				return true
			}
			if op == KindPlus {
				sum, ok := coef.Add(n)
				if !ok {
					return false
				}
				coef = sum
			} else {
				coef = coef.Mul(n)
			}
		default:
			out = append(out, t.Clone())
		}
		return true
	}

	for _, t := range in {
		if !absorb(t) {
			releaseAll(out)
			return nil, false
		}
	}

	if absorbed {
		releaseAll(out)
		return []Expr{Zero()}, true
	}
	if coef != nil {
		switch {
		case op == KindPlus && coef.IsZero(), op == KindTimes && coef.IsOne():
		default:
			out = append(out, New[Node](coef.Normalize()))
		}
	}
	slices.SortStableFunc(out, Compare)
	return out, true
}

func childTerms(e Expr) []Expr {
	switch n := e.b.node.(type) {
	case *Plus:
		return n.terms
	case *Times:
		return n.terms
	default:
		return nil
	}
}

// build wraps counted, sorted operands in a new node, collapsing the empty
// and single-operand cases.
func build(op Kind, terms []Expr) Expr {
	switch len(terms) {
	case 0:
		return identity(op)
	case 1:
		return terms[0]
	}
	if op == KindPlus {
		return New[Node](&Plus{terms: terms})
	}
	return New[Node](&Times{terms: terms})
}

// collapse unwraps a node whose operands were reduced to zero or one.
func collapse(op Kind, node Expr, terms []Expr) Expr {
	switch len(terms) {
	case 0:
		node.Release()
		return identity(op)
	case 1:
		t := terms[0].Clone()
		node.Release()
		return t
	default:
		return node
	}
}

func identity(op Kind) Expr {
	if op == KindPlus {
		return Zero()
	}
	return One()
}
