package expr

// Signal tells a traversal whether to keep going.
type Signal uint8

const (
	// Continue resumes the traversal.
	Continue Signal = iota
	// Break stops the traversal immediately. Compound nodes return it
	// without visiting their remaining children.
	Break
)

// Visitor is implemented by every tree algorithm: one method per node
// variant. A new algorithm is a new Visitor; node types never change.
type Visitor interface {
	VisitNumber(n Ref[*Number]) Signal
	VisitSymbol(s Ref[*Symbol]) Signal
	VisitPlus(p Ref[*Plus]) Signal
	VisitTimes(t Ref[*Times]) Signal
	VisitDerivative(d Ref[*Derivative]) Signal
	VisitUndefined(u Ref[*Undefined]) Signal
}

// Accept dispatches to the visitor method for the node's variant. A
// released handle yields Break.
func (r Ref[T]) Accept(v Visitor) Signal {
	if r.b == nil {
		return Break
	}
	switch r.b.node.(type) {
	case *Number:
		return v.VisitNumber(Ref[*Number]{b: r.b})
	case *Symbol:
		return v.VisitSymbol(Ref[*Symbol]{b: r.b})
	case *Plus:
		return v.VisitPlus(Ref[*Plus]{b: r.b})
	case *Times:
		return v.VisitTimes(Ref[*Times]{b: r.b})
	case *Derivative:
		return v.VisitDerivative(Ref[*Derivative]{b: r.b})
	case *Undefined:
		return v.VisitUndefined(Ref[*Undefined]{b: r.b})
	default:
		return Break
	}
}

func walkTerms(terms []Expr, v Visitor) Signal {
	for _, t := range terms {
		if t.Accept(v) == Break {
			return Break
		}
	}
	return Continue
}
