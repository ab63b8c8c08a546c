package expr

// Derivative is the unevaluated derivative of an expression with respect
// to a symbol. Construction never differentiates; evaluation is a separate
// pass.
type Derivative struct {
	operand Expr
	wrt     Ref[*Symbol]
}

// Diff builds d/d(wrt) e without evaluating it.
func Diff[T Node](e Ref[T], wrt Ref[*Symbol]) Ref[*Derivative] {
	return New(&Derivative{operand: e.Erase(), wrt: wrt.Clone()})
}

func (d *Derivative) Kind() Kind { return KindDerivative }

// Operand returns the expression being differentiated.
func (d *Derivative) Operand() Expr { return d.operand }

// Wrt returns the symbol of differentiation.
func (d *Derivative) Wrt() Ref[*Symbol] { return d.wrt }

// Walk visits the operand.
func (d *Derivative) Walk(v Visitor) Signal { return d.operand.Accept(v) }

func (d *Derivative) Equal(other Node) bool {
	o, ok := other.(*Derivative)
	return ok && d.wrt.Get().Equal(o.wrt.Get()) && Equal(d.operand, o.operand)
}

func (d *Derivative) Compare(other Node) (int, bool) {
	o, ok := other.(*Derivative)
	if !ok {
		return 0, false
	}
	if c, _ := d.wrt.Get().Compare(o.wrt.Get()); c != 0 {
		return c, true
	}
	return Compare(d.operand, o.operand), true
}
