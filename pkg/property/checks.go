package property

import (
	"github.com/wildfunctions/symcore/pkg/expr"
	"github.com/wildfunctions/symcore/pkg/symbolic"
)

func init() {
	Register(Property{
		Name:        "idempotence",
		Description: "canonicalizing a canonical tree changes nothing",
		Check:       checkIdempotence,
	})
	Register(Property{
		Name:        "canonical-shape",
		Description: "canonical and symbolically evaluated trees satisfy every canonical-form invariant",
		Check:       checkCanonicalShape,
	})
	Register(Property{
		Name:        "flattening",
		Description: "nested sums and products canonicalize like their flat forms",
		Check:       checkFlattening,
	})
	Register(Property{
		Name:        "identity",
		Description: "adding 0 and multiplying by 1 are erased",
		Check:       checkIdentity,
	})
	Register(Property{
		Name:        "absorption",
		Description: "a zero factor absorbs any product except a bare Undefined",
		Check:       checkAbsorption,
	})
	Register(Property{
		Name:        "coefficient-folding",
		Description: "numeric terms of a sum fold into one coefficient",
		Check:       checkCoefficientFolding,
	})
	Register(Property{
		Name:        "value-preservation",
		Description: "canonicalization preserves the exact value under a binding",
		Check:       checkValuePreservation,
	})
	Register(Property{
		Name:        "linearity",
		Description: "the derivative of a sum is the sum of the derivatives",
		Check:       checkLinearity,
	})
	Register(Property{
		Name:        "copy-on-write",
		Description: "mutating a shared tree never changes another alias",
		Check:       checkCopyOnWrite,
	})
}

func sameTree(prop string, input, want, got expr.Expr) error {
	if expr.Equal(want, got) {
		return nil
	}
	return &Violation{Property: prop, Input: input.String(), Want: want.String(), Got: got.String()}
}

func checkIdempotence(c *Case) error {
	for _, t := range c.Trees() {
		once := symbolic.Canonicalize(t)
		twice := symbolic.Canonicalize(once)
		if err := sameTree("idempotence", t, once, twice); err != nil {
			return err
		}
	}
	return nil
}

func checkCanonicalShape(c *Case) error {
	for _, t := range c.Trees() {
		for _, out := range []expr.Expr{symbolic.Canonicalize(t), symbolic.SymbolicEval(t)} {
			if !symbolic.IsCanonical(out) {
				return &Violation{
					Property: "canonical-shape",
					Input:    t.String(),
					Want:     "canonical tree",
					Got:      out.String(),
				}
			}
		}
	}
	return nil
}

// checkFlattening compares nested and flat forms. With an Undefined present
// the sums are still compared but the result is a skip: whether a zero
// factor or an Undefined is reached first in a product depends on where each
// sits in the nesting.
func checkFlattening(c *Case) error {
	a, b, d := c.A, c.B, c.C

	nested := expr.NewPlus(a, expr.NewPlus(b, d).View()).View()
	flat := expr.NewPlus(a, b, d).View()
	if err := sameTree("flattening", nested, symbolic.Canonicalize(flat), symbolic.Canonicalize(nested)); err != nil {
		return err
	}

	for _, t := range c.Trees() {
		if expr.ContainsKind(t, expr.KindUndefined) {
			return ErrSkipped
		}
	}
	nested = expr.NewTimes(a, expr.NewTimes(b, d).View()).View()
	flat = expr.NewTimes(a, b, d).View()
	return sameTree("flattening", nested, symbolic.Canonicalize(flat), symbolic.Canonicalize(nested))
}

func checkIdentity(c *Case) error {
	for _, t := range c.Trees() {
		want := symbolic.Canonicalize(t)
		sum := expr.NewPlus(t, expr.Zero()).View()
		if err := sameTree("identity", sum, want, symbolic.Canonicalize(sum)); err != nil {
			return err
		}
		product := expr.NewTimes(t, expr.One()).View()
		if err := sameTree("identity", product, want, symbolic.Canonicalize(product)); err != nil {
			return err
		}
	}
	return nil
}

func checkAbsorption(c *Case) error {
	for _, t := range c.Trees() {
		product := expr.NewTimes(t, expr.Zero()).View()
		want := expr.Zero()
		if t.Kind() == expr.KindUndefined {
			want = expr.Undef()
		}
		if err := sameTree("absorption", product, want, symbolic.Canonicalize(product)); err != nil {
			return err
		}
	}
	return nil
}

func checkCoefficientFolding(c *Case) error {
	p, q := c.Coefficients()
	for _, t := range c.Trees() {
		split := expr.NewPlus(expr.Int(p), expr.Int(q), t).View()
		folded := expr.NewPlus(expr.Int(p+q), t).View()
		if err := sameTree("coefficient-folding", split, symbolic.Canonicalize(folded), symbolic.Canonicalize(split)); err != nil {
			return err
		}
	}
	return nil
}

// checkValuePreservation skips infinities, where 0 * inf canonicalizes to 0
// but evaluates to inf, and Undefined, which a zero factor may absorb.
func checkValuePreservation(c *Case) error {
	for _, t := range c.Trees() {
		if expr.ContainsInfinity(t) || expr.ContainsKind(t, expr.KindUndefined) {
			return ErrSkipped
		}
	}
	env := c.Env()
	for _, t := range c.Trees() {
		canonical := symbolic.Canonicalize(t)
		want, okWant := symbolic.Evaluate(t, env)
		got, okGot := symbolic.Evaluate(canonical, env)
		if okWant != okGot {
			return &Violation{
				Property: "value-preservation",
				Input:    t.String(),
				Want:     valueString(want, okWant),
				Got:      valueString(got, okGot),
			}
		}
		if okWant && want.Rat().Cmp(got.Rat()) != 0 {
			return &Violation{
				Property: "value-preservation",
				Input:    t.String(),
				Want:     want.Rat().RatString(),
				Got:      got.Rat().RatString(),
			}
		}
	}
	return nil
}

func valueString(n *expr.Number, ok bool) string {
	if !ok {
		return "no value"
	}
	return expr.New[expr.Node](n).String()
}

// checkLinearity skips infinities: a sum of opposite infinities is
// Undefined as a whole but each part has a finite derivative.
func checkLinearity(c *Case) error {
	if expr.ContainsInfinity(c.A) || expr.ContainsInfinity(c.B) {
		return ErrSkipped
	}
	x := expr.Sym("x")
	sum := expr.NewPlus(c.A, c.B).View()
	lhs := symbolic.SymbolicEval(expr.Diff(sum, x).View())
	rhs := symbolic.Canonicalize(expr.NewPlus(
		symbolic.SymbolicEval(expr.Diff(c.A, x).View()),
		symbolic.SymbolicEval(expr.Diff(c.B, x).View()),
	).View())
	return sameTree("linearity", sum, rhs, lhs)
}

func checkCopyOnWrite(c *Case) error {
	for _, t := range c.Trees() {
		base := expr.NewPlus(t, expr.Sym("x").View())
		alias := base.Clone()
		before := alias.String()

		mut := base.Clone()
		mut.MakeMut().Extend(expr.Int(1))

		if got := alias.String(); got != before {
			return &Violation{Property: "copy-on-write", Input: before, Want: before, Got: got}
		}
		if mut.Shares(alias.View()) || alias.RefCount() != 2 {
			return &Violation{Property: "copy-on-write", Input: before, Want: "private copy", Got: "shared node"}
		}
		mut.Release()
		alias.Release()
		base.Release()
	}
	return nil
}
