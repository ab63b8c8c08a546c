package render

import (
	"io"
	"strings"
	"unicode/utf8"

	"github.com/wildfunctions/symcore/pkg/expr"
)

// LaTeX renders expressions as LaTeX math.
type LaTeX struct{}

func (LaTeX) Render(w io.Writer, e expr.Expr) error {
	v := &latexVisitor{}
	return run(w, e, v, &v.emitter)
}

type latexVisitor struct {
	emitter
}

func (v *latexVisitor) VisitNumber(n expr.Ref[*expr.Number]) expr.Signal {
	num := n.Get()
	switch num.NumKind() {
	case expr.NumInteger:
		return v.emit(num.Int().String())
	case expr.NumRational:
		r := num.Rat()
		if r.IsInt() {
			return v.emit(r.Num().String())
		}
		sign := ""
		if r.Sign() < 0 {
			sign = "-"
			r.Neg(r)
		}
		return v.emit(sign + `\frac{` + r.Num().String() + `}{` + r.Denom().String() + `}`)
	default:
		if num.InfinitySign() == expr.SignMinus {
			return v.emit(`-\infty`)
		}
		return v.emit(`\infty`)
	}
}

func (v *latexVisitor) VisitSymbol(s expr.Ref[*expr.Symbol]) expr.Signal {
	return v.emit(latexSymbol(s.Get().Name()))
}

// latexSymbol sets a multi-letter name upright so it reads as one symbol.
func latexSymbol(name string) string {
	if utf8.RuneCountInString(name) == 1 {
		return name
	}
	return `\mathrm{` + strings.ReplaceAll(name, "_", `\_`) + `}`
}

func (v *latexVisitor) VisitPlus(p expr.Ref[*expr.Plus]) expr.Signal {
	for i, t := range p.Get().Terms() {
		if i > 0 && v.emit(" + ") == expr.Break {
			return expr.Break
		}
		if v.child(t, expr.KindPlus) == expr.Break {
			return expr.Break
		}
	}
	return expr.Continue
}

func (v *latexVisitor) VisitTimes(t expr.Ref[*expr.Times]) expr.Signal {
	for i, f := range t.Get().Terms() {
		if i > 0 && v.emit(` \cdot `) == expr.Break {
			return expr.Break
		}
		if v.child(f, expr.KindPlus, expr.KindTimes) == expr.Break {
			return expr.Break
		}
	}
	return expr.Continue
}

func (v *latexVisitor) VisitDerivative(d expr.Ref[*expr.Derivative]) expr.Signal {
	node := d.Get()
	if v.emit(`\frac{d}{d`+latexSymbol(node.Wrt().Get().Name())+`}\left(`) == expr.Break {
		return expr.Break
	}
	if node.Operand().Accept(v) == expr.Break {
		return expr.Break
	}
	return v.emit(`\right)`)
}

// child renders e, wrapping it in \left( \right) when its kind is listed.
func (v *latexVisitor) child(e expr.Expr, wrap ...expr.Kind) expr.Signal {
	for _, k := range wrap {
		if e.Kind() == k {
			if v.emit(`\left(`) == expr.Break || e.Accept(v) == expr.Break {
				return expr.Break
			}
			return v.emit(`\right)`)
		}
	}
	return e.Accept(v)
}
