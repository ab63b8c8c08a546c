package expr

import (
	"bytes"
	"fmt"
	"io"
	"slices"
	"strings"
)

// printer renders the plain-text form. The first write error stops the
// walk and is kept in err.
type printer struct {
	w   io.Writer
	err error
}

func (p *printer) emit(s string) Signal {
	if p.err != nil {
		return Break
	}
	if _, err := io.WriteString(p.w, s); err != nil {
		p.err = err
		return Break
	}
	return Continue
}

func (p *printer) VisitNumber(n Ref[*Number]) Signal {
	num := n.Get()
	switch num.NumKind() {
	case NumInteger:
		return p.emit(num.i.String())
	case NumRational:
		return p.emit(num.r.RatString())
	default:
		if num.sign == SignMinus {
			return p.emit("-inf")
		}
		return p.emit("inf")
	}
}

func (p *printer) VisitSymbol(s Ref[*Symbol]) Signal {
	return p.emit(s.Get().Name())
}

func (p *printer) VisitPlus(s Ref[*Plus]) Signal {
	return p.join(s.Get().terms, " + ", KindPlus)
}

func (p *printer) VisitTimes(t Ref[*Times]) Signal {
	return p.join(t.Get().terms, "*", KindPlus, KindTimes)
}

func (p *printer) VisitDerivative(d Ref[*Derivative]) Signal {
	node := d.Get()
	if p.emit("d/d"+node.wrt.Get().Name()+"(") == Break {
		return Break
	}
	if node.operand.Accept(p) == Break {
		return Break
	}
	return p.emit(")")
}

func (p *printer) VisitUndefined(Ref[*Undefined]) Signal {
	return p.emit("undefined")
}

// join prints terms separated by sep, parenthesizing children of the
// given kinds.
func (p *printer) join(terms []Expr, sep string, wrap ...Kind) Signal {
	for i, t := range terms {
		if i > 0 && p.emit(sep) == Break {
			return Break
		}
		if slices.Contains(wrap, t.Kind()) {
			if p.emit("(") == Break || t.Accept(p) == Break || p.emit(")") == Break {
				return Break
			}
			continue
		}
		if t.Accept(p) == Break {
			return Break
		}
	}
	return Continue
}

// Write prints the plain-text form of e to w.
func Write(w io.Writer, e Expr) error {
	if !e.Valid() {
		return fmt.Errorf("write: released expression")
	}
	var buf bytes.Buffer
	p := &printer{w: &buf}
	e.Accept(p)
	if p.err != nil {
		return p.err
	}
	_, err := buf.WriteTo(w)
	return err
}

// String returns the plain-text form, e.g. "2*x + 7/2".
func (r Ref[T]) String() string {
	if !r.Valid() {
		return "<released>"
	}
	var sb strings.Builder
	r.View().Accept(&printer{w: &sb})
	return sb.String()
}
