package expr

import (
	"math"
	"math/big"
)

// metrics accumulates structural measures in one walk.
type metrics struct {
	nodes    int
	depth    int
	maxDepth int
	weight   float64
}

func (m *metrics) enter() {
	m.nodes++
	m.depth++
	m.maxDepth = max(m.maxDepth, m.depth)
}

func (m *metrics) leave() { m.depth-- }

func (m *metrics) VisitNumber(n Ref[*Number]) Signal {
	m.enter()
	defer m.leave()
	m.weight += numberWeight(n.Get())
	return Continue
}

func (m *metrics) VisitSymbol(Ref[*Symbol]) Signal {
	m.enter()
	defer m.leave()
	m.weight++
	return Continue
}

func (m *metrics) VisitPlus(p Ref[*Plus]) Signal {
	m.enter()
	defer m.leave()
	m.weight += 1.0
	return walkTerms(p.Get().terms, m)
}

func (m *metrics) VisitTimes(t Ref[*Times]) Signal {
	m.enter()
	defer m.leave()
	m.weight += 1.5
	return walkTerms(t.Get().terms, m)
}

func (m *metrics) VisitDerivative(d Ref[*Derivative]) Signal {
	m.enter()
	defer m.leave()
	m.weight += 3.0
	return d.Get().operand.Accept(m)
}

func (m *metrics) VisitUndefined(Ref[*Undefined]) Signal {
	m.enter()
	defer m.leave()
	m.weight++
	return Continue
}

// numberWeight charges large numerators and denominators by their
// magnitude.
func numberWeight(n *Number) float64 {
	switch n.kind {
	case NumInteger:
		return magnitudeWeight(n.i)
	case NumRational:
		return 0.5 + magnitudeWeight(n.r.Num()) + magnitudeWeight(n.r.Denom())
	default:
		return 2.0
	}
}

func magnitudeWeight(v *big.Int) float64 {
	bits := v.BitLen()
	if bits <= 4 {
		return 1.0
	}
	return 1.0 + float64(bits)*math.Log10(2)
}

func measure(e Expr) *metrics {
	m := &metrics{}
	if e.Valid() {
		e.Accept(m)
	}
	return m
}

// NodeCount returns the number of nodes in e, counting shared subtrees once
// per occurrence.
func NodeCount(e Expr) int { return measure(e).nodes }

// Depth returns the height of e. A leaf has depth 1.
func Depth(e Expr) int { return measure(e).maxDepth }

// WeightedComplexity returns a complexity score with heavier weight for
// products, derivatives and large numbers.
func WeightedComplexity(e Expr) float64 { return measure(e).weight }
