package expr

import (
	"cmp"
	"math/big"
)

// NumberKind distinguishes the three kinds of numeric leaves.
type NumberKind uint8

const (
	NumInteger NumberKind = iota
	NumRational
	NumInfinity
)

// Sign is the sign of an infinity.
type Sign int8

const (
	SignMinus Sign = -1
	SignPlus  Sign = 1
)

var (
	bigOne      = big.NewInt(1)
	bigMinusOne = big.NewInt(-1)
	ratOne      = big.NewRat(1, 1)
	ratMinusOne = big.NewRat(-1, 1)
)

// Number is an exact numeric leaf: an arbitrary-precision integer, a
// rational in lowest terms, or a signed infinity. A Number is immutable;
// the big values it holds are never modified after construction.
type Number struct {
	kind NumberKind
	i    *big.Int
	r    *big.Rat
	sign Sign
}

func newInteger(v int64) *Number {
	return &Number{kind: NumInteger, i: big.NewInt(v)}
}

// NewInteger returns an integer number holding a copy of v.
func NewInteger(v *big.Int) *Number {
	return &Number{kind: NumInteger, i: new(big.Int).Set(v)}
}

// NewRational returns a rational number holding a copy of v. The value is
// kept as a rational even when its denominator is 1.
func NewRational(v *big.Rat) *Number {
	return &Number{kind: NumRational, r: new(big.Rat).Set(v)}
}

// NewInfinity returns the infinity with the given sign.
func NewInfinity(s Sign) *Number {
	return &Number{kind: NumInfinity, sign: s}
}

func (n *Number) Kind() Kind { return KindNumber }

// NumKind reports whether n is an integer, a rational or an infinity.
func (n *Number) NumKind() NumberKind { return n.kind }

// Int returns a copy of the integer value. It returns nil for rationals and
// infinities.
func (n *Number) Int() *big.Int {
	if n.kind != NumInteger {
		return nil
	}
	return new(big.Int).Set(n.i)
}

// Rat returns a copy of the finite value as a rational. It returns nil for
// infinities.
func (n *Number) Rat() *big.Rat {
	if n.kind == NumInfinity {
		return nil
	}
	return new(big.Rat).Set(n.rat())
}

// rat returns the finite value without copying. The result must not be
// modified.
func (n *Number) rat() *big.Rat {
	if n.kind == NumInteger {
		return new(big.Rat).SetInt(n.i)
	}
	return n.r
}

// InfinitySign returns the sign of an infinity, or 0 for finite values.
func (n *Number) InfinitySign() Sign {
	if n.kind != NumInfinity {
		return 0
	}
	return n.sign
}

// Float64 returns the nearest float64 value.
func (n *Number) Float64() float64 {
	switch n.kind {
	case NumInteger:
		f, _ := new(big.Float).SetInt(n.i).Float64()
		return f
	case NumRational:
		f, _ := n.r.Float64()
		return f
	default:
		if n.sign == SignMinus {
			return negInf
		}
		return posInf
	}
}

func (n *Number) IsZero() bool {
	switch n.kind {
	case NumInteger:
		return n.i.Sign() == 0
	case NumRational:
		return n.r.Sign() == 0
	default:
		return false
	}
}

func (n *Number) IsOne() bool {
	switch n.kind {
	case NumInteger:
		return n.i.Cmp(bigOne) == 0
	case NumRational:
		return n.r.Cmp(ratOne) == 0
	default:
		return false
	}
}

func (n *Number) IsMinusOne() bool {
	switch n.kind {
	case NumInteger:
		return n.i.Cmp(bigMinusOne) == 0
	case NumRational:
		return n.r.Cmp(ratMinusOne) == 0
	default:
		return false
	}
}

func (n *Number) IsPositive() bool {
	switch n.kind {
	case NumInteger:
		return n.i.Sign() > 0
	case NumRational:
		return n.r.Sign() > 0
	default:
		return n.sign == SignPlus
	}
}

func (n *Number) IsNegative() bool {
	switch n.kind {
	case NumInteger:
		return n.i.Sign() < 0
	case NumRational:
		return n.r.Sign() < 0
	default:
		return n.sign == SignMinus
	}
}

// IsInfinite reports whether n is a signed infinity.
func (n *Number) IsInfinite() bool { return n.kind == NumInfinity }

// Normalize returns the integer form of a rational whose denominator is 1.
// Any other number is returned unchanged.
func (n *Number) Normalize() *Number {
	if n.kind == NumRational && n.r.IsInt() {
		return &Number{kind: NumInteger, i: new(big.Int).Set(n.r.Num())}
	}
	return n
}

// Add returns n + m. It reports false when the sum is indeterminate, which
// only happens for infinities of opposite sign.
func (n *Number) Add(m *Number) (*Number, bool) {
	switch {
	case n.kind == NumInfinity && m.kind == NumInfinity:
		if n.sign != m.sign {
			return nil, false
		}
		return n, true
	case n.kind == NumInfinity:
		return n, true
	case m.kind == NumInfinity:
		return m, true
	case n.kind == NumInteger && m.kind == NumInteger:
		return &Number{kind: NumInteger, i: new(big.Int).Add(n.i, m.i)}, true
	default:
		return &Number{kind: NumRational, r: new(big.Rat).Add(n.rat(), m.rat())}, true
	}
}

// Mul returns n * m. An infinity multiplied by a finite value keeps the
// infinity's sign.
func (n *Number) Mul(m *Number) *Number {
	switch {
	case n.kind == NumInfinity && m.kind == NumInfinity:
		if n.sign == m.sign {
			return NewInfinity(SignPlus)
		}
		return NewInfinity(SignMinus)
	case n.kind == NumInfinity:
		return n
	case m.kind == NumInfinity:
		return m
	case n.kind == NumInteger && m.kind == NumInteger:
		return &Number{kind: NumInteger, i: new(big.Int).Mul(n.i, m.i)}
	default:
		return &Number{kind: NumRational, r: new(big.Rat).Mul(n.rat(), m.rat())}
	}
}

func (n *Number) Equal(other Node) bool {
	o, ok := other.(*Number)
	if !ok || n.kind != o.kind {
		return false
	}
	switch n.kind {
	case NumInteger:
		return n.i.Cmp(o.i) == 0
	case NumRational:
		return n.r.Cmp(o.r) == 0
	default:
		return n.sign == o.sign
	}
}

// Compare orders numbers by value, with -inf first and +inf last. An
// integer sorts before a rational of the same value.
func (n *Number) Compare(other Node) (int, bool) {
	o, ok := other.(*Number)
	if !ok {
		return 0, false
	}
	if c := cmp.Compare(n.rank(), o.rank()); c != 0 {
		return c, true
	}
	if n.kind == NumInfinity {
		return 0, true
	}
	if c := n.rat().Cmp(o.rat()); c != 0 {
		return c, true
	}
	return cmp.Compare(n.kind, o.kind), true
}

// rank places -inf below and +inf above every finite value.
func (n *Number) rank() int {
	if n.kind != NumInfinity {
		return 0
	}
	return int(n.sign)
}
