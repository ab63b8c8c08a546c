package expr

import (
	"math"
	"math/big"

	"golang.org/x/exp/constraints"
)

var (
	posInf = math.Inf(1)
	negInf = math.Inf(-1)
)

// Int returns an integer expression.
func Int(v int64) Expr {
	return New[Node](newInteger(v))
}

// Uint returns an integer expression.
func Uint(v uint64) Expr {
	return New[Node](&Number{kind: NumInteger, i: new(big.Int).SetUint64(v)})
}

// FromInteger converts any native integer type.
func FromInteger[T constraints.Integer](v T) Expr {
	if v < 0 {
		return Int(int64(v))
	}
	return Uint(uint64(v))
}

// BigInt returns an integer expression holding a copy of v.
func BigInt(v *big.Int) Expr {
	return New[Node](NewInteger(v))
}

// BigRat returns the exact value of v. A value with denominator 1 becomes
// an integer.
func BigRat(v *big.Rat) Expr {
	return New[Node](NewRational(v).Normalize())
}

// Rat returns p/q in lowest terms. A zero denominator yields Undefined.
func Rat(p, q int64) Expr {
	if q == 0 {
		return Undef()
	}
	return BigRat(big.NewRat(p, q))
}

// Inf returns the infinity with the given sign.
func Inf(s Sign) Expr {
	return New[Node](NewInfinity(s))
}

// Float returns the exact value of f. Infinite inputs become a signed
// infinity and NaN becomes Undefined.
func Float(f float64) Expr {
	switch {
	case math.IsNaN(f):
		return Undef()
	case math.IsInf(f, 1):
		return Inf(SignPlus)
	case math.IsInf(f, -1):
		return Inf(SignMinus)
	}
	r := new(big.Rat)
	if r.SetFloat64(f) == nil {
		return Undef()
	}
	return BigRat(r)
}
