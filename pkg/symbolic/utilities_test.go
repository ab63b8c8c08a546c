package symbolic

import (
	"math/big"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wildfunctions/symcore/pkg/expr"
)

func num(v int64) *expr.Number { return expr.NewInteger(big.NewInt(v)) }

func TestEvaluate(t *testing.T) {
	poly := expr.Add(expr.Mul(expr.Mul(expr.Int(2), x), x), expr.Float(3.5))

	got, ok := Evaluate(poly, Env{"x": num(3)})
	require.True(t, ok)
	assert.Equal(t, "43/2", got.Rat().RatString())

	slope, ok := Evaluate(expr.Diff(poly, x).View(), Env{"x": num(3)})
	require.True(t, ok)
	assert.Equal(t, expr.NumInteger, slope.NumKind())
	assert.Equal(t, int64(12), slope.Int().Int64())
}

func TestEvaluateFailures(t *testing.T) {
	_, ok := Evaluate(expr.Add(x, y), Env{"x": num(1)})
	assert.False(t, ok, "unbound symbol")

	_, ok = Evaluate(expr.Undef(), nil)
	assert.False(t, ok, "undefined")

	_, ok = Evaluate(plus(x.View(), y.View()), Env{
		"x": expr.NewInfinity(expr.SignPlus),
		"y": expr.NewInfinity(expr.SignMinus),
	})
	assert.False(t, ok, "indeterminate sum")
}

func TestSubstitute(t *testing.T) {
	poly := expr.Add(expr.Mul(expr.Mul(expr.Int(2), x), x), expr.Float(3.5))

	got := Substitute(poly, x, expr.Int(3))
	assert.Equal(t, "43/2", got.String())

	partial := Substitute(expr.Mul(x, y), y, expr.Add(z, expr.Int(1)))
	assert.Equal(t, "x*(1 + z)", partial.String())

	assert.True(t, expr.Equal(poly, Substitute(poly, z, expr.Int(9))))
	assert.Equal(t, expr.KindUndefined, Substitute(plus(x.View(), expr.Undef()), x, expr.One()).Kind())
}

func TestSubstituteDerivative(t *testing.T) {
	d := expr.Diff(expr.Mul(x, y), x).View()

	kept := Substitute(d, y, expr.Int(2))
	assert.Equal(t, "d/dx(2*x)", kept.String())

	evaluated := Substitute(d, x, expr.Int(5))
	assert.Equal(t, "y", evaluated.String())
}

func TestFreeSymbols(t *testing.T) {
	e := plus(times(z.View(), y.View()), x.View(), expr.Diff(y, expr.Sym("w")).View())
	assert.Equal(t, []string{"x", "y", "z"}, FreeSymbols(e))
	assert.Empty(t, FreeSymbols(expr.Int(4)))
}

func TestIsCanonical(t *testing.T) {
	tests := []struct {
		name string
		e    expr.Expr
		want bool
	}{
		{"symbol", x.View(), true},
		{"undefined root", expr.Undef(), true},
		{"sorted sum", plus(expr.Int(2), x.View(), y.View()), true},
		{"like terms", plus(x.View(), x.View()), true},
		{"degenerate rational", expr.New[expr.Node](expr.NewRational(big.NewRat(2, 1))), false},
		{"zero term", plus(x.View(), expr.Zero()), false},
		{"unit factor", times(x.View(), expr.One()), false},
		{"zero factor", times(x.View(), expr.Zero()), false},
		{"two numbers", plus(expr.Int(1), expr.Int(2), x.View()), false},
		{"nested sum", plus(x.View(), plus(y.View(), z.View())), false},
		{"single term", plus(x.View()), false},
		{"nested undefined", plus(x.View(), expr.Undef()), false},
		{"derivative of sum", expr.Diff(plus(x.View(), y.View()), x).View(), true},
		{"derivative of raw sum", expr.Diff(plus(x.View(), expr.Zero()), x).View(), false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, IsCanonical(tt.e))
		})
	}
}
