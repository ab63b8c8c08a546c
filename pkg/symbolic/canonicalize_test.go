package symbolic

import (
	"math/big"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wildfunctions/symcore/pkg/expr"
)

var (
	x = expr.Sym("x")
	y = expr.Sym("y")
	z = expr.Sym("z")
)

func plus(terms ...expr.Expr) expr.Expr  { return expr.NewPlus(terms...).View() }
func times(terms ...expr.Expr) expr.Expr { return expr.NewTimes(terms...).View() }

func assertExprEqual(t *testing.T, want, got expr.Expr) {
	t.Helper()
	assert.True(t, expr.Equal(want, got), "want %s, got %s", want, got)
}

func TestCanonicalizeLeaves(t *testing.T) {
	two := expr.New[expr.Node](expr.NewRational(big.NewRat(4, 2)))
	got := Canonicalize(two)
	n, ok := expr.As[*expr.Number](got)
	require.True(t, ok)
	assert.Equal(t, expr.NumInteger, n.Get().NumKind())

	half := expr.Rat(1, 2)
	assert.True(t, Canonicalize(half).Shares(half))
	assert.True(t, Canonicalize(x.View()).Shares(x.View()))
}

func TestCanonicalizeFlattening(t *testing.T) {
	a, b, c := x.View(), y.View(), z.View()
	nested := Canonicalize(plus(a, plus(b, c)))
	flat := Canonicalize(plus(a, b, c))
	assertExprEqual(t, flat, nested)
	assert.Equal(t, "x + y + z", nested.String())

	assertExprEqual(t, Canonicalize(times(c, b, a)), Canonicalize(times(times(a, b), c)))
}

func TestCanonicalizeIdentities(t *testing.T) {
	assertExprEqual(t, x.View(), Canonicalize(plus(x.View(), expr.Zero())))
	assertExprEqual(t, x.View(), Canonicalize(times(x.View(), expr.One())))
	assertExprEqual(t, expr.Zero(), Canonicalize(plus(expr.Int(2), expr.Int(-2))))
	assertExprEqual(t, expr.One(), Canonicalize(times(expr.Rat(1, 2), expr.Int(2))))
	assertExprEqual(t, expr.Zero(), Canonicalize(plus()))
	assertExprEqual(t, expr.One(), Canonicalize(times()))
}

func TestCanonicalizeAbsorption(t *testing.T) {
	tests := []struct {
		name string
		e    expr.Expr
	}{
		{"symbol", times(x.View(), expr.Zero())},
		{"sum", times(plus(x.View(), y.View()), expr.Zero())},
		{"infinity", times(expr.Inf(expr.SignMinus), expr.Zero())},
		{"nested undefined", times(expr.Zero(), plus(x.View(), expr.Undef()))},
		{"zero from child", times(x.View(), times(y.View(), expr.Zero()))},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assertExprEqual(t, expr.Zero(), Canonicalize(tt.e))
		})
	}
}

func TestCanonicalizeUndefinedBeforeZero(t *testing.T) {
	got := Canonicalize(times(expr.Undef(), expr.Zero()))
	assert.Equal(t, expr.KindUndefined, got.Kind())
}

func TestCanonicalizeUndefinedAborts(t *testing.T) {
	assert.Equal(t, expr.KindUndefined, Canonicalize(plus(x.View(), expr.Undef())).Kind())
	assert.Equal(t, expr.KindUndefined, Canonicalize(expr.Diff(plus(expr.Undef(), y.View()), x).View()).Kind())
	assert.Equal(t, expr.KindUndefined, Canonicalize(plus(expr.Inf(expr.SignPlus), expr.Inf(expr.SignMinus))).Kind())
}

func TestCanonicalizeCoefficientFolding(t *testing.T) {
	got := Canonicalize(plus(expr.Int(2), expr.Int(3), x.View()))
	assertExprEqual(t, Canonicalize(plus(expr.Int(5), x.View())), got)
	assert.Equal(t, "5 + x", got.String())

	spliced := Canonicalize(plus(expr.Int(1), plus(expr.Int(2), y.View()), x.View()))
	assert.Equal(t, "3 + x + y", spliced.String())

	product := Canonicalize(times(expr.Rat(1, 2), times(expr.Int(4), x.View())))
	assert.Equal(t, "2*x", product.String())
}

func TestCanonicalizeKeepsLikeTerms(t *testing.T) {
	got := Canonicalize(plus(x.View(), x.View()))
	p, ok := expr.As[*expr.Plus](got)
	require.True(t, ok)
	assert.Equal(t, 2, p.Get().Len())
	assert.Equal(t, "x + x", got.String())
}

func TestCanonicalizeDerivativeStaysUnevaluated(t *testing.T) {
	d := expr.Diff(plus(x.View(), expr.Zero()), x).View()
	got := Canonicalize(d)
	require.Equal(t, expr.KindDerivative, got.Kind())
	assert.Equal(t, "d/dx(x)", got.String())
}

func TestCanonicalizeIdempotent(t *testing.T) {
	inputs := []expr.Expr{
		plus(expr.Int(1), plus(x.View(), expr.Rat(1, 2)), times(y.View(), expr.Int(3), times(expr.Int(2), z.View()))),
		times(plus(x.View(), expr.Zero()), expr.Inf(expr.SignPlus), y.View()),
		expr.Diff(times(x.View(), expr.One(), x.View()), y).View(),
		plus(times(expr.Int(2), expr.Rat(1, 2)), x.View()),
	}
	for _, in := range inputs {
		once := Canonicalize(in)
		twice := Canonicalize(once)
		assertExprEqual(t, once, twice)
		assert.True(t, IsCanonical(once), "%s", once)
	}
}

func TestCanonicalizeLeavesInputUntouched(t *testing.T) {
	in := plus(expr.Int(2), expr.Int(3), x.View())
	before := in.String()
	Canonicalize(in)
	assert.Equal(t, before, in.String())
}
