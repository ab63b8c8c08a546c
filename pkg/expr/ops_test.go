package expr

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAddFoldsNumbers(t *testing.T) {
	got := Add(Int(2), Int(3))
	assert.Equal(t, "5", got.String())
	assert.Equal(t, KindNumber, got.Kind())
}

func TestAddDropsZero(t *testing.T) {
	x := Sym("x")
	got := Add(x, Zero())
	assert.True(t, got.Shares(x.View()))
}

func TestMulIdentities(t *testing.T) {
	x := Sym("x")
	assert.True(t, Mul(x, One()).Shares(x.View()))
	assert.Equal(t, "0", Mul(x, Zero()).String())
	assert.Equal(t, "0", Mul(Add(x, Sym("y")), Zero()).String())
}

func TestAddFlattens(t *testing.T) {
	x, y, z := Sym("x"), Sym("y"), Sym("z")
	sum := Add(Add(x, y), z)
	p, ok := As[*Plus](sum)
	require.True(t, ok)
	assert.Equal(t, 3, p.Get().Len())
	assert.Equal(t, "x + y + z", sum.String())

	assert.True(t, Equal(sum, Add(x, Add(z, y))))
}

func TestAddLeavesOperandsUntouched(t *testing.T) {
	x := Sym("x")
	base := Add(x, Int(2))
	require.Equal(t, "2 + x", base.String())

	next := Add(base, Int(3))
	assert.Equal(t, "5 + x", next.String())
	assert.Equal(t, "2 + x", base.String())
}

func TestMulFlattensAndFolds(t *testing.T) {
	x := Sym("x")
	got := Mul(Mul(Int(2), x), Mul(Int(3), x))
	assert.Equal(t, "6*x*x", got.String())
}

func TestUndefinedPropagates(t *testing.T) {
	x := Sym("x")
	assert.Equal(t, KindUndefined, Add(x, Undef()).Kind())
	assert.Equal(t, KindUndefined, Mul(Undef(), Zero()).Kind())
	assert.Equal(t, KindUndefined, Add(Inf(SignPlus), Inf(SignMinus)).Kind())
	assert.Equal(t, KindUndefined, Add(Add(x, Inf(SignPlus)), Inf(SignMinus)).Kind())
}

func TestNegAndSub(t *testing.T) {
	x := Sym("x")
	assert.Equal(t, "-1*x", Neg(x).String())
	assert.Equal(t, "x + -1*x", Sub(x, x).String())
	assert.Equal(t, "-1", Sub(Int(2), Int(3)).String())
}

func TestSumAndProduct(t *testing.T) {
	assert.Equal(t, "0", Sum().String())
	assert.Equal(t, "1", Product().String())

	x, y := Sym("x").View(), Sym("y").View()
	assert.Equal(t, "3 + x + y", Sum(x, Int(1), y, Int(2)).String())
	assert.Equal(t, "2*x*y", Product(Int(2), y, x).String())
}

func TestMethodOperators(t *testing.T) {
	x, y := Sym("x"), Sym("y")
	assert.True(t, Equal(x.Add(y.View()), Add(x, y)))
	assert.True(t, Equal(x.Mul(y.View()), Mul(x, y)))
}

func TestScenarioPolynomial(t *testing.T) {
	x := Sym("x")
	e := Add(Mul(Mul(Int(2), x), x), Float(3.5))
	assert.Equal(t, "7/2 + 2*x*x", e.String())
}

func TestNewPlusDoesNotFold(t *testing.T) {
	p := NewPlus(Int(2), Int(3), Sym("x").View())
	assert.Equal(t, 3, p.Get().Len())
	assert.Equal(t, "2 + 3 + x", p.String())
}

func TestKindOrder(t *testing.T) {
	x := Sym("x")
	ordered := []Expr{
		Undef(),
		Int(100),
		x.View(),
		NewPlus(x.View(), Int(1)).View(),
		NewTimes(x.View(), Int(2)).View(),
		Diff(x, x).View(),
	}
	for i := 0; i+1 < len(ordered); i++ {
		assert.Negative(t, Compare(ordered[i], ordered[i+1]), "%s < %s", ordered[i], ordered[i+1])
		assert.Positive(t, Compare(ordered[i+1], ordered[i]))
	}
}

func TestCompoundOrder(t *testing.T) {
	x, y := Sym("x").View(), Sym("y").View()
	short := NewPlus(x, y).View()
	long := NewPlus(x, y, Sym("z").View()).View()
	assert.Negative(t, Compare(short, long))

	dx := Diff(y, Sym("x")).View()
	dy := Diff(x, Sym("y")).View()
	assert.Negative(t, Compare(dx, dy))
}

func TestDiffDoesNotEvaluate(t *testing.T) {
	x := Sym("x")
	d := Diff(Mul(x, x), x)
	assert.Equal(t, "d/dx(x*x)", d.String())
	assert.True(t, d.Get().Wrt().Equal(x.View()))
	assert.Equal(t, KindTimes, d.Get().Operand().Kind())
}
