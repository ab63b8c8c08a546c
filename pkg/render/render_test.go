package render

import (
	"bytes"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wildfunctions/symcore/pkg/expr"
)

type brokenWriter struct{}

func (brokenWriter) Write([]byte) (int, error) { return 0, errors.New("pipe closed") }

func TestLaTeX(t *testing.T) {
	x, y, theta := expr.Sym("x"), expr.Sym("y"), expr.Sym("theta")
	tests := []struct {
		name string
		e    expr.Expr
		want string
	}{
		{"integer", expr.Int(42), "42"},
		{"rational", expr.Rat(7, 2), `\frac{7}{2}`},
		{"negative rational", expr.Rat(-1, 3), `-\frac{1}{3}`},
		{"infinity", expr.Inf(expr.SignPlus), `\infty`},
		{"negative infinity", expr.Inf(expr.SignMinus), `-\infty`},
		{"sum", expr.Add(x, expr.Int(1)), "1 + x"},
		{"product", expr.Mul(expr.Int(2), x), `2 \cdot x`},
		{"sum in product", expr.Mul(expr.Add(x, y), x), `x \cdot \left(x + y\right)`},
		{"derivative", expr.Diff(expr.Mul(x, y), x).View(), `\frac{d}{dx}\left(x \cdot y\right)`},
		{"long symbol", expr.Sym("theta").View(), `\mathrm{theta}`},
		{"derivative by long symbol", expr.Diff(theta, theta).View(), `\frac{d}{d\mathrm{theta}}\left(\mathrm{theta}\right)`},
		{"underscore", expr.Sym("x_1").View(), `\mathrm{x\_1}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := String(LaTeX{}, tt.e)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestUndefinedAbortsRender(t *testing.T) {
	e := expr.NewPlus(expr.Sym("x").View(), expr.Undef()).View()
	for _, r := range []Renderer{LaTeX{}, Plain{}} {
		var buf bytes.Buffer
		err := r.Render(&buf, e)
		assert.ErrorIs(t, err, ErrUndefined)
		assert.Zero(t, buf.Len(), "partial output written")
	}
}

func TestRenderWriteFailure(t *testing.T) {
	err := LaTeX{}.Render(brokenWriter{}, expr.Sym("x").View())
	assert.ErrorContains(t, err, "pipe closed")
}

func TestRenderReleased(t *testing.T) {
	e := expr.Sym("x").View()
	e.Release()
	assert.ErrorIs(t, LaTeX{}.Render(&bytes.Buffer{}, e), ErrReleased)
	assert.ErrorIs(t, Plain{}.Render(&bytes.Buffer{}, e), ErrReleased)
}

func TestPlain(t *testing.T) {
	got, err := String(Plain{}, expr.Mul(expr.Rat(1, 2), expr.Sym("x")))
	require.NoError(t, err)
	assert.Equal(t, "1/2*x", got)
}
