package render

import (
	"io"

	"github.com/wildfunctions/symcore/pkg/expr"
)

// Plain renders the same text as expr.Write but treats Undefined as an
// error.
type Plain struct{}

func (Plain) Render(w io.Writer, e expr.Expr) error {
	if !e.Valid() {
		return ErrReleased
	}
	if expr.ContainsKind(e, expr.KindUndefined) {
		return ErrUndefined
	}
	return expr.Write(w, e)
}
