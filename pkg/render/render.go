// Package render turns expressions into text for external consumers.
package render

import (
	"bytes"
	"errors"
	"fmt"
	"io"

	"github.com/wildfunctions/symcore/pkg/expr"
)

// ErrUndefined is returned when the expression contains an Undefined node.
var ErrUndefined = errors.New("render: expression is undefined")

// ErrReleased is returned for a handle that no longer refers to a node.
var ErrReleased = errors.New("render: expression was released")

// Renderer writes the textual form of an expression. A failure aborts the
// whole render and nothing is written.
type Renderer interface {
	Render(w io.Writer, e expr.Expr) error
}

// emitter is the state shared by the rendering visitors: a buffer and the
// first failure.
type emitter struct {
	buf bytes.Buffer
	err error
}

func (m *emitter) emit(s string) expr.Signal {
	if m.err != nil {
		return expr.Break
	}
	m.buf.WriteString(s)
	return expr.Continue
}

func (m *emitter) fail(err error) expr.Signal {
	if m.err == nil {
		m.err = err
	}
	return expr.Break
}

func (m *emitter) VisitUndefined(expr.Ref[*expr.Undefined]) expr.Signal {
	return m.fail(ErrUndefined)
}

// run renders e with v into a buffer and copies it to w only on success.
func run(w io.Writer, e expr.Expr, v expr.Visitor, m *emitter) error {
	if !e.Valid() {
		return ErrReleased
	}
	if e.Accept(v) == expr.Break {
		if m.err == nil {
			m.err = errors.New("render: traversal stopped")
		}
		return m.err
	}
	if _, err := m.buf.WriteTo(w); err != nil {
		return fmt.Errorf("render: write: %w", err)
	}
	return nil
}

// String renders e with r and returns the result.
func String(r Renderer, e expr.Expr) (string, error) {
	var buf bytes.Buffer
	if err := r.Render(&buf, e); err != nil {
		return "", err
	}
	return buf.String(), nil
}
