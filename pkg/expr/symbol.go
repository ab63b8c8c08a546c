package expr

import (
	"strings"
	"unique"
)

// Symbol is a named variable. Names are interned, so two symbols with the
// same name are indistinguishable.
type Symbol struct {
	name unique.Handle[string]
}

// Sym returns a handle to the symbol with the given name.
func Sym(name string) Ref[*Symbol] {
	return New(&Symbol{name: unique.Make(name)})
}

// Name returns the symbol's name.
func (s *Symbol) Name() string { return s.name.Value() }

func (s *Symbol) Kind() Kind { return KindSymbol }

func (s *Symbol) Equal(other Node) bool {
	o, ok := other.(*Symbol)
	return ok && s.name == o.name
}

func (s *Symbol) Compare(other Node) (int, bool) {
	o, ok := other.(*Symbol)
	if !ok {
		return 0, false
	}
	if s.name == o.name {
		return 0, true
	}
	return strings.Compare(s.Name(), o.Name()), true
}
