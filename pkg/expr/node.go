package expr

import "cmp"

// Kind identifies a node variant. The numeric order of the kinds is the
// tie-break used when two nodes of different variants are compared.
type Kind uint8

const (
	KindUndefined Kind = iota
	KindNumber
	KindSymbol
	KindPlus
	KindTimes
	KindDerivative
)

var kindNames = map[Kind]string{
	KindUndefined:  "undefined",
	KindNumber:     "number",
	KindSymbol:     "symbol",
	KindPlus:       "plus",
	KindTimes:      "times",
	KindDerivative: "derivative",
}

func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return "unknown"
}

// Node is the capability contract shared by every expression variant.
// The set of variants is closed: Number, Symbol, Plus, Times, Derivative
// and Undefined.
type Node interface {
	Kind() Kind

	// Equal reports structural equality. Nodes of different kinds are
	// never equal.
	Equal(other Node) bool

	// Compare orders two nodes of the same kind. It returns ok == false
	// when other is a different kind.
	Compare(other Node) (c int, ok bool)

	// cloneNode returns a copy of the node whose child handles are
	// counted references of their own.
	cloneNode() Node

	// releaseChildren drops the node's references to its children.
	releaseChildren()
}

// CompareNodes is the total order over nodes. Same-kind nodes use their own
// ordering, everything else falls back to the kind order.
func CompareNodes(a, b Node) int {
	if c, ok := a.Compare(b); ok {
		return c
	}
	return cmp.Compare(a.Kind(), b.Kind())
}

// Compare is the total order over expressions.
func Compare(a, b Expr) int {
	return CompareNodes(a.Get(), b.Get())
}

// Equal reports whether two expressions are structurally equal.
func Equal(a, b Expr) bool {
	return a.Get().Equal(b.Get())
}

// compareTerms orders two child sequences lexicographically, shorter first
// on a common prefix.
func compareTerms(a, b []Expr) int {
	for i := 0; i < len(a) && i < len(b); i++ {
		if c := Compare(a[i], b[i]); c != 0 {
			return c
		}
	}
	return cmp.Compare(len(a), len(b))
}

func equalTerms(a, b []Expr) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if !Equal(a[i], b[i]) {
			return false
		}
	}
	return true
}
