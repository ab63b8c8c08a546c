package expr

import "sync/atomic"

// box is the shared allocation behind every handle: the node and the number
// of counted handles that refer to it.
type box struct {
	refs atomic.Int64
	node Node
}

// testHookRelease, when non-nil, is called once for every box whose count
// reaches zero.
var testHookRelease func(Node)

// Ref is a counted, copy-on-write handle to a node of type T.
//
// Copying a Ref value borrows it, as do View and As; Clone, Erase and
// Narrow take a counted reference. A handle
// that is stored in another node or kept after the borrowed value may be
// released must be obtained with Clone. Release is optional: an unreleased
// handle only makes MakeMut copy more often, and the garbage collector
// reclaims the memory either way.
//
// The zero Ref is not a valid handle.
type Ref[T Node] struct {
	b *box
}

// Expr is the erased handle: a reference to a node of any kind.
type Expr = Ref[Node]

// New wraps node in a fresh handle with a count of one.
func New[T Node](node T) Ref[T] {
	b := &box{node: node}
	b.refs.Store(1)
	return Ref[T]{b: b}
}

// Get returns the node. The node must not be modified; use MakeMut for that.
func (r Ref[T]) Get() T {
	var zero T
	if r.b == nil {
		return zero
	}
	n, ok := r.b.node.(T)
	if !ok {
		return zero
	}
	return n
}

// Valid reports whether the handle refers to a live node.
func (r Ref[T]) Valid() bool {
	return r.b != nil && r.b.node != nil
}

// Kind returns the variant of the referenced node.
func (r Ref[T]) Kind() Kind {
	return r.b.node.Kind()
}

// Clone returns a counted alias of the handle. It never allocates.
func (r Ref[T]) Clone() Ref[T] {
	r.b.refs.Add(1)
	return r
}

// Release drops this handle's reference and invalidates r. When the last
// reference goes, the node releases its children.
func (r *Ref[T]) Release() {
	b := r.b
	if b == nil {
		return
	}
	r.b = nil
	if b.refs.Add(-1) != 0 {
		return
	}
	n := b.node
	b.node = nil
	n.releaseChildren()
	if testHookRelease != nil {
		testHookRelease(n)
	}
}

// RefCount returns the current number of counted handles to the node.
func (r Ref[T]) RefCount() int64 {
	return r.b.refs.Load()
}

// Shares reports whether both handles refer to the same allocation.
func (r Ref[T]) Shares(other Expr) bool {
	return r.b == other.b
}

// MakeMut returns the node for exclusive mutation. If other handles share
// the node it is copied first and r is rebound to the copy, so no other
// alias can observe the change.
func (r *Ref[T]) MakeMut() T {
	if r.b.refs.Load() != 1 {
		fresh := New(r.b.node.cloneNode().(T))
		old := *r
		*r = fresh
		old.Release()
	}
	return r.Get()
}

// Erase widens the handle to the any-node view and takes a counted
// reference, so a later MakeMut through either handle copies first.
func (r Ref[T]) Erase() Expr {
	r.b.refs.Add(1)
	return Expr{b: r.b}
}

// View widens the handle without taking a count. The result is a borrow
// with the same rules as a copied Ref: it must not outlive r or be held
// across a MakeMut of r.
func (r Ref[T]) View() Expr {
	return Expr{b: r.b}
}

// Narrow converts an erased handle to a concrete node type and takes a
// counted reference. It reports false when the node is of a different kind.
func Narrow[T Node](e Expr) (Ref[T], bool) {
	n, ok := As[T](e)
	if ok {
		n.b.refs.Add(1)
	}
	return n, ok
}

// As is the borrowing form of Narrow.
func As[T Node](e Expr) (Ref[T], bool) {
	if e.b == nil || e.b.node == nil {
		return Ref[T]{}, false
	}
	if _, ok := e.b.node.(T); !ok {
		return Ref[T]{}, false
	}
	return Ref[T]{b: e.b}, true
}

// Equal reports whether r and other are structurally equal.
func (r Ref[T]) Equal(other Expr) bool {
	return r.b.node.Equal(other.b.node)
}

// Compare places r and other in the total expression order.
func (r Ref[T]) Compare(other Expr) int {
	return CompareNodes(r.b.node, other.b.node)
}
