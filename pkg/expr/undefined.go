package expr

// Undefined is the value of any operation whose result cannot be
// determined. It is equal only to itself.
type Undefined struct{}

func (u *Undefined) Kind() Kind { return KindUndefined }

func (u *Undefined) Equal(other Node) bool {
	_, ok := other.(*Undefined)
	return ok
}

func (u *Undefined) Compare(other Node) (int, bool) {
	_, ok := other.(*Undefined)
	return 0, ok
}
