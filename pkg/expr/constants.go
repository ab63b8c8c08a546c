package expr

// Shared leaves. They are built once at package initialization and never
// modified; the accessors hand out counted aliases.
var (
	zero      = New[Node](newInteger(0))
	one       = New[Node](newInteger(1))
	minusOne  = New[Node](newInteger(-1))
	undefined = New[Node](&Undefined{})
)

// Zero returns the additive identity.
func Zero() Expr { return zero.Clone() }

// One returns the multiplicative identity.
func One() Expr { return one.Clone() }

// MinusOne returns the integer -1.
func MinusOne() Expr { return minusOne.Clone() }

// Undef returns the Undefined sentinel.
func Undef() Expr { return undefined.Clone() }
