// Package expr is the expression model: immutable trees of Number, Symbol,
// Plus, Times, Derivative and Undefined nodes behind counted copy-on-write
// handles, the Visitor protocol every tree algorithm is written against,
// and the construction surface (Add, Mul, conversions) that performs local
// folding as trees are built.
package expr
