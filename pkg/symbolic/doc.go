// Package symbolic holds the tree algorithms built on the expr visitor
// protocol: canonicalization, differentiation, symbolic evaluation and the
// utilities layered on them.
package symbolic
