package property

import (
	"fmt"
	"math/big"
	"math/rand"
	"strings"

	"github.com/wildfunctions/symcore/pkg/expr"
	"github.com/wildfunctions/symcore/pkg/render"
	"github.com/wildfunctions/symcore/pkg/symbolic"
)

// Case is one soak input: three trees and a seed. The seed fixes the symbol
// bindings and the integers that properties splice into the trees.
type Case struct {
	A, B, C expr.Expr
	Seed    int64
}

// Clone returns a case sharing the same trees.
func (c *Case) Clone() *Case {
	return &Case{
		A:    c.A.Clone(),
		B:    c.B.Clone(),
		C:    c.C.Clone(),
		Seed: c.Seed,
	}
}

// Release drops the case's references to its trees.
func (c *Case) Release() {
	c.A.Release()
	c.B.Release()
	c.C.Release()
}

// Trees returns the three trees in order.
func (c *Case) Trees() []expr.Expr {
	return []expr.Expr{c.A, c.B, c.C}
}

// String returns a human-readable representation.
func (c *Case) String() string {
	return fmt.Sprintf("a = %s; b = %s; c = %s; seed %d", c.A, c.B, c.C, c.Seed)
}

// LaTeX returns the trees as a LaTeX aligned block.
func (c *Case) LaTeX() string {
	var sb strings.Builder
	for i, t := range c.Trees() {
		if i > 0 {
			sb.WriteString(`\\` + "\n")
		}
		s, err := render.String(render.LaTeX{}, t)
		if err != nil {
			s = `\text{` + strings.ReplaceAll(t.String(), "_", `\_`) + `}`
		}
		fmt.Fprintf(&sb, "%c &= %s", 'a'+i, s)
	}
	return sb.String()
}

// Complexity returns the combined weighted complexity of the trees.
func (c *Case) Complexity() float64 {
	var total float64
	for _, t := range c.Trees() {
		total += expr.WeightedComplexity(t)
	}
	return total
}

// NodeCount returns the total node count of the trees.
func (c *Case) NodeCount() int {
	total := 0
	for _, t := range c.Trees() {
		total += expr.NodeCount(t)
	}
	return total
}

// Depth returns the depth of the deepest tree.
func (c *Case) Depth() int {
	return max(expr.Depth(c.A), expr.Depth(c.B), expr.Depth(c.C))
}

// Env binds every free symbol of the case to a small exact value derived
// from the seed.
func (c *Case) Env() symbolic.Env {
	rng := rand.New(rand.NewSource(c.Seed))
	env := symbolic.Env{}
	seen := map[string]bool{}
	for _, t := range c.Trees() {
		for _, name := range symbolic.FreeSymbols(t) {
			if seen[name] {
				continue
			}
			seen[name] = true
			p := int64(rng.Intn(13) - 6)
			if rng.Float64() < 0.3 {
				env[name] = expr.NewRational(big.NewRat(p, int64(rng.Intn(4)+2)))
			} else {
				env[name] = expr.NewInteger(big.NewInt(p))
			}
		}
	}
	return env
}

// Coefficients returns two integers derived from the seed.
func (c *Case) Coefficients() (int64, int64) {
	rng := rand.New(rand.NewSource(c.Seed ^ 0x5eed))
	return int64(rng.Intn(21) - 10), int64(rng.Intn(21) - 10)
}
