package strategy

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wildfunctions/symcore/pkg/expr"
	"github.com/wildfunctions/symcore/pkg/pool"
	"github.com/wildfunctions/symcore/pkg/property"
)

var (
	x = expr.Sym("x").View()
	y = expr.Sym("y").View()
	z = expr.Sym("z").View()
)

func plus(terms ...expr.Expr) expr.Expr  { return expr.NewPlus(terms...).View() }
func times(terms ...expr.Expr) expr.Expr { return expr.NewTimes(terms...).View() }

func scorePopulation(t *testing.T, pop []*property.Case) []property.Score {
	t.Helper()
	props, err := property.Resolve(nil)
	require.NoError(t, err)
	scores := make([]property.Score, len(pop))
	for i, c := range pop {
		scores[i] = property.ComputeScore(c, property.Run(c, props), property.DefaultWeights())
	}
	return scores
}

func TestStrategiesKeepPopulationSize(t *testing.T) {
	for _, name := range Names() {
		t.Run(name, func(t *testing.T) {
			p, err := pool.Get("moderate")
			require.NoError(t, err)
			s, err := Get(name)
			require.NoError(t, err)
			rng := rand.New(rand.NewSource(42))

			population := s.Initialize(p, rng, 20)
			require.Len(t, population, 20)

			best := -1e18
			for gen := 0; gen < 5; gen++ {
				scores := scorePopulation(t, population)
				genBest := scores[bestIndex(scores)].Combined
				if gen > 0 && name != "random" {
					assert.GreaterOrEqual(t, genBest, best, "elitism must keep the best case")
				}
				best = max(best, genBest)

				population = s.Evolve(population, scores, p, rng)
				require.Len(t, population, 20)
				for _, c := range population {
					assert.True(t, caseOK(c), "case %s", c)
				}
			}
		})
	}
}

func TestStrategyRegistry(t *testing.T) {
	assert.Equal(t, []string{"hillclimb", "random", "tournament"}, Names())

	for _, name := range Names() {
		s, err := Get(name)
		require.NoError(t, err)
		assert.Equal(t, name, s.Name())
	}

	_, err := Get("annealing")
	assert.Error(t, err)
}

func TestSubtreesPreorder(t *testing.T) {
	root := plus(z, times(x, y))
	nodes := subtrees(root)
	require.Len(t, nodes, expr.NodeCount(root))
	assert.True(t, nodes[0].Shares(root))
	assert.Equal(t, expr.KindSymbol, nodes[1].Kind())
	assert.Equal(t, expr.KindTimes, nodes[2].Kind())
}

func TestReplaceAtSharesUntouchedSubtrees(t *testing.T) {
	product := times(x, y)
	root := plus(z, product)
	before := root.String()

	got := replaceAt(root, 1, expr.Int(7))
	assert.Equal(t, "7 + x*y", got.String())
	assert.Equal(t, before, root.String())

	p, ok := expr.As[*expr.Plus](got)
	require.True(t, ok)
	assert.True(t, p.Get().Terms()[1].Shares(product))

	deep := replaceAt(root, 4, expr.Int(2))
	assert.Equal(t, "z + 2*x", deep.String())
}

func TestMutateTreeLeavesInputUntouched(t *testing.T) {
	p, err := pool.Get("kitchensink")
	require.NoError(t, err)
	rng := rand.New(rand.NewSource(7))

	for i := 0; i < 200; i++ {
		tree := p.RandomTree(rng, 4)
		before := tree.String()
		out := MutateTree(tree, p, rng)
		assert.True(t, out.Valid())
		assert.Equal(t, before, tree.String())
	}
}

func TestMutateCaseRemainsValid(t *testing.T) {
	p, err := pool.Get("conservative")
	require.NoError(t, err)
	rng := rand.New(rand.NewSource(42))

	for i := 0; i < 100; i++ {
		c := RandomCase(p, rng, 3)
		shared := c.Clone()
		before := shared.String()

		MutateCase(c, p, rng)
		for _, tree := range c.Trees() {
			assert.True(t, tree.Valid())
		}
		assert.Equal(t, before, shared.String())
	}
}

func TestConstPerturbChangesANumber(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	root := plus(x, expr.Int(10))
	got := constPerturb(root, rng)
	assert.False(t, expr.Equal(root, got))
	assert.Equal(t, "10 + x", root.String())
	assert.Equal(t, expr.KindPlus, got.Kind())

	leafOnly := constPerturb(x, rng)
	assert.True(t, leafOnly.Shares(x))
}

func TestCrossoverProducesTwoCases(t *testing.T) {
	p, err := pool.Get("moderate")
	require.NoError(t, err)
	rng := rand.New(rand.NewSource(42))

	a := RandomCase(p, rng, 3)
	b := RandomCase(p, rng, 3)
	beforeA, beforeB := a.String(), b.String()

	c1, c2 := CrossoverCases(a, b, rng)
	require.NotNil(t, c1)
	require.NotNil(t, c2)
	assert.Equal(t, a.Seed, c1.Seed)
	assert.Equal(t, b.Seed, c2.Seed)
	for _, tree := range append(c1.Trees(), c2.Trees()...) {
		assert.True(t, tree.Valid())
	}
	assert.Equal(t, beforeA, a.String())
	assert.Equal(t, beforeB, b.String())
}

func TestShrinkFindsMinimalTree(t *testing.T) {
	tree := plus(expr.Int(3), z, times(x, y))
	containsY := func(e expr.Expr) bool {
		return expr.ContainsSymbol(e, expr.Sym("y"))
	}

	got := Shrink(tree, containsY, 100)
	assert.Equal(t, "y", got.String())

	limited := Shrink(tree, containsY, 0)
	assert.True(t, expr.Equal(tree, limited))
}

func TestShrinkCase(t *testing.T) {
	c := &property.Case{
		A:    plus(x, times(y, expr.Undef())),
		B:    plus(x, y),
		C:    times(x, y, z),
		Seed: 3,
	}
	fails := func(c *property.Case) bool {
		return expr.ContainsKind(c.A, expr.KindUndefined)
	}

	got := ShrinkCase(c, fails, 50)
	assert.Equal(t, expr.KindUndefined, got.A.Kind())
	assert.Equal(t, 1, expr.NodeCount(got.B))
	assert.Equal(t, 1, expr.NodeCount(got.C))
	assert.Equal(t, c.Seed, got.Seed)
	assert.Equal(t, "x + undefined*y", c.A.String())
}
