package strategy

import (
	"slices"

	"github.com/wildfunctions/symcore/pkg/property"
)

// rarity weights each case by how few others fail the same properties: a
// failed property shared by k cases contributes 1/k. Passing cases score 0.
func rarity(scores []property.Score) []float64 {
	counts := map[string]int{}
	for _, s := range scores {
		for _, name := range s.Failed {
			counts[name]++
		}
	}
	out := make([]float64, len(scores))
	for i, s := range scores {
		for _, name := range s.Failed {
			out[i] += 1 / float64(counts[name])
		}
	}
	return out
}

// ahead reports whether case i should be preferred over case j: rarer
// failures first, then the combined score.
func ahead(i, j int, rare []float64, scores []property.Score) bool {
	if rare[i] != rare[j] {
		return rare[i] > rare[j]
	}
	return scores[i].Combined > scores[j].Combined
}

// diverseElites picks up to n indices to carry over unchanged. The best
// combined score always survives; after it, each failed property keeps its
// best representative, and any room left goes by score.
func diverseElites(scores []property.Score, n int) []int {
	order := make([]int, len(scores))
	for i := range order {
		order[i] = i
	}
	slices.SortStableFunc(order, func(a, b int) int {
		switch {
		case scores[a].Combined > scores[b].Combined:
			return -1
		case scores[a].Combined < scores[b].Combined:
			return 1
		}
		return 0
	})

	picked := make([]int, 0, n)
	taken := make([]bool, len(scores))
	covered := map[string]bool{}
	take := func(i int) {
		picked = append(picked, i)
		taken[i] = true
		for _, name := range scores[i].Failed {
			covered[name] = true
		}
	}

	if len(order) > 0 && n > 0 {
		take(order[0])
	}
	for _, i := range order {
		if len(picked) == n {
			return picked
		}
		if taken[i] {
			continue
		}
		for _, name := range scores[i].Failed {
			if !covered[name] {
				take(i)
				break
			}
		}
	}
	for _, i := range order {
		if len(picked) == n {
			break
		}
		if !taken[i] {
			take(i)
		}
	}
	return picked
}

// eliteBudget grows the base elite count by one slot per distinct failed
// property, up to half the population.
func eliteBudget(scores []property.Score, base int) int {
	seen := map[string]bool{}
	for _, s := range scores {
		for _, name := range s.Failed {
			seen[name] = true
		}
	}
	return max(min(base+len(seen), len(scores)/2), min(base, len(scores)))
}
