package graphutil

import "github.com/katalvlaran/annlib/core"

// Prune removes every neighbor whose similarity is strictly below threshold
// from every item's neighbor list in g, returning the total number of
// neighbors removed. Useful after a build to cut weak edges that only exist
// because a neighbor list had spare capacity.
func Prune[T any](g *core.Graph[T], threshold float64) int {
	removed := 0
	for _, it := range g.Items() {
		nl, ok := g.Get(it.ID)
		if !ok {
			continue
		}
		for _, nb := range nl.Iter() {
			if nb.Similarity < threshold {
				if nl.Remove(nb.Item.ID) {
					removed++
				}
			}
		}
	}

	return removed
}
