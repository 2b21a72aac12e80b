package graphutil

import "github.com/katalvlaran/annlib/core"

// FindNeighbors returns every item reachable from startID within maxDepth
// hops (following each item's own neighbor list as a directed edge),
// excluding startID itself. maxDepth <= 0 returns an empty slice. Mirrors a
// plain breadth-first traversal, stopping at the depth bound rather than at
// exhaustion, since this graph can be very large and the caller only wants a
// local neighborhood.
func FindNeighbors[T any](g *core.Graph[T], startID string, maxDepth int) []string {
	if maxDepth <= 0 {
		return nil
	}

	type queueItem struct {
		id    string
		depth int
	}

	visited := map[string]bool{startID: true}
	queue := []queueItem{{id: startID, depth: 0}}
	var out []string

	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]

		nl, ok := g.Get(cur.id)
		if !ok {
			continue
		}
		if cur.depth >= maxDepth {
			continue
		}
		for _, nb := range nl.Iter() {
			if visited[nb.Item.ID] {
				continue
			}
			visited[nb.Item.ID] = true
			out = append(out, nb.Item.ID)
			queue = append(queue, queueItem{id: nb.Item.ID, depth: cur.depth + 1})
		}
	}

	return out
}
