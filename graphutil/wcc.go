package graphutil

import "github.com/katalvlaran/annlib/core"

// WeaklyConnectedComponents partitions g's items into components reachable
// from one another when every directed neighbor edge is treated as
// undirected. Implemented as repeated flood-fill from each unvisited item,
// following both an item's own neighbor list and, to recover the implied
// reverse edge, every other item that lists it as a neighbor.
func WeaklyConnectedComponents[T any](g *core.Graph[T]) [][]string {
	items := g.Items()
	undirected := buildUndirectedAdjacency(g, items)

	visited := make(map[string]bool, len(items))
	var components [][]string

	for _, it := range items {
		if visited[it.ID] {
			continue
		}
		queue := []string{it.ID}
		visited[it.ID] = true
		var comp []string

		for len(queue) > 0 {
			id := queue[0]
			queue = queue[1:]
			comp = append(comp, id)
			for _, nbrID := range undirected[id] {
				if !visited[nbrID] {
					visited[nbrID] = true
					queue = append(queue, nbrID)
				}
			}
		}
		components = append(components, comp)
	}

	return components
}

// buildUndirectedAdjacency returns, for every item ID, the set of IDs
// reachable by either its own forward edges or an incoming edge from
// another item (the reverse of a directed neighbor relationship).
func buildUndirectedAdjacency[T any](g *core.Graph[T], items []*core.Item[T]) map[string][]string {
	adj := make(map[string][]string, len(items))
	for _, it := range items {
		nl, ok := g.Get(it.ID)
		if !ok {
			continue
		}
		for _, nb := range nl.Iter() {
			if !g.Contains(nb.Item.ID) {
				// Cross-partition edge: the neighbor is not itself a key in
				// this graph, so it is ignored during descent rather than
				// treated as a component member.
				continue
			}
			adj[it.ID] = append(adj[it.ID], nb.Item.ID)
			adj[nb.Item.ID] = append(adj[nb.Item.ID], it.ID)
		}
	}

	return adj
}
