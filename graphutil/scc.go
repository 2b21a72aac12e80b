package graphutil

import "github.com/katalvlaran/annlib/core"

// StronglyConnectedComponents partitions g's items into maximal sets where
// every item can reach every other following directed neighbor edges, using
// an iterative (explicit-stack) variant of Tarjan's algorithm so graphs too
// large for the call stack to recurse over are still handled safely. Edges to
// items referenced only as a neighbor (absent from the graph's own key set)
// are ignored during descent, so such IDs never appear as components.
func StronglyConnectedComponents[T any](g *core.Graph[T]) [][]string {
	items := g.Items()
	index := make(map[string]int, len(items))
	lowlink := make(map[string]int, len(items))
	onStack := make(map[string]bool, len(items))
	var stack []string
	var components [][]string
	counter := 0

	for _, it := range items {
		if _, seen := index[it.ID]; !seen {
			strongconnect(g, it.ID, index, lowlink, onStack, &stack, &counter, &components)
		}
	}

	return components
}

// frame represents one level of the explicit DFS stack: the vertex being
// processed and how far through its neighbor list the traversal has gotten.
type frame struct {
	id        string
	neighbors []string
	pos       int
}

func strongconnect[T any](
	g *core.Graph[T],
	root string,
	index, lowlink map[string]int,
	onStack map[string]bool,
	stack *[]string,
	counter *int,
	components *[][]string,
) {
	var work []*frame
	work = append(work, newFrame(g, root))
	index[root] = *counter
	lowlink[root] = *counter
	*counter++
	*stack = append(*stack, root)
	onStack[root] = true

	for len(work) > 0 {
		top := work[len(work)-1]

		if top.pos < len(top.neighbors) {
			w := top.neighbors[top.pos]
			top.pos++

			if _, seen := index[w]; !seen {
				index[w] = *counter
				lowlink[w] = *counter
				*counter++
				*stack = append(*stack, w)
				onStack[w] = true
				work = append(work, newFrame(g, w))
			} else if onStack[w] {
				if index[w] < lowlink[top.id] {
					lowlink[top.id] = index[w]
				}
			}

			continue
		}

		// All of top's neighbors processed; pop and propagate lowlink upward.
		work = work[:len(work)-1]
		if len(work) > 0 {
			parent := work[len(work)-1]
			if lowlink[top.id] < lowlink[parent.id] {
				lowlink[parent.id] = lowlink[top.id]
			}
		}

		if lowlink[top.id] == index[top.id] {
			var comp []string
			for {
				n := len(*stack) - 1
				v := (*stack)[n]
				*stack = (*stack)[:n]
				onStack[v] = false
				comp = append(comp, v)
				if v == top.id {
					break
				}
			}
			*components = append(*components, comp)
		}
	}
}

func newFrame[T any](g *core.Graph[T], id string) *frame {
	var neighbors []string
	if nl, ok := g.Get(id); ok {
		for _, nb := range nl.Iter() {
			if !g.Contains(nb.Item.ID) {
				// Cross-partition edge: nb.Item is not itself a key in this
				// graph, so it is ignored during descent rather than visited
				// as a component of its own.
				continue
			}
			neighbors = append(neighbors, nb.Item.ID)
		}
	}

	return &frame{id: id, neighbors: neighbors}
}
