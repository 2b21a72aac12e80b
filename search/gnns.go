// File: gnns.go
// Role: Search implements GNNS (Graph Nearest Neighbor Search): hill-climbing
// approximate nearest-neighbor search over an already-built k-NN graph.
// Starting from a restart seed, it repeatedly moves to the first candidate
// — drawn from the current item's graph neighbors plus a handful of random
// long-jump candidates — that improves on the current similarity, until no
// candidate improves (a local optimum), then restarts from a fresh seed.
// Seeds are rejected in favor of a new draw when they fall too far below the
// best similarity found so far, so restarts are not wasted on weak starts.
package search

import (
	"fmt"
	"math"
	"math/rand"

	"github.com/katalvlaran/annlib/core"
	"github.com/katalvlaran/annlib/stats"
)

// Search returns the approximate kQuery nearest neighbors of query within g.
// Falls back to an exhaustive scan (evaluating sim against every item) when
// kQuery is not smaller than the graph's size, or when the resolved
// similarity budget (floor(n / Speedup)) is not smaller than n — in both
// cases GNNS's approximation buys nothing over direct comparison.
func Search[T any](g *core.Graph[T], query T, kQuery int, counters *stats.Counters, opts ...Option) ([]core.Neighbor[T], error) {
	if g == nil {
		return nil, ErrGraphNil
	}
	n := g.Size()
	if n == 0 {
		return nil, ErrEmptyGraph
	}
	if kQuery < 1 {
		return nil, fmt.Errorf("%w: kQuery must be >= 1", ErrOptionViolation)
	}
	if counters == nil {
		counters = stats.New()
	}

	o := DefaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	if o.err != nil {
		return nil, o.err
	}

	maxSims := n
	if o.Speedup > 0 {
		maxSims = int(math.Floor(float64(n) / o.Speedup))
		if maxSims < 1 {
			maxSims = 1
		}
	}

	if kQuery >= n || maxSims >= n {
		return exhaustive(g, query, kQuery, counters)
	}

	items := g.Items()
	sim := g.Sim()
	resultNL, err := core.NewNeighborList[T](kQuery)
	if err != nil {
		return nil, err
	}

	visited := make(map[string]bool, n)
	simsUsed := 0
	globalBest := math.Inf(-1)

	for restart := 0; restart < o.Restarts && simsUsed < maxSims; restart++ {
		select {
		case <-o.Ctx.Done():
			return resultNL.Iter(), o.Ctx.Err()
		default:
		}

		seed, seedSim, ok := pickSeed(g, items, query, sim, visited, o.Rng, globalBest, o.Expansion, &simsUsed, maxSims, counters)
		if !ok {
			break
		}
		o.OnRestart(seed.ID, seedSim)
		counters.AddSearchRestart()
		visited[seed.ID] = true
		resultNL.Insert(core.Neighbor[T]{Item: seed, Similarity: seedSim})
		if seedSim > globalBest {
			globalBest = seedSim
		}

		finalSim := climb(g, query, seed, seedSim, &o, items, resultNL, visited, &simsUsed, maxSims, counters)
		if finalSim > globalBest {
			globalBest = finalSim
		}
	}

	return resultNL.Iter(), nil
}

// pickSeed draws random restart candidates until one clears the acceptance
// ratio globalBest/expansion (always accepted on the very first restart,
// when globalBest is still -Inf), the similarity budget runs out, or every
// item has been visited.
func pickSeed[T any](
	g *core.Graph[T],
	items []*core.Item[T],
	query T,
	sim core.Similarity[T],
	visited map[string]bool,
	rng *rand.Rand,
	globalBest, expansion float64,
	simsUsed *int,
	maxSims int,
	counters *stats.Counters,
) (*core.Item[T], float64, bool) {
	threshold := math.Inf(-1)
	if !math.IsInf(globalBest, -1) {
		threshold = globalBest / expansion
	}

	attempts := len(items)
	for a := 0; a < attempts; a++ {
		if *simsUsed >= maxSims {
			return nil, 0, false
		}
		cand := items[rng.Intn(len(items))]
		if visited[cand.ID] {
			continue
		}
		s := sim(query, cand.Payload)
		*simsUsed++
		counters.AddSearchSimilarity(1)
		if s >= threshold {
			return cand, s, true
		}
	}

	return nil, 0, false
}

// climb hill-climbs from start toward query: at every step it scans the
// current item's graph neighbors plus a handful of random long-jump
// candidates and moves to the first one that improves on the current
// similarity (greedy first-improvement), stopping at a local optimum, the
// similarity budget, or context cancellation. Returns the best similarity
// reached.
func climb[T any](
	g *core.Graph[T],
	query T,
	start *core.Item[T],
	startSim float64,
	o *Options,
	items []*core.Item[T],
	result *core.NeighborList[T],
	visited map[string]bool,
	simsUsed *int,
	maxSims int,
	counters *stats.Counters,
) float64 {
	sim := g.Sim()
	current := start
	currentSim := startSim

	for *simsUsed < maxSims {
		select {
		case <-o.Ctx.Done():
			return currentSim
		default:
		}

		var candidates []*core.Item[T]
		if nl, ok := g.Get(current.ID); ok {
			for _, nb := range nl.Iter() {
				if !visited[nb.Item.ID] {
					candidates = append(candidates, nb.Item)
				}
			}
		} else {
			// cross-partition dead end: current has no outgoing edges in this
			// graph (only ever referenced as someone else's neighbor). Long
			// jumps are still available to keep the climb going.
			counters.AddSearchCrossPartitionRestart()
		}
		candidates = append(candidates, longJumpCandidates(items, o.Rng, visited, o.LongJumps)...)

		improved := false
		for _, cand := range candidates {
			if *simsUsed >= maxSims {
				break
			}
			if visited[cand.ID] {
				continue
			}
			s := sim(query, cand.Payload)
			*simsUsed++
			counters.AddSearchSimilarity(1)
			visited[cand.ID] = true
			result.Insert(core.Neighbor[T]{Item: cand, Similarity: s})

			if s > currentSim {
				current = cand
				currentSim = s
				improved = true
				break // first-improvement: move immediately, don't keep scanning
			}
		}

		if !improved {
			return currentSim // local optimum: nothing scanned beat current
		}
	}

	return currentSim
}

// longJumpCandidates draws up to count uniformly random unvisited items,
// independent of graph adjacency, to help the climb escape plateaus a pure
// neighbor-following walk cannot.
func longJumpCandidates[T any](items []*core.Item[T], rng *rand.Rand, visited map[string]bool, count int) []*core.Item[T] {
	if count <= 0 || len(items) == 0 {
		return nil
	}
	out := make([]*core.Item[T], 0, count)
	attempts := count * 4
	for a := 0; a < attempts && len(out) < count; a++ {
		cand := items[rng.Intn(len(items))]
		if visited[cand.ID] {
			continue
		}
		out = append(out, cand)
	}

	return out
}

// exhaustive evaluates sim(query, ·) against every item in g directly.
func exhaustive[T any](g *core.Graph[T], query T, kQuery int, counters *stats.Counters) ([]core.Neighbor[T], error) {
	result, err := core.NewNeighborList[T](kQuery)
	if err != nil {
		return nil, err
	}
	sim := g.Sim()
	for _, it := range g.Items() {
		s := sim(query, it.Payload)
		counters.AddSearchSimilarity(1)
		result.Insert(core.Neighbor[T]{Item: it, Similarity: s})
	}

	return result.Iter(), nil
}
