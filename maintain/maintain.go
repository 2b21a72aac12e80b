// Package maintain provides online update operations for an already-built
// k-NN graph: ExhaustiveAdd and FastAdd insert a new item, FastRemove deletes
// one and cleans up every dangling reference to it, and the sliding-window
// eviction policy keeps a windowed graph bounded by evicting the
// oldest-inserted item whenever it would otherwise grow past WindowSize.
package maintain

import (
	"math"

	"github.com/katalvlaran/annlib/core"
	"github.com/katalvlaran/annlib/graphutil"
	"github.com/katalvlaran/annlib/search"
	"github.com/katalvlaran/annlib/stats"
)

// ExhaustiveAdd inserts item by comparing it against every existing item in
// g, exactly as Brute would. Correct and simple, but O(n) similarity
// evaluations per call; prefer FastAdd once the graph is large.
func ExhaustiveAdd[T any](g *core.Graph[T], item *core.Item[T], counters *stats.Counters) error {
	if g == nil {
		return ErrGraphNil
	}
	if g.Contains(item.ID) {
		return ErrItemExists
	}
	if counters == nil {
		counters = stats.New()
	}

	nl, err := core.NewNeighborList[T](g.K())
	if err != nil {
		return err
	}
	sim := g.Sim()
	for _, existing := range g.Items() {
		s := sim(item.Payload, existing.Payload)
		counters.AddAddSimilarity(1)
		nl.Insert(core.Neighbor[T]{Item: existing, Similarity: s})
		g.InsertNeighbor(existing.ID, core.Neighbor[T]{Item: item, Similarity: s})
	}
	if err := g.Put(item, nl); err != nil {
		return err
	}
	stampSequence(g, item.ID)
	evictIfNeeded(g)

	return nil
}

// FastAdd inserts item by first locating its approximate neighborhood with
// GNNS (search.Search), then propagating reciprocal candidate edges out to
// updateDepth hops through the graph's existing structure — far cheaper than
// ExhaustiveAdd once the graph is large, at the cost of being approximate.
func FastAdd[T any](g *core.Graph[T], item *core.Item[T], updateDepth int, counters *stats.Counters, searchOpts ...search.Option) error {
	if g == nil {
		return ErrGraphNil
	}
	if g.Contains(item.ID) {
		return ErrItemExists
	}
	if counters == nil {
		counters = stats.New()
	}

	found, err := search.Search(g, item.Payload, g.K(), counters, searchOpts...)
	if err != nil {
		return err
	}

	nl, err := core.NewNeighborList[T](g.K())
	if err != nil {
		return err
	}
	for _, nb := range found {
		nl.Insert(nb)
	}
	if err := g.Put(item, nl); err != nil {
		return err
	}
	stampSequence(g, item.ID)

	sim := g.Sim()
	for _, candID := range graphutil.FindNeighbors(g, item.ID, updateDepth) {
		candItem, ok := g.GetItem(candID)
		if !ok {
			continue
		}
		s := sim(item.Payload, candItem.Payload)
		counters.AddAddSimilarity(1)
		g.InsertNeighbor(candID, core.Neighbor[T]{Item: item, Similarity: s})
	}

	evictIfNeeded(g)

	return nil
}

// FastRemove deletes id from g: it first gathers id's local neighborhood (out
// to updateDepth hops) as replenishment candidates, removes every dangling
// reference to id from other items' neighbor lists, deletes id itself, then
// brute-forces similarity among the gathered candidates so removed neighbor
// slots have a chance to be refilled rather than left permanently short.
func FastRemove[T any](g *core.Graph[T], id string, updateDepth int, counters *stats.Counters) error {
	if g == nil {
		return ErrGraphNil
	}
	if !g.Contains(id) {
		return core.ErrItemNotFound
	}
	if counters == nil {
		counters = stats.New()
	}

	candidateIDs := graphutil.FindNeighbors(g, id, updateDepth)

	for _, it := range g.Items() {
		if it.ID == id {
			continue
		}
		if nl, ok := g.Get(it.ID); ok {
			nl.Remove(id)
		}
	}

	if err := g.Remove(id); err != nil {
		return err
	}

	sim := g.Sim()
	candItems := make([]*core.Item[T], 0, len(candidateIDs))
	for _, cid := range candidateIDs {
		if cid == id {
			continue
		}
		if it, ok := g.GetItem(cid); ok {
			candItems = append(candItems, it)
		}
	}
	for i := 0; i < len(candItems); i++ {
		for j := i + 1; j < len(candItems); j++ {
			s := sim(candItems[i].Payload, candItems[j].Payload)
			counters.AddRemoveSimilarity(1)
			g.InsertNeighbor(candItems[i].ID, core.Neighbor[T]{Item: candItems[j], Similarity: s})
			g.InsertNeighbor(candItems[j].ID, core.Neighbor[T]{Item: candItems[i], Similarity: s})
		}
	}

	return nil
}

// stampSequence assigns the next SEQUENCE value to id, recording its
// insertion order for sliding-window eviction.
func stampSequence[T any](g *core.Graph[T], id string) {
	g.SetSequence(id, g.NextSequence())
}

// evictIfNeeded drops the oldest-inserted item (by SEQUENCE) repeatedly until
// g.Size() no longer exceeds g.WindowSize(). A no-op when WindowSize is 0.
func evictIfNeeded[T any](g *core.Graph[T]) {
	w := g.WindowSize()
	if w <= 0 {
		return
	}
	for g.Size() > w {
		oldestID, ok := oldestItem(g)
		if !ok {
			return
		}
		for _, it := range g.Items() {
			if it.ID == oldestID {
				continue
			}
			if nl, ok := g.Get(it.ID); ok {
				nl.Remove(oldestID)
			}
		}
		_ = g.Remove(oldestID)
	}
}

func oldestItem[T any](g *core.Graph[T]) (string, bool) {
	var oldestSeq uint64 = math.MaxUint64
	oldestID := ""
	found := false
	for _, it := range g.Items() {
		seq, ok := g.SequenceOf(it.ID)
		if !ok {
			continue
		}
		if seq < oldestSeq {
			oldestSeq = seq
			oldestID = it.ID
			found = true
		}
	}

	return oldestID, found
}
