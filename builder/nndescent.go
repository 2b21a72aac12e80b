// File: nndescent.go
// Role: NNDescent — Dong, Charikar & Li's "NN-Descent" local-join algorithm:
// an approximate k-NN builder that starts from a random graph and repeatedly
// refines it under the heuristic "a neighbor of my neighbor is probably my
// neighbor too", until the round's improvement count drops below a threshold
// or maxIterations is reached.
package builder

import (
	"context"
	"math/rand"
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/katalvlaran/annlib/core"
	"github.com/katalvlaran/annlib/internal/logx"
)

// flagTable is the builder-local NEW/OLD side table, kept scoped to one
// NNDescent call instead of attached as an ad hoc attribute on core.Item or
// core.Graph.
type flagTable struct {
	mu   sync.Mutex
	isNew map[string]bool
}

func newFlagTable() *flagTable {
	return &flagTable{isNew: make(map[string]bool)}
}

func (f *flagTable) set(id string, v bool) {
	f.mu.Lock()
	f.isNew[id] = v
	f.mu.Unlock()
}

func (f *flagTable) get(id string) bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.isNew[id]
}

// NNDescent builds an approximate k-nearest-neighbor graph. Falls back to
// Brute when n <= k+1, since the local-join heuristic needs room to sample
// candidates that are neither the item itself nor already a neighbor.
func NNDescent[T any](items []*core.Item[T], opts ...Option[T]) (*core.Graph[T], BuildStats, error) {
	cfg := newConfig[T](opts...)
	if err := cfg.resolve(); err != nil {
		return nil, BuildStats{}, err
	}

	n := len(items)
	if n == 0 {
		return nil, BuildStats{}, ErrEmptyDataset
	}
	if n <= cfg.k+1 {
		return Brute(items, opts...)
	}

	g, err := core.NewGraph[T](cfg.k, cfg.sim)
	if err != nil {
		return nil, BuildStats{}, err
	}
	idx := make(map[string]*core.Item[T], n)
	for _, it := range items {
		if _, dup := idx[it.ID]; dup {
			return nil, BuildStats{}, ErrDuplicateItemID
		}
		idx[it.ID] = it
		nl, nlErr := core.NewNeighborList[T](cfg.k)
		if nlErr != nil {
			return nil, BuildStats{}, nlErr
		}
		if putErr := g.Put(it, nl); putErr != nil {
			return nil, BuildStats{}, putErr
		}
	}

	flags := newFlagTable()
	var simCalls atomicCounter
	seedRandomGraph(items, g, cfg.rng, flags, &simCalls)

	var iterations int
	for iter := 0; iter < cfg.maxIterations; iter++ {
		iterations++
		newC, oldC, revNewC, revOldC := splitByFlag(items, g, flags)
		c := runLocalJoin(items, idx, g, cfg, newC, oldC, revNewC, revOldC, &simCalls)

		for _, it := range items {
			flags.set(it.ID, false)
		}

		threshold := cfg.delta * float64(n) * float64(cfg.k)
		if float64(c) <= threshold {
			break
		}
	}

	if cfg.callback != nil {
		cfg.callback("nndescent.complete", map[string]any{"items": n, "iterations": iterations})
	}

	return g, BuildStats{ItemCount: n, SimilarityCalls: simCalls.value(), Iterations: iterations}, nil
}

// seedRandomGraph gives every item k random distinct neighbors (excluding
// itself), all flagged NEW, as NN-Descent's starting point.
func seedRandomGraph[T any](items []*core.Item[T], g *core.Graph[T], rng *rand.Rand, flags *flagTable, calls *atomicCounter) {
	n := len(items)
	k := g.K()
	for _, it := range items {
		flags.set(it.ID, true)
		perm := rng.Perm(n)
		chosen := 0
		for _, p := range perm {
			if chosen >= k {
				break
			}
			cand := items[p]
			if cand.ID == it.ID {
				continue
			}
			s := g.Sim()(it.Payload, cand.Payload)
			calls.add(1)
			g.InsertNeighbor(it.ID, core.Neighbor[T]{Item: cand, Similarity: s})
			chosen++
		}
	}
}

// candidateSet maps an item ID to the distinct candidate items gathered for
// it in the current round (forward neighbors plus, for the asymmetric
// reverse sets, anyone who currently holds this item as a neighbor).
type candidateSet[T any] map[string][]*core.Item[T]

// splitByFlag partitions every item's current neighbors into "new" (recently
// added, not yet joined on) and "old" (already joined at least once), and
// builds the corresponding reverse sets by inverting the forward lists.
// Reverse sets are derived strictly from forward neighbor lists as they stand
// at the start of the round, so a neighbor added during this round's join is
// not visible to its own round's reverse pass. The local join then pairs
// candidates from the same item v's sets only; it does not index a second
// candidate by the first candidate's own new set.
func splitByFlag[T any](items []*core.Item[T], g *core.Graph[T], flags *flagTable) (newC, oldC, revNewC, revOldC candidateSet[T]) {
	newC = make(candidateSet[T])
	oldC = make(candidateSet[T])
	revNewC = make(candidateSet[T])
	revOldC = make(candidateSet[T])

	for _, it := range items {
		nl, ok := g.Get(it.ID)
		if !ok {
			continue
		}
		for _, nb := range nl.Iter() {
			if flags.get(nb.Item.ID) {
				newC[it.ID] = append(newC[it.ID], nb.Item)
				revNewC[nb.Item.ID] = append(revNewC[nb.Item.ID], it)
			} else {
				oldC[it.ID] = append(oldC[it.ID], nb.Item)
				revOldC[nb.Item.ID] = append(revOldC[nb.Item.ID], it)
			}
		}
	}

	return newC, oldC, revNewC, revOldC
}

// runLocalJoin evaluates similarity between candidate pairs drawn from each
// item's new/old/reverse-new/reverse-old sets and attempts to insert each
// result into both endpoints' neighbor lists, returning the number of
// successful insertions (the convergence signal).
func runLocalJoin[T any](
	items []*core.Item[T],
	idx map[string]*core.Item[T],
	g *core.Graph[T],
	cfg *config[T],
	newC, oldC, revNewC, revOldC candidateSet[T],
	calls *atomicCounter,
) int {
	var updates atomicCounter

	eg, _ := errgroup.WithContext(context.Background())
	eg.SetLimit(cfg.threads)
	for _, it := range items {
		it := it
		eg.Go(func() (err error) {
			defer func() {
				if r := recover(); r != nil {
					// A panicking similarity function loses only this item's
					// local join for the round, not the whole build: logged
					// and discarded, same policy as the brute builder.
					logx.Default.Errorf("nndescent: local join for %q failed: %v", it.ID, r)
				}
			}()

			combinedNew := sampleUnion(newC[it.ID], revNewC[it.ID], cfg.rho, cfg.rng)
			combinedOld := append(append([]*core.Item[T]{}, oldC[it.ID]...), revOldC[it.ID]...)

			// new-new pairs: join both endpoints symmetrically.
			for i := 0; i < len(combinedNew); i++ {
				for j := i + 1; j < len(combinedNew); j++ {
					joinPair(g, idx, combinedNew[i], combinedNew[j], calls, &updates)
				}
			}
			// new-old pairs: every new candidate against every old candidate.
			for i := 0; i < len(combinedNew); i++ {
				for j := 0; j < len(combinedOld); j++ {
					joinPair(g, idx, combinedNew[i], combinedOld[j], calls, &updates)
				}
			}

			return nil
		})
	}
	_ = eg.Wait()

	return int(updates.value())
}

// joinPair computes sim(a, b) once and inserts it into both a's and b's
// neighbor lists if held in the graph; a or b not being a graph key (only
// possible for cross-partition callers, not here) is silently skipped.
func joinPair[T any](g *core.Graph[T], idx map[string]*core.Item[T], a, b *core.Item[T], calls, updates *atomicCounter) {
	if a.ID == b.ID {
		return
	}
	s := g.Sim()(a.Payload, b.Payload)
	calls.add(1)
	if ok, err := g.InsertNeighbor(a.ID, core.Neighbor[T]{Item: b, Similarity: s}); err == nil && ok {
		updates.add(1)
	}
	if ok, err := g.InsertNeighbor(b.ID, core.Neighbor[T]{Item: a, Similarity: s}); err == nil && ok {
		updates.add(1)
	}
}

// sampleUnion merges a and b (deduplicated by ID) and, if the merged set
// exceeds a size bound, subsamples it down via a partial Fisher-Yates shuffle
// so the local join's cost stays close to rho^2 * |new|^2 rather than |new|^2.
func sampleUnion[T any](a, b []*core.Item[T], rho float64, rng *rand.Rand) []*core.Item[T] {
	seen := make(map[string]struct{}, len(a)+len(b))
	merged := make([]*core.Item[T], 0, len(a)+len(b))
	for _, x := range append(append([]*core.Item[T]{}, a...), b...) {
		if _, ok := seen[x.ID]; ok {
			continue
		}
		seen[x.ID] = struct{}{}
		merged = append(merged, x)
	}

	target := int(rho * float64(len(merged)))
	if target >= len(merged) || target < 1 {
		return merged
	}

	// Partial Fisher-Yates: shuffle only the prefix we need, leaving the rest
	// of merged untouched. Equivalent to drawing an unordered size-target
	// sample uniformly at random from merged.
	for i := 0; i < target; i++ {
		j := i + rng.Intn(len(merged)-i)
		merged[i], merged[j] = merged[j], merged[i]
	}

	return merged[:target]
}
