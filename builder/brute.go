// File: brute.go
// Role: Brute — the exact (non-approximate) k-NN builder. Computes every
// pairwise similarity and inserts each into both endpoints' neighbor lists,
// tiled over n×n blocks so the work can be spread across goroutines without
// any single goroutine owning an unbounded slice of comparisons.
package builder

import (
	"context"
	"fmt"
	"sync/atomic"

	"golang.org/x/sync/errgroup"

	"github.com/katalvlaran/annlib/core"
	"github.com/katalvlaran/annlib/internal/logx"
)

// block identifies one lower-triangle tile of the n×n comparison matrix:
// rows [rowStart, rowEnd) against cols [colStart, colEnd).
type block struct {
	rowStart, rowEnd int
	colStart, colEnd int
}

// Brute builds the exact k-nearest-neighbor graph: for every pair (i, j),
// i != j, sim(items[i], items[j]) is computed once and inserted into both
// items' neighbor lists. Work is split into square blocks of the resolved
// config's block size (default 1000) and dispatched across threads worker
// goroutines via errgroup; a goroutine that panics or errors on one block is
// logged and discarded rather than aborting the remaining blocks, so a single
// bad comparison never loses the rest of the graph.
func Brute[T any](items []*core.Item[T], opts ...Option[T]) (*core.Graph[T], BuildStats, error) {
	cfg := newConfig[T](opts...)
	if err := cfg.resolve(); err != nil {
		return nil, BuildStats{}, err
	}

	n := len(items)
	if n == 0 {
		return nil, BuildStats{}, ErrEmptyDataset
	}
	if cfg.k >= n {
		return nil, BuildStats{}, fmt.Errorf("%w: k=%d, n=%d", ErrKTooLarge, cfg.k, n)
	}

	g, err := core.NewGraph[T](cfg.k, cfg.sim)
	if err != nil {
		return nil, BuildStats{}, err
	}
	seen := make(map[string]struct{}, n)
	for _, it := range items {
		if _, dup := seen[it.ID]; dup {
			return nil, BuildStats{}, fmt.Errorf("%w: %s", ErrDuplicateItemID, it.ID)
		}
		seen[it.ID] = struct{}{}
		nl, nlErr := core.NewNeighborList[T](cfg.k)
		if nlErr != nil {
			return nil, BuildStats{}, nlErr
		}
		if putErr := g.Put(it, nl); putErr != nil {
			return nil, BuildStats{}, putErr
		}
	}

	blocks := blockLowerTriangle(n, cfg.blockSize)

	var calls atomicCounter
	eg, _ := errgroup.WithContext(context.Background())
	eg.SetLimit(cfg.threads)
	for _, b := range blocks {
		b := b
		eg.Go(func() (err error) {
			defer func() {
				if r := recover(); r != nil {
					// A panicking similarity function loses only its own
					// block, not the rest of the build: logged and discarded.
					logx.Default.Errorf("brute: block rows[%d:%d) cols[%d:%d) failed: %v", b.rowStart, b.rowEnd, b.colStart, b.colEnd, r)
				}
			}()
			processBlock(items, g, b, &calls)

			return nil
		})
	}
	_ = eg.Wait()

	if cfg.callback != nil {
		cfg.callback("brute.complete", map[string]any{"items": n})
	}

	return g, BuildStats{ItemCount: n, SimilarityCalls: calls.value()}, nil
}

// atomicCounter is a minimal concurrency-safe tally for similarity-call counts.
type atomicCounter struct {
	n atomic.Int64
}

func (c *atomicCounter) add(delta int64) { c.n.Add(delta) }
func (c *atomicCounter) value() int64    { return c.n.Load() }

// blockLowerTriangle partitions the strictly-lower triangle of an n×n matrix
// (i > j) into square tiles of side size, so each tile's pairs can be computed
// independently without any two goroutines racing on the same (i, j).
func blockLowerTriangle(n, size int) []block {
	if size < 1 {
		size = n
	}
	var blocks []block
	for rowStart := 0; rowStart < n; rowStart += size {
		rowEnd := min(rowStart+size, n)
		for colStart := 0; colStart <= rowStart; colStart += size {
			colEnd := min(colStart+size, n)
			blocks = append(blocks, block{rowStart: rowStart, rowEnd: rowEnd, colStart: colStart, colEnd: colEnd})
		}
	}

	return blocks
}

// processBlock computes sim(i, j) for every i in [rowStart,rowEnd), j in
// [colStart,colEnd) with j < i, inserting the result into both i's and j's
// neighbor lists.
func processBlock[T any](items []*core.Item[T], g *core.Graph[T], b block, calls *atomicCounter) {
	sim := g.Sim()
	for i := b.rowStart; i < b.rowEnd; i++ {
		colEnd := min(b.colEnd, i)
		for j := b.colStart; j < colEnd; j++ {
			s := sim(items[i].Payload, items[j].Payload)
			calls.add(1)
			g.InsertNeighbor(items[i].ID, core.Neighbor[T]{Item: items[j], Similarity: s})
			g.InsertNeighbor(items[j].ID, core.Neighbor[T]{Item: items[i], Similarity: s})
		}
	}
}

