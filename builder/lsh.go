// File: lsh.go
// Role: LSH — a partitioning meta-builder. Items are hashed into nPartitions
// buckets across nStages independent repetitions; each non-empty bucket is
// handed to an inner BuildFunc (Brute by default), and the resulting partial
// neighbor lists are merged back into one graph via NeighborList's ordinary
// monotone-improvement Insert, so a later stage's or bucket's candidate can
// still displace an earlier one if it is strictly better.
package builder

import (
	"github.com/katalvlaran/annlib/core"
)

// LSH builds an approximate k-nearest-neighbor graph by restricting candidate
// comparisons to items that collide under a locality-sensitive hash, trading
// recall for a large reduction in the number of similarity evaluations when
// the hash family's collisions correlate with high similarity.
func LSH[T any](items []*core.Item[T], opts ...Option[T]) (*core.Graph[T], BuildStats, error) {
	cfg := newConfig[T](opts...)
	if err := cfg.resolve(); err != nil {
		return nil, BuildStats{}, err
	}
	if cfg.hashFamily == nil {
		return nil, BuildStats{}, ErrOptionViolation
	}
	inner := cfg.inner
	if inner == nil {
		inner = Brute[T]
	}

	n := len(items)
	if n == 0 {
		return nil, BuildStats{}, ErrEmptyDataset
	}
	if cfg.k >= n {
		return nil, BuildStats{}, ErrKTooLarge
	}

	g, err := core.NewGraph[T](cfg.k, cfg.sim)
	if err != nil {
		return nil, BuildStats{}, err
	}
	for _, it := range items {
		nl, nlErr := core.NewNeighborList[T](cfg.k)
		if nlErr != nil {
			return nil, BuildStats{}, nlErr
		}
		if putErr := g.Put(it, nl); putErr != nil {
			return nil, BuildStats{}, putErr
		}
	}

	var totalSimCalls int64
	var sumBucketSqr float64
	nonEmptyBuckets := 0

	for stage := 0; stage < cfg.nStages; stage++ {
		buckets := make(map[uint64][]*core.Item[T])
		for _, it := range items {
			code := cfg.hashFamily(it.Payload, stage) % uint64(cfg.nPartitions)
			buckets[code] = append(buckets[code], it)
		}

		for _, bucketItems := range buckets {
			if len(bucketItems) <= cfg.k {
				// Too small to build a full-capacity neighbor list on its own;
				// every pair within is still evaluated directly so no item is
				// left without candidates from this bucket.
				insertExhaustive(g, bucketItems, &totalSimCalls)
				sumBucketSqr += float64(len(bucketItems)) * float64(len(bucketItems))
				nonEmptyBuckets++
				continue
			}

			subGraph, stats, buildErr := inner(bucketItems, innerOpts(cfg)...)
			if buildErr != nil {
				// A failing bucket is skipped, not fatal: its items simply
				// gain no candidates from this stage, consistent with the
				// logged-and-discarded worker-failure policy used elsewhere.
				continue
			}
			mergeInto(g, subGraph)
			totalSimCalls += stats.SimilarityCalls
			sumBucketSqr += float64(len(bucketItems)) * float64(len(bucketItems))
			nonEmptyBuckets++
		}
	}

	speedup := 1.0
	if sumBucketSqr > 0 {
		speedup = float64(n) * float64(n) / sumBucketSqr
	}

	if cfg.callback != nil {
		cfg.callback("lsh.complete", map[string]any{"items": n, "partitions": nonEmptyBuckets})
	}

	return g, BuildStats{
		ItemCount:        n,
		SimilarityCalls:  totalSimCalls,
		Partitions:       nonEmptyBuckets,
		EstimatedSpeedup: speedup,
	}, nil
}

// innerOpts forwards the outer config's shared parameters to the per-bucket
// inner builder (k, similarity, threads); LSH-specific options are not passed
// down since the inner builder partitions nothing itself.
func innerOpts[T any](cfg *config[T]) []Option[T] {
	return []Option[T]{
		WithK[T](cfg.k),
		WithSimilarity[T](cfg.sim),
		WithThreadCount[T](cfg.threads),
	}
}

// insertExhaustive computes every pairwise similarity within a small bucket
// directly, bypassing the inner builder (which would reject k >= n).
func insertExhaustive[T any](g *core.Graph[T], bucketItems []*core.Item[T], calls *int64) {
	sim := g.Sim()
	for i := 0; i < len(bucketItems); i++ {
		for j := i + 1; j < len(bucketItems); j++ {
			s := sim(bucketItems[i].Payload, bucketItems[j].Payload)
			*calls++
			g.InsertNeighbor(bucketItems[i].ID, core.Neighbor[T]{Item: bucketItems[j], Similarity: s})
			g.InsertNeighbor(bucketItems[j].ID, core.Neighbor[T]{Item: bucketItems[i], Similarity: s})
		}
	}
}

// mergeInto folds every neighbor discovered in src into dst via ordinary
// monotone-improvement Insert, so stronger candidates found in a later stage
// or bucket still win over weaker ones already recorded.
func mergeInto[T any](dst, src *core.Graph[T]) {
	for _, it := range src.Items() {
		nl, ok := src.Get(it.ID)
		if !ok {
			continue
		}
		for _, nb := range nl.Iter() {
			dst.InsertNeighbor(it.ID, nb)
		}
	}
}
