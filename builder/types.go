package builder

import "github.com/katalvlaran/annlib/core"

// BuildFunc constructs a Graph from a slice of items under the given
// resolved options. Brute, NNDescent, and LSH all satisfy this signature,
// which lets LSH delegate to any of them (including itself) as its inner
// per-bucket builder.
type BuildFunc[T any] func(items []*core.Item[T], opts ...Option[T]) (*core.Graph[T], BuildStats, error)

// HashFamily buckets an item's payload into a single hash code for the given
// stage index (0-based). Implementations live in the hashfam package (MinHash
// for Jaccard-like similarities, SuperBit for cosine-like similarities); this
// alias lets builder accept either without importing hashfam, avoiding an
// import cycle. Stage-dependence lets LSH's nStages repetitions draw
// independent bucket assignments instead of recomputing the same partition.
type HashFamily[T any] func(payload T, stage int) uint64

// BuildStats reports what a builder actually did, for tests and diagnostics.
type BuildStats struct {
	// ItemCount is the number of items placed into the resulting graph.
	ItemCount int

	// SimilarityCalls counts invocations of the similarity function.
	SimilarityCalls int64

	// Iterations is the number of local-join rounds NN-Descent performed
	// (0 for Brute and for LSH; LSH sums its inner builders' SimilarityCalls
	// but not their Iterations).
	Iterations int

	// Partitions is the number of non-empty buckets LSH actually built
	// (0 for builders that do not partition).
	Partitions int

	// EstimatedSpeedup is LSH's n² / Σ(bucket sizes²) estimate of the work
	// avoided relative to exhaustive brute force (0 for builders that do not
	// partition).
	EstimatedSpeedup float64
}
