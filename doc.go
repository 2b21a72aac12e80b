// Package annlib builds and maintains approximate k-nearest-neighbor graphs
// over arbitrary payloads.
//
// A k-NN graph maps every item to a bounded, similarity-ordered list of its k
// closest neighbors under a caller-supplied Similarity function. Construction
// does not require that function to be a metric: only that higher values mean
// more similar.
//
// Subpackages:
//
//	core/      — Item, Neighbor, NeighborList, and the Graph container
//	builder/   — Brute (exact), NNDescent (approximate local join), LSH (partitioning)
//	hashfam/   — MinHash and SuperBit hash families for builder.LSH
//	search/    — GNNS approximate nearest-neighbor query against a built graph
//	maintain/  — online ExhaustiveAdd/FastAdd/FastRemove and sliding-window eviction
//	graphutil/ — prune, connected components (weak and strong), bounded neighborhoods
//	gexf/      — GEXF export for external graph visualization
//	stats/     — concurrency-safe counters for search and maintenance work
//
// A typical build-then-query flow:
//
//	g, stats, err := builder.Brute(items, builder.WithK[Point](10), builder.WithSimilarity[Point](cosine))
//	results, err := search.Search(g, query, 10, counters)
package annlib
