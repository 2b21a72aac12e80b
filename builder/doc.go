// Package builder assembles approximate or exact k-nearest-neighbor graphs
// from a flat slice of items.
//
// Three BuildFunc implementations are provided: Brute (exact, parallel block
// decomposition), NNDescent (Dong et al.'s approximate local join), and LSH
// (a partitioning meta-builder that delegates to either as its inner
// builder). All three share one Option/config mechanism; see config.go.
package builder
