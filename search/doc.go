// Package search implements GNNS (Graph Nearest Neighbor Search): approximate
// nearest-neighbor lookup by hill-climbing over an already-built k-NN graph,
// rather than scanning every item.
package search
