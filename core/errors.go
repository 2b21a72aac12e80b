package core

import "errors"

// Sentinel errors for the core package. Callers should branch on these with
// errors.Is; messages are not part of the contract and may change.
var (
	// ErrEmptyItemID indicates an Item was constructed with an empty identity.
	ErrEmptyItemID = errors.New("core: item ID is empty")

	// ErrInvalidCapacity indicates a NeighborList was asked for a capacity k < 1.
	ErrInvalidCapacity = errors.New("core: neighbor list capacity must be >= 1")

	// ErrNilSimilarity indicates a Graph was constructed without a Similarity function.
	ErrNilSimilarity = errors.New("core: similarity function is nil")

	// ErrItemNotFound indicates an operation referenced an item absent from the graph.
	// Never returned from Get/Contains (an absent NL is a valid, non-error outcome for
	// cross-partition navigation); it is used by operations that must mutate an
	// existing entry, such as Graph.Remove.
	ErrItemNotFound = errors.New("core: item not found")

	// ErrSelfNeighbor indicates an attempt to insert an item into its own neighbor list.
	ErrSelfNeighbor = errors.New("core: item cannot be its own neighbor")
)
