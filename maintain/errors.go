package maintain

import "errors"

var (
	// ErrGraphNil is returned when a nil graph pointer is passed to an operation.
	ErrGraphNil = errors.New("maintain: graph is nil")

	// ErrItemExists is returned when Add is asked to insert an ID already in the graph.
	ErrItemExists = errors.New("maintain: item already exists")
)
