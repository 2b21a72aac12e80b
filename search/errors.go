package search

import "errors"

var (
	// ErrGraphNil is returned when a nil graph pointer is passed to Search.
	ErrGraphNil = errors.New("search: graph is nil")

	// ErrEmptyGraph is returned when Search is invoked against a graph with no items.
	ErrEmptyGraph = errors.New("search: graph is empty")

	// ErrOptionViolation is returned when an invalid Option is supplied.
	ErrOptionViolation = errors.New("search: invalid option supplied")
)
