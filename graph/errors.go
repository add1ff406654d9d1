package graph

import "errors"

var (
	// ErrMalformedGraph is returned when a matrix is empty, nil or not square.
	ErrMalformedGraph = errors.New("malformed graph")

	// ErrNegativeWeight is returned when a matrix contains a negative edge
	// weight and the graph is built in strict mode.
	ErrNegativeWeight = errors.New("negative edge weight")
)
