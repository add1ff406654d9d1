package graph

import (
	"fmt"

	"github.com/hashicorp/go-multierror"
)

// Option customizes the way a Graph is validated and built.
type Option func(*options)

type options struct {
	negativeAsAbsent bool
}

// WithNegativeAsAbsent accepts negative weights and treats them as missing
// edges, the same way a zero weight is treated. Without this option negative
// weights are rejected with ErrNegativeWeight.
func WithNegativeAsAbsent() Option {
	return func(o *options) { o.negativeAsAbsent = true }
}

// Graph is a read-only dense adjacency matrix. It is safe for concurrent
// reads by any number of goroutines.
type Graph struct {
	order   int
	weights []int64 // row-major, order*order entries
	edges   int
}

// New validates the provided matrix and returns a Graph that owns a private
// copy of it. Later changes to matrix do not affect the returned Graph.
func New(matrix [][]int64, opts ...Option) (*Graph, error) {
	if err := Validate(matrix, opts...); err != nil {
		return nil, err
	}

	n := len(matrix)
	g := &Graph{
		order:   n,
		weights: make([]int64, n*n),
	}

	for u, row := range matrix {
		for v, w := range row {
			if w <= 0 {
				// Stored as zero so that every weight <= 0 reads back as
				// "no edge".
				continue
			}

			g.weights[u*n+v] = w
			g.edges++
		}
	}

	return g, nil
}

// Validate checks that matrix is non-empty, square and, unless
// WithNegativeAsAbsent is given, free of negative weights. All detected
// problems are reported in a single error.
func Validate(matrix [][]int64, opts ...Option) error {
	var o options
	for _, opt := range opts {
		opt(&o)
	}

	return validate(matrix, o)
}

func validate(matrix [][]int64, o options) error {
	n := len(matrix)
	if n == 0 {
		return fmt.Errorf("empty matrix: %w", ErrMalformedGraph)
	}

	var err error
	for u, row := range matrix {
		if len(row) != n {
			err = multierror.Append(err, fmt.Errorf(
				"row %d has %d columns, expected %d: %w",
				u, len(row), n, ErrMalformedGraph,
			))

			continue
		}

		if o.negativeAsAbsent {
			continue
		}

		// Only the first negative weight of a row is reported.
		for v, w := range row {
			if w < 0 {
				err = multierror.Append(err, fmt.Errorf(
					"edge %d -> %d has weight %d: %w", u, v, w, ErrNegativeWeight,
				))

				break
			}
		}
	}

	return err
}

// Order returns the number of vertices in the graph.
func (g *Graph) Order() int { return g.order }

// Edges returns the number of edges (entries with a positive weight).
func (g *Graph) Edges() int { return g.edges }

// Weight returns the weight of the edge u -> v or 0 if there is no such edge.
// It panics if u or v is out of range.
func (g *Graph) Weight(u, v int) int64 {
	g.mustContain(u)
	g.mustContain(v)

	return g.weights[u*g.order+v]
}

// HasEdge reports whether the edge u -> v exists.
func (g *Graph) HasEdge(u, v int) bool {
	return g.Weight(u, v) > 0
}

// Row returns a copy of the outgoing edge weights of vertex u.
func (g *Graph) Row(u int) []int64 {
	g.mustContain(u)

	row := make([]int64, g.order)
	copy(row, g.row(u))

	return row
}

// Matrix returns a deep copy of the adjacency matrix. Absent edges are
// reported as 0.
func (g *Graph) Matrix() [][]int64 {
	m := make([][]int64, g.order)
	for u := range m {
		m[u] = g.Row(u)
	}

	return m
}

// row returns the backing slice for vertex u without copying. Callers must
// not modify it.
func (g *Graph) row(u int) []int64 {
	return g.weights[u*g.order : (u+1)*g.order]
}

// Outgoing invokes visitFn for every edge u -> v with v in [from, to). It is
// meant for hot loops that scan a slice of a row without allocating.
func (g *Graph) Outgoing(u, from, to int, visitFn func(v int, w int64)) {
	g.mustContain(u)

	row := g.row(u)
	for v := from; v < to; v++ {
		if w := row[v]; w > 0 {
			visitFn(v, w)
		}
	}
}

func (g *Graph) mustContain(v int) {
	if v < 0 || v >= g.order {
		panic(fmt.Sprintf("graph: vertex %d out of range [0, %d)", v, g.order))
	}
}
