/*
	runstore package defines types that outline the behavior of data stores
	that persist shortest path runs: the input matrix, the source vertex and
	the computed distances together with the run statistics.
*/

package runstore

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
)

var (
	// ErrNotFound is returned when a Run lookup fails.
	ErrNotFound = errors.New("not found")

	// ErrInvalidRun is returned when attempting to store a Run whose fields
	// are inconsistent with each other.
	ErrInvalidRun = errors.New("invalid run")
)

// Store should be implemented by run data stores.
type Store interface {
	// InsertRun stores a new run. It assigns a new ID to the run and, when
	// not set, a CreatedAt timestamp.
	InsertRun(run *Run) error

	// FindRun performs a run lookup by id.
	FindRun(id uuid.UUID) (*Run, error)

	// Runs returns an iterator for the runs that were created before the
	// [createdBefore] time, ordered by creation time.
	Runs(createdBefore time.Time) (Iterator, error)
}

// Iterator is implemented by types that iterate stored runs.
type Iterator interface {
	// Next loads the next run, returns false when no more runs
	// are available or when an error occurs.
	Next() bool

	// Run returns the currently fetched run.
	Run() *Run

	// Error returns the last error encountered by the iterator.
	Error() error

	// Close releases any resources allocated to the iterator.
	Close() error
}

// Run represents a single shortest path calculation. it serves as a
// model / schema object.
type Run struct {
	ID          uuid.UUID     // Run unique identifier
	Source      int           // Source vertex
	Matrix      [][]int64     // Adjacency matrix the distances were computed on
	Distances   []int64       // Distance per vertex, -1 when unreachable
	Workers     int           // Number of compute workers
	Partitions  int           // Number of partitions per phase
	Rounds      int           // Number of finalized vertices
	Relaxations int           // Number of successful relaxations
	Elapsed     time.Duration // Calculation time
	CreatedAt   time.Time     // Creation timestamp
}

// Validate checks that the run describes a square matrix, a source inside
// it and one distance per vertex.
func (r *Run) Validate() error {
	n := len(r.Matrix)
	if n == 0 {
		return fmt.Errorf("empty matrix: %w", ErrInvalidRun)
	}

	for u, row := range r.Matrix {
		if len(row) != n {
			return fmt.Errorf("matrix row %d has %d columns, expected %d: %w", u, len(row), n, ErrInvalidRun)
		}
	}

	if r.Source < 0 || r.Source >= n {
		return fmt.Errorf("source %d not in [0, %d): %w", r.Source, n, ErrInvalidRun)
	}

	if len(r.Distances) != n {
		return fmt.Errorf("got %d distances for %d vertices: %w", len(r.Distances), n, ErrInvalidRun)
	}

	return nil
}

// Clone returns a deep copy of the run.
func (r *Run) Clone() *Run {
	clone := *r

	clone.Matrix = make([][]int64, len(r.Matrix))
	for u, row := range r.Matrix {
		clone.Matrix[u] = append([]int64(nil), row...)
	}

	clone.Distances = append([]int64(nil), r.Distances...)

	return &clone
}

// NormalizeTime returns t in UTC truncated to the microsecond precision that
// every store implementation can represent.
func NormalizeTime(t time.Time) time.Time {
	return t.UTC().Truncate(time.Microsecond)
}
