package shortestpath

import "time"

// Unreachable is the distance reported for vertices that cannot be reached
// from the source.
const Unreachable int64 = -1

// RunStats describes a single calculation.
type RunStats struct {
	Vertices    int
	Edges       int
	Workers     int
	Partitions  int
	Rounds      int
	Relaxations int
	Elapsed     time.Duration
}

// Result holds the distances computed by a calculation.
type Result struct {
	// Source is the vertex the distances are measured from.
	Source int

	// Distances holds one entry per vertex in index order. Vertices that
	// cannot be reached from Source hold Unreachable.
	Distances []int64

	Stats RunStats
}

// Distance returns the distance from Source to v, or Unreachable.
func (r *Result) Distance(v int) int64 { return r.Distances[v] }

// Reachable reports whether v can be reached from Source.
func (r *Result) Reachable(v int) bool { return r.Distances[v] != Unreachable }

// Visit invokes visitFn for each vertex in index order with its distance.
// Iteration stops at the first error returned by visitFn.
func (r *Result) Visit(visitFn func(v int, dist int64) error) error {
	for v, dist := range r.Distances {
		if err := visitFn(v, dist); err != nil {
			return err
		}
	}

	return nil
}
