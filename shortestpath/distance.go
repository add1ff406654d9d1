package shortestpath

import (
	"math"
	"sync/atomic"
)

// infinity marks a vertex that has not been reached yet. It never leaves the
// package; results report such vertices as Unreachable.
const infinity = math.MaxInt64

// distanceVector holds the tentative distance of every vertex. Entries are
// updated with compare-and-swap so concurrent relaxations never lose a
// smaller value.
type distanceVector []atomic.Int64

func newDistanceVector(n, source int) distanceVector {
	d := make(distanceVector, n)
	for v := range d {
		d[v].Store(infinity)
	}

	d[source].Store(0)

	return d
}

func (d distanceVector) load(v int) int64 {
	return d[v].Load()
}

// relax lowers the distance of v to candidate if candidate is smaller than
// the current value and reports whether the value changed.
func (d distanceVector) relax(v int, candidate int64) bool {
	for {
		curr := d[v].Load()
		if candidate >= curr {
			return false
		}

		if d[v].CompareAndSwap(curr, candidate) {
			return true
		}
	}
}

// export converts the vector into its external form.
func (d distanceVector) export() []int64 {
	out := make([]int64, len(d))
	for v := range d {
		if dist := d[v].Load(); dist != infinity {
			out[v] = dist
		} else {
			out[v] = Unreachable
		}
	}

	return out
}
