package aggregator

import (
	"math"
	"sync"
)

// Candidate is an (index, value) pair competing in a MinArg reduction.
type Candidate struct {
	Index int
	Value int64
}

// NoCandidate is the value held by an empty MinArg.
var NoCandidate = Candidate{Index: -1, Value: math.MaxInt64}

// Less reports whether c beats other: a smaller value wins and ties are
// broken in favour of the smaller index. Candidates with a negative index
// never win.
func (c Candidate) Less(other Candidate) bool {
	switch {
	case c.Index < 0:
		return false
	case other.Index < 0:
		return true
	case c.Value != other.Value:
		return c.Value < other.Value
	default:
		return c.Index < other.Index
	}
}

// MinArg keeps the smallest Candidate aggregated so far. Partial results from
// concurrent workers are folded under a mutex so the outcome only depends on
// the set of candidates, never on the order in which they arrive. The zero
// value is an empty MinArg.
type MinArg struct {
	mu  sync.Mutex
	min Candidate
	set bool
}

// Min returns the current minimum, or NoCandidate when nothing that can win
// has been aggregated.
func (a *MinArg) Min() Candidate {
	a.mu.Lock()
	defer a.mu.Unlock()

	if !a.set {
		return NoCandidate
	}

	return a.min
}

// Reset empties the aggregator.
func (a *MinArg) Reset() {
	a.mu.Lock()
	a.min, a.set = NoCandidate, false
	a.mu.Unlock()
}

// Aggregate folds cand into the current minimum.
func (a *MinArg) Aggregate(cand Candidate) {
	a.mu.Lock()
	if !a.set || cand.Less(a.min) {
		a.min, a.set = cand, true
	}
	a.mu.Unlock()
}
