package aggregator

import "sync/atomic"

// IntAccumulator is a concurrent-safe running sum of int values, used to count
// events such as successful relaxations across the partitions of a phase.
type IntAccumulator struct {
	// mark is the sum observed by the most recent Delta call.
	mark atomic.Int64
	sum  atomic.Int64
}

// Add adds n to the sum.
func (a *IntAccumulator) Add(n int) {
	a.sum.Add(int64(n))
}

// Total returns the current sum.
func (a *IntAccumulator) Total() int {
	return int(a.sum.Load())
}

// Delta returns the change in the sum since the last call to Delta.
func (a *IntAccumulator) Delta() int {
	for {
		sum := a.sum.Load()
		mark := a.mark.Load()

		if a.mark.CompareAndSwap(mark, sum) {
			return int(sum - mark)
		}
	}
}
