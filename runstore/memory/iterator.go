package memory

import "github.com/mycok/uPath/runstore"

// Static and compile-time check to ensure runIterator implements
// runstore.Iterator interface.
var _ runstore.Iterator = (*runIterator)(nil)

// runIterator is a runstore.Iterator implementation for the in-memory store.
// It iterates over copies taken when the iterator was created, so later
// store updates are not visible through it.
type runIterator struct {
	runs         []*runstore.Run
	currentIndex int
}

// Next loads the next item, returns false when no more runs
// are available.
func (i *runIterator) Next() bool {
	if i.currentIndex >= len(i.runs) {
		return false
	}

	i.currentIndex++

	return true
}

// Run returns the currently fetched run.
func (i *runIterator) Run() *runstore.Run {
	return i.runs[i.currentIndex-1]
}

// Error returns the last error encountered by the iterator.
func (i *runIterator) Error() error {
	return nil
}

// Close releases any resources allocated to the iterator.
func (i *runIterator) Close() error {
	return nil
}
