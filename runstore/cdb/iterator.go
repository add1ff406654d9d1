package cdb

import (
	"database/sql"
	"fmt"

	"github.com/mycok/uPath/runstore"
)

// Static and compile-time check to ensure runIterator implements
// runstore.Iterator interface.
var _ runstore.Iterator = (*runIterator)(nil)

// runIterator is a runstore.Iterator implementation for the cockroachDB
// store. It wraps the [database/sql] Rows type that serves as an iterator
// for the returned query data.
type runIterator struct {
	rows    *sql.Rows
	lastErr error
	run     *runstore.Run
}

// Next loads the next item, returns false when no more runs
// are available or when an error occurs.
func (i *runIterator) Next() bool {
	if i.lastErr != nil || !i.rows.Next() {
		return false
	}

	i.run, i.lastErr = scanRun(i.rows)

	return i.lastErr == nil
}

// Run returns the currently fetched run.
func (i *runIterator) Run() *runstore.Run {
	return i.run
}

// Error returns the last error encountered by the iterator.
func (i *runIterator) Error() error {
	if i.lastErr != nil {
		return i.lastErr
	}

	return i.rows.Err()
}

// Close releases any resources allocated to the iterator.
func (i *runIterator) Close() error {
	if err := i.rows.Close(); err != nil {
		return fmt.Errorf("run iterator: %w", err)
	}

	return nil
}
