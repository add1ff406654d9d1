// Package runstoretest provides a test suite that every runstore.Store
// implementation is expected to pass.
package runstoretest

import (
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	check "gopkg.in/check.v1"

	"github.com/mycok/uPath/runstore"
)

// BaseSuite defines a set of re-usable store related tests that can
// be executed against any type that implements runstore.Store.
type BaseSuite struct {
	s runstore.Store
}

// SetStore configures the test-suite to run all tests against an instance
// of runstore.Store.
func (s *BaseSuite) SetStore(store runstore.Store) {
	s.s = store
}

// TestInsertAndFind verifies that a stored run can be looked up by the ID
// assigned during the insert.
func (s *BaseSuite) TestInsertAndFind(c *check.C) {
	original := sampleRun(0)

	err := s.s.InsertRun(original)
	c.Assert(err, check.IsNil)
	c.Assert(original.ID, check.Not(check.Equals), uuid.Nil,
		check.Commentf("Expected an ID to be assigned to the new run."),
	)
	c.Assert(original.CreatedAt.IsZero(), check.Equals, false,
		check.Commentf("Expected a creation timestamp to be assigned to the new run."),
	)

	got, err := s.s.FindRun(original.ID)
	c.Assert(err, check.IsNil)
	c.Assert(got, check.DeepEquals, original)

	// Changes to the returned copy must not be visible to later lookups.
	got.Distances[0] = 42
	got.Matrix[0][1] = 42

	again, err := s.s.FindRun(original.ID)
	c.Assert(err, check.IsNil)
	c.Assert(again, check.DeepEquals, original)
}

// TestInsertKeepsCreatedAt verifies that a caller supplied creation
// timestamp is kept.
func (s *BaseSuite) TestInsertKeepsCreatedAt(c *check.C) {
	createdAt := time.Date(2024, time.March, 1, 10, 30, 0, 0, time.UTC)

	run := sampleRun(1)
	run.CreatedAt = createdAt

	c.Assert(s.s.InsertRun(run), check.IsNil)

	got, err := s.s.FindRun(run.ID)
	c.Assert(err, check.IsNil)
	c.Assert(got.CreatedAt.Equal(createdAt), check.Equals, true,
		check.Commentf("expected %v, got %v", createdAt, got.CreatedAt),
	)
}

// TestInsertInvalidRun verifies that inconsistent runs are rejected.
func (s *BaseSuite) TestInsertInvalidRun(c *check.C) {
	specs := []struct {
		descr  string
		mutate func(*runstore.Run)
	}{
		{"empty matrix", func(r *runstore.Run) { r.Matrix = nil }},
		{"ragged matrix", func(r *runstore.Run) { r.Matrix[1] = r.Matrix[1][:1] }},
		{"source out of range", func(r *runstore.Run) { r.Source = 3 }},
		{"missing distances", func(r *runstore.Run) { r.Distances = r.Distances[:2] }},
	}

	for i, spec := range specs {
		c.Logf("[spec %d] %s", i, spec.descr)

		run := sampleRun(0)
		spec.mutate(run)

		err := s.s.InsertRun(run)
		c.Assert(errors.Is(err, runstore.ErrInvalidRun), check.Equals, true,
			check.Commentf("unexpected error: %v", err),
		)
	}
}

// TestFindUnknownRun verifies that looking up a missing run reports
// runstore.ErrNotFound.
func (s *BaseSuite) TestFindUnknownRun(c *check.C) {
	_, err := s.s.FindRun(uuid.New())
	c.Assert(errors.Is(err, runstore.ErrNotFound), check.Equals, true,
		check.Commentf("unexpected error: %v", err),
	)
}

// TestRunsIterator verifies that the iterator filters by creation time and
// yields runs from the oldest to the newest.
func (s *BaseSuite) TestRunsIterator(c *check.C) {
	base := time.Date(2024, time.January, 1, 0, 0, 0, 0, time.UTC)

	var ids []uuid.UUID
	// Insert in reverse order so the iterator has to sort.
	for i := 4; i >= 0; i-- {
		run := sampleRun(i % 3)
		run.CreatedAt = base.Add(time.Duration(i) * time.Minute)

		c.Assert(s.s.InsertRun(run), check.IsNil)
		ids = append([]uuid.UUID{run.ID}, ids...)
	}

	it, err := s.s.Runs(base.Add(3 * time.Minute))
	c.Assert(err, check.IsNil)

	var got []uuid.UUID
	for it.Next() {
		got = append(got, it.Run().ID)
	}
	c.Assert(it.Error(), check.IsNil)
	c.Assert(it.Close(), check.IsNil)

	c.Assert(got, check.DeepEquals, ids[:3])

	it, err = s.s.Runs(base)
	c.Assert(err, check.IsNil)
	c.Assert(it.Next(), check.Equals, false)
	c.Assert(it.Error(), check.IsNil)
	c.Assert(it.Close(), check.IsNil)
}

// TestConcurrentInserts verifies that concurrent inserts each receive a
// distinct ID and are all retrievable.
func (s *BaseSuite) TestConcurrentInserts(c *check.C) {
	const numOfRuns = 20

	var (
		wg   sync.WaitGroup
		mu   sync.Mutex
		ids  = make(map[uuid.UUID]bool)
		errs []error
	)

	for i := 0; i < numOfRuns; i++ {
		wg.Add(1)

		go func(source int) {
			defer wg.Done()

			run := sampleRun(source % 3)
			err := s.s.InsertRun(run)

			mu.Lock()
			defer mu.Unlock()

			if err != nil {
				errs = append(errs, fmt.Errorf("run %d: %w", source, err))
				return
			}
			ids[run.ID] = true
		}(i)
	}

	wg.Wait()

	c.Assert(errs, check.HasLen, 0)
	c.Assert(ids, check.HasLen, numOfRuns)

	for id := range ids {
		_, err := s.s.FindRun(id)
		c.Assert(err, check.IsNil)
	}
}

// sampleRun returns a run over a fixed 3-vertex graph rooted at source.
func sampleRun(source int) *runstore.Run {
	distances := [][]int64{
		{0, 4, 5},
		{-1, 0, 1},
		{-1, -1, 0},
	}

	return &runstore.Run{
		Source: source,
		Matrix: [][]int64{
			{0, 4, 7},
			{0, 0, 1},
			{0, 0, 0},
		},
		Distances:   distances[source],
		Workers:     2,
		Partitions:  3,
		Rounds:      3 - source,
		Relaxations: 2 - source,
		Elapsed:     1500 * time.Microsecond,
	}
}
