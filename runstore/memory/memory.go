package memory

import (
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/mycok/uPath/runstore"
)

// Static and compile-time check to ensure InMemoryStore implements
// Store interface.
var _ runstore.Store = (*InMemoryStore)(nil)

// InMemoryStore implements an in-memory run store that can be concurrently
// accessed by multiple clients.
type InMemoryStore struct {
	mu   sync.RWMutex
	runs map[uuid.UUID]*runstore.Run
}

// NewInMemoryStore creates a new in-memory run store.
func NewInMemoryStore() *InMemoryStore {
	return &InMemoryStore{
		runs: make(map[uuid.UUID]*runstore.Run),
	}
}

// InsertRun stores a new run.
func (s *InMemoryStore) InsertRun(run *runstore.Run) error {
	if err := run.Validate(); err != nil {
		return fmt.Errorf("insert run: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	// Try to assign a random ID to the new run. in case the generated ID
	// is already used, run the ID generator until a unique ID is found.
	for {
		run.ID = uuid.New()
		if _, exists := s.runs[run.ID]; !exists {
			break
		}
	}

	if run.CreatedAt.IsZero() {
		run.CreatedAt = time.Now()
	}
	run.CreatedAt = runstore.NormalizeTime(run.CreatedAt)

	// Store a private copy so that later changes to the caller's run do
	// not leak into the store.
	s.runs[run.ID] = run.Clone()

	return nil
}

// FindRun performs a run lookup by id.
func (s *InMemoryStore) FindRun(id uuid.UUID) (*runstore.Run, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	run, exists := s.runs[id]
	if !exists {
		return nil, fmt.Errorf("find run: %w", runstore.ErrNotFound)
	}

	return run.Clone(), nil
}

// Runs returns an iterator for the runs that were created before the
// [createdBefore] time, ordered by creation time.
func (s *InMemoryStore) Runs(createdBefore time.Time) (runstore.Iterator, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var list []*runstore.Run
	for _, run := range s.runs {
		if run.CreatedAt.Before(createdBefore) {
			list = append(list, run.Clone())
		}
	}

	sort.Slice(list, func(i, j int) bool {
		if !list[i].CreatedAt.Equal(list[j].CreatedAt) {
			return list[i].CreatedAt.Before(list[j].CreatedAt)
		}

		return list[i].ID.String() < list[j].ID.String()
	})

	return &runIterator{runs: list}, nil
}
