package cdb

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"

	"github.com/mycok/uPath/runstore"
)

var (
	createRunsTableQuery = `
						CREATE TABLE IF NOT EXISTS runs (
							id UUID PRIMARY KEY,
							source INT NOT NULL,
							vertices INT NOT NULL,
							matrix BIGINT[] NOT NULL,
							distances BIGINT[] NOT NULL,
							workers INT NOT NULL,
							partitions INT NOT NULL,
							rounds INT NOT NULL,
							relaxations BIGINT NOT NULL,
							elapsed_ns BIGINT NOT NULL,
							created_at TIMESTAMP NOT NULL
						)
						`

	insertRunQuery = `
					INSERT INTO runs (
						id, source, vertices, matrix, distances, workers,
						partitions, rounds, relaxations, elapsed_ns, created_at
					)
					VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
					`

	runColumns = `
				id, source, vertices, matrix, distances, workers,
				partitions, rounds, relaxations, elapsed_ns, created_at
				`

	findRunQuery = "SELECT " + runColumns + " FROM runs WHERE id=$1"

	runsQuery = "SELECT " + runColumns + `
				FROM runs WHERE created_at < $1
				ORDER BY created_at, id
				`
)

// Static and compile-time check to ensure CockroachDBStore implements
// Store interface.
var _ runstore.Store = (*CockroachDBStore)(nil)

// CockroachDBStore implements a persistent run store using a CockroachDB
// (or any postgres wire compatible) instance.
type CockroachDBStore struct {
	db *sql.DB
}

// NewCockroachDBStore returns a CockroachDBStore instance. The runs table is
// created if it does not exist yet.
func NewCockroachDBStore(dsn string) (*CockroachDBStore, error) {
	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, err
	}

	ctx, cancel := context.WithTimeout(context.Background(), 1*time.Second)
	defer cancel()

	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, err
	}

	if _, err := db.ExecContext(ctx, createRunsTableQuery); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("create runs table: %w", err)
	}

	return &CockroachDBStore{db}, nil
}

// Close terminates the connection to the cockroachDB instance.
func (s *CockroachDBStore) Close() error {
	return s.db.Close()
}

// InsertRun stores a new run.
func (s *CockroachDBStore) InsertRun(run *runstore.Run) error {
	if err := run.Validate(); err != nil {
		return fmt.Errorf("insert run: %w", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 500*time.Millisecond)
	defer cancel()

	createdAt := run.CreatedAt
	if createdAt.IsZero() {
		createdAt = time.Now()
	}
	createdAt = runstore.NormalizeTime(createdAt)
	id := uuid.New()

	_, err := s.db.ExecContext(
		ctx, insertRunQuery,
		id,
		run.Source,
		len(run.Matrix),
		pq.Array(flatten(run.Matrix)),
		pq.Array(run.Distances),
		run.Workers,
		run.Partitions,
		run.Rounds,
		run.Relaxations,
		run.Elapsed.Nanoseconds(),
		createdAt,
	)
	if err != nil {
		return fmt.Errorf("insert run: %w", err)
	}

	run.ID = id
	run.CreatedAt = createdAt

	return nil
}

// FindRun performs a run lookup by id.
func (s *CockroachDBStore) FindRun(id uuid.UUID) (*runstore.Run, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 500*time.Millisecond)
	defer cancel()

	run, err := scanRun(s.db.QueryRowContext(ctx, findRunQuery, id))
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, fmt.Errorf("find run: %w", runstore.ErrNotFound)
		}

		return nil, fmt.Errorf("find run: %w", err)
	}

	return run, nil
}

// Runs returns an iterator for the runs that were created before the
// [createdBefore] time, ordered by creation time.
func (s *CockroachDBStore) Runs(createdBefore time.Time) (runstore.Iterator, error) {
	rows, err := s.db.Query(runsQuery, runstore.NormalizeTime(createdBefore))
	if err != nil {
		return nil, fmt.Errorf("runs: %w", err)
	}

	return &runIterator{rows: rows}, nil
}

// scanner is satisfied by both *sql.Row and *sql.Rows.
type scanner interface {
	Scan(dest ...interface{}) error
}

func scanRun(row scanner) (*runstore.Run, error) {
	var (
		r         = new(runstore.Run)
		vertices  int
		matrix    []int64
		elapsedNs int64
	)

	err := row.Scan(
		&r.ID,
		&r.Source,
		&vertices,
		pq.Array(&matrix),
		pq.Array(&r.Distances),
		&r.Workers,
		&r.Partitions,
		&r.Rounds,
		&r.Relaxations,
		&elapsedNs,
		&r.CreatedAt,
	)
	if err != nil {
		return nil, err
	}

	if r.Matrix, err = unflatten(matrix, vertices); err != nil {
		return nil, err
	}

	r.Elapsed = time.Duration(elapsedNs)
	// The driver may hand back a non UTC location for TIMESTAMP columns.
	r.CreatedAt = r.CreatedAt.UTC()

	return r, nil
}

// flatten lays the matrix out row by row.
func flatten(matrix [][]int64) []int64 {
	out := make([]int64, 0, len(matrix)*len(matrix))
	for _, row := range matrix {
		out = append(out, row...)
	}

	return out
}

func unflatten(flat []int64, n int) ([][]int64, error) {
	if len(flat) != n*n {
		return nil, fmt.Errorf("stored matrix has %d entries, expected %d", len(flat), n*n)
	}

	matrix := make([][]int64, n)
	for u := range matrix {
		matrix[u] = append([]int64(nil), flat[u*n:(u+1)*n]...)
	}

	return matrix, nil
}
