// Package runner drives a single shortest path job end to end: it builds the
// graph, runs the calculator, emits the result and persists the run.
package runner

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/mycok/uPath/graph"
	"github.com/mycok/uPath/runstore"
	"github.com/mycok/uPath/shortestpath"
)

// Job describes a single calculation request.
type Job struct {
	// Matrix is the adjacency matrix; a zero entry means "no edge".
	Matrix [][]int64

	// Source is the vertex the distances are measured from.
	Source int

	// Lenient treats negative weights as missing edges instead of
	// rejecting the matrix.
	Lenient bool
}

// Outcome describes a completed job.
type Outcome struct {
	// RunID is the ID the store assigned to the run, or uuid.Nil when no
	// store is configured.
	RunID uuid.UUID

	Result *shortestpath.Result

	// Elapsed covers the whole job including output and persistence.
	Elapsed time.Duration
}

// Runner executes jobs.
type Runner struct {
	config Config
}

// New creates and returns a fully configured runner instance.
func New(config Config) (*Runner, error) {
	if err := config.validate(); err != nil {
		return nil, fmt.Errorf("runner: config validation failed: %w", err)
	}

	return &Runner{config: config}, nil
}

// Run executes job and blocks until it completes, fails or ctx is cancelled.
func (r *Runner) Run(ctx context.Context, job Job) (*Outcome, error) {
	startedAt := r.config.Clock.Now()
	logger := r.config.Logger.WithFields(logrus.Fields{
		"vertices": len(job.Matrix),
		"source":   job.Source,
	})

	var opts []graph.Option
	if job.Lenient {
		opts = append(opts, graph.WithNegativeAsAbsent())
	}

	g, err := graph.New(job.Matrix, opts...)
	if err != nil {
		if r.config.Observer != nil {
			r.config.Observer.ObserveFailure(err)
		}
		logger.WithField("err", err).Warn("rejected job matrix")

		return nil, fmt.Errorf("build graph: %w", err)
	}

	res, err := r.config.Calculator.CalculateShortestPaths(ctx, g, job.Source)
	if err != nil {
		return nil, fmt.Errorf("calculate: %w", err)
	}

	if r.config.Writer != nil {
		if err := r.config.Writer.WriteResult(res); err != nil {
			return nil, fmt.Errorf("write result: %w", err)
		}
	}

	outcome := &Outcome{Result: res}

	if r.config.Store != nil {
		run := &runstore.Run{
			Source:      res.Source,
			Matrix:      g.Matrix(),
			Distances:   res.Distances,
			Workers:     res.Stats.Workers,
			Partitions:  res.Stats.Partitions,
			Rounds:      res.Stats.Rounds,
			Relaxations: res.Stats.Relaxations,
			Elapsed:     res.Stats.Elapsed,
			CreatedAt:   startedAt,
		}

		if err := r.config.Store.InsertRun(run); err != nil {
			return nil, fmt.Errorf("persist run: %w", err)
		}

		outcome.RunID = run.ID
		logger = logger.WithField("run_id", run.ID.String())
	}

	outcome.Elapsed = r.config.Clock.Now().Sub(startedAt)

	logger.WithFields(logrus.Fields{
		"rounds":  res.Stats.Rounds,
		"elapsed": outcome.Elapsed.String(),
	}).Info("completed job")

	return outcome, nil
}
