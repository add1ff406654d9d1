package shortestpath

import (
	"context"
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/mycok/uPath/bsp"
	"github.com/mycok/uPath/bsp/aggregator"
	"github.com/mycok/uPath/graph"
)

// phase names the stage a calculation is in.
type phase int

const (
	phaseInitializing phase = iota
	phaseSelecting
	phaseRelaxing
	phaseTerminated
)

func (p phase) String() string {
	switch p {
	case phaseInitializing:
		return "initializing"
	case phaseSelecting:
		return "selecting"
	case phaseRelaxing:
		return "relaxing"
	case phaseTerminated:
		return "terminated"
	default:
		return fmt.Sprintf("phase(%d)", int(p))
	}
}

// runState is the mutable state of a single calculation.
type runState struct {
	g      *graph.Graph
	n      int
	phase  phase
	rounds int

	dist distanceVector
	// visited is only written by the driver between phases, never by the
	// workers, so it needs no synchronization.
	visited []bool

	minArg      *aggregator.MinArg
	relaxations *aggregator.IntAccumulator
}

// Calculator computes single-source shortest path distances on dense graphs.
// A Calculator owns a worker pool and is safe for concurrent use; concurrent
// calculations share the pool and take turns at phase granularity.
type Calculator struct {
	cfg  Config
	pool *bsp.Pool
	// Executor factory used to drive the rounds of each calculation.
	executorFactory bsp.ExecutorFactory
}

// NewCalculator returns a new shortest path calculator. Callers must invoke
// Close when they are done with it.
func NewCalculator(cfg Config) (*Calculator, error) {
	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("shortest path calculator: config validation failed: %w", err)
	}

	pool, err := bsp.NewPool(bsp.PoolConfig{
		Workers:    cfg.ComputeWorkers,
		Partitions: cfg.Partitions,
	})
	if err != nil {
		return nil, fmt.Errorf("shortest path calculator: %w", err)
	}

	return &Calculator{
		cfg:             cfg,
		pool:            pool,
		executorFactory: bsp.NewExecutor,
	}, nil
}

// Close frees up the worker pool.
func (c *Calculator) Close() error {
	return c.pool.Close()
}

// SetExecutorFactory sets a custom executor factory for the calculator.
func (c *Calculator) SetExecutorFactory(factory bsp.ExecutorFactory) {
	c.executorFactory = factory
}

// CalculateShortestPaths computes the distance from source to every vertex of
// g. The context is checked between rounds; a cancelled calculation returns
// the context error and no result.
func (c *Calculator) CalculateShortestPaths(
	ctx context.Context, g *graph.Graph, source int,
) (*Result, error) {

	res, err := c.calculate(ctx, g, source)
	if err != nil {
		if c.cfg.Observer != nil {
			c.cfg.Observer.ObserveFailure(err)
		}

		return nil, err
	}

	if c.cfg.Observer != nil {
		c.cfg.Observer.ObserveRun(res.Stats)
	}

	return res, nil
}

func (c *Calculator) calculate(
	ctx context.Context, g *graph.Graph, source int,
) (*Result, error) {

	if g == nil {
		return nil, fmt.Errorf("nil graph: %w", graph.ErrMalformedGraph)
	}

	n := g.Order()
	if source < 0 || source >= n {
		return nil, fmt.Errorf("source %d not in [0, %d): %w", source, n, ErrInvalidSource)
	}

	logger := c.cfg.Logger.WithFields(logrus.Fields{
		"vertices": n,
		"source":   source,
	})
	logger.WithFields(logrus.Fields{
		"edges":      g.Edges(),
		"workers":    c.pool.Workers(),
		"partitions": c.pool.Partitions(),
	}).Info("started shortest path calculation")

	startedAt := c.cfg.Clock.Now()
	st := &runState{
		g:           g,
		n:           n,
		phase:       phaseInitializing,
		dist:        newDistanceVector(n, source),
		visited:     make([]bool, n),
		minArg:      new(aggregator.MinArg),
		relaxations: new(aggregator.IntAccumulator),
	}

	exec := c.executorFactory(c.round(st, logger), bsp.ExecutorCallbacks{
		PostStep: func(_ context.Context, superStep, activeInStep int) error {
			if activeInStep != 0 {
				logger.WithFields(logrus.Fields{
					"round":       superStep,
					"relaxations": st.relaxations.Delta(),
				}).Debug("completed round")
			}

			return nil
		},
		ShouldRunAnotherStep: func(_ context.Context, _, activeInStep int) (bool, error) {
			return activeInStep != 0, nil
		},
	})

	// A vertex is finalized per round, so V rounds always suffice.
	if err := exec.RunSteps(ctx, n); err != nil {
		logger.WithField("err", err).Warn("aborted shortest path calculation")

		return nil, err
	}
	st.phase = phaseTerminated

	res := &Result{
		Source:    source,
		Distances: st.dist.export(),
		Stats: RunStats{
			Vertices:    n,
			Edges:       g.Edges(),
			Workers:     c.pool.Workers(),
			Partitions:  c.pool.Partitions(),
			Rounds:      st.rounds,
			Relaxations: st.relaxations.Total(),
			Elapsed:     c.cfg.Clock.Now().Sub(startedAt),
		},
	}

	logger.WithFields(logrus.Fields{
		"super_steps": exec.SuperStep(),
		"rounds":      res.Stats.Rounds,
		"relaxations": res.Stats.Relaxations,
		"elapsed":     res.Stats.Elapsed,
	}).Info("completed shortest path calculation")

	return res, nil
}

// round returns the step function for a single round: select a pivot, mark it
// visited and relax its outgoing edges. It reports one active item when a
// pivot was found and zero once no reachable unvisited vertex is left.
func (c *Calculator) round(st *runState, logger *logrus.Entry) bsp.StepFunc {
	return func(_ context.Context, superStep int) (int, error) {
		st.phase = phaseSelecting

		pivot, err := c.selectPivot(st)
		if err != nil {
			return 0, fmt.Errorf("round %d: %s: %w", superStep, st.phase, err)
		}

		if pivot.Index < 0 {
			st.phase = phaseTerminated
			logger.WithField("round", superStep).Debug("no reachable unvisited vertex left")

			return 0, nil
		}

		st.visited[pivot.Index] = true
		st.phase = phaseRelaxing

		if err := c.relaxFrom(st, pivot.Index); err != nil {
			return 0, fmt.Errorf("round %d: %s: %w", superStep, st.phase, err)
		}
		st.rounds++

		logger.WithFields(logrus.Fields{
			"round":    superStep,
			"pivot":    pivot.Index,
			"distance": pivot.Value,
		}).Debug("finalized vertex")

		return 1, nil
	}
}
