package runner

import (
	"context"
	"fmt"
	"io"

	"github.com/hashicorp/go-multierror"
	"github.com/juju/clock"
	"github.com/sirupsen/logrus"

	"github.com/mycok/uPath/graph"
	"github.com/mycok/uPath/runstore"
	"github.com/mycok/uPath/shortestpath"
)

//go:generate mockgen -package mocks -destination mocks/mocks.go github.com/mycok/uPath/runner Calculator,StoreAPI,ResultWriter

// Calculator defines the API for computing shortest path distances.
type Calculator interface {
	// CalculateShortestPaths computes the distance from source to every
	// vertex of g.
	CalculateShortestPaths(ctx context.Context, g *graph.Graph, source int) (*shortestpath.Result, error)
}

// StoreAPI defines a minimum set of API methods for persisting runs.
type StoreAPI interface {
	// InsertRun stores a new run and assigns it an ID.
	InsertRun(run *runstore.Run) error
}

// ResultWriter is implemented by types that emit calculation results.
type ResultWriter interface {
	// WriteResult emits res.
	WriteResult(res *shortestpath.Result) error
}

// ResultWriterFunc is an adapter to allow the use of plain functions as
// ResultWriter instances.
type ResultWriterFunc func(res *shortestpath.Result) error

// WriteResult calls f(res).
func (f ResultWriterFunc) WriteResult(res *shortestpath.Result) error {
	return f(res)
}

// Config defines configurations for the runner.
type Config struct {
	// The calculator that computes distances.
	Calculator Calculator

	// An optional store where completed runs are persisted.
	Store StoreAPI

	// An optional writer that receives every result.
	Writer ResultWriter

	// An optional observer that is notified when a job's matrix is
	// rejected before it reaches the calculator. Calculation outcomes are
	// reported by the calculator's own observer.
	Observer shortestpath.RunObserver

	// A clock instance for generating time-related events. If not specified,
	// the default wall-clock will be used instead.
	Clock clock.Clock

	// The logger to use. If not defined an output-discarding logger will
	// be used instead.
	Logger *logrus.Entry
}

func (config *Config) validate() error {
	var err error

	if config.Calculator == nil {
		err = multierror.Append(err, fmt.Errorf("calculator not provided"))
	}

	if config.Clock == nil {
		config.Clock = clock.WallClock
	}

	if config.Logger == nil {
		config.Logger = logrus.NewEntry(&logrus.Logger{Out: io.Discard})
	}

	return err
}
