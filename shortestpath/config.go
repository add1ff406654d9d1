package shortestpath

import (
	"fmt"
	"io"

	"github.com/hashicorp/go-multierror"
	"github.com/juju/clock"
	"github.com/sirupsen/logrus"
)

// RunObserver is implemented by types that want to be notified about the
// outcome of every calculation, e.g. metric collectors.
type RunObserver interface {
	// ObserveRun is invoked after a successful calculation.
	ObserveRun(stats RunStats)

	// ObserveFailure is invoked when a calculation is rejected or aborted.
	ObserveFailure(err error)
}

// Config encapsulates the configuration options for the shortest path
// calculator.
type Config struct {
	// ComputeWorkers specifies the number of workers that execute the
	// selection and relaxation phases. If not specified, a single worker
	// will be used.
	ComputeWorkers int

	// Partitions specifies how many ranges the vertex set is split into for
	// each phase. If not specified, it defaults to ComputeWorkers.
	Partitions int

	// A clock instance for measuring run durations. If not specified, the
	// default wall-clock will be used instead.
	Clock clock.Clock

	// An optional observer that is notified about every run.
	Observer RunObserver

	// The logger to use. If not defined an output-discarding logger will
	// be used instead.
	Logger *logrus.Entry
}

func (cfg *Config) validate() error {
	var err error

	if cfg.ComputeWorkers < 0 {
		err = multierror.Append(err, fmt.Errorf("invalid value for compute workers, must be >= 0"))
	} else if cfg.ComputeWorkers == 0 {
		cfg.ComputeWorkers = 1
	}

	if cfg.Partitions < 0 {
		err = multierror.Append(err, fmt.Errorf("invalid value for partitions, must be >= 0"))
	} else if cfg.Partitions == 0 {
		cfg.Partitions = cfg.ComputeWorkers
	}

	if cfg.Clock == nil {
		cfg.Clock = clock.WallClock
	}

	if cfg.Logger == nil {
		cfg.Logger = logrus.NewEntry(&logrus.Logger{Out: io.Discard})
	}

	return err
}
