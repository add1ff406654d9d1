/*
	metrics package exposes Prometheus collectors that describe shortest path
	calculations. A Collector satisfies shortestpath.RunObserver so it can be
	plugged straight into a calculator.
*/

package metrics

import (
	"context"
	"errors"
	"fmt"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/mycok/uPath/graph"
	"github.com/mycok/uPath/matrixio"
	"github.com/mycok/uPath/shortestpath"
)

const namespace = "sssp"

// Outcome label values for the runs counter.
const (
	ResultOK             = "ok"
	ResultSyntaxError    = "syntax_error"
	ResultMalformedGraph = "malformed_graph"
	ResultInvalidSource  = "invalid_source"
	ResultCanceled       = "canceled"
	ResultError          = "error"
)

// Static and compile-time check to ensure Collector implements the
// shortestpath.RunObserver interface.
var _ shortestpath.RunObserver = (*Collector)(nil)

// Collector records calculation metrics.
type Collector struct {
	runs        *prometheus.CounterVec
	duration    prometheus.Histogram
	rounds      prometheus.Histogram
	relaxations prometheus.Counter
	vertices    prometheus.Gauge
}

// NewCollector creates the collectors and registers them with reg.
func NewCollector(reg prometheus.Registerer) (*Collector, error) {
	if reg == nil {
		return nil, fmt.Errorf("metrics: nil registerer")
	}

	factory := promauto.With(reg)

	return &Collector{
		runs: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "runs_total",
			Help:      "Total shortest path calculations by result",
		}, []string{"result"}),
		duration: factory.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "run_duration_seconds",
			Help:      "Shortest path calculation duration in seconds",
			Buckets:   prometheus.ExponentialBuckets(0.0001, 4, 10), // 0.1ms to ~26s
		}),
		rounds: factory.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "rounds",
			Help:      "Number of finalized vertices per calculation",
			Buckets:   prometheus.ExponentialBuckets(1, 4, 10),
		}),
		relaxations: factory.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "relaxations_total",
			Help:      "Total successful distance relaxations",
		}),
		vertices: factory.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "graph_vertices",
			Help:      "Number of vertices in the most recently processed graph",
		}),
	}, nil
}

// ObserveRun records a successful calculation.
func (c *Collector) ObserveRun(stats shortestpath.RunStats) {
	c.runs.WithLabelValues(ResultOK).Inc()
	c.duration.Observe(stats.Elapsed.Seconds())
	c.rounds.Observe(float64(stats.Rounds))
	c.relaxations.Add(float64(stats.Relaxations))
	c.vertices.Set(float64(stats.Vertices))
}

// ObserveFailure records a rejected or aborted calculation.
func (c *Collector) ObserveFailure(err error) {
	c.runs.WithLabelValues(classify(err)).Inc()
}

func classify(err error) string {
	switch {
	case errors.Is(err, matrixio.ErrSyntax):
		return ResultSyntaxError
	case errors.Is(err, graph.ErrMalformedGraph), errors.Is(err, graph.ErrNegativeWeight):
		return ResultMalformedGraph
	case errors.Is(err, shortestpath.ErrInvalidSource):
		return ResultInvalidSource
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return ResultCanceled
	default:
		return ResultError
	}
}

// WriteTextfile writes every metric gathered by g to path in the Prometheus
// text format, ready to be picked up by a node exporter textfile collector.
func WriteTextfile(path string, g prometheus.Gatherer) error {
	if err := prometheus.WriteToTextfile(path, g); err != nil {
		return fmt.Errorf("metrics: write textfile: %w", err)
	}

	return nil
}
