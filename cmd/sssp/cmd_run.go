package main

import (
	"fmt"
	"runtime"
	"strconv"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"

	"github.com/mycok/uPath/matrixio"
	"github.com/mycok/uPath/metrics"
	"github.com/mycok/uPath/runner"
	"github.com/mycok/uPath/runstore"
	"github.com/mycok/uPath/shortestpath"
)

type runOptions struct {
	matrix      string
	matrixFile  string
	source      int
	output      string
	workers     int
	partitions  int
	lenient     bool
	metricsFile string
}

func newRunCmd(a *app) *cobra.Command {
	var opts runOptions

	cmd := &cobra.Command{
		Use:   "run [matrix] [source] [output]",
		Short: "Computes the distances from a source vertex and writes them as a table",
		Long: `Computes the distances from a source vertex and writes them as a table.

Flags must come before a "--" separator. Arguments after it are never read
as flags, which allows a negative source such as -1 to be passed through.`,
		Example: `  sssp run "[[0,4,0],[4,0,8],[0,8,0]]" 0 distances.txt
  sssp run --matrix-file graph.yaml --source 2 --workers 8
  sssp run --metrics-file sssp.prom -- "[[0,1],[1,0]]" -1`,
		Args: cobra.MaximumNArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := opts.applyArgs(cmd, args); err != nil {
				return err
			}

			return a.runJob(cmd, opts)
		},
	}

	flags := cmd.Flags()
	flags.StringVar(&opts.matrix, "matrix", "", "Adjacency matrix literal, e.g. \"[[0,1],[1,0]]\"")
	flags.StringVar(&opts.matrixFile, "matrix-file", "", "Path to a file holding the adjacency matrix")
	flags.IntVar(&opts.source, "source", 0, "Source vertex")
	flags.StringVar(&opts.output, "output", "-", "Output file for the distance table, - for stdout")
	flags.IntVar(
		&opts.workers, "workers", runtime.NumCPU(),
		"Number of workers for computing distances.[defaults to number of CPU's]",
	)
	flags.IntVar(
		&opts.partitions, "partitions", 0,
		"Number of vertex ranges processed per phase.[defaults to the number of workers]",
	)
	flags.BoolVar(&opts.lenient, "lenient", false, "Treat negative weights as missing edges instead of failing")
	flags.StringVar(&opts.metricsFile, "metrics-file", "", "Write Prometheus metrics in text format to this file")

	return cmd
}

// applyArgs fills the options from the positional arguments. A positional
// argument may not be combined with the flag it stands for.
func (opts *runOptions) applyArgs(cmd *cobra.Command, args []string) error {
	flags := cmd.Flags()

	if len(args) > 0 {
		if flags.Changed("matrix") || flags.Changed("matrix-file") {
			return fmt.Errorf("matrix given both as an argument and a flag")
		}
		opts.matrix = args[0]
	}

	if len(args) > 1 {
		if flags.Changed("source") {
			return fmt.Errorf("source given both as an argument and a flag")
		}

		source, err := strconv.Atoi(args[1])
		if err != nil {
			return fmt.Errorf("invalid source vertex %q: %w", args[1], err)
		}
		opts.source = source
	}

	if len(args) > 2 {
		if flags.Changed("output") {
			return fmt.Errorf("output given both as an argument and a flag")
		}
		opts.output = args[2]
	}

	switch {
	case opts.matrix != "" && opts.matrixFile != "":
		return fmt.Errorf("only one of --matrix and --matrix-file may be set")
	case opts.matrix == "" && opts.matrixFile == "":
		return fmt.Errorf("a matrix must be provided as an argument, with --matrix or with --matrix-file")
	}

	return nil
}

func (opts *runOptions) loadMatrix() ([][]int64, error) {
	if opts.matrixFile != "" {
		return matrixio.ReadFile(opts.matrixFile)
	}

	return matrixio.Parse(opts.matrix)
}

func (a *app) runJob(cmd *cobra.Command, opts runOptions) error {
	reg := prometheus.NewRegistry()
	collector, err := metrics.NewCollector(reg)
	if err != nil {
		return err
	}

	if opts.metricsFile != "" {
		// Failed runs are recorded too, so the file is written on every exit
		// path.
		defer func() {
			if err := metrics.WriteTextfile(opts.metricsFile, reg); err != nil {
				a.logger.WithField("err", err).Error("failed to write metrics file")
			}
		}()
	}

	matrix, err := opts.loadMatrix()
	if err != nil {
		collector.ObserveFailure(err)

		return err
	}

	calc, err := shortestpath.NewCalculator(shortestpath.Config{
		ComputeWorkers: opts.workers,
		Partitions:     opts.partitions,
		Observer:       collector,
		Logger:         a.logger.WithField("component", "calculator"),
	})
	if err != nil {
		return err
	}
	defer func() { _ = calc.Close() }()

	runnerConfig := runner.Config{
		Calculator: calc,
		Writer:     tableWriter(cmd, opts.output),
		Observer:   collector,
		Logger:     a.logger.WithField("component", "runner"),
	}

	if a.storeURI != "" {
		var store runstore.Store
		if store, err = a.openStore(a.storeURI, a.logger); err != nil {
			return err
		}
		defer closeStore(store, a.logger)

		runnerConfig.Store = store
	}

	r, err := runner.New(runnerConfig)
	if err != nil {
		return err
	}

	outcome, err := r.Run(cmd.Context(), runner.Job{
		Matrix:  matrix,
		Source:  opts.source,
		Lenient: opts.lenient,
	})
	if err != nil {
		return err
	}

	if runnerConfig.Store != nil {
		fmt.Fprintf(cmd.ErrOrStderr(), "stored run %s\n", outcome.RunID)
	}

	return nil
}

func tableWriter(cmd *cobra.Command, output string) runner.ResultWriter {
	return runner.ResultWriterFunc(func(res *shortestpath.Result) error {
		if output == "-" {
			return matrixio.WriteTable(cmd.OutOrStdout(), res)
		}

		return matrixio.WriteTableFile(output, res)
	})
}
