package main

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/mycok/uPath/runstore"
)

// app carries the state shared by all commands.
type app struct {
	logLevel  string
	logFormat string
	storeURI  string

	logger *logrus.Entry

	// openStore returns the run store for a URI. Tests replace it to share
	// a single in-memory store between command invocations.
	openStore func(uri string, logger *logrus.Entry) (runstore.Store, error)
}

func newApp() *app {
	return &app{openStore: getRunStore}
}

func newRootCmd(a *app) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "sssp",
		Short: "Computes single-source shortest path distances over dense weighted graphs",
		Long: `sssp reads an adjacency matrix, where a zero entry means "no edge",
and reports the shortest distance from a source vertex to every vertex.
Unreachable vertices are reported with a distance of -1.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			logger, err := newLogger(cmd.ErrOrStderr(), a.logLevel, a.logFormat)
			if err != nil {
				return err
			}
			a.logger = logger

			return nil
		},
	}

	rootCmd.PersistentFlags().StringVar(
		&a.logLevel, "log-level", "warn",
		"Log level [supported values: debug, info, warn, error]",
	)
	rootCmd.PersistentFlags().StringVar(
		&a.logFormat, "log-format", "text",
		"Log format [supported values: text, json]",
	)
	rootCmd.PersistentFlags().StringVar(
		&a.storeURI, "store-uri", "",
		"URI for connecting to a run data store."+
			" [supported URI's: in-memory://, postgresql://user@host:26257/upath?sslmode=disable]",
	)

	rootCmd.AddCommand(
		newRunCmd(a),
		newHistoryCmd(a),
		newShowCmd(a),
	)

	return rootCmd
}

// newLogger instantiates a root logger that is passed to all components.
func newLogger(out io.Writer, level, format string) (*logrus.Entry, error) {
	rootLogger := logrus.New()
	rootLogger.SetOutput(out)

	lvl, err := logrus.ParseLevel(level)
	if err != nil {
		return nil, fmt.Errorf("invalid log level: %w", err)
	}
	rootLogger.SetLevel(lvl)

	switch strings.ToLower(format) {
	case "text":
		rootLogger.SetFormatter(&logrus.TextFormatter{})
	case "json":
		rootLogger.SetFormatter(&logrus.JSONFormatter{})
	default:
		return nil, fmt.Errorf("unsupported log format: %q", format)
	}

	host, _ := os.Hostname()

	return rootLogger.WithFields(logrus.Fields{
		"app":  appName,
		"host": host,
	}), nil
}
