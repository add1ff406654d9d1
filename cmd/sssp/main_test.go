package main

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	check "gopkg.in/check.v1"

	"github.com/mycok/uPath/runstore"
	"github.com/mycok/uPath/runstore/memory"
)

var _ = check.Suite(new(CLITestSuite))

func Test(t *testing.T) {
	check.TestingT(t)
}

type CLITestSuite struct{}

const testMatrix = "[[0,4,0],[0,0,3],[0,0,0]]"

const expectedTable = "Vertex\tDistance from source\n" +
	"0\t0\n" +
	"1\t4\n" +
	"2\t7\n"

// execute runs the root command with args and returns what it wrote to
// stdout and stderr.
func execute(a *app, args ...string) (string, string, error) {
	var stdout, stderr bytes.Buffer

	cmd := newRootCmd(a)
	cmd.SetArgs(args)
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)

	err := cmd.ExecuteContext(context.Background())

	return stdout.String(), stderr.String(), err
}

func (s *CLITestSuite) TestRunWithPositionalArguments(c *check.C) {
	stdout, _, err := execute(newApp(), "run", testMatrix, "0", "-")
	c.Assert(err, check.IsNil)
	c.Assert(stdout, check.Equals, expectedTable)
}

func (s *CLITestSuite) TestRunWithFlags(c *check.C) {
	dir := c.MkDir()
	matrixFile := filepath.Join(dir, "graph.yaml")
	outputFile := filepath.Join(dir, "distances.txt")
	metricsFile := filepath.Join(dir, "sssp.prom")

	err := os.WriteFile(matrixFile, []byte("- [0, 4, 0]\n- [0, 0, 3]\n- [0, 0, 0]\n"), 0o644)
	c.Assert(err, check.IsNil)

	stdout, _, err := execute(newApp(),
		"run",
		"--matrix-file", matrixFile,
		"--source", "1",
		"--output", outputFile,
		"--workers", "3",
		"--partitions", "2",
		"--metrics-file", metricsFile,
	)
	c.Assert(err, check.IsNil)
	c.Assert(stdout, check.Equals, "")

	table, err := os.ReadFile(outputFile)
	c.Assert(err, check.IsNil)
	c.Assert(string(table), check.Equals, "Vertex\tDistance from source\n0\t-1\n1\t0\n2\t3\n")

	exported, err := os.ReadFile(metricsFile)
	c.Assert(err, check.IsNil)
	c.Assert(string(exported), check.Matches, `(?s).*sssp_runs_total\{result="ok"\} 1.*`)
	c.Assert(string(exported), check.Matches, `(?s).*sssp_graph_vertices 3.*`)
}

func (s *CLITestSuite) TestRunFailuresAreRecordedInMetrics(c *check.C) {
	metricsFile := filepath.Join(c.MkDir(), "sssp.prom")

	_, _, err := execute(newApp(), "run", testMatrix, "7", "--metrics-file", metricsFile)
	c.Assert(err, check.ErrorMatches, "calculate: .*invalid source vertex")

	exported, err := os.ReadFile(metricsFile)
	c.Assert(err, check.IsNil)
	c.Assert(string(exported), check.Matches, `(?s).*sssp_runs_total\{result="invalid_source"\} 1.*`)
}

func (s *CLITestSuite) TestRejectedMatricesAreRecordedInMetrics(c *check.C) {
	specs := []struct {
		descr  string
		args   []string
		err    string
		result string
	}{
		{
			descr:  "not square",
			args:   []string{"run", "[[0,1],[1]]"},
			err:    "(?s)build graph: .*malformed graph.*",
			result: "malformed_graph",
		},
		{
			descr:  "negative weight",
			args:   []string{"run", "[[0,-1],[1,0]]"},
			err:    "(?s)build graph: .*negative edge weight.*",
			result: "malformed_graph",
		},
		{
			descr:  "fractional weight",
			args:   []string{"run", "[[0,1.5],[1,0]]"},
			err:    `matrix syntax error: .*"1.5" is not an integer`,
			result: "syntax_error",
		},
		{
			descr:  "missing matrix file",
			args:   []string{"run", "--matrix-file", "/nonexistent/graph.yaml"},
			err:    "read matrix file: .*",
			result: "error",
		},
	}

	for i, spec := range specs {
		c.Logf("[spec %d] %s", i, spec.descr)

		metricsFile := filepath.Join(c.MkDir(), "sssp.prom")
		args := append(spec.args, "--metrics-file", metricsFile)

		_, _, err := execute(newApp(), args...)
		c.Assert(err, check.ErrorMatches, spec.err)

		exported, err := os.ReadFile(metricsFile)
		c.Assert(err, check.IsNil)
		c.Assert(string(exported), check.Matches, `(?s).*sssp_runs_total\{result="`+spec.result+`"\} 1.*`)
		c.Assert(strings.Contains(string(exported), `result="ok"`), check.Equals, false)
	}
}

func (s *CLITestSuite) TestNegativeSourceAfterSeparator(c *check.C) {
	metricsFile := filepath.Join(c.MkDir(), "sssp.prom")

	_, _, err := execute(newApp(), "run", "--metrics-file", metricsFile, "--", testMatrix, "-1")
	c.Assert(err, check.ErrorMatches, `calculate: source -1 not in \[0, 3\): invalid source vertex`)

	exported, err := os.ReadFile(metricsFile)
	c.Assert(err, check.IsNil)
	c.Assert(string(exported), check.Matches, `(?s).*sssp_runs_total\{result="invalid_source"\} 1.*`)

	_, _, err = execute(newApp(), "run", testMatrix, "--source", "-1")
	c.Assert(err, check.ErrorMatches, `calculate: source -1 not in \[0, 3\): invalid source vertex`)
}

func (s *CLITestSuite) TestRunArgumentErrors(c *check.C) {
	specs := []struct {
		descr string
		args  []string
		err   string
	}{
		{"no matrix", []string{"run"}, "a matrix must be provided.*"},
		{"matrix twice", []string{"run", testMatrix, "--matrix", testMatrix}, "matrix given both.*"},
		{"both matrix flags", []string{"run", "--matrix", testMatrix, "--matrix-file", "x"}, "only one of --matrix and --matrix-file may be set"},
		{"source not a number", []string{"run", testMatrix, "zero"}, `invalid source vertex "zero".*`},
		{"too many arguments", []string{"run", testMatrix, "0", "-", "extra"}, "accepts at most 3 arg.*"},
		{"bad literal", []string{"run", "[[0,x],[1,0]]"}, "(?s)matrix syntax error.*"},
		{"not square", []string{"run", "[[0,1],[1]]"}, "(?s)build graph: .*malformed graph.*"},
		{"negative weight", []string{"run", "[[0,-1],[1,0]]"}, "(?s)build graph: .*negative edge weight.*"},
		{"bad log level", []string{"run", testMatrix, "--log-level", "loud"}, "invalid log level.*"},
		{"bad log format", []string{"run", testMatrix, "--log-format", "xml"}, `unsupported log format: "xml"`},
		{"negative workers", []string{"run", testMatrix, "--workers", "-2"}, "(?s).*invalid value for compute workers.*"},
	}

	for i, spec := range specs {
		c.Logf("[spec %d] %s", i, spec.descr)

		_, _, err := execute(newApp(), spec.args...)
		c.Assert(err, check.ErrorMatches, spec.err)
	}
}

func (s *CLITestSuite) TestRunLenient(c *check.C) {
	stdout, _, err := execute(newApp(), "run", "[[0,-1,2],[0,0,0],[0,1,0]]", "0", "--lenient")
	c.Assert(err, check.IsNil)
	c.Assert(stdout, check.Equals, "Vertex\tDistance from source\n0\t0\n1\t3\n2\t2\n")
}

func (s *CLITestSuite) TestStoredRunsCanBeListedAndShown(c *check.C) {
	store := memory.NewInMemoryStore()

	a := newApp()
	a.openStore = func(string, *logrus.Entry) (runstore.Store, error) {
		return store, nil
	}

	_, stderr, err := execute(a, "run", testMatrix, "0", "--store-uri", "in-memory://")
	c.Assert(err, check.IsNil)
	c.Assert(stderr, check.Matches, "(?s).*stored run .*")

	it, err := store.Runs(time.Now().Add(time.Minute))
	c.Assert(err, check.IsNil)
	c.Assert(it.Next(), check.Equals, true)
	run := it.Run()
	c.Assert(it.Next(), check.Equals, false)
	c.Assert(it.Close(), check.IsNil)

	c.Assert(stderr, check.Equals, "stored run "+run.ID.String()+"\n")

	stdout, _, err := execute(a, "history", "--store-uri", "in-memory://")
	c.Assert(err, check.IsNil)

	lines := strings.Split(strings.TrimSpace(stdout), "\n")
	c.Assert(lines, check.HasLen, 2)
	c.Assert(lines[0], check.Matches, "ID +CREATED +VERTICES +SOURCE +ROUNDS +ELAPSED")
	c.Assert(lines[1], check.Matches, run.ID.String()+" .* 3 +0 +3 .*")

	stdout, _, err = execute(a, "show", run.ID.String(), "--store-uri", "in-memory://")
	c.Assert(err, check.IsNil)
	c.Assert(stdout, check.Equals, expectedTable)

	stdout, _, err = execute(a, "show", run.ID.String(), "--matrix", "--store-uri", "in-memory://")
	c.Assert(err, check.IsNil)
	c.Assert(stdout, check.Equals, "Matrix\n[0 4 0]\n[0 0 3]\n[0 0 0]\n"+expectedTable)
}

func (s *CLITestSuite) TestShowErrors(c *check.C) {
	_, _, err := execute(newApp(), "show", "not-a-uuid", "--store-uri", "in-memory://")
	c.Assert(err, check.ErrorMatches, `invalid run id "not-a-uuid".*`)

	_, _, err = execute(newApp(), "show", "7d7c8f7e-6a4e-4a4d-9d47-3c8c0d3f0a11", "--store-uri", "in-memory://")
	c.Assert(err, check.ErrorMatches, "find run: not found")

	_, _, err = execute(newApp(), "history")
	c.Assert(err, check.ErrorMatches, "run store URI must be specified with --store-uri")
}

func (s *CLITestSuite) TestGetRunStore(c *check.C) {
	logger := logrus.NewEntry(logrus.New())

	store, err := getRunStore("in-memory://", logger)
	c.Assert(err, check.IsNil)
	c.Assert(store, check.FitsTypeOf, memory.NewInMemoryStore())

	_, err = getRunStore("redis://localhost", logger)
	c.Assert(err, check.ErrorMatches, `unsupported run store URI scheme: "redis"`)

	_, err = getRunStore("", logger)
	c.Assert(err, check.ErrorMatches, "run store URI must be specified with --store-uri")
}
