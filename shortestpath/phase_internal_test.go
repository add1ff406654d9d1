package shortestpath

import (
	"math"

	check "gopkg.in/check.v1"

	"github.com/mycok/uPath/bsp/aggregator"
	"github.com/mycok/uPath/graph"
)

var _ = check.Suite(new(phaseTestSuite))

type phaseTestSuite struct{}

func (s *phaseTestSuite) newState(c *check.C, matrix [][]int64, source int) *runState {
	g, err := graph.New(matrix)
	c.Assert(err, check.IsNil)

	return &runState{
		g:           g,
		n:           g.Order(),
		dist:        newDistanceVector(g.Order(), source),
		visited:     make([]bool, g.Order()),
		minArg:      new(aggregator.MinArg),
		relaxations: new(aggregator.IntAccumulator),
	}
}

func (s *phaseTestSuite) newCalculator(c *check.C, workers, partitions int) *Calculator {
	calc, err := NewCalculator(Config{ComputeWorkers: workers, Partitions: partitions})
	c.Assert(err, check.IsNil)

	return calc
}

func (s *phaseTestSuite) TestRelaxationIsIdempotent(c *check.C) {
	calc := s.newCalculator(c, 3, 3)
	defer func() { c.Assert(calc.Close(), check.IsNil) }()

	st := s.newState(c, [][]int64{
		{0, 4, 1, 0, 9},
		{0, 0, 0, 0, 0},
		{0, 2, 0, 0, 0},
		{0, 0, 0, 0, 0},
		{0, 0, 0, 0, 0},
	}, 0)
	st.visited[0] = true

	c.Assert(calc.relaxFrom(st, 0), check.IsNil)
	first := st.dist.export()
	c.Assert(first, check.DeepEquals, []int64{0, 4, 1, Unreachable, 9})
	c.Assert(st.relaxations.Total(), check.Equals, 3)

	// Same pivot, no intervening change: nothing moves.
	c.Assert(calc.relaxFrom(st, 0), check.IsNil)
	c.Assert(st.dist.export(), check.DeepEquals, first)
	c.Assert(st.relaxations.Total(), check.Equals, 3)
}

func (s *phaseTestSuite) TestRelaxationSkipsVisitedVertices(c *check.C) {
	calc := s.newCalculator(c, 2, 2)
	defer func() { c.Assert(calc.Close(), check.IsNil) }()

	st := s.newState(c, [][]int64{
		{0, 5, 5},
		{0, 0, 0},
		{0, 0, 0},
	}, 0)
	st.visited[0] = true
	st.visited[2] = true

	c.Assert(calc.relaxFrom(st, 0), check.IsNil)
	c.Assert(st.dist.export(), check.DeepEquals, []int64{0, 5, Unreachable})
}

func (s *phaseTestSuite) TestRelaxationFromUnreachedPivot(c *check.C) {
	calc := s.newCalculator(c, 1, 1)
	defer func() { c.Assert(calc.Close(), check.IsNil) }()

	st := s.newState(c, [][]int64{
		{0, 0},
		{3, 0},
	}, 0)

	// Vertex 1 was never reached, so relaxing from it is a no-op.
	c.Assert(calc.relaxFrom(st, 1), check.IsNil)
	c.Assert(st.dist.export(), check.DeepEquals, []int64{0, Unreachable})
}

func (s *phaseTestSuite) TestRelaxationOverflowGuard(c *check.C) {
	calc := s.newCalculator(c, 1, 1)
	defer func() { c.Assert(calc.Close(), check.IsNil) }()

	st := s.newState(c, [][]int64{
		{0, math.MaxInt64 - 10, 0},
		{0, 0, 100},
		{0, 0, 0},
	}, 0)

	st.visited[0] = true
	c.Assert(calc.relaxFrom(st, 0), check.IsNil)
	c.Assert(st.dist.load(1), check.Equals, int64(math.MaxInt64-10))

	st.visited[1] = true
	c.Assert(calc.relaxFrom(st, 1), check.IsNil)
	c.Assert(st.dist.load(2), check.Equals, int64(infinity))
}

func (s *phaseTestSuite) TestSelectionTieBreakIgnoresPartitioning(c *check.C) {
	matrix := make([][]int64, 12)
	for u := range matrix {
		matrix[u] = make([]int64, 12)
	}

	for _, part := range [][2]int{{1, 1}, {2, 2}, {3, 5}, {4, 12}} {
		calc := s.newCalculator(c, part[0], part[1])

		st := s.newState(c, matrix, 0)
		st.visited[0] = true
		// Vertices 9, 4 and 7 tie; 4 must win however the range is split.
		for _, v := range []int{9, 4, 7} {
			st.dist.relax(v, 3)
		}
		st.dist.relax(11, 8)

		pivot, err := calc.selectPivot(st)
		c.Assert(err, check.IsNil)
		c.Assert(pivot, check.Equals, aggregator.Candidate{Index: 4, Value: 3}, check.Commentf("partitioning %v", part))

		st.visited[4] = true
		pivot, err = calc.selectPivot(st)
		c.Assert(err, check.IsNil)
		c.Assert(pivot, check.Equals, aggregator.Candidate{Index: 7, Value: 3})

		c.Assert(calc.Close(), check.IsNil)
	}
}

func (s *phaseTestSuite) TestSelectionWithNothingReachable(c *check.C) {
	calc := s.newCalculator(c, 2, 2)
	defer func() { c.Assert(calc.Close(), check.IsNil) }()

	st := s.newState(c, [][]int64{{0, 0, 0}, {0, 0, 0}, {0, 0, 0}}, 1)
	st.visited[1] = true

	pivot, err := calc.selectPivot(st)
	c.Assert(err, check.IsNil)
	c.Assert(pivot.Index, check.Equals, -1)
}

func (s *phaseTestSuite) TestPhaseNames(c *check.C) {
	c.Assert(phaseInitializing.String(), check.Equals, "initializing")
	c.Assert(phaseSelecting.String(), check.Equals, "selecting")
	c.Assert(phaseRelaxing.String(), check.Equals, "relaxing")
	c.Assert(phaseTerminated.String(), check.Equals, "terminated")
	c.Assert(phase(9).String(), check.Equals, "phase(9)")
}
