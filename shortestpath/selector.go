package shortestpath

import (
	"github.com/mycok/uPath/bsp"
	"github.com/mycok/uPath/bsp/aggregator"
)

// selectPivot returns the unvisited vertex with the smallest finite tentative
// distance. Each partition scans its range in ascending order and keeps the
// first minimum it meets, then folds it into the run's MinArg, which breaks
// cross-partition ties by index. The returned candidate has a negative index
// when every unvisited vertex is still at infinity.
func (c *Calculator) selectPivot(st *runState) (aggregator.Candidate, error) {
	st.minArg.Reset()

	err := c.pool.Run(st.n, func(p bsp.Partition) error {
		local := aggregator.NoCandidate

		for v := p.From; v < p.To; v++ {
			if st.visited[v] {
				continue
			}

			if dist := st.dist.load(v); dist != infinity && dist < local.Value {
				local = aggregator.Candidate{Index: v, Value: dist}
			}
		}

		if local.Index >= 0 {
			st.minArg.Aggregate(local)
		}

		return nil
	})
	if err != nil {
		return aggregator.NoCandidate, err
	}

	return st.minArg.Min(), nil
}
