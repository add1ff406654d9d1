package shortestpath

import "github.com/mycok/uPath/bsp"

// relaxFrom lowers the tentative distance of every unvisited vertex v that
// has an edge pivot -> v to dist[pivot] + weight(pivot, v) when that is an
// improvement. Partitions cover disjoint vertex ranges but updates still go
// through distanceVector.relax so each compare-then-update is atomic.
func (c *Calculator) relaxFrom(st *runState, pivot int) error {
	base := st.dist.load(pivot)
	if base == infinity {
		// Selection never picks an unreached vertex.
		return nil
	}

	return c.pool.Run(st.n, func(p bsp.Partition) error {
		var relaxed int

		st.g.Outgoing(pivot, p.From, p.To, func(v int, w int64) {
			if st.visited[v] {
				return
			}

			// Skip sums that would overflow into or past the sentinel.
			if w > infinity-1-base {
				return
			}

			if st.dist.relax(v, base+w) {
				relaxed++
			}
		})

		if relaxed != 0 {
			st.relaxations.Add(relaxed)
		}

		return nil
	})
}
