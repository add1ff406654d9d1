/*
	shortestpath package computes single-source shortest path distances over a
	dense weighted graph with a parallel variant of Dijkstra's algorithm.

	Every round selects the unvisited vertex with the smallest tentative
	distance and relaxes its outgoing edges. Both the selection and the
	relaxation are fork-join phases executed by a fixed-size bsp.Pool over the
	vertex range, so a graph with V vertices costs O(V²) work spread across
	the workers. Selection breaks ties in favour of the smaller vertex index,
	which makes the results independent of the number of workers and
	partitions.

	Negative weights are rejected when the graph is built; distances are only
	correct for non-negative weights.
*/

package shortestpath
