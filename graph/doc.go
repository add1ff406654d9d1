/*
	graph package provides an immutable dense adjacency matrix for weighted,
	directed graphs whose vertices are identified by their index in [0, V).

	A matrix entry at (u, v) holds the weight of the edge u -> v. A weight of
	zero marks the absence of an edge, which means that zero-weight edges cannot
	be represented. This applies to the diagonal as well: a self-loop with
	weight 0 cannot be told apart from a missing self-loop. Self-loops never
	shorten a path, so computed distances are the same either way.
*/

package graph
