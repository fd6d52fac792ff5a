// Package bfs provides breadth-first search over a core.Graph, returning
// unweighted hop distances, parent links, and visit order.
//
// What
//
//   - Explore nodes in non-decreasing distance (edge count) from one or more
//     sources. Every source starts at depth 0, so Depth[v] is the distance to
//     the NEAREST source.
//   - Returns a Result containing:
//   - Order: visit sequence
//   - Depth: map from node → distance (edges) from the source set
//   - Parent: map from node → its predecessor in the BFS forest
//   - Hooks: OnEnqueue when a node joins the frontier, OnVisit when it
//     leaves it (an OnVisit error aborts the walk).
//   - WithFilterNeighbor restricts which edges are followed, e.g. to walk
//     around immunised nodes.
//   - Honors MaxDepth limit (d>0) or explicit “no limit” (d==0).
//
// Why
//
//	In an SI outbreak with transmission probability 1, a node is infected
//	exactly at the step equal to its hop distance from the initially
//	infected set. Multi-source BFS therefore gives the generation depth of
//	a deterministic outbreak and the number of steps it takes to saturate
//	the reachable component.
//
// Determinism
//
//	core.Graph exports neighbors in ascending id order and sources are
//	enqueued in the order given, so the visit sequence is fully reproducible.
//
// Complexity (V = nodes, E = edges)
//
//   - Time:   O(V + E·log d)  (adjacency export sorts each neighbor list once)
//   - Memory: O(V + E)        (adjacency copy, queue, Depth and Parent maps)
//
// Usage
//
//	res, err := bfs.BFS(g, []int{0})
//	if err != nil {
//	    // ErrGraphNil, ErrStartVertexNotFound, ErrOptionViolation,
//	    // context errors or wrapped OnVisit errors
//	}
//	path, _ := res.PathTo(42)
//
//	// Generation depth of an outbreak seeded at the infected nodes:
//	res, _ = bfs.BFS(g, g.InfectedIDs(), bfs.WithContext(ctx))
//	fmt.Println(res.MaxDepth())
//
// Errors
//
//   - ErrGraphNil             if the graph pointer is nil.
//   - ErrStartVertexNotFound  if a source id does not exist.
//   - ErrOptionViolation      if invalid Option (e.g. negative MaxDepth).
//   - Wrapped user-supplied hook errors from OnVisit.
package bfs
