// File: methods_edges.go
// Role: Edge lifecycle & queries: AddEdge/HasEdge/Edges/EdgeCount.
// Determinism:
//   - Edges() returns edges in insertion order, each normalised to From < To.
// Concurrency:
//   - Mutations under the write lock; read queries under the read lock.
package core

import "fmt"

// AddEdge links u and v.
//
// Steps:
//  1. Validate both endpoints exist (ErrNodeNotFound).
//  2. Reject u == v (ErrLoopNotAllowed).
//  3. Reject an existing {u,v} (ErrMultiEdgeNotAllowed).
//  4. Store the normalised edge and mirror it in both adjacency slices.
//
// Complexity: O(1) amortized.
func (g *Graph) AddEdge(u, v int) error {
	g.mu.Lock()
	defer g.mu.Unlock()

	if !g.hasNodeLocked(u) {
		return fmt.Errorf("AddEdge(%d,%d): node %d: %w", u, v, u, ErrNodeNotFound)
	}
	if !g.hasNodeLocked(v) {
		return fmt.Errorf("AddEdge(%d,%d): node %d: %w", u, v, v, ErrNodeNotFound)
	}
	if u == v {
		return fmt.Errorf("AddEdge(%d,%d): %w", u, v, ErrLoopNotAllowed)
	}

	key := makeEdgeKey(u, v)
	if _, dup := g.edgeSet[key]; dup {
		return fmt.Errorf("AddEdge(%d,%d): %w", u, v, ErrMultiEdgeNotAllowed)
	}

	g.edgeSet[key] = struct{}{}
	g.edges = append(g.edges, Edge{From: key.lo, To: key.hi})
	g.adjacency[u] = append(g.adjacency[u], v)
	g.adjacency[v] = append(g.adjacency[v], u)

	return nil
}

// HasEdge reports whether {u,v} is an edge. Unknown ids yield false.
//
// Complexity: O(1).
func (g *Graph) HasEdge(u, v int) bool {
	g.mu.RLock()
	defer g.mu.RUnlock()

	_, ok := g.edgeSet[makeEdgeKey(u, v)]

	return ok
}

// EdgeCount returns |E|.
func (g *Graph) EdgeCount() int {
	g.mu.RLock()
	defer g.mu.RUnlock()

	return len(g.edges)
}

// Edges returns a copy of the edge list in insertion order.
//
// Complexity: O(E).
func (g *Graph) Edges() []Edge {
	g.mu.RLock()
	defer g.mu.RUnlock()

	out := make([]Edge, len(g.edges))
	copy(out, g.edges)

	return out
}
