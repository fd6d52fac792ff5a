// SPDX-License-Identifier: MIT
//
// File: api.go
// Role: Read-only summaries on top of the core types.
// Policy:
//   - No algorithms or hidden state here.
//   - Every exported function documents complexity.

package core

// Stats produces a read-only snapshot of graph sizes.
//
// Implementation:
//   - Stage 1: Acquire the read lock once.
//   - Stage 2: Count nodes, edges, infected nodes and isolated nodes.
//
// Returns:
//   - *GraphStats: immutable-by-convention snapshot.
//
// Complexity:
//   - Time O(V), Space O(1) plus the returned struct.
func (g *Graph) Stats() *GraphStats {
	g.mu.RLock()
	defer g.mu.RUnlock()

	stats := GraphStats{
		NodeCount: len(g.infected),
		EdgeCount: len(g.edges),
	}
	for id, inf := range g.infected {
		if inf {
			stats.InfectedCount++
		}
		if len(g.adjacency[id]) == 0 {
			stats.IsolatedCount++
		}
	}

	return &stats
}

// Clone returns a deep copy of g: same ids, same edges in the same order, same
// infection attributes. Mutations of either graph are invisible to the other.
//
// Complexity: O(V+E).
func (g *Graph) Clone() *Graph {
	g.mu.RLock()
	defer g.mu.RUnlock()

	out := NewGraph(WithCapacity(len(g.infected), len(g.edges)))
	out.infected = append(out.infected, g.infected...)
	out.infectionTime = append(out.infectionTime, g.infectionTime...)
	out.adjacency = make([][]int, len(g.adjacency))
	for id, nbrs := range g.adjacency {
		out.adjacency[id] = append([]int(nil), nbrs...)
	}
	out.edges = append(out.edges, g.edges...)
	for k := range g.edgeSet {
		out.edgeSet[k] = struct{}{}
	}

	return out
}
