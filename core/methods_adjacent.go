// File: methods_adjacent.go
// Role: Neighborhood queries and adjacency exports.
// Determinism:
//   - NeighborIDs and both adjacency exports return ascending neighbor ids,
//     independent of the order in which edges were inserted.
// Concurrency:
//   - Read lock only; every result is a fresh copy owned by the caller.
package core

import "sort"

// NeighborIDs returns the sorted neighbor ids of id.
//
// Complexity: O(d·log d).
func (g *Graph) NeighborIDs(id int) ([]int, error) {
	g.mu.RLock()
	defer g.mu.RUnlock()

	if !g.hasNodeLocked(id) {
		return nil, ErrNodeNotFound
	}

	return sortedCopy(g.adjacency[id]), nil
}

// AdjacencyList returns node id → sorted neighbor ids for every node,
// including isolated nodes (empty, non-nil slice).
//
// Complexity: O(V + E·log d).
func (g *Graph) AdjacencyList() map[int][]int {
	g.mu.RLock()
	defer g.mu.RUnlock()

	out := make(map[int][]int, len(g.adjacency))
	for id, nbrs := range g.adjacency {
		out[id] = sortedCopy(nbrs)
	}

	return out
}

// AdjacencySlice is AdjacencyList in arena form: index == node id.
//
// Complexity: O(V + E·log d).
func (g *Graph) AdjacencySlice() [][]int {
	g.mu.RLock()
	defer g.mu.RUnlock()

	out := make([][]int, len(g.adjacency))
	for id, nbrs := range g.adjacency {
		out[id] = sortedCopy(nbrs)
	}

	return out
}

func sortedCopy(src []int) []int {
	dst := make([]int, len(src))
	copy(dst, src)
	sort.Ints(dst)

	return dst
}
