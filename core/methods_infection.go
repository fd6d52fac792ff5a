// File: methods_infection.go
// Role: Per-node infection attributes (flag + time stamp).
//
// Policy:
//   - Infected is terminal at this layer: the only way back to healthy is
//     ClearInfections, which resets every node at once.
//   - The InfectionTime >= 0 ⟺ Infected invariant holds after every call.
package core

import "fmt"

// Infect marks id infected at time t if it is currently healthy.
// It reports whether the node changed state; an already-infected node keeps
// its original stamp.
//
// Complexity: O(1).
func (g *Graph) Infect(id, t int) (bool, error) {
	if t < 0 {
		return false, fmt.Errorf("Infect(%d, t=%d): %w", id, t, ErrNegativeTime)
	}

	g.mu.Lock()
	defer g.mu.Unlock()

	if !g.hasNodeLocked(id) {
		return false, fmt.Errorf("Infect(%d): %w", id, ErrNodeNotFound)
	}
	if g.infected[id] {
		return false, nil
	}
	g.infected[id] = true
	g.infectionTime[id] = t

	return true, nil
}

// IsInfected reports whether id is infected. Unknown ids yield false.
func (g *Graph) IsInfected(id int) bool {
	g.mu.RLock()
	defer g.mu.RUnlock()

	return g.hasNodeLocked(id) && g.infected[id]
}

// InfectedIDs returns the infected node ids in ascending order.
//
// Complexity: O(V).
func (g *Graph) InfectedIDs() []int {
	g.mu.RLock()
	defer g.mu.RUnlock()

	out := make([]int, 0)
	for id, inf := range g.infected {
		if inf {
			out = append(out, id)
		}
	}

	return out
}

// InfectedCount returns the number of infected nodes.
//
// Complexity: O(V).
func (g *Graph) InfectedCount() int {
	g.mu.RLock()
	defer g.mu.RUnlock()

	n := 0
	for _, inf := range g.infected {
		if inf {
			n++
		}
	}

	return n
}

// ClearInfections returns every node to healthy / NeverInfected.
// Topology is untouched.
//
// Complexity: O(V).
func (g *Graph) ClearInfections() {
	g.mu.Lock()
	defer g.mu.Unlock()

	for id := range g.infected {
		g.infected[id] = false
		g.infectionTime[id] = NeverInfected
	}
}
