// File: methods_nodes.go
// Role: Node lifecycle & queries.
//
// Determinism:
//   - Node ids are assigned sequentially from 0; Nodes() returns them ascending.
//
// Concurrency:
//   - Mutations under the write lock; queries under the read lock.
package core

// AddNode appends a healthy node and returns its id.
//
// Complexity: O(1) amortized.
func (g *Graph) AddNode() int {
	g.mu.Lock()
	defer g.mu.Unlock()

	return g.addNodeLocked()
}

// AddNodes appends k healthy nodes and returns the id of the first one.
// For k <= 0 nothing is added and the next free id is returned.
//
// Complexity: O(k).
func (g *Graph) AddNodes(k int) int {
	g.mu.Lock()
	defer g.mu.Unlock()

	first := len(g.infected)
	for i := 0; i < k; i++ {
		g.addNodeLocked()
	}

	return first
}

func (g *Graph) addNodeLocked() int {
	id := len(g.infected)
	g.infected = append(g.infected, false)
	g.infectionTime = append(g.infectionTime, NeverInfected)
	g.adjacency = append(g.adjacency, nil)

	return id
}

// HasNode reports whether id addresses an existing node.
func (g *Graph) HasNode(id int) bool {
	g.mu.RLock()
	defer g.mu.RUnlock()

	return g.hasNodeLocked(id)
}

func (g *Graph) hasNodeLocked(id int) bool {
	return id >= 0 && id < len(g.infected)
}

// NodeCount returns |V|.
func (g *Graph) NodeCount() int {
	g.mu.RLock()
	defer g.mu.RUnlock()

	return len(g.infected)
}

// Node returns a copy of node id, or ErrNodeNotFound.
//
// Complexity: O(1).
func (g *Graph) Node(id int) (Node, error) {
	g.mu.RLock()
	defer g.mu.RUnlock()

	if !g.hasNodeLocked(id) {
		return Node{}, ErrNodeNotFound
	}

	return Node{ID: id, Infected: g.infected[id], InfectionTime: g.infectionTime[id]}, nil
}

// Nodes returns copies of every node in ascending id order.
//
// Complexity: O(V).
func (g *Graph) Nodes() []Node {
	g.mu.RLock()
	defer g.mu.RUnlock()

	out := make([]Node, len(g.infected))
	for id := range g.infected {
		out[id] = Node{ID: id, Infected: g.infected[id], InfectionTime: g.infectionTime[id]}
	}

	return out
}

// Degree returns the number of edges incident to id.
//
// Complexity: O(1).
func (g *Graph) Degree(id int) (int, error) {
	g.mu.RLock()
	defer g.mu.RUnlock()

	if !g.hasNodeLocked(id) {
		return 0, ErrNodeNotFound
	}

	return len(g.adjacency[id]), nil
}

// Degrees returns the degree sequence indexed by node id.
//
// Complexity: O(V).
func (g *Graph) Degrees() []int {
	g.mu.RLock()
	defer g.mu.RUnlock()

	out := make([]int, len(g.adjacency))
	for id, nbrs := range g.adjacency {
		out[id] = len(nbrs)
	}

	return out
}
