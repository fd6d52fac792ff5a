// File: views.go
// Role: Serializable, read-only projections of a contact graph.
// Determinism:
//   - Nodes ascend by id; links follow the graph's edge insertion order.
// Concurrency:
//   - Each call reads through core.Graph's read lock; safe to call repeatedly.

package builder

import "github.com/katalvlaran/episim/core"

// NodeView is the serialized form of one node.
type NodeView struct {
	ID            int  `json:"id"`
	Infected      bool `json:"infected"`
	Degree        int  `json:"degree"`
	InfectionTime int  `json:"infection_time"`
}

// LinkView is the serialized form of one undirected edge.
type LinkView struct {
	Source int `json:"source"`
	Target int `json:"target"`
}

// GraphView bundles node and link views.
type GraphView struct {
	Nodes []NodeView `json:"nodes"`
	Links []LinkView `json:"links"`
}

// ToViews projects g into node and link lists. A nil graph yields empty,
// non-nil slices.
//
// Complexity: O(V+E).
func ToViews(g *core.Graph) GraphView {
	view := GraphView{Nodes: []NodeView{}, Links: []LinkView{}}
	if g == nil {
		return view
	}

	nodes := g.Nodes()
	degrees := g.Degrees()
	view.Nodes = make([]NodeView, len(nodes))
	for i, n := range nodes {
		view.Nodes[i] = NodeView{
			ID:            n.ID,
			Infected:      n.Infected,
			Degree:        degrees[n.ID],
			InfectionTime: n.InfectionTime,
		}
	}

	edges := g.Edges()
	view.Links = make([]LinkView, len(edges))
	for i, e := range edges {
		view.Links[i] = LinkView{Source: e.From, Target: e.To}
	}

	return view
}

// Adjacency returns node id → sorted neighbor ids, recomputed from the
// graph's current edge set on every call. Intended for diagnostics; the
// epidemic engine keeps its own snapshot.
//
// Complexity: O(V + E·log d).
func Adjacency(g *core.Graph) map[int][]int {
	if g == nil {
		return map[int][]int{}
	}

	return g.AdjacencyList()
}
