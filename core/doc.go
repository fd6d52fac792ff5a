// Package core provides the in-memory contact graph used by the epidemic
// engine: a simple, undirected graph whose nodes are addressed by stable,
// contiguous integer ids and carry their own infection attributes.
//
// The Graph G = (V,E) is stored arena-style:
//
//   - Nodes are indices 0..N-1 into fixed-size arrays (infected flag,
//     infection time). There are no pointer-linked vertex objects.
//   - Edges are unordered pairs {From,To} normalised so From < To and kept
//     in insertion order; an edge set rejects duplicates in O(1).
//   - Adjacency is a per-node slice of neighbor ids, mirrored on both
//     endpoints of every edge.
//
// Graph policy (fixed, not configurable):
//
//   - Undirected only.
//   - No self-loops (AddEdge(v,v) → ErrLoopNotAllowed).
//   - No parallel edges (second AddEdge(u,v) → ErrMultiEdgeNotAllowed).
//
// Infection attributes:
//
//	Every node starts healthy with InfectionTime == NeverInfected (-1).
//	Invariant: InfectionTime >= 0 ⟺ Infected. The graph enforces the
//	invariant; deciding WHEN a node becomes infected is the engine's job.
//
// Core Methods:
//
//	// Node lifecycle
//	AddNode() int                       // O(1) amortized
//	AddNodes(k int) int                 // O(k)
//	HasNode(id int) bool                // O(1)
//	Node(id int) (Node, error)          // O(1)
//	Nodes() []Node                      // O(V)
//
//	// Edge lifecycle
//	AddEdge(u, v int) error             // O(1) amortized
//	HasEdge(u, v int) bool              // O(1)
//	Edges() []Edge                      // O(E), insertion order
//
//	// Query
//	NeighborIDs(id int) ([]int, error)  // O(d·log d), sorted
//	Degree(id int) (int, error)         // O(1)
//	Degrees() []int                     // O(V)
//	AdjacencyList() map[int][]int       // O(V+E)
//	AdjacencySlice() [][]int            // O(V+E)
//
//	// Infection attributes
//	Infect(id, t int) (bool, error)     // O(1)
//	IsInfected(id int) bool             // O(1)
//	InfectedIDs() []int                 // O(V), ascending
//	InfectedCount() int                 // O(V)
//	ClearInfections()                   // O(V)
//
// Concurrency:
//
//	A single sync.RWMutex guards topology and attributes so read-only views
//	can be taken from other goroutines. Higher-level invariants (one writer
//	per graph, the engine) are NOT enforced here.
//
// Errors:
//
//	ErrNodeNotFound        – id outside [0, NodeCount)
//	ErrLoopNotAllowed      – AddEdge(v, v)
//	ErrMultiEdgeNotAllowed – AddEdge(u, v) when {u,v} already exists
//	ErrNegativeTime        – Infect with t < 0
package core
