// Package core defines the Node, Edge and Graph types, and the sentinel
// errors returned by graph primitives.
//
// This file declares Node, Edge, Graph, GraphOption, sentinel errors, and the
// NewGraph constructor.
package core

import (
	"errors"
	"sync"
)

// NeverInfected is the InfectionTime sentinel of a node that has never been infected.
const NeverInfected = -1

// Sentinel errors for core graph operations.
var (
	// ErrNodeNotFound indicates an operation referenced a non-existent node id.
	ErrNodeNotFound = errors.New("core: node not found")

	// ErrLoopNotAllowed indicates a self-loop was attempted.
	ErrLoopNotAllowed = errors.New("core: self-loop not allowed")

	// ErrMultiEdgeNotAllowed indicates a parallel edge was attempted.
	ErrMultiEdgeNotAllowed = errors.New("core: multi-edges not allowed")

	// ErrNegativeTime indicates an infection stamp below zero.
	ErrNegativeTime = errors.New("core: infection time must be non-negative")
)

// Node is a read-only copy of one node's identity and infection attributes.
type Node struct {
	// ID is the stable, 0-based node identifier.
	ID int

	// Infected reports whether the node has been infected.
	Infected bool

	// InfectionTime is the step at which the node was infected, or NeverInfected.
	InfectionTime int
}

// Edge is an undirected connection between two distinct nodes.
// From < To always holds for edges returned by the Graph.
type Edge struct {
	From int
	To   int
}

// edgeKey normalises an unordered pair so {u,v} and {v,u} collide.
type edgeKey struct{ lo, hi int }

func makeEdgeKey(u, v int) edgeKey {
	if u > v {
		u, v = v, u
	}
	return edgeKey{lo: u, hi: v}
}

// GraphOption configures a Graph before creation.
type GraphOption func(g *Graph)

// WithCapacity pre-sizes node and edge storage. Negative hints are ignored.
func WithCapacity(nodes, edges int) GraphOption {
	return func(g *Graph) {
		if nodes > 0 {
			g.infected = make([]bool, 0, nodes)
			g.infectionTime = make([]int, 0, nodes)
			g.adjacency = make([][]int, 0, nodes)
		}
		if edges > 0 {
			g.edges = make([]Edge, 0, edges)
			g.edgeSet = make(map[edgeKey]struct{}, edges)
		}
	}
}

// Graph is the contact graph: nodes by index, a simple undirected edge set,
// and per-node infection attributes.
//
// mu guards every field below it.
type Graph struct {
	mu sync.RWMutex

	// Node arena (index == node id).
	infected      []bool
	infectionTime []int
	adjacency     [][]int // neighbor ids in edge insertion order

	// Edge catalog.
	edges   []Edge               // insertion order
	edgeSet map[edgeKey]struct{} // membership
}

// NewGraph creates an empty Graph.
// Complexity: O(1) plus any capacity requested via options.
func NewGraph(opts ...GraphOption) *Graph {
	g := &Graph{edgeSet: make(map[edgeKey]struct{})}
	for _, opt := range opts {
		opt(g)
	}

	return g
}

// GraphStats is a read-only snapshot of graph sizes.
type GraphStats struct {
	NodeCount     int
	EdgeCount     int
	InfectedCount int
	IsolatedCount int // nodes with degree 0
}
