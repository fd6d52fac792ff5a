// Package builder generates scale-free contact networks and derives the
// read-only views the rest of the system consumes.
//
// The package offers the following key components:
//
//   - Configuration primitives:
//     – BuilderOption:  a function that mutates builderConfig before use.
//     – builderConfig:  holds the RNG used by stochastic constructors.
//   - Topology constructors:
//     – BarabasiAlbert(n, m): preferential-attachment growth (Constructor).
//     – Generate(n, m, opts...): one-call entry point returning *core.Graph.
//   - Views and diagnostics:
//     – ToViews:         node/link lists ready for serialization.
//     – Adjacency:       id → sorted neighbor ids, rebuilt on every call.
//     – DegreeStats:     min/max/avg/stddev plus the full degree sequence.
//     – DegreeHistogram: degree → node count.
//     – Components:      connected components (gonum topo).
//
// Guarantees:
//
//   - Determinism: same (n, m, seed) ⇒ identical graphs, edge order included.
//   - Fast-fail: invalid (n, m) return ErrConfiguration before any node is
//     created; a partially built graph is never returned.
//   - Option constructors panic on meaningless values (WithRand(nil)).
//
// Preferential attachment (Barabási–Albert):
//
//	nodes 0..m-1 form the initial core; node m links to every core node;
//	each later node s links to m distinct existing nodes, each drawn with
//	probability proportional to its current degree. The result has exactly
//	n nodes and m·(n−m) edges, no self-loops, no parallel edges, and is
//	connected.
package builder
