// Package epidemic runs a discrete-time SI (susceptible → infected) outbreak
// over a core.Graph.
//
// What
//
//   - Engine owns the infection attributes of one graph. It seeds the
//     outbreak, advances it one generation per Step, accepts manual
//     infections, and keeps an append-only history of snapshots.
//   - Transmission rule: on Step the set of infected nodes is frozen first
//     (ascending id). For every frozen node and every neighbor that is still
//     healthy at the moment it is examined, one uniform draw r ∈ [0,1) is
//     made and the neighbor is infected iff r < p, stamped with the new time
//     step. Nodes infected during a step do not transmit until the next one.
//   - Infection is terminal; only Reset returns nodes to healthy.
//
// Determinism
//
//	All randomness comes from one *rand.Rand. With WithSeed (or WithRand over
//	a seeded source) and a graph built with the same seed, every Seed/Step
//	sequence is reproducible draw for draw.
//
// Adjacency
//
//	The neighbor lists are captured when the Engine is created and reused by
//	every Step. Changing the graph topology afterwards is not supported;
//	call Rebuild to pick up a new edge set explicitly.
//
// Concurrency
//
//	Engine is NOT safe for concurrent use. Callers that share an Engine
//	across goroutines (e.g. an HTTP session) must serialise access.
//
// Usage
//
//	g, _ := builder.Generate(1000, 3, builder.WithSeed(1))
//	e, _ := epidemic.New(g, 0.3, epidemic.WithSeed(1))
//	e.Seed(5)
//	results, _ := epidemic.Run(ctx, e, 100, nil)
//	fmt.Println(e.Statistics().InfectionRate)
package epidemic
