// Package episim simulates SI epidemics on scale-free contact networks.
//
// What is inside?
//
//	core/        arena graph with int node ids, adjacency and infection attributes
//	builder/     Barabási–Albert generator, JSON views, degree statistics
//	bfs/         multi-source breadth-first search with hooks and cancellation
//	epidemic/    generational SI engine: seed, step, manual infect, reset, run
//
// The internal/ tree wraps these in a service: a session registry, an HTTP
// API with Prometheus metrics, YAML configuration, zap logging and CSV/PNG
// reports. cmd/episim is the command line front end.
//
// Quick start:
//
//	g, _ := builder.Generate(1000, 3, builder.WithSeed(42))
//	eng, _ := epidemic.New(g, 0.3, epidemic.WithSeed(42))
//	eng.Seed(5)
//	steps, _ := epidemic.Run(ctx, eng, 0, nil)
//
// Every random choice flows through an injected *rand.Rand, so a fixed seed
// reproduces the same network and the same outbreak.
package episim
