// SPDX-License-Identifier: MIT
// Package: episim/builder
//
// api.go - thin public entry-points for the builder package.
//
// Design contract:
//   - One orchestrator: BuildGraph(gopts, bopts, cons...). Creates g, resolves cfg, runs cons in order.
//   - Generate(n, m, opts...) is the one-call network generator used by callers.
//   - Functional options (BuilderOption) resolve into an immutable builderConfig (no global state).
//   - Determinism: same inputs/options/seed and constructor order ⇒ identical graphs.

package builder

import (
	"fmt"

	"github.com/katalvlaran/episim/core"
)

// Constructor applies a deterministic graph mutation using the resolved
// builderConfig. Constructors MUST:
//   - Validate parameters early and return sentinel errors (no panics).
//   - Preserve determinism for the same config and call order.
type Constructor func(g *core.Graph, cfg builderConfig) error

// BuildGraph creates a new core.Graph with graph options gopts, resolves the
// builder configuration from bopts, and applies all constructors in order.
// Any constructor error is wrapped with the context "BuildGraph: %w" and
// returned immediately together with a nil graph.
//
// Complexity:
//   - Resolving options: O(len(bopts)).
//   - Applying K constructors: Σ cost of each constructor.
func BuildGraph(gopts []core.GraphOption, bopts []BuilderOption, cons ...Constructor) (*core.Graph, error) {
	g := core.NewGraph(gopts...)
	cfg := newBuilderConfig(bopts...)

	for i, fn := range cons {
		if fn == nil {
			return nil, fmt.Errorf("BuildGraph: nil constructor at index %d: %w", i, ErrConstructFailed)
		}
		if err := fn(g, cfg); err != nil {
			return nil, fmt.Errorf("BuildGraph: %w", err)
		}
	}

	return g, nil
}

// Generate builds an n-node Barabási–Albert network where each node added
// after the initial core brings m edges.
//
// Parameters are validated before anything is allocated: n < 1, m < 1 or
// m ≥ n return ErrConfiguration. Without WithSeed/WithRand the RNG is seeded
// from the wall clock.
//
// Complexity: O(n·m) expected time, O(n·m) space.
func Generate(n, m int, opts ...BuilderOption) (*core.Graph, error) {
	if err := validateAttachment(n, m); err != nil {
		return nil, err
	}

	cfg := newBuilderConfig(opts...).withClockFallback()
	g := core.NewGraph(core.WithCapacity(n, ExpectedEdges(n, m)))
	if err := BarabasiAlbert(n, m)(g, cfg); err != nil {
		return nil, err
	}

	return g, nil
}
