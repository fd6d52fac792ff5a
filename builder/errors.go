// SPDX-License-Identifier: MIT
// Package: episim/builder
//
// errors.go: sentinel errors for the builder package.
//
// Error policy:
//   • Only sentinel variables (package-level) are exposed.
//   • Callers MUST use errors.Is(err, ErrX) to branch on semantics.
//   • Implementations attach context with `%w`, e.g.
//       "BarabasiAlbert: m=5 not in [1,5): builder: invalid configuration"
//   • Algorithms MUST NOT panic at runtime; validation panics are confined to
//     option constructor functions (WithX...).

package builder

import "errors"

// ErrConfiguration indicates generator parameters outside their domain
// (node count or attachment degree). It is the only condition that aborts
// network construction.
// Usage: if errors.Is(err, ErrConfiguration) { /* report invalid n or m */ }.
var ErrConfiguration = errors.New("builder: invalid configuration")

// ErrNeedRandSource indicates that a stochastic constructor was run through
// BuildGraph without WithSeed/WithRand.
var ErrNeedRandSource = errors.New("builder: rng is required")

// ErrConstructFailed indicates that the target graph rejected a mutation
// (non-empty target, core invariant violated) or a nil constructor was passed.
var ErrConstructFailed = errors.New("builder: construction failed")

// --- Implementation Notes ----------------------------------------------------
//
// Priority when several validations fail:
//   • ErrConfiguration: n first, then m.
//   • ErrNeedRandSource: then RNG presence.
//   • ErrConstructFailed: only for target/graph failures.
