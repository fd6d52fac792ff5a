// SPDX-License-Identifier: MIT
// Package: episim/epidemic
//
// errors.go: sentinel errors for the epidemic package.
//
// Error policy:
//   • Only engine construction can fail; runtime operations on unknown node
//     ids degrade to no-ops (skip / false) instead of returning errors.
//   • Callers MUST use errors.Is(err, ErrX) to branch on semantics.

package epidemic

import "errors"

// ErrGraphNil indicates that New was called with a nil graph.
var ErrGraphNil = errors.New("epidemic: graph is nil")

// ErrInvalidProbability indicates an infection probability outside [0, 1]
// (NaN included).
var ErrInvalidProbability = errors.New("epidemic: infection probability must be in [0,1]")

// ErrEngineNil indicates that Run was called without an engine.
var ErrEngineNil = errors.New("epidemic: engine is nil")
