// SPDX-License-Identifier: MIT
// Package: episim/epidemic
//
// options.go: functional options for Engine construction.
//
// Contract:
//   • Options are applied in order; later options override earlier ones.
//   • Option constructors PANIC on nil inputs (WithRand(nil), WithObserver(nil)).
//   • Without WithSeed/WithRand the engine seeds from the wall clock.

package epidemic

import (
	"math/rand"
	"time"
)

// Cause tells an Observer how nodes became infected.
type Cause string

// Infection causes reported to observers.
const (
	CauseSeed         Cause = "seed"
	CauseTransmission Cause = "transmission"
	CauseManual       Cause = "manual"
)

// Observer is notified after every operation that infected at least one
// node. ids is owned by the engine and must not be modified.
type Observer func(cause Cause, timeStep int, ids []int)

// Option customizes an Engine at construction time.
type Option func(*engineConfig)

type engineConfig struct {
	rng      *rand.Rand
	observer Observer
}

func newEngineConfig(opts ...Option) engineConfig {
	cfg := engineConfig{}
	for _, opt := range opts {
		opt(&cfg)
	}
	if cfg.rng == nil {
		cfg.rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	if cfg.observer == nil {
		cfg.observer = func(Cause, int, []int) {}
	}

	return cfg
}

// WithSeed makes every random draw of the engine reproducible.
func WithSeed(seed int64) Option {
	return func(c *engineConfig) {
		c.rng = rand.New(rand.NewSource(seed))
	}
}

// WithRand supplies the engine's random source. Panics on nil.
func WithRand(r *rand.Rand) Option {
	if r == nil {
		panic("epidemic: WithRand(nil)")
	}
	return func(c *engineConfig) {
		c.rng = r
	}
}

// WithObserver registers a callback for infection events. Panics on nil.
func WithObserver(fn Observer) Option {
	if fn == nil {
		panic("epidemic: WithObserver(nil)")
	}
	return func(c *engineConfig) {
		c.observer = fn
	}
}
