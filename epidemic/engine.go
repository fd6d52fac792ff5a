// File: engine.go
// Role: SI infection engine: seeding, generational steps, manual infection,
//       reset and history bookkeeping.
// Determinism:
//   - One *rand.Rand per engine; draws happen in ascending infected-id order,
//     then ascending neighbor order.
// Concurrency:
//   - Not safe for concurrent use; see package doc.

package epidemic

import (
	"fmt"
	"math"
	"math/rand"
	"sort"

	"github.com/katalvlaran/episim/core"
)

// Engine drives an SI outbreak over a single graph. The engine is the only
// writer of the graph's infection attributes for its whole lifetime.
type Engine struct {
	g        *core.Graph
	p        float64
	rng      *rand.Rand
	observer Observer

	adj      [][]int
	infected []int // ascending; mirrors the graph's infected set
	timeStep int
	history  []Snapshot
}

// New binds an engine to g with transmission probability p ∈ [0, 1].
// The neighbor lists are captured once here and reused by every Step.
//
// Complexity: O(V + E·log d).
func New(g *core.Graph, p float64, opts ...Option) (*Engine, error) {
	if g == nil {
		return nil, ErrGraphNil
	}
	if math.IsNaN(p) || p < 0 || p > 1 {
		return nil, fmt.Errorf("New: p=%v: %w", p, ErrInvalidProbability)
	}

	cfg := newEngineConfig(opts...)

	return &Engine{
		g:        g,
		p:        p,
		rng:      cfg.rng,
		observer: cfg.observer,
		adj:      g.AdjacencySlice(),
		infected: g.InfectedIDs(),
	}, nil
}

// Seed starts the outbreak at the current time step.
//
// With explicit ids, every existing healthy id is infected; unknown ids,
// duplicates and already-infected nodes are skipped and numInitial is
// ignored. Without ids, min(numInitial, N) distinct nodes are drawn
// uniformly from all nodes (negative numInitial counts as 0); drawn nodes
// that are already infected keep their original stamp.
//
// Seed always appends one history entry and returns the ids whose state
// changed (explicit ids in argument order, random ids ascending).
func (e *Engine) Seed(numInitial int, ids ...int) []int {
	changed := make([]int, 0)
	if len(ids) > 0 {
		for _, id := range ids {
			if e.infect(id) {
				changed = append(changed, id)
			}
		}
	} else {
		for _, id := range e.sample(numInitial) {
			if e.infect(id) {
				changed = append(changed, id)
			}
		}
		sort.Ints(changed)
	}

	e.track(changed)
	e.record()
	e.notify(CauseSeed, changed)

	return changed
}

// sample draws min(k, N) distinct node ids by a partial Fisher–Yates shuffle.
func (e *Engine) sample(k int) []int {
	n := e.g.NodeCount()
	if k <= 0 || n == 0 {
		return nil
	}
	if k > n {
		k = n
	}

	pool := make([]int, n)
	for i := range pool {
		pool[i] = i
	}
	for i := 0; i < k; i++ {
		j := i + e.rng.Intn(n-i)
		pool[i], pool[j] = pool[j], pool[i]
	}

	return pool[:k]
}

// Step advances the outbreak by one generation and appends one history entry.
// With nothing infected it only advances the clock and reports the outbreak
// as over.
//
// Complexity: O(I + Σ deg(infected) + k·log k) for I infected and k newly
// infected nodes.
func (e *Engine) Step() StepResult {
	e.timeStep++

	newly := make([]int, 0)
	for _, u := range e.infected {
		for _, v := range e.adj[u] {
			if e.g.IsInfected(v) {
				continue
			}
			if e.rng.Float64() < e.p && e.infect(v) {
				newly = append(newly, v)
			}
		}
	}

	e.track(newly)
	e.record()
	e.notify(CauseTransmission, newly)

	return StepResult{
		TimeStep:       e.timeStep,
		NewlyInfected:  newly,
		TotalInfected:  e.history[len(e.history)-1].InfectedCount,
		IsOutbreakOver: len(newly) == 0,
	}
}

// ManualInfect infects an existing healthy node at the current time step.
// It returns false, and records nothing, for unknown or already-infected ids.
func (e *Engine) ManualInfect(id int) bool {
	if !e.infect(id) {
		return false
	}
	e.track([]int{id})
	e.record()
	e.notify(CauseManual, []int{id})

	return true
}

// Reset returns every node to healthy, rewinds the clock to 0 and drops the
// history. The graph topology and the adjacency snapshot are untouched.
func (e *Engine) Reset() {
	e.g.ClearInfections()
	e.infected = nil
	e.timeStep = 0
	e.history = nil
}

// Rebuild recaptures the neighbor lists from the graph's current edge set.
// Infection state, clock and history are kept.
func (e *Engine) Rebuild() {
	e.adj = e.g.AdjacencySlice()
}

// infect stamps id with the current time step if it exists and is healthy.
func (e *Engine) infect(id int) bool {
	ok, err := e.g.Infect(id, e.timeStep)

	return err == nil && ok
}

// track merges freshly infected ids into the ascending infected list.
// ids itself is left in caller order.
func (e *Engine) track(ids []int) {
	if len(ids) == 0 {
		return
	}
	add := make([]int, len(ids))
	copy(add, ids)
	sort.Ints(add)

	merged := make([]int, 0, len(e.infected)+len(add))
	i, j := 0, 0
	for i < len(e.infected) && j < len(add) {
		if e.infected[i] < add[j] {
			merged = append(merged, e.infected[i])
			i++
		} else {
			merged = append(merged, add[j])
			j++
		}
	}
	merged = append(merged, e.infected[i:]...)
	merged = append(merged, add[j:]...)
	e.infected = merged
}

// record appends the current infected set to the history.
func (e *Engine) record() {
	ids := make([]int, len(e.infected))
	copy(ids, e.infected)
	e.history = append(e.history, Snapshot{
		TimeStep:        e.timeStep,
		InfectedCount:   len(ids),
		InfectedNodeIDs: ids,
	})
}

func (e *Engine) notify(cause Cause, ids []int) {
	if len(ids) > 0 {
		e.observer(cause, e.timeStep, ids)
	}
}
