// File: engine_test.go
// Package epidemic_test verifies the SI engine: seeding, the generational
// transmission rule, manual infection, reset, statistics and determinism.
package epidemic_test

import (
	"math"
	"math/rand"
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/episim/bfs"
	"github.com/katalvlaran/episim/builder"
	"github.com/katalvlaran/episim/core"
	"github.com/katalvlaran/episim/epidemic"
)

// baNetwork returns a seeded n-node BA network with m=3.
func baNetwork(t testing.TB, n int) *core.Graph {
	t.Helper()
	g, err := builder.Generate(n, 3, builder.WithSeed(1234))
	require.NoError(t, err)

	return g
}

// star returns center 0 linked to leaves 1..k.
func star(t *testing.T, k int) *core.Graph {
	t.Helper()
	g := core.NewGraph()
	g.AddNodes(k + 1)
	for i := 1; i <= k; i++ {
		require.NoError(t, g.AddEdge(0, i))
	}

	return g
}

// chain returns 0-1-...-(n-1).
func chain(t *testing.T, n int) *core.Graph {
	t.Helper()
	g := core.NewGraph()
	g.AddNodes(n)
	for i := 0; i+1 < n; i++ {
		require.NoError(t, g.AddEdge(i, i+1))
	}

	return g
}

func newEngine(t *testing.T, g *core.Graph, p float64, opts ...epidemic.Option) *epidemic.Engine {
	t.Helper()
	e, err := epidemic.New(g, p, append([]epidemic.Option{epidemic.WithSeed(99)}, opts...)...)
	require.NoError(t, err)

	return e
}

// countingSource counts Int63 calls; rand.Float64 consumes exactly one.
type countingSource struct {
	src   rand.Source
	calls int
}

func (c *countingSource) Int63() int64    { c.calls++; return c.src.Int63() }
func (c *countingSource) Seed(seed int64) { c.src.Seed(seed) }

func TestNew_Errors(t *testing.T) {
	t.Parallel()

	_, err := epidemic.New(nil, 0.5)
	require.ErrorIs(t, err, epidemic.ErrGraphNil)

	g := chain(t, 3)
	for _, p := range []float64{-0.01, 1.0001, math.NaN(), math.Inf(1)} {
		_, err := epidemic.New(g, p)
		require.ErrorIs(t, err, epidemic.ErrInvalidProbability, "p=%v", p)
	}
	for _, p := range []float64{0, 0.3, 1} {
		e, err := epidemic.New(g, p)
		require.NoError(t, err)
		assert.Equal(t, p, e.Probability())
		assert.Same(t, g, e.Graph())
		assert.Zero(t, e.TimeStep())
		assert.Empty(t, e.History())
	}

	assert.Panics(t, func() { epidemic.WithRand(nil) })
	assert.Panics(t, func() { epidemic.WithObserver(nil) })
}

func TestSeed_Random(t *testing.T) {
	t.Parallel()

	g := baNetwork(t, 100)
	e := newEngine(t, g, 0.3)

	changed := e.Seed(5)
	require.Len(t, changed, 5)
	assert.True(t, sort.IntsAreSorted(changed))
	assert.Equal(t, 5, e.TotalInfected())

	for id, st := range e.InfectionState() {
		if st.Infected {
			assert.Contains(t, changed, id)
			assert.Equal(t, 0, st.InfectionTime)
		} else {
			assert.Equal(t, core.NeverInfected, st.InfectionTime)
		}
	}

	h := e.History()
	require.Len(t, h, 1)
	assert.Equal(t, epidemic.Snapshot{TimeStep: 0, InfectedCount: 5, InfectedNodeIDs: changed}, h[0])
}

func TestSeed_Explicit(t *testing.T) {
	t.Parallel()

	g := baNetwork(t, 100)
	e := newEngine(t, g, 0.3)

	changed := e.Seed(0, 3, 3, 999, -1)
	assert.Equal(t, []int{3}, changed)
	assert.Equal(t, 1, e.TotalInfected())
	assert.True(t, g.IsInfected(3))

	// numInitial is ignored when ids are given.
	changed = e.Seed(50, 7)
	assert.Equal(t, []int{7}, changed)
	assert.Equal(t, 2, e.TotalInfected())
	assert.Len(t, e.History(), 2)
}

func TestSeed_Bounds(t *testing.T) {
	t.Parallel()

	e := newEngine(t, chain(t, 10), 0.3)
	assert.Empty(t, e.Seed(-3))
	assert.Zero(t, e.TotalInfected())
	require.Len(t, e.History(), 1, "seed records even when nothing changed")

	assert.Len(t, e.Seed(500), 10)
	assert.Equal(t, 10, e.TotalInfected())
	assert.Empty(t, e.Seed(3), "already-infected draws are not restamped")
}

func TestSeed_StampsCurrentStep(t *testing.T) {
	t.Parallel()

	g := chain(t, 3)
	e := newEngine(t, g, 0)
	e.Seed(0, 0)
	e.Step()
	e.Step()

	assert.Equal(t, []int{1}, e.Seed(0, 0, 1))
	st := e.InfectionState()
	assert.Equal(t, epidemic.NodeState{Infected: true, InfectionTime: 0}, st[0], "no restamp")
	assert.Equal(t, epidemic.NodeState{Infected: true, InfectionTime: 2}, st[1])
}

func TestStep_NothingInfected(t *testing.T) {
	t.Parallel()

	e := newEngine(t, chain(t, 4), 1)
	res := e.Step()

	assert.Equal(t, 1, res.TimeStep)
	assert.NotNil(t, res.NewlyInfected)
	assert.Empty(t, res.NewlyInfected)
	assert.Zero(t, res.TotalInfected)
	assert.True(t, res.IsOutbreakOver)
	assert.Len(t, e.History(), 1)
}

func TestStep_CertainTransmissionReachesNeighbors(t *testing.T) {
	t.Parallel()

	g := baNetwork(t, 200)
	e := newEngine(t, g, 1)

	const seed = 17
	e.Seed(0, seed)
	res := e.Step()

	nbrs, err := g.NeighborIDs(seed)
	require.NoError(t, err)
	assert.ElementsMatch(t, nbrs, res.NewlyInfected)
	assert.Equal(t, nbrs, res.NewlyInfected, "newly infected follow adjacency order")
	assert.Equal(t, len(nbrs)+1, res.TotalInfected)
	assert.False(t, res.IsOutbreakOver)

	want := append([]int{seed}, nbrs...)
	sort.Ints(want)
	assert.Equal(t, want, g.InfectedIDs())
	for _, v := range nbrs {
		assert.Equal(t, 1, e.InfectionState()[v].InfectionTime)
	}
}

func TestStep_InfectionTimeEqualsHopDistance(t *testing.T) {
	t.Parallel()

	g := baNetwork(t, 500)
	e := newEngine(t, g, 1)
	seeds := []int{4, 250, 499}
	e.Seed(0, seeds...)

	dist, err := bfs.BFS(g, seeds)
	require.NoError(t, err)

	for !e.Step().IsOutbreakOver {
	}

	assert.Equal(t, dist.MaxDepth()+1, e.TimeStep(), "one extra step detects the end")
	for id, st := range e.InfectionState() {
		require.True(t, st.Infected, "node %d", id)
		assert.Equal(t, dist.Depth[id], st.InfectionTime, "node %d", id)
	}
}

func TestStep_NewInfectionsWaitOneGeneration(t *testing.T) {
	t.Parallel()

	e := newEngine(t, chain(t, 5), 1)
	e.Seed(0, 0)
	for step := 1; step <= 4; step++ {
		res := e.Step()
		assert.Equal(t, []int{step}, res.NewlyInfected, "step %d", step)
	}
	assert.True(t, e.Step().IsOutbreakOver)
}

func TestStep_ZeroProbability(t *testing.T) {
	t.Parallel()

	g := baNetwork(t, 100)
	e := newEngine(t, g, 0)
	e.Seed(10)
	before := e.InfectionState()

	for i := 0; i < 5; i++ {
		res := e.Step()
		assert.Empty(t, res.NewlyInfected)
		assert.True(t, res.IsOutbreakOver)
		assert.Equal(t, 10, res.TotalInfected)
	}
	assert.Equal(t, before, e.InfectionState())
	assert.Equal(t, 5, e.TimeStep())
}

func TestStep_OneDrawPerHealthyNeighbor(t *testing.T) {
	t.Parallel()

	src := &countingSource{src: rand.NewSource(5)}
	g := star(t, 6)
	e, err := epidemic.New(g, 0.5, epidemic.WithRand(rand.New(src)))
	require.NoError(t, err)

	e.Seed(0, 0, 3)
	src.calls = 0
	e.Step()
	// Center: five healthy leaves. Leaf 3: its only neighbor is infected.
	assert.Equal(t, 5, src.calls)
}

func TestStep_MonotoneSpread(t *testing.T) {
	t.Parallel()

	g := baNetwork(t, 300)
	e := newEngine(t, g, 0.15)
	e.Seed(3)

	prev := e.InfectionState()
	prevTotal := e.TotalInfected()
	for i := 0; i < 40; i++ {
		res := e.Step()
		require.GreaterOrEqual(t, res.TotalInfected, prevTotal)
		assert.Equal(t, prevTotal+len(res.NewlyInfected), res.TotalInfected)

		cur := e.InfectionState()
		for id, st := range prev {
			if st.Infected {
				assert.Equal(t, st, cur[id], "infected node %d changed", id)
			}
		}
		for _, id := range res.NewlyInfected {
			assert.False(t, prev[id].Infected)
			assert.Equal(t, res.TimeStep, cur[id].InfectionTime)
		}
		prev, prevTotal = cur, res.TotalInfected
	}
}

func TestStep_HistoryMatchesGraph(t *testing.T) {
	t.Parallel()

	g := baNetwork(t, 400)
	e := newEngine(t, g, 0.2)
	e.Seed(0, 7, 3, 250)
	for i := 0; i < 15; i++ {
		e.Step()
		if i == 5 {
			e.ManualInfect(399)
		}
	}

	for _, s := range e.History() {
		assert.True(t, sort.IntsAreSorted(s.InfectedNodeIDs), "step %d", s.TimeStep)
		assert.Len(t, s.InfectedNodeIDs, s.InfectedCount)
	}
	last := e.History()[len(e.History())-1]
	assert.Equal(t, g.InfectedIDs(), last.InfectedNodeIDs)
	assert.Equal(t, len(last.InfectedNodeIDs), e.TotalInfected())
}

func TestStep_PreInfectedNodesSpread(t *testing.T) {
	t.Parallel()

	g := chain(t, 5)
	_, err := g.Infect(2, 0)
	require.NoError(t, err)
	e := newEngine(t, g, 1)
	require.Equal(t, 1, e.TotalInfected())

	res := e.Step()
	assert.ElementsMatch(t, []int{1, 3}, res.NewlyInfected)
	assert.Equal(t, []int{1, 2, 3}, e.History()[0].InfectedNodeIDs)
}

func TestManualInfect(t *testing.T) {
	t.Parallel()

	g := chain(t, 4)
	e := newEngine(t, g, 0)

	assert.False(t, e.ManualInfect(42))
	assert.False(t, e.ManualInfect(-1))
	assert.Empty(t, e.History(), "failed manual infect records nothing")

	e.Step()
	e.Step()
	require.True(t, e.ManualInfect(2))
	assert.Equal(t, epidemic.NodeState{Infected: true, InfectionTime: 2}, e.InfectionState()[2])
	h := e.History()
	require.Len(t, h, 3)
	assert.Equal(t, []int{2}, h[2].InfectedNodeIDs)

	assert.False(t, e.ManualInfect(2))
	assert.Len(t, e.History(), 3)
}

func TestReset(t *testing.T) {
	t.Parallel()

	g := baNetwork(t, 100)
	edges := g.EdgeCount()
	e := newEngine(t, g, 0.5)
	e.Seed(5)
	e.Step()
	e.Step()
	e.ManualInfect(0)

	e.Reset()
	assert.Zero(t, e.TimeStep())
	assert.Empty(t, e.History())
	assert.Zero(t, e.TotalInfected())
	for _, st := range e.InfectionState() {
		assert.Equal(t, epidemic.NodeState{Infected: false, InfectionTime: core.NeverInfected}, st)
	}
	assert.Equal(t, edges, g.EdgeCount())

	// The engine is reusable after a reset.
	assert.Len(t, e.Seed(2), 2)
	assert.Len(t, e.History(), 1)
}

func TestInfectionState_Keys(t *testing.T) {
	t.Parallel()

	g := baNetwork(t, 64)
	e := newEngine(t, g, 0.3)
	e.Seed(4)
	st := e.InfectionState()
	require.Len(t, st, 64)
	for id := 0; id < 64; id++ {
		assert.Contains(t, st, id)
	}
}

func TestStatistics(t *testing.T) {
	t.Parallel()

	g := baNetwork(t, 120)
	e := newEngine(t, g, 0.25)
	e.Seed(6)
	for i := 0; i < 4; i++ {
		e.Step()
	}

	s := e.Statistics()
	assert.Equal(t, 4, s.TimeStep)
	assert.Equal(t, 120, s.TotalNodes)
	assert.Equal(t, e.TotalInfected(), s.InfectedCount)
	assert.Equal(t, 120-s.InfectedCount, s.HealthyCount)
	assert.InDelta(t, float64(s.InfectedCount)/120, s.InfectionRate, 1e-12)
	assert.Equal(t, 0.25, s.InfectionProbability)
	require.Len(t, s.History, 5)
	last := s.History[len(s.History)-1]
	assert.Equal(t, s.InfectedCount, last.InfectedCount)
	assert.Len(t, last.InfectedNodeIDs, s.InfectedCount)
	assert.Equal(t, g.InfectedIDs(), last.InfectedNodeIDs)

	// Queries never append.
	e.InfectionState()
	e.TotalInfected()
	e.Statistics()
	assert.Len(t, e.History(), 5)

	// Returned history is a copy.
	s.History[0].InfectedNodeIDs[0] = -7
	s.History = s.History[:1]
	assert.NotEqual(t, -7, e.History()[0].InfectedNodeIDs[0])
	assert.Len(t, e.History(), 5)

	empty := newEngine(t, core.NewGraph(), 0.5)
	assert.Zero(t, empty.Statistics().InfectionRate)
	assert.NotNil(t, empty.Statistics().History)
}

func TestDeterminism(t *testing.T) {
	t.Parallel()

	play := func() ([]epidemic.StepResult, []epidemic.Snapshot) {
		g, err := builder.Generate(400, 2, builder.WithSeed(8))
		require.NoError(t, err)
		e, err := epidemic.New(g, 0.2, epidemic.WithSeed(21))
		require.NoError(t, err)
		e.Seed(4)
		out := make([]epidemic.StepResult, 0, 25)
		for i := 0; i < 25; i++ {
			out = append(out, e.Step())
		}

		return out, e.History()
	}

	r1, h1 := play()
	r2, h2 := play()
	assert.Equal(t, r1, r2)
	assert.Equal(t, h1, h2)
}

func TestObserver(t *testing.T) {
	t.Parallel()

	type event struct {
		cause epidemic.Cause
		step  int
		ids   []int
	}
	var events []event
	obs := func(c epidemic.Cause, step int, ids []int) {
		events = append(events, event{c, step, append([]int(nil), ids...)})
	}

	e := newEngine(t, chain(t, 3), 1, epidemic.WithObserver(obs))
	e.Seed(0, 0)
	e.Step()
	e.ManualInfect(2)
	e.Step() // nothing new: no event
	e.ManualInfect(2)

	assert.Equal(t, []event{
		{epidemic.CauseSeed, 0, []int{0}},
		{epidemic.CauseTransmission, 1, []int{1}},
		{epidemic.CauseManual, 1, []int{2}},
	}, events)
}

func TestRebuild(t *testing.T) {
	t.Parallel()

	g := chain(t, 3)
	g.AddNode() // 3, isolated
	e := newEngine(t, g, 1)
	e.Seed(0, 0)

	require.NoError(t, g.AddEdge(0, 3))
	assert.Equal(t, []int{1}, e.Step().NewlyInfected, "snapshot predates the new edge")

	e.Rebuild()
	assert.Equal(t, []int{3, 2}, e.Step().NewlyInfected, "spreaders in ascending id order")
}
