// Package session keeps simulation sessions for the HTTP API. Each session
// owns one generated network and at most one infection engine; every action
// on a session runs under that session's mutex.
package session

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/tidwall/btree"
	"go.uber.org/zap"

	"github.com/katalvlaran/episim/builder"
	"github.com/katalvlaran/episim/core"
	"github.com/katalvlaran/episim/epidemic"
	"github.com/katalvlaran/episim/internal/config"
	"github.com/katalvlaran/episim/internal/metrics"
)

// Session is one network plus its optional engine.
type Session struct {
	id        string
	createdAt time.Time

	mu         sync.Mutex
	graph      *core.Graph
	attachment int
	engine     *epidemic.Engine
	seed       int64
	seeded     bool
	starts     int64
}

// orderKey sorts sessions by creation time, then id.
type orderKey struct {
	created time.Time
	id      string
}

func orderLess(a, b orderKey) bool {
	if !a.created.Equal(b.created) {
		return a.created.Before(b.created)
	}

	return a.id < b.id
}

// Registry holds live sessions keyed by uuid.
type Registry struct {
	mu    sync.RWMutex
	byID  map[string]*Session
	order *btree.BTreeG[orderKey]

	network    config.NetworkConfig
	simulation config.SimulationConfig
	maxSession int
	logger     *zap.Logger
	now        func() time.Time
}

// NewRegistry builds an empty registry. Defaults and limits come from cfg;
// a nil logger is replaced by a no-op one.
func NewRegistry(cfg *config.Config, logger *zap.Logger) *Registry {
	if logger == nil {
		logger = zap.NewNop()
	}

	return &Registry{
		byID:       make(map[string]*Session),
		order:      btree.NewBTreeG[orderKey](orderLess),
		network:    cfg.Network,
		simulation: cfg.Simulation,
		maxSession: cfg.Server.MaxSessions,
		logger:     logger.Named("session"),
		now:        time.Now,
	}
}

// Initialize generates a network and registers a new session for it.
func (r *Registry) Initialize(ctx context.Context, req InitRequest) (*InitResult, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	n, m := r.network.Nodes, r.network.Attachment
	if req.Nodes != nil {
		n = *req.Nodes
	}
	if req.Attachment != nil {
		m = *req.Attachment
	}
	if n > r.network.MaxNodes {
		return nil, fmt.Errorf("Initialize: n=%d > max=%d: %w", n, r.network.MaxNodes, ErrNetworkTooLarge)
	}
	// Out-of-range (n, m) count as 0 edges and fail in the generator.
	if e := builder.ExpectedEdges(n, m); e > r.network.MaxEdges {
		return nil, fmt.Errorf("Initialize: n=%d m=%d gives %d edges > max=%d: %w",
			n, m, e, r.network.MaxEdges, ErrNetworkTooLarge)
	}

	s := &Session{id: uuid.New().String(), attachment: m}
	switch {
	case req.Seed != nil:
		s.seed, s.seeded = *req.Seed, true
	case r.simulation.Seed != 0:
		s.seed, s.seeded = r.simulation.Seed, true
	}

	// Reserve capacity before the potentially slow generation.
	r.mu.Lock()
	if len(r.byID) >= r.maxSession {
		r.mu.Unlock()
		return nil, fmt.Errorf("Initialize: limit %d: %w", r.maxSession, ErrTooManySessions)
	}
	s.createdAt = r.now()
	r.byID[s.id] = s
	r.order.Set(orderKey{created: s.createdAt, id: s.id})
	r.mu.Unlock()

	var opts []builder.BuilderOption
	if s.seeded {
		opts = append(opts, builder.WithSeed(s.seed))
	}
	g, err := builder.Generate(n, m, opts...)
	if err != nil {
		r.remove(s)
		return nil, fmt.Errorf("Initialize: %w", err)
	}

	s.mu.Lock()
	s.graph = g
	view := builder.ToViews(g)
	s.mu.Unlock()

	metrics.GraphNodes.Observe(float64(n))
	r.updateGauge()
	r.logger.Info("network initialized",
		zap.String("session", s.id),
		zap.Int("nodes", n),
		zap.Int("attachment", m),
		zap.Int("edges", g.EdgeCount()),
		zap.Bool("seeded", s.seeded),
	)

	return &InitResult{
		SessionID: s.id,
		Graph:     view,
		Stats:     NetworkStats{TotalNodes: n, TotalEdges: g.EdgeCount()},
	}, nil
}

// Start replaces the session's engine with a fresh one and seeds it.
// Infection attributes left by a previous engine are cleared first.
func (r *Registry) Start(id string, req StartRequest) (*State, error) {
	s, err := r.get(id)
	if err != nil {
		return nil, err
	}

	p := r.simulation.InfectionProbability
	if req.InfectionProbability != nil {
		p = *req.InfectionProbability
	}
	numInitial := r.simulation.InitialInfected
	if req.NumInitial != nil {
		numInitial = *req.NumInitial
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.graph == nil {
		return nil, fmt.Errorf("Start %s: %w", id, ErrSessionNotFound)
	}

	opts := []epidemic.Option{epidemic.WithObserver(r.observer(id))}
	if s.seeded {
		opts = append(opts, epidemic.WithSeed(s.seed+s.starts+1))
	}
	eng, err := epidemic.New(s.graph, p, opts...)
	if err != nil {
		return nil, fmt.Errorf("Start %s: %w", id, err)
	}

	eng.Reset()
	s.engine = eng
	s.starts++
	seeded := eng.Seed(numInitial, req.InitialNodes...)

	r.logger.Info("simulation started",
		zap.String("session", id),
		zap.Float64("probability", p),
		zap.Int("seeded", len(seeded)),
	)

	st := stateOf(eng)

	return &st, nil
}

// Step advances the session's outbreak by one generation.
func (r *Registry) Step(id string) (*StepOutcome, error) {
	var out StepOutcome
	err := r.withEngine(id, func(eng *epidemic.Engine) error {
		out.StepResult = eng.Step()
		out.State = stateOf(eng)
		metrics.StepsTotal.Inc()

		return nil
	})
	if err != nil {
		return nil, err
	}

	r.logger.Debug("step",
		zap.String("session", id),
		zap.Int("step", out.StepResult.TimeStep),
		zap.Int("newly_infected", len(out.StepResult.NewlyInfected)),
		zap.Int("total_infected", out.StepResult.TotalInfected),
	)

	return &out, nil
}

// Run steps the outbreak until it is over or maxSteps is reached.
// maxSteps ≤ 0 uses the configured simulation.max_steps (0 there means
// until over).
func (r *Registry) Run(ctx context.Context, id string, maxSteps int) (*RunOutcome, error) {
	if maxSteps <= 0 {
		maxSteps = r.simulation.MaxSteps
	}

	var out RunOutcome
	err := r.withEngine(id, func(eng *epidemic.Engine) error {
		steps, err := epidemic.Run(ctx, eng, maxSteps, func(epidemic.StepResult) error {
			metrics.StepsTotal.Inc()
			return nil
		})
		out.Steps = steps
		out.State = stateOf(eng)

		return err
	})
	if err != nil {
		return nil, err
	}

	r.logger.Info("run finished",
		zap.String("session", id),
		zap.Int("steps", len(out.Steps)),
		zap.Int("total_infected", out.Statistics.InfectedCount),
	)

	return &out, nil
}

// Infect manually infects one node. Unknown or already-infected ids yield
// Infected == false without an error.
func (r *Registry) Infect(id string, node int) (*InfectOutcome, error) {
	var out InfectOutcome
	err := r.withEngine(id, func(eng *epidemic.Engine) error {
		out.Infected = eng.ManualInfect(node)
		out.State = stateOf(eng)

		return nil
	})
	if err != nil {
		return nil, err
	}

	return &out, nil
}

// Reset returns the session's outbreak to its zero state. A session that
// was never started is left as is.
func (r *Registry) Reset(id string) error {
	s, err := r.get(id)
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.engine != nil {
		s.engine.Reset()
	}
	r.logger.Info("simulation reset", zap.String("session", id))

	return nil
}

// State reports the current infection state and statistics.
func (r *Registry) State(id string) (*State, error) {
	var out State
	err := r.withEngine(id, func(eng *epidemic.Engine) error {
		out = stateOf(eng)
		return nil
	})
	if err != nil {
		return nil, err
	}

	return &out, nil
}

// Delete drops a session and its network.
func (r *Registry) Delete(id string) error {
	s, err := r.get(id)
	if err != nil {
		return err
	}
	r.remove(s)
	r.updateGauge()
	r.logger.Info("session deleted", zap.String("session", id))

	return nil
}

// List returns every session, oldest first.
func (r *Registry) List() []Summary {
	r.mu.RLock()
	sessions := make([]*Session, 0, len(r.byID))
	r.order.Scan(func(k orderKey) bool {
		if s, ok := r.byID[k.id]; ok {
			sessions = append(sessions, s)
		}
		return true
	})
	r.mu.RUnlock()

	out := make([]Summary, 0, len(sessions))
	for _, s := range sessions {
		s.mu.Lock()
		if s.graph == nil {
			s.mu.Unlock()
			continue
		}
		st := s.graph.Stats()
		sum := Summary{
			ID:         s.id,
			CreatedAt:  s.createdAt,
			Nodes:      st.NodeCount,
			Edges:      st.EdgeCount,
			Attachment: s.attachment,
			Active:     s.engine != nil,
			Infected:   st.InfectedCount,
		}
		if s.engine != nil {
			sum.TimeStep = s.engine.TimeStep()
		}
		s.mu.Unlock()
		out = append(out, sum)
	}

	return out
}

// Len returns the number of sessions, including ones still generating.
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return len(r.byID)
}

// withEngine runs fn under the session lock with its active engine.
func (r *Registry) withEngine(id string, fn func(*epidemic.Engine) error) error {
	s, err := r.get(id)
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.engine == nil {
		return fmt.Errorf("session %s: %w", id, ErrNoSimulation)
	}

	return fn(s.engine)
}

func (r *Registry) get(id string) (*Session, error) {
	r.mu.RLock()
	s, ok := r.byID[id]
	r.mu.RUnlock()
	if !ok {
		return nil, fmt.Errorf("session %q: %w", id, ErrSessionNotFound)
	}

	return s, nil
}

func (r *Registry) remove(s *Session) {
	r.mu.Lock()
	delete(r.byID, s.id)
	r.order.Delete(orderKey{created: s.createdAt, id: s.id})
	r.mu.Unlock()
}

func (r *Registry) updateGauge() {
	metrics.SessionsActive.Set(float64(r.Len()))
}

// observer feeds infection events into metrics and debug logs.
func (r *Registry) observer(id string) epidemic.Observer {
	return func(cause epidemic.Cause, step int, ids []int) {
		metrics.RecordInfections(string(cause), len(ids))
		r.logger.Debug("infections",
			zap.String("session", id),
			zap.String("cause", string(cause)),
			zap.Int("step", step),
			zap.Int("count", len(ids)),
		)
	}
}

func stateOf(eng *epidemic.Engine) State {
	return State{
		InfectionState: eng.InfectionState(),
		Statistics:     eng.Statistics(),
	}
}
