package session

import (
	"errors"
	"time"

	"github.com/katalvlaran/episim/builder"
	"github.com/katalvlaran/episim/epidemic"
)

// Sentinel errors returned by Registry operations.
var (
	// ErrSessionNotFound indicates an unknown or deleted session id.
	ErrSessionNotFound = errors.New("session: not found")

	// ErrNoSimulation indicates an engine operation before Start.
	ErrNoSimulation = errors.New("session: no active simulation")

	// ErrTooManySessions indicates the registry is at capacity.
	ErrTooManySessions = errors.New("session: too many sessions")

	// ErrNetworkTooLarge indicates a node or edge count above the configured limit.
	ErrNetworkTooLarge = errors.New("session: network too large")
)

// InitRequest asks for a new network. Nil fields take registry defaults.
type InitRequest struct {
	Nodes      *int   `json:"n_nodes,omitempty"`
	Attachment *int   `json:"m_edges,omitempty"`
	Seed       *int64 `json:"seed,omitempty"`
}

// NetworkStats is the size summary returned on initialization.
type NetworkStats struct {
	TotalNodes int `json:"total_nodes"`
	TotalEdges int `json:"total_edges"`
}

// InitResult is returned by Initialize.
type InitResult struct {
	SessionID string            `json:"session_id"`
	Graph     builder.GraphView `json:"graph"`
	Stats     NetworkStats      `json:"stats"`
}

// StartRequest configures a new outbreak. Nil fields take registry defaults;
// a non-empty InitialNodes overrides NumInitial.
type StartRequest struct {
	InfectionProbability *float64 `json:"infection_probability,omitempty"`
	NumInitial           *int     `json:"num_initial,omitempty"`
	InitialNodes         []int    `json:"initial_nodes,omitempty"`
}

// State is the full observable state of a running simulation.
type State struct {
	InfectionState map[int]epidemic.NodeState `json:"infection_state"`
	Statistics     epidemic.Statistics        `json:"statistics"`
}

// StepOutcome is returned by Step.
type StepOutcome struct {
	StepResult epidemic.StepResult `json:"step_result"`
	State
}

// InfectOutcome is returned by Infect.
type InfectOutcome struct {
	Infected bool `json:"infected"`
	State
}

// RunOutcome is returned by Run.
type RunOutcome struct {
	Steps []epidemic.StepResult `json:"steps"`
	State
}

// DegreeReport describes the topology of a session's network.
type DegreeReport struct {
	Summary    builder.DegreeSummary `json:"summary"`
	Histogram  map[int]int           `json:"histogram"`
	Components int                   `json:"components"`
	// HopsToSaturation is the BFS depth of the farthest node from the
	// infected set, i.e. the steps a p=1 outbreak still needs. -1 when
	// nothing is infected.
	HopsToSaturation int `json:"hops_to_saturation"`
}

// Summary is one row of List.
type Summary struct {
	ID         string    `json:"id"`
	CreatedAt  time.Time `json:"created_at"`
	Nodes      int       `json:"nodes"`
	Edges      int       `json:"edges"`
	Attachment int       `json:"attachment"`
	Active     bool      `json:"active"`
	TimeStep   int       `json:"time_step"`
	Infected   int       `json:"infected"`
}
