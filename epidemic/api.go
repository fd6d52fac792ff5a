// File: api.go
// Role: Read-only queries over an Engine. None of these append history.

package epidemic

import "github.com/katalvlaran/episim/core"

// InfectionState returns the status of every node, keyed by node id.
//
// Complexity: O(V).
func (e *Engine) InfectionState() map[int]NodeState {
	nodes := e.g.Nodes()
	out := make(map[int]NodeState, len(nodes))
	for _, n := range nodes {
		out[n.ID] = NodeState{Infected: n.Infected, InfectionTime: n.InfectionTime}
	}

	return out
}

// TotalInfected returns the number of infected nodes.
func (e *Engine) TotalInfected() int {
	return len(e.infected)
}

// Statistics summarises the outbreak. History is a deep copy of the log.
func (e *Engine) Statistics() Statistics {
	total := e.g.NodeCount()
	infected := len(e.infected)

	rate := 0.0
	if total > 0 {
		rate = float64(infected) / float64(total)
	}

	return Statistics{
		TimeStep:             e.timeStep,
		TotalNodes:           total,
		InfectedCount:        infected,
		HealthyCount:         total - infected,
		InfectionRate:        rate,
		InfectionProbability: e.p,
		History:              e.History(),
	}
}

// History returns a deep copy of the snapshot log, oldest first.
func (e *Engine) History() []Snapshot {
	out := make([]Snapshot, len(e.history))
	for i, s := range e.history {
		ids := make([]int, len(s.InfectedNodeIDs))
		copy(ids, s.InfectedNodeIDs)
		out[i] = Snapshot{TimeStep: s.TimeStep, InfectedCount: s.InfectedCount, InfectedNodeIDs: ids}
	}

	return out
}

// TimeStep returns the current clock value.
func (e *Engine) TimeStep() int { return e.timeStep }

// Probability returns the transmission probability.
func (e *Engine) Probability() float64 { return e.p }

// Graph returns the graph the engine writes to.
func (e *Engine) Graph() *core.Graph { return e.g }
