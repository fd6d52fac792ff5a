package epidemic

// NodeState is the infection status of one node.
type NodeState struct {
	Infected      bool `json:"infected"`
	InfectionTime int  `json:"infection_time"`
}

// Snapshot is one history entry, recorded after every state-changing
// operation. InfectedNodeIDs is ascending.
type Snapshot struct {
	TimeStep        int   `json:"time_step"`
	InfectedCount   int   `json:"infected_count"`
	InfectedNodeIDs []int `json:"infected_nodes"`
}

// StepResult reports the outcome of a single Step.
// NewlyInfected lists nodes in the order they were infected.
type StepResult struct {
	TimeStep       int   `json:"time_step"`
	NewlyInfected  []int `json:"newly_infected"`
	TotalInfected  int   `json:"total_infected"`
	IsOutbreakOver bool  `json:"is_outbreak_over"`
}

// Statistics summarises the current outbreak.
type Statistics struct {
	TimeStep             int        `json:"time_step"`
	TotalNodes           int        `json:"total_nodes"`
	InfectedCount        int        `json:"infected_count"`
	HealthyCount         int        `json:"healthy_count"`
	InfectionRate        float64    `json:"infection_rate"`
	InfectionProbability float64    `json:"infection_probability"`
	History              []Snapshot `json:"history"`
}
