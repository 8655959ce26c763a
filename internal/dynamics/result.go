package dynamics

import "github.com/mindloop/neuron/internal/graph"

// NodeActivation is an (id, activation) pair for trace output.
type NodeActivation struct {
	ID         string
	Activation float64
}

// StepRecord captures the top firing nodes at the end of one step.
// It is observability output only; nothing in the engine reads it back.
type StepRecord struct {
	Step      int
	TopFiring []NodeActivation
}

// EdgeContribution describes how much total activation an edge pushed
// over a run, used for post-hoc explanation ranking.
type EdgeContribution struct {
	Source       string
	Target       string
	Type         graph.EdgeType
	Contribution float64
}

// Result is the read-only outcome of a simulation run.
type Result struct {
	Steps            []StepRecord
	FinalActivations map[string]float64
	TopEdges         []EdgeContribution
}
