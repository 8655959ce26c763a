package graph

import "fmt"

// EdgeType classifies how activation propagates along an edge.
type EdgeType string

const (
	EdgeExcitatory  EdgeType = "excitatory"
	EdgeInhibitory  EdgeType = "inhibitory"
	EdgeAssociative EdgeType = "associative"
	EdgeCausal      EdgeType = "causal"
)

// EdgeTypes lists all valid edge types.
var EdgeTypes = []EdgeType{EdgeExcitatory, EdgeInhibitory, EdgeAssociative, EdgeCausal}

// Valid reports whether t is one of the known edge types.
func (t EdgeType) Valid() bool {
	for _, known := range EdgeTypes {
		if t == known {
			return true
		}
	}
	return false
}

// Edge is a directed, typed connection between two nodes. Parallel edges
// of different types between the same pair are legal. Contribution
// accumulates the absolute spread magnitude pushed through the edge over
// a simulation run; everything else is immutable after construction.
type Edge struct {
	Source       string
	Target       string
	Type         EdgeType
	Weight       float64 // [-1, 1]
	Contribution float64
}

// NewEdge constructs an edge, validating the type and weight range.
// Endpoint existence is checked at insertion time by Graph.AddEdge.
func NewEdge(source, target string, edgeType EdgeType, weight float64) (*Edge, error) {
	if !edgeType.Valid() {
		return nil, fmt.Errorf("invalid edge type %q, must be one of %v", edgeType, EdgeTypes)
	}
	if weight < -1 || weight > 1 {
		return nil, fmt.Errorf("edge weight %v out of range [-1, 1]", weight)
	}
	return &Edge{
		Source: source,
		Target: target,
		Type:   edgeType,
		Weight: weight,
	}, nil
}

func (e *Edge) String() string {
	return fmt.Sprintf("Edge(%s->%s, %s, w=%.3f)", e.Source, e.Target, e.Type, e.Weight)
}
