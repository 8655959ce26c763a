package graph

import "fmt"

// Category classifies what role a node plays in the brain graph.
type Category string

const (
	CategoryConcept Category = "concept"
	CategoryTopic   Category = "topic"
	CategoryEmotion Category = "emotion"
	CategoryGoal    Category = "goal"
	CategoryMotor   Category = "motor"
	CategoryLexeme  Category = "lexeme"
)

// Categories lists all valid node categories in a fixed order. The
// competition pass in the dynamics engine iterates this slice, so the
// order is part of the deterministic behavior of a simulation run.
var Categories = []Category{
	CategoryConcept,
	CategoryTopic,
	CategoryEmotion,
	CategoryGoal,
	CategoryMotor,
	CategoryLexeme,
}

// Valid reports whether c is one of the known categories.
func (c Category) Valid() bool {
	for _, known := range Categories {
		if c == known {
			return true
		}
	}
	return false
}

// Node is a single unit in the brain graph. Activation is the only field
// mutated after construction; it is clamped to [0,1] at the end of every
// simulation step but may transiently leave that range mid-step.
type Node struct {
	ID         string
	Category   Category
	Label      string
	Activation float64
	Baseline   float64
	Decay      float64 // fraction of distance to baseline recovered per step, [0,1]
	Threshold  float64 // activation at or above which the node is firing

	// Metadata carries opaque key-value attachments. The simulation
	// never reads it; it exists for loaders and tooling.
	Metadata map[string]string
}

// NewNode constructs a node resting at its baseline activation.
func NewNode(id string, category Category, label string, baseline, decay, threshold float64) (*Node, error) {
	if !category.Valid() {
		return nil, fmt.Errorf("invalid node category %q, must be one of %v", category, Categories)
	}
	return &Node{
		ID:         id,
		Category:   category,
		Label:      label,
		Activation: baseline,
		Baseline:   baseline,
		Decay:      decay,
		Threshold:  threshold,
	}, nil
}

// Firing reports whether the node's activation has reached its threshold.
func (n *Node) Firing() bool {
	return n.Activation >= n.Threshold
}

// Reset restores the node to its baseline activation.
func (n *Node) Reset() {
	n.Activation = n.Baseline
}

// Clamp forces activation into [0,1].
func (n *Node) Clamp() {
	if n.Activation < 0 {
		n.Activation = 0
	} else if n.Activation > 1 {
		n.Activation = 1
	}
}

func (n *Node) String() string {
	return fmt.Sprintf("Node(%s, %s, act=%.3f)", n.ID, n.Category, n.Activation)
}
