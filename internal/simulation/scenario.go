package simulation

import (
	"github.com/mindloop/neuron/internal/dynamics"
	"github.com/mindloop/neuron/internal/engine"
	"github.com/mindloop/neuron/internal/graph"
	"github.com/mindloop/neuron/internal/lexicon"
	"github.com/mindloop/neuron/internal/trace"
)

// Scenario defines a complete conversation experiment.
type Scenario struct {
	Name    string
	Nodes   []NodeSpec
	Edges   []EdgeSpec
	Words   []WordSpec
	Phrases []WordSpec
	Inputs  []string

	// Dynamics overrides the default simulation parameters.
	Dynamics *dynamics.Config

	// Modulators sets the starting modulator levels. Nil means defaults.
	Modulators dynamics.Modulators

	// Seed drives the generator tie-break. 0 is replaced with 1 so
	// scenario runs are always reproducible.
	Seed int64

	// MaxWords caps utterance length. <= 0 means the generator default.
	MaxWords int

	// Persist backs episodic memory with a SQLite database instead of
	// the in-memory store.
	Persist bool

	// BeforeTurn, when non-nil, is called before each turn executes.
	// Use this to manipulate the session between turns (e.g., re-seeding
	// or adjusting modulators).
	BeforeTurn func(turnIndex int, s *engine.Session)
}

// NodeSpec is a flat builder for constructing graph nodes in tests.
type NodeSpec struct {
	ID        string
	Category  graph.Category
	Label     string
	Baseline  float64
	Decay     float64
	Threshold float64
}

// ToNode converts a NodeSpec to a graph.Node, applying defaults: an
// empty label falls back to the id, a zero threshold to 0.3 and a zero
// decay to 0.02.
func (s NodeSpec) ToNode() (*graph.Node, error) {
	label := s.Label
	if label == "" {
		label = s.ID
	}
	threshold := s.Threshold
	if threshold == 0 {
		threshold = 0.3
	}
	decay := s.Decay
	if decay == 0 {
		decay = 0.02
	}
	return graph.NewNode(s.ID, s.Category, label, s.Baseline, decay, threshold)
}

// EdgeSpec defines a pre-seeded edge in the graph.
type EdgeSpec struct {
	Source string
	Target string
	Type   graph.EdgeType
	Weight float64
}

// ToEdge converts an EdgeSpec to a graph.Edge, defaulting the type to
// excitatory.
func (e EdgeSpec) ToEdge() (*graph.Edge, error) {
	kind := e.Type
	if kind == "" {
		kind = graph.EdgeExcitatory
	}
	return graph.NewEdge(e.Source, e.Target, kind, e.Weight)
}

// WordSpec defines a lexicon entry. Used for both words and phrases.
type WordSpec struct {
	ID       string
	Text     string
	Concepts []string
	POS      string
}

// ToEntry converts a WordSpec to a lexicon.Entry, defaulting the POS to
// noun and the id to "w_" + text.
func (w WordSpec) ToEntry() *lexicon.Entry {
	id := w.ID
	if id == "" {
		id = "w_" + w.Text
	}
	pos := w.POS
	if pos == "" {
		pos = "noun"
	}
	return &lexicon.Entry{ID: id, Text: w.Text, ConceptIDs: w.Concepts, POS: pos}
}

// TurnOutcome captures the observable result of a single turn.
type TurnOutcome struct {
	Index    int
	Input    string
	Response string
	Goal     string
	Trace    *trace.Trace

	// FinalActivations snapshots every node's activation after the turn
	// settled.
	FinalActivations map[string]float64
}

// SimResult captures all turns and the live session for follow-up
// inspection.
type SimResult struct {
	Turns   []TurnOutcome
	Session *engine.Session
}
