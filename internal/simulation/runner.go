package simulation

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"
	"testing"

	"github.com/mindloop/neuron/internal/dynamics"
	"github.com/mindloop/neuron/internal/engine"
	"github.com/mindloop/neuron/internal/graph"
	"github.com/mindloop/neuron/internal/lexicon"
	"github.com/mindloop/neuron/internal/memory"
)

// Runner orchestrates multi-turn conversation experiments against a real
// session and engine.
type Runner struct {
	t *testing.T
}

// NewRunner creates a simulation runner.
func NewRunner(t *testing.T) *Runner {
	t.Helper()
	return &Runner{t: t}
}

// Run executes the scenario and returns the collected per-turn outcomes.
func (r *Runner) Run(scenario Scenario) SimResult {
	r.t.Helper()
	ctx := context.Background()

	g := r.buildGraph(scenario)
	lex := r.buildLexicon(scenario)
	mem := r.buildMemory(ctx, scenario)

	seed := scenario.Seed
	if seed == 0 {
		seed = 1
	}
	opts := engine.Options{
		Modulators: scenario.Modulators,
		MaxWords:   scenario.MaxWords,
		Seed:       seed,
	}
	if scenario.Dynamics != nil {
		opts.Dynamics = *scenario.Dynamics
	}
	session := engine.New(g, lex, mem, opts)

	turns := make([]TurnOutcome, len(scenario.Inputs))
	for i, input := range scenario.Inputs {
		if scenario.BeforeTurn != nil {
			scenario.BeforeTurn(i, session)
		}
		result, err := session.ProcessTurn(ctx, input)
		if err != nil {
			r.t.Fatalf("scenario %s: turn %d: ProcessTurn: %v", scenario.Name, i, err)
		}
		turns[i] = TurnOutcome{
			Index:            i,
			Input:            input,
			Response:         result.Response,
			Goal:             result.Goal,
			Trace:            result.Trace,
			FinalActivations: snapshotActivations(g),
		}
	}

	return SimResult{Turns: turns, Session: session}
}

// buildGraph constructs the scenario's brain graph in spec order. Node
// order matters: it drives competition and tie-break determinism.
func (r *Runner) buildGraph(scenario Scenario) *graph.Graph {
	r.t.Helper()

	g := graph.New()
	for _, ns := range scenario.Nodes {
		node, err := ns.ToNode()
		if err != nil {
			r.t.Fatalf("scenario %s: NodeSpec(%s): %v", scenario.Name, ns.ID, err)
		}
		if err := g.AddNode(node); err != nil {
			r.t.Fatalf("scenario %s: AddNode(%s): %v", scenario.Name, ns.ID, err)
		}
	}
	for _, es := range scenario.Edges {
		edge, err := es.ToEdge()
		if err != nil {
			r.t.Fatalf("scenario %s: EdgeSpec(%s->%s): %v", scenario.Name, es.Source, es.Target, err)
		}
		if err := g.AddEdge(edge); err != nil {
			r.t.Fatalf("scenario %s: AddEdge(%s->%s): %v", scenario.Name, es.Source, es.Target, err)
		}
	}
	return g
}

// buildLexicon constructs the scenario's vocabulary.
func (r *Runner) buildLexicon(scenario Scenario) *lexicon.Lexicon {
	r.t.Helper()

	lex := lexicon.New()
	for _, ws := range scenario.Words {
		lex.AddWord(ws.ToEntry())
	}
	for _, ps := range scenario.Phrases {
		lex.AddPhrase(ps.ToEntry())
	}
	return lex
}

// buildMemory constructs the episodic memory, SQLite-backed when the
// scenario asks for persistence.
func (r *Runner) buildMemory(ctx context.Context, scenario Scenario) *memory.Memory {
	r.t.Helper()

	var store memory.Store
	if scenario.Persist {
		path := filepath.Join(r.t.TempDir(), "episodes.db")
		s, err := memory.NewSQLiteStore(path)
		if err != nil {
			r.t.Fatalf("scenario %s: NewSQLiteStore: %v", scenario.Name, err)
		}
		r.t.Cleanup(func() { s.Close() })
		store = s
	} else {
		store = memory.NewInMemoryStore()
	}

	mem, err := memory.New(ctx, store, memory.Options{})
	if err != nil {
		r.t.Fatalf("scenario %s: memory.New: %v", scenario.Name, err)
	}
	return mem
}

func snapshotActivations(g *graph.Graph) map[string]float64 {
	out := make(map[string]float64, g.NodeCount())
	for _, n := range g.Nodes() {
		out[n.ID] = n.Activation
	}
	return out
}

// Defaults shared by scenario builders in this package's tests.
func defaultDynamics() *dynamics.Config {
	cfg := dynamics.DefaultConfig()
	return &cfg
}

// FormatTurnDebug returns a debug string for a turn outcome.
func FormatTurnDebug(to TurnOutcome) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Turn %d: input=%q response=%q goal=%s\n", to.Index, to.Input, to.Response, to.Goal)
	for id, act := range to.FinalActivations {
		if act > 0 {
			fmt.Fprintf(&b, "  %s: activation=%.4f\n", id, act)
		}
	}
	return b.String()
}
