package goals

import (
	"testing"

	"github.com/mindloop/neuron/internal/graph"
)

func addGoal(t *testing.T, g *graph.Graph, id string, activation float64) {
	t.Helper()
	n, err := graph.NewNode(id, graph.CategoryGoal, id, 0, 0.05, 0.3)
	if err != nil {
		t.Fatalf("NewNode(%s) error = %v", id, err)
	}
	n.Activation = activation
	if err := g.AddNode(n); err != nil {
		t.Fatalf("AddNode(%s) error = %v", id, err)
	}
}

func TestSelect_HighestActivationWins(t *testing.T) {
	g := graph.New()
	addGoal(t, g, "goal_greet", 0.4)
	addGoal(t, g, "goal_inform", 0.7)
	addGoal(t, g, "goal_farewell", 0.1)

	result := Select(g)

	if result.SelectedGoal != "goal_inform" {
		t.Errorf("SelectedGoal = %q, want goal_inform", result.SelectedGoal)
	}
	if result.SelectedActivation != 0.7 {
		t.Errorf("SelectedActivation = %v, want 0.7", result.SelectedActivation)
	}
	if len(result.Candidates) != 3 {
		t.Fatalf("Candidates length = %d, want 3", len(result.Candidates))
	}
	wantOrder := []string{"goal_inform", "goal_greet", "goal_farewell"}
	for i, want := range wantOrder {
		if result.Candidates[i].ID != want {
			t.Errorf("Candidates[%d] = %q, want %q", i, result.Candidates[i].ID, want)
		}
	}
}

func TestSelect_BestEffortBelowThreshold(t *testing.T) {
	// All goals below firing threshold still produce a selection.
	g := graph.New()
	addGoal(t, g, "goal_a", 0.05)
	addGoal(t, g, "goal_b", 0.02)

	result := Select(g)

	if result.SelectedGoal != "goal_a" {
		t.Errorf("SelectedGoal = %q, want goal_a (best effort)", result.SelectedGoal)
	}
}

func TestSelect_TieBreaksByInsertionOrder(t *testing.T) {
	g := graph.New()
	addGoal(t, g, "goal_second", 0.5)
	addGoal(t, g, "goal_first", 0.5)

	result := Select(g)

	if result.SelectedGoal != "goal_second" {
		t.Errorf("SelectedGoal = %q, want goal_second (first inserted)", result.SelectedGoal)
	}
}

func TestSelect_NoGoalNodes(t *testing.T) {
	g := graph.New()
	n, _ := graph.NewNode("c1", graph.CategoryConcept, "c1", 0.5, 0.05, 0.3)
	g.AddNode(n)

	result := Select(g)

	if result.SelectedGoal != "" {
		t.Errorf("SelectedGoal = %q, want empty", result.SelectedGoal)
	}
	if len(result.Candidates) != 0 {
		t.Errorf("Candidates = %v, want empty", result.Candidates)
	}
}
