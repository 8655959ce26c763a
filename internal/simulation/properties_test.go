package simulation

import (
	"testing"

	"github.com/mindloop/neuron/internal/dynamics"
	"github.com/mindloop/neuron/internal/graph"
)

// rivalScenario pits two same-category concepts against each other, one
// of them also suppressed by an inhibitory edge.
func rivalScenario(inputs []string, cfg *dynamics.Config) Scenario {
	return Scenario{
		Name: "rivals",
		Nodes: []NodeSpec{
			{ID: "c_calm", Category: graph.CategoryConcept, Decay: 0.01},
			{ID: "c_panic", Category: graph.CategoryConcept, Decay: 0.01},
			{ID: "e_fear", Category: graph.CategoryEmotion, Decay: 0.05},
			{ID: "goal_inform", Category: graph.CategoryGoal, Baseline: 0.1, Threshold: 0.25},
		},
		Edges: []EdgeSpec{
			{Source: "c_calm", Target: "c_panic", Type: graph.EdgeInhibitory, Weight: 0.7},
			{Source: "c_panic", Target: "e_fear", Weight: 0.6},
		},
		Words: []WordSpec{
			{Text: "calm", Concepts: []string{"c_calm"}, POS: "adj"},
			{Text: "panic", Concepts: []string{"c_panic"}},
		},
		Inputs:   inputs,
		Dynamics: cfg,
		Seed:     1,
	}
}

func TestInhibition_CalmSuppressesPanic(t *testing.T) {
	r := NewRunner(t)
	result := r.Run(rivalScenario([]string{"calm panic"}, defaultDynamics()))

	AssertActivationsBounded(t, result)
	AssertDominates(t, result, 0, "c_calm", "c_panic")
	// The downstream emotion never lights up once panic is held down.
	AssertNodeQuiet(t, result, 0, "e_fear", 0.3)
}

func TestInhibition_PanicAloneSpreadsFear(t *testing.T) {
	r := NewRunner(t)
	result := r.Run(rivalScenario([]string{"panic"}, defaultDynamics()))

	AssertNodeFires(t, result, 0, "c_panic", 0.3)
	AssertNodeFires(t, result, 0, "e_fear", 0.3)
}

func TestCompetition_DisabledKeepsBothHigh(t *testing.T) {
	// Without the inhibitory edge, the only pressure between two equally
	// injected concepts is same-category competition.
	base := Scenario{
		Name: "competition",
		Nodes: []NodeSpec{
			{ID: "c_a", Category: graph.CategoryConcept, Decay: 0.01},
			{ID: "c_b", Category: graph.CategoryConcept, Decay: 0.01},
			{ID: "goal_inform", Category: graph.CategoryGoal, Baseline: 0.1, Threshold: 0.25},
		},
		Words: []WordSpec{
			{Text: "alpha", Concepts: []string{"c_a"}},
			{Text: "beta", Concepts: []string{"c_b"}},
		},
		Inputs: []string{"alpha beta"},
		Seed:   1,
	}

	on := dynamics.DefaultConfig()
	off := dynamics.DefaultConfig()
	off.Competition = false

	base.Dynamics = &on
	withCompetition := NewRunner(t).Run(base)

	base.Dynamics = &off
	withoutCompetition := NewRunner(t).Run(base)

	// Insertion order breaks the tie, so c_b is the suppressed one.
	suppressed := withCompetition.Turns[0].FinalActivations["c_b"]
	free := withoutCompetition.Turns[0].FinalActivations["c_b"]
	if suppressed >= free {
		t.Errorf("competition had no effect: c_b %.4f (on) >= %.4f (off)", suppressed, free)
	}
}

func TestDecay_LongerSettlingLowersIsolatedNode(t *testing.T) {
	short := dynamics.DefaultConfig()
	short.Steps = 5
	long := dynamics.DefaultConfig()
	long.Steps = 40

	scenario := func(cfg *dynamics.Config) Scenario {
		return Scenario{
			Name: "decay",
			Nodes: []NodeSpec{
				{ID: "c_lonely", Category: graph.CategoryConcept, Decay: 0.05},
				{ID: "goal_inform", Category: graph.CategoryGoal, Baseline: 0.1, Threshold: 0.25},
			},
			Words:    []WordSpec{{Text: "lonely", Concepts: []string{"c_lonely"}}},
			Inputs:   []string{"lonely"},
			Dynamics: cfg,
			Seed:     1,
		}
	}

	after5 := NewRunner(t).Run(scenario(&short))
	after40 := NewRunner(t).Run(scenario(&long))

	a5 := after5.Turns[0].FinalActivations["c_lonely"]
	a40 := after40.Turns[0].FinalActivations["c_lonely"]
	if a40 >= a5 {
		t.Errorf("no decay over time: %.4f after 40 steps >= %.4f after 5", a40, a5)
	}
	if a40 < 0 {
		t.Errorf("decay undershot zero baseline: %.4f", a40)
	}
}

func TestModulators_CuriosityWidensAssociativeSpread(t *testing.T) {
	// Few steps, so neither run saturates the tangent topic at the clamp.
	cfg := dynamics.DefaultConfig()
	cfg.Steps = 3

	scenario := func(curiosity float64) Scenario {
		return Scenario{
			Name: "curiosity",
			Nodes: []NodeSpec{
				{ID: "c_seed", Category: graph.CategoryConcept, Decay: 0.01},
				{ID: "t_tangent", Category: graph.CategoryTopic, Decay: 0.05, Threshold: 0.4},
				{ID: "goal_inform", Category: graph.CategoryGoal, Baseline: 0.1, Threshold: 0.25},
			},
			Edges: []EdgeSpec{
				{Source: "c_seed", Target: "t_tangent", Type: graph.EdgeAssociative, Weight: 0.3},
			},
			Words:    []WordSpec{{Text: "seed", Concepts: []string{"c_seed"}}},
			Inputs:   []string{"seed"},
			Dynamics: &cfg,
			Modulators: dynamics.Modulators{
				"curiosity": curiosity,
				"calm":      0.5,
				"urgency":   0.3,
			},
			Seed: 1,
		}
	}

	curious := NewRunner(t).Run(scenario(0.9))
	incurious := NewRunner(t).Run(scenario(0.1))

	hot := curious.Turns[0].FinalActivations["t_tangent"]
	cold := incurious.Turns[0].FinalActivations["t_tangent"]
	if hot <= cold {
		t.Errorf("curiosity had no effect on associative spread: %.4f <= %.4f", hot, cold)
	}
}
