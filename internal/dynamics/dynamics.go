// Package dynamics runs the fixed-step activation-spreading simulation
// over a brain graph. Each step applies decay, spread, within-category
// competition, and clamping, strictly in that order, and records the top
// firing nodes for tracing. Given the same graph, injections, config and
// modulators, a run is fully deterministic.
package dynamics

import (
	"sort"

	"github.com/mindloop/neuron/internal/graph"
)

// Config holds tunable parameters for a simulation run.
type Config struct {
	// Steps is the number of discrete simulation steps. Default: 20.
	Steps int

	// InhibitionStrength scales how hard lower-ranked firing nodes are
	// suppressed during within-category competition. Default: 0.15.
	InhibitionStrength float64

	// Competition enables the within-category inhibition pass. Default: true.
	Competition bool
}

// DefaultConfig returns the default dynamics configuration.
func DefaultConfig() Config {
	return Config{
		Steps:              20,
		InhibitionStrength: 0.15,
		Competition:        true,
	}
}

// Modulators are named session parameters in [0,1] that shape spread
// behavior (currently only "curiosity" has an effect, scaling
// associative edges). Callers own the map; the engine never mutates it.
type Modulators map[string]float64

// DefaultModulators returns the default modulator set. This is an
// explicit value constructed per call site, never shared mutable state.
func DefaultModulators() Modulators {
	return Modulators{
		"curiosity": 0.5,
		"calm":      0.6,
		"urgency":   0.3,
	}
}

// Curiosity returns the curiosity modulator, defaulting to 0.5 if absent.
func (m Modulators) Curiosity() float64 {
	if v, ok := m["curiosity"]; ok {
		return v
	}
	return 0.5
}

// causalScale is the fixed damping applied to causal-edge spread.
const causalScale = 0.8

// topFiringPerStep bounds how many firing nodes each StepRecord keeps.
const topFiringPerStep = 8

// topContributingEdges bounds the explanation output of a run.
const topContributingEdges = 10

// Run evolves the graph's activation for cfg.Steps steps. Injections are
// added to the post-reset activations (clamped at 1.0 at injection time);
// unknown node ids are silently ignored. The graph's activations and edge
// contributions are reset before the first step, so a Run never observes
// state from a previous run.
func Run(g *graph.Graph, injections map[string]float64, cfg Config, mods Modulators) *Result {
	if mods == nil {
		mods = DefaultModulators()
	}

	result := &Result{}

	g.ResetActivations()
	g.ResetContributions()

	for id, amount := range injections {
		if n := g.Node(id); n != nil {
			n.Activation += amount
			if n.Activation > 1 {
				n.Activation = 1
			}
		}
	}

	curiosity := mods.Curiosity()
	deltas := make(map[string]float64, g.NodeCount())

	for step := 0; step < cfg.Steps; step++ {
		// a) Decay toward baseline.
		for _, n := range g.Nodes() {
			n.Activation += (n.Baseline - n.Activation) * n.Decay
		}

		// b) Spread. Deltas accumulate per target and are applied only
		// after every edge has been evaluated, so source reads always
		// see pre-spread values.
		clear(deltas)
		for _, e := range g.Edges() {
			src := g.Node(e.Source)
			if src == nil || !src.Firing() {
				continue
			}

			spread := src.Activation * e.Weight
			switch e.Type {
			case graph.EdgeInhibitory:
				if spread > 0 {
					spread = -spread
				}
			case graph.EdgeAssociative:
				spread *= 0.5 + curiosity*0.5
			case graph.EdgeCausal:
				spread *= causalScale
			}

			deltas[e.Target] += spread
			if spread >= 0 {
				e.Contribution += spread
			} else {
				e.Contribution -= spread
			}
		}
		for _, n := range g.Nodes() {
			if d, ok := deltas[n.ID]; ok {
				n.Activation += d
			}
		}

		// c) Within-category competition on pre-clamp values.
		if cfg.Competition {
			applyCompetition(g, cfg.InhibitionStrength)
		}

		// d) Clamp into [0,1].
		for _, n := range g.Nodes() {
			n.Clamp()
		}

		result.Steps = append(result.Steps, recordStep(g, step))
	}

	result.FinalActivations = make(map[string]float64, g.NodeCount())
	for _, n := range g.Nodes() {
		result.FinalActivations[n.ID] = n.Activation
	}
	result.TopEdges = topEdges(g)

	return result
}

// applyCompetition suppresses lower-ranked firing nodes within each
// category. The top-ranked node is untouched; the node at rank i
// (1-indexed among the firing subset) loses strength*i/firingCount.
// Ranking uses raw post-spread activations, before clamping.
func applyCompetition(g *graph.Graph, strength float64) {
	for _, cat := range graph.Categories {
		nodes := g.NodesByCategory(cat)
		if len(nodes) <= 1 {
			continue
		}
		firing := nodes[:0:0]
		for _, n := range nodes {
			if n.Firing() {
				firing = append(firing, n)
			}
		}
		if len(firing) <= 1 {
			continue
		}
		sort.SliceStable(firing, func(i, j int) bool {
			return firing[i].Activation > firing[j].Activation
		})
		for i := 1; i < len(firing); i++ {
			firing[i].Activation -= strength * float64(i) / float64(len(firing))
		}
	}
}

// recordStep captures the top firing nodes at the end of a step, sorted
// by activation descending with insertion-order tie-breaks.
func recordStep(g *graph.Graph, step int) StepRecord {
	var firing []NodeActivation
	for _, n := range g.Nodes() {
		if n.Firing() {
			firing = append(firing, NodeActivation{ID: n.ID, Activation: n.Activation})
		}
	}
	sort.SliceStable(firing, func(i, j int) bool {
		return firing[i].Activation > firing[j].Activation
	})
	if len(firing) > topFiringPerStep {
		firing = firing[:topFiringPerStep]
	}
	return StepRecord{Step: step, TopFiring: firing}
}

// topEdges ranks edges by accumulated contribution, descending, with
// insertion-order tie-breaks, and returns the top ten.
func topEdges(g *graph.Graph) []EdgeContribution {
	edges := g.Edges()
	ranked := make([]*graph.Edge, len(edges))
	copy(ranked, edges)
	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].Contribution > ranked[j].Contribution
	})
	if len(ranked) > topContributingEdges {
		ranked = ranked[:topContributingEdges]
	}
	out := make([]EdgeContribution, len(ranked))
	for i, e := range ranked {
		out[i] = EdgeContribution{
			Source:       e.Source,
			Target:       e.Target,
			Type:         e.Type,
			Contribution: e.Contribution,
		}
	}
	return out
}
