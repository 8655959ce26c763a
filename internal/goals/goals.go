// Package goals arbitrates between intent-bearing goal nodes after the
// dynamics engine has settled. Goals compete purely through activation;
// the winner drives response generation.
package goals

import (
	"sort"

	"github.com/mindloop/neuron/internal/graph"
)

// Candidate is one goal node's standing in the arbitration.
type Candidate struct {
	ID         string
	Activation float64
}

// Result holds the ranked goal candidates and the selection. A graph
// with no goal nodes yields an empty Result; substituting a default
// goal id in that case is the orchestrator's job, not this package's.
type Result struct {
	Candidates         []Candidate
	SelectedGoal       string
	SelectedActivation float64
}

// Select ranks all goal-category nodes by activation descending (ties
// broken by node insertion order) and picks the top entry. Selection is
// best-effort: the winner is returned even when its activation clears
// no threshold, so a conversation always has an active intent.
func Select(g *graph.Graph) Result {
	var result Result

	goalNodes := g.NodesByCategory(graph.CategoryGoal)
	if len(goalNodes) == 0 {
		return result
	}

	candidates := make([]Candidate, len(goalNodes))
	for i, n := range goalNodes {
		candidates[i] = Candidate{ID: n.ID, Activation: n.Activation}
	}
	sort.SliceStable(candidates, func(i, j int) bool {
		return candidates[i].Activation > candidates[j].Activation
	})

	result.Candidates = candidates
	result.SelectedGoal = candidates[0].ID
	result.SelectedActivation = candidates[0].Activation
	return result
}
