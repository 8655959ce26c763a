package simulation

import (
	"strings"
	"testing"

	"github.com/mindloop/neuron/internal/motor"
)

// AssertResponse asserts the exact response text of a turn.
func AssertResponse(t *testing.T, result SimResult, turn int, want string) {
	t.Helper()
	if turn >= len(result.Turns) {
		t.Fatalf("AssertResponse: turn %d out of range (%d turns)", turn, len(result.Turns))
	}
	if got := result.Turns[turn].Response; got != want {
		t.Errorf("AssertResponse: turn %d response = %q, want %q", turn, got, want)
	}
}

// AssertGoal asserts the arbitrated goal of a turn.
func AssertGoal(t *testing.T, result SimResult, turn int, want string) {
	t.Helper()
	if turn >= len(result.Turns) {
		t.Fatalf("AssertGoal: turn %d out of range (%d turns)", turn, len(result.Turns))
	}
	if got := result.Turns[turn].Goal; got != want {
		t.Errorf("AssertGoal: turn %d goal = %q, want %q", turn, got, want)
	}
}

// AssertNeverFallback asserts that no turn degraded to the fallback
// utterance.
func AssertNeverFallback(t *testing.T, result SimResult) {
	t.Helper()
	for _, to := range result.Turns {
		if to.Response == motor.FallbackUtterance {
			t.Errorf("AssertNeverFallback: turn %d fell back (input %q)", to.Index, to.Input)
		}
	}
}

// AssertFallback asserts that a specific turn degraded to the fallback
// utterance.
func AssertFallback(t *testing.T, result SimResult, turn int) {
	t.Helper()
	if got := result.Turns[turn].Response; got != motor.FallbackUtterance {
		t.Errorf("AssertFallback: turn %d response = %q, want fallback", turn, got)
	}
}

// AssertActivationsBounded asserts that every node's settled activation
// lies in [0,1] after every turn.
func AssertActivationsBounded(t *testing.T, result SimResult) {
	t.Helper()
	for _, to := range result.Turns {
		for id, act := range to.FinalActivations {
			if act < 0 || act > 1 {
				t.Errorf("AssertActivationsBounded: turn %d: node %s activation %.6f outside [0,1]", to.Index, id, act)
			}
		}
	}
}

// AssertNodeFires asserts that a node's settled activation after a turn
// is at least the given threshold.
func AssertNodeFires(t *testing.T, result SimResult, turn int, nodeID string, threshold float64) {
	t.Helper()
	act, ok := result.Turns[turn].FinalActivations[nodeID]
	if !ok {
		t.Fatalf("AssertNodeFires: node %s not in turn %d snapshot", nodeID, turn)
	}
	if act < threshold {
		t.Errorf("AssertNodeFires: turn %d: node %s activation %.4f below %.4f", turn, nodeID, act, threshold)
	}
}

// AssertNodeQuiet asserts that a node's settled activation after a turn
// stays below the given threshold.
func AssertNodeQuiet(t *testing.T, result SimResult, turn int, nodeID string, threshold float64) {
	t.Helper()
	act, ok := result.Turns[turn].FinalActivations[nodeID]
	if !ok {
		t.Fatalf("AssertNodeQuiet: node %s not in turn %d snapshot", nodeID, turn)
	}
	if act >= threshold {
		t.Errorf("AssertNodeQuiet: turn %d: node %s activation %.4f not below %.4f", turn, nodeID, act, threshold)
	}
}

// AssertDominates asserts that one node settles strictly higher than
// another after a turn.
func AssertDominates(t *testing.T, result SimResult, turn int, winner, loser string) {
	t.Helper()
	snap := result.Turns[turn].FinalActivations
	w, okW := snap[winner]
	l, okL := snap[loser]
	if !okW || !okL {
		t.Fatalf("AssertDominates: nodes %s/%s not in turn %d snapshot", winner, loser, turn)
	}
	if w <= l {
		t.Errorf("AssertDominates: turn %d: %s (%.4f) does not dominate %s (%.4f)", turn, winner, w, loser, l)
	}
}

// AssertWordLimit asserts that no response exceeds maxWords words.
// The fallback utterance is exempt; it is a fixed phrase, not assembled
// output.
func AssertWordLimit(t *testing.T, result SimResult, maxWords int) {
	t.Helper()
	for _, to := range result.Turns {
		if to.Response == motor.FallbackUtterance {
			continue
		}
		if n := len(strings.Fields(to.Response)); n > maxWords {
			t.Errorf("AssertWordLimit: turn %d: %d words > limit %d (%q)", to.Index, n, maxWords, to.Response)
		}
	}
}

// AssertNoImmediateRepetition asserts that no response repeats a word it
// already used in the same turn.
func AssertNoImmediateRepetition(t *testing.T, result SimResult) {
	t.Helper()
	for _, to := range result.Turns {
		seen := make(map[string]bool)
		for _, w := range strings.Fields(to.Response) {
			if to.Response == motor.FallbackUtterance {
				break
			}
			if seen[w] {
				t.Errorf("AssertNoImmediateRepetition: turn %d repeats %q (%q)", to.Index, w, to.Response)
			}
			seen[w] = true
		}
	}
}

// AssertIdenticalRuns asserts two runs of the same scenario produced the
// same responses turn for turn.
func AssertIdenticalRuns(t *testing.T, a, b SimResult) {
	t.Helper()
	if len(a.Turns) != len(b.Turns) {
		t.Fatalf("AssertIdenticalRuns: %d vs %d turns", len(a.Turns), len(b.Turns))
	}
	for i := range a.Turns {
		if a.Turns[i].Response != b.Turns[i].Response {
			t.Errorf("AssertIdenticalRuns: turn %d: %q vs %q", i, a.Turns[i].Response, b.Turns[i].Response)
		}
		if a.Turns[i].Goal != b.Turns[i].Goal {
			t.Errorf("AssertIdenticalRuns: turn %d goal: %q vs %q", i, a.Turns[i].Goal, b.Turns[i].Goal)
		}
	}
}

// CountFallbacks counts how many turns degraded to the fallback
// utterance.
func CountFallbacks(result SimResult) int {
	count := 0
	for _, to := range result.Turns {
		if to.Response == motor.FallbackUtterance {
			count++
		}
	}
	return count
}

// ResponseContains reports whether a turn's response mentions the word.
func ResponseContains(result SimResult, turn int, word string) bool {
	for _, w := range strings.Fields(result.Turns[turn].Response) {
		if w == word {
			return true
		}
	}
	return false
}
