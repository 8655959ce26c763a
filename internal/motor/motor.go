// Package motor converts settled graph state into an output word
// sequence. There are no templates: candidate words come from firing
// nodes via the vocabulary, are scored against the active goal and
// recent usage, and are assembled word by word under a part-of-speech
// transition grammar. The only non-determinism is the top-tier
// tie-break, which draws from a caller-owned seeded random source.
package motor

import (
	"fmt"
	"math/rand"
	"sort"
	"strings"

	"github.com/mindloop/neuron/internal/graph"
	"github.com/mindloop/neuron/internal/lexicon"
)

// FallbackUtterance is emitted when no candidate words exist at all.
// Generation degrades instead of failing so conversation never stops.
const FallbackUtterance = "i am processing"

// DefaultMaxWords bounds the output sequence length.
const DefaultMaxWords = 15

// recentWindow is how many trailing recent words feed repetition
// suppression.
const recentWindow = 20

// conceptCap bounds how many concept/topic/emotion nodes contribute
// candidates.
const conceptCap = 25

// Candidate is one scored (surface form, originating node) pair.
// Candidates are rebuilt on every Generate call and never persist.
type Candidate struct {
	Word       string
	NodeID     string
	Activation float64
	POS        string
	Score      float64
	Reason     string
}

// Result is the read-only outcome of one generation call.
type Result struct {
	// CandidatesConsidered holds every candidate, ordered by score at
	// collection time (descending, stable). Scores mutate during
	// assembly (diversity pressure), which the trace deliberately shows.
	CandidatesConsidered []*Candidate

	// SelectedWords is the chosen sequence in selection order.
	SelectedWords []*Candidate

	// FinalText is the selected forms joined with single spaces.
	FinalText string
}

// Generate produces a word sequence from the settled graph, the
// arbitrated goal and the vocabulary. recentWords suppresses repetition
// (only the trailing window counts); rng is the caller-owned seeded
// source driving the tie-break. maxWords <= 0 means DefaultMaxWords.
func Generate(g *graph.Graph, vocab lexicon.Vocabulary, goalID string, rng *rand.Rand, recentWords []string, maxWords int) *Result {
	if maxWords <= 0 {
		maxWords = DefaultMaxWords
	}

	result := &Result{}
	recent := recentSet(recentWords)

	candidates := collectCandidates(g, vocab, goalID, recent)

	considered := make([]*Candidate, len(candidates))
	copy(considered, candidates)
	sort.SliceStable(considered, func(i, j int) bool {
		return considered[i].Score > considered[j].Score
	})
	result.CandidatesConsidered = considered

	if len(candidates) == 0 {
		result.FinalText = FallbackUtterance
		return result
	}

	result.SelectedWords = assemble(candidates, rng, maxWords)

	words := make([]string, len(result.SelectedWords))
	for i, c := range result.SelectedWords {
		words[i] = c.Word
	}
	result.FinalText = strings.Join(words, " ")
	return result
}

// collectCandidates builds the scored candidate pool: the top firing
// concept/topic/emotion nodes (concepts ranked ahead of the rest, then
// by activation) plus every firing motor/lexeme node.
func collectCandidates(g *graph.Graph, vocab lexicon.Vocabulary, goalID string, recent map[string]struct{}) []*Candidate {
	type activeNode struct {
		id       string
		act      float64
		priority float64
	}

	var active []activeNode
	for _, n := range g.Nodes() {
		if !n.Firing() {
			continue
		}
		switch n.Category {
		case graph.CategoryConcept:
			active = append(active, activeNode{n.ID, n.Activation, 1.0})
		case graph.CategoryTopic, graph.CategoryEmotion:
			active = append(active, activeNode{n.ID, n.Activation, 0.5})
		}
	}
	sort.SliceStable(active, func(i, j int) bool {
		if active[i].priority != active[j].priority {
			return active[i].priority > active[j].priority
		}
		return active[i].act > active[j].act
	})
	if len(active) > conceptCap {
		active = active[:conceptCap]
	}

	var candidates []*Candidate

	for _, a := range active {
		for _, word := range vocab.WordsForConcept(a.id) {
			entry := vocab.Lookup(word)
			if entry == nil {
				continue
			}
			c := &Candidate{
				Word:       word,
				NodeID:     a.id,
				Activation: a.act,
				POS:        entry.POS,
			}
			score := a.act * 0.6
			score += goalBoost(g, goalID, a.id)
			if _, used := recent[word]; used {
				score *= 0.3
			}
			c.Score = score
			c.Reason = fmt.Sprintf("concept=%s act=%.2f goal=%s", a.id, a.act, goalID)
			candidates = append(candidates, c)
		}
	}

	// Firing motor and lexeme nodes contribute directly, uncapped.
	for _, n := range g.Nodes() {
		if !n.Firing() || (n.Category != graph.CategoryMotor && n.Category != graph.CategoryLexeme) {
			continue
		}
		for _, word := range vocab.WordsForConcept(n.ID) {
			entry := vocab.Lookup(word)
			if entry == nil {
				continue
			}
			c := &Candidate{
				Word:       word,
				NodeID:     n.ID,
				Activation: n.Activation,
				POS:        entry.POS,
				Score:      n.Activation * 0.5,
				Reason:     fmt.Sprintf("%s node=%s", n.Category, n.ID),
			}
			if _, used := recent[word]; used {
				c.Score *= 0.3
			}
			candidates = append(candidates, c)
		}
	}

	return candidates
}

// goalBoost returns the affinity boost for a concept the goal node
// points at. Only the first matching outgoing edge counts; its type is
// irrelevant, only the weight magnitude matters.
func goalBoost(g *graph.Graph, goalID, conceptID string) float64 {
	if g.Node(goalID) == nil {
		return 0
	}
	boost, ok := goalAffinityBoost[goalID]
	if !ok {
		boost = defaultGoalBoost
	}
	for _, e := range g.Outgoing(goalID) {
		if e.Target == conceptID {
			w := e.Weight
			if w < 0 {
				w = -w
			}
			return boost * w
		}
	}
	return 0
}

// assemble walks the transition grammar, repeatedly picking from the
// top tier of eligible candidates until END, the word limit, or pool
// exhaustion.
func assemble(candidates []*Candidate, rng *rand.Rand, maxWords int) []*Candidate {
	state := StateStart
	used := make(map[string]struct{})
	var selected []*Candidate

	for len(selected) < maxWords {
		allowed := allowedNext(state)

		eligible := filterEligible(candidates, allowed, used)
		if len(eligible) == 0 {
			eligible = filterEligible(candidates, nil, used)
			if len(eligible) == 0 {
				break
			}
		}

		sort.SliceStable(eligible, func(i, j int) bool {
			return eligible[i].Score > eligible[j].Score
		})

		// The tier is a prefix of the sorted pool: everything scoring at
		// least 85% of the maximum.
		topScore := eligible[0].Score
		cut := 1
		for cut < len(eligible) && eligible[cut].Score >= topScore*0.85 {
			cut++
		}
		tier := eligible[:cut]

		chosen := tier[0]
		if len(tier) > 1 {
			chosen = tier[rng.Intn(len(tier))]
		}

		selected = append(selected, chosen)
		used[chosen.Word] = struct{}{}
		state = chosen.POS

		if state == StateEnd || len(selected) >= maxWords {
			break
		}

		// Diversity pressure: other candidates from the same node lose
		// half their score so one hot node cannot dominate the output.
		for _, c := range candidates {
			if c != chosen && c.NodeID == chosen.NodeID {
				c.Score *= 0.5
			}
		}
	}

	return selected
}

// filterEligible returns unused candidates whose POS is in allowed;
// a nil allowed list means any POS.
func filterEligible(candidates []*Candidate, allowed []string, used map[string]struct{}) []*Candidate {
	var out []*Candidate
	for _, c := range candidates {
		if _, taken := used[c.Word]; taken {
			continue
		}
		if allowed != nil && !contains(allowed, c.POS) {
			continue
		}
		out = append(out, c)
	}
	return out
}

func contains(tags []string, tag string) bool {
	for _, t := range tags {
		if t == tag {
			return true
		}
	}
	return false
}

// recentSet builds the repetition-suppression set from the trailing
// window of recently emitted words.
func recentSet(recentWords []string) map[string]struct{} {
	start := 0
	if len(recentWords) > recentWindow {
		start = len(recentWords) - recentWindow
	}
	set := make(map[string]struct{}, len(recentWords)-start)
	for _, w := range recentWords[start:] {
		set[w] = struct{}{}
	}
	return set
}
