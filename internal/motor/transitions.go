package motor

// StateStart and StateEnd are the synthetic states bracketing a word
// sequence in the transition grammar.
const (
	StateStart = "START"
	StateEnd   = "END"
)

// posTransitions maps a current part-of-speech state to the tags allowed
// to follow it. This table materially shapes generated output; change it
// and the engine speaks differently.
var posTransitions = map[string][]string{
	StateStart:     {"noun", "adj", "det", "pronoun", "interjection", "verb", "adverb"},
	"det":          {"noun", "adj"},
	"adj":          {"noun", "adj", "conjunction"},
	"noun":         {"verb", "conjunction", "prep", "noun", "adj", StateEnd},
	"pronoun":      {"verb", "adverb"},
	"verb":         {"noun", "adj", "det", "adverb", "prep", "pronoun", StateEnd},
	"adverb":       {"verb", "adj", "adverb", StateEnd},
	"prep":         {"noun", "det", "adj", "pronoun"},
	"conjunction":  {"noun", "det", "adj", "verb", "pronoun"},
	"interjection": {"noun", "det", "pronoun", "verb", StateEnd},
}

// unknownStateFallback is used when the current state has no transition
// entry (e.g. a lexicon tag outside the table).
var unknownStateFallback = []string{"noun", "verb", "adj"}

// goalAffinityBoost gives known goals a fixed boost applied to
// candidates whose originating concept the goal points at.
var goalAffinityBoost = map[string]float64{
	"goal_inform":   0.3,
	"goal_greet":    0.4,
	"goal_describe": 0.3,
	"goal_farewell": 0.4,
	"goal_clarify":  0.2,
}

// defaultGoalBoost applies to goals missing from the affinity table.
const defaultGoalBoost = 0.1

// allowedNext returns the permitted next tags for the given state.
func allowedNext(state string) []string {
	if next, ok := posTransitions[state]; ok {
		return next
	}
	return unknownStateFallback
}
