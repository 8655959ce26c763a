// Package perception turns raw user text into a concept activation map:
// lowercasing, punctuation stripping, longest-match phrase detection,
// synonym normalization, stopword removal, and token-to-concept lookup.
package perception

import (
	"regexp"
	"strings"

	"github.com/mindloop/neuron/internal/lexicon"
)

// Activation weights for matched phrases and words. Phrases carry more
// signal than isolated words.
const (
	phraseWeight = 0.8
	wordWeight   = 0.7
)

var nonWord = regexp.MustCompile(`[^\p{L}\p{N}_\s]+`)

// Match records one recognized surface form and the concepts it maps to.
type Match struct {
	Form     string
	Concepts []string
}

// Result is the outcome of processing one input utterance.
type Result struct {
	RawInput          string
	Tokens            []string
	MatchedPhrases    []Match
	MatchedWords      []Match
	ActivatedConcepts map[string]float64
	SynonymMappings   map[string]string
	RemovedStopwords  []string
}

// Processor maps user input onto the concept space of a lexicon.
type Processor struct {
	lexicon       *lexicon.Lexicon
	sortedPhrases []string
}

// NewProcessor creates a processor bound to a lexicon. The phrase list
// is snapshotted longest-first at construction time.
func NewProcessor(l *lexicon.Lexicon) *Processor {
	return &Processor{
		lexicon:       l,
		sortedPhrases: l.SortedPhrases(),
	}
}

// Process normalizes the input and produces the activation map that the
// dynamics engine will inject. Per-concept activation accumulates across
// matches and is clamped at 1.0.
func (p *Processor) Process(rawInput string) *Result {
	result := &Result{
		RawInput:          rawInput,
		ActivatedConcepts: make(map[string]float64),
		SynonymMappings:   make(map[string]string),
	}

	text := strings.ToLower(strings.TrimSpace(rawInput))
	text = nonWord.ReplaceAllString(text, "")

	// Phase 1: longest-match phrase detection. Matched spans are blanked
	// out so their words are not re-counted as single tokens.
	remaining := text
	for _, phrase := range p.sortedPhrases {
		if !strings.Contains(remaining, phrase) {
			continue
		}
		entry := p.lexicon.LookupPhrase(phrase)
		if entry == nil {
			continue
		}
		result.MatchedPhrases = append(result.MatchedPhrases, Match{Form: phrase, Concepts: entry.ConceptIDs})
		for _, cid := range entry.ConceptIDs {
			result.ActivatedConcepts[cid] += phraseWeight
		}
		remaining = strings.ReplaceAll(remaining, phrase, " ")
	}

	// Phase 2: tokenize what's left.
	for _, token := range strings.Fields(remaining) {
		canonical := p.lexicon.Resolve(token)
		if canonical != token {
			result.SynonymMappings[token] = canonical
			token = canonical
		}

		if p.lexicon.IsStopword(token) {
			result.RemovedStopwords = append(result.RemovedStopwords, token)
			continue
		}

		result.Tokens = append(result.Tokens, token)

		entry := p.lexicon.LookupWord(token)
		if entry == nil {
			continue
		}
		result.MatchedWords = append(result.MatchedWords, Match{Form: token, Concepts: entry.ConceptIDs})
		for _, cid := range entry.ConceptIDs {
			result.ActivatedConcepts[cid] += wordWeight
		}
	}

	for cid, v := range result.ActivatedConcepts {
		if v > 1 {
			result.ActivatedConcepts[cid] = 1
		}
	}

	return result
}
