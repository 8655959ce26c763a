// Package lexicon holds the vocabulary: surface forms mapped to concept
// ids and part-of-speech tags, plus synonym and stopword tables. It is
// the vocabulary capability consumed by perception and the motor
// generator; it never touches the graph.
package lexicon

import (
	"fmt"
	"sort"
)

// Entry maps one surface form (word or multi-word phrase) to the
// concepts it activates and its part-of-speech tag.
type Entry struct {
	ID         string
	Text       string
	ConceptIDs []string
	POS        string
}

// Vocabulary is the lookup capability the motor generator depends on.
// *Lexicon is the canonical implementation; tests substitute their own.
type Vocabulary interface {
	// WordsForConcept returns the surface forms associated with a
	// concept id, in registration order.
	WordsForConcept(conceptID string) []string

	// Lookup resolves a surface form (word or phrase) to its entry,
	// or nil if unknown.
	Lookup(form string) *Entry
}

// Lexicon stores words, phrases, synonyms and stopwords. Registration
// order of surface forms per concept is preserved; candidate ordering
// in the motor generator depends on it.
type Lexicon struct {
	words          map[string]*Entry
	phrases        map[string]*Entry
	synonyms       map[string]string
	stopwords      map[string]struct{}
	conceptToWords map[string][]string
}

// New creates an empty lexicon.
func New() *Lexicon {
	return &Lexicon{
		words:          make(map[string]*Entry),
		phrases:        make(map[string]*Entry),
		synonyms:       make(map[string]string),
		stopwords:      make(map[string]struct{}),
		conceptToWords: make(map[string][]string),
	}
}

// AddWord registers a single-word entry.
func (l *Lexicon) AddWord(e *Entry) {
	l.words[e.Text] = e
	for _, cid := range e.ConceptIDs {
		l.conceptToWords[cid] = append(l.conceptToWords[cid], e.Text)
	}
}

// AddPhrase registers a multi-word entry.
func (l *Lexicon) AddPhrase(e *Entry) {
	l.phrases[e.Text] = e
	for _, cid := range e.ConceptIDs {
		l.conceptToWords[cid] = append(l.conceptToWords[cid], e.Text)
	}
}

// AddSynonym maps a synonym to its canonical form.
func (l *Lexicon) AddSynonym(synonym, canonical string) {
	l.synonyms[synonym] = canonical
}

// AddStopword registers a stopword.
func (l *Lexicon) AddStopword(word string) {
	l.stopwords[word] = struct{}{}
}

// Resolve maps a synonym to its canonical form, or returns the word
// unchanged if no mapping exists.
func (l *Lexicon) Resolve(word string) string {
	if canonical, ok := l.synonyms[word]; ok {
		return canonical
	}
	return word
}

// IsStopword reports whether the word is a registered stopword.
func (l *Lexicon) IsStopword(word string) bool {
	_, ok := l.stopwords[word]
	return ok
}

// LookupWord returns the entry for a single word, or nil.
func (l *Lexicon) LookupWord(word string) *Entry {
	return l.words[word]
}

// LookupPhrase returns the entry for a phrase, or nil.
func (l *Lexicon) LookupPhrase(phrase string) *Entry {
	return l.phrases[phrase]
}

// Lookup resolves a surface form against words first, then phrases.
func (l *Lexicon) Lookup(form string) *Entry {
	if e := l.words[form]; e != nil {
		return e
	}
	return l.phrases[form]
}

// WordsForConcept returns the surface forms registered for a concept
// id, in registration order.
func (l *Lexicon) WordsForConcept(conceptID string) []string {
	return l.conceptToWords[conceptID]
}

// SortedPhrases returns all phrases longest-first, for longest-match
// phrase detection during perception. Equal-length phrases sort
// lexicographically so the order is stable.
func (l *Lexicon) SortedPhrases() []string {
	phrases := make([]string, 0, len(l.phrases))
	for p := range l.phrases {
		phrases = append(phrases, p)
	}
	sort.Slice(phrases, func(i, j int) bool {
		if len(phrases[i]) != len(phrases[j]) {
			return len(phrases[i]) > len(phrases[j])
		}
		return phrases[i] < phrases[j]
	})
	return phrases
}

// Summary returns a one-line description of the lexicon size.
func (l *Lexicon) Summary() string {
	return fmt.Sprintf("%d entries", len(l.words)+len(l.phrases))
}
