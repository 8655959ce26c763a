package memory

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/google/uuid"
)

// Default capacities and retrieval parameters.
const (
	DefaultShortTermCapacity = 5
	DefaultEpisodicCapacity  = 50

	defaultTopK     = 3
	recencyWeight   = 0.3
	episodeBoost    = 0.15
	maxConceptBoost = 0.4
)

// TurnPair is one short-term (user, system) exchange.
type TurnPair struct {
	UserText   string
	SystemText string
}

// Memory combines a bounded short-term window with an episodic store.
// It is owned by one session and not safe for concurrent use.
type Memory struct {
	store            Store
	stmCapacity      int
	episodicCapacity int
	shortTerm        []TurnPair
	turnCounter      int
}

// Options tunes a Memory's retention. Zero or negative capacities fall
// back to the package defaults.
type Options struct {
	ShortTermCapacity int
	EpisodicCapacity  int
}

// New creates a Memory over the given store. The turn counter resumes
// from the store's last turn, so persisted sessions keep counting where
// they left off.
func New(ctx context.Context, store Store, opts Options) (*Memory, error) {
	if opts.ShortTermCapacity <= 0 {
		opts.ShortTermCapacity = DefaultShortTermCapacity
	}
	if opts.EpisodicCapacity <= 0 {
		opts.EpisodicCapacity = DefaultEpisodicCapacity
	}
	last, err := store.LastTurn(ctx)
	if err != nil {
		return nil, fmt.Errorf("resume turn counter: %w", err)
	}
	return &Memory{
		store:            store,
		stmCapacity:      opts.ShortTermCapacity,
		episodicCapacity: opts.EpisodicCapacity,
		turnCounter:      last,
	}, nil
}

// StoreTurn records a completed conversational turn.
func (m *Memory) StoreTurn(ctx context.Context, userText, systemText string, concepts []string, goal string) error {
	m.turnCounter++

	m.shortTerm = append(m.shortTerm, TurnPair{UserText: userText, SystemText: systemText})
	if len(m.shortTerm) > m.stmCapacity {
		m.shortTerm = m.shortTerm[len(m.shortTerm)-m.stmCapacity:]
	}

	ep := Episode{
		ID:         uuid.NewString(),
		Turn:       m.turnCounter,
		UserText:   userText,
		SystemText: systemText,
		Concepts:   concepts,
		Goal:       goal,
		CreatedAt:  time.Now().UTC(),
	}
	if err := m.store.Append(ctx, ep); err != nil {
		return fmt.Errorf("store turn %d: %w", m.turnCounter, err)
	}
	if err := m.store.Prune(ctx, m.episodicCapacity); err != nil {
		return fmt.Errorf("prune episodes: %w", err)
	}
	return nil
}

// RetrieveRelevant returns the episodes most relevant to the given
// concepts: concept overlap plus a small recency bonus, top three by
// default. Ties keep the oldest episode first (stable ordering).
func (m *Memory) RetrieveRelevant(ctx context.Context, concepts []string) ([]Episode, error) {
	if len(concepts) == 0 {
		return nil, nil
	}
	episodes, err := m.store.Episodes(ctx)
	if err != nil {
		return nil, fmt.Errorf("load episodes: %w", err)
	}
	if len(episodes) == 0 {
		return nil, nil
	}

	conceptSet := make(map[string]struct{}, len(concepts))
	for _, c := range concepts {
		conceptSet[c] = struct{}{}
	}

	maxTurn := m.turnCounter
	if maxTurn < 1 {
		maxTurn = 1
	}

	type scored struct {
		score float64
		ep    Episode
	}
	var hits []scored
	for _, ep := range episodes {
		overlap := 0
		for _, c := range ep.Concepts {
			if _, ok := conceptSet[c]; ok {
				overlap++
			}
		}
		if overlap == 0 {
			continue
		}
		recency := float64(ep.Turn) / float64(maxTurn)
		hits = append(hits, scored{score: float64(overlap) + recency*recencyWeight, ep: ep})
	}

	sort.SliceStable(hits, func(i, j int) bool {
		return hits[i].score > hits[j].score
	})
	if len(hits) > defaultTopK {
		hits = hits[:defaultTopK]
	}

	out := make([]Episode, len(hits))
	for i, h := range hits {
		out[i] = h.ep
	}
	return out, nil
}

// Boost returns per-concept activation boosts derived from retrieved
// episodes: 0.15 per episode mentioning the concept, capped at 0.4.
func (m *Memory) Boost(ctx context.Context, currentConcepts []string) (map[string]float64, error) {
	retrieved, err := m.RetrieveRelevant(ctx, currentConcepts)
	if err != nil {
		return nil, err
	}

	boosts := make(map[string]float64)
	for _, ep := range retrieved {
		for _, c := range ep.Concepts {
			boosts[c] += episodeBoost
		}
	}
	for c, v := range boosts {
		if v > maxConceptBoost {
			boosts[c] = maxConceptBoost
		}
	}
	return boosts, nil
}

// RecentConcepts returns the concepts mentioned in the last three
// episodes, oldest first, duplicates preserved.
func (m *Memory) RecentConcepts(ctx context.Context) ([]string, error) {
	episodes, err := m.store.Episodes(ctx)
	if err != nil {
		return nil, fmt.Errorf("load episodes: %w", err)
	}
	start := 0
	if len(episodes) > 3 {
		start = len(episodes) - 3
	}
	var concepts []string
	for _, ep := range episodes[start:] {
		concepts = append(concepts, ep.Concepts...)
	}
	return concepts, nil
}

// ShortTerm returns the bounded window of recent exchanges.
func (m *Memory) ShortTerm() []TurnPair {
	return m.shortTerm
}

// TurnCount returns the number of turns recorded so far.
func (m *Memory) TurnCount() int {
	return m.turnCounter
}

// EpisodeCount returns the number of episodes currently stored.
func (m *Memory) EpisodeCount(ctx context.Context) (int, error) {
	episodes, err := m.store.Episodes(ctx)
	if err != nil {
		return 0, err
	}
	return len(episodes), nil
}
