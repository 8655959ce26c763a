// Package memory implements conversational memory: a short-term window
// of recent turns and an episodic store with concept-overlap retrieval.
// Retrieved episodes feed activation boosts back into the next turn's
// injection, so earlier conversation topics stay warm.
package memory

import (
	"context"
	"sync"
	"time"
)

// Episode is one stored conversational turn.
type Episode struct {
	ID         string    `json:"id"`
	Turn       int       `json:"turn"`
	UserText   string    `json:"user_text"`
	SystemText string    `json:"system_text"`
	Concepts   []string  `json:"concepts"`
	Goal       string    `json:"goal"`
	CreatedAt  time.Time `json:"created_at"`
}

// Store persists episodes in turn order. Implementations must return
// episodes oldest first so retrieval scoring stays deterministic.
type Store interface {
	// Append stores an episode.
	Append(ctx context.Context, ep Episode) error

	// Episodes returns all stored episodes, oldest first.
	Episodes(ctx context.Context) ([]Episode, error)

	// Prune drops the oldest episodes until at most keep remain.
	Prune(ctx context.Context, keep int) error

	// LastTurn returns the highest stored turn number, or 0 when empty.
	LastTurn(ctx context.Context) (int, error)

	Close() error
}

// InMemoryStore implements Store for sessions that do not persist
// memory across restarts.
type InMemoryStore struct {
	mu       sync.RWMutex
	episodes []Episode
}

// NewInMemoryStore creates an empty in-memory episode store.
func NewInMemoryStore() *InMemoryStore {
	return &InMemoryStore{}
}

// Append stores an episode.
func (s *InMemoryStore) Append(ctx context.Context, ep Episode) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.episodes = append(s.episodes, ep)
	return nil
}

// Episodes returns all stored episodes, oldest first.
func (s *InMemoryStore) Episodes(ctx context.Context) ([]Episode, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]Episode, len(s.episodes))
	copy(out, s.episodes)
	return out, nil
}

// Prune drops the oldest episodes until at most keep remain.
func (s *InMemoryStore) Prune(ctx context.Context, keep int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(s.episodes) > keep {
		s.episodes = append([]Episode(nil), s.episodes[len(s.episodes)-keep:]...)
	}
	return nil
}

// LastTurn returns the highest stored turn number, or 0 when empty.
func (s *InMemoryStore) LastTurn(ctx context.Context) (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if len(s.episodes) == 0 {
		return 0, nil
	}
	return s.episodes[len(s.episodes)-1].Turn, nil
}

// Close is a no-op for the in-memory store.
func (s *InMemoryStore) Close() error { return nil }
