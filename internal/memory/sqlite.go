package memory

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	_ "modernc.org/sqlite" // SQLite driver
)

// SQLiteStore implements Store on a SQLite database so a session's
// episodic memory survives process restarts.
type SQLiteStore struct {
	db *sql.DB
}

const episodeSchema = `
CREATE TABLE IF NOT EXISTS episodes (
	turn        INTEGER PRIMARY KEY,
	id          TEXT NOT NULL,
	user_text   TEXT NOT NULL,
	system_text TEXT NOT NULL,
	concepts    TEXT NOT NULL,
	goal        TEXT NOT NULL,
	created_at  TEXT NOT NULL
);
`

// NewSQLiteStore opens (or creates) the episode database at path.
func NewSQLiteStore(path string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite", path+"?_pragma=journal_mode(WAL)")
	if err != nil {
		return nil, fmt.Errorf("open episode database: %w", err)
	}

	// SQLite works best with a single writer.
	db.SetMaxOpenConns(1)

	if _, err := db.ExecContext(context.Background(), episodeSchema); err != nil {
		db.Close()
		return nil, fmt.Errorf("initialize episode schema: %w", err)
	}

	return &SQLiteStore{db: db}, nil
}

// Append stores an episode.
func (s *SQLiteStore) Append(ctx context.Context, ep Episode) error {
	concepts, err := json.Marshal(ep.Concepts)
	if err != nil {
		return fmt.Errorf("marshal episode concepts: %w", err)
	}
	_, err = s.db.ExecContext(ctx,
		`INSERT INTO episodes (turn, id, user_text, system_text, concepts, goal, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		ep.Turn, ep.ID, ep.UserText, ep.SystemText, string(concepts), ep.Goal,
		ep.CreatedAt.UTC().Format(time.RFC3339Nano))
	if err != nil {
		return fmt.Errorf("insert episode %d: %w", ep.Turn, err)
	}
	return nil
}

// Episodes returns all stored episodes, oldest first.
func (s *SQLiteStore) Episodes(ctx context.Context) ([]Episode, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT turn, id, user_text, system_text, concepts, goal, created_at
		 FROM episodes ORDER BY turn ASC`)
	if err != nil {
		return nil, fmt.Errorf("query episodes: %w", err)
	}
	defer rows.Close()

	var episodes []Episode
	for rows.Next() {
		var ep Episode
		var concepts, createdAt string
		if err := rows.Scan(&ep.Turn, &ep.ID, &ep.UserText, &ep.SystemText, &concepts, &ep.Goal, &createdAt); err != nil {
			return nil, fmt.Errorf("scan episode: %w", err)
		}
		if err := json.Unmarshal([]byte(concepts), &ep.Concepts); err != nil {
			return nil, fmt.Errorf("unmarshal concepts for turn %d: %w", ep.Turn, err)
		}
		if t, err := time.Parse(time.RFC3339Nano, createdAt); err == nil {
			ep.CreatedAt = t
		}
		episodes = append(episodes, ep)
	}
	return episodes, rows.Err()
}

// Prune drops the oldest episodes until at most keep remain.
func (s *SQLiteStore) Prune(ctx context.Context, keep int) error {
	_, err := s.db.ExecContext(ctx,
		`DELETE FROM episodes WHERE turn NOT IN (
			SELECT turn FROM episodes ORDER BY turn DESC LIMIT ?
		)`, keep)
	if err != nil {
		return fmt.Errorf("prune episodes: %w", err)
	}
	return nil
}

// LastTurn returns the highest stored turn number, or 0 when empty.
func (s *SQLiteStore) LastTurn(ctx context.Context) (int, error) {
	var turn sql.NullInt64
	err := s.db.QueryRowContext(ctx, `SELECT MAX(turn) FROM episodes`).Scan(&turn)
	if err != nil {
		return 0, fmt.Errorf("query last turn: %w", err)
	}
	return int(turn.Int64), nil
}

// Close closes the underlying database.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}
