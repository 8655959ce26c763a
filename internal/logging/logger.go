// Package logging provides leveled logging and turn tracing for neuron.
// It offers two complementary outputs:
//   - A leveled slog.Logger for stderr (operational output)
//   - A TurnLogger for structured JSONL turn records (turns.jsonl)
package logging

import (
	"encoding/json"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"
)

// LevelTrace is a custom slog level below Debug for full content logging.
// At this level, per-step activation snapshots and full traces are included.
const LevelTrace = slog.LevelDebug - 4

// ParseLevel maps a string level name to a slog.Level.
// Supported values: "info", "debug", "trace" (case-insensitive).
// Unknown values default to info.
func ParseLevel(s string) slog.Level {
	switch strings.ToLower(s) {
	case "debug":
		return slog.LevelDebug
	case "trace":
		return LevelTrace
	default:
		return slog.LevelInfo
	}
}

// NewLogger creates a leveled slog.Logger writing to w.
func NewLogger(level string, w io.Writer) *slog.Logger {
	lvl := ParseLevel(level)
	opts := &slog.HandlerOptions{
		Level: lvl,
		ReplaceAttr: func(groups []string, a slog.Attr) slog.Attr {
			// Label the custom trace level
			if a.Key == slog.LevelKey {
				if lvl, ok := a.Value.Any().(slog.Level); ok && lvl == LevelTrace {
					a.Value = slog.StringValue("TRACE")
				}
			}
			return a
		},
	}
	return slog.New(slog.NewTextHandler(w, opts))
}

// TurnLogger writes structured per-turn events to a JSONL file.
// It is safe for concurrent use. A nil TurnLogger is safe to use;
// all methods are no-ops on nil receiver.
type TurnLogger struct {
	mu   sync.Mutex
	file *os.File
}

// NewTurnLogger creates a turn logger writing to dir/turns.jsonl.
// At "info" level (the default), returns nil — no file is created.
// At "debug" or "trace" level, the file is opened for append.
// Returns nil if the file cannot be opened. All methods are nil-safe.
func NewTurnLogger(dir string, level string) *TurnLogger {
	lvl := ParseLevel(level)
	if lvl == slog.LevelInfo {
		return nil
	}

	if err := os.MkdirAll(dir, 0700); err != nil {
		return nil
	}

	path := filepath.Join(dir, "turns.jsonl")
	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0600)
	if err != nil {
		return nil
	}

	return &TurnLogger{file: f}
}

// TurnRecord is the JSONL payload describing one completed turn: what
// came in, what went out, and which goal and concepts drove the reply.
type TurnRecord struct {
	Time     string   `json:"time"`
	Turn     int      `json:"turn"`
	Input    string   `json:"input"`
	Response string   `json:"response"`
	Goal     string   `json:"goal"`
	Concepts []string `json:"concepts,omitempty"`
}

// Log writes a turn record as a single JSONL line, stamping the record's
// Time field. Safe to call on nil receiver.
func (tl *TurnLogger) Log(rec TurnRecord) {
	if tl == nil || tl.file == nil {
		return
	}

	rec.Time = time.Now().UTC().Format(time.RFC3339Nano)

	tl.mu.Lock()
	defer tl.mu.Unlock()

	data, err := json.Marshal(rec)
	if err != nil {
		return
	}
	data = append(data, '\n')
	_, _ = tl.file.Write(data)
}

// Close closes the underlying file. Safe to call on nil receiver.
func (tl *TurnLogger) Close() {
	if tl == nil || tl.file == nil {
		return
	}

	tl.mu.Lock()
	defer tl.mu.Unlock()

	tl.file.Close()
	tl.file = nil
}
