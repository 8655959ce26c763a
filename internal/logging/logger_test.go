package logging

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  slog.Level
	}{
		{"info", "info", slog.LevelInfo},
		{"debug", "debug", slog.LevelDebug},
		{"trace", "trace", LevelTrace},
		{"uppercase DEBUG", "DEBUG", slog.LevelDebug},
		{"mixed case Trace", "Trace", LevelTrace},
		{"unknown defaults to info", "wizard", slog.LevelInfo},
		{"empty defaults to info", "", slog.LevelInfo},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ParseLevel(tt.input)
			if got != tt.want {
				t.Errorf("ParseLevel(%q) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}

func TestNewLogger_LevelFiltering(t *testing.T) {
	tests := []struct {
		name       string
		level      string
		logAtDebug bool
		logAtInfo  bool
	}{
		{"info filters debug", "info", false, true},
		{"debug passes debug", "debug", true, true},
		{"trace passes debug", "trace", true, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			logger := NewLogger(tt.level, &buf)

			logger.Debug("debug message")
			hasDebug := strings.Contains(buf.String(), "debug message")
			if hasDebug != tt.logAtDebug {
				t.Errorf("debug message visible = %v, want %v (buf: %q)", hasDebug, tt.logAtDebug, buf.String())
			}

			buf.Reset()
			logger.Info("info message")
			hasInfo := strings.Contains(buf.String(), "info message")
			if hasInfo != tt.logAtInfo {
				t.Errorf("info message visible = %v, want %v (buf: %q)", hasInfo, tt.logAtInfo, buf.String())
			}
		})
	}
}

func TestLevelTrace(t *testing.T) {
	if LevelTrace >= slog.LevelDebug {
		t.Errorf("LevelTrace (%d) should be less than LevelDebug (%d)", LevelTrace, slog.LevelDebug)
	}
}

func TestNewTurnLogger_InfoLevel(t *testing.T) {
	dir := t.TempDir()
	tl := NewTurnLogger(dir, "info")

	// At info level, turn logger should be nil
	if tl != nil {
		t.Error("expected nil TurnLogger at info level")
	}

	// Nil logger should still be safe to use
	tl.Log(TurnRecord{Turn: 1})

	path := filepath.Join(dir, "turns.jsonl")
	if _, err := os.Stat(path); err == nil {
		t.Error("turns.jsonl should not exist at info level")
	}
}

func TestNewTurnLogger_DebugLevel(t *testing.T) {
	dir := t.TempDir()
	tl := NewTurnLogger(dir, "debug")
	defer tl.Close()

	tl.Log(TurnRecord{
		Turn:     1,
		Input:    "hello",
		Response: "hello",
		Goal:     "goal_inform",
		Concepts: []string{"c_greeting"},
	})

	path := filepath.Join(dir, "turns.jsonl")
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("failed to read turns.jsonl: %v", err)
	}

	var entry TurnRecord
	if err := json.Unmarshal(data, &entry); err != nil {
		t.Fatalf("failed to parse JSONL entry: %v", err)
	}

	if entry.Turn != 1 {
		t.Errorf("turn = %d, want 1", entry.Turn)
	}
	if entry.Goal != "goal_inform" {
		t.Errorf("goal = %q, want goal_inform", entry.Goal)
	}
	if entry.Time == "" {
		t.Error("expected Time to be stamped in turn log entry")
	}
}

func TestNewTurnLogger_MultipleWrites(t *testing.T) {
	dir := t.TempDir()
	tl := NewTurnLogger(dir, "debug")
	defer tl.Close()

	tl.Log(TurnRecord{Turn: 1})
	tl.Log(TurnRecord{Turn: 2})

	path := filepath.Join(dir, "turns.jsonl")
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("failed to read turns.jsonl: %v", err)
	}

	lines := strings.Split(strings.TrimSpace(string(data)), "\n")
	if len(lines) != 2 {
		t.Fatalf("expected 2 lines, got %d: %q", len(lines), string(data))
	}
}

func TestTurnLogger_NilSafety(t *testing.T) {
	var tl *TurnLogger
	tl.Log(TurnRecord{Turn: 1})
	tl.Close()
}

func TestTurnLogger_DoesNotMutateCallerRecord(t *testing.T) {
	dir := t.TempDir()
	tl := NewTurnLogger(dir, "debug")
	defer tl.Close()

	rec := TurnRecord{Turn: 1}
	tl.Log(rec)

	if rec.Time != "" {
		t.Error("Log() should not stamp the caller's record")
	}
}

func TestTurnLogger_LogAfterClose(t *testing.T) {
	dir := t.TempDir()
	tl := NewTurnLogger(dir, "debug")

	tl.Log(TurnRecord{Turn: 1})
	tl.Close()

	// Should be a no-op, not panic or error
	tl.Log(TurnRecord{Turn: 2})
}

func TestNewTurnLogger_CreatesDir(t *testing.T) {
	base := t.TempDir()
	nested := filepath.Join(base, "sub", "dir")

	tl := NewTurnLogger(nested, "debug")
	if tl == nil {
		t.Fatal("expected non-nil TurnLogger when dir needs creation")
	}
	defer tl.Close()

	tl.Log(TurnRecord{Turn: 1})

	if _, err := os.Stat(filepath.Join(nested, "turns.jsonl")); err != nil {
		t.Fatalf("turns.jsonl should exist after dir creation: %v", err)
	}
}
