package main

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/mindloop/neuron/internal/config"
)

// writeBrainFiles creates a minimal valid graph/lexicon pair and returns
// their paths.
func writeBrainFiles(t *testing.T) (string, string) {
	t.Helper()

	dir := t.TempDir()
	graphPath := filepath.Join(dir, "graph.brain")
	lexiconPath := filepath.Join(dir, "lexicon.brain")

	graphData := "N|c_ping|concept|ping|0.0|0.01|0.3\n" +
		"N|goal_inform|goal|inform|0.2|0.02|0.25\n" +
		"E|c_ping|goal_inform|excitatory|0.8\n"
	if err := os.WriteFile(graphPath, []byte(graphData), 0600); err != nil {
		t.Fatalf("write graph: %v", err)
	}
	if err := os.WriteFile(lexiconPath, []byte("WORD|w_ping|ping|c_ping|noun\n"), 0600); err != nil {
		t.Fatalf("write lexicon: %v", err)
	}
	return graphPath, lexiconPath
}

func TestBuildSession_AppliesMemoryCapacities(t *testing.T) {
	graphPath, lexiconPath := writeBrainFiles(t)

	cfg := config.Default()
	cfg.Paths.Graph = graphPath
	cfg.Paths.Lexicon = lexiconPath
	cfg.Memory.DBPath = ""
	cfg.Memory.ShortTermCapacity = 1
	cfg.Memory.EpisodicCapacity = 1
	cfg.Logging.Dir = t.TempDir()

	ctx := context.Background()
	session, cleanup, err := buildSession(ctx, cfg)
	if err != nil {
		t.Fatalf("buildSession() error = %v", err)
	}
	defer cleanup()

	for _, input := range []string{"ping", "ping", "ping"} {
		if _, err := session.ProcessTurn(ctx, input); err != nil {
			t.Fatalf("ProcessTurn(%q) error = %v", input, err)
		}
	}

	if st := session.Memory().ShortTerm(); len(st) != 1 {
		t.Errorf("ShortTerm length = %d, want configured capacity 1", len(st))
	}
	count, err := session.Memory().EpisodeCount(ctx)
	if err != nil {
		t.Fatalf("EpisodeCount error = %v", err)
	}
	if count != 1 {
		t.Errorf("EpisodeCount = %d, want configured capacity 1", count)
	}
}
