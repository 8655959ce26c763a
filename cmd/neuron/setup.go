package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/mindloop/neuron/internal/config"
	"github.com/mindloop/neuron/internal/dynamics"
	"github.com/mindloop/neuron/internal/engine"
	"github.com/mindloop/neuron/internal/graph"
	"github.com/mindloop/neuron/internal/lexicon"
	"github.com/mindloop/neuron/internal/loader"
	"github.com/mindloop/neuron/internal/logging"
	"github.com/mindloop/neuron/internal/memory"
)

// resolveConfig loads configuration, then applies command-line overrides.
func resolveConfig(cmd *cobra.Command) (*config.Config, error) {
	var cfg *config.Config
	var err error

	if path, _ := cmd.Flags().GetString("config"); path != "" {
		cfg, err = config.LoadFromFile(path)
	} else {
		cfg, err = config.Load()
	}
	if err != nil {
		return nil, err
	}

	if v, _ := cmd.Flags().GetString("graph"); v != "" {
		cfg.Paths.Graph = v
	}
	if v, _ := cmd.Flags().GetString("lexicon"); v != "" {
		cfg.Paths.Lexicon = v
	}
	if v, _ := cmd.Flags().GetString("log-level"); v != "" {
		cfg.Logging.Level = v
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

// loadBrain loads the graph and lexicon named by the config.
func loadBrain(cfg *config.Config) (*graph.Graph, *lexicon.Lexicon, error) {
	g, err := loader.LoadGraph(cfg.Paths.Graph)
	if err != nil {
		return nil, nil, err
	}
	lex, err := loader.LoadLexicon(cfg.Paths.Lexicon)
	if err != nil {
		return nil, nil, err
	}
	return g, lex, nil
}

// buildSession assembles a full session from the config: brain files,
// episodic store, loggers and tuning parameters. The returned cleanup
// closes the store and turn log.
func buildSession(ctx context.Context, cfg *config.Config) (*engine.Session, func(), error) {
	g, lex, err := loadBrain(cfg)
	if err != nil {
		return nil, nil, err
	}

	var store memory.Store
	if cfg.Memory.DBPath != "" {
		s, err := memory.NewSQLiteStore(cfg.Memory.DBPath)
		if err != nil {
			return nil, nil, fmt.Errorf("open episodic store: %w", err)
		}
		store = s
	} else {
		store = memory.NewInMemoryStore()
	}

	mem, err := memory.New(ctx, store, memory.Options{
		ShortTermCapacity: cfg.Memory.ShortTermCapacity,
		EpisodicCapacity:  cfg.Memory.EpisodicCapacity,
	})
	if err != nil {
		store.Close()
		return nil, nil, fmt.Errorf("init memory: %w", err)
	}

	dynCfg := dynamics.DefaultConfig()
	dynCfg.Steps = cfg.Dynamics.Steps
	dynCfg.InhibitionStrength = cfg.Dynamics.InhibitionStrength
	if cfg.Dynamics.Competition != nil {
		dynCfg.Competition = *cfg.Dynamics.Competition
	}

	mods := dynamics.DefaultModulators()
	if cfg.Modulators.Curiosity != nil {
		mods["curiosity"] = *cfg.Modulators.Curiosity
	}
	if cfg.Modulators.Calm != nil {
		mods["calm"] = *cfg.Modulators.Calm
	}
	if cfg.Modulators.Urgency != nil {
		mods["urgency"] = *cfg.Modulators.Urgency
	}

	turnLog := logging.NewTurnLogger(cfg.Logging.Dir, cfg.Logging.Level)

	session := engine.New(g, lex, mem, engine.Options{
		Dynamics:   dynCfg,
		Modulators: mods,
		MaxWords:   cfg.Generation.MaxWords,
		Seed:       cfg.Generation.Seed,
		Logger:     logging.NewLogger(cfg.Logging.Level, os.Stderr),
		TurnLogger: turnLog,
	})

	cleanup := func() {
		turnLog.Close()
		store.Close()
	}
	return session, cleanup, nil
}
