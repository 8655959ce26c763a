// Package config provides unified configuration loading for neuron.
// It supports loading from YAML files and environment variables.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"gopkg.in/yaml.v3"
)

// Config contains all neuron configuration settings.
type Config struct {
	// Paths locates the brain definition files.
	Paths PathsConfig `json:"paths" yaml:"paths"`

	// Dynamics controls the spreading-activation simulation.
	Dynamics DynamicsConfig `json:"dynamics" yaml:"dynamics"`

	// Modulators sets the starting global modulator levels.
	Modulators ModulatorsConfig `json:"modulators" yaml:"modulators"`

	// Memory configures short-term and episodic memory.
	Memory MemoryConfig `json:"memory" yaml:"memory"`

	// Generation configures language output.
	Generation GenerationConfig `json:"generation" yaml:"generation"`

	// Logging contains settings for operational and turn logging.
	Logging LoggingConfig `json:"logging" yaml:"logging"`
}

// PathsConfig locates the .brain files.
type PathsConfig struct {
	// Graph is the path to the graph definition file.
	Graph string `json:"graph" yaml:"graph"`

	// Lexicon is the path to the lexicon definition file.
	Lexicon string `json:"lexicon" yaml:"lexicon"`
}

// DynamicsConfig controls the per-turn simulation loop.
type DynamicsConfig struct {
	// Steps is the number of simulation steps per turn.
	Steps int `json:"steps" yaml:"steps"`

	// InhibitionStrength scales same-category competition suppression.
	// Range: 0.0 to 1.0
	InhibitionStrength float64 `json:"inhibition_strength" yaml:"inhibition_strength"`

	// Competition toggles same-category competition entirely.
	Competition *bool `json:"competition,omitempty" yaml:"competition,omitempty"`
}

// ModulatorsConfig sets starting levels for the global modulators.
// Values outside [0,1] are rejected by Validate.
type ModulatorsConfig struct {
	Curiosity *float64 `json:"curiosity,omitempty" yaml:"curiosity,omitempty"`
	Calm      *float64 `json:"calm,omitempty" yaml:"calm,omitempty"`
	Urgency   *float64 `json:"urgency,omitempty" yaml:"urgency,omitempty"`
}

// MemoryConfig configures conversational memory.
type MemoryConfig struct {
	// ShortTermCapacity is the number of recent turn pairs kept verbatim.
	ShortTermCapacity int `json:"short_term_capacity" yaml:"short_term_capacity"`

	// EpisodicCapacity is the number of episodes retained in the store.
	EpisodicCapacity int `json:"episodic_capacity" yaml:"episodic_capacity"`

	// DBPath is the SQLite file for episodic memory. Empty means
	// episodes live in memory only and are lost on exit.
	DBPath string `json:"db_path,omitempty" yaml:"db_path,omitempty"`
}

// GenerationConfig configures the language generator.
type GenerationConfig struct {
	// MaxWords caps utterance length.
	MaxWords int `json:"max_words" yaml:"max_words"`

	// Seed seeds the tie-breaking random source. 0 means derive from
	// the clock (non-reproducible runs).
	Seed int64 `json:"seed,omitempty" yaml:"seed,omitempty"`
}

// LoggingConfig configures neuron's logging behavior.
type LoggingConfig struct {
	// Level sets the log verbosity: "info" (default), "debug", or "trace".
	// "debug" enables turn logging to <dir>/turns.jsonl.
	// "trace" additionally includes per-step activation snapshots.
	Level string `json:"level" yaml:"level"`

	// Dir is where JSONL turn logs are written. Defaults to ".neuron".
	Dir string `json:"dir,omitempty" yaml:"dir,omitempty"`
}

// Default returns a Config with sensible defaults.
func Default() *Config {
	return &Config{
		Paths: PathsConfig{
			Graph:   "data/graph.brain",
			Lexicon: "data/lexicon.brain",
		},
		Dynamics: DynamicsConfig{
			Steps:              20,
			InhibitionStrength: 0.15,
		},
		Memory: MemoryConfig{
			ShortTermCapacity: 5,
			EpisodicCapacity:  50,
		},
		Generation: GenerationConfig{
			MaxWords: 15,
		},
		Logging: LoggingConfig{
			Level: "info",
			Dir:   ".neuron",
		},
	}
}

// Load loads configuration from the default locations and environment variables.
// Order: defaults -> ~/.neuron/config.yaml -> environment variables
func Load() (*Config, error) {
	config := Default()

	homeDir, err := os.UserHomeDir()
	if err == nil {
		configPath := filepath.Join(homeDir, ".neuron", "config.yaml")
		if _, statErr := os.Stat(configPath); statErr == nil {
			fileConfig, loadErr := LoadFromFile(configPath)
			if loadErr != nil {
				return nil, fmt.Errorf("loading config file: %w", loadErr)
			}
			config = fileConfig
		}
	}

	applyEnvOverrides(config)

	return config, nil
}

// LoadFromFile loads configuration from a specific YAML file.
func LoadFromFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	config := Default()
	if err := yaml.Unmarshal(data, config); err != nil {
		return nil, fmt.Errorf("parsing config file: %w", err)
	}

	return config, nil
}

// Validate checks that the configuration is valid.
func (c *Config) Validate() error {
	if c.Dynamics.Steps < 1 {
		return fmt.Errorf("dynamics steps must be at least 1, got %d", c.Dynamics.Steps)
	}

	if c.Dynamics.InhibitionStrength < 0 || c.Dynamics.InhibitionStrength > 1 {
		return fmt.Errorf("inhibition_strength must be between 0 and 1, got %f", c.Dynamics.InhibitionStrength)
	}

	for _, m := range []struct {
		name  string
		value *float64
	}{
		{"curiosity", c.Modulators.Curiosity},
		{"calm", c.Modulators.Calm},
		{"urgency", c.Modulators.Urgency},
	} {
		if m.value != nil && (*m.value < 0 || *m.value > 1) {
			return fmt.Errorf("modulator %s must be between 0 and 1, got %f", m.name, *m.value)
		}
	}

	if c.Memory.ShortTermCapacity < 0 {
		return fmt.Errorf("short_term_capacity must be non-negative, got %d", c.Memory.ShortTermCapacity)
	}
	if c.Memory.EpisodicCapacity < 0 {
		return fmt.Errorf("episodic_capacity must be non-negative, got %d", c.Memory.EpisodicCapacity)
	}

	if c.Generation.MaxWords < 1 {
		return fmt.Errorf("max_words must be at least 1, got %d", c.Generation.MaxWords)
	}

	validLevels := map[string]bool{"info": true, "debug": true, "trace": true}
	if c.Logging.Level != "" && !validLevels[c.Logging.Level] {
		return fmt.Errorf("invalid log level: %s (valid: info, debug, trace, or empty for default)", c.Logging.Level)
	}

	return nil
}

// applyEnvOverrides applies environment variable overrides to the config.
func applyEnvOverrides(config *Config) {
	if v := os.Getenv("NEURON_GRAPH"); v != "" {
		config.Paths.Graph = v
	}
	if v := os.Getenv("NEURON_LEXICON"); v != "" {
		config.Paths.Lexicon = v
	}

	if v := os.Getenv("NEURON_STEPS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			config.Dynamics.Steps = n
		}
	}

	if v := os.Getenv("NEURON_DB_PATH"); v != "" {
		config.Memory.DBPath = v
	}

	if v := os.Getenv("NEURON_SEED"); v != "" {
		if n, err := strconv.ParseInt(v, 10, 64); err == nil {
			config.Generation.Seed = n
		}
	}

	if v := os.Getenv("NEURON_LOG_LEVEL"); v != "" {
		config.Logging.Level = v
	}
}
