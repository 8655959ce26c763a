// Package engine owns the per-conversation session: it wires perception,
// memory, dynamics, goal arbitration and language generation into the
// turn loop, and carries the mutable state (modulators, recent words,
// random source) that individual packages deliberately do not hold.
package engine

import (
	"context"
	"log/slog"
	"math/rand"
	"strings"
	"time"

	"github.com/mindloop/neuron/internal/dynamics"
	"github.com/mindloop/neuron/internal/goals"
	"github.com/mindloop/neuron/internal/graph"
	"github.com/mindloop/neuron/internal/lexicon"
	"github.com/mindloop/neuron/internal/logging"
	"github.com/mindloop/neuron/internal/memory"
	"github.com/mindloop/neuron/internal/motor"
	"github.com/mindloop/neuron/internal/perception"
	"github.com/mindloop/neuron/internal/trace"
)

// DefaultGoal is the intent assumed when arbitration produces nothing.
const DefaultGoal = "goal_inform"

// recentWordsCap bounds the session-wide recent-word list. The generator
// only consults a trailing window of it, but the list itself is capped
// too so long sessions do not grow it without bound.
const recentWordsCap = 30

// Modulator drift applied after each turn. Questions raise curiosity;
// statements let it settle. Urgency relaxes steadily.
const (
	curiosityQuestionBump = 0.1
	curiosityDecay        = 0.05
	curiosityFloor        = 0.2
	urgencyDecay          = 0.02
	urgencyFloor          = 0.1
)

// Options configures a Session beyond its required collaborators.
type Options struct {
	// Dynamics overrides the default simulation parameters.
	Dynamics dynamics.Config

	// Modulators sets the starting modulator levels. Nil means defaults.
	Modulators dynamics.Modulators

	// MaxWords caps utterance length. <= 0 means the generator default.
	MaxWords int

	// Seed seeds the tie-breaking random source. 0 derives a seed from
	// the clock.
	Seed int64

	// Logger receives operational logs. Nil discards them.
	Logger *slog.Logger

	// TurnLogger receives per-turn JSONL records. Nil-safe.
	TurnLogger *logging.TurnLogger
}

// TurnResult is everything one ProcessTurn call produced.
type TurnResult struct {
	Response string
	Goal     string
	Turn     int
	Trace    *trace.Trace
}

// Session is a single conversation over one brain. Not safe for
// concurrent use.
type Session struct {
	graph     *graph.Graph
	lexicon   *lexicon.Lexicon
	processor *perception.Processor
	memory    *memory.Memory

	dynCfg     dynamics.Config
	modulators dynamics.Modulators
	maxWords   int
	rng        *rand.Rand

	recentWords []string

	log     *slog.Logger
	turnLog *logging.TurnLogger
}

// New assembles a session. The graph and lexicon are owned by the
// session from here on; the dynamics engine resets activations each
// turn, so sharing a graph between sessions would corrupt both.
func New(g *graph.Graph, l *lexicon.Lexicon, mem *memory.Memory, opts Options) *Session {
	if opts.Dynamics.Steps == 0 {
		opts.Dynamics = dynamics.DefaultConfig()
	}
	if opts.Modulators == nil {
		opts.Modulators = dynamics.DefaultModulators()
	}
	if opts.Logger == nil {
		opts.Logger = slog.New(slog.DiscardHandler)
	}
	seed := opts.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}

	return &Session{
		graph:      g,
		lexicon:    l,
		processor:  perception.NewProcessor(l),
		memory:     mem,
		dynCfg:     opts.Dynamics,
		modulators: opts.Modulators,
		maxWords:   opts.MaxWords,
		rng:        rand.New(rand.NewSource(seed)),
		log:        opts.Logger,
		turnLog:    opts.TurnLogger,
	}
}

// SetSeed re-seeds the tie-breaking random source, making subsequent
// turns reproducible from this point.
func (s *Session) SetSeed(seed int64) {
	s.rng = rand.New(rand.NewSource(seed))
}

// Modulators returns the current modulator levels. The returned map is
// live; callers that only want to display it must not mutate it.
func (s *Session) Modulators() dynamics.Modulators {
	return s.modulators
}

// Graph returns the session's brain graph.
func (s *Session) Graph() *graph.Graph {
	return s.graph
}

// Memory returns the session's conversational memory.
func (s *Session) Memory() *memory.Memory {
	return s.memory
}

// ProcessTurn runs the full perceive-simulate-arbitrate-speak loop for
// one user utterance and records the completed turn in memory.
func (s *Session) ProcessTurn(ctx context.Context, input string) (*TurnResult, error) {
	tr := &trace.Trace{}

	// 1. Perception: text to concept activations.
	percept := s.processor.Process(input)
	tr.InputMapping = append(tr.InputMapping, percept.MatchedPhrases...)
	tr.InputMapping = append(tr.InputMapping, percept.MatchedWords...)

	// 2. Memory: boost concepts associated with relevant past episodes.
	injections := make(map[string]float64, len(percept.ActivatedConcepts))
	activated := make([]string, 0, len(percept.ActivatedConcepts))
	for cid, v := range percept.ActivatedConcepts {
		injections[cid] = v
		activated = append(activated, cid)
	}
	boosts, err := s.memory.Boost(ctx, activated)
	if err != nil {
		return nil, err
	}
	for cid, b := range boosts {
		injections[cid] += b
	}
	tr.MemoryEffects = boosts
	tr.InitialActivations = injections
	tr.Modulators = snapshotModulators(s.modulators)

	// 3. Dynamics: settle the graph.
	dynResult := dynamics.Run(s.graph, injections, s.dynCfg, s.modulators)
	tr.StepRecords = dynResult.Steps
	tr.TopEdges = dynResult.TopEdges

	// 4. Goal arbitration.
	goalResult := goals.Select(s.graph)
	goalID := goalResult.SelectedGoal
	if goalID == "" {
		goalID = DefaultGoal
	}
	tr.SelectedGoal = goalID
	tr.GoalCandidates = goalResult.Candidates

	// 5. Language generation.
	genResult := motor.Generate(s.graph, s.lexicon, goalID, s.rng, s.recentWords, s.maxWords)
	tr.LanguageCandidates = genResult.CandidatesConsidered
	tr.LanguageSelected = genResult.SelectedWords
	for _, c := range genResult.SelectedWords {
		tr.FinalWords = append(tr.FinalWords, c.Word)
	}
	s.rememberWords(genResult.SelectedWords)

	// 6. Record the turn.
	if err := s.memory.StoreTurn(ctx, input, genResult.FinalText, activated, goalID); err != nil {
		return nil, err
	}

	// 7. Modulator drift.
	s.driftModulators(input)

	turn := s.memory.TurnCount()
	s.log.Debug("turn complete",
		"turn", turn,
		"goal", goalID,
		"concepts", len(activated),
		"words", len(genResult.SelectedWords))
	s.turnLog.Log(logging.TurnRecord{
		Turn:     turn,
		Input:    input,
		Response: genResult.FinalText,
		Goal:     goalID,
		Concepts: activated,
	})

	return &TurnResult{
		Response: genResult.FinalText,
		Goal:     goalID,
		Turn:     turn,
		Trace:    tr,
	}, nil
}

// rememberWords appends the chosen words to the session-wide recent
// list, keeping only the newest recentWordsCap entries.
func (s *Session) rememberWords(selected []*motor.Candidate) {
	for _, c := range selected {
		s.recentWords = append(s.recentWords, c.Word)
	}
	if len(s.recentWords) > recentWordsCap {
		s.recentWords = s.recentWords[len(s.recentWords)-recentWordsCap:]
	}
}

// driftModulators nudges the session modulators after a turn. A question
// mark in the input raises curiosity; otherwise curiosity settles toward
// its floor. Urgency always relaxes.
func (s *Session) driftModulators(input string) {
	curiosity := s.modulators.Curiosity()
	if strings.Contains(input, "?") {
		curiosity += curiosityQuestionBump
		if curiosity > 1 {
			curiosity = 1
		}
	} else {
		curiosity -= curiosityDecay
		if curiosity < curiosityFloor {
			curiosity = curiosityFloor
		}
	}
	s.modulators["curiosity"] = curiosity

	if urgency, ok := s.modulators["urgency"]; ok {
		urgency -= urgencyDecay
		if urgency < urgencyFloor {
			urgency = urgencyFloor
		}
		s.modulators["urgency"] = urgency
	}
}

func snapshotModulators(m dynamics.Modulators) map[string]float64 {
	out := make(map[string]float64, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}
