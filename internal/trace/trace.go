// Package trace collects the full thought trace of one conversational
// turn and renders it for humans. Traces are read-only records; nothing
// in the engine reads them back.
package trace

import (
	"fmt"
	"sort"
	"strings"

	"github.com/mindloop/neuron/internal/dynamics"
	"github.com/mindloop/neuron/internal/goals"
	"github.com/mindloop/neuron/internal/motor"
	"github.com/mindloop/neuron/internal/perception"
)

// Trace is the complete record of one turn's processing.
type Trace struct {
	InputMapping       []perception.Match
	InitialActivations map[string]float64
	Modulators         map[string]float64
	StepRecords        []dynamics.StepRecord
	TopEdges           []dynamics.EdgeContribution
	MemoryEffects      map[string]float64
	SelectedGoal       string
	GoalCandidates     []goals.Candidate
	LanguageCandidates []*motor.Candidate
	LanguageSelected   []*motor.Candidate
	FinalWords         []string
}

// Compact renders the short trace shown after every reply.
func (tr *Trace) Compact() string {
	var b strings.Builder
	b.WriteString("─── THOUGHT TRACE ───\n")

	if len(tr.InputMapping) > 0 {
		b.WriteString("  Input → Concepts:\n")
		for _, m := range tr.InputMapping {
			fmt.Fprintf(&b, "    '%s' → %v\n", m.Form, m.Concepts)
		}
	}

	if len(tr.InitialActivations) > 0 {
		b.WriteString("  Initial Activations:\n")
		for _, na := range sortedActivations(tr.InitialActivations, 5) {
			fmt.Fprintf(&b, "    %s: %.3f\n", na.id, na.act)
		}
	}

	if len(tr.Modulators) > 0 {
		b.WriteString("  Modulators: " + formatModulators(tr.Modulators) + "\n")
	}

	if len(tr.StepRecords) > 0 {
		b.WriteString("  Dynamics (selected steps):\n")
		for _, sr := range selectedSteps(tr.StepRecords) {
			var tops []string
			for i, na := range sr.TopFiring {
				if i >= 4 {
					break
				}
				tops = append(tops, fmt.Sprintf("%s=%.2f", na.ID, na.Activation))
			}
			fmt.Fprintf(&b, "    Step %d: [%s]\n", sr.Step, strings.Join(tops, ", "))
		}
	}

	if len(tr.TopEdges) > 0 {
		b.WriteString("  Top Routes (edges):\n")
		for i, e := range tr.TopEdges {
			if i >= 5 {
				break
			}
			fmt.Fprintf(&b, "    %s →(%s)→ %s  contrib=%.3f\n", e.Source, e.Type, e.Target, e.Contribution)
		}
	}

	if len(tr.MemoryEffects) > 0 {
		b.WriteString("  Memory Boost:\n")
		for _, na := range sortedActivations(tr.MemoryEffects, len(tr.MemoryEffects)) {
			fmt.Fprintf(&b, "    %s: +%.3f\n", na.id, na.act)
		}
	}

	if tr.SelectedGoal != "" {
		fmt.Fprintf(&b, "  Goal: %s\n", tr.SelectedGoal)
		if len(tr.GoalCandidates) > 0 {
			var cands []string
			for i, c := range tr.GoalCandidates {
				if i >= 4 {
					break
				}
				cands = append(cands, fmt.Sprintf("%s=%.2f", c.ID, c.Activation))
			}
			fmt.Fprintf(&b, "    Candidates: [%s]\n", strings.Join(cands, ", "))
		}
	}

	if len(tr.LanguageSelected) > 0 {
		b.WriteString("  Word Selection:\n")
		for i, wc := range tr.LanguageSelected {
			if i >= 8 {
				break
			}
			fmt.Fprintf(&b, "    '%s' score=%.3f (%s)\n", wc.Word, wc.Score, wc.Reason)
		}
	}

	if len(tr.FinalWords) > 0 {
		fmt.Fprintf(&b, "  Output: %s\n", strings.Join(tr.FinalWords, " "))
	}

	b.WriteString("─────────────────────")
	return b.String()
}

// Full renders the exhaustive trace used in debug mode.
func (tr *Trace) Full() string {
	var b strings.Builder
	b.WriteString("═══ FULL THOUGHT TRACE ═══\n")

	b.WriteString("\n[INPUT MAPPING]\n")
	for _, m := range tr.InputMapping {
		fmt.Fprintf(&b, "  '%s' → %v\n", m.Form, m.Concepts)
	}

	b.WriteString("\n[INITIAL ACTIVATIONS]\n")
	for _, na := range sortedActivations(tr.InitialActivations, len(tr.InitialActivations)) {
		if na.act > 0 {
			fmt.Fprintf(&b, "  %s: %.4f\n", na.id, na.act)
		}
	}

	b.WriteString("\n[MODULATORS]\n")
	for _, k := range sortedKeys(tr.Modulators) {
		fmt.Fprintf(&b, "  %s: %.3f\n", k, tr.Modulators[k])
	}

	b.WriteString("\n[DYNAMICS STEPS]\n")
	for _, sr := range tr.StepRecords {
		var tops []string
		for i, na := range sr.TopFiring {
			if i >= 6 {
				break
			}
			tops = append(tops, fmt.Sprintf("%s=%.3f", na.ID, na.Activation))
		}
		fmt.Fprintf(&b, "  Step %2d: [%s]\n", sr.Step, strings.Join(tops, ", "))
	}

	b.WriteString("\n[TOP CONTRIBUTING EDGES]\n")
	for _, e := range tr.TopEdges {
		fmt.Fprintf(&b, "  %s →(%s)→ %s  contribution=%.4f\n", e.Source, e.Type, e.Target, e.Contribution)
	}

	b.WriteString("\n[MEMORY EFFECTS]\n")
	if len(tr.MemoryEffects) == 0 {
		b.WriteString("  (none)\n")
	} else {
		for _, na := range sortedActivations(tr.MemoryEffects, len(tr.MemoryEffects)) {
			fmt.Fprintf(&b, "  %s: +%.4f\n", na.id, na.act)
		}
	}

	b.WriteString("\n[GOAL SELECTION]\n")
	fmt.Fprintf(&b, "  Selected: %s\n", tr.SelectedGoal)
	for _, c := range tr.GoalCandidates {
		marker := ""
		if c.ID == tr.SelectedGoal {
			marker = " ◄"
		}
		fmt.Fprintf(&b, "    %s: %.4f%s\n", c.ID, c.Activation, marker)
	}

	b.WriteString("\n[LANGUAGE CANDIDATES]\n")
	for i, wc := range tr.LanguageCandidates {
		if i >= 15 {
			break
		}
		fmt.Fprintf(&b, "  '%s' pos=%s score=%.3f | %s\n", wc.Word, wc.POS, wc.Score, wc.Reason)
	}

	b.WriteString("\n[SELECTED WORDS]\n")
	for i, wc := range tr.LanguageSelected {
		fmt.Fprintf(&b, "  %d. '%s' pos=%s score=%.3f\n", i+1, wc.Word, wc.POS, wc.Score)
	}

	fmt.Fprintf(&b, "\n[OUTPUT] %s\n", strings.Join(tr.FinalWords, " "))
	b.WriteString("══════════════════════════")
	return b.String()
}

// selectedSteps picks the first, middle and last step records for the
// compact view.
func selectedSteps(steps []dynamics.StepRecord) []dynamics.StepRecord {
	var out []dynamics.StepRecord
	n := len(steps)
	if n >= 1 {
		out = append(out, steps[0])
	}
	if n >= 3 {
		out = append(out, steps[n/2])
	}
	if n >= 2 {
		out = append(out, steps[n-1])
	}
	return out
}

type idAct struct {
	id  string
	act float64
}

// sortedActivations orders a map by value descending (id ascending on
// ties, so rendering is stable) and truncates to limit.
func sortedActivations(m map[string]float64, limit int) []idAct {
	out := make([]idAct, 0, len(m))
	for id, act := range m {
		out = append(out, idAct{id, act})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].act != out[j].act {
			return out[i].act > out[j].act
		}
		return out[i].id < out[j].id
	})
	if len(out) > limit {
		out = out[:limit]
	}
	return out
}

func sortedKeys(m map[string]float64) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

func formatModulators(m map[string]float64) string {
	var parts []string
	for _, k := range sortedKeys(m) {
		parts = append(parts, fmt.Sprintf("%s=%.2f", k, m[k]))
	}
	return strings.Join(parts, ", ")
}
