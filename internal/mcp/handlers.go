package mcp

import (
	"context"
	"fmt"
	"strings"

	sdk "github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/mindloop/neuron/internal/graph"
)

// handleConverse runs one conversational turn through the session.
func (s *Server) handleConverse(ctx context.Context, req *sdk.CallToolRequest, args ConverseInput) (*sdk.CallToolResult, ConverseOutput, error) {
	if strings.TrimSpace(args.Text) == "" {
		return nil, ConverseOutput{}, fmt.Errorf("text must not be empty")
	}

	result, err := s.session.ProcessTurn(ctx, args.Text)
	if err != nil {
		return nil, ConverseOutput{}, fmt.Errorf("process turn: %w", err)
	}

	out := ConverseOutput{
		Response: result.Response,
		Goal:     result.Goal,
		Turn:     result.Turn,
	}
	if args.Trace {
		out.Trace = result.Trace.Full()
	}
	return nil, out, nil
}

// handleStats reports the current state of the brain and session.
func (s *Server) handleStats(ctx context.Context, req *sdk.CallToolRequest, args StatsInput) (*sdk.CallToolResult, StatsOutput, error) {
	g := s.sessionGraph()

	byKind := make(map[string]int, len(graph.Categories))
	var firing []string
	for _, n := range g.Nodes() {
		byKind[string(n.Category)]++
		if n.Firing() {
			firing = append(firing, n.ID)
		}
	}

	episodes, err := s.session.Memory().EpisodeCount(ctx)
	if err != nil {
		return nil, StatsOutput{}, fmt.Errorf("count episodes: %w", err)
	}

	out := StatsOutput{
		Nodes:          g.NodeCount(),
		Edges:          g.EdgeCount(),
		NodesByKind:    byKind,
		Modulators:     map[string]float64(s.session.Modulators()),
		Turns:          s.session.Memory().TurnCount(),
		Episodes:       episodes,
		FiringNodes:    firing,
		GraphSummary:   g.Summary(),
		ShortTermTurns: len(s.session.Memory().ShortTerm()),
	}
	return nil, out, nil
}

// handleValidate re-checks the loaded graph's structural invariants.
func (s *Server) handleValidate(ctx context.Context, req *sdk.CallToolRequest, args ValidateInput) (*sdk.CallToolResult, ValidateOutput, error) {
	problems := s.sessionGraph().Validate()

	out := ValidateOutput{
		Valid:    len(problems) == 0,
		Problems: problems,
	}
	if out.Valid {
		out.Message = "graph is structurally valid"
	} else {
		out.Message = fmt.Sprintf("%d problem(s) found", len(problems))
	}
	return nil, out, nil
}
