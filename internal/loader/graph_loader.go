// Package loader parses the line-oriented .brain definition files into
// the in-memory graph and lexicon. Parsing is forgiving per record but
// strict per file: every bad line is collected as a diagnostic, and any
// diagnostic at all makes the load fail with the full list.
package loader

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/mindloop/neuron/internal/graph"
)

// LoadGraph reads and parses a graph .brain file.
func LoadGraph(path string) (*graph.Graph, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open graph file: %w", err)
	}
	defer f.Close()
	g, err := ParseGraph(f)
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	return g, nil
}

// ParseGraph parses graph records from r. Node records are
//
//	N|id|category|label|baseline|decay|threshold[|key=value,...]
//
// and edge records are
//
//	E|source|target|type|weight
//
// Blank lines and lines starting with '#' are skipped. Edges are
// deferred until every node record has been seen, so record order
// within the file does not matter. Structural validation problems are
// folded into the returned error alongside per-line diagnostics.
func ParseGraph(r io.Reader) (*graph.Graph, error) {
	g := graph.New()
	var problems []string

	type pendingEdge struct {
		line int
		edge *graph.Edge
	}
	var pending []pendingEdge

	scanner := bufio.NewScanner(r)
	lineNum := 0
	for scanner.Scan() {
		lineNum++
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		parts := splitRecord(line)
		switch parts[0] {
		case "N":
			if len(parts) < 7 {
				problems = append(problems, fmt.Sprintf("line %d: node record needs 7 fields, got %d", lineNum, len(parts)))
				continue
			}
			baseline, err1 := strconv.ParseFloat(parts[4], 64)
			decay, err2 := strconv.ParseFloat(parts[5], 64)
			threshold, err3 := strconv.ParseFloat(parts[6], 64)
			if err1 != nil || err2 != nil || err3 != nil {
				problems = append(problems, fmt.Sprintf("line %d: node record has non-numeric fields", lineNum))
				continue
			}
			node, err := graph.NewNode(parts[1], graph.Category(parts[2]), parts[3], baseline, decay, threshold)
			if err != nil {
				problems = append(problems, fmt.Sprintf("line %d: %v", lineNum, err))
				continue
			}
			if len(parts) >= 8 && parts[7] != "" {
				node.Metadata = parseMetadata(parts[7])
			}
			if err := g.AddNode(node); err != nil {
				problems = append(problems, fmt.Sprintf("line %d: %v", lineNum, err))
			}

		case "E":
			if len(parts) < 5 {
				problems = append(problems, fmt.Sprintf("line %d: edge record needs 5 fields, got %d", lineNum, len(parts)))
				continue
			}
			weight, err := strconv.ParseFloat(parts[4], 64)
			if err != nil {
				problems = append(problems, fmt.Sprintf("line %d: edge weight %q is not numeric", lineNum, parts[4]))
				continue
			}
			edge, err := graph.NewEdge(parts[1], parts[2], graph.EdgeType(parts[3]), weight)
			if err != nil {
				problems = append(problems, fmt.Sprintf("line %d: %v", lineNum, err))
				continue
			}
			pending = append(pending, pendingEdge{line: lineNum, edge: edge})

		default:
			problems = append(problems, fmt.Sprintf("line %d: unknown record type %q", lineNum, parts[0]))
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read graph records: %w", err)
	}

	for _, p := range pending {
		if err := g.AddEdge(p.edge); err != nil {
			problems = append(problems, fmt.Sprintf("line %d: %v", p.line, err))
		}
	}

	problems = append(problems, g.Validate()...)

	if len(problems) > 0 {
		return nil, fmt.Errorf("graph validation problems:\n%s", strings.Join(problems, "\n"))
	}
	return g, nil
}

// splitRecord splits a pipe-delimited record and trims each field.
func splitRecord(line string) []string {
	parts := strings.Split(line, "|")
	for i := range parts {
		parts[i] = strings.TrimSpace(parts[i])
	}
	return parts
}

// parseMetadata parses the optional trailing key=value,key=value field
// of a node record. Malformed pairs are dropped silently; metadata has
// no semantic effect on the simulation.
func parseMetadata(field string) map[string]string {
	meta := make(map[string]string)
	for _, pair := range strings.Split(field, ",") {
		k, v, ok := strings.Cut(strings.TrimSpace(pair), "=")
		if ok && k != "" {
			meta[k] = v
		}
	}
	if len(meta) == 0 {
		return nil
	}
	return meta
}
