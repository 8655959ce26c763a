// Package visualization renders brain graphs in DOT and JSON formats.
package visualization

import (
	"fmt"
	"strings"

	"github.com/mindloop/neuron/internal/graph"
)

// Format specifies the output format for graph rendering.
type Format string

const (
	FormatDOT  Format = "dot"
	FormatJSON Format = "json"
)

// nodeColors maps node categories to DOT colors.
var nodeColors = map[graph.Category]string{
	graph.CategoryConcept: "steelblue",
	graph.CategoryTopic:   "mediumseagreen",
	graph.CategoryEmotion: "tomato",
	graph.CategoryGoal:    "goldenrod",
	graph.CategoryMotor:   "orchid",
	graph.CategoryLexeme:  "lightslategray",
}

// edgeStyles maps edge types to DOT styles.
var edgeStyles = map[graph.EdgeType]string{
	graph.EdgeExcitatory:  "solid",
	graph.EdgeInhibitory:  "dashed",
	graph.EdgeAssociative: "dotted",
	graph.EdgeCausal:      "bold",
}

// RenderDOT produces a Graphviz DOT representation of the brain graph.
// Node tooltips carry the live activation so a rendered graph doubles as
// a state snapshot.
func RenderDOT(g *graph.Graph) string {
	var b strings.Builder
	b.WriteString("digraph neuron {\n")
	b.WriteString("  rankdir=LR;\n")
	b.WriteString("  node [shape=box, style=filled, fontname=\"Helvetica\"];\n")
	b.WriteString("  edge [fontname=\"Helvetica\", fontsize=10];\n\n")

	for _, n := range g.Nodes() {
		color := nodeColors[n.Category]
		if color == "" {
			color = "lightgray"
		}
		label := truncate(n.Label, 40)
		b.WriteString(fmt.Sprintf("  %q [label=%q, fillcolor=%q, tooltip=\"activation=%.2f threshold=%.2f\"];\n",
			n.ID, label, color, n.Activation, n.Threshold))
	}
	b.WriteString("\n")

	for _, e := range g.Edges() {
		style := edgeStyles[e.Type]
		if style == "" {
			style = "solid"
		}
		b.WriteString(fmt.Sprintf("  %q -> %q [label=%q, style=%s, weight=\"%.1f\"];\n",
			e.Source, e.Target, e.Type, style, e.Weight))
	}

	b.WriteString("}\n")
	return b.String()
}

// RenderJSON produces a JSON-ready graph representation with nodes and
// edges arrays.
func RenderJSON(g *graph.Graph) map[string]interface{} {
	nodes := g.Nodes()
	jsonNodes := make([]map[string]interface{}, 0, len(nodes))
	for _, n := range nodes {
		jsonNodes = append(jsonNodes, map[string]interface{}{
			"id":         n.ID,
			"label":      n.Label,
			"category":   string(n.Category),
			"activation": n.Activation,
			"baseline":   n.Baseline,
			"threshold":  n.Threshold,
		})
	}

	edges := g.Edges()
	jsonEdges := make([]map[string]interface{}, 0, len(edges))
	for _, e := range edges {
		jsonEdges = append(jsonEdges, map[string]interface{}{
			"source": e.Source,
			"target": e.Target,
			"type":   string(e.Type),
			"weight": e.Weight,
		})
	}

	return map[string]interface{}{
		"nodes":      jsonNodes,
		"edges":      jsonEdges,
		"node_count": len(jsonNodes),
		"edge_count": len(jsonEdges),
	}
}

// truncate shortens a string to maxLen, adding "..." if truncated.
func truncate(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	return s[:maxLen-3] + "..."
}
