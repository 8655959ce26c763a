// Package graph implements the brain graph: typed nodes connected by
// weighted, typed edges, with adjacency indices kept consistent at
// insertion time. All traversal orders are derived from insertion order
// so that simulation runs over the same graph are fully deterministic.
package graph

import (
	"errors"
	"fmt"
)

// ErrDuplicateID is returned when inserting a node whose ID already exists.
var ErrDuplicateID = errors.New("duplicate node id")

// ErrDanglingRef is returned when inserting an edge whose endpoint is
// not present in the graph.
var ErrDanglingRef = errors.New("dangling edge reference")

// Graph owns all nodes and edges of a brain. Nodes and edges are stored
// in insertion order; an id-to-index table provides O(1) lookup without
// giving up the stable iteration order the dynamics engine depends on.
// Graph is not safe for concurrent use; one session drives one graph.
type Graph struct {
	nodes    []*Node
	index    map[string]int
	edges    []*Edge
	outgoing map[string][]*Edge
	incoming map[string][]*Edge
}

// New creates an empty graph.
func New() *Graph {
	return &Graph{
		index:    make(map[string]int),
		outgoing: make(map[string][]*Edge),
		incoming: make(map[string][]*Edge),
	}
}

// AddNode inserts a node. Returns ErrDuplicateID if the id is taken.
func (g *Graph) AddNode(n *Node) error {
	if _, exists := g.index[n.ID]; exists {
		return fmt.Errorf("%w: %s", ErrDuplicateID, n.ID)
	}
	g.index[n.ID] = len(g.nodes)
	g.nodes = append(g.nodes, n)
	if _, ok := g.outgoing[n.ID]; !ok {
		g.outgoing[n.ID] = nil
	}
	if _, ok := g.incoming[n.ID]; !ok {
		g.incoming[n.ID] = nil
	}
	return nil
}

// AddEdge inserts an edge. Both endpoints must already exist; otherwise
// ErrDanglingRef is returned and the graph is unchanged.
func (g *Graph) AddEdge(e *Edge) error {
	if _, ok := g.index[e.Source]; !ok {
		return fmt.Errorf("%w: edge source %q not found", ErrDanglingRef, e.Source)
	}
	if _, ok := g.index[e.Target]; !ok {
		return fmt.Errorf("%w: edge target %q not found", ErrDanglingRef, e.Target)
	}
	g.edges = append(g.edges, e)
	g.outgoing[e.Source] = append(g.outgoing[e.Source], e)
	g.incoming[e.Target] = append(g.incoming[e.Target], e)
	return nil
}

// Node returns the node with the given id, or nil if absent.
func (g *Graph) Node(id string) *Node {
	i, ok := g.index[id]
	if !ok {
		return nil
	}
	return g.nodes[i]
}

// Nodes returns all nodes in insertion order. Callers must not modify
// the returned slice.
func (g *Graph) Nodes() []*Node {
	return g.nodes
}

// Edges returns all edges in insertion order. Callers must not modify
// the returned slice.
func (g *Graph) Edges() []*Edge {
	return g.edges
}

// Outgoing returns the edges whose source is the given node, in
// insertion order.
func (g *Graph) Outgoing(id string) []*Edge {
	return g.outgoing[id]
}

// Incoming returns the edges whose target is the given node, in
// insertion order.
func (g *Graph) Incoming(id string) []*Edge {
	return g.incoming[id]
}

// NodesByCategory returns all nodes with the given category, preserving
// insertion order.
func (g *Graph) NodesByCategory(c Category) []*Node {
	var out []*Node
	for _, n := range g.nodes {
		if n.Category == c {
			out = append(out, n)
		}
	}
	return out
}

// NodeCount returns the number of nodes.
func (g *Graph) NodeCount() int { return len(g.nodes) }

// EdgeCount returns the number of edges.
func (g *Graph) EdgeCount() int { return len(g.edges) }

// ResetActivations restores every node to its baseline activation.
func (g *Graph) ResetActivations() {
	for _, n := range g.nodes {
		n.Reset()
	}
}

// ResetContributions zeroes every edge's contribution accumulator.
func (g *Graph) ResetContributions() {
	for _, e := range g.edges {
		e.Contribution = 0
	}
}

// Validate returns descriptive structural problems without failing:
// edges referencing missing endpoints, and the absence of any goal
// node. Callers decide whether an inconsistent graph is usable.
func (g *Graph) Validate() []string {
	var problems []string
	for _, e := range g.edges {
		if _, ok := g.index[e.Source]; !ok {
			problems = append(problems, fmt.Sprintf("edge references missing source: %s", e.Source))
		}
		if _, ok := g.index[e.Target]; !ok {
			problems = append(problems, fmt.Sprintf("edge references missing target: %s", e.Target))
		}
	}
	if len(g.NodesByCategory(CategoryGoal)) == 0 {
		problems = append(problems, "no goal nodes defined in graph")
	}
	return problems
}

// Summary returns a one-line description of the graph size.
func (g *Graph) Summary() string {
	return fmt.Sprintf("%d nodes, %d edges", len(g.nodes), len(g.edges))
}
