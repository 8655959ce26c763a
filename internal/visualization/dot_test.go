package visualization

import (
	"strings"
	"testing"

	"github.com/mindloop/neuron/internal/graph"
)

func testGraph(t *testing.T) *graph.Graph {
	t.Helper()
	g := graph.New()

	nodes := []struct {
		id  string
		cat graph.Category
	}{
		{"c_robot", graph.CategoryConcept},
		{"t_tech", graph.CategoryTopic},
		{"goal_inform", graph.CategoryGoal},
	}
	for _, spec := range nodes {
		n, err := graph.NewNode(spec.id, spec.cat, spec.id, 0, 0.05, 0.3)
		if err != nil {
			t.Fatalf("NewNode(%s): %v", spec.id, err)
		}
		if err := g.AddNode(n); err != nil {
			t.Fatalf("AddNode(%s): %v", spec.id, err)
		}
	}

	edges := []struct {
		src, tgt string
		kind     graph.EdgeType
	}{
		{"c_robot", "t_tech", graph.EdgeExcitatory},
		{"goal_inform", "c_robot", graph.EdgeAssociative},
	}
	for _, spec := range edges {
		e, err := graph.NewEdge(spec.src, spec.tgt, spec.kind, 0.5)
		if err != nil {
			t.Fatalf("NewEdge: %v", err)
		}
		if err := g.AddEdge(e); err != nil {
			t.Fatalf("AddEdge: %v", err)
		}
	}
	return g
}

func TestRenderDOT(t *testing.T) {
	dot := RenderDOT(testGraph(t))

	if !strings.HasPrefix(dot, "digraph neuron {") {
		t.Errorf("DOT missing digraph header:\n%s", dot)
	}
	for _, want := range []string{
		`"c_robot"`,
		`fillcolor="steelblue"`,
		`fillcolor="goldenrod"`,
		`"c_robot" -> "t_tech"`,
		`style=dotted`, // associative edge
	} {
		if !strings.Contains(dot, want) {
			t.Errorf("DOT missing %s:\n%s", want, dot)
		}
	}
	if !strings.HasSuffix(strings.TrimSpace(dot), "}") {
		t.Error("DOT not closed")
	}
}

func TestRenderDOT_TruncatesLongLabels(t *testing.T) {
	g := graph.New()
	long := strings.Repeat("x", 60)
	n, err := graph.NewNode("c_long", graph.CategoryConcept, long, 0, 0.05, 0.3)
	if err != nil {
		t.Fatalf("NewNode: %v", err)
	}
	if err := g.AddNode(n); err != nil {
		t.Fatalf("AddNode: %v", err)
	}

	dot := RenderDOT(g)
	if strings.Contains(dot, long) {
		t.Error("long label not truncated")
	}
	if !strings.Contains(dot, "...") {
		t.Error("truncated label missing ellipsis")
	}
}

func TestRenderJSON(t *testing.T) {
	data := RenderJSON(testGraph(t))

	if data["node_count"] != 3 || data["edge_count"] != 2 {
		t.Errorf("counts = %v/%v, want 3/2", data["node_count"], data["edge_count"])
	}

	nodes := data["nodes"].([]map[string]interface{})
	if nodes[0]["id"] != "c_robot" || nodes[0]["category"] != "concept" {
		t.Errorf("first node = %v", nodes[0])
	}

	edges := data["edges"].([]map[string]interface{})
	if edges[1]["type"] != "associative" {
		t.Errorf("second edge = %v", edges[1])
	}
}
