package analyzer

import (
	"fmt"
	"math"
	"strings"

	"github.com/ludo-technologies/codesim/domain"
	"github.com/ludo-technologies/codesim/internal/parser"
)

// GraphNode mirrors one syntax tree node. ID is the arena index.
type GraphNode struct {
	ID      int          `json:"id"`
	Type    string       `json:"type"`
	Start   parser.Point `json:"start"`
	End     parser.Point `json:"end"`
	IsError bool         `json:"is_error,omitempty"`
}

// GraphEdge points from a parent to one of its children
type GraphEdge struct {
	From int `json:"from"`
	To   int `json:"to"`
}

// StructuralGraph is a directed graph with the shape of a syntax tree
type StructuralGraph struct {
	Nodes []GraphNode `json:"nodes"`
	Edges []GraphEdge `json:"edges"`
}

// GraphMetrics are the size and shape figures compared between graphs
type GraphMetrics struct {
	Nodes         int     `json:"nodes"`
	Edges         int     `json:"edges"`
	AverageDegree float64 `json:"average_degree"`
}

// BuildStructuralGraph creates one node per tree node and one edge per
// parent/child pair.
func BuildStructuralGraph(tree *parser.SyntaxTree) *StructuralGraph {
	g := &StructuralGraph{
		Nodes: make([]GraphNode, 0, tree.Len()),
	}
	tree.Walk(func(i int) bool {
		n := &tree.Nodes[i]
		g.Nodes = append(g.Nodes, GraphNode{
			ID:      i,
			Type:    n.Type,
			Start:   n.Start,
			End:     n.End,
			IsError: n.IsError || n.IsMissing,
		})
		for _, c := range n.Children {
			g.Edges = append(g.Edges, GraphEdge{From: i, To: c})
		}
		return true
	})
	return g
}

// Metrics computes N, E and the average degree. Every edge adds one to the
// degree of both ends, so the average is 2E/N; it is 0 for an empty graph.
func (g *StructuralGraph) Metrics() GraphMetrics {
	m := GraphMetrics{Nodes: len(g.Nodes), Edges: len(g.Edges)}
	if m.Nodes > 0 {
		m.AverageDegree = 2 * float64(m.Edges) / float64(m.Nodes)
	}
	return m
}

// GraphSimilarity is the mean of the per-metric similarities of two graphs.
func GraphSimilarity(a, b GraphMetrics) float64 {
	nodes := metricSimilarity(float64(a.Nodes), float64(b.Nodes))
	edges := metricSimilarity(float64(a.Edges), float64(b.Edges))
	degree := metricSimilarity(a.AverageDegree, b.AverageDegree)
	return (nodes + edges + degree) / 3
}

// metricSimilarity returns 1 - |x-y|/max(x,y), or 1.0 when both are zero.
func metricSimilarity(x, y float64) float64 {
	hi := math.Max(x, y)
	if hi == 0 {
		return 1.0
	}
	return 1 - math.Abs(x-y)/hi
}

// ToDOT returns a Graphviz representation of the graph, highlighting error
// nodes in red
func (g *StructuralGraph) ToDOT(name string) string {
	var b strings.Builder
	fmt.Fprintf(&b, "digraph %q {\n", name)
	b.WriteString("  node [shape=box, fontname=\"monospace\"];\n")
	for _, n := range g.Nodes {
		label := fmt.Sprintf("%s\n%d:%d", n.Type, n.Start.Row+1, n.Start.Column)
		if n.IsError {
			fmt.Fprintf(&b, "  n%d [label=%q, style=filled, fillcolor=\"#ffe6e6\"];\n", n.ID, label)
		} else {
			fmt.Fprintf(&b, "  n%d [label=%q];\n", n.ID, label)
		}
	}
	for _, e := range g.Edges {
		fmt.Fprintf(&b, "  n%d -> n%d;\n", e.From, e.To)
	}
	b.WriteString("}\n")
	return b.String()
}

// StructuralSimilarityAnalyzer compares the graph metrics of two units
type StructuralSimilarityAnalyzer struct{}

// NewStructuralSimilarityAnalyzer creates a new structural analyzer
func NewStructuralSimilarityAnalyzer() *StructuralSimilarityAnalyzer {
	return &StructuralSimilarityAnalyzer{}
}

// ComputeSimilarity returns the graph similarity of the two units
func (s *StructuralSimilarityAnalyzer) ComputeSimilarity(r1, r2 *Representation) float64 {
	return GraphSimilarity(r1.GraphMetrics, r2.GraphMetrics)
}

// Metric returns the score name this analyzer fills
func (s *StructuralSimilarityAnalyzer) Metric() domain.MetricName {
	return domain.MetricGraph
}
