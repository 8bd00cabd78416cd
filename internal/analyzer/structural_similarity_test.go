package analyzer

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ludo-technologies/codesim/domain"
	"github.com/ludo-technologies/codesim/internal/parser"
)

func parseC(t *testing.T, src string) *parser.SyntaxTree {
	t.Helper()
	tree, err := parser.New(parser.NewDefaultRegistry()).Parse(context.Background(), []byte(src), domain.LanguageC)
	require.NoError(t, err)
	return tree
}

func TestMetricSimilarity(t *testing.T) {
	assert.Equal(t, 1.0, metricSimilarity(0, 0))
	assert.Equal(t, 1.0, metricSimilarity(7, 7))
	assert.InDelta(t, 0.5, metricSimilarity(2, 4), 1e-9)
	assert.InDelta(t, 0.5, metricSimilarity(4, 2), 1e-9)
	assert.Equal(t, 0.0, metricSimilarity(0, 3))
}

func TestGraphSimilarity(t *testing.T) {
	t.Run("EmptyGraphs", func(t *testing.T) {
		assert.Equal(t, 1.0, GraphSimilarity(GraphMetrics{}, GraphMetrics{}))
	})

	t.Run("KnownValues", func(t *testing.T) {
		a := GraphMetrics{Nodes: 4, Edges: 3, AverageDegree: 1.5}
		b := GraphMetrics{Nodes: 2, Edges: 1, AverageDegree: 1.0}
		// (0.5 + 1/3 + 2/3) / 3
		assert.InDelta(t, 0.5, GraphSimilarity(a, b), 1e-9)
		assert.Equal(t, GraphSimilarity(a, b), GraphSimilarity(b, a))
	})
}

func TestBuildStructuralGraph(t *testing.T) {
	tree := parseC(t, "int add(int a,int b){return a+b;}")
	g := BuildStructuralGraph(tree)

	t.Run("MirrorsTree", func(t *testing.T) {
		require.Len(t, g.Nodes, tree.Len())
		assert.Len(t, g.Edges, tree.Len()-1)
		for i, n := range g.Nodes {
			assert.Equal(t, i, n.ID)
			assert.Equal(t, tree.Nodes[i].Type, n.Type)
		}
		for _, e := range g.Edges {
			assert.Equal(t, e.From, tree.Nodes[e.To].Parent)
		}
	})

	t.Run("Metrics", func(t *testing.T) {
		m := g.Metrics()
		assert.Equal(t, tree.Len(), m.Nodes)
		assert.Equal(t, tree.Len()-1, m.Edges)
		assert.InDelta(t, 2*float64(m.Edges)/float64(m.Nodes), m.AverageDegree, 1e-9)
	})

	t.Run("EmptyGraphMetrics", func(t *testing.T) {
		m := (&StructuralGraph{}).Metrics()
		assert.Equal(t, GraphMetrics{}, m)
	})

	t.Run("ToDOT", func(t *testing.T) {
		dot := g.ToDOT("add")
		assert.True(t, strings.HasPrefix(dot, "digraph \"add\" {"))
		assert.Contains(t, dot, "n0 -> n1;")
		assert.Contains(t, dot, "translation_unit")
		assert.True(t, strings.HasSuffix(dot, "}\n"))
	})
}

func TestExtractTokensAndNormalize(t *testing.T) {
	t.Run("UnorderedIsSortedOrdered", func(t *testing.T) {
		tokens := ExtractTokens(parseC(t, "int add(int a,int b){return a+b;}"))
		require.Equal(t, len(tokens.Ordered), len(tokens.Unordered))
		assert.Contains(t, tokens.Ordered, "identifier")
		assert.Contains(t, tokens.Ordered, "return")
		assert.IsNonDecreasing(t, tokens.Unordered)
		assert.ElementsMatch(t, tokens.Ordered, tokens.Unordered)
	})

	t.Run("NormalizerDropsComments", func(t *testing.T) {
		tree := parseC(t, "int a; // note\n/* block */ int b;")
		got := NormalizeSource(tree, lookupSpec(t, domain.LanguageC))
		assert.Equal(t, "inta;intb;", got)
	})
}
