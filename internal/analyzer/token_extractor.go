package analyzer

import (
	"sort"

	"github.com/ludo-technologies/codesim/domain"
	"github.com/ludo-technologies/codesim/internal/parser"
)

// TokenSequence holds the leaf node types of a tree, once in traversal order
// and once sorted. Both slices always have the same length.
type TokenSequence struct {
	Ordered   []string
	Unordered []string
}

// Len returns the number of tokens
func (s TokenSequence) Len() int {
	return len(s.Ordered)
}

// ExtractTokens collects the type of every leaf in preorder.
func ExtractTokens(tree *parser.SyntaxTree) TokenSequence {
	var ordered []string
	for _, leaf := range tree.Leaves() {
		ordered = append(ordered, tree.Nodes[leaf].Type)
	}
	unordered := append([]string(nil), ordered...)
	sort.Strings(unordered)
	return TokenSequence{Ordered: ordered, Unordered: unordered}
}

// TokenSimilarityAnalyzer compares token sequences of two representations.
type TokenSimilarityAnalyzer struct {
	ordered    bool
	normalized bool
}

// NewTokenSimilarityAnalyzer creates a token analyzer. ordered selects the
// traversal-order sequence, normalized the tokens of the comment-free text.
func NewTokenSimilarityAnalyzer(ordered, normalized bool) *TokenSimilarityAnalyzer {
	return &TokenSimilarityAnalyzer{ordered: ordered, normalized: normalized}
}

// ComputeSimilarity returns the sequence ratio of the selected token lists
func (t *TokenSimilarityAnalyzer) ComputeSimilarity(r1, r2 *Representation) float64 {
	return SequenceRatio(t.pick(r1), t.pick(r2))
}

func (t *TokenSimilarityAnalyzer) pick(r *Representation) []string {
	seq := r.Tokens
	if t.normalized {
		seq = r.NormalizedTokens
	}
	if t.ordered {
		return seq.Ordered
	}
	return seq.Unordered
}

// Metric returns the score name this analyzer fills
func (t *TokenSimilarityAnalyzer) Metric() domain.MetricName {
	switch {
	case t.ordered && t.normalized:
		return domain.MetricTokenOrderedNormalized
	case t.ordered:
		return domain.MetricTokenOrdered
	case t.normalized:
		return domain.MetricTokenUnorderedNormalized
	default:
		return domain.MetricTokenUnordered
	}
}
