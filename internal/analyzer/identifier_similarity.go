package analyzer

import (
	"regexp"
	"sort"

	"github.com/ludo-technologies/codesim/domain"
	"github.com/ludo-technologies/codesim/internal/parser"
)

var identifierRegex = regexp.MustCompile(`\b[a-zA-Z_][a-zA-Z0-9_]*\b`)

// IdentifierSet is the set of distinct non-keyword names found in a text.
type IdentifierSet map[string]struct{}

// ExtractIdentifiers scans raw text for identifier-like words and drops the
// keywords of the given language.
func ExtractIdentifiers(text string, spec *parser.LanguageSpec) IdentifierSet {
	set := make(IdentifierSet)
	for _, word := range identifierRegex.FindAllString(text, -1) {
		if spec.IsKeyword(word) {
			continue
		}
		set[word] = struct{}{}
	}
	return set
}

// Sorted returns the identifiers in lexical order
func (s IdentifierSet) Sorted() []string {
	out := make([]string, 0, len(s))
	for id := range s {
		out = append(out, id)
	}
	sort.Strings(out)
	return out
}

// JaccardIndex computes |A ∩ B| / |A ∪ B|. Two empty sets are identical (1.0).
func JaccardIndex(a, b IdentifierSet) float64 {
	if len(a) == 0 && len(b) == 0 {
		return 1.0
	}
	intersection := 0
	for id := range a {
		if _, ok := b[id]; ok {
			intersection++
		}
	}
	union := len(a) + len(b) - intersection
	return float64(intersection) / float64(union)
}

// IdentifierSimilarityAnalyzer scores renamed clones by identifier overlap.
type IdentifierSimilarityAnalyzer struct{}

// NewIdentifierSimilarityAnalyzer creates a new identifier analyzer
func NewIdentifierSimilarityAnalyzer() *IdentifierSimilarityAnalyzer {
	return &IdentifierSimilarityAnalyzer{}
}

// ComputeSimilarity returns the Jaccard index of the identifier sets
func (a *IdentifierSimilarityAnalyzer) ComputeSimilarity(r1, r2 *Representation) float64 {
	return JaccardIndex(r1.Identifiers, r2.Identifiers)
}

// Metric returns the score name this analyzer fills
func (a *IdentifierSimilarityAnalyzer) Metric() domain.MetricName {
	return domain.MetricIdentifierJaccard
}
