package analyzer

import (
	"github.com/ludo-technologies/codesim/domain"
)

// SimilarityAnalyzer computes one named similarity score for a pair of units.
type SimilarityAnalyzer interface {
	// ComputeSimilarity returns a similarity score between 0.0 and 1.0
	ComputeSimilarity(r1, r2 *Representation) float64

	// Metric returns the name of the score this analyzer fills
	Metric() domain.MetricName
}

// PairMetrics are the inputs of the clone predicates for one pair.
type PairMetrics struct {
	Exact                    bool
	Text                     float64
	TokenOrdered             float64
	TokenUnordered           float64
	TokenUnorderedNormalized float64
	Identifier               float64
	GappedRatio              float64
	IntertwinedRatio         float64
}

// PairMetricsFromScores picks the predicate inputs out of computed scores.
func PairMetricsFromScores(exact bool, scores map[domain.MetricName]float64) PairMetrics {
	return PairMetrics{
		Exact:                    exact,
		Text:                     scores[domain.MetricText],
		TokenOrdered:             scores[domain.MetricTokenOrdered],
		TokenUnordered:           scores[domain.MetricTokenUnordered],
		TokenUnorderedNormalized: scores[domain.MetricTokenUnorderedNormalized],
		Identifier:               scores[domain.MetricIdentifierJaccard],
		GappedRatio:              scores[domain.MetricGappedMatchRatio],
		IntertwinedRatio:         scores[domain.MetricIntertwinedMatchRatio],
	}
}

type clonePredicate struct {
	name  domain.CloneTypeName
	holds func(m PairMetrics, threshold float64) bool
}

// CloneClassifier evaluates every clone predicate over one set of metrics.
// Predicates are independent; all comparisons against the threshold are strict.
type CloneClassifier struct {
	predicates []clonePredicate
}

// NewCloneClassifier creates a classifier with the built-in predicates
func NewCloneClassifier() *CloneClassifier {
	nearMiss := func(m PairMetrics, th float64) bool {
		return m.Text > th || m.TokenUnordered > th || m.TokenUnorderedNormalized > th
	}
	reordered := func(m PairMetrics, th float64) bool {
		return m.TokenUnordered > th
	}

	return &CloneClassifier{
		predicates: []clonePredicate{
			{domain.CloneExact, func(m PairMetrics, _ float64) bool { return m.Exact }},
			{domain.CloneNearMiss, nearMiss},
			{domain.CloneParameterized, nearMiss},
			{domain.CloneFunction, nearMiss},
			{domain.CloneNonContiguous, func(m PairMetrics, th float64) bool {
				return m.TokenUnordered > th || m.TokenOrdered > th
			}},
			{domain.CloneStructural, func(m PairMetrics, th float64) bool { return m.TokenOrdered > th }},
			{domain.CloneReordered, reordered},
			{domain.CloneFunctionReordered, reordered},
			{domain.CloneGapped, func(m PairMetrics, th float64) bool { return m.GappedRatio > th }},
			{domain.CloneIntertwined, func(m PairMetrics, th float64) bool { return m.IntertwinedRatio > th }},
			{domain.CloneSemantic, func(m PairMetrics, th float64) bool {
				return (m.Text+m.TokenUnordered)/2 > th
			}},
		},
	}
}

// Classify returns one verdict per clone type in report order
func (c *CloneClassifier) Classify(m PairMetrics, threshold float64) []domain.CloneVerdict {
	verdicts := make([]domain.CloneVerdict, 0, len(c.predicates))
	for _, p := range c.predicates {
		verdicts = append(verdicts, domain.CloneVerdict{
			Type:      p.name,
			Detected:  p.holds(m, threshold),
			Threshold: threshold,
		})
	}
	return verdicts
}

// CombinedSimilarity is the headline score: the mean of text, unordered
// token and graph similarity. It plays no part in classification.
func CombinedSimilarity(text, tokenUnordered, graph float64) float64 {
	return (text + tokenUnordered + graph) / 3
}
