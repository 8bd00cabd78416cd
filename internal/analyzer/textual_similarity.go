package analyzer

import (
	"github.com/ludo-technologies/codesim/domain"
)

// TextualSimilarityAnalyzer compares the raw texts of two units character by
// character. Comments and whitespace count.
type TextualSimilarityAnalyzer struct{}

// NewTextualSimilarityAnalyzer creates a new textual similarity analyzer
func NewTextualSimilarityAnalyzer() *TextualSimilarityAnalyzer {
	return &TextualSimilarityAnalyzer{}
}

// ComputeSimilarity returns the character sequence ratio of the raw texts
func (t *TextualSimilarityAnalyzer) ComputeSimilarity(r1, r2 *Representation) float64 {
	return SequenceRatio(r1.runes, r2.runes)
}

// Metric returns the score name this analyzer fills
func (t *TextualSimilarityAnalyzer) Metric() domain.MetricName {
	return domain.MetricText
}

// AlignmentAnalyzer measures how much of the shorter ordered token sequence is
// covered by matching blocks of at least minBlockSize tokens.
type AlignmentAnalyzer struct {
	minBlockSize int
	metric       domain.MetricName
}

// NewGappedAlignmentAnalyzer counts every matching block
func NewGappedAlignmentAnalyzer() *AlignmentAnalyzer {
	return &AlignmentAnalyzer{minBlockSize: 1, metric: domain.MetricGappedMatchRatio}
}

// NewIntertwinedAlignmentAnalyzer counts only blocks longer than one token
func NewIntertwinedAlignmentAnalyzer() *AlignmentAnalyzer {
	return &AlignmentAnalyzer{minBlockSize: 2, metric: domain.MetricIntertwinedMatchRatio}
}

// ComputeSimilarity returns the block coverage ratio of the ordered tokens
func (a *AlignmentAnalyzer) ComputeSimilarity(r1, r2 *Representation) float64 {
	return BlockMatchRatio(r1.Tokens.Ordered, r2.Tokens.Ordered, a.minBlockSize)
}

// Metric returns the score name this analyzer fills
func (a *AlignmentAnalyzer) Metric() domain.MetricName {
	return a.metric
}
