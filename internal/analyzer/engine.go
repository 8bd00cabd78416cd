package analyzer

import (
	"context"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/ludo-technologies/codesim/domain"
	"github.com/ludo-technologies/codesim/internal/parser"
)

// Engine compares source units and classifies clones. It keeps no mutable
// state; the registry it was built with is read-only, so one Engine may serve
// many goroutines.
type Engine struct {
	registry   *parser.Registry
	parser     *parser.Parser
	analyzers  []SimilarityAnalyzer
	classifier *CloneClassifier
}

// NewEngine creates an engine over the given language registry
func NewEngine(registry *parser.Registry) *Engine {
	return &Engine{
		registry: registry,
		parser:   parser.New(registry),
		analyzers: []SimilarityAnalyzer{
			NewTextualSimilarityAnalyzer(),
			NewTokenSimilarityAnalyzer(true, false),
			NewTokenSimilarityAnalyzer(true, true),
			NewTokenSimilarityAnalyzer(false, false),
			NewTokenSimilarityAnalyzer(false, true),
			NewIdentifierSimilarityAnalyzer(),
			NewStructuralSimilarityAnalyzer(),
			NewGappedAlignmentAnalyzer(),
			NewIntertwinedAlignmentAnalyzer(),
		},
		classifier: NewCloneClassifier(),
	}
}

// Registry returns the language registry
func (e *Engine) Registry() *parser.Registry {
	return e.registry
}

// Compare compares two snippets in the same language.
func (e *Engine) Compare(ctx context.Context, code1, code2 string, lang domain.Language, threshold float64) (*domain.ComparisonResult, error) {
	return e.CompareUnits(ctx,
		domain.SourceUnit{Name: "code1", Text: code1, Language: lang},
		domain.SourceUnit{Name: "code2", Text: code2, Language: lang},
		threshold,
	)
}

// CompareUnits analyzes both units and compares them. It returns either a
// complete result or a single typed error.
func (e *Engine) CompareUnits(ctx context.Context, a, b domain.SourceUnit, threshold float64) (*domain.ComparisonResult, error) {
	result, _, _, err := e.CompareUnitsDetailed(ctx, a, b, threshold)
	return result, err
}

// CompareUnitsDetailed is CompareUnits that also returns both representations.
// Checks run in order: language lookup, language mismatch, threshold.
func (e *Engine) CompareUnitsDetailed(ctx context.Context, a, b domain.SourceUnit, threshold float64) (*domain.ComparisonResult, *Representation, *Representation, error) {
	if _, err := e.registry.Lookup(a.Language); err != nil {
		return nil, nil, nil, err
	}
	if a.Language != b.Language {
		return nil, nil, nil, domain.NewInvalidInputError(
			fmt.Sprintf("cannot compare %s with %s", a.Language, b.Language), nil)
	}
	if err := validateThreshold(threshold); err != nil {
		return nil, nil, nil, err
	}

	r1, err := e.Analyze(ctx, a)
	if err != nil {
		return nil, nil, nil, err
	}
	r2, err := e.Analyze(ctx, b)
	if err != nil {
		return nil, nil, nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, nil, nil, err
	}
	result, err := e.CompareRepresentations(r1, r2, threshold)
	if err != nil {
		return nil, nil, nil, err
	}
	return result, r1, r2, nil
}

// Analyze parses a unit and extracts every representation the comparators use.
func (e *Engine) Analyze(ctx context.Context, unit domain.SourceUnit) (*Representation, error) {
	spec, err := e.registry.Lookup(unit.Language)
	if err != nil {
		return nil, err
	}
	if !utf8.ValidString(unit.Text) {
		return nil, domain.NewDecodeError(unit.Name, nil)
	}

	tree, err := e.parser.Parse(ctx, []byte(unit.Text), unit.Language)
	if err != nil {
		return nil, domain.NewParseError(unit.Name, err)
	}

	normalized := NormalizeSource(tree, spec)
	normalizedTree, err := e.parser.Parse(ctx, []byte(normalized), unit.Language)
	if err != nil {
		return nil, domain.NewParseError(unit.Name, err)
	}

	graph := BuildStructuralGraph(tree)
	return &Representation{
		Name:             unit.Name,
		Language:         unit.Language,
		Text:             unit.Text,
		Stripped:         strings.TrimSpace(unit.Text),
		runes:            splitRunes(unit.Text),
		Tokens:           ExtractTokens(tree),
		Normalized:       normalized,
		NormalizedTokens: ExtractTokens(normalizedTree),
		Identifiers:      ExtractIdentifiers(unit.Text, spec),
		Graph:            graph,
		GraphMetrics:     graph.Metrics(),
		ErrorNodes:       tree.ErrorCount(),
	}, nil
}

// CompareRepresentations computes every score and verdict for two analyzed
// units. It does no parsing and never fails on degenerate input.
func (e *Engine) CompareRepresentations(r1, r2 *Representation, threshold float64) (*domain.ComparisonResult, error) {
	if r1 == nil || r2 == nil {
		return nil, domain.NewInvalidInputError("representation is nil", nil)
	}
	if r1.Language != r2.Language {
		return nil, domain.NewInvalidInputError(
			fmt.Sprintf("cannot compare %s with %s", r1.Language, r2.Language), nil)
	}
	if err := validateThreshold(threshold); err != nil {
		return nil, err
	}

	scores := make(map[domain.MetricName]float64, len(e.analyzers)+1)
	for _, a := range e.analyzers {
		scores[a.Metric()] = a.ComputeSimilarity(r1, r2)
	}
	scores[domain.MetricCombined] = CombinedSimilarity(
		scores[domain.MetricText],
		scores[domain.MetricTokenUnordered],
		scores[domain.MetricGraph],
	)

	metrics := PairMetricsFromScores(r1.Stripped == r2.Stripped, scores)

	result := &domain.ComparisonResult{
		Language:  r1.Language,
		Threshold: threshold,
		Verdicts:  e.classifier.Classify(metrics, threshold),
		First:     r1.Stats(),
		Second:    r2.Stats(),
	}
	for _, name := range domain.AllMetrics() {
		result.Scores = append(result.Scores, domain.SimilarityScore{Metric: name, Value: scores[name]})
	}
	return result, nil
}

func validateThreshold(threshold float64) error {
	if !(threshold >= 0.0 && threshold <= 1.0) {
		return domain.NewValidationError(fmt.Sprintf("threshold must be between 0.0 and 1.0, got %v", threshold))
	}
	return nil
}
