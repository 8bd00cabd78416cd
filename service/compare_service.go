package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sort"
	"sync/atomic"
	"time"

	"github.com/google/uuid"

	"github.com/ludo-technologies/codesim/domain"
	"github.com/ludo-technologies/codesim/internal/analyzer"
	"github.com/ludo-technologies/codesim/internal/version"
)

// CompareServiceImpl implements the domain.CompareService interface
type CompareServiceImpl struct {
	engine   *analyzer.Engine
	reader   domain.SourceReader
	progress domain.ProgressManager
	logger   *slog.Logger
}

// NewCompareService creates a new compare service.
// progress can be nil - the service can work without progress reporting
func NewCompareService(engine *analyzer.Engine, reader domain.SourceReader, progress domain.ProgressManager) *CompareServiceImpl {
	return &CompareServiceImpl{
		engine:   engine,
		reader:   reader,
		progress: progress,
		logger:   slog.Default().With("component", "compare_service"),
	}
}

// Compare compares the two units of the request
func (s *CompareServiceImpl) Compare(ctx context.Context, req *domain.CompareRequest) (*domain.CompareResponse, error) {
	if req == nil {
		return nil, domain.NewInvalidInputError("compare request cannot be nil", nil)
	}
	if err := req.Validate(); err != nil {
		return nil, fmt.Errorf("invalid compare request: %w", err)
	}

	startTime := time.Now()

	first, err := s.prepareUnit(req.First, req.Language, req.MaxInputBytes)
	if err != nil {
		return nil, err
	}
	second, err := s.prepareUnit(req.Second, req.Language, req.MaxInputBytes)
	if err != nil {
		return nil, err
	}

	result, r1, r2, err := s.engine.CompareUnitsDetailed(ctx, first, second, req.Threshold)
	if err != nil {
		return nil, fmt.Errorf("compare %s with %s: %w", first.Name, second.Name, err)
	}

	var graphs []domain.GraphExport
	if req.OutputFormat == domain.OutputFormatDOT {
		graphs = []domain.GraphExport{
			{Name: first.Name, DOT: r1.Graph.ToDOT(first.Name)},
			{Name: second.Name, DOT: r2.Graph.ToDOT(second.Name)},
		}
	}

	s.logger.Debug("compared units",
		"first", first.Name,
		"second", second.Name,
		"language", result.Language,
		"combined", scoreOrZero(result, domain.MetricCombined),
		"clone_types", len(result.DetectedTypes()))

	return &domain.CompareResponse{
		Result:      result,
		Graphs:      graphs,
		Duration:    time.Since(startTime).Milliseconds(),
		GeneratedAt: time.Now().Format(time.RFC3339),
		Version:     version.Version,
	}, nil
}

// prepareUnit fills in the unit language and enforces the size limit
func (s *CompareServiceImpl) prepareUnit(unit domain.SourceUnit, language domain.Language, maxBytes int64) (domain.SourceUnit, error) {
	if language != "" {
		unit.Language = language
	}
	if unit.Language == "" {
		lang, ok := s.engine.Registry().DetectLanguage(unit.Name)
		if !ok {
			return unit, domain.NewInvalidInputError(
				fmt.Sprintf("cannot detect the language of %q; specify a language", unit.Name), nil)
		}
		unit.Language = lang
	}
	if maxBytes > 0 && int64(len(unit.Text)) > maxBytes {
		return unit, domain.NewInputTooLargeError(unit.Name, int64(len(unit.Text)), maxBytes)
	}
	return unit, nil
}

// CompareBatch compares every pair of the files in req.Paths that share a
// language. Files that cannot be read or decoded are skipped and listed in
// the response.
func (s *CompareServiceImpl) CompareBatch(ctx context.Context, req *domain.BatchRequest) (*domain.BatchResponse, error) {
	if req == nil {
		return nil, domain.NewInvalidInputError("batch request cannot be nil", nil)
	}
	if err := req.Validate(); err != nil {
		return nil, fmt.Errorf("invalid batch request: %w", err)
	}
	if s.reader == nil {
		return nil, domain.NewInvalidInputError("batch comparison needs a source reader", nil)
	}

	startTime := time.Now()
	runID := uuid.NewString()
	logger := s.logger.With("run_id", runID)

	// one deadline covers analysis and comparison
	if req.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, req.Timeout)
		defer cancel()
	}

	executor := NewParallelExecutor()
	executor.SetMaxConcurrency(req.MaxConcurrency)
	executor.SetTimeout(0)

	cache, err := s.analyzeFiles(ctx, executor, req)
	if err != nil {
		return nil, err
	}

	analyzed := cache.Analyzed()
	pairs := buildPairs(analyzed)
	pruned := 0
	if req.Prefilter {
		candidates := prefilterPairs(analyzed, pairs)
		pruned = len(pairs) - len(candidates)
		pairs = candidates
	}
	logger.Info("batch analysis complete",
		"files", len(analyzed),
		"skipped", len(cache.Skipped()),
		"pairs", len(pairs),
		"pruned", pruned)

	results, err := s.comparePairs(ctx, executor, req, pairs)
	if err != nil {
		return nil, err
	}

	reported, stats := summarize(results, req)
	stats.PairsPruned = pruned
	stats.FilesAnalyzed = len(analyzed)
	stats.FilesSkipped = len(cache.Skipped())

	var skipped []string
	for _, u := range cache.Skipped() {
		skipped = append(skipped, fmt.Sprintf("%s: %v", u.Path, u.Err))
	}

	logger.Info("batch comparison complete",
		"pairs_compared", stats.PairsCompared,
		"pairs_reported", stats.PairsReported,
		"clone_pairs", stats.ClonePairs)

	return &domain.BatchResponse{
		RunID:       runID,
		Pairs:       reported,
		Statistics:  stats,
		Skipped:     skipped,
		Duration:    time.Since(startTime).Milliseconds(),
		GeneratedAt: time.Now().Format(time.RFC3339),
		Version:     version.Version,
	}, nil
}

// analyzeFiles reads and analyzes every file once, in parallel
func (s *CompareServiceImpl) analyzeFiles(ctx context.Context, executor domain.ParallelExecutor, req *domain.BatchRequest) (*RepresentationCache, error) {
	units := make([]*CachedUnit, len(req.Paths))
	tasks := make([]domain.ExecutableTask, len(req.Paths))

	for i, path := range req.Paths {
		tasks[i] = NewSimpleTask(path, true, func(ctx context.Context) (interface{}, error) {
			unit := &CachedUnit{Path: path}
			units[i] = unit

			src, err := s.reader.ReadSource(path, req.Language)
			if err == nil && req.MaxInputBytes > 0 && int64(len(src.Text)) > req.MaxInputBytes {
				err = domain.NewInputTooLargeError(path, int64(len(src.Text)), req.MaxInputBytes)
			}
			if err != nil {
				unit.Err = err
				return nil, nil
			}

			rep, err := s.engine.Analyze(ctx, src)
			if err != nil {
				if ctx.Err() != nil {
					return nil, err
				}
				unit.Err = err
				return nil, nil
			}
			unit.Representation = rep
			return rep, nil
		})
	}

	if err := executor.Execute(ctx, tasks); err != nil {
		return nil, fmt.Errorf("batch analysis: %w", err)
	}

	cache := NewRepresentationCache()
	for _, u := range units {
		cache.Put(u)
	}
	cache.Seal()
	return cache, nil
}

type unitPair struct {
	first, second *CachedUnit
}

// buildPairs pairs units of the same language, each unordered pair once
func buildPairs(units []*CachedUnit) []unitPair {
	var pairs []unitPair
	for i := 0; i < len(units); i++ {
		for j := i + 1; j < len(units); j++ {
			if units[i].Representation.Language != units[j].Representation.Language {
				continue
			}
			pairs = append(pairs, unitPair{first: units[i], second: units[j]})
		}
	}
	return pairs
}

// prefilterPairs keeps the pairs that share an LSH bucket
func prefilterPairs(units []*CachedUnit, pairs []unitPair) []unitPair {
	idx := analyzer.NewCandidateIndex(analyzer.DefaultLSHBands, analyzer.DefaultLSHRows)
	ids := make(map[*CachedUnit]int, len(units))
	for _, u := range units {
		ids[u] = idx.Add(u.Representation)
	}

	candidates := make(map[[2]int]struct{})
	for _, p := range idx.CandidatePairs() {
		candidates[p] = struct{}{}
	}

	kept := pairs[:0:0]
	for _, p := range pairs {
		i, j := ids[p.first], ids[p.second]
		if i > j {
			i, j = j, i
		}
		if _, ok := candidates[[2]int{i, j}]; ok {
			kept = append(kept, p)
		}
	}
	return kept
}

func (s *CompareServiceImpl) comparePairs(ctx context.Context, executor domain.ParallelExecutor, req *domain.BatchRequest, pairs []unitPair) ([]domain.PairResult, error) {
	results := make([]domain.PairResult, len(pairs))
	tasks := make([]domain.ExecutableTask, len(pairs))
	var done atomic.Int64

	if s.progress != nil {
		s.progress.Initialize(len(pairs))
		s.progress.Start()
	}

	for i, p := range pairs {
		name := p.first.Path + ":" + p.second.Path
		tasks[i] = NewSimpleTask(name, true, func(ctx context.Context) (interface{}, error) {
			result, err := s.engine.CompareRepresentations(p.first.Representation, p.second.Representation, req.Threshold)
			if err != nil {
				return nil, err
			}
			results[i] = domain.PairResult{
				FirstPath:  p.first.Path,
				SecondPath: p.second.Path,
				Result:     result,
			}
			n := done.Add(1)
			if s.progress != nil {
				s.progress.Update(int(n), len(pairs))
			}
			return result, nil
		})
	}

	err := executor.Execute(ctx, tasks)
	if s.progress != nil {
		s.progress.Complete(err == nil)
	}
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			return nil, fmt.Errorf("batch comparison timed out after %d of %d pairs: %w", done.Load(), len(pairs), err)
		}
		return nil, fmt.Errorf("batch comparison: %w", err)
	}
	return results, nil
}

// summarize filters the pair results and computes statistics. Reported pairs
// are sorted by combined score, highest first.
func summarize(results []domain.PairResult, req *domain.BatchRequest) ([]domain.PairResult, *domain.BatchStatistics) {
	stats := &domain.BatchStatistics{
		PairsCompared: len(results),
		ClonesByType:  make(map[string]int),
	}

	var (
		reported []domain.PairResult
		sum      float64
	)
	for _, pr := range results {
		combined := scoreOrZero(pr.Result, domain.MetricCombined)
		sum += combined

		detected := pr.Result.DetectedTypes()
		if len(detected) > 0 {
			stats.ClonePairs++
			for _, name := range detected {
				stats.ClonesByType[string(name)]++
			}
		}

		if combined < req.MinCombined {
			continue
		}
		if req.OnlyClones && len(detected) == 0 {
			continue
		}
		reported = append(reported, pr)
	}

	if len(results) > 0 {
		stats.AverageCombined = sum / float64(len(results))
	}
	stats.PairsReported = len(reported)

	sort.SliceStable(reported, func(i, j int) bool {
		ci := scoreOrZero(reported[i].Result, domain.MetricCombined)
		cj := scoreOrZero(reported[j].Result, domain.MetricCombined)
		if ci != cj {
			return ci > cj
		}
		if reported[i].FirstPath != reported[j].FirstPath {
			return reported[i].FirstPath < reported[j].FirstPath
		}
		return reported[i].SecondPath < reported[j].SecondPath
	})

	return reported, stats
}

func scoreOrZero(r *domain.ComparisonResult, name domain.MetricName) float64 {
	if r == nil {
		return 0
	}
	v, _ := r.Score(name)
	return v
}
