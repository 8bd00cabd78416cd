package domain

import (
	"context"
	"io"
	"time"
)

// DefaultThreshold is the clone-verdict threshold used when none is given.
const DefaultThreshold = 0.8

// SourceUnit is one input to a comparison.
type SourceUnit struct {
	Name     string   `json:"name" yaml:"name"`
	Text     string   `json:"-" yaml:"-"`
	Language Language `json:"language" yaml:"language"`
}

// MetricName names a similarity score in a ComparisonResult.
type MetricName string

const (
	MetricText                     MetricName = "text"
	MetricTokenOrdered             MetricName = "token_ordered"
	MetricTokenOrderedNormalized   MetricName = "token_ordered_normalized"
	MetricTokenUnordered           MetricName = "token_unordered"
	MetricTokenUnorderedNormalized MetricName = "token_unordered_normalized"
	MetricIdentifierJaccard        MetricName = "identifier_jaccard"
	MetricGraph                    MetricName = "graph"
	MetricCombined                 MetricName = "combined"
	MetricGappedMatchRatio         MetricName = "gapped_match_ratio"
	MetricIntertwinedMatchRatio    MetricName = "intertwined_match_ratio"
)

// AllMetrics returns score names in report order.
func AllMetrics() []MetricName {
	return []MetricName{
		MetricText,
		MetricTokenOrdered,
		MetricTokenOrderedNormalized,
		MetricTokenUnordered,
		MetricTokenUnorderedNormalized,
		MetricIdentifierJaccard,
		MetricGraph,
		MetricCombined,
		MetricGappedMatchRatio,
		MetricIntertwinedMatchRatio,
	}
}

// Label returns a human-readable title for the metric
func (m MetricName) Label() string {
	switch m {
	case MetricText:
		return "Text Similarity"
	case MetricTokenOrdered:
		return "Token Similarity"
	case MetricTokenOrderedNormalized:
		return "Token Similarity (no comments/whitespace)"
	case MetricTokenUnordered:
		return "Unordered Token Similarity"
	case MetricTokenUnorderedNormalized:
		return "Unordered Token Similarity (no comments/whitespace)"
	case MetricIdentifierJaccard:
		return "Identifier Jaccard (renamed clones)"
	case MetricGraph:
		return "Graph Similarity"
	case MetricCombined:
		return "Combined Similarity"
	case MetricGappedMatchRatio:
		return "Gapped Match Ratio"
	case MetricIntertwinedMatchRatio:
		return "Intertwined Match Ratio"
	default:
		return string(m)
	}
}

// CloneTypeName names one of the clone predicates.
type CloneTypeName string

const (
	CloneExact             CloneTypeName = "exact"
	CloneNearMiss          CloneTypeName = "near_miss"
	CloneParameterized     CloneTypeName = "parameterized"
	CloneFunction          CloneTypeName = "function"
	CloneNonContiguous     CloneTypeName = "non_contiguous"
	CloneStructural        CloneTypeName = "structural"
	CloneReordered         CloneTypeName = "reordered"
	CloneFunctionReordered CloneTypeName = "function_reordered"
	CloneGapped            CloneTypeName = "gapped"
	CloneIntertwined       CloneTypeName = "intertwined"
	CloneSemantic          CloneTypeName = "semantic"
)

// AllCloneTypes returns clone type names in report order.
func AllCloneTypes() []CloneTypeName {
	return []CloneTypeName{
		CloneExact,
		CloneNearMiss,
		CloneParameterized,
		CloneFunction,
		CloneNonContiguous,
		CloneStructural,
		CloneReordered,
		CloneFunctionReordered,
		CloneGapped,
		CloneIntertwined,
		CloneSemantic,
	}
}

// Label returns a human-readable title for the clone type
func (c CloneTypeName) Label() string {
	switch c {
	case CloneExact:
		return "Exact Clone"
	case CloneNearMiss:
		return "Near-miss Clone"
	case CloneParameterized:
		return "Parameterized Clone"
	case CloneFunction:
		return "Function Clone"
	case CloneNonContiguous:
		return "Non-contiguous Clone"
	case CloneStructural:
		return "Structural Clone"
	case CloneReordered:
		return "Reordered Clone"
	case CloneFunctionReordered:
		return "Function Reordered Clone"
	case CloneGapped:
		return "Gapped Clone"
	case CloneIntertwined:
		return "Intertwined Clone"
	case CloneSemantic:
		return "Semantic Clone"
	default:
		return string(c)
	}
}

// SimilarityScore is one named ratio in [0,1].
type SimilarityScore struct {
	Metric MetricName `json:"metric" yaml:"metric"`
	Value  float64    `json:"value" yaml:"value"`
}

// CloneVerdict is the outcome of one clone predicate.
type CloneVerdict struct {
	Type      CloneTypeName `json:"type" yaml:"type"`
	Detected  bool          `json:"detected" yaml:"detected"`
	Threshold float64       `json:"threshold" yaml:"threshold"`
}

// UnitStats summarizes one side of a comparison for reports.
type UnitStats struct {
	Name        string `json:"name" yaml:"name"`
	Bytes       int    `json:"bytes" yaml:"bytes"`
	Lines       int    `json:"lines" yaml:"lines"`
	Tokens      int    `json:"tokens" yaml:"tokens"`
	Nodes       int    `json:"nodes" yaml:"nodes"`
	Edges       int    `json:"edges" yaml:"edges"`
	ErrorNodes  int    `json:"error_nodes" yaml:"error_nodes"`
	Identifiers int    `json:"identifiers" yaml:"identifiers"`
}

// ComparisonResult holds every score and verdict for one pair of units.
type ComparisonResult struct {
	Language  Language          `json:"language" yaml:"language"`
	Threshold float64           `json:"threshold" yaml:"threshold"`
	Scores    []SimilarityScore `json:"scores" yaml:"scores"`
	Verdicts  []CloneVerdict    `json:"verdicts" yaml:"verdicts"`
	First     UnitStats         `json:"first" yaml:"first"`
	Second    UnitStats         `json:"second" yaml:"second"`
}

// Score returns the value of the named metric.
func (r *ComparisonResult) Score(name MetricName) (float64, bool) {
	for _, s := range r.Scores {
		if s.Metric == name {
			return s.Value, true
		}
	}
	return 0, false
}

// Verdict returns whether the named clone type was detected.
func (r *ComparisonResult) Verdict(name CloneTypeName) (bool, bool) {
	for _, v := range r.Verdicts {
		if v.Type == name {
			return v.Detected, true
		}
	}
	return false, false
}

// DetectedTypes lists the clone types whose predicate held.
func (r *ComparisonResult) DetectedTypes() []CloneTypeName {
	var out []CloneTypeName
	for _, v := range r.Verdicts {
		if v.Detected {
			out = append(out, v.Type)
		}
	}
	return out
}

// IsClone reports whether any clone predicate held
func (r *ComparisonResult) IsClone() bool {
	return len(r.DetectedTypes()) > 0
}

// CompareRequest represents a request to compare two source units
type CompareRequest struct {
	First  SourceUnit `json:"first"`
	Second SourceUnit `json:"second"`

	// Language applies to both units. Empty means detect from unit names.
	Language  Language `json:"language"`
	Threshold float64  `json:"threshold"`

	// Limits
	MaxInputBytes int64 `json:"max_input_bytes"`

	// Output configuration
	OutputFormat OutputFormat `json:"output_format"`
	OutputWriter io.Writer    `json:"-"`
	OutputPath   string       `json:"output_path"`
	NoOpen       bool         `json:"no_open"`
	ShowStats    bool         `json:"show_stats"`

	// Configuration file
	ConfigPath string `json:"config_path"`
}

// Validate validates a compare request
func (req *CompareRequest) Validate() error {
	if req.Threshold < 0.0 || req.Threshold > 1.0 {
		return NewValidationError("threshold must be between 0.0 and 1.0")
	}
	if req.MaxInputBytes < 0 {
		return NewValidationError("max_input_bytes must be >= 0")
	}
	if req.Language != "" && !req.Language.IsSupported() {
		return NewUnsupportedLanguageError(string(req.Language))
	}
	return nil
}

// HasValidOutputWriter checks if the request has a valid output writer
func (req *CompareRequest) HasValidOutputWriter() bool {
	return req.OutputWriter != nil
}

// DefaultCompareRequest returns a compare request with default settings
func DefaultCompareRequest() *CompareRequest {
	return &CompareRequest{
		Threshold:     DefaultThreshold,
		MaxInputBytes: DefaultMaxInputBytes,
		OutputFormat:  OutputFormatText,
		ShowStats:     true,
	}
}

// GraphExport is the structural graph of one unit in Graphviz DOT
type GraphExport struct {
	Name string `json:"name" yaml:"name"`
	DOT  string `json:"dot" yaml:"dot"`
}

// CompareResponse represents the result of a single comparison
type CompareResponse struct {
	Result      *ComparisonResult `json:"result" yaml:"result"`
	Graphs      []GraphExport     `json:"graphs,omitempty" yaml:"graphs,omitempty"`
	Duration    int64             `json:"duration_ms" yaml:"duration_ms"`
	GeneratedAt string            `json:"generated_at" yaml:"generated_at"`
	Version     string            `json:"version" yaml:"version"`
}

// BatchRequest asks for all-pairs comparison across discovered files
type BatchRequest struct {
	// Input parameters
	Paths           []string `json:"paths"`
	Recursive       bool     `json:"recursive"`
	IncludePatterns []string `json:"include_patterns"`
	ExcludePatterns []string `json:"exclude_patterns"`

	// Language restricts discovery to one language. Empty compares each
	// language group separately.
	Language      Language `json:"language"`
	Threshold     float64  `json:"threshold"`
	MaxInputBytes int64    `json:"max_input_bytes"`

	// Filtering
	MinCombined float64 `json:"min_combined"`
	OnlyClones  bool    `json:"only_clones"`

	// Prefilter compares only the pairs a MinHash/LSH index marks as
	// candidates instead of every pair.
	Prefilter bool `json:"prefilter"`

	// Execution
	MaxConcurrency int           `json:"max_concurrency"`
	Timeout        time.Duration `json:"timeout"`

	// Output configuration
	OutputFormat OutputFormat `json:"output_format"`
	OutputWriter io.Writer    `json:"-"`
	OutputPath   string       `json:"output_path"`
	NoOpen       bool         `json:"no_open"`
	ShowStats    bool         `json:"show_stats"`

	ConfigPath string `json:"config_path"`
}

// Validate validates a batch request
func (req *BatchRequest) Validate() error {
	if len(req.Paths) == 0 {
		return NewValidationError("paths cannot be empty")
	}
	if req.Threshold < 0.0 || req.Threshold > 1.0 {
		return NewValidationError("threshold must be between 0.0 and 1.0")
	}
	if req.MinCombined < 0.0 || req.MinCombined > 1.0 {
		return NewValidationError("min_combined must be between 0.0 and 1.0")
	}
	if req.MaxConcurrency < 0 {
		return NewValidationError("max_concurrency must be >= 0")
	}
	if req.Language != "" && !req.Language.IsSupported() {
		return NewUnsupportedLanguageError(string(req.Language))
	}
	return nil
}

// DefaultBatchRequest returns a batch request with default settings
func DefaultBatchRequest() *BatchRequest {
	return &BatchRequest{
		Paths:           []string{"."},
		Recursive:       true,
		IncludePatterns: []string{"**/*"},
		ExcludePatterns: []string{},
		Threshold:       DefaultThreshold,
		MaxInputBytes:   DefaultMaxInputBytes,
		MaxConcurrency:  DefaultBatchConcurrency,
		Timeout:         DefaultBatchTimeout,
		OutputFormat:    OutputFormatText,
		ShowStats:       true,
	}
}

// PairResult is one comparison inside a batch
type PairResult struct {
	FirstPath  string            `json:"first_path" yaml:"first_path"`
	SecondPath string            `json:"second_path" yaml:"second_path"`
	Result     *ComparisonResult `json:"result" yaml:"result"`
}

// BatchStatistics summarizes a batch run
type BatchStatistics struct {
	FilesAnalyzed   int            `json:"files_analyzed" yaml:"files_analyzed"`
	FilesSkipped    int            `json:"files_skipped" yaml:"files_skipped"`
	PairsCompared   int            `json:"pairs_compared" yaml:"pairs_compared"`
	PairsPruned     int            `json:"pairs_pruned" yaml:"pairs_pruned"`
	PairsReported   int            `json:"pairs_reported" yaml:"pairs_reported"`
	ClonePairs      int            `json:"clone_pairs" yaml:"clone_pairs"`
	ClonesByType    map[string]int `json:"clones_by_type" yaml:"clones_by_type"`
	AverageCombined float64        `json:"average_combined" yaml:"average_combined"`
}

// BatchResponse represents the result of a batch run
type BatchResponse struct {
	RunID       string           `json:"run_id" yaml:"run_id"`
	Pairs       []PairResult     `json:"pairs" yaml:"pairs"`
	Statistics  *BatchStatistics `json:"statistics" yaml:"statistics"`
	Skipped     []string         `json:"skipped,omitempty" yaml:"skipped,omitempty"`
	Duration    int64            `json:"duration_ms" yaml:"duration_ms"`
	GeneratedAt string           `json:"generated_at" yaml:"generated_at"`
	Version     string           `json:"version" yaml:"version"`
}

// CompareService defines the interface for comparison services
type CompareService interface {
	// Compare compares the two units of the request
	Compare(ctx context.Context, req *CompareRequest) (*CompareResponse, error)

	// CompareBatch compares every pair of files found under the request paths
	CompareBatch(ctx context.Context, req *BatchRequest) (*BatchResponse, error)
}

// CompareOutputFormatter defines the interface for formatting comparison results
type CompareOutputFormatter interface {
	// FormatCompare writes a single comparison in the given format
	FormatCompare(response *CompareResponse, format OutputFormat, writer io.Writer) error

	// FormatBatch writes a batch result in the given format
	FormatBatch(response *BatchResponse, format OutputFormat, writer io.Writer) error
}

// SourceReader reads and discovers source inputs
type SourceReader interface {
	// CollectSourceFiles recursively finds supported source files in the given paths
	CollectSourceFiles(paths []string, recursive bool, includePatterns, excludePatterns []string) ([]string, error)

	// ReadSource reads a file or zip archive into a SourceUnit
	ReadSource(path string, language Language) (SourceUnit, error)

	// IsValidSourceFile checks if a file has a supported source extension
	IsValidSourceFile(path string) bool

	// FileExists checks if a file exists
	FileExists(path string) (bool, error)
}
