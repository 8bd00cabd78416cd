package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/ludo-technologies/codesim/domain"
)

const defaultMaxResults = 20

// HandlerSet exposes MCP tool handlers with shared dependencies.
type HandlerSet struct {
	deps   *Dependencies
	logger *slog.Logger
}

// NewHandlerSet constructs a handler set.
func NewHandlerSet(deps *Dependencies) *HandlerSet {
	if deps == nil {
		deps = NewDependencies(nil, "")
	}
	return &HandlerSet{
		deps:   deps,
		logger: slog.Default().With("component", "mcp"),
	}
}

// HandleCompareCode handles the compare_code tool
func (h *HandlerSet) HandleCompareCode(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args, ok := request.Params.Arguments.(map[string]interface{})
	if !ok {
		return mcp.NewToolResultError("invalid arguments format"), nil
	}

	code1, ok1 := args["code1"].(string)
	code2, ok2 := args["code2"].(string)
	if !ok1 || !ok2 {
		return mcp.NewToolResultError("code1 and code2 parameters are required and must be strings"), nil
	}
	rawLang, _ := args["language"].(string)
	if rawLang == "" {
		return mcp.NewToolResultError("language parameter is required"), nil
	}
	language, err := domain.ParseLanguage(rawLang)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	req := h.compareRequest(args)
	req.Language = language
	req.First = domain.SourceUnit{Name: "code1", Text: code1}
	req.Second = domain.SourceUnit{Name: "code2", Text: code2}

	return h.runCompare(ctx, req)
}

// HandleCompareFiles handles the compare_files tool
func (h *HandlerSet) HandleCompareFiles(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args, ok := request.Params.Arguments.(map[string]interface{})
	if !ok {
		return mcp.NewToolResultError("invalid arguments format"), nil
	}

	path1, ok1 := args["path1"].(string)
	path2, ok2 := args["path2"].(string)
	if !ok1 || !ok2 {
		return mcp.NewToolResultError("path1 and path2 parameters are required and must be strings"), nil
	}
	for _, p := range []string{path1, path2} {
		if _, err := os.Stat(p); os.IsNotExist(err) {
			return mcp.NewToolResultError(fmt.Sprintf("path does not exist: %s", p)), nil
		}
	}

	req := h.compareRequest(args)
	if rawLang, ok := args["language"].(string); ok && rawLang != "" {
		language, err := domain.ParseLanguage(rawLang)
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		req.Language = language
	}

	uc, err := h.deps.BuildCompareUseCase()
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to build use case: %v", err)), nil
	}
	first, second, err := uc.ReadUnits(path1, path2, req.Language)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	req.First = first
	req.Second = second

	return h.runCompare(ctx, req)
}

// HandleBatchCompare handles the batch_compare tool
func (h *HandlerSet) HandleBatchCompare(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args, ok := request.Params.Arguments.(map[string]interface{})
	if !ok {
		return mcp.NewToolResultError("invalid arguments format"), nil
	}

	path, ok := args["path"].(string)
	if !ok {
		return mcp.NewToolResultError("path parameter is required and must be a string"), nil
	}
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return mcp.NewToolResultError(fmt.Sprintf("path does not exist: %s", path)), nil
	}

	cfg := h.deps.Config()
	req := domain.DefaultBatchRequest()
	req.Paths = []string{path}
	req.Recursive = cfg.Input.Recursive
	req.IncludePatterns = cfg.Input.IncludePatterns
	req.ExcludePatterns = cfg.Input.ExcludePatterns
	req.Language = h.deps.configuredLanguage()
	req.Threshold = cfg.Compare.Threshold
	req.MaxInputBytes = cfg.Input.MaxInputBytes
	req.MinCombined = cfg.Batch.MinCombined
	req.OnlyClones = cfg.Batch.OnlyClones
	req.Prefilter = cfg.Batch.Prefilter
	req.MaxConcurrency = cfg.Batch.MaxConcurrency
	req.Timeout = cfg.BatchTimeout()
	req.OutputFormat = domain.OutputFormatJSON
	req.OutputWriter = io.Discard

	if v, ok := args["threshold"].(float64); ok {
		req.Threshold = v
	}
	if v, ok := args["min_combined"].(float64); ok {
		req.MinCombined = v
	}
	if v, ok := args["only_clones"].(bool); ok {
		req.OnlyClones = v
	}
	if v, ok := args["prefilter"].(bool); ok {
		req.Prefilter = v
	}
	maxResults := defaultMaxResults
	if v, ok := args["max_results"].(float64); ok && v > 0 {
		maxResults = int(v)
	}

	uc, err := h.deps.BuildBatchUseCase()
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to build use case: %v", err)), nil
	}
	resp, err := uc.AnalyzeAndReturn(ctx, *req)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("batch comparison failed: %v", err)), nil
	}

	h.logger.Debug("batch_compare finished", "run_id", resp.RunID, "pairs", len(resp.Pairs))
	return jsonResult(formatBatch(resp, maxResults))
}

// HandleListLanguages handles the list_languages tool
func (h *HandlerSet) HandleListLanguages(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	registry := h.deps.Registry()
	languages := make([]map[string]interface{}, 0, len(registry.Languages()))
	for _, lang := range registry.Languages() {
		spec, err := registry.Lookup(lang)
		if err != nil {
			continue
		}
		languages = append(languages, map[string]interface{}{
			"language":   string(lang),
			"extensions": spec.Extensions(),
		})
	}
	return jsonResult(map[string]interface{}{"languages": languages})
}

// compareRequest starts a compare request from config defaults and the threshold argument
func (h *HandlerSet) compareRequest(args map[string]interface{}) domain.CompareRequest {
	cfg := h.deps.Config()
	req := domain.DefaultCompareRequest()
	req.Language = h.deps.configuredLanguage()
	req.Threshold = cfg.Compare.Threshold
	req.MaxInputBytes = cfg.Input.MaxInputBytes
	req.OutputFormat = domain.OutputFormatJSON
	req.OutputWriter = io.Discard
	req.ConfigPath = h.deps.ConfigPath()
	if v, ok := args["threshold"].(float64); ok {
		req.Threshold = v
	}
	return *req
}

func (h *HandlerSet) runCompare(ctx context.Context, req domain.CompareRequest) (*mcp.CallToolResult, error) {
	uc, err := h.deps.BuildCompareUseCase()
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to build use case: %v", err)), nil
	}

	resp, err := uc.CompareAndReturn(ctx, req)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("comparison failed: %v", err)), nil
	}
	return jsonResult(formatComparison(resp.Result))
}

func jsonResult(v interface{}) (*mcp.CallToolResult, error) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to encode result: %v", err)), nil
	}
	return mcp.NewToolResultText(string(data)), nil
}

// formatComparison flattens a result into metric and verdict maps keyed by name
func formatComparison(result *domain.ComparisonResult) map[string]interface{} {
	scores := make(map[string]float64, len(result.Scores))
	for _, s := range result.Scores {
		scores[string(s.Metric)] = s.Value
	}
	verdicts := make(map[string]bool, len(result.Verdicts))
	for _, v := range result.Verdicts {
		verdicts[string(v.Type)] = v.Detected
	}
	detected := make([]string, 0)
	for _, t := range result.DetectedTypes() {
		detected = append(detected, string(t))
	}

	return map[string]interface{}{
		"language":    result.Language,
		"threshold":   result.Threshold,
		"scores":      scores,
		"verdicts":    verdicts,
		"clone_types": detected,
		"is_clone":    result.IsClone(),
		"first":       result.First,
		"second":      result.Second,
	}
}

func formatBatch(resp *domain.BatchResponse, maxResults int) map[string]interface{} {
	pairs := make([]map[string]interface{}, 0, len(resp.Pairs))
	for i, p := range resp.Pairs {
		if i >= maxResults {
			break
		}
		combined, _ := p.Result.Score(domain.MetricCombined)
		types := make([]string, 0)
		for _, t := range p.Result.DetectedTypes() {
			types = append(types, string(t))
		}
		pairs = append(pairs, map[string]interface{}{
			"first":       p.FirstPath,
			"second":      p.SecondPath,
			"combined":    combined,
			"clone_types": types,
		})
	}

	return map[string]interface{}{
		"run_id":     resp.RunID,
		"statistics": resp.Statistics,
		"pairs":      pairs,
		"truncated":  len(resp.Pairs) > maxResults,
		"skipped":    resp.Skipped,
	}
}
