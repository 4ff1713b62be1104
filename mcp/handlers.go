package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/courseguard/crosscheck/domain"
	"github.com/courseguard/crosscheck/internal/analyzer"
	"github.com/courseguard/crosscheck/service"
)

// HandlerSet exposes MCP tool handlers with shared dependencies.
type HandlerSet struct {
	deps *Dependencies
}

// NewHandlerSet constructs a handler set.
func NewHandlerSet(deps *Dependencies) *HandlerSet {
	if deps == nil {
		deps = NewDependencies(nil, "", nil)
	}
	return &HandlerSet{deps: deps}
}

// HandleCheckSubmission handles the check_submission tool
func (h *HandlerSet) HandleCheckSubmission(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
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

	content, err := h.deps.fileReader.ReadFile(path)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to read file: %v", err)), nil
	}

	id := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	author := id
	if a, ok := args["author"].(string); ok && a != "" {
		author = a
	}
	course := "default"
	if c, ok := args["course"].(string); ok && c != "" {
		course = c
	}

	req := domain.DefaultCheckRequest(domain.Submission{
		ID:       id,
		AuthorID: author,
		CourseID: course,
		Language: h.resolveLanguage(args, path),
		Source:   string(content),
	})
	h.applyConfig(&req.FlagThreshold, &req.Buckets, &req.MinSegmentLines, &req.MaxSegmentsPerPair, &req.SnippetMaxLen)
	req.CustomWeights = h.configWeights(req.Weights)
	if t, ok := args["threshold"].(float64); ok {
		req.FlagThreshold = t
	}

	checkUC, err := h.deps.BuildCheckUseCase()
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to create checker: %v", err)), nil
	}

	result, err := checkUC.Execute(ctx, *req)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("check failed: %v", err)), nil
	}

	return toolResultJSON(result)
}

// HandleAnalyzeCohort handles the analyze_cohort tool
func (h *HandlerSet) HandleAnalyzeCohort(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
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

	lang := h.resolveLanguage(args, "")
	recursive := true
	if r, ok := args["recursive"].(bool); ok {
		recursive = r
	}

	files, err := h.deps.fileReader.CollectSourceFiles([]string{path}, lang, recursive, nil, nil)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to collect files: %v", err)), nil
	}
	if len(files) == 0 {
		return mcp.NewToolResultError(fmt.Sprintf("no source files found under: %s", path)), nil
	}

	submissions := make([]domain.Submission, 0, len(files))
	for _, file := range files {
		content, err := h.deps.fileReader.ReadFile(file)
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("failed to read file %s: %v", file, err)), nil
		}
		id := strings.TrimSuffix(filepath.Base(file), filepath.Ext(file))
		submissions = append(submissions, domain.Submission{
			ID:       id,
			AuthorID: id,
			Language: lang,
			Source:   string(content),
		})
	}

	req := domain.DefaultBatchRequest(submissions)
	h.applyConfig(&req.FlagThreshold, &req.Buckets, &req.MinSegmentLines, &req.MaxSegmentsPerPair, &req.SnippetMaxLen)
	req.CustomWeights = h.configWeights(req.Weights)
	if t, ok := args["threshold"].(float64); ok {
		req.FlagThreshold = t
	}
	if r, ok := args["reports"].(bool); ok {
		req.GenerateReports = r
	}

	batchUC, err := h.deps.BuildBatchUseCase()
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to create analyzer: %v", err)), nil
	}

	result, err := batchUC.Execute(ctx, *req)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("analysis failed: %v", err)), nil
	}

	return toolResultJSON(result)
}

// HandleCompareSources handles the compare_sources tool
func (h *HandlerSet) HandleCompareSources(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args, ok := request.Params.Arguments.(map[string]interface{})
	if !ok {
		return mcp.NewToolResultError("invalid arguments format"), nil
	}

	sourceA, ok := args["source_a"].(string)
	if !ok {
		return mcp.NewToolResultError("source_a parameter is required and must be a string"), nil
	}
	sourceB, ok := args["source_b"].(string)
	if !ok {
		return mcp.NewToolResultError("source_b parameter is required and must be a string"), nil
	}

	lang := h.resolveLanguage(args, "")
	fingerprinter := h.deps.Fingerprinter()
	fpA := fingerprinter.Build(ctx, domain.Submission{ID: "a", AuthorID: "a", Language: lang, Source: sourceA})
	fpB := fingerprinter.Build(ctx, domain.Submission{ID: "b", AuthorID: "b", Language: lang, Source: sourceB})

	weights := domain.WeightsForPreset(domain.WeightPresetCohort)
	if custom := h.configWeights(domain.WeightPresetCohort); custom != nil {
		weights = *custom
	}
	comparator := analyzer.NewComparator(weights)
	scores := comparator.Compare(fpA, fpB)
	labels := analyzer.DetectTransformations(fpA, fpB)
	segments := analyzer.FindMatchingSegments(fpA, fpB, analyzer.DefaultSegmentOptions())

	return toolResultJSON(map[string]interface{}{
		"scores":          scores.Scores,
		"combined":        scores.Combined,
		"transformations": labels,
		"segments":        segments,
	})
}

// resolveLanguage picks the language from arguments, file extension, then config.
func (h *HandlerSet) resolveLanguage(args map[string]interface{}, path string) domain.Language {
	if l, ok := args["language"].(string); ok && l != "" {
		return domain.Language(l)
	}
	if path != "" {
		if detected, ok := service.DetectLanguage(path); ok {
			return detected
		}
	}
	if cfg := h.deps.Config(); cfg != nil && cfg.Analysis.Language != "" {
		return domain.Language(cfg.Analysis.Language)
	}
	return domain.DefaultLanguage
}

// applyConfig overlays loaded configuration onto request defaults.
func (h *HandlerSet) applyConfig(threshold *float64, buckets *domain.RiskBuckets, minLines, maxSegments, snippetLen *int) {
	cfg := h.deps.Config()
	if cfg == nil {
		return
	}
	*threshold = cfg.Analysis.FlagThreshold
	*buckets = cfg.Buckets
	*minLines = cfg.Evidence.MinSegmentLines
	*maxSegments = cfg.Evidence.MaxSegmentsPerPair
	*snippetLen = cfg.Evidence.SnippetMaxLen
}

// configWeights resolves the configured values for a named combiner preset,
// nil when no config is loaded.
func (h *HandlerSet) configWeights(preset domain.WeightPreset) *domain.Weights {
	cfg := h.deps.Config()
	if cfg == nil {
		return nil
	}
	weights := cfg.WeightsFor(preset)
	return &weights
}

func toolResultJSON(v interface{}) (*mcp.CallToolResult, error) {
	jsonData, err := json.Marshal(v)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to marshal result: %v", err)), nil
	}
	return mcp.NewToolResultText(string(jsonData)), nil
}
