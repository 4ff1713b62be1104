package domain

import (
	"context"
	"io"
	"time"
)

// BatchRequest asks for a full pairwise analysis of a cohort.
type BatchRequest struct {
	Submissions []Submission `json:"submissions"`

	// Analysis configuration
	FlagThreshold   float64      `json:"flag_threshold"`
	Weights         WeightPreset `json:"weights"`
	CustomWeights   *Weights     `json:"custom_weights,omitempty"`
	Buckets         RiskBuckets  `json:"buckets"`
	GenerateReports bool         `json:"generate_reports"`

	// Evidence configuration
	MinSegmentLines    int `json:"min_segment_lines"`
	MaxSegmentsPerPair int `json:"max_segments_per_pair"`
	SnippetMaxLen      int `json:"snippet_max_len"`

	// Execution configuration
	MaxWorkers int           `json:"max_workers"`
	Timeout    time.Duration `json:"timeout"`

	// Output configuration
	OutputFormat OutputFormat `json:"output_format"`
	OutputWriter io.Writer    `json:"-"`
	SortBy       SortCriteria `json:"sort_by"`
}

// Validate rejects caller-contract violations before any comparison work.
func (req *BatchRequest) Validate() error {
	if len(req.Submissions) == 0 {
		return NewValidationError("batch cannot be empty")
	}
	if req.FlagThreshold < 0.0 || req.FlagThreshold > 1.0 {
		return NewValidationError("flag_threshold must be between 0.0 and 1.0")
	}

	seen := make(map[string]struct{}, len(req.Submissions))
	var lang Language
	for _, sub := range req.Submissions {
		if sub.ID == "" {
			return NewValidationError("submission id cannot be empty")
		}
		if _, dup := seen[sub.ID]; dup {
			return NewValidationError("duplicate submission id: " + sub.ID)
		}
		seen[sub.ID] = struct{}{}

		subLang := sub.Language
		if subLang == "" {
			subLang = DefaultLanguage
		}
		if !IsSupportedLanguage(subLang) {
			return NewUnsupportedLanguageError(string(sub.Language))
		}
		// Cross-language comparison is out of scope.
		if lang == "" {
			lang = subLang
		} else if subLang != lang {
			return NewValidationError("batch submissions must share one language")
		}
	}

	if req.MinSegmentLines < 1 {
		return NewValidationError("min_segment_lines must be >= 1")
	}
	if req.MaxSegmentsPerPair < 1 {
		return NewValidationError("max_segments_per_pair must be >= 1")
	}
	if req.MaxWorkers < 0 {
		return NewValidationError("max_workers must be >= 0")
	}
	if err := validateCustomWeights(req.CustomWeights); err != nil {
		return err
	}
	return nil
}

// ResolveWeights returns the combiner weights for this request: the custom
// weights when set, otherwise the named preset.
func (req *BatchRequest) ResolveWeights() Weights {
	if req.CustomWeights != nil {
		return *req.CustomWeights
	}
	return WeightsForPreset(req.Weights)
}

// BatchStatistics provides aggregate statistics for a batch run.
type BatchStatistics struct {
	TotalSubmissions  int     `json:"total_submissions" yaml:"total_submissions"`
	TotalComparisons  int     `json:"total_comparisons" yaml:"total_comparisons"`
	FlaggedCount      int     `json:"flagged_count" yaml:"flagged_count"`
	AverageSimilarity float64 `json:"average_similarity" yaml:"average_similarity"`
	MaxSimilarity     float64 `json:"max_similarity" yaml:"max_similarity"`
}

// BatchResponse is the cohort analysis result.
type BatchResponse struct {
	RunID      string               `json:"run_id" yaml:"run_id"`
	Matrix     *SimilarityMatrix    `json:"matrix" yaml:"matrix"`
	Flagged    []*ComparisonResult  `json:"flagged,omitempty" yaml:"flagged,omitempty"`
	Reports    []*OriginalityReport `json:"reports,omitempty" yaml:"reports,omitempty"`
	Statistics BatchStatistics      `json:"statistics" yaml:"statistics"`

	// Metadata
	GeneratedAt time.Time `json:"generated_at" yaml:"generated_at"`
	Duration    int64     `json:"duration_ms" yaml:"duration_ms"`
	Warnings    []string  `json:"warnings,omitempty" yaml:"warnings,omitempty"`
}

// BatchService defines the cohort analysis contract.
type BatchService interface {
	// Analyze computes the full pairwise similarity matrix for a cohort and,
	// if requested, per-submission originality reports.
	Analyze(ctx context.Context, req *BatchRequest) (*BatchResponse, error)
}

// BatchOutputFormatter formats batch analysis results.
type BatchOutputFormatter interface {
	Write(response *BatchResponse, format OutputFormat, writer io.Writer) error
}

// DefaultBatchRequest returns a batch request with engine defaults applied.
func DefaultBatchRequest(subs []Submission) *BatchRequest {
	return &BatchRequest{
		Submissions:        subs,
		FlagThreshold:      DefaultFlagThreshold,
		Weights:            WeightPresetCohort,
		Buckets:            DefaultRiskBuckets(),
		GenerateReports:    true,
		MinSegmentLines:    DefaultMinSegmentLines,
		MaxSegmentsPerPair: DefaultMaxSegmentsPerPair,
		SnippetMaxLen:      DefaultSnippetMaxLen,
		MaxWorkers:         0,
		OutputFormat:       OutputFormatText,
		SortBy:             SortBySimilarity,
	}
}
