package domain

import (
	"context"
	"io"
	"time"
)

// CheckState tracks a single submission through the checking pipeline.
type CheckState string

const (
	CheckStateReceived      CheckState = "RECEIVED"
	CheckStateFingerprinted CheckState = "FINGERPRINTED"
	CheckStateCompared      CheckState = "COMPARED"
	CheckStateFlagged       CheckState = "FLAGGED"
	CheckStateCleared       CheckState = "CLEARED"
	CheckStateAppended      CheckState = "APPENDED"
)

// CheckRequest asks for one submission to be compared against its course
// history. The comparison set is fixed at request start; the submission is
// appended to the history regardless of verdict.
type CheckRequest struct {
	Submission Submission `json:"submission"`

	// Analysis configuration
	FlagThreshold float64      `json:"flag_threshold"`
	Weights       WeightPreset `json:"weights"`
	CustomWeights *Weights     `json:"custom_weights,omitempty"`
	Buckets       RiskBuckets  `json:"buckets"`

	// Evidence configuration
	MinSegmentLines    int `json:"min_segment_lines"`
	MaxSegmentsPerPair int `json:"max_segments_per_pair"`
	SnippetMaxLen      int `json:"snippet_max_len"`

	// Output configuration
	OutputFormat OutputFormat `json:"output_format"`
	OutputWriter io.Writer    `json:"-"`
}

// Validate validates a check request before any comparison work begins.
func (req *CheckRequest) Validate() error {
	if req.Submission.ID == "" {
		return NewValidationError("submission id cannot be empty")
	}
	if req.Submission.AuthorID == "" {
		return NewValidationError("author id cannot be empty")
	}
	if req.FlagThreshold < 0.0 || req.FlagThreshold > 1.0 {
		return NewValidationError("flag_threshold must be between 0.0 and 1.0")
	}
	if req.Submission.Language != "" && !IsSupportedLanguage(req.Submission.Language) {
		return NewUnsupportedLanguageError(string(req.Submission.Language))
	}
	if req.MinSegmentLines < 1 {
		return NewValidationError("min_segment_lines must be >= 1")
	}
	if req.MaxSegmentsPerPair < 1 {
		return NewValidationError("max_segments_per_pair must be >= 1")
	}
	if err := validateCustomWeights(req.CustomWeights); err != nil {
		return err
	}
	return nil
}

// ResolveWeights returns the combiner weights for this request: the custom
// weights when set, otherwise the named preset.
func (req *CheckRequest) ResolveWeights() Weights {
	if req.CustomWeights != nil {
		return *req.CustomWeights
	}
	return WeightsForPreset(req.Weights)
}

func validateCustomWeights(w *Weights) error {
	if w == nil {
		return nil
	}
	for _, name := range AlgorithmNames() {
		if w.ByAlgorithm(name) < 0 {
			return NewValidationError("weight for " + name + " cannot be negative")
		}
	}
	return nil
}

// CheckResponse is the single-check result.
type CheckResponse struct {
	SubmissionID      string              `json:"submission_id" yaml:"submission_id"`
	CheckedAt         time.Time           `json:"checked_at" yaml:"checked_at"`
	State             CheckState          `json:"state" yaml:"state"`
	OverallSimilarity float64             `json:"overall_similarity" yaml:"overall_similarity"`
	Level             RiskLevel           `json:"level" yaml:"level"`
	Flagged           bool                `json:"flagged" yaml:"flagged"`
	Comparisons       []*ComparisonResult `json:"comparisons,omitempty" yaml:"comparisons,omitempty"`
	HistorySize       int                 `json:"history_size" yaml:"history_size"`
	Summary           string              `json:"summary" yaml:"summary"`
}

// CheckService defines the single-submission checking contract.
type CheckService interface {
	// Check compares one submission against its course history and appends it.
	Check(ctx context.Context, req *CheckRequest) (*CheckResponse, error)
}

// CheckOutputFormatter formats single-check results.
type CheckOutputFormatter interface {
	Write(response *CheckResponse, format OutputFormat, writer io.Writer) error
}

// DefaultCheckRequest returns a check request with engine defaults applied.
func DefaultCheckRequest(sub Submission) *CheckRequest {
	return &CheckRequest{
		Submission:         sub,
		FlagThreshold:      DefaultFlagThreshold,
		Weights:            WeightPresetHistory,
		Buckets:            DefaultRiskBuckets(),
		MinSegmentLines:    DefaultMinSegmentLines,
		MaxSegmentsPerPair: DefaultMaxSegmentsPerPair,
		SnippetMaxLen:      DefaultSnippetMaxLen,
		OutputFormat:       OutputFormatText,
	}
}
