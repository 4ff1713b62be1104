package domain

import (
	"fmt"
	"sort"
)

// Language identifies the source language of a submission.
type Language string

const (
	LanguagePython     Language = "python"
	LanguageJavaScript Language = "javascript"
	LanguageJava       Language = "java"
	LanguageGo         Language = "go"
)

// String returns the string representation of Language
func (l Language) String() string {
	return string(l)
}

// Submission is the raw input handed to the engine by the enclosing service.
type Submission struct {
	ID       string   `json:"submission_id" yaml:"submission_id"`
	AuthorID string   `json:"author_id" yaml:"author_id"`
	CourseID string   `json:"course_id,omitempty" yaml:"course_id,omitempty"`
	Language Language `json:"language" yaml:"language"`
	Source   string   `json:"-" yaml:"-"`
}

// Algorithm names used as keys in SimilarityScoreSet.Scores.
const (
	AlgorithmStructural     = "structural"
	AlgorithmTokenSequence  = "token_sequence"
	AlgorithmLexical        = "lexical"
	AlgorithmEditDistance   = "edit_distance"
	AlgorithmSemantic       = "semantic"
	AlgorithmOrderInvariant = "order_invariant"
)

// AlgorithmNames lists every similarity algorithm in a stable order.
func AlgorithmNames() []string {
	return []string{
		AlgorithmStructural,
		AlgorithmTokenSequence,
		AlgorithmLexical,
		AlgorithmEditDistance,
		AlgorithmSemantic,
		AlgorithmOrderInvariant,
	}
}

// SimilarityScoreSet holds the per-algorithm breakdown and the combined score.
// Combined is a convex combination of the components (weights renormalized to
// sum to 1) and is the only value thresholded for flagging.
type SimilarityScoreSet struct {
	Scores   map[string]float64 `json:"scores" yaml:"scores"`
	Combined float64            `json:"combined" yaml:"combined"`
}

// Score returns the score for a named algorithm, 0 if absent.
func (s *SimilarityScoreSet) Score(name string) float64 {
	if s == nil || s.Scores == nil {
		return 0.0
	}
	return s.Scores[name]
}

// String returns a compact representation useful in logs and text reports.
func (s *SimilarityScoreSet) String() string {
	names := make([]string, 0, len(s.Scores))
	for name := range s.Scores {
		names = append(names, name)
	}
	sort.Strings(names)

	out := fmt.Sprintf("combined=%.3f", s.Combined)
	for _, name := range names {
		out += fmt.Sprintf(" %s=%.3f", name, s.Scores[name])
	}
	return out
}

// Weights configures the combiner. Zero-value weights are valid; the combiner
// renormalizes whatever is set so the result stays a convex combination.
type Weights struct {
	Structural     float64 `json:"structural" yaml:"structural" mapstructure:"structural"`
	TokenSequence  float64 `json:"token_sequence" yaml:"token_sequence" mapstructure:"token_sequence"`
	Lexical        float64 `json:"lexical" yaml:"lexical" mapstructure:"lexical"`
	EditDistance   float64 `json:"edit_distance" yaml:"edit_distance" mapstructure:"edit_distance"`
	Semantic       float64 `json:"semantic" yaml:"semantic" mapstructure:"semantic"`
	OrderInvariant float64 `json:"order_invariant" yaml:"order_invariant" mapstructure:"order_invariant"`
}

// Sum returns the raw weight total before renormalization.
func (w Weights) Sum() float64 {
	return w.Structural + w.TokenSequence + w.Lexical + w.EditDistance + w.Semantic + w.OrderInvariant
}

// ByAlgorithm returns the weight assigned to a named algorithm.
func (w Weights) ByAlgorithm(name string) float64 {
	switch name {
	case AlgorithmStructural:
		return w.Structural
	case AlgorithmTokenSequence:
		return w.TokenSequence
	case AlgorithmLexical:
		return w.Lexical
	case AlgorithmEditDistance:
		return w.EditDistance
	case AlgorithmSemantic:
		return w.Semantic
	case AlgorithmOrderInvariant:
		return w.OrderInvariant
	default:
		return 0.0
	}
}

// TransformationLabel names a surface disguise technique consistent with an
// observed similarity. Labels are heuristic evidence, never certainty.
type TransformationLabel string

const (
	TransformVariableRename     TransformationLabel = "variable-rename"
	TransformFunctionRename     TransformationLabel = "function-rename"
	TransformCommentEdit        TransformationLabel = "comment-edit"
	TransformWhitespaceEdit     TransformationLabel = "whitespace-edit"
	TransformStatementReorder   TransformationLabel = "statement-reorder"
	TransformFunctionExtraction TransformationLabel = "function-extraction"
	TransformFunctionInlining   TransformationLabel = "function-inlining"
)

// MatchEvidence is a concrete pair of matching line ranges retained as
// evidence for a flagged pair. Line numbers are 1-based and inclusive.
type MatchEvidence struct {
	StartLineA int     `json:"start_line_a" yaml:"start_line_a"`
	EndLineA   int     `json:"end_line_a" yaml:"end_line_a"`
	StartLineB int     `json:"start_line_b" yaml:"start_line_b"`
	EndLineB   int     `json:"end_line_b" yaml:"end_line_b"`
	SnippetA   string  `json:"snippet_a" yaml:"snippet_a"`
	SnippetB   string  `json:"snippet_b" yaml:"snippet_b"`
	Similarity float64 `json:"similarity" yaml:"similarity"`
}

// LineCount returns the number of matched lines on side A.
func (m *MatchEvidence) LineCount() int {
	return m.EndLineA - m.StartLineA + 1
}

// String returns string representation of MatchEvidence
func (m *MatchEvidence) String() string {
	return fmt.Sprintf("A:%d-%d <-> B:%d-%d (%.3f)",
		m.StartLineA, m.EndLineA, m.StartLineB, m.EndLineB, m.Similarity)
}

// ComparisonResult is the full outcome of comparing two submissions.
type ComparisonResult struct {
	SubmissionA     string                `json:"submission_a" yaml:"submission_a"`
	SubmissionB     string                `json:"submission_b" yaml:"submission_b"`
	AuthorA         string                `json:"author_a" yaml:"author_a"`
	AuthorB         string                `json:"author_b" yaml:"author_b"`
	Scores          SimilarityScoreSet    `json:"scores" yaml:"scores"`
	Evidence        []MatchEvidence       `json:"evidence,omitempty" yaml:"evidence,omitempty"`
	Transformations []TransformationLabel `json:"transformations,omitempty" yaml:"transformations,omitempty"`
	Notes           []string              `json:"notes,omitempty" yaml:"notes,omitempty"`
}

// String returns string representation of ComparisonResult
func (r *ComparisonResult) String() string {
	return fmt.Sprintf("Comparison{%s <-> %s, combined: %.3f, evidence: %d}",
		r.SubmissionA, r.SubmissionB, r.Scores.Combined, len(r.Evidence))
}

// HasTransformation reports whether a specific label was detected.
func (r *ComparisonResult) HasTransformation(label TransformationLabel) bool {
	for _, l := range r.Transformations {
		if l == label {
			return true
		}
	}
	return false
}

// RiskLevel buckets a combined similarity score for human review.
type RiskLevel string

const (
	RiskNone     RiskLevel = "none"
	RiskLow      RiskLevel = "low"
	RiskMedium   RiskLevel = "medium"
	RiskHigh     RiskLevel = "high"
	RiskVeryHigh RiskLevel = "very-high"
)

// RiskBuckets holds the bucket boundaries for similarity levels. The defaults
// (0.3/0.5/0.7/0.9) are configuration, not proven-optimal constants.
type RiskBuckets struct {
	Low      float64 `json:"low" yaml:"low" mapstructure:"low"`
	Medium   float64 `json:"medium" yaml:"medium" mapstructure:"medium"`
	High     float64 `json:"high" yaml:"high" mapstructure:"high"`
	VeryHigh float64 `json:"very_high" yaml:"very_high" mapstructure:"very_high"`
}

// Level buckets a combined score into a risk level.
func (b RiskBuckets) Level(score float64) RiskLevel {
	switch {
	case score >= b.VeryHigh:
		return RiskVeryHigh
	case score >= b.High:
		return RiskHigh
	case score >= b.Medium:
		return RiskMedium
	case score >= b.Low:
		return RiskLow
	default:
		return RiskNone
	}
}

// SimilarityMatrix is the full pairwise combined-score matrix for a cohort.
// It is rebuilt fresh per batch run and never persisted incrementally.
type SimilarityMatrix struct {
	SubmissionIDs []string            `json:"submission_ids" yaml:"submission_ids"`
	Scores        [][]float64         `json:"scores" yaml:"scores"`
	Flagged       []*ComparisonResult `json:"flagged,omitempty" yaml:"flagged,omitempty"`
	FlaggedCount  int                 `json:"flagged_count" yaml:"flagged_count"`
}

// Size returns the matrix dimension.
func (m *SimilarityMatrix) Size() int {
	return len(m.SubmissionIDs)
}

// At returns the combined score between submissions i and j.
func (m *SimilarityMatrix) At(i, j int) float64 {
	return m.Scores[i][j]
}

// RowMax returns the highest score in row i excluding the diagonal.
// Returns 0 for a single-submission matrix.
func (m *SimilarityMatrix) RowMax(i int) float64 {
	max := 0.0
	for j, score := range m.Scores[i] {
		if j == i {
			continue
		}
		if score > max {
			max = score
		}
	}
	return max
}

// IndexOf returns the row index for a submission ID, -1 if absent.
func (m *SimilarityMatrix) IndexOf(submissionID string) int {
	for i, id := range m.SubmissionIDs {
		if id == submissionID {
			return i
		}
	}
	return -1
}

// OriginalityReport is the per-submission review document built from a
// cohort's similarity matrix row.
type OriginalityReport struct {
	SubmissionID     string                `json:"submission_id" yaml:"submission_id"`
	AuthorID         string                `json:"author_id" yaml:"author_id"`
	OriginalityScore float64               `json:"originality_score" yaml:"originality_score"`
	ClosestPeer      string                `json:"closest_peer,omitempty" yaml:"closest_peer,omitempty"`
	PeerBreakdown    *SimilarityScoreSet   `json:"peer_breakdown,omitempty" yaml:"peer_breakdown,omitempty"`
	Evidence         []MatchEvidence       `json:"evidence,omitempty" yaml:"evidence,omitempty"`
	Transformations  []TransformationLabel `json:"transformations,omitempty" yaml:"transformations,omitempty"`
	PeersOverLimit   []string              `json:"peers_over_threshold,omitempty" yaml:"peers_over_threshold,omitempty"`
	RiskLevel        RiskLevel             `json:"risk_level" yaml:"risk_level"`
	Suggestions      []string              `json:"suggestions,omitempty" yaml:"suggestions,omitempty"`
	Summary          string                `json:"summary" yaml:"summary"`
}
