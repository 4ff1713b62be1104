package service

import (
	"fmt"

	"github.com/courseguard/crosscheck/domain"
	"github.com/courseguard/crosscheck/internal/analyzer"
)

// buildOriginalityReports builds one report per submission from its matrix
// row. Originality is (1 - row max) * 100; risk level mirrors the similarity
// buckets; suggestions come from a fixed table keyed by originality band and
// detected transformation labels.
func buildOriginalityReports(
	req *domain.BatchRequest,
	fingerprints []*analyzer.Fingerprint,
	matrix *domain.SimilarityMatrix,
	flaggedByIndex map[int][]*domain.ComparisonResult,
) []*domain.OriginalityReport {
	reports := make([]*domain.OriginalityReport, 0, matrix.Size())
	comparator := analyzer.NewComparator(req.ResolveWeights())
	segmentOpts := analyzer.SegmentOptions{
		MinLines:      req.MinSegmentLines,
		MaxSegments:   req.MaxSegmentsPerPair,
		SnippetMaxLen: req.SnippetMaxLen,
	}

	for i := range fingerprints {
		rowMax := matrix.RowMax(i)
		report := &domain.OriginalityReport{
			SubmissionID:     fingerprints[i].SubmissionID,
			AuthorID:         fingerprints[i].AuthorID,
			OriginalityScore: (1.0 - rowMax) * 100.0,
			RiskLevel:        req.Buckets.Level(rowMax),
		}

		// Closest peer and its full breakdown.
		closest := -1
		for j := range fingerprints {
			if j == i {
				continue
			}
			if closest == -1 || matrix.At(i, j) > matrix.At(i, closest) {
				closest = j
			}
		}
		if closest >= 0 && rowMax > 0 {
			report.ClosestPeer = fingerprints[closest].SubmissionID
			breakdown := comparator.Compare(fingerprints[i], fingerprints[closest])
			report.PeerBreakdown = &breakdown
			report.Transformations = analyzer.DetectTransformations(fingerprints[i], fingerprints[closest])
			if rowMax >= req.FlagThreshold {
				report.Evidence = analyzer.FindMatchingSegments(fingerprints[i], fingerprints[closest], segmentOpts)
			}
		}

		for j := range fingerprints {
			if j != i && matrix.At(i, j) >= req.FlagThreshold {
				report.PeersOverLimit = append(report.PeersOverLimit, fingerprints[j].SubmissionID)
			}
		}

		// Flagged-pair labels feed the suggestion table even when the
		// closest peer itself sits below the threshold.
		labels := report.Transformations
		for _, result := range flaggedByIndex[i] {
			labels = append(labels, result.Transformations...)
		}

		report.Suggestions = suggestionsFor(report.OriginalityScore, labels)
		report.Summary = reportSummary(report)
		reports = append(reports, report)
	}

	return reports
}

// suggestionsFor selects review suggestions from a fixed table keyed by
// originality band and the detected transformation labels.
func suggestionsFor(originality float64, labels []domain.TransformationLabel) []string {
	var suggestions []string

	switch {
	case originality >= 70:
		suggestions = append(suggestions,
			"No strong overlap with any peer; no action needed.")
	case originality >= 50:
		suggestions = append(suggestions,
			"Moderate overlap with at least one peer; spot-check the shared regions before concluding anything.")
	case originality >= 30:
		suggestions = append(suggestions,
			"Substantial overlap with a peer; review the matching segments side by side.",
			"Ask the author to walk through the overlapping code.")
	default:
		suggestions = append(suggestions,
			"Very low originality; the submission is nearly identical to a peer and needs manual review.",
			"Compare commit or submission timestamps to establish which version came first.")
	}

	seen := map[domain.TransformationLabel]bool{}
	for _, label := range labels {
		if seen[label] {
			continue
		}
		seen[label] = true
		if suggestion, ok := labelSuggestions[label]; ok && originality < 70 {
			suggestions = append(suggestions, suggestion)
		}
	}

	return suggestions
}

// labelSuggestions is the fixed per-label suggestion table.
var labelSuggestions = map[domain.TransformationLabel]string{
	domain.TransformVariableRename:     "Renaming variables alone does not establish originality; the underlying structure matches a peer.",
	domain.TransformFunctionRename:     "Renaming functions alone does not establish originality; the underlying structure matches a peer.",
	domain.TransformCommentEdit:        "Differences are limited to comments; the executable code matches a peer.",
	domain.TransformWhitespaceEdit:     "Differences are limited to whitespace; the code matches a peer character for character.",
	domain.TransformStatementReorder:   "Top-level statements appear reordered relative to a peer; reordering independent statements preserves behavior.",
	domain.TransformFunctionExtraction: "The same logic appears split into more functions than a peer's version.",
	domain.TransformFunctionInlining:   "The same logic appears merged into fewer functions than a peer's version.",
}

func reportSummary(report *domain.OriginalityReport) string {
	if report.ClosestPeer == "" || report.OriginalityScore >= 100 {
		return fmt.Sprintf("Submission %s shows no measurable overlap with any peer (originality %.0f%%).",
			report.SubmissionID, report.OriginalityScore)
	}
	return fmt.Sprintf("Submission %s: originality %.0f%% (risk %s); most similar peer is %s with %d peers over the flag threshold.",
		report.SubmissionID, report.OriginalityScore, report.RiskLevel, report.ClosestPeer, len(report.PeersOverLimit))
}
