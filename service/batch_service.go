package service

import (
	"context"
	"fmt"
	"sort"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/courseguard/crosscheck/domain"
	"github.com/courseguard/crosscheck/internal/analyzer"
	"github.com/courseguard/crosscheck/internal/parser"
)

// BatchServiceImpl implements the domain.BatchService interface.
//
// The full list of unordered (i,j) pairs is precomputed and distributed to a
// worker pool; each worker writes into its own pre-sized matrix cell, so no
// shared accumulator exists. The matrix is assembled only once every
// comparison finishes; no partial matrix is ever exposed.
type BatchServiceImpl struct {
	fingerprinter *analyzer.Fingerprinter
	executor      domain.ParallelExecutor
	progress      domain.ProgressManager
	log           zerolog.Logger
}

// NewBatchService creates a batch analysis service.
// progress can be nil - the service can work without progress reporting.
func NewBatchService(executor domain.ParallelExecutor, progress domain.ProgressManager, log zerolog.Logger) *BatchServiceImpl {
	return &BatchServiceImpl{
		fingerprinter: analyzer.NewFingerprinter(parser.New(), log),
		executor:      executor,
		progress:      progress,
		log:           log,
	}
}

// pairResult is one cell's outcome, written by exactly one worker.
type pairResult struct {
	i, j   int
	scores domain.SimilarityScoreSet
}

// Analyze computes the full pairwise similarity matrix for a cohort and, if
// requested, per-submission originality reports.
func (s *BatchServiceImpl) Analyze(ctx context.Context, req *domain.BatchRequest) (*domain.BatchResponse, error) {
	if ctx == nil {
		return nil, domain.NewInvalidInputError("context cannot be nil", nil)
	}
	if req == nil {
		return nil, domain.NewInvalidInputError("batch request cannot be nil", nil)
	}
	if err := req.Validate(); err != nil {
		return nil, err
	}

	startTime := time.Now()

	if req.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, req.Timeout)
		defer cancel()
	}

	n := len(req.Submissions)
	s.log.Info().Int("submissions", n).Msg("batch analysis started")

	// Fingerprint every submission once. Malformed source degrades inside
	// the fingerprinter; one bad file never blocks the cohort.
	fingerprints := make([]*analyzer.Fingerprint, n)
	for i, sub := range req.Submissions {
		select {
		case <-ctx.Done():
			return nil, fmt.Errorf("batch analysis cancelled: %w", ctx.Err())
		default:
		}
		fingerprints[i] = s.fingerprinter.Build(ctx, sub)
	}

	// Precompute every unordered pair, then score via the worker pool with
	// per-pair cancellation granularity.
	type pair struct{ i, j int }
	pairs := make([]pair, 0, n*(n-1)/2)
	for i := 0; i < n; i++ {
		for j := i + 1; j < n; j++ {
			pairs = append(pairs, pair{i, j})
		}
	}

	comparator := analyzer.NewComparator(req.ResolveWeights())
	results := make([]pairResult, len(pairs))

	if s.progress != nil {
		s.progress.Initialize(len(pairs))
		s.progress.Start()
	}

	tasks := make([]domain.ExecutableTask, len(pairs))
	var completed atomic.Int64
	for idx, p := range pairs {
		idx, p := idx, p
		tasks[idx] = NewSimpleTask(fmt.Sprintf("pair-%d-%d", p.i, p.j), true, func(taskCtx context.Context) (interface{}, error) {
			results[idx] = pairResult{
				i:      p.i,
				j:      p.j,
				scores: comparator.Compare(fingerprints[p.i], fingerprints[p.j]),
			}
			if s.progress != nil {
				s.progress.Update(int(completed.Add(1)), len(pairs))
			}
			return nil, nil
		})
	}

	if req.MaxWorkers > 0 {
		s.executor.SetMaxConcurrency(req.MaxWorkers)
	}
	if err := s.executor.Execute(ctx, tasks); err != nil {
		if s.progress != nil {
			s.progress.Complete(false)
		}
		return nil, domain.NewAnalysisError("batch comparison failed", err)
	}
	if s.progress != nil {
		s.progress.Complete(true)
	}

	// Collect into the pre-sized matrix; diagonal fixed at 1.0.
	matrix := newMatrix(req.Submissions)
	for _, r := range results {
		matrix.Scores[r.i][r.j] = r.scores.Combined
		matrix.Scores[r.j][r.i] = r.scores.Combined
	}

	// Evidence extraction and transformation labeling for flagged pairs.
	segmentOpts := analyzer.SegmentOptions{
		MinLines:      req.MinSegmentLines,
		MaxSegments:   req.MaxSegmentsPerPair,
		SnippetMaxLen: req.SnippetMaxLen,
	}
	var flagged []*domain.ComparisonResult
	flaggedByIndex := make(map[int][]*domain.ComparisonResult)
	for _, r := range results {
		if r.scores.Combined < req.FlagThreshold {
			continue
		}
		result := buildComparison(fingerprints[r.i], fingerprints[r.j], r.scores, segmentOpts)
		flagged = append(flagged, result)
		flaggedByIndex[r.i] = append(flaggedByIndex[r.i], result)
		flaggedByIndex[r.j] = append(flaggedByIndex[r.j], result)
	}
	sortComparisons(flagged, req.SortBy)
	matrix.Flagged = flagged
	matrix.FlaggedCount = len(flagged)

	response := &domain.BatchResponse{
		RunID:       uuid.NewString(),
		Matrix:      matrix,
		Flagged:     flagged,
		Statistics:  batchStatistics(matrix, len(pairs), results),
		GeneratedAt: time.Now(),
		Duration:    time.Since(startTime).Milliseconds(),
	}

	for _, fp := range fingerprints {
		if fp.Empty {
			response.Warnings = append(response.Warnings, fmt.Sprintf("submission %s is empty", fp.SubmissionID))
		} else if !fp.ParseOK {
			response.Warnings = append(response.Warnings, fmt.Sprintf("submission %s did not parse; structural and semantic scores defaulted to 0", fp.SubmissionID))
		}
	}

	if req.GenerateReports {
		response.Reports = buildOriginalityReports(req, fingerprints, matrix, flaggedByIndex)
		if req.SortBy == domain.SortByOriginality {
			// Least original first, so reviewers see the riskiest work on top.
			sort.Slice(response.Reports, func(i, j int) bool {
				return response.Reports[i].OriginalityScore < response.Reports[j].OriginalityScore
			})
		}
	}

	s.log.Info().
		Str("run", response.RunID).
		Int("comparisons", len(pairs)).
		Int("flagged", len(flagged)).
		Dur("elapsed", time.Since(startTime)).
		Msg("batch analysis completed")

	return response, nil
}

func newMatrix(subs []domain.Submission) *domain.SimilarityMatrix {
	n := len(subs)
	ids := make([]string, n)
	scores := make([][]float64, n)
	for i := range subs {
		ids[i] = subs[i].ID
		scores[i] = make([]float64, n)
		scores[i][i] = 1.0
	}
	return &domain.SimilarityMatrix{
		SubmissionIDs: ids,
		Scores:        scores,
	}
}

func batchStatistics(matrix *domain.SimilarityMatrix, totalComparisons int, results []pairResult) domain.BatchStatistics {
	stats := domain.BatchStatistics{
		TotalSubmissions: matrix.Size(),
		TotalComparisons: totalComparisons,
		FlaggedCount:     matrix.FlaggedCount,
	}

	sum := 0.0
	for _, r := range results {
		sum += r.scores.Combined
		if r.scores.Combined > stats.MaxSimilarity {
			stats.MaxSimilarity = r.scores.Combined
		}
	}
	if len(results) > 0 {
		stats.AverageSimilarity = sum / float64(len(results))
	}
	return stats
}

func sortComparisons(results []*domain.ComparisonResult, criteria domain.SortCriteria) {
	switch criteria {
	case domain.SortBySubmission:
		sort.Slice(results, func(i, j int) bool {
			if results[i].SubmissionA != results[j].SubmissionA {
				return results[i].SubmissionA < results[j].SubmissionA
			}
			return results[i].SubmissionB < results[j].SubmissionB
		})
	default: // similarity, highest first
		sort.Slice(results, func(i, j int) bool {
			return results[i].Scores.Combined > results[j].Scores.Combined
		})
	}
}
