package service

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/courseguard/crosscheck/domain"
	"github.com/courseguard/crosscheck/internal/analyzer"
	"github.com/courseguard/crosscheck/internal/parser"
)

// CheckServiceImpl implements the domain.CheckService interface. It walks a
// submission through RECEIVED, FINGERPRINTED, COMPARED, FLAGGED or CLEARED,
// and APPENDED, against a snapshot of the course history taken at request
// start.
type CheckServiceImpl struct {
	fingerprinter *analyzer.Fingerprinter
	store         *analyzer.HistoryStore
	log           zerolog.Logger
}

// NewCheckService creates a check service backed by the given history store.
func NewCheckService(store *analyzer.HistoryStore, log zerolog.Logger) *CheckServiceImpl {
	return &CheckServiceImpl{
		fingerprinter: analyzer.NewFingerprinter(parser.New(), log),
		store:         store,
		log:           log,
	}
}

// Check compares one submission against its course history and appends it.
// The submission is appended regardless of verdict so later checks can
// reference it.
func (s *CheckServiceImpl) Check(ctx context.Context, req *domain.CheckRequest) (*domain.CheckResponse, error) {
	if ctx == nil {
		return nil, domain.NewInvalidInputError("context cannot be nil", nil)
	}
	if req == nil {
		return nil, domain.NewInvalidInputError("check request cannot be nil", nil)
	}
	if err := req.Validate(); err != nil {
		return nil, err
	}

	sub := req.Submission
	state := domain.CheckStateReceived
	s.log.Debug().Str("submission", sub.ID).Str("state", string(state)).Msg("check started")

	// Comparison set is fixed at request start.
	history := s.store.Snapshot(sub.CourseID)

	fp := s.fingerprinter.Build(ctx, sub)
	state = domain.CheckStateFingerprinted

	comparator := analyzer.NewComparator(req.ResolveWeights())
	segmentOpts := analyzer.SegmentOptions{
		MinLines:      req.MinSegmentLines,
		MaxSegments:   req.MaxSegmentsPerPair,
		SnippetMaxLen: req.SnippetMaxLen,
	}

	overall := 0.0
	var comparisons []*domain.ComparisonResult

	for _, peer := range history {
		select {
		case <-ctx.Done():
			return nil, fmt.Errorf("check cancelled: %w", ctx.Err())
		default:
		}

		// A submission is never compared against its own author's history.
		if peer.AuthorID == sub.AuthorID {
			continue
		}
		// Fingerprints of different languages are not comparable.
		if peer.Language != fp.Language {
			continue
		}

		scores := comparator.Compare(fp, peer)
		if scores.Combined > overall {
			overall = scores.Combined
		}

		if scores.Combined >= req.FlagThreshold {
			comparisons = append(comparisons, buildComparison(fp, peer, scores, segmentOpts))
		}
	}
	state = domain.CheckStateCompared

	flagged := overall >= req.FlagThreshold
	if flagged {
		state = domain.CheckStateFlagged
	} else {
		state = domain.CheckStateCleared
	}

	s.store.Append(sub.CourseID, fp)
	state = domain.CheckStateAppended

	level := req.Buckets.Level(overall)
	response := &domain.CheckResponse{
		SubmissionID:      sub.ID,
		CheckedAt:         time.Now(),
		State:             state,
		OverallSimilarity: overall,
		Level:             level,
		Flagged:           flagged,
		Comparisons:       comparisons,
		HistorySize:       len(history),
		Summary:           checkSummary(sub.ID, overall, level, flagged, len(history)),
	}

	s.log.Info().
		Str("submission", sub.ID).
		Float64("overall", overall).
		Bool("flagged", flagged).
		Int("history", len(history)).
		Msg("check completed")

	return response, nil
}

// buildComparison assembles the full evidence for a flagged pair.
func buildComparison(a, b *analyzer.Fingerprint, scores domain.SimilarityScoreSet, opts analyzer.SegmentOptions) *domain.ComparisonResult {
	result := &domain.ComparisonResult{
		SubmissionA:     a.SubmissionID,
		SubmissionB:     b.SubmissionID,
		AuthorA:         a.AuthorID,
		AuthorB:         b.AuthorID,
		Scores:          scores,
		Evidence:        analyzer.FindMatchingSegments(a, b, opts),
		Transformations: analyzer.DetectTransformations(a, b),
	}

	if !a.ParseOK {
		result.Notes = append(result.Notes, fmt.Sprintf("submission %s did not parse; structural and semantic scores defaulted to 0", a.SubmissionID))
	}
	if !b.ParseOK {
		result.Notes = append(result.Notes, fmt.Sprintf("submission %s did not parse; structural and semantic scores defaulted to 0", b.SubmissionID))
	}
	return result
}

func checkSummary(id string, overall float64, level domain.RiskLevel, flagged bool, historySize int) string {
	verdict := "cleared"
	if flagged {
		verdict = "flagged for review"
	}
	return fmt.Sprintf("Submission %s %s: highest similarity %.1f%% (%s) across %d prior submissions.",
		id, verdict, overall*100, level, historySize)
}
