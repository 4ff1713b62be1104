package service

import (
	"context"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/courseguard/crosscheck/domain"
	"github.com/courseguard/crosscheck/internal/analyzer"
)

const sumSource = `def total(items):
    result = 0
    for item in items:
        result = result + item
    return result
`

const counterSource = `class Counter:
    def __init__(self):
        self.n = 0

    def bump(self, step):
        while self.n < step:
            self.n = self.n + 1
        return self.n
`

func newCheckRequest(id, author, source string) *domain.CheckRequest {
	req := domain.DefaultCheckRequest(domain.Submission{
		ID:       id,
		AuthorID: author,
		CourseID: "cs101",
		Language: domain.LanguagePython,
		Source:   source,
	})
	return req
}

func TestCheckServiceFirstSubmission(t *testing.T) {
	store := analyzer.NewHistoryStore()
	service := NewCheckService(store, zerolog.Nop())

	response, err := service.Check(context.Background(), newCheckRequest("s1", "alice", sumSource))
	require.NoError(t, err)

	assert.Equal(t, "s1", response.SubmissionID)
	assert.Equal(t, domain.CheckStateAppended, response.State)
	assert.Equal(t, 0.0, response.OverallSimilarity)
	assert.Equal(t, domain.RiskNone, response.Level)
	assert.False(t, response.Flagged)
	assert.Equal(t, 0, response.HistorySize)
	assert.Empty(t, response.Comparisons)

	// Appended regardless of verdict.
	assert.Equal(t, 1, store.Size("cs101"))
}

func TestCheckServiceFlagsIdenticalCopy(t *testing.T) {
	store := analyzer.NewHistoryStore()
	service := NewCheckService(store, zerolog.Nop())
	ctx := context.Background()

	_, err := service.Check(ctx, newCheckRequest("s1", "alice", sumSource))
	require.NoError(t, err)

	response, err := service.Check(ctx, newCheckRequest("s2", "bob", sumSource))
	require.NoError(t, err)

	assert.True(t, response.Flagged)
	assert.Equal(t, domain.CheckStateAppended, response.State)
	assert.InDelta(t, 1.0, response.OverallSimilarity, 1e-9)
	assert.Equal(t, domain.RiskVeryHigh, response.Level)
	assert.Equal(t, 1, response.HistorySize)

	require.Len(t, response.Comparisons, 1)
	comparison := response.Comparisons[0]
	assert.Equal(t, "s2", comparison.SubmissionA)
	assert.Equal(t, "s1", comparison.SubmissionB)
	assert.NotEmpty(t, comparison.Evidence)

	// The flagged submission still joins the history.
	assert.Equal(t, 2, store.Size("cs101"))
}

func TestCheckServiceSkipsSameAuthor(t *testing.T) {
	store := analyzer.NewHistoryStore()
	service := NewCheckService(store, zerolog.Nop())
	ctx := context.Background()

	_, err := service.Check(ctx, newCheckRequest("s1", "alice", sumSource))
	require.NoError(t, err)

	// Alice resubmits the identical file; her own history never counts
	// against her.
	response, err := service.Check(ctx, newCheckRequest("s2", "alice", sumSource))
	require.NoError(t, err)

	assert.False(t, response.Flagged)
	assert.Equal(t, 0.0, response.OverallSimilarity)
	assert.Equal(t, 1, response.HistorySize)
}

func TestCheckServiceClearsUnrelatedSubmission(t *testing.T) {
	store := analyzer.NewHistoryStore()
	service := NewCheckService(store, zerolog.Nop())
	ctx := context.Background()

	_, err := service.Check(ctx, newCheckRequest("s1", "alice", sumSource))
	require.NoError(t, err)

	response, err := service.Check(ctx, newCheckRequest("s2", "bob", counterSource))
	require.NoError(t, err)

	assert.False(t, response.Flagged)
	assert.Less(t, response.OverallSimilarity, domain.DefaultFlagThreshold)
	assert.Empty(t, response.Comparisons)
}

func TestCheckServiceCourseIsolation(t *testing.T) {
	store := analyzer.NewHistoryStore()
	service := NewCheckService(store, zerolog.Nop())
	ctx := context.Background()

	_, err := service.Check(ctx, newCheckRequest("s1", "alice", sumSource))
	require.NoError(t, err)

	// Identical source in a different course compares against nothing.
	other := newCheckRequest("s2", "bob", sumSource)
	other.Submission.CourseID = "cs201"
	response, err := service.Check(ctx, other)
	require.NoError(t, err)

	assert.False(t, response.Flagged)
	assert.Equal(t, 0, response.HistorySize)
}

func TestCheckServiceCustomWeights(t *testing.T) {
	ctx := context.Background()

	run := func(custom *domain.Weights) *domain.CheckResponse {
		store := analyzer.NewHistoryStore()
		service := NewCheckService(store, zerolog.Nop())

		_, err := service.Check(ctx, newCheckRequest("s1", "alice", sumSource))
		require.NoError(t, err)

		req := newCheckRequest("s2", "bob", sumRenamedSource)
		req.FlagThreshold = 0.95
		req.CustomWeights = custom
		response, err := service.Check(ctx, req)
		require.NoError(t, err)
		return response
	}

	// With the stock preset a renamed copy sits below 0.95.
	assert.False(t, run(nil).Flagged)

	// Weighting the structural score alone pushes it to 1.0.
	response := run(&domain.Weights{Structural: 1.0})
	assert.True(t, response.Flagged)
	assert.InDelta(t, 1.0, response.OverallSimilarity, 1e-9)
}

func TestCheckServiceLanguageIsolation(t *testing.T) {
	store := analyzer.NewHistoryStore()
	service := NewCheckService(store, zerolog.Nop())
	ctx := context.Background()

	_, err := service.Check(ctx, newCheckRequest("s1", "alice", sumSource))
	require.NoError(t, err)

	// Byte-identical source tagged as a different language is never
	// compared against the Python history.
	other := newCheckRequest("s2", "bob", sumSource)
	other.Submission.Language = domain.LanguageGo
	response, err := service.Check(ctx, other)
	require.NoError(t, err)

	assert.False(t, response.Flagged)
	assert.Equal(t, 0.0, response.OverallSimilarity)
}

func TestCheckServiceValidation(t *testing.T) {
	service := NewCheckService(analyzer.NewHistoryStore(), zerolog.Nop())
	ctx := context.Background()

	t.Run("nil request", func(t *testing.T) {
		_, err := service.Check(ctx, nil)
		require.Error(t, err)

		var derr domain.DomainError
		require.ErrorAs(t, err, &derr)
		assert.Equal(t, domain.ErrCodeInvalidInput, derr.Code)
	})

	t.Run("missing submission id", func(t *testing.T) {
		req := newCheckRequest("", "alice", sumSource)
		_, err := service.Check(ctx, req)
		assert.Error(t, err)
	})

	t.Run("missing author id", func(t *testing.T) {
		req := newCheckRequest("s1", "", sumSource)
		_, err := service.Check(ctx, req)
		assert.Error(t, err)
	})

	t.Run("threshold out of range", func(t *testing.T) {
		req := newCheckRequest("s1", "alice", sumSource)
		req.FlagThreshold = 1.5
		_, err := service.Check(ctx, req)
		assert.Error(t, err)
	})

	t.Run("unsupported language", func(t *testing.T) {
		req := newCheckRequest("s1", "alice", sumSource)
		req.Submission.Language = "cobol"
		_, err := service.Check(ctx, req)
		assert.Error(t, err)
	})
}

func TestCheckServiceCancelledContext(t *testing.T) {
	store := analyzer.NewHistoryStore()
	service := NewCheckService(store, zerolog.Nop())

	_, err := service.Check(context.Background(), newCheckRequest("s1", "alice", sumSource))
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err = service.Check(ctx, newCheckRequest("s2", "bob", sumSource))
	assert.Error(t, err)
}

func TestCheckServiceEmptySubmission(t *testing.T) {
	store := analyzer.NewHistoryStore()
	service := NewCheckService(store, zerolog.Nop())
	ctx := context.Background()

	_, err := service.Check(ctx, newCheckRequest("s1", "alice", sumSource))
	require.NoError(t, err)

	// Empty input scores zero against everything and is never an error.
	response, err := service.Check(ctx, newCheckRequest("s2", "bob", ""))
	require.NoError(t, err)
	assert.False(t, response.Flagged)
	assert.Equal(t, 0.0, response.OverallSimilarity)
}
