package analyzer

import (
	"context"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/courseguard/crosscheck/domain"
	"github.com/courseguard/crosscheck/internal/parser"
)

const pythonSumSource = `def total(items):
    result = 0
    for item in items:
        result = result + item
    return result
`

// buildTestFingerprint is the shared helper for analyzer tests.
func buildTestFingerprint(t *testing.T, id, author, source string) *Fingerprint {
	t.Helper()
	f := NewFingerprinter(parser.New(), zerolog.Nop())
	return f.Build(context.Background(), domain.Submission{
		ID:       id,
		AuthorID: author,
		Language: domain.LanguagePython,
		Source:   source,
	})
}

func TestFingerprinterBuild(t *testing.T) {
	fp := buildTestFingerprint(t, "s1", "alice", pythonSumSource)

	assert.Equal(t, "s1", fp.SubmissionID)
	assert.Equal(t, "alice", fp.AuthorID)
	assert.False(t, fp.Empty)
	assert.True(t, fp.ParseOK)
	assert.NotEmpty(t, fp.Signature)
	assert.NotEmpty(t, fp.KindSequence)
	assert.NotEmpty(t, fp.Tokens)
	require.NotNil(t, fp.Root)
	assert.Equal(t, parser.KindModule, fp.Root.Kind)
}

func TestFingerprinterFeatures(t *testing.T) {
	fp := buildTestFingerprint(t, "s1", "alice", pythonSumSource)

	assert.Equal(t, 1, fp.FunctionCount)
	assert.Contains(t, fp.Functions, "total")

	// Function names never count as variables.
	assert.NotContains(t, fp.Variables, "total")
	assert.Contains(t, fp.Variables, "result")
	assert.Contains(t, fp.Variables, "items")
	assert.Contains(t, fp.Variables, "item")

	assert.Contains(t, fp.Operators, "+")
	assert.Equal(t, []string{"For"}, fp.ControlFlow)
}

func TestFingerprinterNormalization(t *testing.T) {
	source := "x = 1   # trailing comment\n\n\ny  =  x + 2\n"
	fp := buildTestFingerprint(t, "s1", "alice", source)

	// Comments stripped, whitespace collapsed, blank lines dropped.
	require.Equal(t, []string{"x = 1", "y = x + 2"}, fp.NormalizedLines)
	// Normalized lines keep their original 1-based numbers.
	require.Equal(t, []int{1, 4}, fp.LineNumbers)
	assert.Equal(t, "x = 1\ny = x + 2", fp.NormalizedText)
}

func TestFingerprinterCanonicalTokens(t *testing.T) {
	fp := buildTestFingerprint(t, "s1", "alice", "count = 42\nname = 'bob'  # tag\n")

	// Identifiers, numbers, and strings collapse to canonical classes;
	// comments disappear.
	assert.Equal(t, []string{"NAME", "=", "NUMBER", "NAME", "=", "STRING"}, fp.Tokens)
}

func TestFingerprinterEmptySource(t *testing.T) {
	for _, source := range []string{"", "   ", "\n\n\t\n"} {
		fp := buildTestFingerprint(t, "s1", "alice", source)
		assert.True(t, fp.Empty)
		assert.False(t, fp.ParseOK)
	}
}

func TestFingerprinterSyntaxErrorDegrades(t *testing.T) {
	// Parse fails, but lexing still yields tokens and lines.
	fp := buildTestFingerprint(t, "s1", "alice", "def broken(:\n    x = 1\n")

	assert.False(t, fp.Empty)
	assert.False(t, fp.ParseOK)
	assert.Empty(t, fp.Signature)
	assert.NotEmpty(t, fp.Tokens)
	assert.NotEmpty(t, fp.NormalizedLines)
}

func TestFingerprinterUnsupportedLanguageFallback(t *testing.T) {
	f := NewFingerprinter(parser.New(), zerolog.Nop())
	fp := f.Build(context.Background(), domain.Submission{
		ID:       "s1",
		AuthorID: "alice",
		Language: domain.Language("ruby"),
		Source:   "puts 1\nputs 2\n",
	})

	// No front-end: naive whitespace tokens and raw line normalization.
	assert.False(t, fp.ParseOK)
	assert.Equal(t, []string{"puts", "1", "puts", "2"}, fp.Tokens)
	assert.Equal(t, []string{"puts 1", "puts 2"}, fp.NormalizedLines)
}
