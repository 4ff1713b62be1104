package analyzer

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sharedBlockSource = `def shared(data):
    out = []
    for item in data:
        out.append(item * 2)
    return out
`

func TestFindMatchingSegments(t *testing.T) {
	a := buildTestFingerprint(t, "a", "alice", sharedBlockSource)
	b := buildTestFingerprint(t, "b", "bob", "LIMIT = 10\n\n"+sharedBlockSource)

	segments := FindMatchingSegments(a, b, DefaultSegmentOptions())
	require.Len(t, segments, 1)

	seg := segments[0]
	assert.Equal(t, 1, seg.StartLineA)
	assert.Equal(t, 5, seg.EndLineA)
	assert.Equal(t, 3, seg.StartLineB)
	assert.Equal(t, 7, seg.EndLineB)
	assert.Equal(t, 5, seg.LineCount())

	// The shared block is byte-identical on both sides.
	assert.Equal(t, seg.SnippetA, seg.SnippetB)
	assert.Equal(t, 1.0, seg.Similarity)
}

func TestFindMatchingSegmentsMinLines(t *testing.T) {
	a := buildTestFingerprint(t, "a", "alice", "x = 1\ny = 2\n")
	b := buildTestFingerprint(t, "b", "bob", "x = 1\ny = 2\nz = 3\n")

	// A two-line match is below the default three-line floor.
	assert.Empty(t, FindMatchingSegments(a, b, DefaultSegmentOptions()))

	opts := DefaultSegmentOptions()
	opts.MinLines = 2
	assert.Len(t, FindMatchingSegments(a, b, opts), 1)
}

func TestFindMatchingSegmentsSnippetTruncation(t *testing.T) {
	a := buildTestFingerprint(t, "a", "alice", sharedBlockSource)
	b := buildTestFingerprint(t, "b", "bob", sharedBlockSource)

	opts := DefaultSegmentOptions()
	opts.SnippetMaxLen = 10
	segments := FindMatchingSegments(a, b, opts)

	require.Len(t, segments, 1)
	assert.LessOrEqual(t, len(segments[0].SnippetA), 10)
	assert.LessOrEqual(t, len(segments[0].SnippetB), 10)
}

func TestFindMatchingSegmentsNoOverlap(t *testing.T) {
	a := buildTestFingerprint(t, "a", "alice", "x = 1\ny = 2\nz = 3\n")
	b := buildTestFingerprint(t, "b", "bob", "p = 'q'\nr = 's'\nu = 'v'\n")

	assert.Empty(t, FindMatchingSegments(a, b, DefaultSegmentOptions()))
}

func TestFindMatchingSegmentsMaxSegments(t *testing.T) {
	// Two shared three-line blocks separated by differing lines.
	blockOne := "a = 1\nb = 2\nc = 3\n"
	blockTwo := "x = 7\ny = 8\nz = 9\n"
	a := buildTestFingerprint(t, "a", "alice", blockOne+"only_a = 'left'\n"+blockTwo)
	b := buildTestFingerprint(t, "b", "bob", blockOne+"only_b = 'right'\n"+blockTwo)

	segments := FindMatchingSegments(a, b, DefaultSegmentOptions())
	assert.Len(t, segments, 2)

	opts := DefaultSegmentOptions()
	opts.MaxSegments = 1
	assert.Len(t, FindMatchingSegments(a, b, opts), 1)
}
