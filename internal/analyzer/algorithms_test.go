package analyzer

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

const pythonSumRenamed = `def total(values):
    acc = 0
    for value in values:
        acc = acc + value
    return acc
`

const pythonCounterSource = `class Counter:
    def __init__(self):
        self.n = 0

    def bump(self, step):
        while self.n < step:
            self.n = self.n + 1
        return self.n
`

func TestAlgorithmsIdentity(t *testing.T) {
	a := buildTestFingerprint(t, "a", "alice", pythonSumSource)
	b := buildTestFingerprint(t, "b", "bob", pythonSumSource)

	assert.Equal(t, 1.0, StructuralSimilarity(a, b))
	assert.Equal(t, 1.0, TokenSequenceSimilarity(a, b))
	assert.InDelta(t, 1.0, LexicalSimilarity(a, b), 1e-9)
	assert.Equal(t, 1.0, EditDistanceSimilarity(a, b))
	assert.Equal(t, 1.0, SemanticSimilarity(a, b))
	assert.Equal(t, 1.0, OrderInvariantSimilarity(a, b))
}

func TestAlgorithmsSymmetry(t *testing.T) {
	a := buildTestFingerprint(t, "a", "alice", pythonSumSource)
	b := buildTestFingerprint(t, "b", "bob", pythonCounterSource)

	assert.InDelta(t, StructuralSimilarity(a, b), StructuralSimilarity(b, a), 1e-9)
	assert.InDelta(t, TokenSequenceSimilarity(a, b), TokenSequenceSimilarity(b, a), 1e-9)
	assert.InDelta(t, LexicalSimilarity(a, b), LexicalSimilarity(b, a), 1e-9)
	assert.InDelta(t, EditDistanceSimilarity(a, b), EditDistanceSimilarity(b, a), 1e-9)
	assert.InDelta(t, SemanticSimilarity(a, b), SemanticSimilarity(b, a), 1e-9)
	assert.InDelta(t, OrderInvariantSimilarity(a, b), OrderInvariantSimilarity(b, a), 1e-9)
}

func TestAlgorithmsBounded(t *testing.T) {
	a := buildTestFingerprint(t, "a", "alice", pythonSumSource)
	b := buildTestFingerprint(t, "b", "bob", pythonCounterSource)

	for name, score := range map[string]float64{
		"structural":      StructuralSimilarity(a, b),
		"token_sequence":  TokenSequenceSimilarity(a, b),
		"lexical":         LexicalSimilarity(a, b),
		"edit_distance":   EditDistanceSimilarity(a, b),
		"semantic":        SemanticSimilarity(a, b),
		"order_invariant": OrderInvariantSimilarity(a, b),
	} {
		assert.GreaterOrEqual(t, score, 0.0, name)
		assert.LessOrEqual(t, score, 1.0, name)
	}
}

func TestStructuralSimilarityRenameInvariant(t *testing.T) {
	a := buildTestFingerprint(t, "a", "alice", pythonSumSource)
	b := buildTestFingerprint(t, "b", "bob", pythonSumRenamed)

	// The tree shape ignores identifiers entirely.
	assert.Equal(t, a.Signature, b.Signature)
	assert.Equal(t, 1.0, StructuralSimilarity(a, b))
	// Canonical tokens erase the renames too.
	assert.Equal(t, 1.0, TokenSequenceSimilarity(a, b))
}

func TestStructuralSimilarityParseFailure(t *testing.T) {
	a := buildTestFingerprint(t, "a", "alice", pythonSumSource)
	broken := buildTestFingerprint(t, "b", "bob", "def broken(:\n    x = 1\n")

	assert.Equal(t, 0.0, StructuralSimilarity(a, broken))
	assert.Equal(t, 0.0, SemanticSimilarity(a, broken))
	// Token and text based scores still work.
	assert.Greater(t, TokenSequenceSimilarity(a, broken), 0.0)
	assert.Greater(t, EditDistanceSimilarity(a, broken), 0.0)
}

func TestSemanticSimilarityRenamed(t *testing.T) {
	a := buildTestFingerprint(t, "a", "alice", pythonSumSource)
	b := buildTestFingerprint(t, "b", "bob", pythonSumRenamed)

	// Control flow and operators match; variable names are fully disjoint.
	// control=1.0, data=(0 + 1 + 1)/3, semantic=(1 + 2/3)/2.
	assert.InDelta(t, 5.0/6.0, SemanticSimilarity(a, b), 1e-9)
}

func TestOrderInvariantSimilarityReorder(t *testing.T) {
	a := buildTestFingerprint(t, "a", "alice", "a = 1\nb = [1, 2]\nc = a + b\n")
	b := buildTestFingerprint(t, "b", "bob", "b = [1, 2]\na = 1\nc = a + b\n")

	assert.Equal(t, 1.0, OrderInvariantSimilarity(a, b))
}

func TestLexicalSimilarity(t *testing.T) {
	t.Run("empty token list scores zero", func(t *testing.T) {
		a := buildTestFingerprint(t, "a", "alice", pythonSumSource)
		empty := &Fingerprint{}
		assert.Equal(t, 0.0, LexicalSimilarity(a, empty))
	})

	t.Run("frequency overlap between different programs", func(t *testing.T) {
		a := buildTestFingerprint(t, "a", "alice", pythonSumSource)
		b := buildTestFingerprint(t, "b", "bob", pythonCounterSource)
		score := LexicalSimilarity(a, b)
		assert.Greater(t, score, 0.0)
		assert.Less(t, score, 1.0)
	})
}

func TestEditDistanceSimilarity(t *testing.T) {
	t.Run("both empty texts are identical", func(t *testing.T) {
		assert.Equal(t, 1.0, EditDistanceSimilarity(&Fingerprint{}, &Fingerprint{}))
	})

	t.Run("one empty text matches nothing", func(t *testing.T) {
		a := buildTestFingerprint(t, "a", "alice", pythonSumSource)
		assert.Equal(t, 0.0, EditDistanceSimilarity(a, &Fingerprint{}))
	})

	t.Run("small edit keeps score high", func(t *testing.T) {
		a := buildTestFingerprint(t, "a", "alice", pythonSumSource)
		b := buildTestFingerprint(t, "b", "bob", "def total(items):\n    result = 1\n    for item in items:\n        result = result + item\n    return result\n")
		assert.Greater(t, EditDistanceSimilarity(a, b), 0.9)
	})
}

func TestJaccard(t *testing.T) {
	setOf := func(items ...string) map[string]struct{} {
		s := make(map[string]struct{})
		for _, item := range items {
			s[item] = struct{}{}
		}
		return s
	}

	assert.Equal(t, 1.0, jaccard(nil, nil))
	assert.Equal(t, 0.0, jaccard(setOf("a"), nil))
	assert.Equal(t, 1.0, jaccard(setOf("a", "b"), setOf("a", "b")))
	assert.InDelta(t, 1.0/3.0, jaccard(setOf("a", "b"), setOf("b", "c")), 1e-9)
	assert.Equal(t, 0.0, jaccard(setOf("a"), setOf("b")))
}

func TestLevenshtein(t *testing.T) {
	assert.Equal(t, 0, levenshteinDistance("", ""))
	assert.Equal(t, 3, levenshteinDistance("abc", ""))
	assert.Equal(t, 0, levenshteinDistance("same", "same"))
	assert.Equal(t, 1, levenshteinDistance("cat", "car"))
	assert.Equal(t, 3, levenshteinDistance("kitten", "sitting"))

	assert.Equal(t, 1.0, levenshteinSimilarity("", ""))
	assert.InDelta(t, 2.0/3.0, levenshteinSimilarity("cat", "car"), 1e-9)
	assert.Equal(t, 0.0, levenshteinSimilarity("abc", "xyz"))
}
