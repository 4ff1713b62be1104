package analyzer

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/courseguard/crosscheck/domain"
)

func labelsOf(t *testing.T, sourceA, sourceB string) []domain.TransformationLabel {
	t.Helper()
	a := buildTestFingerprint(t, "a", "alice", sourceA)
	b := buildTestFingerprint(t, "b", "bob", sourceB)
	return DetectTransformations(a, b)
}

func TestDetectVariableRename(t *testing.T) {
	labels := labelsOf(t, pythonSumSource, pythonSumRenamed)

	assert.Contains(t, labels, domain.TransformVariableRename)
	assert.NotContains(t, labels, domain.TransformFunctionRename)
}

func TestDetectFunctionRename(t *testing.T) {
	a := `def total(items):
    result = 0
    for item in items:
        result = result + item
    return result
`
	b := `def sum_all(items):
    result = 0
    for item in items:
        result = result + item
    return result
`
	labels := labelsOf(t, a, b)

	assert.Contains(t, labels, domain.TransformFunctionRename)
	assert.NotContains(t, labels, domain.TransformVariableRename)
}

func TestDetectCommentEdit(t *testing.T) {
	a := "x = 1  # set x\ny = x + 2\n"
	b := "x = 1\ny = x + 2\n"
	labels := labelsOf(t, a, b)

	assert.Contains(t, labels, domain.TransformCommentEdit)
	assert.NotContains(t, labels, domain.TransformWhitespaceEdit)
}

func TestDetectWhitespaceEdit(t *testing.T) {
	a := "x = 1\ny = x + 2\n"
	b := "x=1\ny   =   x+2\n"
	labels := labelsOf(t, a, b)

	assert.Contains(t, labels, domain.TransformWhitespaceEdit)
	assert.NotContains(t, labels, domain.TransformCommentEdit)
}

func TestDetectBlankLineEdit(t *testing.T) {
	// Inserted blank lines survive nothing but the raw source, so the
	// whitespace check must start from there.
	a := "x = 1\ny = x + 2\n"
	b := "x = 1\n\n\ny = x + 2\n"
	labels := labelsOf(t, a, b)

	assert.Contains(t, labels, domain.TransformWhitespaceEdit)
	assert.NotContains(t, labels, domain.TransformCommentEdit)
}

func TestDetectStatementReorder(t *testing.T) {
	a := "a = 1\nb = [1, 2]\nc = a + b\n"
	b := "b = [1, 2]\na = 1\nc = a + b\n"
	labels := labelsOf(t, a, b)

	assert.Contains(t, labels, domain.TransformStatementReorder)
}

func TestReorderNeedsSameMultiset(t *testing.T) {
	// Different statements in a different order are not a reorder.
	a := "a = 1\nb = [1, 2]\n"
	b := "b = [1, 2]\nz = 'other'\n"
	labels := labelsOf(t, a, b)

	assert.NotContains(t, labels, domain.TransformStatementReorder)
}

func TestSameOrderIsNotReorder(t *testing.T) {
	labels := labelsOf(t, pythonSumSource, pythonSumSource)
	assert.NotContains(t, labels, domain.TransformStatementReorder)
}

func TestDetectFunctionExtraction(t *testing.T) {
	monolith := `def process(data):
    cleaned = [d for d in data if d]
    return len(cleaned)
`
	split := `def clean(data):
    return [d for d in data if d]

def process(data):
    return len(clean(data))
`
	aToB := labelsOf(t, monolith, split)
	assert.Contains(t, aToB, domain.TransformFunctionExtraction)

	bToA := labelsOf(t, split, monolith)
	assert.Contains(t, bToA, domain.TransformFunctionInlining)
}

func TestDetectNothingForEmptyInput(t *testing.T) {
	assert.Nil(t, labelsOf(t, "", pythonSumSource))
	assert.Nil(t, labelsOf(t, pythonSumSource, ""))
}

func TestRenameConsistent(t *testing.T) {
	setOf := func(items ...string) map[string]struct{} {
		s := make(map[string]struct{})
		for _, item := range items {
			s[item] = struct{}{}
		}
		return s
	}

	assert.True(t, renameConsistent(setOf("a", "b"), setOf("x", "y")))
	assert.False(t, renameConsistent(setOf("a", "b"), setOf("a", "y")), "shared name")
	assert.False(t, renameConsistent(setOf("a"), setOf("x", "y")), "cardinality mismatch")
	assert.False(t, renameConsistent(nil, nil), "empty sets carry no signal")
}
