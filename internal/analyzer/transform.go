package analyzer

import (
	"sort"
	"strings"

	"github.com/courseguard/crosscheck/domain"
	"github.com/courseguard/crosscheck/internal/parser"
)

// DetectTransformations labels which surface edits are consistent with the
// observed similarity between two fingerprints. Labels may co-occur and are
// heuristic evidence, never certainty.
func DetectTransformations(a, b *Fingerprint) []domain.TransformationLabel {
	if a.Empty || b.Empty {
		return nil
	}

	var labels []domain.TransformationLabel

	// Disjoint identifier sets of equal cardinality while the canonical
	// token stream matches: a systematic rename explains the difference.
	if tokensEqual(a.Tokens, b.Tokens) {
		if renameConsistent(a.Variables, b.Variables) {
			labels = append(labels, domain.TransformVariableRename)
		}
		if renameConsistent(a.Functions, b.Functions) {
			labels = append(labels, domain.TransformFunctionRename)
		}
	}

	// Comment-stripped text matches while the raw text differs.
	if a.RawCollapsed != b.RawCollapsed && a.NormalizedText == b.NormalizedText {
		labels = append(labels, domain.TransformCommentEdit)
	}

	// Removing all whitespace equalizes otherwise-different raw text. The
	// "differs" side must be the unmodified source: blank lines and line
	// re-breaks vanish from RawCollapsed, so comparing that would miss them.
	rawA := strings.Join(a.RawLines, "\n")
	rawB := strings.Join(b.RawLines, "\n")
	if rawA != rawB && stripAllWhitespace(rawA) == stripAllWhitespace(rawB) {
		labels = append(labels, domain.TransformWhitespaceEdit)
	}

	if a.ParseOK && b.ParseOK {
		if reordered(a.Root, b.Root) {
			labels = append(labels, domain.TransformStatementReorder)
		}

		switch {
		case a.FunctionCount < b.FunctionCount:
			labels = append(labels, domain.TransformFunctionExtraction)
		case a.FunctionCount > b.FunctionCount:
			labels = append(labels, domain.TransformFunctionInlining)
		}
	}

	return labels
}

// renameConsistent reports whether two non-empty name sets are disjoint but
// of equal cardinality.
func renameConsistent(a, b map[string]struct{}) bool {
	if len(a) == 0 || len(a) != len(b) {
		return false
	}
	for name := range a {
		if _, shared := b[name]; shared {
			return false
		}
	}
	return true
}

func tokensEqual(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

// reordered reports whether the top-level statements form the same multiset
// in a different order. Statements are compared by subtree signature so a
// permutation of same-kind statements is still visible.
func reordered(rootA, rootB *parser.Node) bool {
	kindsA := topLevelSignatures(rootA)
	kindsB := topLevelSignatures(rootB)
	if len(kindsA) != len(kindsB) || len(kindsA) == 0 {
		return false
	}

	sameOrder := true
	for i := range kindsA {
		if kindsA[i] != kindsB[i] {
			sameOrder = false
			break
		}
	}
	if sameOrder {
		return false
	}

	sortedA := append([]string(nil), kindsA...)
	sortedB := append([]string(nil), kindsB...)
	sort.Strings(sortedA)
	sort.Strings(sortedB)
	for i := range sortedA {
		if sortedA[i] != sortedB[i] {
			return false
		}
	}
	return true
}

func topLevelSignatures(root *parser.Node) []string {
	signatures := make([]string, 0, len(root.Children))
	for _, child := range root.Children {
		signatures = append(signatures, child.Signature())
	}
	return signatures
}
