package analyzer

import "math"

// StructuralSimilarity is the LCS ratio between structural signatures: 1.0
// for identical tree shapes, 0 when either side failed to parse.
func StructuralSimilarity(a, b *Fingerprint) float64 {
	if !a.ParseOK || !b.ParseOK {
		return 0.0
	}
	if a.Signature != "" && a.Signature == b.Signature {
		return 1.0
	}
	return SequenceRatio(a.KindSequence, b.KindSequence)
}

// TokenSequenceSimilarity is the LCS ratio over the canonical token lists.
func TokenSequenceSimilarity(a, b *Fingerprint) float64 {
	return SequenceRatio(a.Tokens, b.Tokens)
}

// LexicalSimilarity is the cosine similarity of per-pair token-frequency
// vectors. No corpus-wide IDF is applied; 0 if either vector is empty.
func LexicalSimilarity(a, b *Fingerprint) float64 {
	if len(a.Tokens) == 0 || len(b.Tokens) == 0 {
		return 0.0
	}

	freqA := tokenFrequencies(a.Tokens)
	freqB := tokenFrequencies(b.Tokens)

	var dot, normA, normB float64
	for token, countA := range freqA {
		normA += countA * countA
		if countB, ok := freqB[token]; ok {
			dot += countA * countB
		}
	}
	for _, countB := range freqB {
		normB += countB * countB
	}

	if normA == 0 || normB == 0 {
		return 0.0
	}
	return dot / (math.Sqrt(normA) * math.Sqrt(normB))
}

func tokenFrequencies(tokens []string) map[string]float64 {
	freq := make(map[string]float64, len(tokens))
	for _, tok := range tokens {
		freq[tok]++
	}
	return freq
}

// EditDistanceSimilarity is 1 - levenshtein/maxlen over normalized texts.
func EditDistanceSimilarity(a, b *Fingerprint) float64 {
	s1, s2 := a.NormalizedText, b.NormalizedText
	if s1 == "" && s2 == "" {
		return 1.0
	}
	if s1 == "" || s2 == "" {
		return 0.0
	}
	return levenshteinSimilarity(s1, s2)
}

// SemanticSimilarity averages control-flow similarity (sequence ratio over
// the ordered control-construct kinds) and data-flow similarity (mean Jaccard
// across variable names, operator types, and call-target names). 0 on parse
// failure of either side.
func SemanticSimilarity(a, b *Fingerprint) float64 {
	if !a.ParseOK || !b.ParseOK {
		return 0.0
	}

	controlFlow := SequenceRatio(a.ControlFlow, b.ControlFlow)
	dataFlow := (jaccard(a.Variables, b.Variables) +
		jaccard(a.Operators, b.Operators) +
		jaccard(a.CallTargets, b.CallTargets)) / 3.0

	return (controlFlow + dataFlow) / 2.0
}

// OrderInvariantSimilarity is the Jaccard similarity between the bags of
// non-blank normalized lines. It ignores order and duplicates, so it survives
// wholesale statement reordering.
func OrderInvariantSimilarity(a, b *Fingerprint) float64 {
	setA := lineSet(a.NormalizedLines)
	setB := lineSet(b.NormalizedLines)
	if len(setA) == 0 && len(setB) == 0 {
		return 1.0
	}
	return jaccard(setA, setB)
}

func lineSet(lines []string) map[string]struct{} {
	set := make(map[string]struct{}, len(lines))
	for _, line := range lines {
		set[line] = struct{}{}
	}
	return set
}

// jaccard computes |A ∩ B| / |A ∪ B|. Two empty sets are identical.
func jaccard(a, b map[string]struct{}) float64 {
	if len(a) == 0 && len(b) == 0 {
		return 1.0
	}
	if len(a) == 0 || len(b) == 0 {
		return 0.0
	}

	intersection := 0
	for item := range a {
		if _, ok := b[item]; ok {
			intersection++
		}
	}
	union := len(a) + len(b) - intersection
	return float64(intersection) / float64(union)
}

// levenshteinSimilarity converts edit distance to a [0,1] similarity.
func levenshteinSimilarity(s1, s2 string) float64 {
	distance := levenshteinDistance(s1, s2)
	maxLen := len(s1)
	if len(s2) > maxLen {
		maxLen = len(s2)
	}
	if maxLen == 0 {
		return 1.0
	}
	similarity := 1.0 - float64(distance)/float64(maxLen)
	if similarity < 0.0 {
		return 0.0
	}
	return similarity
}

// levenshteinDistance computes edit distance with two-row dynamic programming.
func levenshteinDistance(s1, s2 string) int {
	// Ensure s1 is the shorter string for space optimization
	if len(s1) > len(s2) {
		s1, s2 = s2, s1
	}

	m := len(s1)
	n := len(s2)
	if m == 0 {
		return n
	}

	prev := make([]int, m+1)
	curr := make([]int, m+1)
	for i := 0; i <= m; i++ {
		prev[i] = i
	}

	for j := 1; j <= n; j++ {
		curr[0] = j
		for i := 1; i <= m; i++ {
			cost := 0
			if s1[i-1] != s2[j-1] {
				cost = 1
			}
			curr[i] = min3(
				prev[i]+1,      // deletion
				curr[i-1]+1,    // insertion
				prev[i-1]+cost, // substitution
			)
		}
		prev, curr = curr, prev
	}

	return prev[m]
}

// min3 returns the minimum of three integers
func min3(a, b, c int) int {
	if a <= b && a <= c {
		return a
	}
	if b <= c {
		return b
	}
	return c
}
