package analyzer

import (
	"strings"

	"github.com/courseguard/crosscheck/domain"
)

// SegmentOptions bounds evidence extraction.
type SegmentOptions struct {
	MinLines      int // minimum contiguous matched block length
	MaxSegments   int // cap on retained blocks per pair
	SnippetMaxLen int // snippet truncation length
}

// DefaultSegmentOptions returns the engine defaults.
func DefaultSegmentOptions() SegmentOptions {
	return SegmentOptions{
		MinLines:      domain.DefaultMinSegmentLines,
		MaxSegments:   domain.DefaultMaxSegmentsPerPair,
		SnippetMaxLen: domain.DefaultSnippetMaxLen,
	}
}

// FindMatchingSegments aligns the two normalized line lists and retains
// contiguous matched blocks of at least MinLines lines as evidence. Ranges
// are 1-based on both sides; snippets come from the raw source, truncated.
// At most MaxSegments blocks are kept; no further deduplication happens.
func FindMatchingSegments(a, b *Fingerprint, opts SegmentOptions) []domain.MatchEvidence {
	if opts.MinLines < 1 {
		opts.MinLines = domain.DefaultMinSegmentLines
	}
	if opts.MaxSegments < 1 {
		opts.MaxSegments = domain.DefaultMaxSegmentsPerPair
	}
	if opts.SnippetMaxLen < 1 {
		opts.SnippetMaxLen = domain.DefaultSnippetMaxLen
	}

	pairs := lcsPairs(a.NormalizedLines, b.NormalizedLines)
	if len(pairs) == 0 {
		return nil
	}

	var evidence []domain.MatchEvidence
	runStart := 0
	for i := 1; i <= len(pairs); i++ {
		contiguous := i < len(pairs) &&
			pairs[i][0] == pairs[i-1][0]+1 &&
			pairs[i][1] == pairs[i-1][1]+1
		if contiguous {
			continue
		}

		if i-runStart >= opts.MinLines {
			evidence = append(evidence, buildEvidence(a, b, pairs[runStart:i], opts))
			if len(evidence) >= opts.MaxSegments {
				break
			}
		}
		runStart = i
	}

	return evidence
}

func buildEvidence(a, b *Fingerprint, run [][2]int, opts SegmentOptions) domain.MatchEvidence {
	first, last := run[0], run[len(run)-1]

	startA := a.LineNumbers[first[0]]
	endA := a.LineNumbers[last[0]]
	startB := b.LineNumbers[first[1]]
	endB := b.LineNumbers[last[1]]

	snippetA := snippet(a.RawLines, startA, endA, opts.SnippetMaxLen)
	snippetB := snippet(b.RawLines, startB, endB, opts.SnippetMaxLen)

	return domain.MatchEvidence{
		StartLineA: startA,
		EndLineA:   endA,
		StartLineB: startB,
		EndLineB:   endB,
		SnippetA:   snippetA,
		SnippetB:   snippetB,
		Similarity: levenshteinSimilarity(snippetA, snippetB),
	}
}

// snippet joins a 1-based inclusive raw line range, truncated to maxLen.
func snippet(rawLines []string, start, end, maxLen int) string {
	if start < 1 {
		start = 1
	}
	if end > len(rawLines) {
		end = len(rawLines)
	}
	text := strings.Join(rawLines[start-1:end], "\n")
	if len(text) > maxLen {
		text = text[:maxLen]
	}
	return text
}
