package analyzer

import (
	"regexp"
	"strings"

	"github.com/courseguard/crosscheck/internal/parser"
)

// Canonical token classes. Identifiers and literals collapse to fixed tokens
// so cosmetic edits (renames, literal tweaks) are neutralized while structural
// divergence survives.
const (
	tokenName   = "NAME"
	tokenNumber = "NUMBER"
	tokenString = "STRING"
)

// Precompiled regex for whitespace normalization (avoid recompilation on each call)
var whitespaceRegex = regexp.MustCompile(`\s+`)

// canonicalTokens maps the lexed stream to the canonical token sequence:
// identifiers become NAME, numeric literals NUMBER, string literals STRING,
// comments are dropped, every other lexeme is kept verbatim.
func canonicalTokens(tokens []parser.Token) []string {
	out := make([]string, 0, len(tokens))
	for _, tok := range tokens {
		switch tok.Kind {
		case parser.TokenComment:
			continue
		case parser.TokenIdentifier:
			out = append(out, tokenName)
		case parser.TokenNumber:
			out = append(out, tokenNumber)
		case parser.TokenString:
			out = append(out, tokenString)
		default:
			text := strings.TrimSpace(tok.Text)
			if text != "" {
				out = append(out, text)
			}
		}
	}
	return out
}

// normalizeLines strips comments from the source using the lexed comment
// ranges, collapses whitespace per line, and drops blank lines. It returns
// the normalized lines and, for each, its original 1-based line number.
func normalizeLines(source string, tokens []parser.Token) ([]string, []int) {
	masked := []byte(source)
	for _, tok := range tokens {
		if tok.Kind != parser.TokenComment {
			continue
		}
		end := tok.EndByte
		if end > len(masked) {
			end = len(masked)
		}
		for i := tok.StartByte; i < end; i++ {
			// Keep newlines so line numbering survives comment removal.
			if masked[i] != '\n' {
				masked[i] = ' '
			}
		}
	}

	var lines []string
	var numbers []int
	for i, line := range strings.Split(string(masked), "\n") {
		normalized := collapseWhitespace(line)
		if normalized == "" {
			continue
		}
		lines = append(lines, normalized)
		numbers = append(numbers, i+1)
	}
	return lines, numbers
}

// collapseWhitespace replaces whitespace runs with single spaces and trims.
func collapseWhitespace(s string) string {
	return strings.TrimSpace(whitespaceRegex.ReplaceAllString(s, " "))
}

// stripAllWhitespace removes every whitespace character.
func stripAllWhitespace(s string) string {
	return whitespaceRegex.ReplaceAllString(s, "")
}

// fallbackTokens is the recovery path when lexing fails: a naive whitespace
// split of the raw source.
func fallbackTokens(source string) []string {
	return strings.Fields(source)
}

// fallbackNormalize is the recovery path when lexing fails: per-line
// whitespace collapsing with no comment stripping.
func fallbackNormalize(rawLines []string) ([]string, []int) {
	var lines []string
	var numbers []int
	for i, line := range rawLines {
		normalized := collapseWhitespace(line)
		if normalized == "" {
			continue
		}
		lines = append(lines, normalized)
		numbers = append(numbers, i+1)
	}
	return lines, numbers
}
