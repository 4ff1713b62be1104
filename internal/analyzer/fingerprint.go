package analyzer

import (
	"context"
	"strings"

	"github.com/rs/zerolog"

	"github.com/courseguard/crosscheck/domain"
	"github.com/courseguard/crosscheck/internal/parser"
)

// Fingerprint is everything the similarity algorithms need about one
// submission, computed once and reused across comparisons. Immutable after
// Build.
type Fingerprint struct {
	SubmissionID string
	AuthorID     string
	Language     domain.Language

	// Structural features; empty/nil when the source failed to parse.
	Signature    string
	KindSequence []string
	Root         *parser.Node
	ParseOK      bool

	// Token features
	Tokens []string

	// Text features
	NormalizedText  string
	NormalizedLines []string
	LineNumbers     []int // original 1-based line per normalized line
	RawLines        []string
	RawCollapsed    string // whitespace-collapsed raw text, comments kept

	// Semantic features (empty on parse failure)
	ControlFlow   []string
	Variables     map[string]struct{}
	Operators     map[string]struct{}
	CallTargets   map[string]struct{}
	Functions     map[string]struct{}
	FunctionCount int

	Empty bool
}

// Fingerprinter builds fingerprints. Malformed input degrades to token or
// line based approximations; Build never fails.
type Fingerprinter struct {
	parser *parser.Parser
	log    zerolog.Logger
}

// NewFingerprinter creates a fingerprint builder.
func NewFingerprinter(p *parser.Parser, log zerolog.Logger) *Fingerprinter {
	return &Fingerprinter{parser: p, log: log}
}

// Build computes the fingerprint for one submission.
func (f *Fingerprinter) Build(ctx context.Context, sub domain.Submission) *Fingerprint {
	lang := sub.Language
	if lang == "" {
		lang = domain.DefaultLanguage
	}

	fp := &Fingerprint{
		SubmissionID: sub.ID,
		AuthorID:     sub.AuthorID,
		Language:     lang,
		Variables:    map[string]struct{}{},
		Operators:    map[string]struct{}{},
		CallTargets:  map[string]struct{}{},
		Functions:    map[string]struct{}{},
	}

	source := sub.Source
	fp.RawLines = strings.Split(source, "\n")
	fp.RawCollapsed = collapseWhitespace(source)

	if strings.TrimSpace(source) == "" {
		fp.Empty = true
		fp.NormalizedLines = []string{}
		return fp
	}

	if !parser.Supported(lang) {
		// No front-end registered; text analysis only.
		f.log.Warn().
			Str("submission", sub.ID).
			Str("language", string(lang)).
			Msg("unsupported language, falling back to text analysis")
		fp.Tokens = fallbackTokens(source)
		fp.NormalizedLines, fp.LineNumbers = fallbackNormalize(fp.RawLines)
		fp.NormalizedText = strings.Join(fp.NormalizedLines, "\n")
		return fp
	}

	tokens, err := f.parser.Lex(ctx, lang, []byte(source))
	if err != nil {
		// TokenizeFailure: recovered via naive whitespace split.
		f.log.Warn().
			Str("submission", sub.ID).
			Str("language", string(lang)).
			Err(err).
			Msg("tokenizer fallback")
		fp.Tokens = fallbackTokens(source)
		fp.NormalizedLines, fp.LineNumbers = fallbackNormalize(fp.RawLines)
	} else {
		fp.Tokens = canonicalTokens(tokens)
		fp.NormalizedLines, fp.LineNumbers = normalizeLines(source, tokens)
	}
	fp.NormalizedText = strings.Join(fp.NormalizedLines, "\n")

	result, err := f.parser.Parse(ctx, lang, []byte(source))
	if err != nil {
		// ParseFailure: structural and semantic components stay zero.
		f.log.Warn().
			Str("language", string(lang)).
			Err(domain.NewParseError(sub.ID, err)).
			Msg("parse failed, structural analysis disabled")
		return fp
	}

	fp.Root = result.Root
	fp.ParseOK = true
	fp.Signature = result.Root.Signature()

	for _, kind := range result.Root.KindSequence() {
		fp.KindSequence = append(fp.KindSequence, string(kind))
	}

	f.extractFeatures(fp)
	return fp
}

// extractFeatures walks the tree once collecting the feature sets used by
// semantic similarity and transformation detection.
func (f *Fingerprinter) extractFeatures(fp *Fingerprint) {
	fp.Root.Walk(func(n *parser.Node) {
		if parser.IsControlFlow(n.Kind) {
			fp.ControlFlow = append(fp.ControlFlow, string(n.Kind))
		}
		switch n.Kind {
		case parser.KindName:
			if n.Name != "" {
				fp.Variables[n.Name] = struct{}{}
			}
		case parser.KindCall:
			if n.Name != "" {
				fp.CallTargets[n.Name] = struct{}{}
			}
		case parser.KindFunction:
			fp.FunctionCount++
			if n.Name != "" {
				fp.Functions[n.Name] = struct{}{}
			}
		}
		if n.Op != "" {
			fp.Operators[n.Op] = struct{}{}
		}
	})

	// Function and call-target names are not variables.
	for name := range fp.Functions {
		delete(fp.Variables, name)
	}
	for name := range fp.CallTargets {
		delete(fp.Variables, name)
	}
}
