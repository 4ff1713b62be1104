package domain

// Default flagging and evidence-extraction settings. These carry over the
// operating defaults of the original deployment; they are starting points for
// configuration, not tuned constants.
const (
	// DefaultFlagThreshold is the combined-score threshold at which a pair
	// is flagged for evidence extraction and transformation labeling.
	DefaultFlagThreshold = 0.7

	// DefaultMinSegmentLines is the minimum contiguous matched block length
	// retained as evidence.
	DefaultMinSegmentLines = 3

	// DefaultMaxSegmentsPerPair caps retained evidence blocks per pair to
	// bound payload size.
	DefaultMaxSegmentsPerPair = 5

	// DefaultSnippetMaxLen truncates evidence snippets.
	DefaultSnippetMaxLen = 240

	// DefaultLanguage is assumed when a submission carries no language tag.
	DefaultLanguage = LanguagePython
)

// DefaultRiskBuckets returns the default similarity level boundaries:
// none(<0.3) / low(0.3-0.5) / medium(0.5-0.7) / high(0.7-0.9) / very-high(>=0.9).
func DefaultRiskBuckets() RiskBuckets {
	return RiskBuckets{
		Low:      0.3,
		Medium:   0.5,
		High:     0.7,
		VeryHigh: 0.9,
	}
}

// HistoryWeights is the combiner preset used when checking one submission
// against a course history.
//
// HistoryWeights and CohortWeights differ slightly; the two call sites in the
// original deployment were tuned independently and both presets are kept
// rather than silently unified.
func HistoryWeights() Weights {
	return Weights{
		Structural:     0.25,
		TokenSequence:  0.20,
		Lexical:        0.10,
		EditDistance:   0.10,
		Semantic:       0.25,
		OrderInvariant: 0.10,
	}
}

// CohortWeights is the combiner preset used for full cohort batch analysis.
func CohortWeights() Weights {
	return Weights{
		Structural:     0.30,
		TokenSequence:  0.20,
		Lexical:        0.10,
		EditDistance:   0.05,
		Semantic:       0.25,
		OrderInvariant: 0.10,
	}
}

// WeightPreset names a stock weight configuration.
type WeightPreset string

const (
	WeightPresetHistory WeightPreset = "history"
	WeightPresetCohort  WeightPreset = "cohort"
)

// WeightsForPreset resolves a named preset. Unknown names fall back to the
// cohort preset.
func WeightsForPreset(preset WeightPreset) Weights {
	switch preset {
	case WeightPresetHistory:
		return HistoryWeights()
	case WeightPresetCohort:
		return CohortWeights()
	default:
		return CohortWeights()
	}
}

// SupportedLanguages lists the language front-ends the engine ships with.
func SupportedLanguages() []Language {
	return []Language{
		LanguagePython,
		LanguageJavaScript,
		LanguageJava,
		LanguageGo,
	}
}

// IsSupportedLanguage reports whether a language has a front-end.
func IsSupportedLanguage(lang Language) bool {
	for _, l := range SupportedLanguages() {
		if l == lang {
			return true
		}
	}
	return false
}
