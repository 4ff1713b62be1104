package config

import (
	"fmt"
	"os"

	"github.com/pelletier/go-toml/v2"

	"github.com/courseguard/crosscheck/domain"
)

// tomlConfig represents the structure of .crosscheck.toml. Pointer fields
// detect unset values so file settings only override what they mention.
type tomlConfig struct {
	Analysis tomlAnalysis      `toml:"analysis"`
	Evidence tomlEvidence      `toml:"evidence"`
	Weights  tomlWeightPresets `toml:"weights"`
	Buckets  tomlBuckets       `toml:"buckets"`
	Output   tomlOutput        `toml:"output"`
}

type tomlAnalysis struct {
	FlagThreshold   *float64 `toml:"flag_threshold"`
	Language        string   `toml:"language"`
	MaxWorkers      *int     `toml:"max_workers"`
	GenerateReports *bool    `toml:"generate_reports"`
}

type tomlEvidence struct {
	MinSegmentLines    *int `toml:"min_segment_lines"`
	MaxSegmentsPerPair *int `toml:"max_segments_per_pair"`
	SnippetMaxLen      *int `toml:"snippet_max_len"`
}

type tomlWeightPresets struct {
	History *tomlWeights `toml:"history"`
	Cohort  *tomlWeights `toml:"cohort"`
}

type tomlWeights struct {
	Structural     float64 `toml:"structural"`
	TokenSequence  float64 `toml:"token_sequence"`
	Lexical        float64 `toml:"lexical"`
	EditDistance   float64 `toml:"edit_distance"`
	Semantic       float64 `toml:"semantic"`
	OrderInvariant float64 `toml:"order_invariant"`
}

type tomlBuckets struct {
	Low      *float64 `toml:"low"`
	Medium   *float64 `toml:"medium"`
	High     *float64 `toml:"high"`
	VeryHigh *float64 `toml:"very_high"`
}

type tomlOutput struct {
	Format string `toml:"format"`
	SortBy string `toml:"sort_by"`
}

// loadTomlConfig overlays a TOML file onto the given defaults.
func loadTomlConfig(path string, config *Config) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, domain.NewConfigError(fmt.Sprintf("failed to read config file: %s", path), err)
	}

	var fileConfig tomlConfig
	if err := toml.Unmarshal(data, &fileConfig); err != nil {
		return nil, domain.NewConfigError(fmt.Sprintf("failed to parse config file: %s", path), err)
	}

	applyTomlConfig(&fileConfig, config)

	if err := config.Validate(); err != nil {
		return nil, err
	}
	return config, nil
}

func applyTomlConfig(file *tomlConfig, config *Config) {
	if file.Analysis.FlagThreshold != nil {
		config.Analysis.FlagThreshold = *file.Analysis.FlagThreshold
	}
	if file.Analysis.Language != "" {
		config.Analysis.Language = file.Analysis.Language
	}
	if file.Analysis.MaxWorkers != nil {
		config.Analysis.MaxWorkers = *file.Analysis.MaxWorkers
	}
	if file.Analysis.GenerateReports != nil {
		config.Analysis.GenerateReports = *file.Analysis.GenerateReports
	}

	if file.Evidence.MinSegmentLines != nil {
		config.Evidence.MinSegmentLines = *file.Evidence.MinSegmentLines
	}
	if file.Evidence.MaxSegmentsPerPair != nil {
		config.Evidence.MaxSegmentsPerPair = *file.Evidence.MaxSegmentsPerPair
	}
	if file.Evidence.SnippetMaxLen != nil {
		config.Evidence.SnippetMaxLen = *file.Evidence.SnippetMaxLen
	}

	if file.Weights.History != nil {
		config.Weights.History = file.Weights.History.toDomain()
	}
	if file.Weights.Cohort != nil {
		config.Weights.Cohort = file.Weights.Cohort.toDomain()
	}

	if file.Buckets.Low != nil {
		config.Buckets.Low = *file.Buckets.Low
	}
	if file.Buckets.Medium != nil {
		config.Buckets.Medium = *file.Buckets.Medium
	}
	if file.Buckets.High != nil {
		config.Buckets.High = *file.Buckets.High
	}
	if file.Buckets.VeryHigh != nil {
		config.Buckets.VeryHigh = *file.Buckets.VeryHigh
	}

	if file.Output.Format != "" {
		config.Output.Format = file.Output.Format
	}
	if file.Output.SortBy != "" {
		config.Output.SortBy = file.Output.SortBy
	}
}

func (w *tomlWeights) toDomain() domain.Weights {
	return domain.Weights{
		Structural:     w.Structural,
		TokenSequence:  w.TokenSequence,
		Lexical:        w.Lexical,
		EditDistance:   w.EditDistance,
		Semantic:       w.Semantic,
		OrderInvariant: w.OrderInvariant,
	}
}

// DefaultConfigToml is the commented starter config written by `crosscheck init`.
const DefaultConfigToml = `# crosscheck configuration

[analysis]
# Combined-score threshold at which a pair is flagged for review.
flag_threshold = 0.7
# Default language for untagged submissions: python, javascript, java, go.
language = "python"
# Worker pool size for batch runs; 0 means one worker per logical CPU task.
max_workers = 0
# Build a per-submission originality report for batch runs.
generate_reports = true

[evidence]
# Minimum contiguous matched lines retained as evidence.
min_segment_lines = 3
# Cap on evidence blocks per flagged pair.
max_segments_per_pair = 5
# Evidence snippet truncation length in characters.
snippet_max_len = 240

# Similarity level boundaries.
[buckets]
low = 0.3
medium = 0.5
high = 0.7
very_high = 0.9

# Combiner weights for one-vs-history checking.
[weights.history]
structural = 0.25
token_sequence = 0.20
lexical = 0.10
edit_distance = 0.10
semantic = 0.25
order_invariant = 0.10

# Combiner weights for cohort batch analysis.
[weights.cohort]
structural = 0.30
token_sequence = 0.20
lexical = 0.10
edit_distance = 0.05
semantic = 0.25
order_invariant = 0.10

[output]
# text, json, yaml, or csv.
format = "text"
sort_by = "similarity"
`
