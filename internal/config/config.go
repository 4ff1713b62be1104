package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/viper"

	"github.com/courseguard/crosscheck/domain"
)

// Config is the main configuration structure for the engine.
type Config struct {
	// Analysis holds scoring and flagging configuration
	Analysis AnalysisConfig `mapstructure:"analysis" yaml:"analysis"`

	// Evidence holds matching-segment extraction configuration
	Evidence EvidenceConfig `mapstructure:"evidence" yaml:"evidence"`

	// Weights holds the two named combiner presets
	Weights WeightPresetsConfig `mapstructure:"weights" yaml:"weights"`

	// Buckets holds the similarity level boundaries
	Buckets domain.RiskBuckets `mapstructure:"buckets" yaml:"buckets"`

	// Output holds output formatting configuration
	Output OutputConfig `mapstructure:"output" yaml:"output"`
}

// AnalysisConfig holds scoring and flagging settings.
type AnalysisConfig struct {
	// FlagThreshold is the combined score at which a pair is flagged
	FlagThreshold float64 `mapstructure:"flag_threshold" yaml:"flag_threshold"`

	// Language is the default language tag for untagged submissions
	Language string `mapstructure:"language" yaml:"language"`

	// MaxWorkers bounds the batch worker pool; 0 means unbounded
	MaxWorkers int `mapstructure:"max_workers" yaml:"max_workers"`

	// GenerateReports controls per-submission originality reports
	GenerateReports bool `mapstructure:"generate_reports" yaml:"generate_reports"`
}

// EvidenceConfig holds matching-segment extraction settings.
type EvidenceConfig struct {
	MinSegmentLines    int `mapstructure:"min_segment_lines" yaml:"min_segment_lines"`
	MaxSegmentsPerPair int `mapstructure:"max_segments_per_pair" yaml:"max_segments_per_pair"`
	SnippetMaxLen      int `mapstructure:"snippet_max_len" yaml:"snippet_max_len"`
}

// WeightPresetsConfig carries both named combiner presets.
type WeightPresetsConfig struct {
	History domain.Weights `mapstructure:"history" yaml:"history"`
	Cohort  domain.Weights `mapstructure:"cohort" yaml:"cohort"`
}

// OutputConfig holds output formatting settings.
type OutputConfig struct {
	Format string `mapstructure:"format" yaml:"format"`
	SortBy string `mapstructure:"sort_by" yaml:"sort_by"`
}

// DefaultConfig returns the engine defaults.
func DefaultConfig() *Config {
	return &Config{
		Analysis: AnalysisConfig{
			FlagThreshold:   domain.DefaultFlagThreshold,
			Language:        string(domain.DefaultLanguage),
			MaxWorkers:      0,
			GenerateReports: true,
		},
		Evidence: EvidenceConfig{
			MinSegmentLines:    domain.DefaultMinSegmentLines,
			MaxSegmentsPerPair: domain.DefaultMaxSegmentsPerPair,
			SnippetMaxLen:      domain.DefaultSnippetMaxLen,
		},
		Weights: WeightPresetsConfig{
			History: domain.HistoryWeights(),
			Cohort:  domain.CohortWeights(),
		},
		Buckets: domain.DefaultRiskBuckets(),
		Output: OutputConfig{
			Format: string(domain.OutputFormatText),
			SortBy: string(domain.SortBySimilarity),
		},
	}
}

// LoadConfig loads configuration from an explicit path, or searches the
// standard locations when path is empty. Missing files yield defaults.
func LoadConfig(path string) (*Config, error) {
	config := DefaultConfig()

	if path == "" {
		found, err := FindConfigFile(".")
		if err != nil || found == "" {
			return config, nil
		}
		path = found
	}

	if filepath.Ext(path) == ".toml" {
		return loadTomlConfig(path, config)
	}

	v := viper.New()
	v.SetConfigFile(path)
	if err := v.ReadInConfig(); err != nil {
		return nil, domain.NewConfigError(fmt.Sprintf("failed to read config file: %s", path), err)
	}
	if err := v.Unmarshal(config); err != nil {
		return nil, domain.NewConfigError(fmt.Sprintf("failed to parse config file: %s", path), err)
	}

	if err := config.Validate(); err != nil {
		return nil, err
	}
	return config, nil
}

// FindConfigFile searches a directory for a crosscheck config file.
func FindConfigFile(dir string) (string, error) {
	candidates := []string{
		".crosscheck.toml",
		"crosscheck.toml",
		".crosscheck.yaml",
		".crosscheck.yml",
	}
	for _, name := range candidates {
		candidate := filepath.Join(dir, name)
		if _, err := os.Stat(candidate); err == nil {
			return candidate, nil
		}
	}
	return "", nil
}

// WeightsFor returns the configured values for a named combiner preset.
func (c *Config) WeightsFor(preset domain.WeightPreset) domain.Weights {
	if preset == domain.WeightPresetHistory {
		return c.Weights.History
	}
	return c.Weights.Cohort
}

// Validate checks configuration invariants.
func (c *Config) Validate() error {
	if c.Analysis.FlagThreshold < 0.0 || c.Analysis.FlagThreshold > 1.0 {
		return domain.NewConfigError("analysis.flag_threshold must be between 0.0 and 1.0", nil)
	}
	if c.Evidence.MinSegmentLines < 1 {
		return domain.NewConfigError("evidence.min_segment_lines must be >= 1", nil)
	}
	if c.Evidence.MaxSegmentsPerPair < 1 {
		return domain.NewConfigError("evidence.max_segments_per_pair must be >= 1", nil)
	}
	if c.Weights.History.Sum() <= 0 {
		return domain.NewConfigError("weights.history must have a positive total", nil)
	}
	if c.Weights.Cohort.Sum() <= 0 {
		return domain.NewConfigError("weights.cohort must have a positive total", nil)
	}
	if !(c.Buckets.Low <= c.Buckets.Medium && c.Buckets.Medium <= c.Buckets.High && c.Buckets.High <= c.Buckets.VeryHigh) {
		return domain.NewConfigError("buckets must be ordered low <= medium <= high <= very_high", nil)
	}
	return nil
}
