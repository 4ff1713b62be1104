package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/courseguard/crosscheck/domain"
)

func writeConfigFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	assert.Equal(t, domain.DefaultFlagThreshold, cfg.Analysis.FlagThreshold)
	assert.Equal(t, "python", cfg.Analysis.Language)
	assert.True(t, cfg.Analysis.GenerateReports)
	assert.Equal(t, domain.DefaultMinSegmentLines, cfg.Evidence.MinSegmentLines)
	assert.Equal(t, domain.HistoryWeights(), cfg.Weights.History)
	assert.Equal(t, domain.CohortWeights(), cfg.Weights.Cohort)
	assert.Equal(t, domain.DefaultRiskBuckets(), cfg.Buckets)
	assert.NoError(t, cfg.Validate())
}

func TestLoadConfigMissingFileYieldsDefaults(t *testing.T) {
	cfg, err := LoadConfig("")
	require.NoError(t, err)
	assert.Equal(t, DefaultConfig(), cfg)
}

func TestLoadTomlConfigOverlay(t *testing.T) {
	path := writeConfigFile(t, "crosscheck.toml", `
[analysis]
flag_threshold = 0.5
language = "go"

[evidence]
min_segment_lines = 5

[buckets]
very_high = 0.95

[weights.cohort]
structural = 1.0
`)

	cfg, err := LoadConfig(path)
	require.NoError(t, err)

	// Mentioned settings override; everything else keeps its default.
	assert.Equal(t, 0.5, cfg.Analysis.FlagThreshold)
	assert.Equal(t, "go", cfg.Analysis.Language)
	assert.Equal(t, 5, cfg.Evidence.MinSegmentLines)
	assert.Equal(t, 0.95, cfg.Buckets.VeryHigh)
	assert.Equal(t, domain.Weights{Structural: 1.0}, cfg.Weights.Cohort)

	assert.Equal(t, domain.DefaultMaxSegmentsPerPair, cfg.Evidence.MaxSegmentsPerPair)
	assert.Equal(t, domain.HistoryWeights(), cfg.Weights.History)
	assert.Equal(t, 0.3, cfg.Buckets.Low)
}

func TestWeightsFor(t *testing.T) {
	path := writeConfigFile(t, "crosscheck.toml", `
[weights.history]
edit_distance = 1.0
`)

	cfg, err := LoadConfig(path)
	require.NoError(t, err)

	// Loaded weights reach the comparator through the preset lookup.
	assert.Equal(t, domain.Weights{EditDistance: 1.0}, cfg.WeightsFor(domain.WeightPresetHistory))
	assert.Equal(t, domain.CohortWeights(), cfg.WeightsFor(domain.WeightPresetCohort))
}

func TestLoadYamlConfig(t *testing.T) {
	path := writeConfigFile(t, "crosscheck.yaml", `
analysis:
  flag_threshold: 0.6
output:
  format: json
`)

	cfg, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, 0.6, cfg.Analysis.FlagThreshold)
	assert.Equal(t, "json", cfg.Output.Format)
}

func TestLoadConfigInvalidValues(t *testing.T) {
	t.Run("threshold out of range", func(t *testing.T) {
		path := writeConfigFile(t, "crosscheck.toml", "[analysis]\nflag_threshold = 1.5\n")
		_, err := LoadConfig(path)
		assert.Error(t, err)
	})

	t.Run("malformed toml", func(t *testing.T) {
		path := writeConfigFile(t, "crosscheck.toml", "[analysis\nbroken")
		_, err := LoadConfig(path)
		assert.Error(t, err)
	})

	t.Run("unreadable explicit path", func(t *testing.T) {
		_, err := LoadConfig(filepath.Join(t.TempDir(), "missing.toml"))
		assert.Error(t, err)
	})
}

func TestDefaultConfigTomlRoundTrip(t *testing.T) {
	// The starter config written by `init` must load back to the defaults.
	path := writeConfigFile(t, ".crosscheck.toml", DefaultConfigToml)

	cfg, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, DefaultConfig(), cfg)
}

func TestFindConfigFile(t *testing.T) {
	dir := t.TempDir()

	found, err := FindConfigFile(dir)
	require.NoError(t, err)
	assert.Empty(t, found)

	require.NoError(t, os.WriteFile(filepath.Join(dir, "crosscheck.toml"), []byte(""), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".crosscheck.toml"), []byte(""), 0o644))

	// Hidden file takes precedence.
	found, err = FindConfigFile(dir)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, ".crosscheck.toml"), found)
}

func TestConfigValidate(t *testing.T) {
	t.Run("negative threshold", func(t *testing.T) {
		cfg := DefaultConfig()
		cfg.Analysis.FlagThreshold = -0.1
		assert.Error(t, cfg.Validate())
	})

	t.Run("zero segment lines", func(t *testing.T) {
		cfg := DefaultConfig()
		cfg.Evidence.MinSegmentLines = 0
		assert.Error(t, cfg.Validate())
	})

	t.Run("zero total weight", func(t *testing.T) {
		cfg := DefaultConfig()
		cfg.Weights.Cohort = domain.Weights{}
		assert.Error(t, cfg.Validate())
	})

	t.Run("unordered buckets", func(t *testing.T) {
		cfg := DefaultConfig()
		cfg.Buckets.Medium = 0.2
		assert.Error(t, cfg.Validate())
	})
}
