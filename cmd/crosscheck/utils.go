package main

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/courseguard/crosscheck/domain"
	"github.com/courseguard/crosscheck/internal/config"
	"github.com/courseguard/crosscheck/service"
)

// newLogger builds the CLI logger; verbose enables debug output.
func newLogger(cmd *cobra.Command) zerolog.Logger {
	level := zerolog.WarnLevel
	if verbose, _ := cmd.Flags().GetBool("verbose"); verbose {
		level = zerolog.DebugLevel
	}
	return zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).
		Level(level).
		With().Timestamp().Logger()
}

// resolveFormat maps the mutually exclusive output flags onto one format.
func resolveFormat(jsonFlag, yamlFlag, csvFlag bool) domain.OutputFormat {
	switch {
	case jsonFlag:
		return domain.OutputFormatJSON
	case yamlFlag:
		return domain.OutputFormatYAML
	case csvFlag:
		return domain.OutputFormatCSV
	default:
		return domain.OutputFormatText
	}
}

// submissionID derives a stable submission ID from a file path.
func submissionID(path string) string {
	base := filepath.Base(path)
	return strings.TrimSuffix(base, filepath.Ext(base))
}

// loadSubmissions reads every source file as one submission. The file stem
// doubles as submission and author ID, which matches the one-file-per-student
// layout the CLI is meant for.
func loadSubmissions(reader domain.FileReader, files []string, lang domain.Language) ([]domain.Submission, error) {
	subs := make([]domain.Submission, 0, len(files))
	for _, path := range files {
		content, err := reader.ReadFile(path)
		if err != nil {
			return nil, err
		}
		id := submissionID(path)
		subs = append(subs, domain.Submission{
			ID:       id,
			AuthorID: id,
			Language: lang,
			Source:   string(content),
		})
	}
	return subs, nil
}

// configLanguage resolves the language flag against the config default.
func configLanguage(flagValue string, cfg *config.Config) domain.Language {
	if flagValue != "" {
		return domain.Language(flagValue)
	}
	return domain.Language(cfg.Analysis.Language)
}

// detectOrDefault picks a language for a file from its extension, falling
// back to the configured default.
func detectOrDefault(path string, fallback domain.Language) domain.Language {
	if lang, ok := service.DetectLanguage(path); ok {
		return lang
	}
	return fallback
}
