package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/courseguard/crosscheck/app"
	"github.com/courseguard/crosscheck/domain"
	"github.com/courseguard/crosscheck/internal/analyzer"
	"github.com/courseguard/crosscheck/internal/config"
	"github.com/courseguard/crosscheck/internal/parser"
	"github.com/courseguard/crosscheck/service"
)

// CheckCommand handles the single-submission check CLI command
type CheckCommand struct {
	historyDir    string
	author        string
	course        string
	language      string
	configFile    string
	flagThreshold float64

	// Output format flags (only one should be true)
	json bool
	yaml bool
	csv  bool
}

// NewCheckCmd creates the check command
func NewCheckCmd() *cobra.Command {
	c := &CheckCommand{}

	cmd := &cobra.Command{
		Use:   "check <file>",
		Short: "Check one submission against a course history",
		Long: `Check compares one submission against every prior submission in a
history directory, then appends it. Prior submissions by the same author are
excluded from the comparison.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.run(cmd, args[0])
		},
	}

	cmd.Flags().StringVar(&c.historyDir, "history", "", "Directory of prior submissions (required)")
	cmd.Flags().StringVar(&c.author, "author", "", "Author ID of the submission (default: file stem)")
	cmd.Flags().StringVar(&c.course, "course", "default", "Course ID for the history store")
	cmd.Flags().StringVar(&c.language, "language", "", "Source language: python, javascript, java, go")
	cmd.Flags().StringVarP(&c.configFile, "config", "c", "", "Configuration file path")
	cmd.Flags().Float64Var(&c.flagThreshold, "threshold", -1, "Flag threshold 0.0-1.0 (default from config)")
	cmd.Flags().BoolVar(&c.json, "json", false, "Output as JSON")
	cmd.Flags().BoolVar(&c.yaml, "yaml", false, "Output as YAML")
	cmd.Flags().BoolVar(&c.csv, "csv", false, "Output as CSV")

	_ = cmd.MarkFlagRequired("history")

	return cmd
}

func (c *CheckCommand) run(cmd *cobra.Command, target string) error {
	log := newLogger(cmd)

	cfg, err := config.LoadConfig(c.configFile)
	if err != nil {
		return err
	}

	lang := configLanguage(c.language, cfg)
	lang = detectOrDefault(target, lang)

	reader := service.NewFileReader()
	store := analyzer.NewHistoryStore()
	fingerprinter := analyzer.NewFingerprinter(parser.New(), log)

	// Seed the store from the history directory.
	historyFiles, err := reader.CollectSourceFiles([]string{c.historyDir}, lang, true, nil, nil)
	if err != nil {
		return err
	}
	for _, path := range historyFiles {
		content, err := reader.ReadFile(path)
		if err != nil {
			return err
		}
		id := submissionID(path)
		fp := fingerprinter.Build(cmd.Context(), domain.Submission{
			ID:       id,
			AuthorID: id,
			CourseID: c.course,
			Language: lang,
			Source:   string(content),
		})
		store.Append(c.course, fp)
	}

	content, err := reader.ReadFile(target)
	if err != nil {
		return err
	}

	author := c.author
	if author == "" {
		author = submissionID(target)
	}

	req := domain.DefaultCheckRequest(domain.Submission{
		ID:       submissionID(target),
		AuthorID: author,
		CourseID: c.course,
		Language: lang,
		Source:   string(content),
	})
	req.FlagThreshold = cfg.Analysis.FlagThreshold
	if c.flagThreshold >= 0 {
		req.FlagThreshold = c.flagThreshold
	}
	req.Buckets = cfg.Buckets
	weights := cfg.WeightsFor(req.Weights)
	req.CustomWeights = &weights
	req.MinSegmentLines = cfg.Evidence.MinSegmentLines
	req.MaxSegmentsPerPair = cfg.Evidence.MaxSegmentsPerPair
	req.SnippetMaxLen = cfg.Evidence.SnippetMaxLen
	req.OutputFormat = resolveFormat(c.json, c.yaml, c.csv)
	req.OutputWriter = os.Stdout

	useCase, err := app.NewCheckUseCaseBuilder().
		WithService(service.NewCheckService(store, log)).
		WithFormatter(service.NewCheckFormatter()).
		Build()
	if err != nil {
		return err
	}

	response, err := useCase.Execute(cmd.Context(), *req)
	if err != nil {
		return err
	}

	if response.Flagged {
		// Non-zero exit so CI-style callers can gate on the verdict.
		fmt.Fprintln(os.Stderr, "similarity above threshold")
		os.Exit(1)
	}
	return nil
}
