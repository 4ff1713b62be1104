package main

import (
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/courseguard/crosscheck/app"
	"github.com/courseguard/crosscheck/domain"
	"github.com/courseguard/crosscheck/internal/config"
	"github.com/courseguard/crosscheck/service"
)

// BatchCommand handles the cohort analysis CLI command
type BatchCommand struct {
	language      string
	configFile    string
	flagThreshold float64
	reports       bool
	workers       int
	timeout       time.Duration
	recursive     bool
	sortBy        string

	// Output format flags (only one should be true)
	json bool
	yaml bool
	csv  bool
}

// NewBatchCmd creates the batch command
func NewBatchCmd() *cobra.Command {
	c := &BatchCommand{}

	cmd := &cobra.Command{
		Use:   "batch [paths...]",
		Short: "Analyze a whole cohort of submissions pairwise",
		Long: `Batch compares every pair of submissions in a cohort, builds the full
similarity matrix, flags pairs above the threshold, and optionally produces a
per-submission originality report.

Each file becomes one submission; the file stem is used as both the submission
ID and the author ID.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.run(cmd, args)
		},
	}

	cmd.Flags().StringVar(&c.language, "language", "", "Source language: python, javascript, java, go")
	cmd.Flags().StringVarP(&c.configFile, "config", "c", "", "Configuration file path")
	cmd.Flags().Float64Var(&c.flagThreshold, "threshold", -1, "Flag threshold 0.0-1.0 (default from config)")
	cmd.Flags().BoolVar(&c.reports, "reports", true, "Generate per-submission originality reports")
	cmd.Flags().IntVar(&c.workers, "workers", 0, "Maximum concurrent comparisons (0 = unbounded)")
	cmd.Flags().DurationVar(&c.timeout, "timeout", 0, "Overall analysis timeout (0 = none)")
	cmd.Flags().BoolVar(&c.recursive, "recursive", true, "Recurse into subdirectories")
	cmd.Flags().StringVar(&c.sortBy, "sort", "", "Sort flagged pairs by: similarity, name")
	cmd.Flags().BoolVar(&c.json, "json", false, "Output as JSON")
	cmd.Flags().BoolVar(&c.yaml, "yaml", false, "Output as YAML")
	cmd.Flags().BoolVar(&c.csv, "csv", false, "Output as CSV")

	return cmd
}

func (c *BatchCommand) run(cmd *cobra.Command, paths []string) error {
	log := newLogger(cmd)

	cfg, err := config.LoadConfig(c.configFile)
	if err != nil {
		return err
	}

	lang := configLanguage(c.language, cfg)

	reader := service.NewFileReader()
	files, err := reader.CollectSourceFiles(paths, lang, c.recursive, nil, nil)
	if err != nil {
		return err
	}
	if len(files) == 0 {
		return domain.NewFileNotFoundError("no source files found in the given paths", nil)
	}

	submissions, err := loadSubmissions(reader, files, lang)
	if err != nil {
		return err
	}

	req := domain.DefaultBatchRequest(submissions)
	req.FlagThreshold = cfg.Analysis.FlagThreshold
	if c.flagThreshold >= 0 {
		req.FlagThreshold = c.flagThreshold
	}
	req.Buckets = cfg.Buckets
	weights := cfg.WeightsFor(req.Weights)
	req.CustomWeights = &weights
	req.GenerateReports = cfg.Analysis.GenerateReports
	if cmd.Flags().Changed("reports") {
		req.GenerateReports = c.reports
	}
	req.MinSegmentLines = cfg.Evidence.MinSegmentLines
	req.MaxSegmentsPerPair = cfg.Evidence.MaxSegmentsPerPair
	req.SnippetMaxLen = cfg.Evidence.SnippetMaxLen
	req.MaxWorkers = c.workers
	if req.MaxWorkers == 0 {
		req.MaxWorkers = cfg.Analysis.MaxWorkers
	}
	req.Timeout = c.timeout
	req.OutputFormat = resolveFormat(c.json, c.yaml, c.csv)
	req.OutputWriter = os.Stdout
	if c.sortBy != "" {
		req.SortBy = domain.SortCriteria(c.sortBy)
	} else if cfg.Output.SortBy != "" {
		req.SortBy = domain.SortCriteria(cfg.Output.SortBy)
	}

	useCase, err := app.NewBatchUseCaseBuilder().
		WithService(service.NewBatchService(
			service.NewParallelExecutor(),
			service.NewProgressManager(),
			log,
		)).
		WithFormatter(service.NewBatchFormatter()).
		Build()
	if err != nil {
		return err
	}

	_, err = useCase.Execute(cmd.Context(), *req)
	return err
}
