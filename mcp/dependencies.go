package mcp

import (
	"io"

	"github.com/rs/zerolog"

	"github.com/courseguard/crosscheck/app"
	"github.com/courseguard/crosscheck/domain"
	"github.com/courseguard/crosscheck/internal/analyzer"
	"github.com/courseguard/crosscheck/internal/config"
	"github.com/courseguard/crosscheck/internal/parser"
	"github.com/courseguard/crosscheck/service"
)

// Dependencies aggregates the shared services required by MCP handlers.
// The history store is shared across tool calls so consecutive
// check_submission calls within one server session accumulate history.
type Dependencies struct {
	fileReader domain.FileReader
	store      *analyzer.HistoryStore
	config     *config.Config
	configPath string
	log        zerolog.Logger
}

// NewDependencies constructs the dependency set with sane defaults.
func NewDependencies(cfg *config.Config, configPath string, logWriter io.Writer) *Dependencies {
	if cfg == nil {
		cfg = config.DefaultConfig()
	}
	if logWriter == nil {
		logWriter = io.Discard
	}

	return &Dependencies{
		fileReader: service.NewFileReader(),
		store:      analyzer.NewHistoryStore(),
		config:     cfg,
		configPath: configPath,
		log:        zerolog.New(logWriter).With().Timestamp().Logger(),
	}
}

// Config exposes the loaded configuration snapshot.
func (d *Dependencies) Config() *config.Config {
	return d.config
}

// ConfigPath returns the configured config file path (may be empty to trigger discovery).
func (d *Dependencies) ConfigPath() string {
	return d.configPath
}

// Store exposes the shared history store.
func (d *Dependencies) Store() *analyzer.HistoryStore {
	return d.store
}

// Fingerprinter builds a fresh fingerprinter bound to the shared logger.
func (d *Dependencies) Fingerprinter() *analyzer.Fingerprinter {
	return analyzer.NewFingerprinter(parser.New(), d.log)
}

// BuildCheckUseCase assembles a fresh CheckUseCase with injected dependencies.
func (d *Dependencies) BuildCheckUseCase() (*app.CheckUseCase, error) {
	return app.NewCheckUseCaseBuilder().
		WithService(service.NewCheckService(d.store, d.log)).
		WithFormatter(service.NewCheckFormatter()).
		Build()
}

// BuildBatchUseCase assembles a fresh BatchUseCase with injected dependencies.
func (d *Dependencies) BuildBatchUseCase() (*app.BatchUseCase, error) {
	return app.NewBatchUseCaseBuilder().
		WithService(service.NewBatchService(
			service.NewParallelExecutor(),
			service.NewNoOpProgressManager(),
			d.log,
		)).
		WithFormatter(service.NewBatchFormatter()).
		Build()
}
