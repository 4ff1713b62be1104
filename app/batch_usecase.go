package app

import (
	"context"
	"fmt"

	"github.com/courseguard/crosscheck/domain"
)

// BatchUseCase orchestrates cohort analysis.
type BatchUseCase struct {
	service   domain.BatchService
	formatter domain.BatchOutputFormatter
}

// NewBatchUseCase creates a new batch use case with the given dependencies
func NewBatchUseCase(service domain.BatchService, formatter domain.BatchOutputFormatter) *BatchUseCase {
	return &BatchUseCase{
		service:   service,
		formatter: formatter,
	}
}

// Execute runs the cohort analysis and writes the formatted result.
func (uc *BatchUseCase) Execute(ctx context.Context, req domain.BatchRequest) (*domain.BatchResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, fmt.Errorf("validation failed: %w", err)
	}

	response, err := uc.service.Analyze(ctx, &req)
	if err != nil {
		return nil, fmt.Errorf("batch analysis failed: %w", err)
	}

	if req.OutputWriter != nil {
		if err := uc.formatter.Write(response, req.OutputFormat, req.OutputWriter); err != nil {
			return nil, fmt.Errorf("failed to format output: %w", err)
		}
	}

	return response, nil
}

// BatchUseCaseBuilder provides a fluent interface for constructing BatchUseCase
type BatchUseCaseBuilder struct {
	service   domain.BatchService
	formatter domain.BatchOutputFormatter
}

// NewBatchUseCaseBuilder creates a new builder
func NewBatchUseCaseBuilder() *BatchUseCaseBuilder {
	return &BatchUseCaseBuilder{}
}

// WithService sets the batch service
func (b *BatchUseCaseBuilder) WithService(service domain.BatchService) *BatchUseCaseBuilder {
	b.service = service
	return b
}

// WithFormatter sets the output formatter
func (b *BatchUseCaseBuilder) WithFormatter(formatter domain.BatchOutputFormatter) *BatchUseCaseBuilder {
	b.formatter = formatter
	return b
}

// Build creates the use case, validating required dependencies.
func (b *BatchUseCaseBuilder) Build() (*BatchUseCase, error) {
	if b.service == nil {
		return nil, fmt.Errorf("batch service is required")
	}
	if b.formatter == nil {
		return nil, fmt.Errorf("output formatter is required")
	}
	return NewBatchUseCase(b.service, b.formatter), nil
}
