package app

import (
	"context"
	"fmt"

	"github.com/courseguard/crosscheck/domain"
)

// CheckUseCase orchestrates single-submission checking.
type CheckUseCase struct {
	service   domain.CheckService
	formatter domain.CheckOutputFormatter
}

// NewCheckUseCase creates a new check use case with the given dependencies
func NewCheckUseCase(service domain.CheckService, formatter domain.CheckOutputFormatter) *CheckUseCase {
	return &CheckUseCase{
		service:   service,
		formatter: formatter,
	}
}

// Execute runs the check and writes the formatted result.
func (uc *CheckUseCase) Execute(ctx context.Context, req domain.CheckRequest) (*domain.CheckResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, fmt.Errorf("validation failed: %w", err)
	}

	response, err := uc.service.Check(ctx, &req)
	if err != nil {
		return nil, fmt.Errorf("check failed: %w", err)
	}

	if req.OutputWriter != nil {
		if err := uc.formatter.Write(response, req.OutputFormat, req.OutputWriter); err != nil {
			return nil, fmt.Errorf("failed to format output: %w", err)
		}
	}

	return response, nil
}

// CheckUseCaseBuilder provides a fluent interface for constructing CheckUseCase
type CheckUseCaseBuilder struct {
	service   domain.CheckService
	formatter domain.CheckOutputFormatter
}

// NewCheckUseCaseBuilder creates a new builder
func NewCheckUseCaseBuilder() *CheckUseCaseBuilder {
	return &CheckUseCaseBuilder{}
}

// WithService sets the check service
func (b *CheckUseCaseBuilder) WithService(service domain.CheckService) *CheckUseCaseBuilder {
	b.service = service
	return b
}

// WithFormatter sets the output formatter
func (b *CheckUseCaseBuilder) WithFormatter(formatter domain.CheckOutputFormatter) *CheckUseCaseBuilder {
	b.formatter = formatter
	return b
}

// Build creates the use case, validating required dependencies.
func (b *CheckUseCaseBuilder) Build() (*CheckUseCase, error) {
	if b.service == nil {
		return nil, fmt.Errorf("check service is required")
	}
	if b.formatter == nil {
		return nil, fmt.Errorf("output formatter is required")
	}
	return NewCheckUseCase(b.service, b.formatter), nil
}
