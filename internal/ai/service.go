package ai

import (
	"context"
	"fmt"

	"resumelens/internal/config"
	"resumelens/internal/errors"
	"resumelens/internal/types"
)

// Service handles AI operations for resume processing
type Service struct {
	Provider AIProvider // Exported for access from server package
	config   *config.OperationAIConfig
	logger   *errors.Logger
}

// NewService creates a new AI service instance with configuration for a specific operation
func NewService(cfg *config.OperationAIConfig, operationType string, logger *errors.Logger) (*Service, error) {
	var provider AIProvider
	var err error

	logger.Debug("Initializing AI service",
		"provider", cfg.Provider,
		"operation_type", operationType,
		"model", cfg.Model,
		"temperature", *cfg.Temperature,
		"timeout", *cfg.Timeout,
		"max_retries", *cfg.MaxRetries,
		"use_system_prompts", *cfg.UseSystemPrompts)

	switch cfg.Provider {
	case "gemini":
		provider, err = NewGeminiProvider(cfg, operationType, logger)
	default:
		return nil, errors.NewConfigError(errors.ErrCodeInvalidConfig,
			fmt.Sprintf("Unsupported AI provider: %s", cfg.Provider), nil)
	}

	if err != nil {
		return nil, errors.NewAIError(errors.ErrCodeAIServiceFailed,
			"Failed to create AI provider", err)
	}

	return &Service{
		Provider: provider,
		config:   cfg,
		logger:   logger,
	}, nil
}

// NewServiceWithProvider creates a service around an existing provider.
// Used by tests and by callers that share one provider across operations.
func NewServiceWithProvider(provider AIProvider, cfg *config.OperationAIConfig, logger *errors.Logger) *Service {
	return &Service{
		Provider: provider,
		config:   cfg,
		logger:   logger,
	}
}

// AnalyzeResume runs the free-form resume analysis. Failures propagate to
// the caller; analysis is the one operation the run cannot continue without.
func (s *Service) AnalyzeResume(ctx context.Context, input types.AnalyzeResumeInput) (types.AnalyzeResumeOutput, *TokenUsage, error) {
	return s.Provider.AnalyzeResume(ctx, input)
}

// CheckCompliance runs the ATS compliance check. It never returns an error:
// any provider failure yields the empty-but-present degraded record so
// downstream consumers always have the three lists to work with.
func (s *Service) CheckCompliance(ctx context.Context, input types.ComplianceInput) (types.ComplianceResult, *TokenUsage) {
	result, tokenUsage, err := s.Provider.CheckCompliance(ctx, input)
	if err != nil {
		s.logger.LogError(err, "Compliance check failed, returning degraded record")
		return types.DegradedComplianceResult(), nil
	}
	return result, tokenUsage
}

// Translate runs a document translation
func (s *Service) Translate(ctx context.Context, input types.TranslateInput) (types.TranslateOutput, *TokenUsage, error) {
	return s.Provider.Translate(ctx, input)
}

// GetModelInfo returns information about the AI model for health checks
func (s *Service) GetModelInfo(ctx context.Context) *ModelInfo {
	return s.Provider.GetModelInfo(ctx)
}
