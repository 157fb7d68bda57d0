package ai

import (
	"context"

	"resumelens/internal/types"
)

// AIProvider interface for different AI implementations.
// All methods return token usage information; callers can ignore it if not needed.
type AIProvider interface {
	AnalyzeResume(ctx context.Context, input types.AnalyzeResumeInput) (types.AnalyzeResumeOutput, *TokenUsage, error)
	CheckCompliance(ctx context.Context, input types.ComplianceInput) (types.ComplianceResult, *TokenUsage, error)
	Translate(ctx context.Context, input types.TranslateInput) (types.TranslateOutput, *TokenUsage, error)
	GetModelInfo(ctx context.Context) *ModelInfo
	Close() error
}
