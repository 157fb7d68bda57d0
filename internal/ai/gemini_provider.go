package ai

import (
	"context"
	"crypto/rand"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"math/big"
	"net"
	"net/http"
	"strings"
	"time"

	"resumelens/internal/config"
	lensErrors "resumelens/internal/errors"
	"resumelens/internal/types"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"google.golang.org/api/googleapi"
	"google.golang.org/genai"
)

// GeminiProvider implements AIProvider for Google Gemini
type GeminiProvider struct {
	client         *genai.Client
	config         *config.OperationAIConfig
	circuitBreaker *AICircuitBreaker
	modelBreaker   *ModelCircuitBreaker
	logger         *lensErrors.Logger
}

// Ensure GeminiProvider implements AIProvider
var _ AIProvider = (*GeminiProvider)(nil)

// NewGeminiProvider creates a new Gemini provider instance for a specific operation
func NewGeminiProvider(cfg *config.OperationAIConfig, operationType string, logger *lensErrors.Logger) (*GeminiProvider, error) {
	ctx := context.Background()
	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey: cfg.APIKey,
	})
	if err != nil {
		return nil, lensErrors.NewAIError(lensErrors.ErrCodeAIServiceFailed,
			"Failed to create Gemini client", err)
	}

	return &GeminiProvider{
		client:         client,
		config:         cfg,
		circuitBreaker: NewAICircuitBreaker(operationType, cfg, logger),
		modelBreaker:   NewModelCircuitBreaker(operationType, cfg, logger),
		logger:         logger,
	}, nil
}

// ModelInfo represents information about the AI model
type ModelInfo struct {
	Name        string `json:"name"`
	DisplayName string `json:"displayName,omitempty"`
	Version     string `json:"version,omitempty"`
	Available   bool   `json:"available"`
	Error       string `json:"error,omitempty"`
}

// GetModelInfo checks the readiness and availability of the configured model
func (g *GeminiProvider) GetModelInfo(ctx context.Context) *ModelInfo {
	modelInfo := &ModelInfo{
		Name:      g.config.Model,
		Available: false,
	}

	checkCtx, cancel := context.WithTimeout(ctx, modelCheckTimeout)
	defer cancel()

	model, err := g.modelBreaker.ExecuteModel(func() (*genai.Model, error) {
		return g.client.Models.Get(checkCtx, g.config.Model, &genai.GetModelConfig{})
	})
	if err != nil {
		modelInfo.Error = fmt.Sprintf("Failed to get model info: %v", err)
		g.logger.Warn("Model availability check failed",
			"model", g.config.Model,
			"provider", g.config.Provider,
			"error", err.Error())
		return modelInfo
	}

	modelInfo.Available = true
	if model.DisplayName != "" {
		modelInfo.DisplayName = model.DisplayName
	}
	if model.Version != "" {
		modelInfo.Version = model.Version
	}

	g.logger.Debug("Model availability check successful",
		"model", g.config.Model,
		"provider", g.config.Provider,
		"display_name", modelInfo.DisplayName,
		"version", modelInfo.Version)

	return modelInfo
}

const modelCheckTimeout = 10 * time.Second

// executeWithRetry executes an AI operation with retry logic and exponential backoff
func (g *GeminiProvider) executeWithRetry(ctx context.Context, operation string, fn func() (*genai.GenerateContentResponse, error)) (*genai.GenerateContentResponse, error) {
	var lastErr error

	for attempt := 0; attempt <= *g.config.MaxRetries; attempt++ {
		if attempt > 0 {
			g.logger.Warn("Retrying AI operation",
				"operation", operation,
				"attempt", attempt,
				"max_retries", *g.config.MaxRetries,
				"error", lastErr.Error())

			// Exponential backoff with jitter to prevent thundering herd
			baseDelay := time.Duration(math.Pow(2, float64(attempt-1))) * time.Second
			jitterMax := big.NewInt(int64(float64(baseDelay) * 0.1))
			jitterBig, _ := rand.Int(rand.Reader, jitterMax)
			jitter := time.Duration(jitterBig.Int64())
			backoff := min(baseDelay+jitter, 30*time.Second)

			select {
			case <-time.After(backoff):
			case <-ctx.Done():
				return nil, ctx.Err()
			}
		}

		result, err := fn()
		if err == nil {
			if attempt > 0 {
				g.logger.Info("AI operation succeeded after retry",
					"operation", operation,
					"successful_attempt", attempt+1,
					"total_attempts", attempt+1)
			}
			return result, nil
		}

		lastErr = err

		// Don't retry on certain errors (auth, invalid input, etc.)
		if !g.isRetryableError(err) {
			g.logger.Debug("Error is not retryable, stopping retry attempts",
				"operation", operation,
				"error", err.Error())
			break
		}
	}

	g.logger.LogError(lastErr, "AI operation failed after all retry attempts",
		"operation", operation,
		"total_attempts", *g.config.MaxRetries+1)

	return nil, fmt.Errorf("operation '%s' failed after %d retries: %w", operation, *g.config.MaxRetries, lastErr)
}

// isRetryableError determines if an error should trigger a retry
func (g *GeminiProvider) isRetryableError(err error) bool {
	if err == nil {
		return false
	}

	var netErr net.Error
	if errors.As(err, &netErr) {
		if netErr.Timeout() {
			return true
		}
		// Other network errors (e.g. connection refused) are worth a retry
		return true
	}

	var apiErr *googleapi.Error
	if errors.As(err, &apiErr) {
		switch apiErr.Code {
		case http.StatusTooManyRequests,
			http.StatusInternalServerError,
			http.StatusBadGateway,
			http.StatusServiceUnavailable,
			http.StatusGatewayTimeout:
			return true
		}
	}

	return false
}

// generate runs a single Gemini content generation with tracing, circuit
// breaker, and retry. It is the shared core of the text and JSON operation
// helpers.
func (g *GeminiProvider) generate(
	ctx context.Context,
	operationName string,
	userPrompt string,
	systemPrompt string,
	genaiConfig *genai.GenerateContentConfig,
	spanAttributes ...attribute.KeyValue,
) (*genai.GenerateContentResponse, *TokenUsage, error) {
	tracer := otel.Tracer("resumelens.ai.gemini")
	ctx, span := tracer.Start(ctx, "gemini."+operationName)
	defer span.End()

	span.SetAttributes(
		attribute.String("ai.provider", "gemini"),
		attribute.String("ai.model", g.config.Model),
		attribute.Float64("ai.temperature", float64(*g.config.Temperature)),
	)
	span.SetAttributes(spanAttributes...)

	if *g.config.UseSystemPrompts && systemPrompt != "" {
		genaiConfig.SystemInstruction = genai.NewContentFromText(systemPrompt, genai.RoleUser)
	}

	result, err := g.circuitBreaker.Execute(func() (*genai.GenerateContentResponse, error) {
		return g.executeWithRetry(ctx, operationName, func() (*genai.GenerateContentResponse, error) {
			return g.client.Models.GenerateContent(ctx, g.config.Model, genai.Text(userPrompt), genaiConfig)
		})
	})
	if err != nil {
		span.RecordError(err)
		span.SetAttributes(attribute.Bool("success", false))
		return nil, nil, lensErrors.NewAIError(lensErrors.ErrCodeAIServiceFailed,
			"Failed to generate content for "+operationName, err)
	}

	tokenUsage := extractTokenUsage(result)
	if tokenUsage != nil {
		span.SetAttributes(
			attribute.Int64("ai.tokens.input", tokenUsage.InputTokens),
			attribute.Int64("ai.tokens.output", tokenUsage.OutputTokens),
			attribute.Int64("ai.tokens.total", tokenUsage.TotalTokens),
		)
	}

	span.SetAttributes(attribute.Bool("success", true))
	return result, tokenUsage, nil
}

// executeTextOperation runs an operation whose response is free-form text,
// returned verbatim.
func (g *GeminiProvider) executeTextOperation(
	ctx context.Context,
	operationName string,
	userPrompt string,
	systemPrompt string,
	spanAttributes ...attribute.KeyValue,
) (string, *TokenUsage, error) {
	result, tokenUsage, err := g.generate(ctx, operationName, userPrompt, systemPrompt, g.buildTextConfig(), spanAttributes...)
	if err != nil {
		return "", nil, err
	}
	return result.Text(), tokenUsage, nil
}

// executeJSONOperation runs an operation with a structured response schema
// and unmarshals the response into Out.
func executeJSONOperation[Out any](
	g *GeminiProvider,
	ctx context.Context,
	operationName string,
	userPrompt string,
	systemPrompt string,
	genaiConfig *genai.GenerateContentConfig,
	spanAttributes ...attribute.KeyValue,
) (Out, *TokenUsage, error) {
	var output Out

	result, tokenUsage, err := g.generate(ctx, operationName, userPrompt, systemPrompt, genaiConfig, spanAttributes...)
	if err != nil {
		return output, nil, err
	}

	if err := json.Unmarshal([]byte(result.Text()), &output); err != nil {
		return output, nil, lensErrors.NewAIError("AI_RESPONSE_PARSE_FAILED",
			"Failed to parse AI response for "+operationName, err)
	}

	return output, tokenUsage, nil
}

// AnalyzeResume implements AIProvider for the free-form resume analysis.
// The model's prose is returned verbatim.
func (g *GeminiProvider) AnalyzeResume(ctx context.Context, input types.AnalyzeResumeInput) (types.AnalyzeResumeOutput, *TokenUsage, error) {
	language := input.Language
	if language == "" {
		language = "en"
	}

	userPrompt := BuildAnalysisPrompt(input.ResumeText, input.JobDescription, language)
	systemPrompt := g.getSystemPrompt("analyze")

	text, tokenUsage, err := g.executeTextOperation(
		ctx,
		"analyze_resume",
		userPrompt,
		systemPrompt,
		attribute.Int("input.resume_length", len(input.ResumeText)),
		attribute.Int("input.job_length", len(input.JobDescription)),
		attribute.String("input.language", language),
		attribute.Bool("input.has_job_description", input.JobDescription != ""),
	)
	if err != nil {
		return types.AnalyzeResumeOutput{}, nil, err
	}

	return types.AnalyzeResumeOutput{Analysis: text}, tokenUsage, nil
}

// CheckCompliance implements AIProvider for the ATS compliance check. The
// resume text is truncated by the prompt builder; the response is constrained
// to the strengths/weaknesses/suggestions schema.
func (g *GeminiProvider) CheckCompliance(ctx context.Context, input types.ComplianceInput) (types.ComplianceResult, *TokenUsage, error) {
	userPrompt := BuildCompliancePrompt(input.ResumeText)
	systemPrompt := g.getSystemPrompt("compliance")

	output, tokenUsage, err := executeJSONOperation[types.ComplianceResult](
		g,
		ctx,
		"check_compliance",
		userPrompt,
		systemPrompt,
		g.buildComplianceSchema(),
		attribute.Int("input.resume_length", len(input.ResumeText)),
	)
	if err != nil {
		return types.ComplianceResult{}, nil, err
	}

	// The schema requires all three keys, but keep the lists non-nil even if
	// the model returns null for one of them.
	if output.Strengths == nil {
		output.Strengths = []string{}
	}
	if output.Weaknesses == nil {
		output.Weaknesses = []string{}
	}
	if output.Suggestions == nil {
		output.Suggestions = []string{}
	}

	return output, tokenUsage, nil
}

// Translate implements AIProvider for document translation
func (g *GeminiProvider) Translate(ctx context.Context, input types.TranslateInput) (types.TranslateOutput, *TokenUsage, error) {
	userPrompt := BuildTranslationPrompt(input.Text, input.SourceLanguage, input.TargetLanguage)
	systemPrompt := g.getSystemPrompt("translate")

	text, tokenUsage, err := g.executeTextOperation(
		ctx,
		"translate",
		userPrompt,
		systemPrompt,
		attribute.Int("input.text_length", len(input.Text)),
		attribute.String("input.source_language", input.SourceLanguage),
		attribute.String("input.target_language", input.TargetLanguage),
	)
	if err != nil {
		return types.TranslateOutput{}, nil, err
	}

	return types.TranslateOutput{Text: strings.TrimSpace(text)}, tokenUsage, nil
}

// GetCircuitBreakerStats returns circuit breaker statistics
func (g *GeminiProvider) GetCircuitBreakerStats() map[string]any {
	stats := map[string]any{
		"ai_operations":    g.circuitBreaker.GetStats(),
		"model_operations": g.modelBreaker.GetModelStats(),
	}

	aiHealthy := g.circuitBreaker.IsHealthy()
	modelHealthy := g.modelBreaker.IsModelHealthy()
	stats["overall_healthy"] = aiHealthy && modelHealthy

	return stats
}

// Close implements AIProvider interface
func (g *GeminiProvider) Close() error {
	// Gemini client doesn't have a Close method in current single-shot usage
	return nil
}

// buildTextConfig creates the generation config for free-form text operations
func (g *GeminiProvider) buildTextConfig() *genai.GenerateContentConfig {
	config := &genai.GenerateContentConfig{}
	if *g.config.Temperature > 0 {
		config.Temperature = g.config.Temperature
	}
	return config
}

// buildComplianceSchema creates the structured-output config for compliance checks
func (g *GeminiProvider) buildComplianceSchema() *genai.GenerateContentConfig {
	config := &genai.GenerateContentConfig{
		ResponseMIMEType: "application/json",
		ResponseSchema: &genai.Schema{
			Type: genai.TypeObject,
			Properties: map[string]*genai.Schema{
				"strengths": {
					Type:  genai.TypeArray,
					Items: &genai.Schema{Type: genai.TypeString},
				},
				"weaknesses": {
					Type:  genai.TypeArray,
					Items: &genai.Schema{Type: genai.TypeString},
				},
				"suggestions": {
					Type:  genai.TypeArray,
					Items: &genai.Schema{Type: genai.TypeString},
				},
			},
			Required: []string{"strengths", "weaknesses", "suggestions"},
		},
	}

	if *g.config.Temperature > 0 {
		config.Temperature = g.config.Temperature
	}

	return config
}

// getSystemPrompt returns the system prompt for the operation, preferring a
// configured override over the hardcoded default
func (g *GeminiProvider) getSystemPrompt(promptType string) string {
	overrides := g.config.CustomPrompts

	switch promptType {
	case "analyze":
		return resolvePrompt(overrides.AnalyzeResume, DefaultSystemPrompts.AnalyzeResume)
	case "compliance":
		return resolvePrompt(overrides.CheckCompliance, DefaultSystemPrompts.CheckCompliance)
	case "translate":
		return resolvePrompt(overrides.Translate, DefaultSystemPrompts.Translate)
	default:
		return ""
	}
}

// resolvePrompt prefers a configured prompt over the default
func resolvePrompt(fromConfig, fromDefault string) string {
	if fromConfig != "" {
		return fromConfig
	}
	return fromDefault
}

// TokenUsage represents token usage information from AI responses
type TokenUsage struct {
	InputTokens  int64
	OutputTokens int64
	TotalTokens  int64
}

// extractTokenUsage extracts token usage information from a Gemini API response
func extractTokenUsage(result *genai.GenerateContentResponse) *TokenUsage {
	if result == nil || result.UsageMetadata == nil {
		return nil
	}

	usage := result.UsageMetadata
	return &TokenUsage{
		InputTokens:  int64(usage.PromptTokenCount),
		OutputTokens: int64(usage.CandidatesTokenCount),
		TotalTokens:  int64(usage.TotalTokenCount),
	}
}
