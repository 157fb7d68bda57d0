package ai

import (
	"context"
	"testing"
	"time"

	"resumelens/internal/config"
	"resumelens/internal/errors"
	"resumelens/internal/types"
)

type fakeProvider struct {
	analyzeOut    types.AnalyzeResumeOutput
	analyzeErr    error
	complianceOut types.ComplianceResult
	complianceErr error
	translateOut  types.TranslateOutput
	translateErr  error
	usage         *TokenUsage
}

func (f *fakeProvider) AnalyzeResume(ctx context.Context, input types.AnalyzeResumeInput) (types.AnalyzeResumeOutput, *TokenUsage, error) {
	return f.analyzeOut, f.usage, f.analyzeErr
}

func (f *fakeProvider) CheckCompliance(ctx context.Context, input types.ComplianceInput) (types.ComplianceResult, *TokenUsage, error) {
	return f.complianceOut, f.usage, f.complianceErr
}

func (f *fakeProvider) Translate(ctx context.Context, input types.TranslateInput) (types.TranslateOutput, *TokenUsage, error) {
	return f.translateOut, f.usage, f.translateErr
}

func (f *fakeProvider) GetModelInfo(ctx context.Context) *ModelInfo {
	return &ModelInfo{Name: "fake", Available: true}
}

func (f *fakeProvider) Close() error { return nil }

func testService(provider AIProvider) *Service {
	logger, _ := errors.New("error")
	return NewServiceWithProvider(provider, &config.OperationAIConfig{}, logger)
}

func TestCheckComplianceDegradesOnProviderError(t *testing.T) {
	svc := testService(&fakeProvider{
		complianceErr: errors.NewAIError(errors.ErrCodeAIServiceFailed, "model unavailable", nil),
	})

	result, usage := svc.CheckCompliance(context.Background(), types.ComplianceInput{ResumeText: "resume"})

	if !result.Degraded {
		t.Error("provider failure must produce a degraded compliance result")
	}
	if result.Strengths == nil || result.Weaknesses == nil || result.Suggestions == nil {
		t.Error("degraded result must keep all three lists non-nil")
	}
	if len(result.Strengths)+len(result.Weaknesses)+len(result.Suggestions) != 0 {
		t.Error("degraded result lists must be empty")
	}
	if usage != nil {
		t.Error("no token usage should be reported for a failed check")
	}
}

func TestCheckCompliancePassesThroughOnSuccess(t *testing.T) {
	expected := types.ComplianceResult{
		Strengths:   []string{"clear headings"},
		Weaknesses:  []string{"dense tables"},
		Suggestions: []string{"use plain lists"},
	}
	svc := testService(&fakeProvider{
		complianceOut: expected,
		usage:         &TokenUsage{InputTokens: 10, OutputTokens: 5, TotalTokens: 15},
	})

	result, usage := svc.CheckCompliance(context.Background(), types.ComplianceInput{ResumeText: "resume"})

	if result.Degraded {
		t.Error("successful check must not be marked degraded")
	}
	if len(result.Strengths) != 1 || result.Strengths[0] != "clear headings" {
		t.Errorf("unexpected strengths: %v", result.Strengths)
	}
	if usage == nil || usage.TotalTokens != 15 {
		t.Errorf("token usage not passed through: %+v", usage)
	}
}

func TestAnalyzeResumePropagatesErrors(t *testing.T) {
	svc := testService(&fakeProvider{
		analyzeErr: errors.NewAIError(errors.ErrCodeAITimeout, "deadline exceeded", nil),
	})

	_, _, err := svc.AnalyzeResume(context.Background(), types.AnalyzeResumeInput{ResumeText: "resume"})
	if err == nil {
		t.Fatal("analysis errors must propagate to the caller")
	}
}

func TestTranslatePassesThrough(t *testing.T) {
	svc := testService(&fakeProvider{
		translateOut: types.TranslateOutput{Text: "Hello world"},
	})

	out, _, err := svc.Translate(context.Background(), types.TranslateInput{
		Text:           "Hola mundo",
		SourceLanguage: "es",
		TargetLanguage: "en",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if out.Text != "Hello world" {
		t.Errorf("unexpected translation: %q", out.Text)
	}
}

func TestNewServiceRejectsUnknownProvider(t *testing.T) {
	logger, _ := errors.New("error")

	timeout := 30 * time.Second
	retries := 1
	temperature := float32(0.2)
	useSystemPrompts := true
	cfg := config.OperationAIConfig{
		Provider:         "openai",
		Timeout:          &timeout,
		MaxRetries:       &retries,
		Temperature:      &temperature,
		UseSystemPrompts: &useSystemPrompts,
	}

	if _, err := NewService(&cfg, "analyze", logger); err == nil {
		t.Fatal("unknown provider must be rejected")
	}
}
