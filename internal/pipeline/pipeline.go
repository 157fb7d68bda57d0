// Package pipeline sequences a full resume analysis run:
// extract -> normalize -> analyze + compliance -> render.
package pipeline

import (
	"context"
	"fmt"
	"time"

	"resumelens/internal/ai"
	"resumelens/internal/config"
	"resumelens/internal/errors"
	"resumelens/internal/extract"
	"resumelens/internal/language"
	"resumelens/internal/observability"
	"resumelens/internal/report"
	"resumelens/internal/types"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
)

// Input carries everything one run needs. Language frames the analysis
// prompt; Depth is collected and validated but otherwise inert.
type Input struct {
	ResumePDF       []byte `json:"-"`
	JobDescription  string `json:"jobDescription,omitempty"`
	Language        string `json:"language,omitempty"`
	Depth           string `json:"depth,omitempty"`
	GenerateReports bool   `json:"generateReports"`
}

// Result is the combined outcome of one run
type Result struct {
	RunID         string                 `json:"runId"`
	Extraction    extract.Result         `json:"extraction"`
	Normalization language.Result        `json:"normalization"`
	Analysis      string                 `json:"analysis"`
	Compliance    types.ComplianceResult `json:"compliance"`
	Depth         string                 `json:"depth,omitempty"`
	Artifacts     report.Artifacts       `json:"artifacts,omitempty"`
}

// Extractor pulls text out of the uploaded PDF
type Extractor interface {
	Extract(ctx context.Context, data []byte) extract.Result
}

// Normalizer brings the extracted text into the target language
type Normalizer interface {
	Normalize(ctx context.Context, text, target string) language.Result
}

// Analyzer runs the free-form resume analysis
type Analyzer interface {
	AnalyzeResume(ctx context.Context, input types.AnalyzeResumeInput) (types.AnalyzeResumeOutput, *ai.TokenUsage, error)
}

// ComplianceChecker runs the ATS compliance check; it degrades instead of failing
type ComplianceChecker interface {
	CheckCompliance(ctx context.Context, input types.ComplianceInput) (types.ComplianceResult, *ai.TokenUsage)
}

// Renderer writes the report artifacts for a run
type Renderer interface {
	Render(ctx context.Context, runID, content string) report.Artifacts
}

// Pipeline wires the stages together
type Pipeline struct {
	extractor      Extractor
	normalizer     Normalizer
	analyzer       Analyzer
	compliance     ComplianceChecker
	renderer       Renderer
	targetLanguage string
	depths         []string
	logger         *errors.Logger
	obs            *observability.ObservabilityManager
}

// Options configures a pipeline
type Options struct {
	Extractor      Extractor
	Normalizer     Normalizer
	Analyzer       Analyzer
	Compliance     ComplianceChecker
	Renderer       Renderer
	TargetLanguage string
	Depths         []string
	Logger         *errors.Logger
	Observability  *observability.ObservabilityManager
}

// New creates a pipeline from explicit stages
func New(opts Options) *Pipeline {
	return &Pipeline{
		extractor:      opts.Extractor,
		normalizer:     opts.Normalizer,
		analyzer:       opts.Analyzer,
		compliance:     opts.Compliance,
		renderer:       opts.Renderer,
		targetLanguage: opts.TargetLanguage,
		depths:         opts.Depths,
		logger:         opts.Logger,
		obs:            opts.Observability,
	}
}

// Services holds the per-operation AI services behind a pipeline, exposed
// for health checks and stats.
type Services struct {
	Analyze    *ai.Service
	Compliance *ai.Service
	Translate  *ai.Service
}

// ServiceTranslator adapts the AI service to the normalizer's Translator
// interface, dropping the token usage the normalizer has no use for.
type ServiceTranslator struct {
	Service *ai.Service
}

func (t ServiceTranslator) Translate(ctx context.Context, input types.TranslateInput) (types.TranslateOutput, error) {
	out, _, err := t.Service.Translate(ctx, input)
	return out, err
}

// NewFromConfig builds the production pipeline with one AI service per
// operation, the two-tier extractor, and the report renderer.
func NewFromConfig(cfg *config.Config, logger *errors.Logger, obs *observability.ObservabilityManager) (*Pipeline, *Services, error) {
	analyzeCfg := cfg.GetAnalyzeConfig()
	analyzeSvc, err := ai.NewService(&analyzeCfg, "analyze", logger)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to create analyze service: %w", err)
	}

	complianceCfg := cfg.GetComplianceConfig()
	complianceSvc, err := ai.NewService(&complianceCfg, "compliance", logger)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to create compliance service: %w", err)
	}

	translateCfg := cfg.GetTranslateConfig()
	translateSvc, err := ai.NewService(&translateCfg, "translate", logger)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to create translate service: %w", err)
	}

	services := &Services{
		Analyze:    analyzeSvc,
		Compliance: complianceSvc,
		Translate:  translateSvc,
	}

	p := New(Options{
		Extractor:      extract.New(cfg.Extract, logger),
		Normalizer:     language.New(ServiceTranslator{Service: translateSvc}, logger),
		Analyzer:       analyzeSvc,
		Compliance:     complianceSvc,
		Renderer:       report.NewRenderer(cfg.Report, logger),
		TargetLanguage: cfg.App.TargetLanguage,
		Depths:         cfg.App.Depths,
		Logger:         logger,
		Observability:  obs,
	})

	return p, services, nil
}

// Run executes one full analysis. Extraction, normalization, compliance,
// and rendering degrade on failure; only the analysis operation is fatal.
func (p *Pipeline) Run(ctx context.Context, input Input) (*Result, error) {
	tracer := otel.Tracer("resumelens.pipeline")
	ctx, span := tracer.Start(ctx, "pipeline.run")
	defer span.End()

	runID := uuid.NewString()
	span.SetAttributes(attribute.String("run.id", runID))

	depth, err := p.resolveDepth(input.Depth)
	if err != nil {
		return nil, err
	}
	// Depth is collected and echoed but does not steer the analysis
	p.logger.Debug("Starting analysis run",
		"run_id", runID,
		"depth", depth,
		"language", input.Language,
		"has_job_description", input.JobDescription != "")

	result := &Result{RunID: runID, Depth: depth}

	result.Extraction = p.extractor.Extract(ctx, input.ResumePDF)
	p.recordExtraction(ctx, result.Extraction)

	result.Normalization = p.normalizer.Normalize(ctx, result.Extraction.Text, p.targetLanguage)
	p.recordNormalization(ctx, result.Normalization)

	start := time.Now()
	analysis, usage, err := p.analyzer.AnalyzeResume(ctx, types.AnalyzeResumeInput{
		ResumeText:     result.Normalization.Text,
		JobDescription: input.JobDescription,
		Language:       input.Language,
	})
	if p.obs != nil {
		in, out := tokenCounts(usage)
		p.obs.TrackAIOperation(ctx, "analyze", time.Since(start), err, in, out)
	}
	if err != nil {
		span.RecordError(err)
		return nil, errors.NewAIError(errors.ErrCodeAIServiceFailed,
			"Resume analysis failed", err).WithContext("run_id", runID)
	}
	result.Analysis = analysis.Analysis

	// The compliance check audits the raw extracted text, not the
	// normalized one, so formatting artifacts stay visible to it.
	start = time.Now()
	compliance, complianceUsage := p.compliance.CheckCompliance(ctx, types.ComplianceInput{
		ResumeText: result.Extraction.Text,
	})
	if p.obs != nil {
		in, out := tokenCounts(complianceUsage)
		p.obs.TrackAIOperation(ctx, "compliance", time.Since(start), nil, in, out)
		if compliance.Degraded {
			p.obs.RecordPipelineEvent(ctx, observability.EventComplianceDegraded)
		}
	}
	result.Compliance = compliance

	if input.GenerateReports {
		content := report.BuildReport(compliance, result.Analysis)
		result.Artifacts = p.renderer.Render(ctx, runID, content)
		p.recordArtifacts(ctx, result.Artifacts)
	}

	span.SetAttributes(
		attribute.String("extract.source", string(result.Extraction.Source)),
		attribute.Bool("compliance.degraded", compliance.Degraded),
	)

	p.logger.Info("Analysis run completed",
		"run_id", runID,
		"extraction_source", result.Extraction.Source,
		"translated", result.Normalization.Translated,
		"compliance_degraded", compliance.Degraded)

	return result, nil
}

// resolveDepth validates the inert depth setting against the configured set
func (p *Pipeline) resolveDepth(depth string) (string, error) {
	if depth == "" {
		if len(p.depths) > 0 {
			return p.depths[0], nil
		}
		return "", nil
	}
	for _, d := range p.depths {
		if d == depth {
			return depth, nil
		}
	}
	return "", errors.NewValidationError(errors.ErrCodeInvalidRequest,
		fmt.Sprintf("invalid analysis depth: %s", depth), nil)
}

func (p *Pipeline) recordExtraction(ctx context.Context, res extract.Result) {
	if p.obs == nil {
		return
	}
	p.obs.RecordPipelineEvent(ctx, observability.EventDocumentExtracted)
	switch res.Source {
	case extract.SourceOCR:
		p.obs.RecordPipelineEvent(ctx, observability.EventOCRFallback)
	case extract.SourceNone:
		p.obs.RecordPipelineEvent(ctx, observability.EventExtractionEmpty)
	}
}

func (p *Pipeline) recordNormalization(ctx context.Context, res language.Result) {
	if p.obs == nil {
		return
	}
	if res.Translated {
		p.obs.RecordPipelineEvent(ctx, observability.EventTranslation)
	}
	if res.Degraded {
		p.obs.RecordPipelineEvent(ctx, observability.EventNormalizationDegraded)
	}
}

func (p *Pipeline) recordArtifacts(ctx context.Context, artifacts report.Artifacts) {
	if p.obs == nil {
		return
	}
	if artifacts.PDFPath != "" || artifacts.DOCXPath != "" {
		p.obs.RecordPipelineEvent(ctx, observability.EventReportRendered)
	}
	if artifacts.PDFPath == "" || artifacts.DOCXPath == "" {
		p.obs.RecordPipelineEvent(ctx, observability.EventReportFailed)
	}
}

func tokenCounts(usage *ai.TokenUsage) (int64, int64) {
	if usage == nil {
		return 0, 0
	}
	return usage.InputTokens, usage.OutputTokens
}
