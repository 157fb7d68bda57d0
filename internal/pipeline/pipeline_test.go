package pipeline

import (
	"context"
	"strings"
	"testing"

	"resumelens/internal/ai"
	"resumelens/internal/errors"
	"resumelens/internal/extract"
	"resumelens/internal/language"
	"resumelens/internal/report"
	"resumelens/internal/types"
)

type fakeExtractor struct {
	result extract.Result
}

func (f *fakeExtractor) Extract(ctx context.Context, data []byte) extract.Result {
	return f.result
}

type fakeNormalizer struct {
	result   language.Result
	received string
}

func (f *fakeNormalizer) Normalize(ctx context.Context, text, target string) language.Result {
	f.received = text
	if f.result.Text == "" {
		return language.Result{Text: text, Detected: target}
	}
	return f.result
}

type fakeAnalyzer struct {
	output   types.AnalyzeResumeOutput
	err      error
	received types.AnalyzeResumeInput
}

func (f *fakeAnalyzer) AnalyzeResume(ctx context.Context, input types.AnalyzeResumeInput) (types.AnalyzeResumeOutput, *ai.TokenUsage, error) {
	f.received = input
	return f.output, nil, f.err
}

type fakeCompliance struct {
	result   types.ComplianceResult
	received types.ComplianceInput
}

func (f *fakeCompliance) CheckCompliance(ctx context.Context, input types.ComplianceInput) (types.ComplianceResult, *ai.TokenUsage) {
	f.received = input
	return f.result, nil
}

type fakeRenderer struct {
	artifacts report.Artifacts
	content   string
	runID     string
	called    bool
}

func (f *fakeRenderer) Render(ctx context.Context, runID, content string) report.Artifacts {
	f.called = true
	f.runID = runID
	f.content = content
	return f.artifacts
}

func testLogger() *errors.Logger {
	logger, _ := errors.New("error")
	return logger
}

func testPipeline(extractor *fakeExtractor, normalizer *fakeNormalizer, analyzer *fakeAnalyzer, compliance *fakeCompliance, renderer *fakeRenderer) *Pipeline {
	return New(Options{
		Extractor:      extractor,
		Normalizer:     normalizer,
		Analyzer:       analyzer,
		Compliance:     compliance,
		Renderer:       renderer,
		TargetLanguage: "en",
		Depths:         []string{"Basic", "Detailed", "Comprehensive"},
		Logger:         testLogger(),
	})
}

func TestRunHappyPath(t *testing.T) {
	extractor := &fakeExtractor{result: extract.Result{Text: "resume body", Source: extract.SourceTextLayer}}
	normalizer := &fakeNormalizer{}
	analyzer := &fakeAnalyzer{output: types.AnalyzeResumeOutput{Analysis: "full analysis"}}
	compliance := &fakeCompliance{result: types.ComplianceResult{
		Strengths:   []string{"clear headings"},
		Weaknesses:  []string{},
		Suggestions: []string{"quantify results"},
	}}
	renderer := &fakeRenderer{artifacts: report.Artifacts{PDFPath: "p.pdf", DOCXPath: "d.docx"}}

	p := testPipeline(extractor, normalizer, analyzer, compliance, renderer)

	result, err := p.Run(context.Background(), Input{
		ResumePDF:       []byte("%PDF"),
		JobDescription:  "backend engineer",
		Language:        "en",
		Depth:           "Detailed",
		GenerateReports: true,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if result.RunID == "" {
		t.Error("run ID must be assigned")
	}
	if result.Analysis != "full analysis" {
		t.Errorf("unexpected analysis: %q", result.Analysis)
	}
	if result.Depth != "Detailed" {
		t.Errorf("depth not echoed: %q", result.Depth)
	}
	if result.Extraction.Source != extract.SourceTextLayer {
		t.Errorf("unexpected extraction source: %s", result.Extraction.Source)
	}
	if result.Artifacts.PDFPath != "p.pdf" || result.Artifacts.DOCXPath != "d.docx" {
		t.Errorf("artifacts not carried through: %+v", result.Artifacts)
	}

	if analyzer.received.JobDescription != "backend engineer" {
		t.Error("job description not passed to analysis")
	}
	if !renderer.called {
		t.Fatal("renderer should run when reports are requested")
	}
	if renderer.runID != result.RunID {
		t.Error("renderer must receive the run ID")
	}
	if !strings.Contains(renderer.content, "RESUME ANALYSIS REPORT") {
		t.Errorf("renderer received unexpected content:\n%s", renderer.content)
	}
	if !strings.Contains(renderer.content, "full analysis") {
		t.Error("report content must include the analysis body")
	}
}

func TestRunComplianceAuditsRawExtractedText(t *testing.T) {
	extractor := &fakeExtractor{result: extract.Result{Text: "texto original", Source: extract.SourceTextLayer}}
	normalizer := &fakeNormalizer{result: language.Result{
		Text:       "translated text",
		Detected:   "es",
		Translated: true,
	}}
	analyzer := &fakeAnalyzer{output: types.AnalyzeResumeOutput{Analysis: "ok"}}
	compliance := &fakeCompliance{result: types.DegradedComplianceResult()}

	p := testPipeline(extractor, normalizer, analyzer, compliance, &fakeRenderer{})

	result, err := p.Run(context.Background(), Input{ResumePDF: []byte("%PDF")})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if analyzer.received.ResumeText != "translated text" {
		t.Errorf("analysis must see the normalized text, got %q", analyzer.received.ResumeText)
	}
	if compliance.received.ResumeText != "texto original" {
		t.Errorf("compliance must see the raw extracted text, got %q", compliance.received.ResumeText)
	}
	if !result.Compliance.Degraded {
		t.Error("degraded compliance result must be carried through")
	}
}

func TestRunAnalysisFailureIsFatal(t *testing.T) {
	analyzer := &fakeAnalyzer{
		err: errors.NewAIError(errors.ErrCodeAIServiceFailed, "model unavailable", nil),
	}
	renderer := &fakeRenderer{}

	p := testPipeline(
		&fakeExtractor{result: extract.Result{Text: "resume", Source: extract.SourceTextLayer}},
		&fakeNormalizer{},
		analyzer,
		&fakeCompliance{},
		renderer,
	)

	_, err := p.Run(context.Background(), Input{ResumePDF: []byte("%PDF"), GenerateReports: true})
	if err == nil {
		t.Fatal("analysis failure must fail the run")
	}
	if renderer.called {
		t.Error("no reports should be rendered for a failed run")
	}
}

func TestRunSkipsRenderingWhenNotRequested(t *testing.T) {
	renderer := &fakeRenderer{}
	p := testPipeline(
		&fakeExtractor{result: extract.Result{Text: "resume", Source: extract.SourceTextLayer}},
		&fakeNormalizer{},
		&fakeAnalyzer{output: types.AnalyzeResumeOutput{Analysis: "ok"}},
		&fakeCompliance{result: types.DegradedComplianceResult()},
		renderer,
	)

	if _, err := p.Run(context.Background(), Input{ResumePDF: []byte("%PDF")}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if renderer.called {
		t.Error("renderer must not run when reports are not requested")
	}
}

func TestRunDepthHandling(t *testing.T) {
	newPipeline := func(a *fakeAnalyzer) *Pipeline {
		return testPipeline(
			&fakeExtractor{result: extract.Result{Text: "resume", Source: extract.SourceTextLayer}},
			&fakeNormalizer{},
			a,
			&fakeCompliance{result: types.DegradedComplianceResult()},
			&fakeRenderer{},
		)
	}

	t.Run("empty depth defaults to first option", func(t *testing.T) {
		p := newPipeline(&fakeAnalyzer{output: types.AnalyzeResumeOutput{Analysis: "ok"}})
		result, err := p.Run(context.Background(), Input{ResumePDF: []byte("%PDF")})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if result.Depth != "Basic" {
			t.Errorf("expected default depth Basic, got %q", result.Depth)
		}
	})

	t.Run("unknown depth is rejected", func(t *testing.T) {
		p := newPipeline(&fakeAnalyzer{output: types.AnalyzeResumeOutput{Analysis: "ok"}})
		if _, err := p.Run(context.Background(), Input{ResumePDF: []byte("%PDF"), Depth: "Exhaustive"}); err == nil {
			t.Fatal("unknown depth must be rejected")
		}
	})
}
