package report

import (
	"context"
	"os"
	"path/filepath"

	"resumelens/internal/config"
	lensErrors "resumelens/internal/errors"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
)

// Artifact file names inside the per-run directory
const (
	PDFFileName  = "resume_analysis.pdf"
	DOCXFileName = "resume_analysis.docx"
)

// Artifacts lists the report files that were actually written. A failed
// format leaves its path empty.
type Artifacts struct {
	PDFPath  string `json:"pdfPath,omitempty"`
	DOCXPath string `json:"docxPath,omitempty"`
}

// Renderer writes report artifacts under a per-run directory
type Renderer struct {
	dir      string
	fontPath string
	fontName string
	logger   *lensErrors.Logger
}

// NewRenderer creates a renderer from report configuration
func NewRenderer(cfg config.ReportConfig, logger *lensErrors.Logger) *Renderer {
	return &Renderer{
		dir:      cfg.Dir,
		fontPath: cfg.FontPath,
		fontName: cfg.FontName,
		logger:   logger,
	}
}

// Render writes the PDF and DOCX artifacts for one run under
// <dir>/<runID>/. Each format fails independently; failures are logged and
// the artifact is omitted from the result.
func (r *Renderer) Render(ctx context.Context, runID, content string) Artifacts {
	tracer := otel.Tracer("resumelens.report")
	_, span := tracer.Start(ctx, "report.render")
	defer span.End()

	span.SetAttributes(
		attribute.String("report.run_id", runID),
		attribute.Int("report.content_length", len(content)),
	)

	var artifacts Artifacts

	runDir := filepath.Join(r.dir, runID)
	if err := os.MkdirAll(runDir, 0o755); err != nil {
		r.logger.LogError(lensErrors.NewIOError(lensErrors.ErrCodeReportFailed,
			"Failed to create report directory", err).WithContext("dir", runDir),
			"Report artifacts skipped")
		return artifacts
	}

	pdfPath := filepath.Join(runDir, PDFFileName)
	if err := r.renderPDF(content, pdfPath); err != nil {
		r.logger.LogError(lensErrors.NewIOError(lensErrors.ErrCodeReportFailed,
			"Failed to render PDF report", err).WithContext("path", pdfPath),
			"PDF artifact omitted")
		span.SetAttributes(attribute.Bool("report.pdf_ok", false))
	} else {
		artifacts.PDFPath = pdfPath
		span.SetAttributes(attribute.Bool("report.pdf_ok", true))
	}

	docxPath := filepath.Join(runDir, DOCXFileName)
	if err := r.renderDOCX(content, docxPath); err != nil {
		r.logger.LogError(lensErrors.NewIOError(lensErrors.ErrCodeReportFailed,
			"Failed to render DOCX report", err).WithContext("path", docxPath),
			"DOCX artifact omitted")
		span.SetAttributes(attribute.Bool("report.docx_ok", false))
	} else {
		artifacts.DOCXPath = docxPath
		span.SetAttributes(attribute.Bool("report.docx_ok", true))
	}

	return artifacts
}
