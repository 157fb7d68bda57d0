// Package extract pulls plain text out of resume PDFs. A structured
// text-layer pass runs first; scanned documents fall back to OCR. Extraction
// never fails a run: when both tiers come up empty the caller gets an empty
// result with the source marked accordingly.
package extract

import (
	"context"
	"os"
	"path/filepath"
	"strings"

	"resumelens/internal/config"
	lensErrors "resumelens/internal/errors"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
)

// Source identifies which tier produced the extracted text
type Source string

const (
	SourceTextLayer Source = "text-layer"
	SourceOCR       Source = "ocr"
	SourceNone      Source = "none"
)

// Result holds extracted text and the tier that produced it
type Result struct {
	Text   string `json:"text"`
	Source Source `json:"source"`
}

// TextLayerReader reads the structured text layer of a PDF file
type TextLayerReader interface {
	ReadText(path string) (string, error)
}

// OCREngine recognizes text from a PDF file by rasterizing its pages
type OCREngine interface {
	Recognize(path string) (string, error)
}

// Extractor runs the two-tier extraction. The OCR tier is nil when disabled.
type Extractor struct {
	reader TextLayerReader
	ocr    OCREngine
	logger *lensErrors.Logger
}

// New creates an extractor with the production tiers
func New(cfg config.ExtractConfig, logger *lensErrors.Logger) *Extractor {
	var ocr OCREngine
	if cfg.OCREnabled {
		ocr = &tesseractEngine{
			languages: cfg.OCRLanguages,
			dpi:       cfg.OCRDPI,
		}
	}
	return &Extractor{
		reader: &pdfTextReader{},
		ocr:    ocr,
		logger: logger,
	}
}

// NewWithTiers creates an extractor with explicit tiers. Used by tests to
// exercise the tiering policy without native dependencies.
func NewWithTiers(reader TextLayerReader, ocr OCREngine, logger *lensErrors.Logger) *Extractor {
	return &Extractor{
		reader: reader,
		ocr:    ocr,
		logger: logger,
	}
}

// Extract runs the tiered extraction over raw PDF bytes. The bytes are
// persisted to a uniquely named scratch file that is removed before return.
func (e *Extractor) Extract(ctx context.Context, data []byte) Result {
	tracer := otel.Tracer("resumelens.extract")
	_, span := tracer.Start(ctx, "extract.pdf")
	defer span.End()

	span.SetAttributes(attribute.Int("input.size_bytes", len(data)))

	scratch := filepath.Join(os.TempDir(), "resumelens-"+uuid.NewString()+".pdf")
	if err := os.WriteFile(scratch, data, 0o600); err != nil {
		e.logger.LogError(lensErrors.NewIOError(lensErrors.ErrCodeExtractionFailed,
			"Failed to write scratch file for extraction", err), "Extraction skipped")
		span.SetAttributes(attribute.String("extract.source", string(SourceNone)))
		return Result{Source: SourceNone}
	}
	defer func() {
		if err := os.Remove(scratch); err != nil {
			e.logger.Warn("Failed to remove extraction scratch file",
				"path", scratch,
				"error", err.Error())
		}
	}()

	if text, err := e.reader.ReadText(scratch); err != nil {
		e.logger.Warn("Text layer extraction failed, trying OCR",
			"error", err.Error())
	} else if trimmed := strings.TrimSpace(text); trimmed != "" {
		span.SetAttributes(
			attribute.String("extract.source", string(SourceTextLayer)),
			attribute.Int("extract.text_length", len(trimmed)),
		)
		return Result{Text: trimmed, Source: SourceTextLayer}
	}

	if e.ocr == nil {
		e.logger.Warn("No text layer found and OCR fallback is disabled")
		span.SetAttributes(attribute.String("extract.source", string(SourceNone)))
		return Result{Source: SourceNone}
	}

	text, err := e.ocr.Recognize(scratch)
	if err != nil {
		e.logger.LogError(lensErrors.NewIOError(lensErrors.ErrCodeOCRFailed,
			"OCR fallback failed", err), "Extraction produced no text")
		span.SetAttributes(attribute.String("extract.source", string(SourceNone)))
		return Result{Source: SourceNone}
	}

	trimmed := strings.TrimSpace(text)
	if trimmed == "" {
		e.logger.Warn("OCR produced no text")
		span.SetAttributes(attribute.String("extract.source", string(SourceNone)))
		return Result{Source: SourceNone}
	}

	span.SetAttributes(
		attribute.String("extract.source", string(SourceOCR)),
		attribute.Int("extract.text_length", len(trimmed)),
	)
	return Result{Text: trimmed, Source: SourceOCR}
}
