package extract

import (
	"context"
	"errors"
	"testing"

	lensErrors "resumelens/internal/errors"
)

type fakeReader struct {
	text string
	err  error
}

func (f *fakeReader) ReadText(path string) (string, error) {
	return f.text, f.err
}

type fakeOCR struct {
	text   string
	err    error
	called bool
}

func (f *fakeOCR) Recognize(path string) (string, error) {
	f.called = true
	return f.text, f.err
}

func testLogger() *lensErrors.Logger {
	logger, _ := lensErrors.New("error")
	return logger
}

func TestExtractUsesTextLayerWhenPresent(t *testing.T) {
	ocr := &fakeOCR{text: "ocr text"}
	e := NewWithTiers(&fakeReader{text: "  Jane Doe\nSoftware Engineer  "}, ocr, testLogger())

	result := e.Extract(context.Background(), []byte("%PDF-1.4 fake"))

	if result.Source != SourceTextLayer {
		t.Errorf("expected source %q, got %q", SourceTextLayer, result.Source)
	}
	if result.Text != "Jane Doe\nSoftware Engineer" {
		t.Errorf("unexpected text: %q", result.Text)
	}
	if ocr.called {
		t.Error("OCR must not be invoked when a text layer is present")
	}
}

func TestExtractFallsBackToOCR(t *testing.T) {
	tests := []struct {
		name   string
		reader *fakeReader
	}{
		{name: "blank text layer", reader: &fakeReader{text: "   \n\t "}},
		{name: "reader error", reader: &fakeReader{err: errors.New("malformed xref")}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ocr := &fakeOCR{text: "Jane Doe\n\nExperience"}
			e := NewWithTiers(tt.reader, ocr, testLogger())

			result := e.Extract(context.Background(), []byte("%PDF-1.4 fake"))

			if !ocr.called {
				t.Fatal("expected OCR tier to run")
			}
			if result.Source != SourceOCR {
				t.Errorf("expected source %q, got %q", SourceOCR, result.Source)
			}
			if result.Text != "Jane Doe\n\nExperience" {
				t.Errorf("unexpected text: %q", result.Text)
			}
		})
	}
}

func TestExtractDegradesToEmpty(t *testing.T) {
	tests := []struct {
		name string
		ocr  OCREngine
	}{
		{name: "ocr error", ocr: &fakeOCR{err: errors.New("tesseract not available")}},
		{name: "ocr empty output", ocr: &fakeOCR{text: "  \n "}},
		{name: "ocr disabled", ocr: nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := NewWithTiers(&fakeReader{text: ""}, tt.ocr, testLogger())

			result := e.Extract(context.Background(), []byte("%PDF-1.4 fake"))

			if result.Source != SourceNone {
				t.Errorf("expected source %q, got %q", SourceNone, result.Source)
			}
			if result.Text != "" {
				t.Errorf("expected empty text, got %q", result.Text)
			}
		})
	}
}
