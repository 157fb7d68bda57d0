package report

import (
	"os"

	"github.com/go-pdf/fpdf"
)

// renderPDF writes the report as a PDF. It prefers the configured UTF-8
// font; when that font is missing or fails to load, content is sanitized to
// ASCII punctuation and rendered with the core Helvetica font so the file is
// always complete and valid.
func (r *Renderer) renderPDF(content, path string) error {
	if r.fontPath != "" {
		if _, err := os.Stat(r.fontPath); err == nil {
			if err := writePDF(content, path, r.fontName, r.fontPath); err == nil {
				return nil
			}
			r.logger.Warn("Unicode font failed to load, falling back to core font",
				"font_path", r.fontPath)
		} else {
			r.logger.Warn("Unicode font not found, falling back to core font",
				"font_path", r.fontPath)
		}
	}

	return writePDF(SanitizeForCoreFont(content), path, "", "")
}

// writePDF renders content into a single-column A4 document. An empty
// fontPath selects the built-in Helvetica font.
func writePDF(content, path, fontName, fontPath string) error {
	doc := fpdf.New("P", "mm", "A4", "")
	doc.SetTitle(reportHeading, true)
	doc.AddPage()

	if fontPath != "" {
		doc.AddUTF8Font(fontName, "", fontPath)
		doc.SetFont(fontName, "", 12)
	} else {
		doc.SetFont("Helvetica", "", 12)
	}

	doc.MultiCell(0, 10, content, "", "L", false)

	if doc.Err() {
		return doc.Error()
	}
	return doc.OutputFileAndClose(path)
}
