package extract

import (
	"strings"

	"github.com/ledongthuc/pdf"
)

// pdfTextReader is the structured text-layer tier
type pdfTextReader struct{}

var _ TextLayerReader = (*pdfTextReader)(nil)

// ReadText walks the pages in order and concatenates their text layers.
// Pages without a text layer (scanned pages) are skipped.
func (r *pdfTextReader) ReadText(path string) (string, error) {
	f, reader, err := pdf.Open(path)
	if err != nil {
		return "", err
	}
	defer f.Close()

	var b strings.Builder
	for pageNum := 1; pageNum <= reader.NumPage(); pageNum++ {
		page := reader.Page(pageNum)
		if page.V.IsNull() {
			continue
		}

		text, err := page.GetPlainText(nil)
		if err != nil {
			// A single unparseable page should not sink the others
			continue
		}

		b.WriteString(text)
		b.WriteString("\n")
	}

	return b.String(), nil
}
