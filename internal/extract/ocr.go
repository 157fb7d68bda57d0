package extract

import (
	"bytes"
	"fmt"
	"image/png"
	"strings"

	"github.com/gen2brain/go-fitz"
	"github.com/otiai10/gosseract/v2"
)

// tesseractEngine rasterizes PDF pages and recognizes them with Tesseract
type tesseractEngine struct {
	languages []string
	dpi       float64
}

var _ OCREngine = (*tesseractEngine)(nil)

// Recognize renders each page to a PNG and runs it through Tesseract.
// Per-page output is joined with a blank line in page order.
func (t *tesseractEngine) Recognize(path string) (string, error) {
	doc, err := fitz.New(path)
	if err != nil {
		return "", fmt.Errorf("failed to open PDF for rasterization: %w", err)
	}
	defer doc.Close()

	client := gosseract.NewClient()
	defer client.Close()

	if len(t.languages) > 0 {
		if err := client.SetLanguage(t.languages...); err != nil {
			return "", fmt.Errorf("failed to set OCR languages: %w", err)
		}
	}

	pages := make([]string, 0, doc.NumPage())
	for n := 0; n < doc.NumPage(); n++ {
		img, err := doc.ImageDPI(n, t.dpi)
		if err != nil {
			return "", fmt.Errorf("failed to rasterize page %d: %w", n+1, err)
		}

		var buf bytes.Buffer
		if err := png.Encode(&buf, img); err != nil {
			return "", fmt.Errorf("failed to encode page %d: %w", n+1, err)
		}

		if err := client.SetImageFromBytes(buf.Bytes()); err != nil {
			return "", fmt.Errorf("failed to load page %d into OCR engine: %w", n+1, err)
		}

		text, err := client.Text()
		if err != nil {
			return "", fmt.Errorf("OCR failed on page %d: %w", n+1, err)
		}

		pages = append(pages, strings.TrimSpace(text))
	}

	return strings.Join(pages, "\n\n"), nil
}
