package report

import (
	"os"
	"strings"

	"github.com/fumiama/go-docx"
)

// renderDOCX writes the report as a Word document: a fixed heading followed
// by one paragraph per non-blank line of the report content.
func (r *Renderer) renderDOCX(content, path string) error {
	doc := docx.New().WithDefaultTheme()

	heading := doc.AddParagraph()
	heading.AddText(reportHeading).Size("36").Bold()

	for _, line := range strings.Split(content, "\n") {
		if strings.TrimSpace(line) == "" {
			continue
		}
		doc.AddParagraph().AddText(line)
	}

	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	if _, err := doc.WriteTo(f); err != nil {
		return err
	}
	return f.Sync()
}
