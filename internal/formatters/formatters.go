package formatters

import (
	"encoding/json"
	"fmt"
	"strings"

	"resumelens/internal/pipeline"
	"resumelens/internal/types"
)

// Formatter interface for different output formats
type Formatter interface {
	Format(data any) (string, error)
	SupportedType() string
}

// FormatterRegistry manages all available formatters
type FormatterRegistry struct {
	formatters map[string]map[string]Formatter // format -> type -> formatter
}

// NewFormatterRegistry creates a new formatter registry with default formatters
func NewFormatterRegistry() *FormatterRegistry {
	registry := &FormatterRegistry{
		formatters: make(map[string]map[string]Formatter),
	}

	registry.RegisterFormatter("json", "any", &JSONFormatter{})
	registry.RegisterFormatter("text", "RunResult", &RunTextFormatter{})
	registry.RegisterFormatter("markdown", "RunResult", &RunMarkdownFormatter{})
	registry.RegisterFormatter("text", "ComplianceResult", &ComplianceTextFormatter{})
	registry.RegisterFormatter("markdown", "ComplianceResult", &ComplianceMarkdownFormatter{})

	return registry
}

// RegisterFormatter registers a new formatter for a specific format and data type
func (fr *FormatterRegistry) RegisterFormatter(format, dataType string, formatter Formatter) {
	if fr.formatters[format] == nil {
		fr.formatters[format] = make(map[string]Formatter)
	}
	fr.formatters[format][dataType] = formatter
}

// Format formats data using the appropriate formatter
func (fr *FormatterRegistry) Format(data any, format string) (string, error) {
	dataType := getDataType(data)

	// Try specific formatter first
	if formatters, exists := fr.formatters[format]; exists {
		if formatter, exists := formatters[dataType]; exists {
			return formatter.Format(data)
		}
		// Fall back to generic formatter
		if formatter, exists := formatters["any"]; exists {
			return formatter.Format(data)
		}
	}

	return "", fmt.Errorf("no formatter found for format '%s' and type '%s'", format, dataType)
}

// GetSupportedFormats returns all supported formats
func (fr *FormatterRegistry) GetSupportedFormats() []string {
	formats := make([]string, 0, len(fr.formatters))
	for format := range fr.formatters {
		formats = append(formats, format)
	}
	return formats
}

func getDataType(data any) string {
	switch data.(type) {
	case pipeline.Result, *pipeline.Result:
		return "RunResult"
	case types.ComplianceResult:
		return "ComplianceResult"
	default:
		return "any"
	}
}

func asRunResult(data any) (*pipeline.Result, bool) {
	switch v := data.(type) {
	case pipeline.Result:
		return &v, true
	case *pipeline.Result:
		return v, true
	default:
		return nil, false
	}
}

// JSONFormatter handles JSON formatting for any data type
type JSONFormatter struct{}

func (jf *JSONFormatter) Format(data any) (string, error) {
	jsonData, err := json.MarshalIndent(data, "", "  ")
	if err != nil {
		return "", err
	}
	return string(jsonData), nil
}

func (jf *JSONFormatter) SupportedType() string {
	return "any"
}

// RunTextFormatter handles text formatting for full analysis runs
type RunTextFormatter struct{}

func (rtf *RunTextFormatter) Format(data any) (string, error) {
	result, ok := asRunResult(data)
	if !ok {
		return "", fmt.Errorf("expected pipeline.Result, got %T", data)
	}

	var output strings.Builder

	output.WriteString("=== RESUME ANALYSIS ===\n")
	output.WriteString(fmt.Sprintf("Run ID: %s\n", result.RunID))
	output.WriteString(fmt.Sprintf("Extraction Source: %s\n", result.Extraction.Source))
	if result.Normalization.Detected != "" {
		output.WriteString(fmt.Sprintf("Detected Language: %s\n", result.Normalization.Detected))
	}
	if result.Normalization.Translated {
		output.WriteString("Translated: yes\n")
	}
	output.WriteString("\n")

	output.WriteString("=== DETAILED ANALYSIS ===\n")
	output.WriteString(result.Analysis)
	output.WriteString("\n\n")

	output.WriteString(complianceText(result.Compliance))

	if result.Artifacts.PDFPath != "" || result.Artifacts.DOCXPath != "" {
		output.WriteString("=== REPORT ARTIFACTS ===\n")
		if result.Artifacts.PDFPath != "" {
			output.WriteString(fmt.Sprintf("PDF:  %s\n", result.Artifacts.PDFPath))
		}
		if result.Artifacts.DOCXPath != "" {
			output.WriteString(fmt.Sprintf("DOCX: %s\n", result.Artifacts.DOCXPath))
		}
	}

	return output.String(), nil
}

func (rtf *RunTextFormatter) SupportedType() string {
	return "RunResult"
}

// RunMarkdownFormatter handles markdown formatting for full analysis runs
type RunMarkdownFormatter struct{}

func (rmf *RunMarkdownFormatter) Format(data any) (string, error) {
	result, ok := asRunResult(data)
	if !ok {
		return "", fmt.Errorf("expected pipeline.Result, got %T", data)
	}

	var output strings.Builder

	output.WriteString("# Resume Analysis\n\n")
	output.WriteString(fmt.Sprintf("**Run ID:** %s\n\n", result.RunID))
	output.WriteString(fmt.Sprintf("**Extraction Source:** %s\n\n", result.Extraction.Source))
	if result.Normalization.Detected != "" {
		output.WriteString(fmt.Sprintf("**Detected Language:** %s\n\n", result.Normalization.Detected))
	}

	output.WriteString("## Detailed Analysis\n\n")
	output.WriteString(result.Analysis)
	output.WriteString("\n\n")

	output.WriteString(complianceMarkdown(result.Compliance))

	if result.Artifacts.PDFPath != "" || result.Artifacts.DOCXPath != "" {
		output.WriteString("## Report Artifacts\n\n")
		if result.Artifacts.PDFPath != "" {
			output.WriteString(fmt.Sprintf("- PDF: `%s`\n", result.Artifacts.PDFPath))
		}
		if result.Artifacts.DOCXPath != "" {
			output.WriteString(fmt.Sprintf("- DOCX: `%s`\n", result.Artifacts.DOCXPath))
		}
	}

	return output.String(), nil
}

func (rmf *RunMarkdownFormatter) SupportedType() string {
	return "RunResult"
}

// ComplianceTextFormatter handles text formatting for standalone compliance checks
type ComplianceTextFormatter struct{}

func (ctf *ComplianceTextFormatter) Format(data any) (string, error) {
	result, ok := data.(types.ComplianceResult)
	if !ok {
		return "", fmt.Errorf("expected ComplianceResult, got %T", data)
	}
	return complianceText(result), nil
}

func (ctf *ComplianceTextFormatter) SupportedType() string {
	return "ComplianceResult"
}

// ComplianceMarkdownFormatter handles markdown formatting for standalone compliance checks
type ComplianceMarkdownFormatter struct{}

func (cmf *ComplianceMarkdownFormatter) Format(data any) (string, error) {
	result, ok := data.(types.ComplianceResult)
	if !ok {
		return "", fmt.Errorf("expected ComplianceResult, got %T", data)
	}
	return complianceMarkdown(result), nil
}

func (cmf *ComplianceMarkdownFormatter) SupportedType() string {
	return "ComplianceResult"
}

func complianceText(result types.ComplianceResult) string {
	var output strings.Builder

	output.WriteString("=== ATS COMPLIANCE ===\n")
	if result.Degraded {
		output.WriteString("(compliance check unavailable, showing empty results)\n")
	}
	writeList(&output, "Strengths:", result.Strengths)
	writeList(&output, "Weaknesses:", result.Weaknesses)
	writeList(&output, "Suggestions:", result.Suggestions)
	output.WriteString("\n")

	return output.String()
}

func complianceMarkdown(result types.ComplianceResult) string {
	var output strings.Builder

	output.WriteString("## ATS Compliance\n\n")
	if result.Degraded {
		output.WriteString("_Compliance check unavailable, showing empty results._\n\n")
	}

	sections := []struct {
		heading string
		items   []string
	}{
		{"### Strengths", result.Strengths},
		{"### Weaknesses", result.Weaknesses},
		{"### Suggestions", result.Suggestions},
	}
	for _, s := range sections {
		output.WriteString(s.heading + "\n")
		if len(s.items) == 0 {
			output.WriteString("- none\n")
		}
		for _, item := range s.items {
			output.WriteString(fmt.Sprintf("- %s\n", item))
		}
		output.WriteString("\n")
	}

	return output.String()
}

func writeList(output *strings.Builder, heading string, items []string) {
	output.WriteString(heading + "\n")
	if len(items) == 0 {
		output.WriteString("  (none)\n")
		return
	}
	for _, item := range items {
		output.WriteString(fmt.Sprintf("  - %s\n", item))
	}
}

// Global formatter registry
var GlobalRegistry = NewFormatterRegistry()
