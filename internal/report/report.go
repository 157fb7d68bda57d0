// Package report renders the combined analysis into downloadable PDF and
// DOCX artifacts. Rendering is best-effort: a failed artifact is logged and
// omitted, never fatal for the run.
package report

import (
	"strings"

	"resumelens/internal/types"
)

// reportHeading is the document title used in the DOCX artifact
const reportHeading = "Resume Analysis Report"

// BuildReport assembles the flat text report shared by both artifact
// formats: a fixed header, the compliance lists joined inline, then the full
// analysis text.
func BuildReport(compliance types.ComplianceResult, analysis string) string {
	return strings.Join([]string{
		"RESUME ANALYSIS REPORT",
		"----------------------",
		"ATS COMPLIANCE ANALYSIS:",
		"Strengths: " + strings.Join(compliance.Strengths, ", "),
		"Suggestions: " + strings.Join(compliance.Suggestions, ", "),
		"",
		"DETAILED ANALYSIS:",
		analysis,
	}, "\n")
}

// coreFontReplacer maps common non-ASCII punctuation onto ASCII equivalents
// so content stays legible when only the built-in core fonts are available.
var coreFontReplacer = strings.NewReplacer(
	"–", "-", // en dash
	"—", "-", // em dash
	"‘", "'", // left single quote
	"’", "'", // right single quote
	"“", `"`, // left double quote
	"”", `"`, // right double quote
	"…", "...", // ellipsis
)

// SanitizeForCoreFont replaces typographic punctuation with ASCII for the
// Helvetica fallback path
func SanitizeForCoreFont(text string) string {
	return coreFontReplacer.Replace(text)
}
