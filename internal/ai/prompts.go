package ai

import (
	"fmt"
	"strings"
)

// complianceResumeLimit bounds how much resume text is sent to the
// compliance check. Counted in runes so multi-byte text is not cut
// mid-character.
const complianceResumeLimit = 2000

// SystemPrompts contains the system-level instructions for AI interactions
type SystemPrompts struct {
	AnalyzeResume   string
	CheckCompliance string
	Translate       string
}

// DefaultSystemPrompts provides the default system instructions
var DefaultSystemPrompts = SystemPrompts{
	AnalyzeResume: `You are an expert career advisor and resume analyst. Your core principles are:

- Base every observation on the resume text you are given
- Be specific and actionable; avoid generic advice
- When a job description is provided, ground the comparison in its actual requirements

Your expertise includes:
- Skills assessment and gap analysis
- ATS (Applicant Tracking System) optimization
- Career development and certification guidance`,

	CheckCompliance: `You are an ATS (Applicant Tracking System) compliance auditor. You evaluate
resumes strictly for machine readability and parsing quality, not for career
merit. Report only what the provided text supports.`,

	Translate: `You are a professional translator. Translate the provided document faithfully,
preserving its structure, line breaks, and factual content. Return only the
translated text with no commentary.`,
}

// BuildAnalysisPrompt assembles the resume analysis prompt. The instruction
// lines are fixed and ordered; the comparison section is appended only when a
// job description is present.
func BuildAnalysisPrompt(resumeText, jobDescription, language string) string {
	focus := "General Career Advice"
	if jobDescription != "" {
		focus = "Job Fit Analysis"
	}

	lines := []string{
		fmt.Sprintf("Analyze this resume (originally in %s) and provide:", language),
		"1. Skills Summary (Technical & Soft Skills)",
		"2. Missing Skills for Target Roles",
		"3. Improvement Recommendations (Courses/Certifications)",
		"4. Strengths & Weaknesses",
		"5. " + focus,
		"",
		"Resume:",
		resumeText,
	}

	if jobDescription != "" {
		lines = append(lines,
			"",
			"Job Description:",
			jobDescription,
			"",
			"Compare and highlight:",
			"- Matching qualifications",
			"- Missing requirements",
			"- Suggested adaptations",
		)
	}

	return strings.Join(lines, "\n")
}

// BuildCompliancePrompt assembles the ATS compliance prompt. The resume text
// is truncated to complianceResumeLimit runes before inclusion.
func BuildCompliancePrompt(resumeText string) string {
	lines := []string{
		"Evaluate ATS (Applicant Tracking System) compliance:",
		"1. Keyword Optimization",
		"2. Proper Headings",
		"3. No Graphics/Tables",
		"4. Standard Fonts",
		"5. Correct File Format",
		"6. Skills Match",
		"7. Contact Info Visibility",
		"",
		"Return JSON with:",
		`{"strengths": [str],`,
		`"weaknesses": [str],`,
		`"suggestions": [str]}`,
		"",
		"Resume: " + truncateRunes(resumeText, complianceResumeLimit),
	}

	return strings.Join(lines, "\n")
}

// BuildTranslationPrompt assembles the translation prompt used by the
// language normalizer.
func BuildTranslationPrompt(text, sourceLanguage, targetLanguage string) string {
	lines := []string{
		fmt.Sprintf("Translate the following document from %s to %s.", sourceLanguage, targetLanguage),
		"Preserve line breaks and section order. Return only the translation.",
		"",
		"Document:",
		text,
	}

	return strings.Join(lines, "\n")
}

// truncateRunes returns at most limit runes of s
func truncateRunes(s string, limit int) string {
	runes := []rune(s)
	if len(runes) <= limit {
		return s
	}
	return string(runes[:limit])
}
