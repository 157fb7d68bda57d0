package ai

import (
	"strings"
	"testing"
)

func TestBuildAnalysisPromptWithoutJobDescription(t *testing.T) {
	prompt := BuildAnalysisPrompt("resume body", "", "en")

	required := []string{
		"Analyze this resume (originally in en) and provide:",
		"1. Skills Summary (Technical & Soft Skills)",
		"2. Missing Skills for Target Roles",
		"3. Improvement Recommendations (Courses/Certifications)",
		"4. Strengths & Weaknesses",
		"5. General Career Advice",
		"Resume:\nresume body",
	}
	for _, want := range required {
		if !strings.Contains(prompt, want) {
			t.Errorf("analysis prompt missing %q:\n%s", want, prompt)
		}
	}

	if strings.Contains(prompt, "Job Description:") {
		t.Error("comparison section must be absent without a job description")
	}
	if strings.Contains(prompt, "Compare and highlight:") {
		t.Error("comparison instructions must be absent without a job description")
	}
	if strings.Contains(prompt, "Job Fit Analysis") {
		t.Error("item 5 must read General Career Advice without a job description")
	}
}

func TestBuildAnalysisPromptWithJobDescription(t *testing.T) {
	prompt := BuildAnalysisPrompt("resume body", "job posting", "es")

	required := []string{
		"Analyze this resume (originally in es) and provide:",
		"5. Job Fit Analysis",
		"Job Description:\njob posting",
		"Compare and highlight:",
		"- Matching qualifications",
		"- Missing requirements",
		"- Suggested adaptations",
	}
	for _, want := range required {
		if !strings.Contains(prompt, want) {
			t.Errorf("analysis prompt missing %q:\n%s", want, prompt)
		}
	}

	if strings.Contains(prompt, "General Career Advice") {
		t.Error("item 5 must read Job Fit Analysis with a job description")
	}
	if strings.Index(prompt, "Resume:") > strings.Index(prompt, "Job Description:") {
		t.Error("resume must precede the job description")
	}
}

func TestBuildCompliancePrompt(t *testing.T) {
	prompt := BuildCompliancePrompt("short resume")

	required := []string{
		"Evaluate ATS (Applicant Tracking System) compliance:",
		"1. Keyword Optimization",
		"7. Contact Info Visibility",
		`{"strengths": [str],`,
		`"weaknesses": [str],`,
		`"suggestions": [str]}`,
		"Resume: short resume",
	}
	for _, want := range required {
		if !strings.Contains(prompt, want) {
			t.Errorf("compliance prompt missing %q:\n%s", want, prompt)
		}
	}
}

func TestBuildCompliancePromptTruncatesLongResumes(t *testing.T) {
	// Multi-byte runes so a byte-based cut would land mid-character
	long := strings.Repeat("résumé ", 1000)

	prompt := BuildCompliancePrompt(long)

	marker := "Resume: "
	idx := strings.Index(prompt, marker)
	if idx < 0 {
		t.Fatalf("compliance prompt missing resume section:\n%s", prompt)
	}

	included := prompt[idx+len(marker):]
	if got := len([]rune(included)); got != complianceResumeLimit {
		t.Errorf("resume text truncated to %d runes, want %d", got, complianceResumeLimit)
	}
	if !strings.HasPrefix(included, "résumé") {
		t.Errorf("truncation corrupted leading text: %q", included[:20])
	}
}

func TestBuildCompliancePromptKeepsShortResumesIntact(t *testing.T) {
	short := strings.Repeat("a", complianceResumeLimit)

	prompt := BuildCompliancePrompt(short)

	if !strings.HasSuffix(prompt, "Resume: "+short) {
		t.Error("resume at exactly the limit must not be truncated")
	}
}

func TestBuildTranslationPrompt(t *testing.T) {
	prompt := BuildTranslationPrompt("Hola mundo", "es", "en")

	required := []string{
		"Translate the following document from es to en.",
		"Return only the translation.",
		"Document:\nHola mundo",
	}
	for _, want := range required {
		if !strings.Contains(prompt, want) {
			t.Errorf("translation prompt missing %q:\n%s", want, prompt)
		}
	}
}
