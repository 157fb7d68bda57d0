package types

// AnalyzeResumeInput represents the input for the free-form resume analysis
type AnalyzeResumeInput struct {
	ResumeText     string `json:"resumeText"`
	JobDescription string `json:"jobDescription,omitempty"`
	Language       string `json:"language,omitempty"`
}

// AnalyzeResumeOutput represents the output from the resume analysis
type AnalyzeResumeOutput struct {
	Analysis string `json:"analysis"`
}

// ComplianceInput represents the input for the ATS compliance check
type ComplianceInput struct {
	ResumeText string `json:"resumeText"`
}

// ComplianceResult represents the ATS compliance record. The three lists are
// always non-nil; Degraded marks a record produced without a model response.
type ComplianceResult struct {
	Strengths   []string `json:"strengths"`
	Weaknesses  []string `json:"weaknesses"`
	Suggestions []string `json:"suggestions"`
	Degraded    bool     `json:"degraded,omitempty"`
}

// DegradedComplianceResult returns the empty-but-present record used when the
// compliance check cannot produce a real one.
func DegradedComplianceResult() ComplianceResult {
	return ComplianceResult{
		Strengths:   []string{},
		Weaknesses:  []string{},
		Suggestions: []string{},
		Degraded:    true,
	}
}

// TranslateInput represents the input for a translation request
type TranslateInput struct {
	Text           string `json:"text"`
	SourceLanguage string `json:"sourceLanguage"`
	TargetLanguage string `json:"targetLanguage"`
}

// TranslateOutput represents the output from a translation request
type TranslateOutput struct {
	Text string `json:"text"`
}
