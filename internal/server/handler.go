package server

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"path/filepath"
	"slices"
	"strconv"
	"strings"

	"resumelens/internal/observability"
	"resumelens/internal/pipeline"
	"resumelens/internal/report"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"
)

// createAnalyzeHandler wraps the analyze handler with observability. The
// endpoint accepts a multipart form with a "resume" PDF file and optional
// jobDescription, language, depth, and reports fields.
func (s *Server) createAnalyzeHandler(om *observability.ObservabilityManager) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		tracer := om.Tracer("resumelens.api")
		ctx, span := tracer.Start(ctx, "api.analyze")
		defer span.End()

		input, err := s.parseAnalyzeRequest(r)
		if err != nil {
			span.RecordError(err)
			span.SetAttributes(attribute.String("error.type", "validation"))
			writeErrorResponse(w, "Invalid request", err.Error(), http.StatusBadRequest)
			return
		}

		span.SetAttributes(
			attribute.Int("request.resume_bytes", len(input.ResumePDF)),
			attribute.Int("request.job_length", len(input.JobDescription)),
			attribute.String("request.language", input.Language),
			attribute.String("operation", "analyze"),
		)

		result, err := s.Pipeline.Run(ctx, input)
		if err != nil {
			span.RecordError(err)
			span.SetAttributes(attribute.String("error.type", "pipeline"))
			writeErrorResponse(w, "Failed to analyze resume", err.Error(), http.StatusInternalServerError)
			return
		}

		span.SetAttributes(
			attribute.Bool("success", true),
			attribute.String("extract.source", string(result.Extraction.Source)),
			attribute.Bool("compliance.degraded", result.Compliance.Degraded),
		)

		response := AnalyzeResponse{
			Result:    result,
			Downloads: downloadLinks(result),
		}

		w.Header().Set("Content-Type", "application/json")
		if err := json.NewEncoder(w).Encode(response); err != nil {
			span.RecordError(err)
			http.Error(w, "Failed to encode response", http.StatusInternalServerError)
		}
	}
}

// parseAnalyzeRequest extracts and validates the pipeline input from the
// multipart form.
func (s *Server) parseAnalyzeRequest(r *http.Request) (pipeline.Input, error) {
	var input pipeline.Input

	if err := r.ParseMultipartForm(32 << 20); err != nil {
		return input, fmt.Errorf("failed to parse multipart form: %w", err)
	}

	file, header, err := r.FormFile("resume")
	if err != nil {
		return input, fmt.Errorf("resume file is required: %w", err)
	}
	defer func() {
		if err := file.Close(); err != nil {
			s.Logger.Warn("Failed to close uploaded file", "error", err)
		}
	}()

	if !strings.EqualFold(filepath.Ext(header.Filename), ".pdf") {
		return input, fmt.Errorf("resume must be a PDF file, got %q", header.Filename)
	}

	data, err := io.ReadAll(file)
	if err != nil {
		return input, fmt.Errorf("failed to read resume file: %w", err)
	}
	if len(data) == 0 {
		return input, fmt.Errorf("resume file is empty")
	}
	input.ResumePDF = data

	input.JobDescription = r.FormValue("jobDescription")

	input.Language = r.FormValue("language")
	if input.Language == "" {
		input.Language = s.AppConfig.App.TargetLanguage
	}
	if languages := s.AppConfig.App.Languages; len(languages) > 0 && !slices.Contains(languages, input.Language) {
		return input, fmt.Errorf("unsupported language %q, supported: %v", input.Language, languages)
	}

	input.Depth = r.FormValue("depth")

	// The web flow produces report artifacts unless explicitly disabled
	input.GenerateReports = true
	if v := r.FormValue("reports"); v != "" {
		if parsed, err := strconv.ParseBool(v); err == nil {
			input.GenerateReports = parsed
		}
	}

	return input, nil
}

// downloadLinks maps rendered artifacts to their download URLs
func downloadLinks(result *pipeline.Result) map[string]string {
	links := make(map[string]string)
	if result.Artifacts.PDFPath != "" {
		links["pdf"] = "/reports/" + result.RunID + "/" + report.PDFFileName
	}
	if result.Artifacts.DOCXPath != "" {
		links["docx"] = "/reports/" + result.RunID + "/" + report.DOCXFileName
	}
	if len(links) == 0 {
		return nil
	}
	return links
}

// reportHandler serves generated report artifacts. The run ID must be a
// valid UUID and the file name one of the known artifact names, which keeps
// the handler from serving anything outside the report directory.
func (s *Server) reportHandler(w http.ResponseWriter, r *http.Request) {
	runID := r.PathValue("runID")
	fileName := r.PathValue("file")

	if _, err := uuid.Parse(runID); err != nil {
		writeErrorResponse(w, "Invalid run ID", "run ID must be a valid UUID", http.StatusBadRequest)
		return
	}
	if fileName != report.PDFFileName && fileName != report.DOCXFileName {
		writeErrorResponse(w, "Unknown report file", "requested file is not a report artifact", http.StatusNotFound)
		return
	}

	path := filepath.Join(s.AppConfig.Report.Dir, runID, fileName)
	s.Logger.Debug("Serving report artifact", "path", path, "client_ip", getClientIP(r))
	http.ServeFile(w, r, path)
}

// createRateLimitMiddleware adds observability to rate limiting
func (s *Server) createRateLimitMiddleware(om *observability.ObservabilityManager) func(http.HandlerFunc) http.HandlerFunc {
	originalMiddleware := s.rateLimitMiddleware()

	return func(next http.HandlerFunc) http.HandlerFunc {
		return originalMiddleware(func(w http.ResponseWriter, r *http.Request) {
			// Wrap the ResponseWriter to detect rate limit responses
			wrapper := &responseWrapper{ResponseWriter: w, statusCode: 200}

			next(wrapper, r)

			// If rate limited, record metric
			if wrapper.statusCode == http.StatusTooManyRequests {
				om.TrackRateLimitHit(r.Context(),
					attribute.String("endpoint", r.URL.Path),
					attribute.String("method", r.Method))
			}
		})
	}
}

// responseWrapper wraps http.ResponseWriter to capture status code
type responseWrapper struct {
	http.ResponseWriter
	statusCode int
}

func (rw *responseWrapper) WriteHeader(code int) {
	rw.statusCode = code
	rw.ResponseWriter.WriteHeader(code)
}
