package server

import (
	"bytes"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"resumelens/internal/config"
	lensErrors "resumelens/internal/errors"
)

func testLogger(t *testing.T) *lensErrors.Logger {
	t.Helper()
	logger, err := lensErrors.New("error")
	if err != nil {
		t.Fatalf("failed to create logger: %v", err)
	}
	return logger
}

func testServer(t *testing.T) *Server {
	t.Helper()
	return &Server{
		AppConfig: &config.Config{
			App: config.AppConfig{
				TargetLanguage: "en",
				Languages:      []string{"en", "id"},
			},
			Report: config.ReportConfig{Dir: t.TempDir()},
		},
		Logger: testLogger(t),
	}
}

func TestMaskAPIKey(t *testing.T) {
	tests := []struct {
		name     string
		apiKey   string
		expected string
	}{
		{"short key", "abc", "****"},
		{"exactly eight", "12345678", "****"},
		{"long key", "1234567890abcdef", "12345678****"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := maskAPIKey(tt.apiKey); got != tt.expected {
				t.Errorf("maskAPIKey(%q) = %q, want %q", tt.apiKey, got, tt.expected)
			}
		})
	}
}

func TestGetRateLimitKey(t *testing.T) {
	tests := []struct {
		name     string
		header   map[string]string
		byAPIKey bool
		byIP     bool
		expected string
	}{
		{
			name:     "api key header preferred",
			header:   map[string]string{"X-API-Key": "secret"},
			byAPIKey: true,
			byIP:     true,
			expected: "api:secret",
		},
		{
			name:     "bearer token fallback",
			header:   map[string]string{"Authorization": "Bearer tok"},
			byAPIKey: true,
			expected: "api:tok",
		},
		{
			name:     "ip when no key",
			byIP:     true,
			expected: "ip:192.0.2.1",
		},
		{
			name:     "nothing enabled",
			expected: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := httptest.NewRequest(http.MethodGet, "/analyze", nil)
			r.RemoteAddr = "192.0.2.1:4242"
			for k, v := range tt.header {
				r.Header.Set(k, v)
			}

			if got := getRateLimitKey(r, tt.byAPIKey, tt.byIP); got != tt.expected {
				t.Errorf("getRateLimitKey() = %q, want %q", got, tt.expected)
			}
		})
	}
}

func TestGetClientIP(t *testing.T) {
	tests := []struct {
		name       string
		remoteAddr string
		headers    map[string]string
		expected   string
	}{
		{
			name:       "x-forwarded-for first valid ip",
			remoteAddr: "10.0.0.1:1234",
			headers:    map[string]string{"X-Forwarded-For": "203.0.113.7, 10.0.0.1"},
			expected:   "203.0.113.7",
		},
		{
			name:       "x-real-ip",
			remoteAddr: "10.0.0.1:1234",
			headers:    map[string]string{"X-Real-IP": "198.51.100.2"},
			expected:   "198.51.100.2",
		},
		{
			name:       "remote addr fallback",
			remoteAddr: "192.0.2.9:5555",
			expected:   "192.0.2.9",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := httptest.NewRequest(http.MethodGet, "/", nil)
			r.RemoteAddr = tt.remoteAddr
			for k, v := range tt.headers {
				r.Header.Set(k, v)
			}

			if got := getClientIP(r); got != tt.expected {
				t.Errorf("getClientIP() = %q, want %q", got, tt.expected)
			}
		})
	}
}

func TestRateLimiterAllowsBurstThenDenies(t *testing.T) {
	limiter := NewRateLimiter(60, time.Minute, 2, testLogger(t))
	defer limiter.Close()

	if !limiter.Allow("ip:192.0.2.1") {
		t.Fatal("first request should be allowed")
	}
	if !limiter.Allow("ip:192.0.2.1") {
		t.Fatal("second request within burst should be allowed")
	}
	if limiter.Allow("ip:192.0.2.1") {
		t.Error("request beyond burst capacity should be denied")
	}

	// Independent keys get independent buckets
	if !limiter.Allow("ip:192.0.2.2") {
		t.Error("different key should have its own bucket")
	}
}

func TestReportHandlerRejectsInvalidRunID(t *testing.T) {
	s := testServer(t)
	mux := http.NewServeMux()
	mux.HandleFunc("GET /reports/{runID}/{file}", s.reportHandler)

	tests := []struct {
		name       string
		path       string
		wantStatus int
	}{
		{"invalid run id", "/reports/not-a-uuid/resume_analysis.pdf", http.StatusBadRequest},
		{"traversal attempt", "/reports/0b5aa2f0-9d59-4c0a-9f3c-1a2b3c4d5e6f/secrets.txt", http.StatusNotFound},
		{"missing artifact is not found", "/reports/0b5aa2f0-9d59-4c0a-9f3c-1a2b3c4d5e6f/resume_analysis.pdf", http.StatusNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			mux.ServeHTTP(w, httptest.NewRequest(http.MethodGet, tt.path, nil))

			if w.Code != tt.wantStatus {
				t.Errorf("status = %d, want %d", w.Code, tt.wantStatus)
			}
		})
	}
}

func multipartBody(t *testing.T, fileName string, fileContent []byte, fields map[string]string) (*bytes.Buffer, string) {
	t.Helper()

	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)

	if fileName != "" {
		part, err := writer.CreateFormFile("resume", fileName)
		if err != nil {
			t.Fatalf("failed to create form file: %v", err)
		}
		if _, err := part.Write(fileContent); err != nil {
			t.Fatalf("failed to write form file: %v", err)
		}
	}
	for k, v := range fields {
		if err := writer.WriteField(k, v); err != nil {
			t.Fatalf("failed to write field: %v", err)
		}
	}
	if err := writer.Close(); err != nil {
		t.Fatalf("failed to close writer: %v", err)
	}

	return &buf, writer.FormDataContentType()
}

func TestParseAnalyzeRequest(t *testing.T) {
	pdfBytes := []byte("%PDF-1.4 test")

	tests := []struct {
		name      string
		fileName  string
		content   []byte
		fields    map[string]string
		wantErr   bool
		checkFunc func(t *testing.T, s *Server, r *http.Request)
	}{
		{
			name:     "valid request with defaults",
			fileName: "resume.pdf",
			content:  pdfBytes,
			checkFunc: func(t *testing.T, s *Server, r *http.Request) {
				input, err := s.parseAnalyzeRequest(r)
				if err != nil {
					t.Fatalf("unexpected error: %v", err)
				}
				if input.Language != "en" {
					t.Errorf("language = %q, want default %q", input.Language, "en")
				}
				if !input.GenerateReports {
					t.Error("reports should default to enabled for web requests")
				}
				if !bytes.Equal(input.ResumePDF, pdfBytes) {
					t.Error("resume bytes not carried through")
				}
			},
		},
		{
			name:     "reports disabled explicitly",
			fileName: "resume.pdf",
			content:  pdfBytes,
			fields:   map[string]string{"reports": "false"},
			checkFunc: func(t *testing.T, s *Server, r *http.Request) {
				input, err := s.parseAnalyzeRequest(r)
				if err != nil {
					t.Fatalf("unexpected error: %v", err)
				}
				if input.GenerateReports {
					t.Error("reports=false should disable report generation")
				}
			},
		},
		{
			name:     "missing resume file",
			fileName: "",
			fields:   map[string]string{"language": "en"},
			wantErr:  true,
		},
		{
			name:     "non-pdf upload",
			fileName: "resume.docx",
			content:  pdfBytes,
			wantErr:  true,
		},
		{
			name:     "empty file",
			fileName: "resume.pdf",
			content:  nil,
			wantErr:  true,
		},
		{
			name:     "unsupported language",
			fileName: "resume.pdf",
			content:  pdfBytes,
			fields:   map[string]string{"language": "xx"},
			wantErr:  true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := testServer(t)
			body, contentType := multipartBody(t, tt.fileName, tt.content, tt.fields)
			r := httptest.NewRequest(http.MethodPost, "/analyze", body)
			r.Header.Set("Content-Type", contentType)

			if tt.checkFunc != nil {
				tt.checkFunc(t, s, r)
				return
			}

			_, err := s.parseAnalyzeRequest(r)
			if tt.wantErr && err == nil {
				t.Error("expected an error, got none")
			}
			if !tt.wantErr && err != nil {
				t.Errorf("unexpected error: %v", err)
			}
		})
	}
}

func TestRequestSizeLimitMiddleware(t *testing.T) {
	s := testServer(t)
	s.MaxRequestSize = 16

	handler := s.requestSizeLimitMiddleware()(func(w http.ResponseWriter, r *http.Request) {
		_, err := io.ReadAll(r.Body)
		if err != nil {
			http.Error(w, "too large", http.StatusRequestEntityTooLarge)
			return
		}
		w.WriteHeader(http.StatusOK)
	})

	t.Run("under limit", func(t *testing.T) {
		w := httptest.NewRecorder()
		r := httptest.NewRequest(http.MethodPost, "/analyze", bytes.NewReader(make([]byte, 8)))
		handler(w, r)
		if w.Code != http.StatusOK {
			t.Errorf("status = %d, want %d", w.Code, http.StatusOK)
		}
	})

	t.Run("over limit", func(t *testing.T) {
		w := httptest.NewRecorder()
		r := httptest.NewRequest(http.MethodPost, "/analyze", bytes.NewReader(make([]byte, 64)))
		handler(w, r)
		if w.Code != http.StatusRequestEntityTooLarge {
			t.Errorf("status = %d, want %d", w.Code, http.StatusRequestEntityTooLarge)
		}
	})
}

func TestAuthMiddleware(t *testing.T) {
	tests := []struct {
		name       string
		apiKeys    map[string]bool
		headers    map[string]string
		wantStatus int
	}{
		{
			name:       "no keys configured passes through",
			apiKeys:    map[string]bool{},
			wantStatus: http.StatusOK,
		},
		{
			name:       "missing key rejected",
			apiKeys:    map[string]bool{"valid-key-123": true},
			wantStatus: http.StatusUnauthorized,
		},
		{
			name:       "invalid key rejected",
			apiKeys:    map[string]bool{"valid-key-123": true},
			headers:    map[string]string{"X-API-Key": "wrong"},
			wantStatus: http.StatusUnauthorized,
		},
		{
			name:       "valid header key accepted",
			apiKeys:    map[string]bool{"valid-key-123": true},
			headers:    map[string]string{"X-API-Key": "valid-key-123"},
			wantStatus: http.StatusOK,
		},
		{
			name:       "valid bearer token accepted",
			apiKeys:    map[string]bool{"valid-key-123": true},
			headers:    map[string]string{"Authorization": "Bearer valid-key-123"},
			wantStatus: http.StatusOK,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := testServer(t)
			s.APIKeys = tt.apiKeys

			handler := s.authMiddleware(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(http.StatusOK)
			})

			w := httptest.NewRecorder()
			r := httptest.NewRequest(http.MethodPost, "/analyze", nil)
			for k, v := range tt.headers {
				r.Header.Set(k, v)
			}
			handler(w, r)

			if w.Code != tt.wantStatus {
				t.Errorf("status = %d, want %d", w.Code, tt.wantStatus)
			}
		})
	}
}
