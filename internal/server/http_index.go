package server

import (
	"html/template"
	"log"
	"net/http"
)

// indexTemplate renders the resume upload form. Kept inline so the binary
// stays self-contained.
var indexTemplate = template.Must(template.New("index").Parse(`<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8">
<meta name="viewport" content="width=device-width, initial-scale=1">
<title>ResumeLens</title>
<style>
  body { font-family: system-ui, sans-serif; max-width: 640px; margin: 3rem auto; padding: 0 1rem; color: #1f2430; }
  h1 { font-size: 1.6rem; }
  form { display: grid; gap: 1rem; }
  label { font-weight: 600; }
  textarea { width: 100%; min-height: 8rem; font: inherit; }
  select, input[type=file] { font: inherit; }
  button { padding: 0.6rem 1.4rem; font: inherit; cursor: pointer; }
  .hint { color: #6b7280; font-size: 0.85rem; }
</style>
</head>
<body>
<h1>ResumeLens</h1>
<p>Upload a resume PDF for AI analysis and an ATS compliance check.</p>
<form action="/analyze" method="post" enctype="multipart/form-data">
  <div>
    <label for="resume">Resume (PDF)</label><br>
    <input type="file" id="resume" name="resume" accept=".pdf" required>
  </div>
  <div>
    <label for="jobDescription">Job description (optional)</label><br>
    <textarea id="jobDescription" name="jobDescription" placeholder="Paste a job description to get a job fit analysis"></textarea>
  </div>
  <div>
    <label for="language">Resume language</label><br>
    <select id="language" name="language">
      {{- range .Languages}}
      <option value="{{.}}">{{.}}</option>
      {{- end}}
    </select>
  </div>
  <div>
    <label for="depth">Analysis depth</label><br>
    <select id="depth" name="depth">
      {{- range .Depths}}
      <option value="{{.}}">{{.}}</option>
      {{- end}}
    </select>
  </div>
  <button type="submit">Analyze</button>
  <p class="hint">The response is JSON and includes download links for PDF and DOCX reports.</p>
</form>
</body>
</html>
`))

// indexHandler serves the resume upload form
func (s *Server) indexHandler(w http.ResponseWriter, r *http.Request) {
	data := struct {
		Languages []string
		Depths    []string
	}{
		Languages: s.AppConfig.App.Languages,
		Depths:    s.AppConfig.App.Depths,
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := indexTemplate.Execute(w, data); err != nil {
		log.Printf("Failed to render index page: %v", err)
	}
}
