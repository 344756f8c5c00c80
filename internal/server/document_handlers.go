package server

import (
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/atlas-ocr/atlas/internal/pipeline"
)

const formatText = "text"

// ocrImageHandler runs recognition on an uploaded image and returns the raw
// OCR result.
func (s *Server) ocrImageHandler(w http.ResponseWriter, r *http.Request) {
	s.processUpload(w, r, "image", "image", func(fr *pipeline.FileResult) (string, error) {
		return pipeline.FormatTextReport(fr), nil
	})
}

// documentHandler runs recognition plus field extraction and returns the
// structured document report.
func (s *Server) documentHandler(w http.ResponseWriter, r *http.Request) {
	s.processUpload(w, r, "image", "document", func(fr *pipeline.FileResult) (string, error) {
		return pipeline.FormatDocumentReport(fr), nil
	})
}

// ocrPdfHandler runs recognition on an uploaded PDF.
func (s *Server) ocrPdfHandler(w http.ResponseWriter, r *http.Request) {
	s.processUpload(w, r, "pdf", "pdf", func(fr *pipeline.FileResult) (string, error) {
		return pipeline.FormatTextReport(fr), nil
	})
}

// pdfAnalyzeHandler profiles an uploaded PDF without running recognition.
func (s *Server) pdfAnalyzeHandler(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	path, cleanup, ok := s.saveUpload(w, r, "pdf")
	if !ok {
		ocrRequestsTotal.WithLabelValues("analyze", "error").Inc()
		return
	}
	defer cleanup()

	start := time.Now()
	rec, err := s.pipeline.AnalyzePDF(r.Context(), path)
	if err != nil {
		ocrRequestsTotal.WithLabelValues("analyze", "error").Inc()
		s.writeErrorResponse(w, fmt.Sprintf("Analysis failed: %v", err), http.StatusInternalServerError)
		return
	}
	ocrRequestsTotal.WithLabelValues("analyze", "success").Inc()
	ocrProcessingDuration.WithLabelValues("analyze").Observe(time.Since(start).Seconds())

	if requestFormat(r) == formatText {
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		_, _ = w.Write([]byte(pipeline.FormatAnalysisReport(path, rec)))
		return
	}
	s.writeJSON(w, http.StatusOK, struct {
		Success  bool `json:"success"`
		Analysis any  `json:"analysis"`
	}{Success: true, Analysis: rec})
}

// processUpload is the shared single-file handler: save the upload, run it
// through the pipeline, and render the result in the requested format.
func (s *Server) processUpload(
	w http.ResponseWriter,
	r *http.Request,
	field, metric string,
	textFormatter func(*pipeline.FileResult) (string, error),
) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	path, cleanup, ok := s.saveUpload(w, r, field)
	if !ok {
		ocrRequestsTotal.WithLabelValues(metric, "error").Inc()
		return
	}
	defer cleanup()

	start := time.Now()
	var fr *pipeline.FileResult
	var err error
	if strings.EqualFold(filepath.Ext(path), ".pdf") {
		fr, err = s.pipeline.ProcessPDF(r.Context(), path)
	} else {
		fr, err = s.pipeline.ProcessImage(r.Context(), path)
	}
	if err != nil {
		ocrRequestsTotal.WithLabelValues(metric, "error").Inc()
		s.writeErrorResponse(w, fmt.Sprintf("Processing failed: %v", err), http.StatusInternalServerError)
		return
	}
	ocrRequestsTotal.WithLabelValues(metric, "success").Inc()
	ocrProcessingDuration.WithLabelValues(metric).Observe(time.Since(start).Seconds())

	if requestFormat(r) == formatText {
		text, err := textFormatter(fr)
		if err != nil {
			s.writeErrorResponse(w, fmt.Sprintf("Formatting failed: %v", err), http.StatusInternalServerError)
			return
		}
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		_, _ = w.Write([]byte(text))
		return
	}

	s.writeJSON(w, http.StatusOK, struct {
		Success bool                 `json:"success"`
		Result  *pipeline.FileResult `json:"result"`
	}{Success: true, Result: fr})
}

// saveUpload writes the uploaded form file into a temp dir and returns its
// path with a cleanup func. On failure the error response is already written.
func (s *Server) saveUpload(w http.ResponseWriter, r *http.Request, field string) (string, func(), bool) {
	r.Body = http.MaxBytesReader(w, r.Body, s.maxUploadMB*1024*1024)

	if err := r.ParseMultipartForm(s.maxUploadMB * 1024 * 1024); err != nil {
		if strings.Contains(strings.ToLower(err.Error()), "too large") {
			s.writeErrorResponse(w, "File too large", http.StatusRequestEntityTooLarge)
		} else {
			s.writeErrorResponse(w, "Failed to parse form data", http.StatusBadRequest)
		}
		return "", nil, false
	}

	file, header, err := r.FormFile(field)
	if err != nil {
		s.writeErrorResponse(w, fmt.Sprintf("No %s file provided", field), http.StatusBadRequest)
		return "", nil, false
	}
	defer func() { _ = file.Close() }()

	if header.Size > s.maxUploadMB*1024*1024 {
		s.writeErrorResponse(w, "File too large", http.StatusRequestEntityTooLarge)
		return "", nil, false
	}
	uploadSizeBytes.Observe(float64(header.Size))

	path, cleanup, err := persistUpload(file, header)
	if err != nil {
		s.writeErrorResponse(w, "Failed to store upload", http.StatusInternalServerError)
		return "", nil, false
	}
	return path, cleanup, true
}

func persistUpload(file multipart.File, header *multipart.FileHeader) (string, func(), error) {
	dir, err := os.MkdirTemp("", "atlas-upload-*")
	if err != nil {
		return "", nil, err
	}
	cleanup := func() { _ = os.RemoveAll(dir) }

	// Keep the extension so PDF routing works on the stored copy.
	name := filepath.Base(header.Filename)
	if name == "" || name == "." {
		name = "upload"
	}
	path := filepath.Join(dir, name)

	out, err := os.Create(path) //nolint:gosec // G304: path lives in a fresh temp dir
	if err != nil {
		cleanup()
		return "", nil, err
	}
	if _, err := io.Copy(out, file); err != nil {
		_ = out.Close()
		cleanup()
		return "", nil, err
	}
	if err := out.Close(); err != nil {
		cleanup()
		return "", nil, err
	}
	return path, cleanup, nil
}

// requestFormat reads the output format from form or query, defaulting to json.
func requestFormat(r *http.Request) string {
	format := r.FormValue("format")
	if format == "" {
		format = r.URL.Query().Get("format")
	}
	return format
}
