package server

import (
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/atlas-ocr/atlas/internal/batch"
)

// batchRequest is the JSON body for /v1/batch. The directory must be
// reachable from the server process.
type batchRequest struct {
	Dir    string `json:"dir"`
	Limit  int    `json:"limit,omitempty"`
	Format string `json:"format,omitempty"`
}

// batchHandler processes every supported file in a directory.
func (s *Server) batchHandler(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var req batchRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.writeErrorResponse(w, "Invalid request body", http.StatusBadRequest)
		return
	}
	if req.Dir == "" {
		s.writeErrorResponse(w, "Missing dir field", http.StatusBadRequest)
		return
	}

	limit := req.Limit
	if limit <= 0 || (s.batchLimit > 0 && limit > s.batchLimit) {
		limit = s.batchLimit
	}

	start := time.Now()
	result, err := batch.ProcessBatch(r.Context(), s.pipeline, req.Dir, &batch.Config{Limit: limit})
	if err != nil {
		ocrRequestsTotal.WithLabelValues("batch", "error").Inc()
		s.writeErrorResponse(w, fmt.Sprintf("Batch processing failed: %v", err), http.StatusBadRequest)
		return
	}
	ocrRequestsTotal.WithLabelValues("batch", "success").Inc()
	ocrProcessingDuration.WithLabelValues("batch").Observe(time.Since(start).Seconds())
	batchFilesProcessed.Observe(float64(result.Total))

	if req.Format == formatText {
		text, err := result.FormatResults(formatText)
		if err != nil {
			s.writeErrorResponse(w, fmt.Sprintf("Formatting failed: %v", err), http.StatusInternalServerError)
			return
		}
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		_, _ = w.Write([]byte(text))
		return
	}

	s.writeJSON(w, http.StatusOK, struct {
		Success bool          `json:"success"`
		Result  *batch.Result `json:"result"`
	}{Success: true, Result: result})
}
