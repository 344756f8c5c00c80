package server

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/atlas-ocr/atlas/internal/batch"
	"github.com/atlas-ocr/atlas/internal/ocr"
)

var errNilPipeline = errors.New("nil pipeline")

// healthHandler returns server health and collaborator readiness.
func (s *Server) healthHandler(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	engineStatus := ocr.Status{}
	if s.statusFunc != nil {
		engineStatus = s.statusFunc()
	}

	status := "healthy"
	if s.statusFunc != nil && !engineStatus.Ready {
		status = "degraded"
	}

	response := HealthResponse{
		Status: status,
		Time:   time.Now().UTC().Format(time.RFC3339),
		Engine: engineStatus,
	}
	s.writeJSON(w, http.StatusOK, response)
}

// filesHandler lists processable files in a directory.
func (s *Server) filesHandler(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	dir := r.URL.Query().Get("dir")
	if dir == "" {
		s.writeErrorResponse(w, "Missing dir parameter", http.StatusBadRequest)
		return
	}

	entries, err := batch.ListEntries(dir)
	if err != nil {
		s.writeErrorResponse(w, err.Error(), http.StatusBadRequest)
		return
	}

	s.writeJSON(w, http.StatusOK, struct {
		Dir     string        `json:"dir"`
		Entries []batch.Entry `json:"entries"`
		Count   int           `json:"count"`
	}{Dir: dir, Entries: entries, Count: len(entries)})
}

func (s *Server) erpPartnersHandler(w http.ResponseWriter, r *http.Request) {
	s.erpLookup(w, r, "partners")
}

func (s *Server) erpInvoicesHandler(w http.ResponseWriter, r *http.Request) {
	s.erpLookup(w, r, "invoices")
}

func (s *Server) erpOrdersHandler(w http.ResponseWriter, r *http.Request) {
	s.erpLookup(w, r, "orders")
}

// erpLookup authenticates and runs one reporting query against the record
// system. Each request carries its own session.
func (s *Server) erpLookup(w http.ResponseWriter, r *http.Request, kind string) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}
	if s.erpClient == nil {
		s.writeErrorResponse(w, "Record system not configured", http.StatusServiceUnavailable)
		return
	}

	limit := 0
	if raw := r.URL.Query().Get("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 0 {
			s.writeErrorResponse(w, "Invalid limit parameter", http.StatusBadRequest)
			return
		}
		limit = parsed
	}

	session, err := s.erpClient.Authenticate(r.Context())
	if err != nil {
		s.writeErrorResponse(w, err.Error(), http.StatusBadGateway)
		return
	}

	var result any
	switch kind {
	case "partners":
		result, err = session.SearchPartners(r.Context(), nil, limit)
	case "invoices":
		result, err = session.SearchInvoices(r.Context(), nil, limit)
	default:
		result, err = session.SearchOrders(r.Context(), nil, limit)
	}
	if err != nil {
		s.writeErrorResponse(w, err.Error(), http.StatusBadGateway)
		return
	}

	s.writeJSON(w, http.StatusOK, struct {
		Success bool `json:"success"`
		Result  any  `json:"result"`
	}{Success: true, Result: result})
}

// writeJSON writes a JSON response body with the given status.
func (s *Server) writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

// writeErrorResponse writes a JSON error response.
func (s *Server) writeErrorResponse(w http.ResponseWriter, message string, statusCode int) {
	s.writeJSON(w, statusCode, ErrorResponse{Success: false, Error: message})
}
