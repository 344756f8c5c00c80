package server

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/atlas-ocr/atlas/internal/erp"
	"github.com/atlas-ocr/atlas/internal/ocr"
	"github.com/atlas-ocr/atlas/internal/pipeline"
)

// Config holds server configuration.
type Config struct {
	Host        string
	Port        int
	CORSOrigin  string
	MaxUploadMB int64
	TimeoutSec  int

	// StatusFunc reports collaborator readiness for /health.
	StatusFunc func() ocr.Status

	// ERPClient enables the record-system lookups when non-nil.
	ERPClient *erp.Client

	// BatchLimit caps files per batch request.
	BatchLimit int
}

// Server holds the HTTP server state and dependencies.
type Server struct {
	pipeline    *pipeline.Pipeline
	corsOrigin  string
	maxUploadMB int64
	timeoutSec  int
	statusFunc  func() ocr.Status
	erpClient   *erp.Client
	batchLimit  int
}

// HealthResponse is returned by /health.
type HealthResponse struct {
	Status string     `json:"status"`
	Time   string     `json:"time"`
	Engine ocr.Status `json:"engine"`
}

// ErrorResponse is the JSON error envelope.
type ErrorResponse struct {
	Success bool   `json:"success"`
	Error   string `json:"error"`
}

// NewServer creates a server around an already constructed pipeline.
func NewServer(p *pipeline.Pipeline, config Config) (*Server, error) {
	if p == nil {
		return nil, errNilPipeline
	}
	return &Server{
		pipeline:    p,
		corsOrigin:  config.CORSOrigin,
		maxUploadMB: config.MaxUploadMB,
		timeoutSec:  config.TimeoutSec,
		statusFunc:  config.StatusFunc,
		erpClient:   config.ERPClient,
		batchLimit:  config.BatchLimit,
	}, nil
}

// SetupRoutes configures the HTTP routes.
func (s *Server) SetupRoutes(mux *http.ServeMux) {
	mux.HandleFunc("/health", s.corsMiddleware(s.healthHandler))
	mux.HandleFunc("/v1/ocr/image", s.corsMiddleware(s.ocrImageHandler))
	mux.HandleFunc("/v1/document", s.corsMiddleware(s.documentHandler))
	mux.HandleFunc("/v1/ocr/pdf", s.corsMiddleware(s.ocrPdfHandler))
	mux.HandleFunc("/v1/pdf/analyze", s.corsMiddleware(s.pdfAnalyzeHandler))
	mux.HandleFunc("/v1/batch", s.corsMiddleware(s.batchHandler))
	mux.HandleFunc("/v1/files", s.corsMiddleware(s.filesHandler))
	mux.HandleFunc("/v1/erp/partners", s.corsMiddleware(s.erpPartnersHandler))
	mux.HandleFunc("/v1/erp/invoices", s.corsMiddleware(s.erpInvoicesHandler))
	mux.HandleFunc("/v1/erp/orders", s.corsMiddleware(s.erpOrdersHandler))
	mux.HandleFunc("/ws", s.batchWebSocketHandler)
	mux.Handle("/metrics", promhttp.Handler())
}

// HTTPServer builds the http.Server with the configured timeouts.
func HTTPServer(addr string, handler http.Handler, timeoutSec int) *http.Server {
	return &http.Server{
		Addr:         addr,
		Handler:      handler,
		ReadTimeout:  time.Duration(timeoutSec) * time.Second,
		WriteTimeout: time.Duration(timeoutSec) * time.Second,
	}
}
