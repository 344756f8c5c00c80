package server

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/gorilla/websocket"

	"github.com/atlas-ocr/atlas/internal/batch"
)

// WebSocket upgrader with reasonable defaults.
var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		// Origin checking is delegated to the deployment's proxy.
		return true
	},
}

// batchProgressEvent is one streamed per-file update.
type batchProgressEvent struct {
	Type  string `json:"type"` // "progress", "completed", "error"
	Done  int    `json:"done,omitempty"`
	Total int    `json:"total,omitempty"`
	Path  string `json:"path,omitempty"`
	Error string `json:"error,omitempty"`

	Result *batch.Result `json:"result,omitempty"`
}

// batchWebSocketRequest is the client's opening message.
type batchWebSocketRequest struct {
	Dir   string `json:"dir"`
	Limit int    `json:"limit,omitempty"`
}

// batchWebSocketHandler streams per-file progress while a batch runs.
func (s *Server) batchWebSocketHandler(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		slog.Error("failed to upgrade connection to websocket", "error", err)
		return
	}
	defer func() { _ = conn.Close() }()

	websocketConnections.Inc()
	defer websocketConnections.Dec()

	slog.Info("websocket connection established", "remote_addr", r.RemoteAddr)

	_ = conn.SetReadDeadline(time.Now().Add(60 * time.Second))
	var req batchWebSocketRequest
	if err := conn.ReadJSON(&req); err != nil {
		_ = conn.WriteJSON(batchProgressEvent{Type: "error", Error: "invalid request"})
		return
	}
	if req.Dir == "" {
		_ = conn.WriteJSON(batchProgressEvent{Type: "error", Error: "missing dir field"})
		return
	}

	limit := req.Limit
	if limit <= 0 || (s.batchLimit > 0 && limit > s.batchLimit) {
		limit = s.batchLimit
	}

	cfg := &batch.Config{
		Limit: limit,
		Progress: func(done, total int, path string, err error) {
			event := batchProgressEvent{Type: "progress", Done: done, Total: total, Path: path}
			if err != nil {
				event.Error = err.Error()
			}
			if writeErr := conn.WriteJSON(event); writeErr != nil {
				slog.Warn("failed to write progress event", "error", writeErr)
			}
		},
	}

	result, err := batch.ProcessBatch(r.Context(), s.pipeline, req.Dir, cfg)
	if err != nil {
		_ = conn.WriteJSON(batchProgressEvent{Type: "error", Error: err.Error()})
		return
	}
	_ = conn.WriteJSON(batchProgressEvent{Type: "completed", Total: result.Total, Result: result})
}
