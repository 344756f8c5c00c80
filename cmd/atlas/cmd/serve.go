package cmd

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/atlas-ocr/atlas/internal/erp"
	"github.com/atlas-ocr/atlas/internal/server"
)

// serveCmd represents the serve command.
var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP document processing API",
	Long: `Start an HTTP server exposing the processing operations.

Endpoints:
  POST /v1/ocr/image   - Recognize an uploaded image
  POST /v1/document    - Extract structured fields from an upload
  POST /v1/ocr/pdf     - Recognize an uploaded PDF
  POST /v1/pdf/analyze - Recommend a PDF processing strategy
  POST /v1/batch       - Process a server-side folder
  GET  /v1/files       - List processable files in a folder
  GET  /health         - Health and collaborator readiness
  GET  /metrics        - Prometheus metrics
  GET  /ws             - Batch progress streaming

Examples:
  atlas serve
  atlas serve --port 8080
  atlas serve --host 0.0.0.0 --port 3000`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := GetConfig()

		host := cfg.Server.Host
		if cmd.Flags().Changed("host") {
			host, _ = cmd.Flags().GetString("host")
		}
		port := cfg.Server.Port
		if cmd.Flags().Changed("port") {
			port, _ = cmd.Flags().GetInt("port")
		}
		corsOrigin := cfg.Server.CORSOrigin
		if cmd.Flags().Changed("cors-origin") {
			corsOrigin, _ = cmd.Flags().GetString("cors-origin")
		}
		maxUploadMB := cfg.Server.MaxUploadMB
		if cmd.Flags().Changed("max-upload-size") {
			maxUploadMB, _ = cmd.Flags().GetInt("max-upload-size")
		}
		timeout := cfg.Server.TimeoutSec
		if cmd.Flags().Changed("timeout") {
			timeout, _ = cmd.Flags().GetInt("timeout")
		}
		shutdownTimeout := cfg.Server.ShutdownTimeout
		if cmd.Flags().Changed("shutdown-timeout") {
			shutdownTimeout, _ = cmd.Flags().GetInt("shutdown-timeout")
		}

		if port < 1 || port > 65535 {
			return fmt.Errorf("invalid port number: %d (must be between 1 and 65535)", port)
		}

		engine := buildEngine(cfg)
		p, err := buildPipeline(cfg)
		if err != nil {
			return fmt.Errorf("failed to build pipeline: %w", err)
		}

		serverConfig := server.Config{
			Host:        host,
			Port:        port,
			CORSOrigin:  corsOrigin,
			MaxUploadMB: int64(maxUploadMB),
			TimeoutSec:  timeout,
			StatusFunc:  engine.CheckStatus,
			BatchLimit:  cfg.Batch.Limit,
		}
		if cfg.ERP.Enabled() {
			serverConfig.ERPClient = erp.NewClient(erp.Config{
				URL:      cfg.ERP.URL,
				Database: cfg.ERP.Database,
				Username: cfg.ERP.Username,
				APIKey:   cfg.ERP.APIKey,
			}, nil)
			slog.Info("record system lookups enabled", "url", cfg.ERP.URL)
		}

		srv, err := server.NewServer(p, serverConfig)
		if err != nil {
			return fmt.Errorf("failed to initialize server: %w", err)
		}

		mux := http.NewServeMux()
		srv.SetupRoutes(mux)
		httpServer := server.HTTPServer(fmt.Sprintf("%s:%d", host, port), mux, timeout)

		ctx, cancel := context.WithCancel(cmd.Context())
		defer cancel()

		go func() {
			slog.Info("starting server", "host", host, "port", port)
			if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				slog.Error("server error", "error", err)
				cancel()
			}
		}()

		sigChan := make(chan os.Signal, 1)
		signal.Notify(sigChan, syscall.SIGTERM, syscall.SIGINT)

		select {
		case sig := <-sigChan:
			slog.Info("received shutdown signal", "signal", sig.String())
		case <-ctx.Done():
			slog.Info("context cancelled, initiating shutdown")
		}

		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), time.Duration(shutdownTimeout)*time.Second)
		defer shutdownCancel()

		if err := httpServer.Shutdown(shutdownCtx); err != nil {
			slog.Error("server shutdown error", "error", err)
			return err
		}
		slog.Info("graceful shutdown completed")
		return nil
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
	serveCmd.Flags().StringP("host", "H", "localhost", "server host")
	serveCmd.Flags().IntP("port", "p", 8080, "server port")
	serveCmd.Flags().String("cors-origin", "*", "CORS allowed origins")
	serveCmd.Flags().Int("max-upload-size", 50, "maximum upload size in MB")
	serveCmd.Flags().Int("timeout", 120, "request timeout in seconds")
	serveCmd.Flags().Int("shutdown-timeout", 10, "shutdown timeout in seconds")
}
