package main

import (
	"context"
	"errors"
	"flag"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/gin-gonic/gin"

	"folio/analytics"
	"folio/api"
	"folio/config"
	"folio/content"
	"folio/logging"
	"folio/telemetry"
)

const serviceName = "folio-api"

func main() {
	configPath := flag.String("config", "", "config file (default is ./folio.yaml)")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		slog.Error("Failed to load config", "error", err)
		os.Exit(1)
	}

	logger := logging.Init(cfg)
	logger.Info("🚀 Starting folio API", "port", cfg.Port, "host", cfg.Content.Host)
	if !cfg.IsLocal() {
		gin.SetMode(gin.ReleaseMode)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	shutdownTracer, err := telemetry.InitTracer(ctx, cfg, serviceName)
	if err != nil {
		logger.Error("Failed to init tracer", "error", err)
	} else {
		defer func() { _ = shutdownTracer(context.Background()) }()
	}

	gateway, err := content.FromConfig(cfg.Content, logger)
	if err != nil {
		logger.Error("Failed to create content gateway", "error", err)
		os.Exit(1)
	}

	views := analytics.Setup(ctx, cfg, logger)
	defer func() {
		if err := views.Close(); err != nil {
			logger.Warn("Failed to close view backends", "error", err)
		}
	}()

	router := api.NewRouter(api.Deps{
		Content: gateway,
		Views:   views.Tracker,
		Counter: views.Counter,
		Logger:  logger,
	})

	srv := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: api.NewHandler(router, cfg.CORS.AllowedOrigins),
	}

	go func() {
		logger.Info("📡 API listening", "addr", srv.Addr)
		logger.Info("API endpoints available",
			"routes", []string{
				"GET  /api/health",
				"GET  /api/posts",
				"GET  /api/pages/:slug",
				"GET  /api/resume",
				"POST /api/views",
				"GET  /api/views",
				"GET  /api/views/top",
			})
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("HTTP server error", "error", err)
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Info("🛑 Shutting down server...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("Server forced to shutdown", "error", err)
	}

	logger.Info("👋 Server exited")
}
