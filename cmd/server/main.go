package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"facebookfix/internal/config"
	"facebookfix/internal/extractor"
	"facebookfix/internal/fetcher"
	internalhttp "facebookfix/internal/http"
	"facebookfix/internal/pkg/logger"
	"facebookfix/internal/web"
)

func main() {
	// Load configuration
	cfg := config.Load()

	// Validate server-specific configuration
	if err := cfg.ValidateForServer(); err != nil {
		fmt.Fprintf(os.Stderr, "Configuration error: %v\n", err)
		os.Exit(1)
	}

	// Setup logging
	log := logger.New(cfg.LogLevel)
	log.Info("Starting embed proxy service...")

	// Optional headless-browser fetch tier
	var renderer *fetcher.Renderer
	if cfg.BrowserFallback {
		renderer = fetcher.NewRenderer(log)
		log.Info("Headless-browser fetch fallback enabled")
	}

	// Page fetcher: one pooled client for the process lifetime
	pageFetcher := fetcher.New(cfg.WorkerProxy, renderer, log)
	if cfg.WorkerProxy != "" {
		log.Info("Worker proxy configured for login-walled fetches")
	}

	// Extraction chain and templates
	chain := extractor.NewChain(pageFetcher, log)
	templates, err := web.NewTemplates()
	if err != nil {
		log.Error("Failed to parse templates", "error", err)
		os.Exit(1)
	}

	// Router and HTTP server
	router := internalhttp.NewRouter(log, pageFetcher, chain, templates)
	server := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      router.SetupRoutes(),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 60 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Create a channel to track shutdown completion
	done := make(chan struct{})

	// Start server in a goroutine
	go func() {
		defer close(done)
		log.Info("Server listening", "port", cfg.Port)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Error("Server failed", "error", err)
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	// Wait for either shutdown signal or server completion
	select {
	case <-quit:
		log.Info("Shutdown signal received, stopping server...")
	case <-done:
		log.Info("Server completed")
	}

	// Graceful shutdown with timeout
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		log.Error("Error stopping server", "error", err)
	}

	log.Info("Server shutdown complete")
}
