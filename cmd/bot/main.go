package main

import (
	"fmt"
	"os"

	"facebookfix/internal/config"
	"facebookfix/internal/pkg/logger"
	"facebookfix/internal/service/bot"
)

func main() {
	// Load configuration
	cfg := config.Load()

	// Validate bot-specific configuration
	if err := cfg.ValidateForBot(); err != nil {
		fmt.Fprintf(os.Stderr, "Configuration error: %v\n", err)
		os.Exit(1)
	}

	// Setup logging
	log := logger.New(cfg.LogLevel)
	log.Info("Starting Discord bot service...")

	// Create bot service
	botService, err := bot.New(cfg, log)
	if err != nil {
		log.Error("Failed to create bot service", "error", err)
		os.Exit(1)
	}

	// Start bot service (blocks until interrupted)
	if err := botService.Start(); err != nil {
		log.Error("Bot service failed", "error", err)
		os.Exit(1)
	}

	log.Info("Bot service shutdown complete")
}
