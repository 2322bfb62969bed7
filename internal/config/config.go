package config

import (
	"flag"
	"log"
	"os"
	"strconv"
)

type Config struct {
	Port            string
	LogLevel        string
	WorkerProxy     string
	BrowserFallback bool
	PublicHost      string
	DiscordToken    string
}

func Load() *Config {
	config := &Config{
		Port:     getEnvWithDefault("PORT", "8080"),
		LogLevel: getEnvWithDefault("LOG_LEVEL", "info"),
	}

	// Optional proxy endpoint for retrying login-walled fetches
	config.WorkerProxy = getEnvWithDefault("WORKER_PROXY", "")

	// Optional headless-browser fallback for fetches the proxy can't save
	config.BrowserFallback = getEnvBool("BROWSER_FALLBACK", false)

	// Bot-only settings
	config.PublicHost = getEnvWithDefault("PUBLIC_HOST", "")
	config.DiscordToken = getEnvWithDefault("DISCORD_TOKEN", "")

	// Command line flags override environment
	flag.StringVar(&config.Port, "port", config.Port, "Server port")
	flag.StringVar(&config.LogLevel, "log-level", config.LogLevel, "Log level")
	flag.Parse()

	return config
}

func getEnvWithDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvBool(key string, defaultValue bool) bool {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	parsed, err := strconv.ParseBool(value)
	if err != nil {
		log.Fatalf("Environment variable %s must be a boolean, got %q", key, value)
	}
	return parsed
}

// ValidateForServer ensures all required fields for the proxy server are present
func (c *Config) ValidateForServer() error {
	// The server runs with defaults alone; proxy and browser fallback are optional
	return nil
}

// ValidateForBot ensures all required fields for the bot service are present
func (c *Config) ValidateForBot() error {
	if c.DiscordToken == "" {
		log.Fatalf("Environment variable DISCORD_TOKEN is required for bot service")
	}
	if c.PublicHost == "" {
		log.Fatalf("Environment variable PUBLIC_HOST is required for bot service")
	}
	return nil
}
