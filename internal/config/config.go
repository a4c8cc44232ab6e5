package config

import (
	"flag"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/joho/godotenv"

	"gemini-image-mcp-server/internal/gemini"
	"gemini-image-mcp-server/internal/session"
	"gemini-image-mcp-server/internal/utils"
)

// Environment variables read at startup.
const (
	EnvAPIKey    = "GEMINI_API_KEY"
	EnvModel     = "GEMINI_IMAGE_MODEL"
	EnvOutputDir = "GEMINI_IMAGE_OUTPUT_DIR"
)

// Config holds the runtime settings for the server.
type Config struct {
	APIKey    string // raw env value, may be empty
	APIKeySet bool   // whether the env var was set at all
	Model     string // resolved model identifier
	OutputDir string
	TokenPath string
	Timeout   int // upstream call timeout in seconds
	LogLevel  slog.Level

	logLevelStr string
}

// Load reads configuration from a .env file if present, the process
// environment, and command-line flags.
func Load() (*Config, error) {
	_ = godotenv.Load() // absent .env is the normal case

	cfg := &Config{}
	fs := flag.NewFlagSet("gemini-image-mcp-server", flag.ContinueOnError)
	fs.StringVar(&cfg.logLevelStr, "log-level", "INFO", "Logging level (DEBUG, INFO, WARN, ERROR)")
	fs.IntVar(&cfg.Timeout, "timeout", 300, "Upstream API call timeout in seconds")
	if err := fs.Parse(os.Args[1:]); err != nil {
		return nil, fmt.Errorf("error parsing flags: %w", err)
	}

	switch strings.ToUpper(cfg.logLevelStr) {
	case "DEBUG":
		cfg.LogLevel = slog.LevelDebug
	case "INFO":
		cfg.LogLevel = slog.LevelInfo
	case "WARN":
		cfg.LogLevel = slog.LevelWarn
	case "ERROR":
		cfg.LogLevel = slog.LevelError
	default:
		fmt.Fprintf(os.Stderr, "Invalid log level '%s' provided, defaulting to INFO\n", cfg.logLevelStr)
		cfg.LogLevel = slog.LevelInfo
	}

	cfg.APIKey, cfg.APIKeySet = os.LookupEnv(EnvAPIKey)
	cfg.Model = resolveModel(os.Getenv(EnvModel))
	cfg.OutputDir = os.Getenv(EnvOutputDir)
	if cfg.OutputDir == "" {
		cfg.OutputDir = utils.DefaultOutputDir()
	}
	cfg.TokenPath = session.TokenFileName

	return cfg, nil
}

// resolveModel maps the GEMINI_IMAGE_MODEL value to a model identifier.
// The short names "flash" and "pro" select the known variants; anything
// else is passed through as an explicit model id.
func resolveModel(value string) string {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "", "flash":
		return gemini.ModelFlash
	case "pro":
		return gemini.ModelPro
	default:
		return strings.TrimSpace(value)
	}
}
