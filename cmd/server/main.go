package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"gemini-image-mcp-server/internal/config"
	"gemini-image-mcp-server/internal/gemini"
	"gemini-image-mcp-server/internal/mcp"
	"gemini-image-mcp-server/internal/session"
	"gemini-image-mcp-server/internal/tools"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading configuration: %v\n", err)
		os.Exit(1)
	}

	logHandler := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: cfg.LogLevel})
	logger := slog.New(logHandler)
	slog.SetDefault(logger)

	if cfg.APIKeySet && strings.TrimSpace(cfg.APIKey) == "" {
		logger.Warn("GEMINI_API_KEY is set but blank, ignoring it")
	}

	sess := session.New()
	if creds := session.Resolve(cfg.APIKey, cfg.TokenPath, logger); creds != nil {
		client, err := gemini.NewClient(context.Background(), creds.APIKey)
		if err != nil {
			logger.Warn("Failed to initialize Gemini client at startup", "source", creds.Source, "error", err)
		} else {
			sess.SetCredentials(creds, client)
			logger.Info("API key loaded", "source", creds.Source)
		}
	} else {
		logger.Info("No API key found, waiting for configure_gemini_token")
	}

	slog.Info("Starting Gemini image MCP server on stdio...",
		"model", cfg.Model, "output_dir", cfg.OutputDir)

	toolHandler := tools.NewHandler(sess, cfg, logger)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	server := mcp.NewStdioServer(os.Stdin, os.Stdout)
	server.Start(ctx)

	go func() {
		for request := range server.ReadChannel() {
			if response := toolHandler.HandleRequest(request); response != nil {
				server.WriteChannel() <- *response
			}
		}
		server.Close()
	}()

	server.Wait()
}
