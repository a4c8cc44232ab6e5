// Package session holds the mutable per-process state of the server:
// the resolved API credentials, the Gemini client built from them, and
// the path of the most recently saved image. The transport serialises
// request handling, so no locking is needed here.
package session

import (
	"log/slog"
	"strings"

	"gemini-image-mcp-server/internal/gemini"
)

// Source identifies where the active API key came from.
type Source string

const (
	SourceEnvironment   Source = "environment"
	SourceLocalFile     Source = "local-file"
	SourceNotConfigured Source = "not-configured"
)

// Credentials is an API key together with its provenance.
type Credentials struct {
	APIKey string
	Source Source
}

// Session is the server's conversational state. Credentials and Client
// change together; LastImagePath tracks the newest saved image.
type Session struct {
	Credentials   *Credentials
	Client        gemini.API
	LastImagePath string
}

func New() *Session {
	return &Session{}
}

// SetCredentials replaces the active credentials and client as a pair.
func (s *Session) SetCredentials(creds *Credentials, client gemini.API) {
	s.Credentials = creds
	s.Client = client
}

// Configured reports whether a usable API key is loaded.
func (s *Session) Configured() bool {
	return s.Credentials != nil && s.Credentials.APIKey != "" && s.Client != nil
}

// Provenance returns the source of the active key, or SourceNotConfigured.
func (s *Session) Provenance() Source {
	if s.Credentials == nil {
		return SourceNotConfigured
	}
	return s.Credentials.Source
}

// Resolve walks the startup credential sources in priority order and
// returns the first usable key: the environment variable value first,
// then the local token file. A source that is present but blank is
// skipped with a warning rather than treated as configured.
func Resolve(envKey, tokenPath string, logger *slog.Logger) *Credentials {
	sources := []struct {
		source Source
		lookup func() (string, error)
	}{
		{SourceEnvironment, func() (string, error) { return envKey, nil }},
		{SourceLocalFile, func() (string, error) { return LoadToken(tokenPath) }},
	}
	for _, candidate := range sources {
		key, err := candidate.lookup()
		if err != nil {
			logger.Debug("Credential source unavailable", "source", candidate.source, "error", err)
			continue
		}
		trimmed := strings.TrimSpace(key)
		if trimmed == "" {
			if key != "" {
				logger.Warn("Credential source holds a blank API key, skipping", "source", candidate.source)
			}
			continue
		}
		return &Credentials{APIKey: trimmed, Source: candidate.source}
	}
	return nil
}
