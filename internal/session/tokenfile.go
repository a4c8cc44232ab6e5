package session

import (
	"encoding/json"
	"fmt"
	"os"
)

// TokenFileName is the local credential file, resolved relative to the
// server's working directory.
const TokenFileName = "gemini-token.json"

type tokenRecord struct {
	APIKey string `json:"apiKey"`
}

// LoadToken reads the API key from a token file written by SaveToken.
func LoadToken(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", err
	}
	var record tokenRecord
	if err := json.Unmarshal(data, &record); err != nil {
		return "", fmt.Errorf("failed to parse token file %s: %w", path, err)
	}
	return record.APIKey, nil
}

// SaveToken persists the API key so later sessions start configured.
// The file is written with owner-only permissions.
func SaveToken(path, apiKey string) error {
	data, err := json.MarshalIndent(tokenRecord{APIKey: apiKey}, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode token file: %w", err)
	}
	if err := os.WriteFile(path, data, 0600); err != nil {
		return fmt.Errorf("failed to write token file %s: %w", path, err)
	}
	return nil
}
