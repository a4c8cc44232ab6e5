package gemini

import (
	"context"
	"fmt"

	"google.golang.org/genai"
)

// Model identifiers for the two supported generation variants.
const (
	ModelFlash = "gemini-2.5-flash-image"
	ModelPro   = "gemini-3-pro-image-preview"
)

// API is the narrow slice of the genai SDK the server calls. Defined as
// an interface so handlers can be tested against a mock.
type API interface {
	GenerateContent(ctx context.Context, model string, contents []*genai.Content, config *genai.GenerateContentConfig) (*genai.GenerateContentResponse, error)
}

// Client wraps the Google genai SDK configured for the Gemini API backend.
type Client struct {
	models *genai.Models
}

var _ API = (*Client)(nil)

// NewClient creates a Gemini API client authenticated with the given key.
func NewClient(ctx context.Context, apiKey string) (*Client, error) {
	inner, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create genai client: %w", err)
	}
	return &Client{models: inner.Models}, nil
}

// GenerateContent forwards a generation call to the SDK.
func (c *Client) GenerateContent(ctx context.Context, model string, contents []*genai.Content, config *genai.GenerateContentConfig) (*genai.GenerateContentResponse, error) {
	return c.models.GenerateContent(ctx, model, contents, config)
}
