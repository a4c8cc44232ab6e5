package gemini

import (
	"context"

	"google.golang.org/genai"
)

// MockAPI implements API for tests. Set GenerateContentFunc to control
// responses; calls are recorded for inspection.
type MockAPI struct {
	GenerateContentFunc func(ctx context.Context, model string, contents []*genai.Content, config *genai.GenerateContentConfig) (*genai.GenerateContentResponse, error)

	Calls []MockCall
}

// MockCall records the arguments of one GenerateContent invocation.
type MockCall struct {
	Model    string
	Contents []*genai.Content
	Config   *genai.GenerateContentConfig
}

var _ API = (*MockAPI)(nil)

func (m *MockAPI) GenerateContent(ctx context.Context, model string, contents []*genai.Content, config *genai.GenerateContentConfig) (*genai.GenerateContentResponse, error) {
	m.Calls = append(m.Calls, MockCall{Model: model, Contents: contents, Config: config})
	if m.GenerateContentFunc != nil {
		return m.GenerateContentFunc(ctx, model, contents, config)
	}
	return &genai.GenerateContentResponse{}, nil
}
