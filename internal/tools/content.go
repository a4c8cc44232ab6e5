package tools

// TextContent is a text block of a tool result.
type TextContent struct {
	Type string `json:"type"`
	Text string `json:"text"`
}

// ImageContent is an inline image block of a tool result, base64-encoded.
type ImageContent struct {
	Type     string `json:"type"`
	Data     string `json:"data"`
	MimeType string `json:"mimeType"`
}

// CallResult is the result payload of a tools/call response.
type CallResult struct {
	Content []interface{} `json:"content"`
}

func textResult(text string) CallResult {
	return CallResult{Content: []interface{}{TextContent{Type: "text", Text: text}}}
}
