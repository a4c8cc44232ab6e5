package tools

import (
	"encoding/base64"
	"fmt"
	"strings"

	"google.golang.org/genai"

	"gemini-image-mcp-server/internal/gemini"
	"gemini-image-mcp-server/internal/utils"
)

// Operation names, used both for logging and as filename prefixes.
const (
	opGenerate = "generate"
	opEdit     = "edit"
)

// normalize turns a raw upstream response into a tool result: every
// inline image is saved to the output directory and re-emitted as an
// image content block, text parts are collected into the model's notes,
// and a status text block always leads the content list. The session's
// last-image pointer ends on the final image saved.
func (h *Handler) normalize(operation string, req gemini.Request, resp *genai.GenerateContentResponse) (interface{}, error) {
	var notes strings.Builder
	var savedPaths []string
	var images []ImageContent

	for _, candidate := range resp.Candidates {
		if candidate == nil || candidate.Content == nil {
			continue
		}
		for _, part := range candidate.Content.Parts {
			if part == nil {
				continue
			}
			if part.Text != "" {
				notes.WriteString(part.Text)
			}
			if part.InlineData == nil || len(part.InlineData.Data) == 0 {
				continue
			}
			path, err := utils.SaveImage(h.cfg.OutputDir, operation, part.InlineData.Data)
			if err != nil {
				return nil, fmt.Errorf("failed to save generated image: %w", err)
			}
			savedPaths = append(savedPaths, path)
			h.sess.LastImagePath = path
			h.logger.Info("Saved image", "operation", operation, "path", path, "bytes", len(part.InlineData.Data))

			mimeType := part.InlineData.MIMEType
			if mimeType == "" {
				mimeType = "image/png"
			}
			images = append(images, ImageContent{
				Type:     "image",
				Data:     base64.StdEncoding.EncodeToString(part.InlineData.Data),
				MimeType: mimeType,
			})
		}
	}

	content := []interface{}{TextContent{Type: "text", Text: h.statusText(operation, req, notes.String(), savedPaths)}}
	for _, img := range images {
		content = append(content, img)
	}
	return CallResult{Content: content}, nil
}

// statusText summarises what was asked for and what came back.
func (h *Handler) statusText(operation string, req gemini.Request, notes string, savedPaths []string) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Operation: %s\nModel: %s\nAspect ratio: %s\n", operation, req.Model, req.AspectRatio)
	if req.Model == gemini.ModelPro {
		fmt.Fprintf(&b, "Image size: %s\n", req.ImageSize)
	}
	fmt.Fprintf(&b, "Prompt: %s\n", req.Prompt)
	if req.PrimaryImage != nil {
		fmt.Fprintf(&b, "Source image: %s\n", req.PrimaryImage.Path)
	}
	for _, ref := range req.References {
		fmt.Fprintf(&b, "Reference image: %s\n", ref.Path)
	}
	if len(savedPaths) > 0 {
		b.WriteString("\nSaved files:\n")
		for _, path := range savedPaths {
			fmt.Fprintf(&b, "- %s\n", path)
		}
	} else {
		b.WriteString("\nThe model returned no image for this request. Try rephrasing the prompt.\n")
	}
	if notes != "" {
		fmt.Fprintf(&b, "\nModel notes:\n%s", notes)
	}
	return b.String()
}
