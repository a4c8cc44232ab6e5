package tools

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"gemini-image-mcp-server/internal/gemini"
	"gemini-image-mcp-server/internal/mcp"
	"gemini-image-mcp-server/internal/session"
	"gemini-image-mcp-server/internal/utils"
)

const (
	defaultAspectRatio = "4:3"
	defaultImageSize   = "1K"
)

var validAspectRatios = map[string]bool{
	"1:1": true, "2:3": true, "3:2": true, "3:4": true, "4:3": true,
	"4:5": true, "5:4": true, "9:16": true, "16:9": true, "21:9": true,
}

var validImageSizes = map[string]bool{"1K": true, "2K": true, "4K": true}

func (h *Handler) callConfigureToken(args map[string]interface{}) (interface{}, error) {
	var in ConfigureInput
	if err := decodeArgs(args, &in); err != nil {
		return nil, err
	}
	apiKey := strings.TrimSpace(in.APIKey)
	if apiKey == "" {
		return nil, mcp.NewError(mcp.CodeInvalidParams, "Invalid params: 'apiKey' must be a non-empty string")
	}

	client, err := h.newClient(context.Background(), apiKey)
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}
	h.sess.SetCredentials(&session.Credentials{APIKey: apiKey, Source: session.SourceLocalFile}, client)

	if err := session.SaveToken(h.cfg.TokenPath, apiKey); err != nil {
		// The key is usable for this session even when persistence fails.
		h.logger.Warn("Failed to persist API key", "path", h.cfg.TokenPath, "error", err)
		return textResult("Gemini API key configured for this session, but saving it to " + h.cfg.TokenPath + " failed: " + err.Error()), nil
	}

	h.logger.Info("API key configured via tool call", "token_file", h.cfg.TokenPath)
	return textResult("Gemini API key configured and saved to " + h.cfg.TokenPath + ". Image tools are ready to use."), nil
}

func (h *Handler) callGenerateImage(args map[string]interface{}) (interface{}, error) {
	var in GenerateInput
	if err := decodeArgs(args, &in); err != nil {
		return nil, err
	}
	if strings.TrimSpace(in.Prompt) == "" {
		return nil, mcp.NewError(mcp.CodeInvalidParams, "Invalid params: 'prompt' must be a non-empty string")
	}
	aspectRatio, imageSize, err := h.normalizeImageOptions(in.AspectRatio, in.ImageSize)
	if err != nil {
		return nil, err
	}
	if err := h.requireConfigured(); err != nil {
		return nil, err
	}

	return h.run(opGenerate, gemini.Request{
		Model:       h.cfg.Model,
		Prompt:      in.Prompt,
		AspectRatio: aspectRatio,
		ImageSize:   imageSize,
	})
}

func (h *Handler) callEditImage(args map[string]interface{}) (interface{}, error) {
	var in EditInput
	if err := decodeArgs(args, &in); err != nil {
		return nil, err
	}
	if strings.TrimSpace(in.ImagePath) == "" {
		return nil, mcp.NewError(mcp.CodeInvalidParams, "Invalid params: 'imagePath' must be a non-empty string")
	}
	if strings.TrimSpace(in.Prompt) == "" {
		return nil, mcp.NewError(mcp.CodeInvalidParams, "Invalid params: 'prompt' must be a non-empty string")
	}
	aspectRatio, imageSize, err := h.normalizeImageOptions(in.AspectRatio, in.ImageSize)
	if err != nil {
		return nil, err
	}
	if err := h.requireConfigured(); err != nil {
		return nil, err
	}

	return h.editImage(in.ImagePath, in.Prompt, in.ReferenceImages, aspectRatio, imageSize)
}

func (h *Handler) callContinueEditing(args map[string]interface{}) (interface{}, error) {
	var in ContinueInput
	if err := decodeArgs(args, &in); err != nil {
		return nil, err
	}
	if strings.TrimSpace(in.Prompt) == "" {
		return nil, mcp.NewError(mcp.CodeInvalidParams, "Invalid params: 'prompt' must be a non-empty string")
	}
	aspectRatio, imageSize, err := h.normalizeImageOptions(in.AspectRatio, in.ImageSize)
	if err != nil {
		return nil, err
	}
	if err := h.requireConfigured(); err != nil {
		return nil, err
	}
	if h.sess.LastImagePath == "" {
		return nil, mcp.NewError(mcp.CodeInvalidRequest, "No previous image to continue from. Use generate_image or edit_image first.")
	}
	if _, err := os.Stat(h.sess.LastImagePath); err != nil {
		return nil, mcp.NewError(mcp.CodeInvalidRequest, "The previous image no longer exists at %s. Generate a new image first.", h.sess.LastImagePath)
	}

	return h.editImage(h.sess.LastImagePath, in.Prompt, in.ReferenceImages, aspectRatio, imageSize)
}

func (h *Handler) callConfigurationStatus() (interface{}, error) {
	var status string
	switch h.sess.Provenance() {
	case session.SourceEnvironment:
		status = "Configured: API key loaded from the GEMINI_API_KEY environment variable."
	case session.SourceLocalFile:
		status = "Configured: API key loaded from " + h.cfg.TokenPath + ". Call configure_gemini_token to replace it."
	default:
		status = "Not configured: set GEMINI_API_KEY or call configure_gemini_token with your API key."
	}
	text := fmt.Sprintf("%s\nModel: %s\nOutput directory: %s", status, h.cfg.Model, h.cfg.OutputDir)
	return textResult(text), nil
}

func (h *Handler) callLastImageInfo() (interface{}, error) {
	path := h.sess.LastImagePath
	if path == "" {
		return textResult("No image has been generated or edited in this session yet."), nil
	}
	info, err := os.Stat(path)
	if err != nil {
		return textResult(fmt.Sprintf("The last image was saved to %s, but the file no longer exists.", path)), nil
	}
	text := fmt.Sprintf("Last image: %s\nSize: %d bytes\nModified: %s",
		path, info.Size(), info.ModTime().UTC().Format(time.RFC3339))
	return textResult(text), nil
}

// editImage loads the primary image and any reference images, then runs
// the edit. A missing primary image fails the call; unreadable reference
// images are skipped so a single bad path cannot sink the edit.
func (h *Handler) editImage(imagePath, prompt string, references []string, aspectRatio, imageSize string) (interface{}, error) {
	primary, err := readImage(imagePath)
	if err != nil {
		return nil, mcp.NewError(mcp.CodeInvalidRequest, "Cannot read image at %s: %v", imagePath, err)
	}
	req := gemini.Request{
		Model:        h.cfg.Model,
		Prompt:       prompt,
		AspectRatio:  aspectRatio,
		ImageSize:    imageSize,
		PrimaryImage: &primary,
	}
	for _, refPath := range references {
		ref, err := readImage(refPath)
		if err != nil {
			h.logger.Warn("Skipping unreadable reference image", "path", refPath, "error", err)
			continue
		}
		req.References = append(req.References, ref)
	}
	return h.run(opEdit, req)
}

// run performs the upstream call and normalizes its response.
func (h *Handler) run(operation string, req gemini.Request) (interface{}, error) {
	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(h.cfg.Timeout)*time.Second)
	defer cancel()

	h.logger.Info("Calling Gemini API", "operation", operation, "model", req.Model, "aspect_ratio", req.AspectRatio)
	resp, err := h.sess.Client.GenerateContent(ctx, req.Model, req.Contents(), req.Config())
	if err != nil {
		return nil, fmt.Errorf("Gemini API call failed: %w", err)
	}
	return h.normalize(operation, req, resp)
}

func (h *Handler) requireConfigured() error {
	if !h.sess.Configured() {
		return mcp.NewError(mcp.CodeInvalidRequest, "Gemini API key not configured. Set GEMINI_API_KEY or call configure_gemini_token first.")
	}
	return nil
}

func (h *Handler) normalizeImageOptions(aspectRatio, imageSize string) (string, string, error) {
	if aspectRatio == "" {
		aspectRatio = defaultAspectRatio
	}
	if !validAspectRatios[aspectRatio] {
		return "", "", mcp.NewError(mcp.CodeInvalidParams, "Invalid params: unsupported aspectRatio %q", aspectRatio)
	}
	if imageSize == "" {
		imageSize = defaultImageSize
	}
	if !validImageSizes[imageSize] {
		return "", "", mcp.NewError(mcp.CodeInvalidParams, "Invalid params: unsupported imageSize %q", imageSize)
	}
	if imageSize != defaultImageSize && h.cfg.Model != gemini.ModelPro {
		h.logger.Debug("imageSize is only honored by the pro model, ignoring", "image_size", imageSize, "model", h.cfg.Model)
	}
	return aspectRatio, imageSize, nil
}

func readImage(path string) (gemini.ImageInput, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return gemini.ImageInput{}, err
	}
	return gemini.ImageInput{Path: path, MIMEType: utils.MimeTypeForPath(path), Data: data}, nil
}
