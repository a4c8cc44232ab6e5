package tools

import (
	"encoding/base64"
	"os"
	"path/filepath"
	"strings"

	"gemini-image-mcp-server/internal/mcp"
	"gemini-image-mcp-server/internal/utils"
)

var imageExtensions = map[string]bool{
	".png": true, ".jpg": true, ".jpeg": true, ".webp": true,
}

// handleListResources exposes the saved images in the output directory
// as file:// resources.
func (h *Handler) handleListResources(request mcp.JSONRPCRequest) mcp.JSONRPCResponse {
	resources := []map[string]interface{}{}
	entries, err := os.ReadDir(h.cfg.OutputDir)
	if err != nil {
		if !os.IsNotExist(err) {
			return mcp.NewErrorResponse(request.ID, mcp.CodeInternalError, "Failed to list output directory: "+err.Error(), nil)
		}
		// No directory yet means no images yet.
		entries = nil
	}
	for _, entry := range entries {
		if entry.IsDir() || !imageExtensions[strings.ToLower(filepath.Ext(entry.Name()))] {
			continue
		}
		fullPath := filepath.Join(h.cfg.OutputDir, entry.Name())
		resource := map[string]interface{}{
			"uri":      "file://" + fullPath,
			"name":     entry.Name(),
			"mimeType": utils.MimeTypeForPath(entry.Name()),
		}
		if info, err := entry.Info(); err == nil {
			resource["size"] = info.Size()
		}
		resources = append(resources, resource)
	}
	return mcp.JSONRPCResponse{
		JSONRPC: "2.0",
		ID:      request.ID,
		Result:  map[string]interface{}{"resources": resources},
	}
}

// handleReadResource returns the contents of one saved image. Only
// file:// URIs inside the output directory are served.
func (h *Handler) handleReadResource(request mcp.JSONRPCRequest) mcp.JSONRPCResponse {
	uri := request.Params.URI
	path, ok := strings.CutPrefix(uri, "file://")
	if uri == "" || !ok {
		return mcp.NewErrorResponse(request.ID, mcp.CodeInvalidParams, "Invalid params: 'uri' must be a file:// URI", uri)
	}
	path = filepath.Clean(path)
	outputDir := filepath.Clean(h.cfg.OutputDir)
	if path != outputDir && !strings.HasPrefix(path, outputDir+string(filepath.Separator)) {
		return mcp.NewErrorResponse(request.ID, mcp.CodeInvalidParams, "Invalid params: URI is outside the output directory", uri)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return mcp.NewErrorResponse(request.ID, mcp.CodeInternalError, "Failed to read resource: "+err.Error(), uri)
	}
	return mcp.JSONRPCResponse{
		JSONRPC: "2.0",
		ID:      request.ID,
		Result: map[string]interface{}{
			"contents": []map[string]interface{}{
				{
					"uri":      uri,
					"mimeType": utils.MimeTypeForPath(path),
					"blob":     base64.StdEncoding.EncodeToString(data),
				},
			},
		},
	}
}
