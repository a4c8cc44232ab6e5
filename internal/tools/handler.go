// Package tools implements the request dispatcher and the six image
// tools exposed by the server.
package tools

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"strings"

	"gemini-image-mcp-server/internal/config"
	"gemini-image-mcp-server/internal/gemini"
	"gemini-image-mcp-server/internal/mcp"
	"gemini-image-mcp-server/internal/session"
)

const protocolVersion = "2024-11-05"

// Handler routes incoming JSON-RPC requests to their implementations.
type Handler struct {
	sess   *session.Session
	cfg    *config.Config
	logger *slog.Logger

	// newClient is swapped out in tests.
	newClient func(ctx context.Context, apiKey string) (gemini.API, error)
}

// NewHandler creates a request handler bound to the given session state.
func NewHandler(sess *session.Session, cfg *config.Config, logger *slog.Logger) *Handler {
	return &Handler{
		sess:   sess,
		cfg:    cfg,
		logger: logger,
		newClient: func(ctx context.Context, apiKey string) (gemini.API, error) {
			return gemini.NewClient(ctx, apiKey)
		},
	}
}

// HandleRequest processes a single request and returns the response to
// send, or nil when no response is due (notifications).
func (h *Handler) HandleRequest(request mcp.JSONRPCRequest) *mcp.JSONRPCResponse {
	if strings.HasPrefix(request.Method, "notifications/") {
		h.logger.Debug("Ignoring notification", "method", request.Method)
		return nil
	}

	h.logger.Debug("Handling request", "method", request.Method, "id", request.ID)

	var response mcp.JSONRPCResponse
	switch request.Method {
	case "initialize":
		response = h.handleInitialize(request)
	case "tools/list":
		response = h.handleListTools(request)
	case "tools/call":
		response = h.handleCallTool(request)
	case "resources/list":
		response = h.handleListResources(request)
	case "resources/read":
		response = h.handleReadResource(request)
	default:
		response = mcp.NewErrorResponse(request.ID, mcp.CodeMethodNotFound, "Method not found", request.Method)
	}
	return &response
}

func (h *Handler) handleInitialize(request mcp.JSONRPCRequest) mcp.JSONRPCResponse {
	return mcp.JSONRPCResponse{
		JSONRPC: "2.0",
		ID:      request.ID,
		Result: map[string]interface{}{
			"protocolVersion": protocolVersion,
			"serverInfo": map[string]interface{}{
				"name":    "gemini-image-mcp-server",
				"version": "0.1.0",
			},
			"capabilities": map[string]interface{}{
				"tools":     map[string]interface{}{},
				"resources": map[string]interface{}{},
			},
		},
	}
}

func (h *Handler) handleListTools(request mcp.JSONRPCRequest) mcp.JSONRPCResponse {
	return mcp.JSONRPCResponse{
		JSONRPC: "2.0",
		ID:      request.ID,
		Result:  map[string]interface{}{"tools": Definitions()},
	}
}

func (h *Handler) handleCallTool(request mcp.JSONRPCRequest) mcp.JSONRPCResponse {
	result, err := h.callTool(request.Params.Name, request.Params.Arguments)
	if err != nil {
		var rpcErr *mcp.RPCError
		if !errors.As(err, &rpcErr) {
			// Anything a tool did not classify itself is an internal fault.
			rpcErr = &mcp.RPCError{Code: mcp.CodeInternalError, Message: err.Error()}
		}
		h.logger.Error("Tool call failed", "tool", request.Params.Name, "code", rpcErr.Code, "error", rpcErr.Message)
		return mcp.NewErrorResponse(request.ID, rpcErr.Code, rpcErr.Message, rpcErr.Data)
	}
	return mcp.JSONRPCResponse{JSONRPC: "2.0", ID: request.ID, Result: result}
}

func (h *Handler) callTool(name string, args map[string]interface{}) (interface{}, error) {
	switch name {
	case "configure_gemini_token":
		return h.callConfigureToken(args)
	case "generate_image":
		return h.callGenerateImage(args)
	case "edit_image":
		return h.callEditImage(args)
	case "get_configuration_status":
		return h.callConfigurationStatus()
	case "continue_editing":
		return h.callContinueEditing(args)
	case "get_last_image_info":
		return h.callLastImageInfo()
	default:
		return nil, mcp.NewError(mcp.CodeMethodNotFound, "Tool not found: %s", name)
	}
}

// decodeArgs round-trips the raw argument map through JSON into a typed
// input struct. Type mismatches surface as invalid-params errors.
func decodeArgs(args map[string]interface{}, dst interface{}) error {
	data, err := json.Marshal(args)
	if err != nil {
		return mcp.NewError(mcp.CodeInvalidParams, "Invalid params: %v", err)
	}
	if err := json.Unmarshal(data, dst); err != nil {
		return mcp.NewError(mcp.CodeInvalidParams, "Invalid params: %v", err)
	}
	return nil
}
