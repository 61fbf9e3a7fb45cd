package server

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"
	mcpserver "github.com/mark3labs/mcp-go/server"

	"github.com/yvain13/servicenow-mcp-sub001/internal/api"
	"github.com/yvain13/servicenow-mcp-sub001/pkg/logging"
)

// createServerTools converts every registered tool into an MCP server
// tool whose handler routes through the registry's dispatch path.
func (s *Server) createServerTools() []mcpserver.ServerTool {
	metas := s.registry.Tools()
	serverTools := make([]mcpserver.ServerTool, 0, len(metas))

	for _, meta := range metas {
		serverTools = append(serverTools, mcpserver.ServerTool{
			Tool: mcp.Tool{
				Name:        meta.Name,
				Description: meta.Description,
				InputSchema: convertToMCPSchema(meta.Parameters),
			},
			Handler: s.createToolHandler(meta.Name),
		})
	}

	return serverTools
}

// createToolHandler wraps registry dispatch in an MCP handler. Every
// failure becomes an error result; nothing raises past the dispatch
// boundary into the transport.
func (s *Server) createToolHandler(toolName string) func(context.Context, mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		args := make(map[string]interface{})
		if req.Params.Arguments != nil {
			if argsMap, ok := req.Params.Arguments.(map[string]interface{}); ok {
				args = argsMap
			}
		}

		result, err := s.registry.Dispatch(ctx, toolName, args)
		if err != nil {
			logging.Error("ToolHandler", err, "Tool %s failed", toolName)
			return mcp.NewToolResultError(describeError(err)), nil
		}

		return convertToMCPResult(result), nil
	}
}

// describeError prefixes the error message with its kind so MCP clients
// can distinguish caller mistakes from upstream failures.
func describeError(err error) string {
	switch {
	case api.IsValidationError(err):
		return fmt.Sprintf("validation error: %v", err)
	case api.IsAuthError(err):
		return fmt.Sprintf("auth error: %v", err)
	case api.IsUpstreamError(err):
		return fmt.Sprintf("upstream error: %v", err)
	case api.IsUnknownTool(err):
		return err.Error()
	default:
		return fmt.Sprintf("tool execution failed: %v", err)
	}
}

// convertToMCPSchema converts parameter metadata to the JSON Schema
// shape MCP clients expect.
func convertToMCPSchema(params []api.ParameterMetadata) mcp.ToolInputSchema {
	properties := make(map[string]interface{})
	required := []string{}

	for _, param := range params {
		propSchema := map[string]interface{}{
			"type":        param.Type,
			"description": param.Description,
		}
		if param.Default != nil {
			propSchema["default"] = param.Default
		}

		properties[param.Name] = propSchema
		if param.Required {
			required = append(required, param.Name)
		}
	}

	return mcp.ToolInputSchema{
		Type:       "object",
		Properties: properties,
		Required:   required,
	}
}

// convertToMCPResult converts an internal tool result to MCP format.
// String content passes through as text; structured payloads are
// marshaled to JSON.
func convertToMCPResult(result *api.CallToolResult) *mcp.CallToolResult {
	mcpContent := make([]mcp.Content, len(result.Content))

	for i, content := range result.Content {
		if text, ok := content.(string); ok {
			mcpContent[i] = mcp.NewTextContent(text)
			continue
		}
		jsonBytes, err := json.Marshal(content)
		if err != nil {
			logging.Error("ToolHandler", err, "Failed to encode tool result content")
			return mcp.NewToolResultError(fmt.Sprintf("failed to encode tool result: %v", err))
		}
		mcpContent[i] = mcp.NewTextContent(string(jsonBytes))
	}

	return &mcp.CallToolResult{
		Content: mcpContent,
		IsError: result.IsError,
	}
}
