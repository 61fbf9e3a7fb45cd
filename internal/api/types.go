package api

import "context"

// CallToolResult represents the result of a tool call.
type CallToolResult struct {
	Content []interface{} `json:"content"`
	IsError bool          `json:"isError,omitempty"`
}

// ToolMetadata describes a tool that can be exposed over MCP.
type ToolMetadata struct {
	Name        string // e.g., "create_incident", "list_catalog_items"
	Description string
	Parameters  []ParameterMetadata
}

// ParameterMetadata describes a single tool parameter.
type ParameterMetadata struct {
	Name        string
	Type        string // "string", "number", "boolean", "object", "array"
	Required    bool
	Description string
	Default     interface{}
}

// ToolProvider is implemented by each tool package (incidents, catalog,
// change requests, workflows). The registry binds every tool a provider
// declares and routes dispatches back through ExecuteTool.
type ToolProvider interface {
	// GetTools returns all tools this provider offers.
	GetTools() []ToolMetadata

	// ExecuteTool executes a tool by name. Arguments have already been
	// validated against the tool's declared parameters.
	ExecuteTool(ctx context.Context, toolName string, args map[string]interface{}) (*CallToolResult, error)
}

// NewObjectResult builds a successful result carrying a structured payload.
// The server layer marshals non-string content to JSON for the MCP client.
func NewObjectResult(payload interface{}) *CallToolResult {
	return &CallToolResult{Content: []interface{}{payload}}
}
