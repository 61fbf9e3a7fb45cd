package tools

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/yvain13/servicenow-mcp-sub001/internal/api"
	"github.com/yvain13/servicenow-mcp-sub001/pkg/logging"
)

// Registry owns the mapping of tool name to provider. It is an explicit
// object constructed at server start and passed into the dispatch path;
// there is no package-level registration.
type Registry struct {
	mu      sync.RWMutex
	entries map[string]registryEntry
}

type registryEntry struct {
	meta     api.ToolMetadata
	provider api.ToolProvider
}

// NewRegistry creates an empty tool registry.
func NewRegistry() *Registry {
	return &Registry{entries: make(map[string]registryEntry)}
}

// AddProvider binds every tool the provider declares. Duplicate tool
// names are a wiring bug and are rejected.
func (r *Registry) AddProvider(provider api.ToolProvider) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, meta := range provider.GetTools() {
		if _, exists := r.entries[meta.Name]; exists {
			return fmt.Errorf("tool %q registered twice", meta.Name)
		}
		r.entries[meta.Name] = registryEntry{meta: meta, provider: provider}
		logging.Debug("Registry", "Registered tool %s", meta.Name)
	}
	return nil
}

// Tools returns the metadata of all registered tools, sorted by name.
func (r *Registry) Tools() []api.ToolMetadata {
	r.mu.RLock()
	defer r.mu.RUnlock()

	tools := make([]api.ToolMetadata, 0, len(r.entries))
	for _, entry := range r.entries {
		tools = append(tools, entry.meta)
	}
	sort.Slice(tools, func(i, j int) bool { return tools[i].Name < tools[j].Name })
	return tools
}

// Dispatch routes a tool call to its provider. The order is fixed:
// unknown tool, then parameter validation, then execution. Neither an
// unknown name nor invalid parameters ever reach the upstream API.
func (r *Registry) Dispatch(ctx context.Context, toolName string, args map[string]interface{}) (*api.CallToolResult, error) {
	r.mu.RLock()
	entry, ok := r.entries[toolName]
	r.mu.RUnlock()
	if !ok {
		return nil, api.NewUnknownToolError(toolName)
	}

	validated, err := api.ValidateParams(entry.meta.Parameters, args)
	if err != nil {
		return nil, err
	}

	return entry.provider.ExecuteTool(ctx, toolName, validated)
}
