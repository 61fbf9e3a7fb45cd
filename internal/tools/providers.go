package tools

import "github.com/yvain13/servicenow-mcp-sub001/internal/api"

// CatalogOnlyProviders returns all providers without a REST client, for
// callers that only need tool metadata (e.g. the CLI tool listing).
// Executing a tool from these providers would dereference a nil client.
func CatalogOnlyProviders() []api.ToolProvider {
	return []api.ToolProvider{
		NewIncidentProvider(nil),
		NewCatalogProvider(nil),
		NewChangeProvider(nil),
		NewWorkflowProvider(nil),
	}
}
