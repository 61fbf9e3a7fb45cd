package tools

import (
	"context"
	"fmt"
	"strings"

	"github.com/yvain13/servicenow-mcp-sub001/internal/api"
	"github.com/yvain13/servicenow-mcp-sub001/internal/servicenow"
)

const (
	catalogItemTable     = "sc_cat_item"
	catalogCategoryTable = "sc_category"
)

// CatalogProvider exposes service catalog browsing tools.
type CatalogProvider struct {
	client *servicenow.Client
}

// NewCatalogProvider creates the catalog tool provider.
func NewCatalogProvider(client *servicenow.Client) *CatalogProvider {
	return &CatalogProvider{client: client}
}

// GetTools implements api.ToolProvider.
func (p *CatalogProvider) GetTools() []api.ToolMetadata {
	return []api.ToolMetadata{
		{
			Name:        "list_catalog_items",
			Description: "List service catalog items with optional filters",
			Parameters: []api.ParameterMetadata{
				{Name: "limit", Type: "number", Default: float64(10), Description: "Maximum number of items to return"},
				{Name: "offset", Type: "number", Description: "Offset for pagination"},
				{Name: "category", Type: "string", Description: "Filter by category sys_id"},
				{Name: "query", Type: "string", Description: "Free-text match against item name and description"},
			},
		},
		{
			Name:        "get_catalog_item",
			Description: "Get details of a specific catalog item",
			Parameters: []api.ParameterMetadata{
				{Name: "item_id", Type: "string", Required: true, Description: "Catalog item sys_id"},
			},
		},
		{
			Name:        "list_catalog_categories",
			Description: "List service catalog categories",
			Parameters: []api.ParameterMetadata{
				{Name: "limit", Type: "number", Default: float64(10), Description: "Maximum number of categories to return"},
				{Name: "offset", Type: "number", Description: "Offset for pagination"},
				{Name: "query", Type: "string", Description: "Free-text match against category title"},
			},
		},
	}
}

// ExecuteTool implements api.ToolProvider.
func (p *CatalogProvider) ExecuteTool(ctx context.Context, toolName string, args map[string]interface{}) (*api.CallToolResult, error) {
	switch toolName {
	case "list_catalog_items":
		return p.listItems(ctx, args)
	case "get_catalog_item":
		return p.getItem(ctx, args)
	case "list_catalog_categories":
		return p.listCategories(ctx, args)
	default:
		return nil, api.NewUnknownToolError(toolName)
	}
}

func (p *CatalogProvider) listItems(ctx context.Context, args map[string]interface{}) (*api.CallToolResult, error) {
	parts := []string{"active=true"}
	if category := stringArg(args, "category"); category != "" {
		parts = append(parts, "category="+category)
	}
	if text := stringArg(args, "query"); text != "" {
		parts = append(parts, fmt.Sprintf("nameLIKE%s^ORshort_descriptionLIKE%s", text, text))
	}

	records, err := p.client.GetRecords(ctx, catalogItemTable, listQuery(args, strings.Join(parts, "^")))
	if err != nil {
		return nil, err
	}

	items := make([]map[string]interface{}, 0, len(records))
	for _, record := range records {
		items = append(items, catalogItemSummary(record))
	}
	return api.NewObjectResult(map[string]interface{}{
		"items": items,
		"count": len(items),
	}), nil
}

func (p *CatalogProvider) getItem(ctx context.Context, args map[string]interface{}) (*api.CallToolResult, error) {
	record, err := p.client.GetRecord(ctx, catalogItemTable, args["item_id"].(string))
	if err != nil {
		return nil, err
	}

	item := catalogItemSummary(record)
	item["description"] = record.String("description")
	item["delivery_time"] = record.String("delivery_time")
	return api.NewObjectResult(item), nil
}

func (p *CatalogProvider) listCategories(ctx context.Context, args map[string]interface{}) (*api.CallToolResult, error) {
	var sysparmQuery string
	if text := stringArg(args, "query"); text != "" {
		sysparmQuery = "titleLIKE" + text
	}

	records, err := p.client.GetRecords(ctx, catalogCategoryTable, listQuery(args, sysparmQuery))
	if err != nil {
		return nil, err
	}

	categories := make([]map[string]interface{}, 0, len(records))
	for _, record := range records {
		categories = append(categories, map[string]interface{}{
			"sys_id":      record.String("sys_id"),
			"title":       record.String("title"),
			"description": record.String("description"),
		})
	}
	return api.NewObjectResult(map[string]interface{}{
		"categories": categories,
		"count":      len(categories),
	}), nil
}

func catalogItemSummary(record servicenow.Record) map[string]interface{} {
	return map[string]interface{}{
		"sys_id":            record.String("sys_id"),
		"name":              record.String("name"),
		"short_description": record.String("short_description"),
		"category":          record.String("category"),
		"price":             record.String("price"),
	}
}
