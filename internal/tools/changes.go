package tools

import (
	"context"
	"fmt"
	"strings"

	"github.com/yvain13/servicenow-mcp-sub001/internal/api"
	"github.com/yvain13/servicenow-mcp-sub001/internal/servicenow"
)

const changeTable = "change_request"

var changeTypes = map[string]bool{
	"normal":    true,
	"standard":  true,
	"emergency": true,
}

// ChangeProvider exposes change request management tools.
type ChangeProvider struct {
	client *servicenow.Client
}

// NewChangeProvider creates the change request tool provider.
func NewChangeProvider(client *servicenow.Client) *ChangeProvider {
	return &ChangeProvider{client: client}
}

// GetTools implements api.ToolProvider.
func (p *ChangeProvider) GetTools() []api.ToolMetadata {
	return []api.ToolMetadata{
		{
			Name:        "create_change_request",
			Description: "Create a new change request in ServiceNow",
			Parameters: []api.ParameterMetadata{
				{Name: "short_description", Type: "string", Required: true, Description: "Short description of the change"},
				{Name: "type", Type: "string", Required: true, Description: "Change type: normal, standard, or emergency"},
				{Name: "description", Type: "string", Description: "Detailed description of the change"},
				{Name: "category", Type: "string", Description: "Change category"},
				{Name: "priority", Type: "number", Description: "Priority (1=critical ... 4=low)"},
				{Name: "assignment_group", Type: "string", Description: "Group responsible for the change"},
				{Name: "start_date", Type: "string", Description: "Planned start (YYYY-MM-DD HH:MM:SS)"},
				{Name: "end_date", Type: "string", Description: "Planned end (YYYY-MM-DD HH:MM:SS)"},
			},
		},
		{
			Name:        "update_change_request",
			Description: "Update an existing change request",
			Parameters: []api.ParameterMetadata{
				{Name: "change_id", Type: "string", Required: true, Description: "Change request sys_id"},
				{Name: "short_description", Type: "string", Description: "New short description"},
				{Name: "description", Type: "string", Description: "New detailed description"},
				{Name: "state", Type: "string", Description: "New state code"},
				{Name: "assignment_group", Type: "string", Description: "New assignment group"},
				{Name: "start_date", Type: "string", Description: "New planned start"},
				{Name: "end_date", Type: "string", Description: "New planned end"},
				{Name: "work_notes", Type: "string", Description: "Work note to add with the update"},
			},
		},
		{
			Name:        "list_change_requests",
			Description: "List change requests with optional filters",
			Parameters: []api.ParameterMetadata{
				{Name: "limit", Type: "number", Default: float64(10), Description: "Maximum number of change requests to return"},
				{Name: "offset", Type: "number", Description: "Offset for pagination"},
				{Name: "state", Type: "string", Description: "Filter by state code"},
				{Name: "type", Type: "string", Description: "Filter by change type"},
				{Name: "query", Type: "string", Description: "Free-text match against number and short description"},
			},
		},
		{
			Name:        "approve_change_request",
			Description: "Approve a change request",
			Parameters: []api.ParameterMetadata{
				{Name: "change_id", Type: "string", Required: true, Description: "Change request sys_id"},
				{Name: "comments", Type: "string", Description: "Approval comment"},
			},
		},
	}
}

// ExecuteTool implements api.ToolProvider.
func (p *ChangeProvider) ExecuteTool(ctx context.Context, toolName string, args map[string]interface{}) (*api.CallToolResult, error) {
	switch toolName {
	case "create_change_request":
		return p.createChange(ctx, args)
	case "update_change_request":
		return p.updateChange(ctx, args)
	case "list_change_requests":
		return p.listChanges(ctx, args)
	case "approve_change_request":
		return p.approveChange(ctx, args)
	default:
		return nil, api.NewUnknownToolError(toolName)
	}
}

func (p *ChangeProvider) createChange(ctx context.Context, args map[string]interface{}) (*api.CallToolResult, error) {
	changeType := args["type"].(string)
	if !changeTypes[changeType] {
		return nil, api.NewValidationError("type", fmt.Sprintf("must be one of normal, standard, emergency; got %q", changeType))
	}

	fields := recordFromArgs(args,
		"short_description", "type", "description", "category",
		"priority", "assignment_group", "start_date", "end_date")

	record, err := p.client.CreateRecord(ctx, changeTable, fields)
	if err != nil {
		return nil, err
	}
	return api.NewObjectResult(changeSummary(record, "Change request created")), nil
}

func (p *ChangeProvider) updateChange(ctx context.Context, args map[string]interface{}) (*api.CallToolResult, error) {
	fields := recordFromArgs(args,
		"short_description", "description", "state",
		"assignment_group", "start_date", "end_date", "work_notes")
	if len(fields) == 0 {
		return nil, api.NewValidationError("fields", "at least one updatable field must be provided")
	}

	record, err := p.client.UpdateRecord(ctx, changeTable, args["change_id"].(string), fields)
	if err != nil {
		return nil, err
	}
	return api.NewObjectResult(changeSummary(record, "Change request updated")), nil
}

func (p *ChangeProvider) listChanges(ctx context.Context, args map[string]interface{}) (*api.CallToolResult, error) {
	var parts []string
	if state := stringArg(args, "state"); state != "" {
		parts = append(parts, "state="+state)
	}
	if changeType := stringArg(args, "type"); changeType != "" {
		parts = append(parts, "type="+changeType)
	}
	if text := stringArg(args, "query"); text != "" {
		parts = append(parts, fmt.Sprintf("numberLIKE%s^ORshort_descriptionLIKE%s", text, text))
	}

	records, err := p.client.GetRecords(ctx, changeTable, listQuery(args, strings.Join(parts, "^")))
	if err != nil {
		return nil, err
	}

	changes := make([]map[string]interface{}, 0, len(records))
	for _, record := range records {
		changes = append(changes, changeSummary(record, ""))
	}
	return api.NewObjectResult(map[string]interface{}{
		"change_requests": changes,
		"count":           len(changes),
	}), nil
}

func (p *ChangeProvider) approveChange(ctx context.Context, args map[string]interface{}) (*api.CallToolResult, error) {
	fields := servicenow.Record{"approval": "approved"}
	if comments := stringArg(args, "comments"); comments != "" {
		fields["approval_history"] = comments
	}

	record, err := p.client.UpdateRecord(ctx, changeTable, args["change_id"].(string), fields)
	if err != nil {
		return nil, err
	}
	return api.NewObjectResult(changeSummary(record, "Change request approved")), nil
}

func changeSummary(record servicenow.Record, message string) map[string]interface{} {
	summary := map[string]interface{}{
		"sys_id":            record.String("sys_id"),
		"number":            record.String("number"),
		"short_description": record.String("short_description"),
		"type":              record.String("type"),
		"state":             record.String("state"),
		"approval":          record.String("approval"),
	}
	if message != "" {
		summary["message"] = message
	}
	return summary
}
