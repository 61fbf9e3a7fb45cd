package tools

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/yvain13/servicenow-mcp-sub001/internal/api"
	"github.com/yvain13/servicenow-mcp-sub001/internal/servicenow"
)

const incidentTable = "incident"

// Incident states used by resolve_incident.
const (
	incidentStateResolved = "6"
)

// IncidentProvider exposes incident management tools.
type IncidentProvider struct {
	client *servicenow.Client
}

// NewIncidentProvider creates the incident tool provider.
func NewIncidentProvider(client *servicenow.Client) *IncidentProvider {
	return &IncidentProvider{client: client}
}

// GetTools implements api.ToolProvider.
func (p *IncidentProvider) GetTools() []api.ToolMetadata {
	return []api.ToolMetadata{
		{
			Name:        "create_incident",
			Description: "Create a new incident in ServiceNow",
			Parameters: []api.ParameterMetadata{
				{Name: "short_description", Type: "string", Required: true, Description: "Short description of the incident"},
				{Name: "description", Type: "string", Description: "Detailed description of the incident"},
				{Name: "caller_id", Type: "string", Description: "User who reported the incident (sys_id or user name)"},
				{Name: "category", Type: "string", Description: "Incident category"},
				{Name: "subcategory", Type: "string", Description: "Incident subcategory"},
				{Name: "impact", Type: "number", Description: "Impact (1=high, 2=medium, 3=low)"},
				{Name: "urgency", Type: "number", Description: "Urgency (1=high, 2=medium, 3=low)"},
				{Name: "assignment_group", Type: "string", Description: "Group the incident is assigned to"},
			},
		},
		{
			Name:        "update_incident",
			Description: "Update an existing incident by sys_id or incident number",
			Parameters: []api.ParameterMetadata{
				{Name: "incident_id", Type: "string", Required: true, Description: "Incident sys_id or number (INC...)"},
				{Name: "short_description", Type: "string", Description: "New short description"},
				{Name: "description", Type: "string", Description: "New detailed description"},
				{Name: "state", Type: "string", Description: "New incident state code"},
				{Name: "assignment_group", Type: "string", Description: "New assignment group"},
				{Name: "assigned_to", Type: "string", Description: "New assignee"},
				{Name: "work_notes", Type: "string", Description: "Work note to add with the update"},
			},
		},
		{
			Name:        "add_incident_comment",
			Description: "Add a comment or work note to an incident",
			Parameters: []api.ParameterMetadata{
				{Name: "incident_id", Type: "string", Required: true, Description: "Incident sys_id or number (INC...)"},
				{Name: "comment", Type: "string", Required: true, Description: "Comment text"},
				{Name: "is_work_note", Type: "boolean", Default: false, Description: "Add as an internal work note instead of a customer-visible comment"},
			},
		},
		{
			Name:        "resolve_incident",
			Description: "Resolve an incident with a resolution code and notes",
			Parameters: []api.ParameterMetadata{
				{Name: "incident_id", Type: "string", Required: true, Description: "Incident sys_id or number (INC...)"},
				{Name: "resolution_code", Type: "string", Required: true, Description: "Close code, e.g. 'Solved (Permanently)'"},
				{Name: "resolution_notes", Type: "string", Required: true, Description: "Notes describing the resolution"},
			},
		},
		{
			Name:        "list_incidents",
			Description: "List incidents with optional filters",
			Parameters: []api.ParameterMetadata{
				{Name: "limit", Type: "number", Default: float64(10), Description: "Maximum number of incidents to return"},
				{Name: "offset", Type: "number", Description: "Offset for pagination"},
				{Name: "state", Type: "string", Description: "Filter by state code"},
				{Name: "category", Type: "string", Description: "Filter by category"},
				{Name: "assigned_to", Type: "string", Description: "Filter by assignee"},
				{Name: "query", Type: "string", Description: "Free-text match against number and short description"},
			},
		},
	}
}

// ExecuteTool implements api.ToolProvider.
func (p *IncidentProvider) ExecuteTool(ctx context.Context, toolName string, args map[string]interface{}) (*api.CallToolResult, error) {
	switch toolName {
	case "create_incident":
		return p.createIncident(ctx, args)
	case "update_incident":
		return p.updateIncident(ctx, args)
	case "add_incident_comment":
		return p.addComment(ctx, args)
	case "resolve_incident":
		return p.resolveIncident(ctx, args)
	case "list_incidents":
		return p.listIncidents(ctx, args)
	default:
		return nil, api.NewUnknownToolError(toolName)
	}
}

func (p *IncidentProvider) createIncident(ctx context.Context, args map[string]interface{}) (*api.CallToolResult, error) {
	fields := recordFromArgs(args,
		"short_description", "description", "caller_id", "category",
		"subcategory", "impact", "urgency", "assignment_group")

	record, err := p.client.CreateRecord(ctx, incidentTable, fields)
	if err != nil {
		return nil, err
	}
	return api.NewObjectResult(incidentSummary(record, "Incident created")), nil
}

func (p *IncidentProvider) updateIncident(ctx context.Context, args map[string]interface{}) (*api.CallToolResult, error) {
	// Check the update is non-empty before resolving the id; an INC
	// number costs a lookup, and validation must fail without one.
	fields := recordFromArgs(args,
		"short_description", "description", "state",
		"assignment_group", "assigned_to", "work_notes")
	if len(fields) == 0 {
		return nil, api.NewValidationError("fields", "at least one updatable field must be provided")
	}

	sysID, err := p.resolveIncidentID(ctx, args["incident_id"].(string))
	if err != nil {
		return nil, err
	}

	record, err := p.client.UpdateRecord(ctx, incidentTable, sysID, fields)
	if err != nil {
		return nil, err
	}
	return api.NewObjectResult(incidentSummary(record, "Incident updated")), nil
}

func (p *IncidentProvider) addComment(ctx context.Context, args map[string]interface{}) (*api.CallToolResult, error) {
	sysID, err := p.resolveIncidentID(ctx, args["incident_id"].(string))
	if err != nil {
		return nil, err
	}

	field := "comments"
	if isWorkNote, _ := args["is_work_note"].(bool); isWorkNote {
		field = "work_notes"
	}

	record, err := p.client.UpdateRecord(ctx, incidentTable, sysID, servicenow.Record{
		field: args["comment"],
	})
	if err != nil {
		return nil, err
	}
	return api.NewObjectResult(incidentSummary(record, "Comment added")), nil
}

func (p *IncidentProvider) resolveIncident(ctx context.Context, args map[string]interface{}) (*api.CallToolResult, error) {
	sysID, err := p.resolveIncidentID(ctx, args["incident_id"].(string))
	if err != nil {
		return nil, err
	}

	record, err := p.client.UpdateRecord(ctx, incidentTable, sysID, servicenow.Record{
		"state":       incidentStateResolved,
		"close_code":  args["resolution_code"],
		"close_notes": args["resolution_notes"],
	})
	if err != nil {
		return nil, err
	}
	return api.NewObjectResult(incidentSummary(record, "Incident resolved")), nil
}

func (p *IncidentProvider) listIncidents(ctx context.Context, args map[string]interface{}) (*api.CallToolResult, error) {
	var parts []string
	if state, ok := args["state"].(string); ok && state != "" {
		parts = append(parts, "state="+state)
	}
	if category, ok := args["category"].(string); ok && category != "" {
		parts = append(parts, "category="+category)
	}
	if assignedTo, ok := args["assigned_to"].(string); ok && assignedTo != "" {
		parts = append(parts, "assigned_to="+assignedTo)
	}
	if text, ok := args["query"].(string); ok && text != "" {
		parts = append(parts, fmt.Sprintf("numberLIKE%s^ORshort_descriptionLIKE%s", text, text))
	}

	query := listQuery(args, strings.Join(parts, "^"))
	records, err := p.client.GetRecords(ctx, incidentTable, query)
	if err != nil {
		return nil, err
	}

	incidents := make([]map[string]interface{}, 0, len(records))
	for _, record := range records {
		incidents = append(incidents, incidentSummary(record, ""))
	}
	return api.NewObjectResult(map[string]interface{}{
		"incidents": incidents,
		"count":     len(incidents),
	}), nil
}

// resolveIncidentID accepts either a sys_id or an incident number. A
// number (INC...) costs one lookup query before the actual operation.
func (p *IncidentProvider) resolveIncidentID(ctx context.Context, incidentID string) (string, error) {
	if !strings.HasPrefix(strings.ToUpper(incidentID), "INC") {
		return incidentID, nil
	}

	query := url.Values{
		"sysparm_query": {"number=" + incidentID},
		"sysparm_limit": {"1"},
	}
	records, err := p.client.GetRecords(ctx, incidentTable, query)
	if err != nil {
		return "", err
	}
	if len(records) == 0 {
		return "", api.NewUpstreamError(http.StatusNotFound, fmt.Sprintf("no incident found with number %s", incidentID))
	}
	return records[0].String("sys_id"), nil
}

// incidentSummary maps a raw incident record into the stable result
// shape the tools return, independent of ServiceNow's field names.
func incidentSummary(record servicenow.Record, message string) map[string]interface{} {
	summary := map[string]interface{}{
		"sys_id":            record.String("sys_id"),
		"number":            record.String("number"),
		"short_description": record.String("short_description"),
		"state":             record.String("state"),
		"priority":          record.String("priority"),
	}
	if message != "" {
		summary["message"] = message
	}
	return summary
}
