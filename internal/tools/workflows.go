package tools

import (
	"context"

	"github.com/yvain13/servicenow-mcp-sub001/internal/api"
	"github.com/yvain13/servicenow-mcp-sub001/internal/servicenow"
)

const (
	workflowTable         = "wf_workflow"
	workflowActivityTable = "wf_activity"
)

// WorkflowProvider exposes read-only workflow inspection tools.
type WorkflowProvider struct {
	client *servicenow.Client
}

// NewWorkflowProvider creates the workflow tool provider.
func NewWorkflowProvider(client *servicenow.Client) *WorkflowProvider {
	return &WorkflowProvider{client: client}
}

// GetTools implements api.ToolProvider.
func (p *WorkflowProvider) GetTools() []api.ToolMetadata {
	return []api.ToolMetadata{
		{
			Name:        "list_workflows",
			Description: "List workflows defined in the instance",
			Parameters: []api.ParameterMetadata{
				{Name: "limit", Type: "number", Default: float64(10), Description: "Maximum number of workflows to return"},
				{Name: "offset", Type: "number", Description: "Offset for pagination"},
				{Name: "active", Type: "boolean", Description: "Filter by active state"},
			},
		},
		{
			Name:        "get_workflow_details",
			Description: "Get details of a specific workflow",
			Parameters: []api.ParameterMetadata{
				{Name: "workflow_id", Type: "string", Required: true, Description: "Workflow sys_id"},
			},
		},
		{
			Name:        "list_workflow_activities",
			Description: "List the activities of a workflow",
			Parameters: []api.ParameterMetadata{
				{Name: "workflow_id", Type: "string", Required: true, Description: "Workflow sys_id"},
				{Name: "limit", Type: "number", Default: float64(50), Description: "Maximum number of activities to return"},
			},
		},
	}
}

// ExecuteTool implements api.ToolProvider.
func (p *WorkflowProvider) ExecuteTool(ctx context.Context, toolName string, args map[string]interface{}) (*api.CallToolResult, error) {
	switch toolName {
	case "list_workflows":
		return p.listWorkflows(ctx, args)
	case "get_workflow_details":
		return p.getWorkflow(ctx, args)
	case "list_workflow_activities":
		return p.listActivities(ctx, args)
	default:
		return nil, api.NewUnknownToolError(toolName)
	}
}

func (p *WorkflowProvider) listWorkflows(ctx context.Context, args map[string]interface{}) (*api.CallToolResult, error) {
	var sysparmQuery string
	if active, ok := args["active"].(bool); ok {
		if active {
			sysparmQuery = "active=true"
		} else {
			sysparmQuery = "active=false"
		}
	}

	records, err := p.client.GetRecords(ctx, workflowTable, listQuery(args, sysparmQuery))
	if err != nil {
		return nil, err
	}

	workflows := make([]map[string]interface{}, 0, len(records))
	for _, record := range records {
		workflows = append(workflows, workflowSummary(record))
	}
	return api.NewObjectResult(map[string]interface{}{
		"workflows": workflows,
		"count":     len(workflows),
	}), nil
}

func (p *WorkflowProvider) getWorkflow(ctx context.Context, args map[string]interface{}) (*api.CallToolResult, error) {
	record, err := p.client.GetRecord(ctx, workflowTable, args["workflow_id"].(string))
	if err != nil {
		return nil, err
	}

	workflow := workflowSummary(record)
	workflow["description"] = record.String("description")
	return api.NewObjectResult(workflow), nil
}

func (p *WorkflowProvider) listActivities(ctx context.Context, args map[string]interface{}) (*api.CallToolResult, error) {
	// Dot-walk through the published workflow version to its parent.
	sysparmQuery := "workflow_version.workflow=" + args["workflow_id"].(string)

	records, err := p.client.GetRecords(ctx, workflowActivityTable, listQuery(args, sysparmQuery))
	if err != nil {
		return nil, err
	}

	activities := make([]map[string]interface{}, 0, len(records))
	for _, record := range records {
		activities = append(activities, map[string]interface{}{
			"sys_id": record.String("sys_id"),
			"name":   record.String("name"),
			"order":  record.String("order"),
		})
	}
	return api.NewObjectResult(map[string]interface{}{
		"activities": activities,
		"count":      len(activities),
	}), nil
}

func workflowSummary(record servicenow.Record) map[string]interface{} {
	return map[string]interface{}{
		"sys_id": record.String("sys_id"),
		"name":   record.String("name"),
		"table":  record.String("table"),
		"active": record.String("active"),
	}
}
