package formatting

import (
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"

	"github.com/yvain13/servicenow-mcp-sub001/internal/api"
)

// ToolsTable renders the tool catalog as a table for the CLI.
func ToolsTable(tools []api.ToolMetadata) string {
	t := table.NewWriter()
	t.SetStyle(table.StyleLight)
	t.AppendHeader(table.Row{"Tool", "Required", "Description"})
	t.SetColumnConfigs([]table.ColumnConfig{
		{Number: 3, WidthMax: 60, WidthMaxEnforcer: text.WrapSoft},
	})

	for _, tool := range tools {
		t.AppendRow(table.Row{tool.Name, requiredParams(tool), tool.Description})
	}

	return t.Render()
}

// ToolDetail renders one tool with its full parameter list.
func ToolDetail(tool api.ToolMetadata) string {
	t := table.NewWriter()
	t.SetStyle(table.StyleLight)
	t.SetTitle(tool.Name)
	t.AppendHeader(table.Row{"Parameter", "Type", "Required", "Description"})

	for _, param := range tool.Parameters {
		required := ""
		if param.Required {
			required = "yes"
		}
		t.AppendRow(table.Row{param.Name, param.Type, required, param.Description})
	}

	return tool.Description + "\n" + t.Render()
}

func requiredParams(tool api.ToolMetadata) string {
	var names []string
	for _, param := range tool.Parameters {
		if param.Required {
			names = append(names, param.Name)
		}
	}
	return strings.Join(names, ", ")
}
