package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/yvain13/servicenow-mcp-sub001/internal/formatting"
	"github.com/yvain13/servicenow-mcp-sub001/internal/tools"
)

// toolsCmd prints the tool catalog. The catalog is static metadata, so
// no instance connection or credentials are needed.
var toolsCmd = &cobra.Command{
	Use:   "tools [tool-name]",
	Short: "List the tools this server exposes",
	Long: `Prints the catalog of ServiceNow tools the server exposes over MCP.
With a tool name argument, prints that tool's parameters instead.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runTools,
}

func runTools(cmd *cobra.Command, args []string) error {
	registry := tools.NewRegistry()
	for _, provider := range tools.CatalogOnlyProviders() {
		if err := registry.AddProvider(provider); err != nil {
			return err
		}
	}

	if len(args) == 1 {
		for _, meta := range registry.Tools() {
			if meta.Name == args[0] {
				fmt.Fprintln(cmd.OutOrStdout(), formatting.ToolDetail(meta))
				return nil
			}
		}
		return fmt.Errorf("unknown tool: %s", args[0])
	}

	fmt.Fprintln(cmd.OutOrStdout(), formatting.ToolsTable(registry.Tools()))
	return nil
}

func init() {
	rootCmd.AddCommand(toolsCmd)
}
