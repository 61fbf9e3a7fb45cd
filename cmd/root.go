package cmd

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/yvain13/servicenow-mcp-sub001/internal/api"
)

// Exit codes for CLI commands.
const (
	// ExitCodeSuccess indicates successful execution.
	ExitCodeSuccess = 0
	// ExitCodeError indicates a general error.
	ExitCodeError = 1
	// ExitCodeConfigError indicates the server refused to start due to
	// missing or invalid configuration.
	ExitCodeConfigError = 2
)

// rootCmd represents the base command for the servicenow-mcp application.
var rootCmd = &cobra.Command{
	Use:   "servicenow-mcp",
	Short: "MCP server for ServiceNow",
	Long: `servicenow-mcp exposes a ServiceNow instance's REST API (incidents,
service catalog, change requests, workflows) as schema-validated tools
over the Model Context Protocol, so AI assistants can operate on the
instance through a single server.`,
	// SilenceUsage prevents Cobra from printing the usage message on
	// errors that are handled by the application.
	SilenceUsage: true,
}

// SetVersion sets the version for the root command. Called from main
// to inject the build-time version.
func SetVersion(v string) {
	rootCmd.Version = v
}

// Execute is the main entry point for the CLI application.
func Execute() {
	rootCmd.SetVersionTemplate(`{{printf "servicenow-mcp version %s\n" .Version}}`)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(getExitCode(err))
	}
}

// getExitCode maps error types to semantic exit codes for scripting.
func getExitCode(err error) int {
	if api.IsConfigError(err) {
		return ExitCodeConfigError
	}
	return ExitCodeError
}

func init() {
	rootCmd.AddCommand(newVersionCmd())
	rootCmd.AddCommand(newSelfUpdateCmd())
}
