package cmd

import (
	"context"
	"fmt"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/yvain13/servicenow-mcp-sub001/internal/app"
)

// serveDebug enables verbose logging across the application.
var serveDebug bool

// serveTransport selects the MCP transport (stdio, sse, streamable-http).
var serveTransport string

// serveHost and servePort set the bind address for HTTP transports.
var serveHost string
var servePort int

// serveConfigPath points at a custom configuration directory containing
// config.yaml. When unset, the user-level default directory is used.
var serveConfigPath string

// serveCmd starts the MCP server. This is the main command of
// servicenow-mcp.
var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the ServiceNow MCP server",
	Long: `Starts the MCP server and serves the ServiceNow tools over the
configured transport.

The instance URL and credentials come from config.yaml in the
configuration directory, overridden by SERVICENOW_* environment
variables:

  SERVICENOW_INSTANCE_URL   instance base URL (required)
  SERVICENOW_AUTH_TYPE      basic | oauth | apikey
  SERVICENOW_USERNAME       basic/oauth username
  SERVICENOW_PASSWORD       basic/oauth password
  SERVICENOW_CLIENT_ID      oauth client id
  SERVICENOW_CLIENT_SECRET  oauth client secret
  SERVICENOW_TOKEN_URL      oauth token endpoint (optional)
  SERVICENOW_API_KEY        API key
  SERVICENOW_API_KEY_HEADER API key header name (optional)

With the stdio transport (the default) the server speaks MCP on
stdin/stdout and logs to stderr, which is what MCP clients like IDE
integrations expect. The sse and streamable-http transports bind an
HTTP endpoint instead.`,
	Args: cobra.NoArgs,
	RunE: runServe,
}

func runServe(cmd *cobra.Command, args []string) error {
	opts := app.Options{
		Debug:      serveDebug,
		ConfigPath: serveConfigPath,
		Transport:  serveTransport,
		Host:       serveHost,
		Port:       servePort,
	}

	application, err := app.NewApplication(opts)
	if err != nil {
		return fmt.Errorf("failed to initialize application: %w", err)
	}

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	return application.Run(ctx)
}

func init() {
	rootCmd.AddCommand(serveCmd)

	serveCmd.Flags().BoolVar(&serveDebug, "debug", false, "Enable debug logging")
	serveCmd.Flags().StringVar(&serveTransport, "transport", "", "MCP transport: stdio, sse, or streamable-http")
	serveCmd.Flags().StringVar(&serveHost, "host", "", "Bind host for HTTP transports")
	serveCmd.Flags().IntVar(&servePort, "port", 0, "Listen port for HTTP transports")
	serveCmd.Flags().StringVar(&serveConfigPath, "config-path", "", "Custom configuration directory path")
}
