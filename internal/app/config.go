package app

// Options carries the command-line settings that shape a server run.
// Anything left at its zero value defers to the configuration file and
// environment.
type Options struct {
	// Debug enables verbose logging.
	Debug bool

	// ConfigPath is the configuration directory. Empty selects the
	// user-level default (~/.config/servicenow-mcp).
	ConfigPath string

	// Transport overrides the MCP transport (stdio, sse,
	// streamable-http) when non-empty.
	Transport string

	// Host and Port override the bind address for HTTP transports.
	Host string
	Port int
}
