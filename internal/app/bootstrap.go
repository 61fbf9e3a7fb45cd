package app

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/fsnotify/fsnotify"

	"github.com/yvain13/servicenow-mcp-sub001/internal/api"
	"github.com/yvain13/servicenow-mcp-sub001/internal/auth"
	"github.com/yvain13/servicenow-mcp-sub001/internal/config"
	"github.com/yvain13/servicenow-mcp-sub001/internal/server"
	"github.com/yvain13/servicenow-mcp-sub001/internal/servicenow"
	"github.com/yvain13/servicenow-mcp-sub001/internal/tools"
	"github.com/yvain13/servicenow-mcp-sub001/pkg/logging"
)

// Application bootstraps and runs the ServiceNow MCP server.
//
// Bootstrap is two-phase: NewApplication loads and validates all
// configuration and wires auth manager, REST client, tool registry and
// MCP server; Run starts the transport and blocks until shutdown.
type Application struct {
	cfg        config.Config
	configPath string
	server     *server.Server
}

// NewApplication performs the complete bootstrap sequence. A ConfigError
// here is fatal; the process must not start serving with an incomplete
// configuration.
func NewApplication(opts Options) (*Application, error) {
	logLevel := logging.LevelInfo
	if opts.Debug {
		logLevel = logging.LevelDebug
	}
	// Always log to stderr: on the stdio transport, stdout carries MCP
	// protocol frames.
	logging.Init(logLevel, os.Stderr)

	configPath := opts.ConfigPath
	if configPath == "" {
		defaultPath, err := config.DefaultConfigPath()
		if err != nil {
			return nil, err
		}
		configPath = defaultPath
	}

	cfg, err := config.LoadConfig(configPath)
	if err != nil {
		logging.Error("Bootstrap", err, "Failed to load configuration from %s", configPath)
		return nil, err
	}

	applyOverrides(&cfg, opts)
	if err := cfg.Validate(); err != nil {
		logging.Error("Bootstrap", err, "Configuration invalid after command-line overrides")
		return nil, err
	}

	if cfg.Debug && !opts.Debug {
		logging.Init(logging.LevelDebug, os.Stderr)
	}

	authManager, err := auth.NewManager(cfg, nil)
	if err != nil {
		return nil, err
	}
	client := servicenow.NewClient(cfg, authManager)

	registry := tools.NewRegistry()
	for _, provider := range toolProviders(client) {
		if err := registry.AddProvider(provider); err != nil {
			return nil, fmt.Errorf("failed to register tools: %w", err)
		}
	}

	logging.Info("Bootstrap", "Configured for instance %s with %s auth", cfg.InstanceURL, cfg.Auth.Type)

	return &Application{
		cfg:        cfg,
		configPath: configPath,
		server:     server.NewServer(cfg, registry),
	}, nil
}

// toolProviders returns every tool provider the server exposes.
func toolProviders(client *servicenow.Client) []api.ToolProvider {
	return []api.ToolProvider{
		tools.NewIncidentProvider(client),
		tools.NewCatalogProvider(client),
		tools.NewChangeProvider(client),
		tools.NewWorkflowProvider(client),
	}
}

// applyOverrides copies command-line settings over the loaded config.
func applyOverrides(cfg *config.Config, opts Options) {
	if opts.Debug {
		cfg.Debug = true
	}
	if opts.Transport != "" {
		cfg.Transport = opts.Transport
	}
	if opts.Host != "" {
		cfg.Host = opts.Host
	}
	if opts.Port != 0 {
		cfg.Port = opts.Port
	}
}

// Run starts the MCP server and blocks until the context is cancelled
// or the transport ends on its own (stdio EOF). Shutdown is graceful.
func (a *Application) Run(ctx context.Context) error {
	if err := a.server.Start(ctx); err != nil {
		return err
	}
	logging.Info("App", "Serving MCP on %s", a.server.Endpoint())

	stopWatcher := a.watchConfig(ctx)
	defer stopWatcher()

	select {
	case <-ctx.Done():
	case <-a.server.Done():
	}

	return a.server.Stop(context.Background())
}

// watchConfig watches the config file and logs when it changes. Loaded
// configuration is immutable for the process lifetime, so the only
// sensible reaction is to tell the operator a restart is needed.
func (a *Application) watchConfig(ctx context.Context) func() {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		logging.Warn("App", "Config watcher unavailable: %v", err)
		return func() {}
	}

	configFile := filepath.Join(a.configPath, "config.yaml")
	if err := watcher.Add(a.configPath); err != nil {
		logging.Debug("App", "Not watching %s: %v", a.configPath, err)
		watcher.Close()
		return func() {}
	}

	go func() {
		for {
			select {
			case <-ctx.Done():
				return
			case event, ok := <-watcher.Events:
				if !ok {
					return
				}
				if event.Name == configFile && event.Op.Has(fsnotify.Write|fsnotify.Create) {
					logging.Warn("App", "Configuration file changed; restart to apply the new settings")
				}
			case err, ok := <-watcher.Errors:
				if !ok {
					return
				}
				logging.Debug("App", "Config watcher error: %v", err)
			}
		}
	}()

	return func() { watcher.Close() }
}
