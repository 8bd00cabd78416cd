package main

import (
	"fmt"
	"log/slog"
	"os"

	mcpserver "github.com/mark3labs/mcp-go/server"
	flag "github.com/spf13/pflag"

	"github.com/ludo-technologies/codesim/internal/config"
	"github.com/ludo-technologies/codesim/internal/logging"
	"github.com/ludo-technologies/codesim/internal/version"
	"github.com/ludo-technologies/codesim/mcp"
)

const serverName = "codesim"

func main() {
	configPath := flag.StringP("config", "c", "", "Path to configuration file")
	verbose := flag.BoolP("verbose", "v", false, "Enable debug logging")
	flag.Parse()

	// MCP uses stdout for JSON-RPC, so logs go to stderr
	slog.SetDefault(logging.NewLogger(os.Stderr, "info", *verbose))

	cfg, used, err := config.Load(*configPath, ".")
	if err != nil {
		fmt.Fprintf(os.Stderr, "Configuration error: %v\n", err)
		os.Exit(1)
	}
	slog.SetDefault(logging.NewLogger(os.Stderr, cfg.Log.Level, *verbose))

	server := mcpserver.NewMCPServer(
		serverName,
		version.Short(),
		mcpserver.WithToolCapabilities(true),
		mcpserver.WithLogging(),
	)

	mcp.RegisterTools(server, mcp.NewHandlerSet(mcp.NewDependencies(cfg, used)))

	slog.Info("starting MCP server",
		"name", serverName,
		"version", version.Short(),
		"config_file", used,
		"tools", mcp.ToolNames)

	if err := mcpserver.ServeStdio(server); err != nil {
		fmt.Fprintf(os.Stderr, "Server error: %v\n", err)
		os.Exit(1)
	}
}
