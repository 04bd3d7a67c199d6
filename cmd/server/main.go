// Command server is the main entry point for the Multilead MCP server. It
// speaks MCP over stdio, so all logging goes to stderr.
package main

import (
	"os"

	"github.com/charmbracelet/log"
	"github.com/joho/godotenv"
	"github.com/mark3labs/mcp-go/server"

	"github.com/vanman2024/multilead-mcp/pkg/config"
	"github.com/vanman2024/multilead-mcp/pkg/multilead"
	"github.com/vanman2024/multilead-mcp/pkg/tools/blacklist"
	"github.com/vanman2024/multilead-mcp/pkg/tools/campaigns"
	"github.com/vanman2024/multilead-mcp/pkg/tools/conversations"
	"github.com/vanman2024/multilead-mcp/pkg/tools/leads"
	"github.com/vanman2024/multilead-mcp/pkg/tools/settings"
	"github.com/vanman2024/multilead-mcp/pkg/tools/statistics"
	"github.com/vanman2024/multilead-mcp/pkg/tools/teams"
	"github.com/vanman2024/multilead-mcp/pkg/tools/users"
	"github.com/vanman2024/multilead-mcp/pkg/tools/webhooks"
)

const version = "1.0.0"

func main() {
	// Missing .env is fine, the environment may already be populated.
	_ = godotenv.Load()

	logger := log.NewWithOptions(os.Stderr, log.Options{
		ReportTimestamp: true,
		Prefix:          "multilead",
	})

	cfg, err := config.Load()
	if err != nil {
		logger.Fatal("Failed to load configuration", "error", err)
	}
	if err := cfg.Validate(); err != nil {
		logger.Fatal("Invalid configuration", "error", err)
	}
	if level, err := log.ParseLevel(cfg.LogLevel); err == nil {
		logger.SetLevel(level)
	}
	log.SetDefault(logger)

	client := multilead.New(cfg)

	mcpServer := server.NewMCPServer(
		"Multilead Open API",
		version,
		server.WithResourceCapabilities(false, false),
		server.WithPromptCapabilities(true),
		server.WithLogging(),
	)

	for _, register := range []func(*server.MCPServer, *multilead.Client){
		leads.Register,
		campaigns.Register,
		statistics.Register,
		blacklist.Register,
		users.Register,
		teams.Register,
		conversations.Register,
		webhooks.Register,
		settings.Register,
	} {
		register(mcpServer, client)
	}

	logger.Info("Starting Multilead MCP server",
		"base_url", cfg.BaseURL,
		"timeout", cfg.Timeout,
		"debug", cfg.Debug,
	)

	if err := server.ServeStdio(mcpServer); err != nil {
		logger.Fatal("Server error", "error", err)
	}

	logger.Info("Server shutdown complete")
}
