package main

import (
	"fmt"
	"log"
	"os"

	mcpserver "github.com/mark3labs/mcp-go/server"

	"github.com/courseguard/crosscheck/internal/config"
	"github.com/courseguard/crosscheck/internal/version"
	"github.com/courseguard/crosscheck/mcp"
)

const serverName = "crosscheck"

func main() {
	// Set up logging to stderr (MCP uses stdout for JSON-RPC)
	log.SetOutput(os.Stderr)
	log.SetFlags(log.LstdFlags | log.Lshortfile)

	configPath := os.Getenv("CROSSCHECK_CONFIG")
	cfg, err := config.LoadConfig(configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Config error: %v\n", err)
		os.Exit(1)
	}

	server := mcpserver.NewMCPServer(
		serverName,
		version.Short(),
		mcpserver.WithToolCapabilities(true),
		mcpserver.WithLogging(),
	)

	handlers := mcp.NewHandlerSet(mcp.NewDependencies(cfg, configPath, os.Stderr))
	mcp.RegisterTools(server, handlers)

	log.Printf("Starting %s MCP server v%s\n", serverName, version.Short())
	log.Println("Registered tools:")
	log.Println("  - check_submission: one submission against the session history")
	log.Println("  - analyze_cohort: full pairwise cohort analysis")
	log.Println("  - compare_sources: direct comparison of two code fragments")
	log.Println("")
	log.Println("Server ready - waiting for MCP client connection...")

	if err := mcpserver.ServeStdio(server); err != nil {
		fmt.Fprintf(os.Stderr, "Server error: %v\n", err)
		os.Exit(1)
	}
}
