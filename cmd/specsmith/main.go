// Specsmith: Spec-Driven Development MCP Server
//
// An MCP server that integrates with any AI coding tool
// (Claude Code, OpenCode, Gemini CLI, Codex, Cursor, VS Code Copilot)
// and turns structured tool calls into requirements, design, and
// implementation-plan documents.
//
// Usage:
//
//	specsmith serve    # Start MCP server (stdio transport)
//	specsmith update   # Update to the latest version
package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/mark3labs/mcp-go/server"

	"github.com/specsmith/specsmith/internal/config"
	"github.com/specsmith/specsmith/internal/logging"
	specserver "github.com/specsmith/specsmith/internal/server"
	"github.com/specsmith/specsmith/internal/updater"
)

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	switch os.Args[1] {
	case "serve":
		if err := run(); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
	case "update":
		runUpdate()
	case "--help", "-h", "help":
		printUsage()
		os.Exit(0)
	case "--version", "-v", "version":
		fmt.Printf("specsmith v%s\n", specserver.Version)
		os.Exit(0)
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n\n", os.Args[1])
		printUsage()
		os.Exit(1)
	}
}

func run() error {
	// Optional .env for local development; missing files are fine.
	_ = godotenv.Load()

	cfg, err := config.Load(specserver.Version)
	if err != nil {
		return fmt.Errorf("loading configuration: %w", err)
	}

	logging.Info("starting server",
		"name", cfg.ServerName,
		"version", cfg.ServerVersion,
		"output_dir", cfg.OutputDir,
	)

	s, cleanup, err := specserver.New(cfg)
	if err != nil {
		return fmt.Errorf("creating server: %w", err)
	}
	defer cleanup()

	// Background version check — prints to stderr so it doesn't
	// interfere with MCP's stdio transport on stdout.
	go checkForUpdates()

	// ServeStdio handles SIGINT/SIGTERM itself and returns on shutdown,
	// so the deferred cleanup stops the limiter sweeper.
	return server.ServeStdio(s)
}

// checkForUpdates runs a non-blocking version check and prints a notice
// to stderr if an update is available. This runs in a goroutine during
// "serve" and is best-effort — network failures are silently ignored.
func checkForUpdates() {
	result := updater.CheckVersion(specserver.Version)
	if result.UpdateAvailable {
		fmt.Fprintf(os.Stderr,
			"\n  📦 Update available: v%s → v%s\n"+
				"     Run: specsmith update\n"+
				"     Release: %s\n\n",
			result.CurrentVersion, result.LatestVersion, result.ReleaseURL,
		)
	}
}

// runUpdate performs a self-update to the latest version.
func runUpdate() {
	fmt.Fprintf(os.Stderr, "🔍 Checking for updates...\n")

	result := updater.CheckVersion(specserver.Version)
	if !result.UpdateAvailable {
		fmt.Fprintf(os.Stderr, "✅ Already at the latest version (v%s)\n", result.CurrentVersion)
		return
	}

	fmt.Fprintf(os.Stderr, "📦 New version available: v%s → v%s\n", result.CurrentVersion, result.LatestVersion)
	fmt.Fprintf(os.Stderr, "⬇️  Downloading...\n")

	if err := updater.SelfUpdate(specserver.Version); err != nil {
		fmt.Fprintf(os.Stderr, "❌ Update failed: %v\n", err)
		fmt.Fprintf(os.Stderr, "\n   You can download manually from:\n   %s\n", result.ReleaseURL)
		os.Exit(1)
	}

	fmt.Fprintf(os.Stderr, "✅ Updated to v%s!\n", result.LatestVersion)
	fmt.Fprintf(os.Stderr, "   Restart specsmith to use the new version.\n")
}

func printUsage() {
	fmt.Fprintf(os.Stderr, `Specsmith v%s — Spec-Driven Development MCP Server

Usage:
  specsmith serve    Start the MCP server (stdio transport)
  specsmith update   Update to the latest version

Configuration:
  Add to your AI tool's MCP config:

  {
    "mcpServers": {
      "specsmith": {
        "command": "specsmith",
        "args": ["serve"]
      }
    }
  }

Learn more: https://github.com/specsmith/specsmith
`, specserver.Version)
}
