// Package server wires all MCP components and creates the server instance.
//
// This is the composition root: it creates concrete implementations and
// injects them into the tools/prompts/resources that depend on them.
// No business logic lives here — only wiring.
package server

import (
	"fmt"

	"github.com/mark3labs/mcp-go/server"

	"github.com/specsmith/specsmith/internal/config"
	"github.com/specsmith/specsmith/internal/filewriter"
	"github.com/specsmith/specsmith/internal/generator"
	"github.com/specsmith/specsmith/internal/prompts"
	"github.com/specsmith/specsmith/internal/ratelimit"
	"github.com/specsmith/specsmith/internal/resources"
	"github.com/specsmith/specsmith/internal/templates"
	"github.com/specsmith/specsmith/internal/tools"
	"github.com/specsmith/specsmith/internal/validation"
)

// Version is set at build time via ldflags.
var Version = "dev"

// New creates and configures the MCP server with all tools, the prompt,
// and the template resources registered.
//
// The returned cleanup function stops the rate limiter's sweeper and must
// be called on shutdown (typically via defer). It is always non-nil.
func New(cfg *config.Config) (*server.MCPServer, func(), error) {
	// --- Create shared dependencies ---

	renderer, err := templates.NewRenderer()
	if err != nil {
		return nil, noop, fmt.Errorf("creating template renderer: %w", err)
	}

	validator := validation.New(cfg.MaxInputLength)
	gen := generator.New(validator, renderer)

	roots, err := filewriter.DefaultRoots(cfg.OutputDir)
	if err != nil {
		return nil, noop, fmt.Errorf("resolving allowed roots: %w", err)
	}
	writer, err := filewriter.New(cfg.MaxFileSize, roots...)
	if err != nil {
		return nil, noop, fmt.Errorf("creating file writer: %w", err)
	}

	limiter := ratelimit.New()
	limiter.StartSweeper()
	cleanup := limiter.Stop

	// --- Create the MCP server ---

	s := server.NewMCPServer(
		cfg.ServerName,
		cfg.ServerVersion,
		server.WithToolCapabilities(true),
		server.WithResourceCapabilities(false, true),
		server.WithPromptCapabilities(true),
		server.WithRecovery(),
		server.WithInstructions(serverInstructions()),
	)

	// --- Register document tools ---

	requirementsTool := tools.NewRequirementsTool(cfg, limiter, gen, writer)
	s.AddTool(requirementsTool.Definition(), requirementsTool.Handle)

	designTool := tools.NewDesignTool(cfg, limiter, gen, writer)
	s.AddTool(designTool.Definition(), designTool.Handle)

	tasksTool := tools.NewTasksTool(cfg, limiter, gen, writer)
	s.AddTool(tasksTool.Definition(), tasksTool.Handle)

	// sdd_guide never touches the file writer — it is pure text.
	guideTool := tools.NewGuideTool(cfg, limiter, gen)
	s.AddTool(guideTool.Definition(), guideTool.Handle)

	// --- Register the workflow prompt ---

	startPrompt := prompts.NewStartPrompt()
	s.AddPrompt(startPrompt.Definition(), startPrompt.Handle)

	// --- Register template resources ---

	resourceHandler := resources.NewHandler()
	for _, def := range resourceHandler.Definitions() {
		s.AddResource(def, resourceHandler.HandleTemplate)
	}

	return s, cleanup, nil
}

// noop is the default cleanup when construction fails early.
func noop() {}

// serverInstructions returns the system instructions that tell the AI
// how to use the document tools effectively.
func serverInstructions() string {
	return `You have access to Specsmith, a spec-driven development document server.

## WHEN TO USE Specsmith

Suggest generating specs when the user:
- Asks to build a new project, app, or system
- Asks to plan, architect, or scope something
- Describes a vague idea and wants to start coding

## CRITICAL: How the Tools Work

These are DOCUMENT tools, not AI tools. They format and save content YOU
generate. For each document:

1. TALK to the user — understand their idea, ask questions
2. GENERATE the content yourself (user stories, stack choices, tasks)
3. CALL the tool with the ACTUAL content as parameters
4. The tool validates it, renders the fixed template, and writes the file

NEVER call a tool with placeholder text like "TBD" or "to be defined".

## Workflow

Generate the three documents in order:

1. generate_requirements — user stories with acceptance criteria.
   Every requirement needs at least one verifiable criterion.
2. generate_design — technology stack, components, data models.
   Omit layers that don't apply; they are left out of the document.
3. generate_tasks — estimated tasks with dependencies and, ideally,
   a requirementRef linking each task back to a requirement.

Call sdd_guide whenever you want the workflow and quality guidance
restated.

## Rules

- Field limits are enforced: names up to 100 characters, user stories up
  to 1000, acceptance criteria up to 500 each. Oversized input is
  rejected, never truncated.
- HTML/script fragments and path traversal sequences are stripped from
  all text fields.
- Output paths must end in .md or .txt and stay inside the project
  working directory, its output/ subdirectory, or the system temp
  directory.
- Calls are rate limited; on RateLimitExceeded, wait briefly and retry.`
}
