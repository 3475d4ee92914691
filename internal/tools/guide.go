package tools

import (
	"context"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/specsmith/specsmith/internal/config"
	"github.com/specsmith/specsmith/internal/generator"
	"github.com/specsmith/specsmith/internal/logging"
	"github.com/specsmith/specsmith/internal/ratelimit"
	"github.com/specsmith/specsmith/internal/toolerr"
)

// GuideTool handles the sdd_guide MCP tool. It returns static guidance
// text with the query echoed and touches no files.
type GuideTool struct {
	cfg     *config.Config
	limiter *ratelimit.Limiter
	gen     *generator.Generator
}

// NewGuideTool creates a GuideTool with its dependencies.
func NewGuideTool(cfg *config.Config, limiter *ratelimit.Limiter, gen *generator.Generator) *GuideTool {
	return &GuideTool{cfg: cfg, limiter: limiter, gen: gen}
}

// Definition returns the MCP tool definition for registration.
func (t *GuideTool) Definition() mcp.Tool {
	return mcp.NewTool("sdd_guide",
		mcp.WithDescription(
			"Explain the spec-driven development workflow: how to use "+
				"generate_requirements, generate_design, and generate_tasks, and "+
				"what makes good requirements, designs, and task breakdowns.",
		),
		mcp.WithString("query",
			mcp.Required(),
			mcp.Description("What you want guidance on; echoed back in the response"),
		),
	)
}

// Handle processes the sdd_guide tool call.
func (t *GuideTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	const tool = "sdd_guide"
	reqID := shortID()
	logging.Debug("tool call", "tool", tool, "request_id", reqID)

	if !t.limiter.Allow(clientID(ctx), t.cfg.RateLimitMaxRequests, t.cfg.RateLimitWindow) {
		return errorResult(reqID, tool, toolerr.New(toolerr.RateLimitExceeded,
			"too many requests, try again shortly")), nil
	}

	query, err := requireString(req.GetArguments(), "query")
	if err != nil {
		return errorResult(reqID, tool, err), nil
	}

	text, err := t.gen.Guide(query)
	if err != nil {
		return errorResult(reqID, tool, err), nil
	}

	return mcp.NewToolResultText(text), nil
}
