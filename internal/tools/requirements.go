package tools

import (
	"context"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/specsmith/specsmith/internal/config"
	"github.com/specsmith/specsmith/internal/filewriter"
	"github.com/specsmith/specsmith/internal/generator"
	"github.com/specsmith/specsmith/internal/logging"
	"github.com/specsmith/specsmith/internal/ratelimit"
	"github.com/specsmith/specsmith/internal/toolerr"
	"github.com/specsmith/specsmith/internal/validation"
)

// defaultRequirementsPath is used when the caller omits outputPath.
const defaultRequirementsPath = "requirements.md"

// RequirementsTool handles the generate_requirements MCP tool.
type RequirementsTool struct {
	cfg     *config.Config
	limiter *ratelimit.Limiter
	gen     *generator.Generator
	writer  *filewriter.Writer
}

// NewRequirementsTool creates a RequirementsTool with its dependencies.
func NewRequirementsTool(cfg *config.Config, limiter *ratelimit.Limiter, gen *generator.Generator, writer *filewriter.Writer) *RequirementsTool {
	return &RequirementsTool{cfg: cfg, limiter: limiter, gen: gen, writer: writer}
}

// Definition returns the MCP tool definition for registration.
func (t *RequirementsTool) Definition() mcp.Tool {
	return mcp.NewTool("generate_requirements",
		mcp.WithDescription(
			"Generate a requirements document from user stories and acceptance criteria. "+
				"Writes a markdown file with one '### Requirement N' block per entry and "+
				"returns the resolved output path.",
		),
		mcp.WithString("projectName",
			mcp.Required(),
			mcp.Description("Project name (letters, numbers, spaces, hyphens, underscores, dots; max 100 chars)"),
		),
		mcp.WithString("projectDescription",
			mcp.Required(),
			mcp.Description("Short description of the project, used as the document introduction"),
		),
		mcp.WithArray("requirements",
			mcp.Required(),
			mcp.Description("Requirements as user stories, each with at least one acceptance criterion"),
			mcp.Items(map[string]any{
				"type": "object",
				"properties": map[string]any{
					"userStory": map[string]any{
						"type":        "string",
						"description": "User story, e.g. 'As a user, I want to add tasks, so that I can track work'",
					},
					"acceptanceCriteria": map[string]any{
						"type":        "array",
						"items":       map[string]any{"type": "string"},
						"description": "Verifiable acceptance criteria for this story",
					},
				},
				"required": []string{"userStory", "acceptanceCriteria"},
			}),
		),
		mcp.WithString("outputPath",
			mcp.Description("Where to write the document (.md or .txt, inside an allowed directory). Default: requirements.md"),
		),
	)
}

// Handle processes the generate_requirements tool call.
func (t *RequirementsTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	const tool = "generate_requirements"
	reqID := shortID()
	logging.Debug("tool call", "tool", tool, "request_id", reqID)

	if !t.limiter.Allow(clientID(ctx), t.cfg.RateLimitMaxRequests, t.cfg.RateLimitWindow) {
		return errorResult(reqID, tool, toolerr.New(toolerr.RateLimitExceeded,
			"too many requests, try again shortly")), nil
	}

	parsed, err := parseRequirementsArgs(req.GetArguments())
	if err != nil {
		return errorResult(reqID, tool, err), nil
	}

	doc, err := t.gen.Requirements(parsed)
	if err != nil {
		return errorResult(reqID, tool, err), nil
	}

	outputPath := parsed.OutputPath
	if outputPath == "" {
		outputPath = defaultRequirementsPath
	}

	resolved, err := t.writer.Write(outputPath, doc)
	if err != nil {
		return errorResult(reqID, tool, err), nil
	}

	logging.Debug("document written", "tool", tool, "request_id", reqID, "path", resolved)

	return mcp.NewToolResultText(fmt.Sprintf(
		"# Requirements Document Generated\n\nSaved to `%s`\n\n## Content\n\n%s",
		resolved, doc,
	)), nil
}

// parseRequirementsArgs decodes the raw argument map into a typed request.
func parseRequirementsArgs(args map[string]any) (generator.RequirementsRequest, error) {
	var out generator.RequirementsRequest

	name, err := requireString(args, "projectName")
	if err != nil {
		return out, err
	}
	description, err := requireString(args, "projectDescription")
	if err != nil {
		return out, err
	}
	outputPath, err := optionalString(args, "outputPath")
	if err != nil {
		return out, err
	}

	rawReqs, err := requireObjectSlice(args, "requirements")
	if err != nil {
		return out, err
	}

	reqs := make([]generator.Requirement, 0, len(rawReqs))
	for i, obj := range rawReqs {
		label := fmt.Sprintf("requirements[%d]", i)

		storyVal, ok := obj["userStory"]
		if !ok || storyVal == nil {
			return out, toolerr.New(toolerr.InvalidArgs, "%s is missing userStory", label)
		}
		story, err := validation.String(label+".userStory", storyVal)
		if err != nil {
			return out, err
		}

		criteria, err := optionalStringSlice(label+".acceptanceCriteria", obj["acceptanceCriteria"])
		if err != nil {
			return out, err
		}

		reqs = append(reqs, generator.Requirement{
			UserStory:          story,
			AcceptanceCriteria: criteria,
		})
	}

	out.ProjectName = name
	out.ProjectDescription = description
	out.Requirements = reqs
	out.OutputPath = outputPath
	return out, nil
}
