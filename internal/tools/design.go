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
)

// defaultDesignPath is used when the caller omits outputPath.
const defaultDesignPath = "design.md"

// DesignTool handles the generate_design MCP tool.
type DesignTool struct {
	cfg     *config.Config
	limiter *ratelimit.Limiter
	gen     *generator.Generator
	writer  *filewriter.Writer
}

// NewDesignTool creates a DesignTool with its dependencies.
func NewDesignTool(cfg *config.Config, limiter *ratelimit.Limiter, gen *generator.Generator, writer *filewriter.Writer) *DesignTool {
	return &DesignTool{cfg: cfg, limiter: limiter, gen: gen, writer: writer}
}

// Definition returns the MCP tool definition for registration.
func (t *DesignTool) Definition() mcp.Tool {
	componentSchema := map[string]any{
		"type": "object",
		"properties": map[string]any{
			"name":        map[string]any{"type": "string"},
			"description": map[string]any{"type": "string"},
		},
		"required": []string{"name", "description"},
	}

	return mcp.NewTool("generate_design",
		mcp.WithDescription(
			"Generate a design document describing the technology stack, components, "+
				"and data models. Layers absent from techStack are omitted from the output.",
		),
		mcp.WithString("projectName",
			mcp.Required(),
			mcp.Description("Project name (letters, numbers, spaces, hyphens, underscores, dots; max 100 chars)"),
		),
		mcp.WithString("projectDescription",
			mcp.Required(),
			mcp.Description("Short description of the project, used as the document overview"),
		),
		mcp.WithObject("techStack",
			mcp.Required(),
			mcp.Description("Technology per layer; every layer is optional and omitted when absent"),
			mcp.Properties(map[string]any{
				"frontend":       map[string]any{"type": "string"},
				"backend":        map[string]any{"type": "string"},
				"database":       map[string]any{"type": "string"},
				"infrastructure": map[string]any{"type": "string"},
			}),
		),
		mcp.WithArray("components",
			mcp.Description("Optional system components, each with a name and a one-line responsibility"),
			mcp.Items(componentSchema),
		),
		mcp.WithArray("dataModels",
			mcp.Description("Optional data models, each with a name and a short description"),
			mcp.Items(componentSchema),
		),
		mcp.WithString("outputPath",
			mcp.Description("Where to write the document (.md or .txt, inside an allowed directory). Default: design.md"),
		),
	)
}

// Handle processes the generate_design tool call.
func (t *DesignTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	const tool = "generate_design"
	reqID := shortID()
	logging.Debug("tool call", "tool", tool, "request_id", reqID)

	if !t.limiter.Allow(clientID(ctx), t.cfg.RateLimitMaxRequests, t.cfg.RateLimitWindow) {
		return errorResult(reqID, tool, toolerr.New(toolerr.RateLimitExceeded,
			"too many requests, try again shortly")), nil
	}

	parsed, err := parseDesignArgs(req.GetArguments())
	if err != nil {
		return errorResult(reqID, tool, err), nil
	}

	doc, err := t.gen.Design(parsed)
	if err != nil {
		return errorResult(reqID, tool, err), nil
	}

	outputPath := parsed.OutputPath
	if outputPath == "" {
		outputPath = defaultDesignPath
	}

	resolved, err := t.writer.Write(outputPath, doc)
	if err != nil {
		return errorResult(reqID, tool, err), nil
	}

	logging.Debug("document written", "tool", tool, "request_id", reqID, "path", resolved)

	return mcp.NewToolResultText(fmt.Sprintf(
		"# Design Document Generated\n\nSaved to `%s`\n\n## Content\n\n%s",
		resolved, doc,
	)), nil
}

// parseDesignArgs decodes the raw argument map into a typed request.
func parseDesignArgs(args map[string]any) (generator.DesignRequest, error) {
	var out generator.DesignRequest

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

	stackObj, err := objectField(args, "techStack")
	if err != nil {
		return out, err
	}
	stack, err := parseTechStack(stackObj)
	if err != nil {
		return out, err
	}

	components, err := parseNamedItems(args, "components")
	if err != nil {
		return out, err
	}
	models, err := parseNamedItems(args, "dataModels")
	if err != nil {
		return out, err
	}

	out.ProjectName = name
	out.ProjectDescription = description
	out.TechStack = stack
	for _, c := range components {
		out.Components = append(out.Components, generator.Component(c))
	}
	for _, m := range models {
		out.DataModels = append(out.DataModels, generator.DataModel(m))
	}
	out.OutputPath = outputPath
	return out, nil
}

func parseTechStack(obj map[string]any) (generator.TechStack, error) {
	var ts generator.TechStack
	var err error

	if ts.Frontend, err = optionalString(obj, "frontend"); err != nil {
		return ts, err
	}
	if ts.Backend, err = optionalString(obj, "backend"); err != nil {
		return ts, err
	}
	if ts.Database, err = optionalString(obj, "database"); err != nil {
		return ts, err
	}
	if ts.Infrastructure, err = optionalString(obj, "infrastructure"); err != nil {
		return ts, err
	}
	return ts, nil
}

// namedItem is the common {name, description} element shape shared by
// components and data models.
type namedItem struct {
	Name        string
	Description string
}

func parseNamedItems(args map[string]any, key string) ([]namedItem, error) {
	v, ok := args[key]
	if !ok || v == nil {
		return nil, nil
	}
	objs, err := objectSlice(key, v)
	if err != nil {
		return nil, err
	}

	items := make([]namedItem, 0, len(objs))
	for i, obj := range objs {
		name, err := requireString(obj, "name")
		if err != nil {
			return nil, toolerr.New(toolerr.InvalidArgs, "%s[%d] needs a name and a description", key, i)
		}
		description, err := requireString(obj, "description")
		if err != nil {
			return nil, toolerr.New(toolerr.InvalidArgs, "%s[%d] needs a name and a description", key, i)
		}
		items = append(items, namedItem{Name: name, Description: description})
	}
	return items, nil
}
