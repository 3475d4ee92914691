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

// defaultTasksPath is used when the caller omits outputPath.
const defaultTasksPath = "tasks.md"

// TasksTool handles the generate_tasks MCP tool.
type TasksTool struct {
	cfg     *config.Config
	limiter *ratelimit.Limiter
	gen     *generator.Generator
	writer  *filewriter.Writer
}

// NewTasksTool creates a TasksTool with its dependencies.
func NewTasksTool(cfg *config.Config, limiter *ratelimit.Limiter, gen *generator.Generator, writer *filewriter.Writer) *TasksTool {
	return &TasksTool{cfg: cfg, limiter: limiter, gen: gen, writer: writer}
}

// Definition returns the MCP tool definition for registration.
func (t *TasksTool) Definition() mcp.Tool {
	return mcp.NewTool("generate_tasks",
		mcp.WithDescription(
			"Generate an implementation plan: numbered tasks with acceptance criteria, "+
				"dependencies, estimates, and optional requirement references.",
		),
		mcp.WithString("projectName",
			mcp.Required(),
			mcp.Description("Project name (letters, numbers, spaces, hyphens, underscores, dots; max 100 chars)"),
		),
		mcp.WithString("estimatedDuration",
			mcp.Required(),
			mcp.Description("Overall duration estimate, e.g. '2-3 weeks'"),
		),
		mcp.WithArray("keyDeliverables",
			mcp.Required(),
			mcp.Description("The concrete deliverables this plan produces (at least one)"),
			mcp.Items(map[string]any{"type": "string"}),
		),
		mcp.WithArray("tasks",
			mcp.Required(),
			mcp.Description("Implementation tasks in execution order"),
			mcp.Items(map[string]any{
				"type": "object",
				"properties": map[string]any{
					"name":        map[string]any{"type": "string"},
					"description": map[string]any{"type": "string"},
					"acceptanceCriteria": map[string]any{
						"type":  "array",
						"items": map[string]any{"type": "string"},
					},
					"dependencies": map[string]any{
						"type":        "array",
						"items":       map[string]any{"type": "string"},
						"description": "Names of tasks this one depends on",
					},
					"estimate": map[string]any{"type": "string"},
					"requirementRef": map[string]any{
						"type":        "string",
						"description": "Optional requirement ID this task satisfies, e.g. 'FR-001'",
					},
				},
				"required": []string{"name", "description", "acceptanceCriteria", "dependencies", "estimate"},
			}),
		),
		mcp.WithString("outputPath",
			mcp.Description("Where to write the document (.md or .txt, inside an allowed directory). Default: tasks.md"),
		),
	)
}

// Handle processes the generate_tasks tool call.
func (t *TasksTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	const tool = "generate_tasks"
	reqID := shortID()
	logging.Debug("tool call", "tool", tool, "request_id", reqID)

	if !t.limiter.Allow(clientID(ctx), t.cfg.RateLimitMaxRequests, t.cfg.RateLimitWindow) {
		return errorResult(reqID, tool, toolerr.New(toolerr.RateLimitExceeded,
			"too many requests, try again shortly")), nil
	}

	parsed, err := parseTasksArgs(req.GetArguments())
	if err != nil {
		return errorResult(reqID, tool, err), nil
	}

	doc, err := t.gen.Tasks(parsed)
	if err != nil {
		return errorResult(reqID, tool, err), nil
	}

	outputPath := parsed.OutputPath
	if outputPath == "" {
		outputPath = defaultTasksPath
	}

	resolved, err := t.writer.Write(outputPath, doc)
	if err != nil {
		return errorResult(reqID, tool, err), nil
	}

	logging.Debug("document written", "tool", tool, "request_id", reqID, "path", resolved)

	return mcp.NewToolResultText(fmt.Sprintf(
		"# Implementation Plan Generated\n\nSaved to `%s`\n\n## Content\n\n%s",
		resolved, doc,
	)), nil
}

// parseTasksArgs decodes the raw argument map into a typed request.
func parseTasksArgs(args map[string]any) (generator.TasksRequest, error) {
	var out generator.TasksRequest

	name, err := requireString(args, "projectName")
	if err != nil {
		return out, err
	}
	duration, err := requireString(args, "estimatedDuration")
	if err != nil {
		return out, err
	}
	deliverables, err := requireStringSlice(args, "keyDeliverables")
	if err != nil {
		return out, err
	}
	outputPath, err := optionalString(args, "outputPath")
	if err != nil {
		return out, err
	}

	rawTasks, err := requireObjectSlice(args, "tasks")
	if err != nil {
		return out, err
	}

	tasks := make([]generator.Task, 0, len(rawTasks))
	for i, obj := range rawTasks {
		task, err := parseTask(i, obj)
		if err != nil {
			return out, err
		}
		tasks = append(tasks, task)
	}

	out.ProjectName = name
	out.EstimatedDuration = duration
	out.KeyDeliverables = deliverables
	out.Tasks = tasks
	out.OutputPath = outputPath
	return out, nil
}

func parseTask(i int, obj map[string]any) (generator.Task, error) {
	var task generator.Task
	label := fmt.Sprintf("tasks[%d]", i)

	for _, key := range []string{"name", "description", "estimate"} {
		if _, ok := obj[key]; !ok {
			return task, toolerr.New(toolerr.InvalidArgs, "%s is missing %s", label, key)
		}
	}

	var err error
	if task.Name, err = validation.String(label+".name", obj["name"]); err != nil {
		return task, err
	}
	if task.Description, err = validation.String(label+".description", obj["description"]); err != nil {
		return task, err
	}
	if task.Estimate, err = validation.String(label+".estimate", obj["estimate"]); err != nil {
		return task, err
	}
	if task.AcceptanceCriteria, err = optionalStringSlice(label+".acceptanceCriteria", obj["acceptanceCriteria"]); err != nil {
		return task, err
	}
	if task.Dependencies, err = optionalStringSlice(label+".dependencies", obj["dependencies"]); err != nil {
		return task, err
	}

	if v, ok := obj["requirementRef"]; ok && v != nil {
		if task.RequirementRef, err = validation.String(label+".requirementRef", v); err != nil {
			return task, err
		}
	}

	return task, nil
}
