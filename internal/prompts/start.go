// Package prompts implements MCP prompt handlers.
//
// Prompts are user-triggered workflows (like slash commands): the user
// initiates them, unlike tools, which the AI calls.
package prompts

import (
	"context"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"
)

// StartPrompt handles the sdd-start MCP prompt. It instructs the host AI
// to walk the three-document workflow in order.
type StartPrompt struct{}

// NewStartPrompt creates a StartPrompt.
func NewStartPrompt() *StartPrompt {
	return &StartPrompt{}
}

// Definition returns the MCP prompt definition for registration.
func (p *StartPrompt) Definition() mcp.Prompt {
	return mcp.NewPrompt("sdd-start",
		mcp.WithPromptDescription(
			"Start a spec-driven development session: generate requirements, "+
				"then a design, then an implementation plan for a project.",
		),
		mcp.WithArgument("project_name",
			mcp.ArgumentDescription("Name of your project"),
		),
	)
}

// Handle processes the sdd-start prompt request.
func (p *StartPrompt) Handle(ctx context.Context, req mcp.GetPromptRequest) (*mcp.GetPromptResult, error) {
	projectName := "my-project"
	if args := req.Params.Arguments; args != nil {
		if name, ok := args["project_name"]; ok && name != "" {
			projectName = name
		}
	}

	return &mcp.GetPromptResult{
		Description: fmt.Sprintf("Spec-driven development for: %s", projectName),
		Messages: []mcp.PromptMessage{
			{
				Role: mcp.RoleUser,
				Content: mcp.NewTextContent(fmt.Sprintf(
					"I want to run spec-driven development for a project called '%s'.\n\n"+
						"Please:\n"+
						"1. Ask me to describe the project and its users\n"+
						"2. Turn my answers into user stories with acceptance criteria and call `generate_requirements`\n"+
						"3. Propose a technology stack and components, then call `generate_design`\n"+
						"4. Break the design into estimated tasks with dependencies and call `generate_tasks`\n\n"+
						"If you are unsure what any step needs, call `sdd_guide` first.",
					projectName,
				)),
			},
		},
	}, nil
}
