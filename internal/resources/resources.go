// Package resources implements MCP resource handlers.
//
// Resources provide read-only data the host can consume for context.
// They use URI-based addressing (sdd://...) following MCP conventions.
// Here they expose the three document skeletons so a host can show the
// user what each generator will produce.
package resources

import (
	"context"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/specsmith/specsmith/internal/templates"
)

// Handler serves the document-skeleton resources.
type Handler struct{}

// NewHandler creates a resource Handler.
func NewHandler() *Handler {
	return &Handler{}
}

// templateByURI maps resource URIs to embedded template names.
var templateByURI = map[string]string{
	"sdd://templates/requirements": templates.Requirements,
	"sdd://templates/design":       templates.Design,
	"sdd://templates/tasks":        templates.Tasks,
}

// Definitions returns the resource definitions for registration.
func (h *Handler) Definitions() []mcp.Resource {
	return []mcp.Resource{
		mcp.NewResource(
			"sdd://templates/requirements",
			"Requirements Document Skeleton",
			mcp.WithResourceDescription("The fixed markdown structure generate_requirements produces"),
			mcp.WithMIMEType("text/markdown"),
		),
		mcp.NewResource(
			"sdd://templates/design",
			"Design Document Skeleton",
			mcp.WithResourceDescription("The fixed markdown structure generate_design produces"),
			mcp.WithMIMEType("text/markdown"),
		),
		mcp.NewResource(
			"sdd://templates/tasks",
			"Implementation Plan Skeleton",
			mcp.WithResourceDescription("The fixed markdown structure generate_tasks produces"),
			mcp.WithMIMEType("text/markdown"),
		),
	}
}

// HandleTemplate serves the raw skeleton for the requested URI.
func (h *Handler) HandleTemplate(ctx context.Context, req mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
	name, ok := templateByURI[req.Params.URI]
	if !ok {
		return nil, fmt.Errorf("unknown resource %q", req.Params.URI)
	}

	skeleton, err := templates.Skeleton(name)
	if err != nil {
		return nil, fmt.Errorf("loading skeleton: %w", err)
	}

	return []mcp.ResourceContents{
		mcp.TextResourceContents{
			URI:      req.Params.URI,
			MIMEType: "text/markdown",
			Text:     skeleton,
		},
	}, nil
}
