// Package tools implements the MCP tool handlers.
//
// Each tool is a struct that receives its dependencies (config, rate
// limiter, generator, file writer) and exposes a Definition for
// registration plus a Handle compatible with mcp-go. The dispatch order
// is fixed: rate limit, argument decode, validation/generation, secure
// write. Expected failures become error results, never Go errors — the
// transport only sees a Go error for genuinely broken plumbing.
package tools

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/mark3labs/mcp-go/mcp"
	mcpserver "github.com/mark3labs/mcp-go/server"

	"github.com/specsmith/specsmith/internal/logging"
	"github.com/specsmith/specsmith/internal/ratelimit"
	"github.com/specsmith/specsmith/internal/toolerr"
	"github.com/specsmith/specsmith/internal/validation"
)

// shortID returns a compact request ID for log correlation.
func shortID() string {
	return uuid.NewString()[:8]
}

// clientID derives the rate-limit identity for a call. With a session on
// the context we key per session; over plain stdio there is exactly one
// peer and the limiter degrades to a single global bucket.
func clientID(ctx context.Context) string {
	if session := mcpserver.ClientSessionFromContext(ctx); session != nil {
		return session.SessionID()
	}
	return ratelimit.DefaultClientID
}

// errorResult converts an expected failure into a structured MCP error
// result. Non-coded internal errors are reported without detail so
// filesystem paths never leak beyond the resolved output path.
func errorResult(reqID, tool string, err error) *mcp.CallToolResult {
	code := toolerr.CodeOf(err)
	logging.Warn("tool call failed", "tool", tool, "request_id", reqID, "code", code, "error", err)

	if code == toolerr.Unknown {
		return mcp.NewToolResultError(string(toolerr.Unknown) + ": internal error")
	}
	return mcp.NewToolResultError(err.Error())
}

// --- argument decoding ---
//
// mcp-go hands us the decoded JSON arguments as map[string]any. The
// helpers below turn them into typed values, reporting InvalidArgs for
// missing parameters and InvalidType for wrongly typed ones.

func requireString(args map[string]any, key string) (string, error) {
	v, ok := args[key]
	if !ok || v == nil {
		return "", toolerr.New(toolerr.InvalidArgs, "missing required parameter %q", key)
	}
	return validation.String(key, v)
}

func optionalString(args map[string]any, key string) (string, error) {
	v, ok := args[key]
	if !ok || v == nil {
		return "", nil
	}
	return validation.String(key, v)
}

func stringSlice(field string, v any) ([]string, error) {
	raw, ok := v.([]any)
	if !ok {
		return nil, toolerr.New(toolerr.InvalidType, "%s must be an array of strings", field)
	}
	out := make([]string, 0, len(raw))
	for i, item := range raw {
		s, err := validation.String(fmt.Sprintf("%s[%d]", field, i), item)
		if err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	return out, nil
}

func requireStringSlice(args map[string]any, key string) ([]string, error) {
	v, ok := args[key]
	if !ok || v == nil {
		return nil, toolerr.New(toolerr.InvalidArgs, "missing required parameter %q", key)
	}
	return stringSlice(key, v)
}

func optionalStringSlice(field string, v any) ([]string, error) {
	if v == nil {
		return nil, nil
	}
	return stringSlice(field, v)
}

func requireObjectSlice(args map[string]any, key string) ([]map[string]any, error) {
	v, ok := args[key]
	if !ok || v == nil {
		return nil, toolerr.New(toolerr.InvalidArgs, "missing required parameter %q", key)
	}
	return objectSlice(key, v)
}

func objectSlice(field string, v any) ([]map[string]any, error) {
	raw, ok := v.([]any)
	if !ok {
		return nil, toolerr.New(toolerr.InvalidType, "%s must be an array of objects", field)
	}
	out := make([]map[string]any, 0, len(raw))
	for i, item := range raw {
		obj, ok := item.(map[string]any)
		if !ok {
			return nil, toolerr.New(toolerr.InvalidType, "%s[%d] must be an object", field, i)
		}
		out = append(out, obj)
	}
	return out, nil
}

func objectField(args map[string]any, key string) (map[string]any, error) {
	v, ok := args[key]
	if !ok || v == nil {
		return nil, toolerr.New(toolerr.InvalidArgs, "missing required parameter %q", key)
	}
	obj, ok := v.(map[string]any)
	if !ok {
		return nil, toolerr.New(toolerr.InvalidType, "%s must be an object", key)
	}
	return obj, nil
}
