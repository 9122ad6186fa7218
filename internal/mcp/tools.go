package mcp

import (
	"context"

	"github.com/mark3labs/mcp-go/mcp"
)

// --- Tool definitions ---

var toolGetFitnessSummary = mcp.NewTool("get_fitness_summary",
	mcp.WithDescription("Log in to Peloton with the given credentials and return total activity count, current weekly workout streak, last workout date, and a rendered streak bar."),
	mcp.WithString("username", mcp.Required(), mcp.Description("Peloton username or email")),
	mcp.WithString("password", mcp.Required(), mcp.Description("Peloton account password")),
)

// --- Tool handlers ---

func (h *handlers) getFitnessSummary(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	username, err := req.RequireString("username")
	if err != nil {
		return mcp.NewToolResultError("username parameter is required"), nil
	}
	password, err := req.RequireString("password")
	if err != nil {
		return mcp.NewToolResultError("password parameter is required"), nil
	}

	result, err := h.svc.Summarize(ctx, username, password)
	if err != nil {
		h.log.Error("mcp get_fitness_summary", "error", err)
		return mcp.NewToolResultError("summary failed: " + err.Error()), nil
	}

	out, err := mcp.NewToolResultJSON(result)
	if err != nil {
		return mcp.NewToolResultError("serialization failed"), nil
	}
	return out, nil
}
