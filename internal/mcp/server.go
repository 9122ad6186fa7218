// Package mcp exposes the activity summary as an MCP tool, so assistants
// can pull a user's streak the same way the HTTP endpoint serves it.
package mcp

import (
	"context"
	"log/slog"

	"github.com/mark3labs/mcp-go/server"
	"github.com/meltforce/streakboard/internal/summary"
)

// Summarizer computes an activity summary for one set of credentials.
// *summary.Service satisfies this.
type Summarizer interface {
	Summarize(ctx context.Context, username, password string) (*summary.Summary, error)
}

var _ Summarizer = (*summary.Service)(nil)

// New creates an MCP server with the summary tool registered.
func New(svc Summarizer, version string, log *slog.Logger) *server.MCPServer {
	s := server.NewMCPServer("Streakboard", version,
		server.WithToolCapabilities(false),
		server.WithInstructions("Peloton activity summary server. Computes the weekly workout streak for the supplied account. Credentials are used for a single login and never stored."),
	)

	h := &handlers{svc: svc, log: log}

	s.AddTools(
		server.ServerTool{Tool: toolGetFitnessSummary, Handler: h.getFitnessSummary},
	)

	return s
}

// handlers holds dependencies for MCP tool handlers.
type handlers struct {
	svc Summarizer
	log *slog.Logger
}
