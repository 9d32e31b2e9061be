// Package mcptools exposes journal operations as MCP tools.
package mcptools

import (
	"encoding/json"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/bradenpeterson/JournalApp/client"
	"github.com/bradenpeterson/JournalApp/pkg/dates"
)

// ServerName is advertised to MCP hosts.
const ServerName = "journal-mcp"

type toolRegisterer interface {
	RegisterTools(s *server.MCPServer) error
}

// NewServer builds an MCP server with every journal tool registered.
func NewServer(c *client.Client, version string) (*server.MCPServer, error) {
	s := server.NewMCPServer(
		ServerName,
		version,
		server.WithToolCapabilities(true),
	)
	handlers := []struct {
		name string
		h    toolRegisterer
	}{
		{"entry", NewEntryHandler(c)},
		{"mood", NewMoodHandler(c)},
		{"insight", NewInsightHandler(c)},
	}
	for _, h := range handlers {
		if err := h.h.RegisterTools(s); err != nil {
			return nil, fmt.Errorf("register %s tools: %w", h.name, err)
		}
	}
	return s, nil
}

// ------------------------- argument helpers -------------------------

func optString(req mcp.CallToolRequest, key string) string {
	if v, ok := req.GetArguments()[key].(string); ok {
		return v
	}
	return ""
}

// optInt accepts JSON numbers (decoded as float64) and numeric strings.
func optInt(req mcp.CallToolRequest, key string) (int64, bool) {
	switch v := req.GetArguments()[key].(type) {
	case float64:
		return int64(v), true
	case string:
		var n int64
		if _, err := fmt.Sscan(v, &n); err == nil {
			return n, true
		}
	}
	return 0, false
}

// dateArg returns the "date" argument, defaulting to today.
func dateArg(req mcp.CallToolRequest) (string, *mcp.CallToolResult) {
	date := optString(req, "date")
	if date == "" {
		return dates.Today(), nil
	}
	if !dates.Valid(date) {
		return "", mcp.NewToolResultError(fmt.Sprintf("invalid date %q: use YYYY-MM-DD", date))
	}
	return date, nil
}

func jsonResult(v interface{}) *mcp.CallToolResult {
	b, _ := json.MarshalIndent(v, "", "  ")
	return mcp.NewToolResultText(string(b))
}

func failure(action string, err error) *mcp.CallToolResult {
	return mcp.NewToolResultError(fmt.Sprintf("failed to %s: %s", action, client.UserMessage(err, err.Error())))
}
