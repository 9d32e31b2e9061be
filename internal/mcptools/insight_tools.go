package mcptools

import (
	"context"
	"time"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
	"github.com/rs/zerolog/log"

	"github.com/bradenpeterson/JournalApp/client"
)

// InsightHandler exposes on_this_day and get_stats.
type InsightHandler struct {
	client *client.Client
}

// NewInsightHandler returns a new handler.
func NewInsightHandler(c *client.Client) *InsightHandler {
	return &InsightHandler{client: c}
}

// RegisterTools registers insight tools.
func (ih *InsightHandler) RegisterTools(s *server.MCPServer) error {
	onThisDay := mcp.NewTool("on_this_day",
		mcp.WithDescription("List entries written on the same month and day in other years"),
		mcp.WithString("date", mcp.Description("Day in YYYY-MM-DD, defaults to today")),
	)
	s.AddTool(onThisDay, ih.handleOnThisDay)

	stats := mcp.NewTool("get_stats",
		mcp.WithDescription("Get journaling streaks and totals"),
	)
	s.AddTool(stats, ih.handleGetStats)

	return nil
}

func (ih *InsightHandler) handleOnThisDay(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	date, bad := dateArg(req)
	if bad != nil {
		return bad, nil
	}
	start := time.Now()
	entries, err := ih.client.OnThisDay(ctx, date)
	elapsed := time.Since(start)
	if err != nil {
		log.Error().Err(err).Str("date", date).Dur("elapsed", elapsed).Msg("on_this_day failed")
		return failure("load past entries", err), nil
	}
	if entries == nil {
		entries = []client.Entry{}
	}
	log.Debug().Str("date", date).Int("count", len(entries)).Dur("elapsed", elapsed).Msg("on_this_day completed")
	return jsonResult(map[string]interface{}{"date": date, "entries": entries}), nil
}

func (ih *InsightHandler) handleGetStats(ctx context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	start := time.Now()
	st, err := ih.client.Stats(ctx)
	if err != nil {
		log.Error().Err(err).Dur("elapsed", time.Since(start)).Msg("get_stats failed")
		return failure("load stats", err), nil
	}
	return jsonResult(st), nil
}
