package mcptools

import (
	"context"
	"fmt"
	"time"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
	"github.com/rs/zerolog/log"

	"github.com/bradenpeterson/JournalApp/client"
)

// MoodHandler exposes get_mood and set_mood.
type MoodHandler struct {
	client *client.Client
}

// NewMoodHandler returns a new handler.
func NewMoodHandler(c *client.Client) *MoodHandler {
	return &MoodHandler{client: c}
}

type moodPayload struct {
	Date   string           `json:"date"`
	Mood   client.MoodValue `json:"mood"`
	Label  string           `json:"label,omitempty"`
	Source string           `json:"source"`
}

// RegisterTools registers mood tools.
func (mh *MoodHandler) RegisterTools(s *server.MCPServer) error {
	getMood := mcp.NewTool("get_mood",
		mcp.WithDescription("Get the mood recorded for a day, from its mood record or else from the day's entry"),
		mcp.WithString("date", mcp.Description("Day in YYYY-MM-DD, defaults to today")),
	)
	s.AddTool(getMood, mh.handleGetMood)

	setMood := mcp.NewTool("set_mood",
		mcp.WithDescription("Record the mood for a day, replacing any earlier mood record"),
		mcp.WithString("date", mcp.Description("Day in YYYY-MM-DD, defaults to today")),
		mcp.WithString("mood", mcp.Required(), mcp.Description("1 very sad, 2 sad, 3 neutral, 4 happy, 5 very happy")),
	)
	s.AddTool(setMood, mh.handleSetMood)

	return nil
}

func (mh *MoodHandler) handleGetMood(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	date, bad := dateArg(req)
	if bad != nil {
		return bad, nil
	}
	start := time.Now()
	view, err := mh.client.MoodForDate(ctx, date)
	if err != nil {
		log.Error().Err(err).Str("date", date).Dur("elapsed", time.Since(start)).Msg("get_mood failed")
		return failure("get mood", err), nil
	}
	return jsonResult(payloadOf(date, view)), nil
}

func (mh *MoodHandler) handleSetMood(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	date, bad := dateArg(req)
	if bad != nil {
		return bad, nil
	}
	raw, err := req.RequireString("mood")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	value := client.MoodValue(raw)
	if !value.Valid() {
		return mcp.NewToolResultError(fmt.Sprintf("invalid mood %q: use 1-5", raw)), nil
	}

	start := time.Now()
	current, err := mh.client.MoodRecordForDate(ctx, date)
	if err != nil {
		return failure("set mood", err), nil
	}
	rec, err := mh.client.SetMood(ctx, date, value, current)
	elapsed := time.Since(start)
	if err != nil {
		log.Error().Err(err).Str("date", date).Dur("elapsed", elapsed).Msg("set_mood failed")
		return failure("set mood", err), nil
	}

	log.Debug().Str("date", date).Str("mood", string(value)).Bool("updated", current != nil).Dur("elapsed", elapsed).Msg("set_mood completed")
	return jsonResult(payloadOf(date, &client.MoodView{Record: rec, Value: rec.Mood})), nil
}

func payloadOf(date string, v *client.MoodView) moodPayload {
	p := moodPayload{Date: date, Mood: v.Value, Source: "none"}
	switch {
	case v.Record != nil:
		p.Source = "mood_record"
	case v.Legacy:
		p.Source = "entry"
	}
	if v.Value != "" {
		p.Label = v.Value.Label()
	}
	return p
}
