package mcptools

import (
	"context"
	"errors"
	"time"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
	"github.com/rs/zerolog/log"

	"github.com/bradenpeterson/JournalApp/client"
)

// EntryHandler exposes get_entry_for_date, list_entries, create_entry and
// attach_tag.
type EntryHandler struct {
	client *client.Client
}

// NewEntryHandler returns a new handler.
func NewEntryHandler(c *client.Client) *EntryHandler {
	return &EntryHandler{client: c}
}

// RegisterTools registers entry tools.
func (eh *EntryHandler) RegisterTools(s *server.MCPServer) error {
	getForDate := mcp.NewTool("get_entry_for_date",
		mcp.WithDescription("Get the journal entry for a calendar day. Returns null when the day has no entry."),
		mcp.WithString("date", mcp.Description("Day in YYYY-MM-DD, defaults to today")),
	)
	s.AddTool(getForDate, eh.handleGetEntryForDate)

	listEntries := mcp.NewTool("list_entries",
		mcp.WithDescription("List journal entries, newest first, one page at a time"),
		mcp.WithNumber("page", mcp.Description("Page number, default 1")),
		mcp.WithString("search", mcp.Description("Case-insensitive text in title or content")),
		mcp.WithString("start_date", mcp.Description("Earliest day, YYYY-MM-DD")),
		mcp.WithString("end_date", mcp.Description("Latest day, YYYY-MM-DD")),
		mcp.WithString("mood", mcp.Description("Mood 1-5 recorded on the entry")),
	)
	s.AddTool(listEntries, eh.handleListEntries)

	createEntry := mcp.NewTool("create_entry",
		mcp.WithDescription("Create a journal entry for a day"),
		mcp.WithString("date", mcp.Required(), mcp.Description("Day in YYYY-MM-DD")),
		mcp.WithString("title", mcp.Description("Entry title")),
		mcp.WithString("content", mcp.Description("Entry text")),
		mcp.WithString("mood", mcp.Description("Mood 1 (very sad) to 5 (very happy)")),
	)
	s.AddTool(createEntry, eh.handleCreateEntry)

	attachTag := mcp.NewTool("attach_tag",
		mcp.WithDescription("Attach a tag to the entry of a day. Give tag_id for an existing tag or tag_name to create one."),
		mcp.WithString("date", mcp.Required(), mcp.Description("Day in YYYY-MM-DD")),
		mcp.WithNumber("tag_id", mcp.Description("Existing tag id")),
		mcp.WithString("tag_name", mcp.Description("Name of a new tag to create and attach")),
	)
	s.AddTool(attachTag, eh.handleAttachTag)

	return nil
}

func (eh *EntryHandler) handleGetEntryForDate(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	date, bad := dateArg(req)
	if bad != nil {
		return bad, nil
	}

	start := time.Now()
	e, err := eh.client.EntryForDate(ctx, date)
	elapsed := time.Since(start)
	if err != nil {
		log.Error().Err(err).Str("date", date).Dur("elapsed", elapsed).Msg("get_entry_for_date failed")
		return failure("get entry", err), nil
	}

	log.Debug().Str("date", date).Bool("found", e != nil).Dur("elapsed", elapsed).Msg("get_entry_for_date completed")
	return jsonResult(e), nil
}

func (eh *EntryHandler) handleListEntries(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	filter := client.EntryFilter{
		Search:    optString(req, "search"),
		StartDate: optString(req, "start_date"),
		EndDate:   optString(req, "end_date"),
		Mood:      client.MoodValue(optString(req, "mood")),
	}
	if p, ok := optInt(req, "page"); ok && p > 0 {
		filter.Page = int(p)
	}

	log.Debug().
		Int("page", filter.Page).
		Str("search", filter.Search).
		Str("start_date", filter.StartDate).
		Str("end_date", filter.EndDate).
		Msg("handling list_entries request")

	start := time.Now()
	page, err := eh.client.ListEntries(ctx, filter)
	elapsed := time.Since(start)
	if err != nil {
		log.Error().Err(err).Dur("elapsed", elapsed).Msg("list_entries failed")
		return failure("list entries", err), nil
	}

	log.Debug().Int("count", page.Count).Int("entries_returned", len(page.Results)).Dur("elapsed", elapsed).Msg("list_entries completed")
	return jsonResult(map[string]interface{}{
		"entries":  page.Results,
		"count":    page.Count,
		"has_more": page.HasMore(),
	}), nil
}

func (eh *EntryHandler) handleCreateEntry(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	date, err := req.RequireString("date")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	in := client.EntryInput{
		Date:    date,
		Title:   optString(req, "title"),
		Content: optString(req, "content"),
		Mood:    client.MoodValue(optString(req, "mood")),
	}

	log.Debug().Str("date", date).Int("content_len", len(in.Content)).Msg("handling create_entry request")

	start := time.Now()
	e, err := eh.client.CreateEntry(ctx, in)
	elapsed := time.Since(start)
	if err != nil {
		log.Error().Err(err).Str("date", date).Dur("elapsed", elapsed).Msg("create_entry failed")
		return failure("create entry", err), nil
	}

	log.Debug().Str("date", date).Int64("entry_id", e.ID).Dur("elapsed", elapsed).Msg("create_entry completed")
	return jsonResult(e), nil
}

func (eh *EntryHandler) handleAttachTag(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	date, err := req.RequireString("date")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	tagID, hasID := optInt(req, "tag_id")
	name := optString(req, "tag_name")
	if hasID == (name != "") {
		return mcp.NewToolResultError("provide exactly one of tag_id or tag_name"), nil
	}

	log.Debug().Str("date", date).Int64("tag_id", tagID).Str("tag_name", name).Msg("handling attach_tag request")

	start := time.Now()
	var (
		tag   *client.Tag
		entry *client.Entry
	)
	if hasID {
		entry, err = eh.client.AttachTag(ctx, date, tagID)
	} else {
		tag, entry, err = eh.client.CreateAndAttachTag(ctx, date, name)
	}
	elapsed := time.Since(start)

	if errors.Is(err, client.ErrNoEntryForDate) {
		msg := "no entry exists for " + date + "; create one first"
		if tag != nil {
			msg += " (tag " + tag.Name + " was created)"
		}
		return mcp.NewToolResultError(msg), nil
	}
	if err != nil {
		log.Error().Err(err).Str("date", date).Dur("elapsed", elapsed).Msg("attach_tag failed")
		return failure("attach tag", err), nil
	}

	log.Debug().Str("date", date).Int64("entry_id", entry.ID).Dur("elapsed", elapsed).Msg("attach_tag completed")
	return jsonResult(entry), nil
}
