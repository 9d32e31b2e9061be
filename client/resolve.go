package client

import (
	"context"
	"strings"

	"github.com/rs/zerolog/log"

	"github.com/bradenpeterson/JournalApp/client/internal/api"
	"github.com/bradenpeterson/JournalApp/client/internal/types"
	"github.com/bradenpeterson/JournalApp/pkg/dates"
)

// Tag suggestions read the first page of this size and keep at most
// maxTagSuggestions matches.
const (
	suggestPageSize   = 50
	maxTagSuggestions = 5
)

// EntryForDate returns the entry for date, or nil when the day has none.
// Nothing is cached: every call asks the server.
func (c *Client) EntryForDate(ctx context.Context, date string) (*Entry, error) {
	return api.GetEntryByDate(ctx, c.rc, date)
}

// MoodView is the effective mood for a day.
type MoodView struct {
	Record *Mood     // dedicated mood record, nil when the day has none
	Value  MoodValue // "" when no mood is known
	Legacy bool      // Value came from the entry's own mood field
}

// MoodForDate prefers the dedicated mood record and falls back to the mood
// stored on the day's entry.
func (c *Client) MoodForDate(ctx context.Context, date string) (*MoodView, error) {
	rec, err := api.GetMoodByDate(ctx, c.rc, date)
	if err != nil {
		return nil, err
	}
	if rec != nil {
		return &MoodView{Record: rec, Value: rec.Mood}, nil
	}
	entry, err := c.EntryForDate(ctx, date)
	if err != nil {
		return nil, err
	}
	if entry != nil && entry.Mood != "" {
		return &MoodView{Value: entry.Mood, Legacy: true}, nil
	}
	return &MoodView{}, nil
}

// SetMood records value for date, patching current when the day already has
// a mood record and creating one otherwise.
func (c *Client) SetMood(ctx context.Context, date string, value MoodValue, current *Mood) (*Mood, error) {
	if current != nil && current.ID != 0 {
		return api.PatchMood(ctx, c.rc, current.ID, value)
	}
	return api.CreateMood(ctx, c.rc, types.MoodInput{Date: date, Mood: value})
}

// ClearMood deletes the mood record. A nil record is a no-op.
func (c *Client) ClearMood(ctx context.Context, record *Mood) error {
	if record == nil {
		return nil
	}
	return api.DeleteMood(ctx, c.rc, record.ID)
}

// AttachTag adds tagID to the tags of date's entry and writes the full set
// back. Concurrent attaches race; the last write wins.
func (c *Client) AttachTag(ctx context.Context, date string, tagID int64) (*Entry, error) {
	if err := types.ValidateID(tagID, "tagId"); err != nil {
		return nil, err
	}
	entry, err := c.EntryForDate(ctx, date)
	if err != nil {
		return nil, err
	}
	if entry == nil {
		return nil, ErrNoEntryForDate
	}
	ids := entry.TagIDs()
	if !entry.HasTag(tagID) {
		ids = append(ids, tagID)
	}
	return api.SetEntryTags(ctx, c.rc, entry.ID, ids)
}

// CreateAndAttachTag creates a tag named name and attaches it to date's
// entry. If the attach fails the created tag is returned alongside a
// *TagAttachError.
func (c *Client) CreateAndAttachTag(ctx context.Context, date, name string) (*Tag, *Entry, error) {
	tag, err := c.CreateTag(ctx, name)
	if err != nil {
		return nil, nil, err
	}
	entry, err := c.AttachTag(ctx, date, tag.ID)
	if err != nil {
		log.Warn().Err(err).Int64("tag_id", tag.ID).Str("date", date).Msg("tag created but attach failed")
		return tag, nil, &TagAttachError{Tag: tag, Err: err}
	}
	return tag, entry, nil
}

// SuggestTags returns up to five tags whose names contain filter, ignoring
// case. An empty filter yields nothing and sends no request.
func (c *Client) SuggestTags(ctx context.Context, filter string) ([]Tag, error) {
	needle := strings.ToLower(strings.TrimSpace(filter))
	if needle == "" {
		return nil, nil
	}
	page, err := api.ListTags(ctx, c.rc, 1, suggestPageSize)
	if err != nil {
		return nil, err
	}
	out := make([]Tag, 0, maxTagSuggestions)
	for _, t := range page.Results {
		if strings.Contains(strings.ToLower(t.Name), needle) {
			out = append(out, t)
			if len(out) == maxTagSuggestions {
				break
			}
		}
	}
	return out, nil
}

// OnThisDay returns entries written on the same month and day as date in
// other years. The selected date itself is excluded.
func (c *Client) OnThisDay(ctx context.Context, date string) ([]Entry, error) {
	if err := types.ValidateDate(date, "date"); err != nil {
		return nil, err
	}
	entries, err := api.GetEntriesByMonthDay(ctx, c.rc, dates.MonthDay(date))
	if err != nil {
		return nil, err
	}
	out := entries[:0]
	for _, e := range entries {
		if e.Date != date {
			out = append(out, e)
		}
	}
	return out, nil
}
