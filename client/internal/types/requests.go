package types

import (
	"strconv"
	"strings"
)

// ------------------------------
// Request Types
// ------------------------------

// EntryFilter holds the query filters accepted by GET /api/entries/.
// Zero values are omitted from the query string.
type EntryFilter struct {
	Page      int
	Search    string
	Date      string
	StartDate string
	EndDate   string
	Tags      []int64
	Mood      MoodValue
	MonthDay  string // "MM-DD"
}

// Params renders the filter as request query parameters.
func (f EntryFilter) Params() map[string]any {
	p := map[string]any{}
	if f.Page > 0 {
		p["page"] = f.Page
	}
	if f.Search != "" {
		p["search"] = f.Search
	}
	if f.Date != "" {
		p["date"] = f.Date
	}
	if f.StartDate != "" {
		p["start_date"] = f.StartDate
	}
	if f.EndDate != "" {
		p["end_date"] = f.EndDate
	}
	if len(f.Tags) > 0 {
		ids := make([]string, len(f.Tags))
		for i, id := range f.Tags {
			ids[i] = strconv.FormatInt(id, 10)
		}
		p["tags"] = strings.Join(ids, ",")
	}
	if f.Mood != "" {
		p["mood"] = string(f.Mood)
	}
	if f.MonthDay != "" {
		p["month_day"] = f.MonthDay
	}
	return p
}

// EntryInput is the body for creating or fully replacing an entry.
type EntryInput struct {
	Date      string    `json:"date"`
	Title     string    `json:"title"`
	Content   string    `json:"content"`
	Mood      MoodValue `json:"mood,omitempty"`
	IsPrivate *bool     `json:"is_private,omitempty"`
}

// EntryPatch is a partial entry update; nil fields are left untouched. A
// non-nil Tags pointing at an empty slice clears the entry's tags.
type EntryPatch struct {
	Date    *string    `json:"date,omitempty"`
	Title   *string    `json:"title,omitempty"`
	Content *string    `json:"content,omitempty"`
	Mood    *MoodValue `json:"mood,omitempty"`
	Tags    *[]int64   `json:"tags,omitempty"`
}

// TagInput is the body for creating or renaming a tag.
type TagInput struct {
	Name string `json:"name"`
}

// MoodInput is the body for creating or replacing a mood record.
type MoodInput struct {
	Date string    `json:"date"`
	Mood MoodValue `json:"mood"`
}

// MoodPatch is a partial mood update.
type MoodPatch struct {
	Mood MoodValue `json:"mood"`
}

// Credentials are posted to the sign-in endpoint.
type Credentials struct {
	Email    string
	Password string
}

// SignUpInput is posted to the sign-up endpoint.
type SignUpInput struct {
	FirstName string
	LastName  string
	Email     string
	Password  string
}
