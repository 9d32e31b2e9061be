package client

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/bradenpeterson/JournalApp/client/internal/api"
	"github.com/bradenpeterson/JournalApp/client/internal/request"
)

// --------------------------------------------------------------------
// Client core
// --------------------------------------------------------------------

// Client talks to the journal REST API. It is safe for concurrent use.
type Client struct {
	baseURL string
	http    *http.Client
	session *Session
	rc      *request.Client

	timeout time.Duration
	debug   bool
}

const defaultHTTPTimeout = 30 * time.Second

// New constructs a Client for baseURL (scheme and host, e.g.
// "https://journal.example.com").
func New(baseURL string, opts ...Option) (*Client, error) {
	baseURL = strings.TrimRight(strings.TrimSpace(baseURL), "/")
	if baseURL == "" {
		return nil, fmt.Errorf("baseURL cannot be empty")
	}

	c := &Client{
		baseURL: baseURL,
		http:    &http.Client{},
		timeout: defaultHTTPTimeout,
	}

	// Auto-enable debug via env variable without changing code.
	if debugLoggingRequested() {
		opts = append(opts, WithDebugLogging(true))
	}

	for _, opt := range opts {
		if err := opt(c); err != nil {
			return nil, err
		}
	}

	if c.session == nil {
		s, err := NewSession(baseURL)
		if err != nil {
			return nil, err
		}
		c.session = s
	}
	c.http.Jar = c.session
	if c.http.Timeout == 0 || c.timeout != defaultHTTPTimeout {
		c.http.Timeout = c.timeout
	}
	c.wrapTransport()

	c.rc = &request.Client{
		HTTP:     c.http,
		BaseURL:  baseURL,
		Session:  c.session,
		Observer: metricsObserver{},
	}
	return c, nil
}

// wrapTransport layers the debug dump (inner) and request-id stamping
// (outer) over the configured transport.
func (c *Client) wrapTransport() {
	base := c.http.Transport
	if base == nil {
		base = http.DefaultTransport
	}
	if c.debug {
		base = &debugTransport{base: base}
	}
	c.http.Transport = &requestIDTransport{base: base}
}

// BaseURL returns the API root the client was built with.
func (c *Client) BaseURL() string { return c.baseURL }

// Session returns the cookie jar backing the client.
func (c *Client) Session() *Session { return c.session }

// --------------------------------------------------------------------
// Entry operations - delegated to internal/api
// --------------------------------------------------------------------

// ListEntries fetches one page of entries matching filter.
func (c *Client) ListEntries(ctx context.Context, filter EntryFilter) (*EntryPage, error) {
	return api.ListEntries(ctx, c.rc, filter)
}

// ListAllEntries follows pagination until every matching entry is fetched.
func (c *Client) ListAllEntries(ctx context.Context, filter EntryFilter) ([]Entry, error) {
	return api.ListAllEntries(ctx, c.rc, filter)
}

// GetEntry retrieves a single entry by id.
func (c *Client) GetEntry(ctx context.Context, id int64) (*Entry, error) {
	return api.GetEntry(ctx, c.rc, id)
}

// CreateEntry creates an entry.
func (c *Client) CreateEntry(ctx context.Context, in EntryInput) (*Entry, error) {
	return api.CreateEntry(ctx, c.rc, in)
}

// UpdateEntry replaces an entry.
func (c *Client) UpdateEntry(ctx context.Context, id int64, in EntryInput) (*Entry, error) {
	return api.UpdateEntry(ctx, c.rc, id, in)
}

// PatchEntry applies a partial update.
func (c *Client) PatchEntry(ctx context.Context, id int64, patch EntryPatch) (*Entry, error) {
	return api.PatchEntry(ctx, c.rc, id, patch)
}

// SetEntryTags replaces the entry's tag set.
func (c *Client) SetEntryTags(ctx context.Context, id int64, tagIDs []int64) (*Entry, error) {
	return api.SetEntryTags(ctx, c.rc, id, tagIDs)
}

// UploadEntryImage attaches an image to the entry.
func (c *Client) UploadEntryImage(ctx context.Context, id int64, filename string, content io.Reader) (*Entry, error) {
	return api.UploadEntryImage(ctx, c.rc, id, filename, content)
}

// DeleteEntry removes an entry.
func (c *Client) DeleteEntry(ctx context.Context, id int64) error {
	return api.DeleteEntry(ctx, c.rc, id)
}

// EntriesForDate returns every entry stored for date. Most callers want
// EntryForDate.
func (c *Client) EntriesForDate(ctx context.Context, date string) ([]Entry, error) {
	return api.GetEntriesByDate(ctx, c.rc, date)
}

// Stats fetches streaks and totals.
func (c *Client) Stats(ctx context.Context) (*Stats, error) {
	return api.GetStats(ctx, c.rc)
}

// --------------------------------------------------------------------
// Tag operations - delegated to internal/api
// --------------------------------------------------------------------

// ListTags fetches one page of tags.
func (c *Client) ListTags(ctx context.Context, page, pageSize int) (*TagPage, error) {
	return api.ListTags(ctx, c.rc, page, pageSize)
}

func (c *Client) GetTag(ctx context.Context, id int64) (*Tag, error) {
	return api.GetTag(ctx, c.rc, id)
}

func (c *Client) CreateTag(ctx context.Context, name string) (*Tag, error) {
	return api.CreateTag(ctx, c.rc, name)
}

// RenameTag renames a tag in place.
func (c *Client) RenameTag(ctx context.Context, id int64, name string) (*Tag, error) {
	return api.PatchTag(ctx, c.rc, id, name)
}

// UpdateTag replaces a tag.
func (c *Client) UpdateTag(ctx context.Context, id int64, name string) (*Tag, error) {
	return api.UpdateTag(ctx, c.rc, id, name)
}

func (c *Client) DeleteTag(ctx context.Context, id int64) error {
	return api.DeleteTag(ctx, c.rc, id)
}

// --------------------------------------------------------------------
// Mood operations - delegated to internal/api
// --------------------------------------------------------------------

// ListMoods lists mood records; an empty date lists all of them.
func (c *Client) ListMoods(ctx context.Context, date string) ([]Mood, error) {
	return api.ListMoods(ctx, c.rc, date)
}

// MoodRecordForDate returns the dedicated mood record for date or nil.
// MoodForDate also considers the legacy entry field.
func (c *Client) MoodRecordForDate(ctx context.Context, date string) (*Mood, error) {
	return api.GetMoodByDate(ctx, c.rc, date)
}

func (c *Client) CreateMood(ctx context.Context, in MoodInput) (*Mood, error) {
	return api.CreateMood(ctx, c.rc, in)
}

func (c *Client) UpdateMood(ctx context.Context, id int64, in MoodInput) (*Mood, error) {
	return api.UpdateMood(ctx, c.rc, id, in)
}

func (c *Client) PatchMood(ctx context.Context, id int64, value MoodValue) (*Mood, error) {
	return api.PatchMood(ctx, c.rc, id, value)
}

func (c *Client) DeleteMood(ctx context.Context, id int64) error {
	return api.DeleteMood(ctx, c.rc, id)
}
