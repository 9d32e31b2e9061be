package client

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"sync"
	"testing"
)

// stubBackend serves just enough of the REST API for resolution tests.
type stubBackend struct {
	mu      sync.Mutex
	entries []Entry
	moods   []Mood
	tags    []Tag
	patches int
	failSet bool
}

func (b *stubBackend) handler(t *testing.T) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		b.mu.Lock()
		defer b.mu.Unlock()
		q := r.URL.Query()
		switch {
		case r.URL.Path == "/api/entries/" && r.Method == http.MethodGet:
			var out []Entry
			for _, e := range b.entries {
				if d := q.Get("date"); d != "" && e.Date != d {
					continue
				}
				if md := q.Get("month_day"); md != "" && !strings.HasSuffix(e.Date, "-"+md) {
					continue
				}
				out = append(out, e)
			}
			writeStub(w, 200, map[string]any{"count": len(out), "next": nil, "results": out})
		case strings.HasPrefix(r.URL.Path, "/api/entries/") && r.Method == http.MethodPatch:
			b.patches++
			if b.failSet {
				writeStub(w, 500, map[string]string{"detail": "boom"})
				return
			}
			id, _ := strconv.ParseInt(strings.Trim(strings.TrimPrefix(r.URL.Path, "/api/entries/"), "/"), 10, 64)
			var body struct{ Tags []int64 }
			_ = json.NewDecoder(r.Body).Decode(&body)
			for i := range b.entries {
				if b.entries[i].ID == id {
					b.entries[i].Tags = nil
					for _, tid := range body.Tags {
						b.entries[i].Tags = append(b.entries[i].Tags, Tag{ID: tid})
					}
					writeStub(w, 200, b.entries[i])
					return
				}
			}
			w.WriteHeader(http.StatusNotFound)
		case r.URL.Path == "/api/moods/" && r.Method == http.MethodGet:
			var out []Mood
			for _, m := range b.moods {
				if m.Date == q.Get("date") {
					out = append(out, m)
				}
			}
			writeStub(w, 200, out)
		case r.URL.Path == "/api/moods/" && r.Method == http.MethodPost:
			var in MoodInput
			_ = json.NewDecoder(r.Body).Decode(&in)
			m := Mood{ID: int64(len(b.moods) + 1), Date: in.Date, Mood: in.Mood}
			b.moods = append(b.moods, m)
			writeStub(w, 201, m)
		case strings.HasPrefix(r.URL.Path, "/api/moods/") && r.Method == http.MethodPatch:
			var in map[string]MoodValue
			_ = json.NewDecoder(r.Body).Decode(&in)
			b.moods[0].Mood = in["mood"]
			writeStub(w, 200, b.moods[0])
		case strings.HasPrefix(r.URL.Path, "/api/moods/") && r.Method == http.MethodDelete:
			b.moods = nil
			w.WriteHeader(http.StatusNoContent)
		case r.URL.Path == "/api/tags/" && r.Method == http.MethodGet:
			if q.Get("page_size") != "50" {
				t.Errorf("suggestions must read 50 tags, got %s", r.URL.RawQuery)
			}
			writeStub(w, 200, map[string]any{"count": len(b.tags), "results": b.tags})
		case r.URL.Path == "/api/tags/" && r.Method == http.MethodPost:
			var in struct{ Name string }
			_ = json.NewDecoder(r.Body).Decode(&in)
			tag := Tag{ID: int64(100 + len(b.tags)), Name: in.Name}
			b.tags = append(b.tags, tag)
			writeStub(w, 201, tag)
		default:
			t.Errorf("unexpected %s %s", r.Method, r.URL.String())
			w.WriteHeader(http.StatusNotFound)
		}
	})
}

func writeStub(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func newStubClient(t *testing.T, b *stubBackend) *Client {
	t.Helper()
	srv := httptest.NewServer(b.handler(t))
	t.Cleanup(srv.Close)
	c, err := New(srv.URL, WithHTTPClient(srv.Client()))
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	c.Session().Restore("sess", "csrf")
	return c
}

func TestEntryForDate_FirstOfMany(t *testing.T) {
	t.Parallel()
	b := &stubBackend{entries: []Entry{{ID: 1, Date: "2024-05-01"}, {ID: 2, Date: "2024-05-01"}}}
	c := newStubClient(t, b)
	e, err := c.EntryForDate(context.Background(), "2024-05-01")
	if err != nil || e == nil || e.ID != 1 {
		t.Fatalf("unexpected: %+v err=%v", e, err)
	}
	none, err := c.EntryForDate(context.Background(), "2024-05-02")
	if err != nil || none != nil {
		t.Fatalf("expected nil, got %+v err=%v", none, err)
	}
}

func TestMoodForDate_RecordThenLegacy(t *testing.T) {
	t.Parallel()
	b := &stubBackend{
		entries: []Entry{{ID: 1, Date: "2024-05-01", Mood: MoodSad}, {ID: 2, Date: "2024-05-02", Mood: MoodHappy}},
		moods:   []Mood{{ID: 9, Date: "2024-05-01", Mood: MoodVeryHappy}},
	}
	c := newStubClient(t, b)
	ctx := context.Background()

	v, err := c.MoodForDate(ctx, "2024-05-01")
	if err != nil || v.Record == nil || v.Value != MoodVeryHappy || v.Legacy {
		t.Fatalf("record should win: %+v err=%v", v, err)
	}
	v, err = c.MoodForDate(ctx, "2024-05-02")
	if err != nil || v.Record != nil || v.Value != MoodHappy || !v.Legacy {
		t.Fatalf("legacy fallback expected: %+v err=%v", v, err)
	}
	v, err = c.MoodForDate(ctx, "2024-05-03")
	if err != nil || v.Value != "" || v.Record != nil {
		t.Fatalf("expected empty view: %+v err=%v", v, err)
	}
}

func TestSetMood_CreateThenPatchThenClear(t *testing.T) {
	t.Parallel()
	b := &stubBackend{}
	c := newStubClient(t, b)
	ctx := context.Background()

	m, err := c.SetMood(ctx, "2024-05-01", MoodNeutral, nil)
	if err != nil || m.ID == 0 || m.Mood != MoodNeutral {
		t.Fatalf("create: %+v err=%v", m, err)
	}
	m, err = c.SetMood(ctx, "2024-05-01", MoodHappy, m)
	if err != nil || m.Mood != MoodHappy {
		t.Fatalf("patch: %+v err=%v", m, err)
	}
	b.mu.Lock()
	n := len(b.moods)
	b.mu.Unlock()
	if n != 1 {
		t.Fatalf("expected one mood record, got %d", n)
	}
	if err := c.ClearMood(ctx, m); err != nil {
		t.Fatalf("clear: %v", err)
	}
	if err := c.ClearMood(ctx, nil); err != nil {
		t.Fatalf("clear nil: %v", err)
	}
}

func TestAttachTag_UnionsIDs(t *testing.T) {
	t.Parallel()
	b := &stubBackend{entries: []Entry{{ID: 1, Date: "2024-05-01", Tags: []Tag{{ID: 3}}}}}
	c := newStubClient(t, b)
	e, err := c.AttachTag(context.Background(), "2024-05-01", 5)
	if err != nil {
		t.Fatalf("AttachTag: %v", err)
	}
	ids := e.TagIDs()
	if len(ids) != 2 || ids[0] != 3 || ids[1] != 5 {
		t.Fatalf("tags = %v", ids)
	}
	e, err = c.AttachTag(context.Background(), "2024-05-01", 5)
	if err != nil || len(e.TagIDs()) != 2 {
		t.Fatalf("re-attach should not duplicate: %+v err=%v", e, err)
	}
}

func TestAttachTag_NoEntry(t *testing.T) {
	t.Parallel()
	b := &stubBackend{}
	c := newStubClient(t, b)
	_, err := c.AttachTag(context.Background(), "2024-05-01", 5)
	if !errors.Is(err, ErrNoEntryForDate) {
		t.Fatalf("expected ErrNoEntryForDate, got %v", err)
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.patches != 0 {
		t.Fatal("no patch expected")
	}
}

func TestCreateAndAttachTag_AttachFailureKeepsTag(t *testing.T) {
	t.Parallel()
	b := &stubBackend{entries: []Entry{{ID: 1, Date: "2024-05-01"}}, failSet: true}
	c := newStubClient(t, b)
	tag, entry, err := c.CreateAndAttachTag(context.Background(), "2024-05-01", "travel")
	var attachErr *TagAttachError
	if !errors.As(err, &attachErr) {
		t.Fatalf("expected TagAttachError, got %v", err)
	}
	if tag == nil || tag.Name != "travel" || attachErr.Tag.ID != tag.ID || entry != nil {
		t.Fatalf("unexpected tag=%+v entry=%+v", tag, entry)
	}
	if UserMessage(err, "x") != "boom" {
		t.Fatalf("message = %q", UserMessage(err, "x"))
	}
}

func TestSuggestTags(t *testing.T) {
	t.Parallel()
	b := &stubBackend{tags: []Tag{
		{ID: 1, Name: "Travel"}, {ID: 2, Name: "work"}, {ID: 3, Name: "travel-2023"},
		{ID: 4, Name: "gravel"}, {ID: 5, Name: "RAVEN"}, {ID: 6, Name: "unravel"}, {ID: 7, Name: "ravioli"},
	}}
	c := newStubClient(t, b)
	got, err := c.SuggestTags(context.Background(), " RAV")
	if err != nil {
		t.Fatalf("SuggestTags: %v", err)
	}
	if len(got) != 5 || got[0].ID != 1 || got[4].ID != 6 {
		t.Fatalf("unexpected suggestions: %+v", got)
	}
	none, err := c.SuggestTags(context.Background(), "  ")
	if err != nil || none != nil {
		t.Fatalf("empty filter: %+v err=%v", none, err)
	}
}

func TestOnThisDay_ExcludesSelectedDate(t *testing.T) {
	t.Parallel()
	b := &stubBackend{entries: []Entry{
		{ID: 1, Date: "2022-11-29"}, {ID: 2, Date: "2023-11-29"}, {ID: 3, Date: "2023-11-28"},
	}}
	c := newStubClient(t, b)
	got, err := c.OnThisDay(context.Background(), "2023-11-29")
	if err != nil {
		t.Fatalf("OnThisDay: %v", err)
	}
	if len(got) != 1 || got[0].ID != 1 {
		t.Fatalf("unexpected: %+v", got)
	}
	if _, err := c.OnThisDay(context.Background(), "nope"); err == nil {
		t.Fatal("expected date validation error")
	}
}
