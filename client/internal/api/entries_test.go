package api

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"

	clienterrors "github.com/bradenpeterson/JournalApp/client/internal/errors"
	"github.com/bradenpeterson/JournalApp/client/internal/types"
)

func TestGetEntryByDate_FirstOrNil(t *testing.T) {
	t.Parallel()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/entries/" {
			t.Errorf("path = %s", r.URL.Path)
		}
		switch r.URL.Query().Get("date") {
		case "2024-05-01":
			writeJSON(w, 200, map[string]any{"count": 2, "results": []map[string]any{
				{"id": 7, "date": "2024-05-01", "title": "first"},
				{"id": 8, "date": "2024-05-01", "title": "second"},
			}})
		default:
			writeJSON(w, 200, map[string]any{"count": 0, "results": []any{}})
		}
	}))
	defer srv.Close()

	rq := newRequester(srv)
	e, err := GetEntryByDate(context.Background(), rq, "2024-05-01")
	if err != nil {
		t.Fatalf("GetEntryByDate: %v", err)
	}
	if e == nil || e.ID != 7 || e.Title != "first" {
		t.Fatalf("expected first entry, got %+v", e)
	}
	none, err := GetEntryByDate(context.Background(), rq, "2024-05-02")
	if err != nil || none != nil {
		t.Fatalf("expected nil entry, got %+v err=%v", none, err)
	}
}

func TestGetEntryByDate_BareArray(t *testing.T) {
	t.Parallel()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, 200, []map[string]any{{"id": 3, "date": "2024-05-01"}})
	}))
	defer srv.Close()
	e, err := GetEntryByDate(context.Background(), newRequester(srv), "2024-05-01")
	if err != nil || e == nil || e.ID != 3 {
		t.Fatalf("unexpected: %+v err=%v", e, err)
	}
}

func TestGetEntryByDate_InvalidDate(t *testing.T) {
	t.Parallel()
	var hits int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&hits, 1)
	}))
	defer srv.Close()
	if _, err := GetEntryByDate(context.Background(), newRequester(srv), "05/01/2024"); err == nil {
		t.Fatal("expected validation error")
	}
	if atomic.LoadInt32(&hits) != 0 {
		t.Fatal("no request should be sent for an invalid date")
	}
}

func TestListAllEntries_FollowsNext(t *testing.T) {
	t.Parallel()
	var srv *httptest.Server
	srv = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Query().Get("search") != "rain" {
			t.Errorf("search lost: %s", r.URL.RawQuery)
		}
		if r.URL.Query().Get("page") == "2" {
			writeJSON(w, 200, map[string]any{"count": 3, "next": nil, "results": []map[string]any{{"id": 3}}})
			return
		}
		writeJSON(w, 200, map[string]any{"count": 3, "next": srv.URL + "/api/entries/?page=2&search=rain", "results": []map[string]any{{"id": 1}, {"id": 2}}})
	}))
	defer srv.Close()

	all, err := ListAllEntries(context.Background(), newRequester(srv), types.EntryFilter{Search: "rain"})
	if err != nil {
		t.Fatalf("ListAllEntries: %v", err)
	}
	if len(all) != 3 || all[2].ID != 3 {
		t.Fatalf("unexpected entries: %+v", all)
	}
}

func TestCreateEntry_PostsJSON(t *testing.T) {
	t.Parallel()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost || r.Header.Get("X-CSRFToken") != "tok" {
			t.Errorf("method=%s csrf=%q", r.Method, r.Header.Get("X-CSRFToken"))
		}
		var in types.EntryInput
		_ = json.NewDecoder(r.Body).Decode(&in)
		writeJSON(w, 201, map[string]any{"id": 11, "date": in.Date, "title": in.Title, "mood": in.Mood})
	}))
	defer srv.Close()

	e, err := CreateEntry(context.Background(), newRequester(srv), types.EntryInput{Date: "2024-05-01", Title: "Hi", Mood: types.MoodHappy})
	if err != nil {
		t.Fatalf("CreateEntry: %v", err)
	}
	if e.ID != 11 || e.Mood != types.MoodHappy {
		t.Fatalf("unexpected entry: %+v", e)
	}
	if _, err := CreateEntry(context.Background(), newRequester(srv), types.EntryInput{Date: "2024-05-01", Mood: "9"}); err == nil {
		t.Fatal("expected mood validation error")
	}
}

func TestSetEntryTags_SendsEmptyList(t *testing.T) {
	t.Parallel()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		b, _ := io.ReadAll(r.Body)
		if r.Method != http.MethodPatch || strings.TrimSpace(string(b)) != `{"tags":[]}` {
			t.Errorf("method=%s body=%s", r.Method, b)
		}
		writeJSON(w, 200, map[string]any{"id": 5, "tags": []any{}})
	}))
	defer srv.Close()
	if _, err := SetEntryTags(context.Background(), newRequester(srv), 5, nil); err != nil {
		t.Fatalf("SetEntryTags: %v", err)
	}
}

func TestPatchEntry_TagsPresence(t *testing.T) {
	t.Parallel()
	bodies := make(chan string, 2)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		b, _ := io.ReadAll(r.Body)
		bodies <- strings.TrimSpace(string(b))
		writeJSON(w, 200, map[string]any{"id": 5})
	}))
	defer srv.Close()
	rq := newRequester(srv)

	empty := []int64{}
	if _, err := PatchEntry(context.Background(), rq, 5, types.EntryPatch{Tags: &empty}); err != nil {
		t.Fatalf("PatchEntry: %v", err)
	}
	if got := <-bodies; got != `{"tags":[]}` {
		t.Fatalf("empty tags must be sent, body=%s", got)
	}

	title := "t"
	if _, err := PatchEntry(context.Background(), rq, 5, types.EntryPatch{Title: &title}); err != nil {
		t.Fatalf("PatchEntry: %v", err)
	}
	if got := <-bodies; got != `{"title":"t"}` {
		t.Fatalf("untouched tags must be omitted, body=%s", got)
	}
}

func TestUploadEntryImage_Multipart(t *testing.T) {
	t.Parallel()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !strings.HasPrefix(r.Header.Get("Content-Type"), "multipart/form-data") {
			t.Errorf("content-type = %s", r.Header.Get("Content-Type"))
		}
		if _, _, err := r.FormFile("image"); err != nil {
			t.Errorf("image part: %v", err)
		}
		writeJSON(w, 200, map[string]any{"id": 5, "image": "/media/pic.png"})
	}))
	defer srv.Close()
	e, err := UploadEntryImage(context.Background(), newRequester(srv), 5, "pic.png", strings.NewReader("png"))
	if err != nil || e.Image == nil || *e.Image != "/media/pic.png" {
		t.Fatalf("unexpected: %+v err=%v", e, err)
	}
}

func TestDeleteEntry_NonOKStatuses(t *testing.T) {
	t.Parallel()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer srv.Close()
	err := DeleteEntry(context.Background(), newRequester(srv), 99)
	if !clienterrors.IsNotFound(err) {
		t.Fatalf("expected not found, got %v", err)
	}
	if err := DeleteEntry(context.Background(), newRequester(srv), 0); err == nil {
		t.Fatal("expected id validation error")
	}
}

func TestEntries_NetworkFailure(t *testing.T) {
	t.Parallel()
	if _, err := GetEntry(context.Background(), failingRequester(), 1); !clienterrors.IsNetwork(err) {
		t.Fatalf("expected network error, got %v", err)
	}
	if _, err := GetStats(context.Background(), failingRequester()); !clienterrors.IsNetwork(err) {
		t.Fatalf("expected network error, got %v", err)
	}
}

func TestEntries_CancelledContextIsNetwork(t *testing.T) {
	t.Parallel()
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := GetEntry(ctx, failingRequester(), 1)
	if !clienterrors.IsNetwork(err) {
		t.Fatalf("expected network error, got %v", err)
	}
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled in chain, got %v", err)
	}
}

func TestGetEntriesByMonthDay(t *testing.T) {
	t.Parallel()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Query().Get("month_day") != "11-29" {
			t.Errorf("query = %s", r.URL.RawQuery)
		}
		writeJSON(w, 200, map[string]any{"results": []map[string]any{{"id": 1, "date": "2022-11-29"}}})
	}))
	defer srv.Close()
	got, err := GetEntriesByMonthDay(context.Background(), newRequester(srv), "11-29")
	if err != nil || len(got) != 1 {
		t.Fatalf("unexpected: %+v err=%v", got, err)
	}
	if _, err := GetEntriesByMonthDay(context.Background(), newRequester(srv), "1129"); err == nil {
		t.Fatal("expected month_day validation error")
	}
}

func TestGetStats(t *testing.T) {
	t.Parallel()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/entries/stats/" {
			t.Errorf("path = %s", r.URL.Path)
		}
		writeJSON(w, 200, map[string]any{"day_streak": 3, "week_streak": 1, "total_entries": 40, "total_words": 12000})
	}))
	defer srv.Close()
	s, err := GetStats(context.Background(), newRequester(srv))
	if err != nil || s.DayStreak != 3 || s.TotalWords != 12000 {
		t.Fatalf("unexpected: %+v err=%v", s, err)
	}
}
