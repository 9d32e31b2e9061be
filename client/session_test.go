package client

import (
	"net/http"
	"net/url"
	"testing"
)

func TestSession_RestoreAndClear(t *testing.T) {
	t.Parallel()
	s, err := NewSession("http://journal.example.com")
	if err != nil {
		t.Fatalf("NewSession: %v", err)
	}
	if s.CSRFToken() != "" || s.SessionID() != "" {
		t.Fatal("new session should be empty")
	}
	s.Restore("sess-1", "csrf-1")
	if s.CSRFToken() != "csrf-1" || s.SessionID() != "sess-1" {
		t.Fatalf("restore failed: csrf=%q session=%q", s.CSRFToken(), s.SessionID())
	}
	s.Clear()
	if s.CSRFToken() != "" || s.SessionID() != "" {
		t.Fatal("clear should drop cookies")
	}
}

func TestSession_ServerSetCookies(t *testing.T) {
	t.Parallel()
	s, err := NewSession("http://journal.example.com/")
	if err != nil {
		t.Fatalf("NewSession: %v", err)
	}
	u, _ := url.Parse("http://journal.example.com/api/csrf/")
	s.SetCookies(u, []*http.Cookie{{Name: "csrftoken", Value: "abc", Path: "/"}})
	if s.CSRFToken() != "abc" {
		t.Fatalf("csrf = %q", s.CSRFToken())
	}
	other, _ := url.Parse("http://elsewhere.example.org/")
	if len(s.Cookies(other)) != 0 {
		t.Fatal("cookies must not leak to other hosts")
	}
}

func TestNewSession_RequiresAbsoluteURL(t *testing.T) {
	t.Parallel()
	if _, err := NewSession("/api"); err == nil {
		t.Fatal("expected error for relative base url")
	}
}
