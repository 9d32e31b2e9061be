package api

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync"

	"github.com/bradenpeterson/JournalApp/client/internal/request"
)

// errRT is an http.RoundTripper that always returns an error (simulates network failure).
type errRT struct{}

func (e *errRT) RoundTrip(*http.Request) (*http.Response, error) { return nil, fmt.Errorf("boom") }

type staticToken string

func (s staticToken) CSRFToken() string { return string(s) }

// newRequester points a request client at srv with a fixed CSRF token.
func newRequester(srv *httptest.Server) *request.Client {
	return &request.Client{HTTP: srv.Client(), BaseURL: srv.URL, Session: staticToken("tok")}
}

func failingRequester() *request.Client {
	return &request.Client{HTTP: &http.Client{Transport: &errRT{}}, BaseURL: "http://example.com"}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// callLog records "METHOD path" lines from handler goroutines.
type callLog struct {
	mu    sync.Mutex
	lines []string
}

func (c *callLog) add(r *http.Request) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.lines = append(c.lines, r.Method+" "+r.URL.Path)
}

func (c *callLog) snapshot() []string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]string(nil), c.lines...)
}
