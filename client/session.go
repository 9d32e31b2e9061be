package client

import (
	"fmt"
	"net/http"
	"net/http/cookiejar"
	"net/url"
	"sync"

	"golang.org/x/net/publicsuffix"
)

const (
	csrfCookieName    = "csrftoken"
	sessionCookieName = "sessionid"
)

// Session holds the cookies that authenticate the client: Django's
// sessionid and the csrftoken used for the double-submit check. It is an
// http.CookieJar, so the http.Client stores server-set cookies in it.
// Nothing is written to disk.
type Session struct {
	base *url.URL

	mu  sync.RWMutex
	jar *cookiejar.Jar
}

// NewSession returns an empty session scoped to baseURL.
func NewSession(baseURL string) (*Session, error) {
	u, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("session: parse base url: %w", err)
	}
	if u.Scheme == "" || u.Host == "" {
		return nil, fmt.Errorf("session: base url %q must be absolute", baseURL)
	}
	jar, err := newJar()
	if err != nil {
		return nil, err
	}
	return &Session{base: u, jar: jar}, nil
}

func newJar() (*cookiejar.Jar, error) {
	return cookiejar.New(&cookiejar.Options{PublicSuffixList: publicsuffix.List})
}

// SetCookies implements http.CookieJar.
func (s *Session) SetCookies(u *url.URL, cookies []*http.Cookie) {
	s.mu.RLock()
	jar := s.jar
	s.mu.RUnlock()
	jar.SetCookies(u, cookies)
}

// Cookies implements http.CookieJar.
func (s *Session) Cookies(u *url.URL) []*http.Cookie {
	s.mu.RLock()
	jar := s.jar
	s.mu.RUnlock()
	return jar.Cookies(u)
}

// CSRFToken returns the csrftoken cookie value, or "".
func (s *Session) CSRFToken() string { return s.cookie(csrfCookieName) }

// SessionID returns the sessionid cookie value, or "".
func (s *Session) SessionID() string { return s.cookie(sessionCookieName) }

// Restore seeds the jar with previously issued cookie values. Empty values
// are skipped.
func (s *Session) Restore(sessionID, csrfToken string) {
	var cookies []*http.Cookie
	if sessionID != "" {
		cookies = append(cookies, &http.Cookie{Name: sessionCookieName, Value: sessionID, Path: "/"})
	}
	if csrfToken != "" {
		cookies = append(cookies, &http.Cookie{Name: csrfCookieName, Value: csrfToken, Path: "/"})
	}
	if len(cookies) > 0 {
		s.SetCookies(s.base, cookies)
	}
}

// Clear drops every cookie.
func (s *Session) Clear() {
	jar, err := newJar()
	if err != nil {
		// cookiejar.New does not fail in practice
		return
	}
	s.mu.Lock()
	s.jar = jar
	s.mu.Unlock()
}

func (s *Session) cookie(name string) string {
	for _, c := range s.Cookies(s.base) {
		if c.Name == name {
			return c.Value
		}
	}
	return ""
}
