package client_test

import (
	"context"
	"net/http/httptest"
	"testing"

	"github.com/bradenpeterson/JournalApp/client"
	"github.com/bradenpeterson/JournalApp/internal/fakeapi"
)

const (
	testEmail    = "ada@example.com"
	testPassword = "secret"
)

// newBackend starts an in-memory backend with one account.
func newBackend(t *testing.T, opts fakeapi.Options) *httptest.Server {
	t.Helper()
	s := fakeapi.New(opts)
	if _, err := s.Store().AddUser(fakeapi.User{Email: testEmail, Password: testPassword}); err != nil {
		t.Fatalf("seed user: %v", err)
	}
	srv := httptest.NewServer(s)
	t.Cleanup(srv.Close)
	return srv
}

// signedIn returns a client with a live session on srv.
func signedIn(t *testing.T, srv *httptest.Server) *client.Client {
	t.Helper()
	c, err := client.New(srv.URL)
	if err != nil {
		t.Fatalf("new client: %v", err)
	}
	if err := c.SignIn(context.Background(), client.Credentials{Email: testEmail, Password: testPassword}); err != nil {
		t.Fatalf("sign in: %v", err)
	}
	return c
}
