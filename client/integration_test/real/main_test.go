//go:build integration
// +build integration

package client_test

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/bradenpeterson/JournalApp/client"
)

// signedIn connects to TEST_BACKEND_URL with JOURNAL_EMAIL/JOURNAL_PASSWORD,
// skipping the test when no credentials are configured.
func signedIn(t *testing.T) (*client.Client, context.Context) {
	t.Helper()
	baseURL := os.Getenv("TEST_BACKEND_URL")
	if baseURL == "" {
		baseURL = "http://localhost:8000"
	}
	email, password := os.Getenv("JOURNAL_EMAIL"), os.Getenv("JOURNAL_PASSWORD")
	if email == "" || password == "" {
		t.Skip("JOURNAL_EMAIL and JOURNAL_PASSWORD not set")
	}

	c, err := client.New(baseURL)
	if err != nil {
		t.Fatalf("new client: %v", err)
	}
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	t.Cleanup(cancel)
	if err := c.SignIn(ctx, client.Credentials{Email: email, Password: password}); err != nil {
		t.Fatalf("sign in: %v", err)
	}
	return c, ctx
}
