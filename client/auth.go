package client

import (
	"context"

	"github.com/rs/zerolog/log"

	"github.com/bradenpeterson/JournalApp/client/internal/api"
)

// SignIn primes the CSRF cookie and posts the credentials. On success the
// session cookie lives in c.Session().
func (c *Client) SignIn(ctx context.Context, creds Credentials) error {
	if err := api.SignIn(ctx, c.rc, creds); err != nil {
		return err
	}
	log.Debug().Str("email", creds.Email).Bool("has_session", c.session.SessionID() != "").Msg("signed in")
	return nil
}

// SignUp registers a new account. The caller checks password confirmation
// before calling.
func (c *Client) SignUp(ctx context.Context, in SignUpInput) error {
	return api.SignUp(ctx, c.rc, in)
}

// Logout ends the server session and clears local cookies even when the
// server call fails.
func (c *Client) Logout(ctx context.Context) error {
	err := api.Logout(ctx, c.rc)
	c.session.Clear()
	return err
}

// Authenticated reports whether the session can read protected resources.
func (c *Client) Authenticated(ctx context.Context) (bool, error) {
	return api.Probe(ctx, c.rc)
}
