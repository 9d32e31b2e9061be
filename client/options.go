package client

// This file defines functional options that configure the Client during
// construction. Keeping them in a standalone file avoids cluttering
// client.go and makes it easy to discover all available knobs at a glance.

import (
	"fmt"
	"net/http"
	"time"
)

// Option configures a Client during construction in New.
//
// Transport wrappers (debug logging, request ids) are installed after all
// options ran, so the order of options does not matter.
type Option func(*Client) error

// WithHTTPClient uses a copy of hc as the underlying HTTP client. Its Jar is
// replaced with the client's Session.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) error {
		if hc == nil {
			return fmt.Errorf("http client must not be nil")
		}
		cp := *hc
		c.http = &cp
		return nil
	}
}

// WithHTTPTimeout sets the underlying http.Client Timeout used by the SDK.
//
// Prefer per-request context deadlines where possible; this timeout is a
// coarse safety net. The value must be greater than zero.
func WithHTTPTimeout(d time.Duration) Option {
	return func(c *Client) error {
		if d <= 0 {
			return fmt.Errorf("http timeout must be > 0")
		}
		c.timeout = d
		return nil
	}
}

// WithDebugLogging dumps each request/response at debug level when enabled.
// Do not enable this in production: dumps include cookies and bodies.
func WithDebugLogging(enabled bool) Option {
	return func(c *Client) error {
		c.debug = c.debug || enabled
		return nil
	}
}

// WithSession shares an existing Session (cookie jar) with the client.
func WithSession(s *Session) Option {
	return func(c *Client) error {
		if s == nil {
			return fmt.Errorf("session must not be nil")
		}
		c.session = s
		return nil
	}
}
