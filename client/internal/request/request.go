// Package request is the single HTTP chokepoint of the SDK. Every resource
// call goes through Client.Do, which builds the URL, encodes the body,
// attaches the CSRF header on unsafe methods and normalizes the outcome
// into either a Response or an *errors.Error.
package request

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/rs/zerolog/log"

	clienterrors "github.com/bradenpeterson/JournalApp/client/internal/errors"
)

// CSRFHeader is the header Django reads the double-submit token from.
const CSRFHeader = "X-CSRFToken"

// HTTPClient interface for dependency injection.
type HTTPClient interface {
	Do(req *http.Request) (*http.Response, error)
}

// TokenSource yields the current CSRF token, or "" when none is known.
type TokenSource interface {
	CSRFToken() string
}

// Observer receives one callback per completed exchange. status is 0 when
// the request failed before a response arrived.
type Observer interface {
	ObserveRequest(method string, status int, elapsed time.Duration)
	ObserveMissingCSRF(method string)
}

// Options describe a single request.
type Options struct {
	Method string         // defaults to GET
	Body   any            // JSON-encoded unless it is a *RawBody
	Params map[string]any // merged into the query string; nil values skipped
	Header http.Header
}

// Client performs requests relative to BaseURL.
type Client struct {
	HTTP     HTTPClient
	BaseURL  string
	Session  TokenSource // optional
	Observer Observer    // optional
}

// Response is a successful (2xx) exchange.
type Response struct {
	StatusCode int
	Header     http.Header
	Body       []byte
}

// JSON reports whether the response declared a JSON content type.
func (r *Response) JSON() bool { return isJSON(r.Header) }

// Decode unmarshals a JSON body into v. An empty body leaves v untouched.
func (r *Response) Decode(v any) error {
	if len(bytes.TrimSpace(r.Body)) == 0 {
		return nil
	}
	if !r.JSON() {
		return fmt.Errorf("decode: response is %q, not JSON", r.Header.Get("Content-Type"))
	}
	return json.Unmarshal(r.Body, v)
}

// Do sends one request. There is no retry: a failure is returned as is.
func (c *Client) Do(ctx context.Context, path string, opts Options) (*Response, error) {
	method := strings.ToUpper(opts.Method)
	if method == "" {
		method = http.MethodGet
	}
	op := method + " " + path

	target, err := c.resolve(path, opts.Params)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	var (
		body        io.Reader
		contentType string
	)
	switch b := opts.Body.(type) {
	case nil:
	case *RawBody:
		body = bytes.NewReader(b.Data)
		contentType = b.ContentType
	default:
		buf, mErr := json.Marshal(b)
		if mErr != nil {
			return nil, fmt.Errorf("%s: encode body: %w", op, mErr)
		}
		body = bytes.NewReader(buf)
		contentType = "application/json"
	}

	req, err := http.NewRequestWithContext(ctx, method, target, body)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	req.Header.Set("Accept", "application/json")
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	for k, vs := range opts.Header {
		for _, v := range vs {
			req.Header.Add(k, v)
		}
	}
	if unsafeMethod(method) {
		c.attachCSRF(req)
	}

	start := time.Now()
	resp, err := c.HTTP.Do(req)
	if err != nil {
		c.observe(method, 0, time.Since(start))
		return nil, clienterrors.NewNetworkError(op, err)
	}
	defer func() { _ = resp.Body.Close() }()

	data, err := io.ReadAll(resp.Body)
	c.observe(method, resp.StatusCode, time.Since(start))
	if err != nil {
		return nil, clienterrors.NewNetworkError(op, err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, clienterrors.NewHTTPError(op, resp.StatusCode, errorBody(resp.Header, data))
	}
	return &Response{StatusCode: resp.StatusCode, Header: resp.Header, Body: data}, nil
}

// resolve joins path to BaseURL unless it is already absolute, then merges
// params into the query string.
func (c *Client) resolve(path string, params map[string]any) (string, error) {
	var (
		u   *url.URL
		err error
	)
	if strings.HasPrefix(path, "http://") || strings.HasPrefix(path, "https://") {
		u, err = url.Parse(path)
	} else {
		u, err = url.Parse(strings.TrimRight(c.BaseURL, "/") + "/" + strings.TrimLeft(path, "/"))
	}
	if err != nil {
		return "", err
	}
	if len(params) == 0 {
		return u.String(), nil
	}
	q := u.Query()
	for k, v := range params {
		if v == nil {
			continue
		}
		q.Set(k, fmt.Sprint(v))
	}
	u.RawQuery = q.Encode()
	return u.String(), nil
}

// attachCSRF sets the token header unless the caller supplied one, and a
// Referer for Django's strict HTTPS check.
func (c *Client) attachCSRF(req *http.Request) {
	var token string
	if c.Session != nil {
		token = c.Session.CSRFToken()
	}
	switch {
	case req.Header.Get(CSRFHeader) != "":
	case token != "":
		req.Header.Set(CSRFHeader, token)
	default:
		log.Warn().Str("method", req.Method).Str("url", req.URL.String()).Msg("unsafe request without CSRF token")
		if c.Observer != nil {
			c.Observer.ObserveMissingCSRF(req.Method)
		}
	}
	if req.Header.Get("Referer") == "" && c.BaseURL != "" {
		req.Header.Set("Referer", strings.TrimRight(c.BaseURL, "/")+"/")
	}
}

func (c *Client) observe(method string, status int, elapsed time.Duration) {
	if c.Observer != nil {
		c.Observer.ObserveRequest(method, status, elapsed)
	}
}

func unsafeMethod(m string) bool {
	switch m {
	case http.MethodGet, http.MethodHead, http.MethodOptions, http.MethodTrace:
		return false
	}
	return true
}

func isJSON(h http.Header) bool {
	mt, _, err := mime.ParseMediaType(h.Get("Content-Type"))
	if err != nil {
		return false
	}
	return mt == "application/json" || strings.HasSuffix(mt, "+json")
}

// errorBody decodes a JSON error payload; anything else yields nil.
func errorBody(h http.Header, data []byte) any {
	if !isJSON(h) || len(bytes.TrimSpace(data)) == 0 {
		return nil
	}
	var v any
	if err := json.Unmarshal(data, &v); err != nil {
		return nil
	}
	return v
}
