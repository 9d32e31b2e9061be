// Package errors provides the tagged error variant returned by the request
// layer. Callers inspect Kind to tell transport failures from HTTP statuses
// and Data for the server's field-level validation messages.
package errors

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"sort"
	"strings"
)

// Kind classifies a request failure.
type Kind int

const (
	// Network means the request never produced an HTTP response
	// (DNS, connection refused, context cancelled, ...).
	Network Kind = iota

	// HTTP means the server answered with a non-2xx status.
	HTTP

	// Validation is a 400 answer carrying a JSON body of field errors.
	Validation
)

// String returns a human-readable representation of the kind.
func (k Kind) String() string {
	switch k {
	case Network:
		return "NetworkError"
	case HTTP:
		return "HttpError"
	case Validation:
		return "ValidationError"
	default:
		return fmt.Sprintf("Unknown(%d)", int(k))
	}
}

// Error is returned by every failed request.
type Error struct {
	Kind       Kind
	Op         string // METHOD path
	StatusCode int    // 0 for Network
	Data       any    // parsed JSON error body, nil when the body was not JSON
	Underlying error
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e.Kind == Network {
		return fmt.Sprintf("[%s] %s: %v", e.Kind, e.Op, e.Underlying)
	}
	return fmt.Sprintf("[%s] %s: HTTP %d", e.Kind, e.Op, e.StatusCode)
}

// Unwrap returns the underlying error for error chain compatibility.
func (e *Error) Unwrap() error {
	return e.Underlying
}

// NewNetworkError wraps a transport failure.
func NewNetworkError(op string, err error) *Error {
	return &Error{Kind: Network, Op: op, Underlying: err}
}

// NewHTTPError builds the error for a non-2xx response. data is the decoded
// JSON body or nil.
func NewHTTPError(op string, statusCode int, data any) *Error {
	kind := HTTP
	if statusCode == http.StatusBadRequest && data != nil {
		kind = Validation
	}
	return &Error{Kind: kind, Op: op, StatusCode: statusCode, Data: data}
}

// As extracts *Error from err's chain.
func As(err error) (*Error, bool) {
	var e *Error
	if errors.As(err, &e) {
		return e, true
	}
	return nil, false
}

// StatusCode returns the HTTP status carried by err, or 0.
func StatusCode(err error) int {
	if e, ok := As(err); ok {
		return e.StatusCode
	}
	return 0
}

// IsNotFound reports a 404 answer.
func IsNotFound(err error) bool { return StatusCode(err) == http.StatusNotFound }

// IsUnauthenticated reports a 401 or 403 answer.
func IsUnauthenticated(err error) bool {
	code := StatusCode(err)
	return code == http.StatusUnauthorized || code == http.StatusForbidden
}

// IsNetwork reports a transport-level failure.
func IsNetwork(err error) bool {
	e, ok := As(err)
	return ok && e.Kind == Network
}

// messageKeys are consulted in order when turning a DRF error body into a
// single line for the user.
var messageKeys = []string{"non_field_errors", "detail", "title", "mood", "name", "date"}

// UserMessage returns the best user-facing message for err. It prefers the
// well-known DRF keys, then the compact JSON body, then fallback.
func UserMessage(err error, fallback string) string {
	e, ok := As(err)
	if !ok || e.Data == nil {
		return fallback
	}
	obj, isObj := e.Data.(map[string]any)
	if !isObj {
		if s := flatten(e.Data); s != "" {
			return s
		}
		return fallback
	}
	for _, k := range messageKeys {
		if v, found := obj[k]; found {
			if s := flatten(v); s != "" {
				return s
			}
		}
	}
	keys := make([]string, 0, len(obj))
	for k := range obj {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		if s := flatten(obj[k]); s != "" {
			parts = append(parts, k+": "+s)
		}
	}
	if len(parts) > 0 {
		return strings.Join(parts, "; ")
	}
	if b, mErr := json.Marshal(e.Data); mErr == nil {
		return string(b)
	}
	return fallback
}

func flatten(v any) string {
	switch t := v.(type) {
	case string:
		return t
	case []any:
		parts := make([]string, 0, len(t))
		for _, item := range t {
			if s := flatten(item); s != "" {
				parts = append(parts, s)
			}
		}
		return strings.Join(parts, " ")
	case nil:
		return ""
	default:
		b, err := json.Marshal(t)
		if err != nil {
			return ""
		}
		return string(b)
	}
}
