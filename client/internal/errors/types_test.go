package errors

import (
	"context"
	"fmt"
	"testing"
)

func TestKindString(t *testing.T) {
	t.Parallel()
	if Network.String() != "NetworkError" || HTTP.String() != "HttpError" || Validation.String() != "ValidationError" {
		t.Fatalf("unexpected kind strings")
	}
	if Kind(42).String() != "Unknown(42)" {
		t.Fatalf("unexpected unknown kind string: %s", Kind(42))
	}
}

func TestNewHTTPError_Classification(t *testing.T) {
	t.Parallel()
	body := map[string]any{"title": []any{"This field is required."}}
	if e := NewHTTPError("POST /api/entries/", 400, body); e.Kind != Validation {
		t.Fatalf("400 with body should be Validation, got %s", e.Kind)
	}
	if e := NewHTTPError("POST /api/entries/", 400, nil); e.Kind != HTTP {
		t.Fatalf("400 without body should be HTTP, got %s", e.Kind)
	}
	if e := NewHTTPError("GET /api/entries/1/", 404, nil); e.Kind != HTTP || e.StatusCode != 404 {
		t.Fatalf("unexpected 404 error: %+v", e)
	}
}

func TestHelpers_WrappedChain(t *testing.T) {
	t.Parallel()
	err := fmt.Errorf("get entry: %w", NewHTTPError("GET /api/entries/9/", 404, nil))
	if !IsNotFound(err) {
		t.Fatal("expected IsNotFound through wrap")
	}
	if IsUnauthenticated(err) {
		t.Fatal("404 is not unauthenticated")
	}
	if StatusCode(err) != 404 {
		t.Fatalf("status = %d", StatusCode(err))
	}

	for _, code := range []int{401, 403} {
		if !IsUnauthenticated(NewHTTPError("GET /", code, nil)) {
			t.Fatalf("%d should be unauthenticated", code)
		}
	}

	netErr := NewNetworkError("GET /api/tags/", context.DeadlineExceeded)
	if !IsNetwork(netErr) || StatusCode(netErr) != 0 {
		t.Fatalf("unexpected network classification: %+v", netErr)
	}
	if netErr.Unwrap() != context.DeadlineExceeded {
		t.Fatal("unwrap should expose the transport error")
	}
}

func TestUserMessage(t *testing.T) {
	t.Parallel()
	cases := []struct {
		name string
		err  error
		want string
	}{
		{"plain error", fmt.Errorf("boom"), "fallback"},
		{"no data", NewHTTPError("GET /", 500, nil), "fallback"},
		{"non field", NewHTTPError("POST /", 400, map[string]any{"non_field_errors": []any{"Bad", "input"}}), "Bad input"},
		{"detail", NewHTTPError("GET /", 403, map[string]any{"detail": "Authentication credentials were not provided."}), "Authentication credentials were not provided."},
		{"mood field", NewHTTPError("POST /", 400, map[string]any{"mood": []any{"Invalid."}}), "Invalid."},
		{"other fields", NewHTTPError("POST /", 400, map[string]any{"b": []any{"two"}, "a": "one"}), "a: one; b: two"},
		{"array body", NewHTTPError("POST /", 400, []any{"first", "second"}), "first second"},
	}
	for _, tc := range cases {
		if got := UserMessage(tc.err, "fallback"); got != tc.want {
			t.Errorf("%s: got %q want %q", tc.name, got, tc.want)
		}
	}
}
