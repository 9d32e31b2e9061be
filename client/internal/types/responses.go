package types

import (
	"bytes"
	"encoding/json"
)

// ------------------------------
// Response Types
// ------------------------------

// Page is the paginated list envelope. A bare JSON array decodes into a
// Page with no Next link.
type Page[T any] struct {
	Count    int    `json:"count"`
	Next     string `json:"next"`
	Previous string `json:"previous"`
	Results  []T    `json:"results"`
}

// HasMore reports whether another page can be fetched.
func (p *Page[T]) HasMore() bool { return p.Next != "" }

// First returns the first result or nil.
func (p *Page[T]) First() *T {
	if len(p.Results) == 0 {
		return nil
	}
	return &p.Results[0]
}

// UnmarshalJSON accepts both the envelope and a bare array.
func (p *Page[T]) UnmarshalJSON(b []byte) error {
	trimmed := bytes.TrimSpace(b)
	if len(trimmed) > 0 && trimmed[0] == '[' {
		var items []T
		if err := json.Unmarshal(trimmed, &items); err != nil {
			return err
		}
		*p = Page[T]{Count: len(items), Results: items}
		return nil
	}
	var env struct {
		Count    int     `json:"count"`
		Next     *string `json:"next"`
		Previous *string `json:"previous"`
		Results  []T     `json:"results"`
	}
	if err := json.Unmarshal(trimmed, &env); err != nil {
		return err
	}
	*p = Page[T]{Count: env.Count, Results: env.Results}
	if env.Next != nil {
		p.Next = *env.Next
	}
	if env.Previous != nil {
		p.Previous = *env.Previous
	}
	if p.Count == 0 {
		p.Count = len(p.Results)
	}
	return nil
}

// CSRFResponse is returned by GET /api/csrf/.
type CSRFResponse struct {
	CSRFToken string `json:"csrfToken"`
}
