package services

import (
	"context"
	"encoding/json"
	"net/http"
)

// FetchJSON performs a single bounded-time GET of url and decodes the body
// into T. Any failure — transport error, non-200 status, malformed body —
// yields nil; the caller decides what a missing companion document means.
// No retries: the enclosing TTL cache keeps repeated page views from
// hammering the origin.
func FetchJSON[T any](ctx context.Context, client *http.Client, url string) *T {
	if url == "" {
		return nil
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil
	}

	resp, err := client.Do(req)
	if err != nil {
		return nil
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil
	}

	var out T
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return nil
	}
	return &out
}
