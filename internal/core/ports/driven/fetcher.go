package driven

import "context"

// FetchResult is the body and metadata of a fetched URL.
type FetchResult struct {
	// Body is the decoded textual response body.
	Body string

	// ContentType is the declared Content-Type header (may be empty).
	ContentType string

	// StatusCode is the HTTP status. Non-2xx codes are not errors.
	StatusCode int
}

// URLFetcher retrieves the content of a URL.
type URLFetcher interface {
	// Fetch performs a single GET. It returns an error only when no
	// response could be obtained (refused, unreachable, timed out).
	Fetch(ctx context.Context, rawURL string) (*FetchResult, error)
}
