package covdoc

import (
	"context"
	"time"
)

// RawPage holds the cleaned result of one fetch-and-extract cycle. It is
// transient: pages are chunked and persisted as chunks, never stored whole.
type RawPage struct {
	URL             string
	Content         string // cleaned, whitespace-collapsed text
	Title           string
	MetaDescription string
	ContentType     string
	StatusCode      int
	Links           []DiscoveredLink
	LastModified    time.Time
}

// FetchResponse is the raw outcome of an HTTP page fetch.
type FetchResponse struct {
	Body         string
	StatusCode   int
	ContentType  string
	LastModified time.Time
}

// Fetcher retrieves raw page content over HTTP.
type Fetcher interface {
	// Fetch issues a GET for the URL with the crawler's identifying
	// user agent. Network-level failures are returned as errors and
	// treated by callers as a failed page, not a fatal condition.
	Fetch(ctx context.Context, url string) (*FetchResponse, error)
}

// Extractor turns fetched HTML into a cleaned RawPage.
type Extractor interface {
	// Extract strips non-content markup, selects the primary content
	// container, collapses whitespace, and resolves every anchor through
	// the link classifier. baseDomain scopes internal/external
	// classification.
	Extract(html, pageURL, baseDomain string) (*RawPage, error)
}
