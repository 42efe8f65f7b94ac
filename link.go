package covdoc

import (
	"context"
	"net/url"
	"path"
	"strings"
	"time"
)

// LinkType classifies a discovered URL relative to the crawl's base domain.
type LinkType string

// Link types.
const (
	LinkInternal LinkType = "internal"
	LinkExternal LinkType = "external"
	LinkFile     LinkType = "file"
	LinkEmail    LinkType = "email"
	LinkTel      LinkType = "tel"
)

// LinkStatus tracks the crawl lifecycle of a discovered link.
type LinkStatus string

// Link crawl statuses.
const (
	LinkPending LinkStatus = "pending"
	LinkSuccess LinkStatus = "success"
	LinkFailed  LinkStatus = "failed"
	LinkSkipped LinkStatus = "skipped"
)

// DiscoveredLink represents a URL found during crawling.
// The URL is globally unique; links are upserted by URL and never deleted.
// Status transitions are the only mutation after creation.
type DiscoveredLink struct {
	URL          string     `json:"url"`
	SourceURL    string     `json:"sourceUrl"`
	Type         LinkType   `json:"linkType"`
	Text         string     `json:"linkText"`
	Status       LinkStatus `json:"crawlStatus"`
	LastAttempt  time.Time  `json:"lastCrawlAttempt"`
	ErrorMessage string     `json:"errorMessage,omitempty"`
}

// pageExtensions are path extensions treated as crawlable pages rather
// than files. An empty extension is also a page.
var pageExtensions = map[string]bool{
	".html": true,
	".htm":  true,
	".php":  true,
	".asp":  true,
	".aspx": true,
	".jsp":  true,
}

// ClassifyLink resolves a raw href found on sourceURL to an absolute URL and
// classifies it relative to baseDomain. It is a pure function: the same
// inputs always yield the same result.
//
// The bool result is false when the href cannot be resolved to a valid URL;
// invalid links are dropped, not reported as errors.
func ClassifyLink(href, sourceURL, baseDomain string, text string) (DiscoveredLink, bool) {
	href = strings.TrimSpace(href)
	if href == "" {
		return DiscoveredLink{}, false
	}

	// mailto: and tel: are classified before resolution; they are not
	// hierarchical URLs.
	if strings.HasPrefix(href, "mailto:") {
		return DiscoveredLink{URL: href, SourceURL: sourceURL, Type: LinkEmail, Text: text}, true
	}
	if strings.HasPrefix(href, "tel:") {
		return DiscoveredLink{URL: href, SourceURL: sourceURL, Type: LinkTel, Text: text}, true
	}

	base, err := url.Parse(sourceURL)
	if err != nil {
		return DiscoveredLink{}, false
	}
	ref, err := url.Parse(href)
	if err != nil {
		return DiscoveredLink{}, false
	}

	resolved := base.ResolveReference(ref)
	resolved.Fragment = ""
	if resolved.Hostname() == "" || (resolved.Scheme != "http" && resolved.Scheme != "https") {
		return DiscoveredLink{}, false
	}

	link := DiscoveredLink{
		URL:       resolved.String(),
		SourceURL: sourceURL,
		Text:      text,
	}

	ext := strings.ToLower(path.Ext(resolved.Path))
	switch {
	case ext != "" && !pageExtensions[ext]:
		link.Type = LinkFile
	case resolved.Hostname() == baseDomain || resolved.Hostname() == "www."+baseDomain:
		link.Type = LinkInternal
	default:
		link.Type = LinkExternal
	}

	return link, true
}

// LinkService persists discovered links keyed by URL.
type LinkService interface {
	// UpsertLinks inserts or updates links by URL. Existing rows keep their
	// crawl status unless the incoming link carries a non-empty status.
	UpsertLinks(ctx context.Context, links []DiscoveredLink) error

	// MarkLink records the outcome of a crawl attempt for a URL.
	// The link is created if it does not exist (seed URLs).
	MarkLink(ctx context.Context, url string, status LinkStatus, errMsg string) error

	// FindLinks retrieves links matching the filter.
	FindLinks(ctx context.Context, filter LinkFilter) ([]*DiscoveredLink, error)
}

// LinkFilter represents a filter for FindLinks.
type LinkFilter struct {
	URL    *string     `json:"url"`
	Type   *LinkType   `json:"linkType"`
	Status *LinkStatus `json:"crawlStatus"`

	Offset int `json:"offset"`
	Limit  int `json:"limit"`
}
