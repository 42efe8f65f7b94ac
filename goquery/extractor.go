// Package goquery provides HTML content extraction using the goquery library.
package goquery

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/covdoc/covdoc"
)

// Ensure type implements interface.
var _ covdoc.Extractor = (*Extractor)(nil)

// Extractor parses HTML pages into plain text plus classified outbound links.
type Extractor struct{}

// NewExtractor returns a new Extractor.
func NewExtractor() *Extractor {
	return &Extractor{}
}

// Chrome (navigation, scripts, styling) removed before text extraction.
const chromeSelector = "script, style, nav, footer, .navigation, .menu, #sidebar"

// Containers tried in order for the page's main content. The document body
// is the fallback when none match.
var contentSelectors = []string{"main", ".main", ".content", "#content", "article"}

// Extract parses html into a RawPage: title, meta description, main-content
// plain text with whitespace collapsed, and every anchor classified relative
// to baseDomain. Anchors that cannot be resolved are dropped.
func (e *Extractor) Extract(html, pageURL, baseDomain string) (*covdoc.RawPage, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil, covdoc.Errorf(covdoc.EINVALID, "failed to parse HTML: %v", err)
	}

	page := &covdoc.RawPage{
		URL:   pageURL,
		Title: strings.TrimSpace(doc.Find("title").First().Text()),
	}
	if desc, ok := doc.Find(`meta[name="description"]`).Attr("content"); ok {
		page.MetaDescription = strings.TrimSpace(desc)
	}

	// Collect links from the full document before stripping chrome;
	// navigation links are exactly what the crawl frontier needs.
	seen := make(map[string]bool)
	doc.Find("a[href]").Each(func(_ int, sel *goquery.Selection) {
		href, _ := sel.Attr("href")
		link, ok := covdoc.ClassifyLink(href, pageURL, baseDomain, strings.TrimSpace(sel.Text()))
		if !ok || seen[link.URL] {
			return
		}
		seen[link.URL] = true
		page.Links = append(page.Links, link)
	})

	doc.Find(chromeSelector).Remove()

	content := doc.Find("body")
	for _, selector := range contentSelectors {
		if sel := doc.Find(selector); sel.Length() > 0 {
			content = sel.First()
			break
		}
	}
	page.Content = collapseWhitespace(content.Text())

	return page, nil
}

// collapseWhitespace normalizes runs of whitespace to single spaces.
func collapseWhitespace(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
