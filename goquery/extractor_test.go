package goquery_test

import (
	"testing"

	"github.com/covdoc/covdoc"
	"github.com/covdoc/covdoc/goquery"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExtractor_Extract(t *testing.T) {
	t.Parallel()

	const (
		pageURL = "https://hrcaonline.org/Property-Owners/Covenants"
		domain  = "hrcaonline.org"
	)

	t.Run("extracts title, description, and main content", func(t *testing.T) {
		t.Parallel()

		html := `<!DOCTYPE html>
<html>
<head>
	<title>Covenant Guidelines</title>
	<meta name="description" content="Rules for property improvements.">
</head>
<body>
<nav><a href="/home">Home</a></nav>
<main>
	<h1>Fence   Rules</h1>
	<p>Fences must be
	painted Highlands Ranch Brown.</p>
</main>
<footer>Copyright</footer>
</body>
</html>`

		e := goquery.NewExtractor()
		page, err := e.Extract(html, pageURL, domain)

		require.NoError(t, err)
		assert.Equal(t, pageURL, page.URL)
		assert.Equal(t, "Covenant Guidelines", page.Title)
		assert.Equal(t, "Rules for property improvements.", page.MetaDescription)
		assert.Equal(t, "Fence Rules Fences must be painted Highlands Ranch Brown.", page.Content)
	})

	t.Run("strips scripts, styles, and navigation chrome", func(t *testing.T) {
		t.Parallel()

		html := `<html><body>
<script>var x = 1;</script>
<style>.a { color: red; }</style>
<div class="menu">Menu items</div>
<div id="sidebar">Sidebar</div>
<main><p>Actual rules text.</p></main>
</body></html>`

		e := goquery.NewExtractor()
		page, err := e.Extract(html, pageURL, domain)

		require.NoError(t, err)
		assert.Equal(t, "Actual rules text.", page.Content)
	})

	t.Run("falls back to body when no content container matches", func(t *testing.T) {
		t.Parallel()

		html := `<html><body><p>Plain body text.</p></body></html>`

		e := goquery.NewExtractor()
		page, err := e.Extract(html, pageURL, domain)

		require.NoError(t, err)
		assert.Equal(t, "Plain body text.", page.Content)
	})

	t.Run("classifies every anchor on the page", func(t *testing.T) {
		t.Parallel()

		html := `<html><body>
<nav><a href="/Property-Owners/Forms">Forms</a></nav>
<main>
	<a href="https://example.com/other">External</a>
	<a href="/docs/guidelines.pdf">Guidelines PDF</a>
	<a href="mailto:info@hrcaonline.org">Email us</a>
</main>
</body></html>`

		e := goquery.NewExtractor()
		page, err := e.Extract(html, pageURL, domain)

		require.NoError(t, err)
		require.Len(t, page.Links, 4)

		byURL := make(map[string]covdoc.DiscoveredLink)
		for _, l := range page.Links {
			byURL[l.URL] = l
		}

		assert.Equal(t, covdoc.LinkInternal, byURL["https://hrcaonline.org/Property-Owners/Forms"].Type)
		assert.Equal(t, covdoc.LinkExternal, byURL["https://example.com/other"].Type)
		assert.Equal(t, covdoc.LinkFile, byURL["https://hrcaonline.org/docs/guidelines.pdf"].Type)
		assert.Equal(t, covdoc.LinkEmail, byURL["mailto:info@hrcaonline.org"].Type)
		assert.Equal(t, "Forms", byURL["https://hrcaonline.org/Property-Owners/Forms"].Text)
	})

	t.Run("deduplicates repeated links", func(t *testing.T) {
		t.Parallel()

		html := `<html><body>
<a href="/About">About</a>
<a href="/About">About again</a>
<a href="/About#team">About team</a>
</body></html>`

		e := goquery.NewExtractor()
		page, err := e.Extract(html, pageURL, domain)

		require.NoError(t, err)
		require.Len(t, page.Links, 1)
		assert.Equal(t, "https://hrcaonline.org/About", page.Links[0].URL)
	})

	t.Run("drops unresolvable anchors", func(t *testing.T) {
		t.Parallel()

		html := `<html><body>
<a href="javascript:void(0)">JS</a>
<a href="">Empty</a>
<main>Content.</main>
</body></html>`

		e := goquery.NewExtractor()
		page, err := e.Extract(html, pageURL, domain)

		require.NoError(t, err)
		assert.Empty(t, page.Links)
	})
}
