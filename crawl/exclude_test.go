package crawl_test

import (
	"testing"

	"github.com/covdoc/covdoc/crawl"
	"github.com/stretchr/testify/assert"
)

func TestShouldCrawl(t *testing.T) {
	t.Parallel()

	t.Run("allows ordinary pages", func(t *testing.T) {
		t.Parallel()

		for _, url := range []string{
			"https://hrcaonline.org/Property-Owners/Covenants",
			"https://hrcaonline.org/forms.aspx",
			"https://hrcaonline.org/docs/guidelines.pdf",
		} {
			assert.True(t, crawl.ShouldCrawl(url), url)
		}
	})

	t.Run("rejects auth, admin, and utility endpoints", func(t *testing.T) {
		t.Parallel()

		for _, url := range []string{
			"https://hrcaonline.org/admin/settings",
			"https://hrcaonline.org/Login",
			"https://hrcaonline.org/logout",
			"https://hrcaonline.org/search?q=fence",
			"https://hrcaonline.org/calendar/2025",
			"https://hrcaonline.org/events?month=6",
		} {
			assert.False(t, crawl.ShouldCrawl(url), url)
		}
	})

	t.Run("rejects asset and media files", func(t *testing.T) {
		t.Parallel()

		for _, url := range []string{
			"https://hrcaonline.org/logo.png",
			"https://hrcaonline.org/styles.css",
			"https://hrcaonline.org/app.js?v=3",
			"https://hrcaonline.org/video.mp4",
		} {
			assert.False(t, crawl.ShouldCrawl(url), url)
		}
	})

	t.Run("rejects non-http schemes and anchors", func(t *testing.T) {
		t.Parallel()

		assert.False(t, crawl.ShouldCrawl("mailto:info@hrcaonline.org"))
		assert.False(t, crawl.ShouldCrawl("tel:+13037911818"))
		assert.False(t, crawl.ShouldCrawl("https://hrcaonline.org/page#section"))
	})
}
