package sqlite_test

import (
	"context"
	"testing"

	"github.com/covdoc/covdoc"
	"github.com/covdoc/covdoc/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func ptr[T any](v T) *T { return &v }

func TestLinkService_UpsertLinks(t *testing.T) {
	t.Parallel()

	t.Run("inserts new links with pending status by default", func(t *testing.T) {
		t.Parallel()

		db := MustOpenDB(t)
		s := sqlite.NewLinkService(db)
		ctx := context.Background()

		err := s.UpsertLinks(ctx, []covdoc.DiscoveredLink{
			{URL: "https://hrcaonline.org/a", SourceURL: "https://hrcaonline.org", Type: covdoc.LinkInternal, Text: "A"},
			{URL: "https://example.com/b", SourceURL: "https://hrcaonline.org", Type: covdoc.LinkExternal, Status: covdoc.LinkSkipped},
		})
		require.NoError(t, err)

		links, err := s.FindLinks(ctx, covdoc.LinkFilter{})
		require.NoError(t, err)
		require.Len(t, links, 2)

		assert.Equal(t, covdoc.LinkSkipped, links[0].Status) // example.com sorts first
		assert.Equal(t, covdoc.LinkPending, links[1].Status)
	})

	t.Run("re-discovery preserves existing crawl status", func(t *testing.T) {
		t.Parallel()

		db := MustOpenDB(t)
		s := sqlite.NewLinkService(db)
		ctx := context.Background()

		const url = "https://hrcaonline.org/a"

		require.NoError(t, s.UpsertLinks(ctx, []covdoc.DiscoveredLink{
			{URL: url, Type: covdoc.LinkInternal},
		}))
		require.NoError(t, s.MarkLink(ctx, url, covdoc.LinkSuccess, ""))

		// Discovered again from another page.
		require.NoError(t, s.UpsertLinks(ctx, []covdoc.DiscoveredLink{
			{URL: url, SourceURL: "https://hrcaonline.org/other", Type: covdoc.LinkInternal, Text: "again"},
		}))

		links, err := s.FindLinks(ctx, covdoc.LinkFilter{URL: ptr(url)})
		require.NoError(t, err)
		require.Len(t, links, 1)
		assert.Equal(t, covdoc.LinkSuccess, links[0].Status)
		assert.Equal(t, "https://hrcaonline.org/other", links[0].SourceURL)
	})

	t.Run("rejects links without a URL", func(t *testing.T) {
		t.Parallel()

		db := MustOpenDB(t)
		s := sqlite.NewLinkService(db)

		err := s.UpsertLinks(context.Background(), []covdoc.DiscoveredLink{{Type: covdoc.LinkInternal}})

		require.Error(t, err)
		assert.Equal(t, covdoc.EINVALID, covdoc.ErrorCode(err))
	})
}

func TestLinkService_MarkLink(t *testing.T) {
	t.Parallel()

	t.Run("records the crawl outcome", func(t *testing.T) {
		t.Parallel()

		db := MustOpenDB(t)
		s := sqlite.NewLinkService(db)
		ctx := context.Background()

		const url = "https://hrcaonline.org/a"
		require.NoError(t, s.UpsertLinks(ctx, []covdoc.DiscoveredLink{{URL: url, Type: covdoc.LinkInternal}}))

		require.NoError(t, s.MarkLink(ctx, url, covdoc.LinkFailed, "HTTP 500"))

		links, err := s.FindLinks(ctx, covdoc.LinkFilter{URL: ptr(url)})
		require.NoError(t, err)
		require.Len(t, links, 1)
		assert.Equal(t, covdoc.LinkFailed, links[0].Status)
		assert.Equal(t, "HTTP 500", links[0].ErrorMessage)
		assert.False(t, links[0].LastAttempt.IsZero())
	})

	t.Run("creates the row for never-discovered seed URLs", func(t *testing.T) {
		t.Parallel()

		db := MustOpenDB(t)
		s := sqlite.NewLinkService(db)
		ctx := context.Background()

		require.NoError(t, s.MarkLink(ctx, "https://hrcaonline.org/seed", covdoc.LinkSuccess, ""))

		links, err := s.FindLinks(ctx, covdoc.LinkFilter{URL: ptr("https://hrcaonline.org/seed")})
		require.NoError(t, err)
		require.Len(t, links, 1)
		assert.Equal(t, covdoc.LinkSuccess, links[0].Status)
	})
}

func TestLinkService_FindLinks(t *testing.T) {
	t.Parallel()

	seed := func(t *testing.T, s *sqlite.LinkService) {
		t.Helper()
		require.NoError(t, s.UpsertLinks(context.Background(), []covdoc.DiscoveredLink{
			{URL: "https://hrcaonline.org/a", Type: covdoc.LinkInternal},
			{URL: "https://hrcaonline.org/b", Type: covdoc.LinkInternal, Status: covdoc.LinkSuccess},
			{URL: "https://example.com/c", Type: covdoc.LinkExternal, Status: covdoc.LinkSkipped},
			{URL: "https://hrcaonline.org/d.pdf", Type: covdoc.LinkFile, Status: covdoc.LinkSkipped},
		}))
	}

	t.Run("filters by type", func(t *testing.T) {
		t.Parallel()

		db := MustOpenDB(t)
		s := sqlite.NewLinkService(db)
		seed(t, s)

		links, err := s.FindLinks(context.Background(), covdoc.LinkFilter{Type: ptr(covdoc.LinkInternal)})
		require.NoError(t, err)
		assert.Len(t, links, 2)
	})

	t.Run("filters by status", func(t *testing.T) {
		t.Parallel()

		db := MustOpenDB(t)
		s := sqlite.NewLinkService(db)
		seed(t, s)

		links, err := s.FindLinks(context.Background(), covdoc.LinkFilter{Status: ptr(covdoc.LinkPending)})
		require.NoError(t, err)
		require.Len(t, links, 1)
		assert.Equal(t, "https://hrcaonline.org/a", links[0].URL)
	})

	t.Run("applies limit and offset", func(t *testing.T) {
		t.Parallel()

		db := MustOpenDB(t)
		s := sqlite.NewLinkService(db)
		seed(t, s)

		links, err := s.FindLinks(context.Background(), covdoc.LinkFilter{Limit: 2, Offset: 1})
		require.NoError(t, err)
		assert.Len(t, links, 2)
	})
}
