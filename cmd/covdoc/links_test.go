package main_test

import (
	"bytes"
	"context"
	"errors"
	"testing"

	"github.com/covdoc/covdoc"
	main "github.com/covdoc/covdoc/cmd/covdoc"
	"github.com/covdoc/covdoc/mock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLinksCmd_Run(t *testing.T) {
	t.Parallel()

	t.Run("lists links with status and type", func(t *testing.T) {
		t.Parallel()

		links := &mock.LinkService{
			FindLinksFn: func(_ context.Context, filter covdoc.LinkFilter) ([]*covdoc.DiscoveredLink, error) {
				return []*covdoc.DiscoveredLink{
					{URL: "https://hrcaonline.org/covenants", Type: covdoc.LinkInternal, Status: covdoc.LinkSuccess},
					{URL: "https://example.com/hoa", Type: covdoc.LinkExternal, Status: covdoc.LinkSkipped},
				}, nil
			},
		}

		stdout := &bytes.Buffer{}
		stderr := &bytes.Buffer{}
		deps := &main.Dependencies{Ctx: context.Background(), Stdout: stdout, Stderr: stderr, Links: links}

		cmd := &main.LinksCmd{Limit: 50}
		err := cmd.Run(deps)

		require.NoError(t, err)
		output := stdout.String()
		assert.Contains(t, output, "https://hrcaonline.org/covenants")
		assert.Contains(t, output, "success")
		assert.Contains(t, output, "external")
	})

	t.Run("passes status and type filters through", func(t *testing.T) {
		t.Parallel()

		var gotFilter covdoc.LinkFilter
		links := &mock.LinkService{
			FindLinksFn: func(_ context.Context, filter covdoc.LinkFilter) ([]*covdoc.DiscoveredLink, error) {
				gotFilter = filter
				return nil, nil
			},
		}

		stdout := &bytes.Buffer{}
		stderr := &bytes.Buffer{}
		deps := &main.Dependencies{Ctx: context.Background(), Stdout: stdout, Stderr: stderr, Links: links}

		cmd := &main.LinksCmd{Status: "pending", Type: "internal", Limit: 10}
		err := cmd.Run(deps)

		require.NoError(t, err)
		require.NotNil(t, gotFilter.Status)
		assert.Equal(t, covdoc.LinkPending, *gotFilter.Status)
		require.NotNil(t, gotFilter.Type)
		assert.Equal(t, covdoc.LinkInternal, *gotFilter.Type)
		assert.Equal(t, 10, gotFilter.Limit)
	})

	t.Run("shows helpful message when no links exist", func(t *testing.T) {
		t.Parallel()

		links := &mock.LinkService{
			FindLinksFn: func(_ context.Context, filter covdoc.LinkFilter) ([]*covdoc.DiscoveredLink, error) {
				return nil, nil
			},
		}

		stdout := &bytes.Buffer{}
		stderr := &bytes.Buffer{}
		deps := &main.Dependencies{Ctx: context.Background(), Stdout: stdout, Stderr: stderr, Links: links}

		cmd := &main.LinksCmd{Limit: 50}
		err := cmd.Run(deps)

		require.NoError(t, err)
		assert.Contains(t, stdout.String(), "No links found")
	})

	t.Run("returns error when FindLinks fails", func(t *testing.T) {
		t.Parallel()

		dbErr := errors.New("database connection failed")
		links := &mock.LinkService{
			FindLinksFn: func(_ context.Context, filter covdoc.LinkFilter) ([]*covdoc.DiscoveredLink, error) {
				return nil, dbErr
			},
		}

		stdout := &bytes.Buffer{}
		stderr := &bytes.Buffer{}
		deps := &main.Dependencies{Ctx: context.Background(), Stdout: stdout, Stderr: stderr, Links: links}

		cmd := &main.LinksCmd{Limit: 50}
		err := cmd.Run(deps)

		require.Error(t, err)
		assert.Equal(t, dbErr, err)
		assert.Contains(t, stderr.String(), "error:")
	})
}
