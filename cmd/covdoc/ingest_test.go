package main_test

import (
	"bytes"
	"context"
	"testing"

	"github.com/covdoc/covdoc"
	main "github.com/covdoc/covdoc/cmd/covdoc"
	"github.com/covdoc/covdoc/crawl"
	"github.com/covdoc/covdoc/mock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIngestCmd_Run(t *testing.T) {
	t.Parallel()

	t.Run("ingests URLs and prints a summary", func(t *testing.T) {
		t.Parallel()

		content := "Section 3.1 Every fence must be painted an approved brown color. " +
			"The committee reviews each application before any exterior change is made to the property."

		ingester := &crawl.Ingester{
			Fetcher: &mock.Fetcher{
				FetchFn: func(_ context.Context, url string) (*covdoc.FetchResponse, error) {
					return &covdoc.FetchResponse{StatusCode: 200, Body: content}, nil
				},
			},
			Extractor: &mock.Extractor{
				ExtractFn: func(html, pageURL, baseDomain string) (*covdoc.RawPage, error) {
					return &covdoc.RawPage{URL: pageURL, Content: html}, nil
				},
			},
			Embedder: &mock.Embedder{
				EmbedDocumentsFn: func(_ context.Context, texts []string) ([][]float32, error) {
					vectors := make([][]float32, len(texts))
					for i := range texts {
						vectors[i] = []float32{1, 0, 0}
					}
					return vectors, nil
				},
			},
			Chunks: &mock.ChunkService{
				ReplaceChunksFn: func(_ context.Context, sourceURL string, chunks []*covdoc.Chunk) error {
					return nil
				},
			},
		}

		stdout := &bytes.Buffer{}
		stderr := &bytes.Buffer{}
		deps := &main.Dependencies{Ctx: context.Background(), Stdout: stdout, Stderr: stderr, Ingester: ingester}

		cmd := &main.IngestCmd{URLs: []string{"https://hrcaonline.org/covenants"}, Concurrency: 1}
		err := cmd.Run(deps)

		require.NoError(t, err)
		assert.Contains(t, stdout.String(), "Ingested 1 sources")
	})

	t.Run("rejects an empty invocation", func(t *testing.T) {
		t.Parallel()

		stdout := &bytes.Buffer{}
		stderr := &bytes.Buffer{}
		deps := &main.Dependencies{Ctx: context.Background(), Stdout: stdout, Stderr: stderr}

		cmd := &main.IngestCmd{}
		err := cmd.Run(deps)

		require.Error(t, err)
		assert.Equal(t, covdoc.EINVALID, covdoc.ErrorCode(err))
		assert.Contains(t, stderr.String(), "nothing to ingest")
	})

	t.Run("rejects an invalid first URL", func(t *testing.T) {
		t.Parallel()

		stdout := &bytes.Buffer{}
		stderr := &bytes.Buffer{}
		deps := &main.Dependencies{Ctx: context.Background(), Stdout: stdout, Stderr: stderr}

		cmd := &main.IngestCmd{URLs: []string{"not a url"}}
		err := cmd.Run(deps)

		require.Error(t, err)
		assert.Equal(t, covdoc.EINVALID, covdoc.ErrorCode(err))
	})
}
