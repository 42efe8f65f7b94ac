package crawl

import (
	"context"
	"fmt"
	"log/slog"
	"strconv"
	"strings"
	"sync/atomic"
	"time"

	"github.com/covdoc/covdoc"
	"golang.org/x/sync/errgroup"
)

// Ingester processes a curated list of known document URLs and PDF files
// with section-aware chunking. Unlike the Crawler it follows no links: the
// source list is fixed, so the URLs are processed concurrently.
type Ingester struct {
	Fetcher      covdoc.Fetcher
	Extractor    covdoc.Extractor
	Embedder     covdoc.Embedder
	Chunks       covdoc.ChunkService
	PDF          covdoc.PDFExtractor
	TokenCounter covdoc.TokenCounter
	Logger       *slog.Logger

	Concurrency int
	RetryDelays []time.Duration
}

// IngestResult holds the outcome of an ingestion run.
type IngestResult struct {
	Sources int
	Chunks  int
	Failed  int
	Tokens  int
}

// IngestURLs fetches each URL, splits its content into titled sections, and
// stores one embedded generation of chunks per URL. A failed URL is counted
// and skipped; it does not abort the batch.
func (ing *Ingester) IngestURLs(ctx context.Context, urls []string, baseDomain string) (*IngestResult, error) {
	concurrency := ing.Concurrency
	if concurrency <= 0 {
		concurrency = 4
	}

	var sources, chunks, failed, tokens atomic.Int64

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(concurrency)

	for _, pageURL := range urls {
		g.Go(func() error {
			n, tok, err := ing.ingestURL(gctx, pageURL, baseDomain)
			if err != nil {
				failed.Add(1)
				ing.logger().Warn("source failed", "url", pageURL, "error", err)
				return nil
			}
			sources.Add(1)
			chunks.Add(int64(n))
			tokens.Add(int64(tok))
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	return &IngestResult{
		Sources: int(sources.Load()),
		Chunks:  int(chunks.Load()),
		Failed:  int(failed.Load()),
		Tokens:  int(tokens.Load()),
	}, nil
}

// IngestPDF extracts per-page text from a PDF, splits the combined document
// into sections with inferred page ranges, and stores one embedded
// generation of chunks keyed by path.
func (ing *Ingester) IngestPDF(ctx context.Context, path string) (*IngestResult, error) {
	if ing.PDF == nil {
		return nil, covdoc.Errorf(covdoc.EINVALID, "no PDF extractor configured")
	}

	pages, err := ing.PDF.ExtractPages(path)
	if err != nil {
		return nil, fmt.Errorf("extract %s: %w", path, err)
	}

	sections := covdoc.BuildPDFSections(pages)
	chunks := ing.sectionChunks(sections)
	for _, chunk := range chunks {
		chunk.PDFPage = firstPage(chunk.PageRange)
	}

	stored, tokens, err := ing.embedAndStore(ctx, path, chunks)
	if err != nil {
		return nil, err
	}

	return &IngestResult{Sources: 1, Chunks: stored, Tokens: tokens}, nil
}

// ingestURL processes one curated URL and returns the number of chunks
// stored.
func (ing *Ingester) ingestURL(ctx context.Context, pageURL, baseDomain string) (int, int, error) {
	delays := ing.RetryDelays
	if delays == nil {
		delays = DefaultRetryDelays()
	}

	resp, err := FetchWithRetryDelays(ctx, pageURL, ing.Fetcher.Fetch, delays)
	if err != nil {
		return 0, 0, err
	}
	if resp.StatusCode != 200 {
		return 0, 0, fmt.Errorf("HTTP %d", resp.StatusCode)
	}

	page, err := ing.Extractor.Extract(resp.Body, pageURL, baseDomain)
	if err != nil {
		return 0, 0, err
	}

	chunks := ing.sectionChunks(covdoc.SplitSections(page.Content))
	return ing.embedAndStore(ctx, pageURL, chunks)
}

// sectionChunks windows each section's text without a minimum length; the
// section splitter has already dropped fragments.
func (ing *Ingester) sectionChunks(sections []covdoc.Section) []*covdoc.Chunk {
	var chunks []*covdoc.Chunk
	for _, section := range sections {
		for _, text := range covdoc.ChunkText(section.Text, covdoc.DefaultChunkSize, covdoc.DefaultChunkOverlap, 0) {
			chunks = append(chunks, &covdoc.Chunk{
				Content:      text,
				SectionTitle: section.Title,
				Tags:         section.Tags,
				PageRange:    section.PageRange,
			})
		}
	}
	return chunks
}

// embedAndStore embeds all chunk texts in one batch and replaces the stored
// generation for the source key.
func (ing *Ingester) embedAndStore(ctx context.Context, key string, chunks []*covdoc.Chunk) (int, int, error) {
	if len(chunks) == 0 {
		return 0, 0, ing.Chunks.ReplaceChunks(ctx, key, nil)
	}

	texts := make([]string, len(chunks))
	for i, chunk := range chunks {
		texts[i] = chunk.Content
	}

	vectors, err := ing.Embedder.EmbedDocuments(ctx, texts)
	if err != nil {
		return 0, 0, fmt.Errorf("embed: %w", err)
	}
	if len(vectors) != len(chunks) {
		return 0, 0, covdoc.Errorf(covdoc.EINTERNAL, "embedder returned %d vectors for %d chunks", len(vectors), len(chunks))
	}
	for i := range chunks {
		chunks[i].Embedding = vectors[i]
	}

	if err := ing.Chunks.ReplaceChunks(ctx, key, chunks); err != nil {
		return 0, 0, err
	}

	tokens := 0
	if ing.TokenCounter != nil {
		for _, text := range texts {
			if n, err := ing.TokenCounter.CountTokens(ctx, text); err == nil {
				tokens += n
			}
		}
	}

	return len(chunks), tokens, nil
}

func (ing *Ingester) logger() *slog.Logger {
	if ing.Logger != nil {
		return ing.Logger
	}
	return slog.Default()
}

// firstPage parses the leading page number out of a page range like "12-14".
func firstPage(pageRange string) int {
	if pageRange == "" {
		return 0
	}
	first, _, _ := strings.Cut(pageRange, "-")
	n, err := strconv.Atoi(first)
	if err != nil {
		return 0
	}
	return n
}
