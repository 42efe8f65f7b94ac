// Package crawl orchestrates ingestion of association websites: frontier
// management, fetching, extraction, chunking, embedding, and storage.
package crawl

import (
	"context"
	"fmt"
	"log/slog"
	"net/url"
	"time"

	"github.com/covdoc/covdoc"
)

// Frontier configuration.
const (
	// frontierExpectedURLs is the expected number of URLs for Bloom filter sizing.
	frontierExpectedURLs = 10000
	// frontierFalsePositiveRate is the acceptable false positive rate for deduplication.
	frontierFalsePositiveRate = 0.01
	// DefaultPageBudget limits the number of pages processed per run.
	DefaultPageBudget = 500
)

// Crawler walks an association website breadth-first from seed URLs,
// chunking and embedding every page it successfully fetches. Pages are
// processed sequentially; politeness and frontier bookkeeping stay simple
// and the sites involved are small.
type Crawler struct {
	Sitemaps  covdoc.SitemapService
	Fetcher   covdoc.Fetcher
	Extractor covdoc.Extractor
	Embedder  covdoc.Embedder
	Chunks    covdoc.ChunkService
	Links     covdoc.LinkService
	Sessions  covdoc.SessionService
	Limiter   *DomainLimiter
	Logger    *slog.Logger

	// PageBudget caps pages processed per run. Defaults to DefaultPageBudget.
	PageBudget int
}

// Run crawls the site at baseURL starting from the base URL and any extra
// seeds. It creates a crawl session up front and finalizes it exactly once:
// completed when the frontier drains or the page budget is reached, failed
// with partial counters when the context is canceled mid-run.
func (c *Crawler) Run(ctx context.Context, baseURL string, seeds []string) (*covdoc.CrawlSession, error) {
	base, err := url.Parse(baseURL)
	if err != nil || base.Hostname() == "" {
		return nil, covdoc.Errorf(covdoc.EINVALID, "invalid base URL %q", baseURL)
	}
	baseDomain := base.Hostname()

	session := &covdoc.CrawlSession{}
	if err := c.Sessions.CreateSession(ctx, session); err != nil {
		return nil, fmt.Errorf("create session: %w", err)
	}

	frontier := NewFrontier(frontierExpectedURLs, frontierFalsePositiveRate)
	c.seedFrontier(ctx, frontier, session, baseURL, baseDomain, seeds)

	budget := c.PageBudget
	if budget <= 0 {
		budget = DefaultPageBudget
	}

	var runErr error
	for session.PagesProcessed < budget {
		link, ok := frontier.Pop()
		if !ok {
			break
		}

		if ctx.Err() != nil {
			runErr = ctx.Err()
			break
		}

		if !ShouldCrawl(link.URL) {
			_ = c.Links.MarkLink(ctx, link.URL, covdoc.LinkSkipped, "")
			continue
		}

		session.PagesProcessed++

		if err := c.waitForDomain(ctx, link.URL); err != nil {
			runErr = err
			break
		}

		if err := c.processPage(ctx, frontier, session, link.URL, baseDomain); err != nil {
			session.PagesFailed++
			_ = c.Links.MarkLink(ctx, link.URL, covdoc.LinkFailed, err.Error())
			c.logger().Warn("page failed", "url", link.URL, "error", err)
			if ctx.Err() != nil {
				runErr = ctx.Err()
				break
			}
			continue
		}

		session.PagesSuccessful++
		_ = c.Links.MarkLink(ctx, link.URL, covdoc.LinkSuccess, "")
	}

	if runErr != nil {
		session.Status = covdoc.SessionFailed
		session.ErrorMessage = runErr.Error()
	} else {
		session.Status = covdoc.SessionCompleted
	}

	// Finalize against a fresh context so cancellation doesn't lose the
	// partial counters.
	finalizeCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), 10*time.Second)
	defer cancel()
	if err := c.Sessions.FinalizeSession(finalizeCtx, session); err != nil {
		return session, fmt.Errorf("finalize session: %w", err)
	}

	c.logger().Info("crawl finished",
		"status", session.Status,
		"discovered", session.PagesDiscovered,
		"processed", session.PagesProcessed,
		"successful", session.PagesSuccessful,
		"failed", session.PagesFailed,
	)

	return session, runErr
}

// seedFrontier queues the base URL, extra seeds, and any sitemap URLs.
// Sitemap entries are bounded to the base domain; sitemaps routinely list
// CDN assets and partner sites that must not widen the crawl's scope.
func (c *Crawler) seedFrontier(ctx context.Context, frontier *Frontier, session *covdoc.CrawlSession, baseURL, baseDomain string, seeds []string) {
	for _, seed := range append([]string{baseURL}, seeds...) {
		if frontier.Push(covdoc.DiscoveredLink{URL: seed, Type: covdoc.LinkInternal}) {
			session.PagesDiscovered++
		}
	}

	if c.Sitemaps == nil {
		return
	}
	urls, err := c.Sitemaps.DiscoverURLs(ctx, baseURL, nil)
	if err != nil {
		c.logger().Warn("sitemap discovery failed", "error", err)
		return
	}
	for _, u := range urls {
		if !sameDomain(u, baseDomain) || !ShouldCrawl(u) {
			continue
		}
		if frontier.Push(covdoc.DiscoveredLink{URL: u, SourceURL: baseURL, Type: covdoc.LinkInternal}) {
			session.PagesDiscovered++
		}
	}
}

// sameDomain reports whether rawURL's host is the base domain or its www
// alias.
func sameDomain(rawURL, baseDomain string) bool {
	u, err := url.Parse(rawURL)
	if err != nil {
		return false
	}
	host := u.Hostname()
	return host == baseDomain || host == "www."+baseDomain
}

// processPage fetches, extracts, chunks, embeds, and stores one page, then
// records its outbound links and queues the internal ones. Each page gets
// exactly one fetch attempt; a failed page is recorded and skipped, never
// retried within the session.
func (c *Crawler) processPage(ctx context.Context, frontier *Frontier, session *covdoc.CrawlSession, pageURL, baseDomain string) error {
	resp, err := c.Fetcher.Fetch(ctx, pageURL)
	if err != nil {
		return err
	}
	if resp.StatusCode != 200 {
		return fmt.Errorf("HTTP %d", resp.StatusCode)
	}

	page, err := c.Extractor.Extract(resp.Body, pageURL, baseDomain)
	if err != nil {
		return err
	}

	if err := c.storePageChunks(ctx, page); err != nil {
		return err
	}

	c.recordLinks(ctx, frontier, session, page)
	return nil
}

// storePageChunks windows the page text, embeds the windows in one batch,
// and replaces the page's stored generation.
func (c *Crawler) storePageChunks(ctx context.Context, page *covdoc.RawPage) error {
	texts := covdoc.ChunkText(page.Content, covdoc.DefaultChunkSize, covdoc.DefaultChunkOverlap, covdoc.PageChunkMinLength)
	if len(texts) == 0 {
		// Nothing substantial on the page; clear any stale generation.
		return c.Chunks.ReplaceChunks(ctx, page.URL, nil)
	}

	vectors, err := c.Embedder.EmbedDocuments(ctx, texts)
	if err != nil {
		return fmt.Errorf("embed: %w", err)
	}
	if len(vectors) != len(texts) {
		return covdoc.Errorf(covdoc.EINTERNAL, "embedder returned %d vectors for %d chunks", len(vectors), len(texts))
	}

	chunks := make([]*covdoc.Chunk, len(texts))
	for i, text := range texts {
		chunks[i] = &covdoc.Chunk{
			Content:   text,
			Embedding: vectors[i],
			Tags:      covdoc.ExtractTags(text, page.Title),
		}
	}

	return c.Chunks.ReplaceChunks(ctx, page.URL, chunks)
}

// recordLinks persists the page's outbound links and queues crawlable
// internal links. Only internal links stay pending; everything else is
// recorded as skipped.
func (c *Crawler) recordLinks(ctx context.Context, frontier *Frontier, session *covdoc.CrawlSession, page *covdoc.RawPage) {
	links := make([]covdoc.DiscoveredLink, 0, len(page.Links))
	for _, link := range page.Links {
		switch link.Type {
		case covdoc.LinkInternal:
			session.InternalLinks++
			if ShouldCrawl(link.URL) {
				link.Status = covdoc.LinkPending
			} else {
				link.Status = covdoc.LinkSkipped
			}
		case covdoc.LinkExternal:
			session.ExternalLinks++
			link.Status = covdoc.LinkSkipped
		default:
			link.Status = covdoc.LinkSkipped
		}
		links = append(links, link)

		if link.Type == covdoc.LinkInternal && ShouldCrawl(link.URL) {
			if frontier.Push(link) {
				session.PagesDiscovered++
			}
		}
	}

	if err := c.Links.UpsertLinks(ctx, links); err != nil {
		c.logger().Warn("failed to record links", "url", page.URL, "error", err)
	}
}

// waitForDomain applies per-domain politeness if a limiter is configured.
func (c *Crawler) waitForDomain(ctx context.Context, rawURL string) error {
	if c.Limiter == nil {
		return nil
	}
	u, err := url.Parse(rawURL)
	if err != nil {
		return nil
	}
	return c.Limiter.Wait(ctx, u.Host)
}

func (c *Crawler) logger() *slog.Logger {
	if c.Logger != nil {
		return c.Logger
	}
	return slog.Default()
}
