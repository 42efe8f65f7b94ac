// Package mock provides function-field mock implementations of covdoc
// service interfaces for testing.
package mock

import (
	"context"

	"github.com/covdoc/covdoc"
)

var _ covdoc.Fetcher = (*Fetcher)(nil)

// Fetcher is a mock implementation of covdoc.Fetcher.
type Fetcher struct {
	FetchFn func(ctx context.Context, url string) (*covdoc.FetchResponse, error)
}

func (f *Fetcher) Fetch(ctx context.Context, url string) (*covdoc.FetchResponse, error) {
	return f.FetchFn(ctx, url)
}

var _ covdoc.Extractor = (*Extractor)(nil)

// Extractor is a mock implementation of covdoc.Extractor.
type Extractor struct {
	ExtractFn func(html, pageURL, baseDomain string) (*covdoc.RawPage, error)
}

func (e *Extractor) Extract(html, pageURL, baseDomain string) (*covdoc.RawPage, error) {
	return e.ExtractFn(html, pageURL, baseDomain)
}

var _ covdoc.Embedder = (*Embedder)(nil)

// Embedder is a mock implementation of covdoc.Embedder.
type Embedder struct {
	EmbedDocumentsFn func(ctx context.Context, texts []string) ([][]float32, error)
	EmbedQueryFn     func(ctx context.Context, query string) ([]float32, error)
}

func (e *Embedder) EmbedDocuments(ctx context.Context, texts []string) ([][]float32, error) {
	return e.EmbedDocumentsFn(ctx, texts)
}

func (e *Embedder) EmbedQuery(ctx context.Context, query string) ([]float32, error) {
	return e.EmbedQueryFn(ctx, query)
}

var _ covdoc.ChunkService = (*ChunkService)(nil)

// ChunkService is a mock implementation of covdoc.ChunkService.
type ChunkService struct {
	ReplaceChunksFn func(ctx context.Context, sourceURL string, chunks []*covdoc.Chunk) error
	SearchChunksFn  func(ctx context.Context, embedding []float32, opts covdoc.SearchOptions) ([]covdoc.SearchResult, error)
	CountChunksFn   func(ctx context.Context, sourceURL string) (int, error)
}

func (s *ChunkService) ReplaceChunks(ctx context.Context, sourceURL string, chunks []*covdoc.Chunk) error {
	return s.ReplaceChunksFn(ctx, sourceURL, chunks)
}

func (s *ChunkService) SearchChunks(ctx context.Context, embedding []float32, opts covdoc.SearchOptions) ([]covdoc.SearchResult, error) {
	return s.SearchChunksFn(ctx, embedding, opts)
}

func (s *ChunkService) CountChunks(ctx context.Context, sourceURL string) (int, error) {
	return s.CountChunksFn(ctx, sourceURL)
}

var _ covdoc.LinkService = (*LinkService)(nil)

// LinkService is a mock implementation of covdoc.LinkService.
type LinkService struct {
	UpsertLinksFn func(ctx context.Context, links []covdoc.DiscoveredLink) error
	MarkLinkFn    func(ctx context.Context, url string, status covdoc.LinkStatus, errMsg string) error
	FindLinksFn   func(ctx context.Context, filter covdoc.LinkFilter) ([]*covdoc.DiscoveredLink, error)
}

func (s *LinkService) UpsertLinks(ctx context.Context, links []covdoc.DiscoveredLink) error {
	return s.UpsertLinksFn(ctx, links)
}

func (s *LinkService) MarkLink(ctx context.Context, url string, status covdoc.LinkStatus, errMsg string) error {
	return s.MarkLinkFn(ctx, url, status, errMsg)
}

func (s *LinkService) FindLinks(ctx context.Context, filter covdoc.LinkFilter) ([]*covdoc.DiscoveredLink, error) {
	return s.FindLinksFn(ctx, filter)
}

var _ covdoc.SessionService = (*SessionService)(nil)

// SessionService is a mock implementation of covdoc.SessionService.
type SessionService struct {
	CreateSessionFn   func(ctx context.Context, session *covdoc.CrawlSession) error
	FinalizeSessionFn func(ctx context.Context, session *covdoc.CrawlSession) error
	FindSessionsFn    func(ctx context.Context, limit int) ([]*covdoc.CrawlSession, error)
}

func (s *SessionService) CreateSession(ctx context.Context, session *covdoc.CrawlSession) error {
	return s.CreateSessionFn(ctx, session)
}

func (s *SessionService) FinalizeSession(ctx context.Context, session *covdoc.CrawlSession) error {
	return s.FinalizeSessionFn(ctx, session)
}

func (s *SessionService) FindSessions(ctx context.Context, limit int) ([]*covdoc.CrawlSession, error) {
	return s.FindSessionsFn(ctx, limit)
}

var _ covdoc.SitemapService = (*SitemapService)(nil)

// SitemapService is a mock implementation of covdoc.SitemapService.
type SitemapService struct {
	DiscoverURLsFn func(ctx context.Context, baseURL string, filter *covdoc.URLFilter) ([]string, error)
}

func (s *SitemapService) DiscoverURLs(ctx context.Context, baseURL string, filter *covdoc.URLFilter) ([]string, error) {
	return s.DiscoverURLsFn(ctx, baseURL, filter)
}

var _ covdoc.PDFExtractor = (*PDFExtractor)(nil)

// PDFExtractor is a mock implementation of covdoc.PDFExtractor.
type PDFExtractor struct {
	ExtractPagesFn func(path string) ([]covdoc.PDFPage, error)
}

func (e *PDFExtractor) ExtractPages(path string) ([]covdoc.PDFPage, error) {
	return e.ExtractPagesFn(path)
}

var _ covdoc.TokenCounter = (*TokenCounter)(nil)

// TokenCounter is a mock implementation of covdoc.TokenCounter.
type TokenCounter struct {
	CountTokensFn func(ctx context.Context, text string) (int, error)
}

func (tc *TokenCounter) CountTokens(ctx context.Context, text string) (int, error) {
	return tc.CountTokensFn(ctx, text)
}
