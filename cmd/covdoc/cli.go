package main

import (
	"context"
	"io"

	"github.com/covdoc/covdoc"
	"github.com/covdoc/covdoc/crawl"
	"github.com/covdoc/covdoc/retrieve"
	"github.com/covdoc/covdoc/sqlite"
)

// Dependencies holds all services and configuration for command execution.
type Dependencies struct {
	Ctx      context.Context
	Stdout   io.Writer
	Stderr   io.Writer
	DB       *sqlite.DB
	Chunks   covdoc.ChunkService
	Links    covdoc.LinkService
	Sessions covdoc.SessionService
	Sitemaps covdoc.SitemapService
	Crawler  *crawl.Crawler
	Ingester *crawl.Ingester
	Engine   *retrieve.Engine
}

// CLI defines the command-line interface structure for Kong.
type CLI struct {
	Crawl  CrawlCmd  `cmd:"" help:"Crawl an association website and index its pages"`
	Ingest IngestCmd `cmd:"" help:"Ingest curated document URLs or a PDF with section-aware chunking"`
	Search SearchCmd `cmd:"" help:"Search the indexed covenant documents"`
	Links  LinksCmd  `cmd:"" help:"List discovered links"`
	Status StatusCmd `cmd:"" help:"Show index size and recent crawl sessions"`
}

// CrawlCmd is the "crawl" subcommand.
type CrawlCmd struct {
	URL    string   `arg:"" optional:"" help:"Base URL of the association website (defaults to $COVDOC_BASE_URL)"`
	Seed   []string `short:"s" help:"Extra seed URL (repeatable)"`
	Budget int      `short:"b" default:"500" help:"Maximum pages to process"`
	Rate   float64  `short:"r" default:"1" help:"Requests per second per domain"`
}

// IngestCmd is the "ingest" subcommand.
type IngestCmd struct {
	URLs        []string `arg:"" optional:"" help:"Document URLs to ingest"`
	PDF         string   `short:"p" help:"Path to a PDF document to ingest"`
	BaseDomain  string   `short:"d" help:"Domain used to classify links (derived from the first URL if empty)"`
	Concurrency int      `short:"c" default:"4" help:"Concurrent fetch limit"`
}

// SearchCmd is the "search" subcommand.
type SearchCmd struct {
	Query     string   `arg:"" help:"Question about the covenant rules"`
	Count     int      `short:"n" default:"5" help:"Maximum number of results"`
	Threshold float64  `short:"t" default:"0.75" help:"Minimum similarity (0-1)"`
	Require   []string `short:"R" help:"Tag a result must carry (repeatable)"`
}

// LinksCmd is the "links" subcommand.
type LinksCmd struct {
	Status string `short:"s" help:"Filter by crawl status (pending, success, failed, skipped)"`
	Type   string `short:"t" help:"Filter by link type (internal, external, file, email, tel)"`
	Limit  int    `short:"n" default:"50" help:"Maximum links to list"`
}

// StatusCmd is the "status" subcommand.
type StatusCmd struct {
	Sessions int `short:"n" default:"5" help:"Number of recent sessions to show"`
}
