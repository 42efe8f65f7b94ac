package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/alecthomas/kong"
	"github.com/covdoc/covdoc"
	"github.com/covdoc/covdoc/crawl"
	"github.com/covdoc/covdoc/gemini"
	"github.com/covdoc/covdoc/goquery"
	covhttp "github.com/covdoc/covdoc/http"
	"github.com/covdoc/covdoc/pdf"
	"github.com/covdoc/covdoc/retrieve"
	"github.com/covdoc/covdoc/sqlite"
	"google.golang.org/genai"
)

func main() {
	ctx := context.Background()

	m := NewMain()

	if err := m.Run(ctx, os.Args[1:], os.Stdout, os.Stderr); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// Main represents the program.
type Main struct {
	// Database path. Set before calling Run().
	DBPath string

	// SQLite database used by SQLite service implementations.
	DB *sqlite.DB

	// Services for end-to-end testing.
	ChunkService   covdoc.ChunkService
	LinkService    covdoc.LinkService
	SessionService covdoc.SessionService
}

// NewMain returns a new instance of Main with defaults.
func NewMain() *Main {
	return &Main{
		DBPath: defaultDBPath(),
	}
}

// Close gracefully stops the program.
func (m *Main) Close() error {
	if m.DB != nil {
		return m.DB.Close()
	}
	return nil
}

// Run executes the CLI with the given arguments.
func (m *Main) Run(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	deps := &Dependencies{
		Ctx:    ctx,
		Stdout: stdout,
		Stderr: stderr,
	}

	cli := &CLI{}
	parser, err := kong.New(cli,
		kong.Name("covdoc"),
		kong.Writers(stdout, stderr),
		kong.Exit(func(int) {}), // Don't exit on help
		kong.Bind(deps),
	)
	if err != nil {
		return fmt.Errorf("failed to create parser: %w", err)
	}

	if len(args) == 0 {
		_, _ = parser.Parse([]string{"--help"})
		return fmt.Errorf("no command specified. Run 'covdoc --help' to see available commands")
	}

	cmd := args[0]
	if cmd == "help" || cmd == "--help" || cmd == "-h" {
		_, _ = parser.Parse([]string{"--help"})
		return nil
	}

	kongCtx, err := parser.Parse(args)
	if err != nil {
		return err
	}

	m.DB = sqlite.NewDB(m.DBPath)
	if err := m.DB.Open(); err != nil {
		fmt.Fprintf(stderr, "Hint: Set COVDOC_DB to use a different database path\n")
		return fmt.Errorf("failed to open database at %q: %w", m.DBPath, err)
	}
	defer m.Close()

	m.ChunkService = sqlite.NewChunkService(m.DB)
	m.LinkService = sqlite.NewLinkService(m.DB)
	m.SessionService = sqlite.NewSessionService(m.DB)
	deps.DB = m.DB
	deps.Chunks = m.ChunkService
	deps.Links = m.LinkService
	deps.Sessions = m.SessionService
	deps.Sitemaps = covhttp.NewSitemapService(nil)

	// Commands that embed text need the Gemini API.
	var embedder covdoc.Embedder
	if cmd == "crawl" || cmd == "ingest" || cmd == "search" {
		apiKey := os.Getenv("GEMINI_API_KEY")
		if apiKey == "" {
			fmt.Fprintln(stderr, "GEMINI_API_KEY environment variable not set. Get an API key at https://aistudio.google.com/apikey")
			return fmt.Errorf("GEMINI_API_KEY not set")
		}

		client, err := genai.NewClient(ctx, &genai.ClientConfig{
			APIKey:  apiKey,
			Backend: genai.BackendGeminiAPI,
		})
		if err != nil {
			fmt.Fprintln(stderr, "Hint: Check your GEMINI_API_KEY is valid")
			return fmt.Errorf("failed to connect to Gemini API: %w", err)
		}

		embedder = gemini.NewEmbedder(client, gemini.DefaultEmbeddingModel)
	}

	if cmd == "crawl" {
		deps.Crawler = &crawl.Crawler{
			Sitemaps:   deps.Sitemaps,
			Fetcher:    covhttp.NewFetcher(),
			Extractor:  goquery.NewExtractor(),
			Embedder:   embedder,
			Chunks:     m.ChunkService,
			Links:      m.LinkService,
			Sessions:   m.SessionService,
			Limiter:    crawl.NewDomainLimiter(cli.Crawl.Rate),
			PageBudget: cli.Crawl.Budget,
		}
	}

	if cmd == "ingest" {
		tokenCounter, err := gemini.NewTokenCounter(tokenizerModel)
		if err != nil {
			return fmt.Errorf("failed to create token counter: %w", err)
		}

		deps.Ingester = &crawl.Ingester{
			Fetcher:      covhttp.NewFetcher(),
			Extractor:    goquery.NewExtractor(),
			Embedder:     embedder,
			Chunks:       m.ChunkService,
			PDF:          pdf.NewExtractor(),
			TokenCounter: tokenCounter,
			Concurrency:  cli.Ingest.Concurrency,
		}
	}

	if cmd == "search" {
		deps.Engine = &retrieve.Engine{
			Embedder: embedder,
			Chunks:   m.ChunkService,
		}
	}

	return kongCtx.Run(deps)
}

// tokenizerModel is used for token counting during ingestion.
const tokenizerModel = "gemini-2.5-flash"

func defaultDBPath() string {
	if path := os.Getenv("COVDOC_DB"); path != "" {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "covdoc.db"
	}
	dir := filepath.Join(home, ".covdoc")
	_ = os.MkdirAll(dir, 0755)
	return filepath.Join(dir, "covdoc.db")
}
