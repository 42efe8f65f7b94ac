package main

import (
	"fmt"
	"os"

	"github.com/covdoc/covdoc"
)

// Run executes the crawl command.
func (c *CrawlCmd) Run(deps *Dependencies) error {
	baseURL := c.URL
	if baseURL == "" {
		baseURL = os.Getenv("COVDOC_BASE_URL")
	}
	if baseURL == "" {
		fmt.Fprintln(deps.Stderr, "error: no URL given and COVDOC_BASE_URL not set")
		return covdoc.Errorf(covdoc.EINVALID, "base URL required")
	}

	fmt.Fprintf(deps.Stdout, "Crawling %s\n", baseURL)

	session, err := deps.Crawler.Run(deps.Ctx, baseURL, c.Seed)
	if session != nil {
		fmt.Fprintf(deps.Stdout, "  %s: %d discovered, %d processed, %d indexed, %d failed\n",
			session.Status, session.PagesDiscovered, session.PagesProcessed,
			session.PagesSuccessful, session.PagesFailed)
	}
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", covdoc.ErrorMessage(err))
		return err
	}

	return nil
}
