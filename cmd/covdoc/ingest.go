package main

import (
	"fmt"
	"net/url"

	"github.com/covdoc/covdoc"
)

// Run executes the ingest command.
func (c *IngestCmd) Run(deps *Dependencies) error {
	if len(c.URLs) == 0 && c.PDF == "" {
		fmt.Fprintln(deps.Stderr, "error: nothing to ingest; pass document URLs or --pdf")
		return covdoc.Errorf(covdoc.EINVALID, "no sources given")
	}

	var sources, chunks, failed, tokens int

	if len(c.URLs) > 0 {
		baseDomain := c.BaseDomain
		if baseDomain == "" {
			u, err := url.Parse(c.URLs[0])
			if err != nil || u.Hostname() == "" {
				fmt.Fprintf(deps.Stderr, "error: invalid URL %q\n", c.URLs[0])
				return covdoc.Errorf(covdoc.EINVALID, "invalid URL %q", c.URLs[0])
			}
			baseDomain = u.Hostname()
		}

		result, err := deps.Ingester.IngestURLs(deps.Ctx, c.URLs, baseDomain)
		if err != nil {
			fmt.Fprintf(deps.Stderr, "error: %s\n", covdoc.ErrorMessage(err))
			return err
		}
		sources += result.Sources
		chunks += result.Chunks
		failed += result.Failed
		tokens += result.Tokens
	}

	if c.PDF != "" {
		result, err := deps.Ingester.IngestPDF(deps.Ctx, c.PDF)
		if err != nil {
			fmt.Fprintf(deps.Stderr, "error: %s\n", covdoc.ErrorMessage(err))
			return err
		}
		sources += result.Sources
		chunks += result.Chunks
		tokens += result.Tokens
	}

	fmt.Fprintf(deps.Stdout, "Ingested %d sources (%d chunks, %d tokens), %d failed\n",
		sources, chunks, tokens, failed)
	return nil
}
