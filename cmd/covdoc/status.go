package main

import (
	"fmt"

	"github.com/covdoc/covdoc"
)

// Run executes the status command.
func (c *StatusCmd) Run(deps *Dependencies) error {
	chunks, err := deps.Chunks.CountChunks(deps.Ctx, "")
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", covdoc.ErrorMessage(err))
		return err
	}
	fmt.Fprintf(deps.Stdout, "Indexed chunks: %d\n", chunks)

	pending := covdoc.LinkPending
	links, err := deps.Links.FindLinks(deps.Ctx, covdoc.LinkFilter{Status: &pending})
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", covdoc.ErrorMessage(err))
		return err
	}
	fmt.Fprintf(deps.Stdout, "Pending links: %d\n", len(links))

	sessions, err := deps.Sessions.FindSessions(deps.Ctx, c.Sessions)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", covdoc.ErrorMessage(err))
		return err
	}

	if len(sessions) == 0 {
		fmt.Fprintln(deps.Stdout, "No crawl sessions recorded.")
		return nil
	}

	fmt.Fprintln(deps.Stdout, "Recent sessions:")
	for _, s := range sessions {
		fmt.Fprintf(deps.Stdout, "  %s  %-9s  %d/%d pages indexed, %d failed\n",
			s.StartedAt.Format("2006-01-02 15:04"), s.Status,
			s.PagesSuccessful, s.PagesProcessed, s.PagesFailed)
	}

	return nil
}
