package main

import (
	"fmt"

	"github.com/covdoc/covdoc"
)

// Run executes the links command.
func (c *LinksCmd) Run(deps *Dependencies) error {
	filter := covdoc.LinkFilter{Limit: c.Limit}
	if c.Status != "" {
		status := covdoc.LinkStatus(c.Status)
		filter.Status = &status
	}
	if c.Type != "" {
		linkType := covdoc.LinkType(c.Type)
		filter.Type = &linkType
	}

	links, err := deps.Links.FindLinks(deps.Ctx, filter)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", covdoc.ErrorMessage(err))
		return err
	}

	if len(links) == 0 {
		fmt.Fprintln(deps.Stdout, "No links found. Use 'covdoc crawl' to discover some.")
		return nil
	}

	for _, link := range links {
		fmt.Fprintf(deps.Stdout, "%-8s  %-8s  %s\n", link.Status, link.Type, link.URL)
	}

	return nil
}
