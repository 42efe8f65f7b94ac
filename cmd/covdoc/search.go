package main

import (
	"fmt"

	"github.com/covdoc/covdoc"
)

// Run executes the search command.
func (c *SearchCmd) Run(deps *Dependencies) error {
	result, err := deps.Engine.Search(deps.Ctx, c.Query, covdoc.SearchOptions{
		Threshold:   c.Threshold,
		Count:       c.Count,
		RequireTags: c.Require,
	})
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", covdoc.ErrorMessage(err))
		return err
	}

	fmt.Fprintln(deps.Stdout, covdoc.FormatResults(result.Results, result.Conflicts))
	return nil
}
