package main

import (
	"fmt"

	"github.com/fwojciec/depthcrawl"
)

// Run executes the links command.
func (c *LinksCmd) Run(deps *Dependencies) error {
	run, err := deps.Runs.FindRunByID(deps.Ctx, c.RunID)
	if err != nil {
		if depthcrawl.ErrorCode(err) == depthcrawl.ENOTFOUND {
			fmt.Fprintf(deps.Stderr, "error: run %q not found. Use 'depthcrawl runs' to see recorded runs.\n", c.RunID)
		} else {
			fmt.Fprintf(deps.Stderr, "error: %s\n", depthcrawl.ErrorMessage(err))
		}
		return err
	}

	links, err := deps.Links.FindLinks(deps.Ctx, depthcrawl.LinkFilter{
		RunID:  &run.ID,
		Limit:  c.Limit,
		Offset: c.Offset,
	})
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", depthcrawl.ErrorMessage(err))
		return err
	}

	if len(links) == 0 {
		fmt.Fprintf(deps.Stdout, "Run %s has no links.\n", run.ID)
		return nil
	}

	for _, l := range links {
		fmt.Fprintf(deps.Stdout, "Count: %d, %s\n", l.Position, l.URL)
	}

	return nil
}
