package main

import (
	"fmt"

	"github.com/fwojciec/depthcrawl"
	"github.com/fwojciec/depthcrawl/crawl"
)

// Run executes the runs command.
func (c *RunsCmd) Run(deps *Dependencies) error {
	runs, err := deps.Runs.FindRuns(deps.Ctx, depthcrawl.RunFilter{Limit: c.Limit})
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", depthcrawl.ErrorMessage(err))
		return err
	}

	if len(runs) == 0 {
		fmt.Fprintln(deps.Stdout, "No runs found. Use 'depthcrawl crawl URL --save' to record one.")
		return nil
	}

	for _, r := range runs {
		fmt.Fprintf(deps.Stdout, "%s  %s  %-9s  depth=%d  %s  %s\n",
			r.ID,
			r.StartedAt.Format("2006-01-02 15:04:05"),
			r.Status,
			r.MaxDepth,
			crawl.FormatCount(r.LinkCount, "link"),
			crawl.TruncateURL(r.SeedURL, 60),
		)
		if r.Error != "" {
			fmt.Fprintf(deps.Stdout, "    error: %s\n", r.Error)
		}
	}

	return nil
}
