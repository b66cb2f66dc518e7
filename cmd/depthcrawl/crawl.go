package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"sync"

	"github.com/fwojciec/depthcrawl"
	"github.com/fwojciec/depthcrawl/bloom"
	"github.com/fwojciec/depthcrawl/crawl"
	"github.com/fwojciec/depthcrawl/fs"
	"github.com/fwojciec/depthcrawl/sink"
	crawlslog "github.com/fwojciec/depthcrawl/slog"
	"golang.org/x/sync/errgroup"
)

func (c *CrawlCmd) validate() error {
	if _, err := depthcrawl.ParseSeed(c.URL); err != nil {
		return err
	}
	if c.Depth < 1 {
		return depthcrawl.Errorf(depthcrawl.EINVALID, "depth must be at least 1, got %d", c.Depth)
	}
	if c.Concurrency < 0 {
		return depthcrawl.Errorf(depthcrawl.EINVALID, "concurrency must not be negative, got %d", c.Concurrency)
	}
	return nil
}

// Run executes the crawl command.
func (c *CrawlCmd) Run(deps *Dependencies) error {
	seed, err := depthcrawl.ParseSeed(c.URL)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", depthcrawl.ErrorMessage(err))
		return err
	}

	out := &lockedWriter{w: deps.Stdout}
	errOut := &lockedWriter{w: deps.Stderr}
	logger := deps.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	counter := sink.NewCounter(out)
	handlers := sink.Handlers{counter}

	var run *depthcrawl.Run
	if c.Save {
		run = &depthcrawl.Run{SeedURL: seed.String(), MaxDepth: c.Depth}
		if err := deps.Runs.CreateRun(deps.Ctx, run); err != nil {
			fmt.Fprintf(deps.Stderr, "error: %s\n", depthcrawl.ErrorMessage(err))
			return err
		}
		handlers = append(handlers, sink.NewRecorder(deps.Links, run.ID))
	}

	var linkFile *fs.LinkFile
	if c.Output != "" {
		linkFile = fs.NewLinkFile(c.Output)
		handlers = append(handlers, linkFile)
	}

	ch := sink.NewChannel(c.Capacity)
	crawler := &crawl.Crawler{
		Fetcher:              deps.Fetcher,
		Extractor:            deps.Extractor,
		Sink:                 ch,
		StrictLinks:          c.Strict,
		HTTPOnly:             c.HTTPOnly,
		FetchTimeout:         c.Timeout,
		MaxConcurrentFetches: c.Concurrency,
		Logger:               logger,
		Progress:             c.progress(out, errOut),
	}
	if c.Dedup {
		crawler.Visited = bloom.NewFilter(bloom.DefaultExpectedURLs, bloom.DefaultFalsePositiveRate)
	}

	fmt.Fprintf(out, "Url Found: %s\nStarting crawler\n", seed)

	// The consumer drains on the parent context so links already sent are
	// handled even after the crawl fails. Its own failure cancels the crawl.
	var handled int
	g, gctx := errgroup.WithContext(deps.Ctx)
	g.Go(func() error {
		n, err := ch.Consume(deps.Ctx, crawlslog.NewLoggingHandler(handlers, logger))
		handled = n
		return err
	})
	g.Go(func() error {
		defer ch.Close()
		return crawler.Crawl(gctx, seed, c.Depth)
	})
	crawlErr := g.Wait()

	if linkFile != nil {
		if crawlErr != nil {
			if err := linkFile.Abort(); err != nil {
				fmt.Fprintf(errOut, "error discarding %s: %v\n", c.Output, err)
			}
		} else if err := linkFile.Commit(); err != nil {
			fmt.Fprintf(errOut, "error writing %s: %v\n", c.Output, err)
			crawlErr = err
		}
	}

	if run != nil {
		finished, err := deps.Runs.FinishRun(context.WithoutCancel(deps.Ctx), run.ID, handled, crawlErr)
		if err != nil {
			fmt.Fprintf(deps.Stderr, "error: %s\n", depthcrawl.ErrorMessage(err))
			if crawlErr == nil {
				return err
			}
		} else {
			fmt.Fprintf(out, "Saved run %s (%s)\n", finished.ID, finished.Status)
		}
	}

	if crawlErr != nil {
		fmt.Fprintf(errOut, "error: crawl stopped after %s: %v\n", crawl.FormatCount(handled, "link"), crawlErr)
		return crawlErr
	}

	fmt.Fprintf(out, "Found %s up to depth %d\n", crawl.FormatCount(counter.Total(), "link"), c.Depth)
	return nil
}

// progress prints crawl rounds and fetches as they happen.
func (c *CrawlCmd) progress(out, errOut io.Writer) crawl.ProgressFunc {
	return func(e crawl.ProgressEvent) {
		switch e.Type {
		case crawl.ProgressDepth:
			fmt.Fprintf(out, "Current Depth: %d, Max Depth: %d\n", e.Depth, e.MaxDepth)
			if e.Depth <= e.MaxDepth {
				fmt.Fprintf(out, "crawling: %v\n", e.Frontier)
			}
		case crawl.ProgressMaxDepth:
			fmt.Fprintln(out, "Reached Max Depth")
		case crawl.ProgressFetching:
			fmt.Fprintf(out, "getting: %s\n", e.URL)
		case crawl.ProgressFetched:
			if c.Verbose {
				fmt.Fprintf(out, "fetched: %s (%s, %s)\n", crawl.TruncateURL(e.URL, 60), crawl.FormatBytes(e.Bytes), e.Hash)
			}
			fmt.Fprintf(out, "Following: %v\n", e.Links)
		case crawl.ProgressSkipped:
			fmt.Fprintf(out, "skipping: %s\n", e.URL)
		case crawl.ProgressFailed:
			fmt.Fprintf(errOut, "failed: %s: %v\n", e.URL, e.Error)
		}
	}
}

// lockedWriter serializes writes from the crawl goroutines, the consumer,
// and the logger.
type lockedWriter struct {
	mu sync.Mutex
	w  io.Writer
}

func (w *lockedWriter) Write(p []byte) (int, error) {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.w.Write(p)
}
