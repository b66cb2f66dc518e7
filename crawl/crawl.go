// Package crawl provides depth-bounded crawl orchestration.
// It coordinates fetching, link extraction, and fan-out of discovered links
// to a sink, recursing concurrently until the depth bound is reached.
package crawl

import (
	"context"
	"log/slog"
	"net/url"
	"time"

	"github.com/fwojciec/depthcrawl"
)

// Crawler orchestrates a depth-bounded crawl.
type Crawler struct {
	Fetcher   depthcrawl.Fetcher
	Extractor depthcrawl.LinkExtractor
	Sink      depthcrawl.LinkSink

	// Visited suppresses repeated fetches of the same URL when set.
	// Links are still emitted every time they are extracted.
	Visited depthcrawl.VisitedSet

	// StrictLinks fails the page's branch on a malformed href instead of
	// skipping it with a warning.
	StrictLinks bool

	// HTTPOnly restricts fetching to http and https links. Other links are
	// still emitted.
	HTTPOnly bool

	// FetchTimeout bounds each fetch. Zero disables the per-fetch deadline.
	FetchTimeout time.Duration

	// MaxConcurrentFetches caps in-flight fetches across the whole crawl.
	// Zero means unbounded.
	MaxConcurrentFetches int

	Logger   *slog.Logger
	Progress ProgressFunc
}

// ProgressEvent reports progress during a crawl operation.
type ProgressEvent struct {
	Type     ProgressType
	Depth    int
	MaxDepth int
	URL      string
	Frontier []string
	Links    []string
	Bytes    int
	Hash     string
	Error    error
}

// ProgressType indicates the type of progress event.
type ProgressType int

const (
	// ProgressDepth is reported when a frontier is entered.
	ProgressDepth ProgressType = iota
	// ProgressMaxDepth is reported when a frontier lies beyond the depth bound.
	ProgressMaxDepth
	ProgressFetching
	ProgressFetched
	// ProgressSkipped is reported for URLs that are not fetched.
	ProgressSkipped
	ProgressFailed
)

// ProgressFunc is a callback for reporting crawl progress.
// It is called from many goroutines at once.
type ProgressFunc func(event ProgressEvent)

// Crawl fetches seed at depth 1 and follows discovered links until maxDepth.
// Every link extracted from a fetched page is sent to the Sink, including the
// links of pages at maxDepth, which are not fetched themselves.
func (c *Crawler) Crawl(ctx context.Context, seed *url.URL, maxDepth int) error {
	if err := c.validate(); err != nil {
		return err
	}
	if seed == nil || seed.Scheme == "" || seed.Host == "" {
		return depthcrawl.Errorf(depthcrawl.EINVALID, "absolute seed URL required")
	}
	if maxDepth < 1 {
		return depthcrawl.Errorf(depthcrawl.EINVALID, "max depth must be at least 1, got %d", maxDepth)
	}

	return c.CrawlFrontier(ctx, []*url.URL{seed}, 1, maxDepth)
}

// CrawlFrontier crawls every URL of frontier concurrently as depth current
// and recurses into the links each page yields at current+1. It returns nil
// without fetching when current exceeds maxDepth. It returns after every
// goroutine it started has finished; the first error cancels the pending
// fetches of the rest. Links a page already yielded are still delivered to
// the sink unless ctx itself ends.
func (c *Crawler) CrawlFrontier(ctx context.Context, frontier []*url.URL, current, maxDepth int) error {
	if err := c.validate(); err != nil {
		return err
	}
	return c.newWalk(ctx, maxDepth).crawl(ctx, frontier, current)
}

func (c *Crawler) validate() error {
	switch {
	case c.Fetcher == nil:
		return depthcrawl.Errorf(depthcrawl.EINVALID, "crawler fetcher required")
	case c.Extractor == nil:
		return depthcrawl.Errorf(depthcrawl.EINVALID, "crawler extractor required")
	case c.Sink == nil:
		return depthcrawl.Errorf(depthcrawl.EINVALID, "crawler sink required")
	case c.MaxConcurrentFetches < 0:
		return depthcrawl.Errorf(depthcrawl.EINVALID, "max concurrent fetches must not be negative")
	}
	return nil
}

func (c *Crawler) logger() *slog.Logger {
	if c.Logger == nil {
		return slog.New(slog.DiscardHandler)
	}
	return c.Logger
}

func (c *Crawler) report(event ProgressEvent) {
	if c.Progress != nil {
		c.Progress(event)
	}
}
