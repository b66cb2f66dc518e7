package crawl

import (
	"context"
	"fmt"
	"log/slog"
	"net/url"

	"github.com/fwojciec/depthcrawl"
	"golang.org/x/sync/errgroup"
	"golang.org/x/sync/semaphore"
)

// walk holds the state shared by every branch of a single crawl.
type walk struct {
	*Crawler
	// emitCtx is the caller's context. Sibling failures do not cancel it.
	emitCtx  context.Context
	maxDepth int
	sem      *semaphore.Weighted
	log      *slog.Logger
}

func (c *Crawler) newWalk(ctx context.Context, maxDepth int) *walk {
	w := &walk{
		Crawler:  c,
		emitCtx:  ctx,
		maxDepth: maxDepth,
		log:      c.logger(),
	}
	if c.MaxConcurrentFetches > 0 {
		w.sem = semaphore.NewWeighted(int64(c.MaxConcurrentFetches))
	}
	return w
}

// crawl visits each URL of frontier in its own goroutine and waits for all of them.
func (w *walk) crawl(ctx context.Context, frontier []*url.URL, current int) error {
	w.report(ProgressEvent{
		Type:     ProgressDepth,
		Depth:    current,
		MaxDepth: w.maxDepth,
		Frontier: urlStrings(frontier),
	})
	if current > w.maxDepth {
		w.report(ProgressEvent{Type: ProgressMaxDepth, Depth: current, MaxDepth: w.maxDepth})
		return nil
	}

	g, gctx := errgroup.WithContext(ctx)
	for _, u := range frontier {
		if !w.shouldFetch(u, current) {
			continue
		}
		g.Go(func() error {
			return w.visit(gctx, u, current)
		})
	}
	return g.Wait()
}

func (w *walk) shouldFetch(u *url.URL, current int) bool {
	if w.HTTPOnly && !depthcrawl.IsHTTP(u) {
		w.report(ProgressEvent{Type: ProgressSkipped, Depth: current, MaxDepth: w.maxDepth, URL: u.String()})
		return false
	}
	if w.Visited != nil && !w.Visited.Visit(u.String()) {
		w.report(ProgressEvent{Type: ProgressSkipped, Depth: current, MaxDepth: w.maxDepth, URL: u.String()})
		return false
	}
	return true
}

// visit fetches u, emits its links, and recurses into them.
func (w *walk) visit(ctx context.Context, u *url.URL, current int) (err error) {
	rawURL := u.String()
	defer func() {
		if err != nil && ctx.Err() == nil {
			w.report(ProgressEvent{Type: ProgressFailed, Depth: current, MaxDepth: w.maxDepth, URL: rawURL, Error: err})
		}
	}()

	w.report(ProgressEvent{Type: ProgressFetching, Depth: current, MaxDepth: w.maxDepth, URL: rawURL})

	body, err := w.fetch(ctx, rawURL)
	if err != nil {
		return fmt.Errorf("fetch %s: %w", rawURL, err)
	}

	result, err := w.Extractor.ExtractLinks(u, body)
	if err != nil {
		return fmt.Errorf("extract %s: %w", rawURL, err)
	}

	for _, m := range result.Malformed {
		if w.StrictLinks {
			return depthcrawl.Errorf(depthcrawl.EINVALID, "%s on %s", m.Error(), rawURL)
		}
		w.log.Warn("skipping malformed link", "page", rawURL, "href", m.Href, "err", m.Err)
	}

	links := result.Strings()
	for _, link := range links {
		if err := w.Sink.Send(w.emitCtx, link); err != nil {
			return err
		}
	}

	w.report(ProgressEvent{
		Type:     ProgressFetched,
		Depth:    current,
		MaxDepth: w.maxDepth,
		URL:      rawURL,
		Links:    links,
		Bytes:    len(body),
		Hash:     ComputeHash(body),
	})

	return w.crawl(ctx, result.Links, current+1)
}

// fetch holds a concurrency slot only for the duration of the request.
func (w *walk) fetch(ctx context.Context, rawURL string) (string, error) {
	if w.sem != nil {
		if err := w.sem.Acquire(ctx, 1); err != nil {
			return "", err
		}
		defer w.sem.Release(1)
	}

	if w.FetchTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, w.FetchTimeout)
		defer cancel()
	}

	return w.Fetcher.Fetch(ctx, rawURL)
}

func urlStrings(urls []*url.URL) []string {
	out := make([]string, len(urls))
	for i, u := range urls {
		out[i] = u.String()
	}
	return out
}
