package slog

import (
	"log/slog"
	"net/url"
	"time"

	"github.com/fwojciec/depthcrawl"
)

// Ensure LoggingExtractor implements depthcrawl.LinkExtractor.
var _ depthcrawl.LinkExtractor = (*LoggingExtractor)(nil)

// LoggingExtractor wraps a LinkExtractor with debug logging.
type LoggingExtractor struct {
	next   depthcrawl.LinkExtractor
	logger *slog.Logger
}

// NewLoggingExtractor creates a new LoggingExtractor.
func NewLoggingExtractor(next depthcrawl.LinkExtractor, logger *slog.Logger) *LoggingExtractor {
	return &LoggingExtractor{next: next, logger: logger}
}

// ExtractLinks delegates to the wrapped extractor and logs link counts.
func (e *LoggingExtractor) ExtractLinks(pageURL *url.URL, html string) (result *depthcrawl.ExtractResult, err error) {
	defer func(begin time.Time) {
		var links, malformed int
		if result != nil {
			links, malformed = len(result.Links), len(result.Malformed)
		}
		e.logger.Info("extract links",
			"url", pageURL.String(),
			"links", links,
			"malformed", malformed,
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return e.next.ExtractLinks(pageURL, html)
}
