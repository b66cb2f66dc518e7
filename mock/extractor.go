package mock

import (
	"net/url"

	"github.com/fwojciec/depthcrawl"
)

var _ depthcrawl.LinkExtractor = (*LinkExtractor)(nil)

// LinkExtractor is a mock implementation of depthcrawl.LinkExtractor.
type LinkExtractor struct {
	ExtractLinksFn func(pageURL *url.URL, html string) (*depthcrawl.ExtractResult, error)
}

func (e *LinkExtractor) ExtractLinks(pageURL *url.URL, html string) (*depthcrawl.ExtractResult, error) {
	return e.ExtractLinksFn(pageURL, html)
}
