package depthcrawl

import "net/url"

// ExtractResult holds the links found on a single page.
type ExtractResult struct {
	// Links are the resolved absolute URLs in document order, one per href
	// attribute of every anchor element. They are neither deduplicated nor
	// filtered by scheme.
	Links []*url.URL

	// Malformed holds the hrefs that could not be resolved. Whether they
	// abort the crawl is decided by the caller.
	Malformed []*MalformedLinkError
}

// Strings returns the links as URL strings, in order.
func (r *ExtractResult) Strings() []string {
	out := make([]string, len(r.Links))
	for i, u := range r.Links {
		out[i] = u.String()
	}
	return out
}

// LinkExtractor converts an HTML document into the absolute URLs it links to.
type LinkExtractor interface {
	// ExtractLinks tokenizes html and resolves every anchor href against the
	// domain of pageURL. Malformed markup yields fewer links, never an error;
	// the error return is reserved for failures of the parser itself.
	// ExtractLinks performs no network I/O.
	ExtractLinks(pageURL *url.URL, html string) (*ExtractResult, error)
}
