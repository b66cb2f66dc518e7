// Package goquery provides a DOM-based link extractor using goquery.
package goquery

import (
	"errors"
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/fwojciec/depthcrawl"
)

// Ensure Extractor implements depthcrawl.LinkExtractor at compile time.
var _ depthcrawl.LinkExtractor = (*Extractor)(nil)

// Extractor extracts anchor hrefs by building a DOM and walking a[href]
// selections in document order.
//
// The HTML5 parser repairs broken markup while building the tree, so on
// pathological input the result can differ from the streaming tokenizer
// in package html.
type Extractor struct {
	selector string
}

// NewExtractor creates a new Extractor.
func NewExtractor() *Extractor {
	return &Extractor{selector: "a[href]"}
}

// ExtractLinks parses html and returns one resolved URL per anchor href.
func (e *Extractor) ExtractLinks(pageURL *url.URL, html string) (*depthcrawl.ExtractResult, error) {
	if pageURL == nil {
		return nil, depthcrawl.Errorf(depthcrawl.EINVALID, "page URL required")
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil, depthcrawl.Errorf(depthcrawl.EINVALID, "failed to parse HTML: %v", err)
	}

	result := &depthcrawl.ExtractResult{}
	doc.Find(e.selector).Each(func(_ int, sel *goquery.Selection) {
		href, exists := sel.Attr("href")
		if !exists {
			return
		}

		resolved, err := depthcrawl.ResolveLink(pageURL, href)
		if err != nil {
			var malformed *depthcrawl.MalformedLinkError
			if errors.As(err, &malformed) {
				result.Malformed = append(result.Malformed, malformed)
			}
			return
		}
		result.Links = append(result.Links, resolved)
	})

	return result, nil
}
