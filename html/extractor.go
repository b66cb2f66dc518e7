// Package html provides a streaming link extractor built on the
// golang.org/x/net/html tokenizer.
package html

import (
	"errors"
	"io"
	"net/url"
	"strings"

	"github.com/fwojciec/depthcrawl"
	xhtml "golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// Ensure Extractor implements depthcrawl.LinkExtractor at compile time.
var _ depthcrawl.LinkExtractor = (*Extractor)(nil)

// Extractor extracts anchor hrefs from a token stream without building a DOM.
// The tokenizer tolerates malformed markup: broken documents produce fewer
// or degenerate tokens rather than an error.
type Extractor struct{}

// NewExtractor creates a new Extractor.
func NewExtractor() *Extractor {
	return &Extractor{}
}

// ExtractLinks returns one resolved URL per href attribute of every <a>
// start tag, in document order.
func (e *Extractor) ExtractLinks(pageURL *url.URL, html string) (*depthcrawl.ExtractResult, error) {
	if pageURL == nil {
		return nil, depthcrawl.Errorf(depthcrawl.EINVALID, "page URL required")
	}

	result := &depthcrawl.ExtractResult{}
	z := xhtml.NewTokenizer(strings.NewReader(html))

	for {
		switch z.Next() {
		case xhtml.ErrorToken:
			if err := z.Err(); !errors.Is(err, io.EOF) {
				return nil, err
			}
			return result, nil

		case xhtml.StartTagToken, xhtml.SelfClosingTagToken:
			name, hasAttr := z.TagName()
			if atom.Lookup(name) != atom.A || !hasAttr {
				continue
			}
			for {
				key, val, more := z.TagAttr()
				if string(key) == "href" {
					addLink(result, pageURL, string(val))
				}
				if !more {
					break
				}
			}
		}
	}
}

func addLink(result *depthcrawl.ExtractResult, pageURL *url.URL, href string) {
	u, err := depthcrawl.ResolveLink(pageURL, href)
	if err != nil {
		var malformed *depthcrawl.MalformedLinkError
		if errors.As(err, &malformed) {
			result.Malformed = append(result.Malformed, malformed)
		}
		return
	}
	result.Links = append(result.Links, u)
}
