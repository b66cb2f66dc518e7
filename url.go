package depthcrawl

import (
	"fmt"
	"net/url"
	"strings"
)

// seedExample is shown to the operator when the seed URL is not usable.
const seedExample = "https://github.com/about"

// ParseSeed parses the seed URL a crawl starts from.
// The seed must be absolute: it needs both a scheme and a host.
func ParseSeed(raw string) (*url.URL, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil, Errorf(EINVALID, "seed URL required. A complete url is required, for example: %s", seedExample)
	}

	u, err := url.Parse(raw)
	if err != nil {
		return nil, Errorf(EINVALID, "invalid seed URL %q: %v", raw, err)
	}
	if u.Scheme == "" || u.Host == "" {
		return nil, Errorf(EINVALID, "seed URL %q is not absolute. A complete url is required, for example: %s", raw, seedExample)
	}

	return u, nil
}

// DomainBase reduces u to its scheme and host. Path, query and fragment
// are cleared so that relative links resolve from the root of the domain.
func DomainBase(u *url.URL) *url.URL {
	return &url.URL{
		Scheme: u.Scheme,
		User:   u.User,
		Host:   u.Host,
		Path:   "/",
	}
}

// MalformedLinkError is returned for an href that is neither an absolute URL
// nor a relative reference that can be resolved.
type MalformedLinkError struct {
	Href string
	Err  error
}

func (e *MalformedLinkError) Error() string {
	return fmt.Sprintf("malformed link %q: %v", e.Href, e.Err)
}

func (e *MalformedLinkError) Unwrap() error {
	return e.Err
}

// tabsAndNewlines removes ASCII tab and newline characters, which browsers
// ignore anywhere inside a URL.
var tabsAndNewlines = strings.NewReplacer("\t", "", "\n", "", "\r", "")

// ResolveLink converts a raw href found on the page at base into an absolute URL.
// Absolute references are returned as parsed. Relative references, including
// scheme-relative ones, are resolved against DomainBase(base) using RFC 3986
// reference resolution. Tabs and newlines inside href are dropped first.
func ResolveLink(base *url.URL, href string) (*url.URL, error) {
	href = tabsAndNewlines.Replace(strings.TrimSpace(href))

	ref, err := url.Parse(href)
	if err != nil {
		return nil, &MalformedLinkError{Href: href, Err: err}
	}
	if ref.IsAbs() {
		return ref, nil
	}
	return DomainBase(base).ResolveReference(ref), nil
}

// IsHTTP reports whether u uses the http or https scheme.
func IsHTTP(u *url.URL) bool {
	switch strings.ToLower(u.Scheme) {
	case "http", "https":
		return true
	default:
		return false
	}
}
