package depthcrawl

// VisitedSet records which URLs a crawl has already fetched.
// A crawl without a VisitedSet refetches repeated URLs, including cycles.
type VisitedSet interface {
	// Visit marks url as visited.
	// Returns false if the URL had already been visited.
	Visit(url string) bool

	// Seen returns true if the URL has been visited.
	Seen(url string) bool
}
