// Package bloom provides a probabilistic visited-URL set using Bloom filters.
package bloom

import (
	"strings"
	"sync"

	"github.com/bits-and-blooms/bloom/v3"
	"github.com/fwojciec/depthcrawl"
)

// Default sizing used by the CLI when duplicate suppression is enabled.
const (
	DefaultExpectedURLs      = 100_000
	DefaultFalsePositiveRate = 0.001
)

// Ensure Filter implements depthcrawl.VisitedSet at compile time.
var _ depthcrawl.VisitedSet = (*Filter)(nil)

// Filter records visited URLs in a Bloom filter.
// False positives are possible, so a small fraction of never-fetched URLs
// may be reported as visited; false negatives are not.
// Filter is safe for concurrent use by multiple goroutines.
type Filter struct {
	mu sync.Mutex
	f  *bloom.BloomFilter
}

// NewFilter creates a new Filter sized for n expected URLs
// with the given false positive rate.
func NewFilter(n uint, fpRate float64) *Filter {
	return &Filter{
		f: bloom.NewWithEstimates(n, fpRate),
	}
}

// Visit marks the URL as visited.
// Returns false if the URL had already been visited.
// URLs differing only by fragment are considered the same.
func (f *Filter) Visit(url string) bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return !f.f.TestOrAddString(stripFragment(url))
}

// Seen returns true if the URL might have been visited.
func (f *Filter) Seen(url string) bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.f.TestString(stripFragment(url))
}

// EstimatedCount returns the approximate number of URLs in the filter.
func (f *Filter) EstimatedCount() uint {
	f.mu.Lock()
	defer f.mu.Unlock()
	return uint(f.f.ApproximatedSize())
}

func stripFragment(url string) string {
	if idx := strings.Index(url, "#"); idx != -1 {
		return url[:idx]
	}
	return url
}
