package mock

import "github.com/fwojciec/depthcrawl"

var _ depthcrawl.VisitedSet = (*VisitedSet)(nil)

// VisitedSet is a mock implementation of depthcrawl.VisitedSet.
type VisitedSet struct {
	VisitFn func(url string) bool
	SeenFn  func(url string) bool
}

func (s *VisitedSet) Visit(url string) bool {
	return s.VisitFn(url)
}

func (s *VisitedSet) Seen(url string) bool {
	return s.SeenFn(url)
}
