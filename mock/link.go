package mock

import (
	"context"

	"github.com/fwojciec/depthcrawl"
)

var _ depthcrawl.LinkService = (*LinkService)(nil)

// LinkService is a mock implementation of depthcrawl.LinkService.
type LinkService struct {
	CreateLinkFn func(ctx context.Context, link *depthcrawl.Link) error
	FindLinksFn  func(ctx context.Context, filter depthcrawl.LinkFilter) ([]*depthcrawl.Link, error)
	CountLinksFn func(ctx context.Context, runID string) (int, error)
}

func (s *LinkService) CreateLink(ctx context.Context, link *depthcrawl.Link) error {
	return s.CreateLinkFn(ctx, link)
}

func (s *LinkService) FindLinks(ctx context.Context, filter depthcrawl.LinkFilter) ([]*depthcrawl.Link, error) {
	return s.FindLinksFn(ctx, filter)
}

func (s *LinkService) CountLinks(ctx context.Context, runID string) (int, error) {
	return s.CountLinksFn(ctx, runID)
}
