package mock

import (
	"context"

	"github.com/fwojciec/depthcrawl"
)

var _ depthcrawl.LinkSink = (*LinkSink)(nil)

// LinkSink is a mock implementation of depthcrawl.LinkSink.
type LinkSink struct {
	SendFn func(ctx context.Context, link string) error
}

func (s *LinkSink) Send(ctx context.Context, link string) error {
	return s.SendFn(ctx, link)
}

var _ depthcrawl.LinkHandler = (*LinkHandler)(nil)

// LinkHandler is a mock implementation of depthcrawl.LinkHandler.
type LinkHandler struct {
	HandleLinkFn func(ctx context.Context, index int, link string) error
}

func (h *LinkHandler) HandleLink(ctx context.Context, index int, link string) error {
	return h.HandleLinkFn(ctx, index, link)
}
