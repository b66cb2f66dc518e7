package sink

import (
	"context"

	"github.com/fwojciec/depthcrawl"
)

var _ depthcrawl.LinkHandler = (*Recorder)(nil)

// Recorder persists every received link for one run.
type Recorder struct {
	links depthcrawl.LinkService
	runID string
}

// NewRecorder creates a Recorder that stores links under runID.
func NewRecorder(links depthcrawl.LinkService, runID string) *Recorder {
	return &Recorder{links: links, runID: runID}
}

// HandleLink stores the link with its index as position.
func (r *Recorder) HandleLink(ctx context.Context, index int, link string) error {
	return r.links.CreateLink(ctx, &depthcrawl.Link{
		RunID:    r.runID,
		Position: index,
		URL:      link,
	})
}

// Handlers fans a link out to several handlers in order.
// The first error stops the chain.
type Handlers []depthcrawl.LinkHandler

var _ depthcrawl.LinkHandler = Handlers(nil)

// HandleLink calls every handler with the same link.
func (hs Handlers) HandleLink(ctx context.Context, index int, link string) error {
	for _, h := range hs {
		if err := h.HandleLink(ctx, index, link); err != nil {
			return err
		}
	}
	return nil
}
