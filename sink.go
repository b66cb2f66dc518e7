package depthcrawl

import "context"

// LinkSink receives discovered links from any number of concurrent producers.
type LinkSink interface {
	// Send delivers one discovered link. It blocks while the sink has no
	// free capacity and returns the context error if ctx ends first.
	Send(ctx context.Context, link string) error
}

// LinkHandler processes links drained from a sink by its single consumer.
type LinkHandler interface {
	// HandleLink is called once per received link with a 0-based index
	// that increases by one per call.
	HandleLink(ctx context.Context, index int, link string) error
}

// LinkHandlerFunc adapts an ordinary function to the LinkHandler interface.
type LinkHandlerFunc func(ctx context.Context, index int, link string) error

// HandleLink calls f(ctx, index, link).
func (f LinkHandlerFunc) HandleLink(ctx context.Context, index int, link string) error {
	return f(ctx, index, link)
}
