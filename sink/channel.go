// Package sink provides the result sink that receives discovered links:
// a bounded many-producer channel drained by a single long-lived consumer.
package sink

import (
	"context"
	"sync"

	"github.com/fwojciec/depthcrawl"
)

// Ensure Channel implements depthcrawl.LinkSink at compile time.
var _ depthcrawl.LinkSink = (*Channel)(nil)

// Channel is a bounded link queue. Any number of goroutines may Send;
// exactly one consumer should Receive or Consume.
//
// Close must only be called after every producer has returned, typically
// once the top-level crawl has completed. The consumer then drains what is
// left and stops.
type Channel struct {
	ch        chan string
	closeOnce sync.Once
}

// NewChannel creates a Channel with room for capacity pending links.
// A capacity below 1 is raised to 1, so senders block until the consumer
// has taken the previous link.
func NewChannel(capacity int) *Channel {
	if capacity < 1 {
		capacity = 1
	}
	return &Channel{ch: make(chan string, capacity)}
}

// Send enqueues a link, blocking while the channel is full.
// Returns the context error if ctx ends first. A link is never dropped
// while the channel has room.
func (c *Channel) Send(ctx context.Context, link string) error {
	select {
	case c.ch <- link:
		return nil
	default:
	}

	select {
	case c.ch <- link:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Close signals that no more links will be sent. Close is safe to call
// multiple times.
func (c *Channel) Close() {
	c.closeOnce.Do(func() { close(c.ch) })
}

// Receive returns the next link. The bool result is false once the channel
// has been closed and drained, or if ctx ends first.
func (c *Channel) Receive(ctx context.Context) (string, bool) {
	select {
	case link, ok := <-c.ch:
		return link, ok
	case <-ctx.Done():
		return "", false
	}
}

// Consume drains the channel into h until it is closed and empty.
// It returns the number of links handled. A handler error or the end of
// ctx stops consumption early.
func (c *Channel) Consume(ctx context.Context, h depthcrawl.LinkHandler) (int, error) {
	n := 0
	for {
		select {
		case <-ctx.Done():
			return n, ctx.Err()
		case link, ok := <-c.ch:
			if !ok {
				return n, nil
			}
			if err := h.HandleLink(ctx, n, link); err != nil {
				return n, err
			}
			n++
		}
	}
}

// Len returns the number of links waiting to be consumed.
func (c *Channel) Len() int {
	return len(c.ch)
}

// Cap returns the channel capacity.
func (c *Channel) Cap() int {
	return cap(c.ch)
}
