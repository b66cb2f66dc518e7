package sink

import (
	"context"
	"fmt"
	"io"
	"sync/atomic"

	"github.com/fwojciec/depthcrawl"
)

var _ depthcrawl.LinkHandler = (*Counter)(nil)

// Counter counts received links and, when given a writer, prints one
// "Count: <index>, <url>" line per link.
type Counter struct {
	w     io.Writer
	total atomic.Int64
}

// NewCounter creates a Counter writing to w. A nil writer only counts.
func NewCounter(w io.Writer) *Counter {
	return &Counter{w: w}
}

// HandleLink records the link.
func (c *Counter) HandleLink(_ context.Context, index int, link string) error {
	c.total.Add(1)
	if c.w == nil {
		return nil
	}
	_, err := fmt.Fprintf(c.w, "Count: %d, %s\n", index, link)
	return err
}

// Total returns the number of links handled so far.
func (c *Counter) Total() int {
	return int(c.total.Load())
}
