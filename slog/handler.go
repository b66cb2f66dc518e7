package slog

import (
	"context"
	"log/slog"

	"github.com/fwojciec/depthcrawl"
)

// Ensure LoggingHandler implements depthcrawl.LinkHandler.
var _ depthcrawl.LinkHandler = (*LoggingHandler)(nil)

// LoggingHandler wraps a LinkHandler and logs every consumed link.
type LoggingHandler struct {
	next   depthcrawl.LinkHandler
	logger *slog.Logger
}

// NewLoggingHandler creates a new LoggingHandler.
func NewLoggingHandler(next depthcrawl.LinkHandler, logger *slog.Logger) *LoggingHandler {
	return &LoggingHandler{next: next, logger: logger}
}

// HandleLink delegates to the wrapped handler and logs the link.
func (h *LoggingHandler) HandleLink(ctx context.Context, index int, link string) error {
	err := h.next.HandleLink(ctx, index, link)
	if err != nil {
		h.logger.Error("handle link", "index", index, "link", link, "err", err)
		return err
	}
	h.logger.Debug("handle link", "index", index, "link", link)
	return nil
}
