package depthcrawl

import (
	"context"
	"time"
)

// Link represents a discovered link persisted for a run.
type Link struct {
	ID       string    `json:"id"`
	RunID    string    `json:"runId"`
	Position int       `json:"position"`
	URL      string    `json:"url"`
	FoundAt  time.Time `json:"foundAt"`
}

// Validate returns an error if the link contains invalid fields.
func (l *Link) Validate() error {
	if l.RunID == "" {
		return Errorf(EINVALID, "link run ID required")
	}
	if l.URL == "" {
		return Errorf(EINVALID, "link URL required")
	}
	return nil
}

// LinkService represents a service for managing discovered links.
type LinkService interface {
	// CreateLink records a discovered link.
	CreateLink(ctx context.Context, link *Link) error

	// FindLinks retrieves links matching the filter in position order.
	FindLinks(ctx context.Context, filter LinkFilter) ([]*Link, error)

	// CountLinks returns the number of links recorded for a run.
	CountLinks(ctx context.Context, runID string) (int, error)
}

// LinkFilter represents a filter for FindLinks.
type LinkFilter struct {
	RunID *string `json:"runId"`
	URL   *string `json:"url"`

	Offset int `json:"offset"`
	Limit  int `json:"limit"`
}
