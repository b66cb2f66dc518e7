package sqlite

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/fwojciec/depthcrawl"
	"github.com/google/uuid"
	"github.com/ncruces/go-sqlite3"
)

// Compile-time interface verification.
var _ depthcrawl.LinkService = (*LinkService)(nil)

// LinkService implements depthcrawl.LinkService using SQLite.
type LinkService struct {
	db *DB
}

// NewLinkService creates a new LinkService.
func NewLinkService(db *DB) *LinkService {
	return &LinkService{db: db}
}

// CreateLink records a discovered link. A second link at the same position
// of a run is ECONFLICT.
func (s *LinkService) CreateLink(ctx context.Context, link *depthcrawl.Link) error {
	if err := link.Validate(); err != nil {
		return err
	}

	link.ID = uuid.New().String()
	link.FoundAt = time.Now().UTC()

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO links (id, run_id, position, url, found_at)
		VALUES (?, ?, ?, ?, ?)
	`, link.ID, link.RunID, link.Position, link.URL, formatTime(link.FoundAt))
	if errors.Is(err, sqlite3.CONSTRAINT_UNIQUE) {
		return depthcrawl.Errorf(depthcrawl.ECONFLICT, "run %s already has a link at position %d", link.RunID, link.Position)
	}

	return err
}

// FindLinks retrieves links matching the filter in position order.
func (s *LinkService) FindLinks(ctx context.Context, filter depthcrawl.LinkFilter) ([]*depthcrawl.Link, error) {
	var query strings.Builder
	var args []any

	query.WriteString("SELECT id, run_id, position, url, found_at FROM links WHERE 1=1")

	if filter.RunID != nil {
		query.WriteString(" AND run_id = ?")
		args = append(args, *filter.RunID)
	}
	if filter.URL != nil {
		query.WriteString(" AND url = ?")
		args = append(args, *filter.URL)
	}

	query.WriteString(" ORDER BY position ASC")
	args = page(&query, args, filter.Limit, filter.Offset)

	rows, err := s.db.QueryContext(ctx, query.String(), args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var links []*depthcrawl.Link
	for rows.Next() {
		var link depthcrawl.Link
		var foundAt string

		if err := rows.Scan(&link.ID, &link.RunID, &link.Position, &link.URL, &foundAt); err != nil {
			return nil, err
		}
		if link.FoundAt, err = parseTime(foundAt, "found_at"); err != nil {
			return nil, err
		}

		links = append(links, &link)
	}

	return links, rows.Err()
}

// CountLinks returns the number of links recorded for a run.
func (s *LinkService) CountLinks(ctx context.Context, runID string) (int, error) {
	var count int
	err := s.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM links WHERE run_id = ?", runID).Scan(&count)
	return count, err
}
