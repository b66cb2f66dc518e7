package sqlite

import (
	"context"
	"database/sql"
	"strings"
	"time"

	"github.com/fwojciec/depthcrawl"
	"github.com/google/uuid"
)

// Compile-time interface verification.
var _ depthcrawl.RunService = (*RunService)(nil)

// RunService implements depthcrawl.RunService using SQLite.
type RunService struct {
	db *DB
}

// NewRunService creates a new RunService.
func NewRunService(db *DB) *RunService {
	return &RunService{db: db}
}

const runColumns = "id, seed_url, max_depth, status, link_count, error, started_at, finished_at"

// CreateRun records a new run in the running state.
func (s *RunService) CreateRun(ctx context.Context, run *depthcrawl.Run) error {
	if err := run.Validate(); err != nil {
		return err
	}

	run.ID = uuid.New().String()
	run.Status = depthcrawl.RunRunning
	run.LinkCount = 0
	run.Error = ""
	run.StartedAt = time.Now().UTC()
	run.FinishedAt = time.Time{}

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO runs (id, seed_url, max_depth, status, link_count, error, started_at, finished_at)
		VALUES (?, ?, ?, ?, 0, '', ?, '')
	`, run.ID, run.SeedURL, run.MaxDepth, string(run.Status), formatTime(run.StartedAt))

	return err
}

// FindRunByID retrieves a run by ID.
func (s *RunService) FindRunByID(ctx context.Context, id string) (*depthcrawl.Run, error) {
	row := s.db.QueryRowContext(ctx, "SELECT "+runColumns+" FROM runs WHERE id = ?", id)

	run, err := scanRun(row)
	if err == sql.ErrNoRows {
		return nil, depthcrawl.Errorf(depthcrawl.ENOTFOUND, "run not found")
	}
	if err != nil {
		return nil, err
	}
	return run, nil
}

// FindRuns retrieves runs matching the filter, newest first.
func (s *RunService) FindRuns(ctx context.Context, filter depthcrawl.RunFilter) ([]*depthcrawl.Run, error) {
	var query strings.Builder
	var args []any

	query.WriteString("SELECT " + runColumns + " FROM runs WHERE 1=1")

	if filter.ID != nil {
		query.WriteString(" AND id = ?")
		args = append(args, *filter.ID)
	}
	if filter.SeedURL != nil {
		query.WriteString(" AND seed_url = ?")
		args = append(args, *filter.SeedURL)
	}
	if filter.Status != nil {
		query.WriteString(" AND status = ?")
		args = append(args, string(*filter.Status))
	}

	query.WriteString(" ORDER BY started_at DESC, rowid DESC")
	args = page(&query, args, filter.Limit, filter.Offset)

	rows, err := s.db.QueryContext(ctx, query.String(), args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var runs []*depthcrawl.Run
	for rows.Next() {
		run, err := scanRun(rows)
		if err != nil {
			return nil, err
		}
		runs = append(runs, run)
	}

	return runs, rows.Err()
}

// FinishRun marks a run as completed, or failed when crawlErr is non-nil.
func (s *RunService) FinishRun(ctx context.Context, id string, linkCount int, crawlErr error) (*depthcrawl.Run, error) {
	run, err := s.FindRunByID(ctx, id)
	if err != nil {
		return nil, err
	}

	run.Status = depthcrawl.RunCompleted
	run.Error = ""
	if crawlErr != nil {
		run.Status = depthcrawl.RunFailed
		run.Error = crawlErr.Error()
	}
	run.LinkCount = linkCount
	run.FinishedAt = time.Now().UTC()

	_, err = s.db.ExecContext(ctx, `
		UPDATE runs
		SET status = ?, link_count = ?, error = ?, finished_at = ?
		WHERE id = ?
	`, string(run.Status), run.LinkCount, run.Error, formatTime(run.FinishedAt), id)
	if err != nil {
		return nil, err
	}

	return run, nil
}

// DeleteRun permanently removes a run and all associated links.
func (s *RunService) DeleteRun(ctx context.Context, id string) error {
	result, err := s.db.ExecContext(ctx, "DELETE FROM runs WHERE id = ?", id)
	if err != nil {
		return err
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}

	if rows == 0 {
		return depthcrawl.Errorf(depthcrawl.ENOTFOUND, "run not found")
	}

	return nil
}

// scanner is implemented by *sql.Row and *sql.Rows.
type scanner interface {
	Scan(dest ...any) error
}

func scanRun(row scanner) (*depthcrawl.Run, error) {
	var run depthcrawl.Run
	var status, startedAt, finishedAt string

	if err := row.Scan(&run.ID, &run.SeedURL, &run.MaxDepth, &status, &run.LinkCount, &run.Error,
		&startedAt, &finishedAt); err != nil {
		return nil, err
	}
	run.Status = depthcrawl.RunStatus(status)

	var err error
	if run.StartedAt, err = parseTime(startedAt, "started_at"); err != nil {
		return nil, err
	}
	if run.FinishedAt, err = parseTime(finishedAt, "finished_at"); err != nil {
		return nil, err
	}

	return &run, nil
}
