package depthcrawl

import (
	"context"
	"time"
)

// RunStatus describes the lifecycle state of a recorded crawl.
type RunStatus string

// RunStatus values.
const (
	RunRunning   RunStatus = "running"
	RunCompleted RunStatus = "completed"
	RunFailed    RunStatus = "failed"
)

// Run represents one recorded crawl from a seed URL.
type Run struct {
	ID         string    `json:"id"`
	SeedURL    string    `json:"seedUrl"`
	MaxDepth   int       `json:"maxDepth"`
	Status     RunStatus `json:"status"`
	LinkCount  int       `json:"linkCount"`
	Error      string    `json:"error"`
	StartedAt  time.Time `json:"startedAt"`
	FinishedAt time.Time `json:"finishedAt"`
}

// Validate returns an error if the run contains invalid fields.
func (r *Run) Validate() error {
	if r.SeedURL == "" {
		return Errorf(EINVALID, "run seed URL required")
	}
	if r.MaxDepth < 1 {
		return Errorf(EINVALID, "run max depth must be at least 1")
	}
	return nil
}

// RunService represents a service for managing recorded crawls.
type RunService interface {
	// CreateRun records a new run in the running state.
	CreateRun(ctx context.Context, run *Run) error

	// FindRunByID retrieves a run by ID.
	// Returns ENOTFOUND if run does not exist.
	FindRunByID(ctx context.Context, id string) (*Run, error)

	// FindRuns retrieves runs matching the filter, newest first.
	FindRuns(ctx context.Context, filter RunFilter) ([]*Run, error)

	// FinishRun marks a run as completed, or failed when crawlErr is non-nil.
	// Returns ENOTFOUND if run does not exist.
	FinishRun(ctx context.Context, id string, linkCount int, crawlErr error) (*Run, error)

	// DeleteRun permanently removes a run and all associated links.
	// Returns ENOTFOUND if run does not exist.
	DeleteRun(ctx context.Context, id string) error
}

// RunFilter represents a filter for FindRuns.
type RunFilter struct {
	ID      *string    `json:"id"`
	SeedURL *string    `json:"seedUrl"`
	Status  *RunStatus `json:"status"`

	Offset int `json:"offset"`
	Limit  int `json:"limit"`
}
