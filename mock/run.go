package mock

import (
	"context"

	"github.com/fwojciec/depthcrawl"
)

var _ depthcrawl.RunService = (*RunService)(nil)

// RunService is a mock implementation of depthcrawl.RunService.
type RunService struct {
	CreateRunFn   func(ctx context.Context, run *depthcrawl.Run) error
	FindRunByIDFn func(ctx context.Context, id string) (*depthcrawl.Run, error)
	FindRunsFn    func(ctx context.Context, filter depthcrawl.RunFilter) ([]*depthcrawl.Run, error)
	FinishRunFn   func(ctx context.Context, id string, linkCount int, crawlErr error) (*depthcrawl.Run, error)
	DeleteRunFn   func(ctx context.Context, id string) error
}

func (s *RunService) CreateRun(ctx context.Context, run *depthcrawl.Run) error {
	return s.CreateRunFn(ctx, run)
}

func (s *RunService) FindRunByID(ctx context.Context, id string) (*depthcrawl.Run, error) {
	return s.FindRunByIDFn(ctx, id)
}

func (s *RunService) FindRuns(ctx context.Context, filter depthcrawl.RunFilter) ([]*depthcrawl.Run, error) {
	return s.FindRunsFn(ctx, filter)
}

func (s *RunService) FinishRun(ctx context.Context, id string, linkCount int, crawlErr error) (*depthcrawl.Run, error) {
	return s.FinishRunFn(ctx, id, linkCount, crawlErr)
}

func (s *RunService) DeleteRun(ctx context.Context, id string) error {
	return s.DeleteRunFn(ctx, id)
}
