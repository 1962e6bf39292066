package service

import (
	"context"
	"fmt"
	"time"

	"github.com/kkurihara/planboard/internal/repository"
	"github.com/kkurihara/planboard/internal/wbs"
)

type allocatorService struct {
	counters repository.CounterRepo
	observer UseCaseObserver
}

func NewAllocatorService(counters repository.CounterRepo, observers ...UseCaseObserver) AllocatorService {
	return &allocatorService{
		counters: counters,
		observer: useCaseObserverOrNoop(observers),
	}
}

func (s *allocatorService) Allocate(ctx context.Context, projectID, prefix string, count, width int) (codes []string, err error) {
	start := time.Now()
	defer func() {
		observe(ctx, s.observer, "allocate_codes", start, err,
			map[string]any{"project_id": projectID, "prefix": prefix, "count": count})
	}()

	if count < 1 {
		return nil, fmt.Errorf("count %d must be at least 1: %w", count, wbs.ErrOutOfRange)
	}
	defaultWidth, err := wbs.CodeWidth(prefix)
	if err != nil {
		return nil, err
	}
	if width <= 0 {
		width = defaultWidth
	}

	first, err := s.counters.Reserve(ctx, projectID, prefix, count)
	if err != nil {
		return nil, err
	}
	return wbs.FormatCodeRange(prefix, width, first, count), nil
}
