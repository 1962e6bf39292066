package service

import (
	"context"
	"fmt"
	"time"

	"github.com/kkurihara/planboard/internal/db"
	"github.com/kkurihara/planboard/internal/domain"
	"github.com/kkurihara/planboard/internal/repository"
	"github.com/kkurihara/planboard/internal/wbs"
)

type progressService struct {
	nodes    repository.NodeRepo
	uow      db.UnitOfWork
	observer UseCaseObserver
}

func NewProgressService(nodes repository.NodeRepo, uow db.UnitOfWork, observers ...UseCaseObserver) ProgressService {
	return &progressService{
		nodes:    nodes,
		uow:      uow,
		observer: useCaseObserverOrNoop(observers),
	}
}

func (s *progressService) SetLeafProgress(ctx context.Context, nodeID string, progress int) (result *UpdatedChain, err error) {
	start := time.Now()
	defer func() {
		observe(ctx, s.observer, "set_leaf_progress", start, err,
			map[string]any{"node_id": nodeID, "progress": progress})
	}()

	if progress < 0 || progress > 100 {
		return nil, fmt.Errorf("progress %d for node %s: %w", progress, nodeID, wbs.ErrOutOfRange)
	}

	err = s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		txNodes := repository.NewSQLiteNodeRepo(tx)

		leaf, err := txNodes.GetByID(ctx, nodeID)
		if err != nil {
			return err
		}
		if leaf.IsRoot() {
			return fmt.Errorf("node %s is the project root: %w", nodeID, wbs.ErrInvalidNode)
		}
		childCount, err := txNodes.CountChildren(ctx, nodeID)
		if err != nil {
			return err
		}
		if childCount > 0 {
			return fmt.Errorf("node %s has %d children, progress is leaf-only: %w", nodeID, childCount, wbs.ErrInvalidNode)
		}

		now := time.Now().UTC()
		leaf.Progress = progress
		leaf.Status = wbs.DeriveStatus(progress, leaf.EndDate, now)
		leaf.UpdatedAt = now
		if err := txNodes.Update(ctx, leaf); err != nil {
			return err
		}

		ancestors, err := recomputeChain(ctx, txNodes, *leaf.ParentID, now)
		if err != nil {
			return err
		}

		result = &UpdatedChain{Leaf: chainEntry(leaf), Ancestors: ancestors}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

func (s *progressService) AggregateCounts(ctx context.Context, projectID string) (*AggregateCounts, error) {
	all, err := s.nodes.ListByProject(ctx, projectID)
	if err != nil {
		return nil, err
	}

	parents := make(map[string]bool, len(all))
	for _, n := range all {
		if n.ParentID != nil {
			parents[*n.ParentID] = true
		}
	}

	counts := &AggregateCounts{}
	for _, n := range all {
		if n.IsRoot() {
			continue
		}
		counts.Total++
		if parents[n.ID] {
			counts.Internal++
		} else {
			counts.Leaves++
		}
		switch n.Status {
		case domain.StatusCompleted:
			counts.Completed++
		case domain.StatusDelayed:
			counts.Delayed++
		case domain.StatusInProgress:
			counts.InProgress++
		default:
			counts.NotStarted++
		}
	}
	return counts, nil
}
