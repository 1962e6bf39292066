package service

import (
	"context"
	"fmt"
	"time"

	"github.com/kkurihara/planboard/internal/domain"
	"github.com/kkurihara/planboard/internal/repository"
	"github.com/kkurihara/planboard/internal/wbs"
)

// recomputeChain re-derives progress and status for every node from
// startID up to the project root. Each node is recomputed exactly once
// from its direct children; the walk never re-descends, so children must
// already be consistent when this runs.
func recomputeChain(ctx context.Context, nodes repository.NodeRepo, startID string, asOf time.Time) ([]ChainEntry, error) {
	var chain []ChainEntry

	current, err := nodes.GetByID(ctx, startID)
	if err != nil {
		return nil, err
	}

	for {
		children, err := nodes.ListChildren(ctx, current.ID)
		if err != nil {
			return nil, err
		}
		progress := wbs.WeightedProgress(children)
		status := wbs.DeriveStatus(progress, current.EndDate, asOf)

		if progress != current.Progress || status != current.Status {
			current.Progress = progress
			current.Status = status
			current.UpdatedAt = asOf
			if err := nodes.Update(ctx, current); err != nil {
				return nil, fmt.Errorf("updating rollup of %s: %w", current.ID, err)
			}
		}
		chain = append(chain, ChainEntry{
			NodeID:   current.ID,
			Level:    current.Level,
			Progress: progress,
			Status:   status,
		})

		if current.ParentID == nil {
			return chain, nil
		}
		current, err = nodes.GetByID(ctx, *current.ParentID)
		if err != nil {
			return nil, err
		}
	}
}

// chainEntry builds the report entry for a single node.
func chainEntry(n *domain.WbsNode) ChainEntry {
	return ChainEntry{
		NodeID:   n.ID,
		Level:    n.Level,
		Progress: n.Progress,
		Status:   n.Status,
	}
}
