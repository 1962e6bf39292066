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

type treeService struct {
	uow      db.UnitOfWork
	observer UseCaseObserver
}

func NewTreeService(uow db.UnitOfWork, observers ...UseCaseObserver) TreeService {
	return &treeService{
		uow:      uow,
		observer: useCaseObserverOrNoop(observers),
	}
}

func (s *treeService) ChangeLevel(ctx context.Context, nodeID string, direction domain.LevelDirection) (result *MutationResult, err error) {
	start := time.Now()
	defer func() {
		observe(ctx, s.observer, "change_level", start, err,
			map[string]any{"node_id": nodeID, "direction": direction})
	}()

	err = s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		txNodes := repository.NewSQLiteNodeRepo(tx)

		node, err := txNodes.GetByID(ctx, nodeID)
		if err != nil {
			return err
		}
		if node.IsRoot() {
			return fmt.Errorf("node %s is the project root: %w", nodeID, wbs.ErrInvalidNode)
		}

		switch direction {
		case domain.DirectionUp:
			result, err = promote(ctx, txNodes, node)
		case domain.DirectionDown:
			result, err = demote(ctx, txNodes, node)
		default:
			err = fmt.Errorf("direction %q: %w", direction, wbs.ErrInvalidNode)
		}
		return err
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

// promote moves the node one level shallower: it becomes a sibling of its
// former parent, placed immediately after it.
func promote(ctx context.Context, nodes repository.NodeRepo, node *domain.WbsNode) (*MutationResult, error) {
	if node.Level <= domain.Level1 {
		return nil, fmt.Errorf("node %s is already at L1: %w", node.ID, wbs.ErrBoundary)
	}

	parent, err := nodes.GetByID(ctx, *node.ParentID)
	if err != nil {
		return nil, err
	}
	if parent.ParentID == nil {
		return nil, fmt.Errorf("node %s has no grandparent: %w", node.ID, wbs.ErrBoundary)
	}
	grandparentID := *parent.ParentID

	// Open a slot right after the former parent among the grandparent's
	// children, then move the node into it.
	newOrder := parent.OrderIndex + 1
	if err := nodes.ShiftOrdersFrom(ctx, grandparentID, newOrder, 1); err != nil {
		return nil, err
	}
	if err := nodes.Reparent(ctx, node.ID, grandparentID, newOrder, node.Level-1); err != nil {
		return nil, err
	}
	if err := nodes.ShiftSubtreeLevels(ctx, node.ID, -1); err != nil {
		return nil, err
	}
	if err := nodes.ResequenceChildren(ctx, parent.ID); err != nil {
		return nil, err
	}

	// The old chain starts at the former parent; its ancestor walk passes
	// through the grandparent, covering the new chain as well.
	recomputed, err := recomputeChain(ctx, nodes, parent.ID, time.Now().UTC())
	if err != nil {
		return nil, err
	}

	return &MutationResult{
		NodeID:      node.ID,
		Direction:   domain.DirectionUp,
		OldParentID: parent.ID,
		NewParentID: grandparentID,
		NewLevel:    node.Level - 1,
		Recomputed:  recomputed,
	}, nil
}

// demote moves the node one level deeper: it becomes the last child of its
// immediately preceding sibling.
func demote(ctx context.Context, nodes repository.NodeRepo, node *domain.WbsNode) (*MutationResult, error) {
	siblings, err := nodes.ListChildren(ctx, *node.ParentID)
	if err != nil {
		return nil, err
	}

	var target *domain.WbsNode
	for _, sib := range siblings {
		if sib.ID == node.ID {
			break
		}
		target = sib
	}
	if target == nil {
		return nil, fmt.Errorf("node %s has no preceding sibling: %w", node.ID, wbs.ErrNoTarget)
	}

	deepest, err := nodes.MaxSubtreeLevel(ctx, node.ID)
	if err != nil {
		return nil, err
	}
	if deepest+1 > domain.MaxLevel {
		return nil, fmt.Errorf("demoting %s would push a descendant past L%d: %w",
			node.ID, domain.MaxLevel, wbs.ErrBoundary)
	}

	targetChildren, err := nodes.CountChildren(ctx, target.ID)
	if err != nil {
		return nil, err
	}

	oldParentID := *node.ParentID
	if err := nodes.Reparent(ctx, node.ID, target.ID, targetChildren, node.Level+1); err != nil {
		return nil, err
	}
	if err := nodes.ShiftSubtreeLevels(ctx, node.ID, 1); err != nil {
		return nil, err
	}
	if err := nodes.ResequenceChildren(ctx, oldParentID); err != nil {
		return nil, err
	}

	// The new parent sits under the former parent, so one walk from the
	// sibling covers both chains.
	recomputed, err := recomputeChain(ctx, nodes, target.ID, time.Now().UTC())
	if err != nil {
		return nil, err
	}

	return &MutationResult{
		NodeID:      node.ID,
		Direction:   domain.DirectionDown,
		OldParentID: oldParentID,
		NewParentID: target.ID,
		NewLevel:    node.Level + 1,
		Recomputed:  recomputed,
	}, nil
}
