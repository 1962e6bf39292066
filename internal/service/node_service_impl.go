package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/kkurihara/planboard/internal/db"
	"github.com/kkurihara/planboard/internal/domain"
	"github.com/kkurihara/planboard/internal/repository"
	"github.com/kkurihara/planboard/internal/wbs"
)

type nodeService struct {
	nodes repository.NodeRepo
	uow   db.UnitOfWork
}

func NewNodeService(nodes repository.NodeRepo, uow db.UnitOfWork) NodeService {
	return &nodeService{nodes: nodes, uow: uow}
}

func (s *nodeService) Create(ctx context.Context, parentID string, n *domain.WbsNode) error {
	if n.Weight != nil && *n.Weight < 0 {
		return fmt.Errorf("weight %g for node %q: %w", *n.Weight, n.Title, wbs.ErrOutOfRange)
	}
	if n.ID == "" {
		n.ID = uuid.New().String()
	}
	now := time.Now().UTC()
	n.CreatedAt = now
	n.UpdatedAt = now
	if n.Status == "" {
		n.Status = domain.StatusNotStarted
	}

	return s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		txNodes := repository.NewSQLiteNodeRepo(tx)

		parent, err := txNodes.GetByID(ctx, parentID)
		if err != nil {
			return err
		}
		if parent.Level >= domain.MaxLevel {
			return fmt.Errorf("parent %s is at L%d, nothing nests deeper: %w",
				parentID, domain.MaxLevel, wbs.ErrBoundary)
		}

		siblingCount, err := txNodes.CountChildren(ctx, parentID)
		if err != nil {
			return err
		}

		n.ProjectID = parent.ProjectID
		n.ParentID = &parent.ID
		n.Level = parent.Level + 1
		n.OrderIndex = siblingCount
		if err := txNodes.Create(ctx, n); err != nil {
			return err
		}

		// A fresh not-started child dilutes the parent's average.
		_, err = recomputeChain(ctx, txNodes, parent.ID, now)
		return err
	})
}

func (s *nodeService) GetByID(ctx context.Context, id string) (*domain.WbsNode, error) {
	return s.nodes.GetByID(ctx, id)
}

func (s *nodeService) ListChildren(ctx context.Context, parentID string) ([]*domain.WbsNode, error) {
	return s.nodes.ListChildren(ctx, parentID)
}

func (s *nodeService) Tree(ctx context.Context, projectID string) ([]*domain.WbsNode, error) {
	return s.nodes.ListByProject(ctx, projectID)
}

func (s *nodeService) Update(ctx context.Context, n *domain.WbsNode) error {
	if n.Weight != nil && *n.Weight < 0 {
		return fmt.Errorf("weight %g for node %s: %w", *n.Weight, n.ID, wbs.ErrOutOfRange)
	}
	return s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		txNodes := repository.NewSQLiteNodeRepo(tx)

		stored, err := txNodes.GetByID(ctx, n.ID)
		if err != nil {
			return err
		}

		now := time.Now().UTC()
		stored.Title = n.Title
		stored.Weight = n.Weight
		stored.StartDate = n.StartDate
		stored.EndDate = n.EndDate
		stored.ActualStartDate = n.ActualStartDate
		stored.ActualEndDate = n.ActualEndDate
		stored.Assignees = n.Assignees
		stored.Status = wbs.DeriveStatus(stored.Progress, stored.EndDate, now)
		stored.UpdatedAt = now
		if err := txNodes.Update(ctx, stored); err != nil {
			return err
		}

		// Weight changes move the parent's weighted average.
		if stored.ParentID != nil {
			if _, err := recomputeChain(ctx, txNodes, *stored.ParentID, now); err != nil {
				return err
			}
		}
		return nil
	})
}

func (s *nodeService) Delete(ctx context.Context, id string) error {
	return s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		txNodes := repository.NewSQLiteNodeRepo(tx)

		node, err := txNodes.GetByID(ctx, id)
		if err != nil {
			return err
		}
		if node.IsRoot() {
			return fmt.Errorf("node %s is the project root: %w", id, wbs.ErrInvalidNode)
		}
		parentID := *node.ParentID

		// The schema cascades the delete to the whole subtree.
		if err := txNodes.Delete(ctx, id); err != nil {
			return err
		}
		if err := txNodes.ResequenceChildren(ctx, parentID); err != nil {
			return err
		}
		_, err = recomputeChain(ctx, txNodes, parentID, time.Now().UTC())
		return err
	})
}
