package repository

import (
	"context"

	"github.com/kkurihara/planboard/internal/domain"
)

type ProjectRepo interface {
	Create(ctx context.Context, p *domain.Project) error
	GetByID(ctx context.Context, id string) (*domain.Project, error)
	List(ctx context.Context) ([]*domain.Project, error)
	Update(ctx context.Context, p *domain.Project) error
	Delete(ctx context.Context, id string) error
}

type NodeRepo interface {
	Create(ctx context.Context, n *domain.WbsNode) error
	GetByID(ctx context.Context, id string) (*domain.WbsNode, error)
	GetRoot(ctx context.Context, projectID string) (*domain.WbsNode, error)
	ListByProject(ctx context.Context, projectID string) ([]*domain.WbsNode, error)
	ListChildren(ctx context.Context, parentID string) ([]*domain.WbsNode, error)
	CountChildren(ctx context.Context, parentID string) (int, error)
	// AncestorChain returns the node's ancestors ordered nearest-first,
	// ending at the synthetic project root. The node itself is excluded.
	AncestorChain(ctx context.Context, id string) ([]*domain.WbsNode, error)
	// Subtree returns the node and all of its descendants.
	Subtree(ctx context.Context, id string) ([]*domain.WbsNode, error)
	MaxSubtreeLevel(ctx context.Context, id string) (domain.Level, error)
	Update(ctx context.Context, n *domain.WbsNode) error
	// Reparent moves a node under a new parent at the given order and
	// level. It rejects moves that would create a cycle.
	Reparent(ctx context.Context, id, newParentID string, newOrder int, newLevel domain.Level) error
	// ShiftSubtreeLevels adds delta to the level of every descendant of
	// the node, excluding the node itself.
	ShiftSubtreeLevels(ctx context.Context, id string, delta int) error
	// ShiftOrdersFrom opens or closes a gap in a sibling list: every child
	// of parentID with order_index >= fromOrder is shifted by delta.
	ShiftOrdersFrom(ctx context.Context, parentID string, fromOrder, delta int) error
	// ResequenceChildren rewrites the children's order indexes to a dense
	// 0..n-1 run, preserving their current relative order.
	ResequenceChildren(ctx context.Context, parentID string) error
	// Delete removes the node; the schema cascades to the whole subtree.
	Delete(ctx context.Context, id string) error
}

type HolidayRepo interface {
	Create(ctx context.Context, h *domain.Holiday) error
	// ListForProject returns global entries plus entries scoped to the
	// given project.
	ListForProject(ctx context.Context, projectID string) ([]*domain.Holiday, error)
	Delete(ctx context.Context, id string) error
}

// CounterRepo is the authoritative highest-allocated-sequence store for
// the code allocator. It is an explicit counter, never derived by scanning
// existing records.
type CounterRepo interface {
	// Reserve atomically advances the (projectID, prefix) counter by count
	// and returns the first sequence number of the reserved contiguous
	// range. Concurrent reservations never overlap.
	Reserve(ctx context.Context, projectID, prefix string, count int) (int, error)
}
