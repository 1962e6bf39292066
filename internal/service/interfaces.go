package service

import (
	"context"
	"time"

	"github.com/kkurihara/planboard/internal/domain"
	"github.com/kkurihara/planboard/internal/wbs"
)

type ProjectService interface {
	// Create stores the project and its synthetic root node.
	Create(ctx context.Context, p *domain.Project) error
	GetByID(ctx context.Context, id string) (*domain.Project, error)
	List(ctx context.Context) ([]*domain.Project, error)
	Update(ctx context.Context, p *domain.Project) error
	Delete(ctx context.Context, id string) error
}

type NodeService interface {
	// Create inserts a node under parentID. Level is derived from the
	// parent and the order index appends to the sibling list.
	Create(ctx context.Context, parentID string, n *domain.WbsNode) error
	GetByID(ctx context.Context, id string) (*domain.WbsNode, error)
	ListChildren(ctx context.Context, parentID string) ([]*domain.WbsNode, error)
	// Tree returns every node of the project including the synthetic root,
	// ordered by level then sibling order.
	Tree(ctx context.Context, projectID string) ([]*domain.WbsNode, error)
	// Update persists work attributes (title, weight, dates, assignees)
	// and recomputes the ancestor rollup, since a weight change moves the
	// parent's weighted average. Progress is not writable here.
	Update(ctx context.Context, n *domain.WbsNode) error
	// Delete removes the node's whole subtree and recomputes the former
	// parent chain.
	Delete(ctx context.Context, id string) error
}

type ProgressService interface {
	// SetLeafProgress stores a leaf's progress and recomputes every
	// ancestor bottom-up, one pass per ancestor.
	SetLeafProgress(ctx context.Context, nodeID string, progress int) (*UpdatedChain, error)
	// AggregateCounts tallies node statuses for a project in a single
	// pass, partitioned into leaves and internal nodes. Counts are
	// unweighted.
	AggregateCounts(ctx context.Context, projectID string) (*AggregateCounts, error)
}

type TreeService interface {
	// ChangeLevel promotes (up) or demotes (down) a node one level,
	// reparenting it and shifting its whole subtree. The reparent,
	// relevel, and rollup recompute land in one transaction.
	ChangeLevel(ctx context.Context, nodeID string, direction domain.LevelDirection) (*MutationResult, error)
}

type StatsService interface {
	// ComputeStats derives expected-vs-actual schedule progress for the
	// project as of the given instant. Nothing is cached.
	ComputeStats(ctx context.Context, projectID string, asOf time.Time) (*wbs.ScheduleStats, error)
}

type AllocatorService interface {
	// Allocate reserves count contiguous codes for (projectID, prefix),
	// zero-padded to width digits (0 selects the prefix default). Bulk
	// imports call this once with count = M.
	Allocate(ctx context.Context, projectID, prefix string, count, width int) ([]string, error)
}

type HolidayService interface {
	Create(ctx context.Context, h *domain.Holiday) error
	ListForProject(ctx context.Context, projectID string) ([]*domain.Holiday, error)
	Delete(ctx context.Context, id string) error
}

// ChainEntry is one recomputed node on a rollup chain.
type ChainEntry struct {
	NodeID   string            `json:"nodeId"`
	Level    domain.Level      `json:"level"`
	Progress int               `json:"progress"`
	Status   domain.NodeStatus `json:"status"`
}

// UpdatedChain reports a leaf edit and the ancestor recomputations it
// triggered, nearest ancestor first.
type UpdatedChain struct {
	Leaf      ChainEntry   `json:"leaf"`
	Ancestors []ChainEntry `json:"ancestors"`
}

// MutationResult reports a completed promote or demote.
type MutationResult struct {
	NodeID      string                 `json:"nodeId"`
	Direction   domain.LevelDirection  `json:"direction"`
	OldParentID string                 `json:"oldParentId"`
	NewParentID string                 `json:"newParentId"`
	NewLevel    domain.Level           `json:"newLevel"`
	Recomputed  []ChainEntry           `json:"recomputed"`
}

// AggregateCounts are the unweighted dashboard tallies for one project,
// synthetic root excluded.
type AggregateCounts struct {
	Total      int `json:"total"`
	NotStarted int `json:"notStarted"`
	InProgress int `json:"inProgress"`
	Delayed    int `json:"delayed"`
	Completed  int `json:"completed"`
	Leaves     int `json:"leaves"`
	Internal   int `json:"internal"`
}
